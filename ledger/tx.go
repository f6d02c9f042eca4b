package ledger

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/kilimba/ledgerd/canon"
	"github.com/kilimba/ledgerd/cryptoutil"
)

// Reward is the fixed value minted by every coinbase transaction. This
// build treats it as a constant; there is no halving, no fee market, and
// no per-block variation.
const Reward uint64 = 50

// TXOutput is a spendable unit of value locked to an address.
type TXOutput struct {
	Value      uint64 `json:"value"`
	PubKeyHash string `json:"pubkey_hash"`
}

// TXInput references a prior output being spent, together with the proof
// that the spender controls it.
type TXInput struct {
	TxID      string `json:"txid"`
	Vout      int    `json:"vout"`
	Signature []byte `json:"signature"`
	PubKey    []byte `json:"pubkey"`
}

// CoinbaseTX mints Reward to a single recipient. Rand exists only to keep
// the transaction id unique across blocks and recipients — coinbase
// transactions carry no inputs to hash against.
type CoinbaseTX struct {
	Outputs []TXOutput `json:"outputs"`
	Rand    uint64     `json:"rand"`
}

// StandardTX spends one or more prior outputs into one or more new ones.
type StandardTX struct {
	Inputs  []TXInput  `json:"inputs"`
	Outputs []TXOutput `json:"outputs"`
}

// TX is a tagged variant over {Coinbase, Standard}: exactly one of the two
// fields is non-nil. Go has no sum type, so the tag lives in which pointer
// is set, and every accessor below switches on it.
type TX struct {
	Coinbase *CoinbaseTX `json:"coinbase,omitempty"`
	Standard *StandardTX `json:"standard,omitempty"`
}

// IsCoinbase reports whether tx mints new value rather than spending it.
func (tx TX) IsCoinbase() bool {
	return tx.Coinbase != nil
}

// Outputs returns the outputs of whichever variant tx wraps.
func (tx TX) Outputs() []TXOutput {
	if tx.Coinbase != nil {
		return tx.Coinbase.Outputs
	}
	return tx.Standard.Outputs
}

// ID is the hex SHA-256 of the canonical encoding of the wrapped variant's
// payload — the outer {Coinbase, Standard} tag itself is never hashed.
func (tx TX) ID() (string, error) {
	var payload any
	if tx.Coinbase != nil {
		payload = tx.Coinbase
	} else {
		payload = tx.Standard
	}
	b, err := canon.Encode(payload)
	if err != nil {
		return "", err
	}
	return cryptoutil.HashHex(b), nil
}

// NewCoinbaseTX builds the single-output, reward-minting transaction
// included in every mined block.
func NewCoinbaseTX(to string) (TX, error) {
	var nonce [8]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return TX{}, err
	}
	return TX{
		Coinbase: &CoinbaseTX{
			Outputs: []TXOutput{{Value: Reward, PubKeyHash: to}},
			Rand:    binary.BigEndian.Uint64(nonce[:]),
		},
	}, nil
}

// Signer is anything that can produce a spend authorization over a
// 32-byte message and present the compressed public key a verifier should
// check it against. wallet.Wallet implements this; it is defined here
// rather than imported to avoid a dependency cycle between ledger and
// wallet (wallet does not need to know about transactions).
type Signer interface {
	PublicKey() []byte
	Sign(message []byte) ([]byte, error)
}

// signingPreimage is the two-field record signed for every standard
// transaction input: the identity being spent from, and the full set of
// new outputs the spender is authorizing. Neither the input list nor any
// sibling input is covered.
type signingPreimage struct {
	PubKeyHash string     `json:"pubkey_hash"`
	Outputs    []TXOutput `json:"outputs"`
}

func (p signingPreimage) digest() ([32]byte, error) {
	b, err := canon.Encode(p)
	if err != nil {
		return [32]byte{}, err
	}
	return cryptoutil.Hash(b), nil
}

// NewStandardTX authors and signs a transaction spending amount from the
// address behind signer to the address to, against the unspent outputs in
// utxo.
func NewStandardTX(utxo UTXOSet, signer Signer, to string, amount uint64) (TX, error) {
	fromHash := cryptoutil.Address(signer.PublicKey())

	total, selected := utxo.FindSpendableOutputs(fromHash, amount)
	if total < amount {
		return TX{}, newErr(InsufficientFunds)
	}

	outputs := []TXOutput{
		{Value: amount, PubKeyHash: to},
		{Value: total - amount, PubKeyHash: fromHash},
	}

	inputs := make([]TXInput, 0, len(selected))
	for _, s := range selected {
		pre := signingPreimage{PubKeyHash: fromHash, Outputs: outputs}
		digest, err := pre.digest()
		if err != nil {
			return TX{}, err
		}
		sig, err := signer.Sign(digest[:])
		if err != nil {
			return TX{}, err
		}
		inputs = append(inputs, TXInput{
			TxID:      s.TxID,
			Vout:      s.Vout,
			Signature: sig,
			PubKey:    signer.PublicKey(),
		})
	}

	return TX{Standard: &StandardTX{Inputs: inputs, Outputs: outputs}}, nil
}

// verify checks every input of a standard transaction against chain. A
// coinbase transaction always verifies.
func (tx TX) verify(chain *Chain) error {
	if tx.IsCoinbase() {
		return nil
	}
	for _, in := range tx.Standard.Inputs {
		prevTx, ok := chain.FindTransaction(in.TxID)
		if !ok {
			return newErr(TransactionMissing)
		}
		prevOutputs := prevTx.Outputs()
		if in.Vout < 0 || in.Vout >= len(prevOutputs) {
			return newErr(NoTXOutput)
		}
		prevOut := prevOutputs[in.Vout]

		pre := signingPreimage{PubKeyHash: prevOut.PubKeyHash, Outputs: tx.Standard.Outputs}
		digest, err := pre.digest()
		if err != nil {
			return err
		}

		pub, err := cryptoutil.ParsePubKey(in.PubKey)
		if err != nil {
			return newErr(PubkeySignatureMismatch)
		}
		if cryptoutil.Address(in.PubKey) != prevOut.PubKeyHash {
			return newErr(PubkeySignatureMismatch)
		}
		sig, err := cryptoutil.ParseSignature(in.Signature)
		if err != nil {
			return newErr(PubkeySignatureMismatch)
		}
		if !cryptoutil.Verify(sig, pub, digest[:]) {
			return newErr(PubkeySignatureMismatch)
		}
	}
	return nil
}
