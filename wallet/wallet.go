// Package wallet holds the keypair a user signs transactions with and the
// on-disk keystore mapping address to keypair.
package wallet

import (
	"bytes"
	"encoding/gob"

	"github.com/kilimba/ledgerd/cryptoutil"
)

// Wallet is a single secp256k1 keypair. It implements ledger.Signer
// structurally (PublicKey/Sign) without importing the ledger package, so
// wallet stays free of any dependency on transaction shapes.
type Wallet struct {
	keys *cryptoutil.KeyPair
}

// New generates a fresh wallet.
func New() (*Wallet, error) {
	kp, err := cryptoutil.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	return &Wallet{keys: kp}, nil
}

// PublicKey returns the compressed public key, the pre-image of Address.
func (w *Wallet) PublicKey() []byte {
	return w.keys.CompressedPubKey()
}

// Address is the hex SHA-256 digest of PublicKey.
func (w *Wallet) Address() string {
	return cryptoutil.Address(w.PublicKey())
}

// Sign produces a DER-encoded ECDSA signature over message.
func (w *Wallet) Sign(message []byte) ([]byte, error) {
	sig := cryptoutil.Sign(w.keys.Private, message)
	return cryptoutil.SerializeSignature(sig), nil
}

// GobEncode persists only the 32-byte private scalar — the public key and
// address are both re-derivable from it on load.
func (w *Wallet) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(w.keys.PrivateKeyBytes()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode reverses GobEncode, reconstructing the full keypair from the
// stored scalar.
func (w *Wallet) GobDecode(b []byte) error {
	var d []byte
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&d); err != nil {
		return err
	}
	w.keys = cryptoutil.KeyPairFromBytes(d)
	return nil
}
