package ledger

import "fmt"

// Code identifies one of the value-path failure kinds a ledger operation
// can report. Unlike infrastructure failures (missing chain file, corrupt
// snapshot), these are expected outcomes of untrusted input and are always
// returned, never panicked.
type Code int

const (
	// InsufficientFunds: sum of spender's UTXO < requested amount.
	InsufficientFunds Code = iota
	// TransactionMissing: an input references an unknown txid.
	TransactionMissing
	// NoTXOutput: an input's vout is out of range of the referenced transaction.
	NoTXOutput
	// PubkeySignatureMismatch: ECDSA verification failed.
	PubkeySignatureMismatch
	// InvalidPreviousHash: block's prev pointer does not match expected predecessor.
	InvalidPreviousHash
	// InvalidNonce: block hash does not meet the difficulty target.
	InvalidNonce
	// TooManyCoinbase: block contains more than one coinbase transaction.
	TooManyCoinbase
	// NoWalletForAddress: send --from specifies an address not in the wallet store.
	NoWalletForAddress
)

func (c Code) String() string {
	switch c {
	case InsufficientFunds:
		return "insufficient funds"
	case TransactionMissing:
		return "transaction does not exist"
	case NoTXOutput:
		return "transaction output does not exist"
	case PubkeySignatureMismatch:
		return "public key does not match the signature"
	case InvalidPreviousHash:
		return "previous_block_hash of the block is incorrect"
	case InvalidNonce:
		return "the block nonce is incorrect"
	case TooManyCoinbase:
		return "too many coinbase transactions in the block"
	case NoWalletForAddress:
		return "a wallet does not exist for this address"
	default:
		return "unknown ledger error"
	}
}

// Error is the value-path error every ledger operation returns on failure.
// Infrastructure failures (I/O, corrupt encoding, database open failure)
// are not represented here — those remain fatal.
type Error struct {
	Code Code
}

func (e *Error) Error() string {
	return fmt.Sprintf("error: %s", e.Code)
}

// newErr is a convenience constructor used throughout the package.
func newErr(c Code) *Error {
	return &Error{Code: c}
}
