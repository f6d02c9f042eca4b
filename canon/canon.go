// Package canon implements the deterministic, content-addressed encoding
// shared by every hashable, signable, or persisted record in the ledger:
// blocks, transactions, the signing pre-image, and the block values stored
// in the chain database. The mempool and wallet keystore snapshots are
// gob-encoded and do not go through this package.
//
// A single value always marshals to the same bytes, in every process, on
// every run: struct fields encode in declaration order (fixed at compile
// time by encoding/json) and any map encountered is written with its keys
// sorted. That determinism is what makes Encode safe to feed into SHA-256
// for a hash or a signature.
package canon

import "encoding/json"

// Error reports that a value could not be put into canonical form, or that
// bytes handed to Decode are not a valid encoding. Encoding the ledger's
// own types never triggers it; decoding malformed or tampered bytes does.
type Error struct {
	Cause error
}

func (e *Error) Error() string {
	return "canon: serialization error: " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Encode returns the canonical byte encoding of v.
func Encode(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, &Error{Cause: err}
	}
	return b, nil
}

// Decode reverses Encode into dst, which must be a pointer.
func Decode(data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return &Error{Cause: err}
	}
	return nil
}
