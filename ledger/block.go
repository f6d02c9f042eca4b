package ledger

import (
	"github.com/kilimba/ledgerd/canon"
	"github.com/kilimba/ledgerd/cryptoutil"
)

// Block bundles a batch of transactions mined on top of a predecessor.
// Hashing and persistence both go through the same canonical encoding, so
// a Block's hash is stable across processes.
type Block struct {
	Timestamp     int64  `json:"timestamp"`
	Transactions  []TX   `json:"transactions"`
	PrevBlockHash string `json:"prev_block_hash"`
	Nonce         uint64 `json:"nonce"`
}

// Hash is the hex SHA-256 of the canonical encoding of all four fields,
// nonce included — mining varies Nonce and re-hashes until the result
// meets the difficulty target.
func (b Block) Hash() (string, error) {
	enc, err := canon.Encode(b)
	if err != nil {
		return "", err
	}
	return cryptoutil.HashHex(enc), nil
}

// coinbaseCount returns how many of the block's transactions mint value.
func (b Block) coinbaseCount() int {
	n := 0
	for _, tx := range b.Transactions {
		if tx.IsCoinbase() {
			n++
		}
	}
	return n
}
