package ledger

import (
	"math"
	"math/big"
)

// Difficulty is the number of leading zero bits a block hash must carry.
// Fixed at 16 for this build, high enough to show real proof-of-work
// search without turning `mine` into a multi-minute wait on commodity
// hardware.
const Difficulty = 16

// target is 2^(256-Difficulty): a block hash, read as a big-endian 256-bit
// integer, must fall strictly below it.
func target() *big.Int {
	t := big.NewInt(1)
	t.Lsh(t, uint(256-Difficulty))
	return t
}

// hashAsInt parses a hex block hash into the big-endian integer the
// difficulty target is compared against.
func hashAsInt(hashHex string) (*big.Int, error) {
	b, ok := new(big.Int).SetString(hashHex, 16)
	if !ok {
		return nil, newErr(InvalidNonce)
	}
	return b, nil
}

// meetsTarget reports whether hashHex, read as an integer, is below the
// difficulty target.
func meetsTarget(hashHex string) bool {
	n, err := hashAsInt(hashHex)
	if err != nil {
		return false
	}
	return n.Cmp(target()) == -1
}

// mine searches for the smallest nonce (starting from 0) that makes b's
// hash satisfy the difficulty target, mutating b.Nonce in place. The
// search is sequential and unbounded — it always terminates with
// probability 1. It returns the winning hash.
func mine(b *Block) (string, error) {
	b.Nonce = 0
	for b.Nonce < math.MaxUint64 {
		h, err := b.Hash()
		if err != nil {
			return "", err
		}
		if meetsTarget(h) {
			return h, nil
		}
		b.Nonce++
	}
	return "", newErr(InvalidNonce)
}
