// Package cryptoutil wraps the two cryptographic primitives the ledger is
// built on: SHA-256 digests and secp256k1 ECDSA over them. Every caller
// that needs a hash or a signature goes through here rather than reaching
// for crypto/ecdsa or crypto/elliptic directly, so the curve and the
// digest algorithm stay pinned in one place.
package cryptoutil

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Hash returns the SHA-256 digest of data.
func Hash(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// HashHex returns the hex-encoded SHA-256 digest of data.
func HashHex(data []byte) string {
	h := Hash(data)
	return hex.EncodeToString(h[:])
}

// KeyPair is a secp256k1 signing key and its corresponding public key.
type KeyPair struct {
	Private *secp256k1.PrivateKey
	Public  *secp256k1.PublicKey
}

// GenerateKeyPair produces a fresh secp256k1 keypair.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &KeyPair{Private: priv, Public: priv.PubKey()}, nil
}

// KeyPairFromBytes reconstructs a keypair from a 32-byte private scalar.
func KeyPairFromBytes(d []byte) *KeyPair {
	priv := secp256k1.PrivKeyFromBytes(d)
	return &KeyPair{Private: priv, Public: priv.PubKey()}
}

// CompressedPubKey returns the 33-byte compressed public key encoding used
// throughout the ledger — it is the pre-image of every address.
func (kp *KeyPair) CompressedPubKey() []byte {
	return kp.Public.SerializeCompressed()
}

// PrivateKeyBytes returns the 32-byte private scalar, the only part of a
// KeyPair that needs to survive a save/load round trip — the public key
// and address are both re-derivable from it.
func (kp *KeyPair) PrivateKeyBytes() []byte {
	return kp.Private.Serialize()
}

// Address is the hex-encoded SHA-256 digest of a compressed public key.
func Address(compressedPubKey []byte) string {
	return HashHex(compressedPubKey)
}

// Sign produces an ECDSA signature over message (expected to be a 32-byte
// digest) using priv.
func Sign(priv *secp256k1.PrivateKey, message []byte) *ecdsa.Signature {
	return ecdsa.Sign(priv, message)
}

// Verify checks sig against pub and message.
func Verify(sig *ecdsa.Signature, pub *secp256k1.PublicKey, message []byte) bool {
	return sig.Verify(message, pub)
}

// ParsePubKey parses a compressed secp256k1 public key.
func ParsePubKey(b []byte) (*secp256k1.PublicKey, error) {
	return secp256k1.ParsePubKey(b)
}

// SerializeSignature returns the DER encoding of sig, the form stored on
// a TXInput.
func SerializeSignature(sig *ecdsa.Signature) []byte {
	return sig.Serialize()
}

// ParseSignature reverses SerializeSignature.
func ParseSignature(b []byte) (*ecdsa.Signature, error) {
	return ecdsa.ParseDERSignature(b)
}
