package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Domain-specific hash types
type (
	DatasetFingerprint Hash
)

func (f DatasetFingerprint) String() string { return Hash(f).String() }
func (f DatasetFingerprint) IsEmpty() bool  { return Hash(f).IsEmpty() }

// HashFloats produces a deterministic hash over a float sequence.
// Values are encoded as IEEE 754 bits so the hash is exact, not
// subject to formatting precision.
func HashFloats(series ...[]float64) Hash {
	hasher := sha256.New()
	buf := make([]byte, 8)
	for i, s := range series {
		binary.BigEndian.PutUint64(buf, uint64(i))
		hasher.Write(buf)
		for _, v := range s {
			binary.BigEndian.PutUint64(buf, math.Float64bits(v))
			hasher.Write(buf)
		}
	}
	return Hash(hex.EncodeToString(hasher.Sum(nil)))
}
