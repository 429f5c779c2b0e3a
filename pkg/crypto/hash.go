// Package crypto provides the hashing and signing primitives used by firepit.
package crypto

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// HashSize is the length of a hash in bytes.
const HashSize = 32

// Hash is a BLAKE3-256 digest.
type Hash [HashSize]byte

// Sum computes a BLAKE3-256 hash of the input data.
func Sum(data []byte) Hash {
	return blake3.Sum256(data)
}

// SumConcat hashes the concatenation of the given hashes.
// Used to derive atomic group IDs from member transaction IDs.
func SumConcat(hashes ...Hash) Hash {
	buf := make([]byte, 0, len(hashes)*HashSize)
	for _, h := range hashes {
		buf = append(buf, h[:]...)
	}
	return Sum(buf)
}

// IsZero returns true if the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String returns the hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
