// Package crypto provides the single-SHA-256 hashing primitive and the
// proof-of-work predicate used throughout the ledger. It does not know
// about transactions or blocks; pkg/serialization builds the textual
// preimages this package hashes.
package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash256 returns the lowercase hex-encoded SHA-256 digest of data,
// matching the "single SHA256 over UTF-8 bytes" rule used for every hash
// in this engine (transactions, blocks, sighashes).
func Hash256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HasProofOfWork reports whether the first difficulty hex characters of
// hash are all '0'. hash is expected to already be lowercase hex.
func HasProofOfWork(hash string, difficulty int) bool {
	if len(hash) < difficulty {
		return false
	}
	for i := 0; i < difficulty; i++ {
		if hash[i] != '0' {
			return false
		}
	}
	return true
}
