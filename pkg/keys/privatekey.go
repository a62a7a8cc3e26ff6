// Package keys implements the engine's signing scheme: RSA-2048 keys,
// PKCS#1 v2.1 (PSS) signatures over SHA-256, and addresses derived from the
// DER encoding of a public key.
package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

const keyBits = 2048

// PrivateKey wraps an RSA private key used to authorize spends.
type PrivateKey struct {
	key *rsa.PrivateKey
}

// GeneratePrivateKey creates a fresh 2048-bit RSA key pair.
func GeneratePrivateKey() (*PrivateKey, error) {
	key, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return nil, fmt.Errorf("keys: generate RSA key: %w", err)
	}
	return &PrivateKey{key: key}, nil
}

// WrapPrivateKey adapts an already-generated RSA private key (e.g. one
// produced from a deterministic source, as pkg/chain/genesiskey does for
// the genesis address) into a PrivateKey.
func WrapPrivateKey(key *rsa.PrivateKey) *PrivateKey {
	return &PrivateKey{key: key}
}

// Public returns the public half of pk.
func (pk *PrivateKey) Public() *PublicKey {
	return &PublicKey{key: &pk.key.PublicKey}
}

// Sign produces a PKCS#1 v2.1 (PSS) signature over a precomputed SHA-256
// sighash digest, returned as hex-encoded bytes.
func (pk *PrivateKey) Sign(sighash [32]byte) (string, error) {
	return signPSS(pk.key, sighash)
}
