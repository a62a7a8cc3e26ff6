package keys

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"encoding/hex"
	"fmt"
)

// signPSS signs an already-computed SHA-256 digest under key using
// RSA-PSS. The caller (pkg/serialization.SigHash) is responsible for
// hashing the actual message; PSS is applied directly to that digest, the
// same two-step split PyCryptodome's PKCS1_PSS.sign(SHA256.new(msg)) makes.
func signPSS(key *rsa.PrivateKey, digest [32]byte) (string, error) {
	sig, err := rsa.SignPSS(rand.Reader, key, crypto.SHA256, digest[:], nil)
	if err != nil {
		return "", fmt.Errorf("keys: sign: %w", err)
	}
	return hex.EncodeToString(sig), nil
}

// verifyPSS verifies a hex-encoded RSA-PSS signature over an
// already-computed SHA-256 digest under key.
func verifyPSS(key *rsa.PublicKey, digest [32]byte, signatureHex string) error {
	sig, err := hex.DecodeString(signatureHex)
	if err != nil {
		return fmt.Errorf("keys: signature is not valid hex: %w", err)
	}
	if err := rsa.VerifyPSS(key, crypto.SHA256, digest[:], sig, nil); err != nil {
		return fmt.Errorf("keys: signature verification failed: %w", err)
	}
	return nil
}
