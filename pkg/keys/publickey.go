package keys

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/hex"
	"fmt"

	"github.com/rluna-dev/utxochain/pkg/types"
)

// PublicKey wraps an RSA public key and derives the address that
// identifies it on the ledger.
type PublicKey struct {
	key *rsa.PublicKey
}

// Address returns the hex-encoded DER (PKIX) form of the public key; this
// is the value carried as a TransactionOutput's Address.
func (pub *PublicKey) Address() (types.Address, error) {
	der, err := x509.MarshalPKIXPublicKey(pub.key)
	if err != nil {
		return "", fmt.Errorf("keys: marshal public key: %w", err)
	}
	return types.Address(hex.EncodeToString(der)), nil
}

// PublicKeyFromAddress parses the hex-encoded DER public key carried by an
// address back into a usable PublicKey, for signature verification.
func PublicKeyFromAddress(addr types.Address) (*PublicKey, error) {
	der, err := hex.DecodeString(string(addr))
	if err != nil {
		return nil, fmt.Errorf("keys: address is not valid hex: %w", err)
	}
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("keys: address is not a valid DER public key: %w", err)
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("keys: address does not encode an RSA public key")
	}
	return &PublicKey{key: rsaPub}, nil
}

// Verify checks that signature (hex-encoded) is a valid PSS/SHA-256
// signature over a precomputed sighash digest produced by the private key
// matching pub.
func (pub *PublicKey) Verify(sighash [32]byte, signature string) error {
	return verifyPSS(pub.key, sighash, signature)
}
