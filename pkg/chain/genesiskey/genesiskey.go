// Package genesiskey provides the fixed keypair behind the genesis
// block's hard-coded address. The original engine loads a DER public key
// from a file shipped alongside the binary; this port instead derives the
// same kind of fixed, reproducible keypair from a deterministic seed, so
// every build of the engine agrees on the genesis address without
// shipping a binary asset.
package genesiskey

import (
	"crypto/rsa"
	"fmt"
	"math/rand"
	"sync"

	"github.com/rluna-dev/utxochain/pkg/keys"
	"github.com/rluna-dev/utxochain/pkg/types"
)

// genesisSeed fixes the deterministic source used to derive the genesis
// keypair. It is not a security parameter — nothing of value is ever
// spent with this key outside demos and tests — only a reproducibility
// one.
const genesisSeed = 1514689482

var (
	once    sync.Once
	priv    *keys.PrivateKey
	initErr error
)

func initKey() {
	rsaKey, err := rsa.GenerateKey(rand.New(rand.NewSource(genesisSeed)), 2048)
	if err != nil {
		initErr = fmt.Errorf("genesiskey: generate deterministic key: %w", err)
		return
	}
	priv = keys.WrapPrivateKey(rsaKey)
}

// PrivateKey returns the fixed genesis private key, generated
// deterministically on first use.
func PrivateKey() (*keys.PrivateKey, error) {
	once.Do(initKey)
	return priv, initErr
}

// Address returns the genesis address: the hex-encoded DER public key
// matching PrivateKey().
func Address() (types.Address, error) {
	pk, err := PrivateKey()
	if err != nil {
		return "", err
	}
	return pk.Public().Address()
}
