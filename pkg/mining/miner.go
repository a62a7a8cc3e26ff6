// Package mining implements the nonce-search routine that turns a parent
// block and a transaction list into a proof-of-work-satisfying successor.
// The outer mining loop (scheduling, cancellation, transaction selection)
// is outside this package's scope; callers run GenerateNextBlock to
// completion.
package mining

import (
	"time"

	"github.com/rluna-dev/utxochain/pkg/crypto"
	"github.com/rluna-dev/utxochain/pkg/monitoring"
	"github.com/rluna-dev/utxochain/pkg/serialization"
	"github.com/rluna-dev/utxochain/pkg/types"
	"github.com/rluna-dev/utxochain/pkg/validation"
)

// Miner searches nonces for candidate blocks. Its zero value is usable; a
// Logger may optionally be attached with WithLogger.
type Miner struct {
	log *monitoring.Logger
}

// New returns a Miner that logs to the package default logger.
func New() *Miner {
	return &Miner{log: monitoring.Default()}
}

// WithLogger returns a copy of m logging through logger instead.
func (m *Miner) WithLogger(logger *monitoring.Logger) *Miner {
	return &Miner{log: logger}
}

// GenerateNextBlock searches for a nonce such that the block built from
// parent, transactions, the current wall-clock timestamp, and that nonce
// satisfies proof of work. There is no iteration bound; the caller blocks
// until a solution is found.
func (m *Miner) GenerateNextBlock(parent *types.Block, transactions []types.Transaction) *types.Block {
	b := &types.Block{
		Index:        parent.Index + 1,
		Timestamp:    nowSeconds(),
		Transactions: transactions,
		PreviousHash: parent.Hash,
	}

	for nonce := int64(0); ; nonce++ {
		b.Nonce = nonce
		hash := serialization.HashBlock(b)
		if crypto.HasProofOfWork(hash, validation.Difficulty) {
			b.Hash = hash
			if m.log != nil {
				m.log.Infof("mined block %d after %d nonces: %s", b.Index, nonce+1, hash)
			}
			return b
		}
	}
}

// nowSeconds returns the current time as floating-point seconds, the
// timestamp representation used throughout the canonical hash preimages.
func nowSeconds() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}
