// Package mempool implements a minimal pending-transaction pool: a place
// for a miner to pull transactions from before building a block. It is
// not a fee market — admission is FIFO, there is no fee-rate ranking or
// eviction policy, matching this engine's deliberately simple economics.
package mempool

import (
	"fmt"
	"sync"

	"github.com/rluna-dev/utxochain/pkg/monitoring"
	"github.com/rluna-dev/utxochain/pkg/types"
	"github.com/rluna-dev/utxochain/pkg/utxo"
)

// Pool holds transactions admitted but not yet mined into a block.
type Pool struct {
	mu      sync.Mutex
	order   []string
	byHash  map[string]types.Transaction
	utxo    *utxo.Manager
	log     *monitoring.Logger
}

// New returns an empty pool that checks admitted transactions against
// utxoManager's current state.
func New(utxoManager *utxo.Manager) *Pool {
	return &Pool{
		byHash: make(map[string]types.Transaction),
		utxo:   utxoManager,
		log:    monitoring.Default(),
	}
}

// WithLogger returns p configured to log through logger instead of the
// package default.
func (p *Pool) WithLogger(logger *monitoring.Logger) *Pool {
	p.log = logger
	return p
}

// Add admits tx if it is not already pending and currently spendable
// against the pool's UTXO view. It does not mutate the UTXO; a
// transaction accepted here may still be rejected later if a
// concurrently-mined block consumes the same inputs first.
func (p *Pool) Add(tx types.Transaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.byHash[tx.Hash]; exists {
		return fmt.Errorf("mempool: transaction %s already pending", tx.Hash)
	}
	if ok, msg := p.utxo.CanSpend(&tx); !ok {
		return fmt.Errorf("mempool: transaction %s rejected: %s", tx.Hash, msg)
	}

	p.byHash[tx.Hash] = tx
	p.order = append(p.order, tx.Hash)
	if p.log != nil {
		p.log.Infof("admitted transaction %s to mempool (%d pending)", tx.Hash, len(p.order))
	}
	return nil
}

// Take returns up to max pending transactions in FIFO admission order and
// removes them from the pool, ready to be handed to a miner. max <= 0
// means return everything pending.
func (p *Pool) Take(max int) []types.Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.order)
	if max > 0 && max < n {
		n = max
	}
	selected := make([]types.Transaction, 0, n)
	for _, h := range p.order[:n] {
		selected = append(selected, p.byHash[h])
		delete(p.byHash, h)
	}
	p.order = p.order[n:]
	return selected
}

// Remove discards a pending transaction by hash, e.g. because it was
// mined into a block by another path.
func (p *Pool) Remove(hash string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.byHash[hash]; !ok {
		return
	}
	delete(p.byHash, hash)
	for i, h := range p.order {
		if h == hash {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Size returns the number of pending transactions.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.order)
}
