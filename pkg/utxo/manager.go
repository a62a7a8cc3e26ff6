// Package utxo implements the unspent-transaction-output ledger: for each
// transaction that still has unspent outputs, the transaction itself and
// the set of output indices not yet consumed.
package utxo

import (
	"fmt"
	"sync"

	"github.com/rluna-dev/utxochain/pkg/keys"
	"github.com/rluna-dev/utxochain/pkg/serialization"
	"github.com/rluna-dev/utxochain/pkg/types"
)

type entry struct {
	tx      *types.Transaction
	unspent map[int]bool
}

// Manager is the mutable UTXO set: a map from transaction hash to the
// transaction and its still-unspent output indices. It is safe for
// concurrent use; callers that need multi-step atomicity (Chain's reorg
// logic) still serialize around it externally.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewManager returns an empty UTXO manager.
func NewManager() *Manager {
	return &Manager{entries: make(map[string]*entry)}
}

// CanSpend reports whether tx may be applied against the current UTXO
// state without mutating it: every input must reference a still-unspent
// output, carry a valid signature over that output's address, and (unless
// tx is a coinbase) the summed input amounts must equal the summed output
// amounts. On rejection it returns false and a human-readable reason.
func (m *Manager) CanSpend(tx *types.Transaction) (bool, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	isCoinbase := tx.IsCoinbase()
	var inputAmounts int64

	for _, in := range tx.Inputs {
		ref, ok := m.entries[in.ReferencedHash]
		if !ok || !ref.unspent[in.ReferencedOutputIndex] {
			return false, "Referenced UTXO does not exist."
		}
		if in.ReferencedOutputIndex < 0 || in.ReferencedOutputIndex >= len(ref.tx.Outputs) {
			return false, "Referenced UTXO does not exist."
		}
		refOutput := ref.tx.Outputs[in.ReferencedOutputIndex]

		pub, err := keys.PublicKeyFromAddress(refOutput.Address)
		if err != nil {
			return false, err.Error()
		}
		sighash := serialization.SigHash(in.ReferencedHash, in.ReferencedOutputIndex, tx.Outputs)
		if err := pub.Verify(sighash, in.Signature); err != nil {
			return false, err.Error()
		}

		inputAmounts += refOutput.Amount
	}

	var outputAmounts int64
	for _, out := range tx.Outputs {
		outputAmounts += out.Amount
	}

	if !isCoinbase && inputAmounts != outputAmounts {
		return false, "Input amounts to do not match output amounts"
	}
	return true, ""
}

// Spend applies tx, assuming the caller already validated it with
// CanSpend. For every input, the referenced output index is removed from
// its transaction's unspent set (the entry itself is retained even if the
// set becomes empty, so Revert can restore it); a new entry is then
// created for tx with every output index unspent.
func (m *Manager) Spend(tx *types.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, in := range tx.Inputs {
		ref := m.entries[in.ReferencedHash]
		delete(ref.unspent, in.ReferencedOutputIndex)
	}

	unspent := make(map[int]bool, len(tx.Outputs))
	for i := range tx.Outputs {
		unspent[i] = true
	}
	m.entries[tx.Hash] = &entry{tx: tx, unspent: unspent}
}

// Revert is the inverse of Spend. It requires tx's entry to still exist
// with a full unspent set (nothing consumed downstream); it restores each
// input's referenced output index to unspent and deletes tx's own entry.
func (m *Manager) Revert(tx *types.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[tx.Hash]
	if !ok {
		return fmt.Errorf("utxo: cannot revert %s: no such entry", tx.Hash)
	}
	if len(e.unspent) != len(tx.Outputs) {
		return fmt.Errorf("utxo: cannot revert %s: outputs have been spent downstream", tx.Hash)
	}

	for _, in := range tx.Inputs {
		ref, ok := m.entries[in.ReferencedHash]
		if !ok {
			return fmt.Errorf("utxo: cannot revert %s: referenced entry %s missing", tx.Hash, in.ReferencedHash)
		}
		if ref.unspent[in.ReferencedOutputIndex] {
			return fmt.Errorf("utxo: cannot revert %s: output %d of %s already unspent (double revert)", tx.Hash, in.ReferencedOutputIndex, in.ReferencedHash)
		}
		ref.unspent[in.ReferencedOutputIndex] = true
	}

	delete(m.entries, tx.Hash)
	return nil
}

// UnspentOutputCount returns the number of still-unspent output indices
// tracked for txHash, or 0 if the transaction has no entry.
func (m *Manager) UnspentOutputCount(txHash string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[txHash]
	if !ok {
		return 0
	}
	return len(e.unspent)
}

// Size returns the number of transaction entries held, including entries
// whose outputs have all been spent (Spend retains those).
func (m *Manager) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Snapshot is a point-in-time, serialization-friendly view of one UTXO
// entry.
type Snapshot struct {
	Transaction types.Transaction
	Unspent     []int
}

// Entries returns a snapshot of every tracked entry, keyed by transaction
// hash. Each Unspent list is a fresh copy; each Transaction is a copy of
// the struct that still shares its Inputs and Outputs slices with the
// manager. Intended for export/introspection (pkg/storage, debugging CLI
// output), not for hot-path use.
func (m *Manager) Entries() map[string]Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]Snapshot, len(m.entries))
	for hash, e := range m.entries {
		unspent := make([]int, 0, len(e.unspent))
		for idx := range e.unspent {
			unspent = append(unspent, idx)
		}
		out[hash] = Snapshot{Transaction: *e.tx, Unspent: unspent}
	}
	return out
}

// TotalUnspentValue sums the amount of every still-unspent output across
// the entire UTXO set; useful for sanity-checking supply invariants in
// tests and the CLI.
func (m *Manager) TotalUnspentValue() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total int64
	for _, e := range m.entries {
		for idx := range e.unspent {
			total += e.tx.Outputs[idx].Amount
		}
	}
	return total
}
