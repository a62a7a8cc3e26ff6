// Package chain implements the Chain: the set of all accepted blocks, the
// current active-branch head, and the orchestration of extend/fork/reorg
// semantics against a UTXO manager. It is the component that ties block
// linkage validation, transaction syntax validation, and UTXO application
// together with full atomic rollback on failure.
//
// A Chain is single-threaded cooperative: AddBlock and AddBlocks are
// synchronous and non-suspending, and a Chain's exported methods hold an
// internal mutex for the duration of the call so an embedding that shares
// one Chain across goroutines gets the serialization the spec requires
// without needing its own lock.
package chain

import (
	"sync"

	"github.com/rluna-dev/utxochain/pkg/monitoring"
	"github.com/rluna-dev/utxochain/pkg/types"
	"github.com/rluna-dev/utxochain/pkg/utxo"
	"github.com/rluna-dev/utxochain/pkg/validation"
)

// Chain stores every accepted block keyed by hash, tracks the head of the
// active branch, and keeps a UTXO manager reflecting the state produced
// by replaying, from genesis, every transaction on the path to head.
type Chain struct {
	mu     sync.Mutex
	blocks map[string]*types.Block
	head   *types.Block
	utxo   *utxo.Manager
	log    *monitoring.Logger
}

// NewChain constructs a Chain rooted at genesis, applying genesis's
// coinbase transaction(s) to a fresh UTXO manager and setting head to
// genesis. Genesis is trusted, hard-coded input and is not run through
// VerifyTransactionsSyntax: that check rejects a block whose only
// transaction is a coinbase, which is exactly genesis's shape.
func NewChain(genesis *types.Block) (*Chain, error) {
	c := &Chain{
		blocks: make(map[string]*types.Block),
		utxo:   utxo.NewManager(),
		log:    monitoring.Default(),
	}

	for i := range genesis.Transactions {
		tx := &genesis.Transactions[i]
		c.utxo.Spend(tx)
	}
	c.blocks[genesis.Hash] = genesis
	c.head = genesis
	return c, nil
}

// WithLogger returns c configured to log through logger instead of the
// package default.
func (c *Chain) WithLogger(logger *monitoring.Logger) *Chain {
	c.log = logger
	return c
}

// Head returns the current active-branch tip.
func (c *Chain) Head() *types.Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.head
}

// UTXO returns the manager reflecting state along genesis→head. Callers
// must not mutate the chain concurrently with reads against it outside
// the Chain's own lock; UTXO's own methods are independently safe for
// concurrent reads.
func (c *Chain) UTXO() *utxo.Manager {
	return c.utxo
}

// Block looks up an accepted block by hash, from any branch.
func (c *Chain) Block(hash string) (*types.Block, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.blocks[hash]
	return b, ok
}

// Size returns the number of accepted blocks across all branches.
func (c *Chain) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.blocks)
}

// AllBlocks returns a shallow copy of every accepted block across all
// branches, keyed by hash. Intended for export/introspection (pkg/storage,
// the CLI's demo command), not for hot-path use.
func (c *Chain) AllBlocks() map[string]*types.Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]*types.Block, len(c.blocks))
	for h, b := range c.blocks {
		out[h] = b
	}
	return out
}

// AddBlock validates and inserts a single block, following §4.5: a
// duplicate hash is rejected, a missing parent is rejected, link/PoW/
// syntax failures are rejected, and — only if the new block's index
// exceeds the current head's — the UTXO state and head are switched to
// it, with full rollback if any of its transactions fail to apply.
func (c *Chain) AddBlock(b *types.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addBlockLocked(b)
}

func (c *Chain) addBlockLocked(b *types.Block) error {
	if _, ok := c.blocks[b.Hash]; ok {
		return newDuplicateBlockException("block %s is already known", b.Hash)
	}

	parent, ok := c.blocks[b.PreviousHash]
	if !ok {
		return newNoParentException("no known parent %s for block %s", b.PreviousHash, b.Hash)
	}

	if ok, msg := validation.VerifyNextBlock(parent, b); !ok {
		return newChainException("%s", msg)
	}

	c.blocks[b.Hash] = b

	if b.Index <= c.head.Index {
		if c.log != nil {
			c.log.Infof("accepted side branch block %d (%s); head unchanged", b.Index, b.Hash)
		}
		return nil
	}

	if err := c.updateUTXOAndHead(b); err != nil {
		return err
	}
	if c.log != nil {
		c.log.Infof("head advanced to block %d (%s)", b.Index, b.Hash)
	}
	return nil
}

// AddBlocks applies AddBlock to each element of blocks in order. On the
// first failure, every block inserted earlier in this call is removed
// from blocks and, if head moved during the call, both head and the UTXO
// state are restored to their value before the call — a full transaction,
// not merely a deletion of inserted hashes.
func (c *Chain) AddBlocks(blocks []types.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	priorHead := c.head
	inserted := make([]string, 0, len(blocks))

	for i := range blocks {
		b := &blocks[i]
		if err := c.addBlockLocked(b); err != nil {
			// Restore head (walking c.blocks via switchTo's lcaWalk) before
			// deleting any inserted hash: lcaWalk walks backward through
			// c.blocks[previousHash], which for this batch runs straight
			// through the blocks about to be deleted.
			if c.head.Hash != priorHead.Hash {
				if rerr := c.switchTo(priorHead); rerr != nil {
					// The prior head was reached validly before this call;
					// failing to restore it means an invariant was broken
					// elsewhere. Surface it rather than hide a corrupt state.
					return newChainException("addBlocks: failed to restore prior head: %v (original error: %v)", rerr, err)
				}
			}
			for _, h := range inserted {
				delete(c.blocks, h)
			}
			return err
		}
		inserted = append(inserted, b.Hash)
	}
	return nil
}

// Ancestors returns up to n blocks walking back from hash toward genesis,
// youngest-first, not including hash itself. n < 0 means unbounded (walk
// all the way to genesis). This mirrors the ancestor walk the original
// SimpleCoin chain exposed for branch inspection.
func (c *Chain) Ancestors(hash string, n int) []*types.Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	var result []*types.Block
	cur, ok := c.blocks[hash]
	if !ok {
		return nil
	}
	for cur.PreviousHash != "" && (n < 0 || len(result) < n) {
		parent, ok := c.blocks[cur.PreviousHash]
		if !ok {
			break
		}
		result = append(result, parent)
		cur = parent
	}
	return result
}

// Descendants returns every block in blocks whose previousHash is hash,
// i.e. parent's immediate children across all branches.
func (c *Chain) Descendants(hash string) []*types.Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	var children []*types.Block
	for _, b := range c.blocks {
		if b.PreviousHash == hash {
			children = append(children, b)
		}
	}
	return children
}
