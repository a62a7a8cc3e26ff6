package chain

import "github.com/rluna-dev/utxochain/pkg/types"

// lcaWalk walks back from a and b in lockstep until their hashes
// coincide, returning that common ancestor together with the blocks
// strictly between each starting point and the ancestor, youngest-first.
func (c *Chain) lcaWalk(a, b *types.Block) (lca *types.Block, aChain, bChain []*types.Block) {
	for a.Hash != b.Hash {
		switch {
		case a.Index > b.Index:
			aChain = append(aChain, a)
			a = c.blocks[a.PreviousHash]
		case b.Index > a.Index:
			bChain = append(bChain, b)
			b = c.blocks[b.PreviousHash]
		default:
			aChain = append(aChain, a)
			bChain = append(bChain, b)
			a = c.blocks[a.PreviousHash]
			b = c.blocks[b.PreviousHash]
		}
	}
	return a, aChain, bChain
}

// revertChain reverts every transaction of every block in chain (given
// youngest-first), each block's own transactions reverted in reverse
// order, because a later transaction may have consumed an output produced
// by an earlier one in the same block.
func (c *Chain) revertChain(blocks []*types.Block) error {
	for _, blk := range blocks {
		for i := len(blk.Transactions) - 1; i >= 0; i-- {
			if err := c.utxo.Revert(&blk.Transactions[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// updateUTXOAndHead is called only when b is intended to become the new
// head (b.Index > current head.Index going in). It computes the least
// common ancestor of head and b, reverts the old branch, applies the new
// branch oldest-first, and commits head on full success. On a canSpend
// failure partway through the new branch it executes the documented
// failure-rollback protocol: unwind everything applied so far (including
// this call's own partial block), delete the invalid block and its
// candidate-branch descendants from blocks, re-apply the old branch to
// restore exactly the pre-call state, and return a *UTXOException. head is
// left unchanged in that case.
func (c *Chain) updateUTXOAndHead(b *types.Block) error {
	if b.Index != c.head.Index+1 {
		return newChainException("block %s does not directly overtake head (index %d, head index %d)", b.Hash, b.Index, c.head.Index)
	}

	_, oldChain, newChain := c.lcaWalk(c.head, b)

	if err := c.revertChain(oldChain); err != nil {
		return newChainException("internal error reverting old branch: %v", err)
	}

	// Apply phase: oldest-first, i.e. from the end of newChain (closest to
	// the LCA) toward index 0 (b itself).
	for i := len(newChain) - 1; i >= 0; i-- {
		blk := newChain[i]
		for j := range blk.Transactions {
			tx := &blk.Transactions[j]
			if ok, msg := c.utxo.CanSpend(tx); !ok {
				c.rollbackFailedReorg(newChain, i, j, oldChain)
				return newUTXOException("%s", msg)
			}
			c.utxo.Spend(tx)
		}
	}

	c.head = b
	return nil
}

// rollbackFailedReorg implements §4.5's failure-rollback protocol: revert
// the partially-applied current block in reverse, revert every
// already-applied earlier block of newChain in reverse, delete the
// invalid block and its candidate-branch descendants from blocks, and
// re-apply oldChain oldest-first to restore the pre-call state exactly.
func (c *Chain) rollbackFailedReorg(newChain []*types.Block, failedBlockIdx, failedTxIdx int, oldChain []*types.Block) {
	failedBlock := newChain[failedBlockIdx]
	for j := failedTxIdx - 1; j >= 0; j-- {
		_ = c.utxo.Revert(&failedBlock.Transactions[j])
	}

	for k := failedBlockIdx + 1; k < len(newChain); k++ {
		blk := newChain[k]
		for t := len(blk.Transactions) - 1; t >= 0; t-- {
			_ = c.utxo.Revert(&blk.Transactions[t])
		}
	}

	for k := 0; k <= failedBlockIdx; k++ {
		delete(c.blocks, newChain[k].Hash)
	}

	for i := len(oldChain) - 1; i >= 0; i-- {
		blk := oldChain[i]
		for j := range blk.Transactions {
			tx := &blk.Transactions[j]
			if ok, _ := c.utxo.CanSpend(tx); ok {
				c.utxo.Spend(tx)
			}
		}
	}
}

// switchTo moves head (and the UTXO state) from its current value to
// target, which must already be a known, previously-valid block — used
// only to undo a partially-applied AddBlocks batch back to the head it
// had before the batch began. Unlike updateUTXOAndHead this assumes the
// apply phase succeeds, since target's path was already proven valid.
func (c *Chain) switchTo(target *types.Block) error {
	_, oldChain, newChain := c.lcaWalk(c.head, target)

	if err := c.revertChain(oldChain); err != nil {
		return newChainException("internal error reverting branch during restore: %v", err)
	}

	for i := len(newChain) - 1; i >= 0; i-- {
		blk := newChain[i]
		for j := range blk.Transactions {
			tx := &blk.Transactions[j]
			if ok, msg := c.utxo.CanSpend(tx); !ok {
				return newChainException("internal error restoring prior head: %s", msg)
			}
			c.utxo.Spend(tx)
		}
	}

	c.head = target
	return nil
}
