package validation

import (
	"fmt"

	"github.com/rluna-dev/utxochain/pkg/serialization"
	"github.com/rluna-dev/utxochain/pkg/types"
)

type outpoint struct {
	hash  string
	index int
}

// VerifyTransactionsSyntax performs the stateless structural checks a
// block's transaction list must pass before any transaction is evaluated
// against the UTXO set: hash integrity, duplicate and coinbase shape
// rules, cross-transaction reference uniqueness, and output minimums.
// Signature validity and balance are deliberately not checked here; that
// happens in the UTXO manager at application time.
func VerifyTransactionsSyntax(txs []types.Transaction) (bool, string) {
	if len(txs) == 0 {
		return false, "Block must contain at least one transaction."
	}
	if len(txs) > MaxTransactionsPerBlock {
		return false, fmt.Sprintf("Block contains more than %d transactions.", MaxTransactionsPerBlock)
	}

	seenHashes := make(map[string]bool, len(txs))
	seenRefs := make(map[outpoint]bool)
	coinbaseCount := 0

	for i := range txs {
		tx := &txs[i]

		if want := serialization.HashTransaction(tx); tx.Hash != want {
			return false, fmt.Sprintf("Transaction hash is invalid: got %s, want %s", tx.Hash, want)
		}
		if seenHashes[tx.Hash] {
			return false, fmt.Sprintf("Duplicate transaction %s in block.", tx.Hash)
		}
		seenHashes[tx.Hash] = true

		if len(tx.Inputs) == 0 {
			coinbaseCount++
			if len(tx.Outputs) == 0 {
				return false, "Transaction has no inputs and no outputs."
			}
			if len(tx.Outputs) != 1 {
				return false, "Coinbase must have exactly one output."
			}
			if tx.Outputs[0].Amount > CoinbaseReward {
				return false, "Coinbase reward is too large."
			}
		}

		for _, in := range tx.Inputs {
			ref := outpoint{hash: in.ReferencedHash, index: in.ReferencedOutputIndex}
			if seenRefs[ref] {
				return false, fmt.Sprintf("Duplicate reference to (%s, %d) within block.", ref.hash, ref.index)
			}
			seenRefs[ref] = true
		}

		for _, out := range tx.Outputs {
			if out.Amount < MinTransactionAmount {
				return false, fmt.Sprintf("Output amount %d is below the minimum transaction amount.", out.Amount)
			}
		}
	}

	if coinbaseCount > 1 {
		return false, "Block has more than one coinbase."
	}
	if coinbaseCount == 1 && len(txs) == 1 {
		return false, "Transactions only have one coinbase."
	}

	return true, ""
}
