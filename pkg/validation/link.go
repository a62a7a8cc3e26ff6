package validation

import (
	"fmt"

	"github.com/rluna-dev/utxochain/pkg/crypto"
	"github.com/rluna-dev/utxochain/pkg/serialization"
	"github.com/rluna-dev/utxochain/pkg/types"
)

// VerifyNextBlock checks that next is a syntactically valid, correctly
// linked, proof-of-work-satisfying successor of prev. It does not touch
// the UTXO set.
func VerifyNextBlock(prev, next *types.Block) (bool, string) {
	if next.Index != prev.Index+1 {
		return false, fmt.Sprintf("Block index %d does not follow parent index %d.", next.Index, prev.Index)
	}
	if next.PreviousHash != prev.Hash {
		return false, "Block's previousHash does not match parent's hash."
	}
	if want := serialization.HashBlock(next); next.Hash != want {
		return false, fmt.Sprintf("Block hash is invalid: got %s, want %s", next.Hash, want)
	}
	if !crypto.HasProofOfWork(next.Hash, Difficulty) {
		return false, "Block does not satisfy proof of work."
	}
	return VerifyTransactionsSyntax(next.Transactions)
}
