package serialization

import (
	"encoding/json"
	"fmt"

	"github.com/rluna-dev/utxochain/pkg/types"
)

// BlockException signals that a serialized block (or one of its
// transactions) failed to decode into a well-formed, internally
// consistent block.
type BlockException struct {
	Message string
}

func (e *BlockException) Error() string { return e.Message }

func newBlockException(format string, args ...any) *BlockException {
	return &BlockException{Message: fmt.Sprintf(format, args...)}
}

// EncodeBlock renders b as the JSON wire format described in the external
// interfaces: hash, index, timestamp, nonce, previousHash, and a
// transactions array each carrying its own hash, timestamp, inputs, and
// outputs.
func EncodeBlock(b *types.Block) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("serialization: encode block: %w", err)
	}
	return data, nil
}

// DecodeBlock parses the JSON wire format into a Block, recomputing every
// transaction hash and the block hash and rejecting with a
// *BlockException on any mismatch. This is the only path by which a block
// received from outside the process may be trusted.
func DecodeBlock(data []byte) (*types.Block, error) {
	var b types.Block
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, newBlockException("malformed block JSON: %v", err)
	}
	for i := range b.Transactions {
		tx := &b.Transactions[i]
		want := HashTransaction(tx)
		if tx.Hash != want {
			return nil, newBlockException("serialized transaction hash is invalid: got %s, want %s", tx.Hash, want)
		}
	}
	want := HashBlock(&b)
	if b.Hash != want {
		return nil, newBlockException("serialized block hash is invalid: got %s, want %s", b.Hash, want)
	}
	return &b, nil
}
