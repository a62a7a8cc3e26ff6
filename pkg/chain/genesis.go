package chain

import (
	"github.com/rluna-dev/utxochain/pkg/chain/genesiskey"
	"github.com/rluna-dev/utxochain/pkg/serialization"
	"github.com/rluna-dev/utxochain/pkg/types"
)

// GenesisTimestamp and GenesisAmount are the fixed values baked into the
// origin block: a single coinbase output crediting a hard-coded address.
const (
	GenesisTimestamp = 1514689482.0
	GenesisAmount    = 1000
)

// NewGenesisBlock builds the deterministic origin block crediting amount
// GenesisAmount to address. Index is 0, previousHash is empty, and nonce
// is 0 — the genesis block is exempt from proof of work, matching the
// fixed, out-of-band trust placed in it by every chain built on top.
func NewGenesisBlock(address types.Address) *types.Block {
	tx := types.Transaction{
		Inputs:    nil,
		Outputs:   []types.TransactionOutput{{Amount: GenesisAmount, Address: address}},
		Timestamp: GenesisTimestamp,
	}
	tx.Hash = serialization.HashTransaction(&tx)

	b := &types.Block{
		Index:        0,
		Timestamp:    GenesisTimestamp,
		Transactions: []types.Transaction{tx},
		Nonce:        0,
		PreviousHash: "",
	}
	b.Hash = serialization.HashBlock(b)
	return b
}

// DefaultGenesisBlock builds the genesis block crediting the engine's
// fixed, deterministically-derived genesis address (see
// pkg/chain/genesiskey).
func DefaultGenesisBlock() (*types.Block, error) {
	addr, err := genesiskey.Address()
	if err != nil {
		return nil, err
	}
	return NewGenesisBlock(addr), nil
}
