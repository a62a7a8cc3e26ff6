// Package txbuilder assembles and signs transactions. It is a thin
// convenience layer over pkg/types, pkg/serialization, and pkg/keys,
// grounded on the original engine's createTransaction helper: build every
// output first, then sign each input's sighash over the complete output
// list, which is exactly the binding property the sighash formula (§4.1)
// exists to enforce.
package txbuilder

import (
	"fmt"

	"github.com/rluna-dev/utxochain/pkg/keys"
	"github.com/rluna-dev/utxochain/pkg/serialization"
	"github.com/rluna-dev/utxochain/pkg/types"
)

// InputSpec names a prior output to spend and the key authorized to spend
// it.
type InputSpec struct {
	ReferencedHash        string
	ReferencedOutputIndex int
	SigningKey            *keys.PrivateKey
}

// OutputSpec is a destination address and amount for a new output.
type OutputSpec struct {
	Address types.Address
	Amount  int64
}

// Build assembles a transaction from inputSpecs and outputSpecs at the
// given timestamp, signing every input's sighash with its SigningKey, and
// computes the resulting transaction hash.
func Build(timestamp float64, inputSpecs []InputSpec, outputSpecs []OutputSpec) (*types.Transaction, error) {
	outputs := make([]types.TransactionOutput, len(outputSpecs))
	for i, o := range outputSpecs {
		outputs[i] = types.TransactionOutput{Amount: o.Amount, Address: o.Address}
	}

	inputs := make([]types.TransactionInput, len(inputSpecs))
	for i, in := range inputSpecs {
		sighash := serialization.SigHash(in.ReferencedHash, in.ReferencedOutputIndex, outputs)
		sig, err := in.SigningKey.Sign(sighash)
		if err != nil {
			return nil, fmt.Errorf("txbuilder: sign input %d: %w", i, err)
		}
		inputs[i] = types.TransactionInput{
			ReferencedHash:        in.ReferencedHash,
			ReferencedOutputIndex: in.ReferencedOutputIndex,
			Signature:             sig,
		}
	}

	tx := &types.Transaction{
		Inputs:    inputs,
		Outputs:   outputs,
		Timestamp: timestamp,
	}
	tx.Hash = serialization.HashTransaction(tx)
	return tx, nil
}

// BuildCoinbase assembles a zero-input coinbase transaction minting
// amount to address at the given timestamp.
func BuildCoinbase(timestamp float64, address types.Address, amount int64) *types.Transaction {
	tx := &types.Transaction{
		Outputs:   []types.TransactionOutput{{Amount: amount, Address: address}},
		Timestamp: timestamp,
	}
	tx.Hash = serialization.HashTransaction(tx)
	return tx
}
