// Package serialization builds the canonical textual preimages that
// pkg/crypto hashes, and the JSON wire encoding used to exchange blocks.
package serialization

import (
	"crypto/sha256"
	"strconv"
	"strings"

	"github.com/rluna-dev/utxochain/pkg/crypto"
	"github.com/rluna-dev/utxochain/pkg/types"
)

// formatTimestamp renders a timestamp as the shortest decimal
// representation that round-trips, without scientific notation, so every
// caller hashing the same timestamp produces the same bytes.
func formatTimestamp(ts float64) string {
	return strconv.FormatFloat(ts, 'f', -1, 64)
}

// SerializeInput is the no-separator concatenation of an input's
// referenced hash, decimal output index, and hex signature.
func SerializeInput(in types.TransactionInput) string {
	return in.ReferencedHash + strconv.Itoa(in.ReferencedOutputIndex) + in.Signature
}

// SerializeOutput is the no-separator concatenation of an output's decimal
// amount and hex address.
func SerializeOutput(out types.TransactionOutput) string {
	return strconv.FormatInt(out.Amount, 10) + string(out.Address)
}

func serializeInputs(inputs []types.TransactionInput) string {
	parts := make([]string, len(inputs))
	for i, in := range inputs {
		parts[i] = SerializeInput(in)
	}
	return strings.Join(parts, " ")
}

func serializeOutputs(outputs []types.TransactionOutput) string {
	parts := make([]string, len(outputs))
	for i, out := range outputs {
		parts[i] = SerializeOutput(out)
	}
	return strings.Join(parts, " ")
}

// HashTransaction computes a transaction's hash from its inputs, outputs,
// and timestamp: SHA256(inputs joined by " " + "-" + outputs joined by " "
// + "-" + decimal timestamp).
func HashTransaction(tx *types.Transaction) string {
	preimage := serializeInputs(tx.Inputs) + "-" + serializeOutputs(tx.Outputs) + "-" + formatTimestamp(tx.Timestamp)
	return crypto.Hash256([]byte(preimage))
}

// HashBlock computes a block's hash from its index, timestamp, the
// concatenation of its transaction hashes, its nonce, and its previous
// hash.
func HashBlock(b *types.Block) string {
	var combined strings.Builder
	for _, tx := range b.Transactions {
		combined.WriteString(tx.Hash)
	}
	preimage := strconv.Itoa(b.Index) + formatTimestamp(b.Timestamp) + combined.String() +
		strconv.FormatInt(b.Nonce, 10) + b.PreviousHash
	return crypto.Hash256([]byte(preimage))
}

// SigHash computes the digest an input's signature must cover: the SHA-256
// hash of the referenced output's hash and index, bound to the full output
// list of the spending transaction. The returned 32 bytes are what gets
// signed directly (PSS over an already-computed digest), not re-hashed.
func SigHash(referencedHash string, referencedOutputIndex int, spendingOutputs []types.TransactionOutput) [32]byte {
	preimage := referencedHash + strconv.Itoa(referencedOutputIndex) + serializeOutputs(spendingOutputs)
	return sha256.Sum256([]byte(preimage))
}
