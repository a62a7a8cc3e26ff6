package types

// Block is a cryptographically linked unit of the chain: an index, a
// timestamp, an ordered transaction list, a nonce satisfying the
// proof-of-work predicate, the previous block's hash, and its own derived
// hash.
type Block struct {
	Hash         string        `json:"hash"`
	Index        int           `json:"index"`
	Timestamp    float64       `json:"timestamp"`
	Nonce        int64         `json:"nonce"`
	PreviousHash string        `json:"previousHash"`
	Transactions []Transaction `json:"transactions"`
}

// IsGenesis reports whether b is the chain's origin block.
func (b *Block) IsGenesis() bool {
	return b.Index == 0 && b.PreviousHash == ""
}
