// Package validation implements the stateless, signature-free checks that
// gate a block before its transactions are ever handed to the UTXO
// manager: block linkage and proof-of-work (VerifyNextBlock) and
// per-block transaction-list structure (VerifyTransactionsSyntax).
package validation

// Difficulty is the fixed number of leading hex zeros a block hash must
// have to satisfy proof-of-work. There is no dynamic adjustment.
const Difficulty = 1

// MinTransactionAmount is the smallest amount a transaction output may
// carry.
const MinTransactionAmount int64 = 1

// CoinbaseReward is the maximum amount a block's coinbase output may mint.
const CoinbaseReward int64 = 1000

// MaxTransactionsPerBlock is the inclusive upper bound on the number of
// transactions a block may carry.
const MaxTransactionsPerBlock = 100
