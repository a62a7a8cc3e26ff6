package chain

import "fmt"

// ChainException signals a link violation (bad index, previousHash, hash,
// or proof of work) or a structural violation in a block's transaction
// list. The offending block is never inserted as a result of this error.
type ChainException struct {
	Message string
}

func (e *ChainException) Error() string { return e.Message }

func newChainException(format string, args ...any) *ChainException {
	return &ChainException{Message: fmt.Sprintf(format, args...)}
}

// NoParentException signals that a block's previousHash does not match
// any block currently known to the chain.
type NoParentException struct {
	*ChainException
}

func newNoParentException(format string, args ...any) *NoParentException {
	return &NoParentException{ChainException: newChainException(format, args...)}
}

// Unwrap exposes the embedded *ChainException to errors.Is and errors.As.
func (e *NoParentException) Unwrap() error { return e.ChainException }

// DuplicateBlockException signals that a block with the same hash has
// already been accepted.
type DuplicateBlockException struct {
	*ChainException
}

func newDuplicateBlockException(format string, args ...any) *DuplicateBlockException {
	return &DuplicateBlockException{ChainException: newChainException(format, args...)}
}

// Unwrap exposes the embedded *ChainException to errors.Is and errors.As.
func (e *DuplicateBlockException) Unwrap() error { return e.ChainException }

// UTXOException signals that a block could not be applied because one of
// its transactions failed canSpend during reorg application (missing
// referenced UTXO, bad signature, or balance mismatch). Any partially
// applied state is rolled back before this error is returned.
type UTXOException struct {
	Message string
}

func (e *UTXOException) Error() string { return e.Message }

func newUTXOException(format string, args ...any) *UTXOException {
	return &UTXOException{Message: fmt.Sprintf(format, args...)}
}
