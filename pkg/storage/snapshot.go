// Package storage provides an optional, LevelDB-backed checkpoint of a
// Chain's UTXO set and block index. It is not the Chain's source of
// truth — the in-memory state in pkg/chain remains authoritative — this
// is a facility for saving and restoring that state between process
// runs, namespacing keys the way a simple key-value chain store would:
// "b<hash>" for block bodies, "u<hash>" for UTXO entries, "c" for the
// current head's hash.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/rluna-dev/utxochain/pkg/chain"
	"github.com/rluna-dev/utxochain/pkg/types"
	"github.com/rluna-dev/utxochain/pkg/utxo"
)

const (
	blockKeyPrefix = "b"
	utxoKeyPrefix  = "u"
	headKey        = "c"
)

// SnapshotStore is a LevelDB-backed checkpoint store.
type SnapshotStore struct {
	db *leveldb.DB
}

// Open opens (creating if necessary) a LevelDB database at path.
func Open(path string) (*SnapshotStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	return &SnapshotStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// SaveChain writes every accepted block, every UTXO entry, and the
// current head's hash in a single atomic batch.
func (s *SnapshotStore) SaveChain(c *chain.Chain) error {
	batch := new(leveldb.Batch)

	for hash, block := range c.AllBlocks() {
		data, err := json.Marshal(block)
		if err != nil {
			return fmt.Errorf("storage: marshal block %s: %w", hash, err)
		}
		batch.Put([]byte(blockKeyPrefix+hash), data)
	}

	for hash, entry := range c.UTXO().Entries() {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("storage: marshal utxo entry %s: %w", hash, err)
		}
		batch.Put([]byte(utxoKeyPrefix+hash), data)
	}

	batch.Put([]byte(headKey), []byte(c.Head().Hash))

	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("storage: write batch: %w", err)
	}
	return nil
}

// LoadHead returns the hash of the head block recorded by the last
// SaveChain call, or "" if nothing has been saved yet.
func (s *SnapshotStore) LoadHead() (string, error) {
	data, err := s.db.Get([]byte(headKey), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return "", nil
		}
		return "", fmt.Errorf("storage: read head: %w", err)
	}
	return string(data), nil
}

// LoadBlocks returns every block recorded by the last SaveChain call,
// keyed by hash.
func (s *SnapshotStore) LoadBlocks() (map[string]*types.Block, error) {
	blocks := make(map[string]*types.Block)
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()
	for iter.Next() {
		key := string(iter.Key())
		if len(key) == 0 || key[:1] != blockKeyPrefix {
			continue
		}
		var b types.Block
		if err := json.Unmarshal(iter.Value(), &b); err != nil {
			return nil, fmt.Errorf("storage: unmarshal block %s: %w", key, err)
		}
		blocks[key[1:]] = &b
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("storage: iterate blocks: %w", err)
	}
	return blocks, nil
}

// LoadUTXOEntries returns every UTXO snapshot entry recorded by the last
// SaveChain call, keyed by transaction hash.
func (s *SnapshotStore) LoadUTXOEntries() (map[string]utxo.Snapshot, error) {
	entries := make(map[string]utxo.Snapshot)
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()
	for iter.Next() {
		key := string(iter.Key())
		if len(key) == 0 || key[:1] != utxoKeyPrefix {
			continue
		}
		var snap utxo.Snapshot
		if err := json.Unmarshal(iter.Value(), &snap); err != nil {
			return nil, fmt.Errorf("storage: unmarshal utxo entry %s: %w", key, err)
		}
		entries[key[1:]] = snap
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("storage: iterate utxo entries: %w", err)
	}
	return entries, nil
}
