package storage

import (
	"path/filepath"
	"testing"

	"github.com/rluna-dev/utxochain/pkg/chain"
	"github.com/rluna-dev/utxochain/pkg/keys"
	"github.com/rluna-dev/utxochain/pkg/mining"
	"github.com/rluna-dev/utxochain/pkg/txbuilder"
	"github.com/rluna-dev/utxochain/pkg/types"
)

func TestSaveChainRoundTripsBlocksUTXOAndHead(t *testing.T) {
	genesisKey, err := keys.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	genesisAddr, err := genesisKey.Public().Address()
	if err != nil {
		t.Fatalf("Address: %v", err)
	}
	genesis := chain.NewGenesisBlock(genesisAddr)

	c, err := chain.NewChain(genesis)
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}

	aliceKey, _ := keys.GeneratePrivateKey()
	aliceAddr, _ := aliceKey.Public().Address()

	spend, err := txbuilder.Build(genesis.Timestamp+1,
		[]txbuilder.InputSpec{{
			ReferencedHash:        genesis.Transactions[0].Hash,
			ReferencedOutputIndex: 0,
			SigningKey:            genesisKey,
		}},
		[]txbuilder.OutputSpec{{Address: aliceAddr, Amount: genesis.Transactions[0].Outputs[0].Amount}},
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	m := mining.New()
	b1 := m.GenerateNextBlock(genesis, []types.Transaction{*spend})
	if err := c.AddBlock(b1); err != nil {
		t.Fatalf("AddBlock: %v", err)
	}

	dbPath := filepath.Join(t.TempDir(), "chain.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.SaveChain(c); err != nil {
		t.Fatalf("SaveChain: %v", err)
	}

	head, err := store.LoadHead()
	if err != nil {
		t.Fatalf("LoadHead: %v", err)
	}
	if head != b1.Hash {
		t.Errorf("LoadHead = %s, want %s", head, b1.Hash)
	}

	blocks, err := store.LoadBlocks()
	if err != nil {
		t.Fatalf("LoadBlocks: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("LoadBlocks returned %d blocks, want 2 (genesis + b1)", len(blocks))
	}
	if got, ok := blocks[genesis.Hash]; !ok || got.Hash != genesis.Hash {
		t.Errorf("genesis missing or mismatched in loaded blocks")
	}
	if got, ok := blocks[b1.Hash]; !ok || got.Hash != b1.Hash {
		t.Errorf("b1 missing or mismatched in loaded blocks")
	}

	entries, err := store.LoadUTXOEntries()
	if err != nil {
		t.Fatalf("LoadUTXOEntries: %v", err)
	}
	if _, ok := entries[spend.Hash]; !ok {
		t.Errorf("spend tx entry missing from loaded UTXO snapshot")
	}
	if _, ok := entries[genesis.Transactions[0].Hash]; !ok {
		t.Errorf("genesis coinbase entry missing from loaded UTXO snapshot (retained with zero unspent)")
	}
}

func TestLoadHeadOnEmptyStoreReturnsEmptyString(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	head, err := store.LoadHead()
	if err != nil {
		t.Fatalf("LoadHead: %v", err)
	}
	if head != "" {
		t.Errorf("LoadHead on empty store = %q, want empty", head)
	}
}
