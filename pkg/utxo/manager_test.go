package utxo

import (
	"testing"

	"github.com/rluna-dev/utxochain/pkg/keys"
	"github.com/rluna-dev/utxochain/pkg/txbuilder"
	"github.com/rluna-dev/utxochain/pkg/types"
)

func mustKey(t *testing.T) *keys.PrivateKey {
	t.Helper()
	pk, err := keys.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	return pk
}

func mustAddr(t *testing.T, pk *keys.PrivateKey) types.Address {
	t.Helper()
	addr, err := pk.Public().Address()
	if err != nil {
		t.Fatalf("Address: %v", err)
	}
	return addr
}

func coinbase(t *testing.T, addr types.Address, amount int64, ts float64) *types.Transaction {
	t.Helper()
	return txbuilder.BuildCoinbase(ts, addr, amount)
}

func TestCanSpendAndSpendCoinbase(t *testing.T) {
	m := NewManager()
	alice := mustKey(t)
	aliceAddr := mustAddr(t, alice)

	cb := coinbase(t, aliceAddr, 1000, 1)
	if ok, msg := m.CanSpend(cb); !ok {
		t.Fatalf("coinbase should be spendable: %s", msg)
	}
	m.Spend(cb)

	if m.UnspentOutputCount(cb.Hash) != 1 {
		t.Errorf("expected 1 unspent output after spending coinbase")
	}
}

func TestCanSpendRejectsMissingReference(t *testing.T) {
	m := NewManager()
	alice := mustKey(t)
	aliceAddr := mustAddr(t, alice)

	tx, err := txbuilder.Build(2,
		[]txbuilder.InputSpec{{ReferencedHash: "nonexistent", ReferencedOutputIndex: 0, SigningKey: alice}},
		[]txbuilder.OutputSpec{{Address: aliceAddr, Amount: 100}},
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ok, msg := m.CanSpend(tx)
	if ok {
		t.Fatal("expected rejection for a nonexistent reference")
	}
	if msg != "Referenced UTXO does not exist." {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestCanSpendRejectsWrongKey(t *testing.T) {
	m := NewManager()
	alice := mustKey(t)
	aliceAddr := mustAddr(t, alice)
	mallory := mustKey(t)

	cb := coinbase(t, aliceAddr, 1000, 1)
	m.Spend(cb)

	forged, err := txbuilder.Build(2,
		[]txbuilder.InputSpec{{ReferencedHash: cb.Hash, ReferencedOutputIndex: 0, SigningKey: mallory}},
		[]txbuilder.OutputSpec{{Address: aliceAddr, Amount: 1000}},
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if ok, _ := m.CanSpend(forged); ok {
		t.Error("expected rejection for a signature from the wrong key")
	}
}

func TestCanSpendRejectsBalanceMismatch(t *testing.T) {
	m := NewManager()
	alice := mustKey(t)
	aliceAddr := mustAddr(t, alice)
	bob := mustKey(t)
	bobAddr := mustAddr(t, bob)

	cb := coinbase(t, aliceAddr, 1000, 1)
	m.Spend(cb)

	overspend, err := txbuilder.Build(2,
		[]txbuilder.InputSpec{{ReferencedHash: cb.Hash, ReferencedOutputIndex: 0, SigningKey: alice}},
		[]txbuilder.OutputSpec{{Address: bobAddr, Amount: 2000}},
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ok, msg := m.CanSpend(overspend)
	if ok {
		t.Fatal("expected rejection for input/output amount mismatch")
	}
	if msg != "Input amounts to do not match output amounts" {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestSpendThenRevertRestoresState(t *testing.T) {
	m := NewManager()
	alice := mustKey(t)
	aliceAddr := mustAddr(t, alice)
	bob := mustKey(t)
	bobAddr := mustAddr(t, bob)

	cb := coinbase(t, aliceAddr, 1000, 1)
	m.Spend(cb)

	spend, err := txbuilder.Build(2,
		[]txbuilder.InputSpec{{ReferencedHash: cb.Hash, ReferencedOutputIndex: 0, SigningKey: alice}},
		[]txbuilder.OutputSpec{{Address: bobAddr, Amount: 1000}},
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ok, msg := m.CanSpend(spend); !ok {
		t.Fatalf("spend should be valid: %s", msg)
	}
	m.Spend(spend)

	if m.UnspentOutputCount(cb.Hash) != 0 {
		t.Error("coinbase output should be spent")
	}
	if m.UnspentOutputCount(spend.Hash) != 1 {
		t.Error("spend's output should be unspent")
	}

	if err := m.Revert(spend); err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if m.UnspentOutputCount(cb.Hash) != 1 {
		t.Error("reverting spend should restore the coinbase output as unspent")
	}
	if _, has := m.Entries()[spend.Hash]; has {
		t.Error("reverted transaction's own entry should be gone")
	}

	// Respend after revert must succeed, exactly the scenario exercised by
	// the original engine's UTXO manager test suite.
	if ok, msg := m.CanSpend(spend); !ok {
		t.Fatalf("respend after revert should succeed: %s", msg)
	}
}

func TestRevertRejectsWhenPartiallySpentDownstream(t *testing.T) {
	m := NewManager()
	alice := mustKey(t)
	aliceAddr := mustAddr(t, alice)
	bob := mustKey(t)
	bobAddr := mustAddr(t, bob)
	carol := mustKey(t)
	carolAddr := mustAddr(t, carol)

	cb := coinbase(t, aliceAddr, 1000, 1)
	m.Spend(cb)

	split, err := txbuilder.Build(2,
		[]txbuilder.InputSpec{{ReferencedHash: cb.Hash, ReferencedOutputIndex: 0, SigningKey: alice}},
		[]txbuilder.OutputSpec{
			{Address: bobAddr, Amount: 400},
			{Address: carolAddr, Amount: 600},
		},
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m.Spend(split)

	spendOne, err := txbuilder.Build(3,
		[]txbuilder.InputSpec{{ReferencedHash: split.Hash, ReferencedOutputIndex: 0, SigningKey: bob}},
		[]txbuilder.OutputSpec{{Address: carolAddr, Amount: 400}},
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m.Spend(spendOne)

	if err := m.Revert(split); err == nil {
		t.Error("expected Revert to reject a transaction with downstream spends")
	}
}

func TestDoubleRevertRejected(t *testing.T) {
	m := NewManager()
	alice := mustKey(t)
	aliceAddr := mustAddr(t, alice)

	cb := coinbase(t, aliceAddr, 1000, 1)
	m.Spend(cb)

	bob := mustKey(t)
	bobAddr := mustAddr(t, bob)
	spend, err := txbuilder.Build(2,
		[]txbuilder.InputSpec{{ReferencedHash: cb.Hash, ReferencedOutputIndex: 0, SigningKey: alice}},
		[]txbuilder.OutputSpec{{Address: bobAddr, Amount: 1000}},
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m.Spend(spend)

	if err := m.Revert(spend); err != nil {
		t.Fatalf("first revert should succeed: %v", err)
	}
	// spend's entry is gone now; reverting again must fail for lack of entry.
	if err := m.Revert(spend); err == nil {
		t.Error("expected second revert to fail")
	}
}

func TestCoinbaseExemptFromBalanceCheck(t *testing.T) {
	m := NewManager()
	alice := mustKey(t)
	aliceAddr := mustAddr(t, alice)

	cb := coinbase(t, aliceAddr, 1000, 1)
	if ok, msg := m.CanSpend(cb); !ok {
		t.Fatalf("coinbase with no inputs should bypass the balance check: %s", msg)
	}
}
