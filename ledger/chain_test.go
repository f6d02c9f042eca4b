package ledger

import (
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/kilimba/ledgerd/canon"
)

func TestNewChainOpenChainRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain")

	chain, err := NewChain(path, "miner")
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}
	tip := chain.LastHash
	if err := chain.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenChain(path)
	if err != nil {
		t.Fatalf("OpenChain: %v", err)
	}
	defer reopened.Close()

	if reopened.LastHash != tip {
		t.Fatalf("LastHash after reopen = %s, want %s", reopened.LastHash, tip)
	}
	blocks, err := reopened.Blocks()
	if err != nil {
		t.Fatalf("Blocks: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
}

func TestNewChainRejectsExistingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain")
	chain, err := NewChain(path, "miner")
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}
	chain.Close()

	if _, err := NewChain(path, "miner"); err == nil {
		t.Fatal("NewChain over an existing path should fail")
	}
}

func TestAddRejectsInvalidPreviousHash(t *testing.T) {
	chain, _ := NewChain(filepath.Join(t.TempDir(), "chain"), "miner")
	defer chain.Close()

	cb, _ := NewCoinbaseTX("miner")
	b := Block{Timestamp: 1, Transactions: []TX{cb}, PrevBlockHash: "not-the-tip"}
	if _, err := mine(&b); err != nil {
		t.Fatalf("mine: %v", err)
	}

	err := chain.Add(b)
	ledgerErr, ok := err.(*Error)
	if !ok || ledgerErr.Code != InvalidPreviousHash {
		t.Fatalf("Add() = %v, want InvalidPreviousHash", err)
	}
}

func TestAddRejectsTooManyCoinbase(t *testing.T) {
	chain, _ := NewChain(filepath.Join(t.TempDir(), "chain"), "miner")
	defer chain.Close()

	cb1, _ := NewCoinbaseTX("miner")
	cb2, _ := NewCoinbaseTX("miner")
	b := Block{Timestamp: 1, Transactions: []TX{cb1, cb2}, PrevBlockHash: chain.LastHash}
	if _, err := mine(&b); err != nil {
		t.Fatalf("mine: %v", err)
	}

	err := chain.Add(b)
	ledgerErr, ok := err.(*Error)
	if !ok || ledgerErr.Code != TooManyCoinbase {
		t.Fatalf("Add() = %v, want TooManyCoinbase", err)
	}
}

func TestAddRejectsUnminedBlock(t *testing.T) {
	chain, _ := NewChain(filepath.Join(t.TempDir(), "chain"), "miner")
	defer chain.Close()

	cb, _ := NewCoinbaseTX("miner")
	b := Block{Timestamp: 1, Transactions: []TX{cb}, PrevBlockHash: chain.LastHash, Nonce: 0}

	err := chain.Add(b)
	ledgerErr, ok := err.(*Error)
	if !ok || ledgerErr.Code != InvalidNonce {
		t.Fatalf("Add() = %v, want InvalidNonce", err)
	}
}

func TestOpenChainRejectsTamperedBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain")
	chain, err := NewChain(path, "miner")
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}
	genesisHash := chain.LastHash

	// Corrupt the stored genesis block directly in the backing store,
	// bypassing Add's validation entirely.
	err = chain.db.Update(func(txn *badger.Txn) error {
		var b Block
		item, err := txn.Get([]byte(genesisHash))
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error { return canon.Decode(val, &b) }); err != nil {
			return err
		}
		b.Nonce++ // breaks the proof-of-work without touching PrevBlockHash
		enc, err := canon.Encode(b)
		if err != nil {
			return err
		}
		return txn.Set([]byte(genesisHash), enc)
	})
	if err != nil {
		t.Fatalf("corrupt block: %v", err)
	}
	chain.Close()

	if _, err := OpenChain(path); err == nil {
		t.Fatal("OpenChain over a tampered store should fail")
	}
}

func TestFindTransactionAcrossBlocks(t *testing.T) {
	chain, _ := NewChain(filepath.Join(t.TempDir(), "chain"), "alice")
	defer chain.Close()

	mp, _ := NewMemPool(filepath.Join(t.TempDir(), "mempool.dat"))
	block, err := MineBlock(chain, mp, "bob")
	if err != nil {
		t.Fatalf("MineBlock: %v", err)
	}
	if err := chain.Add(block); err != nil {
		t.Fatalf("Add: %v", err)
	}

	blocks, err := chain.Blocks()
	if err != nil {
		t.Fatalf("Blocks: %v", err)
	}
	id, err := blocks[len(blocks)-1].Transactions[0].ID()
	if err != nil {
		t.Fatalf("ID: %v", err)
	}
	tx, ok := chain.FindTransaction(id)
	if !ok {
		t.Fatal("FindTransaction did not find a transaction from a non-tip block")
	}
	if got, _ := tx.ID(); got != id {
		t.Fatalf("FindTransaction returned id %s, want %s", got, id)
	}

	if _, ok := chain.FindTransaction("unknown"); ok {
		t.Fatal("FindTransaction found a transaction that was never added")
	}
}
