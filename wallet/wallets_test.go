package wallet

import (
	"path/filepath"
	"testing"
)

func TestNewWalletsStartsEmptyWhenFileAbsent(t *testing.T) {
	ws, err := NewWallets(filepath.Join(t.TempDir(), "wallets.dat"))
	if err != nil {
		t.Fatalf("NewWallets: %v", err)
	}
	if len(ws.Addresses()) != 0 {
		t.Fatalf("fresh keystore has %d addresses, want 0", len(ws.Addresses()))
	}
}

func TestWalletsAddDoesNotPersistUntilSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.dat")
	ws, err := NewWallets(path)
	if err != nil {
		t.Fatalf("NewWallets: %v", err)
	}
	addr, err := ws.Add()
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	reloaded, err := NewWallets(path)
	if err != nil {
		t.Fatalf("NewWallets (before save): %v", err)
	}
	if _, ok := reloaded.Get(addr); ok {
		t.Fatal("Add must not persist before Save is called")
	}

	if err := ws.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	reloaded, err = NewWallets(path)
	if err != nil {
		t.Fatalf("NewWallets (after save): %v", err)
	}
	w, ok := reloaded.Get(addr)
	if !ok {
		t.Fatal("address missing after Save + reload")
	}
	if w.Address() != addr {
		t.Fatalf("reloaded wallet address = %s, want %s", w.Address(), addr)
	}
}

func TestWalletsAddressesListsEveryWallet(t *testing.T) {
	ws, err := NewWallets(filepath.Join(t.TempDir(), "wallets.dat"))
	if err != nil {
		t.Fatalf("NewWallets: %v", err)
	}
	a1, _ := ws.Add()
	a2, _ := ws.Add()

	addrs := ws.Addresses()
	if len(addrs) != 2 {
		t.Fatalf("Addresses() returned %d entries, want 2", len(addrs))
	}
	seen := map[string]bool{addrs[0]: true, addrs[1]: true}
	if !seen[a1] || !seen[a2] {
		t.Fatalf("Addresses() = %v, want both %s and %s", addrs, a1, a2)
	}
}
