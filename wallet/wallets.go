package wallet

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
)

// Wallets is the keystore mapping address to wallet. It is loaded in
// full on construction and rewritten in full by Save, matching the
// mempool's snapshot discipline.
type Wallets struct {
	path  string
	store map[string]*Wallet
}

// NewWallets loads the keystore at path, or starts empty if the file does
// not yet exist.
func NewWallets(path string) (*Wallets, error) {
	ws := &Wallets{path: path, store: make(map[string]*Wallet)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ws, nil
	}
	if err != nil {
		return nil, fmt.Errorf("wallet: read keystore: %w", err)
	}

	var store map[string]*Wallet
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&store); err != nil {
		return nil, fmt.Errorf("wallet: corrupt keystore: %w", err)
	}
	ws.store = store
	return ws, nil
}

// Add generates a fresh wallet, adds it to the keystore keyed by its
// address, and returns that address. Callers must call Save to persist
// it — Add only mutates the in-memory view.
func (ws *Wallets) Add() (string, error) {
	w, err := New()
	if err != nil {
		return "", err
	}
	addr := w.Address()
	ws.store[addr] = w
	return addr, nil
}

// Get returns the wallet for address, if any.
func (ws *Wallets) Get(address string) (*Wallet, bool) {
	w, ok := ws.store[address]
	return w, ok
}

// Addresses returns every address in the keystore.
func (ws *Wallets) Addresses() []string {
	addrs := make([]string, 0, len(ws.store))
	for a := range ws.store {
		addrs = append(addrs, a)
	}
	return addrs
}

// Save rewrites the keystore file in full.
func (ws *Wallets) Save() error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(ws.store); err != nil {
		return fmt.Errorf("wallet: encode keystore: %w", err)
	}
	if err := os.WriteFile(ws.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("wallet: write keystore: %w", err)
	}
	return nil
}
