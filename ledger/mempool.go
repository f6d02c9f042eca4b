package ledger

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
)

// MemPool is an ordered queue of pending transactions admitted for mining,
// together with a duplicate-id filter. It is loaded in full on
// construction and rewritten in full by Save — the same whole-file
// snapshot discipline the wallet keystore uses.
type MemPool struct {
	path  string
	Queue []TX
	IDs   map[string]bool
}

// NewMemPool loads the mempool snapshot at path, or starts empty if the
// file does not yet exist.
func NewMemPool(path string) (*MemPool, error) {
	mp := &MemPool{path: path, IDs: make(map[string]bool)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return mp, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: read mempool file: %w", err)
	}

	var snapshot struct {
		Queue []TX
		IDs   map[string]bool
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("ledger: corrupt mempool file: %w", err)
	}
	mp.Queue = snapshot.Queue
	if snapshot.IDs != nil {
		mp.IDs = snapshot.IDs
	}
	return mp, nil
}

// Push admits tx if it is not already pending. A standard transaction
// must verify against chain first; a duplicate id is a silent no-op.
func (mp *MemPool) Push(chain *Chain, tx TX) error {
	if !tx.IsCoinbase() {
		if err := tx.verify(chain); err != nil {
			return err
		}
	}
	id, err := tx.ID()
	if err != nil {
		return err
	}
	if mp.IDs[id] {
		return nil
	}
	mp.Queue = append(mp.Queue, tx)
	mp.IDs[id] = true
	return nil
}

// Pop removes and returns the oldest pending transaction. ok is false if
// the mempool is empty.
func (mp *MemPool) Pop() (tx TX, ok bool) {
	if len(mp.Queue) == 0 {
		return TX{}, false
	}
	tx = mp.Queue[0]
	mp.Queue = mp.Queue[1:]
	if id, err := tx.ID(); err == nil {
		delete(mp.IDs, id)
	}
	return tx, true
}

// Save rewrites the mempool snapshot in full.
func (mp *MemPool) Save() error {
	var buf bytes.Buffer
	snapshot := struct {
		Queue []TX
		IDs   map[string]bool
	}{Queue: mp.Queue, IDs: mp.IDs}
	if err := gob.NewEncoder(&buf).Encode(snapshot); err != nil {
		return fmt.Errorf("ledger: encode mempool: %w", err)
	}
	if err := os.WriteFile(mp.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("ledger: write mempool file: %w", err)
	}
	return nil
}
