package ledger

import (
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/kilimba/ledgerd/canon"
)

// tipKey is the fixed badger key pointing at the chain's current head.
// Everything else is stored keyed by its own hex block hash, so the store
// is a genuine content-addressed map plus one pointer.
var tipKey = []byte("lh")

// Chain is a content-addressed store of blocks, backed by an embedded
// key-value database, with LastHash identifying the tip. It is opened on
// construction and must be closed by the caller on every exit path.
type Chain struct {
	db       *badger.DB
	LastHash string
}

// dbExists reports whether a badger database already lives at path.
func dbExists(path string) bool {
	if _, err := os.Stat(path + "/MANIFEST"); os.IsNotExist(err) {
		return false
	}
	return true
}

func openBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	return badger.Open(opts)
}

// NewChain creates a fresh chain at path, mining a genesis block whose
// sole coinbase transaction rewards rewardAddr. It fails if a chain
// already exists at path — callers must remove it first.
func NewChain(path, rewardAddr string) (*Chain, error) {
	if dbExists(path) {
		return nil, fmt.Errorf("ledger: a chain already exists at %s", path)
	}

	db, err := openBadger(path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open chain store: %w", err)
	}

	chain := &Chain{db: db}

	coinbase, err := NewCoinbaseTX(rewardAddr)
	if err != nil {
		db.Close()
		return nil, err
	}
	genesis := Block{
		Timestamp:     time.Now().Unix(),
		Transactions:  []TX{coinbase},
		PrevBlockHash: "",
	}
	if _, err := mine(&genesis); err != nil {
		db.Close()
		return nil, err
	}
	if err := chain.Add(genesis); err != nil {
		db.Close()
		return nil, err
	}
	return chain, nil
}

// OpenChain loads the chain at path, which must already exist, and
// validates it in full before returning it. A tampered or truncated chain
// is rejected here, not lazily discovered later.
func OpenChain(path string) (*Chain, error) {
	if !dbExists(path) {
		return nil, fmt.Errorf("ledger: no chain at %s", path)
	}

	db, err := openBadger(path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open chain store: %w", err)
	}

	chain := &Chain{db: db}
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tipKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			chain.LastHash = string(val)
			return nil
		})
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ledger: corrupt chain store: %w", err)
	}

	if err := chain.validateAll(); err != nil {
		db.Close()
		return nil, err
	}
	return chain, nil
}

// Close releases the backing database. Safe to call once per Chain.
func (c *Chain) Close() error {
	return c.db.Close()
}

func (c *Chain) getBlock(hash string) (Block, error) {
	var block Block
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(hash))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return canon.Decode(val, &block)
		})
	})
	return block, err
}

// blocksTipToGenesis walks the chain from the current tip back to the
// genesis terminator ("") following PrevBlockHash pointers.
func (c *Chain) blocksTipToGenesis() ([]Block, error) {
	var blocks []Block
	cursor := c.LastHash
	for cursor != "" {
		b, err := c.getBlock(cursor)
		if err != nil {
			return nil, fmt.Errorf("ledger: corrupt chain store: %w", err)
		}
		blocks = append(blocks, b)
		cursor = b.PrevBlockHash
	}
	return blocks, nil
}

// Blocks returns every block in the chain, tip first.
func (c *Chain) Blocks() ([]Block, error) {
	return c.blocksTipToGenesis()
}

// validateAll re-validates every block in the chain from genesis forward,
// using the running prev-hash rather than trusting what is on disk.
func (c *Chain) validateAll() error {
	tipFirst, err := c.blocksTipToGenesis()
	if err != nil {
		return err
	}
	expectedPrev := ""
	for i := len(tipFirst) - 1; i >= 0; i-- {
		if err := c.validateBlock(tipFirst[i], expectedPrev); err != nil {
			return err
		}
		h, err := tipFirst[i].Hash()
		if err != nil {
			return err
		}
		expectedPrev = h
	}
	return nil
}

// validateBlock checks b against expectedPrev: previous-hash linkage,
// proof-of-work, coinbase count, and every transaction's signatures.
func (c *Chain) validateBlock(b Block, expectedPrev string) error {
	if b.PrevBlockHash != expectedPrev {
		return newErr(InvalidPreviousHash)
	}
	hash, err := b.Hash()
	if err != nil {
		return err
	}
	if !meetsTarget(hash) {
		return newErr(InvalidNonce)
	}
	if b.coinbaseCount() > 1 {
		return newErr(TooManyCoinbase)
	}
	for _, tx := range b.Transactions {
		if err := tx.verify(c); err != nil {
			return err
		}
	}
	return nil
}

// Add validates b against the current tip and, on success, stores it and
// advances the tip to its hash. A failed Add leaves the chain unchanged.
func (c *Chain) Add(b Block) error {
	if err := c.validateBlock(b, c.LastHash); err != nil {
		return err
	}
	hash, err := b.Hash()
	if err != nil {
		return err
	}
	enc, err := canon.Encode(b)
	if err != nil {
		return err
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(hash), enc); err != nil {
			return err
		}
		return txn.Set(tipKey, []byte(hash))
	})
	if err != nil {
		return fmt.Errorf("ledger: persist block: %w", err)
	}
	c.LastHash = hash
	return nil
}

// FindTransaction looks up a transaction by id across the entire chain,
// tip to genesis.
func (c *Chain) FindTransaction(txid string) (TX, bool) {
	blocks, err := c.blocksTipToGenesis()
	if err != nil {
		return TX{}, false
	}
	for _, b := range blocks {
		for _, tx := range b.Transactions {
			id, err := tx.ID()
			if err == nil && id == txid {
				return tx, true
			}
		}
	}
	return TX{}, false
}
