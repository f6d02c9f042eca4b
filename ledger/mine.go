package ledger

import "time"

// MineBlock pops at most one pending transaction from m, appends a
// coinbase paying rewardAddr, and mines the resulting block on top of
// chain's current tip. It does not add the block — callers commit it with
// Chain.Add, so a failed Add leaves the mempool's transaction state to
// the caller's judgment (the CLI here saves the mempool only after a
// successful Add, so on failure the popped transaction is still in the
// mempool file).
func MineBlock(chain *Chain, m *MemPool, rewardAddr string) (Block, error) {
	coinbase, err := NewCoinbaseTX(rewardAddr)
	if err != nil {
		return Block{}, err
	}

	txs := []TX{}
	if tx, ok := m.Pop(); ok {
		txs = append(txs, tx)
	}
	txs = append(txs, coinbase)

	block := Block{
		Timestamp:     time.Now().Unix(),
		Transactions:  txs,
		PrevBlockHash: chain.LastHash,
	}
	if _, err := mine(&block); err != nil {
		return Block{}, err
	}
	return block, nil
}
