package ledger

// UTXOEntry is one currently-unspent output, identified by the id of the
// transaction that created it and its position in that transaction's
// output list.
type UTXOEntry struct {
	TxID   string
	Vout   int
	Output TXOutput
}

// UTXOSet is the set of unspent outputs derived from a chain — a pure
// function of its contents, recomputed on demand rather than cached.
type UTXOSet struct {
	entries []UTXOEntry
}

// ComputeUTXO derives the UTXO set of chain via a two-pass algorithm:
// every output is inserted, then every input removes the output it
// references. Entries are kept in genesis-to-tip, then output-index,
// order — a Go map has no stable iteration order, and FindSpendableOutputs'
// greedy selection must see the same order on every call for the same
// chain.
func ComputeUTXO(chain *Chain) (UTXOSet, error) {
	tipFirst, err := chain.Blocks()
	if err != nil {
		return UTXOSet{}, err
	}

	type key struct {
		txid string
		vout int
	}

	var ordered []UTXOEntry
	for i := len(tipFirst) - 1; i >= 0; i-- {
		for _, tx := range tipFirst[i].Transactions {
			txid, err := tx.ID()
			if err != nil {
				return UTXOSet{}, err
			}
			for vout, out := range tx.Outputs() {
				ordered = append(ordered, UTXOEntry{TxID: txid, Vout: vout, Output: out})
			}
		}
	}

	spent := make(map[key]bool)
	for _, b := range tipFirst {
		for _, tx := range b.Transactions {
			if tx.IsCoinbase() {
				continue
			}
			for _, in := range tx.Standard.Inputs {
				spent[key{in.TxID, in.Vout}] = true
			}
		}
	}

	set := UTXOSet{entries: make([]UTXOEntry, 0, len(ordered))}
	for _, e := range ordered {
		if spent[key{e.TxID, e.Vout}] {
			continue
		}
		set.entries = append(set.entries, e)
	}
	return set, nil
}

// FindSpendableOutputs collects entries belonging to pubKeyHash, greedily
// accumulating value until the running total strictly exceeds amount.
// The loop includes one entry past the threshold by design, not a bug.
func (u UTXOSet) FindSpendableOutputs(pubKeyHash string, amount uint64) (uint64, []UTXOEntry) {
	var total uint64
	var selected []UTXOEntry
	for _, e := range u.entries {
		if e.Output.PubKeyHash != pubKeyHash {
			continue
		}
		if total > amount {
			break
		}
		selected = append(selected, e)
		total += e.Output.Value
	}
	return total, selected
}

// Balance sums the value of every entry owned by address.
func (u UTXOSet) Balance(address string) uint64 {
	var total uint64
	for _, e := range u.entries {
		if e.Output.PubKeyHash == address {
			total += e.Output.Value
		}
	}
	return total
}

// Balances returns every address with at least one unspent output,
// mapped to its total balance.
func (u UTXOSet) Balances() map[string]uint64 {
	balances := make(map[string]uint64)
	for _, e := range u.entries {
		balances[e.Output.PubKeyHash] += e.Output.Value
	}
	return balances
}
