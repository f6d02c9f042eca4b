// Package cli implements the six-command front end: newchain, newwallet,
// printchain, balance, send, and mine. Each command is a thin composition
// over the ledger package — flag parsing, store open/close, and a domain
// operation.
package cli

import (
	"flag"
	"fmt"
	"sort"

	"github.com/kilimba/ledgerd/ledger"
	"github.com/kilimba/ledgerd/wallet"
)

// Fixed process-wide paths for the three persisted stores. Not a
// configurable surface in this build.
const (
	chainPath   = "./tmp/chain"
	mempoolPath = "./tmp/mempool.dat"
	walletsPath = "./tmp/wallets.dat"
)

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println(" newchain                                     create a new wallet and a chain with its genesis reward")
	fmt.Println(" newwallet                                    create a new wallet, print its address")
	fmt.Println(" printchain                                    print every block from the tip to genesis")
	fmt.Println(" balance                                       print the UTXO balance of every address with a non-zero balance")
	fmt.Println(" send -from ADDR -to ADDR -amount N            send N from ADDR to ADDR, admitting to the mempool")
	fmt.Println(" mine -rewardto ADDR                           mine one pending transaction plus a coinbase reward")
}

// Run dispatches args[0] (the program name, discarded) and args[1:] (the
// command and its flags) to the matching handler. It returns the domain
// or infrastructure error unchanged — main.go owns printing and the exit
// code.
func Run(args []string) error {
	if len(args) < 2 {
		printUsage()
		return fmt.Errorf("no command given")
	}

	switch args[1] {
	case "newchain":
		return runNewChain()
	case "newwallet":
		return runNewWallet()
	case "printchain":
		return runPrintChain()
	case "balance":
		return runBalance()
	case "send":
		return runSend(args[2:])
	case "mine":
		return runMine(args[2:])
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

func runNewChain() error {
	ws, err := wallet.NewWallets(walletsPath)
	if err != nil {
		return err
	}
	addr, err := ws.Add()
	if err != nil {
		return err
	}

	chain, err := ledger.NewChain(chainPath, addr)
	if err != nil {
		return err
	}
	defer chain.Close()

	if err := ws.Save(); err != nil {
		return err
	}

	fmt.Printf("chain created; genesis reward paid to %s\n", addr)
	return nil
}

func runNewWallet() error {
	ws, err := wallet.NewWallets(walletsPath)
	if err != nil {
		return err
	}
	addr, err := ws.Add()
	if err != nil {
		return err
	}
	if err := ws.Save(); err != nil {
		return err
	}

	fmt.Println(addr)
	return nil
}

func runPrintChain() error {
	chain, err := ledger.OpenChain(chainPath)
	if err != nil {
		return err
	}
	defer chain.Close()

	blocks, err := chain.Blocks()
	if err != nil {
		return err
	}
	for _, b := range blocks {
		hash, err := b.Hash()
		if err != nil {
			return err
		}
		fmt.Printf("Hash: %s\n", hash)
		fmt.Printf("Prev hash: %s\n", b.PrevBlockHash)
		fmt.Printf("Timestamp: %d\n", b.Timestamp)
		fmt.Printf("Nonce: %d\n", b.Nonce)
		for _, tx := range b.Transactions {
			id, err := tx.ID()
			if err != nil {
				return err
			}
			if tx.IsCoinbase() {
				fmt.Printf("  coinbase tx %s -> %s: %d\n", id, tx.Coinbase.Outputs[0].PubKeyHash, tx.Coinbase.Outputs[0].Value)
			} else {
				fmt.Printf("  tx %s: %d inputs, %d outputs\n", id, len(tx.Standard.Inputs), len(tx.Standard.Outputs))
				for _, out := range tx.Standard.Outputs {
					fmt.Printf("    -> %s: %d\n", out.PubKeyHash, out.Value)
				}
			}
		}
		fmt.Println()
	}
	return nil
}

func runBalance() error {
	chain, err := ledger.OpenChain(chainPath)
	if err != nil {
		return err
	}
	defer chain.Close()

	utxo, err := ledger.ComputeUTXO(chain)
	if err != nil {
		return err
	}

	balances := utxo.Balances()
	addrs := make([]string, 0, len(balances))
	for a := range balances {
		addrs = append(addrs, a)
	}
	sort.Strings(addrs)
	for _, a := range addrs {
		if balances[a] == 0 {
			continue
		}
		fmt.Printf("%s: %d\n", a, balances[a])
	}
	return nil
}

func runSend(args []string) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	from := fs.String("from", "", "source address")
	to := fs.String("to", "", "destination address")
	amount := fs.Uint64("amount", 0, "amount to send")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *from == "" || *to == "" {
		return fmt.Errorf("send requires -from and -to")
	}
	if *amount == 0 {
		return fmt.Errorf("send requires a positive -amount")
	}

	ws, err := wallet.NewWallets(walletsPath)
	if err != nil {
		return err
	}
	signer, ok := ws.Get(*from)
	if !ok {
		return &ledger.Error{Code: ledger.NoWalletForAddress}
	}

	chain, err := ledger.OpenChain(chainPath)
	if err != nil {
		return err
	}
	defer chain.Close()

	utxo, err := ledger.ComputeUTXO(chain)
	if err != nil {
		return err
	}

	tx, err := ledger.NewStandardTX(utxo, signer, *to, *amount)
	if err != nil {
		return err
	}

	mp, err := ledger.NewMemPool(mempoolPath)
	if err != nil {
		return err
	}
	if err := mp.Push(chain, tx); err != nil {
		return err
	}
	if err := mp.Save(); err != nil {
		return err
	}

	id, err := tx.ID()
	if err != nil {
		return err
	}
	fmt.Printf("tx %s admitted to mempool\n", id)
	return nil
}

func runMine(args []string) error {
	fs := flag.NewFlagSet("mine", flag.ContinueOnError)
	rewardTo := fs.String("rewardto", "", "address to pay the mining reward to")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *rewardTo == "" {
		return fmt.Errorf("mine requires -rewardto")
	}

	chain, err := ledger.OpenChain(chainPath)
	if err != nil {
		return err
	}
	defer chain.Close()

	mp, err := ledger.NewMemPool(mempoolPath)
	if err != nil {
		return err
	}

	block, err := ledger.MineBlock(chain, mp, *rewardTo)
	if err != nil {
		return err
	}
	if err := chain.Add(block); err != nil {
		return err
	}
	if err := mp.Save(); err != nil {
		return err
	}

	hash, err := block.Hash()
	if err != nil {
		return err
	}
	fmt.Printf("mined block %s\n", hash)
	return nil
}
