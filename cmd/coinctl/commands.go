package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rluna-dev/utxochain/pkg/chain"
	"github.com/rluna-dev/utxochain/pkg/chain/genesiskey"
	"github.com/rluna-dev/utxochain/pkg/keys"
	"github.com/rluna-dev/utxochain/pkg/mining"
	"github.com/rluna-dev/utxochain/pkg/monitoring"
	"github.com/rluna-dev/utxochain/pkg/serialization"
	"github.com/rluna-dev/utxochain/pkg/storage"
	"github.com/rluna-dev/utxochain/pkg/txbuilder"
	"github.com/rluna-dev/utxochain/pkg/types"
)

func newGenesisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genesis",
		Short: "Print the genesis block as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			genesis, err := chain.DefaultGenesisBlock()
			if err != nil {
				return err
			}
			data, err := serialization.EncodeBlock(genesis)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate an RSA keypair and print its address",
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := keys.GeneratePrivateKey()
			if err != nil {
				return err
			}
			addr, err := pk.Public().Address()
			if err != nil {
				return err
			}
			fmt.Println(string(addr))
			return nil
		},
	}
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Build a small in-memory chain exercising extend and fork",
		RunE:  runDemo,
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	logger := monitoring.New(monitoring.ParseLevel(viper.GetString("log_level")))

	genesisKey, err := genesiskey.PrivateKey()
	if err != nil {
		return fmt.Errorf("demo: loading genesis key: %w", err)
	}
	genesis, err := chain.DefaultGenesisBlock()
	if err != nil {
		return err
	}

	c, err := chain.NewChain(genesis)
	if err != nil {
		return err
	}
	c.WithLogger(logger)
	miner := mining.New().WithLogger(logger)

	aliceKey, _ := keys.GeneratePrivateKey()
	aliceAddr, _ := aliceKey.Public().Address()

	spend, err := txbuilder.Build(genesis.Transactions[0].Timestamp+1,
		[]txbuilder.InputSpec{{
			ReferencedHash:        genesis.Transactions[0].Hash,
			ReferencedOutputIndex: 0,
			SigningKey:            genesisKey,
		}},
		[]txbuilder.OutputSpec{{Address: aliceAddr, Amount: 1000}},
	)
	if err != nil {
		return err
	}

	b1 := miner.GenerateNextBlock(genesis, []types.Transaction{*spend})
	if err := c.AddBlock(b1); err != nil {
		return fmt.Errorf("demo: adding b1: %w", err)
	}
	fmt.Printf("extended: head index %d, head hash %s\n", c.Head().Index, c.Head().Hash)

	// A sibling off genesis, mined independently of b1 and spending the
	// same genesis coinbase output: same index as b1, so it joins as a
	// known side branch without moving head or touching the UTXO.
	bobKey, _ := keys.GeneratePrivateKey()
	bobAddr, _ := bobKey.Public().Address()

	siblingSpend, err := txbuilder.Build(genesis.Transactions[0].Timestamp+2,
		[]txbuilder.InputSpec{{
			ReferencedHash:        genesis.Transactions[0].Hash,
			ReferencedOutputIndex: 0,
			SigningKey:            genesisKey,
		}},
		[]txbuilder.OutputSpec{{Address: bobAddr, Amount: 1000}},
	)
	if err != nil {
		return err
	}
	sibling := miner.GenerateNextBlock(genesis, []types.Transaction{*siblingSpend})
	if err := c.AddBlock(sibling); err != nil {
		return fmt.Errorf("demo: adding sibling fork: %w", err)
	}
	fmt.Printf("forked: sibling %s accepted at index %d, head unchanged (%s)\n", sibling.Hash, sibling.Index, c.Head().Hash)

	fmt.Printf("head index: %d\n", c.Head().Index)
	fmt.Printf("head hash: %s\n", c.Head().Hash)
	fmt.Printf("utxo entries: %d\n", c.UTXO().Size())
	fmt.Printf("total unspent value: %d\n", c.UTXO().TotalUnspentValue())
	return nil
}

func newSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot [path]",
		Short: "Checkpoint a fresh genesis-only chain's blocks and UTXO set to a LevelDB directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			genesis, err := chain.DefaultGenesisBlock()
			if err != nil {
				return err
			}
			c, err := chain.NewChain(genesis)
			if err != nil {
				return err
			}

			store, err := storage.Open(args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveChain(c); err != nil {
				return err
			}
			fmt.Printf("checkpointed %d block(s) to %s\n", c.Size(), args[0])
			return nil
		},
	}
}

