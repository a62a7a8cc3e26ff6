// Command coinctl is a small CLI over the utxochain engine: it can print
// the genesis block, generate keypairs, run an in-memory demo chain
// exercising extend and fork, and checkpoint a chain's UTXO set to disk.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "coinctl",
		Short: "Inspect and drive a small UTXO-based blockchain engine",
	}

	root.PersistentFlags().String("data-dir", "./data", "directory for checkpoint data")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	viper.BindPFlag("data_dir", root.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newGenesisCmd())
	root.AddCommand(newKeygenCmd())
	root.AddCommand(newDemoCmd())
	root.AddCommand(newSnapshotCmd())
	return root
}
