package cmd

import (
	"fmt"
	"os"

	"github.com/groupkv/gkv/cmd/group"
	"github.com/groupkv/gkv/cmd/kv"
	"github.com/groupkv/gkv/cmd/lock"
	"github.com/groupkv/gkv/cmd/serve"
	"github.com/groupkv/gkv/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "gkv",
		Short: "in-memory key-value store with a group cache",
		Long: fmt.Sprintf(`gkv (v%s)

An in-memory key-value store written in Go. It offers a string command
surface with shared copy-on-write values plus a group-indexed cache
for fetching and pinning sets of related keys.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of gkv",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gkv v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(group.GroupCommands)
	RootCmd.AddCommand(lock.LockCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("serializer to use (json, gob, binary)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
