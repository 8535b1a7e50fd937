package kv

import (
	"github.com/groupkv/gkv/cmd/util"
	"github.com/groupkv/gkv/rpc/client"
	"github.com/spf13/cobra"
)

var (
	rpcClient *client.Client

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:               "kv",
		Short:             "Perform key-value store operations",
		PersistentPreRunE: setupKVClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common RPC flags to the KV command
	util.SetupRPCClientFlags(KeyValueCommands)

	// Add subcommands
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(getsetCmd)
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(existsCmd)
	KeyValueCommands.AddCommand(incrCmd)
	KeyValueCommands.AddCommand(decrCmd)
	KeyValueCommands.AddCommand(incrByCmd)
	KeyValueCommands.AddCommand(incrByFloatCmd)
	KeyValueCommands.AddCommand(appendCmd)
	KeyValueCommands.AddCommand(strlenCmd)
	KeyValueCommands.AddCommand(getRangeCmd)
	KeyValueCommands.AddCommand(setRangeCmd)
	KeyValueCommands.AddCommand(execCmd)
	KeyValueCommands.AddCommand(infoCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}

// setupKVClient initializes the RPC client
func setupKVClient(cmd *cobra.Command, _ []string) error {
	config, t, s, err := util.ClientComponents(cmd)
	if err != nil {
		return err
	}
	rpcClient, err = client.NewRPCClient(*config, t, s)
	return err
}

// argv converts string arguments into the wire argument form.
func argv(parts ...string) [][]byte {
	out := make([][]byte, len(parts))
	for i, p := range parts {
		out[i] = []byte(p)
	}
	return out
}
