package group

import (
	"fmt"

	"github.com/groupkv/gkv/cmd/util"
	"github.com/groupkv/gkv/rpc/client"
	"github.com/spf13/cobra"
)

var (
	rpcClient *client.Client

	// GroupCommands represents the group cache command group
	GroupCommands = &cobra.Command{
		Use:               "group",
		Short:             "Perform group cache operations",
		PersistentPreRunE: setupGroupClient,
	}

	ggetCmd = &cobra.Command{
		Use:   "get [key...]",
		Short: "Reads the cached values of a key group",
		Long:  "Reads the cached values for all keys of a group in one round trip. The set of keys passed here defines the group.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.PrintResult(rpcClient.Exec(argv(append([]string{"GGET"}, args...)...)))
		},
	}

	gsetCmd = &cobra.Command{
		Use:   "set [key value]...",
		Short: "Caches the values of a key group",
		Long:  "Caches key/value pairs in the group store. Pairs with an empty value pin the key without storing anything.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 || len(args)%2 != 0 {
				return fmt.Errorf("expected an even number of arguments (key value pairs), got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.PrintResult(rpcClient.Exec(argv(append([]string{"GSET"}, args...)...)))
		},
	}

	groupRemCmd = &cobra.Command{
		Use:   "rem [key...]",
		Short: "Removes a key group from the cache",
		Long:  "Removes the group formed by the given keys. Member values are dropped once no other group references them.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.PrintResult(rpcClient.Exec(argv(append([]string{"GROUPREM"}, args...)...)))
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add subcommands to group command
	GroupCommands.AddCommand(ggetCmd)
	GroupCommands.AddCommand(gsetCmd)
	GroupCommands.AddCommand(groupRemCmd)

	// Add common RPC flags to the group command
	util.SetupRPCClientFlags(GroupCommands)
}

// setupGroupClient initializes the RPC client
func setupGroupClient(cmd *cobra.Command, _ []string) error {
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
