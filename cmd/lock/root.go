package lock

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/groupkv/gkv/cmd/util"
	"github.com/groupkv/gkv/lib/lockmgr"
	"github.com/groupkv/gkv/rpc/client"
	"github.com/spf13/cobra"
)

var (
	rpcLockMgr     lockmgr.ILockManager
	acquireTimeout time.Duration

	// LockCommands represents the lock command group
	LockCommands = &cobra.Command{
		Use:               "lock",
		Short:             "Perform lock operations",
		PersistentPreRunE: setupLockClient,
	}
)

func init() {
	cobra.OnInitialize(util.InitClientConfig)
	util.SetupRPCClientFlags(LockCommands)

	acquireCmd := &cobra.Command{
		Use:   "acquire [key]",
		Short: "Acquire a lock",
		Args:  cobra.ExactArgs(1),
		RunE:  runAcquire,
	}
	acquireCmd.Flags().DurationVar(&acquireTimeout, "lock-timeout", 30*time.Second, "Lock timeout (0 for no timeout)")

	releaseCmd := &cobra.Command{
		Use:   "release [key] [ownerID]",
		Short: "Release a previously acquired lock",
		Long:  "Release a lock using the key and owner ID. The owner ID is the hex string returned by the acquire command.",
		Args:  cobra.ExactArgs(2),
		RunE:  runRelease,
	}

	LockCommands.AddCommand(acquireCmd)
	LockCommands.AddCommand(releaseCmd)
}

// setupLockClient builds a lock manager over an RPC client.
func setupLockClient(cmd *cobra.Command, _ []string) error {
	config, t, s, err := util.ClientComponents(cmd)
	if err != nil {
		return err
	}
	rpcLockMgr, err = client.NewRPCLockMgr(*config, t, s)
	return err
}

func runAcquire(cmd *cobra.Command, args []string) error {
	acquired, ownerID, err := rpcLockMgr.AcquireLock(args[0], acquireTimeout)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %v", err)
	}
	if !acquired {
		fmt.Println("acquired=false")
		return nil
	}

	// the owner id is printed hex encoded so it can be passed back verbatim
	fmt.Printf("acquired=true, ownerId=%s\n", hex.EncodeToString(ownerID))
	return nil
}

func runRelease(_ *cobra.Command, args []string) error {
	ownerID, err := hex.DecodeString(args[1])
	if err != nil {
		return fmt.Errorf("invalid owner ID format: %v", err)
	}

	released, err := rpcLockMgr.ReleaseLock(args[0], ownerID)
	if err != nil {
		return fmt.Errorf("failed to release lock: %v", err)
	}

	fmt.Printf("released=%v\n", released)
	return nil
}
