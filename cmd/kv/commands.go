package kv

import (
	"fmt"

	"github.com/groupkv/gkv/cmd/util"
	"github.com/spf13/cobra"
)

var (
	setNX bool
	setXX bool
	setEX int64
	setPX int64

	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdArgs := argv("SET", args[0], args[1])
			if setNX {
				cmdArgs = append(cmdArgs, []byte("NX"))
			}
			if setXX {
				cmdArgs = append(cmdArgs, []byte("XX"))
			}
			if setEX > 0 {
				cmdArgs = append(cmdArgs, []byte("EX"), []byte(fmt.Sprintf("%d", setEX)))
			}
			if setPX > 0 {
				cmdArgs = append(cmdArgs, []byte("PX"), []byte(fmt.Sprintf("%d", setPX)))
			}
			return util.PrintResult(rpcClient.Exec(cmdArgs))
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.PrintResult(rpcClient.Exec(argv("GET", args[0])))
		},
	}
	getsetCmd = &cobra.Command{
		Use:   "getset [key] [value]",
		Short: "Sets the value for a key and returns the old value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.PrintResult(rpcClient.Exec(argv("GETSET", args[0], args[1])))
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key...]",
		Short: "Deletes one or more keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.PrintResult(rpcClient.Exec(argv(append([]string{"DEL"}, args...)...)))
		},
	}
	existsCmd = &cobra.Command{
		Use:   "exists [key...]",
		Short: "Counts how many of the given keys exist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.PrintResult(rpcClient.Exec(argv(append([]string{"EXISTS"}, args...)...)))
		},
	}
	incrCmd = &cobra.Command{
		Use:   "incr [key]",
		Short: "Increments the integer value of a key by one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.PrintResult(rpcClient.Exec(argv("INCR", args[0])))
		},
	}
	decrCmd = &cobra.Command{
		Use:   "decr [key]",
		Short: "Decrements the integer value of a key by one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.PrintResult(rpcClient.Exec(argv("DECR", args[0])))
		},
	}
	incrByCmd = &cobra.Command{
		Use:   "incrby [key] [increment]",
		Short: "Increments the integer value of a key by the given amount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.PrintResult(rpcClient.Exec(argv("INCRBY", args[0], args[1])))
		},
	}
	incrByFloatCmd = &cobra.Command{
		Use:   "incrbyfloat [key] [increment]",
		Short: "Increments the float value of a key by the given amount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.PrintResult(rpcClient.Exec(argv("INCRBYFLOAT", args[0], args[1])))
		},
	}
	appendCmd = &cobra.Command{
		Use:   "append [key] [value]",
		Short: "Appends a value to a key and returns the new length",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.PrintResult(rpcClient.Exec(argv("APPEND", args[0], args[1])))
		},
	}
	strlenCmd = &cobra.Command{
		Use:   "strlen [key]",
		Short: "Returns the length of the value stored at a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.PrintResult(rpcClient.Exec(argv("STRLEN", args[0])))
		},
	}
	getRangeCmd = &cobra.Command{
		Use:   "getrange [key] [start] [end]",
		Short: "Returns a substring of the value stored at a key",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.PrintResult(rpcClient.Exec(argv("GETRANGE", args[0], args[1], args[2])))
		},
	}
	setRangeCmd = &cobra.Command{
		Use:   "setrange [key] [offset] [value]",
		Short: "Overwrites part of the value stored at a key",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.PrintResult(rpcClient.Exec(argv("SETRANGE", args[0], args[1], args[2])))
		},
	}
	execCmd = &cobra.Command{
		Use:   "exec [command] [args...]",
		Short: "Executes an arbitrary command on the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.PrintResult(rpcClient.Exec(argv(args...)))
		},
	}
	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Prints database statistics of the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := rpcClient.Info()
			if err != nil {
				return err
			}
			fmt.Printf("keys=%d dirty=%d size=%d avg_value=%d median_value=%d expiring_sampled=%d\n",
				info.Keys, info.Dirty, info.SizeBytesEstimate,
				info.AvgValueSize, info.MedianValueSize, info.ExpiringSampled)
			return nil
		},
	}
)

func init() {
	setCmd.Flags().BoolVar(&setNX, "nx", false, "Only set the key if it does not already exist")
	setCmd.Flags().BoolVar(&setXX, "xx", false, "Only set the key if it already exists")
	setCmd.Flags().Int64Var(&setEX, "ex", 0, "Expire time in seconds")
	setCmd.Flags().Int64Var(&setPX, "px", 0, "Expire time in milliseconds")
}
