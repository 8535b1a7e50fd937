package kv

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/groupkv/gkv/cmd/util"
	"github.com/groupkv/gkv/lib/store"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for gkv servers",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix        = "__test"
	perfLargeValueSizeKB = 100
	perfNumThreads       = 10
	perfKeySpread        = 100
	perfOpsPerTest       = 10000
	perfSkip             = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,get)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "large-value-size"
	perfTestCmd.Flags().Int(key, 1000, util.WrapString("How large the value for the set-large test should be (in KB)"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "ops"
	perfTestCmd.Flags().Int(key, 10000, util.WrapString("How many operations to perform per test"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfLargeValueSizeKB = viper.GetInt("large-value-size")
	perfKeySpread = viper.GetInt("keys")
	perfNumThreads = viper.GetInt("threads")
	perfOpsPerTest = viper.GetInt("ops")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for gkv servers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Printf("Operations per test: %d\n", perfOpsPerTest)
	fmt.Println()

	fmt.Println("starting tests...")

	largeValue := strings.Repeat("x", perfLargeValueSizeKB*1024)
	results := make(map[string]gometrics.Timer)

	tests := []struct {
		name  string
		setup func(key string)
		op    func(key string, i int)
	}{
		{
			name: "set",
			op: func(key string, _ int) {
				checkReply("set", rpcClient.Exec(argv("SET", key, "test")))
			},
		},
		{
			name: "set-large",
			op: func(key string, _ int) {
				checkReply("set-large", rpcClient.Exec(argv("SET", key, largeValue)))
			},
		},
		{
			name: "get",
			setup: func(key string) {
				checkReply("get", rpcClient.Exec(argv("SET", key, "test")))
			},
			op: func(key string, _ int) {
				checkReply("get", rpcClient.Exec(argv("GET", key)))
			},
		},
		{
			name: "incr",
			setup: func(key string) {
				checkReply("incr", rpcClient.Exec(argv("SET", key, "0")))
			},
			op: func(key string, _ int) {
				checkReply("incr", rpcClient.Exec(argv("INCR", key)))
			},
		},
		{
			name: "exists",
			setup: func(key string) {
				checkReply("exists", rpcClient.Exec(argv("SET", key, "test")))
			},
			op: func(key string, _ int) {
				checkReply("exists", rpcClient.Exec(argv("EXISTS", key)))
			},
		},
		{
			name: "group",
			op: func(key string, i int) {
				if i%2 == 0 {
					checkReply("group", rpcClient.Exec(argv("GSET", key, "test")))
				} else {
					checkReply("group", rpcClient.Exec(argv("GGET", key)))
				}
			},
		},
		{
			name: "mixed",
			op: func(key string, i int) {
				switch i % 4 {
				case 0:
					checkReply("mixed", rpcClient.Exec(argv("SET", key, "test")))
				case 1:
					checkReply("mixed", rpcClient.Exec(argv("GET", key)))
				case 2:
					checkReply("mixed", rpcClient.Exec(argv("APPEND", key, "x")))
				case 3:
					checkReply("mixed", rpcClient.Exec(argv("DEL", key)))
				}
			},
		},
	}

	for _, test := range tests {
		if shouldSkip(test.name) {
			fmt.Printf("%-20sskipped\n", test.name)
			continue
		}

		getKey, iter := getKeys(test.name)
		if test.setup != nil {
			iter(test.setup)
		}

		timer := gometrics.NewTimer()
		runTimed(timer, getKey, test.op)
		results[test.name] = timer
		printResult(test.name, timer)

		// cleanup
		iter(func(k string) {
			rpcClient.Exec(argv("DEL", k))
			rpcClient.Exec(argv("GROUPREM", k))
		})
	}

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// runTimed spreads perfOpsPerTest operations over perfNumThreads workers and
// records every operation in the timer.
func runTimed(timer gometrics.Timer, getKey func(int) string, op func(string, int)) {
	var wg sync.WaitGroup
	opsPerThread := perfOpsPerTest / perfNumThreads

	for t := 0; t < perfNumThreads; t++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := 0; i < opsPerThread; i++ {
				n := offset + i
				timer.Time(func() {
					op(getKey(n), n)
				})
			}
		}(t * opsPerThread)
	}

	wg.Wait()
}

func checkReply(test string, res store.Result) {
	if res.Reply.IsError() {
		log.Printf("(%s) - command error: %s\n", test, res.Reply.Err.Msg)
	}
}

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// creates an array of test keys and functions to work with them
func getKeys(prefix string) (func(int) string, func(func(string))) {
	keys := make([]string, perfKeySpread)
	for i := 0; i < perfKeySpread; i++ {
		keys[i] = fmt.Sprintf("%s-%s-%d", perfKeyPrefix, prefix, i)
	}

	// Function to get a key by index (with wraparound)
	getKey := func(i int) string {
		return keys[i%perfKeySpread]
	}

	// Function to iterate over all keys and apply a function to each
	iterateKeys := func(fn func(string)) {
		for _, key := range keys {
			fn(key)
		}
	}

	return getKey, iterateKeys
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, timer gometrics.Timer) {
	if timer.Count() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	mean := time.Duration(int64(timer.Mean()))
	p99 := time.Duration(int64(timer.Percentile(0.99)))

	// Print the formatted result
	fmt.Printf("%-20s%v/op (p99 %v)\t%.0f ops/sec\n", test, mean, p99, timer.RateMean())
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]gometrics.Timer) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	config := util.GetClientConfig()

	// Write header
	header := []string{
		"Test", "Count", "MeanNs", "P95Ns", "P99Ns", "OpsPerSec",
		"Endpoints", "TimeoutSec", "RetryCount", "ConnectionsPerEndpoint",
		"Serializer", "Transport",
		"Threads", "LargeValueSizeKB", "KeysCount",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, timer := range results {
		row := []string{
			test,
			strconv.FormatInt(timer.Count(), 10),
			fmt.Sprintf("%.0f", timer.Mean()),
			fmt.Sprintf("%.0f", timer.Percentile(0.95)),
			fmt.Sprintf("%.0f", timer.Percentile(0.99)),
			fmt.Sprintf("%.0f", timer.RateMean()),
			strings.Join(config.Transport.Endpoints, ";"),
			strconv.Itoa(config.TimeoutSecond),
			strconv.Itoa(config.Transport.RetryCount),
			strconv.Itoa(config.Transport.ConnectionsPerEndpoint),
			viper.GetString("serializer"),
			viper.GetString("transport"),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfLargeValueSizeKB),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
