// Package cmd implements the command-line interface for the gkv key-value
// store. It provides a hierarchical command structure with operations for
// running the server and interacting with it as a client.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for key-value store operations (get, set, incr, etc.)
//   - group: Commands for group cache operations (get, set, rem)
//   - lock: Commands for locking operations (acquire, release)
//   - serve: Commands for starting and configuring the gkv server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See gkv -help for a list of all commands.
package cmd
