// Package db implements the per-instance database context the command layer
// operates on. It owns the primary keyspace, the global change (dirty)
// counter, the shared small-integer pool and the keyspace notification
// hooks; everything a command handler needs arrives through one *DB value
// instead of process-global state.
//
// The package focuses on:
//   - The primary keyspace: a concurrent map of string keys to string values
//     with optional absolute expiration per key
//   - Lazy expiration on lookup plus a background janitor that sweeps
//     deadlines collected over an event channel into a deadline heap
//   - Keyspace event notification and the modified-key signal consumed by
//     external collaborators (replication, blocking clients, ...)
//
// The auxiliary group-indexed store lives in lib/gcache and is deliberately
// a disjoint namespace: the same key string may exist in both stores with
// different values and no coupling.
package db
