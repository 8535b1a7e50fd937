// Package store implements the command layer of the engine: the string
// commands over the primary keyspace, the overflow-checked counter
// commands, and the group cache commands over the reference-counted
// auxiliary store.
//
// The package focuses on:
//   - A unified Result type per command: the reply for the client plus an
//     optional rewritten command for downstream propagation (INCRBYFLOAT
//     propagates as an exact SET so replicas converge regardless of float
//     formatting differences)
//   - A structured error system using typed return codes; conflict
//     outcomes (NX on an existing key, MSETNX with any existing key) are
//     defined abort replies, not errors
//   - Copy-on-write discipline: commands never mutate a value in place
//     unless it is exclusively owned and raw-encoded; everything else goes
//     through strval.Unshare first
//
// Commands are dispatched argv-style through Exec, which enforces arity,
// counts per-command metrics and routes to the handler. Every handler runs
// to completion without preemption by another command on the same database
// instance; that serialization is the atomicity unit for all check-then-
// mutate sequences in this package.
package store
