// Package rpc provides the remote procedure call framework of the gkv
// key-value store. It is the communication layer between clients and the
// server, carrying the command protocol across network boundaries.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures and utilities used across the RPC system,
//     including the Message protocol, configuration structures, and logging.
//
//   - transport: Network communication abstractions with pluggable
//     implementations (TCP, Unix sockets).
//
//   - serializer: Message serialization with multiple format options
//     (Binary, JSON, GOB) for converting between Message objects and byte
//     arrays.
//
//   - client: The RPC client, exposing the same command execution surface
//     as a local store so applications and the lock manager work remotely
//     without changes.
//
//   - server: The RPC server, wiring a store instance to a transport and a
//     serializer and exposing operational metrics.
package rpc
