// Package transport defines the network communication abstractions of the
// RPC system. A transport moves opaque byte frames between client and
// server; serialization and command semantics live elsewhere.
//
// The base subpackage implements the shared framing, connection handling,
// worker limiting and retry logic. The tcp and unix subpackages plug
// concrete socket types into it.
package transport
