// Package tcp provides the TCP implementation of the RPC transport layer.
// It plugs TCP listeners and connections into the shared base transport and
// applies the configured socket tuning (NoDelay, keep-alive, buffer sizes)
// to every connection.
package tcp
