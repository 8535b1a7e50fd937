// Package unix provides the Unix domain socket implementation of the RPC
// transport layer. It is the fastest option when client and server share a
// host, since traffic never touches the network stack.
package unix
