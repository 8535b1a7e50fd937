// Package base implements the transport-independent parts of the RPC
// transport layer. Concrete transports (tcp, unix) only supply a connector
// that knows how to create listeners and connections; everything else,
// framing, request multiplexing, worker limiting, retries and
// reconnection, lives here.
//
// Wire framing:
//
//	Every request and response travels as one frame:
//	- 8 bytes: requestID (uint64, big endian)
//	- 4 bytes: payload length (uint32, big endian)
//	- N bytes: payload
//
//	The requestID correlates responses with requests, so one connection
//	can carry any number of requests in flight at once.
package base
