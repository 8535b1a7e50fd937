// Package server implements the RPC server for the key-value store.
// It wires one store instance to a transport and a serializer and routes
// incoming messages through an adapter.
//
// The package focuses on:
//   - Server-side handling of command and info requests
//   - Adapter pattern to decouple the store surface from RPC mechanisms
//   - Optional Prometheus metrics exposition over HTTP
//
// Key Components:
//
//   - IRPCServerAdapter: Interface defining the contract for all server
//     adapters, with the Handle method that processes one request against
//     a store.Store.
//
//   - NewStoreServerAdapter: Factory function creating the default adapter,
//     translating command requests to store.Exec calls and info requests
//     to database statistics.
//
//   - NewRPCServer: Factory function creating a configured server with the
//     specified transport and serializer mechanisms.
//
// Usage Example:
//
//	config := common.ServerConfig{
//	  Transport: common.ServerTransportConf{
//	    Endpoint: "0.0.0.0:6380",
//	  },
//	  TimeoutSecond: 5,
//	  LogLevel:      "info",
//	}
//
//	s := server.NewRPCServer(
//	  config,
//	  tcp.NewTCPDefaultServerTransport(),
//	  serializer.NewBinarySerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Thread Safety:
//
//	The server implementation is thread-safe and can handle concurrent
//	requests across multiple connections. Each request is processed
//	independently. The Serve method is not thread-safe and should be
//	called only once.
package server
