// Package client implements the RPC client for the key-value store.
// It provides a command executor that forwards commands to a remote server
// and a lock manager built on top of it.
//
// The package focuses on:
//   - Transparent RPC access to the command surface of a remote store
//   - Integration with the transport and serialization layers
//   - Error handling and conversion between RPC and command errors
//
// Key Components:
//
//   - NewRPCClient: Factory function that creates a client implementing the
//     lockmgr.CommandExecutor interface. The client forwards all commands to
//     the remote server via the configured transport layer.
//
//   - NewRPCLockMgr: Factory function that creates a lockmgr.ILockManager
//     whose locks live on the remote server.
//
// Usage Example:
//
//	// Configure the client
//	config := common.ClientConfig{
//	  Transport: common.ClientTransportConf{
//	    Endpoints:              []string{"localhost:6380"},
//	    RetryCount:             3,
//	    ConnectionsPerEndpoint: 1,
//	  },
//	  TimeoutSecond: 5,
//	}
//
//	// Create the client
//	c, _ := client.NewRPCClient(config, tcp.NewTCPClientTransport(), serializer.NewBinarySerializer())
//	defer c.Close()
//
//	// Execute commands
//	res := c.Exec([][]byte{[]byte("SET"), []byte("mykey"), []byte("myvalue")})
//	res = c.Exec([][]byte{[]byte("GET"), []byte("mykey")})
//
//	// Create and use a lock manager
//	lockMgr, _ := client.NewRPCLockMgr(config, tcp.NewTCPClientTransport(), serializer.NewBinarySerializer())
//	acquired, ownerID, _ := lockMgr.AcquireLock("mylock", 30*time.Second)
//	if acquired {
//	  lockMgr.ReleaseLock("mylock", ownerID)
//	}
//
// Performance Considerations:
//
//   - For applications that frequently send large payloads, increasing
//     ConnectionsPerEndpoint can improve throughput by allowing parallel
//     requests.
//
//   - For small messages, a single connection per endpoint is often more
//     efficient due to reduced connection overhead.
//
//   - The choice of serializer significantly affects performance. The binary
//     serializer provides the best performance and smallest payload size.
//
// Thread Safety:
//
//	All client implementations are thread-safe and can be used concurrently
//	from multiple goroutines without additional synchronization.
package client
