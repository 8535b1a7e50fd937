package transport

import (
	"github.com/groupkv/gkv/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming requests.
// The transport layer calls it with the raw request payload and writes the
// returned payload back as the response.
type ServerHandleFunc func(req []byte) (resp []byte)

// IRPCServerTransport is the interface for the RPC server transport layer.
type IRPCServerTransport interface {
	// RegisterHandler registers the handler for the transport layer.
	// It must be called before Listen.
	RegisterHandler(handler ServerHandleFunc)
	// Listen starts the transport layer and serves incoming requests
	// until the process terminates.
	Listen(config common.ServerConfig) error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the RPC client transport.
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send sends a request to the server and returns the response
	Send(req []byte) (resp []byte, err error)
	// Close closes the transport connection
	Close() error
}
