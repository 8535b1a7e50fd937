package client

import (
	"github.com/groupkv/gkv/lib/lockmgr"
	"github.com/groupkv/gkv/rpc/common"
	"github.com/groupkv/gkv/rpc/serializer"
	"github.com/groupkv/gkv/rpc/transport"
)

// NewRPCLockMgr creates a new lockmgr.ILockManager whose locks live on the
// remote server. It connects the transport and wires a lock manager on top
// of the resulting command executor.
func NewRPCLockMgr(
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (lockmgr.ILockManager, error) {
	c, err := NewRPCClient(config, transport, serializer)
	if err != nil {
		return nil, err
	}
	return lockmgr.NewLockManager(c), nil
}
