package client

import (
	"encoding/json"
	"fmt"

	"github.com/groupkv/gkv/lib/db"
	"github.com/groupkv/gkv/lib/store"
	"github.com/groupkv/gkv/rpc/common"
	"github.com/groupkv/gkv/rpc/serializer"
	"github.com/groupkv/gkv/rpc/transport"
)

// NewRPCClient creates a new RPC client
// The function takes a config, a transport and a serializer as parameters
// The returned client satisfies lockmgr.CommandExecutor
func NewRPCClient(
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (*Client, error) {

	// Connect the transport
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	return &Client{
		config:     config,
		transport:  transport,
		serializer: serializer,
	}, nil
}

// Client forwards commands to a remote store over the transport layer.
type Client struct {
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// Exec executes one command on the remote store. Transport and protocol
// failures surface as error replies so callers see one uniform shape.
func (c *Client) Exec(argv [][]byte) store.Result {
	resp, err := invokeRPCRequest(common.NewCommandRequest(argv), c.transport, c.serializer)
	if err != nil {
		return store.Result{Reply: store.Reply{
			Type: store.ReplyError,
			Err:  store.NewError(store.RetCInternal, err.Error()),
		}}
	}
	if resp.Reply == nil {
		return store.Result{Reply: store.Reply{
			Type: store.ReplyError,
			Err:  store.NewError(store.RetCInternal, "RPC client - response carries no reply"),
		}}
	}
	return store.Result{Reply: *resp.Reply}
}

// Info fetches the database statistics of the remote store.
func (c *Client) Info() (db.Info, error) {
	resp, err := invokeRPCRequest(common.NewInfoRequest(), c.transport, c.serializer)
	if err != nil {
		return db.Info{}, err
	}

	var info db.Info
	if err := json.Unmarshal(resp.Meta, &info); err != nil {
		return db.Info{}, fmt.Errorf("RPC client - failed to decode info: %s", err)
	}
	return info, nil
}

// Close shuts down the underlying transport connections.
func (c *Client) Close() error {
	return c.transport.Close()
}
