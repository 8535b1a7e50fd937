package server

import (
	"encoding/json"
	"fmt"

	"github.com/groupkv/gkv/lib/store"
	"github.com/groupkv/gkv/rpc/common"
)

// NewStoreServerAdapter creates the adapter that maps RPC messages onto the
// command surface of a store.
func NewStoreServerAdapter() IRPCServerAdapter {
	return &storeServerAdapterImpl{}
}

type storeServerAdapterImpl struct{}

func (adapter *storeServerAdapterImpl) Handle(req *common.Message, s *store.Store) *common.Message {
	// Check for nil store
	if s == nil {
		return common.NewErrorResponse("handler: store is nil")
	}

	// Handle different message types
	switch req.MsgType {
	case common.MsgTCommand:
		res := s.Exec(req.Argv)
		return common.NewCommandResponse(res.Reply)
	case common.MsgTInfo:
		meta, err := json.Marshal(s.DB().Info())
		return common.NewInfoResponse(meta, err)
	default:
		return common.NewErrorResponse(
			fmt.Sprintf("RPC StoreAdapter - Unsuported message type: %s", req.MsgType),
		)
	}
}
