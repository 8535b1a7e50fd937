package lockmgr

import (
	"bytes"
	"strconv"
	"time"

	"github.com/groupkv/gkv/lib/store"
)

type lockMgrImpl struct {
	exec CommandExecutor
}

// NewLockManager creates a lock manager over the given command executor.
func NewLockManager(exec CommandExecutor) ILockManager {
	return &lockMgrImpl{exec: exec}
}

func (lm *lockMgrImpl) AcquireLock(key string, timeout time.Duration) (bool, []byte, error) {
	ownerID, err := generateOwnerID()
	if err != nil {
		return false, nil, err
	}

	argv := [][]byte{[]byte("SET"), []byte(key), ownerID, []byte("NX")}
	if timeout > 0 {
		argv = append(argv, []byte("PX"),
			[]byte(strconv.FormatInt(timeout.Milliseconds(), 10)))
	}

	res := lm.exec.Exec(argv)
	switch res.Reply.Type {
	case store.ReplyStatus:
		return true, ownerID, nil
	case store.ReplyNil:
		// someone else holds the lock
		return false, nil, nil
	case store.ReplyError:
		return false, nil, res.Reply.Err
	default:
		return false, nil, store.NewError(store.RetCInternal, "unexpected reply to SET")
	}
}

func (lm *lockMgrImpl) ReleaseLock(key string, ownerID []byte) (bool, error) {
	res := lm.exec.Exec([][]byte{[]byte("GET"), []byte(key)})
	switch res.Reply.Type {
	case store.ReplyNil:
		// no lock means nothing left to release
		return true, nil
	case store.ReplyError:
		return false, res.Reply.Err
	case store.ReplyBulk:
	default:
		return false, store.NewError(store.RetCInternal, "unexpected reply to GET")
	}

	if !bytes.Equal(res.Reply.Bulk, ownerID) {
		return false, nil
	}

	res = lm.exec.Exec([][]byte{[]byte("DEL"), []byte(key)})
	if res.Reply.IsError() {
		return false, res.Reply.Err
	}
	return true, nil
}
