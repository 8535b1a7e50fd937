package lockmgr

import (
	"time"

	"github.com/groupkv/gkv/lib/store"
)

// CommandExecutor runs one store command. Both the local store.Store and
// the RPC client satisfy it.
type CommandExecutor interface {
	Exec(argv [][]byte) store.Result
}

// ILockManager defines the interface for a lock provider.
type ILockManager interface {
	// AcquireLock acquires the lock for the given key with an optional
	// timeout (0 means no timeout). Returns whether the lock was acquired
	// and, if so, the owner token needed to release it.
	AcquireLock(key string, timeout time.Duration) (ok bool, ownerID []byte, err error)

	// ReleaseLock releases the lock for the given key. It also reports
	// true when the lock did not exist; it reports false only when the
	// lock is held by a different owner.
	ReleaseLock(key string, ownerID []byte) (ok bool, err error)
}
