package db

import (
	"sync/atomic"
	"time"

	"github.com/groupkv/gkv/lib/db/util"
	"github.com/groupkv/gkv/lib/strval"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Constants and option types
// --------------------------------------------------------------------------

const (
	defaultJanitorInterval = 100 * time.Millisecond
	eventQueueSize         = 1024
)

// Keyspace event names emitted via the notification hook.
const (
	EventSet         = "set"
	EventSetRange    = "setrange"
	EventAppend      = "append"
	EventIncrBy      = "incrby"
	EventIncrByFloat = "incrbyfloat"
	EventExpire      = "expire"
	EventDel         = "del"
)

// NotifyFunc receives keyspace events (event name plus affected key).
type NotifyFunc func(event, key string)

// Options configures a DB instance.
type Options struct {
	// JanitorInterval is the time between two janitor sweeps (0 = default).
	JanitorInterval time.Duration

	// OnEvent, if set, receives keyspace event notifications.
	OnEvent NotifyFunc

	// OnModified, if set, is invoked for every modified key (the
	// signal external watchers such as transactions subscribe to).
	OnModified func(key string)
}

// DefaultOptions returns the default DB options.
func DefaultOptions() *Options {
	return &Options{
		JanitorInterval: defaultJanitorInterval,
	}
}

// --------------------------------------------------------------------------
// Core types
// --------------------------------------------------------------------------

// entry is one keyspace slot: the stored value and an optional absolute
// expiration deadline in unix nanoseconds (0 = no expiry).
type entry struct {
	val      *strval.Value
	expireAt uint64
}

// expired reports whether the entry's deadline has passed at time now.
func (e entry) expired(now uint64) bool {
	return e.expireAt != 0 && now >= e.expireAt
}

// expireEvent registers (at > 0) or cancels (at == 0) a deadline for key
// with the janitor.
type expireEvent struct {
	key string
	at  uint64
}

// DB is one database instance. All command execution against a DB is
// serialized by the caller (one logical command at a time); the janitor is
// the only background writer and only ever removes entries whose deadline
// verifiably passed.
type DB struct {
	data  *xsync.MapOf[string, entry]
	pool  *strval.Pool
	dirty atomic.Uint64

	onEvent    NotifyFunc
	onModified func(key string)

	janitorInterval time.Duration
	events          chan expireEvent
	closeCh         chan struct{}
	janitorRunning  atomic.Bool
}

// New creates a new database instance and starts its expiry janitor.
func New(opts *Options) *DB {
	if opts == nil {
		opts = DefaultOptions()
	}
	interval := opts.JanitorInterval
	if interval <= 0 {
		interval = defaultJanitorInterval
	}

	d := &DB{
		data:            xsync.NewMapOf[string, entry](),
		pool:            strval.NewPool(),
		onEvent:         opts.OnEvent,
		onModified:      opts.OnModified,
		janitorInterval: interval,
		events:          make(chan expireEvent, eventQueueSize),
		closeCh:         make(chan struct{}),
	}

	d.startJanitor()
	return d
}

func nowNanos() uint64 {
	return uint64(time.Now().UnixNano())
}

// --------------------------------------------------------------------------
// Keyspace lookups
// --------------------------------------------------------------------------

// LookupKeyRead returns the value stored at key for a read operation, or
// nil if the key is absent or expired. Expired entries are removed lazily.
func (d *DB) LookupKeyRead(key string) *strval.Value {
	return d.lookup(key)
}

// LookupKeyWrite returns the value stored at key for a write operation, or
// nil if the key is absent or expired.
func (d *DB) LookupKeyWrite(key string) *strval.Value {
	return d.lookup(key)
}

func (d *DB) lookup(key string) *strval.Value {
	e, ok := d.data.Load(key)
	if !ok {
		return nil
	}
	if e.expired(nowNanos()) {
		d.data.Delete(key)
		return nil
	}
	return e.val
}

// Exists reports whether key holds a live value.
func (d *DB) Exists(key string) bool {
	return d.lookup(key) != nil
}

// Len returns the number of slots in the keyspace, including entries whose
// deadline passed but which the janitor has not collected yet.
func (d *DB) Len() int {
	return d.data.Size()
}

// --------------------------------------------------------------------------
// Keyspace writes
// --------------------------------------------------------------------------

// SetKey stores val at key. Any previous value and expiration are
// discarded.
func (d *DB) SetKey(key string, val *strval.Value) {
	e, existed := d.data.Load(key)
	d.data.Store(key, entry{val: val})
	if existed && e.expireAt != 0 {
		d.scheduleExpire(key, 0) // cancel the registered deadline
	}
	d.SignalModified(key)
}

// SetKeyExpire stores val at key with a relative time to live.
func (d *DB) SetKeyExpire(key string, val *strval.Value, ttl time.Duration) {
	at := nowNanos() + uint64(ttl)
	d.data.Store(key, entry{val: val, expireAt: at})
	d.scheduleExpire(key, at)
	d.SignalModified(key)
}

// Overwrite replaces the value at key while keeping any expiration
// deadline. For an absent key it behaves like SetKey. Counter and range
// mutations use this: they must not reset a ttl.
func (d *DB) Overwrite(key string, val *strval.Value) {
	d.data.Compute(key, func(old entry, loaded bool) (entry, bool) {
		if !loaded {
			return entry{val: val}, false
		}
		old.val = val
		return old, false
	})
	d.SignalModified(key)
}

// Delete removes key from the keyspace. Returns whether a live entry was
// removed.
func (d *DB) Delete(key string) bool {
	e, ok := d.data.LoadAndDelete(key)
	if !ok {
		return false
	}
	if e.expireAt != 0 {
		d.scheduleExpire(key, 0)
	}
	d.SignalModified(key)
	return !e.expired(nowNanos())
}

// --------------------------------------------------------------------------
// Side-effect plumbing
// --------------------------------------------------------------------------

// SignalModified invokes the modification hook for key. Every keyspace
// write path (SetKey, SetKeyExpire, Overwrite, Delete) calls it; commands
// that mutate a value in place call it themselves.
func (d *DB) SignalModified(key string) {
	if d.onModified != nil {
		d.onModified(key)
	}
}

// Notify emits a keyspace event.
func (d *DB) Notify(event, key string) {
	if d.onEvent != nil {
		d.onEvent(event, key)
	}
}

// AddDirty adds n to the global change counter.
func (d *DB) AddDirty(n uint64) {
	d.dirty.Add(n)
}

// Dirty returns the global change counter.
func (d *DB) Dirty() uint64 {
	return d.dirty.Load()
}

// Pool returns the shared small-integer pool of this instance.
func (d *DB) Pool() *strval.Pool {
	return d.pool
}

// --------------------------------------------------------------------------
// Expiry janitor
// --------------------------------------------------------------------------

// scheduleExpire hands a deadline (or a cancellation, at == 0) to the
// janitor. The send never blocks: when the queue is full the event is
// dropped, which only delays collection - lookups still enforce deadlines
// lazily.
func (d *DB) scheduleExpire(key string, at uint64) {
	select {
	case d.events <- expireEvent{key: key, at: at}:
	case <-d.closeCh:
	default:
	}
}

func (d *DB) startJanitor() {
	if d.janitorRunning.CompareAndSwap(false, true) {
		go d.janitor()
	}
}

// janitor owns the deadline heap. It drains registration events and
// removes entries whose deadline passed, double-checking against the live
// entry because a Set may have replaced the deadline in the meantime.
func (d *DB) janitor() {
	deadlines := util.NewKeyHeap()
	ticker := time.NewTicker(d.janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.closeCh:
			return

		case ev := <-d.events:
			if ev.at == 0 {
				deadlines.Remove(ev.key)
			} else {
				deadlines.Set(ev.key, ev.at)
			}

		case <-ticker.C:
			now := nowNanos()
			for {
				key, at, ok := deadlines.Peek()
				if !ok || at > now {
					break
				}
				deadlines.Remove(key)

				// double-check: the entry may have been rewritten with a
				// later deadline or none at all
				if e, ok := d.data.Load(key); ok && e.expired(now) {
					d.data.Delete(key)
				}
			}
		}
	}
}

// Close stops the janitor. The keyspace stays readable; deadlines are then
// only enforced lazily.
func (d *DB) Close() error {
	select {
	case <-d.closeCh:
	default:
		close(d.closeCh)
	}
	return nil
}
