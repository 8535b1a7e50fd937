package gcache

import (
	"sync"
	"time"

	"github.com/groupkv/gkv/lib/db/util"
	"github.com/puzpuzpuz/xsync/v3"
)

// Logger is the minimal logging surface the index needs. rpc/common's
// leveled logger satisfies it; a nil logger disables diagnostics.
type Logger interface {
	Debugf(format string, args ...interface{})
}

// Index is the group recency (LRU) index: GroupId -> last access time.
// It owns no values; it only establishes and releases the shared-ownership
// relationship between groups and RefStore keys.
type Index struct {
	resolver Resolver
	store    *RefStore
	entries  *xsync.MapOf[GroupId, uint64]

	// recency ranking for external eviction policies
	mu      sync.Mutex
	ranking *util.KeyHeap

	clock  func() uint64
	logger Logger
}

// IndexOptions configures an Index.
type IndexOptions struct {
	// Clock returns the current recency timestamp (unix nanoseconds by
	// default). Tests inject a deterministic clock here.
	Clock func() uint64

	// Logger receives diagnostics (may be nil).
	Logger Logger
}

// NewIndex creates a recency index over the given store and resolver.
func NewIndex(store *RefStore, resolver Resolver, opts *IndexOptions) *Index {
	idx := &Index{
		resolver: resolver,
		store:    store,
		entries:  xsync.NewMapOf[GroupId, uint64](),
		ranking:  util.NewKeyHeap(),
	}
	if opts != nil {
		idx.clock = opts.Clock
		idx.logger = opts.Logger
	}
	if idx.clock == nil {
		idx.clock = func() uint64 { return uint64(time.Now().UnixNano()) }
	}
	return idx
}

// Touch refreshes the recency of a group. A previously unseen group is
// registered and the refcount of every member key is incremented once -
// that is the only place the group->key ownership relation is established.
// Repeat touches only move the timestamp forward.
func (idx *Index) Touch(id GroupId) {
	now := idx.clock()

	_, seen := idx.entries.Load(id)
	idx.entries.Store(id, now)

	idx.mu.Lock()
	idx.ranking.Set(string(id), now)
	idx.mu.Unlock()

	if seen {
		return
	}

	// creation branch: take one reference per member
	for _, key := range idx.resolver.Members(id) {
		idx.store.IncrRef(key)
	}
	if idx.logger != nil {
		idx.logger.Debugf("group %s added to recency index", id)
	}
}

// Recency returns the last access timestamp of a group.
func (idx *Index) Recency(id GroupId) (uint64, bool) {
	return idx.entries.Load(id)
}

// Remove deletes a group from the index and releases one reference per
// member key, which may cascade into store eviction. An unknown group is a
// diagnostic no-op for the index itself; the member decrements still run
// (and are themselves no-ops for unreferenced keys).
func (idx *Index) Remove(id GroupId) {
	if _, ok := idx.entries.LoadAndDelete(id); !ok {
		if idx.logger != nil {
			idx.logger.Debugf("group %s not found in recency index", id)
		}
	}

	idx.mu.Lock()
	idx.ranking.Remove(string(id))
	idx.mu.Unlock()

	for _, key := range idx.resolver.Members(id) {
		idx.store.DecrRef(key)
	}
}

// Oldest returns up to n group ids, least recently touched first. The
// intended consumer is an external eviction policy that ranks candidates
// and calls Remove on its pick.
func (idx *Index) Oldest(n int) []GroupId {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	type popped struct {
		key  string
		prio uint64
	}

	var out []GroupId
	var restore []popped
	for len(out) < n {
		key, prio, ok := idx.ranking.PopMin()
		if !ok {
			break
		}
		out = append(out, GroupId(key))
		restore = append(restore, popped{key, prio})
	}
	for _, p := range restore {
		idx.ranking.Set(p.key, p.prio)
	}
	return out
}

// Len returns the number of registered groups.
func (idx *Index) Len() int {
	return idx.entries.Size()
}
