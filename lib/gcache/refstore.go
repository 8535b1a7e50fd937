package gcache

import (
	"github.com/groupkv/gkv/lib/strval"
	"github.com/puzpuzpuz/xsync/v3"
)

// RefStore is the reference-counted auxiliary key-value store. Values and
// refcounts live in two maps keyed by the same (immutable, value-semantic)
// key strings; the store never retains caller-owned backing storage.
//
// Lifecycle of a key:
//
//	{absent} -> IncrRef -> {referenced, no value} -> Put -> {referenced,
//	valued} -> DecrRef to zero -> {absent}
//
// Put never changes a refcount and IncrRef never creates a value, so the
// two halves can diverge: a key may be referenced without a value.
type RefStore struct {
	vals *xsync.MapOf[string, *strval.Value]
	refs *xsync.MapOf[string, int64]
}

// NewRefStore creates an empty reference-counted store.
func NewRefStore() *RefStore {
	return &RefStore{
		vals: xsync.NewMapOf[string, *strval.Value](),
		refs: xsync.NewMapOf[string, int64](),
	}
}

// Get returns the value stored at key, or nil. Pure lookup: neither
// refcounts nor recency are touched.
func (s *RefStore) Get(key string) *strval.Value {
	v, ok := s.vals.Load(key)
	if !ok {
		return nil
	}
	return v
}

// Put stores val at key, replacing any previous value. The refcount is not
// consulted: a Put on an unreferenced key creates a value that only a later
// IncrRef/DecrRef cycle can evict.
func (s *RefStore) Put(key string, val *strval.Value) {
	s.vals.Store(key, val)
}

// IncrRef increments the refcount of key, creating the counter at 1 for a
// previously unseen key. No value is created.
func (s *RefStore) IncrRef(key string) {
	count, _ := s.refs.Load(key)
	s.refs.Store(key, count+1)
}

// DecrRef decrements the refcount of key. Reaching zero deletes the counter
// and any stored value as one logical step. Decrementing an absent key is a
// no-op; counts never go negative.
func (s *RefStore) DecrRef(key string) {
	count, ok := s.refs.Load(key)
	if !ok {
		return
	}
	if count-1 <= 0 {
		s.refs.Delete(key)
		s.vals.Delete(key)
		return
	}
	s.refs.Store(key, count-1)
}

// Refs returns the current refcount of key (0 if absent).
func (s *RefStore) Refs(key string) int64 {
	count, _ := s.refs.Load(key)
	return count
}

// Len returns the number of stored values.
func (s *RefStore) Len() int {
	return s.vals.Size()
}
