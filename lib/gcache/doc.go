// Package gcache implements the group-indexed side of the engine: a second,
// reference-counted key-value store whose entries stay alive exactly as long
// as at least one group lists them as a member, plus a recency index that
// tracks when each group was last touched.
//
// Key Components:
//
//   - Resolver: maps a set of keys to a canonical GroupId and back. The
//     default implementation hashes the sorted, deduplicated key set and
//     retains the reverse mapping; any deterministic scheme satisfying
//     "same key set, same id" can be substituted.
//
//   - RefStore: the auxiliary key-value store with a paired refcount per
//     key. Its namespace is disjoint from the primary keyspace. A key dies
//     when its refcount reaches zero; value and count are removed as one
//     logical step. A key may carry a positive refcount without a value -
//     this mirrors the engine's observable behavior and is documented as a
//     quirk, not an invariant (see the package tests).
//
//   - Index: the group recency (LRU) index. Touching a group the first time
//     registers it and increments the refcount of every member once;
//     subsequent touches only refresh the recency timestamp. Removing a
//     group decrements all members, which may cascade into store eviction.
//     An external eviction policy can consume Oldest() to rank candidates.
//
// Thread-safety: commands execute one at a time per database instance; the
// multi-step touch/remove sequences rely on that serialization. Oldest() is
// additionally guarded so monitoring code may call it from other
// goroutines.
package gcache
