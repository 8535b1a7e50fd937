package gcache

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sort"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// GroupId is the canonical identifier of a group of keys. It is opaque to
// everything but the Resolver that produced it.
type GroupId string

// Resolver maps a set of keys to its canonical GroupId and resolves a
// GroupId back to the member keys. The same key set (regardless of order or
// duplicates) always yields the same id.
type Resolver interface {
	GroupId(keys []string) GroupId
	Members(id GroupId) []string
}

// --------------------------------------------------------------------------
// Default resolver
// --------------------------------------------------------------------------

// hashResolver derives ids by hashing the sorted, deduplicated key set with
// a seeded FNV-1a and remembers the reverse mapping for Members lookups.
type hashResolver struct {
	seed    uint64
	members *xsync.MapOf[GroupId, []string]
}

// NewResolver creates the default group membership resolver.
func NewResolver() Resolver {
	return &hashResolver{
		seed:    generateSeed(),
		members: xsync.NewMapOf[GroupId, []string](),
	}
}

func (r *hashResolver) GroupId(keys []string) GroupId {
	set := canonicalKeySet(keys)

	// FNV-1a over the member keys, NUL-separated, seeded per resolver
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	hash := uint64(offset64) ^ r.seed
	for _, key := range set {
		for i := 0; i < len(key); i++ {
			hash ^= uint64(key[i])
			hash *= prime64
		}
		// key separator step so {"ab"} and {"a","b"} differ
		hash *= prime64
	}

	id := GroupId(fmt.Sprintf("%016x", hash))
	r.members.LoadOrStore(id, set)
	return id
}

func (r *hashResolver) Members(id GroupId) []string {
	set, ok := r.members.Load(id)
	if !ok {
		return nil
	}
	out := make([]string, len(set))
	copy(out, set)
	return out
}

// canonicalKeySet returns a sorted copy of keys with duplicates removed.
func canonicalKeySet(keys []string) []string {
	set := make([]string, len(keys))
	copy(set, keys)
	sort.Strings(set)

	out := set[:0]
	for i, key := range set {
		if i == 0 || key != set[i-1] {
			out = append(out, key)
		}
	}
	return out
}

// generateSeed creates a random seed for id derivation, falling back to the
// clock if the system randomness source is unavailable.
func generateSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}
