package gcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock is a manually advanced recency clock.
type testClock struct{ now uint64 }

func (c *testClock) Now() uint64 { return c.now }

func newTestIndex() (*Index, *RefStore, Resolver, *testClock) {
	store := NewRefStore()
	resolver := NewResolver()
	clock := &testClock{now: 1}
	idx := NewIndex(store, resolver, &IndexOptions{Clock: clock.Now})
	return idx, store, resolver, clock
}

func TestTouchCreatesAndIncrRefsOnce(t *testing.T) {
	idx, store, resolver, clock := newTestIndex()

	id := resolver.GroupId([]string{"a", "b"})
	idx.Touch(id)

	ts, ok := idx.Recency(id)
	require.True(t, ok)
	assert.EqualValues(t, 1, ts)
	assert.EqualValues(t, 1, store.Refs("a"))
	assert.EqualValues(t, 1, store.Refs("b"))

	// second touch: recency moves, refcounts do not
	clock.now = 5
	idx.Touch(id)

	ts, _ = idx.Recency(id)
	assert.EqualValues(t, 5, ts)
	assert.EqualValues(t, 1, store.Refs("a"))
	assert.EqualValues(t, 1, store.Refs("b"))
}

func TestRecencyAbsent(t *testing.T) {
	idx, _, _, _ := newTestIndex()

	_, ok := idx.Recency(GroupId("0000000000000000"))
	assert.False(t, ok)
}

func TestRemoveCascades(t *testing.T) {
	idx, store, resolver, _ := newTestIndex()

	id := resolver.GroupId([]string{"a", "b"})
	idx.Touch(id)

	idx.Remove(id)

	_, ok := idx.Recency(id)
	assert.False(t, ok)
	assert.EqualValues(t, 0, store.Refs("a"))
	assert.EqualValues(t, 0, store.Refs("b"))
	assert.Equal(t, 0, idx.Len())
}

func TestRemoveUnknownGroupIsNoop(t *testing.T) {
	idx, store, resolver, _ := newTestIndex()

	// register the members with another group so refcounts exist
	other := resolver.GroupId([]string{"a"})
	idx.Touch(other)

	// removing a never-touched group must not blow up and must not drive
	// unrelated counts negative
	unknown := resolver.GroupId([]string{"x", "y"})
	idx.Remove(unknown)

	assert.EqualValues(t, 1, store.Refs("a"))
	assert.EqualValues(t, 0, store.Refs("x"))
}

func TestSharedMemberAcrossGroups(t *testing.T) {
	idx, store, resolver, _ := newTestIndex()

	g1 := resolver.GroupId([]string{"shared", "one"})
	g2 := resolver.GroupId([]string{"shared", "two"})
	idx.Touch(g1)
	idx.Touch(g2)

	assert.EqualValues(t, 2, store.Refs("shared"))

	idx.Remove(g1)
	assert.EqualValues(t, 1, store.Refs("shared"), "key stays alive while one group remains")

	idx.Remove(g2)
	assert.EqualValues(t, 0, store.Refs("shared"))
}

func TestOldestRanking(t *testing.T) {
	idx, _, resolver, clock := newTestIndex()

	ga := resolver.GroupId([]string{"a"})
	gb := resolver.GroupId([]string{"b"})
	gc := resolver.GroupId([]string{"c"})

	idx.Touch(ga)
	clock.now = 2
	idx.Touch(gb)
	clock.now = 3
	idx.Touch(gc)

	// refresh ga so gb becomes the eviction candidate
	clock.now = 4
	idx.Touch(ga)

	oldest := idx.Oldest(2)
	require.Len(t, oldest, 2)
	assert.Equal(t, gb, oldest[0])
	assert.Equal(t, gc, oldest[1])

	// ranking is a snapshot; the index is unchanged
	assert.Equal(t, 3, idx.Len())
	oldest2 := idx.Oldest(3)
	assert.Len(t, oldest2, 3)
}
