package gcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverDeterministic(t *testing.T) {
	r := NewResolver()

	id1 := r.GroupId([]string{"a", "b", "c"})
	id2 := r.GroupId([]string{"c", "a", "b"})
	id3 := r.GroupId([]string{"a", "b", "c", "a"})

	assert.Equal(t, id1, id2, "order must not change the id")
	assert.Equal(t, id1, id3, "duplicates must not change the id")
}

func TestResolverDistinctSets(t *testing.T) {
	r := NewResolver()

	assert.NotEqual(t, r.GroupId([]string{"a", "b"}), r.GroupId([]string{"a", "c"}))
	assert.NotEqual(t, r.GroupId([]string{"ab"}), r.GroupId([]string{"a", "b"}))
}

func TestResolverMembers(t *testing.T) {
	r := NewResolver()

	id := r.GroupId([]string{"b", "a", "b"})
	members := r.Members(id)
	require.Equal(t, []string{"a", "b"}, members)

	// the returned slice is a copy
	members[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, r.Members(id))

	assert.Nil(t, r.Members(GroupId("ffffffffffffffff")), "unknown id has no members")
}
