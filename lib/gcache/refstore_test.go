package gcache

import (
	"testing"

	"github.com/groupkv/gkv/lib/strval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefStorePutGet(t *testing.T) {
	s := NewRefStore()

	assert.Nil(t, s.Get("k"))

	s.Put("k", strval.NewString("v1"))
	require.NotNil(t, s.Get("k"))
	assert.Equal(t, "v1", s.Get("k").String())

	// replace without refcount change
	s.IncrRef("k")
	s.Put("k", strval.NewString("v2"))
	assert.Equal(t, "v2", s.Get("k").String())
	assert.EqualValues(t, 1, s.Refs("k"), "Put must never change a refcount")
}

func TestRefStoreRefcountLifecycle(t *testing.T) {
	s := NewRefStore()

	s.IncrRef("k")
	s.IncrRef("k")
	assert.EqualValues(t, 2, s.Refs("k"))

	s.Put("k", strval.NewString("v"))

	s.DecrRef("k")
	assert.EqualValues(t, 1, s.Refs("k"))
	assert.NotNil(t, s.Get("k"), "value survives while references remain")

	s.DecrRef("k")
	assert.EqualValues(t, 0, s.Refs("k"))
	assert.Nil(t, s.Get("k"), "refcount zero evicts the value")
	assert.Equal(t, 0, s.Len())
}

func TestRefStoreDecrAbsentIsNoop(t *testing.T) {
	s := NewRefStore()

	s.DecrRef("never-seen")
	assert.EqualValues(t, 0, s.Refs("never-seen"))

	// a later increment starts from a clean slate
	s.IncrRef("never-seen")
	assert.EqualValues(t, 1, s.Refs("never-seen"))
}

// Documented quirk, not an invariant: a key can be referenced with no
// stored value, because IncrRef never creates values and group-set skips
// empty ones. The store must tolerate the divergence in both directions.
func TestRefStoreReferencedWithoutValue(t *testing.T) {
	s := NewRefStore()

	s.IncrRef("ghost")
	assert.EqualValues(t, 1, s.Refs("ghost"))
	assert.Nil(t, s.Get("ghost"))

	// dropping the last reference on a valueless key is clean
	s.DecrRef("ghost")
	assert.EqualValues(t, 0, s.Refs("ghost"))
	assert.Equal(t, 0, s.Len())
}
