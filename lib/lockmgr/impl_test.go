package lockmgr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupkv/gkv/lib/store"
)

func newTestManager(t *testing.T) ILockManager {
	t.Helper()
	s := store.New(nil)
	t.Cleanup(func() { _ = s.Close() })
	return NewLockManager(s)
}

func TestAcquireRelease(t *testing.T) {
	lm := newTestManager(t)

	ok, owner, err := lm.AcquireLock("resource", 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, owner)

	// held locks cannot be re-acquired
	ok, _, err = lm.AcquireLock("resource", 0)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = lm.ReleaseLock("resource", owner)
	require.NoError(t, err)
	assert.True(t, ok)

	// released locks are free again
	ok, _, err = lm.AcquireLock("resource", 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReleaseChecksOwnership(t *testing.T) {
	lm := newTestManager(t)

	ok, owner, err := lm.AcquireLock("resource", 0)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = lm.ReleaseLock("resource", []byte("not the owner"))
	require.NoError(t, err)
	assert.False(t, ok)

	// the real owner still succeeds
	ok, err = lm.ReleaseLock("resource", owner)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReleaseMissingLock(t *testing.T) {
	lm := newTestManager(t)
	ok, err := lm.ReleaseLock("never locked", []byte("whatever"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLockTimeout(t *testing.T) {
	lm := newTestManager(t)

	ok, _, err := lm.AcquireLock("resource", 30*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	ok, _, err = lm.AcquireLock("resource", 0)
	require.NoError(t, err)
	assert.False(t, ok)

	time.Sleep(60 * time.Millisecond)

	ok, _, err = lm.AcquireLock("resource", 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestManagersShareState(t *testing.T) {
	s := store.New(nil)
	t.Cleanup(func() { _ = s.Close() })

	a := NewLockManager(s)
	b := NewLockManager(s)

	ok, owner, err := a.AcquireLock("resource", 0)
	require.NoError(t, err)
	require.True(t, ok)

	ok, _, err = b.AcquireLock("resource", 0)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = b.ReleaseLock("resource", owner)
	require.NoError(t, err)
	assert.True(t, ok)
}
