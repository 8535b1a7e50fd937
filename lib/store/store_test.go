package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// args builds an argv slice from string arguments.
func args(parts ...string) [][]byte {
	argv := make([][]byte, len(parts))
	for i, p := range parts {
		argv[i] = []byte(p)
	}
	return argv
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(nil)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// requireBulk asserts a bulk reply with the given payload.
func requireBulk(t *testing.T, r Result, want string) {
	t.Helper()
	require.Equal(t, ReplyBulk, r.Reply.Type, "unexpected reply: %+v", r.Reply)
	require.Equal(t, want, string(r.Reply.Bulk))
}

// requireInt asserts an integer reply with the given value.
func requireInt(t *testing.T, r Result, want int64) {
	t.Helper()
	require.Equal(t, ReplyInt, r.Reply.Type, "unexpected reply: %+v", r.Reply)
	require.Equal(t, want, r.Reply.Int)
}

// requireOK asserts the OK status reply.
func requireOK(t *testing.T, r Result) {
	t.Helper()
	require.Equal(t, ReplyStatus, r.Reply.Type, "unexpected reply: %+v", r.Reply)
	require.Equal(t, "OK", r.Reply.Status)
}

// requireErrCode asserts an error reply with the given return code.
func requireErrCode(t *testing.T, r Result, code RetCode) {
	t.Helper()
	require.Equal(t, ReplyError, r.Reply.Type, "unexpected reply: %+v", r.Reply)
	require.Equal(t, code, r.Reply.Err.Code)
}

// --------------------------------------------------------------------------
// Dispatch
// --------------------------------------------------------------------------

func TestExecUnknownCommand(t *testing.T) {
	s := newTestStore(t)
	requireErrCode(t, s.Exec(args("NOSUCH", "a")), RetCSyntax)
	requireErrCode(t, s.Exec(nil), RetCSyntax)
}

func TestExecArity(t *testing.T) {
	s := newTestStore(t)

	// exact arity
	requireErrCode(t, s.Exec(args("GET")), RetCSyntax)
	requireErrCode(t, s.Exec(args("GET", "a", "b")), RetCSyntax)

	// minimum arity
	requireErrCode(t, s.Exec(args("SET", "a")), RetCSyntax)
	requireErrCode(t, s.Exec(args("MGET")), RetCSyntax)
}

func TestExecCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	requireOK(t, s.Exec(args("set", "a", "1")))
	requireBulk(t, s.Exec(args("Get", "a")), "1")
}

func TestExecGroupAliases(t *testing.T) {
	s := newTestStore(t)
	requireOK(t, s.Exec(args("GROUP-SET", "a", "1")))
	res := s.Exec(args("GROUP-GET", "a"))
	require.Equal(t, ReplyArray, res.Reply.Type)
	requireOK(t, s.Exec(args("GROUP-REM", "a")))
}

// --------------------------------------------------------------------------
// Dirty counter
// --------------------------------------------------------------------------

func TestDirtyCounting(t *testing.T) {
	s := newTestStore(t)

	requireOK(t, s.Exec(args("SET", "a", "1")))
	assert.Equal(t, uint64(1), s.DB().Dirty())

	requireOK(t, s.Exec(args("MSET", "b", "1", "c", "2")))
	assert.Equal(t, uint64(3), s.DB().Dirty())

	// reads and group commands leave the counter alone
	s.Exec(args("GET", "a"))
	s.Exec(args("GSET", "x", "1"))
	s.Exec(args("GGET", "x"))
	assert.Equal(t, uint64(3), s.DB().Dirty())

	requireInt(t, s.Exec(args("INCR", "n")), 1)
	assert.Equal(t, uint64(4), s.DB().Dirty())

	// failed commands leave the counter alone
	requireErrCode(t, s.Exec(args("INCRBY", "n", "nope")), RetCSyntax)
	assert.Equal(t, uint64(4), s.DB().Dirty())
}
