package store

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------------------------------------------------------------
// INCR / DECR / INCRBY / DECRBY
// --------------------------------------------------------------------------

func TestIncrDecrBasics(t *testing.T) {
	s := newTestStore(t)

	// missing key counts as 0
	requireInt(t, s.Exec(args("INCR", "n")), 1)
	requireInt(t, s.Exec(args("INCR", "n")), 2)
	requireInt(t, s.Exec(args("DECR", "n")), 1)
	requireInt(t, s.Exec(args("DECR", "n")), 0)
	requireInt(t, s.Exec(args("DECR", "n")), -1)
	requireBulk(t, s.Exec(args("GET", "n")), "-1")
}

func TestIncrByComposition(t *testing.T) {
	s := newTestStore(t)

	requireInt(t, s.Exec(args("INCRBY", "n", "17")), 17)
	requireInt(t, s.Exec(args("INCRBY", "n", "25")), 42)
	requireInt(t, s.Exec(args("DECRBY", "n", "12")), 30)
	requireInt(t, s.Exec(args("INCRBY", "n", "-30")), 0)
	requireBulk(t, s.Exec(args("GET", "n")), "0")
}

func TestIncrNonInteger(t *testing.T) {
	s := newTestStore(t)
	requireOK(t, s.Exec(args("SET", "a", "not a number")))
	requireErrCode(t, s.Exec(args("INCR", "a")), RetCSyntax)
	requireErrCode(t, s.Exec(args("INCRBY", "a", "5")), RetCSyntax)
	requireErrCode(t, s.Exec(args("INCRBY", "n", "five")), RetCSyntax)
	requireBulk(t, s.Exec(args("GET", "a")), "not a number")

	// values with a non-canonical integer form are not counters either
	requireOK(t, s.Exec(args("SET", "b", " 11")))
	requireErrCode(t, s.Exec(args("INCR", "b")), RetCSyntax)
}

func TestIncrOverflowLeavesValue(t *testing.T) {
	s := newTestStore(t)

	max := strconv.FormatInt(9223372036854775807, 10)
	requireOK(t, s.Exec(args("SET", "n", max)))
	requireErrCode(t, s.Exec(args("INCR", "n")), RetCRange)
	requireBulk(t, s.Exec(args("GET", "n")), max)

	requireOK(t, s.Exec(args("SET", "m", "-9223372036854775808")))
	requireErrCode(t, s.Exec(args("DECR", "m")), RetCRange)
	requireBulk(t, s.Exec(args("GET", "m")), "-9223372036854775808")

	// DECRBY of the most negative increment cannot be negated
	requireErrCode(t, s.Exec(args("DECRBY", "n", "-9223372036854775808")), RetCRange)
}

func TestIncrSharedPoolSafety(t *testing.T) {
	s := newTestStore(t)

	// both keys alias the pooled 100; bumping one must not move the other
	requireOK(t, s.Exec(args("SET", "a", "100")))
	requireOK(t, s.Exec(args("SET", "b", "100")))
	requireInt(t, s.Exec(args("INCR", "a")), 101)
	requireBulk(t, s.Exec(args("GET", "a")), "101")
	requireBulk(t, s.Exec(args("GET", "b")), "100")
}

func TestIncrPreservesExpire(t *testing.T) {
	s := newTestStore(t)

	requireOK(t, s.Exec(args("SET", "n", "1", "PX", "30")))
	requireInt(t, s.Exec(args("INCR", "n")), 2)

	time.Sleep(60 * time.Millisecond)
	require.Equal(t, ReplyNil, s.Exec(args("GET", "n")).Reply.Type)
}

// --------------------------------------------------------------------------
// INCRBYFLOAT
// --------------------------------------------------------------------------

func TestIncrByFloat(t *testing.T) {
	s := newTestStore(t)

	requireOK(t, s.Exec(args("SET", "f", "10.5")))
	requireBulk(t, s.Exec(args("INCRBYFLOAT", "f", "0.1")), "10.6")
	requireBulk(t, s.Exec(args("INCRBYFLOAT", "f", "-5")), "5.6")

	// missing key counts as 0
	requireBulk(t, s.Exec(args("INCRBYFLOAT", "g", "3.0")), "3")
}

func TestIncrByFloatErrors(t *testing.T) {
	s := newTestStore(t)

	requireErrCode(t, s.Exec(args("INCRBYFLOAT", "f", "nope")), RetCSyntax)

	requireOK(t, s.Exec(args("SET", "a", "not a float")))
	requireErrCode(t, s.Exec(args("INCRBYFLOAT", "a", "1.0")), RetCSyntax)
	requireBulk(t, s.Exec(args("GET", "a")), "not a float")

	// the sum must stay finite
	requireOK(t, s.Exec(args("SET", "big", "1.7e308")))
	requireErrCode(t, s.Exec(args("INCRBYFLOAT", "big", "1.7e308")), RetCDomain)
	requireBulk(t, s.Exec(args("GET", "big")), "1.7e308")
}

func TestIncrByFloatRewrite(t *testing.T) {
	s := newTestStore(t)

	res := s.Exec(args("INCRBYFLOAT", "f", "3.25"))
	requireBulk(t, res, "3.25")

	require.Len(t, res.Rewrite, 3)
	assert.Equal(t, "SET", string(res.Rewrite[0]))
	assert.Equal(t, "f", string(res.Rewrite[1]))
	assert.Equal(t, "3.25", string(res.Rewrite[2]))

	// replaying the rewrite elsewhere yields the identical stored bytes
	other := newTestStore(t)
	requireOK(t, other.Exec(res.Rewrite))
	requireBulk(t, other.Exec(args("GET", "f")), "3.25")

	// plain commands carry no rewrite
	assert.Nil(t, s.Exec(args("SET", "x", "1")).Rewrite)
	assert.Nil(t, s.Exec(args("INCR", "n")).Rewrite)
}
