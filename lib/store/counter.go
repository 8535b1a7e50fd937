package store

import (
	"math"
	"strconv"

	"github.com/groupkv/gkv/lib/db"
	"github.com/groupkv/gkv/lib/strval"
)

// --------------------------------------------------------------------------
// Integer counters
// --------------------------------------------------------------------------

// incrDecr is the common backend of the integer counter commands. A missing
// key counts as 0. The overflow check runs against the operands before any
// state changes, so a failing increment leaves the stored value untouched.
func (s *Store) incrDecr(key string, incr int64) Result {
	var oldVal int64

	v := s.db.LookupKeyWrite(key)
	if v != nil {
		n, ok := v.Int64()
		if !ok {
			return resultOf(errorReply(RetCSyntax, msgNotInteger))
		}
		oldVal = n
	}

	if (incr < 0 && oldVal < 0 && incr < math.MinInt64-oldVal) ||
		(incr > 0 && oldVal > 0 && incr > math.MaxInt64-oldVal) {
		return resultOf(errorReply(RetCRange, msgOverflow))
	}
	newVal := oldVal + incr

	// Mutate in place when the value is an exclusively owned integer and
	// the result does not belong in the shared pool; otherwise store a
	// fresh (possibly pooled) value while preserving any deadline.
	if v != nil && v.Owned() && v.Encoding() == strval.EncInt && !s.db.Pool().InRange(newVal) {
		v.SetInt(newVal)
		s.db.SignalModified(key)
	} else {
		s.db.Overwrite(key, s.db.Pool().Int(newVal))
	}

	s.db.AddDirty(1)
	s.db.Notify(db.EventIncrBy, key)
	return resultOf(intReply(newVal))
}

// INCR key
func (s *Store) incrCommand(argv [][]byte) Result {
	return s.incrDecr(string(argv[1]), 1)
}

// DECR key
func (s *Store) decrCommand(argv [][]byte) Result {
	return s.incrDecr(string(argv[1]), -1)
}

// INCRBY key increment
func (s *Store) incrbyCommand(argv [][]byte) Result {
	incr, err := strconv.ParseInt(string(argv[2]), 10, 64)
	if err != nil {
		return resultOf(errorReply(RetCSyntax, msgNotInteger))
	}
	return s.incrDecr(string(argv[1]), incr)
}

// DECRBY key decrement
func (s *Store) decrbyCommand(argv [][]byte) Result {
	decr, err := strconv.ParseInt(string(argv[2]), 10, 64)
	if err != nil {
		return resultOf(errorReply(RetCSyntax, msgNotInteger))
	}
	if decr == math.MinInt64 {
		return resultOf(errorReply(RetCRange, "decrement would overflow"))
	}
	return s.incrDecr(string(argv[1]), -decr)
}

// --------------------------------------------------------------------------
// Float counter
// --------------------------------------------------------------------------

// INCRBYFLOAT key increment
//
// The reply carries the formatted sum, and the result additionally carries a
// rewritten SET command with that exact text. A propagation collaborator
// must forward the rewrite instead of the original argv, so every replica
// stores the identical byte representation.
func (s *Store) incrbyfloatCommand(argv [][]byte) Result {
	key := string(argv[1])

	incr, err := strconv.ParseFloat(string(argv[2]), 64)
	if err != nil {
		return resultOf(errorReply(RetCSyntax, msgNotFloat))
	}

	var oldVal float64
	if v := s.db.LookupKeyWrite(key); v != nil {
		f, ok := v.Float64()
		if !ok {
			return resultOf(errorReply(RetCSyntax, msgNotFloat))
		}
		oldVal = f
	}

	newVal := oldVal + incr
	if math.IsNaN(newVal) || math.IsInf(newVal, 0) {
		return resultOf(errorReply(RetCDomain, msgNanOrInf))
	}

	text := strval.FormatFloat(newVal)
	s.db.Overwrite(key, strval.NewRaw(text))
	s.db.AddDirty(1)
	s.db.Notify(db.EventIncrByFloat, key)

	return Result{
		Reply:   bulkReply(text),
		Rewrite: [][]byte{[]byte("SET"), argv[1], text},
	}
}
