package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/groupkv/gkv/lib/db"
	"github.com/groupkv/gkv/lib/strval"
)

// --------------------------------------------------------------------------
// SET family
// --------------------------------------------------------------------------

// set option flags, combined during argv parsing
const (
	setNone = 0
	setNX   = 1 << iota // only set if key does not exist
	setXX               // only set if key exists
)

// setGeneric is the common backend of SET, SETNX, SETEX and PSETEX. A zero
// ttl means no deadline; flags gate the write on key presence.
func (s *Store) setGeneric(flags int, key string, val *strval.Value, ttl time.Duration, okRep Reply, abortRep Reply) Result {
	if (flags&setNX != 0 && s.db.Exists(key)) ||
		(flags&setXX != 0 && !s.db.Exists(key)) {
		return resultOf(abortRep)
	}

	val = s.db.Pool().TryEncode(val)
	if ttl > 0 {
		s.db.SetKeyExpire(key, val, ttl)
	} else {
		s.db.SetKey(key, val)
	}
	s.db.AddDirty(1)
	s.db.Notify(db.EventSet, key)
	return resultOf(okRep)
}

// parseExpire reads a positive integer expire argument for cmd and converts
// it to a duration in the given unit.
func parseExpire(arg []byte, unit time.Duration, cmd string) (time.Duration, *Error) {
	n, err := strconv.ParseInt(string(arg), 10, 64)
	if err != nil {
		return 0, NewError(RetCSyntax, msgNotInteger)
	}
	if n <= 0 {
		return 0, NewError(RetCSyntax, fmt.Sprintf("invalid expire time in %s", strings.ToLower(cmd)))
	}
	return time.Duration(n) * unit, nil
}

// SET key value [NX|XX] [EX seconds|PX milliseconds]
func (s *Store) setCommand(argv [][]byte) Result {
	var (
		flags = setNone
		ttl   time.Duration
	)

	for i := 3; i < len(argv); i++ {
		opt := strings.ToUpper(string(argv[i]))
		next := i + 1

		switch {
		case opt == "NX" && flags&setXX == 0:
			flags |= setNX
		case opt == "XX" && flags&setNX == 0:
			flags |= setXX
		case (opt == "EX" || opt == "PX") && ttl == 0 && next < len(argv):
			unit := time.Second
			if opt == "PX" {
				unit = time.Millisecond
			}
			d, err := parseExpire(argv[next], unit, "set")
			if err != nil {
				return resultOf(Reply{Type: ReplyError, Err: err})
			}
			ttl = d
			i = next
		default:
			return resultOf(errorReply(RetCSyntax, msgSyntax))
		}
	}

	return s.setGeneric(flags, string(argv[1]), strval.NewRaw(argv[2]), ttl, okReply(), nilReply())
}

// SETNX key value
func (s *Store) setnxCommand(argv [][]byte) Result {
	return s.setGeneric(setNX, string(argv[1]), strval.NewRaw(argv[2]), 0, intReply(1), intReply(0))
}

// SETEX key seconds value
func (s *Store) setexCommand(argv [][]byte) Result {
	ttl, err := parseExpire(argv[2], time.Second, "setex")
	if err != nil {
		return resultOf(Reply{Type: ReplyError, Err: err})
	}
	return s.setGeneric(setNone, string(argv[1]), strval.NewRaw(argv[3]), ttl, okReply(), nilReply())
}

// PSETEX key milliseconds value
func (s *Store) psetexCommand(argv [][]byte) Result {
	ttl, err := parseExpire(argv[2], time.Millisecond, "psetex")
	if err != nil {
		return resultOf(Reply{Type: ReplyError, Err: err})
	}
	return s.setGeneric(setNone, string(argv[1]), strval.NewRaw(argv[3]), ttl, okReply(), nilReply())
}

// --------------------------------------------------------------------------
// GET family
// --------------------------------------------------------------------------

// GET key
func (s *Store) getCommand(argv [][]byte) Result {
	v := s.db.LookupKeyRead(string(argv[1]))
	if v == nil {
		return resultOf(nilReply())
	}
	return resultOf(bulkValue(v))
}

// GETSET key value
func (s *Store) getsetCommand(argv [][]byte) Result {
	key := string(argv[1])

	var old Reply
	if v := s.db.LookupKeyWrite(key); v != nil {
		old = bulkValue(v)
	} else {
		old = nilReply()
	}

	s.db.SetKey(key, s.db.Pool().TryEncode(strval.NewRaw(argv[2])))
	s.db.AddDirty(1)
	s.db.Notify(db.EventSet, key)
	return resultOf(old)
}

// MGET key [key ...]
func (s *Store) mgetCommand(argv [][]byte) Result {
	items := make([]Reply, 0, len(argv)-1)
	for _, key := range argv[1:] {
		if v := s.db.LookupKeyRead(string(key)); v != nil {
			items = append(items, bulkValue(v))
		} else {
			items = append(items, nilReply())
		}
	}
	return resultOf(arrayReply(items))
}

// --------------------------------------------------------------------------
// MSET family
// --------------------------------------------------------------------------

// msetGeneric writes all pairs; with nx set it first verifies no target key
// exists and aborts as a unit otherwise.
func (s *Store) msetGeneric(argv [][]byte, nx bool) Result {
	if len(argv)%2 == 0 {
		return resultOf(errorReply(RetCSyntax, "wrong number of arguments for MSET"))
	}

	if nx {
		for i := 1; i < len(argv); i += 2 {
			if s.db.Exists(string(argv[i])) {
				return resultOf(intReply(0))
			}
		}
	}

	for i := 1; i < len(argv); i += 2 {
		key := string(argv[i])
		s.db.SetKey(key, s.db.Pool().TryEncode(strval.NewRaw(argv[i+1])))
		s.db.Notify(db.EventSet, key)
	}
	s.db.AddDirty(uint64(len(argv) / 2))

	if nx {
		return resultOf(intReply(1))
	}
	return resultOf(okReply())
}

// MSET key value [key value ...]
func (s *Store) msetCommand(argv [][]byte) Result {
	return s.msetGeneric(argv, false)
}

// MSETNX key value [key value ...]
func (s *Store) msetnxCommand(argv [][]byte) Result {
	return s.msetGeneric(argv, true)
}

// --------------------------------------------------------------------------
// Byte-level commands
// --------------------------------------------------------------------------

// APPEND key value
func (s *Store) appendCommand(argv [][]byte) Result {
	key := string(argv[1])

	v := s.db.LookupKeyWrite(key)
	if v == nil {
		nv := strval.NewRaw(argv[2])
		if nv.Len() > strval.MaxLen {
			return resultOf(errorReply(RetCRange, "string exceeds maximum allowed size (512MB)"))
		}
		s.db.SetKey(key, nv)
		s.db.AddDirty(1)
		s.db.Notify(db.EventAppend, key)
		return resultOf(intReply(nv.Len()))
	}

	nv := v.Unshare()
	newLen, err := nv.Append(argv[2])
	if err != nil {
		return resultOf(errorReply(RetCRange, "string exceeds maximum allowed size (512MB)"))
	}
	if nv != v {
		s.db.Overwrite(key, nv)
	} else {
		s.db.SignalModified(key)
	}
	s.db.AddDirty(1)
	s.db.Notify(db.EventAppend, key)
	return resultOf(intReply(newLen))
}

// STRLEN key
func (s *Store) strlenCommand(argv [][]byte) Result {
	if v := s.db.LookupKeyRead(string(argv[1])); v != nil {
		return resultOf(intReply(v.Len()))
	}
	return resultOf(intReply(0))
}

// SETRANGE key offset value
func (s *Store) setrangeCommand(argv [][]byte) Result {
	key := string(argv[1])

	offset, err := strconv.ParseInt(string(argv[2]), 10, 64)
	if err != nil {
		return resultOf(errorReply(RetCSyntax, msgNotInteger))
	}
	if offset < 0 {
		return resultOf(errorReply(RetCRange, msgOffsetRange))
	}

	v := s.db.LookupKeyWrite(key)
	if v == nil {
		// writing nothing to a missing key must not create it
		if len(argv[3]) == 0 {
			return resultOf(intReply(0))
		}
		nv := strval.NewRaw(nil)
		newLen, err := nv.SetRange(offset, argv[3])
		if err != nil {
			return resultOf(errorReply(RetCRange, "string exceeds maximum allowed size (512MB)"))
		}
		s.db.SetKey(key, nv)
		s.db.AddDirty(1)
		s.db.Notify(db.EventSetRange, key)
		return resultOf(intReply(newLen))
	}

	if len(argv[3]) == 0 {
		return resultOf(intReply(v.Len()))
	}

	nv := v.Unshare()
	newLen, serr := nv.SetRange(offset, argv[3])
	if serr != nil {
		return resultOf(errorReply(RetCRange, "string exceeds maximum allowed size (512MB)"))
	}
	if nv != v {
		s.db.Overwrite(key, nv)
	} else {
		s.db.SignalModified(key)
	}
	s.db.AddDirty(1)
	s.db.Notify(db.EventSetRange, key)
	return resultOf(intReply(newLen))
}

// GETRANGE key start end
func (s *Store) getrangeCommand(argv [][]byte) Result {
	start, err := strconv.ParseInt(string(argv[2]), 10, 64)
	if err != nil {
		return resultOf(errorReply(RetCSyntax, msgNotInteger))
	}
	end, err := strconv.ParseInt(string(argv[3]), 10, 64)
	if err != nil {
		return resultOf(errorReply(RetCSyntax, msgNotInteger))
	}

	v := s.db.LookupKeyRead(string(argv[1]))
	if v == nil {
		return resultOf(bulkReply(nil))
	}
	return resultOf(bulkReply(v.Range(start, end)))
}

// --------------------------------------------------------------------------
// Key management
// --------------------------------------------------------------------------

// DEL key [key ...]
func (s *Store) delCommand(argv [][]byte) Result {
	var deleted int64
	for _, key := range argv[1:] {
		if s.db.Delete(string(key)) {
			deleted++
			s.db.Notify(db.EventDel, string(key))
		}
	}
	s.db.AddDirty(uint64(deleted))
	return resultOf(intReply(deleted))
}

// EXISTS key [key ...]
func (s *Store) existsCommand(argv [][]byte) Result {
	var found int64
	for _, key := range argv[1:] {
		if s.db.Exists(string(key)) {
			found++
		}
	}
	return resultOf(intReply(found))
}
