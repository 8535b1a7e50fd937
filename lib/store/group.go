package store

import (
	"github.com/groupkv/gkv/lib/strval"
)

// --------------------------------------------------------------------------
// Group commands
// --------------------------------------------------------------------------
//
// The group commands run against the reference-counted auxiliary store and
// the group recency index, not against the main keyspace. They never bump
// the dirty counter; group state is a cache, not replicated data.

// GGET key [key ...]
//
// Replies one bulk-or-nil per requested key, then marks the group formed by
// the full key set as recently used. A first access to a new group pins all
// member values by taking one reference each.
func (s *Store) ggetCommand(argv [][]byte) Result {
	keys := argvKeys(argv[1:])

	items := make([]Reply, 0, len(keys))
	for _, key := range keys {
		if v := s.refs.Get(key); v != nil {
			items = append(items, bulkValue(v))
		} else {
			items = append(items, nilReply())
		}
	}

	s.groups.Touch(s.resolver.GroupId(keys))
	return resultOf(arrayReply(items))
}

// GSET key value [key value ...]
//
// Stores each non-empty value in the auxiliary store and marks the group
// formed by the keys as recently used. An empty value only contributes its
// key to the group; the stored value, if any, stays untouched.
func (s *Store) gsetCommand(argv [][]byte) Result {
	if len(argv)%2 == 0 {
		return resultOf(errorReply(RetCSyntax, "wrong number of arguments for GSET"))
	}

	keys := make([]string, 0, len(argv)/2)
	for i := 1; i < len(argv); i += 2 {
		key := string(argv[i])
		keys = append(keys, key)
		if len(argv[i+1]) > 0 {
			s.refs.Put(key, s.db.Pool().TryEncode(strval.NewRaw(argv[i+1])))
		}
	}

	s.groups.Touch(s.resolver.GroupId(keys))
	return resultOf(okReply())
}

// GROUPREM key [key ...]
//
// Drops the group formed by the key set from the recency index and releases
// one reference for every member. Values whose reference count reaches zero
// are evicted from the auxiliary store. Removing an unknown group still
// performs the releases.
func (s *Store) groupremCommand(argv [][]byte) Result {
	keys := argvKeys(argv[1:])
	s.groups.Remove(s.resolver.GroupId(keys))
	return resultOf(okReply())
}

func argvKeys(args [][]byte) []string {
	keys := make([]string, len(args))
	for i, a := range args {
		keys[i] = string(a)
	}
	return keys
}
