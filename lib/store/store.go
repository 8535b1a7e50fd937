package store

import (
	"fmt"
	"strings"

	"github.com/VictoriaMetrics/metrics"
	"github.com/groupkv/gkv/lib/db"
	"github.com/groupkv/gkv/lib/gcache"
)

// --------------------------------------------------------------------------
// Store
// --------------------------------------------------------------------------

// Store binds one database instance to its group cache and exposes the
// command surface over both.
type Store struct {
	db       *db.DB
	refs     *gcache.RefStore
	groups   *gcache.Index
	resolver gcache.Resolver
}

// Options configures a Store.
type Options struct {
	// DB is the database instance to operate on (nil = a fresh one).
	DB *db.DB

	// Resolver is the group membership resolver (nil = default).
	Resolver gcache.Resolver

	// Logger receives group cache diagnostics (may be nil).
	Logger gcache.Logger
}

// New creates a Store with its group cache wired up.
func New(opts *Options) *Store {
	if opts == nil {
		opts = &Options{}
	}

	database := opts.DB
	if database == nil {
		database = db.New(nil)
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = gcache.NewResolver()
	}

	refs := gcache.NewRefStore()
	return &Store{
		db:       database,
		refs:     refs,
		groups:   gcache.NewIndex(refs, resolver, &gcache.IndexOptions{Logger: opts.Logger}),
		resolver: resolver,
	}
}

// DB returns the underlying database instance.
func (s *Store) DB() *db.DB { return s.db }

// Refs returns the reference-counted auxiliary store.
func (s *Store) Refs() *gcache.RefStore { return s.refs }

// Groups returns the group recency index.
func (s *Store) Groups() *gcache.Index { return s.groups }

// Resolver returns the group membership resolver.
func (s *Store) Resolver() gcache.Resolver { return s.resolver }

// Close releases the background resources of the database.
func (s *Store) Close() error { return s.db.Close() }

// --------------------------------------------------------------------------
// Command dispatch
// --------------------------------------------------------------------------

// commandSpec describes one dispatchable command. Arity counts the command
// name itself: a positive arity is exact, a negative arity is a minimum.
type commandSpec struct {
	arity   int
	handler func(*Store, [][]byte) Result
}

var commandTable = map[string]commandSpec{
	"SET":         {-3, (*Store).setCommand},
	"SETNX":       {3, (*Store).setnxCommand},
	"SETEX":       {4, (*Store).setexCommand},
	"PSETEX":      {4, (*Store).psetexCommand},
	"GET":         {2, (*Store).getCommand},
	"GETSET":      {3, (*Store).getsetCommand},
	"MGET":        {-2, (*Store).mgetCommand},
	"MSET":        {-3, (*Store).msetCommand},
	"MSETNX":      {-3, (*Store).msetnxCommand},
	"APPEND":      {3, (*Store).appendCommand},
	"STRLEN":      {2, (*Store).strlenCommand},
	"SETRANGE":    {4, (*Store).setrangeCommand},
	"GETRANGE":    {4, (*Store).getrangeCommand},
	"INCR":        {2, (*Store).incrCommand},
	"DECR":        {2, (*Store).decrCommand},
	"INCRBY":      {3, (*Store).incrbyCommand},
	"DECRBY":      {3, (*Store).decrbyCommand},
	"INCRBYFLOAT": {3, (*Store).incrbyfloatCommand},
	"DEL":         {-2, (*Store).delCommand},
	"EXISTS":      {-2, (*Store).existsCommand},
	"GGET":        {-2, (*Store).ggetCommand},
	"GSET":        {-3, (*Store).gsetCommand},
	"GROUPREM":    {-2, (*Store).groupremCommand},
}

func init() {
	// hyphenated aliases of the group commands
	commandTable["GROUP-GET"] = commandTable["GGET"]
	commandTable["GROUP-SET"] = commandTable["GSET"]
	commandTable["GROUP-REM"] = commandTable["GROUPREM"]
}

// Exec runs one command given as argv (command name first). It validates
// name and arity, counts metrics and routes to the handler. Exec never
// panics on malformed input; every failure is an error reply.
func (s *Store) Exec(argv [][]byte) Result {
	if len(argv) == 0 {
		return resultOf(errorReply(RetCSyntax, "empty command"))
	}

	name := strings.ToUpper(string(argv[0]))
	spec, ok := commandTable[name]
	if !ok {
		return resultOf(errorReply(RetCSyntax, fmt.Sprintf("unknown command '%s'", argv[0])))
	}

	if (spec.arity > 0 && len(argv) != spec.arity) ||
		(spec.arity < 0 && len(argv) < -spec.arity) {
		return resultOf(errorReply(RetCSyntax,
			fmt.Sprintf("wrong number of arguments for '%s' command", strings.ToLower(name))))
	}

	metrics.GetOrCreateCounter(fmt.Sprintf(`gkv_commands_total{command=%q}`, name)).Inc()

	res := spec.handler(s, argv)
	if res.Reply.IsError() {
		metrics.GetOrCreateCounter(fmt.Sprintf(`gkv_command_errors_total{command=%q}`, name)).Inc()
	}
	return res
}
