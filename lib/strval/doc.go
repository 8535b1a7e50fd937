// Package strval implements the string value representation used by the
// command layer. A Value is a tagged variant: it either exclusively owns a
// byte buffer (raw or embedded encoding) or carries a 64-bit integer payload
// (int encoding). Integer values in a small canonical range are handed out
// from a per-database Pool and may be aliased by any number of owners.
//
// The package focuses on:
//   - Copy-on-write discipline: a shared or non-raw value is never mutated in
//     place; Unshare produces a private raw copy first
//   - Exact size semantics: every growing operation computes the prospective
//     length up front and fails without partial mutation beyond MaxLen
//   - Cheap integer encoding: values that parse as int64 are stored as the
//     integer itself, short strings use an embedded encoding
//
// Thread-safety: Values are not synchronized. The engine executes one command
// at a time per database instance (see lib/store), which is the unit of
// atomicity for all multi-step read-modify-write sequences.
package strval
