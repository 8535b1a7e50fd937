package strval

import (
	"bytes"
	"errors"
	"strconv"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	// MaxLen is the maximum serialized length of any Value (512 MiB).
	MaxLen = 512 * 1024 * 1024

	// PoolSize is the exclusive upper bound of the shared integer pool.
	// Integers in [0, PoolSize) are handed out as aliased pool values.
	PoolSize = 10000

	// embstrLimit is the maximum payload length for the embedded encoding.
	embstrLimit = 44
)

// ErrTooLong is returned by growing operations whose prospective result
// would exceed MaxLen. The value is left unmodified.
var ErrTooLong = errors.New("string exceeds maximum allowed size (512MB)")

// ErrNotOwned is returned when an in-place mutation is attempted on a value
// that is not an exclusively owned raw buffer.
var ErrNotOwned = errors.New("in-place mutation of shared or encoded value")

// --------------------------------------------------------------------------
// Encoding
// --------------------------------------------------------------------------

// Encoding describes how a Value stores its payload.
type Encoding uint8

const (
	EncRaw    Encoding = iota // exclusively owned byte buffer
	EncEmbstr                 // short immutable byte buffer
	EncInt                    // int64 payload
)

func (e Encoding) String() string {
	switch e {
	case EncRaw:
		return "raw"
	case EncEmbstr:
		return "embstr"
	case EncInt:
		return "int"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Value
// --------------------------------------------------------------------------

// Value is a string value as stored by the engine. Exactly one of buf or num
// is meaningful, selected by enc. A value with shared=true is aliased by an
// unknown number of owners and must never be mutated in place.
type Value struct {
	enc    Encoding
	buf    []byte
	num    int64
	shared bool
}

// NewRaw creates a raw value owning a private copy of p.
func NewRaw(p []byte) *Value {
	buf := make([]byte, len(p))
	copy(buf, p)
	return &Value{enc: EncRaw, buf: buf}
}

// NewString creates a raw value from s.
func NewString(s string) *Value {
	return &Value{enc: EncRaw, buf: []byte(s)}
}

// NewInt creates a private (non-pooled) int-encoded value.
func NewInt(n int64) *Value {
	return &Value{enc: EncInt, num: n}
}

// Encoding returns the value's encoding.
func (v *Value) Encoding() Encoding { return v.enc }

// Owned reports whether the caller holds the only reference to the value.
// Pool values are aliased and never owned.
func (v *Value) Owned() bool { return !v.shared }

// Len returns the serialized length of the value in bytes.
func (v *Value) Len() int64 {
	if v.enc == EncInt {
		var scratch [20]byte
		return int64(len(strconv.AppendInt(scratch[:0], v.num, 10)))
	}
	return int64(len(v.buf))
}

// Bytes renders the value as a byte slice. For int-encoded values this
// allocates the decimal representation; for buffer encodings the returned
// slice aliases the internal buffer and must not be modified by the caller.
func (v *Value) Bytes() []byte {
	if v.enc == EncInt {
		return strconv.AppendInt(nil, v.num, 10)
	}
	return v.buf
}

// String renders the value as a string.
func (v *Value) String() string {
	if v.enc == EncInt {
		return strconv.FormatInt(v.num, 10)
	}
	return string(v.buf)
}

// Int64 interprets the value as a signed 64-bit integer.
func (v *Value) Int64() (int64, bool) {
	if v.enc == EncInt {
		return v.num, true
	}
	n, err := strconv.ParseInt(string(v.buf), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float64 interprets the value as a float.
func (v *Value) Float64() (float64, bool) {
	if v.enc == EncInt {
		return float64(v.num), true
	}
	f, err := strconv.ParseFloat(string(v.buf), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Equal reports whether two values render to the same byte sequence.
func (v *Value) Equal(other *Value) bool {
	if v == other {
		return true
	}
	if v.enc == EncInt && other.enc == EncInt {
		return v.num == other.num
	}
	return bytes.Equal(v.Bytes(), other.Bytes())
}

// FormatFloat renders f as the canonical decimal text stored and propagated
// by INCRBYFLOAT: shortest representation that round-trips, no exponent for
// values in the decimal range.
func FormatFloat(f float64) []byte {
	return strconv.AppendFloat(nil, f, 'f', -1, 64)
}

// --------------------------------------------------------------------------
// Shared integer pool
// --------------------------------------------------------------------------

// Pool holds the canonical shared integer values of one database instance.
// Pool values are created once and aliased by every owner; the shared flag
// marks them as immutable for all mutation paths.
type Pool struct {
	vals [PoolSize]*Value
}

// NewPool creates the shared integer pool.
func NewPool() *Pool {
	p := &Pool{}
	for i := range p.vals {
		p.vals[i] = &Value{enc: EncInt, num: int64(i), shared: true}
	}
	return p
}

// Int returns a value holding n: an aliased pool value if n is in
// [0, PoolSize), a fresh private value otherwise.
func (p *Pool) Int(n int64) *Value {
	if n >= 0 && n < PoolSize {
		return p.vals[n]
	}
	return NewInt(n)
}

// InRange reports whether n falls inside the shared pool range.
func (p *Pool) InRange(n int64) bool {
	return n >= 0 && n < PoolSize
}

// TryEncode attempts to store v in a more memory-efficient encoding. Raw
// values that parse as int64 become int-encoded (pooled when in range),
// short raw values become embstr. Values that are already encoded, or too
// long to bother with, are returned unchanged.
func (p *Pool) TryEncode(v *Value) *Value {
	if v.enc != EncRaw {
		return v
	}

	// The decimal representation of an int64 never exceeds 20 bytes.
	if l := len(v.buf); l > 0 && l <= 20 {
		if n, err := strconv.ParseInt(string(v.buf), 10, 64); err == nil {
			// reject representations that don't round-trip (e.g. "+1", "007")
			if string(strconv.AppendInt(nil, n, 10)) == string(v.buf) {
				return p.Int(n)
			}
		}
	}

	if len(v.buf) <= embstrLimit {
		v.enc = EncEmbstr
	}
	return v
}
