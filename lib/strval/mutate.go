package strval

// --------------------------------------------------------------------------
// Copy-on-write and in-place mutation
// --------------------------------------------------------------------------

// Unshare returns a value that is safe to mutate in place. If v is already
// an exclusively owned raw buffer it is returned as-is; otherwise (aliased
// pool value, int or embstr encoding) a private raw copy is produced and the
// original is left untouched.
func (v *Value) Unshare() *Value {
	if v.Owned() && v.enc == EncRaw {
		return v
	}
	return NewRaw(v.Bytes())
}

// Append appends p to the value and returns the new length.
//
// The caller must have unshared the value first; the prospective length is
// checked before any byte is written so a failing append leaves the value
// unmodified.
func (v *Value) Append(p []byte) (int64, error) {
	if !v.Owned() || v.enc != EncRaw {
		return 0, ErrNotOwned
	}
	newLen := int64(len(v.buf)) + int64(len(p))
	if newLen > MaxLen {
		return 0, ErrTooLong
	}
	v.buf = append(v.buf, p...)
	return newLen, nil
}

// SetRange overwrites the bytes starting at offset with p, zero-extending
// the buffer if offset lies past the current end. Returns the new length.
func (v *Value) SetRange(offset int64, p []byte) (int64, error) {
	if !v.Owned() || v.enc != EncRaw {
		return 0, ErrNotOwned
	}
	// checked against the cap before end is computed so a huge offset
	// cannot overflow int64
	if offset > MaxLen-int64(len(p)) {
		return 0, ErrTooLong
	}
	end := offset + int64(len(p))
	if end > int64(len(v.buf)) {
		grown := make([]byte, end)
		copy(grown, v.buf)
		v.buf = grown
	}
	copy(v.buf[offset:], p)
	return int64(len(v.buf)), nil
}

// SetInt replaces the integer payload in place. Only valid for exclusively
// owned int-encoded values; this is the fast path of the counter commands.
func (v *Value) SetInt(n int64) error {
	if !v.Owned() || v.enc != EncInt {
		return ErrNotOwned
	}
	v.num = n
	return nil
}

// Range returns the substring selected by start and end, both inclusive.
// Negative indices count from the end of the value. The int encoding is
// rendered to its decimal representation first. The returned slice is a
// private copy.
func (v *Value) Range(start, end int64) []byte {
	// both counting from the end with start past end selects nothing
	if start < 0 && end < 0 && start > end {
		return nil
	}

	str := v.Bytes()
	l := int64(len(str))

	if start < 0 {
		start = l + start
	}
	if end < 0 {
		end = l + end
	}
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 0
	}
	if end >= l {
		end = l - 1
	}

	if l == 0 || start > end {
		return nil
	}

	out := make([]byte, end-start+1)
	copy(out, str[start:end+1])
	return out
}
