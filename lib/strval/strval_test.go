package strval

import (
	"bytes"
	"math"
	"testing"
)

func TestTryEncodeInt(t *testing.T) {
	pool := NewPool()

	v := pool.TryEncode(NewString("12345"))
	if v.Encoding() != EncInt {
		t.Fatalf("expected int encoding, got %s", v.Encoding())
	}
	if n, ok := v.Int64(); !ok || n != 12345 {
		t.Errorf("expected 12345, got %d (ok=%v)", n, ok)
	}
	if v.Owned() {
		t.Error("value in pool range should be a shared pool alias")
	}

	v = pool.TryEncode(NewString("123456789"))
	if v.Encoding() != EncInt {
		t.Fatalf("expected int encoding, got %s", v.Encoding())
	}
	if !v.Owned() {
		t.Error("value outside pool range should be private")
	}
}

func TestTryEncodePoolAliasing(t *testing.T) {
	pool := NewPool()

	a := pool.TryEncode(NewString("100"))
	b := pool.TryEncode(NewString("100"))
	if a != b {
		t.Error("equal in-range integers should alias the same pool value")
	}
}

func TestTryEncodeNonCanonical(t *testing.T) {
	pool := NewPool()

	// representations that don't round-trip must stay strings
	for _, s := range []string{"+1", "007", " 42", "1.0", ""} {
		v := pool.TryEncode(NewString(s))
		if v.Encoding() == EncInt {
			t.Errorf("%q should not be int-encoded", s)
		}
	}
}

func TestTryEncodeEmbstr(t *testing.T) {
	pool := NewPool()

	v := pool.TryEncode(NewString("hello world"))
	if v.Encoding() != EncEmbstr {
		t.Errorf("short string should be embstr, got %s", v.Encoding())
	}

	long := bytes.Repeat([]byte("x"), embstrLimit+1)
	v = pool.TryEncode(NewRaw(long))
	if v.Encoding() != EncRaw {
		t.Errorf("long string should stay raw, got %s", v.Encoding())
	}
}

func TestUnshareCopiesPoolValue(t *testing.T) {
	pool := NewPool()

	shared := pool.Int(100)
	private := shared.Unshare()

	if private == shared {
		t.Fatal("Unshare must not return the aliased pool value")
	}
	if _, err := private.Append([]byte("9")); err != nil {
		t.Fatalf("append on private copy failed: %v", err)
	}

	// the pool value observes nothing
	if n, _ := shared.Int64(); n != 100 {
		t.Errorf("shared pool value was mutated, now %d", n)
	}
	if got := private.String(); got != "1009" {
		t.Errorf("expected 1009, got %q", got)
	}
}

func TestUnshareKeepsOwnedRaw(t *testing.T) {
	v := NewString("abc")
	if v.Unshare() != v {
		t.Error("owned raw value should be returned unchanged")
	}
}

func TestInPlaceMutationGuards(t *testing.T) {
	pool := NewPool()

	if _, err := pool.Int(5).Append([]byte("x")); err != ErrNotOwned {
		t.Errorf("append on pool value: expected ErrNotOwned, got %v", err)
	}
	if _, err := NewInt(123456789).SetRange(0, []byte("x")); err != ErrNotOwned {
		t.Errorf("setrange on int value: expected ErrNotOwned, got %v", err)
	}
	if err := NewString("x").SetInt(1); err != ErrNotOwned {
		t.Errorf("setint on raw value: expected ErrNotOwned, got %v", err)
	}
}

func TestAppendSizeLimit(t *testing.T) {
	v := NewString("x")
	huge := int64(MaxLen) // prospective length 1 + MaxLen

	// fake a near-limit length without allocating 512MiB: SetRange with a
	// too-large offset must fail up front
	if _, err := v.SetRange(huge, []byte("y")); err != ErrTooLong {
		t.Fatalf("expected ErrTooLong, got %v", err)
	}
	if v.Len() != 1 {
		t.Errorf("failed grow must not modify the value, len=%d", v.Len())
	}
}

func TestSetRangeZeroExtends(t *testing.T) {
	v := NewString("Hello")
	newLen, err := v.SetRange(10, []byte("World"))
	if err != nil {
		t.Fatal(err)
	}
	if newLen != 15 {
		t.Errorf("expected length 15, got %d", newLen)
	}
	want := append([]byte("Hello"), 0, 0, 0, 0, 0)
	want = append(want, []byte("World")...)
	if !bytes.Equal(v.Bytes(), want) {
		t.Errorf("unexpected buffer %q", v.Bytes())
	}
}

func TestSetRangeOverwrite(t *testing.T) {
	v := NewString("Hello World")
	if _, err := v.SetRange(6, []byte("There")); err != nil {
		t.Fatal(err)
	}
	if v.String() != "Hello There" {
		t.Errorf("got %q", v.String())
	}
}

func TestSetRangeHugeOffset(t *testing.T) {
	// offsets near MaxInt64 must fail cleanly, not wrap around
	for _, offset := range []int64{MaxLen, MaxLen + 1, math.MaxInt64 - 1, math.MaxInt64} {
		v := NewString("keep")
		if _, err := v.SetRange(offset, []byte("xx")); err != ErrTooLong {
			t.Errorf("SetRange(%d) err = %v, want ErrTooLong", offset, err)
		}
		if v.String() != "keep" {
			t.Errorf("SetRange(%d) mutated the value to %q", offset, v.String())
		}
	}
}

func TestRange(t *testing.T) {
	v := NewString("Hello")

	cases := []struct {
		start, end int64
		want       string
	}{
		{0, -1, "Hello"},
		{-3, -1, "llo"},
		{0, 0, "H"},
		{5, 10, ""},
		{1, 3, "ell"},
		{-1, -3, ""}, // both negative, start > end
		{-100, 2, "Hel"},
	}
	for _, c := range cases {
		if got := string(v.Range(c.start, c.end)); got != c.want {
			t.Errorf("Range(%d,%d) = %q, want %q", c.start, c.end, got, c.want)
		}
	}

	if got := NewString("").Range(0, -1); len(got) != 0 {
		t.Errorf("range of empty value should be empty, got %q", got)
	}
}

func TestRangeIntEncoded(t *testing.T) {
	v := NewInt(12345)
	if got := string(v.Range(0, 2)); got != "123" {
		t.Errorf("got %q", got)
	}
}

func TestInt64Strict(t *testing.T) {
	if _, ok := NewString("3.0").Int64(); ok {
		t.Error("float text must not parse as integer")
	}
	if _, ok := NewString("abc").Int64(); ok {
		t.Error("garbage must not parse as integer")
	}
	if n, ok := NewString("-42").Int64(); !ok || n != -42 {
		t.Errorf("expected -42, got %d (ok=%v)", n, ok)
	}
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{
		10.5: "10.5",
		3:    "3",
		0.1:  "0.1",
	}
	for f, want := range cases {
		if got := string(FormatFloat(f)); got != want {
			t.Errorf("FormatFloat(%v) = %q, want %q", f, got, want)
		}
	}
}

func TestLen(t *testing.T) {
	if l := NewInt(-12345).Len(); l != 6 {
		t.Errorf("expected 6, got %d", l)
	}
	if l := NewString("Hello").Len(); l != 5 {
		t.Errorf("expected 5, got %d", l)
	}
}
