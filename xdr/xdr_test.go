package xdr

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestRoundTrip_FixedWidth(t *testing.T) {
	var w Writer
	w.WriteInt32(-2)
	w.WriteUint32(0xFFFFFFFF)
	w.WriteInt64(math.MinInt64)
	w.WriteUint64(math.MaxUint64)
	w.WriteFloat32(3.5)
	w.WriteFloat64(-0.125)
	w.WriteBool(true)
	w.WriteBool(false)

	r := NewReader(w.Bytes())
	if v, err := r.ReadInt32(); err != nil || v != -2 {
		t.Fatalf("ReadInt32: %v %v", v, err)
	}
	if v, err := r.ReadUint32(); err != nil || v != 0xFFFFFFFF {
		t.Fatalf("ReadUint32: %v %v", v, err)
	}
	if v, err := r.ReadInt64(); err != nil || v != math.MinInt64 {
		t.Fatalf("ReadInt64: %v %v", v, err)
	}
	if v, err := r.ReadUint64(); err != nil || v != math.MaxUint64 {
		t.Fatalf("ReadUint64: %v %v", v, err)
	}
	if v, err := r.ReadFloat32(); err != nil || v != 3.5 {
		t.Fatalf("ReadFloat32: %v %v", v, err)
	}
	if v, err := r.ReadFloat64(); err != nil || v != -0.125 {
		t.Fatalf("ReadFloat64: %v %v", v, err)
	}
	if v, err := r.ReadBool(); err != nil || v != true {
		t.Fatalf("ReadBool: %v %v", v, err)
	}
	if v, err := r.ReadBool(); err != nil || v != false {
		t.Fatalf("ReadBool: %v %v", v, err)
	}
	if err := r.Done(); err != nil {
		t.Fatalf("Done: %v", err)
	}
}

func TestRoundTrip_Strings_AllPaddingResidues(t *testing.T) {
	// Lengths chosen to cover each padding residue: 0, 1, 3, 4, 5.
	for _, s := range []string{"", "a", "abc", "abcd", "abcde"} {
		var w Writer
		if err := w.WriteString(s); err != nil {
			t.Fatalf("WriteString(%q): %v", s, err)
		}
		if w.Len()%4 != 0 {
			t.Fatalf("WriteString(%q): %d bytes, not 4-aligned", s, w.Len())
		}
		r := NewReader(w.Bytes())
		got, err := r.ReadString()
		if err != nil {
			t.Fatalf("ReadString(%q): %v", s, err)
		}
		if got != s {
			t.Fatalf("round trip: got %q want %q", got, s)
		}
		if err := r.Done(); err != nil {
			t.Fatalf("Done(%q): %v", s, err)
		}
	}
}

func TestRoundTrip_VarOpaque(t *testing.T) {
	for _, n := range []int{0, 1, 3, 4, 5, 32, 1000} {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(i)
		}
		var w Writer
		if err := w.WriteVarOpaque(b); err != nil {
			t.Fatalf("WriteVarOpaque(%d): %v", n, err)
		}
		got, err := NewReader(w.Bytes()).ReadVarOpaque()
		if err != nil {
			t.Fatalf("ReadVarOpaque(%d): %v", n, err)
		}
		if !bytes.Equal(got, b) {
			t.Fatalf("round trip mismatch at length %d", n)
		}
	}
}

func TestRoundTrip_FixedOpaque(t *testing.T) {
	for _, n := range []int{0, 1, 3, 4, 5, 32} {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(0xA0 + i)
		}
		var w Writer
		w.WriteFixedOpaque(b)
		if w.Len() != n+(4-n%4)%4 {
			t.Fatalf("fixed opaque %d: wrote %d bytes", n, w.Len())
		}
		got, err := NewReader(w.Bytes()).ReadFixedOpaque(n)
		if err != nil {
			t.Fatalf("ReadFixedOpaque(%d): %v", n, err)
		}
		if !bytes.Equal(got, b) {
			t.Fatalf("round trip mismatch at length %d", n)
		}
	}
}

func TestWriteFixedOpaqueLen_MismatchWritesNothing(t *testing.T) {
	var w Writer
	w.WriteUint32(7)
	before := w.Len()
	err := w.WriteFixedOpaqueLen([]byte{1, 2, 3}, 32)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	if w.Len() != before {
		t.Fatalf("buffer grew by %d bytes after failed write", w.Len()-before)
	}
	if err := w.WriteFixedOpaqueLen([]byte{1, 2, 3}, 3); err != nil {
		t.Fatalf("matching length: %v", err)
	}
}

func TestRead_Truncated(t *testing.T) {
	r := NewReader([]byte{0, 0, 1})
	if _, err := r.ReadUint32(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	// Failed read must not advance.
	if r.Remaining() != 3 {
		t.Fatalf("position advanced on failed read")
	}
}

func TestReadVarOpaque_MalformedLength(t *testing.T) {
	// Declared length 100 with only 4 payload bytes present.
	var w Writer
	w.WriteUint32(100)
	w.WriteUint32(0)
	r := NewReader(w.Bytes())
	if _, err := r.ReadVarOpaque(); !errors.Is(err, ErrMalformedLength) {
		t.Fatalf("expected ErrMalformedLength, got %v", err)
	}

	// A negative declared length (high bit set) is malformed, not huge.
	var w2 Writer
	w2.WriteUint32(0x80000001)
	if _, err := NewReader(w2.Bytes()).ReadVarOpaque(); !errors.Is(err, ErrMalformedLength) {
		t.Fatalf("expected ErrMalformedLength for negative length, got %v", err)
	}
}

func TestReadBool_NonCanonicalTrue(t *testing.T) {
	var w Writer
	w.WriteUint32(2)
	v, err := NewReader(w.Bytes()).ReadBool()
	if err != nil || v != true {
		t.Fatalf("nonzero word should decode as true: %v %v", v, err)
	}
}

func TestPaddingIsZeroOnWrite(t *testing.T) {
	var w Writer
	if err := w.WriteVarOpaque([]byte{0xFF}); err != nil {
		t.Fatalf("WriteVarOpaque: %v", err)
	}
	want := []byte{0, 0, 0, 1, 0xFF, 0, 0, 0}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("encoding mismatch: got %x want %x", w.Bytes(), want)
	}
}
