package xdr

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader decodes wire-encoded values from a fixed byte slice.
//
// Every read of a variable-length value consumes the declared bytes plus
// padding, so the position is always on a 4-byte boundary before the next
// value. A failed read leaves the position unchanged.
type Reader struct {
	b   []byte
	off int
}

// NewReader constructs a Reader positioned at the start of b.
// The Reader aliases b; callers must not mutate it while reading.
func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.b) - r.off }

// Done returns an error unless the buffer has been fully consumed.
func (r *Reader) Done() error {
	if n := r.Remaining(); n != 0 {
		return fmt.Errorf("xdr: %d trailing bytes", n)
	}
	return nil
}

func (r *Reader) take(n int) ([]byte, error) {
	if n > r.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, n, r.Remaining())
	}
	b := r.b[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadBool decodes a 4-byte word; zero is false, any nonzero value is true.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadUint32()
	return v != 0, err
}

// ReadString reads a length prefix, that many bytes, and the padding.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadVarOpaque()
	return string(b), err
}

// ReadVarOpaque reads length-prefixed opaque data and its padding.
// The returned slice aliases the Reader's buffer.
func (r *Reader) ReadVarOpaque() ([]byte, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if n > math.MaxInt32 {
		r.off -= 4
		return nil, fmt.Errorf("%w: declared length %d is negative", ErrMalformedLength, int32(n))
	}
	if int(n)+pad(int(n)) > r.Remaining() {
		r.off -= 4
		return nil, fmt.Errorf("%w: declared length %d exceeds %d remaining bytes", ErrMalformedLength, n, r.Remaining())
	}
	return r.readPadded(int(n))
}

// ReadFixedOpaque reads exactly length bytes plus padding.
// The returned slice aliases the Reader's buffer.
func (r *Reader) ReadFixedOpaque(length int) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: declared length %d is negative", ErrMalformedLength, length)
	}
	if length+pad(length) > r.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, length+pad(length), r.Remaining())
	}
	return r.readPadded(length)
}

func (r *Reader) readPadded(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	if _, err := r.take(pad(n)); err != nil {
		return nil, err
	}
	return b, nil
}
