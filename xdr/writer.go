package xdr

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Writer accumulates wire-encoded values in a growable buffer.
//
// The zero value is ready to use. Writer is not safe for concurrent use.
type Writer struct {
	buf []byte
}

// Bytes returns the encoded bytes written so far.
// The returned slice aliases the Writer's buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Reset discards all written bytes, keeping the allocation.
func (w *Writer) Reset() { w.buf = w.buf[:0] }

func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }
func (w *Writer) WriteInt64(v int64) { w.WriteUint64(uint64(v)) }

func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *Writer) WriteUint64(v uint64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
}

func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

// WriteBool encodes a boolean as a 4-byte word, 1 for true and 0 for false.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint32(1)
		return
	}
	w.WriteUint32(0)
}

// WriteString writes a 4-byte byte-length prefix (encoded bytes, not
// characters), the bytes, then zero padding to the next 4-byte boundary.
func (w *Writer) WriteString(s string) error {
	return w.WriteVarOpaque([]byte(s))
}

// WriteVarOpaque writes length-prefixed opaque data with the same padding
// rule as strings.
func (w *Writer) WriteVarOpaque(b []byte) error {
	if len(b) > math.MaxInt32 {
		return fmt.Errorf("%w: %d bytes", ErrOversize, len(b))
	}
	w.WriteUint32(uint32(len(b)))
	w.appendPadded(b)
	return nil
}

// WriteFixedOpaque writes b with no length prefix, zero-padded to the next
// 4-byte boundary. The reader must know the length out of band.
func (w *Writer) WriteFixedOpaque(b []byte) {
	w.appendPadded(b)
}

// WriteFixedOpaqueLen is WriteFixedOpaque with a declared length. It fails
// before writing any bytes when len(b) != length.
func (w *Writer) WriteFixedOpaqueLen(b []byte, length int) error {
	if len(b) != length {
		return fmt.Errorf("%w: got %d bytes, declared %d", ErrLengthMismatch, len(b), length)
	}
	w.appendPadded(b)
	return nil
}

func (w *Writer) appendPadded(b []byte) {
	w.buf = append(w.buf, b...)
	for i := 0; i < pad(len(b)); i++ {
		w.buf = append(w.buf, 0)
	}
}
