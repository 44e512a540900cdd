// Package xdr implements the canonical binary wire encoding used by the SDK.
//
// All values are written in big-endian order. Variable-length values carry a
// 4-byte length prefix and are zero-padded so that the cursor always lands on
// a 4-byte boundary before the next value. Decoders reject non-canonical
// input; nothing is repaired or silently truncated.
//
// Writer.Bytes and NewReader are the only conversion points between encoded
// bytes and typed values. No other package may interpret raw wire bytes.
package xdr

// pad returns the number of zero bytes required after n payload bytes to
// reach the next 4-byte boundary.
func pad(n int) int {
	return (4 - n%4) % 4
}
