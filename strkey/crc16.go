package strkey

// crc16 computes the CRC16-XModem checksum (polynomial 0x1021, zero initial
// value) over data.
func crc16(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// appendCRC16 appends the little-endian checksum of raw to raw.
func appendCRC16(raw []byte) []byte {
	sum := crc16(raw)
	return append(raw, byte(sum), byte(sum>>8))
}
