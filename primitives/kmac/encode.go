package kmac

// The encoders of NIST SP 800-185, section 2.3.

// LeftEncode encodes x as its minimal big-endian byte string prefixed by the
// string's length in bytes.
func LeftEncode(x uint64) []byte {
	n := encodedLen(x)
	out := make([]byte, n+1)
	out[0] = byte(n)
	putBigEndian(out[1:], x)
	return out
}

// RightEncode encodes x as its minimal big-endian byte string followed by the
// string's length in bytes.
func RightEncode(x uint64) []byte {
	n := encodedLen(x)
	out := make([]byte, n+1)
	putBigEndian(out[:n], x)
	out[n] = byte(n)
	return out
}

// EncodeString prefixes s with the left-encoding of its length in bits.
func EncodeString(s []byte) []byte {
	prefix := LeftEncode(uint64(len(s)) * 8)
	out := make([]byte, 0, len(prefix)+len(s))
	out = append(out, prefix...)
	return append(out, s...)
}

// Bytepad prefixes x with left_encode(w) and zero-pads the result to a multiple of w.
func Bytepad(x []byte, w int) []byte {
	if w <= 0 {
		panic("kmac: bytepad width must be positive")
	}
	prefix := LeftEncode(uint64(w))
	size := len(prefix) + len(x)
	if rem := size % w; rem != 0 {
		size += w - rem
	}
	out := make([]byte, size)
	n := copy(out, prefix)
	copy(out[n:], x)
	return out
}

// encodedLen is the number of bytes needed for x, at least 1.
func encodedLen(x uint64) int {
	n := 1
	for x >>= 8; x > 0; x >>= 8 {
		n++
	}
	return n
}

func putBigEndian(dst []byte, x uint64) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = byte(x)
		x >>= 8
	}
}
