package utils

import (
	"errors"
	"math/big"
)

// SignedBytes returns the minimal big-endian two's-complement encoding of a
// non-negative x: a leading 0x00 is present when the top bit would otherwise be
// set, and zero encodes as a single 0x00 byte.
//
// Scalars and coordinates are fed to the XOF in this form and written to
// artifacts in it, so the encoding is part of every derived key.
func SignedBytes(x *big.Int) []byte {
	if x.Sign() < 0 {
		panic("utils: SignedBytes of negative integer")
	}
	b := x.Bytes()
	if len(b) == 0 || b[0]&0x80 != 0 {
		return append([]byte{0}, b...)
	}
	return b
}

// FixedBytes returns x as exactly size big-endian bytes.
func FixedBytes(x *big.Int, size int) ([]byte, error) {
	if x.Sign() < 0 || (x.BitLen()+7)/8 > size {
		return nil, errors.New("integer does not fit in field")
	}
	return x.FillBytes(make([]byte, size)), nil
}

// IntFromBytes parses b as an unsigned big-endian integer. Leading zero bytes
// are accepted, so SignedBytes output decodes to the same value.
func IntFromBytes(b []byte) (*big.Int, error) {
	if len(b) == 0 {
		return nil, ErrInvalidLength
	}
	if len(b) > MaxFieldBytes {
		return nil, ErrExceedsLimit
	}
	return new(big.Int).SetBytes(b), nil
}
