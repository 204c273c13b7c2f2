// Package utils provides utility functions for kmacx.
// This file contains safe arithmetic and allocation helpers to prevent
// integer overflow and denial-of-service via large allocations.

package utils

import (
	"errors"
	"math"
)

// Maximum allowed lengths for decoded data.
const (
	// MaxMessageSize is the maximum message size accepted by the protocol packages.
	MaxMessageSize = 1 << 28 // 256MB

	// MaxFieldBytes is the maximum size of a big-integer field in an artifact.
	MaxFieldBytes = 1024

	// MaxArtifactSize is the maximum size of an encoded artifact.
	MaxArtifactSize = 2*MaxMessageSize + 4*MaxFieldBytes
)

var (
	// ErrOverflow indicates an integer overflow occurred.
	ErrOverflow = errors.New("integer overflow")

	// ErrExceedsLimit indicates a value exceeds the allowed limit.
	ErrExceedsLimit = errors.New("value exceeds allowed limit")

	// ErrInvalidLength indicates an invalid length value.
	ErrInvalidLength = errors.New("invalid length")
)

// SafeMultiply multiplies two non-negative integers and returns an error if overflow occurs.
func SafeMultiply(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, ErrInvalidLength
	}
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxInt/b {
		return 0, ErrOverflow
	}
	return a * b, nil
}

// BitLength returns 8*n, the output length in bits for an n-byte keystream.
func BitLength(n int) (int, error) {
	if err := CheckLength(n, MaxMessageSize); err != nil {
		return 0, err
	}
	return SafeMultiply(n, 8)
}

// CheckLength validates that length is within [0, maxAllowed].
func CheckLength(length, maxAllowed int) error {
	if length < 0 {
		return ErrInvalidLength
	}
	if length > maxAllowed {
		return ErrExceedsLimit
	}
	return nil
}
