package kmacx

import "errors"

var (
	// ErrInvalidPoint indicates a supplied point does not satisfy the curve equation.
	ErrInvalidPoint = errors.New("invalid curve point")

	// ErrAuthentication indicates a tag or challenge did not match.
	// No plaintext is returned alongside it.
	ErrAuthentication = errors.New("authentication failed")

	// ErrMalformed indicates encoded input that cannot be decoded into the expected fields.
	ErrMalformed = errors.New("malformed input")
)
