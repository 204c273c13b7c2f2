package kmacx

import "math/big"

// =============================================================================
// Curve Types
// =============================================================================

// CurveParams describes an Edwards curve x^2 + y^2 = 1 + d*x^2*y^2 over GF(p).
type CurveParams struct {
	Name     string
	P        *big.Int // Field prime
	D        *big.Int // Edwards coefficient, reduced mod P
	R        *big.Int // Prime subgroup order
	Cofactor int64
	Gx, Gy   *big.Int // Base point of order R
	BitSize  int
}

// Point is an affine point on the curve. The neutral element is (0, 1).
// Points are treated as immutable values.
type Point struct {
	X, Y *big.Int
}

// =============================================================================
// Key Types
// =============================================================================

// KeyPair holds a passphrase-derived secret scalar and its public point.
type KeyPair struct {
	Secret *big.Int // 4 * KMAC256(pw, "", 512, "K")
	Public Point    // Secret * G
}

// =============================================================================
// Cryptogram Types
// =============================================================================

// SymmetricCryptogram is the output of passphrase-based encryption.
type SymmetricCryptogram struct {
	Nonce      []byte // 64 random bytes
	Ciphertext []byte // Same length as the plaintext
	Tag        []byte // 64-byte authentication tag
}

// AsymmetricCryptogram is the output of public-key encryption.
type AsymmetricCryptogram struct {
	Ephemeral  Point // Z = k*G
	Ciphertext []byte
	Tag        []byte
}

// =============================================================================
// Signature Types
// =============================================================================

// Signature is a Schnorr-style signature (h, z).
type Signature struct {
	H *big.Int // Challenge bound to the message and the commitment
	Z *big.Int // Response mod R
}
