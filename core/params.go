// Package core provides the fixed parameters of kmacx and the passphrase key
// derivation shared by the public-key packages.
package core

import (
	"errors"
	"math/big"

	kmacx "github.com/BackendStack21/kmacx-go"
)

// Customization strings. Each protocol step uses its own tag so that no two
// steps share a function family even on identical key and data.
const (
	TagHash          = "D"
	TagSymmetricKeys = "S"
	TagSymmetricEnc  = "SKE"
	TagSymmetricAuth = "SKA"
	TagAuth          = "T"
	TagKey           = "K"
	TagNonce         = "N"
	TagPublicKeys    = "P"
	TagPublicEnc     = "PKE"
	TagPublicAuth    = "PKA"
)

const (
	// DigestBits is the width of hashes, tags and derived scalars.
	DigestBits = 512
	// DigestSize is DigestBits in bytes.
	DigestSize = DigestBits / 8
	// KeyMaterialBits is the width of the (ke || ka) derivation.
	KeyMaterialBits = 2 * DigestBits
	// NonceSize is the size of the random nonce of a symmetric cryptogram.
	NonceSize = 64
	// EphemeralSize is the number of random bytes behind an ephemeral scalar.
	EphemeralSize = 64
)

func mustHexInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("core: bad constant " + s)
	}
	return v
}

// E521Params is the parameter set of the E-521 Edwards curve.
// The generator is the point with x = 4 and even y.
var E521Params = kmacx.CurveParams{
	Name: "E-521",
	// 2^521 - 1
	P: mustHexInt("1ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff" +
		"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"),
	// -376014 mod p
	D: mustHexInt("1ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff" +
		"fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffa4331"),
	// 2^519 - 337554763258501705789107630418782636071904961214051226618635150085779108655765
	R: mustHexInt("7ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff" +
		"d15b6c64746fc85f736b8af5e7ec53f04fbd8c4569a8f1f4540ea2435f5180d6b"),
	Cofactor: 4,
	Gx:       big.NewInt(4),
	Gy: mustHexInt("11dd4b4952f9b741bdb15c806d24013b3ebf3be43295904d1e4050b3c80f5920a" +
		"145616ebb481557d7bfa955cbfb1cfd4e064b0de40f93e22f8bcdfb41d0093b10c"),
	BitSize: 521,
}

// ValidateParams validates a curve parameter set for consistency.
// It does not check the order of the base point; that needs the group law.
func ValidateParams(params kmacx.CurveParams) error {
	if params.P == nil || params.D == nil || params.R == nil || params.Gx == nil || params.Gy == nil {
		return errors.New("curve parameters must be set")
	}
	if !params.P.ProbablyPrime(32) {
		return errors.New("field modulus must be prime")
	}
	if params.P.BitLen() != params.BitSize {
		return errors.New("field size does not match bit size")
	}
	if new(big.Int).Mod(params.P, big.NewInt(4)).Int64() != 3 {
		return errors.New("field modulus must be 3 mod 4")
	}
	if !params.R.ProbablyPrime(32) {
		return errors.New("subgroup order must be prime")
	}
	if params.Cofactor != 4 {
		return errors.New("cofactor must be 4")
	}
	if params.D.Sign() <= 0 || params.D.Cmp(params.P) >= 0 {
		return errors.New("curve coefficient must be reduced mod p")
	}
	if isSquare(params.D, params.P) {
		return errors.New("curve coefficient must be a non-square for a complete addition law")
	}
	if !onCurve(params, params.Gx, params.Gy) {
		return errors.New("base point is not on the curve")
	}
	return nil
}

// isSquare applies Euler's criterion.
func isSquare(a, p *big.Int) bool {
	e := new(big.Int).Rsh(new(big.Int).Sub(p, big.NewInt(1)), 1)
	return new(big.Int).Exp(a, e, p).Cmp(big.NewInt(1)) == 0
}

func onCurve(params kmacx.CurveParams, x, y *big.Int) bool {
	p := params.P
	x2 := new(big.Int).Mul(x, x)
	x2.Mod(x2, p)
	y2 := new(big.Int).Mul(y, y)
	y2.Mod(y2, p)

	left := new(big.Int).Add(x2, y2)
	left.Mod(left, p)

	right := new(big.Int).Mul(x2, y2)
	right.Mul(right, params.D)
	right.Add(right, big.NewInt(1))
	right.Mod(right, p)

	return left.Cmp(right) == 0
}
