package core

import (
	"math/big"

	"github.com/BackendStack21/kmacx-go/primitives/kmac"
)

// DeriveScalar returns cofactor * int(KMAC256(key, data, 512, tag)), reading the
// XOF output as an unsigned big-endian integer.
func DeriveScalar(key, data []byte, tag string) *big.Int {
	out := kmac.Sum(key, data, DigestBits, []byte(tag))
	return CofactorScalar(out)
}

// CofactorScalar interprets b as an unsigned big-endian integer and multiplies it
// by the cofactor, so the scalar maps every point into the prime-order subgroup.
func CofactorScalar(b []byte) *big.Int {
	v := new(big.Int).SetBytes(b)
	return v.Mul(v, big.NewInt(E521Params.Cofactor))
}

// DeriveSecret derives the secret scalar s = 4 * KMAC256(pw, "", 512, "K").
func DeriveSecret(passphrase []byte) *big.Int {
	return DeriveScalar(passphrase, nil, TagKey)
}
