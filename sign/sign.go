// Package sign implements Schnorr-style signatures over E-521 with keys derived
// from a passphrase.
package sign

import (
	"math/big"

	kmacx "github.com/BackendStack21/kmacx-go"
	"github.com/BackendStack21/kmacx-go/core"
	"github.com/BackendStack21/kmacx-go/primitives/edwards"
	"github.com/BackendStack21/kmacx-go/primitives/kmac"
	"github.com/BackendStack21/kmacx-go/utils"
)

// GenerateKeyPair derives the signing key pair of a passphrase. It is the same
// key pair the ecies package derives, so one public key serves both.
func GenerateKeyPair(passphrase []byte) *kmacx.KeyPair {
	s := core.DeriveSecret(passphrase)
	return &kmacx.KeyPair{
		Secret: s,
		Public: edwards.E521().ScalarBaseMult(s),
	}
}

// Sign signs message with the key pair of passphrase:
//
//	s <- 4 * KMAC256(pw, "", 512, "K")
//	k <- 4 * KMAC256(s, m, 512, "N")
//	U <- k*G
//	h <- KMAC256(U.x, m, 512, "T")
//	z <- (k - h*s) mod r
//
// The nonce k is derived from the secret and the message, so signing is
// deterministic.
func Sign(passphrase, message []byte) *kmacx.Signature {
	return SignWithSecret(core.DeriveSecret(passphrase), message)
}

// SignWithSecret is Sign with an already derived secret scalar.
func SignWithSecret(secret *big.Int, message []byte) *kmacx.Signature {
	curve := edwards.E521()

	sBytes := utils.SignedBytes(secret)
	k := core.DeriveScalar(sBytes, message, core.TagNonce)
	utils.Zeroize(sBytes)

	u := curve.ScalarBaseMult(k)
	h := new(big.Int).SetBytes(challenge(u, message))

	z := new(big.Int).Mul(h, secret)
	z.Sub(k, z)
	z.Mod(z, curve.Order())
	k.SetInt64(0)

	return &kmacx.Signature{H: h, Z: z}
}

// Verify reports whether sig is a valid signature of message under publicKey.
// It recomputes U = z*G + h*V and accepts iff KMAC256(U.x, m, 512, "T") equals h.
// An off-curve public key or an out-of-range signature is rejected.
func Verify(publicKey kmacx.Point, message []byte, sig *kmacx.Signature) bool {
	if sig == nil || sig.H == nil || sig.Z == nil || sig.H.Sign() < 0 || sig.Z.Sign() < 0 {
		return false
	}
	curve := edwards.E521()
	if err := curve.Validate(publicKey); err != nil {
		utils.Debugf("sign: public key rejected")
		return false
	}
	want, err := utils.FixedBytes(sig.H, core.DigestSize)
	if err != nil {
		utils.Debugf("sign: challenge wider than %d bits", core.DigestBits)
		return false
	}

	u := curve.Add(curve.ScalarBaseMult(sig.Z), curve.ScalarMult(publicKey, sig.H))
	return utils.ConstantTimeEqual(challenge(u, message), want)
}

// challenge returns KMAC256(U.x, m, 512, "T"). Unlike the nonce it is not
// scaled by the cofactor.
func challenge(u kmacx.Point, message []byte) []byte {
	return kmac.Sum(utils.SignedBytes(u.X), message, core.DigestBits, []byte(core.TagAuth))
}
