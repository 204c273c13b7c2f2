// Package ecies implements passphrase-derived E-521 key pairs and ECIES-style
// public-key encryption built from KMAC256.
package ecies

import (
	"fmt"
	"math/big"

	kmacx "github.com/BackendStack21/kmacx-go"
	"github.com/BackendStack21/kmacx-go/core"
	"github.com/BackendStack21/kmacx-go/primitives/edwards"
	"github.com/BackendStack21/kmacx-go/primitives/kmac"
	"github.com/BackendStack21/kmacx-go/utils"
)

// GenerateKeyPair derives the key pair of a passphrase:
//
//	s <- 4 * KMAC256(pw, "", 512, "K")
//	V <- s*G
func GenerateKeyPair(passphrase []byte) *kmacx.KeyPair {
	s := core.DeriveSecret(passphrase)
	return &kmacx.KeyPair{
		Secret: s,
		Public: edwards.E521().ScalarBaseMult(s),
	}
}

// Encrypt encrypts message to the public key V with a fresh random ephemeral scalar.
func Encrypt(publicKey kmacx.Point, message []byte) (*kmacx.AsymmetricCryptogram, error) {
	ephemeral, err := utils.SecureRandomBytes(core.EphemeralSize)
	if err != nil {
		return nil, fmt.Errorf("generate ephemeral scalar: %w", err)
	}
	defer utils.Zeroize(ephemeral)
	return EncryptDeterministic(publicKey, message, ephemeral)
}

// EncryptDeterministic encrypts message to V using the 64 caller-supplied bytes
// as the ephemeral randomness:
//
//	k <- 4 * int(ephemeral)
//	W <- k*V; Z <- k*G
//	(ke || ka) <- KMAC256(W.x, "", 1024, "P")
//	c <- KMAC256(ke, "", 8|m|, "PKE") xor m
//	t <- KMAC256(ka, m, 512, "PKA")
//
// Ephemeral bytes must never be reused.
func EncryptDeterministic(publicKey kmacx.Point, message, ephemeral []byte) (*kmacx.AsymmetricCryptogram, error) {
	if len(ephemeral) != core.EphemeralSize {
		return nil, fmt.Errorf("ephemeral randomness must be %d bytes: %w", core.EphemeralSize, kmacx.ErrMalformed)
	}
	curve := edwards.E521()
	if err := curve.Validate(publicKey); err != nil {
		return nil, fmt.Errorf("public key: %w", err)
	}
	bits, err := utils.BitLength(len(message))
	if err != nil {
		return nil, fmt.Errorf("message length: %w", err)
	}

	k := core.CofactorScalar(ephemeral)
	w := curve.ScalarMult(publicKey, k)
	z := curve.ScalarBaseMult(k)

	ke, ka := deriveKeys(w)
	defer utils.Zeroize(ke)
	defer utils.Zeroize(ka)

	keystream := kmac.Sum(ke, nil, bits, []byte(core.TagPublicEnc))
	return &kmacx.AsymmetricCryptogram{
		Ephemeral:  z,
		Ciphertext: utils.XORBytes(keystream, message),
		Tag:        kmac.Sum(ka, message, core.DigestBits, []byte(core.TagPublicAuth)),
	}, nil
}

// Decrypt recovers the plaintext of ct with the key pair of passphrase.
// It returns kmacx.ErrInvalidPoint if Z is not on the curve and
// kmacx.ErrAuthentication, with no plaintext, if the tag does not match.
func Decrypt(passphrase []byte, ct *kmacx.AsymmetricCryptogram) ([]byte, error) {
	return DecryptWithSecret(core.DeriveSecret(passphrase), ct)
}

// DecryptWithSecret is Decrypt with an already derived secret scalar.
func DecryptWithSecret(secret *big.Int, ct *kmacx.AsymmetricCryptogram) ([]byte, error) {
	if ct == nil || len(ct.Tag) != core.DigestSize {
		return nil, fmt.Errorf("asymmetric cryptogram: %w", kmacx.ErrMalformed)
	}
	curve := edwards.E521()
	if err := curve.Validate(ct.Ephemeral); err != nil {
		utils.Debugf("ecies: ephemeral point rejected")
		return nil, fmt.Errorf("ephemeral key: %w", err)
	}
	bits, err := utils.BitLength(len(ct.Ciphertext))
	if err != nil {
		return nil, fmt.Errorf("ciphertext length: %w", err)
	}

	w := curve.ScalarMult(ct.Ephemeral, secret)
	ke, ka := deriveKeys(w)
	defer utils.Zeroize(ke)
	defer utils.Zeroize(ka)

	keystream := kmac.Sum(ke, nil, bits, []byte(core.TagPublicEnc))
	message := utils.XORBytes(keystream, ct.Ciphertext)
	tag := kmac.Sum(ka, message, core.DigestBits, []byte(core.TagPublicAuth))

	if !utils.ConstantTimeEqual(tag, ct.Tag) {
		utils.Zeroize(message)
		utils.Debugf("ecies: tag mismatch")
		return nil, kmacx.ErrAuthentication
	}
	return message, nil
}

// deriveKeys splits KMAC256(W.x, "", 1024, "P") into (ke, ka).
func deriveKeys(w kmacx.Point) (ke, ka []byte) {
	keys := kmac.Sum(utils.SignedBytes(w.X), nil, core.KeyMaterialBits, []byte(core.TagPublicKeys))
	return keys[:core.DigestSize], keys[core.DigestSize:]
}
