// Package symmetric implements the passphrase-based services of kmacx: plain
// hashing, message authentication and authenticated encryption, each a fixed
// sequence of KMAC256 calls.
package symmetric

import (
	"fmt"
	"runtime"
	"sync"

	kmacx "github.com/BackendStack21/kmacx-go"
	"github.com/BackendStack21/kmacx-go/core"
	"github.com/BackendStack21/kmacx-go/primitives/kmac"
	"github.com/BackendStack21/kmacx-go/utils"
)

// Hash computes h = KMAC256("", m, 512, "D").
func Hash(message []byte) []byte {
	return kmac.Sum(nil, message, core.DigestBits, []byte(core.TagHash))
}

// HashAll hashes every message concurrently and returns the digests in input order.
func HashAll(messages [][]byte) [][]byte {
	digests := make([][]byte, len(messages))
	workers := min(runtime.GOMAXPROCS(0), len(messages))

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				digests[i] = Hash(messages[i])
			}
		}()
	}
	for i := range messages {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return digests
}

// MAC computes t = KMAC256(pw, m, 512, "T").
func MAC(passphrase, message []byte) []byte {
	return kmac.Sum(passphrase, message, core.DigestBits, []byte(core.TagAuth))
}

// VerifyMAC recomputes the tag of message and compares it to tag in constant time.
func VerifyMAC(passphrase, message, tag []byte) bool {
	return utils.ConstantTimeEqual(MAC(passphrase, message), tag)
}

// Encrypt encrypts message under passphrase with a fresh 64-byte random nonce.
func Encrypt(passphrase, message []byte) (*kmacx.SymmetricCryptogram, error) {
	nonce, err := utils.SecureRandomBytes(core.NonceSize)
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return EncryptWithNonce(passphrase, message, nonce)
}

// EncryptWithNonce encrypts message with a caller-supplied nonce:
//
//	(ke || ka) <- KMAC256(z || pw, "", 1024, "S")
//	c <- KMAC256(ke, "", 8|m|, "SKE") xor m
//	t <- KMAC256(ka, m, 512, "SKA")
//
// Reusing a nonce with the same passphrase reveals the XOR of the plaintexts.
func EncryptWithNonce(passphrase, message, nonce []byte) (*kmacx.SymmetricCryptogram, error) {
	if len(nonce) != core.NonceSize {
		return nil, fmt.Errorf("nonce must be %d bytes: %w", core.NonceSize, kmacx.ErrMalformed)
	}
	bits, err := utils.BitLength(len(message))
	if err != nil {
		return nil, fmt.Errorf("message length: %w", err)
	}

	ke, ka := deriveKeys(nonce, passphrase)
	defer utils.Zeroize(ke)
	defer utils.Zeroize(ka)

	keystream := kmac.Sum(ke, nil, bits, []byte(core.TagSymmetricEnc))
	ciphertext := utils.XORBytes(keystream, message)
	tag := kmac.Sum(ka, message, core.DigestBits, []byte(core.TagSymmetricAuth))

	return &kmacx.SymmetricCryptogram{
		Nonce:      append([]byte{}, nonce...),
		Ciphertext: ciphertext,
		Tag:        tag,
	}, nil
}

// Decrypt recovers the plaintext of ct. It returns kmacx.ErrAuthentication, and
// no plaintext, when the recomputed tag differs from ct.Tag.
func Decrypt(passphrase []byte, ct *kmacx.SymmetricCryptogram) ([]byte, error) {
	if ct == nil || len(ct.Nonce) != core.NonceSize || len(ct.Tag) != core.DigestSize {
		return nil, fmt.Errorf("symmetric cryptogram: %w", kmacx.ErrMalformed)
	}
	bits, err := utils.BitLength(len(ct.Ciphertext))
	if err != nil {
		return nil, fmt.Errorf("ciphertext length: %w", err)
	}

	ke, ka := deriveKeys(ct.Nonce, passphrase)
	defer utils.Zeroize(ke)
	defer utils.Zeroize(ka)

	keystream := kmac.Sum(ke, nil, bits, []byte(core.TagSymmetricEnc))
	message := utils.XORBytes(keystream, ct.Ciphertext)
	tag := kmac.Sum(ka, message, core.DigestBits, []byte(core.TagSymmetricAuth))

	if !utils.ConstantTimeEqual(tag, ct.Tag) {
		utils.Zeroize(message)
		utils.Debugf("symmetric: tag mismatch")
		return nil, kmacx.ErrAuthentication
	}
	return message, nil
}

// deriveKeys splits KMAC256(nonce || pw, "", 1024, "S") into the keystream key
// ke and the tag key ka.
func deriveKeys(nonce, passphrase []byte) (ke, ka []byte) {
	seed := make([]byte, 0, len(nonce)+len(passphrase))
	seed = append(seed, nonce...)
	seed = append(seed, passphrase...)
	keys := kmac.Sum(seed, nil, core.KeyMaterialBits, []byte(core.TagSymmetricKeys))
	utils.Zeroize(seed)
	return keys[:core.DigestSize], keys[core.DigestSize:]
}
