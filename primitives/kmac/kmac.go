// Package kmac implements cSHAKE256 and KMAC256 (NIST SP 800-185) on top of the
// keccak sponge.
//
// Sum is the only primitive the protocol packages use: it binds the requested
// output length into the input, so asking for a different length gives an
// unrelated result rather than a prefix or extension.
package kmac

import (
	"github.com/BackendStack21/kmacx-go/primitives/keccak"
)

const (
	// Rate is the sponge rate of the 256-bit security family in bytes.
	Rate = 136

	// mdlen is half the capacity in bytes; keccak.New(mdlen) yields Rate.
	mdlen = 32
)

// functionName is the cSHAKE function-name string that identifies KMAC.
var functionName = []byte("KMAC")

// Sum computes KMAC256(key, data, outputBits, customization) and returns
// ceil(outputBits/8) bytes. The output length is absorbed as right_encode(outputBits).
func Sum(key, data []byte, outputBits int, customization []byte) []byte {
	return compute(key, data, outputBits, customization, uint64(outputBitsChecked(outputBits)))
}

// XOF computes KMACXOF256(key, data, outputBits, customization). Unlike Sum the
// length is absorbed as right_encode(0), so shorter outputs are prefixes of
// longer ones.
func XOF(key, data []byte, outputBits int, customization []byte) []byte {
	return compute(key, data, outputBitsChecked(outputBits), customization, 0)
}

// CShake256 computes cSHAKE256(data, outputBits, name, customization).
// With both name and customization empty it is SHAKE256.
func CShake256(data []byte, outputBits int, name, customization []byte) []byte {
	n := outputBytes(outputBitsChecked(outputBits))
	if len(name) == 0 && len(customization) == 0 {
		return keccak.ShakeSum256(data, n)
	}
	s := newCShake(name, customization)
	_, _ = s.Write(data)
	return s.Squeeze(keccak.FinishCSHAKE, n)
}

func compute(key, data []byte, outputBits int, customization []byte, encodedBits uint64) []byte {
	s := newCShake(functionName, customization)
	_, _ = s.Write(Bytepad(EncodeString(key), Rate))
	_, _ = s.Write(data)
	_, _ = s.Write(RightEncode(encodedBits))
	return s.Squeeze(keccak.FinishCSHAKE, outputBytes(outputBits))
}

// newCShake returns a sponge that has absorbed bytepad(encode_string(N) || encode_string(S), rate).
func newCShake(name, customization []byte) *keccak.Sponge {
	s := keccak.New(mdlen)
	header := append(EncodeString(name), EncodeString(customization)...)
	_, _ = s.Write(Bytepad(header, Rate))
	return s
}

func outputBitsChecked(outputBits int) int {
	if outputBits < 0 {
		panic("kmac: negative output length")
	}
	return outputBits
}

func outputBytes(outputBits int) int {
	return (outputBits + 7) / 8
}
