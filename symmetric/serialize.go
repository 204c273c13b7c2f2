package symmetric

import (
	"fmt"

	kmacx "github.com/BackendStack21/kmacx-go"
	"github.com/BackendStack21/kmacx-go/core"
	"github.com/BackendStack21/kmacx-go/utils"
)

// SerializeCryptogram encodes ct as three upper-case hex lines: nonce,
// ciphertext, tag.
func SerializeCryptogram(ct *kmacx.SymmetricCryptogram) []byte {
	return utils.EncodeHexLines(ct.Nonce, ct.Ciphertext, ct.Tag)
}

// DeserializeCryptogram parses the output of SerializeCryptogram.
func DeserializeCryptogram(data []byte) (*kmacx.SymmetricCryptogram, error) {
	fields, err := utils.DecodeHexLines(data, 3)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kmacx.ErrMalformed, err)
	}
	if len(fields[0]) != core.NonceSize {
		return nil, fmt.Errorf("%w: nonce must be %d bytes", kmacx.ErrMalformed, core.NonceSize)
	}
	if len(fields[2]) != core.DigestSize {
		return nil, fmt.Errorf("%w: tag must be %d bytes", kmacx.ErrMalformed, core.DigestSize)
	}
	return &kmacx.SymmetricCryptogram{
		Nonce:      fields[0],
		Ciphertext: fields[1],
		Tag:        fields[2],
	}, nil
}
