package sign

import (
	"fmt"

	kmacx "github.com/BackendStack21/kmacx-go"
	"github.com/BackendStack21/kmacx-go/utils"
)

// SerializeSignature encodes sig as two upper-case hex lines: h, z.
func SerializeSignature(sig *kmacx.Signature) []byte {
	return utils.EncodeHexLines(utils.SignedBytes(sig.H), utils.SignedBytes(sig.Z))
}

// DeserializeSignature parses a signature file. Range checks happen in Verify.
func DeserializeSignature(data []byte) (*kmacx.Signature, error) {
	fields, err := utils.DecodeHexLines(data, 2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kmacx.ErrMalformed, err)
	}
	h, err := utils.IntFromBytes(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: h: %v", kmacx.ErrMalformed, err)
	}
	z, err := utils.IntFromBytes(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: z: %v", kmacx.ErrMalformed, err)
	}
	return &kmacx.Signature{H: h, Z: z}, nil
}
