package ecies

import (
	"fmt"

	kmacx "github.com/BackendStack21/kmacx-go"
	"github.com/BackendStack21/kmacx-go/core"
	"github.com/BackendStack21/kmacx-go/primitives/edwards"
	"github.com/BackendStack21/kmacx-go/utils"
)

// SerializePublicKey encodes V as two upper-case hex lines: x, y.
func SerializePublicKey(publicKey kmacx.Point) []byte {
	return utils.EncodeHexLines(utils.SignedBytes(publicKey.X), utils.SignedBytes(publicKey.Y))
}

// DeserializePublicKey parses and validates a public key file.
func DeserializePublicKey(data []byte) (kmacx.Point, error) {
	fields, err := utils.DecodeHexLines(data, 2)
	if err != nil {
		return kmacx.Point{}, fmt.Errorf("%w: %v", kmacx.ErrMalformed, err)
	}
	return decodePoint(fields[0], fields[1])
}

// SerializeCryptogram encodes ct as four upper-case hex lines: Z.x, Z.y,
// ciphertext, tag.
func SerializeCryptogram(ct *kmacx.AsymmetricCryptogram) []byte {
	return utils.EncodeHexLines(
		utils.SignedBytes(ct.Ephemeral.X),
		utils.SignedBytes(ct.Ephemeral.Y),
		ct.Ciphertext,
		ct.Tag,
	)
}

// DeserializeCryptogram parses an asymmetric cryptogram and validates Z.
func DeserializeCryptogram(data []byte) (*kmacx.AsymmetricCryptogram, error) {
	fields, err := utils.DecodeHexLines(data, 4)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kmacx.ErrMalformed, err)
	}
	z, err := decodePoint(fields[0], fields[1])
	if err != nil {
		return nil, err
	}
	if len(fields[3]) != core.DigestSize {
		return nil, fmt.Errorf("%w: tag must be %d bytes", kmacx.ErrMalformed, core.DigestSize)
	}
	return &kmacx.AsymmetricCryptogram{
		Ephemeral:  z,
		Ciphertext: fields[2],
		Tag:        fields[3],
	}, nil
}

func decodePoint(xb, yb []byte) (kmacx.Point, error) {
	x, err := utils.IntFromBytes(xb)
	if err != nil {
		return kmacx.Point{}, fmt.Errorf("%w: x: %v", kmacx.ErrMalformed, err)
	}
	y, err := utils.IntFromBytes(yb)
	if err != nil {
		return kmacx.Point{}, fmt.Errorf("%w: y: %v", kmacx.ErrMalformed, err)
	}
	pt := kmacx.Point{X: x, Y: y}
	if err := edwards.E521().Validate(pt); err != nil {
		return kmacx.Point{}, err
	}
	return pt, nil
}
