// Package keccak implements the Keccak-f[1600] permutation and the sponge
// construction built on it.
//
// The state is a 200-byte array viewed as 25 little-endian 64-bit lanes while a
// permutation runs. Nothing here allocates on the heap; every sponge owns its
// own state, so independent sponges can be used from different goroutines.
package keccak

import (
	"encoding/binary"
	"math/bits"
)

const (
	// StateSize is the width of the Keccak-f[1600] state in bytes.
	StateSize = 200

	// Rounds is the number of rounds of Keccak-f[1600].
	Rounds = 24
)

// roundConstants are XORed into lane 0 by the iota step, one per round.
var roundConstants = [Rounds]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rotations[i] is the rho offset applied to the lane moved into piLanes[i].
var rotations = [24]int{
	1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14,
	27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44,
}

// piLanes is the lane visiting order of the combined rho/pi walk starting at lane 1.
var piLanes = [24]int{
	10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4,
	15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1,
}

// KeccakF1600 applies the 24-round Keccak-f[1600] permutation to state in place.
func KeccakF1600(state *[StateSize]byte) {
	var a [25]uint64
	var bc [5]uint64

	for i := range a {
		a[i] = binary.LittleEndian.Uint64(state[i*8:])
	}

	for r := 0; r < Rounds; r++ {
		// Theta
		for i := 0; i < 5; i++ {
			bc[i] = a[i] ^ a[i+5] ^ a[i+10] ^ a[i+15] ^ a[i+20]
		}
		for i := 0; i < 5; i++ {
			t := bc[(i+4)%5] ^ bits.RotateLeft64(bc[(i+1)%5], 1)
			for j := 0; j < 25; j += 5 {
				a[j+i] ^= t
			}
		}

		// Rho and pi
		t := a[1]
		for i := 0; i < 24; i++ {
			j := piLanes[i]
			bc[0] = a[j]
			a[j] = bits.RotateLeft64(t, rotations[i])
			t = bc[0]
		}

		// Chi
		for j := 0; j < 25; j += 5 {
			copy(bc[:], a[j:j+5])
			for i := 0; i < 5; i++ {
				a[j+i] ^= ^bc[(i+1)%5] & bc[(i+2)%5]
			}
		}

		// Iota
		a[0] ^= roundConstants[r]
	}

	for i := range a {
		binary.LittleEndian.PutUint64(state[i*8:], a[i])
	}
}
