package keccak

// NewShake256 returns a sponge configured for SHAKE256 (rate 136).
// Absorb with Write, then call Finalize(FinishSHAKE) before reading.
func NewShake256() *Sponge {
	return New(32)
}

// ShakeSum256 computes SHAKE256 of data with an output of outputLen bytes.
func ShakeSum256(data []byte, outputLen int) []byte {
	s := NewShake256()
	_, _ = s.Write(data)
	return s.Squeeze(FinishSHAKE, outputLen)
}

// Sum256 returns the SHA3-256 digest of data.
func Sum256(data []byte) [32]byte {
	s := New(32)
	_, _ = s.Write(data)
	var out [32]byte
	s.Finalize(FinishSHA3)
	_, _ = s.Read(out[:])
	return out
}

// Sum512 returns the SHA3-512 digest of data.
func Sum512(data []byte) [64]byte {
	s := New(64)
	_, _ = s.Write(data)
	var out [64]byte
	s.Finalize(FinishSHA3)
	_, _ = s.Read(out[:])
	return out
}
