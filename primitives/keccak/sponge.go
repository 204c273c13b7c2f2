package keccak

// FinishMode selects the domain-separation byte XORed in when a sponge switches
// from absorbing to squeezing.
type FinishMode byte

const (
	// FinishKeccak is the original Keccak submission padding (Keccak-256 et al.).
	FinishKeccak FinishMode = 0x01
	// FinishCSHAKE is used by cSHAKE and everything built on it (KMAC).
	FinishCSHAKE FinishMode = 0x04
	// FinishSHA3 is used by the fixed-length SHA3-* hashes.
	FinishSHA3 FinishMode = 0x06
	// FinishSHAKE is used by the plain SHAKE extendable-output functions.
	FinishSHAKE FinishMode = 0x1F
)

// String returns the name of the finish mode.
func (m FinishMode) String() string {
	switch m {
	case FinishKeccak:
		return "keccak"
	case FinishCSHAKE:
		return "cshake"
	case FinishSHA3:
		return "sha3"
	case FinishSHAKE:
		return "shake"
	default:
		return "unknown"
	}
}

// Sponge is a Keccak sponge: absorb with Write, switch once with Finalize,
// then squeeze with Read.
//
// A Sponge is scoped to one logical operation and must not be shared between
// goroutines.
type Sponge struct {
	state     [StateSize]byte
	rate      int
	pos       int // cursor into the rate region; pos == rate only while squeezing
	finalized bool
}

// New returns an empty sponge whose rate is StateSize - 2*mdlen bytes.
// mdlen is half the capacity: 32 for the 256-bit security family (rate 136),
// 64 for SHA3-512 (rate 72).
func New(mdlen int) *Sponge {
	if mdlen <= 0 || 2*mdlen >= StateSize {
		panic("keccak: invalid output capacity")
	}
	return &Sponge{rate: StateSize - 2*mdlen}
}

// Rate returns the number of bytes absorbed or squeezed per permutation call.
func (s *Sponge) Rate() int {
	return s.rate
}

// Reset clears the state so the sponge can absorb a new message.
func (s *Sponge) Reset() {
	s.state = [StateSize]byte{}
	s.pos = 0
	s.finalized = false
}

// Write absorbs p into the state. It never returns an error.
// Writing after Finalize panics.
func (s *Sponge) Write(p []byte) (int, error) {
	if s.finalized {
		panic("keccak: Write after Finalize")
	}
	n := len(p)
	for len(p) > 0 {
		k := min(s.rate-s.pos, len(p))
		for i := 0; i < k; i++ {
			s.state[s.pos+i] ^= p[i]
		}
		s.pos += k
		p = p[k:]
		if s.pos == s.rate {
			KeccakF1600(&s.state)
			s.pos = 0
		}
	}
	return n, nil
}

// Finalize pads the absorbed input with the mode's domain byte and the final
// 0x80 bit at the end of the rate, then permutes. It must be called exactly once,
// before the first Read.
func (s *Sponge) Finalize(mode FinishMode) {
	if s.finalized {
		panic("keccak: Finalize called twice")
	}
	s.state[s.pos] ^= byte(mode)
	s.state[s.rate-1] ^= 0x80
	KeccakF1600(&s.state)
	s.pos = 0
	s.finalized = true
}

// Read squeezes len(out) bytes. Reading before Finalize panics.
func (s *Sponge) Read(out []byte) (int, error) {
	if !s.finalized {
		panic("keccak: Read before Finalize")
	}
	n := len(out)
	for len(out) > 0 {
		if s.pos == s.rate {
			KeccakF1600(&s.state)
			s.pos = 0
		}
		k := copy(out, s.state[s.pos:s.rate])
		s.pos += k
		out = out[k:]
	}
	return n, nil
}

// Squeeze finalizes with mode if needed and returns n output bytes.
func (s *Sponge) Squeeze(mode FinishMode, n int) []byte {
	if !s.finalized {
		s.Finalize(mode)
	}
	out := make([]byte, n)
	_, _ = s.Read(out)
	return out
}
