package keccak

const (
	// Rate is the number of state bytes XORed with input per window (1088 bits).
	Rate = 136
	// Capacity is the number of state bytes never exposed to input or output (512 bits).
	Capacity = StateSize - Rate
	// DigestSize is the Keccak-256 output length in bytes.
	DigestSize = 32

	// paddingStart marks the first byte after the input. Keccak (pre-FIPS 202) uses no extra
	// domain separation bits, so this is the bare 1 bit of pad10*1.
	paddingStart = 0x01
	// paddingEnd is the closing 1 bit of pad10*1, the top bit of the last byte of the window.
	paddingEnd = 0x80
)

// Sponge computes Keccak-256 digests by absorbing input through a Permutation. A Sponge holds no
// per-digest state and may be reused; every call works on its own State.
type Sponge struct {
	permutation Permutation
}

// NewSponge returns a Sponge over the given permutation.
func NewSponge(permutation Permutation) *Sponge {
	return &Sponge{permutation: permutation}
}

var defaultSponge = NewSponge(KeccakF1600{})

// Sum256 returns the Keccak-256 digest of input using Keccak-f[1600].
func Sum256(input []byte) [DigestSize]byte {
	return defaultSponge.Sum256(input)
}

// Sum256 pads and absorbs input into a fresh zero state and squeezes the digest out of it.
func (s *Sponge) Sum256(input []byte) [DigestSize]byte {
	var state State
	s.Absorb(&state, input)
	return Squeeze(&state)
}

// Absorb XORs input into state window by window, padding in the last window, and applies the
// permutation after every window. It runs len(input)/Rate+1 windows, so an input whose length is
// a multiple of Rate (including zero) is followed by a window that carries only padding.
func (s *Sponge) Absorb(state *State, input []byte) {
	inputLen := len(input)
	padIndex := inputLen % Rate
	windows := inputLen/Rate + 1

	inputOffset := 0
	for window := 0; window < windows; window++ {
		for i := 0; i < Rate; i++ {
			if inputOffset < inputLen {
				state.xorByte(i, input[inputOffset])
				inputOffset++
				continue
			}
			// Both markers hit the same byte when len(input)%Rate == Rate-1.
			if i == padIndex {
				state.xorByte(i, paddingStart)
			}
			if i == Rate-1 {
				state.xorByte(i, paddingEnd)
			}
		}
		s.permutation.Permute(state)
	}
}

// Squeeze reads the digest from the front of the rate region. It does not permute: the digest
// is shorter than the rate.
func Squeeze(state *State) [DigestSize]byte {
	var digest [DigestSize]byte
	for i := 0; i < DigestSize; i++ {
		digest[i] = state.Byte(i)
	}
	return digest
}
