package keccak

import "math/bits"

const (
	// Lanes is the number of 64-bit words in the Keccak-f[1600] state.
	Lanes = 25
	// StateSize is the size of the state in bytes.
	StateSize = Lanes * 8
	// Rounds is the number of rounds of Keccak-f[1600].
	Rounds = 24
)

// State is the 1600-bit Keccak state. Lane x+5y holds the 64 bits at column x, row y. Byte i of
// the sponge's byte view lives in lane i/8 at bit offset (i%8)*8.
type State [Lanes]uint64

// Byte returns byte i of the state's byte view.
func (s *State) Byte(i int) byte {
	return byte(s[i/8] >> ((i % 8) * 8))
}

func (s *State) xorByte(i int, b byte) {
	s[i/8] ^= uint64(b) << ((i % 8) * 8)
}

// Bytes returns the full byte view of the state.
func (s *State) Bytes() [StateSize]byte {
	var out [StateSize]byte
	for i := range out {
		out[i] = s.Byte(i)
	}
	return out
}

// Permutation transforms a state in place. Callers hand over exclusive access to the state for
// the duration of the call.
type Permutation interface {
	Permute(state *State)
}

// PermutationFunc adapts a plain function to the Permutation interface.
type PermutationFunc func(state *State)

func (f PermutationFunc) Permute(state *State) {
	f(state)
}

// KeccakF1600 is the 24-round Keccak-f[1600] permutation.
type KeccakF1600 struct{}

func (KeccakF1600) Permute(state *State) {
	keccakF1600(state)
}

// roundConstants are XORed into lane 0 by the iota step.
var roundConstants = [Rounds]uint64{
	0x0000000000000001,
	0x0000000000008082,
	0x800000000000808A,
	0x8000000080008000,
	0x000000000000808B,
	0x0000000080000001,
	0x8000000080008081,
	0x8000000000008009,
	0x000000000000008A,
	0x0000000000000088,
	0x0000000080008009,
	0x000000008000000A,
	0x000000008000808B,
	0x800000000000008B,
	0x8000000000008089,
	0x8000000000008003,
	0x8000000000008002,
	0x8000000000000080,
	0x000000000000800A,
	0x800000008000000A,
	0x8000000080008081,
	0x8000000000008080,
	0x0000000080000001,
	0x8000000080008008,
}

// rotationOffsets and piLanes drive the combined rho and pi steps: lane piLanes[i] receives the
// previous lane rotated left by rotationOffsets[i].
var rotationOffsets = [24]int{
	1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14,
	27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44,
}

var piLanes = [24]int{
	10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4,
	15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1,
}

func keccakF1600(st *State) {
	var bc [5]uint64
	var t uint64
	for round := 0; round < Rounds; round++ {
		// theta
		for i := 0; i < 5; i++ {
			bc[i] = st[i] ^ st[i+5] ^ st[i+10] ^ st[i+15] ^ st[i+20]
		}
		for i := 0; i < 5; i++ {
			t = bc[(i+4)%5] ^ bits.RotateLeft64(bc[(i+1)%5], 1)
			for j := 0; j < Lanes; j += 5 {
				st[j+i] ^= t
			}
		}

		// rho pi
		t = st[1]
		for i := 0; i < 24; i++ {
			j := piLanes[i]
			bc[0] = st[j]
			st[j] = bits.RotateLeft64(t, rotationOffsets[i])
			t = bc[0]
		}

		// chi
		for j := 0; j < Lanes; j += 5 {
			for i := 0; i < 5; i++ {
				bc[i] = st[j+i]
			}
			for i := 0; i < 5; i++ {
				st[j+i] ^= ^bc[(i+1)%5] & bc[(i+2)%5]
			}
		}

		// iota
		st[0] ^= roundConstants[round]
	}
}
