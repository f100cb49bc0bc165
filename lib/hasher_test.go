package lib

import (
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/brianvoe/gofakeit"
	"github.com/deso-protocol/keccakcheck/keccak"
	"github.com/stretchr/testify/require"
)

func allHashers() []Hasher {
	return []Hasher{
		NewSpongeHasher(keccak.KeccakF1600{}),
		XCryptoHasher{},
		GethHasher{},
		FlowHasher{},
	}
}

func TestHashersKnownVectors(t *testing.T) {
	require := require.New(t)

	for _, hasher := range allHashers() {
		for _, vec := range keccak.KnownVectors {
			digest := hasher.Sum256(vec.Input)
			require.Equal(vec.Digest, hex.EncodeToString(digest[:]), "%s on %q", hasher.Name(), vec.Name)
		}
	}
}

func TestHashersAgreeOnRandomBytes(t *testing.T) {
	require := require.New(t)

	r := rand.New(rand.NewSource(7))
	hashers := allHashers()
	for ii := 0; ii < 300; ii++ {
		input := make([]byte, r.Intn(301))
		r.Read(input)

		expected := hashers[0].Sum256(input)
		for _, hasher := range hashers[1:] {
			require.Equal(expected, hasher.Sum256(input), "%s on %x", hasher.Name(), input)
		}
	}
}

func TestHashersAgreeOnText(t *testing.T) {
	require := require.New(t)

	gofakeit.Seed(11)
	hashers := allHashers()
	for ii := 0; ii < 50; ii++ {
		input := []byte(gofakeit.Paragraph(1+ii%3, 3, 12, "\n"))

		expected := hashers[0].Sum256(input)
		for _, hasher := range hashers[1:] {
			require.Equal(expected, hasher.Sum256(input), "%s on %q", hasher.Name(), input)
		}
	}
}

func TestHasherNamesAreDistinct(t *testing.T) {
	require := require.New(t)

	names := map[string]bool{}
	for _, hasher := range allHashers() {
		require.False(names[hasher.Name()], hasher.Name())
		names[hasher.Name()] = true
	}
}

func TestNewOracle(t *testing.T) {
	require := require.New(t)

	require.Equal([]string{OracleGeth, OracleFlow, OracleXCrypto}, OracleKeys())

	oracles, err := NewOracles(DefaultOracles)
	require.NoError(err)
	require.Equal(2, len(oracles))
	require.Equal(XCryptoHasherName, oracles[0].Name())
	require.Equal(GethHasherName, oracles[1].Name())

	oracle, err := NewOracle(OracleFlow)
	require.NoError(err)
	require.Equal(FlowHasherName, oracle.Name())

	_, err = NewOracle("tiny-keccak")
	require.Error(err)
	_, err = NewOracles([]string{OracleGeth, "sha256"})
	require.Error(err)
}

func BenchmarkSpongeHasher(b *testing.B) {
	benchmarkHasher(b, NewSpongeHasher(keccak.KeccakF1600{}))
}

func BenchmarkXCryptoHasher(b *testing.B) {
	benchmarkHasher(b, XCryptoHasher{})
}

func BenchmarkGethHasher(b *testing.B) {
	benchmarkHasher(b, GethHasher{})
}

func BenchmarkFlowHasher(b *testing.B) {
	benchmarkHasher(b, FlowHasher{})
}

func benchmarkHasher(b *testing.B, hasher Hasher) {
	input := make([]byte, 300)
	for i := 0; i < b.N; i++ {
		input[0] = byte(i)
		_ = hasher.Sum256(input)
	}
}
