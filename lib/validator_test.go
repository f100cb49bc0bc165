package lib

import (
	"math/rand"
	"testing"
	"time"

	"github.com/deso-protocol/keccakcheck/keccak"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// brokenHasher flips one bit of a correct digest.
type brokenHasher struct {
	name string
}

func (bh brokenHasher) Name() string {
	return bh.name
}

func (bh brokenHasher) Sum256(input []byte) [keccak.DigestSize]byte {
	digest := keccak.Sum256(input)
	digest[9] ^= 0x04
	return digest
}

// recordingHook remembers the order of Enter and Exit calls.
type recordingHook struct {
	events []string
}

func (rh *recordingHook) Enter(eventName string) {
	rh.events = append(rh.events, "enter "+eventName)
}

func (rh *recordingHook) Exit(eventName string, elapsed time.Duration) {
	rh.events = append(rh.events, "exit "+eventName)
}

func newTestValidator(t *testing.T, hooks ...MeasurementHook) *Validator {
	oracles, err := NewOracles(DefaultOracles)
	require.NoError(t, err)
	validator, err := NewValidator(NewSpongeHasher(keccak.KeccakF1600{}), oracles, hooks...)
	require.NoError(t, err)
	return validator
}

func TestNewValidator(t *testing.T) {
	require := require.New(t)

	sponge := NewSpongeHasher(keccak.KeccakF1600{})

	_, err := NewValidator(nil, []Hasher{XCryptoHasher{}})
	require.Error(err)

	_, err = NewValidator(sponge, nil)
	require.Error(err)

	_, err = NewValidator(sponge, []Hasher{XCryptoHasher{}, XCryptoHasher{}})
	require.Error(err)

	_, err = NewValidator(sponge, []Hasher{brokenHasher{name: SpongeHasherName}})
	require.Error(err)

	validator, err := NewValidator(sponge, []Hasher{XCryptoHasher{}, GethHasher{}, FlowHasher{}})
	require.NoError(err)
	require.Equal(4, len(validator.Hashers()))
	require.Equal(SpongeHasherName, validator.Hashers()[0].Name())
}

func TestValidateAgreement(t *testing.T) {
	require := require.New(t)

	hook := &recordingHook{}
	validator := newTestValidator(t, hook)

	r := rand.New(rand.NewSource(13))
	for _, length := range []int{0, 1, 135, 136, 137, 272, 300} {
		input := make([]byte, length)
		r.Read(input)

		result, err := validator.Validate(input)
		require.NoError(err, "length %d", length)
		require.True(result.Matched())
		require.Empty(result.Mismatches())
		require.Equal(length, result.InputLength)
		require.Equal(3, len(result.Computations))
		require.Equal(SpongeHasherName, result.Reference().Name)
		require.Equal(keccak.Sum256(input), result.Reference().Digest)
		for _, oracle := range result.Oracles() {
			require.Equal(result.Reference().Digest, oracle.Digest)
		}
	}

	// Every computation is bracketed by its own enter/exit pair, in order.
	require.Equal([]string{
		"enter " + SpongeHasherName, "exit " + SpongeHasherName,
		"enter " + XCryptoHasherName, "exit " + XCryptoHasherName,
		"enter " + GethHasherName, "exit " + GethHasherName,
	}, hook.events[:6])
	require.Equal(6*7, len(hook.events))
}

func TestValidateDeterministic(t *testing.T) {
	require := require.New(t)

	validator := newTestValidator(t)
	input := []byte("same input, same digest")

	first, err := validator.Validate(input)
	require.NoError(err)
	second, err := validator.Validate(input)
	require.NoError(err)
	require.Equal(first.Reference().Digest, second.Reference().Digest)
	require.NotEqual(first.RunID, second.RunID)
}

func TestValidateMismatch(t *testing.T) {
	require := require.New(t)

	broken := brokenHasher{name: "broken"}
	validator, err := NewValidator(NewSpongeHasher(keccak.KeccakF1600{}), []Hasher{XCryptoHasher{}, broken})
	require.NoError(err)

	result, err := validator.Validate([]byte("abc"))
	require.Error(err)
	require.NotNil(result)
	require.False(result.Matched())
	require.True(IsDigestMismatch(err))
	require.True(IsDigestMismatch(errors.Wrapf(err, "wrapped")))
	require.False(IsDigestMismatch(errors.New("other")))

	var mismatchErr *DigestMismatchError
	require.True(errors.As(err, &mismatchErr))
	require.Equal(result.RunID, mismatchErr.RunID)
	require.Equal(3, mismatchErr.InputLength)
	require.Equal(1, len(mismatchErr.Mismatches))
	require.Equal("broken", mismatchErr.Mismatches[0].Name)
	require.Contains(err.Error(), "broken=")
	require.Contains(err.Error(), SpongeHasherName)
}

func TestValidateBrokenPermutation(t *testing.T) {
	require := require.New(t)

	// A sponge over the identity permutation must be caught by the oracles.
	identity := keccak.PermutationFunc(func(state *keccak.State) {})
	oracles, err := NewOracles(DefaultOracles)
	require.NoError(err)
	validator, err := NewValidator(NewSpongeHasher(identity), oracles)
	require.NoError(err)

	result, err := validator.Validate(nil)
	require.True(IsDigestMismatch(err))
	require.Equal(2, len(result.Mismatches()))
}
