package lib

import (
	"bytes"
	"testing"

	"github.com/deso-protocol/keccakcheck/keccak"
	"github.com/stretchr/testify/require"
)

func TestSweepInputs(t *testing.T) {
	require := require.New(t)

	inputs := SweepInputs(50, 300, 7)
	require.Equal(len(SweepBoundaryLengths)+50, len(inputs))

	for ii, length := range SweepBoundaryLengths {
		require.Equal(length, len(inputs[ii].Input))
	}
	require.Equal("boundary-136", inputs[3].Label)
	require.Equal("seed-7-sample-0", inputs[len(SweepBoundaryLengths)].Label)
	for _, sweepInput := range inputs[len(SweepBoundaryLengths):] {
		require.LessOrEqual(len(sweepInput.Input), 300)
	}

	// Same seed, same inputs.
	again := SweepInputs(50, 300, 7)
	for ii := range inputs {
		require.Equal(inputs[ii].Label, again[ii].Label)
		require.True(bytes.Equal(inputs[ii].Input, again[ii].Input))
	}

	other := SweepInputs(50, 300, 8)
	require.False(bytes.Equal(inputs[len(inputs)-1].Input, other[len(other)-1].Input))

	// No samples leaves only the boundary lengths.
	require.Equal(len(SweepBoundaryLengths), len(SweepInputs(0, 300, 7)))
}

func TestRunSweep(t *testing.T) {
	require := require.New(t)

	validator := newTestValidator(t)
	inputs := SweepInputs(30, 400, 3)

	seen := 0
	require.NoError(RunSweep(validator, inputs, func(sweepInput SweepInput, result *ValidationResult) {
		seen++
		require.True(result.Matched())
		require.Equal(len(sweepInput.Input), result.InputLength)
	}))
	require.Equal(len(inputs), seen)

	require.NoError(RunSweep(validator, inputs, nil))
}

func TestRunSweepStopsAtFirstMismatch(t *testing.T) {
	require := require.New(t)

	validator, err := NewValidator(NewSpongeHasher(keccak.KeccakF1600{}), []Hasher{brokenHasher{name: "broken"}})
	require.NoError(err)

	seen := 0
	err = RunSweep(validator, SweepInputs(10, 100, 1), func(sweepInput SweepInput, result *ValidationResult) {
		seen++
		require.False(result.Matched())
	})
	require.True(IsDigestMismatch(err))
	require.Contains(err.Error(), "boundary-0")
	require.Equal(1, seen)
}
