package lib

import (
	"fmt"
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// SweepInput is one generated input of a sweep.
type SweepInput struct {
	Label string
	Input []byte
}

// SweepInputs returns pseudo-random inputs at every SweepBoundaryLengths length followed by
// samples inputs of random length in [0, maxLength]. The same seed always yields the same inputs.
func SweepInputs(samples int, maxLength int, seed int64) []SweepInput {
	r := rand.New(rand.NewSource(seed))

	var inputs []SweepInput
	for _, length := range SweepBoundaryLengths {
		input := make([]byte, length)
		r.Read(input)
		inputs = append(inputs, SweepInput{
			Label: fmt.Sprintf("boundary-%d", length),
			Input: input,
		})
	}
	for ii := 0; ii < samples; ii++ {
		input := make([]byte, r.Intn(maxLength+1))
		r.Read(input)
		inputs = append(inputs, SweepInput{
			Label: fmt.Sprintf("seed-%d-sample-%d", seed, ii),
			Input: input,
		})
	}
	return inputs
}

// RunSweep validates every input in order and stops at the first mismatch. onResult, when set,
// sees every result including the mismatched one.
func RunSweep(validator *Validator, inputs []SweepInput, onResult func(SweepInput, *ValidationResult)) error {
	for ii, sweepInput := range inputs {
		result, err := validator.Validate(sweepInput.Input)
		if onResult != nil {
			onResult(sweepInput, result)
		}
		if err != nil {
			return errors.Wrapf(err, "RunSweep: Input %d (%s)", ii, sweepInput.Label)
		}
	}
	glog.V(1).Infof("RunSweep: Validated %d inputs", len(inputs))
	return nil
}

// ReplayCorpus re-validates every stored input and also checks the reference digest against
// the digest recorded when the input was stored. It returns the number of entries replayed.
func ReplayCorpus(corpus *Corpus, validator *Validator) (int, error) {
	replayed := 0
	err := corpus.ForEach(func(entry *CorpusEntry) error {
		result, err := validator.Validate(entry.Input)
		if err != nil {
			return errors.Wrapf(err, "ReplayCorpus: Entry %s", entry.Label)
		}
		if result.Reference().Digest != entry.Digest {
			return fmt.Errorf("ReplayCorpus: Entry %s: digest %x does not match recorded digest %x",
				entry.Label, result.Reference().Digest, entry.Digest)
		}
		replayed++
		return nil
	})
	return replayed, err
}
