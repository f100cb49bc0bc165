package lib

import (
	"fmt"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/deso-protocol/keccakcheck/keccak"
	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Computation is one hasher's digest of the validated input.
type Computation struct {
	Name    string
	Digest  [keccak.DigestSize]byte
	Elapsed time.Duration
}

// ValidationResult holds every digest computed for one input. Computations[0] is always the
// reference (the sponge); the rest are oracles in configuration order.
type ValidationResult struct {
	RunID        uuid.UUID
	InputLength  int
	Computations []Computation
}

func (vr *ValidationResult) Reference() Computation {
	return vr.Computations[0]
}

func (vr *ValidationResult) Oracles() []Computation {
	return vr.Computations[1:]
}

// Mismatches returns the oracles whose digest differs from the reference.
func (vr *ValidationResult) Mismatches() []Computation {
	var mismatches []Computation
	reference := vr.Reference()
	for _, oracle := range vr.Oracles() {
		if oracle.Digest != reference.Digest {
			mismatches = append(mismatches, oracle)
		}
	}
	return mismatches
}

func (vr *ValidationResult) Matched() bool {
	return len(vr.Mismatches()) == 0
}

// DigestMismatchError reports that at least one oracle disagreed with the sponge. The oracles
// are trusted, so this always points at a defect in the sponge.
type DigestMismatchError struct {
	RunID       uuid.UUID
	InputLength int
	Reference   Computation
	Mismatches  []Computation
}

func (e *DigestMismatchError) Error() string {
	var parts []string
	for _, mismatch := range e.Mismatches {
		parts = append(parts, fmt.Sprintf("%s=%x", mismatch.Name, mismatch.Digest))
	}
	return fmt.Sprintf("digest mismatch for %d-byte input (run %v): %s=%x, %s",
		e.InputLength, e.RunID, e.Reference.Name, e.Reference.Digest, strings.Join(parts, ", "))
}

// Validator computes the digest of an input with a reference hasher and a set of oracles and
// checks that they agree byte for byte.
type Validator struct {
	reference Hasher
	oracles   []Hasher
	hooks     []MeasurementHook
}

func NewValidator(reference Hasher, oracles []Hasher, hooks ...MeasurementHook) (*Validator, error) {
	if reference == nil {
		return nil, errors.New("NewValidator: A reference hasher is required")
	}
	if len(oracles) == 0 {
		return nil, errors.New("NewValidator: At least one oracle is required")
	}

	names := map[string]bool{reference.Name(): true}
	for _, oracle := range oracles {
		if names[oracle.Name()] {
			return nil, fmt.Errorf("NewValidator: Hasher %q configured more than once", oracle.Name())
		}
		names[oracle.Name()] = true
	}

	return &Validator{
		reference: reference,
		oracles:   oracles,
		hooks:     hooks,
	}, nil
}

// Hashers returns the reference followed by the oracles.
func (v *Validator) Hashers() []Hasher {
	return append([]Hasher{v.reference}, v.oracles...)
}

// Validate hashes input with every hasher, each inside its own measurement, and compares the
// digests. It always returns the result; the error is a *DigestMismatchError when any oracle
// disagrees with the reference.
func (v *Validator) Validate(input []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		RunID:       uuid.New(),
		InputLength: len(input),
	}

	for _, hasher := range v.Hashers() {
		var digest [keccak.DigestSize]byte
		elapsed := Measure(v.hooks, hasher.Name(), func() {
			digest = hasher.Sum256(input)
		})
		result.Computations = append(result.Computations, Computation{
			Name:    hasher.Name(),
			Digest:  digest,
			Elapsed: elapsed,
		})
		glog.V(1).Infof("Validate: run %v: %s hash: %x (%v)", result.RunID, hasher.Name(), digest, elapsed)
	}

	mismatches := result.Mismatches()
	if len(mismatches) == 0 {
		return result, nil
	}

	if glog.V(2) {
		glog.Infof("Validate: run %v: mismatched result: %s", result.RunID, spew.Sdump(result))
	}
	return result, &DigestMismatchError{
		RunID:       result.RunID,
		InputLength: result.InputLength,
		Reference:   result.Reference(),
		Mismatches:  mismatches,
	}
}

// IsDigestMismatch reports whether err is, or wraps, a *DigestMismatchError.
func IsDigestMismatch(err error) bool {
	var mismatchErr *DigestMismatchError
	return errors.As(err, &mismatchErr)
}
