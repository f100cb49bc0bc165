package keccak

import (
	"bytes"
	"encoding/hex"

	"github.com/pkg/errors"
)

// KnownVector is a published Keccak-256 input/digest pair.
type KnownVector struct {
	Name   string
	Input  []byte
	Digest string
}

// KnownVectors are Keccak-256 digests published alongside Ethereum tooling and the Keccak
// reference material.
var KnownVectors = []KnownVector{
	{
		Name:   "empty",
		Input:  []byte{},
		Digest: "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
	},
	{
		Name:   "abc",
		Input:  []byte("abc"),
		Digest: "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45",
	},
	{
		Name:   "quick brown fox",
		Input:  []byte("The quick brown fox jumps over the lazy dog"),
		Digest: "4d741b6f1eb29cb2a9b9911c82f56fa8d73b04959d3d9d222895df6c0b28aa15",
	},
	{
		Name:   "quick brown fox with period",
		Input:  []byte("The quick brown fox jumps over the lazy dog."),
		Digest: "578951e24efd62a3d63a86f7cd19aaa53c898fe287d2552133220370240b572d",
	},
}

// VerifyKnownVectors hashes every KnownVector with the sponge and returns an error naming the
// first vector whose digest does not match.
func (s *Sponge) VerifyKnownVectors() error {
	for _, vec := range KnownVectors {
		expected, err := hex.DecodeString(vec.Digest)
		if err != nil {
			return errors.Wrapf(err, "VerifyKnownVectors: Problem decoding digest for vector %q", vec.Name)
		}
		digest := s.Sum256(vec.Input)
		if !bytes.Equal(digest[:], expected) {
			return errors.Errorf("VerifyKnownVectors: Mismatched digest for vector %q: got %x, expected %s",
				vec.Name, digest, vec.Digest)
		}
	}
	return nil
}
