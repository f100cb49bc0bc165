// Package keccak implements the legacy Keccak-256 hash (the variant used by Ethereum, padded with
// 0x01 rather than the SHA3 0x06 domain byte) as an explicit sponge over the Keccak-f[1600]
// permutation.
//
// The sponge construction
//
// The permutation acts on a 1600-bit state kept as 25 little-endian 64-bit lanes. The first
// Rate (136) bytes of the state are exposed: input is XORed into them one window at a time and
// the permutation is applied after every window. The remaining Capacity (64) bytes are never
// touched by input or output directly.
//
// Padding is applied in the same pass as absorption. In the final window the byte right after
// the last input byte receives 0x01 and the last byte of the window receives 0x80 (0x81 when they
// are the same byte). An input whose length is an exact multiple of the rate gets a window that
// holds nothing but padding.
//
// The digest is squeezed by reading the first 32 bytes of the state after the last permutation.
// Since 32 is smaller than the rate a single read is enough.
//
// Nothing in this package is constant time.
package keccak
