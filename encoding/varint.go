package encoding

// This file implements "varint" encoding of unsigned 64-bit integers and the length-prefixed
// byte strings built on top of it. Integers are serialized 7 bits at a time, least significant
// group first; the msb of each output byte is set when another byte follows. At most 10 bytes
// are needed for a 64-bit value.

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// MaxVarintLen64 is the maximum length of a varint-encoded 64-bit integer.
const MaxVarintLen64 = 10

var overflow = errors.New("binary: varint overflows a 64-bit integer")

func UintToBuf(xx uint64) []byte {
	scratchBytes := make([]byte, MaxVarintLen64)
	nn := PutUvarint(scratchBytes, xx)
	return scratchBytes[:nn]
}

// PutUvarint encodes a uint64 into buf and returns the number of bytes written.
// If the buffer is too small, PutUvarint will panic.
func PutUvarint(buf []byte, x uint64) int {
	i := 0
	for x >= 0x80 {
		buf[i] = byte(x) | 0x80
		x >>= 7
		i++
	}
	buf[i] = byte(x)
	return i + 1
}

// ReadUvarint reads an encoded unsigned integer from r and returns it as a uint64.
func ReadUvarint(r io.Reader) (uint64, error) {
	var x uint64
	var s uint
	buf := []byte{0x00}
	for i := 0; ; i++ {
		if i == MaxVarintLen64 {
			return x, overflow
		}
		nn, err := io.ReadFull(r, buf)
		if err != nil || nn != 1 {
			return x, err
		}
		b := buf[0]
		if b < 0x80 {
			if i > 9 || i == 9 && b > 1 {
				return x, overflow
			}
			return x | uint64(b)<<s, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
}

// EncodeByteArray prefixes bytes with their varint length.
func EncodeByteArray(data []byte) []byte {
	var out []byte
	out = append(out, UintToBuf(uint64(len(data)))...)
	out = append(out, data...)
	return out
}

// DecodeByteArray reads a varint length followed by that many bytes. maxLength bounds the
// allocation; a length above it is an error rather than an attempt to allocate.
func DecodeByteArray(r io.Reader, maxLength uint64) ([]byte, error) {
	length, err := ReadUvarint(r)
	if err != nil {
		return nil, errors.Wrapf(err, "DecodeByteArray: Problem reading length")
	}
	if length > maxLength {
		return nil, fmt.Errorf("DecodeByteArray: Length %d exceeds maximum %d", length, maxLength)
	}
	if length == 0 {
		return []byte{}, nil
	}
	data, err := SafeMakeSliceWithLength[byte](length)
	if err != nil {
		return nil, errors.Wrapf(err, "DecodeByteArray: Problem creating slice")
	}
	if _, err = io.ReadFull(r, data); err != nil {
		return nil, errors.Wrapf(err, "DecodeByteArray: Problem reading %d bytes", length)
	}
	return data, nil
}

// DecodeByteArrayFromBytes is DecodeByteArray over an in-memory buffer.
func DecodeByteArrayFromBytes(rr *bytes.Reader) ([]byte, error) {
	return DecodeByteArray(rr, uint64(rr.Len()))
}

// SafeMakeSliceWithLength catches a panic in the make function and returns an
// error if the make function panics. The named return value is what lets the
// deferred recover overwrite the error.
func SafeMakeSliceWithLength[T any](length uint64) (_ []T, outputError error) {
	defer SafeMakeRecover(&outputError)
	return make([]T, length), outputError
}

// SafeMakeRecover recovers from a panic and sets the value of error parameter.
// It must be deferred.
func SafeMakeRecover(outputError *error) {
	if err := recover(); err != nil {
		*outputError = errors.New(fmt.Sprintf("Error in make: %v", err))
	}
}
