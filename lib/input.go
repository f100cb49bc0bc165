package lib

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/deso-protocol/keccakcheck/encoding"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// InputFraming is how the single input is laid out on the input stream.
type InputFraming string

const (
	// InputFramingRaw takes the whole stream as the input.
	InputFramingRaw InputFraming = "raw"
	// InputFramingUvarint is a varint length followed by that many bytes.
	InputFramingUvarint InputFraming = "uvarint"
	// InputFramingU64LE is an 8-byte little-endian length followed by that many bytes, the way a
	// zkVM host writes a Vec<u8> to its guest.
	InputFramingU64LE InputFraming = "u64le"
	// InputFramingHex is hex text, with or without a 0x prefix. Surrounding whitespace is ignored.
	InputFramingHex InputFraming = "hex"
)

func ParseInputFraming(framing string) (InputFraming, error) {
	switch InputFraming(framing) {
	case InputFramingRaw, InputFramingUvarint, InputFramingU64LE, InputFramingHex:
		return InputFraming(framing), nil
	}
	return "", fmt.Errorf("ParseInputFraming: Unknown framing %q", framing)
}

// ReadInput reads exactly one framed input from r. Length-prefixed framings read only the
// declared number of bytes and leave anything after them unread.
func ReadInput(r io.Reader, framing InputFraming) ([]byte, error) {
	switch framing {
	case InputFramingRaw:
		input, err := io.ReadAll(io.LimitReader(r, MaxInputLength+1))
		if err != nil {
			return nil, errors.Wrapf(err, "ReadInput: Problem reading raw input")
		}
		if len(input) > MaxInputLength {
			return nil, fmt.Errorf("ReadInput: Raw input exceeds %d bytes", MaxInputLength)
		}
		return input, nil

	case InputFramingUvarint:
		input, err := encoding.DecodeByteArray(r, MaxInputLength)
		if err != nil {
			return nil, errors.Wrapf(err, "ReadInput: Problem reading uvarint-framed input")
		}
		return input, nil

	case InputFramingU64LE:
		var lengthBytes [8]byte
		if _, err := io.ReadFull(r, lengthBytes[:]); err != nil {
			return nil, errors.Wrapf(err, "ReadInput: Problem reading length prefix")
		}
		length := binary.LittleEndian.Uint64(lengthBytes[:])
		if length > MaxInputLength {
			return nil, fmt.Errorf("ReadInput: Declared length %d exceeds %d bytes", length, MaxInputLength)
		}
		input, err := encoding.SafeMakeSliceWithLength[byte](length)
		if err != nil {
			return nil, errors.Wrapf(err, "ReadInput: Problem allocating input")
		}
		if _, err = io.ReadFull(r, input); err != nil {
			return nil, errors.Wrapf(err, "ReadInput: Problem reading %d input bytes", length)
		}
		return input, nil

	case InputFramingHex:
		return readHexInput(r, MaxHexInputLength)
	}
	return nil, fmt.Errorf("ReadInput: Unknown framing %q", framing)
}

func readHexInput(r io.Reader, maxLength int) ([]byte, error) {
	text, err := io.ReadAll(io.LimitReader(r, int64(maxLength)+1))
	if err != nil {
		return nil, errors.Wrapf(err, "ReadInput: Problem reading hex input")
	}
	if len(text) > maxLength {
		return nil, fmt.Errorf("ReadInput: Hex input exceeds %d bytes", maxLength)
	}
	return DecodeHexInput(string(text))
}

// DecodeHexInput decodes hex text with an optional 0x prefix. The empty string is the empty input.
func DecodeHexInput(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
		text = "0x" + text
	}
	input, err := hexutil.Decode(text)
	if err != nil {
		return nil, errors.Wrapf(err, "DecodeHexInput: Problem decoding hex input")
	}
	if len(input) == 0 {
		return []byte{}, nil
	}
	return input, nil
}

// FrameInput is the inverse of ReadInput: it lays input out in the given framing.
func FrameInput(input []byte, framing InputFraming) ([]byte, error) {
	switch framing {
	case InputFramingRaw:
		return append([]byte(nil), input...), nil
	case InputFramingUvarint:
		return encoding.EncodeByteArray(input), nil
	case InputFramingU64LE:
		framed := make([]byte, 8, 8+len(input))
		binary.LittleEndian.PutUint64(framed, uint64(len(input)))
		return append(framed, input...), nil
	case InputFramingHex:
		return []byte(hexutil.Encode(input)), nil
	}
	return nil, fmt.Errorf("FrameInput: Unknown framing %q", framing)
}
