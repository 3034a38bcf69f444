// Package number decodes the inline number literals of tokenized programs.
//
// A literal occupies Size bytes: a tag byte followed by a 5 byte payload.
// The integral form (tag TagInteger) stores a signed 16 bit magnitude, the
// floating form (tag TagFloat) stores a biased exponent and a 32 bit mantissa
// with an implicit leading bit.
package number

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Literal layout.
const (
	Size        = 6
	PayloadSize = 5

	TagInteger byte = 0x0E
	TagFloat   byte = 0x7E
)

const (
	exponentBias  = 128
	mantissaBits  = 32
	signBit       = 1 << 31
	signPositive  = 0x00
	signNegative  = 0xFF
	integerOffset = 65536
)

var (
	// ErrInvalidNumberFormat is returned for an unknown tag byte or a malformed payload.
	ErrInvalidNumberFormat = errors.New("invalid number format")
	// ErrTruncated is returned when fewer than Size bytes are available.
	ErrTruncated = errors.New("truncated number literal")
)

// Read decodes the literal at the start of data and returns its text.
// Exactly Size bytes are consumed.
func Read(data []byte) (string, error) {
	value, err := Parse(data)
	if err != nil {
		return "", err
	}
	return Format(value), nil
}

// Parse decodes the literal at the start of data.
func Parse(data []byte) (float64, error) {
	if len(data) < Size {
		return 0, fmt.Errorf("%w: %d of %d bytes", ErrTruncated, len(data), Size)
	}

	tag := data[0]
	payload := data[1:Size]

	switch tag {
	case TagInteger:
		return decodeInteger(payload)
	case TagFloat:
		return DecodeFloat(payload), nil
	default:
		return 0, fmt.Errorf("%w: tag 0x%02X", ErrInvalidNumberFormat, tag)
	}
}

// decodeInteger decodes the payload 00, sign, low, high, 00.
func decodeInteger(payload []byte) (float64, error) {
	value := int(binary.LittleEndian.Uint16(payload[2:4]))

	switch payload[1] {
	case signPositive:
	case signNegative:
		value -= integerOffset
	default:
		return 0, fmt.Errorf("%w: sign byte 0x%02X", ErrInvalidNumberFormat, payload[1])
	}
	return float64(value), nil
}

// DecodeFloat decodes the 5 byte floating point form: a biased exponent
// followed by a big-endian mantissa whose top bit holds the sign.
// An exponent byte of 0 represents zero.
func DecodeFloat(payload []byte) float64 {
	if payload[0] == 0 {
		return 0
	}

	exponent := int(payload[0]) - exponentBias
	mantissa := binary.BigEndian.Uint32(payload[1:5])
	negative := mantissa&signBit != 0
	mantissa |= signBit // restore the implicit leading bit

	value := math.Ldexp(float64(mantissa), exponent-mantissaBits)
	if negative {
		value = -value
	}
	return value
}

// EncodeInteger returns the integral literal of a value in [-65535, 65535].
func EncodeInteger(value int) ([]byte, error) {
	if value < -65535 || value > 65535 {
		return nil, fmt.Errorf("%w: value %d out of range", ErrInvalidNumberFormat, value)
	}

	sign := byte(signPositive)
	if value < 0 {
		sign = signNegative
		value += integerOffset
	}
	data := []byte{TagInteger, 0x00, sign, 0, 0, 0x00}
	binary.LittleEndian.PutUint16(data[3:5], uint16(value))
	return data, nil
}

// Format renders integral values as integers and other values in the
// shortest form that reproduces the value.
func Format(value float64) string {
	if value == math.Trunc(value) && !math.IsInf(value, 0) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	return strconv.FormatFloat(value, 'g', -1, 64)
}
