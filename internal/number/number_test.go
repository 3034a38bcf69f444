package number

import (
	"errors"
	"strconv"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestReadInteger(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"zero", []byte{TagInteger, 0x00, 0x00, 0x00, 0x00, 0x00}, "0"},
		{"small positive", []byte{TagInteger, 0x00, 0x00, 0x0C, 0x00, 0x00}, "12"},
		{"little endian", []byte{TagInteger, 0x00, 0x00, 0x34, 0x12, 0x00}, "4660"},
		{"maximum", []byte{TagInteger, 0x00, 0x00, 0xFF, 0xFF, 0x00}, "65535"},
		{"minus one", []byte{TagInteger, 0x00, 0xFF, 0xFF, 0xFF, 0x00}, "-1"},
		{"minimum", []byte{TagInteger, 0x00, 0xFF, 0x01, 0x00, 0x00}, "-65535"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(tt.data)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntegerRange(t *testing.T) {
	for value := -65535; value <= 65535; value++ {
		data, err := EncodeInteger(value)
		assert.NoError(t, err)

		got, err := Read(data)
		assert.NoError(t, err)
		if got != strconv.Itoa(value) {
			t.Fatalf("value %d decoded as %s", value, got)
		}
	}
}

func TestEncodeIntegerOutOfRange(t *testing.T) {
	_, err := EncodeInteger(65536)
	assert.True(t, errors.Is(err, ErrInvalidNumberFormat))
	_, err = EncodeInteger(-65536)
	assert.True(t, errors.Is(err, ErrInvalidNumberFormat))
}

func TestReadFloat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"zero exponent", []byte{TagFloat, 0x00, 0x12, 0x34, 0x56, 0x78}, "0"},
		{"one", []byte{TagFloat, 0x81, 0x00, 0x00, 0x00, 0x00}, "1"},
		{"minus one", []byte{TagFloat, 0x81, 0x80, 0x00, 0x00, 0x00}, "-1"},
		{"half", []byte{TagFloat, 0x80, 0x00, 0x00, 0x00, 0x00}, "0.5"},
		{"ten", []byte{TagFloat, 0x84, 0x20, 0x00, 0x00, 0x00}, "10"},
		{"one and a half", []byte{TagFloat, 0x81, 0x40, 0x00, 0x00, 0x00}, "1.5"},
		{"minus quarter", []byte{TagFloat, 0x7F, 0x80, 0x00, 0x00, 0x00}, "-0.25"},
		{"large integral", []byte{TagFloat, 0x91, 0x00, 0x00, 0x00, 0x00}, "65536"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(tt.data)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"unknown tag", []byte{0x1F, 0, 0, 0, 0, 0}, ErrInvalidNumberFormat},
		{"invalid sign byte", []byte{TagInteger, 0x00, 0x01, 0x05, 0x00, 0x00}, ErrInvalidNumberFormat},
		{"too short", []byte{TagFloat, 0x81, 0x00}, ErrTruncated},
		{"empty", nil, ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(tt.data)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestDecodeFloat(t *testing.T) {
	assert.Equal(t, 100.0, DecodeFloat([]byte{0x87, 0x48, 0x00, 0x00, 0x00}))
	assert.Equal(t, 0.0, DecodeFloat([]byte{0x00, 0x00, 0x00, 0x00, 0x00}))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "3", Format(3))
	assert.Equal(t, "-7", Format(-7))
	assert.Equal(t, "0.1", Format(0.1))
	assert.Equal(t, "1e-07", Format(1e-7))
	assert.Equal(t, "1000000", Format(1e6))
}
