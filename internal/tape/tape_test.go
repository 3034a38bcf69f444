package tape

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/youpy/go-wav"
)

func TestEncodeDecode(t *testing.T) {
	data := []byte{0x00, 0xFF, 0x76, 0x80, 0x12, 0xA5}

	for _, rate := range []uint32{22050, DefaultSampleRate, 48000} {
		var buf bytes.Buffer
		assert.NoError(t, Encode(&buf, data, rate))

		decoded, err := Decode(bytes.NewReader(buf.Bytes()))
		assert.NoError(t, err)
		assert.Equal(t, data, decoded)
	}
}

// record16 writes a 16 bit recording with signed levels.
func record16(t *testing.T, data []byte) []byte {
	t.Helper()

	const rate = 44100
	pulse := samplesFor(rate, pulseMicros)
	gap := samplesFor(rate, bitGapMicro)

	var samples []wav.Sample
	for _, b := range data {
		for bit := 7; bit >= 0; bit-- {
			count := zeroPulses
			if b&(1<<bit) != 0 {
				count = onePulses
			}
			for range count {
				samples = appendLevel(samples, 20000, pulse)
				samples = appendLevel(samples, -20000, pulse)
			}
			samples = appendLevel(samples, 0, gap)
		}
	}

	var buf bytes.Buffer
	writer := wav.NewWriter(&buf, uint32(len(samples)), 1, rate, 16)
	assert.NoError(t, writer.WriteSamples(samples))
	return buf.Bytes()
}

func TestDecode16Bit(t *testing.T) {
	recording := record16(t, []byte{0x3C, 0xC3})

	decoded, err := Decode(bytes.NewReader(recording))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x3C, 0xC3}, decoded)
}

func TestDecodeNoSignal(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Encode(&buf, nil, DefaultSampleRate))

	_, err := Decode(bytes.NewReader(buf.Bytes()))
	assert.True(t, errors.Is(err, ErrNoSignal))
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	writer := wav.NewWriter(&buf, 4, 1, DefaultSampleRate, 24)
	assert.NoError(t, writer.WriteSamples(make([]wav.Sample, 4)))

	_, err := Decode(bytes.NewReader(buf.Bytes()))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestAccumulatorIgnoresNoise(t *testing.T) {
	var acc accumulator
	for _, pulses := range []int{1, 9, 0, 4, 9, 1, 4, 4, 9, 9, 4} {
		acc.addPulses(pulses)
	}
	// the single pulses are dropped, leaving 1 0 1 0 0 1 1 0
	assert.Equal(t, []byte{0xA6}, acc.data)
}

func TestStripName(t *testing.T) {
	name, image := StripName([]byte{0x38, 0x2A, 0x80 | 0x31, 0x00, 0x01})
	assert.Equal(t, []byte{0x38, 0x2A, 0xB1}, name)
	assert.Equal(t, []byte{0x00, 0x01}, image)

	name, image = StripName([]byte{0x01, 0x02})
	assert.True(t, name == nil)
	assert.Equal(t, []byte{0x01, 0x02}, image)
}
