// Package tape converts cassette recordings of saved programs.
//
// Every bit is recorded as a burst of pulses followed by silence: 4 pulses
// for a 0 and 9 pulses for a 1. Bytes are sent most significant bit first.
package tape

import (
	"errors"
	"fmt"
	"io"

	"github.com/youpy/go-wav"
)

// DefaultSampleRate is used for generated recordings.
const DefaultSampleRate = 44100

const (
	pulseMicros = 150  // duration of the high and the low half of a pulse
	bitGapMicro = 1300 // silence after the pulses of a bit
	gapMicros   = 600  // silence that ends the pulses of a bit
	leadMicros  = 10000

	zeroPulses    = 4
	onePulses     = 9
	minOnePulses  = 7
	minZeroPulses = 2

	readChunkSize = 4096

	sampleHigh8   = 255
	sampleLow8    = 0
	sampleSilent8 = 128
)

var (
	// ErrNoSignal is returned when a recording contains no complete byte.
	ErrNoSignal = errors.New("no tape signal found")
	// ErrUnsupportedFormat is returned for recordings that are not 8 or 16 bit PCM.
	ErrUnsupportedFormat = errors.New("unsupported recording format")
)

// Reader is the input of a recording, matching the requirements of the WAV reader.
type Reader interface {
	io.Reader
	io.ReaderAt
}

// Decode returns the bytes stored in a WAV recording. Only the first
// channel is evaluated.
func Decode(r Reader) ([]byte, error) {
	reader := wav.NewReader(r)
	format, err := reader.Format()
	if err != nil {
		return nil, fmt.Errorf("reading wav format: %w", err)
	}
	if format.AudioFormat != wav.AudioFormatPCM {
		return nil, fmt.Errorf("%w: audio format %d", ErrUnsupportedFormat, format.AudioFormat)
	}
	if format.BitsPerSample != 8 && format.BitsPerSample != 16 {
		return nil, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedFormat, format.BitsPerSample)
	}

	threshold := highThreshold(format.BitsPerSample)
	gap := samplesFor(format.SampleRate, gapMicros)

	var (
		acc     accumulator
		pulses  int
		silence int
		wasHigh bool
	)

	for {
		samples, err := reader.ReadSamples(readChunkSize)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		for _, sample := range samples {
			high := reader.IntValue(sample, 0) > threshold
			switch {
			case high:
				if !wasHigh {
					pulses++
				}
				silence = 0

			default:
				silence++
				if silence > gap && pulses > 0 {
					acc.addPulses(pulses)
					pulses = 0
				}
			}
			wasHigh = high
		}
	}
	if pulses > 0 {
		acc.addPulses(pulses)
	}

	if len(acc.data) == 0 {
		return nil, ErrNoSignal
	}
	return acc.data, nil
}

// Encode writes a mono 8 bit recording of the data.
func Encode(w io.Writer, data []byte, sampleRate uint32) error {
	pulse := samplesFor(sampleRate, pulseMicros)
	lead := samplesFor(sampleRate, leadMicros)
	bitGap := samplesFor(sampleRate, bitGapMicro)

	var samples []wav.Sample
	samples = appendLevel(samples, sampleSilent8, lead)
	for _, b := range data {
		for bit := 7; bit >= 0; bit-- {
			count := zeroPulses
			if b&(1<<bit) != 0 {
				count = onePulses
			}
			for range count {
				samples = appendLevel(samples, sampleHigh8, pulse)
				samples = appendLevel(samples, sampleLow8, pulse)
			}
			samples = appendLevel(samples, sampleSilent8, bitGap)
		}
	}
	samples = appendLevel(samples, sampleSilent8, lead)

	writer := wav.NewWriter(w, uint32(len(samples)), 1, sampleRate, 8)
	if err := writer.WriteSamples(samples); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	return nil
}

// StripName splits a recording into the file name and the program image.
// The name ends with the first byte that has bit 7 set. If no such byte
// exists the data is returned unchanged.
func StripName(data []byte) (name, image []byte) {
	for i, b := range data {
		if b&0x80 != 0 {
			return data[:i+1], data[i+1:]
		}
	}
	return nil, data
}

// accumulator collects bits into bytes, most significant bit first.
type accumulator struct {
	data    []byte
	current byte
	bits    int
}

// addPulses classifies a burst of pulses, bursts with too few pulses are noise.
func (a *accumulator) addPulses(pulses int) {
	switch {
	case pulses >= minOnePulses:
		a.addBit(1)
	case pulses >= minZeroPulses:
		a.addBit(0)
	}
}

func (a *accumulator) addBit(bit byte) {
	a.current = a.current<<1 | bit
	a.bits++
	if a.bits == 8 {
		a.data = append(a.data, a.current)
		a.current = 0
		a.bits = 0
	}
}

// highThreshold returns the level above which a sample counts as high.
// 8 bit samples are unsigned, 16 bit samples are signed.
func highThreshold(bitsPerSample uint16) int {
	th := 1 << (bitsPerSample - 1)
	if bitsPerSample == 8 {
		return th * 7 / 5
	}
	return th*7/5 - th
}

func samplesFor(sampleRate uint32, micros int) int {
	return max(1, int(uint64(sampleRate)*uint64(micros)/1_000_000))
}

func appendLevel(samples []wav.Sample, level, count int) []wav.Sample {
	for range count {
		samples = append(samples, wav.Sample{Values: [2]int{level, level}})
	}
	return samples
}
