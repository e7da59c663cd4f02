package wavio

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-audio/audio"
)

// Audio format tags stored in the fmt chunk. Anything else is a compressed
// codec and out of scope.
const (
	FormatPCM       = 1
	FormatIEEEFloat = 3
)

var (
	// ErrUnsupportedFormat is returned for format tags other than PCM and
	// IEEE float.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrInvalidNumChans is returned when the channel count is zero or does
	// not fit the fmt chunk field.
	ErrInvalidNumChans = errors.New("invalid number of channels")
	// ErrUnsupportedBitDepth is returned for bit depths outside 8/16/24/32.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	// ErrUnsupportedSampleRate is returned for rates outside the supported set.
	ErrUnsupportedSampleRate = errors.New("unsupported sample rate")
	// ErrFloatBitDepth is returned when IEEE float is paired with a bit depth
	// other than 32.
	ErrFloatBitDepth = errors.New("IEEE float requires a bit depth of 32")
)

var supportedSampleRates = [...]int{
	8000, 11025, 16000, 22050, 32000, 44100,
	48000, 96000, 176400, 192000, 352800, 384000,
}

// Config describes the sample layout of a wav file.
//
// SampleRate, NumChans, BitDepth and AudioFormat are caller supplied on the
// write side and parsed from the fmt chunk on the read side. BlockAlign and
// DataChunkSize are derived while writing and taken verbatim from the file
// while reading.
type Config struct {
	SampleRate  int
	NumChans    int
	BitDepth    int
	AudioFormat int

	BlockAlign    int
	DataChunkSize uint32
}

// Validate checks the configuration against the supported layouts. Each
// failing field maps to its own error value, checked in fmt chunk field
// order.
func (c Config) Validate() error {
	if c.AudioFormat != FormatPCM && c.AudioFormat != FormatIEEEFloat {
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, c.AudioFormat)
	}

	if c.NumChans < 1 || c.NumChans > 0xFFFF {
		return fmt.Errorf("%w: %d", ErrInvalidNumChans, c.NumChans)
	}

	switch c.BitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, c.BitDepth)
	}

	if !validSampleRate(c.SampleRate) {
		return fmt.Errorf("%w: %d", ErrUnsupportedSampleRate, c.SampleRate)
	}

	if c.AudioFormat == FormatIEEEFloat && c.BitDepth != 32 {
		return fmt.Errorf("%w: got %d", ErrFloatBitDepth, c.BitDepth)
	}

	return nil
}

// NumSamples returns the number of complete frames in the data chunk, zero
// when the block alignment is unknown.
func (c Config) NumSamples() uint32 {
	if c.BlockAlign == 0 {
		return 0
	}

	return c.DataChunkSize / uint32(c.BlockAlign)
}

// Duration returns the playback time of the data chunk.
func (c Config) Duration() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}

	return time.Duration(float64(c.NumSamples()) / float64(c.SampleRate) * float64(time.Second))
}

// Format returns the layout as a go-audio format.
func (c Config) Format() *audio.Format {
	return &audio.Format{
		NumChannels: c.NumChans,
		SampleRate:  c.SampleRate,
	}
}

// String implements the Stringer interface.
func (c Config) String() string {
	name := "PCM"
	if c.AudioFormat == FormatIEEEFloat {
		name = "IEEE float"
	}

	return fmt.Sprintf("%d channels @ %d / %d bits %s - %d frames, duration: %s",
		c.NumChans, c.SampleRate, c.BitDepth, name, c.NumSamples(), c.Duration())
}

func validSampleRate(rate int) bool {
	for _, supported := range supportedSampleRates {
		if rate == supported {
			return true
		}
	}

	return false
}

func bytesPerSample(bitDepth int) int {
	return (bitDepth-1)/8 + 1
}

// sampleStorage tags the on-disk sample layout; every codec dispatch
// switches over this closed set.
type sampleStorage int

const (
	storageFloat32 sampleStorage = iota
	storagePCM8
	storagePCM16
	storagePCM24
	storagePCM32
)

func (c Config) storage() sampleStorage {
	if c.AudioFormat == FormatIEEEFloat {
		return storageFloat32
	}

	switch c.BitDepth {
	case 8:
		return storagePCM8
	case 16:
		return storagePCM16
	case 24:
		return storagePCM24
	default:
		return storagePCM32
	}
}
