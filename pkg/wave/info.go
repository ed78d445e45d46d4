package wave

import "fmt"

// CompressionNone is the compression tag for uncompressed PCM streams.
// It is the only compression this package supports.
const CompressionNone = "NONE"

// Info describes an uncompressed PCM audio stream.
//
// An Info is a plain value: readers hand out copies of it and writers take
// it as an immutable template. The zero value is not valid; use the fields
// of an opened Reader or fill in all of them.
type Info struct {
	// Channels is the number of audio channels (1 = mono, 2 = stereo).
	Channels int `yaml:"channels" json:"channels"`

	// SampleWidth is the width of a single sample in bytes, per channel.
	SampleWidth int `yaml:"sample_width" json:"sample_width"`

	// SampleRate is the sampling frequency in Hz.
	SampleRate int `yaml:"sample_rate" json:"sample_rate"`

	// Frames is the total number of sample frames.
	Frames int `yaml:"frames" json:"frames"`

	// Compression is the compression tag, always "NONE" for PCM.
	Compression string `yaml:"compression" json:"compression"`

	// CompressionName is the human-readable compression description,
	// e.g. "not compressed".
	CompressionName string `yaml:"compression_name" json:"compression_name"`
}

// Duration returns the stream length in seconds.
func (i Info) Duration() float64 {
	return float64(i.Frames) / float64(i.SampleRate)
}

// BlockAlign returns the size of one sample frame in bytes.
func (i Info) BlockAlign() int {
	return i.Channels * i.SampleWidth
}

// ByteRate returns the number of bytes per second of audio.
func (i Info) ByteRate() int {
	return i.SampleRate * i.BlockAlign()
}

// FrameAt returns the frame offset for a time in seconds.
// The conversion truncates toward zero, it does not round.
func (i Info) FrameAt(seconds float64) int {
	return int(seconds * float64(i.SampleRate))
}

// Validate reports whether the Info can describe a writable PCM stream.
func (i Info) Validate() error {
	if i.Channels <= 0 {
		return fmt.Errorf("wave: channel count must be positive, got %d", i.Channels)
	}
	if i.SampleWidth <= 0 {
		return fmt.Errorf("wave: sample width must be positive, got %d", i.SampleWidth)
	}
	if i.SampleRate <= 0 {
		return fmt.Errorf("wave: sample rate must be positive, got %d", i.SampleRate)
	}
	if i.Frames < 0 {
		return fmt.Errorf("wave: frame count must not be negative, got %d", i.Frames)
	}
	if i.Compression != CompressionNone {
		return fmt.Errorf("%w: compression %q", ErrUnsupported, i.Compression)
	}
	return nil
}
