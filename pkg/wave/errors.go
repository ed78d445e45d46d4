package wave

import "errors"

var (
	// ErrFormat is returned when a file is not a RIFF/WAVE container.
	ErrFormat = errors.New("wave: not a RIFF/WAVE file")

	// ErrUnsupported is returned for containers that are valid WAVE but
	// use an encoding other than integer PCM.
	ErrUnsupported = errors.New("wave: unsupported encoding")

	// ErrInvalidRange is returned by Slice when the end bound does not
	// lie after the start bound.
	ErrInvalidRange = errors.New("wave: slice end must be after start")

	// ErrClosed is returned when reading from or appending to an
	// already-closed file.
	ErrClosed = errors.New("wave: file already closed")
)
