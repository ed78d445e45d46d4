package wave

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// header mirrors the canonical 44-byte PCM WAVE header.
type header struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // file size - 8
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32
}

// Writer writes an uncompressed PCM WAVE file.
//
// The stream parameters are fixed by the Info template at create time;
// only the frame count grows as data is appended. Close finalizes the
// RIFF and data chunk sizes in the header. A Writer must be closed for
// the container to be valid.
//
// A Writer must not be used concurrently from multiple goroutines.
type Writer struct {
	path      string
	f         *os.File
	info      Info // Frames field unused; see dataBytes
	dataBytes int
	closed    bool
}

// Create creates (or truncates) a WAVE file at path, configured by the
// given Info template. The template's Frames field is ignored; the frame
// count is determined by the data appended before Close.
func Create(path string, info Info) (*Writer, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("wave: create %s: %w", path, err)
	}

	w := &Writer{path: path, f: f, info: info}
	// Placeholder sizes, patched on Close.
	if err := w.writeHeader(0); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("wave: %s: %w", path, err)
	}
	return w, nil
}

func (w *Writer) writeHeader(dataSize uint32) error {
	h := header{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   uint16(w.info.Channels),
		SampleRate:    uint32(w.info.SampleRate),
		ByteRate:      uint32(w.info.ByteRate()),
		BlockAlign:    uint16(w.info.BlockAlign()),
		BitsPerSample: uint16(w.info.SampleWidth * 8),
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}
	return binary.Write(w.f, binary.LittleEndian, h)
}

// Path returns the path the Writer was created at.
func (w *Writer) Path() string {
	return w.path
}

// Info returns the stream description as written so far. The Frames
// field reflects the number of whole frames appended to date.
func (w *Writer) Info() Info {
	info := w.info
	info.Frames = w.dataBytes / w.info.BlockAlign()
	return info
}

// Append writes raw frame bytes to the container. It may be called any
// number of times before Close; the frame count accumulates. Appending
// to a closed Writer returns ErrClosed.
func (w *Writer) Append(data []byte) error {
	if w.closed {
		return ErrClosed
	}
	if _, err := w.f.Write(data); err != nil {
		return fmt.Errorf("wave: write %s: %w", w.path, err)
	}
	w.dataBytes += len(data)
	return nil
}

// Close patches the header with the final chunk sizes and releases the
// file. Closing an already-closed Writer is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if _, err := w.f.Seek(0, io.SeekStart); err != nil {
		w.f.Close()
		return fmt.Errorf("wave: finalize %s: %w", w.path, err)
	}
	if err := w.writeHeader(uint32(w.dataBytes)); err != nil {
		w.f.Close()
		return fmt.Errorf("wave: finalize %s: %w", w.path, err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("wave: close %s: %w", w.path, err)
	}
	return nil
}
