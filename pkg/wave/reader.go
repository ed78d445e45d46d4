package wave

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Reader reads frames from an uncompressed PCM WAVE file.
//
// The container header is parsed once at open time; the resulting Info
// never changes for the life of the Reader. Slice calls are independent:
// each one seeks to the absolute position of its start frame, so calls
// may be made in any order.
//
// A Reader must not be used concurrently from multiple goroutines.
type Reader struct {
	path    string
	f       *os.File
	info    Info
	dataPos int64 // file offset of the data chunk payload
	closed  bool
}

// Open opens a WAVE file for reading and parses its header.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wave: open %s: %w", path, err)
	}

	r := &Reader{path: path, f: f}
	if err := r.readHeader(); err != nil {
		f.Close()
		return nil, fmt.Errorf("wave: %s: %w", path, err)
	}
	return r, nil
}

// fmtChunk mirrors the on-disk layout of the PCM "fmt " chunk body.
type fmtChunk struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

func (r *Reader) readHeader() error {
	var riff struct {
		ChunkID [4]byte // "RIFF"
		Size    uint32
		Format  [4]byte // "WAVE"
	}
	if err := binary.Read(r.f, binary.LittleEndian, &riff); err != nil {
		return ErrFormat
	}
	if string(riff.ChunkID[:]) != "RIFF" || string(riff.Format[:]) != "WAVE" {
		return ErrFormat
	}

	var (
		format   fmtChunk
		haveFmt  bool
		dataSize uint32
		haveData bool
	)

	// Walk the chunk list. Only "fmt " and "data" matter; everything
	// else (LIST, cue, bext, ...) is skipped. Chunk bodies are padded
	// to even sizes.
	for !haveFmt || !haveData {
		var hdr struct {
			ID   [4]byte
			Size uint32
		}
		if err := binary.Read(r.f, binary.LittleEndian, &hdr); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return ErrFormat
			}
			return err
		}

		switch string(hdr.ID[:]) {
		case "fmt ":
			if hdr.Size < 16 {
				return ErrFormat
			}
			if err := binary.Read(r.f, binary.LittleEndian, &format); err != nil {
				return ErrFormat
			}
			haveFmt = true
			if _, err := r.f.Seek(pad(int64(hdr.Size)-16), io.SeekCurrent); err != nil {
				return err
			}
		case "data":
			pos, err := r.f.Seek(0, io.SeekCurrent)
			if err != nil {
				return err
			}
			r.dataPos = pos
			dataSize = hdr.Size
			haveData = true
			if _, err := r.f.Seek(pad(int64(hdr.Size)), io.SeekCurrent); err != nil {
				return err
			}
		default:
			if _, err := r.f.Seek(pad(int64(hdr.Size)), io.SeekCurrent); err != nil {
				return err
			}
		}
	}

	if format.AudioFormat != 1 {
		return fmt.Errorf("%w: audio format tag %d", ErrUnsupported, format.AudioFormat)
	}
	if format.NumChannels == 0 || format.BitsPerSample == 0 || format.SampleRate == 0 {
		return ErrFormat
	}

	blockAlign := int(format.NumChannels) * int(format.BitsPerSample) / 8
	if blockAlign == 0 {
		return ErrFormat
	}

	r.info = Info{
		Channels:        int(format.NumChannels),
		SampleWidth:     int(format.BitsPerSample) / 8,
		SampleRate:      int(format.SampleRate),
		Frames:          int(dataSize) / blockAlign,
		Compression:     CompressionNone,
		CompressionName: "not compressed",
	}
	return nil
}

// pad rounds a chunk body size up to the next even byte boundary.
func pad(n int64) int64 {
	return n + n&1
}

// Path returns the path the Reader was opened from.
func (r *Reader) Path() string {
	return r.path
}

// Info returns a snapshot of the container description.
func (r *Reader) Info() Info {
	return r.info
}

// Slice returns the raw bytes of the frames between two points in time,
// given in seconds. Both bounds are converted to frame offsets by
// truncation and the slice covers [start frame, end frame).
//
// Each call seeks to the absolute position of its start frame, so
// slices may be requested in any order. A range extending past the end
// of the stream yields only the available frames; a start past the end
// yields an empty slice. Neither is an error.
func (r *Reader) Slice(startSeconds, endSeconds float64) ([]byte, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if endSeconds <= startSeconds {
		return nil, fmt.Errorf("%w: %gs to %gs", ErrInvalidRange, startSeconds, endSeconds)
	}

	start := r.info.FrameAt(startSeconds)
	end := r.info.FrameAt(endSeconds)
	if start > r.info.Frames {
		start = r.info.Frames
	}
	if end > r.info.Frames {
		end = r.info.Frames
	}
	if start >= end {
		return []byte{}, nil
	}

	align := int64(r.info.BlockAlign())
	if _, err := r.f.Seek(r.dataPos+int64(start)*align, io.SeekStart); err != nil {
		return nil, fmt.Errorf("wave: seek %s: %w", r.path, err)
	}

	buf := make([]byte, (end-start)*int(align))
	n, err := io.ReadFull(r.f, buf)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		// Header promised more frames than the file holds. Return the
		// whole frames that were actually read.
		n -= n % int(align)
		return buf[:n], nil
	}
	if err != nil {
		return nil, fmt.Errorf("wave: read %s: %w", r.path, err)
	}
	return buf, nil
}

// Close releases the underlying file. Closing an already-closed Reader
// is a no-op.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.f.Close()
}
