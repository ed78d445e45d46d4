package chop

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prosodylab/prochop/pkg/annot"
	"github.com/prosodylab/prochop/pkg/wave"
)

// writeFixture writes a mono 16-bit WAV of the given length and an
// annotation file, returning their paths and the raw frame bytes.
func writeFixture(t *testing.T, frames int, annotations string) (audio, annots string, data []byte) {
	t.Helper()
	dir := t.TempDir()

	info := wave.Info{
		Channels:        1,
		SampleWidth:     2,
		SampleRate:      44100,
		Compression:     wave.CompressionNone,
		CompressionName: "not compressed",
	}
	data = make([]byte, frames*info.BlockAlign())
	for i := range data {
		data[i] = byte(i % 251)
	}

	audio = filepath.Join(dir, "session.wav")
	w, err := wave.Create(audio, info)
	require.NoError(t, err)
	require.NoError(t, w.Append(data))
	require.NoError(t, w.Close())

	annots = filepath.Join(dir, "session.txt")
	require.NoError(t, os.WriteFile(annots, []byte(annotations), 0o644))
	return audio, annots, data
}

func readFrames(t *testing.T, path string) (wave.Info, []byte) {
	t.Helper()
	r, err := wave.Open(path)
	require.NoError(t, err)
	defer r.Close()
	info := r.Info()
	if info.Frames == 0 {
		return info, nil
	}
	data, err := r.Slice(0, info.Duration()+1)
	require.NoError(t, err)
	return info, data
}

func TestRunSplitsSections(t *testing.T) {
	// Two seconds of audio, three markers: exactly two output files,
	// one second each; the final marker only closes the recording.
	audio, annots, data := writeFixture(t, 88200, "0.0\ta\n1.0\tb\n2.0\tc\n")
	outDir := filepath.Join(t.TempDir(), "out")

	result, err := Run(Options{
		Audio:       audio,
		Annotations: annots,
		OutputDir:   outDir,
	})
	require.NoError(t, err)
	require.Len(t, result.Sections, 2)

	infoA, dataA := readFrames(t, filepath.Join(outDir, "a.wav"))
	assert.Equal(t, 44100, infoA.Frames)
	assert.Equal(t, data[:44100*2], dataA)

	infoB, dataB := readFrames(t, filepath.Join(outDir, "b.wav"))
	assert.Equal(t, 44100, infoB.Frames)
	assert.Equal(t, data[44100*2:], dataB)

	_, err = os.Stat(filepath.Join(outDir, "c.wav"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	// Output containers inherit the source stream parameters.
	assert.Equal(t, result.Source.Channels, infoA.Channels)
	assert.Equal(t, result.Source.SampleRate, infoA.SampleRate)
	assert.Equal(t, result.Source.SampleWidth, infoA.SampleWidth)
}

func TestRunCreatesOutputDir(t *testing.T) {
	audio, annots, _ := writeFixture(t, 4410, "0\ta\n0.05\tend\n")
	outDir := filepath.Join(t.TempDir(), "deeply", "nested", "out")

	_, err := Run(Options{Audio: audio, Annotations: annots, OutputDir: outDir})
	require.NoError(t, err)

	fi, err := os.Stat(outDir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestRunDuplicateOverwrite(t *testing.T) {
	audio, annots, data := writeFixture(t, 88200, "0.0\ttake\n1.0\ttake\n2.0\tend\n")
	outDir := t.TempDir()

	result, err := Run(Options{Audio: audio, Annotations: annots, OutputDir: outDir})
	require.NoError(t, err)
	require.Len(t, result.Sections, 2)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// The later section wins.
	_, got := readFrames(t, filepath.Join(outDir, "take.wav"))
	assert.Equal(t, data[44100*2:], got)
}

func TestRunDuplicateSuffix(t *testing.T) {
	audio, annots, _ := writeFixture(t, 88200, "0.0\ttake\n0.5\ttake\n1.0\ttake\n1.5\tend\n")
	outDir := t.TempDir()

	result, err := Run(Options{
		Audio:          audio,
		Annotations:    annots,
		OutputDir:      outDir,
		KeepDuplicates: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Sections, 3)

	assert.FileExists(t, filepath.Join(outDir, "take.wav"))
	assert.FileExists(t, filepath.Join(outDir, "take-2.wav"))
	assert.FileExists(t, filepath.Join(outDir, "take-3.wav"))
}

func TestRunRejectsSFS(t *testing.T) {
	audio, annots, _ := writeFixture(t, 4410, "0\ta\n0.05\tb\n")
	outDir := filepath.Join(t.TempDir(), "out")

	_, err := Run(Options{
		Audio:       audio,
		Annotations: annots,
		OutputDir:   outDir,
		Format:      FormatSFS,
	})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	// Rejected before any output is produced.
	_, err = os.Stat(outDir)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRunMissingAudio(t *testing.T) {
	_, annots, _ := writeFixture(t, 441, "0\ta\n0.005\tb\n")
	_, err := Run(Options{
		Audio:       filepath.Join(t.TempDir(), "nope.wav"),
		Annotations: annots,
		OutputDir:   t.TempDir(),
	})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRunMissingAnnotations(t *testing.T) {
	audio, _, _ := writeFixture(t, 441, "0\ta\n0.005\tb\n")
	_, err := Run(Options{
		Audio:       audio,
		Annotations: filepath.Join(t.TempDir(), "nope.txt"),
		OutputDir:   t.TempDir(),
	})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRunMalformedAnnotations(t *testing.T) {
	audio, annots, _ := writeFixture(t, 441, "no tabs in this file\n")
	_, err := Run(Options{
		Audio:       audio,
		Annotations: annots,
		OutputDir:   t.TempDir(),
	})
	assert.ErrorIs(t, err, annot.ErrMalformed)
}

func TestRunCallbacks(t *testing.T) {
	audio, annots, _ := writeFixture(t, 88200, "0\ta\n1\tb\n2\tc\n")

	var started bool
	var progressed []string
	_, err := Run(Options{
		Audio:       audio,
		Annotations: annots,
		OutputDir:   t.TempDir(),
		Start: func(info wave.Info, index *annot.Index) {
			started = true
			assert.Equal(t, 88200, info.Frames)
			assert.Equal(t, 2, index.Len())
		},
		Progress: func(n, total int, sec annot.Section, path string) {
			assert.Equal(t, 2, total)
			progressed = append(progressed, sec.Label)
		},
	})
	require.NoError(t, err)
	assert.True(t, started)
	assert.Equal(t, []string{"a", "b"}, progressed)
}

func TestRunTrimSilenceIgnored(t *testing.T) {
	audio, annots, _ := writeFixture(t, 4410, "0\ta\n0.05\tb\n")
	outDir := t.TempDir()

	result, err := Run(Options{
		Audio:       audio,
		Annotations: annots,
		OutputDir:   outDir,
		TrimSilence: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Sections, 1)
	assert.FileExists(t, filepath.Join(outDir, "a.wav"))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"wav", FormatWAV, false},
		{"WAV", FormatWAV, false},
		{"sfs", FormatSFS, false},
		{"SFS", FormatSFS, false},
		{"mp3", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputName(t *testing.T) {
	names := map[string]int{}
	assert.Equal(t, "a.wav", outputName(names, "a", ".wav", true))
	assert.Equal(t, "a-2.wav", outputName(names, "a", ".wav", true))
	assert.Equal(t, "a-3.wav", outputName(names, "a", ".wav", true))
	assert.Equal(t, "b.wav", outputName(names, "b", ".wav", true))

	overwrite := map[string]int{}
	assert.Equal(t, "a.wav", outputName(overwrite, "a", ".wav", false))
	assert.Equal(t, "a.wav", outputName(overwrite, "a", ".wav", false))
}
