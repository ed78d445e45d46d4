// Package chop drives a single segmentation batch: it pairs an audio
// file with an annotation index and writes one output container per
// derived section.
//
// The batch is strictly sequential. Each section is extracted from the
// source and written to its own sink before the next section starts; a
// failure aborts the batch and leaves already-written files in place.
package chop

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/prosodylab/prochop/pkg/annot"
	"github.com/prosodylab/prochop/pkg/wave"
)

// ErrUnsupportedFormat is returned when an output format is recognized
// but has no implementation.
var ErrUnsupportedFormat = errors.New("chop: output format not implemented")

// Format is an output container format.
type Format string

const (
	// FormatWAV writes uncompressed PCM WAVE files. This is the default
	// and the only implemented format.
	FormatWAV Format = "wav"

	// FormatSFS is the proprietary Speech Filing System format. It is
	// accepted by ParseFormat for interface compatibility with the
	// original ProChop but rejected by Run.
	FormatSFS Format = "sfs"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatWAV:
		return FormatWAV, nil
	case FormatSFS:
		return FormatSFS, nil
	default:
		return "", fmt.Errorf("chop: file type must be either 'wav' or 'sfs'; %q specified", s)
	}
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Progress is called once per section, after the section's file has
// been written. n is 1-based.
type Progress func(n, total int, sec annot.Section, path string)

// Start is called once per batch, after the inputs have been validated
// and opened but before any section is processed.
type Start func(info wave.Info, index *annot.Index)

// Options configures a segmentation batch.
type Options struct {
	// Audio is the path of the recording to segment.
	Audio string

	// Annotations is the path of the break-point file.
	Annotations string

	// OutputDir receives one file per section. Created if absent.
	OutputDir string

	// Format is the output container format. Empty means FormatWAV.
	Format Format

	// KeepDuplicates controls the duplicate-label policy. When false,
	// a label that occurs more than once overwrites its earlier file;
	// when true, later occurrences get a numbered suffix.
	KeepDuplicates bool

	// TrimSilence is recognized for compatibility with the original
	// ProChop -s option but not implemented; it is logged and ignored.
	TrimSilence bool

	// Start, if set, is invoked once before the first section.
	Start Start

	// Progress, if set, is invoked after each section is written.
	Progress Progress

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// WrittenSection records one output file of a completed batch.
type WrittenSection struct {
	Label  string  `yaml:"label" json:"label"`
	Start  float64 `yaml:"start" json:"start"`
	End    float64 `yaml:"end" json:"end"`
	Frames int     `yaml:"frames" json:"frames"`
	Path   string  `yaml:"path" json:"path"`
}

// Result describes a completed batch, suitable for rendering as a
// manifest.
type Result struct {
	Audio       string           `yaml:"audio" json:"audio"`
	Annotations string           `yaml:"annotations" json:"annotations"`
	OutputDir   string           `yaml:"output_dir" json:"output_dir"`
	Source      wave.Info        `yaml:"source" json:"source"`
	Sections    []WrittenSection `yaml:"sections" json:"sections"`
}

// Run executes the batch described by opts.
//
// All inputs are validated before any output is produced: both input
// files must exist, the output directory must be creatable, and the
// format must be implemented. After validation, sections are processed
// strictly in file order; the first failure aborts the batch, keeping
// the files of sections already completed.
func Run(opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	format := opts.Format
	if format == "" {
		format = FormatWAV
	}
	if format != FormatWAV {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, strings.ToUpper(string(format)))
	}

	if err := statFile(opts.Audio, "audio file"); err != nil {
		return nil, err
	}
	if err := statFile(opts.Annotations, "annotation file"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("chop: output directory %q could not be created: %w", opts.OutputDir, err)
	}

	if opts.TrimSilence {
		log.Warn("silence trimming is not implemented; ignoring")
	}

	index, err := annot.Load(opts.Annotations)
	if err != nil {
		return nil, err
	}

	src, err := wave.Open(opts.Audio)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	info := src.Info()
	log.Debug("source opened",
		"path", src.Path(),
		"channels", info.Channels,
		"sample_rate", info.SampleRate,
		"frames", info.Frames,
		"duration", info.Duration(),
		"sections", index.Len())

	if opts.Start != nil {
		opts.Start(info, index)
	}

	result := &Result{
		Audio:       opts.Audio,
		Annotations: opts.Annotations,
		OutputDir:   opts.OutputDir,
		Source:      info,
	}

	sections := index.Sections()
	names := make(map[string]int, len(sections))
	for i, sec := range sections {
		path := filepath.Join(opts.OutputDir, outputName(names, sec.Label, format.Ext(), opts.KeepDuplicates))

		frames, err := writeSection(src, sec, path, info)
		if err != nil {
			return nil, err
		}
		log.Debug("section written", "label", sec.Label, "path", path, "frames", frames)

		result.Sections = append(result.Sections, WrittenSection{
			Label:  sec.Label,
			Start:  sec.Start,
			End:    sec.End,
			Frames: frames,
			Path:   path,
		})
		if opts.Progress != nil {
			opts.Progress(i+1, len(sections), sec, path)
		}
	}

	return result, nil
}

// writeSection extracts one section from the source and writes it to a
// fresh sink, which is always finalized before returning.
func writeSection(src *wave.Reader, sec annot.Section, path string, info wave.Info) (int, error) {
	data, err := src.Slice(sec.Start, sec.End)
	if err != nil {
		return 0, fmt.Errorf("chop: section %q: %w", sec.Label, err)
	}

	dst, err := wave.Create(path, info)
	if err != nil {
		return 0, err
	}
	if err := dst.Append(data); err != nil {
		dst.Close()
		return 0, err
	}
	frames := dst.Info().Frames
	if err := dst.Close(); err != nil {
		return 0, err
	}
	return frames, nil
}

// outputName resolves the duplicate-label policy. Labels are counted
// per resolved base name; with keep set, repeats get -2, -3, ...
// suffixes, otherwise the same name is reused and the later file wins.
func outputName(names map[string]int, label, ext string, keep bool) string {
	names[label]++
	if keep && names[label] > 1 {
		return fmt.Sprintf("%s-%d%s", label, names[label], ext)
	}
	return label + ext
}

func statFile(path, what string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("chop: the %s %q could not be found: %w", what, path, err)
	}
	if fi.IsDir() {
		return fmt.Errorf("chop: the %s %q is a directory", what, path)
	}
	return nil
}
