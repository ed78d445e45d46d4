// Package annot parses annotation files into time-ordered sections.
//
// An annotation file is UTF-8 text with one marker per line, a float
// number of seconds, a single tab, and a label:
//
//	0.000	intro
//	12.340	chapter1
//	58.910	chapter2
//
// Consecutive markers are paired into half-open sections: marker i opens
// a section that the next marker's timestamp closes. The last marker is
// a closing break point only and yields no section of its own, so a file
// with N markers describes exactly N-1 sections.
//
// Marker order in the file is authoritative. The parser performs no
// sorting; out-of-order timestamps produce sections whose end precedes
// their start, which downstream slicing rejects.
package annot

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a file cannot be parsed as an
// annotation file: a non-empty line without a tab separator, or a
// timestamp field that is not a number.
var ErrMalformed = errors.New("annot: not a valid annotation file")

// Marker is a single break point: a time in seconds and a label.
type Marker struct {
	Time  float64
	Label string
}

// Section is a contiguous time range derived from two consecutive
// markers. Start and Label come from the opening marker, End from the
// following one.
type Section struct {
	Start float64 `yaml:"start" json:"start"`
	End   float64 `yaml:"end" json:"end"`
	Label string  `yaml:"label" json:"label"`
}

// Duration returns the section length in seconds.
func (s Section) Duration() float64 {
	return s.End - s.Start
}

// Index is a parsed annotation file. It is built once by Load and
// immutable afterwards.
type Index struct {
	path        string
	markers     []Marker
	sections    []Section
	maxLabelLen int
}

// Load reads and parses the annotation file at path. The whole file
// must be well formed; the first malformed line fails the load with
// ErrMalformed.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("annot: open %s: %w", path, err)
	}
	defer f.Close()

	idx := &Index{path: path}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		field, label, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("%w: line %d has no tab separator", ErrMalformed, lineNo)
		}
		ts, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad timestamp %q", ErrMalformed, lineNo, field)
		}

		label = strings.TrimSpace(label)
		idx.markers = append(idx.markers, Marker{Time: ts, Label: label})
		if len(label) > idx.maxLabelLen {
			idx.maxLabelLen = len(label)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("annot: read %s: %w", path, err)
	}

	// Pair each marker with the next one's timestamp. The final marker
	// only closes the section before it.
	for i := 0; i+1 < len(idx.markers); i++ {
		idx.sections = append(idx.sections, Section{
			Start: idx.markers[i].Time,
			End:   idx.markers[i+1].Time,
			Label: idx.markers[i].Label,
		})
	}

	return idx, nil
}

// Path returns the path the Index was loaded from.
func (idx *Index) Path() string {
	return idx.path
}

// Len returns the number of derived sections.
func (idx *Index) Len() int {
	return len(idx.sections)
}

// Sections returns the derived sections in file order. The returned
// slice is a copy; iterating it repeatedly always yields the same
// sequence.
func (idx *Index) Sections() []Section {
	out := make([]Section, len(idx.sections))
	copy(out, idx.sections)
	return out
}

// Markers returns the parsed markers in file order. The returned slice
// is a copy.
func (idx *Index) Markers() []Marker {
	out := make([]Marker, len(idx.markers))
	copy(out, idx.markers)
	return out
}

// MaxLabelLen returns the length of the longest marker label, for
// column alignment in progress displays.
func (idx *Index) MaxLabelLen() int {
	return idx.maxLabelLen
}
