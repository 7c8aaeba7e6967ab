// Package source assembles the single buffer the lexer reads from one or
// more input files, and maps buffer offsets back to file positions.
package source

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// Separator is what Concat inserts between consecutive files.
type Separator string

const (
	// SeparatorNone joins files back to back, so the last token of one
	// file can merge with the first token of the next.
	SeparatorNone    Separator = "none"
	SeparatorNewline Separator = "newline"
)

// ParseSeparator validates a separator name. The empty string means
// SeparatorNone.
func ParseSeparator(name string) (Separator, error) {
	switch Separator(name) {
	case "", SeparatorNone:
		return SeparatorNone, nil
	case SeparatorNewline:
		return SeparatorNewline, nil
	default:
		return "", errors.Errorf("unknown separator %q (want %q or %q)", name, SeparatorNone, SeparatorNewline)
	}
}

func (s Separator) bytes() []byte {
	if s == SeparatorNewline {
		return []byte{'\n'}
	}
	return nil
}

// Input is one named source text.
type Input struct {
	Name string
	Data []byte
}

// segment records where one input landed in the buffer.
type segment struct {
	name  string
	start int
	end   int
}

// Buffer is the concatenation of several inputs.
type Buffer struct {
	Data     []byte
	segments []segment
}

// Location is a human-readable position. Line and Col are 1-based.
type Location struct {
	File string
	Line int
	Col  int
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Col)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// Concat joins inputs in order, inserting sep between consecutive inputs.
func Concat(inputs []Input, sep Separator) *Buffer {
	var data bytes.Buffer
	b := &Buffer{}
	for i, in := range inputs {
		if i > 0 {
			data.Write(sep.bytes())
		}
		start := data.Len()
		data.Write(in.Data)
		b.segments = append(b.segments, segment{name: in.Name, start: start, end: data.Len()})
	}
	b.Data = data.Bytes()
	return b
}

// ReadFiles reads every path and concatenates the contents.
func ReadFiles(paths []string, sep Separator) (*Buffer, error) {
	inputs := make([]Input, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		inputs = append(inputs, Input{Name: path, Data: data})
	}
	return Concat(inputs, sep), nil
}

// Files returns the names of the concatenated inputs in order.
func (b *Buffer) Files() []string {
	names := make([]string, len(b.segments))
	for i, seg := range b.segments {
		names[i] = seg.name
	}
	return names
}

// Locate maps a buffer offset to the file it came from. Offsets inside a
// separator, or at the very end, belong to the preceding file.
func (b *Buffer) Locate(offset int) Location {
	if len(b.segments) == 0 {
		return Location{Line: 1, Col: offset + 1}
	}
	seg := b.segments[0]
	for _, s := range b.segments[1:] {
		if s.start > offset {
			break
		}
		seg = s
	}
	offset = max(seg.start, min(offset, seg.end))

	loc := Location{File: seg.name, Line: 1, Col: 1}
	for _, c := range b.Data[seg.start:offset] {
		if c == '\n' {
			loc.Line++
			loc.Col = 1
		} else {
			loc.Col++
		}
	}
	return loc
}
