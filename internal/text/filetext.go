// Package text provides FileText, an immutable source-text value with
// 1-based line/column indexing and O(log N) position lookups (spec §3,
// component C2).
package text

import (
	"sort"
	"strings"

	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

// FileText is an immutable slice of source text, optionally tagged with a
// filename, and addressed starting at StartPos rather than always at
// (1, 1) — so that a FileText produced by slicing a larger FileText still
// reports positions in the coordinate space of the original file.
//
// Invariant: Lines() == strings.Count(content, "\n") + (0 or 1), matching
// the source's own terminal-newline convention; the formatter must
// reproduce that convention rather than always emitting a trailing
// newline.
type FileText struct {
	content    string
	filename   string
	startPos   types.FilePos
	lineStarts []int // byte offsets, relative to content, where each line begins
}

// New builds a FileText from raw content, with the given optional filename
// and starting position (use types.NewFilePos(1, 1) for a whole file).
func New(content string, filename string, startPos types.FilePos) FileText {
	return FileText{
		content:    content,
		filename:   filename,
		startPos:   startPos,
		lineStarts: computeLineStarts(content),
	}
}

// NewFile builds a FileText representing a whole file starting at (1, 1).
func NewFile(content string, filename string) FileText {
	return New(content, filename, types.NewFilePos(1, 1))
}

func computeLineStarts(content string) []int {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	// Drop a final entry that points one-past-the-end with nothing after
	// it (a clean trailing newline does not start a new physical line).
	if len(starts) > 1 && starts[len(starts)-1] == len(content) {
		starts = starts[:len(starts)-1]
	}
	return starts
}

// String returns the raw text content.
func (f FileText) String() string { return f.content }

// Bytes returns the raw text content as bytes.
func (f FileText) Bytes() []byte { return []byte(f.content) }

// Filename returns the optional source filename ("" if not set).
func (f FileText) Filename() string { return f.filename }

// StartPos returns the position of the first byte of content within the
// original file.
func (f FileText) StartPos() types.FilePos { return f.startPos }

// Len returns the number of bytes in content.
func (f FileText) Len() int { return len(f.content) }

// IsEmpty reports whether content has zero bytes.
func (f FileText) IsEmpty() bool { return len(f.content) == 0 }

// Lines returns the number of logical lines per the terminal-newline
// invariant: a non-empty final line with no trailing "\n" still counts.
func (f FileText) Lines() int {
	if f.content == "" {
		return 0
	}
	n := strings.Count(f.content, "\n")
	if !strings.HasSuffix(f.content, "\n") {
		n++
	}
	return n
}

// EndsWithNewline reports whether content's final byte is "\n".
func (f FileText) EndsWithNewline() bool {
	return strings.HasSuffix(f.content, "\n")
}

// EndPos returns the position immediately after the last byte of content.
func (f FileText) EndPos() types.FilePos {
	return f.PosAt(len(f.content))
}

// LineText returns the text of the given 1-based line number, excluding
// its trailing newline, or "" if out of range.
func (f FileText) LineText(line int) string {
	rel := line - f.startPos.Line
	if rel < 0 || rel >= len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[rel]
	end := len(f.content)
	if rel+1 < len(f.lineStarts) {
		end = f.lineStarts[rel+1] - 1 // drop the '\n'
	} else if end > start && f.content[end-1] == '\n' {
		end--
	}
	return f.content[start:end]
}

// PosAt converts a byte offset within content to a FilePos in the
// coordinate space of the original file (honoring StartPos). It is an
// O(log N) binary search over line-start offsets.
func (f FileText) PosAt(offset int) types.FilePos {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.content) {
		offset = len(f.content)
	}
	// Rightmost lineStarts[i] <= offset.
	i := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > offset
	}) - 1
	if i < 0 {
		i = 0
	}
	lineOffset := offset - f.lineStarts[i]
	if i == 0 {
		return types.NewFilePos(f.startPos.Line, f.startPos.Col+lineOffset)
	}
	return types.NewFilePos(f.startPos.Line+i, lineOffset+1)
}

// OffsetAt converts a FilePos in the coordinate space of the original file
// back to a byte offset within content. Positions before StartPos or past
// EndPos clamp to the nearest valid offset.
func (f FileText) OffsetAt(pos types.FilePos) int {
	rel := pos.Line - f.startPos.Line
	if rel < 0 {
		return 0
	}
	if rel >= len(f.lineStarts) {
		return len(f.content)
	}
	var col int
	if rel == 0 {
		col = pos.Col - f.startPos.Col
	} else {
		col = pos.Col - 1
	}
	if col < 0 {
		col = 0
	}
	offset := f.lineStarts[rel] + col
	lineEnd := len(f.content)
	if rel+1 < len(f.lineStarts) {
		lineEnd = f.lineStarts[rel+1]
	}
	if offset > lineEnd {
		offset = lineEnd
	}
	return offset
}

// Slice returns the substring of f between two positions (inclusive
// start, exclusive end), as its own FileText whose StartPos is start —
// so further slicing or position lookups on the result stay in the
// original file's coordinate space.
func (f FileText) Slice(start, end types.FilePos) FileText {
	os, oe := f.OffsetAt(start), f.OffsetAt(end)
	if oe < os {
		oe = os
	}
	return New(f.content[os:oe], f.filename, start)
}

// SliceOffsets returns the substring of f between two byte offsets, as
// its own FileText whose StartPos is computed from the parent's position
// map.
func (f FileText) SliceOffsets(start, end int) FileText {
	if start < 0 {
		start = 0
	}
	if end > len(f.content) {
		end = len(f.content)
	}
	if end < start {
		end = start
	}
	return New(f.content[start:end], f.filename, f.PosAt(start))
}

// Concat concatenates the contents of texts in order and rebuilds a
// single FileText starting at the first element's StartPos. Used by
// statement round-trip checks (pyast.Block.Source).
func Concat(filename string, texts ...FileText) FileText {
	if len(texts) == 0 {
		return NewFile("", filename)
	}
	var b strings.Builder
	for _, t := range texts {
		b.WriteString(t.content)
	}
	return New(b.String(), filename, texts[0].startPos)
}
