package sourcecode

import (
	"fmt"
	"io"
	"sync"
	"unicode/utf8"
)

// Document holds the text of a source file and provides helper methods to convert
// byte offsets into line/column positions. A Document is immutable once created,
// the line index is lazily computed and safe for concurrent use.
type Document struct {
	name string
	text string

	lineStartsOnce sync.Once
	lineStarts     []int32
}

func NewDocument(name, text string) *Document {
	return &Document{name: name, text: text}
}

// unique name | URL | path
func (d *Document) Name() string {
	return d.name
}

func (d *Document) Text() string {
	return d.text
}

func (d *Document) Len() int32 {
	return int32(len(d.text))
}

func (d *Document) getLineStarts() []int32 {
	d.lineStartsOnce.Do(func() {
		d.lineStarts = append(d.lineStarts, 0)
		for i := 0; i < len(d.text); i++ {
			if d.text[i] == '\n' {
				d.lineStarts = append(d.lineStarts, int32(i+1))
			}
		}
	})
	return d.lineStarts
}

// lineOf returns the 0-indexed line containing offset.
func (d *Document) lineOf(offset int32) int {
	starts := d.getLineStarts()
	low, high := 0, len(starts)-1
	for low < high {
		mid := (low + high + 1) / 2
		if starts[mid] <= offset {
			low = mid
		} else {
			high = mid - 1
		}
	}
	return low
}

func (d *Document) clamp(offset int32) int32 {
	return max(0, min(offset, d.Len()))
}

// GetLineColumn returns the 1-indexed line and column (in runes) of a byte offset.
func (d *Document) GetLineColumn(offset int32) (int32, int32) {
	offset = d.clamp(offset)
	line := d.lineOf(offset)
	lineStart := d.getLineStarts()[line]

	col := int32(1 + utf8.RuneCountInString(d.text[lineStart:offset]))
	return int32(line + 1), col
}

func (d *Document) GetSpanLineColumn(span NodeSpan) (int32, int32) {
	return d.GetLineColumn(span.Start)
}

func (d *Document) GetSourcePosition(span NodeSpan) PositionRange {
	line, col := d.GetLineColumn(span.Start)
	endLine, endCol := d.GetLineColumn(span.End)

	return PositionRange{
		SourceName:  d.name,
		StartLine:   line,
		StartColumn: col,
		EndLine:     endLine,
		EndColumn:   endCol,
		Span:        span,
	}
}

func (d *Document) FormatNodeSpanLocation(w io.Writer, nodeSpan NodeSpan) (int, error) {
	line, col := d.GetSpanLineColumn(nodeSpan)
	return fmt.Fprintf(w, "%s:%d:%d:", d.name, line, col)
}

// UTF16Position converts a byte offset into a 0-indexed line and a 0-indexed character
// counted in UTF-16 code units, as expected by LSP clients.
func (d *Document) UTF16Position(offset int32) (line uint32, character uint32) {
	offset = d.clamp(offset)
	lineIndex := d.lineOf(offset)
	lineStart := d.getLineStarts()[lineIndex]

	for _, r := range d.text[lineStart:offset] {
		character += utf16Len(r)
	}
	return uint32(lineIndex), character
}

// OffsetOfUTF16Position is the inverse of UTF16Position, positions past the end of a line
// are mapped to the end of the line and lines past the end of the document to its end.
func (d *Document) OffsetOfUTF16Position(line uint32, character uint32) int32 {
	starts := d.getLineStarts()
	if int(line) >= len(starts) {
		return d.Len()
	}

	lineStart := starts[line]
	col := uint32(0)

	for i, r := range d.text[lineStart:] {
		if r == '\n' || col >= character {
			return lineStart + int32(i)
		}
		col += utf16Len(r)
	}
	return d.Len()
}

// utf16Len returns the number of UTF-16 code units encoding r, invalid runes are decoded as
// U+FFFD by range loops and take one unit.
func utf16Len(r rune) uint32 {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
