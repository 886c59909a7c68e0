package sourcecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentGetLineColumn(t *testing.T) {
	doc := NewDocument("main.bal", "import a/b;\nint x = 1;\n")

	line, col := doc.GetLineColumn(0)
	assert.EqualValues(t, 1, line)
	assert.EqualValues(t, 1, col)

	line, col = doc.GetLineColumn(12)
	assert.EqualValues(t, 2, line)
	assert.EqualValues(t, 1, col)

	line, col = doc.GetLineColumn(16)
	assert.EqualValues(t, 2, line)
	assert.EqualValues(t, 5, col)

	//out of bounds offsets are clamped
	line, _ = doc.GetLineColumn(1000)
	assert.EqualValues(t, 3, line)
}

func TestDocumentGetSourcePosition(t *testing.T) {
	doc := NewDocument("main.bal", "ab\ncd")

	pos := doc.GetSourcePosition(NodeSpan{Start: 1, End: 4})
	assert.Equal(t, PositionRange{
		SourceName:  "main.bal",
		StartLine:   1,
		StartColumn: 2,
		EndLine:     2,
		EndColumn:   2,
		Span:        NodeSpan{Start: 1, End: 4},
	}, pos)
}

func TestDocumentUTF16Positions(t *testing.T) {
	//'é' is 2 bytes and 1 UTF-16 unit, '𝄞' is 4 bytes and 2 UTF-16 units.
	doc := NewDocument("f", "aé𝄞b\nxy")

	line, char := doc.UTF16Position(7)
	assert.EqualValues(t, 0, line)
	assert.EqualValues(t, 4, char)

	assert.EqualValues(t, 7, doc.OffsetOfUTF16Position(0, 4))
	assert.EqualValues(t, 8, doc.OffsetOfUTF16Position(0, 100))
	assert.EqualValues(t, 10, doc.OffsetOfUTF16Position(1, 1))
	assert.EqualValues(t, doc.Len(), doc.OffsetOfUTF16Position(5, 0))

	line, char = doc.UTF16Position(10)
	assert.EqualValues(t, 1, line)
	assert.EqualValues(t, 1, char)

	t.Run("basic multilingual plane boundary", func(t *testing.T) {
		assert.EqualValues(t, 1, utf16Len(0xFFFF))
		assert.EqualValues(t, 2, utf16Len(0x10000))
		assert.EqualValues(t, 2, utf16Len(0x10FFFF))
	})

	t.Run("invalid byte", func(t *testing.T) {
		doc := NewDocument("f", "\xffa")
		_, char := doc.UTF16Position(2)
		assert.EqualValues(t, 2, char)
		assert.EqualValues(t, 1, doc.OffsetOfUTF16Position(0, 1))
	})
}

func TestNodeSpan(t *testing.T) {
	span := NodeSpan{Start: 2, End: 5}
	assert.True(t, span.HasPositionEndIncluded(2))
	assert.True(t, span.HasPositionEndIncluded(5))
	assert.False(t, span.HasPositionEndIncluded(6))
	assert.EqualValues(t, 3, span.Len())
	assert.True(t, NodeSpan{Start: 3, End: 4}.IncludedIn(span))
	assert.False(t, NodeSpan{Start: 1, End: 4}.IncludedIn(span))
}
