package sourcecode

// NodeSpan is a range of byte offsets in a source document.
type NodeSpan struct {
	Start int32 `json:"start"`
	End   int32 `json:"end"` //exclusive
}

func (s NodeSpan) HasPositionEndIncluded(i int32) bool {
	return i >= s.Start && i <= s.End
}

func (s NodeSpan) Len() int32 {
	return s.End - s.Start
}

// IncludedIn reports whether s is inside other (bounds included).
func (s NodeSpan) IncludedIn(other NodeSpan) bool {
	return s.Start >= other.Start && s.End <= other.End
}

type PositionRange struct {
	SourceName  string   `json:"sourceName"`
	StartLine   int32    `json:"line"`   //1-indexed
	StartColumn int32    `json:"column"` //1-indexed
	EndLine     int32    `json:"endLine"`
	EndColumn   int32    `json:"endColumn"`
	Span        NodeSpan `json:"span"`
}
