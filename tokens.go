package cardfmt

import "strings"

// Segment is one scanned piece of a line: literal text or a recognized token.
type Segment struct {
	Kind SegmentKind
	// Raw is the exact source substring, delimiters included.
	Raw string
	// Pos is the byte offset of Raw within the scanned line.
	Pos int
}

// SegmentKind classifies a Segment.
type SegmentKind uint8

const (
	// SegmentLiteral is plain text.
	SegmentLiteral SegmentKind = iota
	// SegmentKeyword is a registered %token%.
	SegmentKeyword
	// SegmentBold is a *...* span.
	SegmentBold
	// SegmentItalic is a $...$ span.
	SegmentItalic
	// SegmentCost is a ^...^ span.
	SegmentCost
)

var segmentKindNames = [...]string{
	SegmentLiteral: "literal",
	SegmentKeyword: "keyword",
	SegmentBold:    "bold",
	SegmentItalic:  "italic",
	SegmentCost:    "cost",
}

func (k SegmentKind) String() string {
	if int(k) < len(segmentKindNames) {
		return segmentKindNames[k]
	}
	return "unknown"
}

// IsToken reports whether the segment is anything other than literal text.
func (s Segment) IsToken() bool {
	return s.Kind != SegmentLiteral
}

// Text returns the segment content with inline delimiters stripped.
// Literal and keyword segments return Raw unchanged.
func (s Segment) Text() string {
	switch s.Kind {
	case SegmentBold, SegmentItalic, SegmentCost:
		if len(s.Raw) >= 2 {
			return s.Raw[1 : len(s.Raw)-1]
		}
	}
	return s.Raw
}

// Key returns the registry lookup key for a keyword segment.
func (s Segment) Key() string {
	return strings.ToLower(s.Raw)
}
