package cardfmt

import (
	"regexp"
	"sort"
	"strings"
)

const (
	italicPattern = `\$[^$]+\$`
	boldPattern   = `\*[^*]+\*`
	costPattern   = `\^[^^]+\^`
)

// compilePattern builds the single alternation used to split a line. Longer
// tokens come first so a token that prefixes another never shadows it.
func compilePattern(specs map[string]KeywordSpec) *regexp.Regexp {
	tokens := make([]string, 0, len(specs))
	for token := range specs {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})

	branches := make([]string, 0, len(tokens)+3)
	for _, token := range tokens {
		branches = append(branches, regexp.QuoteMeta(token))
	}
	branches = append(branches, italicPattern, boldPattern, costPattern)
	return regexp.MustCompile(`(?i)(?:` + strings.Join(branches, "|") + `)`)
}

// Scan splits a single line into literal and token segments using reg, or
// the default registry when reg is nil. Matched spans are never re-scanned,
// so delimiters do not nest. Callers split on newlines first.
func Scan(line string, reg *Registry) []Segment {
	if reg == nil {
		reg = defaultRegistry
	}
	return scanLine(line, reg.snapshot())
}

func scanLine(line string, snap *snapshot) []Segment {
	if line == "" {
		return nil
	}
	matches := snap.pattern.FindAllStringIndex(line, -1)
	segments := make([]Segment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > last {
			segments = append(segments, Segment{Kind: SegmentLiteral, Raw: line[last:start], Pos: last})
		}
		if end > start {
			raw := line[start:end]
			segments = append(segments, Segment{Kind: classify(raw, snap), Raw: raw, Pos: start})
		}
		last = end
	}
	if last < len(line) {
		segments = append(segments, Segment{Kind: SegmentLiteral, Raw: line[last:], Pos: last})
	}
	return segments
}

func classify(raw string, snap *snapshot) SegmentKind {
	if _, ok := snap.lookup(raw); ok {
		return SegmentKeyword
	}
	switch raw[0] {
	case '*':
		return SegmentBold
	case '$':
		return SegmentItalic
	case '^':
		return SegmentCost
	}
	return SegmentLiteral
}
