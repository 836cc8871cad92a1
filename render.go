package cardfmt

import "strings"

// DefaultFontSize is the base font size in pixels when BaseStyle leaves it unset.
const DefaultFontSize = 16

const (
	italicOpacity  = 0.8
	costFontScale  = 0.9
	costLineHeight = 16
	costMinWidth   = 16
	costBackground = "#000000"
	costColor      = "#ffffff"
)

// BaseStyle is the caller's text style that literal runs and spans inherit.
type BaseStyle struct {
	FontSize   float64 // pixels
	LineHeight float64 // multiplier; 0 inherits
	Color      string
	TextShadow string
}

func (b BaseStyle) fontSize() float64 {
	if b.FontSize <= 0 {
		return DefaultFontSize
	}
	return b.FontSize
}

// TextStyle is the resolved style of a fragment. Empty strings mean "inherit".
type TextStyle struct {
	FontSize        float64 `json:"fontSize"`
	LineHeight      float64 `json:"lineHeight,omitempty"`
	Color           string  `json:"color,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	FontWeight      string  `json:"fontWeight,omitempty"`
	FontStyle       string  `json:"fontStyle,omitempty"`
	Opacity         float64 `json:"opacity"`
	TextShadow      string  `json:"textShadow,omitempty"`
	BorderRadius    string  `json:"borderRadius,omitempty"`
	Padding         string  `json:"padding,omitempty"`
	MinWidth        float64 `json:"minWidth,omitempty"`
	TextAlign       string  `json:"textAlign,omitempty"`
}

// FragmentKind classifies a Fragment.
type FragmentKind uint8

const (
	FragmentText FragmentKind = iota
	FragmentBold
	FragmentItalic
	FragmentCost
	FragmentKeyword
)

var fragmentKindNames = [...]string{
	FragmentText:    "text",
	FragmentBold:    "bold",
	FragmentItalic:  "italic",
	FragmentCost:    "cost",
	FragmentKeyword: "keyword",
}

func (k FragmentKind) String() string {
	if int(k) < len(fragmentKindNames) {
		return fragmentKindNames[k]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k FragmentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Fragment is a display-ready piece of a line.
type Fragment struct {
	Kind FragmentKind `json:"kind"`
	// Text is what gets displayed: span interior or keyword label.
	Text string `json:"text"`
	// Raw is the source substring the fragment was produced from.
	Raw     string           `json:"raw"`
	Style   TextStyle        `json:"style"`
	Keyword *KeywordFragment `json:"keyword,omitempty"`
}

// KeywordFragment carries the shape details of a keyword fragment.
type KeywordFragment struct {
	Token    string    `json:"token"`
	Shape    Shape     `json:"shape"`
	Icon     string    `json:"icon,omitempty"`
	IconSize float64   `json:"iconSize,omitempty"`
	Outline  *Outline  `json:"outline,omitempty"`
	Box      *FixedBox `json:"box,omitempty"`
}

// Line is the rendered content of one input line.
type Line struct {
	Fragments []Fragment `json:"fragments"`
	// Break is set on every line except the last.
	Break bool `json:"break"`
}

// Parse splits text on newlines, scans each line and renders every segment
// into a fragment. Empty text yields nil.
func Parse(text string, base BaseStyle, opts ...RenderOption) []Line {
	if text == "" {
		return nil
	}
	cfg := resolveConfig(opts)
	snap := cfg.registry.snapshot()
	rawLines := strings.Split(text, "\n")
	lines := make([]Line, len(rawLines))
	for i, raw := range rawLines {
		segments := scanLine(raw, snap)
		frags := make([]Fragment, 0, len(segments))
		for _, seg := range segments {
			frags = append(frags, renderSegment(seg, base, snap, cfg.target))
		}
		lines[i] = Line{Fragments: frags, Break: i < len(rawLines)-1}
	}
	return lines
}

// RenderSegment renders a single segment against reg (default registry when nil).
func RenderSegment(seg Segment, base BaseStyle, reg *Registry, target RenderTarget) Fragment {
	if reg == nil {
		reg = defaultRegistry
	}
	return renderSegment(seg, base, reg.snapshot(), target)
}

func renderSegment(seg Segment, base BaseStyle, snap *snapshot, target RenderTarget) Fragment {
	if seg.Kind != SegmentLiteral {
		if spec, ok := snap.lookup(seg.Raw); ok {
			return renderKeyword(seg, spec, base, target)
		}
	}
	switch seg.Kind {
	case SegmentBold:
		style := baseTextStyle(base)
		style.FontWeight = "bold"
		return Fragment{Kind: FragmentBold, Text: seg.Text(), Raw: seg.Raw, Style: style}
	case SegmentItalic:
		style := baseTextStyle(base)
		style.FontStyle = "italic"
		style.Opacity = italicOpacity
		return Fragment{Kind: FragmentItalic, Text: seg.Text(), Raw: seg.Raw, Style: style}
	case SegmentCost:
		return Fragment{Kind: FragmentCost, Text: seg.Text(), Raw: seg.Raw, Style: TextStyle{
			FontSize:        base.fontSize() * costFontScale,
			LineHeight:      costLineHeight,
			Color:           costColor,
			BackgroundColor: costBackground,
			FontWeight:      "bold",
			Opacity:         1,
			TextShadow:      "none",
			BorderRadius:    "50%",
			MinWidth:        costMinWidth,
			TextAlign:       "center",
		}}
	}
	return Fragment{Kind: FragmentText, Text: seg.Raw, Raw: seg.Raw, Style: baseTextStyle(base)}
}

func baseTextStyle(base BaseStyle) TextStyle {
	return TextStyle{
		FontSize:   base.fontSize(),
		LineHeight: base.LineHeight,
		Color:      base.Color,
		Opacity:    1,
		TextShadow: base.TextShadow,
	}
}

func renderKeyword(seg Segment, spec KeywordSpec, base BaseStyle, target RenderTarget) Fragment {
	size := base.fontSize() * spec.scale()
	kw := &KeywordFragment{
		Token: seg.Key(),
		Shape: spec.Shape,
		Icon:  spec.Icon,
	}
	style := TextStyle{
		FontSize:   size,
		LineHeight: 1,
		Color:      spec.Color,
		FontWeight: spec.FontWeight,
		Opacity:    1,
		TextShadow: spec.TextShadow,
	}

	switch spec.Shape {
	case ShapeRightTriangle, ShapeDiamond:
		kw.Outline = outlineFor(spec.Shape, spec.DisplayText)
		style.BackgroundColor = spec.BackgroundColor
		if style.TextShadow == "" {
			style.TextShadow = "none"
		}
	case ShapeImagePrefixed:
		kw.IconSize = base.fontSize()
		if style.Color == "" {
			style.Color = base.Color
		}
		if style.TextShadow == "" {
			style.TextShadow = base.TextShadow
		}
		if target == TargetRasterized {
			kw.Box = rasterBox(size)
		}
	default:
		style.BackgroundColor = spec.BackgroundColor
		style.BorderRadius = spec.BorderRadius
		style.Padding = spec.Padding
		style.TextShadow = "none"
		if target == TargetRasterized {
			kw.Box = rasterBox(size)
		}
	}

	return Fragment{
		Kind:    FragmentKeyword,
		Text:    spec.DisplayText,
		Raw:     seg.Raw,
		Style:   style,
		Keyword: kw,
	}
}

// PlainText returns the displayed text of lines joined with newlines.
func PlainText(lines []Line) string {
	var b strings.Builder
	for _, line := range lines {
		for _, frag := range line.Fragments {
			b.WriteString(frag.Text)
		}
		if line.Break {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// SourceText reassembles the source text from the fragments' raw substrings.
func SourceText(lines []Line) string {
	var b strings.Builder
	for _, line := range lines {
		for _, frag := range line.Fragments {
			b.WriteString(frag.Raw)
		}
		if line.Break {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
