package cardfmt

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"pkt.systems/cardfmt/internal/swatch"
)

const (
	iconGlyph     = "⟲"
	arrowGlyph    = "▶"
	arrowBackward = "◀"
)

// TerminalRequest describes a terminal preview of parsed lines.
type TerminalRequest struct {
	Writer io.Writer
	Lines  []Line
	// Width wraps each line to at most this many cells; 0 disables wrapping.
	Width int
	// Boring drops all colors and attributes.
	Boring bool
}

// RenderTerminal writes an ANSI preview of req.Lines to req.Writer.
func RenderTerminal(req TerminalRequest) error {
	if req.Writer == nil {
		return errors.New("writer is required")
	}
	r := lipgloss.NewRenderer(req.Writer)
	if req.Boring {
		r.SetColorProfile(termenv.Ascii)
	} else {
		r.SetColorProfile(termenv.TrueColor)
	}

	var b strings.Builder
	for _, line := range req.Lines {
		var lb strings.Builder
		for _, frag := range line.Fragments {
			lb.WriteString(terminalFragment(r, frag))
		}
		out := lb.String()
		if req.Width > 0 {
			out = wordwrap.String(out, req.Width)
		}
		b.WriteString(out)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(req.Writer, b.String())
	return err
}

func terminalFragment(r *lipgloss.Renderer, frag Fragment) string {
	st := r.NewStyle()
	if fg, ok := swatch.Normalize(frag.Style.Color); ok {
		st = st.Foreground(lipgloss.Color(fg))
	}
	if frag.Style.FontWeight == "bold" {
		st = st.Bold(true)
	}

	switch frag.Kind {
	case FragmentItalic:
		return st.Italic(true).Faint(true).Render(frag.Text)
	case FragmentCost:
		return st.Background(lipgloss.Color(costBackground)).Render(" " + frag.Text + " ")
	case FragmentKeyword:
		return terminalKeyword(st, frag)
	}
	return st.Render(frag.Text)
}

func terminalKeyword(st lipgloss.Style, frag Fragment) string {
	shape := ShapePlain
	if frag.Keyword != nil {
		shape = frag.Keyword.Shape
	}
	bg, hasBG := swatch.Normalize(frag.Style.BackgroundColor)
	if hasBG {
		st = st.Background(lipgloss.Color(bg))
		if _, ok := swatch.Normalize(frag.Style.Color); !ok {
			st = st.Foreground(lipgloss.Color(swatch.Contrast(bg)))
		}
	}

	switch shape {
	case ShapeImagePrefixed:
		return st.Render(iconGlyph + " " + frag.Text)
	case ShapeRightTriangle:
		return st.Render(" " + frag.Text + " " + arrowGlyph)
	case ShapeDiamond:
		return st.Render(arrowBackward + " " + frag.Text + " " + arrowGlyph)
	}
	return st.Render(" " + frag.Text + " ")
}
