package cardfmt

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func renderTerminal(t *testing.T, text string, width int, boring bool) string {
	t.Helper()
	var out bytes.Buffer
	lines := Parse(text, BaseStyle{FontSize: 16}, WithRegistry(NewRegistry()))
	if err := RenderTerminal(TerminalRequest{Writer: &out, Lines: lines, Width: width, Boring: boring}); err != nil {
		t.Fatalf("RenderTerminal: %v", err)
	}
	return out.String()
}

func TestRenderTerminalBoring(t *testing.T) {
	got := renderTerminal(t, "Pay ^2^ to draw *two*.\n%attacker% %defender% %tap%", 0, true)
	want := "Pay  2  to draw two.\n Attacker ▶ ◀ Defender ▶ ⟲ Tap\n"
	if got != want {
		t.Fatalf("unexpected boring output:\n%q\n%q", got, want)
	}
}

func TestRenderTerminalColors(t *testing.T) {
	got := renderTerminal(t, "*bold* %onplay%", 0, false)
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI sequences, got %q", got)
	}
	if plain := stripANSI(got); plain != "bold  On Play \n" {
		t.Fatalf("unexpected plain text %q", plain)
	}
}

func TestRenderTerminalWraps(t *testing.T) {
	text := "Whenever this card attacks, pay ^1^ and draw *two* cards, then discard $one$ card."
	for width := 20; width <= 60; width += 10 {
		out := renderTerminal(t, text, width, false)
		for i, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
			if ansi.PrintableRuneWidth(line) > width {
				t.Fatalf("width %d: line %d too wide: %q", width, i+1, stripANSI(line))
			}
		}
	}
}

func TestRenderTerminalRequiresWriter(t *testing.T) {
	if err := RenderTerminal(TerminalRequest{}); err == nil {
		t.Fatalf("expected error without writer")
	}
}
