package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"pkt.systems/cardfmt"
)

func TestOpenInputFileAndURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	reader, closer, err := openInputs([]string{path})
	if err != nil {
		t.Fatalf("openInputs file: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "hello" {
		t.Fatalf("unexpected file content: %q", string(buf))
	}

	fileURL := "file://" + path
	reader, closer, err = openInputs([]string{fileURL})
	if err != nil {
		t.Fatalf("openInputs file URL: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "hello" {
		t.Fatalf("unexpected file URL content: %q", string(buf))
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("stream"))
	}))
	defer srv.Close()
	reader, closer, err = openInputs([]string{srv.URL})
	if err != nil {
		t.Fatalf("openInputs http: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "stream" {
		t.Fatalf("unexpected http content: %q", string(buf))
	}
}

func TestOpenInputsConcatenates(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(first, []byte("one "), 0o644); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := os.WriteFile(second, []byte("two"), 0o644); err != nil {
		t.Fatalf("write second: %v", err)
	}
	reader, closer, err := openInputs([]string{first, second})
	if err != nil {
		t.Fatalf("openInputs concat: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "one two" {
		t.Fatalf("unexpected concatenated content: %q", string(buf))
	}
}

func testOptions() options {
	return options{format: "ansi", fontSize: 16, width: 200}
}

func TestRunRendersPlainPreview(t *testing.T) {
	var out bytes.Buffer
	code, err := run(strings.NewReader("Pay ^2^ to draw *two* cards.\n%onplay% gain $1$.\n"), &out, cardfmt.NewRegistry(), testOptions(), zerolog.Nop())
	if err != nil || code != 0 {
		t.Fatalf("run: code=%d err=%v", code, err)
	}
	got := out.String()
	if got != "Pay  2  to draw two cards.\n On Play  gain 1.\n" {
		t.Fatalf("unexpected preview: %q", got)
	}
}

func TestRunJSON(t *testing.T) {
	opts := testOptions()
	opts.format = "json"
	opts.export = true
	var out bytes.Buffer
	code, err := run(strings.NewReader("%ONPLAY% now"), &out, cardfmt.NewRegistry(), opts, zerolog.Nop())
	if err != nil || code != 0 {
		t.Fatalf("run: code=%d err=%v", code, err)
	}
	var lines []struct {
		Fragments []struct {
			Kind    string `json:"kind"`
			Text    string `json:"text"`
			Keyword *struct {
				Shape string `json:"shape"`
				Box   *struct {
					Height float64 `json:"height"`
				} `json:"box"`
			} `json:"keyword"`
		} `json:"fragments"`
	}
	if err := json.Unmarshal(out.Bytes(), &lines); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out.String())
	}
	if len(lines) != 1 || len(lines[0].Fragments) != 2 {
		t.Fatalf("unexpected structure: %s", out.String())
	}
	kw := lines[0].Fragments[0]
	if kw.Kind != "keyword" || kw.Text != "On Play" {
		t.Fatalf("unexpected keyword fragment: %+v", kw)
	}
	if kw.Keyword == nil || kw.Keyword.Shape != "plain" || kw.Keyword.Box == nil {
		t.Fatalf("expected plain keyword with export box: %s", out.String())
	}
	if kw.Keyword.Box.Height != 19 {
		t.Fatalf("expected box height 19, got %v", kw.Keyword.Box.Height)
	}
}

func TestRunValidateOnly(t *testing.T) {
	opts := testOptions()
	opts.validateOnly = true
	var out bytes.Buffer
	code, err := run(strings.NewReader("*bold and ^3"), &out, cardfmt.NewRegistry(), opts, zerolog.Nop())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	want := cardfmt.MsgUnmatchedBold + "\n" + cardfmt.MsgUnmatchedCost + "\n"
	if out.String() != want {
		t.Fatalf("unexpected problems: %q", out.String())
	}

	out.Reset()
	code, err = run(strings.NewReader("*bold*"), &out, cardfmt.NewRegistry(), opts, zerolog.Nop())
	if err != nil || code != 0 || out.Len() != 0 {
		t.Fatalf("expected clean validation, code=%d err=%v out=%q", code, err, out.String())
	}
}

func TestRunStrictRefusesUnbalanced(t *testing.T) {
	opts := testOptions()
	opts.strict = true
	var out bytes.Buffer
	code, err := run(strings.NewReader("$oops"), &out, cardfmt.NewRegistry(), opts, zerolog.Nop())
	if err == nil || code != 1 {
		t.Fatalf("expected strict failure, code=%d err=%v", code, err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestRunRejectsBinary(t *testing.T) {
	var out bytes.Buffer
	code, err := run(bytes.NewReader([]byte{'a', 0x00}), &out, cardfmt.NewRegistry(), testOptions(), zerolog.Nop())
	if err == nil || code != 1 {
		t.Fatalf("expected binary input error, code=%d err=%v", code, err)
	}
}

func TestRunUnknownFormat(t *testing.T) {
	opts := testOptions()
	opts.format = "svg"
	var out bytes.Buffer
	code, err := run(strings.NewReader("text"), &out, cardfmt.NewRegistry(), opts, zerolog.Nop())
	if err == nil || code != 2 {
		t.Fatalf("expected format error, code=%d err=%v", code, err)
	}
}

func TestPrintKeywordsIncludesCustom(t *testing.T) {
	reg := cardfmt.NewRegistry()
	reg.AddCustomKeyword("%Rush%", cardfmt.KeywordSpec{DisplayText: "Rush", Shape: cardfmt.ShapeRightTriangle})
	var out bytes.Buffer
	printKeywords(&out, reg)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != reg.Len() {
		t.Fatalf("expected %d lines, got %d", reg.Len(), len(lines))
	}
	found := false
	for _, line := range lines {
		if strings.HasPrefix(line, "%rush%") && strings.Contains(line, "right-triangle") && strings.HasSuffix(line, "Rush") {
			found = true
		}
	}
	if !found {
		t.Fatalf("custom keyword missing from listing:\n%s", out.String())
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	if _, err := newLogger(io.Discard, "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := newLogger(io.Discard, "debug"); err != nil {
		t.Fatalf("newLogger(debug): %v", err)
	}
}
