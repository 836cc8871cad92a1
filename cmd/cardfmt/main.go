package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/cardfmt"
	"pkt.systems/version"
)

const (
	defaultWidth    = 80
	defaultFontSize = cardfmt.DefaultFontSize
)

func init() {
	version.SetDefaultModule("pkt.systems/cardfmt")
}

type options struct {
	format       string
	export       bool
	fontSize     float64
	lineHeight   float64
	color        string
	keywordFiles []string
	validateOnly bool
	strict       bool
	listKeywords bool
	width        int
	outPath      string
	boring       bool
	logLevel     string
}

func main() {
	var opts options
	flags := pflag.NewFlagSet("cardfmt", pflag.ExitOnError)
	flags.StringVarP(&opts.format, "format", "f", "ansi", "Output format: ansi|json")
	flags.BoolVar(&opts.export, "export", false, "Lay out keywords for rasterized export")
	flags.Float64Var(&opts.fontSize, "font-size", defaultFontSize, "Base font size in pixels")
	flags.Float64Var(&opts.lineHeight, "line-height", 0, "Base line height multiplier (0 inherits)")
	flags.StringVar(&opts.color, "color", "", "Base text color")
	flags.StringArrayVarP(&opts.keywordFiles, "keywords", "k", nil, "TOML keyword file (repeatable)")
	flags.BoolVar(&opts.validateOnly, "validate", false, "Only check delimiter balance")
	flags.BoolVar(&opts.strict, "strict", false, "Refuse to render text with unbalanced delimiters")
	flags.BoolVar(&opts.listKeywords, "list-keywords", false, "List registered keywords")
	flags.IntVarP(&opts.width, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&opts.outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVarP(&opts.boring, "boring", "b", false, "Generate non-ANSI output")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug|info|warn|error")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: cardfmt [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, ability text is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	logger, err := newLogger(os.Stderr, opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --log-level %q: %v\n", opts.logLevel, err)
		os.Exit(2)
	}

	reg := cardfmt.NewRegistry()
	for _, path := range opts.keywordFiles {
		if err := cardfmt.LoadKeywordFile(reg, normalizePath(path)); err != nil {
			fmt.Fprintf(os.Stderr, "load keywords: %v\n", err)
			os.Exit(1)
		}
		logger.Debug().Str("path", path).Int("keywords", reg.Len()).Msg("keyword file loaded")
	}

	writer, closeOut, err := resolveOutput(opts.outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	if opts.listKeywords {
		printKeywords(writer, reg)
		return
	}

	reader, closer, err := openInputs(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	code, err := run(reader, writer, reg, opts, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	if code != 0 {
		os.Exit(code)
	}
}

// run reads ability text from r and writes the requested output to w. It
// returns the process exit code.
func run(r io.Reader, w io.Writer, reg *cardfmt.Registry, opts options, logger zerolog.Logger) (int, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return 1, fmt.Errorf("read input: %w", err)
	}
	if err := cardfmt.ValidateInput(src); err != nil {
		return 1, fmt.Errorf("input: %w", err)
	}
	text := strings.TrimRight(strings.ReplaceAll(string(src), "\r\n", "\n"), "\n")

	problems := cardfmt.Validate(text)
	for _, p := range problems {
		logger.Warn().Msg(p)
	}
	if opts.validateOnly {
		for _, p := range problems {
			fmt.Fprintln(w, p)
		}
		if len(problems) > 0 {
			return 1, nil
		}
		return 0, nil
	}
	if opts.strict && len(problems) > 0 {
		return 1, fmt.Errorf("refusing to render: %s", strings.Join(problems, "; "))
	}

	base := cardfmt.BaseStyle{
		FontSize:   opts.fontSize,
		LineHeight: opts.lineHeight,
		Color:      opts.color,
	}
	lines := cardfmt.Parse(text, base, cardfmt.WithRegistry(reg), cardfmt.WithExport(opts.export))
	logger.Debug().Int("lines", len(lines)).Bool("export", opts.export).Msg("parsed")

	switch strings.ToLower(strings.TrimSpace(opts.format)) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(lines); err != nil {
			return 1, fmt.Errorf("encode json: %w", err)
		}
	case "", "ansi", "text":
		if err := cardfmt.RenderTerminal(cardfmt.TerminalRequest{
			Writer: w,
			Lines:  lines,
			Width:  resolveWidth(opts.width),
			Boring: opts.boring || !isTerminal(w),
		}); err != nil {
			return 1, fmt.Errorf("render: %w", err)
		}
	default:
		return 2, fmt.Errorf("unknown --format %q: expected ansi|json", opts.format)
	}
	return 0, nil
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), err
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: !isTerminal(w)}).
		Level(lvl).
		With().Timestamp().Logger(), nil
}

func printKeywords(w io.Writer, reg *cardfmt.Registry) {
	for _, token := range reg.Tokens() {
		spec, _ := reg.Lookup(token)
		fmt.Fprintf(w, "%-16s %-14s %s\n", token, spec.Shape, spec.DisplayText)
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

// multiInputReader concatenates sources, opening each lazily.
type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
