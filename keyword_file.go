package cardfmt

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// keywordFile is the TOML layout accepted by LoadKeywords:
//
//	[keywords."%test%"]
//	display = "TEST"
//	background = "#000"
//	color = "#fff"
//	shape = "diamond"
//
//	[styles."%onplay%"]
//	background = "#111"
type keywordFile struct {
	Keywords map[string]keywordEntry `toml:"keywords"`
	Styles   map[string]patchEntry   `toml:"styles"`
}

type keywordEntry struct {
	Display      string  `toml:"display"`
	Background   string  `toml:"background"`
	Color        string  `toml:"color"`
	Shape        Shape   `toml:"shape"`
	Icon         string  `toml:"icon"`
	Scale        float64 `toml:"scale"`
	FontWeight   string  `toml:"font_weight"`
	BorderRadius string  `toml:"border_radius"`
	Padding      string  `toml:"padding"`
	TextShadow   string  `toml:"text_shadow"`
}

type patchEntry struct {
	Display      *string  `toml:"display"`
	Background   *string  `toml:"background"`
	Color        *string  `toml:"color"`
	Shape        *Shape   `toml:"shape"`
	Icon         *string  `toml:"icon"`
	Scale        *float64 `toml:"scale"`
	FontWeight   *string  `toml:"font_weight"`
	BorderRadius *string  `toml:"border_radius"`
	Padding      *string  `toml:"padding"`
	TextShadow   *string  `toml:"text_shadow"`
}

func (e keywordEntry) spec() KeywordSpec {
	return KeywordSpec{
		DisplayText:     e.Display,
		BackgroundColor: e.Background,
		Color:           e.Color,
		Shape:           e.Shape,
		Icon:            e.Icon,
		FontScale:       e.Scale,
		FontWeight:      e.FontWeight,
		BorderRadius:    e.BorderRadius,
		Padding:         e.Padding,
		TextShadow:      e.TextShadow,
	}
}

func (e patchEntry) patch() StylePatch {
	return StylePatch{
		DisplayText:     e.Display,
		BackgroundColor: e.Background,
		Color:           e.Color,
		Shape:           e.Shape,
		Icon:            e.Icon,
		FontScale:       e.Scale,
		FontWeight:      e.FontWeight,
		BorderRadius:    e.BorderRadius,
		Padding:         e.Padding,
		TextShadow:      e.TextShadow,
	}
}

// LoadKeywords decodes a TOML keyword file from r and applies it to reg.
// Entries under [keywords] are added, entries under [styles] patch existing
// keywords and are skipped for unknown tokens. Nothing is applied when
// decoding fails.
func LoadKeywords(reg *Registry, r io.Reader) error {
	if reg == nil {
		reg = defaultRegistry
	}
	var file keywordFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return fmt.Errorf("decode keywords: %w", err)
	}
	for token, entry := range file.Keywords {
		reg.AddCustomKeyword(token, entry.spec())
	}
	for token, entry := range file.Styles {
		reg.UpdateKeywordStyle(token, entry.patch())
	}
	return nil
}

// LoadKeywordFile applies the TOML keyword file at path to reg.
func LoadKeywordFile(reg *Registry, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := LoadKeywords(reg, f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
