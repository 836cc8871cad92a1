package cardfmt

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Shape selects how a keyword is drawn.
type Shape uint8

const (
	// ShapePlain is a rounded pill with background and text color.
	ShapePlain Shape = iota
	// ShapeRightTriangle is a right-pointing arrow outline.
	ShapeRightTriangle
	// ShapeDiamond is a hexagonal outline pointing both ways.
	ShapeDiamond
	// ShapeImagePrefixed is an inline icon followed by the label.
	ShapeImagePrefixed
)

var shapeNames = map[Shape]string{
	ShapePlain:         "plain",
	ShapeRightTriangle: "right-triangle",
	ShapeDiamond:       "diamond",
	ShapeImagePrefixed: "image-prefixed",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("shape(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	name, ok := shapeNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown shape %d", uint8(s))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	shape, ok := ParseShape(string(text))
	if !ok {
		return fmt.Errorf("unknown shape %q", string(text))
	}
	*s = shape
	return nil
}

// ParseShape returns the Shape for a name such as "diamond". The empty name is plain.
func ParseShape(name string) (Shape, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "plain", "pill":
		return ShapePlain, true
	case "right-triangle", "right", "triangle", "arrow":
		return ShapeRightTriangle, true
	case "diamond":
		return ShapeDiamond, true
	case "image-prefixed", "image", "icon":
		return ShapeImagePrefixed, true
	}
	return ShapePlain, false
}

// KeywordSpec describes how a keyword token is displayed.
type KeywordSpec struct {
	DisplayText     string  `json:"displayText"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	Color           string  `json:"color,omitempty"`
	Shape           Shape   `json:"shape"`
	Icon            string  `json:"icon,omitempty"`
	FontScale       float64 `json:"fontScale,omitempty"`
	FontWeight      string  `json:"fontWeight,omitempty"`
	BorderRadius    string  `json:"borderRadius,omitempty"`
	Padding         string  `json:"padding,omitempty"`
	TextShadow      string  `json:"textShadow,omitempty"`
}

func (k KeywordSpec) scale() float64 {
	if k.FontScale <= 0 {
		return 1
	}
	return k.FontScale
}

// StylePatch is a shallow update to a KeywordSpec. Nil fields are left unchanged.
type StylePatch struct {
	DisplayText     *string
	BackgroundColor *string
	Color           *string
	Shape           *Shape
	Icon            *string
	FontScale       *float64
	FontWeight      *string
	BorderRadius    *string
	Padding         *string
	TextShadow      *string
}

func (p StylePatch) apply(spec KeywordSpec) KeywordSpec {
	if p.DisplayText != nil {
		spec.DisplayText = *p.DisplayText
	}
	if p.BackgroundColor != nil {
		spec.BackgroundColor = *p.BackgroundColor
	}
	if p.Color != nil {
		spec.Color = *p.Color
	}
	if p.Shape != nil {
		spec.Shape = *p.Shape
	}
	if p.Icon != nil {
		spec.Icon = *p.Icon
	}
	if p.FontScale != nil {
		spec.FontScale = *p.FontScale
	}
	if p.FontWeight != nil {
		spec.FontWeight = *p.FontWeight
	}
	if p.BorderRadius != nil {
		spec.BorderRadius = *p.BorderRadius
	}
	if p.Padding != nil {
		spec.Padding = *p.Padding
	}
	if p.TextShadow != nil {
		spec.TextShadow = *p.TextShadow
	}
	return spec
}

// Registry maps keyword tokens such as "%onplay%" to their display spec.
// Tokens are matched case-insensitively. A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]KeywordSpec
	snap  *snapshot
}

// snapshot is an immutable view of a registry revision: the specs and the
// scanner pattern compiled from them.
type snapshot struct {
	specs   map[string]KeywordSpec
	pattern *regexp.Regexp
}

func (s *snapshot) lookup(raw string) (KeywordSpec, bool) {
	spec, ok := s.specs[strings.ToLower(raw)]
	return spec, ok
}

// NewRegistry returns a registry holding the built-in keywords.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	for token, spec := range builtinKeywords {
		r.specs[token] = spec
	}
	return r
}

// NewEmptyRegistry returns a registry with no keywords.
func NewEmptyRegistry() *Registry {
	return &Registry{specs: make(map[string]KeywordSpec)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used when no registry is supplied.
func Default() *Registry {
	return defaultRegistry
}

// AddCustomKeyword inserts or overwrites the spec for token. The spec is not validated.
func (r *Registry) AddCustomKeyword(token string, spec KeywordSpec) {
	key := strings.ToLower(token)
	if key == "" {
		return
	}
	r.mu.Lock()
	r.specs[key] = spec
	r.snap = nil
	r.mu.Unlock()
}

// UpdateKeywordStyle merges patch into the existing spec for token. Unknown tokens are ignored.
func (r *Registry) UpdateKeywordStyle(token string, patch StylePatch) {
	key := strings.ToLower(token)
	r.mu.Lock()
	defer r.mu.Unlock()
	spec, ok := r.specs[key]
	if !ok {
		return
	}
	r.specs[key] = patch.apply(spec)
	r.snap = nil
}

// Lookup returns the spec registered for token.
func (r *Registry) Lookup(token string) (KeywordSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[strings.ToLower(token)]
	return spec, ok
}

// Tokens returns the registered tokens in sorted order.
func (r *Registry) Tokens() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tokens := make([]string, 0, len(r.specs))
	for token := range r.specs {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// Len returns the number of registered keywords.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.specs)
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := NewEmptyRegistry()
	for token, spec := range r.specs {
		c.specs[token] = spec
	}
	return c
}

func (r *Registry) snapshot() *snapshot {
	r.mu.RLock()
	snap := r.snap
	r.mu.RUnlock()
	if snap != nil {
		return snap
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snap != nil {
		return r.snap
	}
	specs := make(map[string]KeywordSpec, len(r.specs))
	for token, spec := range r.specs {
		specs[token] = spec
	}
	r.snap = &snapshot{specs: specs, pattern: compilePattern(specs)}
	return r.snap
}

// AddCustomKeyword adds a keyword to the default registry.
func AddCustomKeyword(token string, spec KeywordSpec) {
	defaultRegistry.AddCustomKeyword(token, spec)
}

// UpdateKeywordStyle patches a keyword in the default registry.
func UpdateKeywordStyle(token string, patch StylePatch) {
	defaultRegistry.UpdateKeywordStyle(token, patch)
}
