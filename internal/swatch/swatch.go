// Package swatch normalizes CSS-style color values used in keyword specs.
package swatch

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Named CSS colors seen in keyword specs. Anything else must be hex.
var named = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"gold":    "#ffd700",
	"navy":    "#000080",
	"teal":    "#008080",
	"maroon":  "#800000",
	"crimson": "#dc143c",
}

// Normalize returns value as a lowercase "#rrggbb" string. It accepts the
// named colors above and #rgb or #rrggbb hex. ok is false for anything else,
// including the empty string.
func Normalize(value string) (hex string, ok bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", false
	}
	if h, found := named[v]; found {
		return h, true
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}

// Luminance returns the relative lightness of value in [0,1], or -1 when the
// color cannot be parsed.
func Luminance(value string) float64 {
	h, ok := Normalize(value)
	if !ok {
		return -1
	}
	c, err := colorful.Hex(h)
	if err != nil {
		return -1
	}
	l, _, _ := c.Lab()
	return l
}

// Contrast returns black or white, whichever reads better on background.
func Contrast(background string) string {
	if l := Luminance(background); l >= 0 && l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}
