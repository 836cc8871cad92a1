package cardfmt

import (
	"math"

	"github.com/rivo/uniseg"
)

const (
	outlineHeight    = 20
	outlineMinWidth  = 60
	outlineCharWidth = 8
	outlineInset     = 6

	rasterMinBoxHeight = 12
	rasterBoxRatio     = 1.35
	// Vertical offset applied to labels inside a fixed export box.
	rasterLabelNudge = -1
)

// Point is a vertex in outline coordinates (pixels, origin top-left).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline is the polygon behind a right-triangle or diamond keyword.
type Outline struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Points []Point `json:"points"`
	// PadLeft and PadRight keep the pointed ends clear of neighboring text.
	PadLeft  float64 `json:"padLeft"`
	PadRight float64 `json:"padRight"`
}

// FixedBox pins a keyword label to an explicit height for rasterized export.
type FixedBox struct {
	Height float64 `json:"height"`
	Nudge  float64 `json:"nudge"`
}

// outlineWidth sizes a shape to its label, counting user-perceived characters.
func outlineWidth(label string) float64 {
	w := uniseg.GraphemeClusterCount(label) * outlineCharWidth
	if w < outlineMinWidth {
		w = outlineMinWidth
	}
	return float64(w)
}

func outlineFor(shape Shape, label string) *Outline {
	w := outlineWidth(label)
	h := float64(outlineHeight)
	mid := h / 2
	top, bottom := 2.0, h-2
	switch shape {
	case ShapeRightTriangle:
		return &Outline{
			Width:  w,
			Height: h,
			Points: []Point{
				{outlineInset, top}, {w - outlineInset, top}, {w, mid},
				{w - outlineInset, bottom}, {outlineInset, bottom},
			},
			PadRight: 2,
		}
	case ShapeDiamond:
		return &Outline{
			Width:  w,
			Height: h,
			Points: []Point{
				{outlineInset, top}, {w - outlineInset, top}, {w, mid},
				{w - outlineInset, bottom}, {outlineInset, bottom}, {0, mid},
			},
			PadLeft:  2,
			PadRight: 2,
		}
	}
	return nil
}

func rasterBox(fontSize float64) *FixedBox {
	h := math.Round(fontSize * rasterBoxRatio)
	if h < rasterMinBoxHeight {
		h = rasterMinBoxHeight
	}
	return &FixedBox{Height: h, Nudge: rasterLabelNudge}
}
