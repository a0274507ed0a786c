// Package orientation chooses how an object is laid on the printer bed.
//
// Two layouts are computed from the bounding box extents alone: Flat puts
// the shortest extent on Z, Vertical puts the longest extent on Z. A Result
// carries both and a selection tag; switching layouts never recomputes.
package orientation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/philipparndt/powdercalc/pkg/geometry"
	"github.com/philipparndt/powdercalc/pkg/printer"
)

// ErrUnknownType is returned by ParseType for anything but flat or vertical.
var ErrUnknownType = errors.New("unknown orientation")

// Type names a layout.
type Type string

const (
	Flat     Type = "flat"
	Vertical Type = "vertical"
)

// ParseType parses "flat" or "vertical"
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case Flat:
		return Flat, nil
	case Vertical:
		return Vertical, nil
	}
	return "", fmt.Errorf("%w %q (want %q or %q)", ErrUnknownType, s, Flat, Vertical)
}

// Candidate is one oriented layout of the object.
type Candidate struct {
	Width     float64 `json:"width"`
	Depth     float64 `json:"depth"`
	Height    float64 `json:"height"`
	PrintTime float64 `json:"print_time_seconds"`
	// Scaled is set when the vertical layout was shrunk to the tallest
	// build height. The physical object does not shrink, so the footprint
	// of a scaled candidate is an underestimate.
	Scaled bool `json:"scaled,omitempty"`
}

// Extents returns the candidate's box
func (c Candidate) Extents() geometry.Extents {
	return geometry.Extents{Width: c.Width, Depth: c.Depth, Height: c.Height}
}

// Result holds both layouts and which one is selected.
type Result struct {
	Type     Type      `json:"type"`
	Flat     Candidate `json:"flat"`
	Vertical Candidate `json:"vertical"`
}

// Active returns the selected candidate
func (r Result) Active() Candidate {
	if r.Type == Vertical {
		return r.Vertical
	}
	return r.Flat
}

// With returns a copy of r with t selected
func (r Result) With(t Type) Result {
	r.Type = t
	return r
}

// Select computes both layouts for ext. tallestHeight bounds the vertical
// layout; layerTime is the seconds per layer used for both print times.
// Flat is selected.
func Select(ext geometry.Extents, tallestHeight, layerTime float64) Result {
	dims := []float64{ext.Width, ext.Depth, ext.Height}
	slices.SortFunc(dims, func(a, b float64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})
	maxDim, midDim, minDim := dims[0], dims[1], dims[2]

	vertical := Candidate{Width: minDim, Depth: midDim, Height: maxDim}
	if maxDim > tallestHeight {
		scale := tallestHeight / maxDim
		vertical = Candidate{
			Width:  minDim * scale,
			Depth:  midDim * scale,
			Height: tallestHeight,
			Scaled: true,
		}
	}
	vertical.PrintTime = printer.PrintTime(vertical.Height, layerTime)

	flat := Candidate{Width: maxDim, Depth: midDim, Height: minDim}
	flat.PrintTime = printer.PrintTime(flat.Height, layerTime)

	return Result{Type: Flat, Flat: flat, Vertical: vertical}
}

// ForProfiles selects with the tallest profile's height and layer time.
// An empty list leaves the vertical layout unbounded.
func ForProfiles(ext geometry.Extents, profiles []printer.Profile) Result {
	tallest, ok := printer.Tallest(profiles)
	if !ok {
		return Select(ext, max(ext.Width, ext.Depth, ext.Height), 0)
	}
	return Select(ext, tallest.Height, tallest.LayerTime)
}
