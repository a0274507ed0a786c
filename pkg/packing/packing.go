// Package packing computes how many copies of a box-bounded object fit in a
// printer bed when laid out on a regular grid.
//
// Copies keep WallMargin from the bed walls in X and Y and ObjectSpacing from
// each other on every axis. Z has no margin: the first layer of copies sits
// on the bed floor and the stack may reach the full build height. An object
// that does not fit is reported as data (FitsInPrinter false, no positions),
// never as an error.
package packing

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/powdercalc/pkg/printer"
)

// NotApplicable is the arrangement of an object that fits nowhere on the bed.
const NotApplicable = "N/A"

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid packing parameters")

// Params are the clearances shared by every packing computation, in mm.
type Params struct {
	WallMargin    float64 `json:"wall_margin" yaml:"wall_margin"`
	ObjectSpacing float64 `json:"object_spacing" yaml:"object_spacing"`
}

// DefaultParams returns a 10mm wall margin and 15mm object spacing
func DefaultParams() Params {
	return Params{WallMargin: 10, ObjectSpacing: 15}
}

// Validate requires both clearances to be positive finite numbers
func (p Params) Validate() error {
	if !(p.WallMargin > 0) || math.IsInf(p.WallMargin, 0) {
		return fmt.Errorf("%w: wall margin %v must be > 0", ErrInvalidParams, p.WallMargin)
	}
	if !(p.ObjectSpacing > 0) || math.IsInf(p.ObjectSpacing, 0) {
		return fmt.Errorf("%w: object spacing %v must be > 0", ErrInvalidParams, p.ObjectSpacing)
	}
	return nil
}

// Box is the oriented bounding box of one copy.
type Box struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// Result describes the grid of copies for one printer.
type Result struct {
	FitsInPrinter bool `json:"fits_in_printer"`
	// Rotated is set when the copies are turned 90° in the XY plane.
	Rotated      bool    `json:"rotated"`
	XCount       int     `json:"x_count"`
	YCount       int     `json:"y_count"`
	ZCount       int     `json:"z_count"`
	TotalObjects int     `json:"total_objects"`
	Arrangement  string  `json:"arrangement"`
	TotalHeight  float64 `json:"total_height"`
	PrintTime    float64 `json:"print_time_seconds"`
}

// Position is the minimum corner of one copy in bed coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// grid is the fit and count computation shared by Pack and Positions.
type grid struct {
	fitsXY  bool
	rotated bool
	cell    Box // object after the optional rotation
	x, y, z int
	height  float64
	fitsZ   bool
}

func arrange(obj Box, p printer.Profile, params Params) grid {
	availableWidth := p.Width - 2*params.WallMargin
	availableDepth := p.Depth - 2*params.WallMargin
	fits := func(w, d float64) bool {
		return w <= availableWidth && d <= availableDepth
	}

	g := grid{cell: obj}
	if params.Validate() != nil {
		return g
	}
	switch {
	case fits(obj.Width, obj.Depth):
	case fits(obj.Depth, obj.Width):
		g.rotated = true
		g.cell.Width, g.cell.Depth = obj.Depth, obj.Width
	default:
		return g
	}
	g.fitsXY = true

	s := params.ObjectSpacing
	g.x = int(math.Floor((availableWidth + s) / (g.cell.Width + s)))
	g.y = int(math.Floor((availableDepth + s) / (g.cell.Depth + s)))

	if g.cell.Height <= p.Height {
		g.z = max(1, int(math.Floor((p.Height+s)/(g.cell.Height+s))))
		g.height = (g.cell.Height+s)*float64(g.z) - s
	}
	g.fitsZ = g.z > 0 && g.height <= p.Height
	return g
}

// Pack computes the grid of copies of obj that fit in p. Params that fail
// Validate fit nothing.
func Pack(obj Box, p printer.Profile, params Params) Result {
	return arrange(obj, p, params).result(p)
}

func (g grid) result(p printer.Profile) Result {
	if !g.fitsXY {
		return Result{Arrangement: NotApplicable}
	}

	r := Result{
		Rotated:     g.rotated,
		XCount:      g.x,
		YCount:      g.y,
		ZCount:      g.z,
		Arrangement: fmt.Sprintf("%d × %d × %d", g.x, g.y, g.z),
		TotalHeight: g.height,
	}
	if !g.fitsZ {
		// counts are kept for diagnostics
		return r
	}

	r.FitsInPrinter = true
	r.TotalObjects = g.x * g.y * g.z
	r.PrintTime = printer.PrintTime(r.TotalHeight, p.LayerTime)
	return r
}

// Positions returns the minimum corner of every copy Pack would place, z
// outermost, then y, then x. The slice is empty, never nil, when nothing fits.
func Positions(obj Box, p printer.Profile, params Params) []Position {
	return arrange(obj, p, params).positions(params)
}

func (g grid) positions(params Params) []Position {
	if !g.fitsXY || !g.fitsZ {
		return []Position{}
	}

	s := params.ObjectSpacing
	positions := make([]Position, 0, g.x*g.y*g.z)
	for zi := 0; zi < g.z; zi++ {
		z := float64(zi) * (g.cell.Height + s)
		for yi := 0; yi < g.y; yi++ {
			y := params.WallMargin + float64(yi)*(g.cell.Depth+s)
			for xi := 0; xi < g.x; xi++ {
				x := params.WallMargin + float64(xi)*(g.cell.Width+s)
				positions = append(positions, Position{X: x, Y: y, Z: z})
			}
		}
	}
	return positions
}

// Plan is a packing result together with the placed copies.
type Plan struct {
	Result    Result     `json:"result"`
	Cell      Box        `json:"cell"`
	Positions []Position `json:"positions"`
}

// Layout computes Pack and Positions in one pass. Cell is the copy's box
// after any in-plane rotation.
func Layout(obj Box, p printer.Profile, params Params) Plan {
	g := arrange(obj, p, params)
	return Plan{
		Result:    g.result(p),
		Cell:      g.cell,
		Positions: g.positions(params),
	}
}
