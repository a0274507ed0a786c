package geometry

import (
	"fmt"
	"math"
)

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewBoundingBox creates an empty bounding box that any point will extend
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vector3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Vector3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// Empty reports whether no point was added yet
func (b BoundingBox) Empty() bool {
	return b.Min.X > b.Max.X
}

// Extents returns the size of the box, zero for an empty box
func (b BoundingBox) Extents() Extents {
	if b.Empty() {
		return Extents{}
	}
	size := b.Max.Sub(b.Min)
	return Extents{Width: size.X, Depth: size.Y, Height: size.Z}
}

// Extents is the (width, depth, height) size of an axis-aligned box in mm.
type Extents struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// Volume returns width * depth * height
func (e Extents) Volume() float64 {
	return e.Width * e.Depth * e.Height
}

func (e Extents) String() string {
	return fmt.Sprintf("%.1f × %.1f × %.1f", e.Width, e.Depth, e.Height)
}
