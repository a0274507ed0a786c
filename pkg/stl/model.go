package stl

import (
	"github.com/philipparndt/powdercalc/pkg/geometry"
)

// Model represents a decoded STL file
type Model struct {
	Name      string
	Size      int64
	Triangles []geometry.Triangle
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.A)
		bbox.Extend(triangle.B)
		bbox.Extend(triangle.C)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model in mm²
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}
