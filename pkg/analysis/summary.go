package analysis

import (
	"fmt"

	"github.com/philipparndt/powdercalc/pkg/geometry"
	"github.com/philipparndt/powdercalc/pkg/stl"
)

// Summary contains the measurements of an STL model
type Summary struct {
	Name          string
	FileSize      int64
	TriangleCount int
	BoundingBox   geometry.BoundingBox
	Extents       geometry.Extents
	SurfaceArea   float64 // mm²
	VolumeCm3     float64
	// BoxFill is the share of the bounding box occupied by the mesh.
	BoxFill float64
}

// Analyze measures a decoded model
func Analyze(model *stl.Model) *Summary {
	bbox := model.BoundingBox()
	s := &Summary{
		Name:          model.Name,
		FileSize:      model.Size,
		TriangleCount: model.TriangleCount(),
		BoundingBox:   bbox,
		Extents:       bbox.Extents(),
		SurfaceArea:   model.SurfaceArea(),
		VolumeCm3:     VolumeCm3(model.Triangles),
	}
	if boxCm3 := s.Extents.Volume() / mm3PerCm3; boxCm3 > 0 {
		s.BoxFill = s.VolumeCm3 / boxCm3
	}
	return s
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
