// Package analysis derives scalar facts from decoded STL triangles.
package analysis

import (
	"context"
	"math"
	"runtime"

	"github.com/philipparndt/powdercalc/pkg/geometry"
	"github.com/philipparndt/powdercalc/pkg/stl"
)

const mm3PerCm3 = 1000.0

// VolumeCm3 computes the enclosed volume of a closed, consistently wound
// mesh in cm³ using signed tetrahedron summation. Empty input yields 0.
func VolumeCm3(triangles []geometry.Triangle) float64 {
	total := 0.0
	for _, t := range triangles {
		total += t.SignedVolume()
	}
	return math.Abs(total) / mm3PerCm3
}

// VolumeCm3Context is VolumeCm3 computed in stl.ChunkSize batches. fn, when
// non-nil, is called after every batch with the number of triangles summed.
func VolumeCm3Context(ctx context.Context, triangles []geometry.Triangle, fn func(done, total int)) (float64, error) {
	total := 0.0
	n := len(triangles)
	for start := 0; start < n; start += stl.ChunkSize {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		end := min(start+stl.ChunkSize, n)
		for _, t := range triangles[start:end] {
			total += t.SignedVolume()
		}
		if fn != nil {
			fn(end, n)
		}
		if end < n && n > stl.YieldThreshold {
			runtime.Gosched()
		}
	}
	return math.Abs(total) / mm3PerCm3, nil
}

// Extents returns the axis-aligned bounding box size of the triangles
func Extents(triangles []geometry.Triangle) geometry.Extents {
	bbox := geometry.NewBoundingBox()
	for _, t := range triangles {
		bbox.Extend(t.A)
		bbox.Extend(t.B)
		bbox.Extend(t.C)
	}
	return bbox.Extents()
}
