package stl

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/philipparndt/powdercalc/pkg/geometry"
)

// Encode writes triangles as a binary STL file. Normals are computed from
// the winding; the attribute byte count is zero.
func Encode(w io.Writer, name string, triangles []geometry.Triangle) error {
	if len(triangles) > MaxTriangles {
		return fmt.Errorf("%w: %d triangles", ErrTooLarge, len(triangles))
	}

	var header [dataOffset]byte
	copy(header[:HeaderSize], name)
	binary.LittleEndian.PutUint32(header[countOffset:], uint32(len(triangles)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	var rec [RecordSize]byte
	for i, t := range triangles {
		n := t.B.Sub(t.A).Cross(t.C.Sub(t.A))
		if l := n.Length(); l > 0 {
			n = geometry.NewVector3(n.X/l, n.Y/l, n.Z/l)
		}
		for j, v := range []geometry.Vector3{n, t.A, t.B, t.C} {
			putVertex(rec[j*12:], v)
		}
		if _, err := w.Write(rec[:]); err != nil {
			return fmt.Errorf("write triangle %d: %w", i, err)
		}
	}
	return nil
}

func putVertex(b []byte, v geometry.Vector3) {
	binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(float32(v.Z)))
}
