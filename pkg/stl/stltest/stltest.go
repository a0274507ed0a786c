// Package stltest builds in-memory meshes and STL buffers for tests.
package stltest

import (
	"bytes"

	"github.com/philipparndt/powdercalc/pkg/geometry"
	"github.com/philipparndt/powdercalc/pkg/stl"
)

// Box returns the 12 outward-wound triangles of an axis-aligned box with
// its minimum corner at origin.
func Box(origin geometry.Vector3, w, d, h float64) []geometry.Triangle {
	v := func(x, y, z float64) geometry.Vector3 {
		return origin.Add(geometry.NewVector3(x, y, z))
	}
	p000, p100, p110, p010 := v(0, 0, 0), v(w, 0, 0), v(w, d, 0), v(0, d, 0)
	p001, p101, p111, p011 := v(0, 0, h), v(w, 0, h), v(w, d, h), v(0, d, h)

	quad := func(a, b, c, d geometry.Vector3) []geometry.Triangle {
		return []geometry.Triangle{geometry.NewTriangle(a, b, c), geometry.NewTriangle(a, c, d)}
	}

	var tris []geometry.Triangle
	tris = append(tris, quad(p000, p010, p110, p100)...) // bottom
	tris = append(tris, quad(p001, p101, p111, p011)...) // top
	tris = append(tris, quad(p000, p100, p101, p001)...) // front
	tris = append(tris, quad(p010, p011, p111, p110)...) // back
	tris = append(tris, quad(p000, p001, p011, p010)...) // left
	tris = append(tris, quad(p100, p110, p111, p101)...) // right
	return tris
}

// Cube returns a cube of the given edge length at the origin
func Cube(size float64) []geometry.Triangle {
	return Box(geometry.Vector3{}, size, size, size)
}

// Binary encodes triangles as a binary STL buffer
func Binary(triangles []geometry.Triangle) []byte {
	var buf bytes.Buffer
	if err := stl.Encode(&buf, "stltest", triangles); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
