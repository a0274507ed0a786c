package geometry

// Triangle is one STL facet. The stored normal is not kept; winding order
// of A, B, C defines the orientation used by the signed volume.
type Triangle struct {
	A, B, C Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(a, b, c Vector3) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// SignedVolume returns the signed volume of the tetrahedron spanned by the
// origin and the triangle: dot(A, (B-A) x (C-A)) / 6.
func (t Triangle) SignedVolume() float64 {
	cross := t.B.Sub(t.A).Cross(t.C.Sub(t.A))
	return t.A.Dot(cross) / 6.0
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Length() / 2.0
}
