// Package render turns generated meshes into triangle streams and writes them
// out as STL, OBJ, preview images or GPU ready vertex buffers.
package render

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a 3D triangle.
type Triangle3 [3]r3.Vec

// Renderer streams triangles. ReadTriangles returns io.EOF once
// all triangles have been read.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// Normal returns the unit normal of the triangle following the right hand rule.
// Degenerate triangles have a zero normal.
func (t Triangle3) Normal() r3.Vec {
	n := r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
	if r3.Norm2(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}

// Degenerate returns true if any two vertices of the triangle are within tol of each other.
func (t Triangle3) Degenerate(tol float64) bool {
	return equalWithin(t[0], t[1], tol) ||
		equalWithin(t[1], t[2], tol) ||
		equalWithin(t[2], t[0], tol)
}

func equalWithin(a, b r3.Vec, tol float64) bool {
	return r3.Norm2(r3.Sub(a, b)) <= tol*tol
}
