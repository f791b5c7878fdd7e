// Package meshcheck reports topological and geometric defects of a quad mesh.
package meshcheck

import (
	"fmt"
	"math"

	"github.com/soypat/wscrew"
	"github.com/soypat/wscrew/internal/d3"
	"github.com/soypat/wscrew/render"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// Report counts the defects found by Check.
type Report struct {
	// BoundaryEdges are edges used by a single face. Open caps of a
	// mesh are made of boundary edges.
	BoundaryEdges int
	// NonManifoldEdges are edges shared by more than two faces.
	NonManifoldEdges int
	// Coincident is the number of distinct vertex pairs closer than the tolerance.
	Coincident int
	// DegenerateFaces are faces with a triangle of zero area.
	DegenerateFaces int
}

// Manifold reports whether no edge is shared by more than two faces
// and no vertices or faces collapse.
func (r Report) Manifold() bool {
	return r.NonManifoldEdges == 0 && r.Coincident == 0 && r.DegenerateFaces == 0
}

func (r Report) String() string {
	return fmt.Sprintf("boundary=%d non-manifold=%d coincident=%d degenerate=%d",
		r.BoundaryEdges, r.NonManifoldEdges, r.Coincident, r.DegenerateFaces)
}

// Check inspects m. Vertices closer than tol are considered coincident.
func Check(m wscrew.Mesh, tol float64) Report {
	var r Report
	edges := make(map[[2]int]int, 2*len(m.Faces))
	for _, f := range m.Faces {
		for k := range f {
			e := [2]int{f[k], f[(k+1)%4]}
			if e[0] > e[1] {
				e[0], e[1] = e[1], e[0]
			}
			edges[e]++
		}
		v := m.Vertices
		t1 := render.Triangle3{v[f[0]], v[f[1]], v[f[2]]}
		t2 := render.Triangle3{v[f[0]], v[f[2]], v[f[3]]}
		if degenerate(t1, tol) || degenerate(t2, tol) {
			r.DegenerateFaces++
		}
	}
	for _, n := range edges {
		switch {
		case n == 1:
			r.BoundaryEdges++
		case n > 2:
			r.NonManifoldEdges++
		}
	}
	r.Coincident = coincident(m.Vertices, tol)
	return r
}

func degenerate(t render.Triangle3, tol float64) bool {
	return t.Degenerate(tol) || t.Normal() == (r3.Vec{})
}

func coincident(verts []r3.Vec, tol float64) int {
	if len(verts) == 0 {
		return 0
	}
	pts := make(vertices, len(verts))
	for i, v := range verts {
		pts[i] = vertex{Vec: v, idx: i}
	}
	tree := kdtree.New(pts, true)
	count := 0
	for i, v := range verts {
		keep := kdtree.NewDistKeeper(tol * tol)
		tree.NearestSet(keep, vertex{Vec: v, idx: -1})
		for _, c := range keep.Heap {
			if c.Comparable == nil {
				continue
			}
			// Count every pair once.
			if c.Comparable.(vertex).idx > i {
				count++
			}
		}
	}
	return count
}

type vertex struct {
	r3.Vec
	idx int
}

func (v vertex) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(vertex)
	switch d {
	case 0:
		return v.X - q.X
	case 1:
		return v.Y - q.Y
	case 2:
		return v.Z - q.Z
	}
	panic("unreachable")
}

func (v vertex) Dims() int { return 3 }

// Distance returns the squared euclidean distance.
func (v vertex) Distance(c kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(v.Vec, c.(vertex).Vec))
}

type vertices []vertex

func (p vertices) Index(i int) kdtree.Comparable { return p[i] }

func (p vertices) Len() int { return len(p) }

func (p vertices) Pivot(d kdtree.Dim) int {
	pl := plane{dim: d, vertices: p}
	return kdtree.Partition(pl, kdtree.MedianOfMedians(pl))
}

func (p vertices) Slice(start, end int) kdtree.Interface { return p[start:end] }

// Bounds implements the kdtree.Bounder interface.
func (p vertices) Bounds() *kdtree.Bounding {
	min := vertex{Vec: d3.Elem(math.MaxFloat64)}
	max := vertex{Vec: d3.Elem(-math.MaxFloat64)}
	for _, v := range p {
		min.Vec = d3.MinElem(min.Vec, v.Vec)
		max.Vec = d3.MaxElem(max.Vec, v.Vec)
	}
	return &kdtree.Bounding{Min: min, Max: max}
}

type plane struct {
	dim kdtree.Dim
	vertices
}

func (p plane) Less(i, j int) bool {
	return p.vertices[i].Compare(p.vertices[j], p.dim) < 0
}

func (p plane) Swap(i, j int) {
	p.vertices[i], p.vertices[j] = p.vertices[j], p.vertices[i]
}

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.vertices = p.vertices[start:end]
	return p
}
