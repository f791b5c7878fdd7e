package wscrew

import (
	"errors"
	"fmt"

	"github.com/soypat/wscrew/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Shading is how a materialized mesh is meant to be shaded.
type Shading struct {
	Smooth bool `yaml:"smooth"`
	// AutoSmoothAngle is the largest angle in radians between two face normals
	// that is still shaded smooth. Sharper edges are shaded flat.
	AutoSmoothAngle float64 `yaml:"auto_smooth_angle"`
}

// DefaultShading returns smooth shading with an auto smooth angle of 60 degrees.
func DefaultShading() Shading {
	return Shading{Smooth: true, AutoSmoothAngle: pi / 3}
}

// Shading returns the default shading with the mesh's smooth hint applied.
func (m Mesh) Shading() Shading {
	sh := DefaultShading()
	sh.Smooth = m.Smooth
	return sh
}

// Validate checks every face references an existing vertex.
func (m Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return errors.New("mesh has no vertices")
	}
	for iface, face := range m.Faces {
		for _, idx := range face {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("face %d references vertex %d out of %d", iface, idx, len(m.Vertices))
			}
		}
	}
	return nil
}

// Bounds returns the bounding box of the mesh vertices.
func (m Mesh) Bounds() r3.Box {
	if len(m.Vertices) == 0 {
		return r3.Box{}
	}
	return r3.Box(d3.Set(m.Vertices).Bounds())
}

// Triangulate splits every quad along its first diagonal into the
// triangles (v0, v1, v2) and (v0, v2, v3).
func (m Mesh) Triangulate() [][3]int {
	tris := make([][3]int, 0, 2*len(m.Faces))
	for _, f := range m.Faces {
		tris = append(tris, [3]int{f[0], f[1], f[2]}, [3]int{f[0], f[2], f[3]})
	}
	return tris
}

// FaceNormals returns the unit normal of every face using Newell's method,
// which is well defined for the slightly non planar quads of the thread.
// Degenerate faces have a zero normal.
func (m Mesh) FaceNormals() []r3.Vec {
	normals := make([]r3.Vec, len(m.Faces))
	for iface, f := range m.Faces {
		var n r3.Vec
		for k := range f {
			a, b := m.Vertices[f[k]], m.Vertices[f[(k+1)%4]]
			n.X += (a.Y - b.Y) * (a.Z + b.Z)
			n.Y += (a.Z - b.Z) * (a.X + b.X)
			n.Z += (a.X - b.X) * (a.Y + b.Y)
		}
		if r3.Norm2(n) > 0 {
			n = r3.Unit(n)
		}
		normals[iface] = n
	}
	return normals
}

// Transform returns a copy of the mesh scaled, rotated and then translated to position.
// Faces are shared with m.
func (m Mesh) Transform(position, scale r3.Vec, rot r3.Rotation) Mesh {
	t := d3.ComposeTransform(position, scale, rot)
	out := m
	out.Vertices = make([]r3.Vec, len(m.Vertices))
	for i, v := range m.Vertices {
		out.Vertices[i] = t.Transform(v)
	}
	return out
}
