package render

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/wscrew"
	"gonum.org/v1/gonum/spatial/r3"
)

// InterleavedBuffer returns the triangulated mesh as consecutive position and
// normal pairs in single precision, ready to be uploaded to a vertex buffer.
//
// Flat shading repeats the face normal on every corner of a face. Smooth
// shading averages, for each corner, the normals of the faces around the corner
// vertex which meet the corner's face within the auto smooth angle.
func InterleavedBuffer(m wscrew.Mesh, sh wscrew.Shading) []ms3.Vec {
	normals := m.FaceNormals()
	faceN := make([]ms3.Vec, len(normals))
	for i, n := range normals {
		faceN[i] = ms3From(n)
	}
	var incident [][]int
	if sh.Smooth {
		incident = make([][]int, len(m.Vertices))
		for iface, f := range m.Faces {
			for _, v := range f {
				incident[v] = append(incident[v], iface)
			}
		}
	}
	cosLimit := math32.Cos(float32(sh.AutoSmoothAngle))
	cornerNormal := func(iface, v int) ms3.Vec {
		n := faceN[iface]
		if !sh.Smooth {
			return n
		}
		var sum ms3.Vec
		for _, other := range incident[v] {
			if ms3.Dot(n, faceN[other]) >= cosLimit {
				sum = ms3.Add(sum, faceN[other])
			}
		}
		if ms3.Norm(sum) == 0 {
			return n
		}
		return ms3.Unit(sum)
	}

	buf := make([]ms3.Vec, 0, 2*6*len(m.Faces))
	for iface, f := range m.Faces {
		// Same split as Mesh.Triangulate.
		for _, k := range [6]int{0, 1, 2, 0, 2, 3} {
			v := f[k]
			buf = append(buf, ms3From(m.Vertices[v]), cornerNormal(iface, v))
		}
	}
	return buf
}

func ms3From(v r3.Vec) ms3.Vec {
	return ms3.Vec{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
