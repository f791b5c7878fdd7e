package render

import (
	"io"

	"github.com/soypat/wscrew"
)

// MeshRenderer streams the triangles of a quad mesh, two per face, in face
// order. Each quad is split along its first diagonal like Mesh.Triangulate.
type MeshRenderer struct {
	m    wscrew.Mesh
	face int
	// second is set once the first triangle of m.Faces[face] has been read.
	second bool
}

var _ Renderer = (*MeshRenderer)(nil)

// NewMeshRenderer returns a Renderer over the faces of m.
// m must not be modified while it is being read.
func NewMeshRenderer(m wscrew.Mesh) *MeshRenderer {
	return &MeshRenderer{m: m}
}

// Remaining returns the number of triangles not yet read.
func (r *MeshRenderer) Remaining() int {
	n := 2 * (len(r.m.Faces) - r.face)
	if r.second {
		n--
	}
	return n
}

// ReadTriangles implements the Renderer interface. It returns io.EOF
// once every face has been read.
func (r *MeshRenderer) ReadTriangles(dst []Triangle3) (int, error) {
	if r.face >= len(r.m.Faces) {
		return 0, io.EOF
	}
	v := r.m.Vertices
	n := 0
	for n < len(dst) && r.face < len(r.m.Faces) {
		f := r.m.Faces[r.face]
		if !r.second {
			dst[n] = Triangle3{v[f[0]], v[f[1]], v[f[2]]}
		} else {
			dst[n] = Triangle3{v[f[0]], v[f[2]], v[f[3]]}
			r.face++
		}
		r.second = !r.second
		n++
	}
	return n, nil
}
