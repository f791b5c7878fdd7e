package render

import (
	"errors"
	"io"
)

// RenderAll reads triangles from r until io.EOF and returns them.
// io.EOF is not returned. Renderers that know how many triangles are
// left, such as MeshRenderer, get their result allocated up front.
func RenderAll(r Renderer) ([]Triangle3, error) {
	var model []Triangle3
	if sized, ok := r.(interface{ Remaining() int }); ok {
		model = make([]Triangle3, 0, sized.Remaining())
	}
	buf := make([]Triangle3, trianglesInBuffer)
	for {
		nt, err := r.ReadTriangles(buf)
		model = append(model, buf[:nt]...)
		if errors.Is(err, io.EOF) {
			return model, nil
		}
		if err != nil {
			return model, err
		}
	}
}
