package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/soypat/wscrew"
)

// WriteOBJ writes m as a Wavefront OBJ object keeping its quad faces.
// Smooth shading is written as smoothing group 1.
func WriteOBJ(w io.Writer, name string, m wscrew.Mesh, sh wscrew.Shading) error {
	if len(m.Faces) == 0 {
		return errors.New("empty face slice")
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "o %s\n", name)
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	if sh.Smooth {
		bw.WriteString("s 1\n")
	} else {
		bw.WriteString("s off\n")
	}
	for _, f := range m.Faces {
		// OBJ indices start at 1.
		fmt.Fprintf(bw, "f %d %d %d %d\n", f[0]+1, f[1]+1, f[2]+1, f[3]+1)
	}
	return bw.Flush()
}
