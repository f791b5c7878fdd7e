package wscrew

import "gonum.org/v1/gonum/spatial/r3"

// closure accumulates, across all layers, the two vertex sequences running along
// the inner seam of the thread. They are bridged in one pass once every layer is built.
type closure struct {
	// start holds the first sweep index of the bottom cap and of every layer above the start transition.
	start []int
	// end holds the second to last sweep index of every layer below the end transition.
	end []int
}

// buildLoops emits the vertices of every layer and returns them along with the
// ordered vertex indices of each layer's loop. Seam vertices are appended to c.
func buildLoops(s Schedule, c *closure) (verts []r3.Vec, loops [][]int) {
	L, S := s.Layers, s.Segments
	verts = make([]r3.Vec, 0, L*S)
	loops = make([][]int, L)
	for j := 0; j < L; j++ {
		loop := make([]int, 0, S+1)
		for i := 0; i <= S; i++ {
			if s.Excluded(j, i) {
				continue
			}
			idx := len(verts)
			loop = append(loop, idx)
			switch {
			case i == 0 && (j == 0 || (j > 4 && j < L-1)):
				c.start = append(c.start, idx)
			case i == S-1 && j < L-5:
				c.end = append(c.end, idx)
			}
			verts = append(verts, s.Point(j, i))
		}
		loops[j] = loop
	}
	return verts, loops
}
