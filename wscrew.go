// Package wscrew generates the quad mesh of a helical screw from a handful of
// scalar parameters.
//
// Generation is a single linear pass: layer loops are built, adjacent loops
// are bridged with quads, the inner thread seam is bridged, patch faces close
// the irregular joints at both ends of the thread and finally some loops are
// shortened and bridged again so no two faces overlap at the seams.
// Every call works on its own data, Generate is safe for concurrent use.
package wscrew

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Stage identifies the step of the generation pipeline a Diagnostic was raised in.
type Stage uint8

const (
	// StageRegular is the bridging of every pair of adjacent layer loops.
	StageRegular Stage = iota
	// StageClosure is the bridging of the inner thread seam.
	StageClosure
	// StageCorrection is the re-bridging of shortened loops.
	StageCorrection
	// StageHole is raised after generation for adjacent layers that
	// were never bridged. The mesh has a hole between them.
	StageHole
)

func (s Stage) String() string {
	switch s {
	case StageRegular:
		return "regular"
	case StageClosure:
		return "closure"
	case StageCorrection:
		return "correction"
	case StageHole:
		return "hole"
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}

// Diagnostic describes a bridge between two loops of different length
// which emitted no faces.
type Diagnostic struct {
	Stage Stage
	// Loop1 and Loop2 are the layer indices of the loops. They are -1 for the closure seam.
	Loop1, Loop2 int
	// Len1 and Len2 are the loop lengths at the time of bridging.
	Len1, Len2 int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s bridge %d(len %d) -> %d(len %d)", d.Stage, d.Loop1, d.Len1, d.Loop2, d.Len2)
}

// Generator generates screw meshes. The zero value is ready to use.
type Generator struct {
	// OnDiagnostic is called for every bridge that could not emit faces.
	// Mismatches during StageRegular are expected: the loops involved are
	// trimmed and bridged again during StageCorrection.
	OnDiagnostic func(Diagnostic)
}

// Generate returns the screw mesh for p. Parameters are normalized first.
func Generate(p Parameters) Mesh {
	return Generator{}.Generate(p)
}

// Generate returns the screw mesh for p. Parameters are normalized first.
func (g Generator) Generate(p Parameters) Mesh {
	p = p.Normalize()
	sched := NewSchedule(p)
	var c closure
	verts, loops := buildLoops(sched, &c)
	st := stitcher{
		loops:   loops,
		bridged: make([]bool, len(loops)-1),
		emit:    g.OnDiagnostic,
		faces:   make([][4]int, 0, len(verts)),
	}
	for k := 0; k < len(loops)-1; k++ {
		st.bridge(StageRegular, k, k+1)
	}
	st.bridgeClosure(c)
	st.patch()
	st.shorten()
	st.reportHoles()
	return Mesh{
		Vertices: verts,
		Edges:    [][2]int{},
		Faces:    st.faces,
		Smooth:   p.Smoothed,
	}
}

// stitcher accumulates the faces of a single generation.
type stitcher struct {
	faces [][4]int
	loops [][]int
	// bridged[k] is set once loops k and k+1 have been joined.
	bridged []bool
	emit    func(Diagnostic)
}

func (st *stitcher) bridge(stage Stage, a, b int) {
	l1, l2 := st.loops[a], st.loops[b]
	if len(l1) != len(l2) {
		st.report(Diagnostic{Stage: stage, Loop1: a, Loop2: b, Len1: len(l1), Len2: len(l2)})
		return
	}
	st.faces = append(st.faces, BridgeLoops(l1, l2)...)
	st.bridged[a] = true
}

func (st *stitcher) bridgeClosure(c closure) {
	if len(c.start) != len(c.end) {
		st.report(Diagnostic{Stage: StageClosure, Loop1: -1, Loop2: -1, Len1: len(c.start), Len2: len(c.end)})
		return
	}
	st.faces = append(st.faces, BridgeLoops(c.start, c.end)...)
}

// top returns the n'th loop counting from the top cap. top(1) is the top cap.
func (st *stitcher) top(n int) []int {
	return st.loops[len(st.loops)-n]
}

// patch appends the faces covering the joints regular bridging leaves open
// where the thread meets the caps.
func (st *stitcher) patch() {
	bottom, l1, l2, l3, l4, l5 := st.loops[0], st.loops[1], st.loops[2], st.loops[3], st.loops[4], st.loops[5]
	st.faces = append(st.faces,
		// Thread start: the bottom cap's first vertices against the start ramp and the first transition layers.
		[4]int{bottom[0], l3[0], l4[0], l5[0]},
		[4]int{bottom[0], bottom[1], l3[1], l3[0]},
		[4]int{bottom[1], bottom[2], l1[0], l2[0]},
		[4]int{bottom[1], l2[0], l3[2], l3[1]},
	)
	t1, t2, t3, t4, t5, t6 := st.top(1), st.top(2), st.top(3), st.top(4), st.top(5), st.top(6)
	st.faces = append(st.faces,
		// Thread end: the open ring ends of the pre-end transition layers against the end ramp and the top cap.
		[4]int{back(t6, 1), t2[0], back(t5, 1), back(t5, 2)},
		[4]int{back(t5, 1), t2[0], t1[0], back(t4, 1)},
		[4]int{back(t4, 2), back(t4, 1), t1[0], back(t1, 1)},
		[4]int{back(t4, 3), back(t4, 2), back(t1, 1), back(t3, 1)},
		[4]int{back(t3, 1), back(t1, 1), back(t1, 2), back(t2, 1)},
	)
}

// shorten drops the loop ends already used by patch faces and bridges the
// trimmed loops with their neighbours again.
func (st *stitcher) shorten() {
	L := len(st.loops)
	st.loops[0] = st.loops[0][2:]
	st.bridge(StageCorrection, 0, 1)

	st.loops[3] = st.loops[3][2:]
	st.bridge(StageCorrection, 2, 3)

	st.trimEnd(L-5, 1)
	st.bridge(StageCorrection, L-6, L-5)

	st.trimEnd(L-4, 2)
	st.bridge(StageCorrection, L-4, L-3)

	st.trimEnd(L-1, 1)
	st.bridge(StageCorrection, L-2, L-1)
}

func (st *stitcher) trimEnd(j, n int) {
	st.loops[j] = st.loops[j][:len(st.loops[j])-n]
}

func (st *stitcher) reportHoles() {
	for k, ok := range st.bridged {
		if !ok {
			st.report(Diagnostic{Stage: StageHole, Loop1: k, Loop2: k + 1, Len1: len(st.loops[k]), Len2: len(st.loops[k+1])})
		}
	}
}

func (st *stitcher) report(d Diagnostic) {
	if st.emit != nil {
		st.emit(d)
	}
}

// Mesh is the output of a generation. Faces index into Vertices.
type Mesh struct {
	Vertices []r3.Vec
	// Edges is always empty. Consumers derive edges from face boundaries.
	Edges [][2]int
	Faces [][4]int
	// Smooth is the shading hint carried over from Parameters.Smoothed.
	Smooth bool
}
