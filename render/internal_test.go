package render

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/soypat/wscrew"
	"github.com/soypat/wscrew/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSTLWriteReadback(t *testing.T) {
	const tol = 1e-6
	m := wscrew.Generate(wscrew.Parameters{Rounds: 3, Segments: 16, Height: 4, Radius1: 1, Radius2: 1.3})
	input, err := RenderAll(NewMeshRenderer(m))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	err = WriteSTL(&b, input)
	if err != nil {
		t.Fatal(err)
	}
	output, stats, err := ReadSTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(output) != len(input) || stats.Triangles != len(input) {
		t.Fatalf("length of triangles written/read not equal: %d/%d (stats %+v)", len(input), len(output), stats)
	}
	if !stats.Clean() {
		t.Errorf("written STL not clean: %+v", stats)
	}
	mismatches := 0
	for iface, expect := range input {
		got := output[iface]
		for i := range expect {
			if !d3.EqualWithin(got[i], expect[i], tol) {
				mismatches++
				t.Errorf("%dth triangle equality out of tolerance. got vertex %0.5g, want %0.5g", iface, got[i], expect[i])
			}
		}
		if mismatches > 10 {
			t.Fatal("too many mismatches")
		}
	}
}

func TestReadSTLDefects(t *testing.T) {
	good := Triangle3{{}, {X: 1}, {Y: 1}}
	flipped := stlFromTriangle3(good)
	flipped.Normal[2] = -1
	skewed := stlFromTriangle3(good)
	skewed.Normal = [3]float32{1, 0, 0}
	collapsed := stlFromTriangle3(Triangle3{{}, {}, {X: 1}})
	nan := stlFromTriangle3(good)
	nan.Vertex2[1] = float32(math.NaN())

	encode := func(tris ...stlTriangle) *bytes.Buffer {
		var b bytes.Buffer
		binary.Write(&b, binary.LittleEndian, &stlHeader{Count: uint32(len(tris))})
		var raw [stlTriangleSize]byte
		for _, tri := range tris {
			tri.put(raw[:])
			b.Write(raw[:])
		}
		return &b
	}

	model, stats, err := ReadSTL(encode(stlFromTriangle3(good), flipped, skewed, collapsed))
	if err != nil {
		t.Fatal(err)
	}
	want := STLStats{Triangles: 4, FlippedNormals: 1, NormalMismatches: 1, Degenerate: 1}
	if stats != want {
		t.Errorf("got stats %+v, want %+v", stats, want)
	}
	if stats.Clean() {
		t.Error("defective STL reported clean")
	}
	if len(model) != 4 || model[0] != good {
		t.Errorf("got model %v", model)
	}

	_, _, err = ReadSTL(encode(stlFromTriangle3(good), nan))
	if err == nil {
		t.Error("expected error for NaN vertex")
	}

	truncated := encode(stlFromTriangle3(good), stlFromTriangle3(good))
	truncated.Truncate(truncated.Len() - 10)
	model, _, err = ReadSTL(truncated)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected unexpected EOF, got %v", err)
	}
	if len(model) != 1 {
		t.Errorf("expected the complete triangle before truncation, got %d", len(model))
	}

	_, _, err = ReadSTL(bytes.NewReader(make([]byte, 40)))
	if err == nil {
		t.Error("expected error for short header")
	}
}

func TestMeshRendererStream(t *testing.T) {
	m := wscrew.Generate(wscrew.DefaultParameters())
	r := NewMeshRenderer(m)
	buf := make([]Triangle3, 7) // not a divisor of the triangle count.
	var (
		err   error
		nt    int
		model []Triangle3
	)
	want := 2 * len(m.Faces)
	for err == nil {
		if r.Remaining() != want-len(model) {
			t.Fatalf("got %d remaining after reading %d. want %d", r.Remaining(), len(model), want-len(model))
		}
		nt, err = r.ReadTriangles(buf)
		model = append(model, buf[:nt]...)
	}
	if r.Remaining() != 0 {
		t.Errorf("got %d remaining after EOF", r.Remaining())
	}
	if err != io.EOF {
		t.Fatal(err)
	}
	if len(model) != 2*len(m.Faces) {
		t.Errorf("triangles lost. got %d. want %d", len(model), 2*len(m.Faces))
	}
	tris := m.Triangulate()
	for i, tri := range tris {
		if model[i] != (Triangle3{m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]}) {
			t.Fatalf("triangle %d does not follow Mesh.Triangulate", i)
		}
	}
	if _, err := r.ReadTriangles(buf); err != io.EOF {
		t.Errorf("expected io.EOF on exhausted renderer, got %v", err)
	}
}

// errRenderer returns a single triangle along with its error.
type errRenderer struct {
	err  error
	done bool
}

func (r *errRenderer) ReadTriangles(dst []Triangle3) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	r.done = true
	dst[0] = Triangle3{{}, {X: 1}, {Y: 1}}
	return 1, r.err
}

func TestRenderAll(t *testing.T) {
	model, err := RenderAll(&errRenderer{err: io.EOF})
	if err != nil || len(model) != 1 {
		t.Errorf("triangles read with io.EOF lost: %d, %v", len(model), err)
	}
	failure := errors.New("render failed")
	model, err = RenderAll(&errRenderer{err: failure})
	if !errors.Is(err, failure) || len(model) != 1 {
		t.Errorf("got %d triangles, error %v", len(model), err)
	}
	model, err = RenderAll(NewMeshRenderer(wscrew.Mesh{}))
	if err != nil || len(model) != 0 {
		t.Errorf("empty mesh: %d triangles, error %v", len(model), err)
	}
	m := wscrew.Generate(wscrew.DefaultParameters())
	model, err = RenderAll(NewMeshRenderer(m))
	if err != nil {
		t.Fatal(err)
	}
	if cap(model) != 2*len(m.Faces) {
		t.Errorf("result not sized from Remaining: cap %d", cap(model))
	}
}

func TestTriangleNormal(t *testing.T) {
	tri := Triangle3{{}, {X: 1}, {Y: 1}}
	if n := tri.Normal(); n != (r3.Vec{Z: 1}) {
		t.Errorf("got normal %v", n)
	}
	flat := Triangle3{{}, {X: 1}, {X: 2}}
	if n := flat.Normal(); n != (r3.Vec{}) {
		t.Errorf("collinear triangle must have zero normal, got %v", n)
	}
	if !(Triangle3{{}, {}, {X: 1}}).Degenerate(1e-9) {
		t.Error("expected degenerate triangle")
	}
}

func TestInterleavedBuffer(t *testing.T) {
	m := wscrew.Generate(wscrew.DefaultParameters())
	normals := m.FaceNormals()
	flat := InterleavedBuffer(m, wscrew.Shading{})
	if len(flat) != 12*len(m.Faces) {
		t.Fatalf("got buffer length %d. want %d", len(flat), 12*len(m.Faces))
	}
	for iface := range m.Faces {
		for k := 0; k < 6; k++ {
			n := flat[12*iface+2*k+1]
			want := normals[iface]
			if math.Abs(float64(n.X)-want.X) > 1e-6 || math.Abs(float64(n.Y)-want.Y) > 1e-6 || math.Abs(float64(n.Z)-want.Z) > 1e-6 {
				t.Fatalf("face %d corner %d: flat normal %v. want %v", iface, k, n, want)
			}
		}
	}
	p := flat[0]
	v := m.Vertices[m.Faces[0][0]]
	if math.Abs(float64(p.X)-v.X) > 1e-6 || math.Abs(float64(p.Z)-v.Z) > 1e-6 {
		t.Errorf("first position %v does not match vertex %v", p, v)
	}

	smooth := InterleavedBuffer(m, wscrew.DefaultShading())
	differ := 0
	for i := 1; i < len(smooth); i += 2 {
		n := smooth[i]
		length := math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z))
		if math.Abs(length-1) > 1e-4 {
			t.Fatalf("smooth normal %d not unit length: %v", i, n)
		}
		if n != flat[i] {
			differ++
		}
	}
	if differ == 0 {
		t.Error("smooth shading produced only flat normals")
	}
}
