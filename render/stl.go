package render

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

// CreateSTL writes the triangles streamed by a Renderer to an STL file at path.
func CreateSTL(path string, r Renderer) error {
	return createSTL(path, r)
}

// WriteSTL writes model triangles to a writer in STL file format.
func WriteSTL(w io.Writer, model []Triangle3) error {
	if len(model) == 0 {
		return errors.New("empty triangle slice")
	}
	nt := len(model)
	header := stlHeader{
		Count: uint32(nt),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	var b [stlTriangleSize]byte
	for _, triangle := range model {
		stlFromTriangle3(triangle).put(b[:])
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

const (
	trianglesInBuffer = 1 << 10
	stlTriangleSize   = 50
	sizeOfSTLHeader   = 84
)

type stlReader struct {
	r   Renderer
	buf [trianglesInBuffer]Triangle3
}

func (w *stlReader) Read(b []byte) (int, error) {
	ntMax := min(len(b)/stlTriangleSize, len(w.buf))

	if ntMax == 0 {
		return 0, errors.New("stlWriter requires at least 50 bytes to write a single triangle")
	}

	var (
		err error
		it  int // Number of triangles written to byte buffer
		nt  int // number of triangles read during ReadTriangles
	)

	for it < ntMax && err == nil {
		// remaining space in byte buffer for triangles and prevent overflow.
		remaining := len(b)/stlTriangleSize - it
		nt, err = w.r.ReadTriangles(w.buf[:min(ntMax, remaining)])
		if nt > ntMax {
			panic("bug: ReadTriangles read more triangles than available in buffer")
		}
		if nt*stlTriangleSize > len(b[it*stlTriangleSize:]) {
			panic("bug: buffer overflow")
		}
		for _, triangle := range w.buf[:nt] {
			stlFromTriangle3(triangle).put(b[it*stlTriangleSize:])
			it++
		}
	}
	return it * stlTriangleSize, err
}

func createSTL(path string, r Renderer) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	// Do not write header.
	_, err = file.Seek(sizeOfSTLHeader, 0)
	if err != nil {
		return err
	}
	rd := &stlReader{
		r: r,
	}
	n, err := io.CopyBuffer(file, rd, make([]byte, stlTriangleSize*trianglesInBuffer))
	if err != nil {
		return fmt.Errorf("writing STL triangles: %w", err)
	}
	_, err = file.Seek(0, 0)
	if err != nil {
		return err
	}
	header := stlHeader{
		Count: uint32(n / stlTriangleSize),
	}
	if err = binary.Write(file, binary.LittleEndian, &header); err != nil {
		return err
	}
	return nil
}

// STLStats summarizes the triangles of a binary STL read by ReadSTL.
type STLStats struct {
	Triangles int
	// FlippedNormals counts stored normals opposite to the vertex winding normal.
	FlippedNormals int
	// NormalMismatches counts stored normals matching neither winding.
	NormalMismatches int
	// Degenerate counts triangles with coincident vertices. Their normals are not checked.
	Degenerate int
}

// Clean reports whether every triangle has distinct vertices and a stored
// normal that follows its winding.
func (s STLStats) Clean() bool {
	return s.FlippedNormals == 0 && s.NormalMismatches == 0 && s.Degenerate == 0
}

const (
	stlNormalTol     = 5e-2
	stlDegenerateTol = 1e-12
)

// ReadSTL reads a binary STL. Truncated input and NaN or infinite values are
// errors. Finite but suspicious triangles are read and counted in the stats.
func ReadSTL(r io.Reader) ([]Triangle3, STLStats, error) {
	var stats STLStats
	br := bufio.NewReader(r)
	var header stlHeader
	if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
		return nil, stats, fmt.Errorf("reading STL header: %w", err)
	}
	// The count is untrusted, do not let it size the allocation alone.
	model := make([]Triangle3, 0, min(int(header.Count), 1<<16))
	var b [stlTriangleSize]byte
	for i := 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(br, b[:]); err != nil {
			return model, stats, fmt.Errorf("STL triangle %d/%d: %w", i+1, header.Count, err)
		}
		var st stlTriangle
		st.get(b[:])
		tri, err := st.check(&stats)
		if err != nil {
			return model, stats, fmt.Errorf("STL triangle %d/%d: %w", i+1, header.Count, err)
		}
		model = append(model, tri)
		stats.Triangles++
	}
	return model, stats, nil
}

// check converts t and tallies its defects.
func (t stlTriangle) check(stats *STLStats) (Triangle3, error) {
	if bad3F32(t.Normal) || bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return Triangle3{}, errors.New("inf/NaN STL triangle data")
	}
	tri := Triangle3{r3From3F32(t.Vertex1), r3From3F32(t.Vertex2), r3From3F32(t.Vertex3)}
	if tri.Degenerate(stlDegenerateTol) {
		stats.Degenerate++
		return tri, nil
	}
	winding := tri.Normal()
	stored := r3From3F32(t.Normal)
	switch {
	case equalWithin(winding, stored, stlNormalTol):
	case equalWithin(r3.Scale(-1, winding), stored, stlNormalTol):
		stats.FlippedNormals++
	default:
		stats.NormalMismatches++
	}
	return tri, nil
}

func stlFromTriangle3(t Triangle3) stlTriangle {
	return stlTriangle{
		Normal:  r3To3F32(t.Normal()),
		Vertex1: r3To3F32(t[0]),
		Vertex2: r3To3F32(t[1]),
		Vertex3: r3To3F32(t[2]),
	}
}

func r3To3F32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func (t stlTriangle) put(b []byte) {
	if len(b) < 50 {
		panic("need length 50 to marshal stlTriangle")
	}

	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	_ = b[stlTriangleSize-1] // early bounds check
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}
