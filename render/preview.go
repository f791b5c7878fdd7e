package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/wscrew"
	"github.com/soypat/wscrew/internal/d3"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/spatial/r3"
)

// ViewConfig positions the camera of a preview.
type ViewConfig struct {
	// what position (point) to look at
	LookAt r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eye       r3.Vec
	Near, Far float64
	// Width and Height of the output image in pixels.
	Width, Height int
	// Supersample renders at this multiple of the output size before downsampling.
	Supersample int
	// Caption is drawn in the bottom left corner when not empty.
	Caption string
}

// DefaultView is an isometric view of a mesh fit in the bi-unit cube.
func DefaultView() ViewConfig {
	return ViewConfig{
		Up:          r3.Vec{Z: 1},
		Eye:         d3.Elem(3),
		Near:        1,
		Far:         10,
		Width:       768,
		Height:      432,
		Supersample: 2,
	}
}

// Preview software-renders m. Smooth shading interpolates vertex normals across
// edges sharper than the shading's auto smooth angle.
func Preview(m wscrew.Mesh, sh wscrew.Shading, view ViewConfig) image.Image {
	const fovy = 30 // vertical field of view in degrees
	scale := view.Supersample
	if scale < 1 {
		scale = 1
	}
	var (
		eye      = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)          // camera position
		center   = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z) // view center position
		up       = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)             // up vector
		light    = fauxgl.V(-0.75, 1, 0.25).Normalize()                  // light direction
		objColor = fauxgl.HexColor("#468966")                            // object color
	)
	mesh := fauxMesh(m)
	if sh.Smooth {
		mesh.SmoothNormalsThreshold(sh.AutoSmoothAngle)
	}
	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	// Face orientation is not consistent across the seam patches.
	context.Cull = fauxgl.CullNone
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = objColor
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	img := context.Image()
	img = resize.Resize(uint(view.Width), uint(view.Height), img, resize.Bilinear)
	if view.Caption == "" {
		return img
	}
	return caption(img, view.Caption)
}

func caption(img image.Image, text string) image.Image {
	dst := image.NewRGBA(img.Bounds())
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(dst.Bounds().Min.X+face.Advance, dst.Bounds().Max.Y-face.Descent-face.Advance),
	}
	d.DrawString(text)
	return dst
}

// WritePNG writes a preview of m as a PNG image.
func WritePNG(w io.Writer, m wscrew.Mesh, sh wscrew.Shading, view ViewConfig) error {
	return png.Encode(w, Preview(m, sh, view))
}

func fauxMesh(m wscrew.Mesh) *fauxgl.Mesh {
	tris := m.Triangulate()
	faux := make([]*fauxgl.Triangle, len(tris))
	for i, tri := range tris {
		faux[i] = fauxgl.NewTriangleForPoints(
			fauxVec(m.Vertices[tri[0]]),
			fauxVec(m.Vertices[tri[1]]),
			fauxVec(m.Vertices[tri[2]]),
		)
	}
	return fauxgl.NewTriangleMesh(faux)
}

func fauxVec(v r3.Vec) fauxgl.Vector {
	return fauxgl.V(v.X, v.Y, v.Z)
}
