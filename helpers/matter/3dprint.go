package matter

import (
	"github.com/soypat/wscrew"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{shrink: 0.2e-2, pullShrink: .45} // 0.2% shrinkage
)

// ViscousMaterial compensates the dimensional error of extruded plastic parts.
type ViscousMaterial struct {
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
	// pullShrink takes into account viscoelastic shrinkage.
	pullShrink float64
}

// ScaleFactor is the uniform scale applied by Scale.
func (m ViscousMaterial) ScaleFactor() float64 {
	return 1 / (1 - m.shrink)
}

// Scale returns a copy of the mesh scaled about the origin so that it
// measures as designed after cooling.
func (m ViscousMaterial) Scale(mesh wscrew.Mesh) wscrew.Mesh {
	k := m.ScaleFactor()
	return mesh.Transform(r3.Vec{}, r3.Vec{X: k, Y: k, Z: k}, r3.NewRotation(0, r3.Vec{Z: 1}))
}

// ScaleParameters scales the dimensions of p instead of a generated mesh.
func (m ViscousMaterial) ScaleParameters(p wscrew.Parameters) wscrew.Parameters {
	k := m.ScaleFactor()
	p.Height *= k
	p.Radius1 *= k
	p.Radius2 *= k
	return p
}

// InternalDimScale returns the dimension to design a hole with so that
// it measures real once printed.
func (m ViscousMaterial) InternalDimScale(real float64) float64 {
	if real <= 0 {
		panic("InternalDimScale only works for non-zero dimensions")
	}
	return real*(m.shrink+1) + m.pullShrink
}

// ByName returns the material with the given name. Names are "pla" and "none".
func ByName(name string) (ViscousMaterial, bool) {
	switch name {
	case "pla", "PLA":
		return PLA, true
	case "", "none":
		return ViscousMaterial{}, true
	}
	return ViscousMaterial{}, false
}
