package wscrew

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Schedule holds the quantities derived once from normalized Parameters
// that every per-vertex computation is parametrized by.
//
// The screw is built from Layers horizontal strata. Layer 0 and layer Layers-1
// are the flat caps, layers 1 and Layers-2 ramp the thread in and out and
// layers 3,4 and Layers-4,Layers-5 carry the seam alignment offsets where the
// ramps meet the regular thread body.
type Schedule struct {
	Layers   int
	Segments int
	// TotalHeight is the height of the screw, top cap to bottom cap.
	TotalHeight float64
	// LayerHeight is the vertical distance between two consecutive layers.
	LayerHeight float64
	// Addition is the height gained per sweep step along the helix.
	Addition float64
	// Step is the angle between two consecutive sweep indices.
	Step float64

	r1, r2 float64
}

// NewSchedule normalizes p and derives its layer schedule.
func NewSchedule(p Parameters) Schedule {
	p = p.Normalize()
	layers := (p.Rounds + 1) * layersPerRound
	layerHeight := p.Height / float64(layers-1)
	return Schedule{
		Layers:      layers,
		Segments:    p.Segments,
		TotalHeight: p.Height,
		LayerHeight: layerHeight,
		Addition:    layerHeight * layersPerRound / float64(p.Segments),
		Step:        tau / float64(p.Segments),
		r1:          p.Radius1,
		r2:          p.Radius2,
	}
}

// Height returns the height of sweep index i on layer j.
func (s Schedule) Height(j, i int) float64 {
	L, S := s.Layers, s.Segments
	switch {
	case j == 0:
		return 0
	case j == L-1:
		return s.TotalHeight
	case j == 1:
		// Thread start ramp climbs at half rate.
		return float64(i) * s.Addition / 2
	case j == L-2:
		// Thread end ramp descends onto the top cap at half rate.
		if i == 0 {
			return s.TotalHeight - 3*s.LayerHeight
		}
		return s.TotalHeight - float64(S-i)*s.Addition/2
	case j == 3 || j == 4:
		if i == 0 {
			return s.base(j) + s.Addition/2
		}
	case j == L-4 || j == L-5:
		if i == S-1 {
			return s.TotalHeight - float64(L-j-3)*s.LayerHeight - s.Addition/2
		}
	}
	return s.base(j) + float64(i)*s.Addition
}

// base is the height of the first sweep index of a regular layer.
func (s Schedule) base(j int) float64 {
	return float64(j-2) * s.LayerHeight
}

// Angle returns the angle about the vertical axis of sweep index i on layer j.
func (s Schedule) Angle(j, i int) float64 {
	L, S := s.Layers, s.Segments
	switch {
	case j == 1 && i == 2:
		return s.Step * threadStartAngle
	case j == L-2 && i == S-2:
		return tau - s.Step*threadStartAngle
	case j == 3 || j == 4:
		// Half step offsets align the seam between the start ramp and the thread body.
		if i == 0 {
			return s.Step / 2
		}
		if i == S && L == minLayers {
			// Single round screws share these layers with the end transition.
			return tau - s.Step/2
		}
	case j == L-4 || j == L-5:
		if i == S {
			return tau - s.Step/2
		}
	}
	return s.Step * float64(i)
}

// Radius returns the distance to the vertical axis of sweep index i on layer j.
// Caps and layers with j%4 in {1,2} lie on Radius1, the remaining thread layers on
// Radius2. The four transition vertices take the mean of both.
func (s Schedule) Radius(j, i int) float64 {
	L, S := s.Layers, s.Segments
	switch {
	case j == 0 || j == L-1 || j%4 == 1 || j%4 == 2:
		return s.r1
	case (j == 3 || j == 4) && i == 0, (j == L-4 || j == L-5) && i == S:
		return (s.r1 + s.r2) / 2
	}
	return s.r2
}

// Point returns the position of sweep index i on layer j: the point (r, 0, h)
// rotated by the sweep angle about the Z axis.
func (s Schedule) Point(j, i int) r3.Vec {
	rot := r3.NewRotation(s.Angle(j, i), r3.Vec{Z: 1})
	return rot.Rotate(r3.Vec{X: s.Radius(j, i), Z: s.Height(j, i)})
}

// Excluded reports whether sweep index i of layer j is left out of the layer's loop.
func (s Schedule) Excluded(j, i int) bool {
	L, S := s.Layers, s.Segments
	// The closing index is only kept on the pre-end transition layers where a patch face closes the ring.
	closing := i == S && !(j == L-4 || j == L-5)
	// First two indices of the start ramp are covered by patch faces.
	rampStart := (j == 1 || j == 2) && i < 2
	// Last two indices of the end ramp.
	rampEnd := (j == L-2 || j == L-3) && i > S-2
	return closing || rampStart || rampEnd
}
