package thread

import (
	"fmt"
	"math"
)

// ISO is a standardized metric thread.
// Pitch is usually the number following the diameter
// i.e: for M16x2 the pitch is 2mm
type ISO struct {
	// D is the thread nominal diameter [mm].
	D float64
	// P is the thread pitch [mm].
	P float64
	// Is external or internal thread. Ext set to true means external thread.
	Ext bool
}

var _ Threader = ISO{} // Compile time check of interface implementation.

func (iso ISO) Spec() Spec {
	radius := iso.D / 2
	h := iso.P / (2.0 * math.Tan(30.0*math.Pi/180.))
	r0 := radius - (7.0/8.0)*h
	if !iso.Ext {
		// Internal threads have their root flattened by a quarter of the triangle.
		r0 += h / 4
	}
	return Spec{
		Name:  fmt.Sprintf("M%gx%g", iso.D, iso.P),
		Major: radius,
		Minor: r0,
		Pitch: iso.P,
	}
}

// Coarse pitch of the first choice metric sizes [mm].
var coarsePitchTable = []struct{ D, P float64 }{
	{1, 0.25}, {1.2, 0.25}, {1.6, 0.35}, {2, 0.4}, {2.5, 0.45}, {3, 0.5},
	{4, 0.7}, {5, 0.8}, {6, 1}, {8, 1.25}, {10, 1.5}, {12, 1.75}, {16, 2},
	{20, 2.5}, {24, 3}, {30, 3.5}, {36, 4}, {42, 4.5}, {48, 5}, {56, 5.5}, {64, 6},
}

// SetCoarse sets the pitch to the coarse pitch of the nominal diameter.
func (iso *ISO) SetCoarse() error {
	for _, a := range coarsePitchTable {
		if math.Abs(a.D-iso.D) < 1e-6 {
			iso.P = a.P
			return nil
		}
	}
	return fmt.Errorf("no coarse pitch for M%g", iso.D)
}
