package thread

import "fmt"

// Unified thread standard. Dimensions in inches.
// Example: UNC 1/4 with external threading would be
//
//	UTS{D:1.0/4.0, TPI:20, Ext: true}
type UTS struct {
	D   float64
	TPI float64
	// External or internal thread.
	Ext bool
}

var _ Threader = UTS{} // Interface implementation.

func (uts UTS) Spec() Spec {
	s := ISO{D: uts.D, P: 1.0 / uts.TPI, Ext: uts.Ext}.Spec()
	s.Name = fmt.Sprintf("%g-%g", uts.D, uts.TPI)
	return s
}
