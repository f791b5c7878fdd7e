package thread

import (
	"errors"
	"fmt"
	"math"
)

// NPT is an American tapered pipe thread. Dimensions in inches.
type NPT struct {
	// D is the thread major diameter.
	D float64
	// threads per inch. 1.0/TPI gives pitch.
	TPI float64
}

var _ Threader = NPT{} // Compile time check of interface implementation.

func (npt NPT) Spec() Spec {
	s := ISO{D: npt.D, P: 1.0 / npt.TPI, Ext: true}.Spec()
	s.Name = fmt.Sprintf("NPT %g", npt.D)
	s.Taper = math.Atan(1.0 / 32.0) // standard NPT taper.
	return s
}

type nptSpec struct {
	N   float64 // Nominal measurement (usually a fraction of inch)
	D   float64 // screw major diameter
	tpi float64 // threads per inch
}

var nptLookupTable = []nptSpec{
	{N: 1.0 / 8.0, D: 0.405, tpi: 27},
	{N: 1.0 / 4.0, D: 0.540, tpi: 18},
	{N: 3.0 / 8.0, D: 0.675, tpi: 18},
	{N: 1.0 / 2.0, D: 0.840, tpi: 14},
	{N: 3.0 / 4.0, D: 1.050, tpi: 14},
	{N: 1.0, D: 1.315, tpi: 11.5},
	{N: 1 + 1.0/4.0, D: 1.660, tpi: 11.5},
	{N: 1 + 1.0/2.0, D: 1.900, tpi: 11.5},
	{N: 2, D: 2.375, tpi: 11.5},
	{N: 2 + 1.0/2.0, D: 2.875, tpi: 8},
	{N: 3, D: 3.500, tpi: 8},
	{N: 4, D: 4.500, tpi: 8},
}

// SetFromNominal sets NPT thread dimensions from a nominal measurement
// which usually takes the form of inch fractions. i.e:
//
//	npt.SetFromNominal(1.0/8.0) // sets NPT 1/8
func (npt *NPT) SetFromNominal(nominalDimension float64) error {
	const lookupTol = 1. / 32.
	for _, a := range nptLookupTable {
		if math.Abs(a.N-nominalDimension) < lookupTol {
			npt.D = a.D
			npt.TPI = a.tpi
			return nil
		}
	}
	return errors.New("nominal measurement not found")
}
