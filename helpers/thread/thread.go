// Package thread maps standard screw threads onto generator parameters.
//
// The generator sweeps a fixed two radius profile, so a standard thread is
// reduced to its major radius, its root radius and its pitch. Flank angles
// and crest rounding are not reproduced.
package thread

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/soypat/wscrew"
)

// Threader is a standard thread.
type Threader interface {
	Spec() Spec
}

// Spec holds the dimensions of a thread that a generated screw can reproduce.
type Spec struct {
	Name string
	// Major is the nominal major radius.
	Major float64
	// Minor is the radius at the thread root.
	Minor float64
	// Pitch is the thread to thread distance.
	Pitch float64
	// Taper is the thread taper in radians. Generated screws are never tapered.
	Taper float64
}

// Screw returns the parameters of a screw of the given length with thread t.
// Rounds are chosen so the generated pitch is the closest to the thread's pitch.
// The generated pitch of a screw with R rounds and height H is 4H/(4R+3).
func Screw(length float64, t Threader) (wscrew.Parameters, error) {
	if t == nil {
		return wscrew.Parameters{}, errors.New("nil threader")
	}
	if length <= 0 {
		return wscrew.Parameters{}, errors.New("need greater than zero length")
	}
	spec := t.Spec()
	if spec.Pitch <= 0 || spec.Minor < 0 || spec.Major <= spec.Minor {
		return wscrew.Parameters{}, fmt.Errorf("invalid %s thread dimensions", spec.Name)
	}
	rounds := int(math.Round(length/spec.Pitch - 0.75))
	if rounds < 1 {
		return wscrew.Parameters{}, fmt.Errorf("length %g too short for a single %s round of pitch %g", length, spec.Name, spec.Pitch)
	}
	p := wscrew.DefaultParameters()
	p.Rounds = rounds
	p.Height = length
	p.Radius1 = spec.Minor
	p.Radius2 = spec.Major
	return p, nil
}

// Pitch returns the pitch of a screw generated with p.
func Pitch(p wscrew.Parameters) float64 {
	p = p.Normalize()
	return 4 * p.Height / float64(4*p.Rounds+3)
}

// Parse returns the thread named by designation. Recognized forms are
// metric "M16x2" (coarse pitch implied for "M16"), acme "Tr16x4",
// unified "1/4-20" and pipe "NPT 1/2". Metric and acme dimensions are in
// millimeters, unified and pipe threads in inches.
func Parse(designation string) (Threader, error) {
	d := strings.TrimSpace(designation)
	switch {
	case strings.HasPrefix(d, "Tr"):
		var acme Acme
		if _, err := fmt.Sscanf(d, "Tr%gx%g", &acme.D, &acme.P); err != nil {
			return nil, fmt.Errorf("parsing acme thread %q: %w", designation, err)
		}
		return acme, nil
	case strings.HasPrefix(d, "M"):
		iso := ISO{Ext: true}
		if strings.ContainsRune(d, 'x') {
			if _, err := fmt.Sscanf(d, "M%gx%g", &iso.D, &iso.P); err != nil {
				return nil, fmt.Errorf("parsing metric thread %q: %w", designation, err)
			}
			return iso, nil
		}
		if _, err := fmt.Sscanf(d, "M%g", &iso.D); err != nil {
			return nil, fmt.Errorf("parsing metric thread %q: %w", designation, err)
		}
		if err := iso.SetCoarse(); err != nil {
			return nil, err
		}
		return iso, nil
	case strings.HasPrefix(d, "NPT"):
		nominal, err := parseFraction(strings.TrimSpace(strings.TrimPrefix(d, "NPT")))
		if err != nil {
			return nil, fmt.Errorf("parsing pipe thread %q: %w", designation, err)
		}
		var npt NPT
		if err := npt.SetFromNominal(nominal); err != nil {
			return nil, err
		}
		return npt, nil
	}
	dia, tpi, ok := strings.Cut(d, "-")
	if !ok {
		return nil, fmt.Errorf("unknown thread designation %q", designation)
	}
	uts := UTS{Ext: true}
	var err error
	uts.D, err = parseFraction(dia)
	if err == nil {
		_, err = fmt.Sscanf(tpi, "%g", &uts.TPI)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing unified thread %q: %w", designation, err)
	}
	return uts, nil
}

// parseFraction parses "3", "1/2" or "1 1/4".
func parseFraction(s string) (float64, error) {
	var whole, num, den float64
	switch {
	case strings.Count(s, " ") == 1:
		_, err := fmt.Sscanf(s, "%g %g/%g", &whole, &num, &den)
		if err != nil {
			return 0, err
		}
	case strings.ContainsRune(s, '/'):
		_, err := fmt.Sscanf(s, "%g/%g", &num, &den)
		if err != nil {
			return 0, err
		}
	default:
		_, err := fmt.Sscanf(s, "%g", &whole)
		return whole, err
	}
	if den == 0 {
		return 0, errors.New("zero denominator")
	}
	return whole + num/den, nil
}
