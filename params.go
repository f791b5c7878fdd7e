package wscrew

const (
	minRounds   = 1
	minSegments = 4
)

// Parameters define a screw mesh. All fields but Smoothed drive the topology.
type Parameters struct {
	// Rounds is the number of full helical turns of the thread.
	Rounds int `yaml:"rounds"`
	// Segments is the angular resolution of one round.
	Segments int     `yaml:"segments"`
	Height   float64 `yaml:"height"`
	// Radius1 is the radius of the caps and the thread root.
	Radius1 float64 `yaml:"radius_1"`
	// Radius2 is the radius of the thread crest.
	Radius2 float64 `yaml:"radius_2"`
	// Smoothed is a shading hint for whoever materializes the mesh.
	Smoothed bool `yaml:"smoothed"`
}

// DefaultParameters returns the parameters of a freshly created screw.
func DefaultParameters() Parameters {
	return Parameters{
		Rounds:   5,
		Segments: 12,
		Height:   2.0,
		Radius1:  0.5,
		Radius2:  0.6,
		Smoothed: true,
	}
}

// Normalize returns p with out of range values clamped: Rounds to at least 1,
// Segments to at least 4 and negative radii to 0. Height is left untouched.
func (p Parameters) Normalize() Parameters {
	if p.Rounds < minRounds {
		p.Rounds = minRounds
	}
	if p.Segments < minSegments {
		p.Segments = minSegments
	}
	if p.Radius1 < 0 {
		p.Radius1 = 0
	}
	if p.Radius2 < 0 {
		p.Radius2 = 0
	}
	return p
}
