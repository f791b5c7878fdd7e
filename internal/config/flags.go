package config

import "flag"

// Flags are the command line overrides of a Config.
type Flags struct {
	fs       *flag.FlagSet
	config   *string
	debug    *bool
	rounds   *int
	segments *int
	height   *float64
	r1       *float64
	r2       *float64
	flat     *bool
	thread   *string
	stl      *string
	obj      *string
	png      *string
	profile  *string
	material *string
	check    *bool
}

// NewFlags registers the override flags on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:       fs,
		config:   fs.String("config", "", "Path to config file"),
		debug:    fs.Bool("debug", false, "Enable debug logging"),
		rounds:   fs.Int("rounds", 0, "Number of thread rounds"),
		segments: fs.Int("segments", 0, "Vertices per full turn"),
		height:   fs.Float64("height", 0, "Total screw height"),
		r1:       fs.Float64("r1", 0, "Inner radius"),
		r2:       fs.Float64("r2", 0, "Outer thread radius"),
		flat:     fs.Bool("flat", false, "Flat shading"),
		thread:   fs.String("thread", "", "Standard thread designation, e.g. M6x1, Tr16x4, 1/4-20, NPT 1/2"),
		stl:      fs.String("o", "", "STL output path"),
		obj:      fs.String("obj", "", "OBJ output path"),
		png:      fs.String("png", "", "Preview image output path"),
		profile:  fs.String("profile", "", "Layer profile plot output path"),
		material: fs.String("material", "", "Shrinkage compensation material: none, pla"),
		check:    fs.Bool("check", false, "Report mesh defects"),
	}
}

// ConfigPath returns the explicit config path if provided via -config flag.
func (f *Flags) ConfigPath() string {
	return *f.config
}

// apply applies the flags given on the command line to the config.
// Flags left out keep the file or default value, so zero values are valid
// overrides.
func (f *Flags) apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			if *f.debug {
				cfg.Logging.Level = "debug"
			}
		case "rounds":
			cfg.Screw.Rounds = *f.rounds
		case "segments":
			cfg.Screw.Segments = *f.segments
		case "height":
			cfg.Screw.Height = *f.height
		case "r1":
			cfg.Screw.Radius1 = *f.r1
		case "r2":
			cfg.Screw.Radius2 = *f.r2
		case "flat":
			cfg.Screw.Smoothed = !*f.flat
		case "thread":
			cfg.Thread = *f.thread
		case "o":
			cfg.Output.STL = *f.stl
		case "obj":
			cfg.Output.OBJ = *f.obj
		case "png":
			cfg.Output.PNG = *f.png
		case "profile":
			cfg.Output.Profile = *f.profile
		case "material":
			cfg.Output.Material = *f.material
		case "check":
			cfg.Output.Check = *f.check
		}
	})
}
