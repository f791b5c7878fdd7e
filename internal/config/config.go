// Package config handles loading of generation and output settings.
package config

import (
	"github.com/soypat/wscrew"
	"github.com/soypat/wscrew/internal/logger"
)

// Config holds all settings of a wscrew run.
type Config struct {
	Screw wscrew.Parameters `yaml:"screw"`
	// Thread is a standard thread designation such as "M6x1" or "1/4-20".
	// When set it replaces the rounds and radii of Screw. Screw.Height is the length.
	Thread  string        `yaml:"thread"`
	Shading ShadingConfig `yaml:"shading"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ShadingConfig tunes smooth shading of the outputs. Whether a mesh is
// shaded smooth at all is set by screw.smoothed.
type ShadingConfig struct {
	// AutoSmoothAngle in radians. Sharper edges are shaded flat.
	AutoSmoothAngle float64 `yaml:"auto_smooth_angle"`
}

// OutputConfig holds the paths generated files are written to.
// Empty paths are skipped.
type OutputConfig struct {
	STL     string `yaml:"stl"`
	OBJ     string `yaml:"obj"`
	PNG     string `yaml:"png"`
	Profile string `yaml:"profile"`
	// Material compensates printing shrinkage. One of "none" or "pla".
	Material string `yaml:"material"`
	// Check runs the mesh defect report after generation and reads
	// the written STL back to validate it.
	Check bool `yaml:"check"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string            `yaml:"level"`
	File  logger.FileConfig `yaml:"file"`
}

// Default returns a Config with the default screw and STL output.
func Default() *Config {
	return &Config{
		Screw:   wscrew.DefaultParameters(),
		Shading: ShadingConfig{AutoSmoothAngle: wscrew.DefaultShading().AutoSmoothAngle},
		Output: OutputConfig{
			STL:      "wscrew.stl",
			Material: "none",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
