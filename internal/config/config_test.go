package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/wscrew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, wscrew.DefaultParameters(), cfg.Screw)
	assert.Equal(t, wscrew.DefaultShading().AutoSmoothAngle, cfg.Shading.AutoSmoothAngle)
	assert.Equal(t, "wscrew.stl", cfg.Output.STL)
	assert.Equal(t, "none", cfg.Output.Material)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.File.Path)
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "wscrew.yaml")
	yamlContent := `
screw:
  rounds: 3
  segments: 24
  radius_2: 0.8
output:
  obj: "screw.obj"
  check: true
logging:
  level: "debug"
  file:
    path: "wscrew.log"
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

	cfg := Default()
	require.NoError(t, loadFromFile(cfg, configPath))
	assert.Equal(t, 3, cfg.Screw.Rounds)
	assert.Equal(t, 24, cfg.Screw.Segments)
	assert.Equal(t, 0.8, cfg.Screw.Radius2)
	// Keys missing from the file keep their default.
	assert.Equal(t, 2.0, cfg.Screw.Height)
	assert.Equal(t, 0.5, cfg.Screw.Radius1)
	assert.True(t, cfg.Screw.Smoothed)
	assert.Equal(t, "wscrew.stl", cfg.Output.STL)
	assert.Equal(t, "screw.obj", cfg.Output.OBJ)
	assert.True(t, cfg.Output.Check)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "wscrew.log", cfg.Logging.File.Path)
}

func TestLoadFromFileNotFound(t *testing.T) {
	err := loadFromFile(Default(), "/nonexistent/path/wscrew.yaml")
	assert.Error(t, err)
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("screw: [\n  invalid"), 0644))
	assert.Error(t, loadFromFile(Default(), configPath))
}

func TestSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "wscrew.yaml")
	cfg := Default()
	cfg.Screw.Rounds = 7
	cfg.Screw.Smoothed = false
	cfg.Output.PNG = "preview.png"
	require.NoError(t, cfg.SaveTo(configPath))

	loaded := Default()
	require.NoError(t, loadFromFile(loaded, configPath))
	assert.Equal(t, cfg, loaded)
}

func TestFlagsOverride(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "wscrew.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("screw:\n  rounds: 3\n  segments: 24\n"), 0644))

	fs := flag.NewFlagSet("wscrew", flag.ContinueOnError)
	flags := NewFlags(fs)
	err := fs.Parse([]string{"-config", configPath, "-rounds", "9", "-r1", "0", "-flat", "-debug", "-o", "out.stl", "-material", "pla", "-thread", "M6x1"})
	require.NoError(t, err)

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Screw.Rounds)
	assert.Equal(t, 24, cfg.Screw.Segments, "file value must survive unset flag")
	assert.Equal(t, 0.0, cfg.Screw.Radius1)
	assert.Equal(t, 0.6, cfg.Screw.Radius2)
	assert.False(t, cfg.Screw.Smoothed)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "out.stl", cfg.Output.STL)
	assert.Equal(t, "pla", cfg.Output.Material)
	assert.Equal(t, "M6x1", cfg.Thread)
}

func TestFlagsZeroOverride(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "wscrew.yaml")
	yamlContent := `
screw:
  rounds: 3
  height: 4
  smoothed: false
shading:
  auto_smooth_angle: 0.5
output:
  check: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

	fs := flag.NewFlagSet("wscrew", flag.ContinueOnError)
	flags := NewFlags(fs)
	err := fs.Parse([]string{"-config", configPath, "-height", "0", "-rounds", "0", "-flat=false", "-check=false"})
	require.NoError(t, err)

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Screw.Height)
	assert.Equal(t, 0, cfg.Screw.Rounds)
	assert.True(t, cfg.Screw.Smoothed, "-flat=false must turn smoothing back on")
	assert.False(t, cfg.Output.Check)
	assert.Equal(t, 0.5, cfg.Shading.AutoSmoothAngle)
	assert.Equal(t, wscrew.DefaultParameters().Radius1, cfg.Screw.Radius1, "unset flag must not override")
}

func TestLoadMissingExplicitConfig(t *testing.T) {
	fs := flag.NewFlagSet("wscrew", flag.ContinueOnError)
	flags := NewFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", "/nonexistent/wscrew.yaml"}))
	_, err := Load(flags)
	assert.Error(t, err)
}
