// Command wscrew generates a helical screw mesh and writes it as STL, OBJ,
// a preview image or a layer profile plot.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/soypat/wscrew"
	"github.com/soypat/wscrew/helpers/matter"
	"github.com/soypat/wscrew/helpers/meshcheck"
	"github.com/soypat/wscrew/helpers/profile"
	"github.com/soypat/wscrew/helpers/thread"
	"github.com/soypat/wscrew/internal/config"
	"github.com/soypat/wscrew/internal/logger"
	"github.com/soypat/wscrew/render"
)

func main() {
	fs := flag.NewFlagSet("wscrew", flag.ExitOnError)
	flags := config.NewFlags(fs)
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, cfg.Logging.File, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger.Log); err != nil {
		logger.Log.Error("generation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	material, ok := matter.ByName(cfg.Output.Material)
	if !ok {
		return fmt.Errorf("unknown material %q", cfg.Output.Material)
	}
	given := cfg.Screw
	if cfg.Thread != "" {
		t, err := thread.Parse(cfg.Thread)
		if err != nil {
			return err
		}
		tp, err := thread.Screw(cfg.Screw.Height, t)
		if err != nil {
			return err
		}
		tp.Segments, tp.Smoothed = given.Segments, given.Smoothed
		given = tp
		log.Info("thread", zap.String("designation", t.Spec().Name), zap.Float64("pitch", thread.Pitch(tp)))
	}
	p := given.Normalize()
	if p != given {
		log.Warn("parameters clamped", zap.Any("given", given), zap.Any("used", p))
	}
	gen := wscrew.Generator{OnDiagnostic: diagnosticLogger(log)}
	start := time.Now()
	m := gen.Generate(p)
	log.Info("screw generated",
		zap.Int("rounds", p.Rounds),
		zap.Int("segments", p.Segments),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("faces", len(m.Faces)),
		zap.Duration("elapsed", time.Since(start)),
	)
	if err := m.Validate(); err != nil {
		return err
	}
	m = material.Scale(m)
	if cfg.Output.Check {
		report := meshcheck.Check(m, 1e-9)
		log.Info("mesh check", zap.Stringer("report", report))
		if !report.Manifold() {
			log.Warn("mesh has defects", zap.Stringer("report", report))
		}
	}

	sh := shading(cfg, m)
	outputs := []struct {
		path  string
		write func(w io.Writer) error
	}{
		{cfg.Output.STL, func(w io.Writer) error {
			model, err := render.RenderAll(render.NewMeshRenderer(m))
			if err != nil {
				return err
			}
			return render.WriteSTL(w, model)
		}},
		{cfg.Output.OBJ, func(w io.Writer) error {
			return render.WriteOBJ(w, "wscrew", m, sh)
		}},
		{cfg.Output.PNG, func(w io.Writer) error {
			view := render.DefaultView()
			view.Caption = fmt.Sprintf("rounds=%d segments=%d r1=%g r2=%g", p.Rounds, p.Segments, p.Radius1, p.Radius2)
			return render.WritePNG(w, m, sh, view)
		}},
		{cfg.Output.Profile, func(w io.Writer) error {
			format := strings.TrimPrefix(filepath.Ext(cfg.Output.Profile), ".")
			return profile.Plot(wscrew.NewSchedule(p), w, format)
		}},
	}
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := writeFile(out.path, out.write); err != nil {
			return fmt.Errorf("writing %s: %w", out.path, err)
		}
		log.Info("wrote file", zap.String("path", out.path))
	}
	if cfg.Output.Check && cfg.Output.STL != "" && cfg.Output.STL != "-" {
		if err := checkSTL(cfg.Output.STL, 2*len(m.Faces), log); err != nil {
			return fmt.Errorf("checking %s: %w", cfg.Output.STL, err)
		}
	}
	return nil
}

// shading takes the smooth flag from the mesh and the auto smooth angle from cfg.
func shading(cfg *config.Config, m wscrew.Mesh) wscrew.Shading {
	sh := m.Shading()
	sh.AutoSmoothAngle = cfg.Shading.AutoSmoothAngle
	return sh
}

// checkSTL reads back a written STL file and logs suspicious triangles.
// A triangle count other than want is an error.
func checkSTL(path string, want int, log *zap.Logger) error {
	fp, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	_, stats, err := render.ReadSTL(fp)
	if err != nil {
		return err
	}
	fields := []zap.Field{
		zap.Int("triangles", stats.Triangles),
		zap.Int("flipped_normals", stats.FlippedNormals),
		zap.Int("normal_mismatches", stats.NormalMismatches),
		zap.Int("degenerate", stats.Degenerate),
	}
	if stats.Triangles != want {
		return fmt.Errorf("read %d triangles, wrote %d", stats.Triangles, want)
	}
	if !stats.Clean() {
		log.Warn("stl readback found suspicious triangles", fields...)
		return nil
	}
	log.Info("stl readback", fields...)
	return nil
}

// diagnosticLogger logs skipped bridges. Holes are the only diagnostics
// that end up as defects in the mesh.
func diagnosticLogger(log *zap.Logger) func(wscrew.Diagnostic) {
	return func(d wscrew.Diagnostic) {
		fields := []zap.Field{
			zap.Stringer("stage", d.Stage),
			zap.Int("loop1", d.Loop1),
			zap.Int("loop2", d.Loop2),
			zap.Int("len1", d.Len1),
			zap.Int("len2", d.Len2),
		}
		if d.Stage == wscrew.StageHole {
			log.Warn("layers left unbridged", fields...)
			return
		}
		log.Debug("bridge skipped", fields...)
	}
}

// writeFile writes to path, "-" writes to stdout.
func writeFile(path string, write func(w io.Writer) error) error {
	if path == "-" {
		return write(os.Stdout)
	}
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(fp); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
