// Package profile plots the layer schedule of a screw as height over sweep angle.
package profile

import (
	"fmt"
	"io"
	"strconv"

	"github.com/soypat/wscrew"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Size of the plot written by Plot.
const (
	Width  = 8 * vg.Inch
	Height = 6 * vg.Inch
)

// Layers returns one polyline per layer of the schedule with the sweep
// angle on the X axis and the height on the Y axis. Excluded sweep
// indices are left out as they are in the generated mesh.
func Layers(s wscrew.Schedule) []plotter.XYs {
	layers := make([]plotter.XYs, s.Layers)
	for j := range layers {
		for i := 0; i <= s.Segments; i++ {
			if s.Excluded(j, i) {
				continue
			}
			layers[j] = append(layers[j], plotter.XY{X: s.Angle(j, i), Y: s.Height(j, i)})
		}
	}
	return layers
}

// Plot draws every layer of s and writes the image to w.
// format is one of the formats supported by gonum plot: "png", "svg", "pdf", "eps", "jpg", "tif".
func Plot(s wscrew.Schedule, w io.Writer, format string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%d layers, %d segments", s.Layers, s.Segments)
	p.X.Label.Text = "angle [rad]"
	p.Y.Label.Text = "height"
	p.Add(plotter.NewGrid())
	for j, xys := range Layers(s) {
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("layer %d: %w", j, err)
		}
		line.Color = plotutil.Color(j)
		p.Add(line)
		if j == 0 || j == s.Layers-1 {
			p.Legend.Add("layer "+strconv.Itoa(j), line)
		}
	}
	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
