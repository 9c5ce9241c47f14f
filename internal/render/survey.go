package render

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/accel-data/beamline/internal/beamline"
)

// laneColors cycles per component type in the survey plot.
var laneColors = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
	{R: 227, G: 119, B: 194, A: 255},
	{R: 127, G: 127, B: 127, A: 255},
}

// SurveyPlotPNG writes a static survey plot of the model to path: each
// component type occupies one horizontal lane, markers sit at element
// centres along s. The beam axis is drawn at lane 0.
func SurveyPlotPNG(m *beamline.AcceleratorModel, path string) error {
	p := plot.New()
	p.Title.Text = "Beamline survey"
	p.X.Label.Text = "s (m)"
	p.Y.Label.Text = "component type"
	p.Y.Tick.Marker = plot.ConstantTicks(nil)

	// Beam axis from entrance to exit.
	axis := plotter.XYs{{X: 0, Y: 0}, {X: m.ArcLength(), Y: 0}}
	line, err := plotter.NewLine(axis)
	if err != nil {
		return fmt.Errorf("failed to build axis line: %w", err)
	}
	line.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	p.Add(line)

	byType := latticeByType(m)
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	positions := m.SPositions()
	ticks := make([]plot.Tick, 0, len(types))
	for lane, t := range types {
		pts := make(plotter.XYs, 0, len(byType[t]))
		for _, i := range byType[t] {
			cf := m.Lattice()[i]
			pts = append(pts, plotter.XY{X: positions[i] + cf.Length()/2, Y: float64(lane + 1)})
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("failed to build scatter for %s: %w", t, err)
		}
		scatter.GlyphStyle.Color = laneColors[lane%len(laneColors)]
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(scatter)
		p.Legend.Add(t, scatter)
		ticks = append(ticks, plot.Tick{Value: float64(lane + 1), Label: t})
	}
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Min = -0.5
	p.Y.Max = float64(len(types)) + 0.5
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save survey plot: %w", err)
	}
	return nil
}
