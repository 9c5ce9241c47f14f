// Package render produces read-only visualisations of a finished beamline
// model: an interactive HTML synoptic built with go-echarts and a static
// PNG survey plot built with gonum/plot. Neither mutates the model.
package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/accel-data/beamline/internal/beamline"
)

// WriteSynopticHTML renders the model's flat lattice as an interactive
// scatter chart: s-position along the x-axis, one series per component
// type. Hovering an element shows its name and length.
func WriteSynopticHTML(m *beamline.AcceleratorModel, w io.Writer) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Beamline synoptic",
			Subtitle: fmt.Sprintf("%d components, arc length %.3f m", len(m.Lattice()), m.ArcLength()),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "s (m)", Type: "value", Max: m.ArcLength()}),
		charts.WithYAxisOpts(opts.YAxis{Name: "type"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	byType := latticeByType(m)
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	positions := m.SPositions()
	for lane, t := range types {
		data := make([]opts.ScatterData, 0, len(byType[t]))
		for _, i := range byType[t] {
			cf := m.Lattice()[i]
			center := positions[i] + cf.Length()/2
			data = append(data, opts.ScatterData{
				Name:  fmt.Sprintf("%s (L=%.3f m)", cf.Name(), cf.Length()),
				Value: []interface{}{center, lane},
			})
		}
		scatter.AddSeries(t, data)
	}

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("failed to render synoptic chart: %w", err)
	}
	return nil
}

// latticeByType groups lattice indices by component type tag.
func latticeByType(m *beamline.AcceleratorModel) map[string][]int {
	byType := make(map[string][]int)
	for i, cf := range m.Lattice() {
		t := cf.Type()
		if cf.IsComponent() {
			t = cf.Component().Type()
		}
		byType[t] = append(byType[t], i)
	}
	return byType
}
