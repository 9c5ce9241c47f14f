package beamline

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"
)

// ReportStatistics writes a summary of the in-progress model to w: total
// arc length, lattice and registry sizes, per-type entity counts and a
// length-distribution summary over the lattice. Read-only; the model is not
// mutated and construction may continue afterwards.
func (mc *ModelConstructor) ReportStatistics(w io.Writer) {
	mc.mustBeBuilding("ReportStatistics")
	m := mc.current

	fmt.Fprintf(w, "Arc length of beamline:     %g meter\n", m.globalFrame.Length())
	fmt.Fprintf(w, "Total number of components: %d\n", len(m.lattice))
	fmt.Fprintf(w, "Total number of elements:   %d\n", m.elements.Size())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Model Element statistics")
	fmt.Fprintln(w, "------------------------")
	fmt.Fprintln(w)

	counts := m.elements.CountByType()
	for _, t := range m.elements.Types() {
		fmt.Fprintf(w, "%-20s%-4d\n", t, counts[t])
	}
	fmt.Fprintln(w)

	if len(m.lattice) == 0 {
		return
	}
	lengths := make([]float64, len(m.lattice))
	for i, cf := range m.lattice {
		lengths[i] = cf.Length()
	}
	mean, std := stat.MeanStdDev(lengths, nil)
	if len(lengths) < 2 {
		std = 0
	}
	fmt.Fprintf(w, "Component length:           mean %.4g m, stddev %.4g m\n", mean, std)
}
