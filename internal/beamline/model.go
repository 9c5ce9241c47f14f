package beamline

// FlatLattice is the ordered sequence of component occurrences in physical
// beamline order. It is append-only; an occurrence's index is its position
// at the moment of insertion and is never renumbered, because downstream
// tracking code addresses components by index.
type FlatLattice []*ComponentFrame

// AcceleratorModel aggregates a finished (or in-progress) beamline model:
// the root frame of the structural tree, the registry owning every entity,
// and the flat lattice of component occurrences.
type AcceleratorModel struct {
	globalFrame *SequenceFrame
	elements    *ElementRegistry
	lattice     FlatLattice
}

// GlobalFrame returns the root frame of the model's frame tree.
func (m *AcceleratorModel) GlobalFrame() *SequenceFrame { return m.globalFrame }

// Elements returns the model's entity registry.
func (m *AcceleratorModel) Elements() *ElementRegistry { return m.elements }

// Lattice returns the flat lattice in beamline order. The returned slice
// must not be modified.
func (m *AcceleratorModel) Lattice() FlatLattice { return m.lattice }

// ArcLength returns the total geometric length of the beamline in metres.
func (m *AcceleratorModel) ArcLength() float64 { return m.globalFrame.Length() }

// SPositions returns the entrance s-coordinate of every lattice entry, in
// lattice order. Positions accumulate component lengths from s=0 at the
// model entrance.
func (m *AcceleratorModel) SPositions() []float64 {
	positions := make([]float64, len(m.lattice))
	var s float64
	for i, cf := range m.lattice {
		positions[i] = s
		s += cf.Length()
	}
	return positions
}
