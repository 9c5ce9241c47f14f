package optics

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/accel-data/beamline/internal/beamline"
	"github.com/accel-data/beamline/internal/monitoring"
	"github.com/accel-data/beamline/internal/units"
)

// Builder constructs an accelerator model from an optics table, translating
// table rows into well-formed ModelConstructor calls. Malformed input
// (unbalanced structure markers, appending after finish) surfaces as errors
// here; by the time calls reach the constructor they satisfy its contract.
//
// Structure markers follow the MAD sequence convention: a marker row named
// "X$START" opens frame X and "X$END" closes it. With HonourMadStructure
// every such pair becomes a frame; otherwise only names prefixed "M_", "S_"
// or "G_" do. ConstructFlatLattice suppresses frames entirely.
type Builder struct {
	table    *Table
	momentum float64

	ctor    *beamline.ModelConstructor
	factory *TypeFactory

	logFlag            bool
	honourMadStructure bool
	flatLattice        bool
	singleCellRF       bool
	scaleSR            bool

	zeroLengths map[string]struct{}
	driftTypes  map[string]struct{}

	// z is the accumulated distance along the lattice in metres.
	z float64
	// frameNames tracks open structure frames for begin/end matching.
	frameNames []string
}

// NewBuilder reads an optics table and prepares a builder with the given
// reference momentum in GeV/c.
func NewBuilder(r io.Reader, momentumGeV float64) (*Builder, error) {
	table, err := ReadTable(r)
	if err != nil {
		return nil, err
	}
	return &Builder{
		table:       table,
		momentum:    momentumGeV,
		factory:     NewTypeFactory(),
		zeroLengths: make(map[string]struct{}),
		driftTypes:  make(map[string]struct{}),
	}, nil
}

// Table returns the parsed optics table.
func (b *Builder) Table() *Table { return b.table }

// Factory returns the type factory, so callers can register overrides.
func (b *Builder) Factory() *TypeFactory { return b.factory }

// Momentum returns the current reference momentum in GeV/c. It decreases
// during construction when synchrotron-radiation scaling is enabled.
func (b *Builder) Momentum() float64 { return b.momentum }

// SetMomentum replaces the reference momentum in GeV/c.
func (b *Builder) SetMomentum(p float64) { b.momentum = p }

// Z returns the accumulated distance along the lattice in metres.
func (b *Builder) Z() float64 { return b.z }

// SetLogging turns per-element construction logging on or off.
func (b *Builder) SetLogging(on bool) { b.logFlag = on }

// HonourMadStructure controls whether every structure-marker pair becomes a
// frame, or only those prefixed M_, S_ or G_.
func (b *Builder) HonourMadStructure(on bool) { b.honourMadStructure = on }

// ConstructFlatLattice suppresses nested frames: all components are
// appended directly to the root frame.
func (b *Builder) ConstructFlatLattice(on bool) { b.flatLattice = on }

// SetSingleCellRF forces RF cavities to a half-wavelength cell plus a drift
// making up the remaining row length.
func (b *Builder) SetSingleCellRF(on bool) { b.singleCellRF = on }

// ScaleForSynchRad reduces the reference momentum after each dipole by the
// classical per-dipole radiation loss, so downstream magnet fields are
// scaled to the decaying beam energy. Assumes an electron beam with
// energy equal to momentum.
func (b *Builder) ScaleForSynchRad(on bool) { b.scaleSR = on }

// IgnoreZeroLengthType skips rows of the given type when their length is
// zero.
func (b *Builder) IgnoreZeroLengthType(typ string) {
	b.zeroLengths[strings.ToUpper(typ)] = struct{}{}
}

// TreatTypeAsDrift constructs rows of the given type as plain drifts.
func (b *Builder) TreatTypeAsDrift(typ string) {
	b.driftTypes[strings.ToUpper(typ)] = struct{}{}
}

// Constructor returns the underlying model constructor, or nil when no
// model is under construction.
func (b *Builder) Constructor() *beamline.ModelConstructor { return b.ctor }

// ConstructModel builds a complete model from the builder's table and
// returns it finished and consolidated.
func (b *Builder) ConstructModel() (*beamline.AcceleratorModel, error) {
	b.ctor = beamline.NewModelConstructor()
	b.z = 0
	b.frameNames = b.frameNames[:0]
	if err := b.processTable(b.table); err != nil {
		return nil, err
	}
	return b.GetModel()
}

// AppendModel reads a further optics table and appends its contents to the
// in-progress model, starting one if necessary. The reference momentum is
// replaced by momentumGeV. Call GetModel to finish.
func (b *Builder) AppendModel(r io.Reader, momentumGeV float64) error {
	table, err := ReadTable(r)
	if err != nil {
		return err
	}
	if b.ctor == nil {
		b.ctor = beamline.NewModelConstructor()
		b.z = 0
		b.frameNames = b.frameNames[:0]
	}
	b.momentum = momentumGeV
	return b.processTable(table)
}

// GetModel finishes and returns the in-progress model. It fails if no model
// is under construction or if a structure frame is still open.
func (b *Builder) GetModel() (*beamline.AcceleratorModel, error) {
	if b.ctor == nil {
		return nil, errors.New("optics: no model under construction")
	}
	if n := len(b.frameNames); n > 0 {
		return nil, fmt.Errorf("optics: unterminated frame %q", b.frameNames[n-1])
	}
	m := b.ctor.GetModel()
	b.ctor = nil
	return m, nil
}

// ConstructNewFrame opens a named structure frame.
func (b *Builder) ConstructNewFrame(name string) {
	b.ctor.NewFrame(beamline.NewSequenceFrame(name, beamline.OriginAtEntrance))
	b.frameNames = append(b.frameNames, name)
	if b.logFlag {
		monitoring.Logf("optics: open frame %s", name)
	}
}

// EndFrame closes the named structure frame. The name must match the most
// recently opened frame.
func (b *Builder) EndFrame(name string) error {
	n := len(b.frameNames)
	if n == 0 {
		return fmt.Errorf("optics: end of frame %q with no frame open", name)
	}
	if top := b.frameNames[n-1]; top != name {
		return fmt.Errorf("optics: end of frame %q does not match open frame %q", name, top)
	}
	b.frameNames = b.frameNames[:n-1]
	b.ctor.EndFrame()
	if b.logFlag {
		monitoring.Logf("optics: close frame %s", name)
	}
	return nil
}

func (b *Builder) processTable(t *Table) error {
	for i := 0; i < t.Len(); i++ {
		if err := b.processRow(t.Row(i)); err != nil {
			return fmt.Errorf("optics: row %d: %w", i+1, err)
		}
	}
	return nil
}

func (b *Builder) processRow(row Row) error {
	keyword := strings.ToUpper(row.Str("KEYWORD"))
	name := row.Str("NAME")
	length := row.Value("L")

	// Structure markers delimit LINE constructs in the table.
	if frame, ok := strings.CutSuffix(name, "$START"); ok {
		if b.shouldFrame(frame) {
			b.ConstructNewFrame(frame)
		}
		return nil
	}
	if frame, ok := strings.CutSuffix(name, "$END"); ok {
		if b.shouldFrame(frame) {
			return b.EndFrame(frame)
		}
		return nil
	}

	if _, ok := b.driftTypes[keyword]; ok {
		keyword = "DRIFT"
	}
	if _, ok := b.zeroLengths[keyword]; ok && length == 0 {
		if b.logFlag {
			monitoring.Logf("optics: ignoring zero-length %s %s", keyword, name)
		}
		return nil
	}
	if keyword == "MULTIPOLE" {
		keyword = ResolveMultipole(row)
	}

	brho := units.BrhoFromMomentum(b.momentum)
	var components []beamline.AcceleratorComponent
	if keyword == "RFCAVITY" && b.singleCellRF {
		components = b.singleCellCavity(row)
	} else {
		components = b.factory.Build(keyword, row, brho)
	}

	for _, c := range components {
		b.ctor.AppendComponentFrame(beamline.NewComponentFrame(c))
		b.z += c.Length()
		if b.logFlag {
			monitoring.Logf("optics: %s %s at z=%.4f m (L=%.4f m)", c.Type(), c.Name(), b.z, c.Length())
		}
		if b.scaleSR {
			b.applySynchRadLoss(c)
		}
	}
	return nil
}

// singleCellCavity forces an RF cavity row to half-wavelength geometry,
// padding the remaining row length with a drift so the arc length of the
// beamline is preserved.
func (b *Builder) singleCellCavity(row Row) []beamline.AcceleratorComponent {
	name := row.Str("NAME")
	length := row.Value("L")
	freq := row.Value("FREQ") * 1e6
	half := units.RFHalfWavelength(freq)
	if half <= 0 || half >= length {
		return b.factory.Build("RFCAVITY", row, units.BrhoFromMomentum(b.momentum))
	}
	cavity := beamline.NewRFCavity(name, half, row.Value("VOLT"), freq, 0)
	filler := beamline.NewDrift(name+"_DRIFT", length-half)
	return []beamline.AcceleratorComponent{cavity, filler}
}

func (b *Builder) applySynchRadLoss(c beamline.AcceleratorComponent) {
	var theta, rho float64
	switch bend := c.(type) {
	case *beamline.SectorBend:
		theta, rho = bend.Angle, bend.Radius()
	case *beamline.RectBend:
		if bend.Angle != 0 {
			theta, rho = bend.Angle, bend.Length()/bend.Angle
		}
	default:
		return
	}
	loss := units.SynchRadLossPerDipole(b.momentum, theta, rho)
	if loss == 0 {
		return
	}
	b.momentum -= loss
	if b.logFlag {
		monitoring.Logf("optics: synchrotron loss %.6g GeV in %s; momentum now %.6g GeV/c",
			loss, c.Name(), b.momentum)
	}
}

func (b *Builder) shouldFrame(name string) bool {
	if b.flatLattice {
		return false
	}
	if b.honourMadStructure {
		return true
	}
	for _, prefix := range []string{"M_", "S_", "G_"} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
