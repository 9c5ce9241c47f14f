package beamline

// element carries the name and geometric length shared by every concrete
// component type.
type element struct {
	name   string
	length float64
}

func (e *element) Name() string    { return e.name }
func (e *element) Length() float64 { return e.length }

// Drift is a field-free straight section.
type Drift struct {
	element
}

// NewDrift creates a drift of the given length in metres.
func NewDrift(name string, length float64) *Drift {
	return &Drift{element{name: name, length: length}}
}

func (*Drift) Type() string { return "Drift" }

// SectorBend is a sector dipole magnet. Field is the vertical bending field
// in tesla; Angle is the total bend angle in radians.
type SectorBend struct {
	element
	Field float64
	Angle float64
	// Pole-face rotations at entrance and exit, radians.
	E1, E2 float64
}

// NewSectorBend creates a sector bend of the given length, field and angle.
func NewSectorBend(name string, length, field, angle float64) *SectorBend {
	return &SectorBend{element: element{name: name, length: length}, Field: field, Angle: angle}
}

func (*SectorBend) Type() string { return "SectorBend" }

// Radius returns the bending radius in metres, or 0 for a straight magnet.
func (b *SectorBend) Radius() float64 {
	if b.Angle == 0 {
		return 0
	}
	return b.length / b.Angle
}

// RectBend is a rectangular dipole magnet.
type RectBend struct {
	element
	Field float64
	Angle float64
}

// NewRectBend creates a rectangular bend of the given length, field and angle.
func NewRectBend(name string, length, field, angle float64) *RectBend {
	return &RectBend{element: element{name: name, length: length}, Field: field, Angle: angle}
}

func (*RectBend) Type() string { return "RectBend" }

// Quadrupole is a focusing/defocusing magnet. Gradient is dBy/dx in T/m;
// positive gradients focus horizontally.
type Quadrupole struct {
	element
	Gradient float64
}

// NewQuadrupole creates a quadrupole with the given gradient in T/m.
func NewQuadrupole(name string, length, gradient float64) *Quadrupole {
	return &Quadrupole{element: element{name: name, length: length}, Gradient: gradient}
}

func (*Quadrupole) Type() string { return "Quadrupole" }

// SkewQuadrupole is a quadrupole rotated 45 degrees about the beam axis.
type SkewQuadrupole struct {
	element
	Gradient float64
}

// NewSkewQuadrupole creates a skew quadrupole with the given gradient in T/m.
func NewSkewQuadrupole(name string, length, gradient float64) *SkewQuadrupole {
	return &SkewQuadrupole{element: element{name: name, length: length}, Gradient: gradient}
}

func (*SkewQuadrupole) Type() string { return "SkewQuadrupole" }

// Sextupole is a chromaticity-correcting magnet. Gradient is d2By/dx2 in T/m^2.
type Sextupole struct {
	element
	Gradient float64
}

// NewSextupole creates a sextupole with the given gradient in T/m^2.
func NewSextupole(name string, length, gradient float64) *Sextupole {
	return &Sextupole{element: element{name: name, length: length}, Gradient: gradient}
}

func (*Sextupole) Type() string { return "Sextupole" }

// SkewSextupole is a sextupole rotated 30 degrees about the beam axis.
type SkewSextupole struct {
	element
	Gradient float64
}

// NewSkewSextupole creates a skew sextupole with the given gradient in T/m^2.
func NewSkewSextupole(name string, length, gradient float64) *SkewSextupole {
	return &SkewSextupole{element: element{name: name, length: length}, Gradient: gradient}
}

func (*SkewSextupole) Type() string { return "SkewSextupole" }

// Octupole is a higher-order corrector magnet. Gradient is d3By/dx3 in T/m^3.
type Octupole struct {
	element
	Gradient float64
}

// NewOctupole creates an octupole with the given gradient in T/m^3.
func NewOctupole(name string, length, gradient float64) *Octupole {
	return &Octupole{element: element{name: name, length: length}, Gradient: gradient}
}

func (*Octupole) Type() string { return "Octupole" }

// Solenoid is a longitudinal-field magnet. Field is Bz in tesla.
type Solenoid struct {
	element
	Field float64
}

// NewSolenoid creates a solenoid with the given longitudinal field in tesla.
func NewSolenoid(name string, length, field float64) *Solenoid {
	return &Solenoid{element: element{name: name, length: length}, Field: field}
}

func (*Solenoid) Type() string { return "Solenoid" }

// RFCavity is an accelerating cavity. Voltage in MV, Frequency in Hz,
// Phase in radians relative to the synchronous particle.
type RFCavity struct {
	element
	Voltage   float64
	Frequency float64
	Phase     float64
}

// NewRFCavity creates an RF cavity with the given voltage, frequency and phase.
func NewRFCavity(name string, length, voltage, frequency, phase float64) *RFCavity {
	return &RFCavity{
		element:   element{name: name, length: length},
		Voltage:   voltage,
		Frequency: frequency,
		Phase:     phase,
	}
}

func (*RFCavity) Type() string { return "RFCavity" }

// Collimator is an aperture-restricting absorber.
type Collimator struct {
	element
	// Half-gaps of the aperture in metres; zero means undefined.
	XAperture, YAperture float64
}

// NewCollimator creates a collimator of the given length.
func NewCollimator(name string, length float64) *Collimator {
	return &Collimator{element: element{name: name, length: length}}
}

func (*Collimator) Type() string { return "Collimator" }

// XCorrector is a horizontal steering magnet (horizontal kicker).
type XCorrector struct {
	element
	// Kick angle in radians.
	Kick float64
}

// NewXCorrector creates a horizontal corrector with the given kick angle.
func NewXCorrector(name string, length, kick float64) *XCorrector {
	return &XCorrector{element: element{name: name, length: length}, Kick: kick}
}

func (*XCorrector) Type() string { return "XCorrector" }

// YCorrector is a vertical steering magnet (vertical kicker).
type YCorrector struct {
	element
	// Kick angle in radians.
	Kick float64
}

// NewYCorrector creates a vertical corrector with the given kick angle.
func NewYCorrector(name string, length, kick float64) *YCorrector {
	return &YCorrector{element: element{name: name, length: length}, Kick: kick}
}

func (*YCorrector) Type() string { return "YCorrector" }

// Monitor is a beam position monitor. Usually zero length.
type Monitor struct {
	element
}

// NewMonitor creates a beam position monitor.
func NewMonitor(name string, length float64) *Monitor {
	return &Monitor{element{name: name, length: length}}
}

func (*Monitor) Type() string { return "Monitor" }

// Marker is a named zero-length placeholder.
type Marker struct {
	element
}

// NewMarker creates a zero-length marker.
func NewMarker(name string) *Marker {
	return &Marker{element{name: name}}
}

func (*Marker) Type() string { return "Marker" }
