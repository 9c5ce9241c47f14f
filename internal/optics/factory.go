package optics

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/accel-data/beamline/internal/beamline"
	"github.com/accel-data/beamline/internal/monitoring"
)

// ComponentBuilder constructs zero or more components from one table row,
// scaling integrated strengths by the reference rigidity brho (T.m). A
// builder may return several components when one row expands to a compound
// element (e.g. a single-cell cavity plus its completing drift).
type ComponentBuilder func(row Row, brho float64) []beamline.AcceleratorComponent

// TypeFactory maps canonical element keywords (upper case, MAD convention)
// to component builders. The default set covers the standard MAD element
// types; callers may register replacements or additions.
type TypeFactory struct {
	mu       sync.RWMutex
	builders map[string]ComponentBuilder
}

// NewTypeFactory creates a factory pre-loaded with the built-in element
// builders.
func NewTypeFactory() *TypeFactory {
	f := &TypeFactory{builders: make(map[string]ComponentBuilder)}
	for kw, b := range defaultBuilders {
		f.builders[kw] = b
	}
	return f
}

// Register adds or replaces the builder for a keyword.
func (f *TypeFactory) Register(keyword string, b ComponentBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[strings.ToUpper(keyword)] = b
}

// Lookup returns the builder for a keyword, if registered.
func (f *TypeFactory) Lookup(keyword string) (ComponentBuilder, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	b, ok := f.builders[strings.ToUpper(keyword)]
	return b, ok
}

// Keywords returns the registered keywords in sorted order.
func (f *TypeFactory) Keywords() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	kws := make([]string, 0, len(f.builders))
	for kw := range f.builders {
		kws = append(kws, kw)
	}
	sort.Strings(kws)
	return kws
}

// Build constructs components for a row of the given keyword. Unknown
// keywords degrade gracefully: rows with length become drifts so the arc
// length stays correct, zero-length rows become markers. Both fallbacks are
// logged once per construction via the monitoring logger.
func (f *TypeFactory) Build(keyword string, row Row, brho float64) []beamline.AcceleratorComponent {
	if b, ok := f.Lookup(keyword); ok {
		return b(row, brho)
	}
	name := row.Str("NAME")
	length := row.Value("L")
	monitoring.Logf("optics: unknown element type %s (%s); treating as %s",
		keyword, name, fallbackName(length))
	if length > 0 {
		return []beamline.AcceleratorComponent{beamline.NewDrift(name, length)}
	}
	return []beamline.AcceleratorComponent{beamline.NewMarker(name)}
}

func fallbackName(length float64) string {
	if length > 0 {
		return "drift"
	}
	return "marker"
}

// ResolveMultipole maps a general MULTIPOLE row to the concrete keyword
// indicated by its lowest-order nonzero integrated strength. Rows with no
// strength at all become markers (zero length) or drifts.
func ResolveMultipole(row Row) string {
	switch {
	case row.Value("K1L") != 0:
		return "QUADRUPOLE"
	case row.Value("K2L") != 0:
		return "SEXTUPOLE"
	case row.Value("K3L") != 0:
		return "OCTUPOLE"
	case row.Value("L") > 0:
		return "DRIFT"
	default:
		return "MARKER"
	}
}

// gradient converts an integrated strength K(n)L to a gradient for a
// component of the given length. Zero-length thin elements keep zero
// gradient; the integrated kick is not representable as a field gradient.
func gradient(kl, length, brho float64) float64 {
	if length == 0 {
		return 0
	}
	return brho * kl / length
}

var defaultBuilders = map[string]ComponentBuilder{
	"DRIFT": func(row Row, brho float64) []beamline.AcceleratorComponent {
		return one(beamline.NewDrift(row.Str("NAME"), row.Value("L")))
	},
	"SBEND": func(row Row, brho float64) []beamline.AcceleratorComponent {
		length := row.Value("L")
		angle := row.Value("ANGLE")
		var field float64
		if length != 0 {
			field = brho * angle / length
		}
		b := beamline.NewSectorBend(row.Str("NAME"), length, field, angle)
		b.E1 = row.Value("E1")
		b.E2 = row.Value("E2")
		return one(b)
	},
	"RBEND": func(row Row, brho float64) []beamline.AcceleratorComponent {
		length := row.Value("L")
		angle := row.Value("ANGLE")
		var field float64
		if length != 0 {
			field = brho * angle / length
		}
		return one(beamline.NewRectBend(row.Str("NAME"), length, field, angle))
	},
	"QUADRUPOLE": func(row Row, brho float64) []beamline.AcceleratorComponent {
		length := row.Value("L")
		g := gradient(row.Value("K1L"), length, brho)
		if row.Value("TILT") != 0 {
			return one(beamline.NewSkewQuadrupole(row.Str("NAME"), length, g))
		}
		return one(beamline.NewQuadrupole(row.Str("NAME"), length, g))
	},
	"SKEWQUAD": func(row Row, brho float64) []beamline.AcceleratorComponent {
		length := row.Value("L")
		return one(beamline.NewSkewQuadrupole(row.Str("NAME"), length,
			gradient(row.Value("K1L"), length, brho)))
	},
	"SEXTUPOLE": func(row Row, brho float64) []beamline.AcceleratorComponent {
		length := row.Value("L")
		g := gradient(row.Value("K2L"), length, brho)
		if row.Value("TILT") != 0 {
			return one(beamline.NewSkewSextupole(row.Str("NAME"), length, g))
		}
		return one(beamline.NewSextupole(row.Str("NAME"), length, g))
	},
	"OCTUPOLE": func(row Row, brho float64) []beamline.AcceleratorComponent {
		length := row.Value("L")
		return one(beamline.NewOctupole(row.Str("NAME"), length,
			gradient(row.Value("K3L"), length, brho)))
	},
	"SOLENOID": func(row Row, brho float64) []beamline.AcceleratorComponent {
		length := row.Value("L")
		return one(beamline.NewSolenoid(row.Str("NAME"), length,
			gradient(row.Value("KSI"), length, brho)))
	},
	"RFCAVITY": func(row Row, brho float64) []beamline.AcceleratorComponent {
		// FREQ is in MHz and LAG in fractions of 2pi, per TFS convention.
		return one(beamline.NewRFCavity(row.Str("NAME"), row.Value("L"),
			row.Value("VOLT"), row.Value("FREQ")*1e6, 2*math.Pi*row.Value("LAG")))
	},
	"HKICKER": func(row Row, brho float64) []beamline.AcceleratorComponent {
		return one(beamline.NewXCorrector(row.Str("NAME"), row.Value("L"), row.Value("HKICK")))
	},
	"VKICKER": func(row Row, brho float64) []beamline.AcceleratorComponent {
		return one(beamline.NewYCorrector(row.Str("NAME"), row.Value("L"), row.Value("VKICK")))
	},
	"MONITOR": func(row Row, brho float64) []beamline.AcceleratorComponent {
		return one(beamline.NewMonitor(row.Str("NAME"), row.Value("L")))
	},
	"HMONITOR": func(row Row, brho float64) []beamline.AcceleratorComponent {
		return one(beamline.NewMonitor(row.Str("NAME"), row.Value("L")))
	},
	"VMONITOR": func(row Row, brho float64) []beamline.AcceleratorComponent {
		return one(beamline.NewMonitor(row.Str("NAME"), row.Value("L")))
	},
	"MARKER": func(row Row, brho float64) []beamline.AcceleratorComponent {
		return one(beamline.NewMarker(row.Str("NAME")))
	},
	"INSTRUMENT": func(row Row, brho float64) []beamline.AcceleratorComponent {
		return one(beamline.NewDrift(row.Str("NAME"), row.Value("L")))
	},
	"RCOLLIMATOR": func(row Row, brho float64) []beamline.AcceleratorComponent {
		return one(beamline.NewCollimator(row.Str("NAME"), row.Value("L")))
	},
	"ECOLLIMATOR": func(row Row, brho float64) []beamline.AcceleratorComponent {
		return one(beamline.NewCollimator(row.Str("NAME"), row.Value("L")))
	},
	"COLLIMATOR": func(row Row, brho float64) []beamline.AcceleratorComponent {
		return one(beamline.NewCollimator(row.Str("NAME"), row.Value("L")))
	},
}

func one(c beamline.AcceleratorComponent) []beamline.AcceleratorComponent {
	return []beamline.AcceleratorComponent{c}
}
