package optics

import (
	"fmt"
	"io"
)

// FODOConfig describes a synthetic FODO ring for demos and tests.
type FODOConfig struct {
	// Cells is the number of FODO cells; minimum 1.
	Cells int
	// QuadLength and DriftLength are element lengths in metres.
	QuadLength  float64
	DriftLength float64
	// BendLength and BendAngle describe one dipole per half cell. A zero
	// BendLength omits the dipoles.
	BendLength float64
	BendAngle  float64
	// K1L is the integrated quadrupole strength; QF gets +K1L, QD -K1L.
	K1L float64
	// Structured emits M_CELLnn$START/$END markers so each cell becomes a
	// frame during construction.
	Structured bool
}

// DefaultFODO returns a small structured 4-cell FODO ring.
func DefaultFODO() FODOConfig {
	return FODOConfig{
		Cells:       4,
		QuadLength:  0.5,
		DriftLength: 1.0,
		BendLength:  1.5,
		BendAngle:   0.1,
		K1L:         0.6,
		Structured:  true,
	}
}

// CellLength returns the length of one cell in metres.
func (c FODOConfig) CellLength() float64 {
	return 2*c.QuadLength + 2*c.DriftLength + 2*c.BendLength
}

// WriteFODOTable writes a TFS-style optics table describing the configured
// FODO ring. The output parses with ReadTable and constructs with Builder.
func WriteFODOTable(w io.Writer, cfg FODOConfig) error {
	if cfg.Cells < 1 {
		return fmt.Errorf("optics: FODO table needs at least one cell, got %d", cfg.Cells)
	}

	var err error
	p := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	p("@ TITLE %%s \"synthetic FODO ring\"\n")
	p("@ ORIGIN %%s \"gen-optics\"\n")
	p("* NAME KEYWORD L ANGLE K1L K2L K3L VOLT FREQ LAG HKICK VKICK\n")
	p("$ %%s %%s %%le %%le %%le %%le %%le %%le %%le %%le %%le %%le\n")

	row := func(name, keyword string, length, angle, k1l float64) {
		p("\"%s\" \"%s\" %g %g %g 0 0 0 0 0 0 0\n", name, keyword, length, angle, k1l)
	}

	for i := 1; i <= cfg.Cells; i++ {
		cell := fmt.Sprintf("M_CELL%02d", i)
		if cfg.Structured {
			row(cell+"$START", "MARKER", 0, 0, 0)
		}
		row(fmt.Sprintf("QF%02d", i), "QUADRUPOLE", cfg.QuadLength, 0, cfg.K1L)
		row(fmt.Sprintf("D%02dA", i), "DRIFT", cfg.DriftLength, 0, 0)
		if cfg.BendLength > 0 {
			row(fmt.Sprintf("B%02dA", i), "SBEND", cfg.BendLength, cfg.BendAngle, 0)
		}
		row(fmt.Sprintf("QD%02d", i), "QUADRUPOLE", cfg.QuadLength, 0, -cfg.K1L)
		row(fmt.Sprintf("D%02dB", i), "DRIFT", cfg.DriftLength, 0, 0)
		if cfg.BendLength > 0 {
			row(fmt.Sprintf("B%02dB", i), "SBEND", cfg.BendLength, cfg.BendAngle, 0)
		}
		row(fmt.Sprintf("BPM%02d", i), "MONITOR", 0, 0, 0)
		if cfg.Structured {
			row(cell+"$END", "MARKER", 0, 0, 0)
		}
	}
	return err
}
