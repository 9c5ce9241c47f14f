// Command gen-optics writes a synthetic FODO-ring optics table, useful for
// demos and for exercising the beamline builder without a real machine file.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/accel-data/beamline/internal/optics"
)

var (
	output     = flag.String("o", "", "Output path (default stdout)")
	cells      = flag.Int("cells", 4, "Number of FODO cells")
	quadLen    = flag.Float64("quad-length", 0.5, "Quadrupole length in metres")
	driftLen   = flag.Float64("drift-length", 1.0, "Drift length in metres")
	bendLen    = flag.Float64("bend-length", 1.5, "Dipole length in metres (0 omits dipoles)")
	bendAngle  = flag.Float64("bend-angle", 0.1, "Dipole bend angle in radians")
	k1l        = flag.Float64("k1l", 0.6, "Integrated quadrupole strength")
	structured = flag.Bool("structured", true, "Emit per-cell structure markers")
)

func main() {
	flag.Parse()

	cfg := optics.FODOConfig{
		Cells:       *cells,
		QuadLength:  *quadLen,
		DriftLength: *driftLen,
		BendLength:  *bendLen,
		BendAngle:   *bendAngle,
		K1L:         *k1l,
		Structured:  *structured,
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := optics.WriteFODOTable(out, cfg); err != nil {
		log.Fatalf("failed to write optics table: %v", err)
	}
}
