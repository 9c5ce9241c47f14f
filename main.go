// Command beamline builds an accelerator model from a MAD-style optics
// table, prints construction statistics, and optionally persists the model
// and renders synoptic views.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/accel-data/beamline/internal/config"
	"github.com/accel-data/beamline/internal/optics"
	"github.com/accel-data/beamline/internal/render"
	"github.com/accel-data/beamline/internal/storage/sqlite"
	"github.com/accel-data/beamline/internal/units"
	"github.com/accel-data/beamline/internal/version"
)

var (
	opticsPath   = flag.String("optics", "", "Path to the optics table (TFS format)")
	configPath   = flag.String("config", "", "Path to a JSON build config; flags override its values")
	momentum     = flag.Float64("momentum", 1.0, "Reference momentum")
	momentumUnit = flag.String("momentum-units", units.GeV, "Momentum units: gev, mev or tev")
	dbPath       = flag.String("db", "", "Persist the built model to this SQLite database")
	chartPath    = flag.String("chart", "", "Write an HTML synoptic chart to this path")
	plotPath     = flag.String("plot", "", "Write a PNG survey plot to this path")
	flat         = flag.Bool("flat", false, "Construct a flat lattice with no nested frames")
	madStructure = flag.Bool("mad-structure", false, "Honour all structure markers, not only M_/S_/G_ prefixes")
	singleCellRF = flag.Bool("single-cell-rf", false, "Force RF cavities to half-wavelength cells")
	srScale      = flag.Bool("sr-scale", false, "Scale magnet fields for synchrotron radiation losses")
	driftTypes   = flag.String("treat-as-drift", "", "Comma-separated element types to construct as drifts")
	zeroIgnores  = flag.String("ignore-zero-length", "", "Comma-separated element types skipped when zero length")
	verbose      = flag.Bool("v", false, "Log each constructed element")
	showVersion  = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("beamline %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	var cfg *config.BuildConfig
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadBuildConfig(*configPath); err != nil {
			log.Fatalf("failed to load build config: %v", err)
		}
	}

	if *opticsPath == "" {
		fmt.Fprintln(os.Stderr, "usage: beamline -optics <table.tfs> [options]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if !units.IsValidEnergyUnit(*momentumUnit) {
		log.Fatalf("invalid momentum units %q; valid units are: %s",
			*momentumUnit, strings.Join(units.ValidEnergyUnits, ", "))
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	p0 := units.ToGeV(*momentum, *momentumUnit)
	if cfg != nil && !set["momentum"] {
		p0 = cfg.MomentumGeV(p0)
	}

	file, err := os.Open(*opticsPath)
	if err != nil {
		log.Fatalf("failed to open optics table: %v", err)
	}
	defer file.Close()

	builder, err := optics.NewBuilder(file, p0)
	if err != nil {
		log.Fatalf("failed to read optics table: %v", err)
	}
	if cfg != nil {
		cfg.Apply(builder)
	}
	if set["v"] {
		builder.SetLogging(*verbose)
	}
	if set["mad-structure"] {
		builder.HonourMadStructure(*madStructure)
	}
	if set["flat"] {
		builder.ConstructFlatLattice(*flat)
	}
	if set["single-cell-rf"] {
		builder.SetSingleCellRF(*singleCellRF)
	}
	if set["sr-scale"] {
		builder.ScaleForSynchRad(*srScale)
	}
	for _, t := range splitList(*driftTypes) {
		builder.TreatTypeAsDrift(t)
	}
	for _, t := range splitList(*zeroIgnores) {
		builder.IgnoreZeroLengthType(t)
	}

	model, err := builder.ConstructModel()
	if err != nil {
		log.Fatalf("failed to construct model: %v", err)
	}

	fmt.Printf("Arc length of beamline:     %g meter\n", model.ArcLength())
	fmt.Printf("Total number of components: %d\n", len(model.Lattice()))
	fmt.Printf("Total number of elements:   %d\n\n", model.Elements().Size())
	fmt.Println("Model Element statistics")
	fmt.Println("------------------------")
	fmt.Println()
	counts := model.Elements().CountByType()
	for _, t := range model.Elements().Types() {
		fmt.Printf("%-20s%-4d\n", t, counts[t])
	}
	fmt.Println()

	if *srScale {
		fmt.Printf("Final reference momentum:   %.6g GeV/c\n", builder.Momentum())
	}

	dbOut, chartOut, plotOut := *dbPath, *chartPath, *plotPath
	if cfg != nil {
		if dbOut == "" {
			dbOut = config.Str(cfg.DBPath)
		}
		if chartOut == "" {
			chartOut = config.Str(cfg.ChartPath)
		}
		if plotOut == "" {
			plotOut = config.Str(cfg.PlotPath)
		}
	}

	if dbOut != "" {
		db, err := sqlite.Open(dbOut)
		if err != nil {
			log.Fatalf("failed to open model database: %v", err)
		}
		defer db.Close()
		runID, err := sqlite.NewLatticeStore(db).SaveModel(*opticsPath, p0, model)
		if err != nil {
			log.Fatalf("failed to save model: %v", err)
		}
		fmt.Printf("Saved model run %s to %s\n", runID, dbOut)
	}

	if chartOut != "" {
		out, err := os.Create(chartOut)
		if err != nil {
			log.Fatalf("failed to create chart file: %v", err)
		}
		if err := render.WriteSynopticHTML(model, out); err != nil {
			log.Fatalf("failed to render synoptic chart: %v", err)
		}
		out.Close()
		fmt.Printf("Wrote synoptic chart to %s\n", chartOut)
	}

	if plotOut != "" {
		if err := render.SurveyPlotPNG(model, plotOut); err != nil {
			log.Fatalf("failed to render survey plot: %v", err)
		}
		fmt.Printf("Wrote survey plot to %s\n", plotOut)
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
