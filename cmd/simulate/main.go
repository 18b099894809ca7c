// Command simulate runs a single wind turbine performance simulation from
// the command line and writes the per-sample data as CSV. It uses the same
// engine as the server, so the output matches API behavior exactly.
//
// Usage:
//
//	go run ./cmd/simulate -preset large-5mw -samples 10000 -out simulation.csv
//	go run ./cmd/simulate -radius 50 -cp 0.44 -rated 3e6 -seed 42 -out -
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"golang.org/x/exp/rand"

	"github.com/breezelabs/turbine-sim/internal/domain"
	"github.com/breezelabs/turbine-sim/internal/export"
	"github.com/breezelabs/turbine-sim/internal/observability"
	"github.com/breezelabs/turbine-sim/internal/simulation"
	"github.com/breezelabs/turbine-sim/internal/wind"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	preset := flag.String("preset", "", "turbine preset (small-1mw, medium-2mw, large-5mw); overrides -radius/-cp/-rated")
	radius := flag.Float64("radius", 45, "blade radius in meters")
	cp := flag.Float64("cp", 0.45, "power coefficient (below the 0.593 Betz limit)")
	rated := flag.Float64("rated", 2e6, "rated power in watts")
	density := flag.Float64("density", 1.225, "air density in kg/m³")
	shape := flag.Float64("shape", 2.0, "Weibull shape factor k")
	scale := flag.Float64("scale", 7.0, "Weibull scale factor c in m/s")
	cutIn := flag.Float64("cut-in", 3, "cut-in speed in m/s")
	cutOut := flag.Float64("cut-out", 25, "cut-out speed in m/s")
	samples := flag.Int("samples", 10_000, "number of wind speed samples")
	seed := flag.Uint64("seed", 0, "random seed (0 = time-based)")
	out := flag.String("out", "wind_turbine_simulation_data.csv", "output CSV path (- for stdout)")
	flag.Parse()

	params := domain.SimulationParams{
		Turbine: domain.TurbineSpec{
			BladeRadius:      *radius,
			PowerCoefficient: *cp,
			RatedPower:       *rated,
		},
		Environment: domain.EnvironmentSpec{AirDensity: *density},
		Wind:        domain.WindModelSpec{ShapeFactor: *shape, ScaleFactor: *scale},
		Limits:      domain.OperationalLimits{CutInSpeed: *cutIn, CutOutSpeed: *cutOut},
		Samples:     *samples,
	}

	if *preset != "" {
		spec, ok := domain.PresetTurbine(domain.Preset(*preset))
		if !ok {
			return fmt.Errorf("unknown preset %q (known: %v)", *preset, domain.Presets())
		}
		params.Turbine = spec
	}

	samplers := func(shapeK, scaleC float64) simulation.WindSource {
		var src rand.Source
		if *seed != 0 {
			src = rand.NewSource(*seed)
		}
		return wind.NewSampler(shapeK, scaleC, src)
	}

	// Warnings only; the summary goes to stderr below.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	runner := simulation.NewRunner(samplers, logger, observability.NewMetricsForTesting(), 0, 10_000_000)

	result, err := runner.Run(context.Background(), params)
	if err != nil {
		return err
	}

	if err := writeCSV(*out, result); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}

	printSummary(result, *out)
	return nil
}

func writeCSV(path string, result domain.Result) error {
	if path == "-" {
		return export.WriteCSV(os.Stdout, result)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(result domain.Result, out string) {
	m := result.Metrics
	operating := 0
	for _, v := range result.WindSpeeds {
		if domain.Operating(v, result.Params.Limits) {
			operating++
		}
	}

	fmt.Fprintf(os.Stderr, "run %s: %d samples\n", result.RunID, len(result.WindSpeeds))
	fmt.Fprintf(os.Stderr, "  avg wind speed:   %.2f m/s\n", m.AverageWindSpeed)
	fmt.Fprintf(os.Stderr, "  avg power:        %.1f kW\n", m.AveragePower/1000)
	fmt.Fprintf(os.Stderr, "  capacity factor:  %.1f%%\n", m.CapacityFactor*100)
	fmt.Fprintf(os.Stderr, "  daily energy:     %.1f kWh\n", m.DailyEnergy)
	fmt.Fprintf(os.Stderr, "  yearly energy:    %.1f MWh\n", m.YearlyEnergy)
	fmt.Fprintf(os.Stderr, "  operating:        %d of %d samples (%.1f%%)\n",
		operating, len(result.WindSpeeds), 100*float64(operating)/float64(len(result.WindSpeeds)))
	fmt.Fprintf(os.Stderr, "  completed at:     %s\n", result.CompletedAt.Format(time.RFC3339))
	if out != "-" {
		fmt.Fprintf(os.Stderr, "wrote %s\n", out)
	}
}
