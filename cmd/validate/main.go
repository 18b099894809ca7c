// Command validate performs integrity checks on an exported simulation CSV:
// schema correctness, power model agreement, operational invariants, and
// optionally consistency with a published run summary JSON.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -csv wind_turbine_simulation_data.csv \
//	  -preset medium-2mw \
//	  -summary run_summary.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/breezelabs/turbine-sim/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// sample is one parsed CSV data row.
type sample struct {
	lineNum int
	speed   float64
	powerW  float64
	powerKW float64
	status  string
}

func main() {
	csvPath := flag.String("csv", "", "path to exported simulation CSV")
	preset := flag.String("preset", "", "turbine preset used for the run; overrides -radius/-cp/-rated")
	radius := flag.Float64("radius", 45, "blade radius in meters")
	cp := flag.Float64("cp", 0.45, "power coefficient")
	rated := flag.Float64("rated", 2e6, "rated power in watts")
	density := flag.Float64("density", 1.225, "air density in kg/m³")
	cutIn := flag.Float64("cut-in", 3, "cut-in speed in m/s")
	cutOut := flag.Float64("cut-out", 25, "cut-out speed in m/s")
	summaryPath := flag.String("summary", "", "optional path to a run summary JSON to cross-check")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	turbine := domain.TurbineSpec{
		BladeRadius:      *radius,
		PowerCoefficient: *cp,
		RatedPower:       *rated,
	}
	if *preset != "" {
		spec, ok := domain.PresetTurbine(domain.Preset(*preset))
		if !ok {
			fmt.Fprintf(os.Stderr, "FATAL: unknown preset %q (known: %v)\n", *preset, domain.Presets())
			os.Exit(1)
		}
		turbine = spec
	}
	env := domain.EnvironmentSpec{AirDensity: *density}
	limits := domain.OperationalLimits{CutInSpeed: *cutIn, CutOutSpeed: *cutOut}

	if code := run(*csvPath, *summaryPath, turbine, env, limits); code != 0 {
		os.Exit(code)
	}
}

func run(csvPath, summaryPath string, turbine domain.TurbineSpec, env domain.EnvironmentSpec, limits domain.OperationalLimits) int {
	fmt.Println("=== Simulation Export Validation ===")
	fmt.Println()

	samples, schemaPhase, err := loadSamples(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load CSV: %v\n", err)
		return 1
	}

	phases := []*phase{
		schemaPhase,
		validatePowerModel(samples, turbine, env, limits),
		validateInvariants(samples, turbine, limits),
	}

	if summaryPath != "" {
		p, err := validateSummary(summaryPath, samples, turbine)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load summary JSON: %v\n", err)
			return 1
		}
		phases = append(phases, p)
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Samples: %d\n", len(samples))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == 20 {
				fmt.Printf("  ... %d more errors suppressed\n", len(p.errors)-i)
				break
			}
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Schema ──
// Parses the CSV and validates header, column count, and value formats.

var expectedHeader = []string{"Wind_Speed_m_s", "Power_Output_W", "Power_Output_kW", "Operating_Status"}

func loadSamples(path string) ([]sample, *phase, error) {
	p := &phase{name: "Phase 1: Schema (CSV structure)"}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}

	header := rows[0]
	if len(header) != len(expectedHeader) {
		p.errorf("header has %d columns, expected %d", len(header), len(expectedHeader))
	} else {
		for i, want := range expectedHeader {
			if header[i] != want {
				p.errorf("header column %d: got %q, want %q", i, header[i], want)
			}
		}
	}

	var samples []sample
	for i, row := range rows[1:] {
		lineNum := i + 2
		if len(row) != 4 {
			p.errorf("line %d: %d columns, expected 4", lineNum, len(row))
			continue
		}

		s := sample{lineNum: lineNum, status: row[3]}
		if s.speed, err = strconv.ParseFloat(row[0], 64); err != nil {
			p.errorf("line %d: wind speed %q is not a number", lineNum, row[0])
			continue
		}
		if s.powerW, err = strconv.ParseFloat(row[1], 64); err != nil {
			p.errorf("line %d: power %q is not a number", lineNum, row[1])
			continue
		}
		if s.powerKW, err = strconv.ParseFloat(row[2], 64); err != nil {
			p.errorf("line %d: power kW %q is not a number", lineNum, row[2])
			continue
		}
		if s.status != domain.StatusOperating && s.status != domain.StatusIdle {
			p.errorf("line %d: status %q not in {%s, %s}", lineNum, s.status, domain.StatusOperating, domain.StatusIdle)
		}
		samples = append(samples, s)
	}

	if len(samples) == 0 {
		p.errorf("no data rows")
	}

	return samples, p, nil
}

// ── Phase 2: Power Model ──
// Recomputes each row's power from the wind speed and compares.

func validatePowerModel(samples []sample, turbine domain.TurbineSpec, env domain.EnvironmentSpec, limits domain.OperationalLimits) *phase {
	p := &phase{name: "Phase 2: Power Model (recomputation)"}

	for _, s := range samples {
		expected := domain.ClipPower(s.speed, turbine, env, limits)
		if !floatEq(s.powerW, expected) {
			p.errorf("line %d: speed %g m/s: power %g W, model says %g W", s.lineNum, s.speed, s.powerW, expected)
		}
		if !floatEq(s.powerKW, s.powerW/1000) {
			p.errorf("line %d: kW column %g does not match W column %g", s.lineNum, s.powerKW, s.powerW)
		}
		if got, want := s.status, domain.OperatingStatus(s.speed, limits); got != want {
			p.errorf("line %d: speed %g m/s: status %q, expected %q", s.lineNum, s.speed, got, want)
		}
	}

	return p
}

// ── Phase 3: Invariants ──
// Checks range and gating invariants independent of the model recomputation.

func validateInvariants(samples []sample, turbine domain.TurbineSpec, limits domain.OperationalLimits) *phase {
	p := &phase{name: "Phase 3: Invariants (ranges and gating)"}

	for _, s := range samples {
		if s.speed < 0 {
			p.errorf("line %d: negative wind speed %g", s.lineNum, s.speed)
		}
		if s.powerW < 0 {
			p.errorf("line %d: negative power %g", s.lineNum, s.powerW)
		}
		if s.powerW > turbine.RatedPower+1e-9 {
			p.errorf("line %d: power %g W exceeds rated %g W", s.lineNum, s.powerW, turbine.RatedPower)
		}
		if (s.speed < limits.CutInSpeed || s.speed > limits.CutOutSpeed) && s.powerW != 0 {
			p.errorf("line %d: speed %g m/s outside [%g, %g] but power is %g W",
				s.lineNum, s.speed, limits.CutInSpeed, limits.CutOutSpeed, s.powerW)
		}
	}

	return p
}

// ── Phase 4: Summary Consistency ──
// Recomputes aggregate metrics from the rows and compares with a published
// run summary.

func validateSummary(path string, samples []sample, turbine domain.TurbineSpec) (*phase, error) {
	p := &phase{name: "Phase 4: Summary Consistency (JSON)"}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var summary domain.RunSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}

	if summary.SampleCount != len(samples) {
		p.errorf("sample_count %d does not match %d CSV rows", summary.SampleCount, len(samples))
	}

	speeds := make([]float64, len(samples))
	powers := make([]float64, len(samples))
	for i, s := range samples {
		speeds[i] = s.speed
		powers[i] = s.powerW
	}
	metrics, err := domain.Aggregate(speeds, powers, turbine.RatedPower)
	if err != nil {
		p.errorf("recompute metrics: %v", err)
		return p, nil
	}

	check := func(name string, got, want float64) {
		if !floatEq(got, want) {
			p.errorf("%s: summary has %g, CSV recomputes to %g", name, got, want)
		}
	}
	check("capacity_factor", summary.Metrics.CapacityFactor, metrics.CapacityFactor)
	check("average_power", summary.Metrics.AveragePower, metrics.AveragePower)
	check("average_wind_speed", summary.Metrics.AverageWindSpeed, metrics.AverageWindSpeed)
	check("daily_energy", summary.Metrics.DailyEnergy, metrics.DailyEnergy)
	check("yearly_energy", summary.Metrics.YearlyEnergy, metrics.YearlyEnergy)

	return p, nil
}

// floatEq compares with a relative tolerance to absorb decimal round trips.
func floatEq(a, b float64) bool {
	diff := math.Abs(a - b)
	if diff < 1e-9 {
		return true
	}
	return diff <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}
