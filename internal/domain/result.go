package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// NewResult assembles a Result from a simulated population: it aggregates
// the metrics, stamps the completion time from the package clock, and
// assigns the run ID. The power outputs must already be clipped; this
// function performs no per-sample computation.
func NewResult(params SimulationParams, windSpeeds, powerOutputs []float64) (Result, error) {
	metrics, err := Aggregate(windSpeeds, powerOutputs, params.Turbine.RatedPower)
	if err != nil {
		return Result{}, err
	}

	completedAt := clock.Now().UTC()
	return Result{
		RunID:        generateRunID(params, completedAt),
		Params:       params,
		WindSpeeds:   windSpeeds,
		PowerOutputs: powerOutputs,
		Metrics:      metrics,
		CompletedAt:  completedAt,
	}, nil
}

// generateRunID produces a deterministic ID from the parameter snapshot and
// completion time. Deterministic IDs let downstream consumers deduplicate
// replayed summaries without coordination.
func generateRunID(p SimulationParams, completedAt time.Time) string {
	input := fmt.Sprintf("%g|%g|%g|%g|%g|%g|%g|%g|%d|%s",
		p.Turbine.BladeRadius, p.Turbine.PowerCoefficient, p.Turbine.RatedPower,
		p.Environment.AirDensity,
		p.Wind.ShapeFactor, p.Wind.ScaleFactor,
		p.Limits.CutInSpeed, p.Limits.CutOutSpeed,
		p.Samples,
		completedAt.Format(time.RFC3339Nano),
	)
	hash := sha256.Sum256([]byte(input))
	return "run-" + hex.EncodeToString(hash[:8])
}
