package domain

import "fmt"

// Energy accounting constants. The year is fixed at 8760 hours with no
// leap-year adjustment.
const (
	hoursPerDay  = 24
	hoursPerYear = 8760
)

// Aggregate reduces an index-aligned (speed, power) population to summary
// metrics. The sequences must be non-empty and equal length; an empty
// population is rejected rather than producing a mean over nothing.
// ratedPower must be positive (guaranteed by TurbineSpec validation) and
// is not re-checked here.
func Aggregate(windSpeeds, powerOutputs []float64, ratedPower float64) (PerformanceMetrics, error) {
	if len(windSpeeds) == 0 {
		return PerformanceMetrics{}, fmt.Errorf("%w: cannot aggregate an empty sample population", ErrInvalidArgument)
	}
	if len(windSpeeds) != len(powerOutputs) {
		return PerformanceMetrics{}, fmt.Errorf("%w: wind speeds (%d) and power outputs (%d) must be index-aligned",
			ErrInvalidArgument, len(windSpeeds), len(powerOutputs))
	}

	averagePower := mean(powerOutputs)

	// Energy figures convert watt-hours to kWh and MWh respectively.
	return PerformanceMetrics{
		CapacityFactor:   averagePower / ratedPower,
		AveragePower:     averagePower,
		AverageWindSpeed: mean(windSpeeds),
		DailyEnergy:      averagePower * hoursPerDay / 1_000,
		YearlyEnergy:     averagePower * hoursPerYear / 1_000_000,
	}, nil
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
