package domain

import "math"

// Operating status labels used in exports and API responses.
const (
	StatusOperating = "Operating"
	StatusIdle      = "Idle"
)

// SweptArea returns the rotor disc area π·r² in m².
func SweptArea(bladeRadius float64) float64 {
	return math.Pi * bladeRadius * bladeRadius
}

// PowerOutput computes the theoretical power P = 0.5·ρ·A·Cp·v³ in watts.
// It is pure physics: no cut-in/cut-out gating, no rated clamp, no
// validation. Finite non-negative inputs always yield a finite non-negative
// output; negative radius or density are the caller's responsibility.
func PowerOutput(windSpeed, airDensity, bladeRadius, powerCoefficient float64) float64 {
	return 0.5 * airDensity * SweptArea(bladeRadius) * powerCoefficient * windSpeed * windSpeed * windSpeed
}

// ClipPower applies operational policy on top of PowerOutput:
//
//   - zero when the speed is strictly below cut-in or strictly above cut-out
//     (speeds exactly at either boundary are operating);
//   - otherwise the theoretical power clamped to rated.
//
// The gating and the clamp are independent policies: a speed just above
// cut-in whose theoretical power exceeds rated is clamped, not zeroed.
func ClipPower(windSpeed float64, turbine TurbineSpec, env EnvironmentSpec, limits OperationalLimits) float64 {
	if windSpeed < limits.CutInSpeed || windSpeed > limits.CutOutSpeed {
		return 0
	}
	return math.Min(
		PowerOutput(windSpeed, env.AirDensity, turbine.BladeRadius, turbine.PowerCoefficient),
		turbine.RatedPower,
	)
}

// Operating reports whether a speed falls in the inclusive operating window
// cut-in ≤ v ≤ cut-out. Note the inclusive bounds versus the strict
// inequalities in ClipPower; see the package doc for why both are kept.
func Operating(windSpeed float64, limits OperationalLimits) bool {
	return windSpeed >= limits.CutInSpeed && windSpeed <= limits.CutOutSpeed
}

// OperatingStatus maps a speed to its display/export label.
func OperatingStatus(windSpeed float64, limits OperationalLimits) string {
	if Operating(windSpeed, limits) {
		return StatusOperating
	}
	return StatusIdle
}

// CurvePoint is one point on a theoretical power curve sweep.
type CurvePoint struct {
	WindSpeed float64 `json:"wind_speed_m_s"`
	Power     float64 `json:"power_w"`
}

// PowerCurve sweeps ClipPower over [0, maxSpeed] at n evenly spaced points,
// for chart-oriented consumers. n must be at least 2.
func PowerCurve(turbine TurbineSpec, env EnvironmentSpec, limits OperationalLimits, maxSpeed float64, n int) []CurvePoint {
	points := make([]CurvePoint, n)
	step := maxSpeed / float64(n-1)
	for i := range points {
		v := float64(i) * step
		points[i] = CurvePoint{WindSpeed: v, Power: ClipPower(v, turbine, env, limits)}
	}
	return points
}
