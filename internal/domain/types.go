package domain

import "time"

// TurbineSpec describes the fixed design parameters of a turbine.
// Immutable once a simulation run begins.
type TurbineSpec struct {
	// BladeRadius is the hub-to-tip blade length in meters.
	BladeRadius float64 `json:"blade_radius_m"`
	// PowerCoefficient is the aerodynamic efficiency Cp, in (0, BetzLimit].
	PowerCoefficient float64 `json:"power_coefficient"`
	// RatedPower is the generator ceiling in watts.
	RatedPower float64 `json:"rated_power_w"`
}

// EnvironmentSpec holds the ambient conditions at the site.
type EnvironmentSpec struct {
	// AirDensity in kg/m³. Sea-level standard is 1.225.
	AirDensity float64 `json:"air_density_kg_m3"`
}

// WindModelSpec parameterizes the Weibull wind speed distribution.
type WindModelSpec struct {
	ShapeFactor float64 `json:"shape_factor"`
	ScaleFactor float64 `json:"scale_factor_m_s"`
}

// OperationalLimits bound the wind speed window in which the turbine runs.
type OperationalLimits struct {
	CutInSpeed  float64 `json:"cut_in_speed_m_s"`
	CutOutSpeed float64 `json:"cut_out_speed_m_s"`
}

// SimulationParams is the complete input snapshot for one run.
type SimulationParams struct {
	Turbine     TurbineSpec       `json:"turbine"`
	Environment EnvironmentSpec   `json:"environment"`
	Wind        WindModelSpec     `json:"wind"`
	Limits      OperationalLimits `json:"limits"`
	// Samples is the wind speed population size N.
	Samples int `json:"samples"`
}

// PerformanceMetrics summarizes one simulated population.
type PerformanceMetrics struct {
	// CapacityFactor is average power over rated power, in [0, 1].
	CapacityFactor float64 `json:"capacity_factor"`
	// AveragePower is the population mean power output in watts.
	AveragePower float64 `json:"average_power_w"`
	// AverageWindSpeed is the mean of the sampled population in m/s,
	// independent of operational limits.
	AverageWindSpeed float64 `json:"average_wind_speed_m_s"`
	// DailyEnergy in kWh, flat-rate over 24 hours.
	DailyEnergy float64 `json:"daily_energy_kwh"`
	// YearlyEnergy in MWh, flat-rate over 8760 hours.
	YearlyEnergy float64 `json:"yearly_energy_mwh"`
}

// Result is the full output of one simulation run. WindSpeeds and
// PowerOutputs are index-aligned, equal length, with every power value in
// [0, rated]. Results are value objects: created fresh per run, never
// mutated, never shared across runs.
type Result struct {
	RunID        string             `json:"run_id"`
	Params       SimulationParams   `json:"params"`
	WindSpeeds   []float64          `json:"wind_speeds_m_s"`
	PowerOutputs []float64          `json:"power_outputs_w"`
	Metrics      PerformanceMetrics `json:"metrics"`
	CompletedAt  time.Time          `json:"completed_at"`
}

// RunSummary is the compact record published for downstream consumers.
// It carries everything except the raw sample arrays.
type RunSummary struct {
	RunID       string             `json:"run_id"`
	Params      SimulationParams   `json:"params"`
	Metrics     PerformanceMetrics `json:"metrics"`
	SampleCount int                `json:"sample_count"`
	CompletedAt time.Time          `json:"completed_at"`
}

// Summary derives the publishable summary record from a result.
func (r Result) Summary() RunSummary {
	return RunSummary{
		RunID:       r.RunID,
		Params:      r.Params,
		Metrics:     r.Metrics,
		SampleCount: len(r.WindSpeeds),
		CompletedAt: r.CompletedAt,
	}
}
