package domain

// Preset names a pre-configured turbine model.
type Preset string

// Catalog of turbine presets with typical design parameters.
const (
	PresetSmall  Preset = "small-1mw"
	PresetMedium Preset = "medium-2mw"
	PresetLarge  Preset = "large-5mw"
)

// presetTurbines is deliberately a fixed set of named constant records, not
// a user-extensible registry.
var presetTurbines = map[Preset]TurbineSpec{
	PresetSmall:  {BladeRadius: 32.0, PowerCoefficient: 0.42, RatedPower: 1_000_000},
	PresetMedium: {BladeRadius: 45.0, PowerCoefficient: 0.45, RatedPower: 2_000_000},
	PresetLarge:  {BladeRadius: 63.0, PowerCoefficient: 0.48, RatedPower: 5_000_000},
}

// PresetTurbine resolves a preset name to its turbine spec.
func PresetTurbine(p Preset) (TurbineSpec, bool) {
	spec, ok := presetTurbines[p]
	return spec, ok
}

// Presets lists the catalog in a stable order.
func Presets() []Preset {
	return []Preset{PresetSmall, PresetMedium, PresetLarge}
}

// DefaultParams returns the simulation defaults matching a typical
// mid-size onshore site: the medium 2 MW turbine, sea-level air, a k=2.0
// c=7.0 m/s wind regime, and a 3–25 m/s operating window.
func DefaultParams() SimulationParams {
	return SimulationParams{
		Turbine:     presetTurbines[PresetMedium],
		Environment: EnvironmentSpec{AirDensity: 1.225},
		Wind:        WindModelSpec{ShapeFactor: 2.0, ScaleFactor: 7.0},
		Limits:      OperationalLimits{CutInSpeed: 3.0, CutOutSpeed: 25.0},
		Samples:     10_000,
	}
}
