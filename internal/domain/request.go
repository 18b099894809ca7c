package domain

import (
	"encoding/json"
	"fmt"
)

// RunRequest is the wire form of a simulation request, accepted both from
// the HTTP API and from the Kafka request topic. Every field is optional:
// unset fields fall back to the supplied base parameters, and a preset (when
// named) replaces the turbine before field-level overrides apply.
type RunRequest struct {
	Preset      string             `json:"preset,omitempty"`
	Turbine     *TurbineOverride   `json:"turbine,omitempty"`
	Environment *EnvironmentSpec   `json:"environment,omitempty"`
	Wind        *WindModelSpec     `json:"wind,omitempty"`
	Limits      *OperationalLimits `json:"limits,omitempty"`
	Samples     *int               `json:"samples,omitempty"`
}

// TurbineOverride carries optional per-field turbine overrides.
type TurbineOverride struct {
	BladeRadius      *float64 `json:"blade_radius_m,omitempty"`
	PowerCoefficient *float64 `json:"power_coefficient,omitempty"`
	RatedPower       *float64 `json:"rated_power_w,omitempty"`
}

// ParseRunRequest deserializes a request payload and resolves it against the
// base parameters. The resolved snapshot is returned unvalidated; callers
// run SimulationParams.Validate before executing.
func ParseRunRequest(data []byte, base SimulationParams) (SimulationParams, error) {
	var req RunRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return SimulationParams{}, fmt.Errorf("parse run request: %w", err)
	}
	return req.Resolve(base)
}

// Resolve applies the request on top of the base parameters: preset first,
// then individual overrides. Unknown preset names are rejected rather than
// silently falling back to the base turbine.
func (r RunRequest) Resolve(base SimulationParams) (SimulationParams, error) {
	params := base

	if r.Preset != "" {
		spec, ok := PresetTurbine(Preset(r.Preset))
		if !ok {
			return SimulationParams{}, fmt.Errorf("%w: unknown turbine preset %q", ErrInvalidArgument, r.Preset)
		}
		params.Turbine = spec
	}

	if r.Turbine != nil {
		if r.Turbine.BladeRadius != nil {
			params.Turbine.BladeRadius = *r.Turbine.BladeRadius
		}
		if r.Turbine.PowerCoefficient != nil {
			params.Turbine.PowerCoefficient = *r.Turbine.PowerCoefficient
		}
		if r.Turbine.RatedPower != nil {
			params.Turbine.RatedPower = *r.Turbine.RatedPower
		}
	}
	if r.Environment != nil {
		params.Environment = *r.Environment
	}
	if r.Wind != nil {
		params.Wind = *r.Wind
	}
	if r.Limits != nil {
		params.Limits = *r.Limits
	}
	if r.Samples != nil {
		params.Samples = *r.Samples
	}

	return params, nil
}
