package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks parameter domain violations. All validation
// happens before a simulation executes; invalid parameters are rejected with
// a reason naming the offending field, never clamped or coerced.
var ErrInvalidArgument = errors.New("invalid argument")

// BetzLimit is the theoretical ceiling for the power coefficient: no turbine
// can extract more than 59.3% of the kinetic energy in the wind.
const BetzLimit = 0.593

// Validate checks the turbine design parameters against their domains.
func (t TurbineSpec) Validate() error {
	if t.BladeRadius <= 0 {
		return fmt.Errorf("%w: blade radius must be positive, got %g m", ErrInvalidArgument, t.BladeRadius)
	}
	if t.PowerCoefficient <= 0 || t.PowerCoefficient > BetzLimit {
		return fmt.Errorf("%w: power coefficient must be in (0, %g], got %g", ErrInvalidArgument, BetzLimit, t.PowerCoefficient)
	}
	if t.RatedPower <= 0 {
		return fmt.Errorf("%w: rated power must be positive, got %g W", ErrInvalidArgument, t.RatedPower)
	}
	return nil
}

// Validate checks the ambient conditions.
func (e EnvironmentSpec) Validate() error {
	if e.AirDensity <= 0 {
		return fmt.Errorf("%w: air density must be positive, got %g kg/m³", ErrInvalidArgument, e.AirDensity)
	}
	return nil
}

// Validate checks the Weibull distribution parameters.
func (w WindModelSpec) Validate() error {
	if w.ShapeFactor <= 0 {
		return fmt.Errorf("%w: Weibull shape factor must be positive, got %g", ErrInvalidArgument, w.ShapeFactor)
	}
	if w.ScaleFactor <= 0 {
		return fmt.Errorf("%w: Weibull scale factor must be positive, got %g m/s", ErrInvalidArgument, w.ScaleFactor)
	}
	return nil
}

// Validate checks that the operating window is well-formed.
func (l OperationalLimits) Validate() error {
	if l.CutInSpeed >= l.CutOutSpeed {
		return fmt.Errorf("%w: cut-in speed %g m/s must be below cut-out speed %g m/s", ErrInvalidArgument, l.CutInSpeed, l.CutOutSpeed)
	}
	return nil
}

// Validate checks the full parameter snapshot. It fails fast on the first
// violation so callers can surface a single descriptive reason.
func (p SimulationParams) Validate() error {
	if err := p.Turbine.Validate(); err != nil {
		return err
	}
	if err := p.Environment.Validate(); err != nil {
		return err
	}
	if err := p.Wind.Validate(); err != nil {
		return err
	}
	if err := p.Limits.Validate(); err != nil {
		return err
	}
	if p.Samples <= 0 {
		return fmt.Errorf("%w: sample count must be positive, got %d", ErrInvalidArgument, p.Samples)
	}
	return nil
}
