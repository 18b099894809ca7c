// Package domain models wind turbine power production under stochastic wind.
//
// # Power Curve
//
// Instantaneous electrical power follows the standard wind power equation:
//
//	P = 0.5 · ρ · A · Cp · v³
//
//	ρ  is air density (kg/m³), ~1.225 at sea level
//	A  is rotor swept area, π·r² for blade radius r (m)
//	Cp is the power coefficient, capped by the Betz limit of 0.593
//	v  is wind speed (m/s)
//
// The cubic dependence on wind speed is deliberate and exact: a small change
// in speed produces a cubic change in output, so the equation is never
// approximated or linearized. [PowerOutput] computes the raw physics value;
// operational policy (cut-in/cut-out gating and the rated-power clamp) is
// applied separately by [ClipPower].
//
// # Operational Limits
//
// A turbine produces zero power below its cut-in speed (insufficient torque)
// and above its cut-out speed (shutdown for safety). Between those limits the
// theoretical power is clamped to the generator's rated power, representing
// blade pitch and generator limiting above rated wind speed.
//
// Boundary convention: [ClipPower] zeroes output only for speeds strictly
// below cut-in or strictly above cut-out, so a speed exactly at either limit
// produces power. The display-oriented [OperatingStatus] label uses the
// inclusive range cut-in ≤ v ≤ cut-out. The two agree at the boundaries in
// effect but are intentionally coded as written: the asymmetry reproduces
// long-standing exported behavior, and unifying the conditions could change
// reported idle counts for populations containing exact boundary speeds.
//
// # Wind Model
//
// Wind speed populations are drawn from a two-parameter Weibull distribution
// with shape k and scale c (both > 0), the conventional model for wind
// resource assessment. k ≈ 2.0 is typical; c usually falls in 5–10 m/s. The
// theoretical mean is c·Γ(1+1/k). Sampling lives in the wind package; this
// package only carries the parameters.
//
// # Performance Metrics
//
// [Aggregate] reduces an index-aligned (speed, power) population to summary
// figures. Energy figures use average power as a flat-rate proxy: daily
// energy is avg·24/1000 kWh and yearly energy is avg·8760/1e6 MWh, with a
// fixed 8760-hour year and no leap-year adjustment. Average wind speed is
// computed over the whole sampled population, not just the operating
// portion, because it describes the wind resource rather than the turbine's
// usable share of it.
package domain
