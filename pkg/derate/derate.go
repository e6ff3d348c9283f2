package derate

import (
	"math"

	"github.com/dshills/elecval/pkg/gauge"
)

// Material is the conductor material, affecting effective ampacity.
type Material int

const (
	Copper Material = iota
	Aluminum
)

// AluminumDerating is the multiplicative reduction applied to copper
// ampacity when the conductor material is aluminum.
const AluminumDerating = 0.84

// Defaults used whenever an engine config leaves these fields unset.
const (
	DefaultTempC      = 30.0
	DefaultBundling   = 1.0
	DefaultMaxDropPct = 3.0
)

// TempDerating maps an ambient temperature in Celsius to its ampacity
// multiplier, using the standard NEC 60C/75C ambient-correction bands.
func TempDerating(ambientC float64) float64 {
	switch {
	case ambientC <= 25:
		return 1.08
	case ambientC <= 30:
		return 1.00
	case ambientC <= 35:
		return 0.91
	case ambientC <= 40:
		return 0.82
	case ambientC <= 45:
		return 0.71
	case ambientC <= 50:
		return 0.58
	default:
		return 0.41
	}
}

// EffectiveAmpacity applies temperature derating, bundling derating, and
// material derating to a size's base ampacity at the given insulation
// rating. bundling <= 0 is treated as 1.0 (no derating): out-of-range
// inputs are normalized rather than left to propagate a zero or
// negative ampacity.
func EffectiveAmpacity(s gauge.Size, ins gauge.Insulation, ambientC float64, bundling float64, material Material) float64 {
	if bundling <= 0 {
		bundling = DefaultBundling
	}

	base := gauge.BaseAmpacity(s, ins)
	eff := base * TempDerating(ambientC) * bundling
	if material == Aluminum {
		eff *= AluminumDerating
	}
	return eff
}

// VoltageDrop returns the round-trip voltage drop, in volts, for a
// two-conductor run of the given size carrying current amps over length
// feet ("the factor of 2 represents the round-trip
// run").
func VoltageDrop(s gauge.Size, current, lengthFt float64) float64 {
	r := gauge.ResistancePerKft(s) / 1000.0
	return 2 * current * r * lengthFt
}

// VoltageDropPct expresses a voltage drop as a percentage of a reference
// voltage. A non-positive or NaN reference voltage yields 0 rather than
// dividing by zero or going negative/NaN.
func VoltageDropPct(dropVolts, referenceVoltage float64) float64 {
	if referenceVoltage <= 0 || math.IsNaN(referenceVoltage) {
		return 0
	}
	return 100 * dropVolts / referenceVoltage
}

// Status is the outcome of a sizing computation.
type Status int

const (
	Valid Status = iota
	Warning
	Error
)

func (s Status) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "valid"
	}
}

// WireCalculation is the result of calculateWireSize.
type WireCalculation struct {
	Gauge             gauge.Size
	Status            Status
	Message           string
	EffectiveAmpacity float64
	VoltageDropPct    float64
}

// CalculateWireSizeOptions carries the optional parameters of
// calculateWireSize. TemperatureC, Bundling and MaxDropPct default when
// zero-valued; Material and Insulation are used as given, so their zero
// values select copper and 60C insulation, not the 75C of DefaultOptions.
type CalculateWireSizeOptions struct {
	TemperatureC float64
	Material     Material
	Insulation   gauge.Insulation
	Bundling     float64
	MaxDropPct   float64
}

// DefaultOptions returns the documented defaults: 30C, copper, 75C
// insulation, no bundling derating, 3.0% max drop.
func DefaultOptions() CalculateWireSizeOptions {
	return CalculateWireSizeOptions{
		TemperatureC: DefaultTempC,
		Material:     Copper,
		Insulation:   gauge.Insulation75C,
		Bundling:     DefaultBundling,
		MaxDropPct:   DefaultMaxDropPct,
	}
}

// CalculateWireSize returns the smallest standard gauge that satisfies both
// the voltage-drop bound and the effective-ampacity bound for the given
// current and run length Out-of-range current
// (negative or NaN) is normalized to 0 rather than producing a crash or a
// nonsensical recommendation
//
// Sizes are scanned smallest-to-largest ('s "ascending,
// smallest-gauge-that-works" resolution of the source's two conflicting
// definitions). If no size up to 4/0 satisfies both bounds, 4/0 is
// returned with Status == Error.
func CalculateWireSize(current, lengthFt, referenceVoltage float64, opts CalculateWireSizeOptions) WireCalculation {
	if current < 0 || math.IsNaN(current) {
		current = 0
	}
	if opts.TemperatureC == 0 {
		opts.TemperatureC = DefaultTempC
	}
	if opts.Bundling == 0 {
		opts.Bundling = DefaultBundling
	}
	if opts.MaxDropPct == 0 {
		opts.MaxDropPct = DefaultMaxDropPct
	}
	if referenceVoltage <= 0 || math.IsNaN(referenceVoltage) {
		referenceVoltage = 0
	}

	maxDropVolts := referenceVoltage * opts.MaxDropPct / 100.0

	for _, s := range gauge.Ordered {
		eff := EffectiveAmpacity(s, opts.Insulation, opts.TemperatureC, opts.Bundling, opts.Material)
		drop := VoltageDrop(s, current, lengthFt)

		ampacityOK := current <= eff
		dropOK := referenceVoltage == 0 || drop <= maxDropVolts

		if ampacityOK && dropOK {
			status := Valid
			if current >= 0.9*eff || (referenceVoltage > 0 && drop >= 0.9*maxDropVolts) {
				status = Warning
			}
			return WireCalculation{
				Gauge:             s,
				Status:            status,
				Message:           "sized to satisfy ampacity and voltage drop",
				EffectiveAmpacity: eff,
				VoltageDropPct:    VoltageDropPct(drop, referenceVoltage),
			}
		}
	}

	eff := EffectiveAmpacity(gauge.Largest, opts.Insulation, opts.TemperatureC, opts.Bundling, opts.Material)
	drop := VoltageDrop(gauge.Largest, current, lengthFt)
	return WireCalculation{
		Gauge:             gauge.Largest,
		Status:            Error,
		Message:           "no standard gauge satisfies ampacity and voltage-drop bounds at this current and length",
		EffectiveAmpacity: eff,
		VoltageDropPct:    VoltageDropPct(drop, referenceVoltage),
	}
}

// ParallelCurrent divides a run's total current across n equal parallel
// conductors. n <= 0 is normalized to 1.
func ParallelCurrent(total float64, n int) float64 {
	if n <= 0 {
		n = 1
	}
	return total / float64(n)
}
