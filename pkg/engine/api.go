package engine

import (
	"fmt"

	"github.com/dshills/elecval/pkg/derate"
	"github.com/dshills/elecval/pkg/design"
	"github.com/dshills/elecval/pkg/topology"
)

// CalculateWireSize exposes the standalone wire-sizing calculation
// directly over pkg/derate, with the documented defaults.
func CalculateWireSize(currentA, lengthFt, voltageV float64, opts derate.CalculateWireSizeOptions) derate.WireCalculation {
	if opts == (derate.CalculateWireSizeOptions{}) {
		opts = derate.DefaultOptions()
	}
	return derate.CalculateWireSize(currentA, lengthFt, voltageV, opts)
}

// InverterDCInput is the result of CalculateInverterDCInput.
type InverterDCInput struct {
	ACLoadWatts    float64
	DCInputWatts   float64
	DCInputCurrent float64
	ACVoltage      float64
}

// CalculateInverterDCInput recomputes one inverter's AC-side demand and
// DC-input draw outside of a full Validate pass.
func CalculateInverterDCInput(inverterID string, d *design.Design, efficiency float64) (InverterDCInput, error) {
	if efficiency <= 0 {
		efficiency = 0.875
	}
	cfg := design.EngineConfig{InverterEfficiency: efficiency}.WithDefaults()

	idx, err := topology.Build(d, cfg)
	if err != nil {
		return InverterDCInput{}, fmt.Errorf("engine: building topology: %w", err)
	}

	demand, ok := idx.InverterDemand[inverterID]
	if !ok {
		return InverterDCInput{}, fmt.Errorf("engine: %s is not a known inverter", inverterID)
	}

	return InverterDCInput{
		ACLoadWatts:    demand.ACLoadWatts,
		DCInputWatts:   demand.DCInputWatts,
		DCInputCurrent: demand.DCInputCurrent,
		ACVoltage:      demand.ACVoltage,
	}, nil
}

// LoadRequirements is the result of CalculateLoadRequirements.
type LoadRequirements struct {
	DCLoadsWatts               float64
	ACLoadsWatts               float64
	TotalPowerWatts            float64
	PeakPowerWatts             float64
	AveragePowerWatts          float64
	BatteryCapacityRequiredAh  float64
	InverterSizeRequiredWatts  float64
	ChargingPowerRequiredWatts float64
}

// CalculateLoadRequirements summarizes the power budget implied by a set
// of components. It is independent of wiring: it reads only component
// properties.
func CalculateLoadRequirements(components []design.Component, systemVoltage float64) LoadRequirements {
	var req LoadRequirements

	for i := range components {
		c := &components[i]
		watts := c.Prop(design.PropWatts)
		if watts == 0 {
			watts = topology.RatingWatts(c)
		}

		switch c.Type {
		case design.DCLoad:
			req.DCLoadsWatts += watts
		case design.ACLoad:
			req.ACLoadsWatts += watts
		}
	}

	req.TotalPowerWatts = req.DCLoadsWatts + req.ACLoadsWatts
	req.PeakPowerWatts = req.TotalPowerWatts

	avgFraction := averageLoadFraction(components)
	req.AveragePowerWatts = req.TotalPowerWatts * avgFraction

	if systemVoltage > 0 {
		dcEquivalentWatts := req.DCLoadsWatts + req.ACLoadsWatts/0.875
		req.BatteryCapacityRequiredAh = (dcEquivalentWatts * 24 * avgFraction) / systemVoltage
	}

	req.InverterSizeRequiredWatts = req.ACLoadsWatts
	req.ChargingPowerRequiredWatts = req.TotalPowerWatts

	return req
}

// averageLoadFraction estimates what share of the day a typical load
// bank actually draws its rated power, from any dailyHours properties
// present; it falls back to a conservative 1/3 duty cycle when none are
// declared.
func averageLoadFraction(components []design.Component) float64 {
	var total, weighted float64
	for i := range components {
		c := &components[i]
		if c.Type != design.DCLoad && c.Type != design.ACLoad {
			continue
		}
		hours := c.Prop(design.PropDailyHours)
		if hours <= 0 {
			continue
		}
		total++
		weighted += hours / 24.0
	}
	if total == 0 {
		return 1.0 / 3.0
	}
	return weighted / total
}
