package rules

import (
	"testing"

	"github.com/dshills/elecval/pkg/current"
	"github.com/dshills/elecval/pkg/design"
)

func TestWireSizingMissingGauge(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "bus", Type: design.BusbarPositive},
			{ID: "load1", Type: design.DCLoad, Properties: map[string]float64{design.PropWatts: 120}},
		},
		Wires: []design.Wire{
			{ID: "w1", FromComponentID: "bus", FromTerminal: "bus", ToComponentID: "load1", ToTerminal: "positive", Polarity: design.PolarityPositive, LengthFt: 10},
		},
	}
	idx := mustBuild(t, d)
	currents := current.Compute(idx, design.EngineConfig{}.WithDefaults())
	issues, _ := WireSizing(d, idx, currents, design.EngineConfig{})
	if !hasRule(issues, "W1") {
		t.Errorf("expected W1 missing-gauge error, got %+v", issues)
	}
}

func TestWireSizingUndersizedGauge(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "bus", Type: design.BusbarPositive},
			{ID: "load1", Type: design.DCLoad, Properties: map[string]float64{design.PropWatts: 1200}},
		},
		Wires: []design.Wire{
			{ID: "w1", FromComponentID: "bus", FromTerminal: "bus", ToComponentID: "load1", ToTerminal: "positive", Polarity: design.PolarityPositive, LengthFt: 10, Gauge: "18"},
		},
	}
	idx := mustBuild(t, d)
	currents := current.Compute(idx, design.EngineConfig{}.WithDefaults())
	issues, results := WireSizing(d, idx, currents, design.EngineConfig{})
	if !hasRule(issues, "W3") {
		t.Errorf("expected W3 ampacity error, got %+v", issues)
	}
	if results["w1"].Amps != 100 {
		t.Errorf("w1 amps = %v, want 100", results["w1"].Amps)
	}
}

func TestWireSizingGroundGaugeMismatch(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "inv1", Type: design.Inverter, Properties: map[string]float64{design.PropPowerRating: 1000}},
			{ID: "load1", Type: design.ACLoad, Properties: map[string]float64{design.PropWatts: 200, design.PropACVoltage: 120}},
		},
		Wires: []design.Wire{
			{ID: "w-hot", FromComponentID: "inv1", FromTerminal: "ac-out-hot", ToComponentID: "load1", ToTerminal: "hot", Polarity: design.PolarityHot, LengthFt: 10, Gauge: "12"},
			{ID: "w-gnd", FromComponentID: "inv1", FromTerminal: "ac-out-hot", ToComponentID: "load1", ToTerminal: "ground", Polarity: design.PolarityGround, LengthFt: 10, Gauge: "14"},
		},
	}
	idx := mustBuild(t, d)
	currents := current.Compute(idx, design.EngineConfig{}.WithDefaults())
	issues, _ := WireSizing(d, idx, currents, design.EngineConfig{})
	if !hasRule(issues, "W3") {
		t.Errorf("expected W3 ground-gauge-parity error, got %+v", issues)
	}
}
