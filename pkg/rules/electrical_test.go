package rules

import (
	"testing"

	"github.com/dshills/elecval/pkg/current"
	"github.com/dshills/elecval/pkg/design"
	"github.com/dshills/elecval/pkg/topology"
)

func mustBuild(t *testing.T, d *design.Design) *topology.Index {
	t.Helper()
	idx, err := topology.Build(d, design.EngineConfig{}.WithDefaults())
	if err != nil {
		t.Fatalf("topology.Build: %v", err)
	}
	return idx
}

func hasRule(issues []Issue, rule string) bool {
	for _, iss := range issues {
		if iss.Rule == rule {
			return true
		}
	}
	return false
}

func TestE4BatteryConnectivityMissingNegative(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "bat1", Type: design.Battery},
			{ID: "bus", Type: design.BusbarPositive},
		},
		Wires: []design.Wire{
			{ID: "w1", FromComponentID: "bat1", FromTerminal: "positive", ToComponentID: "bus", ToTerminal: "bus", Polarity: design.PolarityPositive},
		},
	}
	idx := mustBuild(t, d)
	issues := e4BatteryConnectivity(d, idx)
	if !hasRule(issues, "E4") {
		t.Errorf("expected E4 violation, got %+v", issues)
	}
}

func TestE2BusbarMixedPolarity(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "bus", Type: design.BusbarPositive},
			{ID: "load1", Type: design.DCLoad, Properties: map[string]float64{design.PropWatts: 10}},
			{ID: "bat1", Type: design.Battery},
		},
		Wires: []design.Wire{
			{ID: "w1", FromComponentID: "bus", FromTerminal: "bus", ToComponentID: "load1", ToTerminal: "positive", Polarity: design.PolarityPositive},
			{ID: "w2", FromComponentID: "bus", FromTerminal: "bus", ToComponentID: "bat1", ToTerminal: "negative", Polarity: design.PolarityNegative},
		},
	}
	idx := mustBuild(t, d)
	issues := e2BusbarPurity(idx)
	if !hasRule(issues, "E2") {
		t.Errorf("expected E2 violation, got %+v", issues)
	}
}

func TestE1SmartShuntBypass(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "bat1", Type: design.Battery},
			{ID: "shunt1", Type: design.SmartShunt},
			{ID: "load1", Type: design.DCLoad, Properties: map[string]float64{design.PropWatts: 100}},
		},
		Wires: []design.Wire{
			{ID: "w1", FromComponentID: "bat1", FromTerminal: "negative", ToComponentID: "shunt1", ToTerminal: "negative", Polarity: design.PolarityNegative},
			{ID: "w2", FromComponentID: "load1", FromTerminal: "negative", ToComponentID: "bat1", ToTerminal: "negative", Polarity: design.PolarityNegative},
		},
	}
	idx := mustBuild(t, d)
	issues := e1SmartShunt(d, idx)
	if !hasRule(issues, "E1") {
		t.Errorf("expected E1 bypass warning, got %+v", issues)
	}
}

func TestE8FuseOverRating(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "bat1", Type: design.Battery},
			{ID: "fuse1", Type: design.Fuse, Properties: map[string]float64{design.PropFuseRating: 100}},
			{ID: "bus", Type: design.BusbarPositive},
			{ID: "load1", Type: design.DCLoad, Properties: map[string]float64{design.PropWatts: 1714}},
		},
		Wires: []design.Wire{
			{ID: "w1", FromComponentID: "bat1", FromTerminal: "positive", ToComponentID: "fuse1", ToTerminal: "in", Polarity: design.PolarityPositive},
			{ID: "w2", FromComponentID: "fuse1", FromTerminal: "out", ToComponentID: "bus", ToTerminal: "bus", Polarity: design.PolarityPositive},
			{ID: "w3", FromComponentID: "bus", FromTerminal: "bus", ToComponentID: "load1", ToTerminal: "positive", Polarity: design.PolarityPositive},
		},
	}
	idx := mustBuild(t, d)
	currents := current.Compute(idx, design.EngineConfig{}.WithDefaults())
	issues := e8FuseRating(d, idx, currents)
	if !hasRule(issues, "E8") {
		t.Errorf("expected E8 over-rating error, got %+v", issues)
	}
}
