package rules

import (
	"testing"

	"github.com/dshills/elecval/pkg/design"
)

func TestP1BatteryRuntimeLow(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "bat1", Type: design.Battery, Properties: map[string]float64{design.PropCapacity: 10}},
			{ID: "load1", Type: design.DCLoad, Properties: map[string]float64{design.PropWatts: 500}},
		},
	}
	issues := p1BatteryRuntime(d)
	if !hasRule(issues, "P1") {
		t.Errorf("expected P1 violation, got %+v", issues)
	}
}

func TestP2NoInverterForACLoad(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "load1", Type: design.ACLoad, Properties: map[string]float64{design.PropWatts: 100}},
		},
	}
	idx := mustBuild(t, d)
	issues := p2InverterCapacity(d, idx)
	if !hasRule(issues, "P2") {
		t.Errorf("expected P2 no-inverter error, got %+v", issues)
	}
}

func TestP3SolarUndersized(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "bat1", Type: design.Battery, Properties: map[string]float64{design.PropCapacity: 200}},
			{ID: "panel1", Type: design.SolarPanel, Properties: map[string]float64{design.PropWatts: 10}},
		},
	}
	issues := p3SolarCoverage(d)
	if !hasRule(issues, "P3") {
		t.Errorf("expected P3 warning, got %+v", issues)
	}
}
