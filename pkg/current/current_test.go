package current

import (
	"testing"

	"github.com/dshills/elecval/pkg/design"
	"github.com/dshills/elecval/pkg/topology"
)

func buildIndex(t *testing.T, d *design.Design) *topology.Index {
	t.Helper()
	idx, err := topology.Build(d, design.EngineConfig{}.WithDefaults())
	if err != nil {
		t.Fatalf("topology.Build: %v", err)
	}
	return idx
}

func TestGroundWireAlwaysZero(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "load1", Type: design.ACLoad, Properties: map[string]float64{design.PropWatts: 100}},
			{ID: "inv1", Type: design.Inverter, Properties: map[string]float64{design.PropPowerRating: 1000}},
		},
		Wires: []design.Wire{
			{ID: "w-ground", FromComponentID: "inv1", FromTerminal: "ac-out-hot", ToComponentID: "load1", ToTerminal: "ground", Polarity: design.PolarityGround},
		},
	}
	idx := buildIndex(t, d)
	res := Compute(idx, design.EngineConfig{})
	if res["w-ground"].Amps != 0 {
		t.Errorf("ground wire amps = %v, want 0", res["w-ground"].Amps)
	}
}

func TestDCLoadCurrent(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "bus", Type: design.BusbarPositive},
			{ID: "load1", Type: design.DCLoad, Properties: map[string]float64{design.PropWatts: 120}},
		},
		Wires: []design.Wire{
			{ID: "w1", FromComponentID: "bus", FromTerminal: "bus", ToComponentID: "load1", ToTerminal: "positive", Polarity: design.PolarityPositive},
		},
	}
	idx := buildIndex(t, d)
	res := Compute(idx, design.EngineConfig{})
	got := res["w1"].Amps
	if got != 10 {
		t.Errorf("load wire amps = %v, want 10", got)
	}
}

func TestSolarPanelVmpFallback(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "mppt1", Type: design.MPPT, Properties: map[string]float64{design.PropMaxCurrent: 30}},
			{ID: "panel1", Type: design.SolarPanel, Properties: map[string]float64{design.PropWatts: 200}},
		},
		Wires: []design.Wire{
			{ID: "w1", FromComponentID: "panel1", FromTerminal: "pv-positive", ToComponentID: "mppt1", ToTerminal: "pv-positive", Polarity: design.PolarityPositive},
		},
	}
	idx := buildIndex(t, d)
	res := Compute(idx, design.EngineConfig{})
	// No declared voltage -> Vmp falls back to 1.5x system voltage = 18V.
	want := 200.0 / 18.0
	if got := res["w1"].Amps; got < want-0.001 || got > want+0.001 {
		t.Errorf("solar wire amps = %v, want %v", got, want)
	}
}

func TestChargerOutputToBusbarCarriesChargerCurrent(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "mppt1", Type: design.MPPT, Properties: map[string]float64{design.PropMaxCurrent: 20}},
			{ID: "bus", Type: design.BusbarPositive},
			{ID: "load1", Type: design.DCLoad, Properties: map[string]float64{design.PropWatts: 120}},
		},
		Wires: []design.Wire{
			{ID: "w-charger", FromComponentID: "mppt1", FromTerminal: "dc-positive", ToComponentID: "bus", ToTerminal: "bus", Polarity: design.PolarityPositive},
			{ID: "w-load", FromComponentID: "bus", FromTerminal: "bus", ToComponentID: "load1", ToTerminal: "positive", Polarity: design.PolarityPositive},
		},
	}
	idx := buildIndex(t, d)
	res := Compute(idx, design.EngineConfig{})

	// Rule 5 (charger output) is evaluated before the bus-bar rules, so
	// the charger's output wire carries the charger's maxCurrent.
	if got := res["w-charger"].Amps; got != 20 {
		t.Errorf("charger->bus current = %v, want 20 (mppt maxCurrent)", got)
	}
	if got := res["w-load"].Amps; got != 10 {
		t.Errorf("bus->load current = %v, want 10", got)
	}
}

func TestBatteryWireToChargerIsZero(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "bat1", Type: design.Battery},
			{ID: "mppt1", Type: design.MPPT, Properties: map[string]float64{design.PropMaxCurrent: 20}},
		},
		Wires: []design.Wire{
			{ID: "w1", FromComponentID: "bat1", FromTerminal: "positive", ToComponentID: "mppt1", ToTerminal: "dc-positive", Polarity: design.PolarityPositive},
		},
	}
	idx := buildIndex(t, d)
	res := Compute(idx, design.EngineConfig{})
	if got := res["w1"].Amps; got != 0 {
		t.Errorf("battery-to-charger wire amps = %v, want 0", got)
	}
}

func TestBatteryNegativeTracesThroughSmartShuntToBusbar(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "bat1", Type: design.Battery},
			{ID: "shunt1", Type: design.SmartShunt},
			{ID: "busN", Type: design.BusbarNegative},
			{ID: "load1", Type: design.DCLoad, Properties: map[string]float64{design.PropWatts: 120}},
			{ID: "cerbo1", Type: design.Cerbo},
		},
		Wires: []design.Wire{
			{ID: "w-bat-shunt", FromComponentID: "bat1", FromTerminal: "negative", ToComponentID: "shunt1", ToTerminal: "negative", Polarity: design.PolarityNegative},
			{ID: "w-shunt-bus", FromComponentID: "shunt1", FromTerminal: "system-minus", ToComponentID: "busN", ToTerminal: "bus", Polarity: design.PolarityNegative},
			{ID: "w-load", FromComponentID: "busN", FromTerminal: "bus", ToComponentID: "load1", ToTerminal: "negative", Polarity: design.PolarityNegative},
			{ID: "w-data", FromComponentID: "shunt1", FromTerminal: "data", ToComponentID: "cerbo1", ToTerminal: "data", Polarity: design.PolarityPositive},
		},
	}
	idx := buildIndex(t, d)
	res := Compute(idx, design.EngineConfig{})
	if got := res["w-bat-shunt"].Amps; got != 10 {
		t.Errorf("battery-negative wire through smartshunt = %v, want 10", got)
	}
	if res["w-bat-shunt"].Warning != "" {
		t.Errorf("expected no warning, got %q", res["w-bat-shunt"].Warning)
	}
}

func TestUnknownWireFallsBackWithWarning(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "c1", Type: design.Cerbo},
			{ID: "c2", Type: design.BMV},
		},
		Wires: []design.Wire{
			{ID: "w1", FromComponentID: "c1", FromTerminal: "data", ToComponentID: "c2", ToTerminal: "data", Polarity: design.PolarityPositive},
		},
	}
	idx := buildIndex(t, d)
	res := Compute(idx, design.EngineConfig{})
	r := res["w1"]
	if r.Amps != 0 || r.Warning == "" {
		t.Errorf("expected fallback with warning, got %+v", r)
	}
}
