package engine

import (
	"testing"

	"github.com/dshills/elecval/pkg/design"
	"github.com/dshills/elecval/pkg/gauge"
	"github.com/dshills/elecval/pkg/rules"
)

// TestMinimalLithiumScenario runs a minimal lithium battery/fuse/busbar/load
// loop end to end and checks the expected current and gauge recommendation.
func TestMinimalLithiumScenario(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "bat1", Type: design.Battery, X: 200, Y: 400, Properties: map[string]float64{
				design.PropCapacity: 200, design.PropBatteryType: 0,
			}},
			{ID: "fuse1", Type: design.Fuse, X: 500, Y: 400, Properties: map[string]float64{design.PropFuseRating: 400}},
			{ID: "busP", Type: design.BusbarPositive, X: 800, Y: 300},
			{ID: "busN", Type: design.BusbarNegative, X: 800, Y: 600},
			{ID: "load1", Type: design.DCLoad, X: 1200, Y: 450, Properties: map[string]float64{design.PropWatts: 120}},
		},
		Wires: []design.Wire{
			{ID: "w1", FromComponentID: "bat1", FromTerminal: "positive", ToComponentID: "fuse1", ToTerminal: "in", Polarity: design.PolarityPositive, Gauge: "10", LengthFt: 3},
			{ID: "w2", FromComponentID: "fuse1", FromTerminal: "out", ToComponentID: "busP", ToTerminal: "bus", Polarity: design.PolarityPositive, Gauge: "10", LengthFt: 3},
			{ID: "w3", FromComponentID: "busP", FromTerminal: "bus", ToComponentID: "load1", ToTerminal: "positive", Polarity: design.PolarityPositive, Gauge: "10", LengthFt: 15},
			{ID: "w4", FromComponentID: "load1", FromTerminal: "negative", ToComponentID: "busN", ToTerminal: "bus", Polarity: design.PolarityNegative, Gauge: "10", LengthFt: 5},
			{ID: "w5", FromComponentID: "busN", FromTerminal: "bus", ToComponentID: "bat1", ToTerminal: "negative", Polarity: design.PolarityNegative, Gauge: "10", LengthFt: 3},
		},
	}

	result, err := Validate(d, design.EngineConfig{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	wire3 := result.Wires["w3"]
	if wire3.Amps != 10 {
		t.Errorf("w3 amps = %v, want 10", wire3.Amps)
	}
	if wire3.RecommendedGauge != gauge.AWG10 {
		t.Errorf("w3 recommended gauge = %v, want AWG10", wire3.RecommendedGauge)
	}
	if result.Score < 90 {
		t.Errorf("score = %v, want >= 90", result.Score)
	}
	for _, iss := range result.Issues {
		if iss.Severity.String() == "error" {
			t.Errorf("unexpected error issue: %+v", iss)
		}
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "bat1", Type: design.Battery, Properties: map[string]float64{design.PropCapacity: 100}},
			{ID: "load1", Type: design.DCLoad, Properties: map[string]float64{design.PropWatts: 60}},
		},
		Wires: []design.Wire{
			{ID: "w1", FromComponentID: "bat1", FromTerminal: "positive", ToComponentID: "load1", ToTerminal: "positive", Polarity: design.PolarityPositive, Gauge: "10", LengthFt: 5},
			{ID: "w2", FromComponentID: "load1", FromTerminal: "negative", ToComponentID: "bat1", ToTerminal: "negative", Polarity: design.PolarityNegative, Gauge: "10", LengthFt: 5},
		},
	}

	r1, err := Validate(d, design.EngineConfig{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	r2, err := Validate(d, design.EngineConfig{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if r1.Score != r2.Score || len(r1.Issues) != len(r2.Issues) {
		t.Errorf("Validate is not deterministic: %v issues/%v score vs %v issues/%v score",
			len(r1.Issues), r1.Score, len(r2.Issues), r2.Score)
	}
}

func TestShouldStopRespectsPowerCapacityException(t *testing.T) {
	result := &ValidationResult{
		Score: 95,
		Issues: []rules.Issue{
			{Severity: rules.Error, Category: rules.CategoryPowerCap, Rule: "P1"},
		},
	}
	if !ShouldStop(result, 90) {
		t.Errorf("expected ShouldStop to return true when only power-capacity errors remain")
	}
}
