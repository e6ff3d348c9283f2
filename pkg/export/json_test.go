package export

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dshills/elecval/pkg/design"
	"github.com/dshills/elecval/pkg/engine"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	d := &design.Design{
		SystemVoltage: 12,
		Components: []design.Component{
			{ID: "bat1", Type: design.Battery, X: 0, Y: 0, Properties: map[string]float64{design.PropCapacity: 100}},
			{ID: "load1", Type: design.DCLoad, X: 400, Y: 0, Properties: map[string]float64{design.PropWatts: 60}},
		},
		Wires: []design.Wire{
			{ID: "w1", FromComponentID: "bat1", FromTerminal: "positive", ToComponentID: "load1", ToTerminal: "positive", Polarity: design.PolarityPositive, Gauge: "10", LengthFt: 5},
			{ID: "w2", FromComponentID: "load1", FromTerminal: "negative", ToComponentID: "bat1", ToTerminal: "negative", Polarity: design.PolarityNegative, Gauge: "10", LengthFt: 5},
		},
	}
	result, err := engine.Validate(d, design.EngineConfig{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return &Report{Design: d, Result: result}
}

func TestExportJSONRoundTrips(t *testing.T) {
	r := sampleReport(t)

	data, err := ExportJSON(r)
	require.NoError(t, err)

	var out Report
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Design.Components, len(r.Design.Components))
	require.Equal(t, r.Result.Score, out.Result.Score)

	if diff := cmp.Diff(r.Design.Components, out.Design.Components); diff != "" {
		t.Errorf("component data changed across a JSON round trip (-want +got):\n%s", diff)
	}
}

func TestExportJSONCompactIsSmaller(t *testing.T) {
	r := sampleReport(t)

	pretty, err := ExportJSON(r)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	compact, err := ExportJSONCompact(r)
	if err != nil {
		t.Fatalf("ExportJSONCompact: %v", err)
	}
	if len(compact) >= len(pretty) {
		t.Errorf("compact output (%d bytes) should be smaller than pretty output (%d bytes)", len(compact), len(pretty))
	}
}

func TestSaveJSONToFile(t *testing.T) {
	r := sampleReport(t)
	path := t.TempDir() + "/report.json"

	if err := SaveJSONToFile(r, path); err != nil {
		t.Fatalf("SaveJSONToFile: %v", err)
	}
}
