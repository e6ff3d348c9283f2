package rules

import (
	"testing"

	"github.com/dshills/elecval/pkg/design"
)

func TestLayoutOverlap(t *testing.T) {
	d := &design.Design{
		Components: []design.Component{
			{ID: "a", Type: design.Battery, X: 100, Y: 100},
			{ID: "b", Type: design.Battery, X: 110, Y: 110},
		},
	}
	issues, metrics := Layout(d)
	if !hasRule(issues, "L1") {
		t.Errorf("expected L1 overlap, got %+v", issues)
	}
	if metrics.Overlaps != 1 {
		t.Errorf("metrics.Overlaps = %d, want 1", metrics.Overlaps)
	}
}

func TestLayoutEdgeMargin(t *testing.T) {
	d := &design.Design{
		Components: []design.Component{
			{ID: "a", Type: design.Battery, X: 10, Y: 10},
		},
	}
	issues, metrics := Layout(d)
	if !hasRule(issues, "L3") {
		t.Errorf("expected L3 edge-margin warning, got %+v", issues)
	}
	if metrics.NearEdge != 1 {
		t.Errorf("metrics.NearEdge = %d, want 1", metrics.NearEdge)
	}
}

func TestLayoutNoIssuesWhenWellSpaced(t *testing.T) {
	d := &design.Design{
		Components: []design.Component{
			{ID: "a", Type: design.Battery, X: 300, Y: 300},
			{ID: "b", Type: design.Battery, X: 700, Y: 300},
		},
	}
	issues, metrics := Layout(d)
	if len(issues) != 0 {
		t.Errorf("expected no layout issues, got %+v", issues)
	}
	if metrics.Overlaps != 0 || metrics.NearEdge != 0 {
		t.Errorf("unexpected metrics %+v", metrics)
	}
}
