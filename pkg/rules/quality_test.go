package rules

import (
	"testing"

	"github.com/dshills/elecval/pkg/design"
)

func TestQ1LoadWattageMissing(t *testing.T) {
	d := &design.Design{
		Components: []design.Component{
			{ID: "load1", Type: design.DCLoad},
		},
	}
	issues := Quality(d, mustBuild(t, d))
	if !hasRule(issues, "Q1") {
		t.Errorf("expected Q1 error, got %+v", issues)
	}
}

func TestQ4UnreferencedComponent(t *testing.T) {
	d := &design.Design{
		Components: []design.Component{
			{ID: "bat1", Type: design.Battery},
		},
	}
	issues := Quality(d, mustBuild(t, d))
	if !hasRule(issues, "Q4") {
		t.Errorf("expected Q4 warning, got %+v", issues)
	}
}
