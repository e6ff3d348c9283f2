package rules

import (
	"fmt"

	"github.com/dshills/elecval/pkg/design"
	"github.com/dshills/elecval/pkg/topology"
)

// Quality runs Q1-Q4 (AI-quality/completeness) over a design, flagging
// designs that are structurally valid but incomplete or implausible.
func Quality(d *design.Design, idx *topology.Index) []Issue {
	var issues []Issue
	issues = append(issues, q1LoadWattage(d)...)
	issues = append(issues, q2BatteryCapacity(d)...)
	issues = append(issues, q3SolarWattage(d)...)
	issues = append(issues, q4Unreferenced(d, idx)...)
	return issues
}

func q1LoadWattage(d *design.Design) []Issue {
	var issues []Issue
	for i := range d.Components {
		c := &d.Components[i]
		if c.Type != design.ACLoad && c.Type != design.DCLoad {
			continue
		}
		watts := c.Prop(design.PropWatts)
		amps := c.Prop(design.PropAmps)
		if watts <= 0 && amps <= 0 {
			issues = append(issues, Issue{
				Severity:     Error,
				Category:     CategoryAIQuality,
				Rule:         "Q1",
				Message:      fmt.Sprintf("%s %s has no declared watts or amps", c.Type, c.ID),
				ComponentIDs: []string{c.ID},
				Suggestion:   loadWattageSuggestion(c.Type),
			})
		}
	}
	return issues
}

func loadWattageSuggestion(t design.ComponentType) string {
	if t == design.ACLoad {
		return "set the ac-load's watts property from its nameplate rating"
	}
	return "set the dc-load's watts or amps property from its nameplate rating"
}

func q2BatteryCapacity(d *design.Design) []Issue {
	var issues []Issue
	for i := range d.Components {
		c := &d.Components[i]
		if c.Type != design.Battery {
			continue
		}
		if c.Prop(design.PropCapacity) <= 0 {
			issues = append(issues, Issue{
				Severity:     Warning,
				Category:     CategoryAIQuality,
				Rule:         "Q2",
				Message:      fmt.Sprintf("battery %s is missing a capacity property", c.ID),
				ComponentIDs: []string{c.ID},
			})
		}
	}
	return issues
}

func q3SolarWattage(d *design.Design) []Issue {
	var issues []Issue
	for i := range d.Components {
		c := &d.Components[i]
		if c.Type != design.SolarPanel {
			continue
		}
		if c.Prop(design.PropWatts) <= 0 {
			issues = append(issues, Issue{
				Severity:     Warning,
				Category:     CategoryAIQuality,
				Rule:         "Q3",
				Message:      fmt.Sprintf("solar panel %s is missing a watts property", c.ID),
				ComponentIDs: []string{c.ID},
			})
		}
	}
	return issues
}

func q4Unreferenced(d *design.Design, idx *topology.Index) []Issue {
	var issues []Issue
	for i := range d.Components {
		c := &d.Components[i]
		if len(idx.Incident[c.ID]) == 0 {
			issues = append(issues, Issue{
				Severity:     Warning,
				Category:     CategoryAIQuality,
				Rule:         "Q4",
				Message:      fmt.Sprintf("%s %s is not referenced by any wire", c.Type, c.ID),
				ComponentIDs: []string{c.ID},
			})
		}
	}
	return issues
}
