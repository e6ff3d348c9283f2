package rules

import (
	"fmt"
	"strings"

	"github.com/dshills/elecval/pkg/design"
	"github.com/dshills/elecval/pkg/topology"
)

// Terminal runs T1-T4 over a design.
func Terminal(d *design.Design, idx *topology.Index) []Issue {
	var issues []Issue
	issues = append(issues, t1ReferenceIntegrity(d)...)
	issues = append(issues, t2PowerTerminals(d, idx)...)
	issues = append(issues, t3ACLoadTerminals(d, idx)...)
	issues = append(issues, t4DuplicateSingleTerminal(d, idx)...)
	return issues
}

// t1ReferenceIntegrity T1.
func t1ReferenceIntegrity(d *design.Design) []Issue {
	var issues []Issue
	for i := range d.Wires {
		w := &d.Wires[i]

		from, fromOK := d.ComponentByID(w.FromComponentID)
		if !fromOK {
			issues = append(issues, Issue{
				Severity: Error,
				Category: CategoryTerminal,
				Rule:     "T1",
				Message:  fmt.Sprintf("wire %s references nonexistent component %s", w.ID, w.FromComponentID),
				WireID:   w.ID,
			})
		} else if _, ok := design.TerminalByID(from.Type, w.FromTerminal); !ok {
			issues = append(issues, Issue{
				Severity:     Error,
				Category:     CategoryTerminal,
				Rule:         "T1",
				Message:      fmt.Sprintf("wire %s references nonexistent terminal %q on %s", w.ID, w.FromTerminal, from.ID),
				ComponentIDs: []string{from.ID},
				WireID:       w.ID,
			})
		}

		to, toOK := d.ComponentByID(w.ToComponentID)
		if !toOK {
			issues = append(issues, Issue{
				Severity: Error,
				Category: CategoryTerminal,
				Rule:     "T1",
				Message:  fmt.Sprintf("wire %s references nonexistent component %s", w.ID, w.ToComponentID),
				WireID:   w.ID,
			})
		} else if _, ok := design.TerminalByID(to.Type, w.ToTerminal); !ok {
			issues = append(issues, Issue{
				Severity:     Error,
				Category:     CategoryTerminal,
				Rule:         "T1",
				Message:      fmt.Sprintf("wire %s references nonexistent terminal %q on %s", w.ID, w.ToTerminal, to.ID),
				ComponentIDs: []string{to.ID},
				WireID:       w.ID,
			})
		}
	}
	return issues
}

// t2PowerTerminals T2.
func t2PowerTerminals(d *design.Design, idx *topology.Index) []Issue {
	var issues []Issue
	requiresBoth := func(t design.ComponentType) bool {
		return t == design.Battery || t == design.DCLoad || t == design.SolarPanel
	}

	for i := range d.Components {
		c := &d.Components[i]
		if !requiresBoth(c.Type) {
			continue
		}
		var hasPos, hasNeg bool
		for _, w := range wiresOf(idx, c.ID) {
			switch w.Polarity {
			case design.PolarityPositive:
				hasPos = true
			case design.PolarityNegative:
				hasNeg = true
			}
		}
		if !hasPos || !hasNeg {
			issues = append(issues, Issue{
				Severity:     Error,
				Category:     CategoryTerminal,
				Rule:         "T2",
				Message:      fmt.Sprintf("%s %s is missing a %s connection", c.Type, c.ID, missingPolarityLabel(hasPos, hasNeg)),
				ComponentIDs: []string{c.ID},
			})
		}
	}
	return issues
}

// t3ACLoadTerminals T3.
func t3ACLoadTerminals(d *design.Design, idx *topology.Index) []Issue {
	var issues []Issue
	for i := range d.Components {
		c := &d.Components[i]
		if c.Type != design.ACLoad {
			continue
		}
		have := map[design.WirePolarity]bool{}
		for _, w := range wiresOf(idx, c.ID) {
			have[w.Polarity] = true
		}
		var missing []string
		if !have[design.PolarityHot] {
			missing = append(missing, "hot")
		}
		if !have[design.PolarityNeutral] {
			missing = append(missing, "neutral")
		}
		if !have[design.PolarityGround] {
			missing = append(missing, "ground")
		}
		if len(missing) > 0 {
			issues = append(issues, Issue{
				Severity:     Error,
				Category:     CategoryTerminal,
				Rule:         "T3",
				Message:      fmt.Sprintf("ac-load %s is missing %v connection(s)", c.ID, missing),
				ComponentIDs: []string{c.ID},
			})
		}
	}
	return issues
}

// t4DuplicateSingleTerminal T4.
func t4DuplicateSingleTerminal(d *design.Design, idx *topology.Index) []Issue {
	var issues []Issue
	for i := range d.Components {
		c := &d.Components[i]
		terminals := design.Terminals(c.Type)
		if terminals == nil {
			continue
		}

		// A terminal is only overloaded if it carries wires from more than
		// one distinct parallel run; conductors sharing a run (same
		// endpoints and polarity) are a sanctioned parallel pair, not a
		// duplicate connection.
		groups := map[string]map[string]bool{}
		for _, w := range wiresOf(idx, c.ID) {
			t := terminalAt(w, c.ID)
			if groups[t] == nil {
				groups[t] = map[string]bool{}
			}
			groups[t][strings.Join(idx.Parallel[w.ID], ",")] = true
		}

		for _, t := range terminals {
			if t.Multi {
				continue
			}
			if n := len(groups[t.ID]); n > 1 {
				issues = append(issues, Issue{
					Severity:     Error,
					Category:     CategoryTerminal,
					Rule:         "T4",
					Message:      fmt.Sprintf("%s %s has %d distinct connections on single-wire terminal %q", c.Type, c.ID, n, t.ID),
					ComponentIDs: []string{c.ID},
				})
			}
		}
	}
	return issues
}
