package rules

import (
	"fmt"
	"math"

	"github.com/dshills/elecval/pkg/current"
	"github.com/dshills/elecval/pkg/design"
	"github.com/dshills/elecval/pkg/topology"
)

// Electrical runs E1-E8 over a design
func Electrical(d *design.Design, idx *topology.Index, currents map[string]current.Result) []Issue {
	var issues []Issue
	issues = append(issues, e1SmartShunt(d, idx)...)
	issues = append(issues, e2BusbarPurity(idx)...)
	issues = append(issues, e3Grounding(d, idx)...)
	issues = append(issues, e4BatteryConnectivity(d, idx)...)
	issues = append(issues, e5MPPTPVConnection(d, idx)...)
	issues = append(issues, e6VoltageCoherence(d, idx)...)
	issues = append(issues, e7ACDCSeparation(d, idx)...)
	issues = append(issues, e8FuseRating(d, idx, currents)...)
	return issues
}

func wiresOf(idx *topology.Index, componentID string) []*design.Wire {
	var out []*design.Wire
	for _, wid := range idx.Incident[componentID] {
		if w, ok := idx.Wire(wid); ok {
			out = append(out, w)
		}
	}
	return out
}

func otherEnd(w *design.Wire, id string) (compID, terminal string) {
	if w.FromComponentID == id {
		return w.ToComponentID, w.ToTerminal
	}
	return w.FromComponentID, w.FromTerminal
}

func terminalAt(w *design.Wire, id string) string {
	if w.FromComponentID == id {
		return w.FromTerminal
	}
	return w.ToTerminal
}

// e1SmartShunt E1.
func e1SmartShunt(d *design.Design, idx *topology.Index) []Issue {
	var shunt *design.Component
	for i := range d.Components {
		if d.Components[i].Type == design.SmartShunt {
			shunt = &d.Components[i]
			break
		}
	}
	if shunt == nil {
		return nil
	}

	var issues []Issue

	for i := range d.Components {
		bat := &d.Components[i]
		if bat.Type != design.Battery {
			continue
		}

		shuntConnected := false
		for _, w := range wiresOf(idx, bat.ID) {
			if terminalAt(w, bat.ID) != "negative" {
				continue
			}
			otherID, otherTerm := otherEnd(w, bat.ID)
			if otherID == shunt.ID && otherTerm == "negative" {
				shuntConnected = true
			}
		}
		if !shuntConnected {
			issues = append(issues, Issue{
				Severity:     Error,
				Category:     CategoryElectrical,
				Rule:         "E1",
				Message:      fmt.Sprintf("battery %s negative terminal does not connect to smartshunt %s negative terminal", bat.ID, shunt.ID),
				ComponentIDs: []string{bat.ID, shunt.ID},
				Suggestion:   "wire the battery's negative terminal directly to the smartshunt's negative terminal",
			})
		}

		for _, w := range wiresOf(idx, bat.ID) {
			if terminalAt(w, bat.ID) != "negative" {
				continue
			}
			otherID, _ := otherEnd(w, bat.ID)
			if otherID == shunt.ID {
				continue
			}
			other, ok := idx.Component(otherID)
			if !ok {
				continue
			}
			if other.Type == design.DCLoad || design.IsInverter(other.Type) {
				issues = append(issues, Issue{
					Severity:     Warning,
					Category:     CategoryElectrical,
					Rule:         "E1",
					Message:      fmt.Sprintf("%s %s bypasses smartshunt %s, connecting directly to battery %s", other.Type, other.ID, shunt.ID, bat.ID),
					ComponentIDs: []string{other.ID, bat.ID},
					WireID:       w.ID,
					Suggestion:   fmt.Sprintf("re-route %s's negative wire to smartshunt %s's system-minus terminal", other.ID, shunt.ID),
				})
			}
		}
	}

	return issues
}

// e2BusbarPurity E2.
func e2BusbarPurity(idx *topology.Index) []Issue {
	var issues []Issue
	for _, cid := range idx.SortedComponentIDs() {
		c, _ := idx.Component(cid)
		if !design.IsBusbar(c.Type) {
			continue
		}

		polarities := map[design.WirePolarity]bool{}
		sides := map[topology.Side]bool{}
		for _, w := range wiresOf(idx, cid) {
			polarities[w.Polarity] = true
			sides[idx.Side[w.ID]] = true
		}

		if len(polarities) > 1 {
			issues = append(issues, Issue{
				Severity:     Error,
				Category:     CategoryElectrical,
				Rule:         "E2",
				Message:      fmt.Sprintf("bus bar %s carries mixed wire polarities", cid),
				ComponentIDs: []string{cid},
			})
		}
		if len(sides) > 1 {
			issues = append(issues, Issue{
				Severity:     Error,
				Category:     CategoryElectrical,
				Rule:         "E2",
				Message:      fmt.Sprintf("bus bar %s carries both AC and DC wires", cid),
				ComponentIDs: []string{cid},
			})
		}
	}
	return issues
}

// e3Grounding E3.
func e3Grounding(d *design.Design, idx *topology.Index) []Issue {
	hasCerbo := false
	for i := range d.Components {
		if d.Components[i].Type == design.Cerbo {
			hasCerbo = true
			break
		}
	}
	if !hasCerbo {
		return nil
	}

	for _, w := range d.Wires {
		from, _ := idx.Component(w.FromComponentID)
		to, _ := idx.Component(w.ToComponentID)
		if terminalClassIs(from, w.FromTerminal, design.ClassData) || terminalClassIs(to, w.ToTerminal, design.ClassData) {
			return nil
		}
	}

	return []Issue{{
		Severity: Warning,
		Category: CategoryElectrical,
		Rule:     "E3",
		Message:  "cerbo is present but no data-polarity wires connect it",
	}}
}

func terminalClassIs(c *design.Component, terminalID string, class design.TerminalClass) bool {
	if c == nil {
		return false
	}
	t, ok := design.TerminalByID(c.Type, terminalID)
	return ok && t.Class == class
}

// e4BatteryConnectivity E4.
func e4BatteryConnectivity(d *design.Design, idx *topology.Index) []Issue {
	var issues []Issue
	for i := range d.Components {
		bat := &d.Components[i]
		if bat.Type != design.Battery {
			continue
		}
		var hasPos, hasNeg bool
		for _, w := range wiresOf(idx, bat.ID) {
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
				Category:     CategoryElectrical,
				Rule:         "E4",
				Message:      fmt.Sprintf("battery %s is missing a %s connection", bat.ID, missingPolarityLabel(hasPos, hasNeg)),
				ComponentIDs: []string{bat.ID},
			})
		}
	}
	return issues
}

func missingPolarityLabel(hasPos, hasNeg bool) string {
	switch {
	case !hasPos && !hasNeg:
		return "positive and negative"
	case !hasPos:
		return "positive"
	default:
		return "negative"
	}
}

// e5MPPTPVConnection E5.
func e5MPPTPVConnection(d *design.Design, idx *topology.Index) []Issue {
	var issues []Issue
	for i := range d.Components {
		m := &d.Components[i]
		if m.Type != design.MPPT {
			continue
		}

		posOK := pvTerminalReachesPanel(idx, m.ID, "pv-positive")
		negOK := pvTerminalReachesPanel(idx, m.ID, "pv-negative")
		if !posOK || !negOK {
			issues = append(issues, Issue{
				Severity:     Error,
				Category:     CategoryElectrical,
				Rule:         "E5",
				Message:      fmt.Sprintf("mppt %s does not connect to a solar panel on both pv terminals", m.ID),
				ComponentIDs: []string{m.ID},
			})
		}
	}
	return issues
}

func pvTerminalReachesPanel(idx *topology.Index, mpptID, terminal string) bool {
	for _, w := range wiresOf(idx, mpptID) {
		if terminalAt(w, mpptID) != terminal {
			continue
		}
		otherID, _ := otherEnd(w, mpptID)
		other, ok := idx.Component(otherID)
		if !ok {
			continue
		}
		if other.Type == design.SolarPanel {
			return true
		}
		if topology.IsTransit(other.Type) {
			for _, nb := range topology.TransitNeighbors(idx, otherID, mpptID) {
				if c, ok := idx.Component(nb); ok && c.Type == design.SolarPanel {
					return true
				}
			}
		}
	}
	return false
}

// e6VoltageCoherence E6.
func e6VoltageCoherence(d *design.Design, idx *topology.Index) []Issue {
	var issues []Issue
	exempt := func(t design.ComponentType) bool {
		return t == design.Battery || t == design.ACLoad || t == design.ACPanel || t == design.SolarPanel
	}

	for i := range d.Components {
		c := &d.Components[i]
		if exempt(c.Type) || !design.KnownType(c.Type) {
			continue
		}
		v := c.Prop(design.PropVoltage)
		if v != 0 && v != d.SystemVoltage {
			issues = append(issues, Issue{
				Severity:     Error,
				Category:     CategoryElectrical,
				Rule:         "E6",
				Message:      fmt.Sprintf("%s %s declares voltage %.0f, expected system voltage %.0f", c.Type, c.ID, v, d.SystemVoltage),
				ComponentIDs: []string{c.ID},
			})
		}
	}

	for _, w := range d.Wires {
		if idx.Side[w.ID] == topology.AC {
			continue
		}
		from, _ := idx.Component(w.FromComponentID)
		to, _ := idx.Component(w.ToComponentID)
		fv, fok := wireEndpointVoltage(from)
		tv, tok := wireEndpointVoltage(to)
		if fok && tok && !exempt(from.Type) && !exempt(to.Type) && math.Abs(fv-tv) > 0.01 {
			issues = append(issues, Issue{
				Severity: Error,
				Category: CategoryElectrical,
				Rule:     "E6",
				Message:  fmt.Sprintf("wire %s connects components at disagreeing voltages (%.0f vs %.0f)", w.ID, fv, tv),
				WireID:   w.ID,
			})
		}
	}

	return issues
}

func wireEndpointVoltage(c *design.Component) (float64, bool) {
	if c == nil {
		return 0, false
	}
	if v := c.Prop(design.PropVoltage); v != 0 {
		return v, true
	}
	return 0, false
}

// e7ACDCSeparation E7.
func e7ACDCSeparation(d *design.Design, idx *topology.Index) []Issue {
	hasAC, hasDC := false, false
	for _, w := range d.Wires {
		if idx.Side[w.ID] == topology.AC {
			hasAC = true
		} else {
			hasDC = true
		}
	}
	if !hasAC || !hasDC {
		return nil
	}

	var issues []Issue
	for i := range d.Components {
		c := &d.Components[i]
		if !design.IsBusbar(c.Type) {
			continue
		}
		if !looksLabeled(c.Name) {
			issues = append(issues, Issue{
				Severity:     Info,
				Category:     CategoryElectrical,
				Rule:         "E7",
				Message:      fmt.Sprintf("bus bar %s has no AC/DC naming hint in a mixed-side design", c.ID),
				ComponentIDs: []string{c.ID},
			})
		}
	}
	return issues
}

func looksLabeled(name string) bool {
	for _, want := range []string{"AC", "DC", "ac", "dc"} {
		if len(name) >= len(want) {
			for i := 0; i+len(want) <= len(name); i++ {
				if name[i:i+len(want)] == want {
					return true
				}
			}
		}
	}
	return false
}

// e8FuseRating E8.
func e8FuseRating(d *design.Design, idx *topology.Index, currents map[string]current.Result) []Issue {
	var issues []Issue
	for i := range d.Components {
		fuse := &d.Components[i]
		if fuse.Type != design.Fuse {
			continue
		}

		amps := downstreamCurrent(idx, currents, fuse.ID)
		rating := fuse.Prop(design.PropFuseRating)
		if rating == 0 {
			continue
		}

		switch {
		case amps > rating:
			issues = append(issues, Issue{
				Severity:     Error,
				Category:     CategoryElectrical,
				Rule:         "E8",
				Message:      fmt.Sprintf("fuse %s rated %.0fA carries %.1fA", fuse.ID, rating, amps),
				ComponentIDs: []string{fuse.ID},
				Suggestion:   fmt.Sprintf("use a %.0fA fuse", nextStandardRating(amps)),
			})
		case amps > 0.8*rating:
			issues = append(issues, Issue{
				Severity:     Warning,
				Category:     CategoryElectrical,
				Rule:         "E8",
				Message:      fmt.Sprintf("fuse %s rated %.0fA carries %.1fA (within 80%% of rating)", fuse.ID, rating, amps),
				ComponentIDs: []string{fuse.ID},
				Suggestion:   fmt.Sprintf("consider a %.0fA fuse", nextStandardRating(amps)),
			})
		}
	}
	return issues
}

// downstreamCurrent returns the current through a fuse's "out" wire, the
// path it protects, falling back to the "in" wire when "out" is absent.
func downstreamCurrent(idx *topology.Index, currents map[string]current.Result, fuseID string) float64 {
	var outAmps, inAmps float64
	var haveOut bool
	for _, w := range wiresOf(idx, fuseID) {
		r := currents[w.ID]
		if terminalAt(w, fuseID) == "out" {
			outAmps = r.Amps
			haveOut = true
		} else {
			inAmps = r.Amps
		}
	}
	if haveOut {
		return outAmps
	}
	return inAmps
}

// nextStandardRating rounds a current up to the next multiple of 50A,
// E8.
func nextStandardRating(amps float64) float64 {
	return math.Ceil(amps/50.0) * 50.0
}
