package current

import (
	"fmt"
	"math"

	"github.com/dshills/elecval/pkg/design"
	"github.com/dshills/elecval/pkg/topology"
)

// Result is the current a single wire carries, plus which rule produced it
// and, for the fallback case, why it could not be determined.
type Result struct {
	Amps    float64
	Rule    string
	Warning string
}

// Compute assigns a current to every wire in the index.
// Rule evaluation order is fixed, applying exactly one of the twelve
// current rules per wire.
func Compute(idx *topology.Index, cfg design.EngineConfig) map[string]Result {
	cfg = cfg.WithDefaults()
	out := make(map[string]Result, len(idx.Design.Wires))
	for _, w := range idx.Design.Wires {
		out[w.ID] = forWire(idx, w.ID, cfg)
	}
	return out
}

func safeDiv(v float64) float64 {
	if v == 0 || math.IsNaN(v) {
		return 1
	}
	return v
}

func forWire(idx *topology.Index, wireID string, cfg design.EngineConfig) Result {
	w, ok := idx.Wire(wireID)
	if !ok {
		return Result{0, "unknown", "wire not found in index"}
	}

	from, _ := idx.Component(w.FromComponentID)
	to, _ := idx.Component(w.ToComponentID)

	// Ground wires never carry current: this implements both rule 1's
	// ground clause and rule 11's resolution of the
	// hot/neutral/ground open question ("ground wire carries zero").
	if w.Polarity == design.PolarityGround {
		return Result{0, "ground", ""}
	}

	systemVoltage := idx.Design.SystemVoltage

	// Rule 1: AC-output wire of an inverter (hot or neutral).
	if inv, ok := endpointOfKind(from, to, design.IsInverter); ok {
		if w.Polarity == design.PolarityHot || w.Polarity == design.PolarityNeutral {
			demand := idx.InverterDemand[inv.ID]
			return Result{demand.ACLoadWatts / safeDiv(demand.ACVoltage), "ac-output", ""}
		}
	}

	// Rule 2: AC wire terminating at an AC load.
	if load, ok := endpointOfType(from, to, design.ACLoad); ok {
		watts := load.Prop(design.PropWatts)
		if watts == 0 {
			watts = topology.RatingWatts(load)
		}
		return Result{watts / safeDiv(load.ACVoltage()), "ac-load", ""}
	}

	// Rule 3: AC wire entering an AC panel on hot polarity.
	if panel, ok := endpointOfType(from, to, design.ACPanel); ok && w.Polarity == design.PolarityHot {
		other := otherEndpointID(w, panel.ID)
		watts, acVoltage := topology.ACLoadSum(idx, panel.ID, other)
		return Result{watts / safeDiv(acVoltage), "ac-panel", ""}
	}

	// Rule 4: DC wire from a solar panel.
	if panel, ok := endpointOfType(from, to, design.SolarPanel); ok {
		vmp := solarVmp(panel, systemVoltage)
		watts := panel.Prop(design.PropWatts)
		return Result{watts / safeDiv(vmp), "solar-panel", ""}
	}

	// Rule 5: DC output wire of a charger.
	if charger, ok := endpointOfKind(from, to, design.IsCharger); ok {
		if isChargerOutputTerminal(w, charger) {
			return Result{chargerOutputCurrent(charger), "charger-output", ""}
		}
	}

	// Rule 6: Inverter DC input wire (dc-positive or dc-negative).
	if inv, ok := endpointOfKind(from, to, design.IsInverter); ok {
		if w.Polarity == design.PolarityPositive || w.Polarity == design.PolarityNegative {
			return Result{idx.InverterDemand[inv.ID].DCInputCurrent, "inverter-dc-input", ""}
		}
	}

	// Rule 9 (checked here, ahead of the generic bus rule, since it is
	// keyed off touching the battery directly rather than the bus): a
	// wire that touches a battery.
	if bat, ok := endpointOfType(from, to, design.Battery); ok {
		otherID := otherEndpointID(w, bat.ID)
		other, _ := idx.Component(otherID)
		if other != nil && design.IsCharger(other.Type) {
			return Result{0, "battery-charging", ""}
		}
		far := resolveFar(idx, bat.ID, otherID)
		if far != nil && design.IsBusbar(far.Type) {
			return Result{busNetCurrent(idx, far.ID, systemVoltage), "battery-net", ""}
		}
		if far != nil && design.IsCharger(far.Type) {
			return Result{0, "battery-charging", ""}
		}
		if far != nil && far.Type == design.DCLoad {
			v := far.Prop(design.PropVoltage)
			if v == 0 {
				v = systemVoltage
			}
			return Result{far.Prop(design.PropWatts) / safeDiv(v), "dc-load", ""}
		}
		return Result{0, "battery-unresolved", fmt.Sprintf("wire %s: battery's associated bus bar could not be resolved", wireID)}
	}

	// Rule 7/8: a wire touching a bus bar directly.
	if bus, ok := endpointOfKind(from, to, design.IsBusbar); ok {
		otherID := otherEndpointID(w, bus.ID)
		far := resolveFar(idx, bus.ID, otherID)
		if far == nil {
			return Result{0, "bus-unresolved", "bus-bar neighbor could not be resolved"}
		}
		switch {
		case design.IsCharger(far.Type) || far.Type == design.Battery:
			return Result{busNetCurrent(idx, bus.ID, systemVoltage), "bus-source", ""}
		case far.Type == design.DCLoad:
			return Result{far.Prop(design.PropWatts) / safeDiv(systemVoltage), "bus-load", ""}
		case design.IsInverter(far.Type):
			return Result{idx.InverterDemand[far.ID].DCInputCurrent, "bus-load", ""}
		case far.Type == design.DCPanel:
			return Result{dcPanelLoadCurrent(idx, far.ID, systemVoltage, bus.ID), "bus-load", ""}
		default:
			return Result{busNetCurrent(idx, bus.ID, systemVoltage), "bus-source", ""}
		}
	}

	// Rule 10: DC-load-terminated wire.
	if load, ok := endpointOfType(from, to, design.DCLoad); ok {
		v := load.Prop(design.PropVoltage)
		if v == 0 {
			v = systemVoltage
		}
		return Result{load.Prop(design.PropWatts) / safeDiv(v), "dc-load", ""}
	}

	// Rule 12: fallback.
	return Result{0, "undetermined", fmt.Sprintf("wire %s: current could not be determined", wireID)}
}

func otherEndpointID(w *design.Wire, id string) string {
	if w.FromComponentID == id {
		return w.ToComponentID
	}
	return w.FromComponentID
}

func endpointOfType(from, to *design.Component, t design.ComponentType) (*design.Component, bool) {
	if from != nil && from.Type == t {
		return from, true
	}
	if to != nil && to.Type == t {
		return to, true
	}
	return nil, false
}

func endpointOfKind(from, to *design.Component, pred func(design.ComponentType) bool) (*design.Component, bool) {
	if from != nil && pred(from.Type) {
		return from, true
	}
	if to != nil && pred(to.Type) {
		return to, true
	}
	return nil, false
}

func isChargerOutputTerminal(w *design.Wire, charger *design.Component) bool {
	terminal := w.FromTerminal
	if w.ToComponentID == charger.ID {
		terminal = w.ToTerminal
	}
	return terminal == "dc-positive" || terminal == "dc-negative"
}

func chargerOutputCurrent(charger *design.Component) float64 {
	switch charger.Type {
	case design.MPPT:
		return charger.Prop(design.PropMaxCurrent)
	case design.BlueSmartCharger, design.OrionDCDC:
		return charger.Prop(design.PropAmps)
	case design.Alternator:
		return charger.Prop(design.PropAmps)
	default:
		return charger.Prop(design.PropCurrent)
	}
}

// solarVmp computes a solar panel's operating voltage for rule 4: a
// declared voltage above 1.2x system voltage is trusted as Vmp, otherwise
// it falls back to 1.5x system voltage as a typical Vmp estimate.
func solarVmp(panel *design.Component, systemVoltage float64) float64 {
	declared := panel.Prop(design.PropVoltage)
	if declared == 0 || declared <= 1.2*systemVoltage {
		return 1.5 * systemVoltage
	}
	return declared
}

// resolveFar follows a single step of transit (fuse/switch) expansion from
// otherID, excluding the originating component, and returns the ultimate
// non-transit neighbor reached along that path.
func resolveFar(idx *topology.Index, originID, otherID string) *design.Component {
	other, ok := idx.Component(otherID)
	if !ok {
		return nil
	}
	if !topology.IsTransit(other.Type) {
		return other
	}
	neighbors := topology.TransitNeighbors(idx, otherID, originID)
	if len(neighbors) == 0 {
		return nil
	}
	far, _ := idx.Component(neighbors[0])
	return far
}

// busNetCurrent computes Σ loads − Σ sources across everything connected
// to hubID (a bus bar or a battery treated as the hub of its own net),
// clamped at ≥ 0 rule 7.
func busNetCurrent(idx *topology.Index, hubID string, systemVoltage float64) float64 {
	loads := 0.0
	sources := 0.0

	for _, nb := range topology.TransitNeighbors(idx, hubID) {
		c, ok := idx.Component(nb)
		if !ok {
			continue
		}
		switch {
		case c.Type == design.DCLoad:
			loads += c.Prop(design.PropWatts) / safeDiv(systemVoltage)
		case design.IsInverter(c.Type):
			loads += idx.InverterDemand[nb].DCInputCurrent
		case c.Type == design.DCPanel:
			loads += dcPanelLoadCurrent(idx, nb, systemVoltage, hubID)
		case design.IsCharger(c.Type):
			sources += chargerOutputCurrent(c)
		}
	}

	net := loads - sources
	if net < 0 {
		net = 0
	}
	return net
}

// dcPanelLoadCurrent sums the currents of every DC load reachable from a
// DC panel, recursing through nested panels, per rule 8: for DC panels,
// the sum of reachable DC-load currents.
func dcPanelLoadCurrent(idx *topology.Index, panelID string, systemVoltage float64, exclude ...string) float64 {
	total := 0.0
	for _, nb := range topology.TransitNeighbors(idx, panelID, exclude...) {
		c, ok := idx.Component(nb)
		if !ok {
			continue
		}
		switch c.Type {
		case design.DCLoad:
			total += c.Prop(design.PropWatts) / safeDiv(systemVoltage)
		case design.DCPanel:
			total += dcPanelLoadCurrent(idx, nb, systemVoltage, panelID)
		case design.Inverter, design.Multiplus, design.PhoenixInverter:
			total += idx.InverterDemand[nb].DCInputCurrent
		}
	}
	return total
}
