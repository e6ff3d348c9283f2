package topology

import (
	"fmt"
	"sort"

	"github.com/dshills/elecval/pkg/design"
)

// Side is the DC/AC classification of a wire.
type Side int

const (
	DC Side = iota
	AC
)

func (s Side) String() string {
	if s == AC {
		return "AC"
	}
	return "DC"
}

// InverterDemand is the AC-side load and derived DC-input demand computed
// for one inverter component.
type InverterDemand struct {
	ACLoadWatts     float64
	ACVoltage       float64
	DCInputWatts    float64
	DCInputCurrent  float64
	usedFallback    bool
}

// Index is the set of derived, per-pass structures the rest of the engine
// consumes: a component lookup, wire incidence, DC/AC classification,
// parallel-run grouping, and inverter AC-demand. It is built once per
// analysis pass and discarded with it.
type Index struct {
	Design *design.Design

	components map[string]*design.Component
	wires      map[string]*design.Wire

	// Incident maps a component ID to the IDs of wires touching it, in a
	// deterministic (sorted) order so traversal never depends on the
	// Design's original slice order: iteration order must not influence
	// outputs.
	Incident map[string][]string

	Side map[string]Side

	// Parallel maps a wire ID to the full sorted set of wire IDs sharing
	// its endpoints and polarity (a run of size 1 if it has no siblings).
	Parallel map[string][]string

	InverterDemand map[string]InverterDemand

	sortedComponentIDs []string
}

// Build constructs the full Index for a design.
func Build(d *design.Design, cfg design.EngineConfig) (*Index, error) {
	if d == nil {
		return nil, fmt.Errorf("topology: design is nil")
	}
	cfg = cfg.WithDefaults()

	idx := &Index{
		Design:         d,
		components:     make(map[string]*design.Component, len(d.Components)),
		wires:          make(map[string]*design.Wire, len(d.Wires)),
		Incident:       make(map[string][]string),
		Side:           make(map[string]Side, len(d.Wires)),
		Parallel:       make(map[string][]string, len(d.Wires)),
		InverterDemand: make(map[string]InverterDemand),
	}

	for i := range d.Components {
		c := &d.Components[i]
		idx.components[c.ID] = c
		idx.sortedComponentIDs = append(idx.sortedComponentIDs, c.ID)
	}
	sort.Strings(idx.sortedComponentIDs)

	for i := range d.Wires {
		w := &d.Wires[i]
		idx.wires[w.ID] = w
		idx.Incident[w.FromComponentID] = append(idx.Incident[w.FromComponentID], w.ID)
		if w.ToComponentID != w.FromComponentID {
			idx.Incident[w.ToComponentID] = append(idx.Incident[w.ToComponentID], w.ID)
		}
		idx.Side[w.ID] = classify(idx, w)
	}
	for cid := range idx.Incident {
		sort.Strings(idx.Incident[cid])
	}

	idx.buildParallelGroups()

	for _, cid := range idx.sortedComponentIDs {
		c := idx.components[cid]
		if design.IsInverter(c.Type) {
			idx.InverterDemand[cid] = computeInverterDemand(idx, c, cfg)
		}
	}

	return idx, nil
}

// Component returns a component by ID.
func (idx *Index) Component(id string) (*design.Component, bool) {
	c, ok := idx.components[id]
	return c, ok
}

// Wire returns a wire by ID.
func (idx *Index) Wire(id string) (*design.Wire, bool) {
	w, ok := idx.wires[id]
	return w, ok
}

// SortedComponentIDs returns every component ID in deterministic order.
func (idx *Index) SortedComponentIDs() []string {
	out := make([]string, len(idx.sortedComponentIDs))
	copy(out, idx.sortedComponentIDs)
	return out
}

// ParallelCount returns the number of conductors in wire w's parallel run
// (1 if it runs alone).
func (idx *Index) ParallelCount(wireID string) int {
	return len(idx.Parallel[wireID])
}

func (idx *Index) buildParallelGroups() {
	type key struct {
		from, fromT, to, toT string
		polarity              design.WirePolarity
	}
	groups := make(map[key][]string)
	for id, w := range idx.wires {
		k := key{w.FromComponentID, w.FromTerminal, w.ToComponentID, w.ToTerminal, w.Polarity}
		groups[k] = append(groups[k], id)
	}
	for _, ids := range groups {
		sort.Strings(ids)
		for _, id := range ids {
			idx.Parallel[id] = ids
		}
	}
}

// classify implements the DC/AC wire-class rule: AC iff polarity is
// hot/neutral/ground-on-an-AC-circuit, or either endpoint is an AC load,
// AC panel, or the AC-output terminal of an inverter/shore-power. A
// grounding wire on a DC component stays DC.
func classify(idx *Index, w *design.Wire) Side {
	if w.Polarity == design.PolarityHot || w.Polarity == design.PolarityNeutral {
		return AC
	}

	from, _ := idx.Component(w.FromComponentID)
	to, _ := idx.Component(w.ToComponentID)

	if isACEndpoint(from, w.FromTerminal) || isACEndpoint(to, w.ToTerminal) {
		return AC
	}
	return DC
}

func isACEndpoint(c *design.Component, terminal string) bool {
	if c == nil {
		return false
	}
	switch c.Type {
	case design.ACLoad, design.ACPanel, design.ShorePower:
		return true
	}
	if design.IsInverter(c.Type) {
		t, ok := design.TerminalByID(c.Type, terminal)
		return ok && t.Class == design.ClassACOut
	}
	return false
}

// RatingWatts picks the declared rating for a source/inverter component,
// preferring the most specific property.
func RatingWatts(c *design.Component) float64 {
	if v := c.Prop(design.PropPowerRating); v > 0 {
		return v
	}
	if v := c.Prop(design.PropPower); v > 0 {
		return v
	}
	return c.Prop(design.PropWatts)
}

// ACLoadSum walks only hot-polarity wires outward from startID (skipping
// whatever reached it, if excludeID is set), through AC panels, summing
// the watts of every AC load found and returning the first non-default
// AC voltage encountered. This is the shared trace behind both inverter
// AC demand and the AC-panel current rule; it is bounded by a visited
// set so a cycle simply stops expanding.
func ACLoadSum(idx *Index, startID, excludeID string) (watts, acVoltage float64) {
	visited := map[string]bool{startID: true}
	if excludeID != "" {
		visited[excludeID] = true
	}

	var walk func(id string)
	walk = func(id string) {
		for _, wireID := range idx.Incident[id] {
			w := idx.wires[wireID]
			if w.Polarity != design.PolarityHot {
				continue
			}

			var nextID string
			if w.FromComponentID == id {
				nextID = w.ToComponentID
			} else {
				nextID = w.FromComponentID
			}
			if visited[nextID] {
				continue
			}

			next, ok := idx.Component(nextID)
			if !ok {
				continue
			}

			switch next.Type {
			case design.ACLoad:
				visited[nextID] = true
				v := next.ACVoltage()
				if acVoltage == 0 && v != 120 {
					acVoltage = v
				}
				watts += RatingWatts(next)
			case design.ACPanel:
				visited[nextID] = true
				walk(nextID)
			default:
				visited[nextID] = true
			}
		}
	}

	walk(startID)
	if acVoltage == 0 {
		acVoltage = 120
	}
	return watts, acVoltage
}

// computeInverterDemand traces an inverter's reachable AC loads and
// derives its DC-input demand, falling back to 80% of its rated wattage
// when no AC load is reachable.
func computeInverterDemand(idx *Index, inverter *design.Component, cfg design.EngineConfig) InverterDemand {
	totalWatts, acVoltage := ACLoadSum(idx, inverter.ID, "")

	fallback := false
	if totalWatts == 0 {
		totalWatts = 0.8 * RatingWatts(inverter)
		fallback = true
	}

	eta := cfg.InverterEfficiency
	dcWatts := totalWatts / eta

	demand := InverterDemand{
		ACLoadWatts:  totalWatts,
		ACVoltage:    acVoltage,
		DCInputWatts: dcWatts,
		usedFallback: fallback,
	}
	if idx.Design.SystemVoltage > 0 {
		demand.DCInputCurrent = dcWatts / idx.Design.SystemVoltage
	}
	return demand
}

// UsedFallback reports whether an inverter's demand was computed from the
// 0.8x-rating fallback because no AC load was reachable.
func (d InverterDemand) UsedFallback() bool {
	return d.usedFallback
}

// IsTransit reports whether a component type passes current through
// without sourcing or sinking it: fuses and switches as inline
// disconnects, a battery protect as an inline disconnect, and a
// smartshunt, whose negative/system-minus pair current traces straight
// through on its way to the battery-minus bus bar.
func IsTransit(t design.ComponentType) bool {
	switch t {
	case design.Fuse, design.Switch, design.BatteryProtect, design.SmartShunt:
		return true
	default:
		return false
	}
}

// TransitNeighbors returns every non-transit component reachable from
// startID, following any chain of fuses/switches/battery-protects/
// smartshunts, while never crossing back through startID or any ID in
// exclude. This implements the "directly or via fuses/shunts" connectivity
// used throughout the engine (bus-bar net current, battery tracing, MPPT
// PV connectivity). A wire into a data terminal (a smartshunt's monitoring
// link to a Cerbo/BMV) never counts as a transit path: only the power
// terminals of a shunt pass current through.
func TransitNeighbors(idx *Index, startID string, exclude ...string) []string {
	visited := map[string]bool{startID: true}
	for _, e := range exclude {
		visited[e] = true
	}

	var result []string
	var walk func(id string)
	walk = func(id string) {
		for _, wireID := range idx.Incident[id] {
			w := idx.wires[wireID]
			var nextID, terminal string
			if w.FromComponentID == id {
				nextID, terminal = w.ToComponentID, w.FromTerminal
			} else {
				nextID, terminal = w.FromComponentID, w.ToTerminal
			}
			if isDataTerminal(idx, id, terminal) {
				continue
			}
			if visited[nextID] {
				continue
			}
			next, ok := idx.Component(nextID)
			if !ok {
				continue
			}
			visited[nextID] = true
			if IsTransit(next.Type) {
				walk(nextID)
			} else {
				result = append(result, nextID)
			}
		}
	}
	walk(startID)
	sort.Strings(result)
	return result
}

// isDataTerminal reports whether terminal on componentID is a monitoring
// data terminal rather than a power terminal.
func isDataTerminal(idx *Index, componentID, terminal string) bool {
	c, ok := idx.Component(componentID)
	if !ok {
		return false
	}
	t, ok := design.TerminalByID(c.Type, terminal)
	return ok && t.Class == design.ClassData
}
