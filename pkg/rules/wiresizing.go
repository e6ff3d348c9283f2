package rules

import (
	"fmt"
	"strings"

	"github.com/dshills/elecval/pkg/current"
	"github.com/dshills/elecval/pkg/derate"
	"github.com/dshills/elecval/pkg/design"
	"github.com/dshills/elecval/pkg/gauge"
	"github.com/dshills/elecval/pkg/topology"
)

// WireResult is the per-wire sizing outcome the report and the quality
// score consume, joining the assigned current with a recommendation.
type WireResult struct {
	WireID            string
	Amps              float64
	PerConductorAmps  float64
	ReferenceVoltage  float64
	RecommendedGauge  gauge.Size
	Calculation       derate.WireCalculation
}

// WireSizing runs W1-W3 over every wire in a design and returns both the
// issues and the per-wire sizing results the recommendation surface
// needs.
func WireSizing(d *design.Design, idx *topology.Index, currents map[string]current.Result, cfg design.EngineConfig) ([]Issue, map[string]WireResult) {
	cfg = cfg.WithDefaults()
	var issues []Issue
	results := make(map[string]WireResult, len(d.Wires))

	for i := range d.Wires {
		w := &d.Wires[i]
		n := idx.ParallelCount(w.ID)
		amps := currents[w.ID].Amps
		perConductor := derate.ParallelCurrent(amps, n)

		refVoltage := referenceVoltage(d, idx, w)
		material := materialOf(w)

		// W1: missing gauge.
		if strings.TrimSpace(w.Gauge) == "" {
			issues = append(issues, Issue{
				Severity: Error,
				Category: CategoryWireSizing,
				Rule:     "W1",
				Message:  fmt.Sprintf("wire %s has no assigned gauge", w.ID),
				WireID:   w.ID,
			})
			results[w.ID] = WireResult{WireID: w.ID, Amps: amps, PerConductorAmps: perConductor, ReferenceVoltage: refVoltage}
			continue
		}

		size, err := normalizeGauge(w.Gauge)
		if err != nil {
			issues = append(issues, Issue{
				Severity: Warning,
				Category: CategoryWireSizing,
				Rule:     "W2",
				Message:  fmt.Sprintf("wire %s has unrecognized gauge %q", w.ID, w.Gauge),
				WireID:   w.ID,
			})
			calc := derate.CalculateWireSize(perConductor, w.LengthFt, refVoltage, derate.CalculateWireSizeOptions{
				TemperatureC: cfg.AmbientTempC,
				Material:     material,
				Insulation:   gauge.Insulation75C,
				Bundling:     cfg.BundlingFactor,
				MaxDropPct:   cfg.MaxDropPct,
			})
			results[w.ID] = WireResult{WireID: w.ID, Amps: amps, PerConductorAmps: perConductor, ReferenceVoltage: refVoltage, RecommendedGauge: calc.Gauge, Calculation: calc}
			continue
		}

		issues = append(issues, w3AmpacityAndDrop(d, idx, w, size, perConductor, refVoltage, material, cfg)...)

		calc := derate.CalculateWireSize(perConductor, w.LengthFt, refVoltage, derate.CalculateWireSizeOptions{
			TemperatureC: cfg.AmbientTempC,
			Material:     material,
			Insulation:   gauge.Insulation75C,
			Bundling:     cfg.BundlingFactor,
			MaxDropPct:   cfg.MaxDropPct,
		})
		results[w.ID] = WireResult{
			WireID:           w.ID,
			Amps:             amps,
			PerConductorAmps: perConductor,
			ReferenceVoltage: refVoltage,
			RecommendedGauge: calc.Gauge,
			Calculation:      calc,
		}
	}

	issues = append(issues, w3GroundGaugeParity(d, idx)...)

	return issues, results
}

func normalizeGauge(raw string) (gauge.Size, error) {
	return gauge.Normalize(raw)
}

func materialOf(w *design.Wire) derate.Material {
	if w.ConductorMaterial == design.Aluminum {
		return derate.Aluminum
	}
	return derate.Copper
}

// referenceVoltage picks the reference voltage W3's voltage-drop
// percentage is computed against.
func referenceVoltage(d *design.Design, idx *topology.Index, w *design.Wire) float64 {
	if idx.Side[w.ID] == topology.AC {
		from, _ := idx.Component(w.FromComponentID)
		to, _ := idx.Component(w.ToComponentID)
		if from != nil && (from.Type == design.ACLoad || from.Type == design.ACPanel) {
			return from.ACVoltage()
		}
		if to != nil && (to.Type == design.ACLoad || to.Type == design.ACPanel) {
			return to.ACVoltage()
		}
		return 120
	}

	from, _ := idx.Component(w.FromComponentID)
	to, _ := idx.Component(w.ToComponentID)
	if from != nil && from.Type == design.SolarPanel {
		return solarVmpFor(from, d.SystemVoltage)
	}
	if to != nil && to.Type == design.SolarPanel {
		return solarVmpFor(to, d.SystemVoltage)
	}
	if from != nil {
		if v := from.Prop(design.PropVoltage); v != 0 {
			return v
		}
	}
	if to != nil {
		if v := to.Prop(design.PropVoltage); v != 0 {
			return v
		}
	}
	return d.SystemVoltage
}

func solarVmpFor(panel *design.Component, systemVoltage float64) float64 {
	declared := panel.Prop(design.PropVoltage)
	if declared == 0 || declared <= 1.2*systemVoltage {
		return 1.5 * systemVoltage
	}
	return declared
}

func w3AmpacityAndDrop(d *design.Design, idx *topology.Index, w *design.Wire, size gauge.Size, perConductorAmps, refVoltage float64, material derate.Material, cfg design.EngineConfig) []Issue {
	var issues []Issue

	eff := derate.EffectiveAmpacity(size, gauge.Insulation75C, cfg.AmbientTempC, cfg.BundlingFactor, material)
	switch {
	case perConductorAmps > eff:
		issues = append(issues, Issue{
			Severity: Error,
			Category: CategoryWireSizing,
			Rule:     "W3",
			Message:  fmt.Sprintf("wire %s carries %.1fA, exceeding %s ampacity of %.1fA", w.ID, perConductorAmps, size, eff),
			WireID:   w.ID,
		})
	case perConductorAmps > 0.8*eff:
		issues = append(issues, Issue{
			Severity: Warning,
			Category: CategoryWireSizing,
			Rule:     "W3",
			Message:  fmt.Sprintf("wire %s carries %.1fA, within 80%% of %s ampacity of %.1fA", w.ID, perConductorAmps, size, eff),
			WireID:   w.ID,
		})
	}

	drop := derate.VoltageDrop(size, perConductorAmps, w.LengthFt)
	dropPct := derate.VoltageDropPct(drop, refVoltage)
	switch {
	case dropPct > 3.0:
		issues = append(issues, Issue{
			Severity: Error,
			Category: CategoryWireSizing,
			Rule:     "W3",
			Message:  fmt.Sprintf("wire %s has %.2f%% voltage drop, exceeding 3.0%%", w.ID, dropPct),
			WireID:   w.ID,
		})
	case dropPct > 2.5:
		issues = append(issues, Issue{
			Severity: Warning,
			Category: CategoryWireSizing,
			Rule:     "W3",
			Message:  fmt.Sprintf("wire %s has %.2f%% voltage drop, above the 2.5%% warning threshold", w.ID, dropPct),
			WireID:   w.ID,
		})
	}

	return issues
}

// w3GroundGaugeParity checks every ground wire against its sibling
// hot/neutral wire between the same endpoints (W3): a ground conductor
// whose gauge differs from its current-carrying partner's is an error.
func w3GroundGaugeParity(d *design.Design, idx *topology.Index) []Issue {
	var issues []Issue
	for i := range d.Wires {
		g := &d.Wires[i]
		if g.Polarity != design.PolarityGround {
			continue
		}
		sibling := findSiblingCircuitWire(d, g)
		if sibling == nil {
			continue
		}
		if strings.TrimSpace(g.Gauge) == "" || strings.TrimSpace(sibling.Gauge) == "" {
			continue
		}
		gs, gerr := gauge.Normalize(g.Gauge)
		ss, serr := gauge.Normalize(sibling.Gauge)
		if gerr != nil || serr != nil {
			continue
		}
		if gs != ss {
			issues = append(issues, Issue{
				Severity: Error,
				Category: CategoryWireSizing,
				Rule:     "W3",
				Message:  fmt.Sprintf("ground wire %s gauge %s does not match circuit wire %s gauge %s", g.ID, g.Gauge, sibling.ID, sibling.Gauge),
				WireID:   g.ID,
			})
		}
	}
	return issues
}

func findSiblingCircuitWire(d *design.Design, g *design.Wire) *design.Wire {
	for i := range d.Wires {
		w := &d.Wires[i]
		if w.ID == g.ID {
			continue
		}
		if w.Polarity != design.PolarityHot && w.Polarity != design.PolarityNeutral {
			continue
		}
		if sameEndpoints(w, g) {
			return w
		}
	}
	return nil
}

func sameEndpoints(a, b *design.Wire) bool {
	return (a.FromComponentID == b.FromComponentID && a.ToComponentID == b.ToComponentID) ||
		(a.FromComponentID == b.ToComponentID && a.ToComponentID == b.FromComponentID)
}
