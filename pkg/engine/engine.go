package engine

import (
	"fmt"

	"github.com/dshills/elecval/pkg/current"
	"github.com/dshills/elecval/pkg/design"
	"github.com/dshills/elecval/pkg/rules"
	"github.com/dshills/elecval/pkg/topology"
)

// WireOutcome is the per-wire result set a ValidationResult exposes:
// current, sizing recommendation, and reference voltage, built up across
// classification, current assignment, and sizing as a wire moves through
// the analysis pass.
type WireOutcome struct {
	rules.WireResult
	Rule string
}

// ValidationResult is the engine's single exposed artifact: a score, a
// list of issues, and per-wire/aggregate metrics for one analysis pass.
type ValidationResult struct {
	Valid   bool
	Score   float64
	Issues  []rules.Issue
	Metrics rules.Metrics
	Wires   map[string]WireOutcome
}

// Validate runs the full analysis pass over a design.
// It is pure: equal designs and configs always yield an equal result
// (modulo issue-list sort order, already normalized here).
func Validate(d *design.Design, cfg design.EngineConfig) (*ValidationResult, error) {
	if d == nil {
		return nil, fmt.Errorf("engine: design is nil")
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	cfg = cfg.WithDefaults()

	idx, err := topology.Build(d, cfg)
	if err != nil {
		return nil, fmt.Errorf("engine: building topology: %w", err)
	}

	currents := current.Compute(idx, cfg)

	var issues []rules.Issue
	issues = append(issues, rules.CurrentWarnings(currents)...)
	issues = append(issues, rules.Electrical(d, idx, currents)...)

	sizingIssues, wireResults := rules.WireSizing(d, idx, currents, cfg)
	issues = append(issues, sizingIssues...)

	issues = append(issues, rules.Terminal(d, idx)...)

	layoutIssues, layoutMetrics := rules.Layout(d)
	issues = append(issues, layoutIssues...)

	issues = append(issues, rules.Quality(d, idx)...)
	issues = append(issues, rules.Power(d, idx)...)

	rules.SortIssues(issues)

	metrics := rules.ComputeMetrics(issues, layoutMetrics)
	score := rules.Score(metrics)

	wires := make(map[string]WireOutcome, len(wireResults))
	for id, wr := range wireResults {
		wires[id] = WireOutcome{
			WireResult: wr,
			Rule:       currents[id].Rule,
		}
	}

	valid := true
	for _, iss := range issues {
		if iss.Severity == rules.Error {
			valid = false
			break
		}
	}

	return &ValidationResult{
		Valid:   valid,
		Score:   score,
		Issues:  issues,
		Metrics: metrics,
		Wires:   wires,
	}, nil
}

// ShouldStop implements the early-stop decision: score at or above
// threshold, and no error-severity issue outside the power-capacity
// category (power-capacity errors are allowed to persist across
// iterations as a caller-accepted risk).
func ShouldStop(result *ValidationResult, threshold float64) bool {
	if result.Score < threshold {
		return false
	}
	for _, iss := range result.Issues {
		if iss.Severity == rules.Error && iss.Category != rules.CategoryPowerCap {
			return false
		}
	}
	return true
}
