package rules

import (
	"github.com/dshills/elecval/pkg/current"
)

// CurrentWarnings surfaces every wire whose current the propagator could
// not determine (rule 12's fallback, or an unresolved battery/bus-bar
// trace) as a warning-severity Issue, so an undetermined-current wire is
// reported rather than silently sized on 0A.
func CurrentWarnings(currents map[string]current.Result) []Issue {
	var issues []Issue
	for wireID, res := range currents {
		if res.Warning == "" {
			continue
		}
		issues = append(issues, Issue{
			Severity: Warning,
			Category: CategoryElectrical,
			Rule:     res.Rule,
			Message:  res.Warning,
			WireID:   wireID,
		})
	}
	return issues
}
