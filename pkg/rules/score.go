package rules

// Metrics aggregates the counts the quality score formula consumes.
type Metrics struct {
	Errors   int
	Warnings int
	Infos    int

	Overlaps            int
	InvalidTerminalCount int
	WireSizingIssueCount int
	ElectricalErrorCount int

	LayoutEfficiency float64
}

// LayoutEfficiency computes the quality score's layout-efficiency term
// from raw layout metrics.
func LayoutEfficiency(lm LayoutMetrics) float64 {
	eff := 100.0 - 20.0*float64(lm.Overlaps) - 5.0*float64(lm.NearEdge)
	if lm.AvgSpacing < 150 {
		eff -= 20
	}
	if lm.AvgSpacing > 500 {
		eff -= 10
	}
	return clamp(eff, 0, 100)
}

// ComputeMetrics tallies a full issue list plus layout metrics into the
// Metrics the Score function needs.
func ComputeMetrics(issues []Issue, lm LayoutMetrics) Metrics {
	m := Metrics{Overlaps: lm.Overlaps, LayoutEfficiency: LayoutEfficiency(lm)}

	for _, iss := range issues {
		switch iss.Severity {
		case Error:
			m.Errors++
		case Warning:
			m.Warnings++
		case Info:
			m.Infos++
		}

		switch iss.Category {
		case CategoryTerminal:
			m.InvalidTerminalCount++
		case CategoryWireSizing:
			m.WireSizingIssueCount++
		case CategoryElectrical:
			if iss.Severity == Error {
				m.ElectricalErrorCount++
			}
		}
	}

	return m
}

// Score implements the quality-score formula.
func Score(m Metrics) float64 {
	score := 100.0
	score -= 10 * float64(m.Errors)
	score -= 3 * float64(m.Warnings)
	score -= 1 * float64(m.Infos)

	score -= 15 * float64(m.Overlaps)
	score -= 10 * float64(m.InvalidTerminalCount)
	score -= 5 * float64(m.WireSizingIssueCount)
	score -= 20 * float64(m.ElectricalErrorCount)

	score += 0.3 * (m.LayoutEfficiency - 50)

	return clamp(score, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
