package rules

import "testing"

func TestScorePerfectDesign(t *testing.T) {
	m := ComputeMetrics(nil, LayoutMetrics{AvgSpacing: 200})
	score := Score(m)
	if score != 100 {
		t.Errorf("score = %v, want 100", score)
	}
}

func TestScorePenalizesErrors(t *testing.T) {
	issues := []Issue{
		{Severity: Error, Category: CategoryElectrical},
		{Severity: Warning, Category: CategoryAIQuality},
	}
	m := ComputeMetrics(issues, LayoutMetrics{AvgSpacing: 200})
	score := Score(m)
	// 100 - 10 (error) - 3 (warning) - 20 (electrical error)
	// + 0.3 * (100 layout efficiency - 50) = 82
	if score != 82 {
		t.Errorf("score = %v, want 82", score)
	}
}

func TestScoreClampsToZero(t *testing.T) {
	issues := make([]Issue, 0, 20)
	for i := 0; i < 20; i++ {
		issues = append(issues, Issue{Severity: Error, Category: CategoryWireSizing})
	}
	m := ComputeMetrics(issues, LayoutMetrics{AvgSpacing: 200})
	if got := Score(m); got != 0 {
		t.Errorf("score = %v, want 0", got)
	}
}
