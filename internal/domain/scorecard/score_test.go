package scorecard

import (
	"math"
	"testing"
)

func TestComputeScoreWeighted(t *testing.T) {
	kpis := []KPI{
		{ID: "k1", Target: 100, Weight: 60},
		{ID: "k2", Target: 10, Weight: 40},
	}
	values := map[string]float64{"k1": 50, "k2": 10}

	score := ComputeScore(kpis, values)
	if math.Abs(score-70) > 1e-9 {
		t.Fatalf("expected 70%%, got %v", score)
	}
}

func TestComputeScoreCapsOverachievement(t *testing.T) {
	kpis := []KPI{{ID: "k1", Target: 100, Weight: 1}}
	if score := ComputeScore(kpis, map[string]float64{"k1": 250}); score != 100 {
		t.Fatalf("expected cap at 100%%, got %v", score)
	}
}

func TestComputeScoreSkipsUnscorableKPIs(t *testing.T) {
	kpis := []KPI{
		{ID: "k1", Target: 0, Weight: 50},
		{ID: "k2", Target: 100, Weight: 0},
		{ID: "k3", Target: 100, Weight: 50},
	}
	if score := ComputeScore(kpis, map[string]float64{"k3": 100}); score != 100 {
		t.Fatalf("expected only k3 to count, got %v", score)
	}
}

func TestComputeScoreEmpty(t *testing.T) {
	if score := ComputeScore(nil, nil); score != 0 {
		t.Fatalf("expected 0 for no KPIs, got %v", score)
	}
	if score := ComputeScore([]KPI{{ID: "k1", Target: 100, Weight: 1}}, nil); score != 0 {
		t.Fatalf("expected 0 with no values, got %v", score)
	}
}

func TestNormalizedStatus(t *testing.T) {
	if got := NormalizedStatus(nil); got != "" {
		t.Fatalf("expected empty for nil result, got %q", got)
	}
	if got := NormalizedStatus(&Result{Status: ResultStatusApproved}); got != ResultStatusApproved {
		t.Fatalf("explicit status must win, got %q", got)
	}
	if got := NormalizedStatus(&Result{}); got != ResultStatusDraft {
		t.Fatalf("expected draft default, got %q", got)
	}
}
