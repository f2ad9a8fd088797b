package urgency

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crisis-matcher/dispatch/internal/model"
)

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{10, "critical"},
		{8, "critical"},
		{7.9, "high"},
		{6, "high"},
		{5.9, "medium"},
		{4, "medium"},
		{3.9, "low"},
		{0, "low"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Tier(tc.score), "score %.1f", tc.score)
	}
}

func TestTotalWeightedSumsAllFactors(t *testing.T) {
	factors := map[string]model.Factor{
		"life_risk":         {Score: 8, Weight: 0.15, WeightedScore: 1.2},
		"health_risk":       {Score: 8, Weight: 0.10, WeightedScore: 0.8},
		"population_impact": {Score: 5, Weight: 0.10, WeightedScore: 0.5},
		"time_sensitivity":  {Score: 3, Weight: 0.10, WeightedScore: 0.3},
		"vulnerability":     {Score: 1, Weight: 0.10, WeightedScore: 0.1},
		"scale":             {Score: 1, Weight: 0.10, WeightedScore: 0.1},
	}
	assert.InDelta(t, 3.0, TotalWeighted(factors), 1e-9)
}

func TestTotalWeightedEmptyIsZero(t *testing.T) {
	assert.Zero(t, TotalWeighted(nil))
	assert.Zero(t, TotalWeighted(map[string]model.Factor{}))
}

func TestFactorNameHumanizesKeys(t *testing.T) {
	assert.Equal(t, "Life Risk", FactorName("life_risk"))
	assert.Equal(t, "Time Sensitivity", FactorName("time_sensitivity"))
	assert.Equal(t, "Scale", FactorName("scale"))
}

func TestRenderNilDataIsEmpty(t *testing.T) {
	assert.Empty(t, Render(nil, 80))
}

func TestRenderWithoutBreakdownShowsOverallOnly(t *testing.T) {
	data := &model.UrgencyData{
		UrgencyScore:     7.2,
		UrgencyLevel:     "high",
		UrgencyReasoning: "Multiple people at risk",
	}

	out := Render(data, 80)
	assert.Contains(t, out, "7.2")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "Multiple people at risk")
}

func TestRenderShowsBothTotalsSideBySide(t *testing.T) {
	data := &model.UrgencyData{
		UrgencyScore: 8.2,
		UrgencyLevel: "critical",
		Breakdown: &model.UrgencyBreakdown{
			Factors: map[string]model.Factor{
				"life_risk":   {Score: 9, Weight: 0.3, WeightedScore: 2.7},
				"health_risk": {Score: 7, Weight: 0.2, WeightedScore: 1.4},
			},
			Reasoning: []model.ReasoningStep{
				{Factor: "life_risk", Impact: "high", Explanation: "People trapped"},
			},
			Recommendation: &model.Recommendation{
				Action:   "Dispatch rescue team",
				Timeline: "immediate",
				Priority: "critical",
			},
		},
	}

	out := Render(data, 80)

	// The verification table shows the locally recomputed factor sum and
	// the backend's rounded score without reconciling them.
	assert.Contains(t, out, "4.10")
	assert.Contains(t, out, "8.2/10")
	assert.Contains(t, out, "Life Risk")
	assert.Contains(t, out, "People trapped")
	assert.Contains(t, out, "Dispatch rescue team")
}
