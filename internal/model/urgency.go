package model

// UrgencyData is the explainable scoring payload attached to the
// extracted-entities part of a crisis-creation response. It is transient:
// returned once at creation time and never refetched.
type UrgencyData struct {
	UrgencyScore     float64 `json:"urgency_score"`
	UrgencyLevel     string  `json:"urgency_level"`
	UrgencyReasoning string  `json:"urgency_reasoning"`

	// Extracted entities accompany the scoring in the same structure.
	NeedType     string `json:"need_type"`
	Quantity     *int   `json:"quantity"`
	QuantityUnit string `json:"quantity_unit"`
	LocationText string `json:"location_text"`

	Breakdown *UrgencyBreakdown `json:"urgency_breakdown"`
}

// UrgencyBreakdown decomposes the priority score into weighted factors
// with narrative justification.
type UrgencyBreakdown struct {
	// Factors maps a factor key (e.g. "life_risk") to its scoring detail.
	Factors map[string]Factor `json:"factors"`

	// Reasoning is the ordered narrative of how the score was reached.
	Reasoning []ReasoningStep `json:"reasoning"`

	Recommendation *Recommendation `json:"recommendation"`
}

// Factor is one weighted component of the urgency score.
type Factor struct {
	// Score is the factor's raw sub-score on a 0-10 scale.
	Score float64 `json:"score"`

	// Weight is the factor's share of the total, between 0 and 1.
	Weight float64 `json:"weight"`

	// WeightedScore is Score x Weight as computed by the backend.
	WeightedScore float64 `json:"weightedScore"`

	Reasoning  string   `json:"reasoning"`
	Indicators []string `json:"indicators"`
}

// ReasoningStep is one entry in the step-by-step scoring narrative.
type ReasoningStep struct {
	Factor      string   `json:"factor"`
	Impact      string   `json:"impact"`
	Explanation string   `json:"explanation"`
	Indicators  []string `json:"indicators"`
}

// Recommendation is the backend's suggested dispatch action.
type Recommendation struct {
	Action   string `json:"action"`
	Timeline string `json:"timeline"`
	Priority string `json:"priority"`
}
