// Package analyzer derives funnel targets, budget coverage and test plans
// from a diagnostic snapshot.
package analyzer

// TestPlan describes the initial validation campaign for a diagnostic.
type TestPlan struct {
	// SuggestedMinLeads is the lead count recommended for statistical
	// significance: 30% of the required leads, never fewer than 50.
	SuggestedMinLeads int `json:"suggested_min_leads"`

	// SuggestedBudget is the spend needed to buy SuggestedMinLeads at the
	// CAC ceiling, given the benchmark lead-to-sale rate.
	SuggestedBudget float64 `json:"suggested_budget"`

	// LeadsPerDay is the daily lead pace the configured test requires.
	LeadsPerDay float64 `json:"leads_per_day"`

	// CostPerLead is the expected spend per lead for the configured test.
	CostPerLead float64 `json:"cost_per_lead"`
}

// Stage is one level of the required funnel, ready for display.
type Stage struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int    `json:"value"`

	// Width is the bar width as a percentage of the reach stage, at least 5.
	Width float64 `json:"width"`
}

// Coverage describes how much of the viable investment a budget covers.
type Coverage struct {
	// Percent is the covered share of the viable investment; 0 when either
	// side is 0.
	Percent float64 `json:"percent"`

	// Gap is the amount missing for full coverage, never negative.
	Gap float64 `json:"gap"`
}
