package analyzer

import (
	"math"

	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
)

// minTestLeads is the floor for the suggested test lead count.
const minTestLeads = 50

// testLeadShare is the fraction of required leads suggested for a test.
const testLeadShare = 0.3

// PlanTest sizes the validation campaign for a snapshot and its metrics.
func PlanTest(s diagnostic.Snapshot, f diagnostic.Funnel) TestPlan {
	s = diagnostic.Normalize(s)

	plan := TestPlan{
		SuggestedMinLeads: max(minTestLeads, ceilCount(float64(f.RequiredLeads)*testLeadShare)),
	}

	// The suggestion uses the benchmark rate as entered, not the
	// history-adjusted one.
	if rate := s.Benchmark.ConversionRates.LeadToSale; rate > 0 {
		plan.SuggestedBudget = finite(math.Ceil(float64(plan.SuggestedMinLeads) * (f.MaxCAC / (rate / 100))))
	}

	v := s.Validation
	if v.TestDuration > 0 {
		plan.LeadsPerDay = finite(float64(v.MinimumLeads) / float64(v.TestDuration))
	}
	if v.MinimumLeads > 0 {
		plan.CostPerLead = finite(v.TestBudget / float64(v.MinimumLeads))
	}

	return plan
}

// BudgetCoverage reports how much of the viable investment the available
// budget covers.
func BudgetCoverage(s diagnostic.Snapshot, f diagnostic.Funnel) Coverage {
	budget := diagnostic.Normalize(s).Investment.AvailableBudget

	var c Coverage
	if budget > 0 && f.ViableInvestment > 0 {
		c.Percent = finite(budget / f.ViableInvestment * 100)
	}
	if gap := f.ViableInvestment - budget; gap > 0 {
		c.Gap = gap
	}
	return c
}
