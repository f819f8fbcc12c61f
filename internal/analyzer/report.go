package analyzer

import (
	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
	"github.com/blackwell-systems/funnelplan/internal/suggest"
)

// Report bundles every view derived from one snapshot.
type Report struct {
	Snapshot diagnostic.Snapshot `json:"snapshot"`
	Metrics  diagnostic.Metrics  `json:"metrics"`
	TestPlan TestPlan            `json:"test_plan"`
	Coverage Coverage            `json:"coverage"`
	Stages   []Stage             `json:"stages"`
	Summary  suggest.Summary     `json:"summary"`
}

// BuildReport normalizes s and derives its metrics, test plan, budget
// coverage and funnel stages.
func BuildReport(s diagnostic.Snapshot) Report {
	s = diagnostic.Normalize(s)
	m := CalculateMetrics(s)
	return Report{
		Snapshot: s,
		Metrics:  m,
		TestPlan: PlanTest(s, m.Funnel),
		Coverage: BudgetCoverage(s, m.Funnel),
		Stages:   FunnelStages(m.Funnel),
		Summary:  suggest.Summarize(m.Recommendations),
	}
}
