package analyzer

import (
	"math"

	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
	"github.com/blackwell-systems/funnelplan/internal/suggest"
)

// maxCACShare is the fraction of per-sale profit that may be spent to
// acquire a customer.
const maxCACShare = 0.3

var engine = suggest.NewEngine()

// CalculateMetrics derives the funnel targets for a snapshot and attaches the
// recommendations produced by the built-in rule set. The snapshot is
// normalized first, so the result is always finite.
func CalculateMetrics(s diagnostic.Snapshot) diagnostic.Metrics {
	s = diagnostic.Normalize(s)
	funnel := calculateFunnel(s)
	return diagnostic.Metrics{
		Funnel:          funnel,
		Recommendations: engine.Run(&suggest.Context{Snapshot: s, Funnel: funnel}),
	}
}

// CalculateFunnel derives the funnel targets without recommendations.
func CalculateFunnel(s diagnostic.Snapshot) diagnostic.Funnel {
	return calculateFunnel(diagnostic.Normalize(s))
}

// EffectiveRates returns the conversion rates used for the reverse funnel.
// Historical lead-to-sale conversion replaces the benchmark rate when known;
// reach and click rates always come from the benchmark.
func EffectiveRates(s diagnostic.Snapshot) diagnostic.ConversionRates {
	rates := s.Benchmark.ConversionRates
	if s.History.HasHistory && s.History.AverageConversionRate > 0 {
		rates.LeadToSale = s.History.AverageConversionRate
	}
	return rates
}

func calculateFunnel(s diagnostic.Snapshot) diagnostic.Funnel {
	maxCAC := s.Financial.AverageTicket * (s.Financial.ProfitMargin / 100) * maxCACShare

	requiredSales := s.Financial.MonthlyGoal - s.Financial.CurrentMonthlySales
	if requiredSales < 0 {
		requiredSales = 0
	}

	rates := EffectiveRates(s)
	requiredLeads := reverseStep(requiredSales, rates.LeadToSale)
	requiredClicks := reverseStep(requiredLeads, rates.ClickToLead)
	requiredReach := reverseStep(requiredClicks, rates.ReachToClick)

	return diagnostic.Funnel{
		MaxCAC:           maxCAC,
		RequiredSales:    requiredSales,
		RequiredLeads:    requiredLeads,
		RequiredClicks:   requiredClicks,
		RequiredReach:    requiredReach,
		ViableInvestment: finite(float64(requiredSales) * maxCAC),
	}
}

// finite saturates an overflowed amount to the largest float64.
func finite(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 0):
		return math.Copysign(math.MaxFloat64, v)
	}
	return v
}

// reverseStep returns how many entries an upstream stage needs so that
// required items come out at the given conversion percentage. A zero count
// or a non-positive rate yields 0.
func reverseStep(required int, rate float64) int {
	if required <= 0 || rate <= 0 {
		return 0
	}
	return ceilCount(float64(required) / (rate / 100))
}

func ceilCount(v float64) int {
	v = math.Ceil(v)
	if v >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(v)
}
