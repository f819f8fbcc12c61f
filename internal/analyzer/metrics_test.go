package analyzer

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// scenario returns a B2C snapshot with a 30-sale gap to goal.
func scenario() diagnostic.Snapshot {
	s := diagnostic.Defaults()
	s.Financial = diagnostic.Financial{
		AverageTicket:       1000,
		ProfitMargin:        30,
		CurrentMonthlySales: 20,
		MonthlyGoal:         50,
	}
	return s
}

// --- CalculateMetrics ---

func TestCalculateMetrics_MaxCAC(t *testing.T) {
	m := CalculateMetrics(scenario())
	if !approxEqual(m.MaxCAC, 90) {
		t.Errorf("MaxCAC = %v, want 90", m.MaxCAC)
	}
}

func TestCalculateMetrics_ReverseFunnelB2C(t *testing.T) {
	m := CalculateMetrics(scenario())
	if m.RequiredSales != 30 {
		t.Errorf("RequiredSales = %d, want 30", m.RequiredSales)
	}
	if m.RequiredLeads != 150 {
		t.Errorf("RequiredLeads = %d, want 150", m.RequiredLeads)
	}
	if m.RequiredClicks != 750 {
		t.Errorf("RequiredClicks = %d, want 750", m.RequiredClicks)
	}
	if m.RequiredReach != 15000 {
		t.Errorf("RequiredReach = %d, want 15000", m.RequiredReach)
	}
}

func TestCalculateMetrics_ViableInvestment(t *testing.T) {
	m := CalculateMetrics(scenario())
	if m.ViableInvestment != float64(m.RequiredSales)*m.MaxCAC {
		t.Errorf("ViableInvestment = %v, want RequiredSales*MaxCAC = %v",
			m.ViableInvestment, float64(m.RequiredSales)*m.MaxCAC)
	}
}

func TestCalculateMetrics_Idempotent(t *testing.T) {
	s := scenario()
	s.History = diagnostic.History{HasHistory: true, AverageCAC: 120, AverageLeadsPerMonth: 40, AverageConversionRate: 12}
	s.Investment.AvailableBudget = 1500

	first := CalculateMetrics(s)
	second := CalculateMetrics(s)
	if first.Funnel != second.Funnel {
		t.Fatalf("funnel differs between runs: %+v vs %+v", first.Funnel, second.Funnel)
	}
	if len(first.Recommendations) != len(second.Recommendations) {
		t.Fatalf("recommendation count differs: %d vs %d", len(first.Recommendations), len(second.Recommendations))
	}
	for i := range first.Recommendations {
		if first.Recommendations[i] != second.Recommendations[i] {
			t.Errorf("recommendation %d differs", i)
		}
	}
}

func TestCalculateMetrics_RequiredSalesNeverNegative(t *testing.T) {
	tests := []struct {
		current, goal, want int
	}{
		{20, 50, 30},
		{50, 50, 0},
		{80, 50, 0},
		{0, 0, 0},
	}
	for _, tc := range tests {
		s := scenario()
		s.Financial.CurrentMonthlySales = tc.current
		s.Financial.MonthlyGoal = tc.goal
		m := CalculateMetrics(s)
		if m.RequiredSales != tc.want {
			t.Errorf("current=%d goal=%d: RequiredSales = %d, want %d", tc.current, tc.goal, m.RequiredSales, tc.want)
		}
		if m.RequiredSales == 0 && (m.RequiredLeads != 0 || m.RequiredClicks != 0 || m.RequiredReach != 0) {
			t.Errorf("current=%d goal=%d: downstream counts should be 0, got %+v", tc.current, tc.goal, m.Funnel)
		}
	}
}

func TestCalculateMetrics_ZeroRatesShortCircuit(t *testing.T) {
	tests := []struct {
		name  string
		rates diagnostic.ConversionRates
		want  [3]int // leads, clicks, reach
	}{
		{"lead to sale zero", diagnostic.ConversionRates{ReachToClick: 5, ClickToLead: 20, LeadToSale: 0}, [3]int{0, 0, 0}},
		{"click to lead zero", diagnostic.ConversionRates{ReachToClick: 5, ClickToLead: 0, LeadToSale: 20}, [3]int{150, 0, 0}},
		{"reach to click zero", diagnostic.ConversionRates{ReachToClick: 0, ClickToLead: 20, LeadToSale: 20}, [3]int{150, 750, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := scenario()
			s.Benchmark.ConversionRates = tc.rates
			m := CalculateMetrics(s)
			got := [3]int{m.RequiredLeads, m.RequiredClicks, m.RequiredReach}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCalculateMetrics_HistoryOverridesLeadToSaleOnly(t *testing.T) {
	s := scenario()
	s.History = diagnostic.History{HasHistory: true, AverageConversionRate: 25}

	rates := EffectiveRates(s)
	if rates.LeadToSale != 25 {
		t.Errorf("LeadToSale = %v, want 25", rates.LeadToSale)
	}
	if rates.ReachToClick != 5 || rates.ClickToLead != 20 {
		t.Errorf("top of funnel should keep benchmark rates, got %+v", rates)
	}

	m := CalculateMetrics(s)
	// 30 / 0.25 = 120 leads, 120 / 0.2 = 600 clicks, 600 / 0.05 = 12000 reach.
	if m.RequiredLeads != 120 || m.RequiredClicks != 600 || m.RequiredReach != 12000 {
		t.Errorf("unexpected funnel %+v", m.Funnel)
	}
}

func TestCalculateMetrics_HistoryWithoutRateUsesBenchmark(t *testing.T) {
	s := scenario()
	s.History = diagnostic.History{HasHistory: true, AverageConversionRate: 0}
	if got := EffectiveRates(s); got != diagnostic.BenchmarkB2C {
		t.Errorf("EffectiveRates = %+v, want benchmark", got)
	}

	s.History = diagnostic.History{HasHistory: false, AverageConversionRate: 25}
	if got := EffectiveRates(s); got != diagnostic.BenchmarkB2C {
		t.Errorf("EffectiveRates without history = %+v, want benchmark", got)
	}
}

func TestCalculateMetrics_B2BFunnel(t *testing.T) {
	s := scenario()
	s.Benchmark = diagnostic.Benchmark{BusinessType: diagnostic.B2B, ConversionRates: diagnostic.DefaultsFor(diagnostic.B2B)}
	m := CalculateMetrics(s)
	// 30 / 0.125 = 240, 240 / 0.32 = 750, 750 / 0.05 = 15000.
	if m.RequiredLeads != 240 || m.RequiredClicks != 750 || m.RequiredReach != 15000 {
		t.Errorf("unexpected funnel %+v", m.Funnel)
	}
}

func TestCalculateMetrics_CACErrorScenario(t *testing.T) {
	s := scenario()
	s.History = diagnostic.History{HasHistory: true, AverageCAC: 200}
	m := CalculateMetrics(s)
	if len(m.Recommendations) == 0 {
		t.Fatal("expected recommendations")
	}
	first := m.Recommendations[0]
	if first.Type != diagnostic.SeverityError || first.Title != "CAC Acima do Limite" {
		t.Errorf("first recommendation = %+v, want CAC error", first)
	}
}

func TestCalculateMetrics_ZeroBudgetSkipsBudgetRule(t *testing.T) {
	s := scenario()
	s.Investment.AvailableBudget = 0
	m := CalculateMetrics(s)
	for _, r := range m.Recommendations {
		if r.Title == "Orçamento Insuficiente" || r.Title == "Orçamento Limitado" || r.Title == "Orçamento Adequado" {
			t.Errorf("unexpected budget recommendation %+v", r)
		}
	}
}

func TestCalculateMetrics_DegenerateInput(t *testing.T) {
	s := diagnostic.Snapshot{
		Financial: diagnostic.Financial{AverageTicket: math.NaN(), ProfitMargin: -20, MonthlyGoal: 10},
		Benchmark: diagnostic.Benchmark{ConversionRates: diagnostic.ConversionRates{LeadToSale: math.Inf(1)}},
	}
	m := CalculateMetrics(s)
	if m.MaxCAC != 0 || m.ViableInvestment != 0 {
		t.Errorf("expected zero money values, got %+v", m.Funnel)
	}
	if m.RequiredSales != 10 || m.RequiredLeads != 0 {
		t.Errorf("unexpected funnel %+v", m.Funnel)
	}
	if m.Recommendations == nil {
		t.Error("recommendations should be an empty slice, not nil")
	}
}

func TestCalculateFunnel_MatchesMetrics(t *testing.T) {
	s := scenario()
	if got, want := CalculateFunnel(s), CalculateMetrics(s).Funnel; got != want {
		t.Errorf("CalculateFunnel = %+v, want %+v", got, want)
	}
}

func TestCalculateMetrics_LargeInputStaysFinite(t *testing.T) {
	s := diagnostic.Defaults()
	s.Financial.AverageTicket = 1e307
	s.Financial.MonthlyGoal = 1000
	s.Investment.AvailableBudget = 1e308

	m := CalculateMetrics(s)
	if math.IsInf(m.ViableInvestment, 0) || math.IsNaN(m.ViableInvestment) {
		t.Fatalf("ViableInvestment = %v, want finite", m.ViableInvestment)
	}
	if _, err := json.Marshal(BuildReport(s)); err != nil {
		t.Fatalf("report should encode: %v", err)
	}
}

func TestPlanTest_TinyRateStaysFinite(t *testing.T) {
	s := scenario()
	s.Benchmark.ConversionRates.LeadToSale = 1e-300

	report := BuildReport(s)
	if math.IsInf(report.TestPlan.SuggestedBudget, 0) {
		t.Fatalf("SuggestedBudget = %v, want finite", report.TestPlan.SuggestedBudget)
	}
	if _, err := json.Marshal(report); err != nil {
		t.Fatalf("report should encode: %v", err)
	}
}
