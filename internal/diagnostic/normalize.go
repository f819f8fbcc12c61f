package diagnostic

import "math"

const (
	// maxPercent is the upper bound for every percentage field.
	maxPercent = 100
	// maxMoney bounds money and volume fields so that products of them
	// stay finite.
	maxMoney = 1e15
	// maxCount bounds whole-number fields.
	maxCount = math.MaxInt32
)

// Normalize returns a copy of s that the calculator can trust. Non-finite
// and negative numbers become 0. Percentages are clamped to [0, 100], money
// to [0, 1e15] and counts to [0, MaxInt32]. An unknown business type
// becomes B2C.
func Normalize(s Snapshot) Snapshot {
	s.Financial.AverageTicket = money(s.Financial.AverageTicket)
	s.Financial.ProfitMargin = percent(s.Financial.ProfitMargin)
	s.Financial.CurrentMonthlySales = nonNegative(s.Financial.CurrentMonthlySales)
	s.Financial.MonthlyGoal = nonNegative(s.Financial.MonthlyGoal)

	if !s.Benchmark.BusinessType.Valid() {
		s.Benchmark.BusinessType = B2C
	}
	s.Benchmark.ConversionRates.ReachToClick = percent(s.Benchmark.ConversionRates.ReachToClick)
	s.Benchmark.ConversionRates.ClickToLead = percent(s.Benchmark.ConversionRates.ClickToLead)
	s.Benchmark.ConversionRates.LeadToSale = percent(s.Benchmark.ConversionRates.LeadToSale)

	s.History.AverageLeadsPerMonth = money(s.History.AverageLeadsPerMonth)
	s.History.AverageConversionRate = percent(s.History.AverageConversionRate)
	s.History.AverageCAC = money(s.History.AverageCAC)

	s.Investment.AvailableBudget = money(s.Investment.AvailableBudget)
	s.Investment.CurrentInvestment = money(s.Investment.CurrentInvestment)
	s.Investment.MaxAcceptableCAC = money(s.Investment.MaxAcceptableCAC)

	s.Validation.TestDuration = nonNegative(s.Validation.TestDuration)
	s.Validation.TestBudget = money(s.Validation.TestBudget)
	s.Validation.MinimumLeads = nonNegative(s.Validation.MinimumLeads)

	return s
}

// money maps NaN, infinities and negatives to 0 and caps at maxMoney.
func money(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return math.Min(v, maxMoney)
}

func percent(v float64) float64 {
	return math.Min(money(v), maxPercent)
}

func nonNegative(v int) int {
	return min(max(v, 0), maxCount)
}
