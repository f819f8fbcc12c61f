package diagnostic

import (
	"math"
	"testing"
)

// --- DefaultsFor ---

func TestDefaultsFor(t *testing.T) {
	tests := []struct {
		businessType BusinessType
		want         ConversionRates
	}{
		{B2C, ConversionRates{ReachToClick: 5, ClickToLead: 20, LeadToSale: 20}},
		{B2B, ConversionRates{ReachToClick: 5, ClickToLead: 32, LeadToSale: 12.5}},
		{BusinessType("D2C"), ConversionRates{ReachToClick: 5, ClickToLead: 20, LeadToSale: 20}},
	}
	for _, tc := range tests {
		if got := DefaultsFor(tc.businessType); got != tc.want {
			t.Errorf("DefaultsFor(%q) = %+v, want %+v", tc.businessType, got, tc.want)
		}
	}
}

func TestBusinessTypes_Order(t *testing.T) {
	got := BusinessTypes()
	if len(got) != 2 || got[0] != B2C || got[1] != B2B {
		t.Fatalf("BusinessTypes() = %v, want [B2C B2B]", got)
	}
}

// --- Defaults ---

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d.Financial.ProfitMargin != 30 {
		t.Errorf("ProfitMargin = %v, want 30", d.Financial.ProfitMargin)
	}
	if d.Benchmark.BusinessType != B2C {
		t.Errorf("BusinessType = %q, want B2C", d.Benchmark.BusinessType)
	}
	if d.Benchmark.ConversionRates != BenchmarkB2C {
		t.Errorf("ConversionRates = %+v, want B2C preset", d.Benchmark.ConversionRates)
	}
	if d.Validation.TestDuration != 30 || d.Validation.MinimumLeads != 50 {
		t.Errorf("Validation = %+v, want duration 30 and 50 leads", d.Validation)
	}
	if d.History.HasHistory {
		t.Error("HasHistory should default to false")
	}
	if d.Financial.AverageTicket != 0 || d.Investment.AvailableBudget != 0 {
		t.Error("money fields should default to 0")
	}
}

// --- Normalize ---

func TestNormalize_ClampsAndZeroes(t *testing.T) {
	s := Snapshot{
		Financial: Financial{
			AverageTicket:       -10,
			ProfitMargin:        140,
			CurrentMonthlySales: -3,
			MonthlyGoal:         12,
		},
		Benchmark: Benchmark{
			BusinessType:    "",
			ConversionRates: ConversionRates{ReachToClick: math.NaN(), ClickToLead: math.Inf(1), LeadToSale: -5},
		},
		History: History{
			AverageConversionRate: 250,
			AverageCAC:            math.Inf(-1),
		},
		Validation: Validation{TestDuration: -7, MinimumLeads: -1, TestBudget: 300},
	}

	got := Normalize(s)

	if got.Financial.AverageTicket != 0 {
		t.Errorf("AverageTicket = %v, want 0", got.Financial.AverageTicket)
	}
	if got.Financial.ProfitMargin != 100 {
		t.Errorf("ProfitMargin = %v, want 100", got.Financial.ProfitMargin)
	}
	if got.Financial.CurrentMonthlySales != 0 || got.Financial.MonthlyGoal != 12 {
		t.Errorf("sales = %d/%d, want 0/12", got.Financial.CurrentMonthlySales, got.Financial.MonthlyGoal)
	}
	if got.Benchmark.BusinessType != B2C {
		t.Errorf("BusinessType = %q, want B2C", got.Benchmark.BusinessType)
	}
	rates := got.Benchmark.ConversionRates
	if rates.ReachToClick != 0 || rates.ClickToLead != 0 || rates.LeadToSale != 0 {
		t.Errorf("rates = %+v, want all 0", rates)
	}
	if got.History.AverageConversionRate != 100 {
		t.Errorf("AverageConversionRate = %v, want 100", got.History.AverageConversionRate)
	}
	if got.History.AverageCAC != 0 {
		t.Errorf("AverageCAC = %v, want 0", got.History.AverageCAC)
	}
	if got.Validation.TestDuration != 0 || got.Validation.MinimumLeads != 0 || got.Validation.TestBudget != 300 {
		t.Errorf("Validation = %+v", got.Validation)
	}
}

func TestNormalize_CapsLargeValues(t *testing.T) {
	s := Defaults()
	s.Financial.AverageTicket = 1e307
	s.Financial.MonthlyGoal = math.MaxInt
	s.Investment.AvailableBudget = math.MaxFloat64

	got := Normalize(s)
	if got.Financial.AverageTicket != maxMoney || got.Investment.AvailableBudget != maxMoney {
		t.Errorf("money not capped: ticket=%v budget=%v", got.Financial.AverageTicket, got.Investment.AvailableBudget)
	}
	if got.Financial.MonthlyGoal != math.MaxInt32 {
		t.Errorf("MonthlyGoal = %d, want MaxInt32", got.Financial.MonthlyGoal)
	}
}

func TestNormalize_LeavesValidSnapshotUnchanged(t *testing.T) {
	s := Defaults()
	s.Financial.AverageTicket = 1000
	s.Benchmark.BusinessType = B2B
	s.Benchmark.ConversionRates = BenchmarkB2B
	if got := Normalize(s); got != s {
		t.Errorf("Normalize changed a valid snapshot:\n got %+v\nwant %+v", got, s)
	}
}

// --- Parse ---

func TestParse_JSONLenient(t *testing.T) {
	doc := `{
		"financial": {"averageTicket": "1000", "profitMargin": 30, "currentMonthlySales": null, "monthlyGoal": 50.9},
		"benchmark": {"businessType": "b2b", "conversionRates": {"reachToClick": 5, "clickToLead": "abc", "leadToSale": 12.5}},
		"history": {"hasHistory": "true", "averageCAC": 200},
		"investment": {"availableBudget": -50}
	}`
	s, err := Parse([]byte(doc), FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Financial.AverageTicket != 1000 {
		t.Errorf("AverageTicket = %v, want 1000", s.Financial.AverageTicket)
	}
	if s.Financial.CurrentMonthlySales != 0 {
		t.Errorf("CurrentMonthlySales = %d, want 0", s.Financial.CurrentMonthlySales)
	}
	if s.Financial.MonthlyGoal != 50 {
		t.Errorf("MonthlyGoal = %d, want 50", s.Financial.MonthlyGoal)
	}
	if s.Benchmark.BusinessType != B2B {
		t.Errorf("BusinessType = %q, want B2B", s.Benchmark.BusinessType)
	}
	if s.Benchmark.ConversionRates.ClickToLead != 0 {
		t.Errorf("ClickToLead = %v, want 0 for non-numeric input", s.Benchmark.ConversionRates.ClickToLead)
	}
	if !s.History.HasHistory || s.History.AverageCAC != 200 {
		t.Errorf("History = %+v", s.History)
	}
	if s.Investment.AvailableBudget != 0 {
		t.Errorf("AvailableBudget = %v, want 0", s.Investment.AvailableBudget)
	}
	// Missing sections stay zero rather than picking up wizard defaults.
	if s.Validation.TestDuration != 0 || s.Validation.MinimumLeads != 0 {
		t.Errorf("Validation = %+v, want zero", s.Validation)
	}
}

func TestParse_YAMLMissingRatesUsesPreset(t *testing.T) {
	doc := `
financial:
  averageTicket: 500
  profitMargin: 40
  monthlyGoal: 10
benchmark:
  businessType: B2B
validation:
  testDuration: 14
  minimumLeads: 60
`
	s, err := Parse([]byte(doc), FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Benchmark.ConversionRates != BenchmarkB2B {
		t.Errorf("ConversionRates = %+v, want B2B preset", s.Benchmark.ConversionRates)
	}
	if s.Financial.MonthlyGoal != 10 || s.Financial.ProfitMargin != 40 {
		t.Errorf("Financial = %+v", s.Financial)
	}
	if s.Validation.TestDuration != 14 || s.Validation.MinimumLeads != 60 {
		t.Errorf("Validation = %+v", s.Validation)
	}
}

func TestParse_MalformedDocument(t *testing.T) {
	if _, err := Parse([]byte(`{"financial":`), FormatJSON); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestParse_EmptyObject(t *testing.T) {
	s, err := Parse([]byte(`{}`), FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Benchmark.BusinessType != B2C || s.Benchmark.ConversionRates != BenchmarkB2C {
		t.Errorf("Benchmark = %+v, want B2C preset", s.Benchmark)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.json":      FormatJSON,
		"a.YAML":      FormatYAML,
		"dir/b.yml":   FormatYAML,
		"noextension": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestSeverityRank(t *testing.T) {
	if !(SeverityError.Rank() > SeverityWarning.Rank() && SeverityWarning.Rank() > SeveritySuccess.Rank()) {
		t.Error("expected error > warning > success")
	}
	if Severity("info").Rank() != 0 {
		t.Error("unknown severity should rank 0")
	}
}
