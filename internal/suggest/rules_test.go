package suggest

import (
	"math"
	"strings"
	"testing"

	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
)

// historyCtx builds a context with history enabled and the given CAC figures.
func historyCtx(averageCAC, maxCAC float64) *Context {
	s := diagnostic.Defaults()
	s.History = diagnostic.History{HasHistory: true, AverageCAC: averageCAC}
	return &Context{Snapshot: s, Funnel: diagnostic.Funnel{MaxCAC: maxCAC}}
}

// --- CACCheck ---

func TestCACCheck_AboveLimit(t *testing.T) {
	recs := CACCheck(historyCtx(200, 90))
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	r := recs[0]
	if r.Type != diagnostic.SeverityError {
		t.Errorf("expected type %q, got %q", diagnostic.SeverityError, r.Type)
	}
	if r.Title != "CAC Acima do Limite" {
		t.Errorf("unexpected title %q", r.Title)
	}
	// (200/90 - 1) * 100 = 122.2
	if !strings.Contains(r.Description, "122% acima") {
		t.Errorf("expected excess percentage in description, got %q", r.Description)
	}
	if !strings.Contains(r.Description, "R$ 200") || !strings.Contains(r.Description, "R$ 90") {
		t.Errorf("expected CAC values in description, got %q", r.Description)
	}
}

func TestCACCheck_ZeroCeilingOmitsPercentage(t *testing.T) {
	recs := CACCheck(historyCtx(50, 0))
	if len(recs) != 1 || recs[0].Type != diagnostic.SeverityError {
		t.Fatalf("expected one error, got %+v", recs)
	}
	if strings.Contains(recs[0].Description, "Inf") || strings.Contains(recs[0].Description, "NaN") {
		t.Errorf("description contains non-finite value: %q", recs[0].Description)
	}
	if strings.Contains(recs[0].Description, "%") {
		t.Errorf("expected no percentage with zero ceiling, got %q", recs[0].Description)
	}
}

func TestCACCheck_NearLimit(t *testing.T) {
	recs := CACCheck(historyCtx(81, 90))
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].Type != diagnostic.SeverityWarning || recs[0].Title != "CAC Próximo do Limite" {
		t.Errorf("unexpected recommendation %+v", recs[0])
	}
	if !strings.Contains(recs[0].Description, "90%") {
		t.Errorf("expected 90%% of limit, got %q", recs[0].Description)
	}
}

func TestCACCheck_AtLimitIsWarning(t *testing.T) {
	recs := CACCheck(historyCtx(90, 90))
	if len(recs) != 1 || recs[0].Type != diagnostic.SeverityWarning {
		t.Fatalf("expected warning at exactly the ceiling, got %+v", recs)
	}
}

func TestCACCheck_Healthy(t *testing.T) {
	recs := CACCheck(historyCtx(45, 90))
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].Type != diagnostic.SeveritySuccess || recs[0].Title != "CAC Saudável" {
		t.Errorf("unexpected recommendation %+v", recs[0])
	}
	if !strings.Contains(recs[0].Description, "50% abaixo") {
		t.Errorf("expected 50%% below limit, got %q", recs[0].Description)
	}
}

func TestCACCheck_Skipped(t *testing.T) {
	noHistory := historyCtx(200, 90)
	noHistory.Snapshot.History.HasHistory = false
	if recs := CACCheck(noHistory); len(recs) != 0 {
		t.Errorf("expected no recommendation without history, got %d", len(recs))
	}
	if recs := CACCheck(historyCtx(0, 90)); len(recs) != 0 {
		t.Errorf("expected no recommendation with zero CAC, got %d", len(recs))
	}
}

// --- BudgetCheck ---

func budgetCtx(budget, viable float64) *Context {
	s := diagnostic.Defaults()
	s.Investment.AvailableBudget = budget
	return &Context{Snapshot: s, Funnel: diagnostic.Funnel{ViableInvestment: viable}}
}

func TestBudgetCheck(t *testing.T) {
	tests := []struct {
		name     string
		budget   float64
		viable   float64
		wantType diagnostic.Severity
		title    string
		contains string
	}{
		{"insufficient", 1000, 2700, diagnostic.SeverityError, "Orçamento Insuficiente", "cobre apenas 37%"},
		{"limited", 2000, 2700, diagnostic.SeverityWarning, "Orçamento Limitado", "R$ 700"},
		{"half exactly is limited", 1350, 2700, diagnostic.SeverityWarning, "Orçamento Limitado", "R$ 1350"},
		{"adequate", 3000, 2700, diagnostic.SeveritySuccess, "Orçamento Adequado", "alinhado"},
		{"no viable investment", 500, 0, diagnostic.SeveritySuccess, "Orçamento Adequado", "alinhado"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recs := BudgetCheck(budgetCtx(tc.budget, tc.viable))
			if len(recs) != 1 {
				t.Fatalf("expected 1 recommendation, got %d", len(recs))
			}
			r := recs[0]
			if r.Type != tc.wantType || r.Title != tc.title {
				t.Errorf("got %q/%q, want %q/%q", r.Type, r.Title, tc.wantType, tc.title)
			}
			if !strings.Contains(r.Description, tc.contains) {
				t.Errorf("expected description to contain %q, got %q", tc.contains, r.Description)
			}
		})
	}
}

func TestBudgetCheck_ZeroBudgetSkipped(t *testing.T) {
	if recs := BudgetCheck(budgetCtx(0, 2700)); len(recs) != 0 {
		t.Fatalf("expected budget rule to be skipped, got %+v", recs)
	}
}

// --- ConversionCheck ---

func conversionCtx(rate float64) *Context {
	s := diagnostic.Defaults()
	s.History = diagnostic.History{HasHistory: true, AverageConversionRate: rate}
	return &Context{Snapshot: s}
}

func TestConversionCheck_Below(t *testing.T) {
	recs := ConversionCheck(conversionCtx(10))
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	r := recs[0]
	if r.Type != diagnostic.SeverityWarning || r.Title != "Conversão Abaixo do Benchmark" {
		t.Errorf("unexpected recommendation %+v", r)
	}
	if !strings.Contains(r.Description, "(10.0%)") || !strings.Contains(r.Description, "(20%)") {
		t.Errorf("unexpected description %q", r.Description)
	}
}

func TestConversionCheck_B2BRateFormatting(t *testing.T) {
	ctx := conversionCtx(5)
	ctx.Snapshot.Benchmark.ConversionRates = diagnostic.BenchmarkB2B
	recs := ConversionCheck(ctx)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if !strings.Contains(recs[0].Description, "(12.5%)") {
		t.Errorf("expected benchmark 12.5%% in description, got %q", recs[0].Description)
	}
}

func TestConversionCheck_Above(t *testing.T) {
	recs := ConversionCheck(conversionCtx(25))
	if len(recs) != 1 || recs[0].Type != diagnostic.SeveritySuccess || recs[0].Title != "Conversão Acima da Média" {
		t.Fatalf("unexpected recommendations %+v", recs)
	}
}

func TestConversionCheck_BandProducesNothing(t *testing.T) {
	for _, rate := range []float64{14, 17, 20} {
		if recs := ConversionCheck(conversionCtx(rate)); len(recs) != 0 {
			t.Errorf("rate %v: expected no recommendation, got %+v", rate, recs)
		}
	}
}

func TestConversionCheck_Skipped(t *testing.T) {
	ctx := conversionCtx(10)
	ctx.Snapshot.History.HasHistory = false
	if recs := ConversionCheck(ctx); len(recs) != 0 {
		t.Errorf("expected skip without history, got %+v", recs)
	}
	if recs := ConversionCheck(conversionCtx(0)); len(recs) != 0 {
		t.Errorf("expected skip with zero rate, got %+v", recs)
	}
}

// --- LeadVolumeCheck ---

func leadCtx(required int, average float64) *Context {
	s := diagnostic.Defaults()
	s.History = diagnostic.History{HasHistory: true, AverageLeadsPerMonth: average}
	return &Context{Snapshot: s, Funnel: diagnostic.Funnel{RequiredLeads: required}}
}

func TestLeadVolumeCheck_SignificantIncrease(t *testing.T) {
	recs := LeadVolumeCheck(leadCtx(150, 60))
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	r := recs[0]
	if r.Type != diagnostic.SeverityWarning || r.Title != "Aumento Significativo de Leads" {
		t.Errorf("unexpected recommendation %+v", r)
	}
	if !strings.Contains(r.Description, "gerar 90 leads") || !strings.Contains(r.Description, "(150% a mais)") {
		t.Errorf("unexpected description %q", r.Description)
	}
}

func TestLeadVolumeCheck_SmallGap(t *testing.T) {
	if recs := LeadVolumeCheck(leadCtx(150, 100)); len(recs) != 0 {
		t.Fatalf("gap of 50 on 100 should not trigger, got %+v", recs)
	}
}

func TestLeadVolumeCheck_ZeroAverageSkipped(t *testing.T) {
	if recs := LeadVolumeCheck(leadCtx(150, 0)); len(recs) != 0 {
		t.Fatalf("expected skip with zero historical leads, got %+v", recs)
	}
}

func TestLeadVolumeCheck_NoRequiredLeads(t *testing.T) {
	if recs := LeadVolumeCheck(leadCtx(0, 60)); len(recs) != 0 {
		t.Fatalf("expected skip with no required leads, got %+v", recs)
	}
}

// --- fixed ---

func TestFixed_RoundsHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		v      float64
		digits int
		want   string
	}{
		{2.5, 0, "3"},
		{0.5, 0, "1"},
		{122.222, 0, "122"},
		{10, 1, "10.0"},
		{12.25, 1, "12.3"},
		{8.45, 1, "8.4"},
		{0.15, 1, "0.1"},
		{1.005, 2, "1.00"},
		{-2.5, 0, "-3"},
	}
	for _, tc := range tests {
		if got := fixed(tc.v, tc.digits); got != tc.want {
			t.Errorf("fixed(%v, %d) = %q, want %q", tc.v, tc.digits, got, tc.want)
		}
	}
}

func TestFixed_NonFinite(t *testing.T) {
	if got := fixed(math.NaN(), 0); got != "0" {
		t.Errorf("fixed(NaN) = %q, want \"0\"", got)
	}
	if got := fixed(math.Inf(1), 0); strings.Contains(got, "Inf") {
		t.Errorf("fixed(+Inf) = %q, want a finite number", got)
	}
}

func TestConversionCheck_RoundsStoredValue(t *testing.T) {
	recs := ConversionCheck(conversionCtx(8.45))
	if len(recs) != 1 || !strings.Contains(recs[0].Description, "(8.4%)") {
		t.Fatalf("expected 8.45 to render as 8.4%%, got %+v", recs)
	}
}
