package analyzer

import (
	"testing"

	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
)

func TestFunnelStages(t *testing.T) {
	f := diagnostic.Funnel{RequiredSales: 30, RequiredLeads: 150, RequiredClicks: 750, RequiredReach: 15000}
	stages := FunnelStages(f)
	if len(stages) != 4 {
		t.Fatalf("expected 4 stages, got %d", len(stages))
	}

	wantKeys := []string{"reach", "clicks", "leads", "sales"}
	for i, k := range wantKeys {
		if stages[i].Key != k {
			t.Errorf("stages[%d].Key = %q, want %q", i, stages[i].Key, k)
		}
	}
	if stages[0].Width != 100 {
		t.Errorf("reach width = %v, want 100", stages[0].Width)
	}
	if !approxEqual(stages[1].Width, 5) {
		t.Errorf("clicks width = %v, want 5", stages[1].Width)
	}
	// 30 / 15000 = 0.2% -> clamped to the minimum width.
	if stages[3].Width != 5 {
		t.Errorf("sales width = %v, want 5", stages[3].Width)
	}
}

func TestFunnelStages_EmptyFunnel(t *testing.T) {
	for _, s := range FunnelStages(diagnostic.Funnel{}) {
		if s.Value != 0 || s.Width != 5 {
			t.Errorf("stage %q = %+v, want zero value and minimum width", s.Key, s)
		}
	}
}
