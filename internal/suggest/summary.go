package suggest

import "github.com/blackwell-systems/funnelplan/internal/diagnostic"

// Summary counts recommendations by severity.
type Summary struct {
	Success int                 `json:"success"`
	Warning int                 `json:"warning"`
	Error   int                 `json:"error"`
	Worst   diagnostic.Severity `json:"worst,omitempty"`
}

// Summarize tallies recommendations and reports the worst severity seen.
// Worst is empty when there are no recommendations.
func Summarize(recs []diagnostic.Recommendation) Summary {
	var s Summary
	for _, r := range recs {
		switch r.Type {
		case diagnostic.SeveritySuccess:
			s.Success++
		case diagnostic.SeverityWarning:
			s.Warning++
		case diagnostic.SeverityError:
			s.Error++
		}
		if r.Type.Rank() > s.Worst.Rank() {
			s.Worst = r.Type
		}
	}
	return s
}

// FilterBySeverity returns the recommendations at or above threshold, preserving
// rule order.
func FilterBySeverity(recs []diagnostic.Recommendation, threshold diagnostic.Severity) []diagnostic.Recommendation {
	filtered := []diagnostic.Recommendation{}
	for _, r := range recs {
		if r.Type.Rank() >= threshold.Rank() {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
