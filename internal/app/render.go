package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/blackwell-systems/funnelplan/internal/analyzer"
	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
	"github.com/blackwell-systems/funnelplan/internal/output"
	"github.com/blackwell-systems/funnelplan/internal/suggest"
)

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderMetric prints one label/value line.
func renderMetric(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", output.StyleLabel.Render(label), output.StyleValue.Render(value))
}

// renderFunnel prints the headline numbers and the funnel bars.
func renderFunnel(w io.Writer, f diagnostic.Funnel) {
	renderMetric(w, "CAC máximo", output.Currency(f.MaxCAC))
	renderMetric(w, "Investimento viável", output.Currency(f.ViableInvestment))
	fmt.Fprintln(w)

	tbl := output.NewTable("Etapa", "Necessário", "").AlignRight(1)
	for _, st := range analyzer.FunnelStages(f) {
		tbl.AddRow(st.Label, output.Number(st.Value), output.FunnelBar(st.Width, 30))
	}
	fmt.Fprint(w, indent(tbl.Render()))
}

// renderRecommendations prints recommendations in rule order.
func renderRecommendations(w io.Writer, recs []diagnostic.Recommendation) {
	if len(recs) == 0 {
		fmt.Fprintf(w, "  %s\n", output.StyleMuted.Render("Nenhuma recomendação."))
		return
	}
	for _, r := range recs {
		style := output.SeverityStyle(r.Type)
		fmt.Fprintf(w, "  %s %s\n", style.Render(output.SeverityIcon(r.Type)), output.StyleBold.Render(r.Title))
		fmt.Fprintf(w, "    %s\n", r.Description)
	}
}

// renderReport prints the full diagnostic. Recommendations below
// minSeverity are hidden.
func renderReport(w io.Writer, title string, r analyzer.Report, minSeverity diagnostic.Severity) {
	fmt.Fprintln(w, output.Section(title))
	fmt.Fprintln(w)
	renderFunnel(w, r.Metrics.Funnel)

	fmt.Fprintln(w, output.Section("Orçamento"))
	fmt.Fprintln(w)
	renderMetric(w, "Disponível", output.Currency(r.Snapshot.Investment.AvailableBudget))
	fmt.Fprintf(w, "  %s %s\n", output.StyleLabel.Render("Cobertura"), output.CoverageBar(r.Coverage.Percent, 20))
	if r.Coverage.Gap > 0 {
		renderMetric(w, "Faltam", output.Currency(r.Coverage.Gap))
	}

	fmt.Fprintln(w, output.Section("Plano de teste"))
	fmt.Fprintln(w)
	renderMetric(w, "Leads mínimos", output.Number(r.TestPlan.SuggestedMinLeads))
	renderMetric(w, "Orçamento sugerido", output.Currency(r.TestPlan.SuggestedBudget))
	renderMetric(w, "Leads por dia", output.Decimal(r.TestPlan.LeadsPerDay, 1))
	renderMetric(w, "Custo por lead", output.Currency(r.TestPlan.CostPerLead))

	fmt.Fprintln(w, output.Section("Recomendações"))
	fmt.Fprintln(w)
	renderRecommendations(w, suggest.FilterBySeverity(r.Metrics.Recommendations, minSeverity))
	fmt.Fprintln(w)
}

// indent prefixes every line of s with two spaces.
func indent(s string) string {
	out := make([]byte, 0, len(s)+16)
	start := true
	for i := 0; i < len(s); i++ {
		if start && s[i] != '\n' {
			out = append(out, ' ', ' ')
		}
		out = append(out, s[i])
		start = s[i] == '\n'
	}
	return string(out)
}
