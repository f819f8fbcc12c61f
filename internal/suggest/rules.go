package suggest

import (
	"fmt"

	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
)

// Thresholds used by the built-in rules.
const (
	// cacWarningRatio is the share of the CAC ceiling above which the
	// current CAC is considered close to the limit.
	cacWarningRatio = 0.8

	// budgetErrorRatio is the share of the viable investment below which the
	// budget is considered insufficient.
	budgetErrorRatio = 0.5

	// conversionWarningRatio is the share of the benchmark lead-to-sale rate
	// below which historical conversion is flagged.
	conversionWarningRatio = 0.7

	// leadGapRatio is the lead increase, relative to the historical monthly
	// average, above which a warning is raised.
	leadGapRatio = 0.5
)

// CACCheck compares the historical CAC against the computed CAC ceiling.
// It only applies when the client has history with a known CAC.
func CACCheck(ctx *Context) []diagnostic.Recommendation {
	history := ctx.Snapshot.History
	if !history.HasHistory || history.AverageCAC <= 0 {
		return nil
	}

	maxCAC := ctx.Funnel.MaxCAC
	switch {
	case history.AverageCAC > maxCAC:
		excess := ""
		if maxCAC > 0 {
			excess = fixed((history.AverageCAC/maxCAC-1)*100, 0) + "% "
		}
		return []diagnostic.Recommendation{{
			Type:  diagnostic.SeverityError,
			Title: "CAC Acima do Limite",
			Description: fmt.Sprintf(
				"Seu CAC atual (R$ %s) está %sacima do máximo recomendado (R$ %s). "+
					"Revise suas estratégias de aquisição.",
				fixed(history.AverageCAC, 0), excess, fixed(maxCAC, 0),
			),
		}}
	case history.AverageCAC > maxCAC*cacWarningRatio:
		return []diagnostic.Recommendation{{
			Type:  diagnostic.SeverityWarning,
			Title: "CAC Próximo do Limite",
			Description: fmt.Sprintf(
				"Seu CAC está em %s%% do limite máximo. Monitore de perto.",
				fixed(history.AverageCAC/maxCAC*100, 0),
			),
		}}
	default:
		return []diagnostic.Recommendation{{
			Type:  diagnostic.SeveritySuccess,
			Title: "CAC Saudável",
			Description: fmt.Sprintf(
				"Seu CAC atual está %s%% abaixo do limite. Bom trabalho!",
				fixed((1-history.AverageCAC/maxCAC)*100, 0),
			),
		}}
	}
}

// BudgetCheck compares the available budget against the viable investment.
// It only applies when a budget was informed.
func BudgetCheck(ctx *Context) []diagnostic.Recommendation {
	budget := ctx.Snapshot.Investment.AvailableBudget
	if budget <= 0 {
		return nil
	}

	viable := ctx.Funnel.ViableInvestment
	switch {
	case budget < viable*budgetErrorRatio:
		return []diagnostic.Recommendation{{
			Type:  diagnostic.SeverityError,
			Title: "Orçamento Insuficiente",
			Description: fmt.Sprintf(
				"Seu orçamento (R$ %s) cobre apenas %s%% do investimento necessário para atingir a meta.",
				fixed(budget, 0), fixed(budget/viable*100, 0),
			),
		}}
	case budget < viable:
		return []diagnostic.Recommendation{{
			Type:  diagnostic.SeverityWarning,
			Title: "Orçamento Limitado",
			Description: fmt.Sprintf(
				"Considere aumentar o orçamento em R$ %s para maximizar resultados.",
				fixed(viable-budget, 0),
			),
		}}
	default:
		return []diagnostic.Recommendation{{
			Type:        diagnostic.SeveritySuccess,
			Title:       "Orçamento Adequado",
			Description: "Seu orçamento está alinhado com os objetivos definidos.",
		}}
	}
}

// ConversionCheck compares historical lead-to-sale conversion against the
// benchmark rate. Rates between 70% and 100% of the benchmark produce nothing.
func ConversionCheck(ctx *Context) []diagnostic.Recommendation {
	history := ctx.Snapshot.History
	if !history.HasHistory || history.AverageConversionRate <= 0 {
		return nil
	}

	benchmarkRate := ctx.Snapshot.Benchmark.ConversionRates.LeadToSale
	switch {
	case history.AverageConversionRate < benchmarkRate*conversionWarningRatio:
		return []diagnostic.Recommendation{{
			Type:  diagnostic.SeverityWarning,
			Title: "Conversão Abaixo do Benchmark",
			Description: fmt.Sprintf(
				"Sua taxa de conversão (%s%%) está abaixo do benchmark do setor (%s%%). "+
					"Foque em qualificação de leads.",
				fixed(history.AverageConversionRate, 1), shortest(benchmarkRate),
			),
		}}
	case history.AverageConversionRate > benchmarkRate:
		return []diagnostic.Recommendation{{
			Type:        diagnostic.SeveritySuccess,
			Title:       "Conversão Acima da Média",
			Description: "Sua taxa de conversão supera o benchmark! Continue otimizando.",
		}}
	}
	return nil
}

// LeadVolumeCheck flags goals that need far more leads than the client
// historically generates. It is skipped when the historical average is 0.
func LeadVolumeCheck(ctx *Context) []diagnostic.Recommendation {
	history := ctx.Snapshot.History
	if ctx.Funnel.RequiredLeads <= 0 || !history.HasHistory || history.AverageLeadsPerMonth <= 0 {
		return nil
	}

	leadGap := float64(ctx.Funnel.RequiredLeads) - history.AverageLeadsPerMonth
	if leadGap <= history.AverageLeadsPerMonth*leadGapRatio {
		return nil
	}

	return []diagnostic.Recommendation{{
		Type:  diagnostic.SeverityWarning,
		Title: "Aumento Significativo de Leads",
		Description: fmt.Sprintf(
			"Você precisa gerar %s leads adicionais/mês (%s%% a mais).",
			fixed(leadGap, 0), fixed(leadGap/history.AverageLeadsPerMonth*100, 0),
		),
	}}
}
