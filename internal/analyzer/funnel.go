package analyzer

import (
	"math"

	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
)

// minStageWidth keeps tiny stages visible.
const minStageWidth = 5

// FunnelStages lays out the required funnel from reach down to sales, with
// widths relative to the reach stage.
func FunnelStages(f diagnostic.Funnel) []Stage {
	top := math.Max(float64(f.RequiredReach), 1)

	stages := []Stage{
		{Key: "reach", Label: "Alcance", Value: f.RequiredReach},
		{Key: "clicks", Label: "Cliques", Value: f.RequiredClicks},
		{Key: "leads", Label: "Leads", Value: f.RequiredLeads},
		{Key: "sales", Label: "Vendas", Value: f.RequiredSales},
	}
	for i := range stages {
		stages[i].Width = math.Max(float64(stages[i].Value)/top*100, minStageWidth)
	}
	return stages
}
