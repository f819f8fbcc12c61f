package app

import (
	"fmt"

	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
	"github.com/blackwell-systems/funnelplan/internal/output"
	"github.com/spf13/cobra"
)

var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "Show the default conversion rates per business type",
	RunE:  runBenchmarks,
}

func init() {
	rootCmd.AddCommand(benchmarksCmd)
}

type benchmarkRow struct {
	BusinessType    diagnostic.BusinessType    `json:"business_type"`
	Description     string                     `json:"description"`
	ConversionRates diagnostic.ConversionRates `json:"conversion_rates"`
}

func runBenchmarks(cmd *cobra.Command, args []string) error {
	var rows []benchmarkRow
	for _, bt := range diagnostic.BusinessTypes() {
		rows = append(rows, benchmarkRow{
			BusinessType:    bt,
			Description:     bt.Describe(),
			ConversionRates: diagnostic.DefaultsFor(bt),
		})
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, rows)
	}

	fmt.Fprintln(w, output.Section("Benchmarks"))
	fmt.Fprintln(w)
	tbl := output.NewTable("Tipo", "Descrição", "Alcance→Clique", "Clique→Lead", "Lead→Venda")
	for _, r := range rows {
		tbl.AddRow(
			string(r.BusinessType),
			r.Description,
			output.Percent(r.ConversionRates.ReachToClick, 1),
			output.Percent(r.ConversionRates.ClickToLead, 1),
			output.Percent(r.ConversionRates.LeadToSale, 1),
		)
	}
	fmt.Fprint(w, indent(tbl.Render()))
	fmt.Fprintln(w)
	return nil
}
