package app

import (
	"fmt"

	"github.com/blackwell-systems/funnelplan/internal/analyzer"
	"github.com/blackwell-systems/funnelplan/internal/output"
	"github.com/spf13/cobra"
)

var (
	historyClient string
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved diagnostics, newest first",
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print a saved diagnostic",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a saved diagnostic",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyCmd.Flags().StringVar(&historyClient, "client", "", "Only this client (default: all)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries (0 for all)")
	historyCmd.AddCommand(historyShowCmd, historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB(appConfig)
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := db.ListDiagnostics(cmd.Context(), historyClient, historyLimit)
	if err != nil {
		return fmt.Errorf("listing diagnostics: %w", err)
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, list)
	}
	if len(list) == 0 {
		fmt.Fprintf(w, " %s\n", output.StyleMuted.Render("No saved diagnostics."))
		return nil
	}

	fmt.Fprintln(w, output.Section("Diagnósticos"))
	fmt.Fprintln(w)
	tbl := output.NewTable("ID", "Cliente", "Data", "Tipo", "CAC máx.", "Leads", "Investimento", "").AlignRight(4, 5, 6)
	for _, d := range list {
		tbl.AddRow(
			d.ID[:8],
			d.ClientID,
			d.SavedAt.Local().Format("2006-01-02 15:04"),
			string(d.BusinessType),
			output.Currency(d.MaxCAC),
			output.Number(d.RequiredLeads),
			output.Currency(d.ViableInvestment),
			output.SeverityStyle(d.Worst).Render(output.SeverityIcon(d.Worst)),
		)
	}
	fmt.Fprint(w, indent(tbl.Render()))
	fmt.Fprintln(w)
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openDB(appConfig)
	if err != nil {
		return err
	}
	defer db.Close()

	d, err := db.GetDiagnostic(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("diagnostic %s not found", args[0])
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, d)
	}

	// Plan views are derived again; the funnel and recommendations are the
	// ones stored at save time.
	report := analyzer.BuildReport(d.Snapshot)
	report.Metrics = d.Metrics
	title := fmt.Sprintf("%s · %s", d.ClientID, d.SavedAt.Local().Format("2006-01-02 15:04"))
	renderReport(w, title, report, "")
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB(appConfig)
	if err != nil {
		return err
	}
	defer db.Close()

	deleted, err := db.DeleteDiagnostic(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("diagnostic %s not found", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), " %s\n", output.StyleSuccess.Render("Deleted "+args[0]))
	return nil
}
