package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
	"github.com/blackwell-systems/funnelplan/internal/draft"
	"github.com/blackwell-systems/funnelplan/internal/output"
	"github.com/blackwell-systems/funnelplan/internal/wizard"
	"github.com/spf13/cobra"
)

var draftClient string

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Inspect or discard a client's wizard draft",
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored draft and step for a client",
	RunE:  runDraftShow,
}

var draftClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored draft and step for a client",
	RunE:  runDraftClear,
}

var draftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients with a stored draft (sqlite backend)",
	RunE:  runDraftList,
}

func init() {
	for _, c := range []*cobra.Command{draftShowCmd, draftClearCmd} {
		c.Flags().StringVar(&draftClient, "client", "", "Client ID (required)")
		_ = c.MarkFlagRequired("client")
		draftCmd.AddCommand(c)
	}
	draftCmd.AddCommand(draftListCmd)
	rootCmd.AddCommand(draftCmd)
}

// withDrafts opens the configured draft backend for the duration of fn.
func withDrafts(ctx context.Context, fn func(draft.Store) error) error {
	db, err := openDB(appConfig)
	if err != nil {
		return err
	}
	defer db.Close()

	drafts, closeDrafts, err := openDraftStore(ctx, appConfig, db)
	if err != nil {
		return err
	}
	defer closeDrafts()
	return fn(drafts)
}

// draftView is the JSON shape of a stored draft.
type draftView struct {
	ClientID string              `json:"client_id"`
	Step     string              `json:"step,omitempty"`
	Snapshot diagnostic.Snapshot `json:"snapshot"`
}

func runDraftShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()
	return withDrafts(ctx, func(store draft.Store) error {
		raw, ok, err := store.Get(ctx, draft.Key(draftClient))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(w, " %s\n", output.StyleMuted.Render("No draft for client "+draftClient))
			return nil
		}
		snap, err := diagnostic.Parse([]byte(raw), diagnostic.FormatJSON)
		if err != nil {
			return fmt.Errorf("draft for %s: %w", draftClient, err)
		}

		view := draftView{ClientID: draftClient, Snapshot: snap}
		if rawStep, ok, err := store.Get(ctx, draft.StepKey(draftClient)); err == nil && ok {
			if n, err := strconv.Atoi(rawStep); err == nil && wizard.Step(n).Valid() {
				view.Step = wizard.Step(n).Label()
			}
		}

		if flagJSON {
			return writeJSON(w, view)
		}
		fmt.Fprintln(w, output.Section("Rascunho: "+draftClient))
		fmt.Fprintln(w)
		if view.Step != "" {
			renderMetric(w, "Etapa", view.Step)
		}
		renderMetric(w, "Tipo de negócio", string(snap.Benchmark.BusinessType))
		renderMetric(w, "Ticket médio", output.Currency(snap.Financial.AverageTicket))
		renderMetric(w, "Meta mensal", output.Number(snap.Financial.MonthlyGoal))
		renderMetric(w, "Orçamento", output.Currency(snap.Investment.AvailableBudget))
		fmt.Fprintln(w)
		return nil
	})
}

func runDraftClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withDrafts(ctx, func(store draft.Store) error {
		if err := store.Clear(ctx, draft.Key(draftClient)); err != nil {
			return err
		}
		if err := store.Clear(ctx, draft.StepKey(draftClient)); err != nil {
			return err
		}
		logger.Info().Str("client", draftClient).Msg("draft cleared")
		fmt.Fprintf(cmd.OutOrStdout(), " %s\n", output.StyleSuccess.Render("Draft cleared for "+draftClient))
		return nil
	})
}

// keyLister is implemented by draft stores that can enumerate keys.
type keyLister interface {
	Keys(ctx context.Context) ([]string, error)
}

func runDraftList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()
	return withDrafts(ctx, func(store draft.Store) error {
		lister, ok := store.(keyLister)
		if !ok {
			return fmt.Errorf("draft backend %q cannot list drafts", appConfig.Draft.Backend)
		}
		keys, err := lister.Keys(ctx)
		if err != nil {
			return err
		}
		clients := draft.ClientIDs(keys)
		if flagJSON {
			return writeJSON(w, clients)
		}
		for _, c := range clients {
			fmt.Fprintln(w, c)
		}
		return nil
	})
}
