// Package app contains the Cobra command tree for funnelplan.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/blackwell-systems/funnelplan/internal/config"
	"github.com/blackwell-systems/funnelplan/internal/output"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

// appConfig and logger are set up before any subcommand runs.
var (
	appConfig *config.Config
	logger    = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "funnelplan",
	Short: "Marketing funnel diagnostics for sales goals",
	Long: `funnelplan works backwards from a monthly sales goal to the reach,
clicks and leads a campaign needs, the highest customer acquisition cost the
margin allows, and the investment that goal implies. It compares the result
with the client's history and budget and lists what needs attention.

Run 'funnelplan wizard --client ID' for a guided diagnostic, or
'funnelplan calc FILE' to evaluate snapshot files directly.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "funnelplan", appVersion)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Use a subcommand:")
		fmt.Fprintln(w, "  wizard      Guided six-step diagnostic with draft resume")
		fmt.Fprintln(w, "  calc        Compute metrics for snapshot files")
		fmt.Fprintln(w, "  benchmarks  Show the conversion benchmarks per business type")
		fmt.Fprintln(w, "  history     List and inspect saved diagnostics")
		fmt.Fprintln(w, "  draft       Inspect or discard a wizard draft")
		fmt.Fprintln(w, "  mcp         Serve the engine over MCP stdio")
		fmt.Fprintln(w, "  doctor      Check configuration and storage")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/funnelplan/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}

// setup loads configuration and prepares logging and color output.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	appConfig = cfg

	logger = newLogger(os.Stderr, cfg.Log.Level, flagVerbose)

	if flagNoColor || !output.ColorAllowed(os.Stdout, cfg.Output.Color) {
		output.SetNoColor(true)
	}
	output.SetWidth(cfg.Output.Width)

	logger.Debug().
		Str("command", cmd.Name()).
		Str("draft_backend", cfg.Draft.Backend).
		Str("db", cfg.DBPath).
		Msg("configuration loaded")
	return nil
}
