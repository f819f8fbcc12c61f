package app

import (
	"context"
	"fmt"
	"os"

	"github.com/blackwell-systems/funnelplan/internal/analyzer"
	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	calcMinSeverity string
	calcFailOn      string
)

var calcCmd = &cobra.Command{
	Use:   "calc FILE...",
	Short: "Compute funnel metrics for snapshot files",
	Long: `Read one or more diagnostic snapshots (JSON or YAML, by extension) and
print the funnel targets, budget coverage, test plan and recommendations for
each. Files are evaluated concurrently; output keeps the argument order.

Use --fail-on to exit non-zero when any recommendation reaches a severity,
for example in CI checks of a client's plan.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVar(&calcMinSeverity, "min-severity", "", "Hide recommendations below this severity (success, warning, error)")
	calcCmd.Flags().StringVar(&calcFailOn, "fail-on", "", "Exit with an error when a recommendation reaches this severity")
	rootCmd.AddCommand(calcCmd)
}

// calcResult is the outcome for one snapshot file.
type calcResult struct {
	File   string          `json:"file"`
	Report analyzer.Report `json:"report"`
}

func runCalc(cmd *cobra.Command, args []string) error {
	minSeverity, err := parseSeverity(calcMinSeverity)
	if err != nil {
		return err
	}
	failOn, err := parseSeverity(calcFailOn)
	if err != nil {
		return err
	}

	results, err := calcFiles(cmd.Context(), args, appConfig.Calc.Workers)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		if err := writeJSON(w, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			renderReport(w, r.File, r.Report, minSeverity)
		}
	}

	if failOn != "" {
		for _, r := range results {
			if r.Report.Summary.Worst.Rank() >= failOn.Rank() {
				return fmt.Errorf("%s: recommendation at or above %s", r.File, failOn)
			}
		}
	}
	return nil
}

// calcFiles reads and evaluates each file with at most workers in flight.
// Results are returned in input order; the first failure cancels the rest.
func calcFiles(ctx context.Context, paths []string, workers int) ([]calcResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]calcResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			snap, err := diagnostic.Parse(data, diagnostic.FormatFromPath(path))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = calcResult{File: path, Report: analyzer.BuildReport(snap)}
			logger.Debug().Str("file", path).Int("recommendations", len(results[i].Report.Metrics.Recommendations)).Msg("calculated")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// parseSeverity validates a severity flag value. Empty is allowed.
func parseSeverity(s string) (diagnostic.Severity, error) {
	sev := diagnostic.Severity(s)
	if s != "" && sev.Rank() == 0 {
		return "", fmt.Errorf("unknown severity %q (want success, warning or error)", s)
	}
	return sev, nil
}
