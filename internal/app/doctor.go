package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/funnelplan/internal/config"
	"github.com/blackwell-systems/funnelplan/internal/draft"
	"github.com/blackwell-systems/funnelplan/internal/output"
	"github.com/blackwell-systems/funnelplan/internal/store"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the funnelplan setup is healthy",
	Long: `Run a series of health checks against your funnelplan configuration,
database and draft backend. Prints a pass/fail line for each check and a
summary of how many checks passed.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	checks := runDoctorChecks(ctx, appConfig, flagConfig)

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, doctorOutput{
			Checks:      checks,
			PassedCount: passed,
			TotalCount:  len(checks),
		})
	}

	fmt.Fprintln(w, output.Section("Doctor"))
	fmt.Fprintln(w)

	for _, c := range checks {
		renderDoctorCheck(w, c)
	}

	fmt.Fprintln(w)
	summary := fmt.Sprintf("%d/%d checks passed", passed, len(checks))
	if passed == len(checks) {
		fmt.Fprintf(w, " %s\n\n", output.StyleSuccess.Render(summary))
	} else {
		fmt.Fprintf(w, " %s\n\n", output.StyleWarning.Render(summary))
	}
	return nil
}

// runDoctorChecks runs every check against cfg.
func runDoctorChecks(ctx context.Context, cfg *config.Config, cfgFile string) []doctorCheck {
	checks := []doctorCheck{checkConfigFile(cfgFile)}

	db, dbCheck := checkDatabase(cfg.DBPath)
	checks = append(checks, dbCheck)
	if db != nil {
		defer db.Close()
	}

	checks = append(checks, checkDraftBackend(ctx, cfg, db))
	return checks
}

// renderDoctorCheck prints a single check result line.
func renderDoctorCheck(w io.Writer, c doctorCheck) {
	var indicator string
	if c.Passed {
		indicator = output.StyleSuccess.Render("✓")
	} else {
		indicator = output.StyleWarning.Render("✗")
	}
	label := output.StyleBold.Render(c.Name)
	detail := output.StyleMuted.Render(c.Message)
	fmt.Fprintf(w, "  %s  %-30s %s\n", indicator, label, detail)
}

// checkConfigFile reports which config file is in effect. A missing default
// file passes because every key has a default.
func checkConfigFile(cfgFile string) doctorCheck {
	path := cfgFile
	if path == "" {
		path = filepath.Join(config.ConfigDir(), config.DefaultConfigFile)
	}
	if _, err := os.Stat(path); err != nil {
		if cfgFile != "" {
			return doctorCheck{Name: "Config file", Passed: false, Message: fmt.Sprintf("not found: %s", path)}
		}
		return doctorCheck{Name: "Config file", Passed: true, Message: "using defaults"}
	}
	return doctorCheck{Name: "Config file", Passed: true, Message: path}
}

// checkDatabase opens the database, which also applies migrations. The
// caller closes the returned DB.
func checkDatabase(dbPath string) (*store.DB, doctorCheck) {
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, doctorCheck{
			Name:    "SQLite database",
			Passed:  false,
			Message: fmt.Sprintf("cannot open %s: %v", dbPath, err),
		}
	}
	return db, doctorCheck{Name: "SQLite database", Passed: true, Message: dbPath}
}

// checkDraftBackend verifies the configured draft store round-trips a value.
func checkDraftBackend(ctx context.Context, cfg *config.Config, db *store.DB) doctorCheck {
	name := fmt.Sprintf("Draft backend (%s)", cfg.Draft.Backend)

	drafts, closeDrafts, err := openDraftStore(ctx, cfg, db)
	if err != nil {
		return doctorCheck{Name: name, Passed: false, Message: err.Error()}
	}
	defer closeDrafts()

	key := draft.Key("__doctor__")
	if err := drafts.Set(ctx, key, "{}"); err != nil {
		return doctorCheck{Name: name, Passed: false, Message: fmt.Sprintf("write failed: %v", err)}
	}
	if _, ok, err := drafts.Get(ctx, key); err != nil || !ok {
		return doctorCheck{Name: name, Passed: false, Message: "read back failed"}
	}
	if err := drafts.Clear(ctx, key); err != nil {
		return doctorCheck{Name: name, Passed: false, Message: fmt.Sprintf("clear failed: %v", err)}
	}

	msg := "read/write ok"
	if cfg.Draft.Backend == config.BackendRedis {
		msg = cfg.Draft.RedisAddr
	}
	return doctorCheck{Name: name, Passed: true, Message: msg}
}
