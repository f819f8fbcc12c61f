package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/blackwell-systems/funnelplan/internal/analyzer"
	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
	"github.com/blackwell-systems/funnelplan/internal/output"
	"github.com/blackwell-systems/funnelplan/internal/wizard"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var (
	wizardClient string
	wizardReset  bool
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Run the guided six-step diagnostic for a client",
	Long: `Walk through the diagnostic one step at a time: financial data,
benchmark, history, investment, validation and results. Every answer is
written to the client's draft, so an interrupted session resumes where it
stopped. Live metrics appear from the investment step on; the results step
saves the diagnostic to the database.

At each field press Enter to keep the value in brackets. Between steps:
  n  next      p  previous (closes on the first step)
  r  reset     s  save (results step)      q  quit`,
	RunE: runWizard,
}

func init() {
	wizardCmd.Flags().StringVar(&wizardClient, "client", "", "Client ID (required)")
	wizardCmd.Flags().BoolVar(&wizardReset, "reset", false, "Discard the stored draft and start over")
	_ = wizardCmd.MarkFlagRequired("client")
	rootCmd.AddCommand(wizardCmd)
}

func runWizard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

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

	sess := newSession(cmd.InOrStdin(), out)
	sess.wz = wizard.New(ctx, wizardClient, drafts,
		wizard.WithLogger(logger),
		wizard.OnClose(sess.close),
		wizard.OnSave(func(ctx context.Context, clientID string, s diagnostic.Snapshot, m diagnostic.Metrics) error {
			d, err := db.SaveDiagnostic(ctx, clientID, s, m)
			if err != nil {
				return fmt.Errorf("saving diagnostic: %w", err)
			}
			fmt.Fprintf(out, " %s %s\n", output.StyleSuccess.Render("Diagnóstico salvo:"), d.ID)
			return nil
		}),
	)

	if wizardReset {
		if err := sess.wz.Reset(ctx); err != nil {
			return err
		}
	}
	return sess.run(ctx)
}

// session drives a wizard from a line-oriented terminal.
type session struct {
	wz     *wizard.Wizard
	in     *bufio.Scanner
	out    io.Writer
	closed bool
}

func newSession(in io.Reader, out io.Writer) *session {
	return &session{in: bufio.NewScanner(in), out: out}
}

func (s *session) close() { s.closed = true }

// prompt prints label and reads one trimmed line. ok is false at end of input.
func (s *session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// run loops until the user quits, closes, saves or input ends. The draft
// is kept in every case except reset.
func (s *session) run(ctx context.Context) error {
	for !s.closed {
		step := s.wz.Step()
		fmt.Fprintln(s.out, output.Section(fmt.Sprintf("Etapa %d/%d: %s", int(step)+1, wizard.StepCount, step.Label())))

		if step == wizard.StepResults {
			renderReport(s.out, "Resultados", analyzer.BuildReport(s.wz.Snapshot()), "")
		} else {
			if err := s.editStep(ctx, step); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
			if s.wz.ShowsMetrics() {
				fmt.Fprintln(s.out)
				m := s.wz.Metrics()
				renderFunnel(s.out, m.Funnel)
				fmt.Fprintln(s.out)
				renderRecommendations(s.out, m.Recommendations)
			}
		}

		action, ok := s.prompt(actionPrompt(step))
		if !ok {
			return nil
		}
		if action == "" {
			action = "n"
			if step == wizard.StepResults {
				action = "s"
			}
		}

		var err error
		switch strings.ToLower(action) {
		case "n":
			err = s.wz.Next(ctx)
		case "p":
			err = s.wz.Previous(ctx)
		case "r":
			err = s.wz.Reset(ctx)
		case "s":
			_, err = s.wz.Save(ctx)
			if err == nil {
				return nil
			}
			if errors.Is(err, wizard.ErrNotAtResults) {
				fmt.Fprintf(s.out, " %s\n", output.StyleWarning.Render("Salve na etapa de resultados."))
				continue
			}
			return err
		case "q":
			return nil
		default:
			fmt.Fprintf(s.out, " %s\n", output.StyleWarning.Render("Opção desconhecida: "+action))
			continue
		}
		if err != nil {
			logger.Warn().Err(err).Msg("draft not updated")
			fmt.Fprintf(s.out, " %s %v\n", output.StyleWarning.Render("Rascunho não atualizado:"), err)
		}
	}
	return nil
}

func actionPrompt(step wizard.Step) string {
	switch step {
	case wizard.StepFinancial:
		return "\n [n]próximo [p]fechar [r]reiniciar [q]sair > "
	case wizard.StepResults:
		return "\n [s]salvar [p]voltar [r]reiniciar [q]sair > "
	default:
		return "\n [n]próximo [p]voltar [r]reiniciar [q]sair > "
	}
}

// field is one numeric input of a step.
type field struct {
	label   string
	integer bool
	get     func(*diagnostic.Snapshot) float64
	set     func(*diagnostic.Snapshot, float64)
}

func intField(label string, ptr func(*diagnostic.Snapshot) *int) field {
	return field{
		label:   label,
		integer: true,
		get:     func(s *diagnostic.Snapshot) float64 { return float64(*ptr(s)) },
		set:     func(s *diagnostic.Snapshot, v float64) { *ptr(s) = toCount(v) },
	}
}

// toCount truncates v to a whole number in [0, MaxInt32].
func toCount(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(v))
}

func floatField(label string, ptr func(*diagnostic.Snapshot) *float64) field {
	return field{
		label: label,
		get:   func(s *diagnostic.Snapshot) float64 { return *ptr(s) },
		set:   func(s *diagnostic.Snapshot, v float64) { *ptr(s) = v },
	}
}

func stepFields(step wizard.Step) []field {
	switch step {
	case wizard.StepFinancial:
		return []field{
			floatField("Ticket médio (R$)", func(s *diagnostic.Snapshot) *float64 { return &s.Financial.AverageTicket }),
			floatField("Margem de lucro (%)", func(s *diagnostic.Snapshot) *float64 { return &s.Financial.ProfitMargin }),
			intField("Vendas mensais atuais", func(s *diagnostic.Snapshot) *int { return &s.Financial.CurrentMonthlySales }),
			intField("Meta de vendas mensais", func(s *diagnostic.Snapshot) *int { return &s.Financial.MonthlyGoal }),
		}
	case wizard.StepBenchmark:
		return []field{
			floatField("Alcance → clique (%)", func(s *diagnostic.Snapshot) *float64 { return &s.Benchmark.ConversionRates.ReachToClick }),
			floatField("Clique → lead (%)", func(s *diagnostic.Snapshot) *float64 { return &s.Benchmark.ConversionRates.ClickToLead }),
			floatField("Lead → venda (%)", func(s *diagnostic.Snapshot) *float64 { return &s.Benchmark.ConversionRates.LeadToSale }),
		}
	case wizard.StepHistory:
		return []field{
			floatField("Leads por mês", func(s *diagnostic.Snapshot) *float64 { return &s.History.AverageLeadsPerMonth }),
			floatField("Conversão média (%)", func(s *diagnostic.Snapshot) *float64 { return &s.History.AverageConversionRate }),
			floatField("CAC médio (R$)", func(s *diagnostic.Snapshot) *float64 { return &s.History.AverageCAC }),
		}
	case wizard.StepInvestment:
		return []field{
			floatField("Orçamento disponível (R$)", func(s *diagnostic.Snapshot) *float64 { return &s.Investment.AvailableBudget }),
			floatField("Investimento atual (R$)", func(s *diagnostic.Snapshot) *float64 { return &s.Investment.CurrentInvestment }),
			floatField("CAC máximo aceitável (R$)", func(s *diagnostic.Snapshot) *float64 { return &s.Investment.MaxAcceptableCAC }),
		}
	case wizard.StepValidation:
		return []field{
			intField("Duração do teste (dias)", func(s *diagnostic.Snapshot) *int { return &s.Validation.TestDuration }),
			floatField("Orçamento do teste (R$)", func(s *diagnostic.Snapshot) *float64 { return &s.Validation.TestBudget }),
			intField("Leads mínimos", func(s *diagnostic.Snapshot) *int { return &s.Validation.MinimumLeads }),
		}
	default:
		return nil
	}
}

// editStep prompts for every field of step and writes the result through
// the wizard. At end of input it keeps what was entered and returns io.EOF.
func (s *session) editStep(ctx context.Context, step wizard.Step) error {
	if step == wizard.StepBenchmark {
		if err := s.editBusinessType(ctx); err != nil {
			return err
		}
	}

	snap := s.wz.Snapshot()
	var eof bool

	if step == wizard.StepHistory {
		current := "n"
		if snap.History.HasHistory {
			current = "s"
		}
		answer, ok := s.prompt(fmt.Sprintf("  Possui histórico? (s/n) [%s]: ", current))
		if !ok {
			return io.EOF
		}
		if answer != "" {
			snap.History.HasHistory = strings.HasPrefix(strings.ToLower(answer), "s")
		}
		if !snap.History.HasHistory {
			return s.apply(ctx, snap, false)
		}
	}

	for _, f := range stepFields(step) {
		v, ok := s.readNumber(f, &snap)
		if !ok {
			eof = true
			break
		}
		f.set(&snap, v)
	}
	return s.apply(ctx, snap, eof)
}

func (s *session) apply(ctx context.Context, snap diagnostic.Snapshot, eof bool) error {
	if err := s.wz.Update(ctx, snap); err != nil {
		logger.Warn().Err(err).Msg("draft not updated")
		fmt.Fprintf(s.out, " %s %v\n", output.StyleWarning.Render("Rascunho não atualizado:"), err)
	}
	if eof {
		return io.EOF
	}
	return nil
}

func (s *session) editBusinessType(ctx context.Context) error {
	current := s.wz.Snapshot().Benchmark.BusinessType
	for {
		answer, ok := s.prompt(fmt.Sprintf("  Tipo de negócio (B2C/B2B) [%s]: ", current))
		if !ok {
			return io.EOF
		}
		if answer == "" {
			return nil
		}
		bt := diagnostic.BusinessType(strings.ToUpper(answer))
		if !bt.Valid() {
			fmt.Fprintf(s.out, "  %s\n", output.StyleWarning.Render("Use B2C ou B2B."))
			continue
		}
		if bt == current {
			return nil
		}
		if err := s.wz.SetBusinessType(ctx, bt); err != nil {
			logger.Warn().Err(err).Msg("draft not updated")
		}
		fmt.Fprintf(s.out, "  %s\n", output.StyleMuted.Render("Taxas redefinidas para o benchmark "+string(bt)+"."))
		return nil
	}
}

// readNumber prompts for f until a valid non-negative number or an empty
// line (keep current) is entered.
func (s *session) readNumber(f field, snap *diagnostic.Snapshot) (float64, bool) {
	current := f.get(snap)
	for {
		answer, ok := s.prompt(fmt.Sprintf("  %s [%s]: ", f.label, strconv.FormatFloat(current, 'f', -1, 64)))
		if !ok {
			return 0, false
		}
		if answer == "" {
			return current, true
		}
		v, err := parseNumber(answer)
		if err != nil || v < 0 {
			fmt.Fprintf(s.out, "  %s\n", output.StyleWarning.Render("Valor inválido: "+answer))
			continue
		}
		if f.integer {
			v = math.Floor(v)
		}
		return v, true
	}
}

// parseNumber accepts "1234.5" and the Brazilian "1.234,5".
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return cast.ToFloat64E(s)
}
