package wizard

import "fmt"

// Step is a position in the wizard.
type Step int

// Wizard steps, in order.
const (
	StepFinancial Step = iota
	StepBenchmark
	StepHistory
	StepInvestment
	StepValidation
	StepResults
)

// StepCount is the number of wizard steps.
const StepCount = int(StepResults) + 1

var stepLabels = [StepCount]string{
	"Financeiro",
	"Benchmark",
	"Histórico",
	"Investimento",
	"Validação",
	"Resultados",
}

// Steps returns every step in order.
func Steps() []Step {
	steps := make([]Step, StepCount)
	for i := range steps {
		steps[i] = Step(i)
	}
	return steps
}

// Valid reports whether s is one of the wizard steps.
func (s Step) Valid() bool {
	return s >= StepFinancial && s <= StepResults
}

// Label returns the display label of the step.
func (s Step) Label() string {
	if !s.Valid() {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepLabels[s]
}

func (s Step) String() string {
	return s.Label()
}

// ShowsMetrics reports whether live metrics are displayed on this step.
func (s Step) ShowsMetrics() bool {
	return s >= StepInvestment
}
