package suggest

import "github.com/blackwell-systems/funnelplan/internal/diagnostic"

// Engine runs its rules against a Context in registration order and
// collects the resulting recommendations.
type Engine struct {
	rules []Rule
}

// NewEngine creates a new suggest engine with all built-in rules registered.
// The order is part of the output contract.
func NewEngine() *Engine {
	return &Engine{
		rules: []Rule{
			CACCheck,
			BudgetCheck,
			ConversionCheck,
			LeadVolumeCheck,
		},
	}
}

// Run executes all registered rules against the given context and returns
// the collected recommendations in rule order. It never returns nil.
func (e *Engine) Run(ctx *Context) []diagnostic.Recommendation {
	all := []diagnostic.Recommendation{}
	for _, rule := range e.rules {
		all = append(all, rule(ctx)...)
	}
	return all
}
