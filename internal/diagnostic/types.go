// Package diagnostic defines the diagnostic snapshot entered by an agency for
// a client, the derived funnel metrics and the benchmark conversion presets.
package diagnostic

// BusinessType is the client's sales model.
type BusinessType string

// Supported business types.
const (
	B2B BusinessType = "B2B"
	B2C BusinessType = "B2C"
)

// Valid reports whether t is one of the supported business types.
func (t BusinessType) Valid() bool {
	return t == B2B || t == B2C
}

// Snapshot is the complete set of business inputs driving a calculation.
// It is a plain value: callers replace it as a whole rather than mutating
// fields shared with other owners.
type Snapshot struct {
	Financial  Financial  `json:"financial" yaml:"financial"`
	Benchmark  Benchmark  `json:"benchmark" yaml:"benchmark"`
	History    History    `json:"history" yaml:"history"`
	Investment Investment `json:"investment" yaml:"investment"`
	Validation Validation `json:"validation" yaml:"validation"`
}

// Financial holds the per-sale economics and the monthly sales goal.
type Financial struct {
	// AverageTicket is the mean revenue per sale.
	AverageTicket float64 `json:"averageTicket" yaml:"averageTicket"`

	// ProfitMargin is the profit per sale as a percentage (0-100).
	ProfitMargin float64 `json:"profitMargin" yaml:"profitMargin"`

	// CurrentMonthlySales is the number of sales closed last month.
	CurrentMonthlySales int `json:"currentMonthlySales" yaml:"currentMonthlySales"`

	// MonthlyGoal is the number of sales the client wants per month.
	MonthlyGoal int `json:"monthlyGoal" yaml:"monthlyGoal"`
}

// Benchmark holds the business model and the funnel conversion rates in use.
type Benchmark struct {
	BusinessType    BusinessType    `json:"businessType" yaml:"businessType"`
	ConversionRates ConversionRates `json:"conversionRates" yaml:"conversionRates"`
}

// ConversionRates are stage-to-stage funnel conversion percentages.
type ConversionRates struct {
	ReachToClick float64 `json:"reachToClick" yaml:"reachToClick"`
	ClickToLead  float64 `json:"clickToLead" yaml:"clickToLead"`
	LeadToSale   float64 `json:"leadToSale" yaml:"leadToSale"`
}

// History holds campaign results from previous months, when available.
type History struct {
	HasHistory            bool    `json:"hasHistory" yaml:"hasHistory"`
	AverageLeadsPerMonth  float64 `json:"averageLeadsPerMonth" yaml:"averageLeadsPerMonth"`
	AverageConversionRate float64 `json:"averageConversionRate" yaml:"averageConversionRate"`
	AverageCAC            float64 `json:"averageCAC" yaml:"averageCAC"`
}

// Investment holds the marketing budget figures.
type Investment struct {
	AvailableBudget   float64 `json:"availableBudget" yaml:"availableBudget"`
	CurrentInvestment float64 `json:"currentInvestment" yaml:"currentInvestment"`
	MaxAcceptableCAC  float64 `json:"maxAcceptableCAC" yaml:"maxAcceptableCAC"`
}

// Validation describes the initial test campaign used to validate rates.
type Validation struct {
	TestDuration int     `json:"testDuration" yaml:"testDuration"`
	TestBudget   float64 `json:"testBudget" yaml:"testBudget"`
	MinimumLeads int     `json:"minimumLeads" yaml:"minimumLeads"`
}

// Funnel is the set of targets derived from a snapshot, before
// recommendations are attached.
type Funnel struct {
	MaxCAC           float64 `json:"maxCAC"`
	RequiredSales    int     `json:"requiredSales"`
	RequiredLeads    int     `json:"requiredLeads"`
	RequiredClicks   int     `json:"requiredClicks"`
	RequiredReach    int     `json:"requiredReach"`
	ViableInvestment float64 `json:"viableInvestment"`
}

// Metrics is the full calculation result for a snapshot.
type Metrics struct {
	Funnel
	Recommendations []Recommendation `json:"recommendations"`
}

// Severity classifies a recommendation.
type Severity string

// Recommendation severities, from best to worst.
const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Rank orders severities so that a higher rank is worse.
func (s Severity) Rank() int {
	switch s {
	case SeveritySuccess:
		return 1
	case SeverityWarning:
		return 2
	case SeverityError:
		return 3
	default:
		return 0
	}
}

// Recommendation is a single advisory produced by the rule set.
type Recommendation struct {
	Type        Severity `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}
