// Package store provides SQLite database access for saved diagnostics and
// wizard drafts.
package store

import (
	"time"

	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
)

// Diagnostic is a saved diagnostic: the snapshot the user confirmed and the
// metrics computed from it at save time.
type Diagnostic struct {
	ID       string              `json:"id"`
	ClientID string              `json:"client_id"`
	SavedAt  time.Time           `json:"saved_at"`
	Snapshot diagnostic.Snapshot `json:"snapshot"`
	Metrics  diagnostic.Metrics  `json:"metrics"`
}

// DiagnosticSummary is the list view of a saved diagnostic.
type DiagnosticSummary struct {
	ID               string                  `json:"id"`
	ClientID         string                  `json:"client_id"`
	SavedAt          time.Time               `json:"saved_at"`
	BusinessType     diagnostic.BusinessType `json:"business_type"`
	MaxCAC           float64                 `json:"max_cac"`
	RequiredSales    int                     `json:"required_sales"`
	RequiredLeads    int                     `json:"required_leads"`
	ViableInvestment float64                 `json:"viable_investment"`
	Worst            diagnostic.Severity     `json:"worst,omitempty"`
}
