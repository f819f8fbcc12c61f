// Package suggest provides the recommendation engine and rule types.
package suggest

import "github.com/blackwell-systems/funnelplan/internal/diagnostic"

// Context provides all data needed by suggest rules to generate
// recommendations: the normalized snapshot and the funnel derived from it.
type Context struct {
	// Snapshot is the normalized diagnostic input.
	Snapshot diagnostic.Snapshot `json:"snapshot"`

	// Funnel holds the derived targets the rules compare against.
	Funnel diagnostic.Funnel `json:"funnel"`
}

// Rule is a function that examines the context and produces zero or more
// recommendations. Built-in rules produce at most one.
type Rule func(ctx *Context) []diagnostic.Recommendation
