package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blackwell-systems/funnelplan/internal/analyzer"
	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
	"github.com/blackwell-systems/funnelplan/internal/store"
)

// BenchmarkEntry is one business type preset.
type BenchmarkEntry struct {
	BusinessType    diagnostic.BusinessType    `json:"businessType"`
	Description     string                     `json:"description"`
	ConversionRates diagnostic.ConversionRates `json:"conversionRates"`
}

// BenchmarksResult lists the benchmark presets.
type BenchmarksResult struct {
	Benchmarks []BenchmarkEntry `json:"benchmarks"`
}

// DiagnosticsResult lists saved diagnostics.
type DiagnosticsResult struct {
	Diagnostics []store.DiagnosticSummary `json:"diagnostics"`
}

var (
	noArgsSchema     = json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false}`)
	calculateSchema  = json.RawMessage(`{"type":"object","properties":{"snapshot":{"type":"object","description":"Diagnostic snapshot with financial, benchmark, history, investment and validation sections"}},"required":["snapshot"]}`)
	diagnosticSchema = json.RawMessage(`{"type":"object","properties":{"client_id":{"type":"string","description":"Client to list (default all)"},"limit":{"type":"integer","description":"Maximum entries to return (default 10)"}},"additionalProperties":false}`)
)

// addTools registers all MCP tool handlers on s.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "calculate_metrics",
		Description: "Funnel requirements, recommendations, test plan and budget coverage for a diagnostic snapshot.",
		InputSchema: calculateSchema,
		Handler:     s.handleCalculateMetrics,
	})
	s.registerTool(toolDef{
		Name:        "get_benchmarks",
		Description: "Default conversion rates for each business type.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetBenchmarks,
	})
	s.registerTool(toolDef{
		Name:        "list_diagnostics",
		Description: "Saved diagnostics, newest first, optionally for one client.",
		InputSchema: diagnosticSchema,
		Handler:     s.handleListDiagnostics,
	})
}

// handleCalculateMetrics implements the calculate_metrics tool.
func (s *Server) handleCalculateMetrics(_ context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Snapshot json.RawMessage `json:"snapshot"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if len(params.Snapshot) == 0 {
		return nil, errors.New("snapshot is required")
	}

	snap, err := diagnostic.Parse(params.Snapshot, diagnostic.FormatJSON)
	if err != nil {
		return nil, err
	}
	return analyzer.BuildReport(snap), nil
}

// handleGetBenchmarks implements the get_benchmarks tool.
func (s *Server) handleGetBenchmarks(_ context.Context, _ json.RawMessage) (any, error) {
	types := diagnostic.BusinessTypes()
	result := BenchmarksResult{Benchmarks: make([]BenchmarkEntry, 0, len(types))}
	for _, bt := range types {
		result.Benchmarks = append(result.Benchmarks, BenchmarkEntry{
			BusinessType:    bt,
			Description:     bt.Describe(),
			ConversionRates: diagnostic.DefaultsFor(bt),
		})
	}
	return result, nil
}

// handleListDiagnostics implements the list_diagnostics tool.
func (s *Server) handleListDiagnostics(ctx context.Context, args json.RawMessage) (any, error) {
	if s.diagnostics == nil {
		return nil, errors.New("no diagnostics store configured")
	}

	var params struct {
		ClientID string `json:"client_id"`
		Limit    *int   `json:"limit"`
	}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}
	limit := 10
	if params.Limit != nil && *params.Limit > 0 {
		limit = *params.Limit
	}

	list, err := s.diagnostics.ListDiagnostics(ctx, params.ClientID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing diagnostics: %w", err)
	}
	if list == nil {
		list = []store.DiagnosticSummary{}
	}
	return DiagnosticsResult{Diagnostics: list}, nil
}
