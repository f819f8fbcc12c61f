package app

import (
	"github.com/blackwell-systems/funnelplan/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server exposing the diagnostic engine",
	Long: `Start a Model Context Protocol stdio server. The server exposes three
tools:

  calculate_metrics  Funnel, recommendations and test plan for a snapshot
  get_benchmarks     Default conversion rates per business type
  list_diagnostics   Saved diagnostics, optionally for one client

Example MCP client configuration:
  {"mcpServers":{"funnelplan":{"command":"funnelplan","args":["mcp"]}}}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	db, err := openDB(appConfig)
	if err != nil {
		return err
	}
	defer db.Close()

	srv := mcp.NewServer(db, appVersion, logger)
	return srv.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}
