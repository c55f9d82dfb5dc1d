package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoharazr/code-quality-mcp/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP stdio server for AI agents",
	Long: `Start a Model Context Protocol stdio server that AI coding agents can
query during a session. The server exposes six tools:

  analyze_project      Detect project types, variants, and sub-projects
  check_quality        Full analysis with a paginated issue list
  get_recommendations  Guidance plus the worst issues
  get_smart_summary    Score, fix time, categories, hotspots
  get_quick_wins       High-leverage fixes ranked by gain per effort
  get_trends           Score movement vs the stored snapshot

Add to your agent's MCP configuration:
  {"mcpServers":{"codequality":{"command":"codequality","args":["serve"]}}}`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srv, err := mcp.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer func() { _ = srv.Close() }()

	return srv.ServeStdio()
}
