// Package app contains the Cobra command tree for codequality.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zoharazr/code-quality-mcp/internal/analyzer"
	"github.com/zoharazr/code-quality-mcp/internal/config"
	"github.com/zoharazr/code-quality-mcp/internal/output"
	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "codequality",
	Short: "Code quality analysis for source trees",
	Long: `codequality analyzes a source tree, detects which frameworks it uses,
runs structural and lexical quality checks against per-framework rule sets,
and reduces the findings to a 0-100 score with actionable recommendations.
Snapshots persist between runs so trends and quick wins can be derived.

Run 'codequality check' in a project directory for a full report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("codequality", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  analyze    Detect project types, variants, and sub-projects")
		fmt.Println("  check      Run a full quality analysis and show the report")
		fmt.Println("  recommend  Show recommendations and the worst issues")
		fmt.Println("  summary    Condensed digest: score, fix time, hotspots")
		fmt.Println("  quickwins  High-leverage fixes ranked by gain per effort")
		fmt.Println("  trends     Compare the current score against the last snapshot")
		fmt.Println("  serve      Run the MCP stdio server for AI agents")
		fmt.Println("  call       Invoke an MCP tool directly from the shell")
		fmt.Println("  watch      Monitor a project and alert on score regressions")
		fmt.Println("  doctor     Check whether the codequality setup is healthy")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/codequality/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}

// loadConfig loads configuration and applies the output color policy from
// the flags, the config file, and TTY detection.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	output.InitColor(flagNoColor || !cfg.Output.Color)
	return cfg, nil
}

// projectPathArg resolves the optional positional project path argument,
// defaulting to the current directory.
func projectPathArg(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", path, err)
	}
	return abs, nil
}

// runStandardAnalysis performs the default full analysis used by the
// report-derived commands (recommend, summary, quickwins, trends).
func runStandardAnalysis(cmd *cobra.Command, args []string) (*config.Config, *quality.QualityReport, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	path, err := projectPathArg(args)
	if err != nil {
		return nil, nil, err
	}
	report, err := newAnalyzer(cfg, false).Run(cmd.Context(), analyzer.DefaultOptions(path))
	if err != nil {
		return nil, nil, fmt.Errorf("analysis: %w", err)
	}
	return cfg, report, nil
}
