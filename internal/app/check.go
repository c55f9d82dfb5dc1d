package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoharazr/code-quality-mcp/internal/analyzer"
	"github.com/zoharazr/code-quality-mcp/internal/config"
	"github.com/zoharazr/code-quality-mcp/internal/deep"
	"github.com/zoharazr/code-quality-mcp/internal/output"
	"github.com/zoharazr/code-quality-mcp/internal/quality"
	"github.com/zoharazr/code-quality-mcp/internal/store"
)

var (
	checkTypes      []string
	checkDeep       bool
	checkAI         bool
	checkUnused     bool
	checkComplexity bool
	checkSecurity   bool
	checkLimit      int
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Run a full quality analysis and show the report",
	Long: `Check runs the complete analysis over a project: framework detection,
structural layout checks, and lexical checks across the collected sources.
The findings reduce to a 0-100 score, and the report is stored as the
project's snapshot so later runs can show trends.

Examples:
  codequality check                      # analyze the current directory
  codequality check ~/work/shop-api      # analyze another project
  codequality check --type react         # skip detection, force a type
  codequality check --deep               # include sub-project discovery
  codequality check --deep --ai          # add AI review of the largest files`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringSliceVar(&checkTypes, "type", nil, "Project type override (can be repeated; skips detection)")
	checkCmd.Flags().BoolVar(&checkDeep, "deep", false, "Discover and analyze nested sub-projects")
	checkCmd.Flags().BoolVar(&checkAI, "ai", false, "AI review of the largest files (needs ANTHROPIC_API_KEY, implies --deep)")
	checkCmd.Flags().BoolVar(&checkUnused, "unused", true, "Check for unused variables and exports")
	checkCmd.Flags().BoolVar(&checkComplexity, "complexity", true, "Check size and complexity limits")
	checkCmd.Flags().BoolVar(&checkSecurity, "security", true, "Check for hardcoded secrets")
	checkCmd.Flags().IntVar(&checkLimit, "limit", 25, "Maximum issues to print (0 = all)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path, err := projectPathArg(args)
	if err != nil {
		return err
	}

	opts := analyzer.Options{
		Path:            path,
		Types:           checkTypes,
		Deep:            checkDeep || checkAI,
		AI:              checkAI,
		CheckUnused:     checkUnused,
		CheckComplexity: checkComplexity,
		CheckSecurity:   checkSecurity,
	}

	report, err := newAnalyzer(cfg, checkAI).Run(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("analysis: %w", err)
	}

	// Persist the snapshot so trends and quick wins have a baseline. A
	// store failure downgrades to a notice; the report still prints.
	if err := saveSnapshot(cfg, report); err != nil && flagVerbose {
		fmt.Fprintln(os.Stderr, "warning: could not save snapshot:", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	renderReport(report)
	return nil
}

// newAnalyzer builds an Analyzer, attaching the Claude oracle when AI
// review is requested and a key is available.
func newAnalyzer(cfg *config.Config, wantAI bool) *analyzer.Analyzer {
	var oracle deep.Oracle
	if wantAI {
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			oracle = deep.NewClaudeOracle(key, cfg.AI.Model)
		} else if flagVerbose {
			fmt.Fprintln(os.Stderr, "warning: ANTHROPIC_API_KEY not set, AI review skipped")
		}
	}
	return analyzer.New(cfg, oracle)
}

// saveSnapshot opens the store, writes the report, and closes again.
func saveSnapshot(cfg *config.Config, report *quality.QualityReport) error {
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return db.SaveSnapshot(report)
}

func renderReport(report *quality.QualityReport) {
	fmt.Println(output.Section("Quality Report"))
	fmt.Println()

	scoreStyle := output.ScoreStyle(report.Score)
	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render("Score:"),
		scoreStyle.Render(fmt.Sprintf("%d/100", report.Score)),
		output.ScoreBar(float64(report.Score), 20))

	types := strings.Join(report.ProjectTypes, ", ")
	if types == "" {
		types = "unknown"
	}
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Project types:"),
		output.StyleBold.Render(types))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Files analyzed:"),
		output.StyleBold.Render(fmt.Sprintf("%d (%d lines)", report.Stats.TotalFiles, report.Stats.TotalLines)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Analysis type:"),
		output.StyleBold.Render(report.AnalysisType))

	bySeverity := quality.CountBySeverity(report.Issues)
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Issues:"),
		output.StyleBold.Render(fmt.Sprintf("%d (%d errors, %d warnings, %d info)",
			len(report.Issues),
			bySeverity[quality.SeverityError],
			bySeverity[quality.SeverityWarning],
			bySeverity[quality.SeverityInfo])))

	if len(report.Issues) > 0 {
		fmt.Println()
		fmt.Println(output.Section("Issues"))
		fmt.Println()
		renderIssueTable(report.Issues, checkLimit)
	}

	if len(report.Recommendations) > 0 {
		fmt.Println()
		fmt.Println(output.Section("Recommendations"))
		fmt.Println()
		for _, rec := range report.Recommendations {
			fmt.Printf("  %s %s\n", output.StyleMuted.Render("-"), rec)
		}
	}

	if len(report.AIInsights) > 0 {
		fmt.Println()
		fmt.Println(output.Section("AI Insights"))
		fmt.Println()
		for _, insight := range report.AIInsights {
			fmt.Printf("  %s %s\n", output.StyleMuted.Render("-"), insight)
		}
	}
	fmt.Println()
}

// renderIssueTable prints up to limit issues; 0 means no limit.
func renderIssueTable(issues []quality.Issue, limit int) {
	shown := issues
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	tbl := output.NewTable("Severity", "Location", "Rule", "Message")
	for _, iss := range shown {
		location := iss.File
		if location == "" {
			location = "(project)"
		} else if iss.Line > 0 {
			location = fmt.Sprintf("%s:%d", iss.File, iss.Line)
		}
		severity := output.SeverityStyle(string(iss.Severity)).Render(string(iss.Severity))
		tbl.AddRow(severity, location, iss.Rule, iss.Message)
	}
	tbl.Print()

	if len(shown) < len(issues) {
		fmt.Println(output.StyleMuted.Render(
			fmt.Sprintf("\n showing %d of %d issues (use --limit 0 for all)", len(shown), len(issues))))
	}
}
