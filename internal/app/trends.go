package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoharazr/code-quality-mcp/internal/output"
	"github.com/zoharazr/code-quality-mcp/internal/store"
	"github.com/zoharazr/code-quality-mcp/internal/trend"
)

var trendsCmd = &cobra.Command{
	Use:   "trends [path]",
	Short: "Compare the current score against the last snapshot",
	Long: `Trends runs a standard analysis and diffs the result against the
project's stored snapshot: score movement, issue-count movement, and which
categories improved or degraded. The new report then replaces the snapshot,
so each run measures progress since the previous one.

The first run for a path has no baseline and shows only current figures.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrends,
}

func init() {
	rootCmd.AddCommand(trendsCmd)
}

func runTrends(cmd *cobra.Command, args []string) error {
	cfg, report, err := runStandardAnalysis(cmd, args)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	defer func() { _ = db.Close() }()

	previous, err := db.LatestReport(report.ProjectPath)
	if err != nil {
		return fmt.Errorf("loading previous snapshot: %w", err)
	}

	t := trend.Compute(previous, report)

	if err := db.SaveSnapshot(report); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	}

	renderTrend(t)
	return nil
}

func renderTrend(t trend.Trend) {
	fmt.Println(output.Section("Trends"))
	fmt.Println()

	if t.PreviousScore == nil {
		fmt.Printf(" %s %s %s\n",
			output.StyleLabel.Render("Score:"),
			output.ScoreStyle(t.CurrentScore).Render(fmt.Sprintf("%d/100", t.CurrentScore)),
			output.ScoreBar(float64(t.CurrentScore), 20))
		fmt.Println()
		fmt.Println(output.StyleMuted.Render(" First analysis of this project. Run again after changes to see movement."))
		fmt.Println()
		return
	}

	arrow := output.TrendArrow(float64(*t.ScoreChange), true)
	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render("Score:"),
		output.ScoreStyle(t.CurrentScore).Render(fmt.Sprintf("%d/100", t.CurrentScore)),
		arrow)
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Previous score:"),
		output.StyleBold.Render(fmt.Sprintf("%d/100", *t.PreviousScore)))

	issueChange := "no change"
	switch {
	case *t.IssueChange < 0:
		issueChange = fmt.Sprintf("%d fewer", -*t.IssueChange)
	case *t.IssueChange > 0:
		issueChange = fmt.Sprintf("%d more", *t.IssueChange)
	}
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Issues:"),
		output.StyleBold.Render(issueChange))

	if len(t.ImprovingAreas) > 0 {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Improving:"),
			output.StyleSuccess.Render(strings.Join(t.ImprovingAreas, ", ")))
	}
	if len(t.DegradingAreas) > 0 {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Degrading:"),
			output.StyleError.Render(strings.Join(t.DegradingAreas, ", ")))
	}
	fmt.Println()
}
