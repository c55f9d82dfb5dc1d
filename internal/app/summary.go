package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoharazr/code-quality-mcp/internal/output"
	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [path]",
	Short: "Condensed digest: score, fix time, hotspots",
	Long: `Summary runs a standard analysis and condenses the report into a short
digest: the score, issue counts, a severity-weighted fix-time estimate,
the top issue categories, and the files carrying the most issues.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	_, report, err := runStandardAnalysis(cmd, args)
	if err != nil {
		return err
	}

	digest := quality.Summarize(report)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(digest)
	}

	fmt.Println(output.Section("Summary"))
	fmt.Println()

	scoreStyle := output.ScoreStyle(digest.Score)
	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render("Score:"),
		scoreStyle.Render(fmt.Sprintf("%d/100", digest.Score)),
		output.ScoreBar(float64(digest.Score), 20))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Total issues:"),
		output.StyleBold.Render(fmt.Sprintf("%d", digest.TotalIssues)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Critical issues:"),
		output.StyleBold.Render(fmt.Sprintf("%d", digest.CriticalIssues)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Estimated fix time:"),
		output.StyleBold.Render(digest.EstimatedFixTime))

	if len(digest.TopCategories) > 0 {
		fmt.Println()
		fmt.Println(output.Section("Top Categories"))
		fmt.Println()
		tbl := output.NewTable("Category", "Issues", "Share")
		for _, cat := range digest.TopCategories {
			tbl.AddRow(cat.Category,
				fmt.Sprintf("%d", cat.Count),
				fmt.Sprintf("%.0f%%", cat.Percentage))
		}
		tbl.Print()
	}

	if len(digest.Hotspots) > 0 {
		fmt.Println()
		fmt.Println(output.Section("Hotspots"))
		fmt.Println()
		tbl := output.NewTable("File", "Issues")
		for _, h := range digest.Hotspots {
			tbl.AddRow(h.File, fmt.Sprintf("%d", h.Issues))
		}
		tbl.Print()
	}
	fmt.Println()
	return nil
}
