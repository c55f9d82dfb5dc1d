package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoharazr/code-quality-mcp/internal/output"
	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [path]",
	Short: "Show recommendations and the worst issues",
	Long: `Recommend runs a standard analysis and prints the canned guidance
derived from the issue categories, together with the first five issues of
the report as concrete starting points.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
}

// recommendOutput is the JSON-serializable result of the recommend command.
type recommendOutput struct {
	Score           int             `json:"score"`
	ProjectTypes    []string        `json:"projectTypes"`
	Recommendations []string        `json:"recommendations"`
	TopIssues       []quality.Issue `json:"topIssues"`
}

func runRecommend(cmd *cobra.Command, args []string) error {
	_, report, err := runStandardAnalysis(cmd, args)
	if err != nil {
		return err
	}

	top := report.Issues
	if len(top) > 5 {
		top = top[:5]
	}

	if flagJSON {
		out := recommendOutput{
			Score:           report.Score,
			ProjectTypes:    report.ProjectTypes,
			Recommendations: report.Recommendations,
			TopIssues:       top,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println(output.Section("Recommendations"))
	fmt.Println()

	if len(report.Recommendations) == 0 {
		fmt.Println(output.StyleSuccess.Render(" Nothing to recommend, the project looks clean."))
		fmt.Println()
		return nil
	}

	for i, rec := range report.Recommendations {
		fmt.Printf("  %s %s\n", output.StyleMuted.Render(fmt.Sprintf("%d.", i+1)), rec)
	}

	if len(top) > 0 {
		fmt.Println()
		fmt.Println(output.Section("Top Issues"))
		fmt.Println()
		renderIssueTable(top, 0)
	}
	fmt.Println()
	return nil
}
