package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoharazr/code-quality-mcp/internal/output"
	"github.com/zoharazr/code-quality-mcp/internal/trend"
)

var quickwinsCmd = &cobra.Command{
	Use:   "quickwins [path]",
	Short: "High-leverage fixes ranked by gain per effort",
	Long: `Quickwins runs a standard analysis, groups the issues by rule, and
surfaces the rules whose violations cluster enough that one focused
session fixes many at once. Wins are ranked by score gain per minute of
estimated effort.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuickwins,
}

func init() {
	rootCmd.AddCommand(quickwinsCmd)
}

func runQuickwins(cmd *cobra.Command, args []string) error {
	_, report, err := runStandardAnalysis(cmd, args)
	if err != nil {
		return err
	}

	wins := trend.QuickWins(report)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(wins)
	}

	fmt.Println(output.Section("Quick Wins"))
	fmt.Println()

	if len(wins) == 0 {
		fmt.Println(output.StyleMuted.Render(" No quick wins found. Issues are too scattered for batch fixes."))
		fmt.Println()
		return nil
	}

	for i, win := range wins {
		fmt.Printf(" %s %s\n",
			output.StyleMuted.Render(fmt.Sprintf("%d.", i+1)),
			output.StyleBold.Render(win.Title))
		fmt.Printf("    %s\n", win.Description)
		fmt.Printf("    %s\n", output.StyleMuted.Render(
			fmt.Sprintf("~%dmin effort, %s impact, +%.1f score", win.Effort, win.Impact, win.ScoreGain)))
		if len(win.FilesAffected) > 0 {
			files := win.FilesAffected
			suffix := ""
			if len(files) > 3 {
				suffix = fmt.Sprintf(" and %d more", len(files)-3)
				files = files[:3]
			}
			fmt.Printf("    %s\n", output.StyleMuted.Render("in "+strings.Join(files, ", ")+suffix))
		}
		fmt.Println()
	}
	return nil
}
