package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoharazr/code-quality-mcp/internal/detect"
	"github.com/zoharazr/code-quality-mcp/internal/output"
)

var analyzeDeep bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Detect project types, variants, and sub-projects",
	Long: `Analyze inspects a source tree and reports which frameworks it uses:
project types (react, node, spring-boot, ...), refined variants (nextjs
app-router vs pages-router, react create-react-app vs vite), and, with
--deep, nested sub-projects such as workspace packages or a functions/
directory.

Detection reads manifests and marker files only; no quality checks run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeDeep, "deep", false, "Also discover nested sub-projects")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	path, err := projectPathArg(args)
	if err != nil {
		return err
	}
	if err := requireDir(path); err != nil {
		return err
	}

	info := detect.Detect(path, analyzeDeep)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	renderProjectInfo(info)
	return nil
}

// requireDir verifies that path exists and is a directory.
func requireDir(path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("project path: %w", err)
	}
	if !stat.IsDir() {
		return fmt.Errorf("project path %s is not a directory", path)
	}
	return nil
}

func renderProjectInfo(info detect.ProjectInfo) {
	fmt.Println(output.Section("Project Detection"))
	fmt.Println()

	types := "none detected"
	if len(info.Types) > 0 {
		types = strings.Join(info.Types, ", ")
	}
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Types:"),
		output.StyleBold.Render(types))

	if info.MainFramework != "" {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Main framework:"),
			output.StyleBold.Render(info.MainFramework))
	}

	variantTypes := make([]string, 0, len(info.Variants))
	for projectType := range info.Variants {
		variantTypes = append(variantTypes, projectType)
	}
	sort.Strings(variantTypes)
	for _, projectType := range variantTypes {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render(projectType+" variant:"),
			output.StyleBold.Render(info.Variants[projectType]))
	}

	if len(info.SubProjects) > 0 {
		fmt.Println()
		fmt.Println(output.Section("Sub-Projects"))
		fmt.Println()

		tbl := output.NewTable("Path", "Type", "Dependencies")
		for _, sub := range info.SubProjects {
			tbl.AddRow(sub.RelativePath, sub.Type, fmt.Sprintf("%d", len(sub.Dependencies)))
		}
		tbl.Print()
	}
	fmt.Println()
}
