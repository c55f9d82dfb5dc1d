package checks

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

// debugFamily groups the print/debug calls inappropriate for one language
// family under the rule id reported for them.
type debugFamily struct {
	Rule     string
	Patterns []string
}

var debugFamilies = map[string]debugFamily{
	"js": {
		Rule:     "no-console",
		Patterns: []string{"console.log(", "console.debug(", "console.info(", "console.trace("},
	},
	"dart": {
		Rule:     "no-print",
		Patterns: []string{"print("},
	},
	"jvm": {
		Rule:     "no-system-out",
		Patterns: []string{"System.out.print", "printStackTrace("},
	},
	"dotnet": {
		Rule:     "no-console-writeline",
		Patterns: []string{"Console.WriteLine(", "Console.Write("},
	},
}

// debugFamilyFor maps a file extension to its language family key, or "".
func debugFamilyFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".vue":
		return "js"
	case ".dart":
		return "dart"
	case ".java", ".kt", ".kts":
		return "jvm"
	case ".cs":
		return "dotnet"
	}
	return ""
}

// CheckDebugStatements flags print/debug calls left in source, by literal
// substring match against the file's language family. One issue per
// offending line.
func CheckDebugStatements(content, path string) []quality.Issue {
	family, ok := debugFamilies[debugFamilyFor(path)]
	if !ok {
		return nil
	}

	var issues []quality.Issue
	for i, line := range strings.Split(content, "\n") {
		for _, pattern := range family.Patterns {
			if !strings.Contains(line, pattern) {
				continue
			}
			call := strings.TrimSuffix(pattern, "(")
			issues = append(issues, quality.Issue{
				Severity: quality.SeverityError,
				Category: quality.CategoryCodeQuality,
				File:     path,
				Line:     i + 1,
				Message:  fmt.Sprintf("Debug statement %s left in code", call),
				Rule:     family.Rule,
			})
			break
		}
	}
	return issues
}
