package checks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

// maxRelativeHops is how many "../" segments an import path may climb before
// it is considered a layering smell.
const maxRelativeHops = 1

var importPathRe = regexp.MustCompile(`(?:from\s+|require\(\s*|import\s+)['"]([^'"]+)['"]`)

// CheckDeepImports flags import paths that climb more than one directory
// level. Deep relative chains usually mean the module lives in the wrong
// place or a path alias is missing.
func CheckDeepImports(content, path string) []quality.Issue {
	var issues []quality.Issue
	for i, line := range strings.Split(content, "\n") {
		m := importPathRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		hops := strings.Count(m[1], "../")
		if hops <= maxRelativeHops {
			continue
		}
		issues = append(issues, quality.Issue{
			Severity: quality.SeverityWarning,
			Category: quality.CategoryImports,
			File:     path,
			Line:     i + 1,
			Message:  fmt.Sprintf("Import climbs %d directory levels; move the module or use a path alias", hops),
			Rule:     "no-deep-relative-imports",
		})
	}
	return issues
}
