package checks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

var localDeclRe = regexp.MustCompile(`^\s*(?:const|let|var|final|val)\s+([a-z_$][\w$]*)\s*=`)

// CheckUnusedLocals flags local declarations whose identifier never appears
// again in the file. Occurrences are counted on content with comments and
// string literals stripped, so mentions in prose do not count as use.
//
// Exemptions keep the heuristic honest about what it cannot see:
// capitalized identifiers may be component exports, declarations assigning
// functions may be registered by name elsewhere, and identifiers recurring
// in a return statement or object-shorthand position are in use even when
// the occurrence count misleads.
func CheckUnusedLocals(content, path string) []quality.Issue {
	stripped := stripLiterals(content)
	lines := strings.Split(stripped, "\n")

	var issues []quality.Issue
	for i, line := range lines {
		m := localDeclRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]

		if strings.Contains(line, "=>") || strings.Contains(line, "function") {
			continue
		}

		ident := regexp.QuoteMeta(name)
		occurrences := regexp.MustCompile(`\b` + ident + `\b`).FindAllStringIndex(stripped, -1)
		if len(occurrences) != 1 {
			continue
		}
		if regexp.MustCompile(`return[^;\n]*\b` + ident + `\b`).MatchString(stripped) {
			continue
		}
		if regexp.MustCompile(`[{,]\s*` + ident + `\s*[,}:]`).MatchString(stripped) {
			continue
		}

		issues = append(issues, quality.Issue{
			Severity: quality.SeverityWarning,
			Category: quality.CategoryUnusedCode,
			File:     path,
			Line:     i + 1,
			Message:  fmt.Sprintf("Variable '%s' is declared but never used", name),
			Rule:     "no-unused-vars",
		})
	}
	return issues
}
