package checks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

var exportedConstRe = regexp.MustCompile(`^\s*export\s+const\s+([A-Za-z_$][\w$]*)`)

// isConstantsPath reports whether the path names a constants module. Only
// such files are scanned for dead exports; general modules export API
// surface that outside consumers may use.
func isConstantsPath(path string) bool {
	return strings.Contains(strings.ToLower(path), "constant")
}

// CheckUnusedExports flags exported constants in constants modules that no
// other file in the project references. Callers cap the files slice; the
// scan is quadratic in the worst case.
func CheckUnusedExports(files []quality.SourceFile) []quality.Issue {
	var issues []quality.Issue

	for _, f := range files {
		if !isConstantsPath(f.Path) {
			continue
		}

		for i, line := range strings.Split(f.Content, "\n") {
			m := exportedConstRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := m[1]
			if referencedElsewhere(files, f.Path, name) {
				continue
			}
			issues = append(issues, quality.Issue{
				Severity: quality.SeverityInfo,
				Category: quality.CategoryUnusedCode,
				File:     f.Path,
				Line:     i + 1,
				Message:  fmt.Sprintf("Exported constant '%s' is not referenced anywhere", name),
				Rule:     "no-unused-exports",
			})
		}
	}
	return issues
}

func referencedElsewhere(files []quality.SourceFile, declPath, name string) bool {
	ref := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	for _, f := range files {
		if f.Path == declPath {
			continue
		}
		if ref.MatchString(f.Content) {
			return true
		}
	}
	return false
}
