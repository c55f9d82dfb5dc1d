package checks

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

var markerWords = []string{"TODO", "FIXME", "HACK", "XXX"}

// markerExemptNames are file name fragments of lint and analysis tooling.
// Such files mention markers as data, not as outstanding work.
var markerExemptNames = []string{"quality-check", "code-analyzer", "lint"}

// CheckMarkerComments flags TODO/FIXME style markers. Two suppressions keep
// the checker from flagging itself: quoted markers (declarative tables list
// the words as string literals) and files that are themselves analysis
// tooling.
func CheckMarkerComments(content, path string) []quality.Issue {
	base := strings.ToLower(filepath.Base(path))
	for _, name := range markerExemptNames {
		if strings.Contains(base, name) {
			return nil
		}
	}

	var issues []quality.Issue
	for i, line := range strings.Split(content, "\n") {
		word := findMarker(line)
		if word == "" {
			continue
		}
		issues = append(issues, quality.Issue{
			Severity: quality.SeverityInfo,
			Category: quality.CategoryMaintenance,
			File:     path,
			Line:     i + 1,
			Message:  fmt.Sprintf("%s marker left in code", word),
			Rule:     "no-marker-comments",
		})
	}
	return issues
}

// findMarker returns the first unquoted marker word on the line, or "".
func findMarker(line string) string {
	for _, word := range markerWords {
		idx := strings.Index(line, word)
		if idx < 0 {
			continue
		}
		if idx > 0 {
			prev := line[idx-1]
			if prev == '"' || prev == '\'' || prev == '`' {
				continue
			}
		}
		return word
	}
	return ""
}
