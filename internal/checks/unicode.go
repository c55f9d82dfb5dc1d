package checks

import (
	"fmt"
	"strings"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

// scriptRange is a named Unicode block checked for in comment lines.
type scriptRange struct {
	Lo, Hi rune
}

var scriptRanges = map[string]scriptRange{
	"hebrew":   {0x0590, 0x05FF},
	"arabic":   {0x0600, 0x06FF},
	"cyrillic": {0x0400, 0x04FF},
	"cjk":      {0x4E00, 0x9FFF},
}

var commentPrefixes = []string{"//", "#", "/*", "*", "<!--", "--"}

// KnownScript reports whether name is a recognized comment script.
func KnownScript(name string) bool {
	_, ok := scriptRanges[strings.ToLower(name)]
	return ok
}

// CheckScriptComments flags comment lines written in the configured scripts.
// Teams shipping international codebases use it to keep comments in the
// project's working language. Unknown script names are ignored.
func CheckScriptComments(content, path string, scripts []string) []quality.Issue {
	var ranges []scriptRange
	var names []string
	for _, name := range scripts {
		r, ok := scriptRanges[strings.ToLower(name)]
		if !ok {
			continue
		}
		ranges = append(ranges, r)
		names = append(names, strings.ToLower(name))
	}
	if len(ranges) == 0 {
		return nil
	}

	var issues []quality.Issue
	for i, line := range strings.Split(content, "\n") {
		if !isCommentLine(line) {
			continue
		}
		script := matchScript(line, ranges, names)
		if script == "" {
			continue
		}
		issues = append(issues, quality.Issue{
			Severity: quality.SeverityInfo,
			Category: quality.CategoryDocumentation,
			File:     path,
			Line:     i + 1,
			Message:  fmt.Sprintf("Comment written in %s script", script),
			Rule:     "no-nonascii-comments",
		})
	}
	return issues
}

func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

func matchScript(line string, ranges []scriptRange, names []string) string {
	for _, r := range line {
		for i, sr := range ranges {
			if r >= sr.Lo && r <= sr.Hi {
				return names[i]
			}
		}
	}
	return ""
}
