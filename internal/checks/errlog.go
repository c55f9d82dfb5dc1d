package checks

import (
	"regexp"
	"strings"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

var catchLineRe = regexp.MustCompile(`(?:^|\s|\})catch\s*(?:\(|\{|$)`)

// loggingCalls are substrings accepted as evidence a handler records the
// error somewhere.
var loggingCalls = []string{
	"console.error", "console.warn", "console.log",
	"logger", "log.", "Log.",
	"System.err", "printStackTrace",
	"Console.Error", "Console.WriteLine",
	"debugPrint", "print(",
}

// surfaceActions are substrings accepted as evidence the handler surfaces
// the failure to its caller instead of logging it.
var surfaceActions = []string{
	"throw", "rethrow", "return",
	"reject(", "next(", "callback(",
	"res.status", "response.status", "resp.status",
	"process.exit", "setError", "error =", "error:",
}

// CheckErrorLogging flags catch handlers that neither record the error nor
// surface it to the caller. The handler body is found with the shared
// brace-balance scan from the catch line.
func CheckErrorLogging(content, path string) []quality.Issue {
	lines := strings.Split(content, "\n")

	var issues []quality.Issue
	for i := 0; i < len(lines); i++ {
		if !catchLineRe.MatchString(lines[i]) {
			continue
		}

		end, ok := catchSpan(lines, i)
		if !ok {
			continue
		}
		body := strings.Join(lines[i:end+1], "\n")

		if containsAny(body, loggingCalls) || containsAny(body, surfaceActions) {
			i = end
			continue
		}
		issues = append(issues, quality.Issue{
			Severity: quality.SeverityWarning,
			Category: quality.CategoryErrorHandling,
			File:     path,
			Line:     i + 1,
			Message:  "Caught error is neither logged nor surfaced to the caller",
			Rule:     "missing-error-logging",
		})
		i = end
	}
	return issues
}

// catchSpan brace-scans the handler block starting at lines[start]. The
// line is trimmed to the catch keyword first so the closing brace of the
// preceding try block does not end the scan early.
func catchSpan(lines []string, start int) (int, bool) {
	idx := strings.Index(lines[start], "catch")
	if idx < 0 {
		return start, false
	}

	scan := make([]string, len(lines)-start)
	scan[0] = lines[start][idx:]
	copy(scan[1:], lines[start+1:])

	end, ok := braceSpan(scan, 0)
	return start + end, ok
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
