package checks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

var secretAssignRe = regexp.MustCompile(`(?i)\b(api[_-]?key|apikey|secret|password|passwd|token|auth[_-]?token|private[_-]?key)\b\s*[:=]\s*['"]([^'"]{8,})['"]`)

// secretExemptions mark lines that read credentials from the environment or
// configuration, and obvious placeholder values.
var secretExemptions = []string{
	"process.env", "os.environ", "getenv", "dotenv",
	"config.", "example", "placeholder", "changeme", "your-", "your_", "<",
}

// CheckSecrets flags credential-looking assignments with literal values.
// Values shorter than eight characters are ignored as too weak a signal.
func CheckSecrets(content, path string) []quality.Issue {
	var issues []quality.Issue
	for i, line := range strings.Split(content, "\n") {
		m := secretAssignRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if containsAnyFold(line, secretExemptions) {
			continue
		}
		issues = append(issues, quality.Issue{
			Severity: quality.SeverityError,
			Category: quality.CategorySecurity,
			File:     path,
			Line:     i + 1,
			Message:  fmt.Sprintf("Possible hardcoded %s; move it to environment configuration", strings.ToLower(m[1])),
			Rule:     "no-hardcoded-secrets",
		})
	}
	return issues
}

func containsAnyFold(s string, patterns []string) bool {
	lower := strings.ToLower(s)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
