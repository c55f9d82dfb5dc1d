package checks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
	"github.com/zoharazr/code-quality-mcp/internal/rules"
)

// CheckFileLength flags files longer than the ruleset allows.
func CheckFileLength(content, path string, rs rules.RuleSet) []quality.Issue {
	total := len(strings.Split(content, "\n"))
	if total <= rs.MaxFileLines {
		return nil
	}
	return []quality.Issue{{
		Severity: quality.SeverityWarning,
		Category: quality.CategoryComplexity,
		File:     path,
		Message:  fmt.Sprintf("File has %d lines (limit %d); consider splitting it", total, rs.MaxFileLines),
		Rule:     "max-file-lines",
	}}
}

// CheckLineLength flags lines longer than the ruleset allows. Length is
// counted in runes so multibyte comments are not penalized.
func CheckLineLength(content, path string, rs rules.RuleSet) []quality.Issue {
	var issues []quality.Issue
	for i, line := range strings.Split(content, "\n") {
		width := len([]rune(line))
		if width <= rs.MaxLineLength {
			continue
		}
		issues = append(issues, quality.Issue{
			Severity: quality.SeverityInfo,
			Category: quality.CategoryComplexity,
			File:     path,
			Line:     i + 1,
			Message:  fmt.Sprintf("Line is %d characters (limit %d)", width, rs.MaxLineLength),
			Rule:     "max-line-length",
		})
	}
	return issues
}

// CheckFunctionLength flags functions whose brace-balanced span exceeds the
// ruleset limit.
func CheckFunctionLength(content, path string, rs rules.RuleSet) []quality.Issue {
	lines := strings.Split(content, "\n")

	var issues []quality.Issue
	for _, fn := range scanFunctions(lines) {
		if fn.Lines() <= rs.MaxFunctionLines {
			continue
		}
		issues = append(issues, quality.Issue{
			Severity: quality.SeverityWarning,
			Category: quality.CategoryComplexity,
			File:     path,
			Line:     fn.StartLine,
			Message:  fmt.Sprintf("Function '%s' spans %d lines (limit %d)", fn.Name, fn.Lines(), rs.MaxFunctionLines),
			Rule:     "max-function-lines",
		})
	}
	return issues
}

// CheckParameters flags functions declaring more parameters than the
// ruleset allows.
func CheckParameters(content, path string, rs rules.RuleSet) []quality.Issue {
	lines := strings.Split(content, "\n")

	var issues []quality.Issue
	for _, fn := range scanFunctions(lines) {
		if fn.Params <= rs.MaxParameters {
			continue
		}
		issues = append(issues, quality.Issue{
			Severity: quality.SeverityWarning,
			Category: quality.CategoryComplexity,
			File:     path,
			Line:     fn.StartLine,
			Message:  fmt.Sprintf("Function '%s' takes %d parameters (limit %d); group them into an options object", fn.Name, fn.Params, rs.MaxParameters),
			Rule:     "max-parameters",
		})
	}
	return issues
}

var branchKeywordRe = regexp.MustCompile(`\b(if|for|while|case|catch)\b`)

// CheckComplexity flags functions whose decision-point count exceeds the
// ruleset limit. Complexity is one plus the branch keywords and boolean
// connectives in the function span.
func CheckComplexity(content, path string, rs rules.RuleSet) []quality.Issue {
	lines := strings.Split(content, "\n")

	var issues []quality.Issue
	for _, fn := range scanFunctions(lines) {
		body := strings.Join(lines[fn.StartLine-1:fn.EndLine], "\n")
		score := 1 + len(branchKeywordRe.FindAllString(body, -1)) +
			strings.Count(body, "&&") + strings.Count(body, "||")
		if score <= rs.MaxComplexity {
			continue
		}
		issues = append(issues, quality.Issue{
			Severity: quality.SeverityWarning,
			Category: quality.CategoryComplexity,
			File:     path,
			Line:     fn.StartLine,
			Message:  fmt.Sprintf("Function '%s' has complexity %d (limit %d)", fn.Name, score, rs.MaxComplexity),
			Rule:     "max-complexity",
		})
	}
	return issues
}

var classDeclRe = regexp.MustCompile(`(?:^|\s)class\s+([A-Za-z_$][\w$]*)`)

// CheckMethodsPerClass flags classes declaring more methods than the
// ruleset allows. Methods are counted by running the function scanner over
// the class body.
func CheckMethodsPerClass(content, path string, rs rules.RuleSet) []quality.Issue {
	lines := strings.Split(content, "\n")

	var issues []quality.Issue
	for i := 0; i < len(lines); i++ {
		m := classDeclRe.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		end, ok := braceSpan(lines, i)
		if !ok {
			continue
		}

		methods := len(scanFunctions(lines[i+1 : end]))
		if methods > rs.MaxMethodsPerClass {
			issues = append(issues, quality.Issue{
				Severity: quality.SeverityWarning,
				Category: quality.CategoryComplexity,
				File:     path,
				Line:     i + 1,
				Message:  fmt.Sprintf("Class '%s' has %d methods (limit %d); split responsibilities", m[1], methods, rs.MaxMethodsPerClass),
				Rule:     "max-methods-per-class",
			})
		}
		i = end
	}
	return issues
}
