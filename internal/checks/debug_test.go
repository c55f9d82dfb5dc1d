package checks

import (
	"testing"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

func TestCheckDebugStatementsSingleConsoleLog(t *testing.T) {
	src := "console.log('debug output');\n"

	issues := CheckDebugStatements(src, "src/index.js")
	if len(issues) != 1 {
		t.Fatalf("expected exactly 1 issue, got %d: %+v", len(issues), issues)
	}
	issue := issues[0]
	if issue.Severity != quality.SeverityError {
		t.Errorf("severity = %s, want error", issue.Severity)
	}
	if issue.Category != quality.CategoryCodeQuality {
		t.Errorf("category = %s, want code-quality", issue.Category)
	}
	if issue.Rule != "no-console" || issue.Line != 1 {
		t.Errorf("issue = %+v, want no-console at line 1", issue)
	}

	// One error costs 5 points. 100 - 5 = 95.
	if score := quality.Score(issues); score != 95 {
		t.Errorf("Score = %d, want 95", score)
	}
}

func TestCheckDebugStatementsPerFamily(t *testing.T) {
	cases := []struct {
		path string
		src  string
		rule string
	}{
		{"lib/main.dart", "void main() {\n  print('hi');\n}\n", "no-print"},
		{"src/Main.java", "System.out.println(x);\n", "no-system-out"},
		{"src/Handler.kt", "e.printStackTrace()\n", "no-system-out"},
		{"Service.cs", "Console.WriteLine(x);\n", "no-console-writeline"},
		{"src/app.vue", "console.log(x)\n", "no-console"},
	}
	for _, tc := range cases {
		issues := CheckDebugStatements(tc.src, tc.path)
		if len(issues) != 1 {
			t.Errorf("%s: expected 1 issue, got %d: %+v", tc.path, len(issues), issues)
			continue
		}
		if issues[0].Rule != tc.rule {
			t.Errorf("%s: rule = %s, want %s", tc.path, issues[0].Rule, tc.rule)
		}
	}
}

func TestCheckDebugStatementsUnknownExtension(t *testing.T) {
	if issues := CheckDebugStatements("console.log(x)\n", "main.go"); issues != nil {
		t.Errorf("unknown family should yield nil, got %+v", issues)
	}
}

func TestCheckDebugStatementsOneIssuePerLine(t *testing.T) {
	// Two calls on one line still count once.
	src := "console.log(a); console.debug(b);\nconsole.info(c);\n"
	issues := CheckDebugStatements(src, "a.ts")
	if len(issues) != 2 {
		t.Errorf("expected 2 issues, got %d: %+v", len(issues), issues)
	}
}
