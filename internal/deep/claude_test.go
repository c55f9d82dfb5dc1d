package deep

import (
	"context"
	"strings"
	"testing"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

func TestParseReviewResponse_ValidJSON(t *testing.T) {
	response := `{
		"issues": [
			{"severity": "warning", "line": 12, "message": "Connection is never closed"},
			{"severity": "error", "line": 30, "message": "Nil check happens after dereference"}
		],
		"insights": "Solid structure, but resource handling needs attention."
	}`

	issues, insights, err := parseReviewResponse(response, "src/db.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}
	if issues[0].Severity != quality.SeverityWarning || issues[0].Line != 12 {
		t.Errorf("issue[0] = %+v, want warning at line 12", issues[0])
	}
	if issues[0].File != "src/db.js" {
		t.Errorf("expected file to be set on every finding, got %q", issues[0].File)
	}
	if issues[0].Rule != "ai-review" {
		t.Errorf("expected ai-review rule, got %q", issues[0].Rule)
	}
	if !strings.Contains(insights, "resource handling") {
		t.Errorf("unexpected insights: %q", insights)
	}
}

func TestParseReviewResponse_JSONInCodeFences(t *testing.T) {
	response := "```json\n" + `{
		"issues": [{"severity": "info", "line": 1, "message": "Consider a file header"}],
		"insights": "Fine overall."
	}` + "\n```"

	issues, _, err := parseReviewResponse(response, "a.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
}

func TestParseReviewResponse_PlainCodeFences(t *testing.T) {
	response := "```\n" + `{"issues": [], "insights": "Clean file."}` + "\n```"

	issues, insights, err := parseReviewResponse(response, "a.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %d", len(issues))
	}
	if insights != "Clean file." {
		t.Errorf("insights = %q", insights)
	}
}

func TestParseReviewResponse_InvalidJSON(t *testing.T) {
	_, _, err := parseReviewResponse("this is not json at all", "a.js")
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "parsing AI JSON response") {
		t.Errorf("expected parsing error, got: %v", err)
	}
}

func TestParseReviewResponse_UnknownSeverityBecomesInfo(t *testing.T) {
	response := `{"issues": [{"severity": "catastrophic", "line": 3, "message": "x"}], "insights": ""}`

	issues, _, err := parseReviewResponse(response, "a.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 1 || issues[0].Severity != quality.SeverityInfo {
		t.Errorf("unknown severities should map to info, got %+v", issues)
	}
}

func TestParseReviewResponse_SkipsEmptyMessages(t *testing.T) {
	response := `{
		"issues": [
			{"severity": "warning", "line": 1, "message": ""},
			{"severity": "warning", "line": 2, "message": "real finding"}
		],
		"insights": ""
	}`

	issues, _, err := parseReviewResponse(response, "a.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 1 || issues[0].Line != 2 {
		t.Errorf("empty messages should be skipped, got %+v", issues)
	}
}

func TestNoopOracle(t *testing.T) {
	issues, insights, err := NoopOracle{}.Review(context.Background(), "content", "a.js")
	if err != nil || issues != nil || insights != "" {
		t.Errorf("noop oracle should contribute nothing, got %v %q %v", issues, insights, err)
	}
}

func TestClaudeOracle_RequiresAPIKey(t *testing.T) {
	o := NewClaudeOracle("", "some-model")
	_, _, err := o.Review(context.Background(), "content", "a.js")
	if err == nil {
		t.Fatal("expected error without an API key")
	}
	if !strings.Contains(err.Error(), "API key") {
		t.Errorf("expected API key error, got: %v", err)
	}
}
