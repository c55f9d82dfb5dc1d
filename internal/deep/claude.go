package deep

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

const (
	claudeAPIURL     = "https://api.anthropic.com/v1/messages"
	claudeAPIVersion = "2023-06-01"
	maxTokens        = 4096
	apiTimeout       = 60 * time.Second

	// maxContentChars bounds how much of a file is sent for review.
	maxContentChars = 12000
)

// reviewSystemPrompt is the system prompt sent to Claude for reviewing a
// source file.
const reviewSystemPrompt = `You are a senior code reviewer. You are given one source file from a project under quality analysis. Identify concrete problems a static heuristic would miss: logic errors, race conditions, resource leaks, misuse of framework APIs, and misleading naming.

Rules:
- Only report problems you can point to a specific line for.
- Severity must be one of: error, warning, info.
- Keep messages short and actionable.
- The insights field is a 2-3 sentence summary of the file's overall health.
- Output valid JSON matching the schema below, nothing else.

Output schema:
{
  "issues": [
    {
      "severity": "warning",
      "line": 42,
      "message": "What is wrong and how to fix it"
    }
  ],
  "insights": "Overall assessment of this file"
}`

// ClaudeOracle reviews files through the Claude Messages API.
type ClaudeOracle struct {
	apiKey string
	model  string
	client *http.Client
}

// NewClaudeOracle creates an Oracle backed by the Claude API.
func NewClaudeOracle(apiKey, model string) *ClaudeOracle {
	return &ClaudeOracle{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: apiTimeout},
	}
}

// Review implements Oracle. The file content is truncated before sending;
// line numbers in findings refer to the truncated view, which matches the
// original for every file under the limit.
func (o *ClaudeOracle) Review(ctx context.Context, content, path string) ([]quality.Issue, string, error) {
	if o.apiKey == "" {
		return nil, "", fmt.Errorf("API key is required for AI review")
	}

	if len(content) > maxContentChars {
		content = content[:maxContentChars] + "\n... (truncated)"
	}
	userPrompt := fmt.Sprintf("File: %s\n\n```\n%s\n```", path, content)

	responseText, err := o.callClaudeAPI(ctx, reviewSystemPrompt, userPrompt)
	if err != nil {
		return nil, "", fmt.Errorf("calling Claude API: %w", err)
	}

	issues, insights, err := parseReviewResponse(responseText, path)
	if err != nil {
		return nil, "", fmt.Errorf("parsing AI response: %w", err)
	}
	return issues, insights, nil
}

// claudeAPIRequest is the request body for the Claude Messages API.
type claudeAPIRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []claudeAPIMessage `json:"messages"`
}

// claudeAPIMessage is a single message in the Claude Messages API request.
type claudeAPIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeAPIResponse is the response body from the Claude Messages API.
type claudeAPIResponse struct {
	ID      string                  `json:"id"`
	Type    string                  `json:"type"`
	Content []claudeAPIContentBlock `json:"content"`
	Error   *claudeAPIError         `json:"error,omitempty"`
}

// claudeAPIContentBlock is a single content block in the API response.
type claudeAPIContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// claudeAPIError represents an error response from the Claude API.
type claudeAPIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// callClaudeAPI sends a request to the Claude Messages API and returns the
// text content of the response.
func (o *ClaudeOracle) callClaudeAPI(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := claudeAPIRequest{
		Model:     o.model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages: []claudeAPIMessage{
			{Role: "user", Content: userPrompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", claudeAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("x-api-key", o.apiKey)
	req.Header.Set("anthropic-version", claudeAPIVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	var apiResp claudeAPIResponse
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("API error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	// Extract text from content blocks.
	var textParts []string
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			textParts = append(textParts, block.Text)
		}
	}

	if len(textParts) == 0 {
		return "", fmt.Errorf("no text content in API response")
	}

	return strings.Join(textParts, ""), nil
}

// reviewResponseSchema is the expected JSON structure from the AI response.
type reviewResponseSchema struct {
	Issues []struct {
		Severity string `json:"severity"`
		Line     int    `json:"line"`
		Message  string `json:"message"`
	} `json:"issues"`
	Insights string `json:"insights"`
}

// parseReviewResponse extracts issues and insights from the AI's JSON
// response. It handles cases where the JSON may be wrapped in markdown code
// fences.
func parseReviewResponse(responseText, path string) ([]quality.Issue, string, error) {
	// Strip markdown code fences if present.
	text := strings.TrimSpace(responseText)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	var schema reviewResponseSchema
	if err := json.Unmarshal([]byte(text), &schema); err != nil {
		return nil, "", fmt.Errorf("parsing AI JSON response: %w (response was: %.200s)", err, text)
	}

	var issues []quality.Issue
	for _, finding := range schema.Issues {
		if finding.Message == "" {
			continue
		}
		severity := quality.Severity(finding.Severity)
		if severity != quality.SeverityError && severity != quality.SeverityWarning {
			severity = quality.SeverityInfo
		}
		issues = append(issues, quality.Issue{
			Severity: severity,
			Category: quality.CategoryCodeQuality,
			File:     path,
			Line:     finding.Line,
			Message:  finding.Message,
			Rule:     "ai-review",
		})
	}
	return issues, schema.Insights, nil
}
