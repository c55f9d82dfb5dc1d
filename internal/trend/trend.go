// Package trend derives score movement and remediation guidance from
// quality reports. Everything here is a pure function over report data;
// nothing re-runs analysis.
package trend

import (
	"sort"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

// Trend compares the current report against the previously stored one.
// Pointer fields are nil on the first-ever analysis of a path.
type Trend struct {
	PreviousScore  *int     `json:"previousScore,omitempty"`
	CurrentScore   int      `json:"currentScore"`
	ScoreChange    *int     `json:"scoreChange,omitempty"`
	IssueChange    *int     `json:"issueChange,omitempty"`
	ImprovingAreas []string `json:"improvingAreas"`
	DegradingAreas []string `json:"degradingAreas"`
}

// Compute builds the trend between two reports. A nil previous report
// yields only the current figures with both area lists empty.
func Compute(previous, current *quality.QualityReport) Trend {
	t := Trend{
		CurrentScore:   current.Score,
		ImprovingAreas: []string{},
		DegradingAreas: []string{},
	}
	if previous == nil {
		return t
	}

	prevScore := previous.Score
	scoreChange := current.Score - previous.Score
	issueChange := len(current.Issues) - len(previous.Issues)
	t.PreviousScore = &prevScore
	t.ScoreChange = &scoreChange
	t.IssueChange = &issueChange

	before := quality.CountByCategory(previous.Issues)
	after := quality.CountByCategory(current.Issues)

	seen := make(map[string]bool)
	for category := range before {
		seen[category] = true
	}
	for category := range after {
		seen[category] = true
	}

	for category := range seen {
		switch {
		case after[category] < before[category]:
			t.ImprovingAreas = append(t.ImprovingAreas, category)
		case after[category] > before[category]:
			t.DegradingAreas = append(t.DegradingAreas, category)
		}
	}
	sort.Strings(t.ImprovingAreas)
	sort.Strings(t.DegradingAreas)
	return t
}
