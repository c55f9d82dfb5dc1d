package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	report := &QualityReport{
		Score: 83,
		Issues: []Issue{
			{Severity: SeverityError, Category: CategoryCodeQuality, File: "src/app.js", Rule: "no-console"},
			{Severity: SeverityError, Category: CategoryCodeQuality, File: "src/app.js", Rule: "no-console"},
			{Severity: SeverityWarning, Category: CategoryComplexity, File: "src/big.js", Rule: "max-file-lines"},
			{Severity: SeverityInfo, Category: CategoryMaintenance, File: "src/app.js", Rule: "no-marker-comments"},
		},
	}

	s := Summarize(report)

	assert.Equal(t, 83, s.Score)
	assert.Equal(t, 4, s.TotalIssues)
	assert.Equal(t, 2, s.CriticalIssues)
	// 2*30 + 10 + 2 = 72 minutes -> 1.2h.
	assert.Equal(t, "1.2h", s.EstimatedFixTime)

	if assert.Len(t, s.TopCategories, 3) {
		assert.Equal(t, CategoryCodeQuality, s.TopCategories[0].Category)
		assert.Equal(t, 2, s.TopCategories[0].Count)
		assert.Equal(t, 50.0, s.TopCategories[0].Percentage)
	}

	if assert.Len(t, s.Hotspots, 2) {
		assert.Equal(t, "src/app.js", s.Hotspots[0].File)
		assert.Equal(t, 3, s.Hotspots[0].Issues)
	}
}

func TestSummarize_CategoryTiesBreakAlphabetically(t *testing.T) {
	report := &QualityReport{
		Issues: []Issue{
			{Severity: SeverityWarning, Category: CategoryImports, Rule: "no-deep-relative-imports"},
			{Severity: SeverityWarning, Category: CategoryComplexity, Rule: "max-file-lines"},
		},
	}

	s := Summarize(report)
	if assert.Len(t, s.TopCategories, 2) {
		assert.Equal(t, CategoryComplexity, s.TopCategories[0].Category)
		assert.Equal(t, CategoryImports, s.TopCategories[1].Category)
	}
}

func TestEstimateFixMinutes(t *testing.T) {
	// 1 error (30m) + 2 warnings (20m) + 5 info (10m) = 60m.
	issues := issuesOf(1, 2, 5)
	assert.Equal(t, 60, EstimateFixMinutes(issues))
}

func TestFormatFixTime(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{59, "59m"},
		{60, "1.0h"},
		{90, "1.5h"},
		{479, "8.0h"},
		{480, "1.0d"},
		{1200, "2.5d"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFixTime(tt.minutes), "minutes=%d", tt.minutes)
	}
}

func TestSummarize_NoIssues(t *testing.T) {
	s := Summarize(&QualityReport{Score: 100})
	assert.Equal(t, 100, s.Score)
	assert.Equal(t, 0, s.TotalIssues)
	assert.Equal(t, "0m", s.EstimatedFixTime)
	assert.Empty(t, s.TopCategories)
	assert.Empty(t, s.Hotspots)
}
