// Package quality defines the issue model shared by all checkers and the
// derivations computed from it: the 0-100 score, canned recommendations,
// coarse project statistics, and the smart summary digest.
package quality

// Severity classifies how strongly an issue should count against the score.
type Severity string

// Issue severities, ordered from most to least severe.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Categories shared across checkers. Structural checkers use
// OrganizationCategory instead, one per project type.
const (
	CategoryCodeQuality   = "code-quality"
	CategorySecurity      = "security"
	CategoryErrorHandling = "error-handling"
	CategoryComplexity    = "complexity"
	CategoryUnusedCode    = "unused-code"
	CategoryImports       = "imports"
	CategoryMaintenance   = "maintenance"
	CategoryDocumentation = "documentation"
)

// OrganizationCategory returns the structural-check category for a project
// type, e.g. "react-organization".
func OrganizationCategory(projectType string) string {
	return projectType + "-organization"
}

// Issue is one detected rule deviation. Issues are immutable once created
// and are collected in execution order; the order is reproducible but not
// semantically significant.
type Issue struct {
	Severity Severity `json:"severity"`
	Category string   `json:"category"`
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
	Rule     string   `json:"rule"`
}

// QualityStats is a coarse fingerprint of the analyzed tree, computed once
// per run over the sampled file set.
type QualityStats struct {
	TotalFiles      int     `json:"totalFiles"`
	TotalLines      int     `json:"totalLines"`
	AverageFileSize int     `json:"averageFileSize"`
	DuplicateCode   int     `json:"duplicateCode"`
	UnusedCode      int     `json:"unusedCode"`
	Complexity      float64 `json:"complexity"`
}

// QualityReport is the terminal artifact of one analysis run and the unit
// persisted by the snapshot store.
type QualityReport struct {
	ProjectPath     string       `json:"projectPath"`
	ProjectTypes    []string     `json:"projectTypes"`
	Score           int          `json:"score"`
	Issues          []Issue      `json:"issues"`
	Recommendations []string     `json:"recommendations"`
	Stats           QualityStats `json:"stats"`
	AnalysisType    string       `json:"analysisType"`
	AIInsights      []string     `json:"aiInsights,omitempty"`
}

// Analysis types recorded on a report.
const (
	AnalysisStandard = "standard"
	AnalysisDeep     = "deep"
)

// SourceFile pairs a file path with its content for stats computation.
type SourceFile struct {
	Path    string
	Content string
}

// CountBySeverity returns issue counts keyed by severity.
func CountBySeverity(issues []Issue) map[Severity]int {
	counts := make(map[Severity]int)
	for _, iss := range issues {
		counts[iss.Severity]++
	}
	return counts
}

// CountByCategory returns issue counts keyed by category.
func CountByCategory(issues []Issue) map[string]int {
	counts := make(map[string]int)
	for _, iss := range issues {
		counts[iss.Category]++
	}
	return counts
}
