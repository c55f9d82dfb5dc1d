package quality

import "strings"

// recommendationOrder fixes the order in which categories are checked when
// generating recommendations. The order is positional, not severity- or
// frequency-based, so output is stable across runs.
var recommendationOrder = []struct {
	category string
	advice   string
}{
	{CategoryCodeQuality, "Remove console and debug statements before shipping; route diagnostics through a logger"},
	{CategorySecurity, "Move hardcoded secrets into environment variables or a secrets manager"},
	{CategoryErrorHandling, "Log caught errors or rethrow them so failures stay observable"},
	{CategoryComplexity, "Split oversized files and functions into smaller, focused units"},
	{CategoryUnusedCode, "Delete unused variables and exports to keep the codebase lean"},
	{CategoryImports, "Replace deep relative imports with path aliases or a flatter layout"},
	{CategoryMaintenance, "Resolve TODO/FIXME markers or turn them into tracked tickets"},
	{CategoryDocumentation, "Translate non-English comments so the whole team can read them"},
}

const organizationSuffix = "-organization"

// Recommendations maps the set of categories present in the issue list to
// canned remediation strings. Shared categories are checked in a fixed
// order; structural "-organization" categories follow in first-seen order.
// Multiple recommendations may fire for one run.
func Recommendations(issues []Issue) []string {
	present := make(map[string]bool, len(issues))
	var orgOrder []string
	for _, iss := range issues {
		if !present[iss.Category] && strings.HasSuffix(iss.Category, organizationSuffix) {
			orgOrder = append(orgOrder, iss.Category)
		}
		present[iss.Category] = true
	}

	var recs []string
	for _, entry := range recommendationOrder {
		if present[entry.category] {
			recs = append(recs, entry.advice)
		}
	}

	for _, cat := range orgOrder {
		projectType := strings.TrimSuffix(cat, organizationSuffix)
		recs = append(recs, "Align the project layout with "+projectType+" conventions")
	}

	return recs
}
