package analyzer

var jsPatterns = []string{"**/*.js", "**/*.jsx", "**/*.ts", "**/*.tsx"}

// sourcePatterns map each project type to the glob patterns its sources
// match. Types sharing a language family share a slice.
var sourcePatterns = map[string][]string{
	"react":              jsPatterns,
	"react-native":       jsPatterns,
	"nextjs":             jsPatterns,
	"angular":            jsPatterns,
	"node":               jsPatterns,
	"firebase":           jsPatterns,
	"firebase-functions": jsPatterns,
	"vue":                append([]string{"**/*.vue"}, jsPatterns...),
	"spring-boot":        {"**/*.java", "**/*.kt"},
	"dotnet":             {"**/*.cs"},
	"flutter":            {"**/*.dart"},
}

// patternsFor unions the patterns of the detected types, preserving first
// appearance order. An undetected tree falls back to the JS family, the
// most common case for the projects this tool sees.
func patternsFor(types []string) []string {
	seen := make(map[string]bool)
	var patterns []string
	for _, t := range types {
		for _, p := range sourcePatterns[t] {
			if seen[p] {
				continue
			}
			seen[p] = true
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		return jsPatterns
	}
	return patterns
}
