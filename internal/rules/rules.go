// Package rules holds the per-framework threshold catalog. Lookup is a pure
// function over immutable tables, safe to call concurrently from any checker.
package rules

// RuleSet bundles the numeric thresholds applied by the length, parameter,
// and complexity checks for one (type, variant) pair. Values are resolved
// once per analysis and never mutated.
type RuleSet struct {
	MaxFileLines       int `json:"maxFileLines"`
	MaxFunctionLines   int `json:"maxFunctionLines"`
	MaxLineLength      int `json:"maxLineLength"`
	MaxParameters      int `json:"maxParameters"`
	MaxMethodsPerClass int `json:"maxMethodsPerClass"`
	MaxComplexity      int `json:"maxComplexity"`
}

// Default is the fallback RuleSet for unknown project types.
var Default = RuleSet{
	MaxFileLines:       300,
	MaxFunctionLines:   50,
	MaxLineLength:      120,
	MaxParameters:      4,
	MaxMethodsPerClass: 10,
	MaxComplexity:      10,
}

// catalog maps a project type to its base RuleSet.
var catalog = map[string]RuleSet{
	"react":              {MaxFileLines: 250, MaxFunctionLines: 40, MaxLineLength: 100, MaxParameters: 4, MaxMethodsPerClass: 8, MaxComplexity: 10},
	"react-native":       {MaxFileLines: 250, MaxFunctionLines: 40, MaxLineLength: 100, MaxParameters: 4, MaxMethodsPerClass: 8, MaxComplexity: 10},
	"nextjs":             {MaxFileLines: 250, MaxFunctionLines: 40, MaxLineLength: 100, MaxParameters: 4, MaxMethodsPerClass: 8, MaxComplexity: 10},
	"angular":            {MaxFileLines: 400, MaxFunctionLines: 60, MaxLineLength: 140, MaxParameters: 5, MaxMethodsPerClass: 15, MaxComplexity: 12},
	"vue":                {MaxFileLines: 300, MaxFunctionLines: 50, MaxLineLength: 120, MaxParameters: 4, MaxMethodsPerClass: 10, MaxComplexity: 10},
	"node":               {MaxFileLines: 400, MaxFunctionLines: 60, MaxLineLength: 120, MaxParameters: 5, MaxMethodsPerClass: 12, MaxComplexity: 12},
	"firebase":           {MaxFileLines: 300, MaxFunctionLines: 50, MaxLineLength: 120, MaxParameters: 4, MaxMethodsPerClass: 10, MaxComplexity: 10},
	"firebase-functions": {MaxFileLines: 350, MaxFunctionLines: 75, MaxLineLength: 120, MaxParameters: 5, MaxMethodsPerClass: 10, MaxComplexity: 12},
	"spring-boot":        {MaxFileLines: 500, MaxFunctionLines: 60, MaxLineLength: 140, MaxParameters: 6, MaxMethodsPerClass: 20, MaxComplexity: 15},
	"dotnet":             {MaxFileLines: 500, MaxFunctionLines: 60, MaxLineLength: 140, MaxParameters: 6, MaxMethodsPerClass: 20, MaxComplexity: 15},
	"flutter":            {MaxFileLines: 350, MaxFunctionLines: 60, MaxLineLength: 100, MaxParameters: 5, MaxMethodsPerClass: 12, MaxComplexity: 12},
}

// Override adjusts selected thresholds for a variant. Zero fields inherit
// the base value.
type Override struct {
	MaxFileLines       int
	MaxFunctionLines   int
	MaxLineLength      int
	MaxParameters      int
	MaxMethodsPerClass int
	MaxComplexity      int
}

// overrides maps project type -> variant -> threshold overrides.
var overrides = map[string]map[string]Override{
	"nextjs": {
		// App-router trees keep route files lean; layouts and pages are
		// expected to compose from components.
		"app-router":   {MaxFileLines: 200, MaxFunctionLines: 35},
		"pages-router": {MaxFileLines: 300},
	},
	"react": {
		"create-react-app": {MaxFileLines: 300},
	},
}

// For resolves the RuleSet for a (type, variant) pair. The lookup is total:
// unknown types fall back to Default, unknown variants to the type's base.
func For(projectType, variant string) RuleSet {
	rs, ok := catalog[projectType]
	if !ok {
		rs = Default
	}

	if variant == "" {
		return rs
	}
	ov, ok := overrides[projectType][variant]
	if !ok {
		return rs
	}

	if ov.MaxFileLines != 0 {
		rs.MaxFileLines = ov.MaxFileLines
	}
	if ov.MaxFunctionLines != 0 {
		rs.MaxFunctionLines = ov.MaxFunctionLines
	}
	if ov.MaxLineLength != 0 {
		rs.MaxLineLength = ov.MaxLineLength
	}
	if ov.MaxParameters != 0 {
		rs.MaxParameters = ov.MaxParameters
	}
	if ov.MaxMethodsPerClass != 0 {
		rs.MaxMethodsPerClass = ov.MaxMethodsPerClass
	}
	if ov.MaxComplexity != 0 {
		rs.MaxComplexity = ov.MaxComplexity
	}
	return rs
}
