package checks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zoharazr/code-quality-mcp/internal/collector"
	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

// layoutRule is one expected entry in a project type's layout. AnyOf lists
// alternative paths; the rule is satisfied when any of them exists as a
// file or directory. Only required entries produce issues when absent.
type layoutRule struct {
	AnyOf    []string
	Required bool
	Severity quality.Severity
	Reason   string
}

var layouts = map[string][]layoutRule{
	"react": {
		{AnyOf: []string{"src"}, Required: true, Severity: quality.SeverityWarning, Reason: "application code belongs under src"},
		{AnyOf: []string{"src/components", "src/Components", "components"}, Reason: "shared UI components directory"},
		{AnyOf: []string{"public", "index.html"}, Reason: "static assets and HTML shell"},
	},
	"react-native": {
		{AnyOf: []string{"App.tsx", "App.jsx", "App.js", "app/_layout.tsx"}, Required: true, Severity: quality.SeverityWarning, Reason: "root component entrypoint"},
		{AnyOf: []string{"src", "app"}, Reason: "application code directory"},
	},
	"nextjs": {
		{AnyOf: []string{"app", "src/app", "pages", "src/pages"}, Required: true, Severity: quality.SeverityError, Reason: "routing directory drives the whole framework"},
		{AnyOf: []string{"public"}, Reason: "static assets directory"},
		{AnyOf: []string{"next.config.js", "next.config.mjs", "next.config.ts"}, Reason: "framework configuration"},
	},
	"angular": {
		{AnyOf: []string{"src"}, Required: true, Severity: quality.SeverityWarning, Reason: "workspace source root"},
		{AnyOf: []string{"src/app"}, Required: true, Severity: quality.SeverityWarning, Reason: "root application module"},
		{AnyOf: []string{"src/environments"}, Reason: "per-environment configuration"},
	},
	"vue": {
		{AnyOf: []string{"src"}, Required: true, Severity: quality.SeverityWarning, Reason: "application code belongs under src"},
		{AnyOf: []string{"src/components"}, Reason: "shared UI components directory"},
	},
	"node": {
		{AnyOf: []string{"src", "lib", "server"}, Required: true, Severity: quality.SeverityWarning, Reason: "server code should live in a source directory, not the repo root"},
		{AnyOf: []string{"test", "tests", "__tests__", "spec"}, Reason: "test directory"},
	},
	"firebase": {
		{AnyOf: []string{"firebase.json"}, Required: true, Severity: quality.SeverityWarning, Reason: "deployment targets and hosting rules"},
		{AnyOf: []string{".firebaserc"}, Reason: "project aliases"},
	},
	"firebase-functions": {
		{AnyOf: []string{"functions"}, Required: true, Severity: quality.SeverityError, Reason: "functions root directory"},
		{AnyOf: []string{"functions/package.json"}, Required: true, Severity: quality.SeverityWarning, Reason: "functions runtime manifest"},
		{AnyOf: []string{"functions/src", "functions/index.js", "functions/index.ts"}, Required: true, Severity: quality.SeverityWarning, Reason: "functions entrypoint"},
	},
	"spring-boot": {
		{AnyOf: []string{"src/main/java", "src/main/kotlin"}, Required: true, Severity: quality.SeverityError, Reason: "Maven/Gradle source root"},
		{AnyOf: []string{"src/main/resources"}, Required: true, Severity: quality.SeverityWarning, Reason: "application properties and static resources"},
		{AnyOf: []string{"src/test/java", "src/test/kotlin"}, Reason: "test source root"},
	},
	"dotnet": {
		{AnyOf: []string{"appsettings.json", "appsettings.Development.json"}, Reason: "runtime configuration"},
		{AnyOf: []string{"Properties"}, Reason: "launch settings"},
	},
	"flutter": {
		{AnyOf: []string{"lib"}, Required: true, Severity: quality.SeverityError, Reason: "Dart sources live under lib"},
		{AnyOf: []string{"lib/main.dart"}, Required: true, Severity: quality.SeverityWarning, Reason: "application entrypoint"},
		{AnyOf: []string{"test"}, Reason: "test directory"},
	},
}

// CheckLayout compares the project tree against the layout expected for one
// detected type. Absent required entries become issues; optional entries
// document convention without penalizing its absence.
func CheckLayout(c *collector.Collector, projectType string) []quality.Issue {
	var issues []quality.Issue
	for _, rule := range layouts[projectType] {
		if !rule.Required || layoutSatisfied(c, rule) {
			continue
		}
		issues = append(issues, quality.Issue{
			Severity: rule.Severity,
			Category: quality.OrganizationCategory(projectType),
			Message:  fmt.Sprintf("Missing %s: %s", strings.Join(rule.AnyOf, " or "), rule.Reason),
			Rule:     projectType + "-folder-structure",
		})
	}
	return issues
}

func layoutSatisfied(c *collector.Collector, rule layoutRule) bool {
	for _, p := range rule.AnyOf {
		if c.Exists(p) || c.DirExists(p) {
			return true
		}
	}
	return false
}

// LayoutTypes lists the project types with a declared layout, for the
// doctor command.
func LayoutTypes() []string {
	types := make([]string, 0, len(layouts))
	for t := range layouts {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
