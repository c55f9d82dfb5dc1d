package checks

import (
	"fmt"
	"path"
	"regexp"

	"github.com/zoharazr/code-quality-mcp/internal/collector"
	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

// componentDirs are the roots where React-style component directories are
// looked for, in preference order.
var componentDirs = []string{"src/components", "src/Components", "components", "app/components"}

var componentEntryExts = []string{".tsx", ".jsx", ".ts", ".js"}

// CheckReactComponents verifies that each component directory carries its
// entry file, either an index file or a file named after the component.
// Single-file components directly under the components root are fine as is.
func CheckReactComponents(c *collector.Collector, projectType string) []quality.Issue {
	root := ""
	for _, dir := range componentDirs {
		if c.DirExists(dir) {
			root = dir
			break
		}
	}
	if root == "" {
		return nil
	}

	var issues []quality.Issue
	for _, name := range c.ListDirs(root) {
		if hasComponentEntry(c, path.Join(root, name), name) {
			continue
		}
		issues = append(issues, quality.Issue{
			Severity: quality.SeverityWarning,
			Category: quality.OrganizationCategory(projectType),
			File:     path.Join(root, name),
			Message:  fmt.Sprintf("Component '%s' has no entry file (index or %s.tsx)", name, name),
			Rule:     "react-component-structure",
		})
	}
	return issues
}

func hasComponentEntry(c *collector.Collector, dir, name string) bool {
	for _, ext := range componentEntryExts {
		if c.Exists(path.Join(dir, "index"+ext)) || c.Exists(path.Join(dir, name+ext)) {
			return true
		}
	}
	return false
}

var functionModuleNameRe = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// CheckFunctionModules verifies Cloud Functions module directories under
// functions/src: each needs an index entry file and a kebab-case name so
// deploy targets stay predictable.
func CheckFunctionModules(c *collector.Collector) []quality.Issue {
	const root = "functions/src"
	if !c.DirExists(root) {
		return nil
	}

	var issues []quality.Issue
	for _, name := range c.ListDirs(root) {
		dir := path.Join(root, name)
		if !c.Exists(path.Join(dir, "index.ts")) && !c.Exists(path.Join(dir, "index.js")) {
			issues = append(issues, quality.Issue{
				Severity: quality.SeverityWarning,
				Category: quality.OrganizationCategory("firebase-functions"),
				File:     dir,
				Message:  fmt.Sprintf("Function module '%s' has no index entry file", name),
				Rule:     "functions-module-structure",
			})
		}
		if !functionModuleNameRe.MatchString(name) {
			issues = append(issues, quality.Issue{
				Severity: quality.SeverityInfo,
				Category: quality.OrganizationCategory("firebase-functions"),
				File:     dir,
				Message:  fmt.Sprintf("Function module '%s' should use kebab-case naming", name),
				Rule:     "functions-module-structure",
			})
		}
	}
	return issues
}
