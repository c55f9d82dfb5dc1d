// Package manifest reads project manifests best-effort. A missing or
// malformed manifest is "signal absent", never an error: readers return nil
// or zero values and detection simply sees nothing.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PackageJSON is the subset of package.json that detection cares about.
type PackageJSON struct {
	Name            string            `json:"name"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
}

// ReadPackageJSON parses dir/package.json. Missing or unparseable files
// yield nil.
func ReadPackageJSON(dir string) *PackageJSON {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return nil
	}

	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil
	}
	return &pkg
}

// HasDependency reports whether the named package appears in dependencies
// or devDependencies. Safe on a nil receiver.
func (p *PackageJSON) HasDependency(name string) bool {
	if p == nil {
		return false
	}
	if _, ok := p.Dependencies[name]; ok {
		return true
	}
	_, ok := p.DevDependencies[name]
	return ok
}

// HasScriptContaining reports whether any script value contains the given
// substring. Safe on a nil receiver.
func (p *PackageJSON) HasScriptContaining(sub string) bool {
	if p == nil {
		return false
	}
	for _, script := range p.Scripts {
		if strings.Contains(script, sub) {
			return true
		}
	}
	return false
}

// DependencyNames returns the sorted union of dependency and devDependency
// names. Safe on a nil receiver.
func (p *PackageJSON) DependencyNames() []string {
	if p == nil {
		return nil
	}

	seen := make(map[string]bool, len(p.Dependencies)+len(p.DevDependencies))
	for name := range p.Dependencies {
		seen[name] = true
	}
	for name := range p.DevDependencies {
		seen[name] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReadText returns the content of dir/name, or "" when it cannot be read.
func ReadText(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return string(data)
}

// Contains reports whether dir/name exists and contains the substring.
// Used for substring probes of non-JSON manifests (pubspec.yaml, pom.xml,
// build.gradle) without pulling in format parsers.
func Contains(dir, name, substr string) bool {
	return strings.Contains(ReadText(dir, name), substr)
}

// Exists reports whether dir/name exists as a file.
func Exists(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}

// HasGlob reports whether any file directly under dir matches the pattern,
// e.g. "*.csproj".
func HasGlob(dir, pattern string) bool {
	matches, err := doublestar.FilepathGlob(filepath.Join(dir, pattern))
	return err == nil && len(matches) > 0
}
