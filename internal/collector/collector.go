// Package collector enumerates and reads project files. All reads are
// best-effort: missing or unreadable paths degrade to empty results so a
// single bad file never aborts an analysis run.
package collector

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultIgnore lists directory names pruned during collection: build
// artifacts, vendored dependencies, and framework-specific noise.
var DefaultIgnore = []string{
	"node_modules",
	".git",
	"dist",
	"build",
	".next",
	"out",
	"coverage",
	"vendor",
	"Pods",
	".dart_tool",
	".gradle",
	"target",
	"bin",
	"obj",
	"__pycache__",
	".idea",
	".vscode",
	".firebase",
	".expo",
	"android",
	"ios",
}

// Collector walks one project tree, matching files against glob patterns
// while honoring the ignore list.
type Collector struct {
	root   string
	ignore []string
}

// New creates a Collector rooted at the given directory. Extra ignore
// patterns from configuration are appended to DefaultIgnore; entries
// containing a slash or wildcard are matched as doublestar patterns against
// the relative path, plain entries match directory names.
func New(root string, extraIgnore ...string) *Collector {
	ignore := make([]string, 0, len(DefaultIgnore)+len(extraIgnore))
	ignore = append(ignore, DefaultIgnore...)
	ignore = append(ignore, extraIgnore...)
	return &Collector{root: root, ignore: ignore}
}

// Root returns the collector's root directory.
func (c *Collector) Root() string {
	return c.root
}

// Collect walks the tree and returns the relative paths of files matching
// any of the patterns, sorted for deterministic order. A missing root is a
// normal outcome and yields no files.
func (c *Collector) Collect(patterns ...string) []string {
	var matched []string

	_ = filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(c.root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if c.ignored(rel, d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		for _, pattern := range patterns {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				matched = append(matched, rel)
				return nil
			}
		}
		return nil
	})

	sort.Strings(matched)
	return matched
}

// ignored reports whether a directory should be pruned from the walk.
func (c *Collector) ignored(rel, name string) bool {
	for _, entry := range c.ignore {
		if strings.ContainsAny(entry, "/*?[") {
			if ok, _ := doublestar.Match(entry, rel); ok {
				return true
			}
			continue
		}
		if name == entry {
			return true
		}
	}
	return false
}

// Read returns the content of a file under the root, or an empty string if
// it does not exist or cannot be read.
func (c *Collector) Read(rel string) string {
	data, err := os.ReadFile(filepath.Join(c.root, rel))
	if err != nil {
		return ""
	}
	return string(data)
}

// Exists reports whether a file exists under the root.
func (c *Collector) Exists(rel string) bool {
	info, err := os.Stat(filepath.Join(c.root, rel))
	return err == nil && !info.IsDir()
}

// DirExists reports whether a directory exists under the root.
func (c *Collector) DirExists(rel string) bool {
	info, err := os.Stat(filepath.Join(c.root, rel))
	return err == nil && info.IsDir()
}

// ListDirs returns the names of immediate subdirectories of rel, sorted.
// Ignored directories are excluded; a missing parent yields nil.
func (c *Collector) ListDirs(rel string) []string {
	entries, err := os.ReadDir(filepath.Join(c.root, rel))
	if err != nil {
		return nil
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		child := e.Name()
		if rel != "" && rel != "." {
			child = filepath.ToSlash(filepath.Join(rel, e.Name()))
		}
		if c.ignored(child, e.Name()) {
			continue
		}
		dirs = append(dirs, e.Name())
	}
	sort.Strings(dirs)
	return dirs
}
