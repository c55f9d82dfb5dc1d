// Package detect classifies a directory tree into framework convention tags.
// Every signal is evaluated unconditionally so multiple tags can coexist on
// one tree; missing or malformed manifests simply contribute no signal.
package detect

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/zoharazr/code-quality-mcp/internal/manifest"
)

// Project type tags.
const (
	TypeReact             = "react"
	TypeReactNative       = "react-native"
	TypeNextJS            = "nextjs"
	TypeAngular           = "angular"
	TypeVue               = "vue"
	TypeNode              = "node"
	TypeFirebase          = "firebase"
	TypeFirebaseFunctions = "firebase-functions"
	TypeSpringBoot        = "spring-boot"
	TypeDotnet            = "dotnet"
	TypeFlutter           = "flutter"
)

// Variant names produced by secondary refinement signals.
const (
	VariantAppRouter   = "app-router"
	VariantPagesRouter = "pages-router"
	VariantCRA         = "create-react-app"
	VariantVite        = "vite"
)

// SubProject is one nested project discovered in deep mode. Created once
// during discovery and immutable thereafter; RelativePath is unique within
// its parent ProjectInfo.
type SubProject struct {
	RelativePath string   `json:"relativePath"`
	Type         string   `json:"type"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// ProjectInfo is the detection result for one tree.
type ProjectInfo struct {
	Path           string            `json:"path"`
	Types          []string          `json:"types"`
	Variants       map[string]string `json:"variants,omitempty"`
	IsMultiProject bool              `json:"isMultiProject"`
	SubProjects    []SubProject      `json:"subProjects,omitempty"`
	MainFramework  string            `json:"mainFramework,omitempty"`
}

// HasType reports whether the tree carries the given tag.
func (p *ProjectInfo) HasType(projectType string) bool {
	for _, t := range p.Types {
		if t == projectType {
			return true
		}
	}
	return false
}

// Variant returns the refined variant for a type, or "".
func (p *ProjectInfo) Variant(projectType string) string {
	return p.Variants[projectType]
}

// signal is one primary detection probe. All signals run on every tree; the
// declaration order fixes the order of the resulting Types slice.
type signal struct {
	tag   string
	probe func(dir string, pkg *manifest.PackageJSON) bool
}

var signals = []signal{
	{TypeReact, func(dir string, pkg *manifest.PackageJSON) bool {
		// react-native apps depend on react as well; the react-native tag
		// covers them.
		return pkg.HasDependency("react") && !pkg.HasDependency("react-native")
	}},
	{TypeReactNative, func(dir string, pkg *manifest.PackageJSON) bool {
		return pkg.HasDependency("react-native")
	}},
	{TypeNextJS, func(dir string, pkg *manifest.PackageJSON) bool {
		return pkg.HasDependency("next")
	}},
	{TypeAngular, func(dir string, pkg *manifest.PackageJSON) bool {
		return pkg.HasDependency("@angular/core") || manifest.Exists(dir, "angular.json")
	}},
	{TypeVue, func(dir string, pkg *manifest.PackageJSON) bool {
		return pkg.HasDependency("vue") || manifest.Exists(dir, "vue.config.js")
	}},
	{TypeNode, func(dir string, pkg *manifest.PackageJSON) bool {
		return pkg.HasDependency("express") ||
			pkg.HasDependency("fastify") ||
			pkg.HasDependency("koa") ||
			pkg.HasDependency("@nestjs/core")
	}},
	{TypeFirebase, func(dir string, pkg *manifest.PackageJSON) bool {
		return manifest.Exists(dir, "firebase.json") || manifest.Exists(dir, ".firebaserc")
	}},
	{TypeFirebaseFunctions, func(dir string, pkg *manifest.PackageJSON) bool {
		if pkg.HasDependency("firebase-functions") {
			return true
		}
		// Conventional layout: a functions/ directory with its own manifest.
		sub := manifest.ReadPackageJSON(filepath.Join(dir, "functions"))
		return sub.HasDependency("firebase-functions")
	}},
	{TypeSpringBoot, func(dir string, pkg *manifest.PackageJSON) bool {
		return manifest.Contains(dir, "pom.xml", "spring-boot") ||
			manifest.Contains(dir, "build.gradle", "org.springframework.boot") ||
			manifest.Contains(dir, "build.gradle.kts", "org.springframework.boot")
	}},
	{TypeDotnet, func(dir string, pkg *manifest.PackageJSON) bool {
		return manifest.HasGlob(dir, "*.csproj") ||
			manifest.HasGlob(dir, "*.sln") ||
			manifest.HasGlob(dir, "*.fsproj")
	}},
	{TypeFlutter, func(dir string, pkg *manifest.PackageJSON) bool {
		return manifest.Contains(dir, "pubspec.yaml", "flutter:")
	}},
}

// mainFrameworkPriority orders tags from most to least specific when picking
// the main framework.
var mainFrameworkPriority = []string{
	TypeNextJS,
	TypeReactNative,
	TypeReact,
	TypeAngular,
	TypeVue,
	TypeFlutter,
	TypeNode,
	TypeFirebaseFunctions,
	TypeSpringBoot,
	TypeDotnet,
	TypeFirebase,
}

// subProjectDirs is the fixed list of conventional nested-project
// directories scanned one level deep when deep mode is on.
var subProjectDirs = []string{
	"client", "server", "frontend", "backend", "api", "web", "mobile", "functions",
}

// Detect classifies the tree at rootPath. With deep set, conventional
// sub-project directories are scanned for secondary manifests.
func Detect(rootPath string, deep bool) ProjectInfo {
	info := ProjectInfo{Path: rootPath}

	info.Types = detectTypes(rootPath)
	info.Variants = detectVariants(rootPath, info.Types)

	if deep {
		info.SubProjects = discoverSubProjects(rootPath)
	}

	info.IsMultiProject = len(info.Types) > 1 || len(info.SubProjects) > 0
	info.MainFramework = mainFramework(info.Types)
	return info
}

// detectTypes runs every primary signal against one directory.
func detectTypes(dir string) []string {
	pkg := manifest.ReadPackageJSON(dir)

	var types []string
	for _, s := range signals {
		if s.probe(dir, pkg) {
			types = append(types, s.tag)
		}
	}
	return types
}

// detectVariants refines detected tags with secondary signals.
func detectVariants(dir string, types []string) map[string]string {
	variants := make(map[string]string)

	for _, t := range types {
		switch t {
		case TypeNextJS:
			// Routing style from directory layout; app router wins when a
			// tree carries both during migration.
			switch {
			case dirExists(dir, "app") || dirExists(dir, "src/app"):
				variants[TypeNextJS] = VariantAppRouter
			case dirExists(dir, "pages") || dirExists(dir, "src/pages"):
				variants[TypeNextJS] = VariantPagesRouter
			}
		case TypeReact:
			// Toolchain from script conventions.
			pkg := manifest.ReadPackageJSON(dir)
			switch {
			case pkg.HasScriptContaining("react-scripts"):
				variants[TypeReact] = VariantCRA
			case pkg.HasScriptContaining("vite") || pkg.HasDependency("vite"):
				variants[TypeReact] = VariantVite
			}
		}
	}

	if len(variants) == 0 {
		return nil
	}
	return variants
}

// discoverSubProjects scans the fixed directory list plus workspace
// packages one level deep for secondary manifests.
func discoverSubProjects(rootPath string) []SubProject {
	candidates := make([]string, 0, len(subProjectDirs)+4)
	candidates = append(candidates, subProjectDirs...)
	for _, name := range listDirs(filepath.Join(rootPath, "packages")) {
		candidates = append(candidates, filepath.ToSlash(filepath.Join("packages", name)))
	}

	var subs []SubProject
	for _, rel := range candidates {
		dir := filepath.Join(rootPath, rel)
		if !dirExists(rootPath, rel) {
			continue
		}

		types := detectTypes(dir)
		pkg := manifest.ReadPackageJSON(dir)

		subType := mainFramework(types)
		if subType == "" {
			// A plain manifest with no framework signal still resolves as a
			// generic node package.
			if pkg == nil {
				continue
			}
			subType = TypeNode
		}

		subs = append(subs, SubProject{
			RelativePath: rel,
			Type:         subType,
			Dependencies: pkg.DependencyNames(),
		})
	}
	return subs
}

// dirExists reports whether rel exists as a directory under root.
func dirExists(root, rel string) bool {
	info, err := os.Stat(filepath.Join(root, rel))
	return err == nil && info.IsDir()
}

// listDirs returns the names of immediate subdirectories, or nil when the
// parent is missing.
func listDirs(path string) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs
}

// mainFramework picks the most specific detected tag, falling back to the
// first detected tag when none is in the priority table.
func mainFramework(types []string) string {
	if len(types) == 0 {
		return ""
	}

	detected := make(map[string]bool, len(types))
	for _, t := range types {
		detected[t] = true
	}
	for _, t := range mainFrameworkPriority {
		if detected[t] {
			return t
		}
	}
	return types[0]
}
