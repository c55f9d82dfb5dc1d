// Package analyzer orchestrates a full quality analysis: project type
// detection, structural layout checks, lexical checks across collected
// sources, and reduction of the findings into a scored report.
package analyzer

import (
	"context"
	"fmt"
	"os"
	"path"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/zoharazr/code-quality-mcp/internal/checks"
	"github.com/zoharazr/code-quality-mcp/internal/collector"
	"github.com/zoharazr/code-quality-mcp/internal/config"
	"github.com/zoharazr/code-quality-mcp/internal/deep"
	"github.com/zoharazr/code-quality-mcp/internal/detect"
	"github.com/zoharazr/code-quality-mcp/internal/quality"
	"github.com/zoharazr/code-quality-mcp/internal/rules"
)

// Options select what a run analyzes and which optional check groups
// participate. Zero-value toggles mean off; callers that want the full
// standard run use DefaultOptions.
type Options struct {
	Path            string
	Types           []string // overrides detection when non-empty
	Deep            bool
	AI              bool
	CheckUnused     bool
	CheckComplexity bool
	CheckSecurity   bool
}

// DefaultOptions returns Options for a standard full analysis of path.
func DefaultOptions(path string) Options {
	return Options{
		Path:            path,
		CheckUnused:     true,
		CheckComplexity: true,
		CheckSecurity:   true,
	}
}

// Analyzer runs analyses with shared configuration and an optional AI
// oracle.
type Analyzer struct {
	cfg    *config.Config
	oracle deep.Oracle
}

// New creates an Analyzer. A nil oracle disables AI review.
func New(cfg *config.Config, oracle deep.Oracle) *Analyzer {
	if oracle == nil {
		oracle = deep.NoopOracle{}
	}
	return &Analyzer{cfg: cfg, oracle: oracle}
}

// Run performs one analysis and returns the scored report.
func (a *Analyzer) Run(ctx context.Context, opts Options) (*quality.QualityReport, error) {
	info, err := os.Stat(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("project path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path %s is not a directory", opts.Path)
	}

	detected := detect.Detect(opts.Path, opts.Deep)
	types := opts.Types
	if len(types) == 0 {
		types = detected.Types
	}

	c := collector.New(opts.Path, a.cfg.Analysis.Ignore...)
	issues := a.structuralChecks(c, detected, types, opts)

	paths := c.Collect(patternsFor(types)...)
	paths = samplePaths(paths, a.cfg.Analysis.MaxFilesPerCheck)
	files := make([]quality.SourceFile, len(paths))

	// One ruleset governs the whole run: the main framework's thresholds,
	// with its variant overlay applied.
	mainType := detected.MainFramework
	if len(opts.Types) > 0 {
		mainType = opts.Types[0]
	}
	ruleSet := rules.For(mainType, detected.Variant(mainType))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Analysis.Parallelism)
	for i, rel := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content := c.Read(rel)
			files[i] = quality.SourceFile{Path: rel, Content: content}
			found := a.lexicalChecks(content, rel, ruleSet, opts)

			mu.Lock()
			issues = append(issues, found...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.CheckUnused {
		exportFiles := files
		if len(exportFiles) > a.cfg.Analysis.ExportScanLimit {
			exportFiles = exportFiles[:a.cfg.Analysis.ExportScanLimit]
		}
		issues = append(issues, checks.CheckUnusedExports(exportFiles)...)
	}

	var insights []string
	if opts.Deep && opts.AI {
		aiIssues, aiInsights := a.reviewLargest(ctx, files)
		issues = append(issues, aiIssues...)
		insights = aiInsights
	}

	sortIssues(issues)

	analysisType := quality.AnalysisStandard
	if opts.Deep {
		analysisType = quality.AnalysisDeep
	}

	return &quality.QualityReport{
		ProjectPath:     opts.Path,
		ProjectTypes:    types,
		Score:           quality.Score(issues),
		Issues:          issues,
		Recommendations: quality.Recommendations(issues),
		Stats:           quality.ComputeStats(files, issues),
		AnalysisType:    analysisType,
		AIInsights:      insights,
	}, nil
}

// structuralChecks runs the layout and composite checks for every detected
// type, plus sub-project layouts when deep analysis discovered any.
func (a *Analyzer) structuralChecks(c *collector.Collector, detected detect.ProjectInfo, types []string, opts Options) []quality.Issue {
	var issues []quality.Issue
	for _, pt := range types {
		issues = append(issues, checks.CheckLayout(c, pt)...)
		switch pt {
		case detect.TypeReact, detect.TypeReactNative, detect.TypeNextJS, detect.TypeVue:
			issues = append(issues, checks.CheckReactComponents(c, pt)...)
		case detect.TypeFirebaseFunctions:
			issues = append(issues, checks.CheckFunctionModules(c)...)
		}
	}

	for _, sub := range detected.SubProjects {
		subCollector := collector.New(path.Join(detected.Path, sub.RelativePath), a.cfg.Analysis.Ignore...)
		for _, issue := range checks.CheckLayout(subCollector, sub.Type) {
			if issue.File == "" {
				issue.File = sub.RelativePath
			} else {
				issue.File = path.Join(sub.RelativePath, issue.File)
			}
			issues = append(issues, issue)
		}
	}
	return issues
}

// lexicalChecks runs every per-file check that applies under the options.
// Size hygiene always runs; the unused, complexity, and security groups are
// individually toggleable.
func (a *Analyzer) lexicalChecks(content, rel string, ruleSet rules.RuleSet, opts Options) []quality.Issue {
	var issues []quality.Issue
	issues = append(issues, checks.CheckDebugStatements(content, rel)...)
	issues = append(issues, checks.CheckDeepImports(content, rel)...)
	issues = append(issues, checks.CheckMarkerComments(content, rel)...)
	issues = append(issues, checks.CheckScriptComments(content, rel, a.cfg.Comments.Scripts)...)
	issues = append(issues, checks.CheckErrorLogging(content, rel)...)
	issues = append(issues, checks.CheckFileLength(content, rel, ruleSet)...)
	issues = append(issues, checks.CheckFunctionLength(content, rel, ruleSet)...)
	issues = append(issues, checks.CheckLineLength(content, rel, ruleSet)...)
	issues = append(issues, checks.CheckParameters(content, rel, ruleSet)...)
	if opts.CheckUnused {
		issues = append(issues, checks.CheckUnusedLocals(content, rel)...)
	}
	if opts.CheckComplexity {
		issues = append(issues, checks.CheckComplexity(content, rel, ruleSet)...)
		issues = append(issues, checks.CheckMethodsPerClass(content, rel, ruleSet)...)
	}
	if opts.CheckSecurity {
		issues = append(issues, checks.CheckSecrets(content, rel)...)
	}
	return issues
}

// reviewLargest sends the largest analyzed files to the oracle. Oracle
// failures degrade to heuristic-only results.
func (a *Analyzer) reviewLargest(ctx context.Context, files []quality.SourceFile) ([]quality.Issue, []string) {
	sorted := make([]quality.SourceFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i].Content) != len(sorted[j].Content) {
			return len(sorted[i].Content) > len(sorted[j].Content)
		}
		return sorted[i].Path < sorted[j].Path
	})

	limit := a.cfg.AI.MaxFiles
	if limit > len(sorted) {
		limit = len(sorted)
	}

	var issues []quality.Issue
	var insights []string
	for _, f := range sorted[:limit] {
		found, insight, err := a.oracle.Review(ctx, f.Content, f.Path)
		if err != nil {
			continue
		}
		issues = append(issues, found...)
		if insight != "" {
			insights = append(insights, fmt.Sprintf("%s: %s", f.Path, insight))
		}
	}
	return issues, insights
}

// samplePaths reduces a file list to at most max entries, evenly strided so
// the sample spans the whole tree rather than its alphabetical head.
func samplePaths(paths []string, max int) []string {
	if max <= 0 || len(paths) <= max {
		return paths
	}
	sampled := make([]string, 0, max)
	step := float64(len(paths)) / float64(max)
	for i := 0; i < max; i++ {
		sampled = append(sampled, paths[int(float64(i)*step)])
	}
	return sampled
}

// sortIssues orders issues for reproducible reports. Project-level issues
// sort ahead of file issues because their File field is empty.
func sortIssues(issues []quality.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].File != issues[j].File {
			return issues[i].File < issues[j].File
		}
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		if issues[i].Rule != issues[j].Rule {
			return issues[i].Rule < issues[j].Rule
		}
		return issues[i].Message < issues[j].Message
	})
}
