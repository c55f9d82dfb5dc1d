package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoharazr/code-quality-mcp/internal/config"
	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

func testConfig() *config.Config {
	return &config.Config{
		Analysis: config.DefaultAnalysis,
		AI:       config.DefaultAI,
		Comments: config.DefaultComments,
	}
}

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func hasRule(issues []quality.Issue, rule string) bool {
	for _, iss := range issues {
		if iss.Rule == rule {
			return true
		}
	}
	return false
}

func TestRun_SingleDebugStatement(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{"dependencies": {"express": "^4.18.0"}}`)
	write(t, root, "src/app.js", "console.log('boot');\n")

	report, err := New(testConfig(), nil).Run(context.Background(), DefaultOptions(root))
	require.NoError(t, err)

	// One error, nothing else. 100 - 5 = 95.
	require.Len(t, report.Issues, 1)
	assert.Equal(t, quality.SeverityError, report.Issues[0].Severity)
	assert.Equal(t, quality.CategoryCodeQuality, report.Issues[0].Category)
	assert.Equal(t, "no-console", report.Issues[0].Rule)
	assert.Equal(t, 95, report.Score)
	assert.Equal(t, []string{"node"}, report.ProjectTypes)
	assert.Equal(t, quality.AnalysisStandard, report.AnalysisType)
	require.Len(t, report.Recommendations, 1)
}

func TestRun_ComponentMissingEntry(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{"dependencies": {"react": "^18.2.0"}}`)
	write(t, root, "src/index.jsx", "export default function App() {\n  return null;\n}\n")
	write(t, root, "src/components/Card/helpers.ts", "export const pad = 4;\n")

	report, err := New(testConfig(), nil).Run(context.Background(), DefaultOptions(root))
	require.NoError(t, err)

	assert.True(t, hasRule(report.Issues, "react-component-structure"),
		"expected a component-structure finding, got %+v", report.Issues)
	assert.Less(t, report.Score, 100)
}

func TestRun_CleanProjectScoresFull(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{"dependencies": {"express": "^4.18.0"}}`)
	write(t, root, "src/server.js", "export function start(app) {\n  return app;\n}\n")

	report, err := New(testConfig(), nil).Run(context.Background(), DefaultOptions(root))
	require.NoError(t, err)

	assert.Equal(t, 100, report.Score)
	assert.Empty(t, report.Issues)
	assert.Empty(t, report.Recommendations)
	assert.Equal(t, 1, report.Stats.TotalFiles)
}

func TestRun_SecurityToggle(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{"dependencies": {"express": "^4.18.0"}}`)
	write(t, root, "src/settings.js", `const apiKey = "sk-abcdefgh12345678";`+"\n")

	opts := DefaultOptions(root)
	opts.CheckUnused = false

	report, err := New(testConfig(), nil).Run(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, hasRule(report.Issues, "no-hardcoded-secrets"))

	opts.CheckSecurity = false
	report, err = New(testConfig(), nil).Run(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, hasRule(report.Issues, "no-hardcoded-secrets"))
}

func TestRun_TypeOverride(t *testing.T) {
	root := t.TempDir()

	opts := DefaultOptions(root)
	opts.Types = []string{"flutter"}

	report, err := New(testConfig(), nil).Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"flutter"}, report.ProjectTypes)
	assert.True(t, hasRule(report.Issues, "flutter-folder-structure"))
	// Missing lib (error) and missing entrypoint (warning): 100 - 7 = 93.
	assert.Equal(t, 93, report.Score)
}

func TestRun_DeepChecksSubProjects(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{"name": "workspace"}`)
	write(t, root, "client/package.json", `{"dependencies": {"react": "^18.2.0"}}`)

	opts := DefaultOptions(root)
	opts.Deep = true

	report, err := New(testConfig(), nil).Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, quality.AnalysisDeep, report.AnalysisType)
	require.True(t, hasRule(report.Issues, "react-folder-structure"))
	for _, iss := range report.Issues {
		if iss.Rule == "react-folder-structure" {
			assert.Equal(t, "client", iss.File, "sub-project issues carry their relative path")
		}
	}
}

type stubOracle struct {
	issue   quality.Issue
	insight string
	calls   int
}

func (s *stubOracle) Review(ctx context.Context, content, path string) ([]quality.Issue, string, error) {
	s.calls++
	iss := s.issue
	iss.File = path
	return []quality.Issue{iss}, s.insight, nil
}

func TestRun_DeepWithAIOracle(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{"dependencies": {"express": "^4.18.0"}}`)
	write(t, root, "src/server.js", "export function start(app) {\n  return app;\n}\n")

	oracle := &stubOracle{
		issue:   quality.Issue{Severity: quality.SeverityInfo, Category: quality.CategoryCodeQuality, Line: 1, Message: "stub finding", Rule: "ai-review"},
		insight: "looks healthy",
	}

	opts := DefaultOptions(root)
	opts.Deep = true
	opts.AI = true

	report, err := New(testConfig(), oracle).Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 1, oracle.calls)
	assert.True(t, hasRule(report.Issues, "ai-review"))
	require.Len(t, report.AIInsights, 1)
	assert.Contains(t, report.AIInsights[0], "looks healthy")
}

func TestRun_StandardRunSkipsOracle(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{"dependencies": {"express": "^4.18.0"}}`)
	write(t, root, "src/server.js", "export function start(app) {\n  return app;\n}\n")

	oracle := &stubOracle{insight: "unreached"}
	report, err := New(testConfig(), oracle).Run(context.Background(), DefaultOptions(root))
	require.NoError(t, err)

	assert.Zero(t, oracle.calls)
	assert.Empty(t, report.AIInsights)
}

func TestRun_MissingPath(t *testing.T) {
	_, err := New(testConfig(), nil).Run(context.Background(), DefaultOptions("/does/not/exist"))
	require.Error(t, err)
}

func TestSamplePaths(t *testing.T) {
	paths := []string{"a", "b", "c", "d", "e", "f"}

	assert.Len(t, samplePaths(paths, 3), 3)
	assert.Equal(t, paths, samplePaths(paths, 10))
	assert.Equal(t, paths, samplePaths(paths, 0), "a zero cap disables sampling")

	// Strided sampling keeps entries from across the whole list.
	sampled := samplePaths(paths, 2)
	assert.Equal(t, []string{"a", "d"}, sampled)
}

func TestPatternsFor(t *testing.T) {
	assert.Equal(t, jsPatterns, patternsFor(nil))

	got := patternsFor([]string{"react", "nextjs"})
	assert.Equal(t, jsPatterns, got, "shared families do not duplicate patterns")

	mixed := patternsFor([]string{"flutter", "node"})
	assert.Contains(t, mixed, "**/*.dart")
	assert.Contains(t, mixed, "**/*.js")
}
