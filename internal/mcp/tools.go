package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zoharazr/code-quality-mcp/internal/analyzer"
	"github.com/zoharazr/code-quality-mcp/internal/detect"
	"github.com/zoharazr/code-quality-mcp/internal/quality"
	"github.com/zoharazr/code-quality-mcp/internal/trend"
)

// registerTools declares all six tools on the underlying MCP server.
// toolSchemaRegistry must be kept in sync with these definitions.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("analyze_project",
		mcp.WithDescription("Detect project frameworks, variants, and nested sub-projects in a directory tree."),
		mcp.WithString("projectPath",
			mcp.Required(),
			mcp.Description("Absolute path to the project root"),
		),
		mcp.WithBoolean("deep",
			mcp.Description("Also discover nested sub-projects"),
		),
	), s.handleAnalyzeProject)

	s.mcpServer.AddTool(mcp.NewTool("check_quality",
		mcp.WithDescription("Run the full quality analysis and return a scored, paginated report."),
		mcp.WithString("projectPath",
			mcp.Required(),
			mcp.Description("Absolute path to the project root"),
		),
		mcp.WithString("projectType",
			mcp.Description("Override framework detection (e.g. react, flutter)"),
		),
		mcp.WithBoolean("deepAnalysis",
			mcp.Description("Analyze nested sub-projects too"),
		),
		mcp.WithBoolean("aiEnabled",
			mcp.Description("Include AI review of the largest files (needs ANTHROPIC_API_KEY)"),
		),
		mcp.WithBoolean("checkUnusedCode",
			mcp.Description("Run unused-code checks (default: true)"),
		),
		mcp.WithBoolean("checkComplexity",
			mcp.Description("Run complexity checks (default: true)"),
		),
		mcp.WithBoolean("checkSecurity",
			mcp.Description("Run hardcoded-secret checks (default: true)"),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based issue page (default: 1)"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Issues per page (default: 50)"),
		),
	), s.handleCheckQuality)

	s.mcpServer.AddTool(mcp.NewTool("get_recommendations",
		mcp.WithDescription("Analyze a project and return prioritized recommendations with the top issues."),
		mcp.WithString("projectPath",
			mcp.Required(),
			mcp.Description("Absolute path to the project root"),
		),
	), s.handleRecommendations)

	s.mcpServer.AddTool(mcp.NewTool("get_smart_summary",
		mcp.WithDescription("Condensed health digest: score, issue counts, estimated fix time, top categories, file hotspots."),
		mcp.WithString("projectPath",
			mcp.Required(),
			mcp.Description("Absolute path to the project root"),
		),
	), s.handleSmartSummary)

	s.mcpServer.AddTool(mcp.NewTool("get_quick_wins",
		mcp.WithDescription("Bundles of repeated issues ranked by score gain per minute of fixing effort."),
		mcp.WithString("projectPath",
			mcp.Required(),
			mcp.Description("Absolute path to the project root"),
		),
	), s.handleQuickWins)

	s.mcpServer.AddTool(mcp.NewTool("get_trends",
		mcp.WithDescription("Compare current quality against the stored snapshot, then store the current report."),
		mcp.WithString("projectPath",
			mcp.Required(),
			mcp.Description("Absolute path to the project root"),
		),
	), s.handleTrends)
}

// Tool handlers. Failures become structured error results; the process
// keeps serving.

func (s *Server) handleAnalyzeProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, err := pathArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	deepScan, _ := args["deep"].(bool)

	result, err := s.executeAnalyzeProject(path, deepScan)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleCheckQuality(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, err := pathArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts, page, pageSize := checkQualityArgs(path, args)

	result, err := s.executeCheckQuality(ctx, opts, page, pageSize)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleRecommendations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := pathArg(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := s.executeRecommendations(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleSmartSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := pathArg(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := s.executeSmartSummary(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleQuickWins(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := pathArg(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := s.executeQuickWins(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleTrends(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := pathArg(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := s.executeTrends(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

// Execution functions.

func (s *Server) executeAnalyzeProject(path string, deepScan bool) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("project path: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project path %s is not a directory", path)
	}
	detected := detect.Detect(path, deepScan)
	return toJSON(detected)
}

// issuesSummary aggregates the full issue set regardless of the page
// returned.
type issuesSummary struct {
	BySeverity map[quality.Severity]int `json:"bySeverity"`
	ByCategory map[string]int           `json:"byCategory"`
}

type pagination struct {
	Page        int `json:"page"`
	PageSize    int `json:"pageSize"`
	TotalIssues int `json:"totalIssues"`
	TotalPages  int `json:"totalPages"`
}

type checkQualityResult struct {
	ProjectPath     string               `json:"projectPath"`
	ProjectTypes    []string             `json:"projectTypes"`
	Score           int                  `json:"score"`
	Issues          []quality.Issue      `json:"issues"`
	Pagination      pagination           `json:"pagination"`
	IssuesSummary   issuesSummary        `json:"issuesSummary"`
	Recommendations []string             `json:"recommendations"`
	Stats           quality.QualityStats `json:"stats"`
	AnalysisType    string               `json:"analysisType"`
	AIInsights      []string             `json:"aiInsights,omitempty"`
}

func (s *Server) executeCheckQuality(ctx context.Context, opts analyzer.Options, page, pageSize int) (string, error) {
	report, err := s.analyzer.Run(ctx, opts)
	if err != nil {
		return "", err
	}
	if err := s.db.SaveSnapshot(report); err != nil {
		return "", fmt.Errorf("persisting snapshot: %w", err)
	}

	total := len(report.Issues)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return toJSON(checkQualityResult{
		ProjectPath:  report.ProjectPath,
		ProjectTypes: report.ProjectTypes,
		Score:        report.Score,
		Issues:       report.Issues[start:end],
		Pagination: pagination{
			Page:        page,
			PageSize:    pageSize,
			TotalIssues: total,
			TotalPages:  totalPages,
		},
		IssuesSummary: issuesSummary{
			BySeverity: quality.CountBySeverity(report.Issues),
			ByCategory: quality.CountByCategory(report.Issues),
		},
		Recommendations: report.Recommendations,
		Stats:           report.Stats,
		AnalysisType:    report.AnalysisType,
		AIInsights:      report.AIInsights,
	})
}

func (s *Server) executeRecommendations(ctx context.Context, path string) (string, error) {
	report, err := s.analyzer.Run(ctx, analyzer.DefaultOptions(path))
	if err != nil {
		return "", err
	}

	top := report.Issues
	if len(top) > 5 {
		top = top[:5]
	}
	return toJSON(map[string]interface{}{
		"score":           report.Score,
		"projectTypes":    report.ProjectTypes,
		"recommendations": report.Recommendations,
		"topIssues":       top,
	})
}

func (s *Server) executeSmartSummary(ctx context.Context, path string) (string, error) {
	report, err := s.analyzer.Run(ctx, analyzer.DefaultOptions(path))
	if err != nil {
		return "", err
	}
	return toJSON(quality.Summarize(report))
}

func (s *Server) executeQuickWins(ctx context.Context, path string) (string, error) {
	report, err := s.analyzer.Run(ctx, analyzer.DefaultOptions(path))
	if err != nil {
		return "", err
	}
	return toJSON(map[string]interface{}{
		"projectPath": report.ProjectPath,
		"score":       report.Score,
		"quickWins":   trend.QuickWins(report),
	})
}

func (s *Server) executeTrends(ctx context.Context, path string) (string, error) {
	report, err := s.analyzer.Run(ctx, analyzer.DefaultOptions(path))
	if err != nil {
		return "", err
	}

	previous, err := s.db.LatestReport(path)
	if err != nil {
		return "", fmt.Errorf("loading snapshot: %w", err)
	}
	t := trend.Compute(previous, report)

	if err := s.db.SaveSnapshot(report); err != nil {
		return "", fmt.Errorf("persisting snapshot: %w", err)
	}
	return toJSON(map[string]interface{}{
		"projectPath": report.ProjectPath,
		"trend":       t,
	})
}
