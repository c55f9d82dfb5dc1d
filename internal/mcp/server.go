// Package mcp exposes the analysis engine as an MCP (Model Context
// Protocol) server, so AI agents can run quality checks through tools
// instead of the CLI.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/zoharazr/code-quality-mcp/internal/analyzer"
	"github.com/zoharazr/code-quality-mcp/internal/config"
	"github.com/zoharazr/code-quality-mcp/internal/deep"
	"github.com/zoharazr/code-quality-mcp/internal/store"
)

const (
	serverName    = "code-quality"
	serverVersion = "1.0.0"
)

// defaultPageSize bounds how many issues one check_quality page carries.
const defaultPageSize = 50

// maxPageSize caps client-requested page sizes.
const maxPageSize = 500

// Server wraps the MCP server with the analyzer and the snapshot store.
type Server struct {
	mcpServer *server.MCPServer
	analyzer  *analyzer.Analyzer
	db        *store.DB
	cfg       *config.Config
}

// New creates an MCP server around the given config, opening the snapshot
// store at its configured path. AI review activates only when enabled in
// config and ANTHROPIC_API_KEY is set.
func New(cfg *config.Config) (*Server, error) {
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot store: %w", err)
	}

	var oracle deep.Oracle
	if cfg.AI.Enabled {
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			oracle = deep.NewClaudeOracle(key, cfg.AI.Model)
		}
	}

	return newServer(cfg, db, oracle), nil
}

func newServer(cfg *config.Config, db *store.DB, oracle deep.Oracle) *Server {
	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer: mcpServer,
		analyzer:  analyzer.New(cfg, oracle),
		db:        db,
		cfg:       cfg,
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on the stdio transport and blocks until the
// client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Close releases the snapshot store.
func (s *Server) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ToolSchema describes a tool's name, description, and parameters.
type ToolSchema struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  []ParameterSchema `json:"parameters"`
}

// ParameterSchema describes a single tool parameter.
type ParameterSchema struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// ToolNames lists every exposed tool.
var ToolNames = []string{
	"analyze_project",
	"check_quality",
	"get_recommendations",
	"get_smart_summary",
	"get_quick_wins",
	"get_trends",
}

// toolSchemaRegistry holds the schema definitions for all tools. These
// mirror the mcp.NewTool() definitions in registerTools.
var toolSchemaRegistry = map[string]ToolSchema{
	"analyze_project": {
		Name:        "analyze_project",
		Description: "Detect project frameworks, variants, and nested sub-projects in a directory tree.",
		Parameters: []ParameterSchema{
			{Name: "projectPath", Type: "string", Description: "Absolute path to the project root", Required: true},
			{Name: "deep", Type: "boolean", Description: "Also discover nested sub-projects"},
		},
	},
	"check_quality": {
		Name:        "check_quality",
		Description: "Run the full quality analysis and return a scored, paginated report.",
		Parameters: []ParameterSchema{
			{Name: "projectPath", Type: "string", Description: "Absolute path to the project root", Required: true},
			{Name: "projectType", Type: "string", Description: "Override framework detection (e.g. react, flutter)"},
			{Name: "deepAnalysis", Type: "boolean", Description: "Analyze nested sub-projects too"},
			{Name: "aiEnabled", Type: "boolean", Description: "Include AI review of the largest files (needs ANTHROPIC_API_KEY)"},
			{Name: "checkUnusedCode", Type: "boolean", Description: "Run unused-code checks (default: true)"},
			{Name: "checkComplexity", Type: "boolean", Description: "Run complexity checks (default: true)"},
			{Name: "checkSecurity", Type: "boolean", Description: "Run hardcoded-secret checks (default: true)"},
			{Name: "page", Type: "number", Description: "1-based issue page (default: 1)"},
			{Name: "pageSize", Type: "number", Description: "Issues per page (default: 50)"},
		},
	},
	"get_recommendations": {
		Name:        "get_recommendations",
		Description: "Analyze a project and return prioritized recommendations with the top issues.",
		Parameters: []ParameterSchema{
			{Name: "projectPath", Type: "string", Description: "Absolute path to the project root", Required: true},
		},
	},
	"get_smart_summary": {
		Name:        "get_smart_summary",
		Description: "Condensed health digest: score, issue counts, estimated fix time, top categories, file hotspots.",
		Parameters: []ParameterSchema{
			{Name: "projectPath", Type: "string", Description: "Absolute path to the project root", Required: true},
		},
	},
	"get_quick_wins": {
		Name:        "get_quick_wins",
		Description: "Bundles of repeated issues ranked by score gain per minute of fixing effort.",
		Parameters: []ParameterSchema{
			{Name: "projectPath", Type: "string", Description: "Absolute path to the project root", Required: true},
		},
	},
	"get_trends": {
		Name:        "get_trends",
		Description: "Compare current quality against the stored snapshot, then store the current report.",
		Parameters: []ParameterSchema{
			{Name: "projectPath", Type: "string", Description: "Absolute path to the project root", Required: true},
		},
	},
}

// GetToolSchemas returns schemas for all registered tools in registration
// order.
func (s *Server) GetToolSchemas() []ToolSchema {
	schemas := make([]ToolSchema, 0, len(ToolNames))
	for _, name := range ToolNames {
		if schema, ok := toolSchemaRegistry[name]; ok {
			schemas = append(schemas, schema)
		}
	}
	return schemas
}

// CallTool dispatches a tool call by name with the given arguments and
// returns the JSON result string. It backs direct CLI invocation; the MCP
// handlers go through the same execute functions.
func (s *Server) CallTool(name string, args map[string]interface{}) (string, error) {
	ctx := context.Background()

	switch name {
	case "analyze_project":
		path, err := pathArg(args)
		if err != nil {
			return "", err
		}
		deepScan, _ := args["deep"].(bool)
		return s.executeAnalyzeProject(path, deepScan)

	case "check_quality":
		path, err := pathArg(args)
		if err != nil {
			return "", err
		}
		opts, page, pageSize := checkQualityArgs(path, args)
		return s.executeCheckQuality(ctx, opts, page, pageSize)

	case "get_recommendations":
		path, err := pathArg(args)
		if err != nil {
			return "", err
		}
		return s.executeRecommendations(ctx, path)

	case "get_smart_summary":
		path, err := pathArg(args)
		if err != nil {
			return "", err
		}
		return s.executeSmartSummary(ctx, path)

	case "get_quick_wins":
		path, err := pathArg(args)
		if err != nil {
			return "", err
		}
		return s.executeQuickWins(ctx, path)

	case "get_trends":
		path, err := pathArg(args)
		if err != nil {
			return "", err
		}
		return s.executeTrends(ctx, path)

	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// pathArg extracts the required projectPath argument.
func pathArg(args map[string]interface{}) (string, error) {
	path, _ := args["projectPath"].(string)
	if path == "" {
		return "", fmt.Errorf("projectPath parameter is required")
	}
	return path, nil
}

// checkQualityArgs builds analyzer options and pagination from raw
// arguments. Unstated toggles keep their defaults; JSON numbers arrive as
// float64.
func checkQualityArgs(path string, args map[string]interface{}) (analyzer.Options, int, int) {
	opts := analyzer.DefaultOptions(path)
	if t, ok := args["projectType"].(string); ok && t != "" {
		opts.Types = []string{t}
	}
	if v, ok := args["deepAnalysis"].(bool); ok {
		opts.Deep = v
	}
	if v, ok := args["aiEnabled"].(bool); ok {
		opts.AI = v
	}
	if v, ok := args["checkUnusedCode"].(bool); ok {
		opts.CheckUnused = v
	}
	if v, ok := args["checkComplexity"].(bool); ok {
		opts.CheckComplexity = v
	}
	if v, ok := args["checkSecurity"].(bool); ok {
		opts.CheckSecurity = v
	}

	page := 1
	if p, ok := args["page"].(float64); ok && p >= 1 {
		page = int(p)
	}
	pageSize := defaultPageSize
	if p, ok := args["pageSize"].(float64); ok && p >= 1 {
		pageSize = int(p)
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
	}
	return opts, page, pageSize
}

func toJSON(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
