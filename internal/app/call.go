package app

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zoharazr/code-quality-mcp/internal/mcp"
)

var (
	callList   bool
	callPipe   bool
	callFormat string
)

var callCmd = &cobra.Command{
	Use:   "call [tool] [json-args]",
	Short: "Invoke an MCP tool directly from the shell",
	Long: `Call runs one of the MCP tools without a connected agent, which is
useful for scripting and for CI pipelines that want the same JSON the
tools return.

Modes:
  codequality call --list                               List tools and parameters
  codequality call <tool> '{"projectPath":"..."}'       Call a tool with JSON args
  codequality call --pipe                               Read JSON lines from stdin

Tool names accept shorthand: "quality" is equivalent to "check_quality"
and "trends" to "get_trends".

Examples:
  codequality call --list
  codequality call analyze_project '{"projectPath":"/work/shop-api"}'
  codequality call quality '{"projectPath":".","pageSize":10}'
  echo '{"tool":"get_trends","args":{"projectPath":"."}}' | codequality call --pipe`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCall,
}

func init() {
	callCmd.Flags().BoolVar(&callList, "list", false, "List all available tools and their parameters")
	callCmd.Flags().BoolVar(&callPipe, "pipe", false, "Read JSON lines from stdin (pipe mode)")
	callCmd.Flags().StringVar(&callFormat, "format", "yaml", "Format for --list output: yaml, json, jsonl")
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	if callList {
		return runCallList()
	}
	if callPipe {
		return runCallPipe()
	}
	if len(args) == 0 {
		return fmt.Errorf("tool name required (run 'codequality call --list' to see available tools)")
	}
	return runCallSingle(args)
}

// openServer builds the MCP server the call modes share.
func openServer() (*mcp.Server, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	srv, err := mcp.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}
	return srv, nil
}

func runCallList() error {
	srv, err := openServer()
	if err != nil {
		return err
	}
	defer func() { _ = srv.Close() }()

	schemas := srv.GetToolSchemas()

	switch callFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(schemas)
	case "jsonl":
		enc := json.NewEncoder(os.Stdout)
		for _, s := range schemas {
			if err := enc.Encode(s); err != nil {
				return err
			}
		}
		return nil
	default: // yaml
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		return enc.Encode(schemas)
	}
}

func runCallSingle(args []string) error {
	toolName := normalizeToolName(args[0])

	var toolArgs map[string]interface{}
	if len(args) >= 2 {
		if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
			return fmt.Errorf("invalid JSON args: %w", err)
		}
	} else {
		toolArgs = make(map[string]interface{})
	}

	srv, err := openServer()
	if err != nil {
		return err
	}
	defer func() { _ = srv.Close() }()

	result, err := srv.CallTool(toolName, toolArgs)
	if err != nil {
		return err
	}

	fmt.Println(result)
	return nil
}

// pipeRequest is the JSON format for pipe mode input.
type pipeRequest struct {
	Tool string                 `json:"tool"`
	Args map[string]interface{} `json:"args"`
}

// pipeResponse is the JSON format for pipe mode output.
type pipeResponse struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func runCallPipe() error {
	srv, err := openServer()
	if err != nil {
		return err
	}
	defer func() { _ = srv.Close() }()

	enc := json.NewEncoder(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)
	// Allow larger lines (1MB).
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req pipeRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			_ = enc.Encode(pipeResponse{Error: fmt.Sprintf("invalid JSON: %v", err)})
			continue
		}

		toolName := normalizeToolName(req.Tool)
		if req.Args == nil {
			req.Args = make(map[string]interface{})
		}

		result, err := srv.CallTool(toolName, req.Args)
		if err != nil {
			_ = enc.Encode(pipeResponse{Error: err.Error()})
			continue
		}

		// Results are JSON already; pass them through raw when they parse.
		var raw json.RawMessage
		if err := json.Unmarshal([]byte(result), &raw); err != nil {
			b, _ := json.Marshal(result)
			raw = b
		}
		_ = enc.Encode(pipeResponse{Result: raw})
	}

	return scanner.Err()
}

// normalizeToolName maps accepted shorthands to full tool names.
// "quality" -> "check_quality", "trends" -> "get_trends".
func normalizeToolName(name string) string {
	switch name {
	case "analyze":
		return "analyze_project"
	case "quality", "check":
		return "check_quality"
	case "recommendations", "recommend":
		return "get_recommendations"
	case "summary":
		return "get_smart_summary"
	case "quickwins":
		return "get_quick_wins"
	case "trends":
		return "get_trends"
	}
	return name
}
