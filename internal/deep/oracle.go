// Package deep provides AI-powered review of selected source files during
// deep analysis. An Oracle reviews one file at a time; the default no-op
// implementation keeps deep analysis useful without an API key.
package deep

import (
	"context"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

// Oracle reviews a single source file and returns issues plus a prose
// insight. Implementations must treat their own failures as recoverable;
// callers degrade to heuristic-only results.
type Oracle interface {
	Review(ctx context.Context, content, path string) ([]quality.Issue, string, error)
}

// NoopOracle is the default Oracle. It contributes nothing.
type NoopOracle struct{}

// Review implements Oracle.
func (NoopOracle) Review(ctx context.Context, content, path string) ([]quality.Issue, string, error) {
	return nil, "", nil
}
