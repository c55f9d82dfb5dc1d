package store

import (
	"time"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

// Snapshot is a stored quality report for a single project path. Each
// project keeps exactly one snapshot: saving a newer report replaces the
// older one.
type Snapshot struct {
	PathHash    string                 `json:"path_hash"`
	ProjectPath string                 `json:"project_path"`
	TakenAt     time.Time              `json:"taken_at"`
	Report      *quality.QualityReport `json:"report"`
}
