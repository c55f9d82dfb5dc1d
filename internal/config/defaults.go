// Package config provides configuration loading and defaults for codequality.
package config

import "time"

// DefaultConfigDir is the default location for codequality configuration.
const DefaultConfigDir = "~/.config/codequality"

// DefaultDBName is the filename for the snapshot database.
const DefaultDBName = "snapshots.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultAIModel is the Claude model used for deep analysis insights.
const DefaultAIModel = "claude-sonnet-4-20250514"

// DefaultAnalysis holds the default analysis limits.
var DefaultAnalysis = Analysis{
	MaxFilesPerCheck: 200,
	ExportScanLimit:  50,
	Parallelism:      8,
}

// DefaultAI holds the default deep-analysis settings. AI review stays off
// until enabled explicitly.
var DefaultAI = AI{
	Enabled:  false,
	MaxFiles: 3,
	Model:    DefaultAIModel,
}

// DefaultComments holds the default comment-script checks.
var DefaultComments = Comments{
	Scripts: []string{"hebrew"},
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}

// DefaultWatch holds the default watch-mode settings.
var DefaultWatch = Watch{
	Interval:     5 * time.Minute,
	CriticalDrop: 10,
}
