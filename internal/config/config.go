package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level codequality configuration.
type Config struct {
	Analysis Analysis `mapstructure:"analysis"`
	AI       AI       `mapstructure:"ai"`
	Comments Comments `mapstructure:"comments"`
	Store    Store    `mapstructure:"store"`
	Output   Output   `mapstructure:"output"`
	Watch    Watch    `mapstructure:"watch"`
}

// Analysis bounds how much work a single run may do.
type Analysis struct {
	MaxFilesPerCheck int      `mapstructure:"max_files_per_check"`
	ExportScanLimit  int      `mapstructure:"export_scan_limit"`
	Parallelism      int      `mapstructure:"parallelism"`
	Ignore           []string `mapstructure:"ignore"`
}

// AI configures deep-analysis insight generation. The API key is read only
// from the ANTHROPIC_API_KEY environment variable, never from config.
type AI struct {
	Enabled  bool   `mapstructure:"enabled"`
	MaxFiles int    `mapstructure:"max_files"`
	Model    string `mapstructure:"model"`
}

// Comments configures the comment-script checks.
type Comments struct {
	Scripts []string `mapstructure:"scripts"`
}

// Store configures snapshot persistence.
type Store struct {
	Path string `mapstructure:"path"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// Watch defines watch-mode polling and alerting.
type Watch struct {
	Interval     time.Duration `mapstructure:"interval"`
	CriticalDrop int           `mapstructure:"critical_drop"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("analysis.max_files_per_check", DefaultAnalysis.MaxFilesPerCheck)
	v.SetDefault("analysis.export_scan_limit", DefaultAnalysis.ExportScanLimit)
	v.SetDefault("analysis.parallelism", DefaultAnalysis.Parallelism)
	v.SetDefault("analysis.ignore", []string{})
	v.SetDefault("ai.enabled", DefaultAI.Enabled)
	v.SetDefault("ai.max_files", DefaultAI.MaxFiles)
	v.SetDefault("ai.model", DefaultAI.Model)
	v.SetDefault("comments.scripts", DefaultComments.Scripts)
	v.SetDefault("store.path", "")
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
	v.SetDefault("watch.interval", DefaultWatch.Interval.String())
	v.SetDefault("watch.critical_drop", DefaultWatch.CriticalDrop)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Expand paths.
	if cfg.Store.Path == "" {
		cfg.Store.Path = DBPath()
	} else {
		cfg.Store.Path = expandPath(cfg.Store.Path)
	}

	return &cfg, nil
}

// DBPath returns the full path to the snapshot database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
