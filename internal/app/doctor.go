package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoharazr/code-quality-mcp/internal/checks"
	"github.com/zoharazr/code-quality-mcp/internal/config"
	"github.com/zoharazr/code-quality-mcp/internal/detect"
	"github.com/zoharazr/code-quality-mcp/internal/output"
	"github.com/zoharazr/code-quality-mcp/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the codequality setup is healthy",
	Long: `Run a series of health checks against your codequality configuration,
the snapshot store, and the current directory. Prints a pass/fail line for
each check and a summary of how many checks passed.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	output.InitColor(flagNoColor)

	var cfgChecks []doctorCheck

	// 1. Configuration — loads without error.
	cfg, check := checkConfig()
	cfgChecks = append(cfgChecks, check)

	// 2. Config directory — exists or can be created.
	cfgChecks = append(cfgChecks, checkConfigDir())

	// Checks below need a loaded config; a broken config fails them all.
	if cfg != nil {
		// 3. Snapshot store — opens and migrates.
		cfgChecks = append(cfgChecks, checkStore(cfg.Store.Path))

		// 4. Comment scripts — all configured names are known.
		cfgChecks = append(cfgChecks, checkCommentScripts(cfg.Comments.Scripts))
	}

	// 5. Project detection — current directory carries known markers.
	cfgChecks = append(cfgChecks, checkProjectMarkers())

	// 6. API key — ANTHROPIC_API_KEY env var is set.
	cfgChecks = append(cfgChecks, checkAPIKey())

	// 7. Watch daemon — PID file exists and process is running.
	cfgChecks = append(cfgChecks, checkWatchDaemon())

	passed := 0
	for _, c := range cfgChecks {
		if c.Passed {
			passed++
		}
	}

	if flagJSON {
		out := doctorOutput{
			Checks:      cfgChecks,
			PassedCount: passed,
			TotalCount:  len(cfgChecks),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println(output.Section("Doctor"))
	fmt.Println()

	for _, c := range cfgChecks {
		renderDoctorCheck(c)
	}

	fmt.Println()
	summary := fmt.Sprintf("%d/%d checks passed", passed, len(cfgChecks))
	if passed == len(cfgChecks) {
		fmt.Printf(" %s\n\n", output.StyleSuccess.Render(summary))
	} else {
		fmt.Printf(" %s\n\n", output.StyleWarning.Render(summary))
	}

	return nil
}

// renderDoctorCheck prints a single check result line.
func renderDoctorCheck(c doctorCheck) {
	var indicator string
	if c.Passed {
		indicator = output.StyleSuccess.Render("✓")
	} else {
		indicator = output.StyleWarning.Render("✗")
	}
	label := output.StyleBold.Render(c.Name)
	detail := output.StyleMuted.Render(c.Message)
	fmt.Printf("  %s  %-30s %s\n", indicator, label, detail)
}

// checkConfig verifies the configuration loads, returning it for the
// dependent checks.
func checkConfig() (*config.Config, doctorCheck) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, doctorCheck{
			Name:    "Configuration",
			Passed:  false,
			Message: fmt.Sprintf("failed to load: %v", err),
		}
	}

	configPath := flagConfig
	if configPath == "" {
		configPath = filepath.Join(config.ConfigDir(), config.DefaultConfigFile)
	}
	if _, err := os.Stat(configPath); err != nil {
		return cfg, doctorCheck{
			Name:    "Configuration",
			Passed:  true,
			Message: "no config file, using built-in defaults",
		}
	}
	return cfg, doctorCheck{
		Name:    "Configuration",
		Passed:  true,
		Message: configPath,
	}
}

// checkConfigDir verifies the config directory exists or can be created.
func checkConfigDir() doctorCheck {
	dir := config.ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return doctorCheck{
			Name:    "Config directory",
			Passed:  false,
			Message: fmt.Sprintf("cannot create %s: %v", dir, err),
		}
	}
	return doctorCheck{
		Name:    "Config directory",
		Passed:  true,
		Message: dir,
	}
}

// checkStore verifies the snapshot database opens and migrates.
func checkStore(dbPath string) doctorCheck {
	db, err := store.Open(dbPath)
	if err != nil {
		return doctorCheck{
			Name:    "Snapshot store",
			Passed:  false,
			Message: fmt.Sprintf("cannot open %s: %v", dbPath, err),
		}
	}
	defer func() { _ = db.Close() }()

	snapshots, err := db.ListSnapshots()
	if err != nil {
		return doctorCheck{
			Name:    "Snapshot store",
			Passed:  false,
			Message: fmt.Sprintf("cannot list snapshots: %v", err),
		}
	}
	if len(snapshots) == 0 {
		return doctorCheck{
			Name:    "Snapshot store",
			Passed:  true,
			Message: "empty (run 'codequality check' to create a snapshot)",
		}
	}
	return doctorCheck{
		Name:    "Snapshot store",
		Passed:  true,
		Message: fmt.Sprintf("%d project snapshot(s) at %s", len(snapshots), dbPath),
	}
}

// checkCommentScripts verifies every configured script name is known.
func checkCommentScripts(scripts []string) doctorCheck {
	var unknown []string
	for _, name := range scripts {
		if !checks.KnownScript(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return doctorCheck{
			Name:    "Comment scripts",
			Passed:  false,
			Message: fmt.Sprintf("unknown script(s): %s (known: hebrew, arabic, cyrillic, cjk)", strings.Join(unknown, ", ")),
		}
	}
	if len(scripts) == 0 {
		return doctorCheck{
			Name:    "Comment scripts",
			Passed:  true,
			Message: "none configured, comment-script check disabled",
		}
	}
	return doctorCheck{
		Name:    "Comment scripts",
		Passed:  true,
		Message: strings.Join(scripts, ", "),
	}
}

// checkProjectMarkers reports whether the current directory looks like a
// project codequality can analyze.
func checkProjectMarkers() doctorCheck {
	cwd, err := os.Getwd()
	if err != nil {
		return doctorCheck{
			Name:    "Project detection",
			Passed:  false,
			Message: fmt.Sprintf("cannot resolve working directory: %v", err),
		}
	}

	info := detect.Detect(cwd, false)
	if len(info.Types) == 0 {
		return doctorCheck{
			Name:    "Project detection",
			Passed:  false,
			Message: "no known project markers in current directory",
		}
	}
	return doctorCheck{
		Name:    "Project detection",
		Passed:  true,
		Message: fmt.Sprintf("detected: %s", strings.Join(info.Types, ", ")),
	}
}

// checkAPIKey verifies that ANTHROPIC_API_KEY is set.
func checkAPIKey() doctorCheck {
	val := os.Getenv("ANTHROPIC_API_KEY")
	if val == "" {
		return doctorCheck{
			Name:    "API key",
			Passed:  false,
			Message: "ANTHROPIC_API_KEY is not set (needed for 'check --ai')",
		}
	}
	// Show only the first few characters.
	masked := val[:min(8, len(val))] + "..."
	return doctorCheck{
		Name:    "API key",
		Passed:  true,
		Message: fmt.Sprintf("ANTHROPIC_API_KEY set (%s)", masked),
	}
}

// checkWatchDaemon checks whether the watch daemon PID file exists and the
// process is running.
func checkWatchDaemon() doctorCheck {
	data, err := os.ReadFile(pidFilePath())
	if err != nil {
		return doctorCheck{
			Name:    "Watch daemon",
			Passed:  false,
			Message: "not running (no PID file)",
		}
	}

	pidStr := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		return doctorCheck{
			Name:    "Watch daemon",
			Passed:  false,
			Message: fmt.Sprintf("invalid PID in file: %q", pidStr),
		}
	}

	if !processAlive(pid) {
		return doctorCheck{
			Name:    "Watch daemon",
			Passed:  false,
			Message: fmt.Sprintf("PID %d is not running (stale PID file)", pid),
		}
	}

	return doctorCheck{
		Name:    "Watch daemon",
		Passed:  true,
		Message: fmt.Sprintf("running (PID %d)", pid),
	}
}

// min returns the smaller of two ints.
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
