// Package watcher provides background monitoring of a project's quality
// score, re-running analysis on an interval and emitting alerts on
// regressions.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/zoharazr/code-quality-mcp/internal/analyzer"
	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

// WatchState captures one analysis pass over the watched project.
type WatchState struct {
	Timestamp  time.Time
	Score      int
	IssueCount int
	Report     *quality.QualityReport

	// errorKeys indexes error-severity issues by file and rule, so new
	// errors can be told apart from persisting ones.
	errorKeys map[string]bool
}

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level   string // "info", "warning", "critical"
	Title   string
	Message string
	Time    time.Time
}

// Watcher re-analyzes a project directory at a regular interval and emits
// alerts when the quality score regresses or new errors appear.
type Watcher struct {
	path          string
	interval      time.Duration
	analyzer      *analyzer.Analyzer
	previous      *WatchState
	alertFn       func(Alert)     // callback for emitting alerts
	lastAlertKeys map[string]bool // dedup: suppress repeated identical alerts

	// CriticalDrop is the score loss that escalates a drop alert from
	// warning to critical.
	CriticalDrop int
}

// New creates a Watcher for the given project directory.
func New(path string, interval time.Duration, a *analyzer.Analyzer, alertFn func(Alert)) *Watcher {
	return &Watcher{
		path:          path,
		interval:      interval,
		analyzer:      a,
		alertFn:       alertFn,
		lastAlertKeys: make(map[string]bool),
		CriticalDrop:  10,
	}
}

// Baseline runs the initial analysis and installs it as the comparison
// state, returning it for display.
func (w *Watcher) Baseline(ctx context.Context) (*WatchState, error) {
	state, err := w.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	w.previous = state
	return state, nil
}

// Run starts the watch loop, then re-checks at every interval. When no
// baseline has been installed yet it takes one first. Blocks until ctx is
// cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.previous == nil {
		if _, err := w.Baseline(ctx); err != nil {
			return fmt.Errorf("baseline analysis: %w", err)
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			alerts := w.Check(ctx)
			for _, a := range alerts {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Check performs a single check cycle: re-analyzes the project, compares
// against the previous state, updates the previous state, and returns any
// alerts. Identical consecutive alerts are suppressed.
func (w *Watcher) Check(ctx context.Context) []Alert {
	curr, err := w.Snapshot(ctx)
	if err != nil {
		return []Alert{{
			Level:   "warning",
			Title:   "Analysis failed",
			Message: fmt.Sprintf("Could not analyze project: %v", err),
			Time:    time.Now(),
		}}
	}

	var raw []Alert
	if w.previous != nil {
		raw = Compare(w.previous, curr, w.CriticalDrop)
	}

	// Deduplicate: suppress alerts identical to the previous cycle's.
	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.previous = curr
	return alerts
}

// Snapshot runs one analysis pass and returns the resulting state.
func (w *Watcher) Snapshot(ctx context.Context) (*WatchState, error) {
	report, err := w.analyzer.Run(ctx, analyzer.DefaultOptions(w.path))
	if err != nil {
		return nil, err
	}
	return stateFromReport(report), nil
}

func stateFromReport(report *quality.QualityReport) *WatchState {
	state := &WatchState{
		Timestamp:  time.Now(),
		Score:      report.Score,
		IssueCount: len(report.Issues),
		Report:     report,
		errorKeys:  make(map[string]bool),
	}
	for _, iss := range report.Issues {
		if iss.Severity == quality.SeverityError {
			state.errorKeys[iss.File+"|"+iss.Rule] = true
		}
	}
	return state
}
