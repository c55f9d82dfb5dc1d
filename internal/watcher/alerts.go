package watcher

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Compare detects notable changes between two watch states and returns
// alerts. criticalDrop is the score loss that escalates a drop to critical.
func Compare(prev, curr *WatchState, criticalDrop int) []Alert {
	var alerts []Alert

	alerts = append(alerts, compareCritical(prev, curr, criticalDrop)...)
	alerts = append(alerts, compareWarning(prev, curr, criticalDrop)...)
	alerts = append(alerts, compareInfo(prev, curr)...)

	return alerts
}

// compareCritical detects critical-level changes.
func compareCritical(prev, curr *WatchState, criticalDrop int) []Alert {
	var alerts []Alert
	now := time.Now()

	drop := prev.Score - curr.Score
	if criticalDrop > 0 && drop >= criticalDrop {
		alerts = append(alerts, Alert{
			Level:   "critical",
			Title:   "Quality score dropped sharply",
			Message: fmt.Sprintf("Score fell from %d to %d (-%d)", prev.Score, curr.Score, drop),
			Time:    now,
		})
	}

	return alerts
}

// compareWarning detects warning-level changes.
func compareWarning(prev, curr *WatchState, criticalDrop int) []Alert {
	var alerts []Alert
	now := time.Now()

	// Smaller score drops warn; the critical alert already covers the rest.
	drop := prev.Score - curr.Score
	if drop >= 1 && (criticalDrop <= 0 || drop < criticalDrop) {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   "Quality score dropped",
			Message: fmt.Sprintf("Score fell from %d to %d (-%d)", prev.Score, curr.Score, drop),
			Time:    now,
		})
	}

	// Error-severity issues not present in the previous pass.
	if newErrors := newErrorKeys(prev, curr); len(newErrors) > 0 {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   "New error issues",
			Message: describeNewErrors(newErrors),
			Time:    now,
		})
	}

	return alerts
}

// compareInfo detects informational changes.
func compareInfo(prev, curr *WatchState) []Alert {
	var alerts []Alert
	now := time.Now()

	// Recovery: the score moved back up.
	if curr.Score > prev.Score {
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   "Quality score recovered",
			Message: fmt.Sprintf("Score rose from %d to %d (+%d)", prev.Score, curr.Score, curr.Score-prev.Score),
			Time:    now,
		})
	}

	// All error issues cleared.
	if len(prev.errorKeys) > 0 && len(curr.errorKeys) == 0 {
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   "All errors resolved",
			Message: fmt.Sprintf("%d error issue(s) cleared", len(prev.errorKeys)),
			Time:    now,
		})
	}

	return alerts
}

// newErrorKeys returns the file|rule keys of error issues present now but
// not in the previous pass, sorted for stable messages.
func newErrorKeys(prev, curr *WatchState) []string {
	var keys []string
	for key := range curr.errorKeys {
		if !prev.errorKeys[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// describeNewErrors renders a short message naming up to three new errors.
func describeNewErrors(keys []string) string {
	shown := keys
	if len(shown) > 3 {
		shown = shown[:3]
	}
	msg := fmt.Sprintf("%d new error issue(s): %s", len(keys), strings.Join(shown, ", "))
	if len(keys) > len(shown) {
		msg += ", ..."
	}
	return msg
}
