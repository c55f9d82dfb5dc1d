package watcher

import (
	"strings"
	"testing"
)

func makeState(score int, errorKeys ...string) *WatchState {
	state := &WatchState{
		Score:     score,
		errorKeys: make(map[string]bool),
	}
	for _, key := range errorKeys {
		state.errorKeys[key] = true
	}
	return state
}

func TestCompare_NoChanges(t *testing.T) {
	prev := makeState(90, "src/a.js|no-console")
	curr := makeState(90, "src/a.js|no-console")

	alerts := Compare(prev, curr, 10)
	if len(alerts) != 0 {
		t.Errorf("expected 0 alerts for identical states, got %d", len(alerts))
		for _, a := range alerts {
			t.Logf("  [%s] %s: %s", a.Level, a.Title, a.Message)
		}
	}
}

func TestCompare_CriticalDrop(t *testing.T) {
	prev := makeState(90)
	curr := makeState(80)

	alerts := Compare(prev, curr, 10)

	hasCritical := false
	for _, a := range alerts {
		if a.Level == "critical" && a.Title == "Quality score dropped sharply" {
			hasCritical = true
			if a.Message != "Score fell from 90 to 80 (-10)" {
				t.Errorf("unexpected message: %q", a.Message)
			}
		}
		if a.Level == "warning" && a.Title == "Quality score dropped" {
			t.Error("critical drop should not also produce a warning drop alert")
		}
	}
	if !hasCritical {
		t.Error("expected critical alert for a drop at the threshold")
	}
}

func TestCompare_WarningDrop(t *testing.T) {
	prev := makeState(90)
	curr := makeState(85)

	alerts := Compare(prev, curr, 10)

	hasWarning := false
	for _, a := range alerts {
		if a.Level == "critical" {
			t.Errorf("unexpected critical alert: %s", a.Title)
		}
		if a.Level == "warning" && a.Title == "Quality score dropped" {
			hasWarning = true
			if a.Message != "Score fell from 90 to 85 (-5)" {
				t.Errorf("unexpected message: %q", a.Message)
			}
		}
	}
	if !hasWarning {
		t.Error("expected warning alert for a small drop")
	}
}

func TestCompare_NewErrors(t *testing.T) {
	prev := makeState(95, "src/a.js|no-console")
	curr := makeState(95, "src/a.js|no-console", "src/b.js|no-unused-vars")

	alerts := Compare(prev, curr, 10)

	hasNewErrors := false
	for _, a := range alerts {
		if a.Level == "warning" && a.Title == "New error issues" {
			hasNewErrors = true
			if !strings.Contains(a.Message, "src/b.js|no-unused-vars") {
				t.Errorf("message should name the new error, got %q", a.Message)
			}
			if strings.Contains(a.Message, "src/a.js") {
				t.Errorf("message should not name persisting errors, got %q", a.Message)
			}
		}
	}
	if !hasNewErrors {
		t.Error("expected warning alert for new error issue")
	}
}

func TestCompare_ManyNewErrorsTruncated(t *testing.T) {
	prev := makeState(80)
	curr := makeState(80,
		"a.js|no-console", "b.js|no-console", "c.js|no-console",
		"d.js|no-console", "e.js|no-console")

	alerts := Compare(prev, curr, 10)

	for _, a := range alerts {
		if a.Title != "New error issues" {
			continue
		}
		if !strings.HasPrefix(a.Message, "5 new error issue(s): ") {
			t.Errorf("expected count prefix, got %q", a.Message)
		}
		if !strings.HasSuffix(a.Message, ", ...") {
			t.Errorf("expected truncation suffix, got %q", a.Message)
		}
		// Keys are sorted, so the first three are the ones shown.
		for _, want := range []string{"a.js|no-console", "b.js|no-console", "c.js|no-console"} {
			if !strings.Contains(a.Message, want) {
				t.Errorf("expected %q in message %q", want, a.Message)
			}
		}
		if strings.Contains(a.Message, "d.js") || strings.Contains(a.Message, "e.js") {
			t.Errorf("expected at most three errors named, got %q", a.Message)
		}
		return
	}
	t.Error("expected a new-errors alert")
}

func TestCompare_Recovery(t *testing.T) {
	prev := makeState(80)
	curr := makeState(92)

	alerts := Compare(prev, curr, 10)

	hasInfo := false
	for _, a := range alerts {
		if a.Level == "info" && a.Title == "Quality score recovered" {
			hasInfo = true
			if a.Message != "Score rose from 80 to 92 (+12)" {
				t.Errorf("unexpected message: %q", a.Message)
			}
		}
	}
	if !hasInfo {
		t.Error("expected info alert for score recovery")
	}
}

func TestCompare_ErrorsResolved(t *testing.T) {
	prev := makeState(90, "src/a.js|no-console", "src/b.js|no-console")
	curr := makeState(100)

	alerts := Compare(prev, curr, 10)

	hasResolved := false
	for _, a := range alerts {
		if a.Level == "info" && a.Title == "All errors resolved" {
			hasResolved = true
			if a.Message != "2 error issue(s) cleared" {
				t.Errorf("unexpected message: %q", a.Message)
			}
		}
	}
	if !hasResolved {
		t.Error("expected info alert when all errors clear")
	}
}

func TestCompare_ZeroThresholdDisablesCritical(t *testing.T) {
	prev := makeState(100)
	curr := makeState(60)

	alerts := Compare(prev, curr, 0)

	hasWarning := false
	for _, a := range alerts {
		if a.Level == "critical" {
			t.Errorf("critical alerts should be disabled with threshold 0, got %s", a.Title)
		}
		if a.Level == "warning" && a.Title == "Quality score dropped" {
			hasWarning = true
		}
	}
	if !hasWarning {
		t.Error("expected warning drop alert when the critical threshold is disabled")
	}
}
