package quality

import "testing"

func issuesOf(errors, warnings, infos int) []Issue {
	var issues []Issue
	for i := 0; i < errors; i++ {
		issues = append(issues, Issue{Severity: SeverityError, Category: CategoryCodeQuality, Rule: "no-console"})
	}
	for i := 0; i < warnings; i++ {
		issues = append(issues, Issue{Severity: SeverityWarning, Category: CategoryComplexity, Rule: "max-file-lines"})
	}
	for i := 0; i < infos; i++ {
		issues = append(issues, Issue{Severity: SeverityInfo, Category: CategoryMaintenance, Rule: "no-marker-comments"})
	}
	return issues
}

func TestScore_CleanBaseline(t *testing.T) {
	if got := Score(nil); got != 100 {
		t.Errorf("expected 100 for no issues, got %d", got)
	}
}

func TestScore_MixedSeverities(t *testing.T) {
	// 3 errors + 2 warnings + 4 info = 15 + 4 + 2 = 21 penalty, 100 - 21 = 79.
	if got := Score(issuesOf(3, 2, 4)); got != 79 {
		t.Errorf("expected 79, got %d", got)
	}
}

func TestScore_SingleError(t *testing.T) {
	// One error = 5 penalty from a clean baseline of 100.
	if got := Score(issuesOf(1, 0, 0)); got != 95 {
		t.Errorf("expected 95, got %d", got)
	}
}

func TestScore_FractionalTruncates(t *testing.T) {
	// One info = 0.5 penalty; 99.5 truncates to 99.
	if got := Score(issuesOf(0, 0, 1)); got != 99 {
		t.Errorf("expected 99, got %d", got)
	}
}

func TestScore_FlooredAtZero(t *testing.T) {
	// 25 errors = 125 penalty, clamped to 0.
	if got := Score(issuesOf(25, 0, 0)); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestScore_UnknownSeverityWeighsNothing(t *testing.T) {
	issues := []Issue{{Severity: Severity("fatal"), Category: CategoryCodeQuality}}
	if got := Score(issues); got != 100 {
		t.Errorf("expected unknown severity to weigh 0, got score %d", got)
	}
}

func TestWeight(t *testing.T) {
	if Weight(SeverityError) != 5 || Weight(SeverityWarning) != 2 || Weight(SeverityInfo) != 0.5 {
		t.Errorf("unexpected weights: %v %v %v",
			Weight(SeverityError), Weight(SeverityWarning), Weight(SeverityInfo))
	}
}
