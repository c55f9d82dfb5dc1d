package output

import (
	"strings"
	"testing"
)

func TestScoreBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	bar := ScoreBar(80, 10)
	if !strings.Contains(bar, "80/100") {
		t.Errorf("expected score text in %q", bar)
	}
	if strings.Count(bar, "█") != 8 {
		t.Errorf("expected 8 filled cells, got %d in %q", strings.Count(bar, "█"), bar)
	}
	if strings.Count(bar, "░") != 2 {
		t.Errorf("expected 2 empty cells, got %d in %q", strings.Count(bar, "░"), bar)
	}
}

func TestScoreBarClamps(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	full := ScoreBar(150, 10)
	if strings.Count(full, "█") != 10 {
		t.Errorf("expected full bar for score > 100, got %q", full)
	}
	empty := ScoreBar(-5, 10)
	if strings.Count(empty, "░") != 10 {
		t.Errorf("expected empty bar for negative score, got %q", empty)
	}
}

func TestTrendArrow(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	up := TrendArrow(5, true)
	if !strings.Contains(up, "▲ +5.0") {
		t.Errorf("expected up arrow, got %q", up)
	}
	down := TrendArrow(-3, true)
	if !strings.Contains(down, "▼ -3.0") {
		t.Errorf("expected down arrow, got %q", down)
	}
	flat := TrendArrow(0, true)
	if !strings.Contains(flat, "─") {
		t.Errorf("expected dash for zero delta, got %q", flat)
	}
}

func TestSection(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	s := Section("Issues")
	if !strings.Contains(s, "Issues") {
		t.Errorf("expected title in %q", s)
	}
	if !strings.Contains(s, "─") {
		t.Errorf("expected horizontal rule in %q", s)
	}
}
