package trend

import (
	"fmt"
	"sort"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

// QuickWin is a bundle of same-rule issues worth fixing as one batch.
type QuickWin struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Effort        int      `json:"effort"` // estimated minutes
	Impact        string   `json:"impact"` // high, medium, low
	ScoreGain     float64  `json:"scoreGain"`
	FilesAffected []string `json:"filesAffected"`
}

// quickWinThreshold is the minimum occurrence count for a rule to qualify.
const quickWinThreshold = 5

// maxQuickWins caps how many entries a single derivation returns.
const maxQuickWins = 5

// winProfile holds the per-rule effort multiplier and score-gain cap.
type winProfile struct {
	Minutes int     // minutes per occurrence
	Cap     float64 // maximum score gain credited
	Title   string
}

var defaultProfile = winProfile{Minutes: 5, Cap: 20}

// winProfiles tunes effort and payoff for the rules that commonly pile up.
// Mechanical removals are cheap per occurrence; anything that needs local
// reasoning costs more.
var winProfiles = map[string]winProfile{
	"no-console":               {Minutes: 2, Cap: 25, Title: "Remove console statements"},
	"no-print":                 {Minutes: 2, Cap: 25, Title: "Remove print statements"},
	"no-system-out":            {Minutes: 2, Cap: 25, Title: "Remove System.out statements"},
	"no-console-writeline":     {Minutes: 2, Cap: 25, Title: "Remove Console.WriteLine statements"},
	"no-unused-vars":           {Minutes: 3, Cap: 20, Title: "Delete unused variables"},
	"no-unused-exports":        {Minutes: 5, Cap: 15, Title: "Drop unused exports"},
	"no-deep-relative-imports": {Minutes: 5, Cap: 15, Title: "Flatten deep relative imports"},
	"max-line-length":          {Minutes: 2, Cap: 10, Title: "Wrap overlong lines"},
	"no-marker-comments":       {Minutes: 1, Cap: 10, Title: "Clear leftover marker comments"},
	"no-nonascii-comments":     {Minutes: 2, Cap: 10, Title: "Translate flagged comments"},
	"missing-error-logging":    {Minutes: 10, Cap: 25, Title: "Log swallowed errors"},
	"no-hardcoded-secrets":     {Minutes: 15, Cap: 30, Title: "Move secrets to environment"},
}

// QuickWins groups a report's issues by rule and returns the bundles worth
// fixing first, ranked by score gain per minute of effort.
func QuickWins(report *quality.QualityReport) []QuickWin {
	type group struct {
		count    int
		severity quality.Severity
		files    map[string]bool
	}
	groups := make(map[string]*group)
	for _, issue := range report.Issues {
		g := groups[issue.Rule]
		if g == nil {
			g = &group{severity: issue.Severity, files: make(map[string]bool)}
			groups[issue.Rule] = g
		}
		g.count++
		if issue.File != "" {
			g.files[issue.File] = true
		}
	}

	var wins []QuickWin
	for rule, g := range groups {
		if g.count < quickWinThreshold {
			continue
		}
		profile, ok := winProfiles[rule]
		if !ok {
			profile = defaultProfile
		}
		title := profile.Title
		if title == "" {
			title = fmt.Sprintf("Fix %s violations", rule)
		}

		gain := float64(g.count) * quality.Weight(g.severity)
		if gain > profile.Cap {
			gain = profile.Cap
		}

		files := make([]string, 0, len(g.files))
		for f := range g.files {
			files = append(files, f)
		}
		sort.Strings(files)

		wins = append(wins, QuickWin{
			Title: title,
			Description: fmt.Sprintf("%d occurrences of %s across %d files",
				g.count, rule, len(files)),
			Effort:        g.count * profile.Minutes,
			Impact:        impactFor(g.severity),
			ScoreGain:     gain,
			FilesAffected: files,
		})
	}

	sort.Slice(wins, func(i, j int) bool {
		ri := wins[i].ScoreGain / float64(wins[i].Effort)
		rj := wins[j].ScoreGain / float64(wins[j].Effort)
		if ri != rj {
			return ri > rj
		}
		return wins[i].Title < wins[j].Title
	})
	if len(wins) > maxQuickWins {
		wins = wins[:maxQuickWins]
	}
	return wins
}

func impactFor(s quality.Severity) string {
	switch s {
	case quality.SeverityError:
		return "high"
	case quality.SeverityWarning:
		return "medium"
	default:
		return "low"
	}
}
