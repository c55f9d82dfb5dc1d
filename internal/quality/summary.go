package quality

import (
	"fmt"
	"sort"
)

// Per-severity remediation estimates in minutes.
const (
	fixMinutesError   = 30
	fixMinutesWarning = 10
	fixMinutesInfo    = 2
)

// workdayMinutes is the length of a working day used when rendering fix
// estimates in days.
const workdayMinutes = 8 * 60

// CategoryShare is one entry of the top-categories breakdown.
type CategoryShare struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Hotspot is a file ranked by how many issues it carries.
type Hotspot struct {
	File   string `json:"file"`
	Issues int    `json:"issues"`
}

// Summary is the smart-summary digest derived from one report.
type Summary struct {
	Score            int             `json:"score"`
	TotalIssues      int             `json:"totalIssues"`
	CriticalIssues   int             `json:"criticalIssues"`
	EstimatedFixTime string          `json:"estimatedFixTime"`
	TopCategories    []CategoryShare `json:"topCategories"`
	Hotspots         []Hotspot       `json:"hotspots"`
}

// Summarize condenses a report into the digest returned by the
// get_smart_summary tool: score, issue counts, a severity-weighted fix-time
// estimate, the top five categories with their percentage share, and the top
// five file hotspots.
func Summarize(report *QualityReport) Summary {
	s := Summary{
		Score:            report.Score,
		TotalIssues:      len(report.Issues),
		EstimatedFixTime: FormatFixTime(EstimateFixMinutes(report.Issues)),
	}

	for _, iss := range report.Issues {
		if iss.Severity == SeverityError {
			s.CriticalIssues++
		}
	}

	s.TopCategories = topCategories(report.Issues, 5)
	s.Hotspots = topHotspots(report.Issues, 5)
	return s
}

// EstimateFixMinutes returns the severity-weighted remediation estimate:
// 30 minutes per error, 10 per warning, 2 per info.
func EstimateFixMinutes(issues []Issue) int {
	minutes := 0
	for _, iss := range issues {
		switch iss.Severity {
		case SeverityError:
			minutes += fixMinutesError
		case SeverityWarning:
			minutes += fixMinutesWarning
		case SeverityInfo:
			minutes += fixMinutesInfo
		}
	}
	return minutes
}

// FormatFixTime renders a minute estimate as minutes, hours, or 8-hour
// workdays: "45m", "2.5h", "1.2d".
func FormatFixTime(minutes int) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case minutes < workdayMinutes:
		return fmt.Sprintf("%.1fh", float64(minutes)/60)
	default:
		return fmt.Sprintf("%.1fd", float64(minutes)/workdayMinutes)
	}
}

// topCategories ranks categories by issue count descending, ties broken
// alphabetically, limited to n entries.
func topCategories(issues []Issue, n int) []CategoryShare {
	if len(issues) == 0 {
		return nil
	}

	counts := CountByCategory(issues)
	shares := make([]CategoryShare, 0, len(counts))
	for cat, count := range counts {
		shares = append(shares, CategoryShare{
			Category:   cat,
			Count:      count,
			Percentage: float64(int(float64(count)/float64(len(issues))*1000+0.5)) / 10,
		})
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Category < shares[j].Category
	})

	if len(shares) > n {
		shares = shares[:n]
	}
	return shares
}

// topHotspots ranks files by issue count descending, ties broken by path,
// limited to n entries. Issues without a file location are skipped.
func topHotspots(issues []Issue, n int) []Hotspot {
	counts := make(map[string]int)
	for _, iss := range issues {
		if iss.File != "" {
			counts[iss.File]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	hotspots := make([]Hotspot, 0, len(counts))
	for file, count := range counts {
		hotspots = append(hotspots, Hotspot{File: file, Issues: count})
	}

	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].Issues != hotspots[j].Issues {
			return hotspots[i].Issues > hotspots[j].Issues
		}
		return hotspots[i].File < hotspots[j].File
	})

	if len(hotspots) > n {
		hotspots = hotspots[:n]
	}
	return hotspots
}
