package quality

import (
	"regexp"
	"strings"
)

// minDuplicateLineLen is the shortest trimmed line considered for duplicate
// detection. Shorter lines (closing braces, returns) repeat legitimately.
const minDuplicateLineLen = 20

var decisionPattern = regexp.MustCompile(`\b(if|for|while|switch|catch)\b`)

// ComputeStats builds the coarse QualityStats fingerprint from the sampled
// files and the issues found in them.
func ComputeStats(files []SourceFile, issues []Issue) QualityStats {
	stats := QualityStats{TotalFiles: len(files)}

	lineCounts := make(map[string]int)
	decisions := 0
	for _, f := range files {
		lines := strings.Split(f.Content, "\n")
		stats.TotalLines += len(lines)
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if len(trimmed) >= minDuplicateLineLen {
				lineCounts[trimmed]++
			}
		}
		decisions += len(decisionPattern.FindAllStringIndex(f.Content, -1))
	}

	if stats.TotalFiles > 0 {
		stats.AverageFileSize = stats.TotalLines / stats.TotalFiles
	}

	// Duplicate code: every occurrence of a long line beyond the first.
	for _, count := range lineCounts {
		if count > 1 {
			stats.DuplicateCode += count - 1
		}
	}

	for _, iss := range issues {
		if iss.Category == CategoryUnusedCode {
			stats.UnusedCode++
		}
	}

	// Complexity: decision points per 100 lines, one decimal.
	if stats.TotalLines > 0 {
		density := float64(decisions) / float64(stats.TotalLines) * 100
		stats.Complexity = float64(int(density*10+0.5)) / 10
	}

	return stats
}
