package quality

// Severity weights used by the scorer. Each issue subtracts its weight from
// a clean baseline of 100.
var severityWeights = map[Severity]float64{
	SeverityError:   5,
	SeverityWarning: 2,
	SeverityInfo:    0.5,
}

// Weight returns the score penalty for a severity. Unknown severities weigh
// nothing.
func Weight(s Severity) float64 {
	return severityWeights[s]
}

// Score reduces an issue set to an integer score in [0, 100]:
//
//	score = clamp(100 - sum(weight(severity)), 0, 100)
//
// Fractional totals are truncated toward zero, so a single info issue
// (weight 0.5) scores 99.
func Score(issues []Issue) int {
	total := 0.0
	for _, iss := range issues {
		total += severityWeights[iss.Severity]
	}

	raw := 100 - total
	if raw < 0 {
		raw = 0
	}
	if raw > 100 {
		raw = 100
	}
	return int(raw)
}
