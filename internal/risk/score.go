package risk

import "github.com/dshills/scamcheck/internal/indicators"

const (
	MaxScore        = 100
	HighThreshold   = 70
	MediumThreshold = 40
)

// ClampScore limits a raw total to [0, MaxScore].
func ClampScore(score int) int {
	if score > MaxScore {
		return MaxScore
	}
	if score < 0 {
		return 0
	}
	return score
}

// LevelForScore buckets a score: >=70 HIGH, >=40 MEDIUM, otherwise LOW.
func LevelForScore(score int) Level {
	switch {
	case score >= HighThreshold:
		return LevelHigh
	case score >= MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Recommendations returns a copy of the profile's advice for the score's tier.
func Recommendations(p *indicators.Profile, score int) []string {
	var src []string
	switch LevelForScore(score) {
	case LevelHigh:
		src = p.Recommendations.High
	case LevelMedium:
		src = p.Recommendations.Medium
	default:
		src = p.Recommendations.Low
	}
	return append([]string(nil), src...)
}
