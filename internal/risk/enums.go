package risk

import "strings"

// Level is the coarse risk bucket derived from a score.
type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"
)

func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// order returns a sort key (higher = riskier).
func (l Level) order() int {
	switch l {
	case LevelHigh:
		return 2
	case LevelMedium:
		return 1
	case LevelLow:
		return 0
	default:
		return -1
	}
}

// AtLeast reports whether l is as risky as other or riskier.
func (l Level) AtLeast(other Level) bool {
	if !l.Valid() || !other.Valid() {
		return false
	}
	return l.order() >= other.order()
}

// ParseLevel converts a case-insensitive name into a Level.
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	return l, l.Valid()
}
