// Package schema checks analysis results against their invariants before output.
package schema

import (
	"fmt"

	"github.com/dshills/scamcheck/internal/risk"
)

// ValidationError describes a single schema violation.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks an AnalysisResult for structural validity.
func Validate(r *risk.AnalysisResult) []ValidationError {
	return validateAt("", r)
}

// ValidateHistory checks every entry plus the list's size bound. Each entry
// comes from a distinct analysis, so IDs must be unique.
func ValidateHistory(entries []risk.AnalysisResult, capacity int) []ValidationError {
	var errs []ValidationError
	if capacity > 0 && len(entries) > capacity {
		errs = append(errs, ValidationError{"history", fmt.Sprintf("%d entries exceed capacity %d", len(entries), capacity)})
	}
	ids := make(map[string]bool)
	for i := range entries {
		prefix := fmt.Sprintf("history[%d].", i)
		errs = append(errs, validateAt(prefix, &entries[i])...)
		if id := entries[i].ID; id != "" {
			if ids[id] {
				errs = append(errs, ValidationError{prefix + "id", fmt.Sprintf("duplicate ID: %q", id)})
			}
			ids[id] = true
		}
	}
	return errs
}

func validateAt(prefix string, r *risk.AnalysisResult) []ValidationError {
	var errs []ValidationError

	if r.ID == "" {
		errs = append(errs, ValidationError{prefix + "id", "required"})
	}
	if r.URL == "" {
		errs = append(errs, ValidationError{prefix + "url", "required"})
	}
	if r.Domain == "" {
		errs = append(errs, ValidationError{prefix + "domain", "required"})
	}
	if r.RiskScore < 0 || r.RiskScore > risk.MaxScore {
		errs = append(errs, ValidationError{prefix + "risk_score", fmt.Sprintf("%d outside [0,%d]", r.RiskScore, risk.MaxScore)})
	}

	// Verify level consistency
	if !r.RiskLevel.Valid() {
		errs = append(errs, ValidationError{prefix + "risk_level", fmt.Sprintf("invalid level: %q", r.RiskLevel)})
	} else if expected := risk.LevelForScore(r.RiskScore); r.RiskLevel != expected {
		errs = append(errs, ValidationError{prefix + "risk_level", fmt.Sprintf("level %s does not match score %d (want %s)", r.RiskLevel, r.RiskScore, expected)})
	}

	if len(r.RiskFactors) == 0 {
		errs = append(errs, ValidationError{prefix + "risk_factors", "at least one factor required"})
	}
	seen := make(map[string]bool)
	for i, f := range r.RiskFactors {
		path := fmt.Sprintf("%srisk_factors[%d]", prefix, i)
		switch {
		case f == "":
			errs = append(errs, ValidationError{path, "required"})
		case seen[f]:
			errs = append(errs, ValidationError{path, fmt.Sprintf("duplicate factor: %q", f)})
		default:
			seen[f] = true
		}
	}

	if len(r.Recommendations) == 0 {
		errs = append(errs, ValidationError{prefix + "recommendations", "at least one recommendation required"})
	}
	if r.Timestamp.IsZero() {
		errs = append(errs, ValidationError{prefix + "timestamp", "required"})
	}

	return errs
}
