// Package risk scores URLs against static scam indicators.
package risk

import "time"

// Factor labels added by the fixed-weight checks.
const (
	FactorKnownScam = "Domain matches known scam database"
	FactorRedirect  = "Uses URL shortener or suspicious redirect"
	FactorInsecure  = "Not using secure HTTPS connection"
)

// AnalysisResult is the outcome of scoring a single URL.
type AnalysisResult struct {
	ID              string    `json:"id"`
	URL             string    `json:"url"`
	Domain          string    `json:"domain"`
	RiskScore       int       `json:"risk_score"`
	RiskLevel       Level     `json:"risk_level"`
	RiskFactors     []string  `json:"risk_factors"`
	Recommendations []string  `json:"recommendations"`
	Timestamp       time.Time `json:"timestamp"`
}

// HasFactor reports whether label is among the result's risk factors.
func (r *AnalysisResult) HasFactor(label string) bool {
	for _, f := range r.RiskFactors {
		if f == label {
			return true
		}
	}
	return false
}
