package risk

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dshills/scamcheck/internal/indicators"
	"github.com/google/uuid"
)

// maxFillerPicks bounds how many filler factors a single analysis samples.
const maxFillerPicks = 3

// Rand is the source of randomness for filler sampling.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Clock supplies analysis timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// SeededRand returns a deterministic source for reproducible runs.
func SeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Analyzer scores URLs against an indicator profile.
// It is not safe for concurrent use.
type Analyzer struct {
	profile *indicators.Profile
	rng     Rand
	clock   Clock
	newID   func() string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithRand overrides the random source used for filler sampling.
func WithRand(r Rand) Option {
	return func(a *Analyzer) { a.rng = r }
}

// WithClock overrides the timestamp source.
func WithClock(c Clock) Option {
	return func(a *Analyzer) { a.clock = c }
}

// WithIDFunc overrides result ID generation.
func WithIDFunc(fn func() string) Option {
	return func(a *Analyzer) { a.newID = fn }
}

// NewAnalyzer builds an Analyzer for the given profile.
func NewAnalyzer(p *indicators.Profile, opts ...Option) *Analyzer {
	a := &Analyzer{
		profile: p,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		clock:   SystemClock{},
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Profile returns the indicator profile the analyzer checks against.
func (a *Analyzer) Profile() *indicators.Profile { return a.profile }

// Analyze scores rawURL. Fixed-weight checks run first, then between one and
// three filler factors are sampled; a filler whose label is already present
// is skipped. The total is clamped to MaxScore.
func (a *Analyzer) Analyze(rawURL string) AnalysisResult {
	p := a.profile
	domain := ExtractDomain(rawURL)

	score := 0
	var factors []string

	if containsAny(domain, p.ScamDomains) {
		score += p.Weights.KnownScam
		factors = append(factors, FactorKnownScam)
	}
	if containsAny(rawURL, p.RedirectPatterns) {
		score += p.Weights.Redirect
		factors = append(factors, FactorRedirect)
	}
	if !strings.HasPrefix(rawURL, "https://") {
		score += p.Weights.Insecure
		factors = append(factors, FactorInsecure)
	}

	picks := a.rng.IntN(maxFillerPicks) + 1
	for i := 0; i < picks; i++ {
		f := p.Fillers[a.rng.IntN(len(p.Fillers))]
		if contains(factors, f.Label) {
			continue
		}
		score += f.Weight
		factors = append(factors, f.Label)
	}

	score = ClampScore(score)

	return AnalysisResult{
		ID:              a.newID(),
		URL:             rawURL,
		Domain:          domain,
		RiskScore:       score,
		RiskLevel:       LevelForScore(score),
		RiskFactors:     factors,
		Recommendations: Recommendations(p, score),
		Timestamp:       a.clock.Now().UTC(),
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
