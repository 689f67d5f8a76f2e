// Package session owns the interactive scan state: current input, request
// phase, latest result and the recent-scan history.
package session

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dshills/scamcheck/internal/history"
	"github.com/dshills/scamcheck/internal/redact"
	"github.com/dshills/scamcheck/internal/risk"
	"github.com/sirupsen/logrus"
)

// DefaultDelay is the simulated lookup latency before scoring.
const DefaultDelay = 2 * time.Second

var (
	ErrEmptyInput = errors.New("session: empty input")
	ErrBusy       = errors.New("session: analysis already in progress")
)

// Phase is the lifecycle position of the controller.
type Phase string

const (
	PhaseIdle      Phase = "IDLE"
	PhaseAnalyzing Phase = "ANALYZING"
	PhaseResult    Phase = "RESULT"
)

func (p Phase) Valid() bool {
	switch p {
	case PhaseIdle, PhaseAnalyzing, PhaseResult:
		return true
	}
	return false
}

// Config tunes a Controller.
type Config struct {
	Delay       time.Duration
	HistorySize int
	Logger      logrus.FieldLogger
}

// State is a point-in-time copy of the controller's state.
type State struct {
	Input   string
	Phase   Phase
	Current *risk.AnalysisResult
	History []risk.AnalysisResult
}

// Controller serializes analysis requests and records their results.
type Controller struct {
	analyzer *risk.Analyzer
	delay    time.Duration
	log      logrus.FieldLogger

	mu      sync.Mutex
	input   string
	phase   Phase
	current *risk.AnalysisResult
	history *history.History
}

// New returns an idle controller. A zero Config.Delay disables the wait.
func New(a *risk.Analyzer, cfg Config) *Controller {
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Controller{
		analyzer: a,
		delay:    cfg.Delay,
		log:      log,
		phase:    PhaseIdle,
		history:  history.New(cfg.HistorySize),
	}
}

// SetInput replaces the pending URL text.
func (c *Controller) SetInput(s string) {
	c.mu.Lock()
	c.input = s
	c.mu.Unlock()
}

// Submit analyzes the pending input. Blank input returns ErrEmptyInput and a
// request made while another is in flight returns ErrBusy; neither changes
// state. If ctx ends during the delay the phase reverts and ctx.Err() is
// returned.
func (c *Controller) Submit(ctx context.Context) (risk.AnalysisResult, error) {
	c.mu.Lock()
	input := c.input
	if strings.TrimSpace(input) == "" {
		c.mu.Unlock()
		return risk.AnalysisResult{}, ErrEmptyInput
	}
	if c.phase == PhaseAnalyzing {
		c.mu.Unlock()
		return risk.AnalysisResult{}, ErrBusy
	}
	prev := c.phase
	c.phase = PhaseAnalyzing
	c.mu.Unlock()

	log := c.log.WithField("url", redact.URL(input))
	log.Debug("analysis started")

	if err := wait(ctx, c.delay); err != nil {
		c.mu.Lock()
		c.phase = prev
		c.mu.Unlock()
		log.WithError(err).Debug("analysis cancelled")
		return risk.AnalysisResult{}, err
	}

	result := c.analyzer.Analyze(input)

	c.mu.Lock()
	c.current = &result
	c.history.Add(result)
	c.phase = PhaseResult
	c.mu.Unlock()

	log.WithFields(logrus.Fields{
		"domain": redact.URL(result.Domain),
		"score":  result.RiskScore,
		"level":  result.RiskLevel,
	}).Info("analysis complete")

	return result, nil
}

// Analyze sets the input to rawURL and submits it.
func (c *Controller) Analyze(ctx context.Context, rawURL string) (risk.AnalysisResult, error) {
	c.SetInput(rawURL)
	return c.Submit(ctx)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := State{
		Input:   c.input,
		Phase:   c.phase,
		History: c.history.Entries(),
	}
	if c.current != nil {
		cur := *c.current
		s.Current = &cur
	}
	return s
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
