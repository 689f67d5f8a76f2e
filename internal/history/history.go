// Package history keeps the most recent analysis results, newest first.
package history

import "github.com/dshills/scamcheck/internal/risk"

// DefaultCapacity is the number of results retained when none is configured.
const DefaultCapacity = 5

// History is a capped, most-recent-first list of results.
type History struct {
	capacity int
	entries  []risk.AnalysisResult
}

// New returns an empty history. A capacity <= 0 selects DefaultCapacity.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity}
}

// Add prepends r and drops entries beyond the capacity.
func (h *History) Add(r risk.AnalysisResult) {
	keep := len(h.entries)
	if keep > h.capacity-1 {
		keep = h.capacity - 1
	}
	next := make([]risk.AnalysisResult, 0, keep+1)
	next = append(next, r)
	next = append(next, h.entries[:keep]...)
	h.entries = next
}

// Entries returns a copy of the retained results, newest first.
func (h *History) Entries() []risk.AnalysisResult {
	out := make([]risk.AnalysisResult, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of retained results.
func (h *History) Len() int { return len(h.entries) }

// Capacity returns the maximum number of retained results.
func (h *History) Capacity() int { return h.capacity }
