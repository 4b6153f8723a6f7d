package primary

import (
	"context"
	"errors"
)

// ErrUnresolved is returned by QuestionResolver when every resolution
// strategy was exhausted without producing an answer.
var ErrUnresolved = errors.New("question could not be resolved")

// CycleStats aggregates outcomes across one pass over the search plan.
type CycleStats struct {
	TermsSearched int
	PagesSearched int
	Discovered    int
	Submitted     int
	Failed        int
	Skipped       int
	Deduplicated  int
}

// Add accumulates another stats value into s.
func (s *CycleStats) Add(o CycleStats) {
	s.TermsSearched += o.TermsSearched
	s.PagesSearched += o.PagesSearched
	s.Discovered += o.Discovered
	s.Submitted += o.Submitted
	s.Failed += o.Failed
	s.Skipped += o.Skipped
	s.Deduplicated += o.Deduplicated
}

// SearchCycleService runs one full pass over the term/filter plan.
type SearchCycleService interface {
	RunCycle(ctx context.Context) (*CycleStats, error)
}

// RunSummary is the result of a complete run (one or more cycles).
type RunSummary struct {
	RunID  string
	Cycles int
	Stats  CycleStats
}

// RunService owns the outer run loop: session lifecycle, non-stop policy,
// and inter-cycle throttling.
type RunService interface {
	Run(ctx context.Context) (*RunSummary, error)
}
