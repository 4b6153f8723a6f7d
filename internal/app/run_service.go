package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/applypilot/internal/config"
	"github.com/example/applypilot/internal/ctxutil"
	"github.com/example/applypilot/internal/ports/primary"
	"github.com/example/applypilot/internal/ports/secondary"
)

// RunServiceImpl owns the outer run loop: run ID assignment, the non-stop
// cycle policy, and the rest period between cycles.
type RunServiceImpl struct {
	cycles  primary.SearchCycleService
	events  secondary.EventLogger
	cfg     *config.Config
	nonStop bool

	newRunID func() string
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewRunService creates the run loop service. once overrides the configured
// run_non_stop for this run without touching the loaded config.
func NewRunService(cycles primary.SearchCycleService, events secondary.EventLogger, cfg *config.Config, once bool) *RunServiceImpl {
	return &RunServiceImpl{
		cycles:   cycles,
		events:   events,
		cfg:      cfg,
		nonStop:  cfg.Search.RunNonStop && !once,
		newRunID: defaultRunID,
		sleep:    sleepCtx,
	}
}

// Run executes cycles until cancellation or, when run_non_stop is off, after
// a single cycle. The accumulated stats are returned even when the run ends
// on cancellation, so an interrupted run still reports what it did.
func (s *RunServiceImpl) Run(ctx context.Context) (*primary.RunSummary, error) {
	runID := s.newRunID()
	ctx = ctxutil.WithRunID(ctx, runID)

	summary := &primary.RunSummary{RunID: runID}
	s.logEvent(ctx, "run", "", "run started")

	for {
		stats, err := s.cycles.RunCycle(ctx)
		if stats != nil {
			summary.Stats.Add(*stats)
		}
		summary.Cycles++

		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				s.logEvent(context.WithoutCancel(ctx), "run", "", "run interrupted")
				return summary, nil
			}
			return summary, fmt.Errorf("cycle %d failed: %w", summary.Cycles, err)
		}

		if !s.nonStop {
			break
		}

		rest := time.Duration(s.cfg.Search.CycleRestSeconds) * time.Second
		s.logEvent(ctx, "run", "", fmt.Sprintf("cycle %d complete, resting %s", summary.Cycles, rest))
		if err := s.sleep(ctx, rest); err != nil {
			s.logEvent(context.WithoutCancel(ctx), "run", "", "run interrupted")
			return summary, nil
		}
	}

	s.logEvent(ctx, "run", "", "run complete")
	return summary, nil
}

func (s *RunServiceImpl) logEvent(ctx context.Context, phase, listingID, message string) {
	if s.events != nil {
		_ = s.events.LogEvent(ctx, phase, listingID, message)
	}
}

func defaultRunID() string {
	return time.Now().UTC().Format("20060102-150405")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
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
