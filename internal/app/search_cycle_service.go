package app

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/example/applypilot/internal/config"
	"github.com/example/applypilot/internal/core/search"
	"github.com/example/applypilot/internal/models"
	"github.com/example/applypilot/internal/ports/primary"
	"github.com/example/applypilot/internal/ports/secondary"
)

// SearchCycleServiceImpl runs one full pass over the term/filter plan,
// handing each discovered listing to the apply service in discovery order.
type SearchCycleServiceImpl struct {
	board    secondary.BoardAdapter
	applySvc primary.ApplyService
	throttle secondary.Throttler
	events   secondary.EventLogger

	cfg   *config.Config
	terms []string
}

// NewSearchCycleService creates a search cycle service. The term order is
// fixed here for the service's lifetime: with randomize_order set it is
// shuffled once, so every cycle of a run visits the terms in the same order.
// rng is consulted only for that shuffle; nil falls back to a time-seeded
// source.
func NewSearchCycleService(
	board secondary.BoardAdapter,
	applySvc primary.ApplyService,
	throttle secondary.Throttler,
	events secondary.EventLogger,
	cfg *config.Config,
	rng *rand.Rand,
) *SearchCycleServiceImpl {
	return &SearchCycleServiceImpl{
		board:    board,
		applySvc: applySvc,
		throttle: throttle,
		events:   events,
		cfg:      cfg,
		terms:    search.OrderTerms(cfg.Search.Terms, cfg.Search.RandomizeOrder, rng),
	}
}

// RunCycle performs one cycle. The per-term application cap (switch_number)
// counts submissions, not discoveries, and applies across all of a term's
// pages. Cancellation is honored between listings and between pages; partial
// stats are returned alongside the cancellation error.
func (s *SearchCycleServiceImpl) RunCycle(ctx context.Context) (*primary.CycleStats, error) {
	sc := s.cfg.Search
	plan := search.BuildPlan(s.terms, search.PlanConfig{
		SortBy:              sc.SortBy,
		DatePosted:          sc.DatePosted,
		AlternateSortBy:     sc.AlternateSortBy,
		CycleDatePosted:     sc.CycleDatePosted,
		StopDateCycleAt24hr: sc.StopDateCycleAt24hr,
	})

	stats := &primary.CycleStats{}
	for _, tp := range plan {
		stats.TermsSearched++
		if err := s.runTerm(ctx, tp, stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (s *SearchCycleServiceImpl) runTerm(ctx context.Context, tp search.TermPlan, stats *primary.CycleStats) error {
	sc := s.cfg.Search
	submitted := 0

	for _, page := range tp.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if sc.SwitchNumber > 0 && submitted >= sc.SwitchNumber {
			s.logEvent(ctx, "search", "", fmt.Sprintf("term %q reached cap of %d submissions, moving on", tp.Term, sc.SwitchNumber))
			return nil
		}

		s.throttle.Pause(ctx)
		listings, err := s.board.Search(ctx, secondary.SearchQuery{
			Term:          tp.Term,
			Location:      sc.Location,
			SortBy:        page.SortBy,
			DatePosted:    page.DatePosted,
			Salary:        sc.Salary,
			EasyApplyOnly: sc.EasyApplyOnly,
		})
		if err != nil {
			// A failed page is skipped, not fatal; the board may be flaky.
			s.logEvent(ctx, "search", "", fmt.Sprintf("search %q (%s / %s) failed: %v", tp.Term, page.SortBy, page.DatePosted, err))
			continue
		}
		stats.PagesSearched++
		stats.Discovered += len(listings)

		for _, l := range listings {
			if err := ctx.Err(); err != nil {
				return err
			}
			if sc.SwitchNumber > 0 && submitted >= sc.SwitchNumber {
				break
			}

			res, err := s.applySvc.ProcessListing(ctx, primary.ProcessListingRequest{Listing: l, Term: tp.Term})
			if err != nil {
				return fmt.Errorf("processing listing %s: %w", l.ID, err)
			}

			switch {
			case res.Deduplicated:
				stats.Deduplicated++
			case res.Outcome == models.OutcomeSubmitted:
				stats.Submitted++
				submitted++
			case res.Outcome == models.OutcomeFailed:
				stats.Failed++
			default:
				stats.Skipped++
			}
		}
	}
	return nil
}

func (s *SearchCycleServiceImpl) logEvent(ctx context.Context, phase, listingID, message string) {
	if s.events != nil {
		_ = s.events.LogEvent(ctx, phase, listingID, message)
	}
}
