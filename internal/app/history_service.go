package app

import (
	"context"
	"fmt"

	"github.com/example/applypilot/internal/models"
	"github.com/example/applypilot/internal/ports/primary"
	"github.com/example/applypilot/internal/ports/secondary"
)

// HistoryServiceImpl exposes read access to the application ledger.
type HistoryServiceImpl struct {
	ledger secondary.LedgerRepository
}

// NewHistoryService creates a history service backed by the ledger.
func NewHistoryService(ledger secondary.LedgerRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{ledger: ledger}
}

// Applied returns all submitted applications in append order.
func (s *HistoryServiceImpl) Applied(ctx context.Context) ([]*models.ApplicationRecord, error) {
	recs, err := s.ledger.AppliedRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read applied history: %w", err)
	}
	return recs, nil
}

// Failed returns all failed and skipped applications in append order.
func (s *HistoryServiceImpl) Failed(ctx context.Context) ([]*models.ApplicationRecord, error) {
	recs, err := s.ledger.FailedRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read failed history: %w", err)
	}
	return recs, nil
}

// Summary aggregates outcome counts across the full ledger.
func (s *HistoryServiceImpl) Summary(ctx context.Context) (*primary.HistorySummary, error) {
	applied, err := s.Applied(ctx)
	if err != nil {
		return nil, err
	}
	failed, err := s.Failed(ctx)
	if err != nil {
		return nil, err
	}

	sum := &primary.HistorySummary{
		Submitted: len(applied),
		ByReason:  make(map[string]int),
	}
	for _, r := range failed {
		switch r.Outcome {
		case models.OutcomeSkipped:
			sum.Skipped++
		default:
			sum.Failed++
		}
		if r.Reason != "" {
			sum.ByReason[r.Reason]++
		}
	}
	return sum, nil
}
