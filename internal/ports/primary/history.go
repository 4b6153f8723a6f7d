package primary

import (
	"context"

	"github.com/example/applypilot/internal/models"
)

// HistorySummary aggregates ledger contents for reporting.
type HistorySummary struct {
	Submitted int
	Failed    int
	Skipped   int
	ByReason  map[string]int
}

// HistoryService exposes read access to the application ledger.
type HistoryService interface {
	// Applied returns all submitted applications in append order.
	Applied(ctx context.Context) ([]*models.ApplicationRecord, error)

	// Failed returns all failed and skipped applications in append order.
	Failed(ctx context.Context) ([]*models.ApplicationRecord, error)

	// Summary aggregates outcome counts across the full ledger.
	Summary(ctx context.Context) (*HistorySummary, error)
}
