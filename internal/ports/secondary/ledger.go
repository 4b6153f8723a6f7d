package secondary

import (
	"context"

	"github.com/example/applypilot/internal/models"
)

// LedgerRepository defines the secondary port for the durable application
// ledger. Storage is append-only; records are never mutated or deleted.
type LedgerRepository interface {
	// HasApplied reports whether a Submitted record exists for the listing.
	// Failed and Skipped records never block a later retry.
	HasApplied(ctx context.Context, listingID string) (bool, error)

	// Record appends one application record. The append is durable before
	// Record returns; a write failure is fatal to the run.
	Record(ctx context.Context, rec *models.ApplicationRecord) error

	// AppliedRecords returns all Submitted records in append order.
	AppliedRecords(ctx context.Context) ([]*models.ApplicationRecord, error)

	// FailedRecords returns all Failed and Skipped records in append order.
	FailedRecords(ctx context.Context) ([]*models.ApplicationRecord, error)
}
