// Package primary defines the primary ports (driving interfaces) for the application.
package primary

import (
	"context"

	"github.com/example/applypilot/internal/core/apply"
	"github.com/example/applypilot/internal/models"
)

// ProcessListingRequest asks the apply service to drive one listing through
// the quick-apply flow.
type ProcessListingRequest struct {
	Listing models.Listing
	Term    string // search term the listing was discovered under
}

// ApplicationResult is the terminal outcome for one listing.
type ApplicationResult struct {
	ListingID string
	State     apply.State
	Outcome   models.Outcome
	Reason    string
	Answers   []models.GivenAnswer

	// Deduplicated is true when the ledger already held a Submitted record
	// and no UI action was taken. No new record is written in that case.
	Deduplicated bool
}

// ApplyService drives the multi-step application state machine for a listing.
type ApplyService interface {
	ProcessListing(ctx context.Context, req ProcessListingRequest) (*ApplicationResult, error)
}

// QuestionResolver maps a screening question to an answer using layered
// strategies (config mapping, cache, AI, operator).
type QuestionResolver interface {
	// Resolve returns the answer for a question. An unresolvable question
	// yields ErrUnresolved.
	Resolve(ctx context.Context, q models.Question) (models.Answer, error)
}
