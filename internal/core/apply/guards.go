package apply

import (
	"fmt"

	"github.com/example/applypilot/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// OpenContext provides context for the Filtering -> Opening guard.
type OpenContext struct {
	ListingID        string
	Decision         models.FilterDecision
	AlreadySubmitted bool // ledger has a Submitted record for this listing
}

// CanOpen evaluates whether the quick-apply flow may be opened for a listing.
// Rules:
// - The filter decision must be Apply
// - The ledger must not already hold a Submitted record (checked before any
//   UI side effect)
func CanOpen(ctx OpenContext) GuardResult {
	if ctx.Decision.Outcome != models.FilterApply {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("listing %s filtered out: %s", ctx.ListingID, ctx.Decision.Reason),
		}
	}

	if ctx.AlreadySubmitted {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("listing %s already has a submitted application", ctx.ListingID),
		}
	}

	return GuardResult{Allowed: true}
}

// FieldContext provides context for a single profile-field population.
type FieldContext struct {
	Field    string
	Value    string
	Required bool
}

// FieldFatal reports whether a missing field value aborts the application.
// An absent value on an optional field is flagged and skipped, never fatal.
func FieldFatal(ctx FieldContext) GuardResult {
	if ctx.Value == "" && ctx.Required {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("required field %q has no configured value", ctx.Field),
		}
	}
	return GuardResult{Allowed: true}
}

// SubmitContext provides context for the ReviewPending -> Submitting guard.
type SubmitContext struct {
	ListingID         string
	PauseBeforeSubmit bool
	OperatorConfirmed bool // meaningful only when PauseBeforeSubmit
}

// CanSubmit evaluates whether the irreversible submission may be initiated.
// When pause-before-submit is configured, the operator must have confirmed.
// Submission happens at most once per flow: the dedup gate in CanOpen blocks
// listings with a Submitted record, and a failed submission is never retried.
func CanSubmit(ctx SubmitContext) GuardResult {
	if ctx.PauseBeforeSubmit && !ctx.OperatorConfirmed {
		return GuardResult{
			Allowed: false,
			Reason:  "operator declined final submission",
		}
	}

	return GuardResult{Allowed: true}
}
