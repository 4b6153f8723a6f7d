package models

import "time"

// Outcome is the terminal result of one application attempt.
type Outcome string

const (
	OutcomeSubmitted Outcome = "submitted"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped"
)

// Failure reasons produced by the application state machine.
const (
	ReasonOpenFailed           = "open_failed"
	ReasonFieldPopulationError = "field_population_error"
	ReasonUnresolvedQuestion   = "unresolved_question"
	ReasonSubmitError          = "submit_error"
	ReasonOperatorDeclined     = "operator_declined"
)

// ApplicationRecord is the append-only ledger entry for one listing.
// At most one Submitted record may ever exist per listing ID.
type ApplicationRecord struct {
	ListingID string
	Title     string
	Company   string
	Term      string // search term the listing was discovered under
	Timestamp time.Time
	Outcome   Outcome
	Reason    string // skip/failure reason, empty on submitted
	Answers   []GivenAnswer
}
