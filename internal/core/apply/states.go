// Package apply contains the pure business logic for the application state
// machine. Guards evaluate transition preconditions without side effects.
package apply

// State is one step of the quick-apply flow for a single listing.
type State string

const (
	StateFiltering          State = "filtering"
	StateOpening            State = "opening"
	StateFillingProfile     State = "filling_profile"
	StateAnsweringQuestions State = "answering_questions"
	StateAttachingResume    State = "attaching_resume"
	StateReviewPending      State = "review_pending"
	StateSubmitting         State = "submitting"
	StateSubmitted          State = "submitted"
	StateFailed             State = "failed"
	StateSkipped            State = "skipped"
)

// Terminal reports whether the state machine has finished for a listing.
func Terminal(s State) bool {
	switch s {
	case StateSubmitted, StateFailed, StateSkipped:
		return true
	}
	return false
}
