package secondary

import "context"

// EventLogger defines the interface for writing run events.
// Implementations extract the run ID from context.
type EventLogger interface {
	// LogEvent records one engine event. listingID may be empty for
	// run-level events.
	LogEvent(ctx context.Context, phase, listingID, message string) error
}
