package secondary

import "context"

// Throttler inserts a stealth delay between externally observable actions.
// It is a delay, not a concurrency construct; implementations return early
// on context cancellation.
type Throttler interface {
	Pause(ctx context.Context)
}
