// Package throttle contains the stealth delay inserted between externally
// observable board actions.
package throttle

import (
	"context"
	"math/rand"
	"time"
)

// Sleeper implements secondary.Throttler with a base gap plus jitter of up
// to half the gap, so consecutive actions never fire at a fixed rhythm.
type Sleeper struct {
	gap time.Duration
	rng *rand.Rand
}

// NewSleeper creates a throttler with the configured click gap.
func NewSleeper(gap time.Duration, rng *rand.Rand) *Sleeper {
	return &Sleeper{gap: gap, rng: rng}
}

// Pause blocks for the gap plus jitter, returning early on cancellation.
func (s *Sleeper) Pause(ctx context.Context) {
	if s.gap <= 0 {
		return
	}

	d := s.gap
	if s.rng != nil {
		d += time.Duration(s.rng.Int63n(int64(s.gap)/2 + 1))
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
