package secondary

import (
	"context"
	"time"

	"github.com/example/applypilot/internal/models"
)

// CachedAnswer is one persisted question/answer pair, keyed by the
// normalized question text.
type CachedAnswer struct {
	Key       string // normalized question text
	Question  string // original question text as first seen
	Answer    string
	Source    models.AnswerSource
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AnswerCache defines the secondary port for the persistent answer cache.
// Semantics are insert-if-absent unless overwrite is requested, so no
// read-modify-write race is possible.
type AnswerCache interface {
	// Get returns the cached answer for a key, or nil when absent.
	Get(ctx context.Context, key string) (*CachedAnswer, error)

	// Put stores an answer. When overwrite is false an existing entry for
	// the key is kept and the call is a no-op.
	Put(ctx context.Context, entry *CachedAnswer, overwrite bool) error

	// List returns all cached answers ordered by creation time.
	List(ctx context.Context) ([]*CachedAnswer, error)

	// Delete removes a cached answer by key.
	Delete(ctx context.Context, key string) error
}
