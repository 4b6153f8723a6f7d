package secondary

import (
	"context"
	"errors"
)

// LLM failure modes the resolver distinguishes. Both are transient from the
// resolver's point of view and eligible for its single retry.
var (
	ErrProviderTimeout = errors.New("llm provider timed out")
	ErrProvider        = errors.New("llm provider error")
)

// LLMClient defines the secondary port for the AI collaborator.
type LLMClient interface {
	// Ask issues one synchronous completion request. Implementations bound
	// the call with the configured timeout; errors wrap ErrProviderTimeout
	// or ErrProvider.
	Ask(ctx context.Context, prompt string) (string, error)
}
