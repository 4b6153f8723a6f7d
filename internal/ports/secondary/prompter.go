package secondary

import (
	"context"

	"github.com/example/applypilot/internal/models"
)

// OperatorPrompter defines the secondary port for suspension points that
// block on operator input. Calls have no timeout; they honor context
// cancellation.
type OperatorPrompter interface {
	// AskQuestion presents an unresolved screening question and blocks
	// until the operator supplies an answer.
	AskQuestion(ctx context.Context, q models.Question) (string, error)

	// ConfirmSubmit presents the final-confirmation prompt before the
	// irreversible submission. Returns false when the operator declines.
	ConfirmSubmit(ctx context.Context, listing models.Listing) (bool, error)
}
