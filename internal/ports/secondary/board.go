// Package secondary defines the secondary ports (driven adapters) for the application.
package secondary

import (
	"context"

	"github.com/example/applypilot/internal/models"
)

// SearchQuery describes one search the board should perform.
type SearchQuery struct {
	Term          string
	Location      string
	SortBy        string
	DatePosted    string
	Salary        string // salary floor filter, e.g. "$80,000+"
	EasyApplyOnly bool
}

// ApplySession is one open quick-apply flow. All methods drive externally
// visible UI actions and are called sequentially for a single listing.
type ApplySession interface {
	// FillField populates a structured profile field (contact info, etc).
	FillField(ctx context.Context, field, value string) error

	// Questions returns the screening questions currently presented.
	Questions(ctx context.Context) ([]models.Question, error)

	// AnswerQuestion enters the answer for a presented question.
	AnswerQuestion(ctx context.Context, q models.Question, answer string) error

	// AttachResume uploads or selects the resume document.
	AttachResume(ctx context.Context, path string) error

	// Submit performs the final, irreversible submission.
	Submit(ctx context.Context) error

	// Close abandons the flow without submitting.
	Close(ctx context.Context) error
}

// BoardAdapter defines the secondary port for the UI-driving collaborator.
// The engine only depends on these capabilities, never on how they are realized.
type BoardAdapter interface {
	// Login establishes the board session before any search. How the
	// credentials are entered is the adapter's concern.
	Login(ctx context.Context, username, password string) error

	// Search returns the listings discovered for a query, in discovery order.
	Search(ctx context.Context, q SearchQuery) ([]models.Listing, error)

	// OpenApplyFlow enters the quick-apply flow for a listing.
	OpenApplyFlow(ctx context.Context, listing models.Listing) (ApplySession, error)
}
