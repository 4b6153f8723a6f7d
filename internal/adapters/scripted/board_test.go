package scripted

import (
	"context"
	"testing"

	"github.com/example/applypilot/internal/ports/secondary"
)

const testScript = `
listings:
  - id: L-1
    title: Security Engineer
    company: Acme
    quick_apply: true
    terms: ["Security Engineer"]
    questions:
      - text: "How many years of experience do you have?"
        kind: numeric
        required: true
  - id: L-2
    title: PHP Developer
    company: WebShop
    quick_apply: false
  - id: L-3
    title: Python Developer
    company: DataCo
    quick_apply: true
    submit_error: true
`

func TestSearchFiltersByTermAndQuickApply(t *testing.T) {
	board, err := Parse([]byte(testScript))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	ctx := context.Background()

	listings, err := board.Search(ctx, secondary.SearchQuery{Term: "Security Engineer"})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	// L-1 matches by term; L-2 and L-3 have no term restriction.
	if len(listings) != 3 {
		t.Fatalf("Search() returned %d listings, want 3", len(listings))
	}

	listings, err = board.Search(ctx, secondary.SearchQuery{Term: "Python Developer", EasyApplyOnly: true})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(listings) != 1 || listings[0].ID != "L-3" {
		t.Errorf("Search() easy-apply = %+v, want only L-3", listings)
	}
}

func TestOpenApplyFlowAndSubmit(t *testing.T) {
	board, err := Parse([]byte(testScript))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	ctx := context.Background()

	listings, err := board.Search(ctx, secondary.SearchQuery{Term: "Security Engineer"})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	sess, err := board.OpenApplyFlow(ctx, listings[0])
	if err != nil {
		t.Fatalf("OpenApplyFlow() error: %v", err)
	}

	questions, err := sess.Questions(ctx)
	if err != nil {
		t.Fatalf("Questions() error: %v", err)
	}
	if len(questions) != 1 || questions[0].Required != true {
		t.Fatalf("Questions() = %+v, want one required question", questions)
	}

	if err := sess.AnswerQuestion(ctx, questions[0], "8"); err != nil {
		t.Fatalf("AnswerQuestion() error: %v", err)
	}
	if err := sess.Submit(ctx); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
}

func TestScriptedSubmitError(t *testing.T) {
	board, err := Parse([]byte(testScript))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	ctx := context.Background()

	listings, err := board.Search(ctx, secondary.SearchQuery{Term: "Python Developer", EasyApplyOnly: true})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	sess, err := board.OpenApplyFlow(ctx, listings[0])
	if err != nil {
		t.Fatalf("OpenApplyFlow() error: %v", err)
	}
	if err := sess.Submit(ctx); err == nil {
		t.Error("Submit() succeeded for scripted submit_error listing, want error")
	}
}
