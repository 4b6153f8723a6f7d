package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/applypilot/internal/config"
	"github.com/example/applypilot/internal/core/apply"
	"github.com/example/applypilot/internal/models"
	"github.com/example/applypilot/internal/ports/primary"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Profile.FirstName = "Ada"
	cfg.Profile.LastName = "Lovelace"
	cfg.Profile.Phone = "555-0100"
	cfg.Profile.City = "Austin"
	cfg.Profile.YearsOfExperience = "5"
	cfg.Search.Terms = []string{"go developer"}
	cfg.Behavior.PauseBeforeSubmit = false
	cfg.Behavior.PauseAtFailedQuestion = false
	return cfg
}

func quickApplyListing(id string) models.Listing {
	return models.Listing{
		ID:          id,
		Title:       "Backend Engineer",
		Company:     "Initech",
		Description: "Build Go services.",
		QuickApply:  true,
	}
}

func newTestApplyService(cfg *config.Config, board *mockBoard, ledger *mockLedger, prompter *mockPrompter) *ApplyServiceImpl {
	resolver := NewResolverService(newMockCache(), nil, prompter, &mockEvents{}, cfg.Profile, cfg.Behavior)
	svc := NewApplyService(board, resolver, ledger, prompter, &mockThrottler{}, &mockEvents{}, cfg)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestProcessListingSubmitted(t *testing.T) {
	cfg := testConfig()
	session := newMockSession(models.Question{
		Text: "How many years of experience do you have with Go?",
		Kind: models.QuestionNumeric,
	})
	board := &mockBoard{session: session}
	ledger := &mockLedger{}
	svc := newTestApplyService(cfg, board, ledger, &mockPrompter{})

	res, err := svc.ProcessListing(context.Background(), primary.ProcessListingRequest{
		Listing: quickApplyListing("job-1"),
		Term:    "go developer",
	})
	if err != nil {
		t.Fatalf("ProcessListing failed: %v", err)
	}

	if res.Outcome != models.OutcomeSubmitted {
		t.Errorf("expected submitted outcome, got %s (reason %q)", res.Outcome, res.Reason)
	}
	if res.State != apply.StateSubmitted {
		t.Errorf("expected submitted state, got %s", res.State)
	}
	if session.Submitted != 1 {
		t.Errorf("expected exactly one submit call, got %d", session.Submitted)
	}
	if session.Resume != cfg.Profile.ResumePath {
		t.Errorf("expected resume %q attached, got %q", cfg.Profile.ResumePath, session.Resume)
	}
	if session.Filled["phone"] != "555-0100" {
		t.Errorf("expected phone field filled, got %v", session.Filled)
	}
	if got := session.Answered["How many years of experience do you have with Go?"]; got != "5" {
		t.Errorf("expected question answered from profile, got %q", got)
	}
	if len(ledger.applied) != 1 || ledger.recordCount() != 1 {
		t.Fatalf("expected exactly one applied record, got %d applied / %d total", len(ledger.applied), ledger.recordCount())
	}
	if ledger.applied[0].Term != "go developer" {
		t.Errorf("expected record to carry the search term, got %q", ledger.applied[0].Term)
	}
}

func TestProcessListingFilterSkipNeverOpens(t *testing.T) {
	cfg := testConfig()
	board := &mockBoard{}
	ledger := &mockLedger{}
	svc := newTestApplyService(cfg, board, ledger, &mockPrompter{})

	l := quickApplyListing("job-2")
	l.Description = "Maintain COBOL batch jobs."

	res, err := svc.ProcessListing(context.Background(), primary.ProcessListingRequest{Listing: l, Term: "go developer"})
	if err != nil {
		t.Fatalf("ProcessListing failed: %v", err)
	}

	if res.Outcome != models.OutcomeSkipped || res.Reason != models.ReasonBadWord {
		t.Errorf("expected skipped/bad_word, got %s/%s", res.Outcome, res.Reason)
	}
	if len(board.Opened) != 0 {
		t.Errorf("filtered listing must not reach the board, opened %v", board.Opened)
	}
	if len(ledger.failed) != 1 {
		t.Fatalf("expected one skipped record, got %d", len(ledger.failed))
	}
}

func TestProcessListingDeduplicated(t *testing.T) {
	cfg := testConfig()
	board := &mockBoard{}
	ledger := &mockLedger{applied: []*models.ApplicationRecord{
		{ListingID: "job-3", Outcome: models.OutcomeSubmitted},
	}}
	svc := newTestApplyService(cfg, board, ledger, &mockPrompter{})

	res, err := svc.ProcessListing(context.Background(), primary.ProcessListingRequest{
		Listing: quickApplyListing("job-3"),
		Term:    "go developer",
	})
	if err != nil {
		t.Fatalf("ProcessListing failed: %v", err)
	}

	if !res.Deduplicated {
		t.Error("expected deduplicated result")
	}
	if len(board.Opened) != 0 {
		t.Errorf("deduplicated listing must take no UI action, opened %v", board.Opened)
	}
	if ledger.recordCount() != 1 {
		t.Errorf("deduplication must not write a new record, ledger has %d", ledger.recordCount())
	}
}

func TestProcessListingOpenFailure(t *testing.T) {
	cfg := testConfig()
	board := &mockBoard{openErr: errors.New("modal did not appear")}
	ledger := &mockLedger{}
	svc := newTestApplyService(cfg, board, ledger, &mockPrompter{})

	res, err := svc.ProcessListing(context.Background(), primary.ProcessListingRequest{
		Listing: quickApplyListing("job-4"),
		Term:    "go developer",
	})
	if err != nil {
		t.Fatalf("ProcessListing failed: %v", err)
	}

	if res.Outcome != models.OutcomeFailed || res.Reason != models.ReasonOpenFailed {
		t.Errorf("expected failed/open_failed, got %s/%s", res.Outcome, res.Reason)
	}
	if len(ledger.failed) != 1 {
		t.Fatalf("expected one failed record, got %d", len(ledger.failed))
	}
}

func TestProcessListingRequiredFieldMissing(t *testing.T) {
	cfg := testConfig()
	cfg.Profile.Phone = ""
	session := newMockSession()
	board := &mockBoard{session: session}
	ledger := &mockLedger{}
	svc := newTestApplyService(cfg, board, ledger, &mockPrompter{})

	res, err := svc.ProcessListing(context.Background(), primary.ProcessListingRequest{
		Listing: quickApplyListing("job-5"),
		Term:    "go developer",
	})
	if err != nil {
		t.Fatalf("ProcessListing failed: %v", err)
	}

	if res.Outcome != models.OutcomeFailed || res.Reason != models.ReasonFieldPopulationError {
		t.Errorf("expected failed/field_population_error, got %s/%s", res.Outcome, res.Reason)
	}
	if session.Submitted != 0 {
		t.Errorf("must not submit after a fatal field error, got %d submits", session.Submitted)
	}
	if session.Closed == 0 {
		t.Error("abandoned flow must be closed")
	}
}

func TestProcessListingUnresolvedQuestion(t *testing.T) {
	cfg := testConfig()
	session := newMockSession(models.Question{
		Text: "Describe your favorite production incident.",
		Kind: models.QuestionText,
	})
	board := &mockBoard{session: session}
	ledger := &mockLedger{}
	svc := newTestApplyService(cfg, board, ledger, &mockPrompter{})

	res, err := svc.ProcessListing(context.Background(), primary.ProcessListingRequest{
		Listing: quickApplyListing("job-6"),
		Term:    "go developer",
	})
	if err != nil {
		t.Fatalf("ProcessListing failed: %v", err)
	}

	if res.Outcome != models.OutcomeFailed || res.Reason != models.ReasonUnresolvedQuestion {
		t.Errorf("expected failed/unresolved_question, got %s/%s", res.Outcome, res.Reason)
	}
	if session.Submitted != 0 {
		t.Errorf("must not submit with an unresolved question, got %d submits", session.Submitted)
	}
	if session.Closed == 0 {
		t.Error("abandoned flow must be closed")
	}
}

func TestProcessListingOperatorAnswersUnmappedQuestion(t *testing.T) {
	cfg := testConfig()
	cfg.Behavior.PauseAtFailedQuestion = true
	cfg.Behavior.PauseBeforeSubmit = true

	session := newMockSession(models.Question{
		Text: "How long have you worked with Terraform?",
		Kind: models.QuestionText,
	})
	board := &mockBoard{session: session}
	ledger := &mockLedger{}
	prompter := &mockPrompter{answer: "5 years", confirm: true}
	svc := newTestApplyService(cfg, board, ledger, prompter)

	res, err := svc.ProcessListing(context.Background(), primary.ProcessListingRequest{
		Listing: quickApplyListing("job-10"),
		Term:    "go developer",
	})
	if err != nil {
		t.Fatalf("ProcessListing failed: %v", err)
	}

	if res.Outcome != models.OutcomeSubmitted {
		t.Fatalf("expected submitted outcome, got %s (reason %q)", res.Outcome, res.Reason)
	}
	if prompter.AskCalls != 1 {
		t.Errorf("expected one operator question prompt, got %d", prompter.AskCalls)
	}
	if prompter.ConfirmCalls != 1 {
		t.Errorf("expected one final confirmation prompt, got %d", prompter.ConfirmCalls)
	}
	if got := session.Answered["How long have you worked with Terraform?"]; got != "5 years" {
		t.Errorf("expected operator answer entered, got %q", got)
	}
	if len(res.Answers) != 1 || res.Answers[0].Source != models.AnswerSourceManual {
		t.Errorf("expected one manual answer in the record, got %+v", res.Answers)
	}
}

func TestProcessListingSubmitErrorNotRetried(t *testing.T) {
	cfg := testConfig()
	session := newMockSession()
	session.submitErr = errors.New("confirmation never appeared")
	board := &mockBoard{session: session}
	ledger := &mockLedger{}
	svc := newTestApplyService(cfg, board, ledger, &mockPrompter{})

	res, err := svc.ProcessListing(context.Background(), primary.ProcessListingRequest{
		Listing: quickApplyListing("job-7"),
		Term:    "go developer",
	})
	if err != nil {
		t.Fatalf("ProcessListing failed: %v", err)
	}

	if res.Outcome != models.OutcomeFailed || res.Reason != models.ReasonSubmitError {
		t.Errorf("expected failed/submit_error, got %s/%s", res.Outcome, res.Reason)
	}
	if session.Submitted != 1 {
		t.Errorf("submission must be attempted exactly once, got %d", session.Submitted)
	}
	if len(ledger.failed) != 1 || len(ledger.applied) != 0 {
		t.Fatalf("expected exactly one failed record, got %d failed / %d applied", len(ledger.failed), len(ledger.applied))
	}
}

func TestProcessListingOperatorDeclines(t *testing.T) {
	cfg := testConfig()
	cfg.Behavior.PauseBeforeSubmit = true
	session := newMockSession()
	board := &mockBoard{session: session}
	ledger := &mockLedger{}
	prompter := &mockPrompter{confirm: false}
	svc := newTestApplyService(cfg, board, ledger, prompter)

	res, err := svc.ProcessListing(context.Background(), primary.ProcessListingRequest{
		Listing: quickApplyListing("job-8"),
		Term:    "go developer",
	})
	if err != nil {
		t.Fatalf("ProcessListing failed: %v", err)
	}

	if res.Outcome != models.OutcomeSkipped || res.Reason != models.ReasonOperatorDeclined {
		t.Errorf("expected skipped/operator_declined, got %s/%s", res.Outcome, res.Reason)
	}
	if prompter.ConfirmCalls != 1 {
		t.Errorf("expected one confirmation prompt, got %d", prompter.ConfirmCalls)
	}
	if session.Submitted != 0 {
		t.Errorf("declined submission must not be sent, got %d submits", session.Submitted)
	}
}

func TestProcessListingLedgerWriteFailureIsFatal(t *testing.T) {
	cfg := testConfig()
	board := &mockBoard{}
	ledger := &mockLedger{recordErr: errors.New("disk full")}
	svc := newTestApplyService(cfg, board, ledger, &mockPrompter{})

	l := quickApplyListing("job-9")
	l.Description = "Maintain COBOL batch jobs."

	_, err := svc.ProcessListing(context.Background(), primary.ProcessListingRequest{Listing: l, Term: "go developer"})
	if err == nil {
		t.Fatal("expected error when the ledger write fails")
	}
}
