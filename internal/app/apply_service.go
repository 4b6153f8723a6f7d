package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/applypilot/internal/config"
	"github.com/example/applypilot/internal/core/apply"
	"github.com/example/applypilot/internal/core/filter"
	"github.com/example/applypilot/internal/models"
	"github.com/example/applypilot/internal/ports/primary"
	"github.com/example/applypilot/internal/ports/secondary"
)

// profileField is one structured field populated during FillingProfile.
type profileField struct {
	name     string
	value    string
	required bool
}

// ApplyServiceImpl drives one listing through the multi-step apply flow.
type ApplyServiceImpl struct {
	board    secondary.BoardAdapter
	resolver primary.QuestionResolver
	ledger   secondary.LedgerRepository
	prompter secondary.OperatorPrompter
	throttle secondary.Throttler
	events   secondary.EventLogger

	cfg   *config.Config
	rules filter.Rules
	now   func() time.Time
}

// NewApplyService creates the apply state machine service.
func NewApplyService(
	board secondary.BoardAdapter,
	resolver primary.QuestionResolver,
	ledger secondary.LedgerRepository,
	prompter secondary.OperatorPrompter,
	throttle secondary.Throttler,
	events secondary.EventLogger,
	cfg *config.Config,
) *ApplyServiceImpl {
	return &ApplyServiceImpl{
		board:    board,
		resolver: resolver,
		ledger:   ledger,
		prompter: prompter,
		throttle: throttle,
		events:   events,
		cfg:      cfg,
		rules:    FilterRules(cfg),
		now:      time.Now,
	}
}

// FilterRules derives the listing filter rules from the configuration.
func FilterRules(cfg *config.Config) filter.Rules {
	return filter.Rules{
		CompanyBadWords:      cfg.Filters.CompanyBadWords,
		CompanyGoodWords:     cfg.Filters.CompanyGoodWords,
		BadWords:             cfg.Filters.BadWords,
		WorkModes:            cfg.Search.WorkModes,
		JobTypes:             cfg.Search.JobTypes,
		ExperienceLevels:     cfg.Search.Experience,
		EasyApplyOnly:        cfg.Search.EasyApplyOnly,
		HasSecurityClearance: cfg.Filters.SecurityClearance,
		CurrentExperienceYrs: cfg.Filters.CurrentExperience,
	}
}

// ProcessListing runs the state machine for one listing. Exactly one ledger
// record is written per terminal state; a listing deduplicated against a
// prior Submitted record takes no UI action and writes nothing. A ledger
// read or write failure aborts the whole run.
func (s *ApplyServiceImpl) ProcessListing(ctx context.Context, req primary.ProcessListingRequest) (*primary.ApplicationResult, error) {
	l := req.Listing

	// Filtering
	decision := filter.Decide(l, s.rules)
	if decision.Outcome == models.FilterSkip {
		s.logEvent(ctx, "filter", l.ID, "skipped: "+decision.Reason)
		return s.finish(ctx, req, apply.StateSkipped, models.OutcomeSkipped, decision.Reason, nil)
	}

	// Idempotency gate, checked before any UI side effect
	alreadySubmitted, err := s.ledger.HasApplied(ctx, l.ID)
	if err != nil {
		return nil, fmt.Errorf("ledger read failed: %w", err)
	}

	if guard := apply.CanOpen(apply.OpenContext{
		ListingID:        l.ID,
		Decision:         decision,
		AlreadySubmitted: alreadySubmitted,
	}); !guard.Allowed {
		s.logEvent(ctx, "dedup", l.ID, guard.Reason)
		return &primary.ApplicationResult{
			ListingID:    l.ID,
			State:        apply.StateSkipped,
			Outcome:      models.OutcomeSkipped,
			Deduplicated: true,
		}, nil
	}

	// Opening
	s.throttle.Pause(ctx)
	sess, err := s.board.OpenApplyFlow(ctx, l)
	if err != nil {
		s.logEvent(ctx, "open", l.ID, "open failed: "+err.Error())
		return s.finish(ctx, req, apply.StateFailed, models.OutcomeFailed, models.ReasonOpenFailed, nil)
	}

	submitted := false
	defer func() {
		if !submitted {
			_ = sess.Close(context.WithoutCancel(ctx))
		}
	}()

	// FillingProfile
	if reason, fatal := s.fillProfile(ctx, sess, l.ID); fatal {
		return s.finish(ctx, req, apply.StateFailed, models.OutcomeFailed, reason, nil)
	}

	// AnsweringQuestions
	answers, reason, err := s.answerQuestions(ctx, sess, l.ID)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return s.finish(ctx, req, apply.StateFailed, models.OutcomeFailed, reason, answers)
	}

	// AttachingResume
	s.throttle.Pause(ctx)
	if err := sess.AttachResume(ctx, s.cfg.Profile.ResumePath); err != nil {
		s.logEvent(ctx, "resume", l.ID, "attach failed: "+err.Error())
		return s.finish(ctx, req, apply.StateFailed, models.OutcomeFailed, models.ReasonFieldPopulationError, answers)
	}

	// ReviewPending
	confirmed := true
	if s.cfg.Behavior.PauseBeforeSubmit {
		confirmed, err = s.prompter.ConfirmSubmit(ctx, l)
		if err != nil {
			return nil, fmt.Errorf("submit confirmation failed: %w", err)
		}
	}
	if guard := apply.CanSubmit(apply.SubmitContext{
		ListingID:         l.ID,
		PauseBeforeSubmit: s.cfg.Behavior.PauseBeforeSubmit,
		OperatorConfirmed: confirmed,
	}); !guard.Allowed {
		s.logEvent(ctx, "review", l.ID, guard.Reason)
		return s.finish(ctx, req, apply.StateSkipped, models.OutcomeSkipped, models.ReasonOperatorDeclined, answers)
	}

	// Submitting is a critical section: once initiated, the outcome is
	// observed and recorded before any cancellation is honored, and the
	// irreversible action is never retried.
	submitCtx := context.WithoutCancel(ctx)
	if err := sess.Submit(submitCtx); err != nil {
		s.logEvent(submitCtx, "submit", l.ID, "submit failed: "+err.Error())
		return s.finish(submitCtx, req, apply.StateFailed, models.OutcomeFailed, models.ReasonSubmitError, answers)
	}
	submitted = true

	s.logEvent(submitCtx, "submit", l.ID, "application submitted")
	return s.finish(submitCtx, req, apply.StateSubmitted, models.OutcomeSubmitted, "", answers)
}

// fillProfile populates the structured fields from configuration. A missing
// value on an optional field is flagged and skipped; on a required field it
// is fatal for this listing.
func (s *ApplyServiceImpl) fillProfile(ctx context.Context, sess secondary.ApplySession, listingID string) (string, bool) {
	p := s.cfg.Profile
	fields := []profileField{
		{"first_name", p.FirstName, true},
		{"last_name", p.LastName, true},
		{"phone", p.Phone, true},
		{"city", p.City, false},
		{"country", p.Country, false},
	}

	for _, f := range fields {
		if guard := apply.FieldFatal(apply.FieldContext{Field: f.name, Value: f.value, Required: f.required}); !guard.Allowed {
			s.logEvent(ctx, "fill", listingID, guard.Reason)
			return models.ReasonFieldPopulationError, true
		}
		if f.value == "" {
			s.logEvent(ctx, "fill", listingID, fmt.Sprintf("field %q has no configured value, skipped", f.name))
			continue
		}

		s.throttle.Pause(ctx)
		if err := sess.FillField(ctx, f.name, f.value); err != nil {
			if f.required {
				s.logEvent(ctx, "fill", listingID, fmt.Sprintf("field %q failed: %v", f.name, err))
				return models.ReasonFieldPopulationError, true
			}
			s.logEvent(ctx, "fill", listingID, fmt.Sprintf("optional field %q failed, flagged: %v", f.name, err))
		}
	}

	return "", false
}

// answerQuestions resolves and enters every presented question. It returns
// the answers given so far, a failure reason for terminal failures, or an
// error for conditions that abort the whole run.
func (s *ApplyServiceImpl) answerQuestions(ctx context.Context, sess secondary.ApplySession, listingID string) ([]models.GivenAnswer, string, error) {
	questions, err := sess.Questions(ctx)
	if err != nil {
		s.logEvent(ctx, "questions", listingID, "reading questions failed: "+err.Error())
		return nil, models.ReasonOpenFailed, nil
	}

	var given []models.GivenAnswer
	for _, q := range questions {
		ans, err := s.resolver.Resolve(ctx, q)
		if errors.Is(err, primary.ErrUnresolved) {
			s.logEvent(ctx, "questions", listingID, fmt.Sprintf("unresolved question: %q", q.Text))
			return given, models.ReasonUnresolvedQuestion, nil
		}
		if err != nil {
			return given, "", fmt.Errorf("resolving question %q: %w", q.Text, err)
		}

		s.throttle.Pause(ctx)
		if err := sess.AnswerQuestion(ctx, q, ans.Text); err != nil {
			s.logEvent(ctx, "questions", listingID, fmt.Sprintf("entering answer failed: %v", err))
			return given, models.ReasonFieldPopulationError, nil
		}
		given = append(given, models.GivenAnswer{Question: q.Text, Answer: ans.Text, Source: ans.Source})
	}

	return given, "", nil
}

// finish writes the terminal record and builds the result. The record write
// happens after the external action is confirmed, never speculatively before.
func (s *ApplyServiceImpl) finish(ctx context.Context, req primary.ProcessListingRequest, state apply.State, outcome models.Outcome, reason string, answers []models.GivenAnswer) (*primary.ApplicationResult, error) {
	rec := &models.ApplicationRecord{
		ListingID: req.Listing.ID,
		Title:     req.Listing.Title,
		Company:   req.Listing.Company,
		Term:      req.Term,
		Timestamp: s.now(),
		Outcome:   outcome,
		Reason:    reason,
		Answers:   answers,
	}
	if err := s.ledger.Record(ctx, rec); err != nil {
		return nil, fmt.Errorf("ledger write failed: %w", err)
	}

	return &primary.ApplicationResult{
		ListingID: req.Listing.ID,
		State:     state,
		Outcome:   outcome,
		Reason:    reason,
		Answers:   answers,
	}, nil
}

func (s *ApplyServiceImpl) logEvent(ctx context.Context, phase, listingID, message string) {
	if s.events != nil {
		_ = s.events.LogEvent(ctx, phase, listingID, message)
	}
}
