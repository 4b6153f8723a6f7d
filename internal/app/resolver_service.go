// Package app contains the application services that orchestrate the engine:
// question resolution, the apply state machine, the search cycle, and the run loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/applypilot/internal/config"
	"github.com/example/applypilot/internal/core/question"
	"github.com/example/applypilot/internal/models"
	"github.com/example/applypilot/internal/ports/primary"
	"github.com/example/applypilot/internal/ports/secondary"
)

const answerPrompt = `You are completing a job application on behalf of the candidate described below.

### INSTRUCTIONS:
1. Answer the screening question truthfully based on the candidate profile.
2. Be concise: a number, a short phrase, or at most two sentences.
3. When options are listed, reply with exactly one of them.
4. Reply with the answer only, no preamble and no markdown.

### CANDIDATE PROFILE:
%s

### QUESTION:
%s%s`

// ResolverServiceImpl implements the QuestionResolver interface with layered
// strategies: config mapping, answer cache, AI fallback, operator fallback.
type ResolverServiceImpl struct {
	cache    secondary.AnswerCache
	llm      secondary.LLMClient // nil when AI is disabled
	prompter secondary.OperatorPrompter
	events   secondary.EventLogger

	profile          config.ProfileConfig
	pauseAtFailed    bool
	overwriteAnswers bool
}

// NewResolverService creates a QuestionResolver with injected dependencies.
// llm may be nil when the AI fallback is disabled.
func NewResolverService(
	cache secondary.AnswerCache,
	llm secondary.LLMClient,
	prompter secondary.OperatorPrompter,
	events secondary.EventLogger,
	profile config.ProfileConfig,
	behavior config.BehaviorConfig,
) *ResolverServiceImpl {
	return &ResolverServiceImpl{
		cache:            cache,
		llm:              llm,
		prompter:         prompter,
		events:           events,
		profile:          profile,
		pauseAtFailed:    behavior.PauseAtFailedQuestion,
		overwriteAnswers: behavior.OverwritePreviousAnswers,
	}
}

// Resolve answers a screening question, stopping at the first strategy that
// produces an answer fitting the question's option set.
func (s *ResolverServiceImpl) Resolve(ctx context.Context, q models.Question) (models.Answer, error) {
	key := question.Normalize(q.Text)

	// 1. Direct config mapping
	if text, ok := s.configAnswer(q); ok {
		if fitted, ok := fitOptions(q, text); ok {
			return models.Answer{Text: fitted, Source: models.AnswerSourceConfig}, nil
		}
	}

	// 2. Answer cache (this run or a prior one)
	entry, err := s.cache.Get(ctx, key)
	if err != nil {
		return models.Answer{}, fmt.Errorf("failed to read answer cache: %w", err)
	}
	if entry != nil {
		if fitted, ok := fitOptions(q, entry.Answer); ok {
			return models.Answer{Text: fitted, Source: models.AnswerSourceCachedAI}, nil
		}
	}

	// 3. AI fallback
	if s.llm != nil {
		text, err := s.askAI(ctx, q)
		if err != nil {
			s.logEvent(ctx, "question", "", fmt.Sprintf("ai fallback failed: %v", err))
		} else if fitted, ok := fitOptions(q, text); ok {
			if err := s.cacheAnswer(ctx, key, q.Text, fitted, models.AnswerSourceLiveAI); err != nil {
				return models.Answer{}, err
			}
			return models.Answer{Text: fitted, Source: models.AnswerSourceLiveAI}, nil
		}
	}

	// 4. Operator fallback
	if s.pauseAtFailed && s.prompter != nil {
		text, err := s.prompter.AskQuestion(ctx, q)
		if err != nil {
			return models.Answer{}, fmt.Errorf("operator prompt failed: %w", err)
		}
		if fitted, ok := fitOptions(q, text); ok {
			if err := s.cacheAnswer(ctx, key, q.Text, fitted, models.AnswerSourceManual); err != nil {
				return models.Answer{}, err
			}
			return models.Answer{Text: fitted, Source: models.AnswerSourceManual}, nil
		}
	}

	return models.Answer{}, primary.ErrUnresolved
}

// configAnswer maps a classified question onto a configured scalar value.
func (s *ResolverServiceImpl) configAnswer(q models.Question) (string, bool) {
	p := s.profile

	var text string
	switch question.Classify(q.Text) {
	case question.CategoryExperience:
		text = p.YearsOfExperience
	case question.CategorySalary:
		text = strconv.Itoa(p.DesiredSalary)
	case question.CategoryCurrentComp:
		text = strconv.Itoa(p.CurrentCompensation)
	case question.CategoryNoticePeriod:
		text = strconv.Itoa(p.NoticePeriodDays)
	case question.CategoryVisa:
		text = p.RequireVisa
	case question.CategoryCitizenship:
		text = p.Citizenship
	case question.CategoryPhone:
		text = p.Phone
	case question.CategoryCity:
		text = p.City
	case question.CategoryWebsite:
		text = p.Website
	case question.CategoryProfileURL:
		text = p.ProfileURL
	case question.CategoryCoverLetter:
		text = p.CoverLetter
	case question.CategorySummary:
		text = p.Summary
	case question.CategoryConfidence:
		text = p.ConfidenceLevel
	case question.CategoryRecentEmployer:
		text = p.RecentEmployer
	case question.CategoryFirstName:
		text = p.FirstName
	case question.CategoryLastName:
		text = p.LastName
	case question.CategoryGender:
		text = p.Gender
	case question.CategoryEthnicity:
		text = p.Ethnicity
	case question.CategoryDisability:
		text = p.DisabilityStatus
	case question.CategoryVeteran:
		text = p.VeteranStatus
	default:
		return "", false
	}

	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// askAI issues the bounded LLM call with at most one retry on transient failure.
func (s *ResolverServiceImpl) askAI(ctx context.Context, q models.Question) (string, error) {
	prompt := s.buildPrompt(q)

	text, err := s.llm.Ask(ctx, prompt)
	if err != nil && (errors.Is(err, secondary.ErrProviderTimeout) || errors.Is(err, secondary.ErrProvider)) {
		if ctx.Err() != nil {
			return "", err
		}
		text, err = s.llm.Ask(ctx, prompt)
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

func (s *ResolverServiceImpl) buildPrompt(q models.Question) string {
	options := ""
	if len(q.Options) > 0 {
		options = "\n\n### OPTIONS:\n" + strings.Join(q.Options, "\n")
	}
	return fmt.Sprintf(answerPrompt, s.profile.ProfileText, q.Text, options)
}

func (s *ResolverServiceImpl) cacheAnswer(ctx context.Context, key, questionText, answer string, source models.AnswerSource) error {
	err := s.cache.Put(ctx, &secondary.CachedAnswer{
		Key:      key,
		Question: questionText,
		Answer:   answer,
		Source:   source,
	}, s.overwriteAnswers)
	if err != nil {
		return fmt.Errorf("failed to cache answer: %w", err)
	}
	return nil
}

func (s *ResolverServiceImpl) logEvent(ctx context.Context, phase, listingID, message string) {
	if s.events != nil {
		_ = s.events.LogEvent(ctx, phase, listingID, message)
	}
}

// fitOptions maps a resolved answer onto a choice question's option set.
// Non-choice questions pass any non-empty answer through.
func fitOptions(q models.Question, answer string) (string, bool) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", false
	}
	if q.Kind != models.QuestionChoice || len(q.Options) == 0 {
		return answer, true
	}
	return question.MatchOption(answer, q.Options)
}
