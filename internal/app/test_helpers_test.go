package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/applypilot/internal/models"
	"github.com/example/applypilot/internal/ports/secondary"
)

// mockSession records the UI actions taken against one apply flow.
type mockSession struct {
	questions []models.Question

	fillErr   map[string]error
	answerErr error
	resumeErr error
	submitErr error

	Filled    map[string]string
	Answered  map[string]string
	Resume    string
	Submitted int
	Closed    int
}

var _ secondary.ApplySession = (*mockSession)(nil)

func newMockSession(questions ...models.Question) *mockSession {
	return &mockSession{
		questions: questions,
		Filled:    make(map[string]string),
		Answered:  make(map[string]string),
	}
}

func (m *mockSession) FillField(_ context.Context, field, value string) error {
	if err := m.fillErr[field]; err != nil {
		return err
	}
	m.Filled[field] = value
	return nil
}

func (m *mockSession) Questions(_ context.Context) ([]models.Question, error) {
	return m.questions, nil
}

func (m *mockSession) AnswerQuestion(_ context.Context, q models.Question, answer string) error {
	if m.answerErr != nil {
		return m.answerErr
	}
	m.Answered[q.Text] = answer
	return nil
}

func (m *mockSession) AttachResume(_ context.Context, path string) error {
	if m.resumeErr != nil {
		return m.resumeErr
	}
	m.Resume = path
	return nil
}

func (m *mockSession) Submit(_ context.Context) error {
	m.Submitted++
	return m.submitErr
}

func (m *mockSession) Close(_ context.Context) error {
	m.Closed++
	return nil
}

// mockBoard serves canned listings and sessions.
type mockBoard struct {
	listings  map[string][]models.Listing // keyed by search term
	searchErr error

	session *mockSession
	openErr error

	Searches []secondary.SearchQuery
	Opened   []string
}

var _ secondary.BoardAdapter = (*mockBoard)(nil)

func (m *mockBoard) Login(_ context.Context, _, _ string) error {
	return nil
}

func (m *mockBoard) Search(_ context.Context, q secondary.SearchQuery) ([]models.Listing, error) {
	m.Searches = append(m.Searches, q)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.listings[q.Term], nil
}

func (m *mockBoard) OpenApplyFlow(_ context.Context, l models.Listing) (secondary.ApplySession, error) {
	m.Opened = append(m.Opened, l.ID)
	if m.openErr != nil {
		return nil, m.openErr
	}
	if m.session != nil {
		return m.session, nil
	}
	return newMockSession(), nil
}

// mockLedger is an in-memory LedgerRepository.
type mockLedger struct {
	mu      sync.Mutex
	applied []*models.ApplicationRecord
	failed  []*models.ApplicationRecord

	hasErr    error
	recordErr error
}

var _ secondary.LedgerRepository = (*mockLedger)(nil)

func (m *mockLedger) HasApplied(_ context.Context, listingID string) (bool, error) {
	if m.hasErr != nil {
		return false, m.hasErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.applied {
		if r.ListingID == listingID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLedger) Record(_ context.Context, rec *models.ApplicationRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.Outcome == models.OutcomeSubmitted {
		m.applied = append(m.applied, rec)
	} else {
		m.failed = append(m.failed, rec)
	}
	return nil
}

func (m *mockLedger) AppliedRecords(_ context.Context) ([]*models.ApplicationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.ApplicationRecord{}, m.applied...), nil
}

func (m *mockLedger) FailedRecords(_ context.Context) ([]*models.ApplicationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.ApplicationRecord{}, m.failed...), nil
}

func (m *mockLedger) recordCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.applied) + len(m.failed)
}

// mockCache is an in-memory AnswerCache.
type mockCache struct {
	entries map[string]*secondary.CachedAnswer

	getErr error
	Gets   int
	Puts   int
}

var _ secondary.AnswerCache = (*mockCache)(nil)

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]*secondary.CachedAnswer)}
}

func (m *mockCache) Get(_ context.Context, key string) (*secondary.CachedAnswer, error) {
	m.Gets++
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.entries[key], nil
}

func (m *mockCache) Put(_ context.Context, entry *secondary.CachedAnswer, overwrite bool) error {
	m.Puts++
	if _, ok := m.entries[entry.Key]; ok && !overwrite {
		return nil
	}
	cp := *entry
	cp.CreatedAt = time.Now()
	m.entries[entry.Key] = &cp
	return nil
}

func (m *mockCache) List(_ context.Context) ([]*secondary.CachedAnswer, error) {
	out := make([]*secondary.CachedAnswer, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

// mockLLM returns canned responses in order, then repeats the last one.
type mockLLM struct {
	responses []string
	errs      []error
	Calls     int
}

var _ secondary.LLMClient = (*mockLLM)(nil)

func (m *mockLLM) Ask(_ context.Context, _ string) (string, error) {
	i := m.Calls
	m.Calls++
	if i < len(m.errs) && m.errs[i] != nil {
		return "", m.errs[i]
	}
	if len(m.responses) == 0 {
		return "", fmt.Errorf("no response configured: %w", secondary.ErrProvider)
	}
	if i >= len(m.responses) {
		i = len(m.responses) - 1
	}
	return m.responses[i], nil
}

// mockPrompter supplies canned operator input.
type mockPrompter struct {
	answer     string
	answerErr  error
	confirm    bool
	confirmErr error

	AskCalls     int
	ConfirmCalls int
}

var _ secondary.OperatorPrompter = (*mockPrompter)(nil)

func (m *mockPrompter) AskQuestion(_ context.Context, _ models.Question) (string, error) {
	m.AskCalls++
	return m.answer, m.answerErr
}

func (m *mockPrompter) ConfirmSubmit(_ context.Context, _ models.Listing) (bool, error) {
	m.ConfirmCalls++
	return m.confirm, m.confirmErr
}

// mockThrottler counts pauses without sleeping.
type mockThrottler struct {
	Pauses int
}

var _ secondary.Throttler = (*mockThrottler)(nil)

func (m *mockThrottler) Pause(_ context.Context) {
	m.Pauses++
}

// mockEvents collects logged events.
type mockEvents struct {
	Events []string
}

var _ secondary.EventLogger = (*mockEvents)(nil)

func (m *mockEvents) LogEvent(_ context.Context, phase, listingID, message string) error {
	m.Events = append(m.Events, fmt.Sprintf("%s %s %s", phase, listingID, message))
	return nil
}
