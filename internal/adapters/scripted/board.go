// Package scripted contains a deterministic board implementation driven by a
// YAML script. It backs dry runs and lets the engine be exercised end to end
// without a live board session.
package scripted

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/applypilot/internal/models"
	"github.com/example/applypilot/internal/ports/secondary"
)

// ScriptQuestion is one screening question in the script.
type ScriptQuestion struct {
	Text     string   `yaml:"text"`
	Kind     string   `yaml:"kind,omitempty"` // text / numeric / choice
	Options  []string `yaml:"options,omitempty"`
	Required bool     `yaml:"required,omitempty"`
}

// ScriptListing is one listing in the script, plus the behavior its apply
// flow should exhibit.
type ScriptListing struct {
	ID              string           `yaml:"id"`
	Title           string           `yaml:"title"`
	Company         string           `yaml:"company"`
	Description     string           `yaml:"description,omitempty"`
	AboutCompany    string           `yaml:"about_company,omitempty"`
	Location        string           `yaml:"location,omitempty"`
	WorkMode        string           `yaml:"work_mode,omitempty"`
	JobType         string           `yaml:"job_type,omitempty"`
	ExperienceLevel string           `yaml:"experience_level,omitempty"`
	Salary          string           `yaml:"salary,omitempty"`
	QuickApply      bool             `yaml:"quick_apply"`
	Terms           []string         `yaml:"terms,omitempty"` // discovering terms; empty = all
	Questions       []ScriptQuestion `yaml:"questions,omitempty"`
	OpenError       bool             `yaml:"open_error,omitempty"`
	SubmitError     bool             `yaml:"submit_error,omitempty"`
}

// Script is the full YAML document.
type Script struct {
	Listings []ScriptListing `yaml:"listings"`
}

// Board implements secondary.BoardAdapter from a script.
type Board struct {
	script Script
}

var _ secondary.BoardAdapter = (*Board)(nil)

// Login is a no-op for the scripted board; the session is always live.
func (b *Board) Login(ctx context.Context, username, password string) error {
	return nil
}

// Load reads a script file.
func Load(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(data)
}

// Parse builds a board from raw script bytes.
func Parse(data []byte) (*Board, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	for i, l := range script.Listings {
		if l.ID == "" {
			return nil, fmt.Errorf("script listing %d has no id", i)
		}
	}
	return &Board{script: script}, nil
}

// Search returns the scripted listings discovered by the query, in script order.
func (b *Board) Search(ctx context.Context, q secondary.SearchQuery) ([]models.Listing, error) {
	var out []models.Listing
	for _, l := range b.script.Listings {
		if !discoveredBy(l, q.Term) {
			continue
		}
		if q.EasyApplyOnly && !l.QuickApply {
			continue
		}
		out = append(out, toListing(l, q.DatePosted))
	}
	return out, nil
}

// OpenApplyFlow opens a scripted session for a listing.
func (b *Board) OpenApplyFlow(ctx context.Context, listing models.Listing) (secondary.ApplySession, error) {
	for _, l := range b.script.Listings {
		if l.ID != listing.ID {
			continue
		}
		if l.OpenError {
			return nil, fmt.Errorf("scripted open failure for listing %s", l.ID)
		}
		return &session{listing: l}, nil
	}
	return nil, fmt.Errorf("listing %s not in script", listing.ID)
}

func discoveredBy(l ScriptListing, term string) bool {
	if len(l.Terms) == 0 {
		return true
	}
	for _, t := range l.Terms {
		if t == term {
			return true
		}
	}
	return false
}

func toListing(l ScriptListing, bucket string) models.Listing {
	return models.Listing{
		ID:              l.ID,
		Title:           l.Title,
		Company:         l.Company,
		Description:     l.Description,
		AboutCompany:    l.AboutCompany,
		Location:        l.Location,
		WorkMode:        l.WorkMode,
		JobType:         l.JobType,
		ExperienceLevel: l.ExperienceLevel,
		PostedBucket:    bucket,
		Salary:          l.Salary,
		QuickApply:      l.QuickApply,
	}
}

// session is one scripted apply flow. It records every action for inspection.
type session struct {
	listing   ScriptListing
	Filled    map[string]string
	Answered  []models.GivenAnswer
	Resume    string
	Submitted bool
	Closed    bool
}

var _ secondary.ApplySession = (*session)(nil)

func (s *session) FillField(ctx context.Context, field, value string) error {
	if s.Filled == nil {
		s.Filled = make(map[string]string)
	}
	s.Filled[field] = value
	return nil
}

func (s *session) Questions(ctx context.Context) ([]models.Question, error) {
	out := make([]models.Question, 0, len(s.listing.Questions))
	for _, q := range s.listing.Questions {
		kind := models.QuestionKind(q.Kind)
		if kind == "" {
			kind = models.QuestionText
		}
		out = append(out, models.Question{
			Text:     q.Text,
			Kind:     kind,
			Options:  q.Options,
			Required: q.Required,
		})
	}
	return out, nil
}

func (s *session) AnswerQuestion(ctx context.Context, q models.Question, answer string) error {
	s.Answered = append(s.Answered, models.GivenAnswer{Question: q.Text, Answer: answer})
	return nil
}

func (s *session) AttachResume(ctx context.Context, path string) error {
	s.Resume = path
	return nil
}

func (s *session) Submit(ctx context.Context) error {
	if s.listing.SubmitError {
		return fmt.Errorf("scripted submit failure for listing %s", s.listing.ID)
	}
	s.Submitted = true
	return nil
}

func (s *session) Close(ctx context.Context) error {
	s.Closed = true
	return nil
}
