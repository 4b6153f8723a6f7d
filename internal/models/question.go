package models

// QuestionKind distinguishes free-text, numeric, and single-choice questions.
type QuestionKind string

const (
	QuestionText    QuestionKind = "text"
	QuestionNumeric QuestionKind = "numeric"
	QuestionChoice  QuestionKind = "choice"
)

// Question is a screening question presented by the quick-apply flow.
type Question struct {
	Text     string
	Kind     QuestionKind
	Options  []string // populated for choice questions only
	Required bool
}

// AnswerSource records which resolution layer produced an answer.
type AnswerSource string

const (
	AnswerSourceConfig   AnswerSource = "config"
	AnswerSourceCachedAI AnswerSource = "cached_ai"
	AnswerSourceLiveAI   AnswerSource = "live_ai"
	AnswerSourceManual   AnswerSource = "manual"
)

// Answer is the resolved answer to a screening question.
type Answer struct {
	Text   string
	Source AnswerSource
}

// GivenAnswer pairs a question with the answer actually entered into the flow.
type GivenAnswer struct {
	Question string       `json:"question"`
	Answer   string       `json:"answer"`
	Source   AnswerSource `json:"source"`
}
