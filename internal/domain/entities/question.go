package entities

import (
	"strings"
)

// Difficulty is the optional difficulty label of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps free text to a Difficulty. The second result is false for unknown values.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	default:
		return "", false
	}
}

// Question is a multiple choice flashcard.
// Answer must equal one of Options and Options must not repeat after trimming.
type Question struct {
	ID         string     `json:"id,omitempty"`
	Question   string     `json:"question" validate:"required"`
	Options    []string   `json:"options" validate:"min=2,unique,dive,required"`
	Answer     string     `json:"answer" validate:"required"`
	Category   string     `json:"category,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
}

// Normalized returns a copy with trimmed text fields and a lower-cased difficulty.
// The options slice is copied so the result never aliases q.
func (q Question) Normalized() Question {
	out := q
	out.ID = strings.TrimSpace(q.ID)
	out.Question = strings.TrimSpace(q.Question)
	out.Answer = strings.TrimSpace(q.Answer)
	out.Category = strings.TrimSpace(q.Category)
	out.Difficulty = Difficulty(strings.ToLower(strings.TrimSpace(string(q.Difficulty))))

	out.Options = make([]string, len(q.Options))
	for i, opt := range q.Options {
		out.Options[i] = strings.TrimSpace(opt)
	}

	return out
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	out := q
	out.Options = append([]string(nil), q.Options...)
	return out
}

// HasOption reports whether option is one of the question's options.
func (q Question) HasOption(option string) bool {
	for _, opt := range q.Options {
		if opt == option {
			return true
		}
	}
	return false
}

// SameContent reports whether two questions carry the same text, options and answer, ignoring IDs.
func (q Question) SameContent(other Question) bool {
	if q.Question != other.Question || q.Answer != other.Answer || len(q.Options) != len(other.Options) {
		return false
	}
	for i := range q.Options {
		if q.Options[i] != other.Options[i] {
			return false
		}
	}
	return q.Category == other.Category && q.Difficulty == other.Difficulty
}

// AIQuestion is a question as returned by the generation service.
// It is loosely trusted and must pass ValidateQuestion before it is stored.
type AIQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Category    string   `json:"category,omitempty"`
}

// ToQuestion converts the DTO into a Question. Unknown difficulty labels are dropped.
func (a AIQuestion) ToQuestion() Question {
	d, _ := ParseDifficulty(a.Difficulty)
	return Question{
		Question:   a.Question,
		Options:    append([]string(nil), a.Options...),
		Answer:     a.Answer,
		Category:   a.Category,
		Difficulty: d,
	}
}
