package entities

import (
	"time"
)

// AnsweredRecord is the outcome of one answered question in a quiz session.
// A session keeps records in question order and never modifies them.
type AnsweredRecord struct {
	Index            int    `json:"-"`                // position of the question in the session
	Question         string `json:"question"`         // question text
	UserAnswer       string `json:"userAnswer"`       // option picked by the user
	CorrectAnswer    string `json:"correctAnswer"`    // expected option
	IsCorrect        bool   `json:"isCorrect"`        // whether UserAnswer equals CorrectAnswer
	TimeTakenSeconds int    `json:"timeTakenSeconds"` // seconds spent before answering
}

// NewAnsweredRecord checks userAnswer against q and builds the record.
// The comparison is exact: options are normalized when questions are stored.
func NewAnsweredRecord(index int, q Question, userAnswer string, timeTaken int) AnsweredRecord {
	return AnsweredRecord{
		Index:            index,
		Question:         q.Question,
		UserAnswer:       userAnswer,
		CorrectAnswer:    q.Answer,
		IsCorrect:        userAnswer == q.Answer,
		TimeTakenSeconds: timeTaken,
	}
}

// StoredResult is the persisted outcome of the last completed quiz.
type StoredResult struct {
	Score     int    `json:"score"`
	Total     int    `json:"total"`
	Timestamp string `json:"timestamp"` // RFC 3339
}

// NewStoredResult stamps a result with the given completion time.
func NewStoredResult(score, total int, at time.Time) StoredResult {
	return StoredResult{
		Score:     score,
		Total:     total,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
}

// CompletedAt parses the result timestamp.
func (r StoredResult) CompletedAt() (time.Time, error) {
	return time.Parse(time.RFC3339, r.Timestamp)
}

// Percentage returns the score as a share of total, in percent.
func (r StoredResult) Percentage() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total) * 100
}
