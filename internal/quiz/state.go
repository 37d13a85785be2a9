package quiz

import "github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"

// State is a point-in-time copy of a session.
type State struct {
	Questions     []entities.Question
	CurrentIndex  int
	Score         int
	Answers       []entities.AnsweredRecord
	TimeRemaining int
	QuestionTime  int
	Paused        bool
	Answered      bool // current question has an answer
	ResultsSaved  bool
	Status        Status
}

// Total returns the number of questions in the session.
func (s State) Total() int {
	return len(s.Questions)
}

// Completed reports whether every question has been passed.
func (s State) Completed() bool {
	return s.Status == StatusCompleted
}

// Current returns the question being shown. ok is false once the session is completed.
func (s State) Current() (q entities.Question, ok bool) {
	if s.CurrentIndex >= len(s.Questions) {
		return entities.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// CurrentRecord returns the answer recorded for the current question, if any.
func (s State) CurrentRecord() (entities.AnsweredRecord, bool) {
	for _, rec := range s.Answers {
		if rec.Index == s.CurrentIndex {
			return rec, true
		}
	}
	return entities.AnsweredRecord{}, false
}

// Progress returns the share of the quiz reached, counting the current question, in [0, 1].
func (s State) Progress() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	reached := s.CurrentIndex + 1
	if reached > len(s.Questions) {
		reached = len(s.Questions)
	}
	return float64(reached) / float64(len(s.Questions))
}

// Skipped returns how many questions before the current one have no recorded answer.
func (s State) Skipped() int {
	answered := make(map[int]bool, len(s.Answers))
	for _, rec := range s.Answers {
		answered[rec.Index] = true
	}

	skipped := 0
	for i := 0; i < s.CurrentIndex && i < len(s.Questions); i++ {
		if !answered[i] {
			skipped++
		}
	}
	return skipped
}
