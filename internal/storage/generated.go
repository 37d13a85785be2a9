package storage

import (
	"sync"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
)

type pendingQuestion struct {
	question entities.Question
	saved    bool
}

// GeneratedStorage keeps the AI questions of the last generation request of every chat.
// Questions keep their index after being saved so callbacks can address them.
type GeneratedStorage struct {
	mu        sync.RWMutex
	questions map[int64][]pendingQuestion
}

// NewGeneratedStorage creates a new GeneratedStorage.
func NewGeneratedStorage() *GeneratedStorage {
	return &GeneratedStorage{
		questions: make(map[int64][]pendingQuestion),
	}
}

// Store replaces the generated questions of chatID.
func (s *GeneratedStorage) Store(chatID int64, questions []entities.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := make([]pendingQuestion, 0, len(questions))
	for _, q := range questions {
		pending = append(pending, pendingQuestion{question: q.Clone()})
	}
	s.questions[chatID] = pending
}

// Get returns the unsaved question at index i.
func (s *GeneratedStorage) Get(chatID int64, i int) (entities.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	qs := s.questions[chatID]
	if i < 0 || i >= len(qs) || qs[i].saved {
		return entities.Question{}, false
	}
	return qs[i].question.Clone(), true
}

// Unsaved returns the indices and copies of the questions not saved yet.
func (s *GeneratedStorage) Unsaved(chatID int64) ([]int, []entities.Question) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		idx []int
		qs  []entities.Question
	)
	for i, p := range s.questions[chatID] {
		if p.saved {
			continue
		}
		idx = append(idx, i)
		qs = append(qs, p.question.Clone())
	}
	return idx, qs
}

// MarkSaved flags the questions at the given indices as saved.
func (s *GeneratedStorage) MarkSaved(chatID int64, indices ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qs := s.questions[chatID]
	for _, i := range indices {
		if i >= 0 && i < len(qs) {
			qs[i].saved = true
		}
	}
}

// Delete removes the generated questions of chatID.
func (s *GeneratedStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.questions, chatID)
}
