package storage

import (
	"sync"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/quiz"
)

// SessionStorage provides in-memory storage for the running quiz session of every chat.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*quiz.Session
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]*quiz.Session),
	}
}

// Store saves the session of chatID and returns the one it replaced, if any.
func (s *SessionStorage) Store(chatID int64, session *quiz.Session) *quiz.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.sessions[chatID]
	s.sessions[chatID] = session
	return prev
}

// Get retrieves the session of chatID.
func (s *SessionStorage) Get(chatID int64) (*quiz.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[chatID]
	return session, ok
}

// Delete removes the session of chatID and returns it.
func (s *SessionStorage) Delete(chatID int64) *quiz.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.sessions[chatID]
	delete(s.sessions, chatID)
	return session
}

// CloseAll closes and removes every session.
func (s *SessionStorage) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for chatID, session := range s.sessions {
		session.Close()
		delete(s.sessions, chatID)
	}
}
