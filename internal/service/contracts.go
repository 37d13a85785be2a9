package service

import (
	"context"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/quiz"
)

// FlashcardRepository is the user's deck.
type FlashcardRepository interface {
	List(ctx context.Context) ([]entities.Question, error)
	Get(ctx context.Context, id string) (entities.Question, error)
	Add(ctx context.Context, q entities.Question) (entities.Question, error)
	Edit(ctx context.Context, id string, q entities.Question) (entities.Question, error)
	ReplaceAll(ctx context.Context, questions []entities.Question) (int, error)
}

// QuestionGenerator produces questions with an AI service.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, req entities.GenerateQuestionsRequest) ([]entities.AIQuestion, error)
	GenerateFromContent(ctx context.Context, req entities.GenerateFromContentRequest) ([]entities.AIQuestion, error)
}

// QuestionLoader yields the questions of a new quiz.
type QuestionLoader interface {
	Load(ctx context.Context) []entities.Question
}

// ResultSaver stores the outcome of a finished quiz for a chat.
type ResultSaver interface {
	Save(ctx context.Context, chatID int64, score, total int)
}

// SessionStorage keeps the live quiz session of every chat.
type SessionStorage interface {
	Store(chatID int64, s *quiz.Session) (previous *quiz.Session)
	Get(chatID int64) (*quiz.Session, bool)
	Delete(chatID int64) *quiz.Session
}
