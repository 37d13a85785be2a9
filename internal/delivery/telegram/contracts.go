package telegram

import (
	"context"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/quiz"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/service"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/storage"
)

type QuizService interface {
	Start(ctx context.Context, chatID int64, onEvent func(quiz.Event)) (*quiz.Session, error)
	Get(chatID int64) (*quiz.Session, error)
	Stop(chatID int64)
}

type DeckService interface {
	List(ctx context.Context) ([]entities.Question, error)
	Add(ctx context.Context, q entities.Question) (entities.Question, error)
	Edit(ctx context.Context, id string, q entities.Question) (entities.Question, error)
}

type GeneratorService interface {
	FromTopic(ctx context.Context, topic string, difficulty entities.Difficulty, count int) (service.Generated, error)
	FromContent(ctx context.Context, content string, count int) (service.Generated, error)
	Save(ctx context.Context, q entities.Question) (entities.Question, error)
	SaveAll(ctx context.Context, questions []entities.Question) (int, error)
}

type SummaryService interface {
	Summary(ctx context.Context, chatID int64) service.Summary
}

type MessageStorage interface {
	Get(chatID int64) (storage.QuizMessage, bool)
	Delete(chatID int64)
	UpsertAndGetPrev(chatID int64, messageID int) (storage.QuizMessage, bool)
}

type GeneratedStorage interface {
	Store(chatID int64, questions []entities.Question)
	Get(chatID int64, i int) (entities.Question, bool)
	Unsaved(chatID int64) ([]int, []entities.Question)
	MarkSaved(chatID int64, indices ...int)
	Delete(chatID int64)
}
