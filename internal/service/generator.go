package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
)

const (
	DefaultGenerateCount = 5
	MaxGenerateCount     = 20
)

var (
	ErrEmptyTopic   = errors.New("topic is empty")
	ErrEmptyContent = errors.New("content is empty")
)

// Generated is the outcome of one AI generation request.
type Generated struct {
	Questions  []entities.Question // valid, not yet saved
	Invalid    int                 // questions rejected by validation
	Duplicates int                 // questions already present in the deck or the batch
}

// Generator asks the AI service for new flashcards and saves the ones the user accepts.
type Generator struct {
	ai      QuestionGenerator
	deck    FlashcardRepository
	matcher *QuestionMatcher
	logger  *zap.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(ai QuestionGenerator, deck FlashcardRepository, logger *zap.Logger) *Generator {
	return &Generator{
		ai:      ai,
		deck:    deck,
		matcher: NewQuestionMatcher(),
		logger:  logger,
	}
}

// FromTopic generates up to count questions about topic. The texts already in the deck are
// sent along so the service can avoid them.
func (g *Generator) FromTopic(
	ctx context.Context,
	topic string,
	difficulty entities.Difficulty,
	count int,
) (Generated, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Generated{}, ErrEmptyTopic
	}

	existing := g.existingTexts(ctx)
	aiQuestions, err := g.ai.GenerateQuestions(ctx, entities.GenerateQuestionsRequest{
		Topic:             topic,
		Difficulty:        difficulty,
		Count:             ClampCount(count),
		ExistingQuestions: existing,
	})
	if err != nil {
		return Generated{}, fmt.Errorf("generate questions: %w", err)
	}

	res := g.filter(aiQuestions, existing)
	g.logger.Info("questions generated",
		zap.String("topic", topic),
		zap.Int("kept", len(res.Questions)),
		zap.Int("invalid", res.Invalid),
		zap.Int("duplicates", res.Duplicates),
	)
	return res, nil
}

// FromContent generates up to count questions drawn from content.
func (g *Generator) FromContent(ctx context.Context, content string, count int) (Generated, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Generated{}, ErrEmptyContent
	}

	aiQuestions, err := g.ai.GenerateFromContent(ctx, entities.GenerateFromContentRequest{
		Content: content,
		Count:   ClampCount(count),
	})
	if err != nil {
		return Generated{}, fmt.Errorf("generate questions from content: %w", err)
	}

	res := g.filter(aiQuestions, g.existingTexts(ctx))
	g.logger.Info("questions generated from content",
		zap.Int("content_length", len(content)),
		zap.Int("kept", len(res.Questions)),
		zap.Int("invalid", res.Invalid),
		zap.Int("duplicates", res.Duplicates),
	)
	return res, nil
}

// Save adds one generated question to the deck.
func (g *Generator) Save(ctx context.Context, q entities.Question) (entities.Question, error) {
	q.ID = ""
	return g.deck.Add(ctx, q)
}

// SaveAll adds questions in order and stops at the first failure.
// It returns how many were saved.
func (g *Generator) SaveAll(ctx context.Context, questions []entities.Question) (int, error) {
	for i, q := range questions {
		if _, err := g.Save(ctx, q); err != nil {
			g.logger.Warn("failed to save generated question",
				zap.Int("saved", i),
				zap.Int("total", len(questions)),
				zap.Error(err),
			)
			return i, err
		}
	}
	return len(questions), nil
}

// ClampCount maps a requested question count into [1, MaxGenerateCount]. Zero or less means the default.
func ClampCount(count int) int {
	switch {
	case count <= 0:
		return DefaultGenerateCount
	case count > MaxGenerateCount:
		return MaxGenerateCount
	default:
		return count
	}
}

func (g *Generator) existingTexts(ctx context.Context) []string {
	cards, err := g.deck.List(ctx)
	if err != nil {
		g.logger.Warn("cannot read deck for duplicate check", zap.Error(err))
		return nil
	}

	texts := make([]string, 0, len(cards))
	for _, c := range cards {
		texts = append(texts, c.Question)
	}
	return texts
}

func (g *Generator) filter(aiQuestions []entities.AIQuestion, existing []string) Generated {
	var res Generated
	seen := append([]string(nil), existing...)

	for _, aq := range aiQuestions {
		q, err := entities.ValidateQuestion(aq.ToQuestion())
		if err != nil {
			res.Invalid++
			g.logger.Debug("dropping invalid generated question", zap.String("question", aq.Question), zap.Error(err))
			continue
		}
		if g.matcher.Any(q.Question, seen) {
			res.Duplicates++
			continue
		}
		seen = append(seen, q.Question)
		res.Questions = append(res.Questions, q)
	}

	return res
}
