package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/repository"
)

// DeckLister lists the local deck.
type DeckLister interface {
	List(ctx context.Context) ([]entities.Question, error)
}

// QuestionSource produces the questions of a quiz from the first source that yields any:
// the remote collection, then the local deck, then the built-in defaults.
type QuestionSource struct {
	remote     repository.RemoteCollection
	collection string
	deck       DeckLister
	defaults   []entities.Question
	logger     *zap.Logger
}

// NewQuestionSource creates a QuestionSource. remote may be nil.
func NewQuestionSource(
	remote repository.RemoteCollection,
	collection string,
	deck DeckLister,
	defaults []entities.Question,
	logger *zap.Logger,
) *QuestionSource {
	return &QuestionSource{
		remote:     remote,
		collection: collection,
		deck:       deck,
		defaults:   defaults,
		logger:     logger,
	}
}

// Load returns a non-empty list of valid, distinct questions whenever the defaults are non-empty.
// Failures of a source are logged and the next source is tried.
func (s *QuestionSource) Load(ctx context.Context) []entities.Question {
	if s.remote != nil {
		qs, err := s.Remote(ctx)
		switch {
		case err != nil:
			s.logger.Warn("remote questions unavailable, using local deck", zap.Error(err))
		case len(qs) == 0:
			s.logger.Warn("remote collection has no valid questions, using local deck",
				zap.String("collection", s.collection))
		default:
			return qs
		}
	}

	if s.deck != nil {
		cards, err := s.deck.List(ctx)
		if err != nil {
			s.logger.Warn("local deck unavailable, using defaults", zap.Error(err))
		} else if qs := validUnique(cards); len(qs) > 0 {
			return qs
		} else {
			s.logger.Warn("local deck is empty, using defaults")
		}
	}

	return validUnique(s.defaults)
}

// Remote returns the valid, distinct questions of the remote collection.
func (s *QuestionSource) Remote(ctx context.Context) ([]entities.Question, error) {
	if s.remote == nil {
		return nil, nil
	}

	docs, err := s.remote.ListAll(ctx, s.collection)
	if err != nil {
		return nil, fmt.Errorf("list remote questions: %w", err)
	}

	qs := make([]entities.Question, 0, len(docs))
	for _, doc := range docs {
		qs = append(qs, entities.QuestionFromDocument(doc))
	}

	valid := validUnique(qs)
	if dropped := len(docs) - len(valid); dropped > 0 {
		s.logger.Debug("dropped remote documents", zap.Int("dropped", dropped), zap.Int("kept", len(valid)))
	}
	return valid, nil
}

// validUnique keeps valid questions in order, dropping repeats. A question repeats an earlier
// one when it has the same ID or the same case-insensitive text. The first occurrence wins.
func validUnique(qs []entities.Question) []entities.Question {
	seenIDs := make(map[string]struct{}, len(qs))
	seenTexts := make(map[string]struct{}, len(qs))
	out := make([]entities.Question, 0, len(qs))

	for _, q := range qs {
		valid, err := entities.ValidateQuestion(q)
		if err != nil {
			continue
		}

		text := strings.ToLower(valid.Question)
		if _, ok := seenTexts[text]; ok {
			continue
		}
		if valid.ID != "" {
			if _, ok := seenIDs[valid.ID]; ok {
				continue
			}
			seenIDs[valid.ID] = struct{}{}
		}
		seenTexts[text] = struct{}{}
		out = append(out, valid)
	}

	return out
}
