package service

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/repository"
)

// LastResultReader reads the last stored quiz result of a chat.
type LastResultReader interface {
	Last(ctx context.Context, chatID int64) (*entities.StoredResult, error)
}

// Summary is the data of the home view.
type Summary struct {
	LastResult *entities.StoredResult // nil before the first completed quiz
	CardCount  int
}

// SummaryService builds the home view. The card count follows the remote collection
// live when one is configured.
type SummaryService struct {
	results      LastResultReader
	deck         DeckLister
	remote       repository.RemoteCollection
	collection   string
	defaultCount int
	logger       *zap.Logger

	liveCount atomic.Int64
	live      atomic.Bool
}

// NewSummaryService creates a SummaryService. remote may be nil.
func NewSummaryService(
	results LastResultReader,
	deck DeckLister,
	remote repository.RemoteCollection,
	collection string,
	defaultCount int,
	logger *zap.Logger,
) *SummaryService {
	return &SummaryService{
		results:      results,
		deck:         deck,
		remote:       remote,
		collection:   collection,
		defaultCount: defaultCount,
		logger:       logger,
	}
}

// Watch keeps the card count in step with the remote collection until ctx is done.
// Without a remote it returns immediately.
func (s *SummaryService) Watch(ctx context.Context) error {
	if s.remote == nil {
		return nil
	}

	err := s.remote.Subscribe(ctx, s.collection, func(count int) {
		s.liveCount.Store(int64(count))
		s.live.Store(true)
		s.logger.Debug("card count updated", zap.Int("count", count))
	})
	s.live.Store(false)

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Summary returns the last result of chatID and the number of cards.
func (s *SummaryService) Summary(ctx context.Context, chatID int64) Summary {
	var sum Summary

	result, err := s.results.Last(ctx, chatID)
	switch {
	case err == nil:
		sum.LastResult = result
	case !errors.Is(err, ErrNoResults):
		s.logger.Warn("failed to load last result", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	sum.CardCount = s.cardCount(ctx)
	return sum
}

func (s *SummaryService) cardCount(ctx context.Context) int {
	if s.live.Load() {
		return int(s.liveCount.Load())
	}

	cards, err := s.deck.List(ctx)
	if err != nil {
		s.logger.Warn("failed to count cards", zap.Error(err))
		return s.defaultCount
	}
	return len(cards)
}
