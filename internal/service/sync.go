package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
)

// DefaultSyncSchedule pulls the remote collection every five minutes.
const DefaultSyncSchedule = "@every 5m"

// RemoteQuestions reads the valid questions of the remote collection.
type RemoteQuestions interface {
	Remote(ctx context.Context) ([]entities.Question, error)
}

// DeckReplacer overwrites the local deck.
type DeckReplacer interface {
	ReplaceAll(ctx context.Context, questions []entities.Question) (int, error)
}

// SyncService copies the remote collection into the local deck on a cron schedule.
// The remote copy always wins.
type SyncService struct {
	remote   RemoteQuestions
	deck     DeckReplacer
	schedule string
	logger   *zap.Logger
}

// NewSyncService creates a SyncService. An empty schedule means DefaultSyncSchedule.
func NewSyncService(remote RemoteQuestions, deck DeckReplacer, schedule string, logger *zap.Logger) *SyncService {
	if schedule == "" {
		schedule = DefaultSyncSchedule
	}
	return &SyncService{
		remote:   remote,
		deck:     deck,
		schedule: schedule,
		logger:   logger,
	}
}

// Start runs one sync immediately and then on the schedule until ctx is done.
func (s *SyncService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		if _, err := s.SyncOnce(ctx); err != nil {
			s.logger.Error("failed to sync flashcards", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add sync job: %w", err)
	}

	if _, err := s.SyncOnce(ctx); err != nil {
		s.logger.Error("initial flashcard sync failed", zap.Error(err))
	}

	c.Start()
	s.logger.Info("flashcard sync started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("flashcard sync stopped")
	return nil
}

// SyncOnce replaces the local deck with the remote questions. An empty remote leaves
// the deck untouched. It returns how many questions were written.
func (s *SyncService) SyncOnce(ctx context.Context) (int, error) {
	qs, err := s.remote.Remote(ctx)
	if err != nil {
		return 0, err
	}
	if len(qs) == 0 {
		s.logger.Debug("remote collection is empty, keeping local deck")
		return 0, nil
	}

	n, err := s.deck.ReplaceAll(ctx, qs)
	if err != nil {
		return 0, fmt.Errorf("replace local deck: %w", err)
	}

	s.logger.Info("flashcards synced", zap.Int("count", n))
	return n, nil
}
