package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/quiz"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/repository"
)

var ErrNoResults = errors.New("no quiz results yet")

// ResultsRecorder keeps the last quiz result of every chat in the key-value store.
type ResultsRecorder struct {
	kv     repository.KVStore
	now    func() time.Time
	logger *zap.Logger
}

// NewResultsRecorder creates a ResultsRecorder.
func NewResultsRecorder(kv repository.KVStore, logger *zap.Logger) *ResultsRecorder {
	return &ResultsRecorder{
		kv:     kv,
		now:    time.Now,
		logger: logger,
	}
}

// Save overwrites the stored result of chatID. Failures are logged, never returned.
func (r *ResultsRecorder) Save(ctx context.Context, chatID int64, score, total int) {
	result := entities.NewStoredResult(score, total, r.now())

	raw, err := json.Marshal(result)
	if err != nil {
		r.logger.Error("failed to encode quiz result", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}

	if err := r.kv.Set(ctx, repository.ResultsKey(chatID), string(raw)); err != nil {
		r.logger.Error("failed to save quiz result",
			zap.Int64("chat_id", chatID),
			zap.Int("score", score),
			zap.Int("total", total),
			zap.Error(err),
		)
		return
	}

	r.logger.Info("quiz result saved",
		zap.Int64("chat_id", chatID),
		zap.Int("score", score),
		zap.Int("total", total),
	)
}

// Last returns the most recent result of chatID, or ErrNoResults.
func (r *ResultsRecorder) Last(ctx context.Context, chatID int64) (*entities.StoredResult, error) {
	raw, err := r.kv.Get(ctx, repository.ResultsKey(chatID))
	if errors.Is(err, entities.ErrKeyNotFound) {
		return nil, ErrNoResults
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz result: %w: %w", entities.ErrPersistence, err)
	}

	var result entities.StoredResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("decode quiz result: %w: %w", entities.ErrPersistence, err)
	}

	return &result, nil
}

// SaverFor binds the recorder to a chat so a quiz session can save its result on completion.
func SaverFor(ctx context.Context, saver ResultSaver, chatID int64) quiz.ResultSaver {
	ctx = context.WithoutCancel(ctx)
	return quiz.ResultSaverFunc(func(score, total int) {
		saver.Save(ctx, chatID, score, total)
	})
}
