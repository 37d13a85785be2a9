package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
)

var ErrNoQuestions = errors.New("no questions returned from server")

const (
	msgGenerateFailed            = "Failed to generate questions"
	msgGenerateFromContentFailed = "Failed to generate questions from content"
)

// ServiceError is a non-successful response of the AI service.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ai service: %s (status %d)", e.Message, e.StatusCode)
}

// Unwrap lets callers match the error with entities.ErrRemoteUnavailable.
func (e *ServiceError) Unwrap() error {
	return entities.ErrRemoteUnavailable
}

// transportError classifies a failed call: deadline errors become entities.ErrTimeout,
// anything else entities.ErrRemoteUnavailable.
func transportError(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, entities.ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w: %w", op, entities.ErrRemoteUnavailable, err)
}
