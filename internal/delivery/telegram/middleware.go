package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/infra/ai"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/repository"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/service"
)

// errGeneration marks failures of the AI generator so they are not reported as deck write failures.
var errGeneration = errors.New("question generation failed")

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			var verr *entities.ValidationError
			if errors.As(err, &verr) {
				h.logger.Debug("invalid flashcard",
					zap.Int64("chat_id", chatID),
					zap.Error(err),
				)
			} else {
				h.logger.Error("handle error",
					zap.Int64("chat_id", chatID),
					zap.Error(err),
				)
			}
			h.sendError(chatID, errorMessage(err))
			return nil
		}
		return nil
	}
}

// errorMessage maps a handler error to the text shown to the user.
func errorMessage(err error) string {
	var verr *entities.ValidationError

	switch {
	case errors.Is(err, errGeneration):
		return generationErrorMessage(err)
	case errors.As(err, &verr):
		return formatValidationError(verr)
	case errors.Is(err, errCardFormat):
		return msgUseAdd
	case errors.Is(err, errMissingID):
		return msgUseEdit
	case errors.Is(err, repository.ErrFlashcardNotFound):
		return msgFlashcardNotFound
	case errors.Is(err, repository.ErrNotMirrored):
		return msgNotMirrored
	case errors.Is(err, service.ErrNoActiveQuiz):
		return msgNoActiveQuiz
	case errors.Is(err, entities.ErrRemoteUnavailable):
		return msgRemoteUnavailable
	case errors.Is(err, entities.ErrPersistence):
		return msgSaveFailed
	default:
		return msgInternalError
	}
}

func generationErrorMessage(err error) string {
	var serr *ai.ServiceError

	switch {
	case errors.Is(err, service.ErrEmptyTopic):
		return msgEnterTopic
	case errors.Is(err, service.ErrEmptyContent):
		return msgEnterContent
	case errors.Is(err, entities.ErrTimeout):
		return msgAITimeout
	case errors.Is(err, ai.ErrNoQuestions):
		return msgAINoQuestions
	case errors.As(err, &serr) && serr.Message != "":
		return serr.Message + ". Please try again."
	default:
		return msgAIUnavailable
	}
}
