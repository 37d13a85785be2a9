package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/service"
)

// handleStart shows the welcome screen with the last result and the card count.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, formatWelcome(h.summary.Summary(ctx, chatID)))
		msg.ReplyMarkup = buildHomeKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		return h.send(newMessage(chatID, formatHelp()))
	}
}

// handleQuiz starts a new quiz for the chat, replacing a running one.
func (h *Handler) handleQuiz() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.startQuiz(ctx, chatID)
	}
}

// startQuiz starts a session and sends the message that every later event edits.
func (h *Handler) startQuiz(ctx context.Context, chatID int64) error {
	// Forget the old quiz message first so events of the new session never edit it.
	if prev, ok := h.messages.Get(chatID); ok {
		h.messages.Delete(chatID)
		h.request(tgbotapi.NewDeleteMessage(chatID, prev.MessageID))
	}

	session, err := h.quiz.Start(ctx, chatID, h.quizEventHandler(chatID))
	if err != nil {
		h.logger.Error("failed to start quiz",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return h.send(newPlainMessage(chatID, msgQuizUnavailable))
	}

	text, kb := renderQuizState(session.State())
	msg := newMessage(chatID, text)
	msg.ReplyMarkup = kb

	sent, err := h.bot.Send(msg)
	if err != nil {
		h.quiz.Stop(chatID)
		return fmt.Errorf("send quiz message: %w", err)
	}

	if prev, hadPrev := h.messages.UpsertAndGetPrev(chatID, sent.MessageID); hadPrev {
		h.request(tgbotapi.NewDeleteMessage(chatID, prev.MessageID))
	}

	// Events may have fired between Start and Send.
	h.renders.request(chatID, h.renderQuiz)
	return nil
}

// handleList sends the first page of the deck.
func (h *Handler) handleList() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb, err := h.renderCardsPage(ctx, 0)
		if err != nil {
			h.logger.Error("failed to list flashcards",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			return h.send(newPlainMessage(chatID, msgDeckUnavailable))
		}

		msg := newMessage(chatID, text)
		if kb != nil {
			msg.ReplyMarkup = kb
		}
		return h.send(msg)
	}
}

// handleAdd adds a flashcard given as "question | options | answer".
func (h *Handler) handleAdd(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		q, err := parseCard(args)
		if err != nil {
			return err
		}

		added, err := h.deck.Add(ctx, q)
		if err != nil {
			return fmt.Errorf("add flashcard: %w", err)
		}

		return h.send(newMessage(chatID, formatCardSaved(added, "added")))
	}
}

// handleEdit replaces the flashcard given by ID.
func (h *Handler) handleEdit(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		id, q, err := parseEdit(args)
		if err != nil {
			return err
		}

		edited, err := h.deck.Edit(ctx, id, q)
		if err != nil {
			return fmt.Errorf("edit flashcard %s: %w", id, err)
		}

		return h.send(newMessage(chatID, formatCardSaved(edited, "updated")))
	}
}

// handleGenerate asks the AI service for questions about a topic.
func (h *Handler) handleGenerate(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.generator == nil {
			return h.send(newPlainMessage(chatID, msgGeneratorDisabled))
		}

		topic, difficulty, count := parseGenerateArgs(args)
		h.request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

		res, err := h.generator.FromTopic(ctx, topic, difficulty, count)
		if err != nil {
			return fmt.Errorf("%w: %w", errGeneration, err)
		}
		return h.sendGenerated(chatID, res)
	}
}

// handleFromText asks the AI service for questions drawn from the given text.
func (h *Handler) handleFromText(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.generator == nil {
			return h.send(newPlainMessage(chatID, msgGeneratorDisabled))
		}

		h.request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

		res, err := h.generator.FromContent(ctx, args, service.DefaultGenerateCount)
		if err != nil {
			return fmt.Errorf("%w: %w", errGeneration, err)
		}
		return h.sendGenerated(chatID, res)
	}
}

// sendGenerated keeps the batch for the Save buttons and shows it.
func (h *Handler) sendGenerated(chatID int64, res service.Generated) error {
	if len(res.Questions) == 0 {
		h.generated.Delete(chatID)
		if res.Duplicates > 0 {
			return h.send(newPlainMessage(chatID, msgAllDuplicates))
		}
		return h.send(newPlainMessage(chatID, msgAINoQuestions))
	}

	h.generated.Store(chatID, res.Questions)
	indices, _ := h.generated.Unsaved(chatID)

	msg := newMessage(chatID, formatGenerated(res))
	if kb := buildGeneratedKeyboard(indices); kb != nil {
		msg.ReplyMarkup = kb
	}
	return h.send(msg)
}
