package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/quiz"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.request(tgbotapi.NewCallback(cb.ID, ""))
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	var toast string
	switch data.Action {
	case actionAnswer:
		toast = h.handleAnswerCallback(chatID, cb.Message.MessageID, data)
	case actionQuiz:
		toast = h.handleQuizCallback(ctx, chatID, cb.Message.MessageID, data)
	case actionList:
		h.handleListCallback(ctx, chatID, cb.Message.MessageID, data)
	case actionGenerated:
		toast = h.handleGeneratedCallback(ctx, chatID, cb.Message.MessageID, data)
	case actionHome:
		h.handleHomeCallback(ctx, chatID, cb.Message.MessageID)
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}

	// Remove the user's "clock".
	h.request(tgbotapi.NewCallback(cb.ID, toast))
}

// activeSession returns the session whose message is messageID. A button on any other
// message is outdated.
func (h *Handler) activeSession(chatID int64, messageID int) (*quiz.Session, string) {
	session, err := h.quiz.Get(chatID)
	if err != nil {
		return nil, msgNoActiveQuiz
	}
	if msg, ok := h.messages.Get(chatID); !ok || msg.MessageID != messageID {
		return nil, msgNoActiveQuiz
	}
	return session, ""
}

func (h *Handler) handleAnswerCallback(chatID int64, messageID int, data callbackData) string {
	questionIdx, ok1 := data.intParam(0)
	optionIdx, ok2 := data.intParam(1)
	if !ok1 || !ok2 {
		h.logger.Warn("invalid answer callback", zap.String("data", data.Raw))
		return ""
	}

	session, toast := h.activeSession(chatID, messageID)
	if session == nil {
		return toast
	}

	st := session.State()
	if st.Completed() || st.CurrentIndex != questionIdx {
		return msgOutdatedButton
	}
	q, _ := st.Current()
	if optionIdx >= len(q.Options) {
		return msgOutdatedButton
	}

	rec, err := session.Answer(q.Options[optionIdx])
	if err != nil {
		return quizErrorToast(err)
	}
	if rec.IsCorrect {
		return "✅ Correct!"
	}
	return "❌ Wrong!"
}

func (h *Handler) handleQuizCallback(ctx context.Context, chatID int64, messageID int, data callbackData) string {
	sub := data.param(0)
	if sub == quizNew {
		h.handleNewQuiz(ctx, chatID)
		return ""
	}

	session, toast := h.activeSession(chatID, messageID)
	if session == nil {
		return toast
	}

	var err error
	switch sub {
	case quizNext:
		err = session.Advance()
	case quizPrev:
		err = session.Retreat()
	case quizPause:
		var paused bool
		if paused, err = session.TogglePause(); err == nil {
			if paused {
				toast = "⏸ Paused"
			} else {
				toast = "▶️ Resumed"
			}
		}
	case quizRestart:
		err = session.Restart()
	default:
		h.logger.Warn("unknown quiz callback", zap.String("data", data.Raw))
		return ""
	}

	if err != nil {
		return quizErrorToast(err)
	}
	return toast
}

func (h *Handler) handleNewQuiz(ctx context.Context, chatID int64) {
	if err := h.startQuiz(ctx, chatID); err != nil {
		h.logger.Error("failed to start quiz from callback",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgQuizUnavailable)
	}
}

func (h *Handler) handleListCallback(ctx context.Context, chatID int64, messageID int, data callbackData) {
	page, ok := data.intParam(0)
	if !ok {
		h.logger.Warn("invalid list callback", zap.String("data", data.Raw))
		return
	}

	text, kb, err := h.renderCardsPage(ctx, page)
	if err != nil {
		h.logger.Error("failed to list flashcards",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return
	}

	edit := newEdit(chatID, messageID, text)
	edit.ReplyMarkup = kb
	if _, err := h.bot.Send(edit); err != nil && !isNotModified(err) {
		h.logger.Error("failed to edit flashcards page", zap.Error(err))
	}
}

func (h *Handler) handleGeneratedCallback(ctx context.Context, chatID int64, messageID int, data callbackData) string {
	if h.generator == nil {
		return msgGeneratorDisabled
	}

	indices, questions, ok := h.pendingGenerated(chatID, data)
	if !ok {
		return msgGeneratedExpired
	}
	if len(indices) == 0 {
		return msgGeneratedNothing
	}

	saved, saveErr := h.generator.SaveAll(ctx, questions)
	h.generated.MarkSaved(chatID, indices[:saved]...)

	// Refresh the Save buttons of the batch message.
	left, _ := h.generated.Unsaved(chatID)
	kb := buildGeneratedKeyboard(left)
	if kb == nil {
		kb = &tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	}
	h.request(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, *kb))

	if saveErr != nil {
		h.logger.Warn("failed to save generated questions",
			zap.Int64("chat_id", chatID),
			zap.Int("saved", saved),
			zap.Int("requested", len(indices)),
			zap.Error(saveErr),
		)
		text := errorMessage(saveErr)
		if len(indices) > 1 {
			text = formatSavedCount(saved, len(indices)) + "\n" + text
		}
		h.sendError(chatID, text)
		return ""
	}

	if len(indices) == 1 {
		return msgGeneratedSaved
	}
	return formatSavedCount(saved, len(indices))
}

// pendingGenerated resolves a Save or Save all button to the unsaved questions it refers to.
// ok is false when a single question is gone or already saved.
func (h *Handler) pendingGenerated(chatID int64, data callbackData) ([]int, []entities.Question, bool) {
	switch data.param(0) {
	case generatedSaveAll:
		indices, questions := h.generated.Unsaved(chatID)
		return indices, questions, true
	case generatedSave:
		i, ok := data.intParam(1)
		if !ok {
			return nil, nil, false
		}
		q, ok := h.generated.Get(chatID, i)
		if !ok {
			return nil, nil, false
		}
		return []int{i}, []entities.Question{q}, true
	default:
		return nil, nil, false
	}
}

func (h *Handler) handleHomeCallback(ctx context.Context, chatID int64, messageID int) {
	if msg, ok := h.messages.Get(chatID); ok && msg.MessageID == messageID {
		h.messages.Delete(chatID)
		h.quiz.Stop(chatID)
	}

	edit := newEdit(chatID, messageID, formatWelcome(h.summary.Summary(ctx, chatID)))
	kb := buildHomeKeyboard()
	edit.ReplyMarkup = &kb
	if _, err := h.bot.Send(edit); err != nil && !isNotModified(err) {
		h.logger.Error("failed to show welcome screen", zap.Error(err))
	}
}

func quizErrorToast(err error) string {
	switch {
	case errors.Is(err, quiz.ErrAlreadyAnswered):
		return msgAlreadyAnswered
	case errors.Is(err, quiz.ErrRetreatNotAllowed):
		return msgRetreatNotAllowed
	case errors.Is(err, quiz.ErrCompleted):
		return msgQuizCompleted
	case errors.Is(err, quiz.ErrUnknownOption):
		return msgOutdatedButton
	case errors.Is(err, quiz.ErrClosed):
		return msgNoActiveQuiz
	default:
		return msgInternalError
	}
}
