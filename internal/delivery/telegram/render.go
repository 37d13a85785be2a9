package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/quiz"
)

// Countdown ticks are rendered only on these boundaries to stay under the Telegram edit rate limit.
const (
	tickRenderEvery = 5
	tickRenderLast  = 3
)

// renderQuizState renders the question screen or, once completed, the results screen.
func renderQuizState(st quiz.State) (string, tgbotapi.InlineKeyboardMarkup) {
	if st.Completed() {
		return formatQuizResults(st), buildQuizResultKeyboard()
	}
	return formatQuizQuestion(st), buildQuizKeyboard(st)
}

func shouldRenderTick(st quiz.State) bool {
	return st.TimeRemaining%tickRenderEvery == 0 || st.TimeRemaining <= tickRenderLast
}

// quizEventHandler re-renders the quiz message of chatID after every session event.
func (h *Handler) quizEventHandler(chatID int64) func(quiz.Event) {
	return func(ev quiz.Event) {
		if ev.Type == quiz.EventTick && !shouldRenderTick(ev.State) {
			return
		}
		if ev.Type == quiz.EventCompleted {
			h.logger.Info("quiz completed",
				zap.Int64("chat_id", chatID),
				zap.Int("score", ev.State.Score),
				zap.Int("total", ev.State.Total()),
			)
		}
		h.renders.request(chatID, h.renderQuiz)
	}
}

// renderQuiz edits the quiz message with the latest session state. It runs on the chat's
// render queue, so several events may be shown by one edit.
func (h *Handler) renderQuiz(chatID int64) {
	msg, ok := h.messages.Get(chatID)
	if !ok {
		return
	}
	session, err := h.quiz.Get(chatID)
	if err != nil {
		return
	}

	text, kb := renderQuizState(session.State())
	edit := newEdit(chatID, msg.MessageID, text)
	edit.ReplyMarkup = &kb

	if _, err := h.bot.Send(edit); err != nil && !isNotModified(err) {
		h.logger.Warn("failed to render quiz",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// renderCardsPage renders one page of the deck.
func (h *Handler) renderCardsPage(ctx context.Context, page int) (string, *tgbotapi.InlineKeyboardMarkup, error) {
	cards, err := h.deck.List(ctx)
	if err != nil {
		return "", nil, err
	}
	if len(cards) == 0 {
		return md("Your deck is empty. Add a card with /add or generate some with /generate."), nil, nil
	}

	text, totalPages := buildCardsPage(cards, page)
	if page >= totalPages {
		page = totalPages - 1
		text, _ = buildCardsPage(cards, page)
	}

	kb := buildPageKeyboard(page, totalPages, buildListCallback(page-1), buildListCallback(page+1))
	return text, kb, nil
}

// isNotModified reports the Telegram error for an edit that changes nothing.
func isNotModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}
