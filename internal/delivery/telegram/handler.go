package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Handler turns Telegram updates into quiz, deck and generator operations.
type Handler struct {
	bot       *tgbotapi.BotAPI
	logger    *zap.Logger
	quiz      QuizService
	deck      DeckService
	generator GeneratorService // nil when AI generation is disabled
	summary   SummaryService
	messages  MessageStorage
	generated GeneratedStorage

	renders *renderQueue
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	quiz QuizService,
	deck DeckService,
	generator GeneratorService,
	summary SummaryService,
	messages MessageStorage,
	generated GeneratedStorage,
) *Handler {
	return &Handler{
		bot:       bot,
		logger:    logger,
		quiz:      quiz,
		deck:      deck,
		generator: generator,
		summary:   summary,
		messages:  messages,
		generated: generated,
		renders:   newRenderQueue(),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	if !update.Message.IsCommand() {
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	args := strings.TrimSpace(update.Message.CommandArguments())

	var fn HandlerFunc
	switch update.Message.Command() {
	case "start":
		fn = h.handleStart()
	case "help":
		fn = h.handleHelp()
	case "quiz":
		fn = h.handleQuiz()
	case "list":
		fn = h.handleList()
	case "add":
		fn = h.handleAdd(args)
	case "edit":
		fn = h.handleEdit(args)
	case "generate":
		fn = h.handleGenerate(args)
	case "fromtext":
		fn = h.handleFromText(args)
	default:
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// request performs a call whose result carries no message, such as a delete or a callback answer.
func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.Debug("telegram request failed", zap.Error(err))
	}
}
