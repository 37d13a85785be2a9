// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/quiz"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/service"
)

// Error messages.
const (
	msgInternalError      = "Something went wrong. Please try again later."
	msgUnknownCommand     = "Unknown command. Send /help to see what I can do."
	msgQuizUnavailable    = "Could not start the quiz. Please try again later."
	msgNoActiveQuiz       = "This quiz is over. Send /quiz to start a new one."
	msgOutdatedButton     = "This question is no longer on screen."
	msgAlreadyAnswered    = "You have already answered this question."
	msgRetreatNotAllowed  = "You cannot go back from here."
	msgQuizCompleted      = "The quiz is completed."
	msgDeckUnavailable    = "Could not load your flashcards. Please try again later."
	msgSaveFailed         = "Error saving flashcards. Please try again later."
	msgRemoteUnavailable  = "The shared collection is unavailable, nothing was saved. Please try again later."
	msgFlashcardNotFound  = "There is no flashcard with this ID. Send /list to see the IDs."
	msgNotMirrored        = "This flashcard is not in the shared collection, so it cannot be edited. Add it again with /add."
	msgAITimeout          = "The question generator took too long to answer. Please try again."
	msgAIUnavailable      = "Failed to generate questions. Please try again."
	msgAINoQuestions      = "The generator returned no questions. Try another topic."
	msgAllDuplicates      = "Every generated question is already in your deck."
	msgEnterTopic         = "Please enter a topic, for example: /generate Go channels medium 5"
	msgEnterContent       = "Please enter some content, for example: /fromtext <your notes>"
	msgGeneratedExpired   = "These questions are no longer available. Generate new ones."
	msgGeneratedSaved     = "Question saved to your quiz!"
	msgGeneratedNothing   = "All questions are already saved."
	msgGeneratorDisabled  = "AI question generation is turned off."
	msgUseAdd             = "Use: /add question | option; option; option | answer"
	msgUseEdit            = "Use: /edit <id> question | option; option; option | answer"
	msgInvalidCardHeading = "This flashcard is not valid:"
)

const (
	cardsPerPage     = 5
	progressBarWidth = 10
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// code wraps s in an inline code entity. Only ` and \ need escaping there.
func code(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")
	return "`" + s + "`"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// formatWelcome builds the home view: title, card count and the last quiz result.
func formatWelcome(sum service.Summary) string {
	var sb strings.Builder

	sb.WriteString(bold("Flashcard Quiz"))
	sb.WriteString("\n")
	sb.WriteString(italic("Test your knowledge!"))
	sb.WriteString("\n\n")

	sb.WriteString(md(fmt.Sprintf("🗂 Total cards: %d", sum.CardCount)))
	sb.WriteString("\n\n")

	sb.WriteString(bold("Recent activity"))
	sb.WriteString("\n")
	sb.WriteString(md(formatLastResult(sum.LastResult)))
	sb.WriteString("\n\n")

	sb.WriteString(md("Send /quiz to start, /help for all commands."))

	return sb.String()
}

func formatLastResult(r *entities.StoredResult) string {
	if r == nil {
		return "No quizzes completed yet."
	}

	line := fmt.Sprintf("Last quiz score: %d/%d (%.0f%%)", r.Score, r.Total, r.Percentage())
	if at, err := r.CompletedAt(); err == nil {
		line += "\nCompleted on: " + at.Format("2006-01-02")
	}
	return line
}

// formatHelp lists the commands.
func formatHelp() string {
	lines := []string{
		bold("Commands"),
		"",
		md("/start — home screen"),
		md("/quiz — start a quiz"),
		md("/list — show your flashcards"),
		md("/add question | option; option | answer — add a flashcard"),
		md("/edit <id> question | option; option | answer — edit a flashcard"),
		md("/generate <topic> [easy|medium|hard] [count] — generate questions with AI"),
		md("/fromtext <content> — generate questions from your notes"),
		md("/help — this message"),
	}
	return strings.Join(lines, "\n")
}

// formatQuizQuestion renders the current question of a running quiz.
func formatQuizQuestion(st quiz.State) string {
	q, _ := st.Current()
	rec, answered := st.CurrentRecord()

	var sb strings.Builder
	sb.WriteString(md(fmt.Sprintf("Question %d of %d", st.CurrentIndex+1, st.Total())))
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(st.CurrentIndex+1, st.Total(), progressBarWidth)))
	sb.WriteString("\n\n")

	sb.WriteString(bold(fmt.Sprintf("%d. %s", st.CurrentIndex+1, q.Question)))
	sb.WriteString("\n\n")

	switch {
	case answered && rec.IsCorrect:
		sb.WriteString(md("✅ Correct!"))
	case answered:
		sb.WriteString(md("❌ Wrong! Correct answer: " + rec.CorrectAnswer))
	case st.Paused:
		sb.WriteString(md(fmt.Sprintf("⏸ Paused, %ds left", st.TimeRemaining)))
	default:
		sb.WriteString(md(fmt.Sprintf("⏱ %ds left", st.TimeRemaining)))
	}
	sb.WriteString("\n")

	sb.WriteString(md(fmt.Sprintf("Score: %d", st.Score)))
	return sb.String()
}

// formatQuizResults renders the final score and every answer.
func formatQuizResults(st quiz.State) string {
	var sb strings.Builder
	sb.WriteString(bold("Quiz Completed!"))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Final Score: %d / %d", st.Score, st.Total())))
	if skipped := st.Total() - len(st.Answers); skipped > 0 {
		sb.WriteString(md(fmt.Sprintf("\nSkipped: %d", skipped)))
	}

	for _, rec := range st.Answers {
		mark := "✓"
		if !rec.IsCorrect {
			mark = "✗"
		}

		sb.WriteString("\n\n")
		sb.WriteString(md("Q: " + rec.Question))
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("Your answer: %s %s (%ds)", rec.UserAnswer, mark, rec.TimeTakenSeconds)))
		if !rec.IsCorrect {
			sb.WriteString("\n")
			sb.WriteString(md("Correct answer: " + rec.CorrectAnswer))
		}
	}

	return sb.String()
}

// formatCard formats a single flashcard with its ID.
func formatCard(q entities.Question) string {
	var sb strings.Builder
	sb.WriteString(bold(q.Question))
	sb.WriteString("\n")
	for _, opt := range q.Options {
		marker := "▫️ "
		if opt == q.Answer {
			marker = "✅ "
		}
		sb.WriteString(md(marker + opt))
		sb.WriteString("\n")
	}

	var meta []string
	if q.Category != "" {
		meta = append(meta, q.Category)
	}
	if q.Difficulty != "" {
		meta = append(meta, string(q.Difficulty))
	}
	if len(meta) > 0 {
		sb.WriteString(italic(strings.Join(meta, ", ")))
		sb.WriteString("\n")
	}

	if q.ID != "" {
		sb.WriteString(md("ID: "))
		sb.WriteString(code(q.ID))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// buildCardsPage builds a page of the deck.
func buildCardsPage(cards []entities.Question, page int) (text string, totalPages int) {
	totalPages = (len(cards) + cardsPerPage - 1) / cardsPerPage
	if totalPages == 0 || page >= totalPages {
		return "", totalPages
	}

	start := page * cardsPerPage
	end := min(start+cardsPerPage, len(cards))

	var b strings.Builder
	b.WriteString(md(fmt.Sprintf("🗂 Flashcards %d–%d of %d", start+1, end, len(cards))))
	for _, c := range cards[start:end] {
		b.WriteString("\n\n")
		b.WriteString(formatCard(c))
	}

	return b.String(), totalPages
}

// formatGenerated lists AI generated questions waiting to be saved.
func formatGenerated(res service.Generated) string {
	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("🤖 Generated %d questions", len(res.Questions))))

	var dropped []string
	if res.Invalid > 0 {
		dropped = append(dropped, fmt.Sprintf("%d invalid", res.Invalid))
	}
	if res.Duplicates > 0 {
		dropped = append(dropped, fmt.Sprintf("%d already in your deck", res.Duplicates))
	}
	if len(dropped) > 0 {
		sb.WriteString("\n")
		sb.WriteString(italic("Skipped: " + strings.Join(dropped, ", ")))
	}

	for i, q := range res.Questions {
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf("%d. ", i+1)))
		q.ID = ""
		sb.WriteString(formatCard(q))
	}

	return sb.String()
}

// formatValidationError lists every violated rule.
func formatValidationError(verr *entities.ValidationError) string {
	var sb strings.Builder
	sb.WriteString(msgInvalidCardHeading)
	for _, r := range verr.Rules {
		sb.WriteString("\n• ")
		sb.WriteString(r.Description())
	}
	return sb.String()
}

func formatCardSaved(q entities.Question, verb string) string {
	return md(fmt.Sprintf("Flashcard %s:", verb)) + "\n\n" + formatCard(q)
}

func formatSavedCount(saved, total int) string {
	if saved == total {
		return fmt.Sprintf("Flashcards saved successfully! (%d)", saved)
	}
	return fmt.Sprintf("Failed to save some questions: saved %d of %d.", saved, total)
}

// buildProgressBar creates an ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return strings.Repeat("░", length)
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled
	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}
