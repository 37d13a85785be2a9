package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/quiz"
)

const generatedButtonsPerRow = 5

// buildPageKeyboard builds pagination keyboard for the deck list.
func buildPageKeyboard(page, totalPages int, prevData, nextData string) *tgbotapi.InlineKeyboardMarkup {
	if totalPages <= 1 {
		return nil
	}

	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", prevData))
	}

	if page < totalPages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", nextData))
	}

	kb := tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{row},
	}

	return &kb
}

// buildHomeKeyboard builds keyboard for the welcome screen.
func buildHomeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start Quiz", buildQuizCallback(quizNew)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗂 My flashcards", buildListCallback(0)),
		),
	)
}

// buildQuizKeyboard builds keyboard for the current question: one button per option,
// then navigation.
func buildQuizKeyboard(st quiz.State) tgbotapi.InlineKeyboardMarkup {
	q, ok := st.Current()
	if !ok {
		return buildQuizResultKeyboard()
	}
	rec, answered := st.CurrentRecord()

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options)+2)
	for i, option := range q.Options {
		label := option
		if answered {
			switch {
			case option == rec.CorrectAnswer:
				label = "✓ " + option
			case option == rec.UserAnswer:
				label = "✗ " + option
			}
		}
		button := tgbotapi.NewInlineKeyboardButtonData(label, buildAnswerCallback(st.CurrentIndex, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if st.CurrentIndex > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", buildQuizCallback(quizPrev)))
	}
	if !answered {
		pause := "⏸ Pause"
		if st.Paused {
			pause = "▶️ Resume"
		}
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(pause, buildQuizCallback(quizPause)))
	}
	next := "Next ▶️"
	if st.CurrentIndex == st.Total()-1 {
		next = "Finish 🏁"
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(next, buildQuizCallback(quizNext)))
	rows = append(rows, nav)

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Restart", buildQuizCallback(quizRestart)),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Restart Quiz", buildQuizCallback(quizRestart)),
			tgbotapi.NewInlineKeyboardButtonData("🆕 New quiz", buildQuizCallback(quizNew)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Back to Welcome", buildHomeCallback()),
		),
	)
}

// buildGeneratedKeyboard builds Save buttons for the unsaved generated questions.
// indices are positions in the generated batch. It returns nil when nothing is left to save.
func buildGeneratedKeyboard(indices []int) *tgbotapi.InlineKeyboardMarkup {
	if len(indices) == 0 {
		return nil
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, i := range indices {
		label := "💾 " + strconv.Itoa(i+1)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildSaveGeneratedCallback(i)))
		if len(row) == generatedButtonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("💾 Save All", buildSaveAllGeneratedCallback()),
	))

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}
