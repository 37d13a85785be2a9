package telegram

import (
	"errors"
	"fmt"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/infra/ai"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/quiz"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/repository"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/service"
)

func testQuestions() []entities.Question {
	return []entities.Question{
		{ID: "1", Question: "What is the capital of France", Options: []string{"Paris", "London", "Berlin"}, Answer: "Paris"},
		{ID: "2", Question: "What is a stack", Options: []string{"LIFO", "FIFO"}, Answer: "LIFO"},
	}
}

func buttonTexts(kb tgbotapi.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			out = append(out, b.Text)
		}
	}
	return out
}

func TestRenderQuestionBeforeAnswer(t *testing.T) {
	st := quiz.State{
		Questions:     testQuestions(),
		TimeRemaining: 7,
		QuestionTime:  10,
		Status:        quiz.StatusInProgress,
	}

	text, kb := renderQuizState(st)
	assert.Contains(t, text, "Question 1 of 2")
	assert.Contains(t, text, "What is the capital of France")
	assert.Contains(t, text, "7s left")

	require.Len(t, kb.InlineKeyboard, 5, "three options, navigation, restart")
	assert.Equal(t, "Paris", kb.InlineKeyboard[0][0].Text)
	require.NotNil(t, kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "ans:0:0", *kb.InlineKeyboard[0][0].CallbackData)

	nav := buttonTexts(tgbotapi.InlineKeyboardMarkup{InlineKeyboard: kb.InlineKeyboard[3:4]})
	assert.Equal(t, []string{"⏸ Pause", "Next ▶️"}, nav, "no Previous on the first question")
}

func TestRenderAnsweredQuestion(t *testing.T) {
	qs := testQuestions()
	rec := entities.NewAnsweredRecord(1, qs[1], "FIFO", 3)
	st := quiz.State{
		Questions:     qs,
		CurrentIndex:  1,
		Answers:       []entities.AnsweredRecord{rec},
		Answered:      true,
		TimeRemaining: 7,
		Status:        quiz.StatusInProgress,
	}

	text, kb := renderQuizState(st)
	assert.Contains(t, text, "Wrong")
	assert.Contains(t, text, "Correct answer: LIFO")

	texts := buttonTexts(kb)
	assert.Contains(t, texts, "✓ LIFO")
	assert.Contains(t, texts, "✗ FIFO")
	assert.Contains(t, texts, "◀️ Previous")
	assert.Contains(t, texts, "Finish 🏁")
	assert.NotContains(t, texts, "⏸ Pause")
}

func TestRenderPausedQuestion(t *testing.T) {
	st := quiz.State{
		Questions:     testQuestions(),
		TimeRemaining: 4,
		Paused:        true,
		Status:        quiz.StatusInProgress,
	}

	text, kb := renderQuizState(st)
	assert.Contains(t, text, "Paused, 4s left")
	assert.Contains(t, buttonTexts(kb), "▶️ Resume")
}

func TestRenderCompletedQuiz(t *testing.T) {
	qs := testQuestions()
	st := quiz.State{
		Questions:    qs,
		CurrentIndex: 2,
		Score:        1,
		Answers: []entities.AnsweredRecord{
			entities.NewAnsweredRecord(0, qs[0], "Paris", 2),
		},
		Status: quiz.StatusCompleted,
	}

	text, kb := renderQuizState(st)
	assert.Contains(t, text, "Final Score: 1 / 2")
	assert.Contains(t, text, "Skipped: 1")
	assert.Contains(t, text, "Your answer: Paris ✓")
	assert.NotContains(t, text, "Correct answer")
	assert.Contains(t, buttonTexts(kb), "🔄 Restart Quiz")
}

func TestShouldRenderTick(t *testing.T) {
	for remaining, want := range map[int]bool{10: true, 9: false, 5: true, 4: false, 3: true, 1: true, 0: true} {
		assert.Equal(t, want, shouldRenderTick(quiz.State{TimeRemaining: remaining}), "remaining %d", remaining)
	}
}

func TestBuildCardsPage(t *testing.T) {
	var cards []entities.Question
	for i := 0; i < 7; i++ {
		cards = append(cards, entities.Question{
			ID:       fmt.Sprintf("id-%d", i),
			Question: fmt.Sprintf("Question %d", i),
			Options:  []string{"a", "b"},
			Answer:   "a",
		})
	}

	text, total := buildCardsPage(cards, 1)
	assert.Equal(t, 2, total)
	assert.Contains(t, text, "Question 5")
	assert.Contains(t, text, "`id-6`")
	assert.NotContains(t, text, "Question 4")

	text, total = buildCardsPage(cards, 2)
	assert.Empty(t, text)
	assert.Equal(t, 2, total)
}

func TestBuildPageKeyboard(t *testing.T) {
	assert.Nil(t, buildPageKeyboard(0, 1, "list:-1", "list:1"))

	kb := buildPageKeyboard(0, 3, buildListCallback(-1), buildListCallback(1))
	require.NotNil(t, kb)
	assert.Equal(t, []string{"Next ▶️"}, buttonTexts(*kb))

	kb = buildPageKeyboard(2, 3, buildListCallback(1), buildListCallback(3))
	require.NotNil(t, kb)
	assert.Equal(t, []string{"◀️ Previous"}, buttonTexts(*kb))
}

func TestBuildGeneratedKeyboard(t *testing.T) {
	assert.Nil(t, buildGeneratedKeyboard(nil))

	kb := buildGeneratedKeyboard([]int{0, 2, 3, 4, 5, 6})
	require.NotNil(t, kb)
	require.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], generatedButtonsPerRow)
	assert.Equal(t, "💾 3", kb.InlineKeyboard[0][1].Text)
	assert.Equal(t, "gen:save:2", *kb.InlineKeyboard[0][1].CallbackData)
	assert.Equal(t, "gen:all", *kb.InlineKeyboard[2][0].CallbackData)
}

func TestFormatValidationError(t *testing.T) {
	text := formatValidationError(&entities.ValidationError{
		Rules: []entities.Rule{entities.RuleTooFewOptions, entities.RuleAnswerNotInOptions},
	})
	assert.Contains(t, text, msgInvalidCardHeading)
	assert.Contains(t, text, entities.RuleTooFewOptions.Description())
	assert.Contains(t, text, entities.RuleAnswerNotInOptions.Description())
}

func TestErrorMessage(t *testing.T) {
	verr := &entities.ValidationError{Rules: []entities.Rule{entities.RuleEmptyQuestion}}
	remote := fmt.Errorf("add flashcard: %w: %w", entities.ErrRemoteUnavailable, errors.New("dial tcp"))

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "validation", err: fmt.Errorf("add flashcard: %w", verr), want: formatValidationError(verr)},
		{name: "format", err: errCardFormat, want: msgUseAdd},
		{name: "missing id", err: errMissingID, want: msgUseEdit},
		{name: "not found", err: repository.ErrFlashcardNotFound, want: msgFlashcardNotFound},
		{name: "not mirrored", err: fmt.Errorf("edit flashcard x: %w", repository.ErrNotMirrored), want: msgNotMirrored},
		{name: "remote write", err: remote, want: msgRemoteUnavailable},
		{name: "local write", err: fmt.Errorf("x: %w", entities.ErrPersistence), want: msgSaveFailed},
		{name: "unknown", err: errors.New("boom"), want: msgInternalError},
		{
			name: "ai timeout",
			err:  fmt.Errorf("%w: %w", errGeneration, entities.ErrTimeout),
			want: msgAITimeout,
		},
		{
			name: "ai transport",
			err:  fmt.Errorf("%w: %w", errGeneration, remote),
			want: msgAIUnavailable,
		},
		{
			name: "ai no questions",
			err:  fmt.Errorf("%w: %w", errGeneration, ai.ErrNoQuestions),
			want: msgAINoQuestions,
		},
		{
			name: "ai server message",
			err:  fmt.Errorf("%w: %w", errGeneration, &ai.ServiceError{StatusCode: 500, Message: "Model overloaded"}),
			want: "Model overloaded. Please try again.",
		},
		{
			name: "empty topic",
			err:  fmt.Errorf("%w: %w", errGeneration, service.ErrEmptyTopic),
			want: msgEnterTopic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage(tt.err))
		})
	}
}

func TestQuizErrorToast(t *testing.T) {
	assert.Equal(t, msgAlreadyAnswered, quizErrorToast(quiz.ErrAlreadyAnswered))
	assert.Equal(t, msgRetreatNotAllowed, quizErrorToast(quiz.ErrRetreatNotAllowed))
	assert.Equal(t, msgQuizCompleted, quizErrorToast(quiz.ErrCompleted))
	assert.Equal(t, msgNoActiveQuiz, quizErrorToast(quiz.ErrClosed))
}

func TestFormatWelcome(t *testing.T) {
	text := formatWelcome(service.Summary{CardCount: 12})
	assert.Contains(t, text, "Total cards: 12")
	assert.Contains(t, text, "No quizzes completed yet")

	r := entities.StoredResult{Score: 3, Total: 4, Timestamp: "2026-03-01T10:00:00Z"}
	text = formatWelcome(service.Summary{CardCount: 4, LastResult: &r})
	assert.Contains(t, text, "Last quiz score: 3/4")
	assert.Contains(t, text, "2026")
}
