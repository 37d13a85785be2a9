package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
)

func TestParseCard(t *testing.T) {
	q, err := parseCard(" What is a stack? | LIFO ; FIFO;; Graph | LIFO ")
	require.NoError(t, err)
	assert.Equal(t, "What is a stack?", q.Question)
	assert.Equal(t, []string{"LIFO", "FIFO", "Graph"}, q.Options)
	assert.Equal(t, "LIFO", q.Answer)
	assert.Empty(t, q.ID)
}

func TestParseCardWrongFieldCount(t *testing.T) {
	for _, in := range []string{"", "question only", "q | a; b", "q | a | b | c"} {
		_, err := parseCard(in)
		assert.ErrorIs(t, err, errCardFormat, in)
	}
}

func TestParseCardLeavesValidationToEntities(t *testing.T) {
	q, err := parseCard("Q | a; a | a")
	require.NoError(t, err)

	_, err = entities.ValidateQuestion(q)
	var verr *entities.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has(entities.RuleDuplicateOptions))
}

func TestParseEdit(t *testing.T) {
	id, q, err := parseEdit("default-03  What is a queue? | FIFO; LIFO | FIFO")
	require.NoError(t, err)
	assert.Equal(t, "default-03", id)
	assert.Equal(t, "What is a queue?", q.Question)
	assert.Equal(t, "FIFO", q.Answer)
}

func TestParseEditErrors(t *testing.T) {
	_, _, err := parseEdit("")
	assert.ErrorIs(t, err, errMissingID)

	_, _, err = parseEdit("| a; b | a")
	assert.ErrorIs(t, err, errMissingID)

	_, _, err = parseEdit("abc just text")
	assert.ErrorIs(t, err, errCardFormat)
}

func TestParseGenerateArgs(t *testing.T) {
	tests := []struct {
		in         string
		topic      string
		difficulty entities.Difficulty
		count      int
	}{
		{in: "Go channels medium 5", topic: "Go channels", difficulty: entities.DifficultyMedium, count: 5},
		{in: "React Native", topic: "React Native"},
		{in: "CSS hard", topic: "CSS", difficulty: entities.DifficultyHard},
		{in: "HTTP 3", topic: "HTTP", count: 3},
		{in: "easy", topic: "easy"},
		{in: "7", topic: "7"},
		{in: "  ", topic: ""},
		{in: "Go -2", topic: "Go -2"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			topic, difficulty, count := parseGenerateArgs(tt.in)
			assert.Equal(t, tt.topic, topic)
			assert.Equal(t, tt.difficulty, difficulty)
			assert.Equal(t, tt.count, count)
		})
	}
}
