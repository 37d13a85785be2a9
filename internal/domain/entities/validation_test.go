package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuestionAcceptsValid(t *testing.T) {
	q, err := ValidateQuestion(Question{
		Question:   "  What is the capital of France? ",
		Options:    []string{" Paris", "London ", "Berlin", "Madrid"},
		Answer:     "Paris ",
		Difficulty: "Easy",
	})
	require.NoError(t, err)

	assert.Equal(t, "What is the capital of France?", q.Question)
	assert.Equal(t, []string{"Paris", "London", "Berlin", "Madrid"}, q.Options)
	assert.Equal(t, "Paris", q.Answer)
	assert.Equal(t, DifficultyEasy, q.Difficulty)
}

func TestValidateQuestionRejectsDuplicateOptions(t *testing.T) {
	_, err := ValidateQuestion(Question{
		Question: "What is the capital of France?",
		Options:  []string{"Paris", "Paris", "London", "Berlin"},
		Answer:   "Paris",
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []Rule{RuleDuplicateOptions}, verr.Rules)
}

func TestValidateQuestionDuplicatesDetectedAfterTrim(t *testing.T) {
	_, err := ValidateQuestion(Question{
		Question: "Pick one",
		Options:  []string{"Paris", " Paris "},
		Answer:   "Paris",
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has(RuleDuplicateOptions))
}

func TestValidateQuestionRejectsAnswerNotInOptions(t *testing.T) {
	_, err := ValidateQuestion(Question{
		Question: "What is the capital of France?",
		Options:  []string{"Paris", "London", "Berlin", "Madrid"},
		Answer:   "Rome",
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []Rule{RuleAnswerNotInOptions}, verr.Rules)
}

func TestValidateQuestionEnumeratesEveryRule(t *testing.T) {
	_, err := ValidateQuestion(Question{
		Question:   " ",
		Options:    []string{"only", "  "},
		Answer:     "",
		Difficulty: "impossible",
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []Rule{
		RuleEmptyQuestion,
		RuleEmptyOption,
		RuleEmptyAnswer,
		RuleInvalidDifficulty,
	}, verr.Rules)
	assert.Contains(t, verr.Error(), "empty_question")
}

func TestValidateQuestionTooFewOptions(t *testing.T) {
	_, err := ValidateQuestion(Question{Question: "Q", Options: []string{"A"}, Answer: "A"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has(RuleTooFewOptions))
	assert.False(t, verr.Has(RuleAnswerNotInOptions))
}

func TestValidateQuestionDoesNotMutateInput(t *testing.T) {
	in := Question{Question: " Q ", Options: []string{" A ", "B"}, Answer: "A"}
	_, err := ValidateQuestion(in)
	require.NoError(t, err)
	assert.Equal(t, " A ", in.Options[0])
}

func TestQuestionFromDocumentIsLenient(t *testing.T) {
	q := QuestionFromDocument(Document{
		ID: "doc-1",
		Fields: map[string]any{
			"question":   "What is JSX?",
			"options":    []any{"A syntax extension for JavaScript", "A build tool"},
			"answer":     "A syntax extension for JavaScript",
			"difficulty": "HARD",
		},
	})
	assert.Equal(t, "doc-1", q.ID)
	assert.Equal(t, DifficultyHard, q.Difficulty)
	assert.True(t, IsValidQuestion(q))

	broken := QuestionFromDocument(Document{ID: "doc-2", Fields: map[string]any{"options": "nope", "answer": 42}})
	assert.Empty(t, broken.Options)
	assert.Empty(t, broken.Answer)
	assert.False(t, IsValidQuestion(broken))
}

func TestAIQuestionToQuestionDropsUnknownDifficulty(t *testing.T) {
	q := AIQuestion{
		Question:   "2+2?",
		Options:    []string{"3", "4"},
		Answer:     "4",
		Difficulty: "legendary",
	}.ToQuestion()

	assert.Empty(t, q.Difficulty)
	assert.True(t, IsValidQuestion(q))
}
