package quiz

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chiSquareCritical5 is the 0.999 quantile of the chi-square distribution with 5 degrees of freedom.
const chiSquareCritical5 = 20.515

func TestShuffleIsUniform(t *testing.T) {
	r := rand.New(rand.NewSource(20240601))
	input := []string{"a", "b", "c"}

	const trials = 60000
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		counts[strings.Join(Shuffle(r, input), "")]++
	}

	require.Len(t, counts, 6, "every permutation of three items appears")

	expected := float64(trials) / 6
	chi := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi += d * d / expected
	}
	assert.Less(t, chi, chiSquareCritical5)
}

func TestShuffleDoesNotModifyInput(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	input := []int{1, 2, 3, 4, 5}

	out := Shuffle(r, input)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, input)
	assert.ElementsMatch(t, input, out)
}

func TestShuffleEmpty(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	assert.Empty(t, Shuffle[int](r, nil))
}

func TestShuffleQuestionsKeepsAnswersValid(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	source := sampleQuestions()

	for i := 0; i < 100; i++ {
		out := ShuffleQuestions(r, source)
		require.Len(t, out, len(source))
		for _, q := range out {
			assert.Contains(t, q.Options, q.Answer)
			assert.Len(t, q.Options, 4)
		}
	}

	assert.Equal(t, []string{"Paris", "London", "Berlin", "Madrid"}, source[0].Options)
}

func TestShuffleQuestionsSpreadsAnswerPosition(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	source := sampleQuestions()[:1]

	const trials = 40000
	positions := make([]int, 4)
	for i := 0; i < trials; i++ {
		q := ShuffleQuestions(r, source)[0]
		for pos, opt := range q.Options {
			if opt == q.Answer {
				positions[pos]++
			}
		}
	}

	for pos, c := range positions {
		assert.InDelta(t, trials/4, c, trials/40, "answer position %d", pos)
	}
}
