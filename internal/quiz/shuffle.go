package quiz

import (
	"math/rand"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
)

// Shuffle returns a uniformly random permutation of xs (Fisher–Yates). xs is not modified.
func Shuffle[T any](r *rand.Rand, xs []T) []T {
	out := append([]T(nil), xs...)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffleQuestions permutes the question list and, independently, the options of every question.
func ShuffleQuestions(r *rand.Rand, questions []entities.Question) []entities.Question {
	out := Shuffle(r, questions)
	for i := range out {
		out[i] = out[i].Clone()
		out[i].Options = Shuffle(r, out[i].Options)
	}
	return out
}
