package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/quiz"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/storage"
)

type staticLoader []entities.Question

func (l staticLoader) Load(context.Context) []entities.Question { return l }

func newTestQuizService(loader QuestionLoader, kv *memoryKV) (*QuizService, *ResultsRecorder) {
	log, _ := observedLogger()
	results := NewResultsRecorder(kv, log)
	svc := NewQuizService(loader, results, storage.NewSessionStorage(), QuizConfig{Shuffle: true}, idleScheduler{}, log)
	return svc, results
}

func TestQuizServiceStartAndComplete(t *testing.T) {
	kv := newMemoryKV()
	svc, results := newTestQuizService(staticLoader{
		card("1", "Q1", []string{"a", "b"}, "a"),
		card("2", "Q2", []string{"c", "d"}, "d"),
	}, kv)
	ctx := context.Background()

	var events []quiz.EventType
	session, err := svc.Start(ctx, 10, func(e quiz.Event) { events = append(events, e.Type) })
	require.NoError(t, err)

	got, err := svc.Get(10)
	require.NoError(t, err)
	assert.Same(t, session, got)

	for !session.State().Completed() {
		q, _ := session.State().Current()
		_, err := session.Answer(q.Answer)
		require.NoError(t, err)
		require.NoError(t, session.Advance())
	}

	last, err := results.Last(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, last.Score)
	assert.Equal(t, 2, last.Total)
	assert.Equal(t, quiz.EventCompleted, events[len(events)-1])
}

func TestQuizServiceStartReplacesRunningQuiz(t *testing.T) {
	svc, _ := newTestQuizService(staticLoader{card("1", "Q1", []string{"a", "b"}, "a")}, newMemoryKV())
	ctx := context.Background()

	first, err := svc.Start(ctx, 1, nil)
	require.NoError(t, err)
	second, err := svc.Start(ctx, 1, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, first.Advance(), quiz.ErrClosed)

	got, err := svc.Get(1)
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestQuizServiceIsolatesChats(t *testing.T) {
	svc, _ := newTestQuizService(staticLoader{
		card("1", "Q1", []string{"a", "b"}, "a"),
		card("2", "Q2", []string{"a", "b"}, "a"),
	}, newMemoryKV())
	ctx := context.Background()

	a, err := svc.Start(ctx, 1, nil)
	require.NoError(t, err)
	b, err := svc.Start(ctx, 2, nil)
	require.NoError(t, err)

	require.NoError(t, a.Advance())
	assert.Equal(t, 1, a.State().CurrentIndex)
	assert.Equal(t, 0, b.State().CurrentIndex)
}

func TestQuizServiceStop(t *testing.T) {
	svc, _ := newTestQuizService(staticLoader{card("1", "Q1", []string{"a", "b"}, "a")}, newMemoryKV())

	session, err := svc.Start(context.Background(), 3, nil)
	require.NoError(t, err)

	svc.Stop(3)
	assert.ErrorIs(t, session.Advance(), quiz.ErrClosed)

	_, err = svc.Get(3)
	require.ErrorIs(t, err, ErrNoActiveQuiz)

	svc.Stop(3)
}

func TestQuizServiceStartWithoutQuestions(t *testing.T) {
	svc, _ := newTestQuizService(staticLoader{}, newMemoryKV())

	_, err := svc.Start(context.Background(), 1, nil)
	require.ErrorIs(t, err, quiz.ErrNoQuestions)
}
