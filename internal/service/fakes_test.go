package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/quiz"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/repository"
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

type memoryKV struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string]string)}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return "", entities.ErrKeyNotFound
	}
	return v, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

type fakeRemote struct {
	docs    []entities.Document
	err     error
	updates []int // counts pushed by Subscribe after the initial one
}

func (f *fakeRemote) ListAll(_ context.Context, _ string) ([]entities.Document, error) {
	return f.docs, f.err
}

func (f *fakeRemote) Add(_ context.Context, _ string, fields map[string]any) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	id := fmt.Sprintf("doc-%d", len(f.docs)+1)
	f.docs = append(f.docs, entities.Document{ID: id, Fields: fields})
	return id, nil
}

func (f *fakeRemote) Update(_ context.Context, _ string, id string, fields map[string]any) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.docs {
		if f.docs[i].ID == id {
			f.docs[i].Fields = fields
			return nil
		}
	}
	return repository.ErrDocumentNotFound
}

func (f *fakeRemote) Subscribe(ctx context.Context, _ string, fn func(int)) error {
	if f.err != nil {
		return f.err
	}
	fn(len(f.docs))
	for _, n := range f.updates {
		fn(n)
	}
	<-ctx.Done()
	return ctx.Err()
}

func doc(id, question string, options []any, answer string) entities.Document {
	return entities.Document{ID: id, Fields: map[string]any{
		"question": question,
		"options":  options,
		"answer":   answer,
	}}
}

type fakeDeck struct {
	cards    []entities.Question
	listErr  error
	addErr   error
	failAt   int // Add fails on this call number when > 0
	adds     int
	replaced []entities.Question
}

func (d *fakeDeck) List(_ context.Context) ([]entities.Question, error) {
	if d.listErr != nil {
		return nil, d.listErr
	}
	return append([]entities.Question(nil), d.cards...), nil
}

func (d *fakeDeck) Get(_ context.Context, id string) (entities.Question, error) {
	for _, c := range d.cards {
		if c.ID == id {
			return c, nil
		}
	}
	return entities.Question{}, repository.ErrFlashcardNotFound
}

func (d *fakeDeck) Add(_ context.Context, q entities.Question) (entities.Question, error) {
	d.adds++
	if d.addErr != nil && (d.failAt == 0 || d.adds == d.failAt) {
		return entities.Question{}, d.addErr
	}
	q.ID = fmt.Sprintf("card-%d", d.adds)
	d.cards = append(d.cards, q)
	return q, nil
}

func (d *fakeDeck) Edit(_ context.Context, id string, q entities.Question) (entities.Question, error) {
	for i, c := range d.cards {
		if c.ID == id {
			q.ID = id
			d.cards[i] = q
			return q, nil
		}
	}
	return entities.Question{}, repository.ErrFlashcardNotFound
}

func (d *fakeDeck) ReplaceAll(_ context.Context, qs []entities.Question) (int, error) {
	d.replaced = append([]entities.Question(nil), qs...)
	d.cards = append([]entities.Question(nil), qs...)
	return len(qs), nil
}

type fakeGenerator struct {
	questions  []entities.AIQuestion
	err        error
	topicReq   entities.GenerateQuestionsRequest
	contentReq entities.GenerateFromContentRequest
}

func (g *fakeGenerator) GenerateQuestions(_ context.Context, req entities.GenerateQuestionsRequest) ([]entities.AIQuestion, error) {
	g.topicReq = req
	return g.questions, g.err
}

func (g *fakeGenerator) GenerateFromContent(_ context.Context, req entities.GenerateFromContentRequest) ([]entities.AIQuestion, error) {
	g.contentReq = req
	return g.questions, g.err
}

type idleScheduler struct{}

type idleTask struct{}

func (idleTask) Stop() bool { return true }

func (idleScheduler) Every(_ time.Duration, _ func()) quiz.Task { return idleTask{} }
func (idleScheduler) After(_ time.Duration, _ func()) quiz.Task { return idleTask{} }

func card(id, question string, options []string, answer string) entities.Question {
	return entities.Question{ID: id, Question: question, Options: options, Answer: answer}
}
