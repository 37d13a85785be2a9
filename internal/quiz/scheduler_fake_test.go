package quiz

import (
	"math/rand"
	"time"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
)

// manualScheduler records tasks and fires them only when a test asks for it.
type manualScheduler struct {
	tasks []*manualTask
}

type manualTask struct {
	every   bool
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *manualTask) Stop() bool {
	wasLive := !t.stopped
	t.stopped = true
	return wasLive
}

func (m *manualScheduler) Every(d time.Duration, fn func()) Task {
	t := &manualTask{every: true, delay: d, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

func (m *manualScheduler) After(d time.Duration, fn func()) Task {
	t := &manualTask{delay: d, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// tick fires every live periodic task once per call, n times.
func (m *manualScheduler) tick(n int) {
	for i := 0; i < n; i++ {
		for _, t := range m.liveTasks(true) {
			if !t.stopped {
				t.fn()
			}
		}
	}
}

// fireDelayed runs every pending one-shot task.
func (m *manualScheduler) fireDelayed() {
	for _, t := range m.liveTasks(false) {
		if t.stopped {
			continue
		}
		t.stopped = true
		t.fn()
	}
}

func (m *manualScheduler) liveTasks(every bool) []*manualTask {
	var out []*manualTask
	for _, t := range m.tasks {
		if t.every == every && !t.stopped {
			out = append(out, t)
		}
	}
	return out
}

func (m *manualScheduler) lastTask(every bool) *manualTask {
	for i := len(m.tasks) - 1; i >= 0; i-- {
		if m.tasks[i].every == every {
			return m.tasks[i]
		}
	}
	return nil
}

type savedCall struct {
	score, total int
}

type recordingSaver struct {
	calls []savedCall
}

func (r *recordingSaver) SaveResult(score, total int) {
	r.calls = append(r.calls, savedCall{score: score, total: total})
}

func sampleQuestions() []entities.Question {
	return []entities.Question{
		{ID: "1", Question: "What is the capital of France?", Options: []string{"Paris", "London", "Berlin", "Madrid"}, Answer: "Paris"},
		{ID: "2", Question: "What is a stack?", Options: []string{"LIFO", "FIFO", "Graph", "Hash table"}, Answer: "LIFO"},
		{ID: "3", Question: "What is a queue?", Options: []string{"FIFO", "LIFO", "Tree", "Linked list"}, Answer: "FIFO"},
	}
}

func newTestSession(opts Options) (*Session, *manualScheduler, *recordingSaver) {
	sched := &manualScheduler{}
	saver := &recordingSaver{}
	opts.Scheduler = sched
	opts.Saver = saver
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	s, err := NewSession(sampleQuestions(), opts)
	if err != nil {
		panic(err)
	}
	s.deliver = deliverInline
	return s, sched, saver
}

// deliverInline runs timer side effects on the firing goroutine so tests stay sequential.
func deliverInline(fn func()) { fn() }
