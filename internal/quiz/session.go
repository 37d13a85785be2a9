package quiz

import (
	"errors"
	"math/rand"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
)

const (
	DefaultQuestionTime     = 10 * time.Second
	DefaultWrongAnswerDelay = 800 * time.Millisecond
)

var (
	ErrNoQuestions       = errors.New("quiz has no questions")
	ErrCompleted         = errors.New("quiz is completed")
	ErrNotCompleted      = errors.New("quiz is still in progress")
	ErrAlreadyAnswered   = errors.New("question already answered")
	ErrUnknownOption     = errors.New("option does not belong to the question")
	ErrRetreatNotAllowed = errors.New("cannot go back from this question")
	ErrClosed            = errors.New("quiz session is closed")
)

// Status is the state machine state of a session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// EventType names a session state change.
type EventType string

const (
	EventAnswered  EventType = "answered"
	EventAdvanced  EventType = "advanced"
	EventSkipped   EventType = "skipped"
	EventRetreated EventType = "retreated"
	EventPaused    EventType = "paused"
	EventResumed   EventType = "resumed"
	EventTick      EventType = "tick"
	EventCompleted EventType = "completed"
	EventRestarted EventType = "restarted"
)

// Event is delivered to Options.OnEvent after a state change.
type Event struct {
	Type   EventType
	State  State
	Record *entities.AnsweredRecord // set for EventAnswered
}

// ResultSaver persists the outcome of a completed session.
type ResultSaver interface {
	SaveResult(score, total int)
}

// ResultSaverFunc adapts a function to ResultSaver.
type ResultSaverFunc func(score, total int)

// SaveResult implements ResultSaver.
func (f ResultSaverFunc) SaveResult(score, total int) { f(score, total) }

// Options configures a Session.
type Options struct {
	QuestionTime            time.Duration // countdown per question, whole seconds
	WrongAnswerDelay        time.Duration // pause before auto-advancing after a wrong answer
	AllowRetreatAfterAnswer bool          // allow Retreat from a question that has been answered
	Shuffle                 bool          // shuffle questions and options on start and restart
	Scheduler               Scheduler
	Rand                    *rand.Rand
	Saver                   ResultSaver

	// OnEvent observes state changes. Events of a method call are delivered before it returns;
	// events of the countdown and the auto-advance are delivered in order on a session goroutine.
	OnEvent func(Event)
}

func (o Options) withDefaults() Options {
	if o.QuestionTime < time.Second {
		o.QuestionTime = DefaultQuestionTime
	}
	if o.WrongAnswerDelay <= 0 {
		o.WrongAnswerDelay = DefaultWrongAnswerDelay
	}
	if o.Scheduler == nil {
		o.Scheduler = NewClockScheduler()
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}

// Session sequences a fixed list of questions, scores answers and runs the per-question countdown.
//
// At most one countdown task is live at a time. Every question change bumps the session
// generation, and scheduled callbacks created for an older generation are ignored.
type Session struct {
	mu   sync.Mutex
	opts Options

	questionTime int
	source       []entities.Question
	questions    []entities.Question

	currentIndex  int
	score         int
	answers       []entities.AnsweredRecord
	answered      []bool
	timeRemaining int
	paused        bool
	resultsSaved  bool
	closed        bool

	generation  uint64
	countdown   Task
	autoAdvance Task

	// deliver runs the side effects of timer callbacks so a slow observer never holds up the clock.
	deliver func(func())
}

// NewSession starts a session over questions. The countdown for the first question starts immediately.
func NewSession(questions []entities.Question, opts Options) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	opts = opts.withDefaults()
	s := &Session{
		opts:         opts,
		questionTime: int(opts.QuestionTime / time.Second),
		source:       make([]entities.Question, 0, len(questions)),
		deliver:      (&mailbox{}).post,
	}
	for _, q := range questions {
		s.source = append(s.source, q.Clone())
	}

	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()

	return s, nil
}

// Answer records option as the answer to the current question.
// A wrong answer schedules an automatic Advance after the configured delay;
// a correct answer waits for an explicit Advance.
func (s *Session) Answer(option string) (entities.AnsweredRecord, error) {
	n := &notifier{}
	s.mu.Lock()
	rec, err := s.answerLocked(option, n)
	s.mu.Unlock()
	n.flush(s.opts)
	return rec, err
}

// Advance moves to the next question, completing the session after the last one.
func (s *Session) Advance() error {
	n := &notifier{}
	s.mu.Lock()
	err := s.advanceLocked(EventAdvanced, n)
	s.mu.Unlock()
	n.flush(s.opts)
	return err
}

// Retreat moves back to the previous question.
func (s *Session) Retreat() error {
	n := &notifier{}
	s.mu.Lock()
	err := s.retreatLocked(n)
	s.mu.Unlock()
	n.flush(s.opts)
	return err
}

// Tick advances the countdown by one second. It is inert while paused
// or once the current question has been answered.
func (s *Session) Tick() error {
	n := &notifier{}
	s.mu.Lock()
	err := s.tickLocked(n)
	s.mu.Unlock()
	n.flush(s.opts)
	return err
}

// TogglePause flips the paused flag and returns the new value. The countdown value is kept.
func (s *Session) TogglePause() (bool, error) {
	n := &notifier{}
	s.mu.Lock()
	paused, err := s.togglePauseLocked(n)
	s.mu.Unlock()
	n.flush(s.opts)
	return paused, err
}

// Restart begins the session again from the first question with a fresh shuffle.
func (s *Session) Restart() error {
	n := &notifier{}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.resetLocked()
	n.emit(EventRestarted, s.stateLocked(), nil)
	s.mu.Unlock()
	n.flush(s.opts)
	return nil
}

// SaveResults persists the result of a completed session. Only the first call writes.
func (s *Session) SaveResults() error {
	n := &notifier{}
	s.mu.Lock()
	err := ErrNotCompleted
	if s.isCompletedLocked() {
		s.saveResultsLocked(n)
		err = nil
	}
	s.mu.Unlock()
	n.flush(s.opts)
	return err
}

// Close cancels all scheduled work. Further operations fail with ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.generation++
	s.stopTimersLocked()
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) resetLocked() {
	if s.opts.Shuffle {
		s.questions = ShuffleQuestions(s.opts.Rand, s.source)
	} else {
		s.questions = make([]entities.Question, 0, len(s.source))
		for _, q := range s.source {
			s.questions = append(s.questions, q.Clone())
		}
	}

	s.currentIndex = 0
	s.score = 0
	s.answers = nil
	s.answered = make([]bool, len(s.questions))
	s.resultsSaved = false
	s.enterQuestionLocked()
}

func (s *Session) answerLocked(option string, n *notifier) (entities.AnsweredRecord, error) {
	if err := s.checkActiveLocked(); err != nil {
		return entities.AnsweredRecord{}, err
	}
	if s.answered[s.currentIndex] {
		return entities.AnsweredRecord{}, ErrAlreadyAnswered
	}

	q := s.questions[s.currentIndex]
	if !q.HasOption(option) {
		return entities.AnsweredRecord{}, ErrUnknownOption
	}

	rec := entities.NewAnsweredRecord(s.currentIndex, q, option, s.questionTime-s.timeRemaining)
	s.answered[s.currentIndex] = true
	// Answers stay in question order even when an earlier question is answered after a Retreat.
	pos := sort.Search(len(s.answers), func(i int) bool { return s.answers[i].Index > rec.Index })
	s.answers = slices.Insert(s.answers, pos, rec)
	if rec.IsCorrect {
		s.score++
	}

	// The countdown is frozen once the question is answered.
	stopTask(&s.countdown)

	if !rec.IsCorrect {
		gen := s.generation
		s.autoAdvance = s.opts.Scheduler.After(s.opts.WrongAnswerDelay, func() {
			s.advanceFrom(gen)
		})
	}

	n.emit(EventAnswered, s.stateLocked(), &rec)
	return rec, nil
}

func (s *Session) advanceLocked(event EventType, n *notifier) error {
	if err := s.checkActiveLocked(); err != nil {
		return err
	}

	s.currentIndex++
	s.enterQuestionLocked()

	if s.isCompletedLocked() {
		s.completeLocked(n)
		return nil
	}

	n.emit(event, s.stateLocked(), nil)
	return nil
}

func (s *Session) retreatLocked(n *notifier) error {
	if err := s.checkActiveLocked(); err != nil {
		return err
	}
	if s.currentIndex == 0 {
		return ErrRetreatNotAllowed
	}
	if s.answered[s.currentIndex] && !s.opts.AllowRetreatAfterAnswer {
		return ErrRetreatNotAllowed
	}

	s.currentIndex--
	s.enterQuestionLocked()

	n.emit(EventRetreated, s.stateLocked(), nil)
	return nil
}

func (s *Session) tickLocked(n *notifier) error {
	if err := s.checkActiveLocked(); err != nil {
		return err
	}
	if s.paused || s.answered[s.currentIndex] {
		return nil
	}

	s.timeRemaining--
	if s.timeRemaining > 0 {
		n.emit(EventTick, s.stateLocked(), nil)
		return nil
	}

	// Time is up: skip the question without recording an answer.
	s.timeRemaining = 0
	return s.advanceLocked(EventSkipped, n)
}

func (s *Session) togglePauseLocked(n *notifier) (bool, error) {
	if err := s.checkActiveLocked(); err != nil {
		return s.paused, err
	}

	s.paused = !s.paused
	if s.paused {
		n.emit(EventPaused, s.stateLocked(), nil)
	} else {
		n.emit(EventResumed, s.stateLocked(), nil)
	}
	return s.paused, nil
}

// enterQuestionLocked cancels outstanding timers and prepares the countdown for the current question.
func (s *Session) enterQuestionLocked() {
	s.generation++
	s.stopTimersLocked()

	if s.isCompletedLocked() {
		return
	}

	s.timeRemaining = s.questionTime
	s.paused = false

	if s.answered[s.currentIndex] {
		return
	}

	gen := s.generation
	s.countdown = s.opts.Scheduler.Every(time.Second, func() {
		s.tickFrom(gen)
	})
}

func (s *Session) completeLocked(n *notifier) {
	s.stopTimersLocked()
	s.saveResultsLocked(n)
	n.emit(EventCompleted, s.stateLocked(), nil)
}

func (s *Session) saveResultsLocked(n *notifier) {
	if s.resultsSaved {
		return
	}
	s.resultsSaved = true
	n.save = &savedResult{score: s.score, total: len(s.questions)}
}

func (s *Session) tickFrom(gen uint64) {
	n := &notifier{}
	s.mu.Lock()
	if gen == s.generation {
		_ = s.tickLocked(n)
	}
	s.mu.Unlock()
	s.flushLater(n)
}

func (s *Session) advanceFrom(gen uint64) {
	n := &notifier{}
	s.mu.Lock()
	if gen == s.generation {
		_ = s.advanceLocked(EventAdvanced, n)
	}
	s.mu.Unlock()
	s.flushLater(n)
}

// flushLater hands the side effects of a timer callback to the session mailbox.
func (s *Session) flushLater(n *notifier) {
	if n.empty() {
		return
	}
	s.deliver(func() { n.flush(s.opts) })
}

func (s *Session) checkActiveLocked() error {
	if s.closed {
		return ErrClosed
	}
	if s.isCompletedLocked() {
		return ErrCompleted
	}
	return nil
}

func (s *Session) isCompletedLocked() bool {
	return s.currentIndex >= len(s.questions)
}

func (s *Session) stopTimersLocked() {
	stopTask(&s.countdown)
	stopTask(&s.autoAdvance)
}

func (s *Session) stateLocked() State {
	st := State{
		Questions:     make([]entities.Question, 0, len(s.questions)),
		CurrentIndex:  s.currentIndex,
		Score:         s.score,
		Answers:       append([]entities.AnsweredRecord(nil), s.answers...),
		TimeRemaining: s.timeRemaining,
		QuestionTime:  s.questionTime,
		Paused:        s.paused,
		ResultsSaved:  s.resultsSaved,
		Status:        StatusInProgress,
	}
	for _, q := range s.questions {
		st.Questions = append(st.Questions, q.Clone())
	}
	if s.isCompletedLocked() {
		st.Status = StatusCompleted
	} else {
		st.Answered = s.answered[s.currentIndex]
	}
	return st
}

func stopTask(t *Task) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

type savedResult struct {
	score, total int
}

// notifier collects side effects under the session lock and runs them after it is released.
type notifier struct {
	events []Event
	save   *savedResult
}

func (n *notifier) emit(t EventType, st State, rec *entities.AnsweredRecord) {
	n.events = append(n.events, Event{Type: t, State: st, Record: rec})
}

func (n *notifier) empty() bool {
	return len(n.events) == 0 && n.save == nil
}

func (n *notifier) flush(opts Options) {
	if n.save != nil && opts.Saver != nil {
		opts.Saver.SaveResult(n.save.score, n.save.total)
	}
	if opts.OnEvent == nil {
		return
	}
	for _, e := range n.events {
		opts.OnEvent(e)
	}
}

// mailbox runs posted functions one at a time, in order, on a goroutine that lives
// only while there is work.
type mailbox struct {
	mu      sync.Mutex
	queue   []func()
	running bool
}

func (m *mailbox) post(fn func()) {
	m.mu.Lock()
	m.queue = append(m.queue, fn)
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	go m.drain()
}

func (m *mailbox) drain() {
	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			m.running = false
			m.mu.Unlock()
			return
		}
		fn := m.queue[0]
		m.queue[0] = nil
		m.queue = m.queue[1:]
		m.mu.Unlock()

		fn()
	}
}
