package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/quiz"
)

var ErrNoActiveQuiz = errors.New("no active quiz")

// QuizConfig holds the session parameters of new quizzes.
type QuizConfig struct {
	QuestionTime            time.Duration
	WrongAnswerDelay        time.Duration
	AllowRetreatAfterAnswer bool
	Shuffle                 bool
}

// QuizService runs one quiz session per chat.
type QuizService struct {
	source    QuestionLoader
	results   ResultSaver
	sessions  SessionStorage
	cfg       QuizConfig
	scheduler quiz.Scheduler
	logger    *zap.Logger
}

// NewQuizService creates a QuizService. A nil scheduler uses the wall clock.
func NewQuizService(
	source QuestionLoader,
	results ResultSaver,
	sessions SessionStorage,
	cfg QuizConfig,
	scheduler quiz.Scheduler,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		source:    source,
		results:   results,
		sessions:  sessions,
		cfg:       cfg,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start loads questions and begins a new quiz for chatID, replacing any running one.
// onEvent receives every state change of the session.
func (s *QuizService) Start(ctx context.Context, chatID int64, onEvent func(quiz.Event)) (*quiz.Session, error) {
	questions := s.source.Load(ctx)

	session, err := quiz.NewSession(questions, quiz.Options{
		QuestionTime:            s.cfg.QuestionTime,
		WrongAnswerDelay:        s.cfg.WrongAnswerDelay,
		AllowRetreatAfterAnswer: s.cfg.AllowRetreatAfterAnswer,
		Shuffle:                 s.cfg.Shuffle,
		Scheduler:               s.scheduler,
		Rand:                    rand.New(rand.NewSource(time.Now().UnixNano())),
		Saver:                   SaverFor(ctx, s.results, chatID),
		OnEvent:                 onEvent,
	})
	if err != nil {
		s.logger.Error("failed to start quiz", zap.Int64("chat_id", chatID), zap.Error(err))
		return nil, err
	}

	if prev := s.sessions.Store(chatID, session); prev != nil {
		prev.Close()
	}

	s.logger.Info("quiz started", zap.Int64("chat_id", chatID), zap.Int("questions", len(questions)))
	return session, nil
}

// Get returns the running quiz of chatID.
func (s *QuizService) Get(chatID int64) (*quiz.Session, error) {
	session, ok := s.sessions.Get(chatID)
	if !ok {
		return nil, ErrNoActiveQuiz
	}
	return session, nil
}

// Stop closes and forgets the quiz of chatID.
func (s *QuizService) Stop(chatID int64) {
	if session := s.sessions.Delete(chatID); session != nil {
		session.Close()
		s.logger.Info("quiz stopped", zap.Int64("chat_id", chatID))
	}
}
