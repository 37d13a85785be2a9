package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/quiz"
)

var (
	ErrFlashcardNotFound = errors.New("flashcard not found")

	// ErrNotMirrored is returned by Edit when the card exists locally but not in the remote collection.
	ErrNotMirrored = errors.New("flashcard is not in the remote collection")
)

// FlashcardRepository manages the user's deck. The deck lives in a KVStore under FlashcardsKey
// and, when a remote collection is configured, every write is mirrored there first.
type FlashcardRepository struct {
	mu sync.Mutex

	kv         KVStore
	remote     RemoteCollection
	collection string
	defaults   []entities.Question
	rnd        *rand.Rand
	log        *zap.Logger
}

// FlashcardOption configures a FlashcardRepository.
type FlashcardOption func(*FlashcardRepository)

// WithRemote mirrors writes to collection of remote.
func WithRemote(remote RemoteCollection, collection string) FlashcardOption {
	return func(r *FlashcardRepository) {
		r.remote = remote
		r.collection = collection
	}
}

// WithRand sets the source used to shuffle the default deck on first load.
func WithRand(rnd *rand.Rand) FlashcardOption {
	return func(r *FlashcardRepository) {
		r.rnd = rnd
	}
}

// NewFlashcardRepository creates a FlashcardRepository. defaults seed the deck the first time it is read.
func NewFlashcardRepository(
	kv KVStore,
	defaults []entities.Question,
	log *zap.Logger,
	opts ...FlashcardOption,
) *FlashcardRepository {
	r := &FlashcardRepository{
		kv:       kv,
		defaults: defaults,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HasRemote reports whether writes are mirrored to a remote collection.
func (r *FlashcardRepository) HasRemote() bool {
	return r.remote != nil
}

// List returns the deck. On first use the default deck is shuffled, persisted and returned.
func (r *FlashcardRepository) List(ctx context.Context) ([]entities.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadLocked(ctx)
}

// Get returns the flashcard with the given ID.
func (r *FlashcardRepository) Get(ctx context.Context, id string) (entities.Question, error) {
	cards, err := r.List(ctx)
	if err != nil {
		return entities.Question{}, err
	}

	for _, c := range cards {
		if c.ID == id {
			return c, nil
		}
	}

	return entities.Question{}, ErrFlashcardNotFound
}

// Add validates q, stores it remotely (if configured) and appends it to the local deck.
// The returned question carries the assigned ID.
func (r *FlashcardRepository) Add(ctx context.Context, q entities.Question) (entities.Question, error) {
	q, err := entities.ValidateQuestion(q)
	if err != nil {
		return entities.Question{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cards, err := r.loadLocked(ctx)
	if err != nil {
		return entities.Question{}, err
	}

	if r.remote != nil {
		id, err := r.remote.Add(ctx, r.collection, entities.QuestionFields(q))
		if err != nil {
			return entities.Question{}, fmt.Errorf("add flashcard remotely: %w: %w", entities.ErrRemoteUnavailable, err)
		}
		q.ID = id
	} else {
		q.ID = uuid.NewString()
	}

	cards = append(cards, q)
	if err := r.saveLocked(ctx, cards); err != nil {
		return entities.Question{}, err
	}

	r.log.Info("flashcard added", zap.String("id", q.ID))
	return q, nil
}

// Edit replaces the content of the flashcard id with q. The ID is kept.
func (r *FlashcardRepository) Edit(ctx context.Context, id string, q entities.Question) (entities.Question, error) {
	q, err := entities.ValidateQuestion(q)
	if err != nil {
		return entities.Question{}, err
	}
	q.ID = id

	r.mu.Lock()
	defer r.mu.Unlock()

	cards, err := r.loadLocked(ctx)
	if err != nil {
		return entities.Question{}, err
	}

	idx := -1
	for i, c := range cards {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entities.Question{}, ErrFlashcardNotFound
	}

	if r.remote != nil {
		err := r.remote.Update(ctx, r.collection, id, entities.QuestionUpdateFields(q))
		if errors.Is(err, ErrDocumentNotFound) {
			return entities.Question{}, fmt.Errorf("update flashcard remotely: %w", ErrNotMirrored)
		}
		if err != nil {
			return entities.Question{}, fmt.Errorf("update flashcard remotely: %w: %w", entities.ErrRemoteUnavailable, err)
		}
	}

	cards[idx] = q
	if err := r.saveLocked(ctx, cards); err != nil {
		return entities.Question{}, err
	}

	r.log.Info("flashcard edited", zap.String("id", id))
	return q, nil
}

// ReplaceAll overwrites the local deck. Invalid questions are dropped. The remote is not touched.
func (r *FlashcardRepository) ReplaceAll(ctx context.Context, questions []entities.Question) (int, error) {
	cards := make([]entities.Question, 0, len(questions))
	for _, q := range questions {
		valid, err := entities.ValidateQuestion(q)
		if err != nil {
			r.log.Warn("dropping invalid flashcard", zap.String("id", q.ID), zap.Error(err))
			continue
		}
		if valid.ID == "" {
			valid.ID = uuid.NewString()
		}
		cards = append(cards, valid)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.saveLocked(ctx, cards); err != nil {
		return 0, err
	}
	return len(cards), nil
}

func (r *FlashcardRepository) loadLocked(ctx context.Context) ([]entities.Question, error) {
	raw, err := r.kv.Get(ctx, FlashcardsKey)
	if errors.Is(err, entities.ErrKeyNotFound) {
		return r.seedLocked(ctx), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load flashcards: %w: %w", entities.ErrPersistence, err)
	}

	var stored []entities.Question
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decode flashcards: %w: %w", entities.ErrPersistence, err)
	}

	cards := make([]entities.Question, 0, len(stored))
	for _, q := range stored {
		if !entities.IsValidQuestion(q) {
			r.log.Warn("skipping invalid stored flashcard", zap.String("id", q.ID))
			continue
		}
		cards = append(cards, q)
	}
	return cards, nil
}

// seedLocked persists a shuffled copy of the default deck. A failed write is logged
// and the shuffled deck is still returned.
func (r *FlashcardRepository) seedLocked(ctx context.Context) []entities.Question {
	cards := quiz.Shuffle(r.rnd, r.defaults)
	for i := range cards {
		cards[i] = cards[i].Clone()
	}

	if err := r.saveLocked(ctx, cards); err != nil {
		r.log.Warn("failed to persist default flashcards", zap.Error(err))
		return cards
	}

	r.log.Info("seeded default flashcards", zap.Int("count", len(cards)))
	return cards
}

func (r *FlashcardRepository) saveLocked(ctx context.Context, cards []entities.Question) error {
	raw, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("encode flashcards: %w: %w", entities.ErrPersistence, err)
	}
	if err := r.kv.Set(ctx, FlashcardsKey, string(raw)); err != nil {
		return fmt.Errorf("save flashcards: %w: %w", entities.ErrPersistence, err)
	}
	return nil
}
