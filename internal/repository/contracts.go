package repository

import (
	"context"
	"errors"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
)

// ErrDocumentNotFound is returned by a RemoteCollection when an update targets a missing document.
var ErrDocumentNotFound = errors.New("document not found")

// KVStore is a string key-value store. Get returns entities.ErrKeyNotFound for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// RemoteCollection is a document collection that mirrors the flashcard deck.
type RemoteCollection interface {
	ListAll(ctx context.Context, collection string) ([]entities.Document, error)
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)
	// Update merges fields into the document. A nil value removes the key.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	// Subscribe calls fn with the document count once and then after every change.
	// It blocks until ctx is done.
	Subscribe(ctx context.Context, collection string, fn func(count int)) error
}
