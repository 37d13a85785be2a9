package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flashcards.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestStoreGetMissingKey(t *testing.T) {
	s, _ := openTestStore(t)

	_, err := s.Get(context.Background(), "flashcards")
	require.ErrorIs(t, err, entities.ErrKeyNotFound)
}

func TestStoreSetOverwrites(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "quiz_results:1", `{"score":1}`))
	require.NoError(t, s.Set(ctx, "quiz_results:1", `{"score":2}`))

	v, err := s.Get(ctx, "quiz_results:1")
	require.NoError(t, err)
	assert.Equal(t, `{"score":2}`, v)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "flashcards", "[]"))
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.Get(ctx, "flashcards")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}
