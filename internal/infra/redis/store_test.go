package redis

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	s, err := NewStore(context.Background(), Options{
		Addr:   addr,
		Prefix: "test:" + uuid.NewString() + ":",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "flashcards")
	require.ErrorIs(t, err, entities.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "flashcards", "[]"))
	require.NoError(t, s.Set(ctx, "flashcards", `[{"question":"Q"}]`))

	v, err := s.Get(ctx, "flashcards")
	require.NoError(t, err)
	assert.Equal(t, `[{"question":"Q"}]`, v)
}

func TestNewStoreFailsWithoutServer(t *testing.T) {
	if testing.Short() {
		t.Skip("dials the network")
	}

	_, err := NewStore(context.Background(), Options{Addr: "127.0.0.1:1"})
	require.Error(t, err)
}
