package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // prepended to every key
}

// Store is a key-value store on Redis. Values never expire.
type Store struct {
	rdb    *redis.Client
	prefix string
}

// NewStore connects to Redis and checks the connection.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Store{rdb: rdb, prefix: opts.Prefix}, nil
}

// Get returns the value of key, or entities.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", entities.ErrKeyNotFound
		}
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return v, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.rdb.Close()
}
