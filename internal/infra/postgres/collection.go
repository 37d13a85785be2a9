package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/repository"
)

// ChangesChannel is the NOTIFY channel written on every document change. The payload is the collection name.
const ChangesChannel = "collection_changes"

// EnsureSchema creates the documents table if it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			collection TEXT NOT NULL,
			data JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS documents_collection_idx ON documents (collection, created_at);
	`
	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

var _ repository.RemoteCollection = (*Collection)(nil)

// Collection stores loosely typed documents grouped by collection name in one JSONB table.
type Collection struct {
	pool *pgxpool.Pool
	tx   *Transactor
}

// NewCollection creates a Collection.
func NewCollection(pool *pgxpool.Pool, tx *Transactor) *Collection {
	return &Collection{pool: pool, tx: tx}
}

// ListAll returns every document of collection in insertion order.
func (c *Collection) ListAll(ctx context.Context, collection string) ([]entities.Document, error) {
	query := `
		SELECT id, data
		FROM documents
		WHERE collection = $1
		ORDER BY created_at, id
	`

	rows, err := c.pool.Query(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []entities.Document
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}

		fields := make(map[string]any)
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", id, err)
		}
		docs = append(docs, entities.Document{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

// Add inserts a document and returns its generated ID.
func (c *Collection) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	id := uuid.NewString()
	err = c.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO documents (id, collection, data)
			VALUES ($1, $2, $3::jsonb)
		`
		if _, err := tx.Exec(ctx, query, id, collection, string(raw)); err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		return notifyChange(ctx, tx, collection)
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

// Update merges fields into the document id. Keys not in fields are kept; keys set to nil are removed.
func (c *Collection) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	return c.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			UPDATE documents
			SET data = jsonb_strip_nulls(data || $3::jsonb),
			    updated_at = now()
			WHERE collection = $1 AND id = $2
		`
		result, err := tx.Exec(ctx, query, collection, id, string(raw))
		if err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if result.RowsAffected() == 0 {
			return repository.ErrDocumentNotFound
		}
		return notifyChange(ctx, tx, collection)
	})
}

// Count returns the number of documents in collection.
func (c *Collection) Count(ctx context.Context, collection string) (int, error) {
	var n int
	err := c.pool.QueryRow(ctx, `SELECT count(*) FROM documents WHERE collection = $1`, collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// Subscribe listens for changes of collection on a dedicated connection and calls fn with
// the document count at start and after every change. It returns when ctx is done.
func (c *Collection) Subscribe(ctx context.Context, collection string, fn func(count int)) error {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listener: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+ChangesChannel); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer func() {
		_, _ = conn.Exec(context.WithoutCancel(ctx), "UNLISTEN "+ChangesChannel)
	}()

	n, err := c.Count(ctx, collection)
	if err != nil {
		return err
	}
	fn(n)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("wait for notification: %w", err)
		}
		if notification.Payload != collection {
			continue
		}

		n, err := c.Count(ctx, collection)
		if err != nil {
			return err
		}
		fn(n)
	}
}

func notifyChange(ctx context.Context, tx pgx.Tx, collection string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_notify($1, $2)`, ChangesChannel, collection); err != nil {
		return fmt.Errorf("notify change: %w", err)
	}
	return nil
}
