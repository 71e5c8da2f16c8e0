package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"
)

// Postgres stores one collection ("kind") as JSONB documents in the shared
// clinic_records table. See db.EnsureSchema for the table definition.
type Postgres[T Record] struct {
	db   *sql.DB
	kind string
}

// NewPostgres creates a repository for the given collection kind
func NewPostgres[T Record](db *sql.DB, kind string) *Postgres[T] {
	return &Postgres[T]{db: db, kind: kind}
}

func (p *Postgres[T]) List(ctx context.Context) ([]T, error) {
	query := `
		SELECT body
		FROM clinic_records
		WHERE kind = $1
		ORDER BY seq ASC
	`

	rows, err := p.db.QueryContext(ctx, query, p.kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", p.kind, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", p.kind, err)
		}
		var item T
		if err := json.Unmarshal(body, &item); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", p.kind, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", p.kind, err)
	}

	return items, nil
}

func (p *Postgres[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	query := `SELECT body FROM clinic_records WHERE kind = $1 AND id = $2`

	var body []byte
	err := p.db.QueryRowContext(ctx, query, p.kind, id).Scan(&body)
	if err == sql.ErrNoRows {
		return item, ErrNotFound
	}
	if err != nil {
		return item, fmt.Errorf("failed to get %s: %w", p.kind, err)
	}

	if err := json.Unmarshal(body, &item); err != nil {
		return item, fmt.Errorf("failed to decode %s: %w", p.kind, err)
	}
	return item, nil
}

func (p *Postgres[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	id := item.RecordID()
	if id == "" {
		return zero, ErrMissingID
	}

	body, err := json.Marshal(item)
	if err != nil {
		return zero, fmt.Errorf("failed to encode %s: %w", p.kind, err)
	}

	query := `
		INSERT INTO clinic_records (kind, id, body, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (kind, id) DO NOTHING
	`

	result, err := p.db.ExecContext(ctx, query, p.kind, id, body)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return zero, ErrDuplicate
		}
		return zero, fmt.Errorf("failed to create %s: %w", p.kind, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return zero, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return zero, ErrDuplicate
	}

	return clone(item)
}

func (p *Postgres[T]) Update(ctx context.Context, id string, mutate func(*T) error) (T, error) {
	var zero T

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var body []byte
	err = tx.QueryRowContext(ctx,
		`SELECT body FROM clinic_records WHERE kind = $1 AND id = $2 FOR UPDATE`,
		p.kind, id,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("failed to lock %s: %w", p.kind, err)
	}

	var working T
	if err := json.Unmarshal(body, &working); err != nil {
		return zero, fmt.Errorf("failed to decode %s: %w", p.kind, err)
	}
	if err := mutate(&working); err != nil {
		return zero, err
	}
	if working.RecordID() != id {
		return zero, ErrIDChanged
	}

	updated, err := json.Marshal(working)
	if err != nil {
		return zero, fmt.Errorf("failed to encode %s: %w", p.kind, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE clinic_records SET body = $3, updated_at = NOW() WHERE kind = $1 AND id = $2`,
		p.kind, id, updated,
	)
	if err != nil {
		return zero, fmt.Errorf("failed to update %s: %w", p.kind, err)
	}

	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return working, nil
}

// Lock holds a transaction-scoped advisory lock on kind+key, so every
// replica sharing the database serializes on it. Release rolls the
// transaction back, which frees the lock.
func (p *Postgres[T]) Lock(ctx context.Context, key string) (func(), error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin lock transaction: %w", err)
	}
	name := p.kind + ":" + key
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, name); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to lock %s: %w", name, err)
	}
	return func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("Warning: failed to release lock %s: %v", name, err)
		}
	}, nil
}
