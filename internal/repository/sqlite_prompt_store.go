package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/smartprompts/internal/db"
	"github.com/alexanderramin/smartprompts/internal/frequency"
)

// SQLitePromptStore persists the frequency manager's key-value state in the
// prompt_store table.
type SQLitePromptStore struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLitePromptStore creates a store. uow may be nil, in which case
// SetMany writes keys one by one without a transaction.
func NewSQLitePromptStore(conn db.DBTX, uow db.UnitOfWork) *SQLitePromptStore {
	return &SQLitePromptStore{db: conn, uow: uow}
}

func (s *SQLitePromptStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM prompt_store WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("prompt store key %q: %w", key, frequency.ErrNotFound)
		}
		return nil, fmt.Errorf("reading prompt store key %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLitePromptStore) Set(ctx context.Context, key string, value []byte) error {
	return setKey(ctx, s.db, key, value)
}

func setKey(ctx context.Context, conn db.DBTX, key string, value []byte) error {
	query := `INSERT INTO prompt_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := conn.ExecContext(ctx, query, key, value, nowUTC()); err != nil {
		return fmt.Errorf("writing prompt store key %q: %w", key, err)
	}
	return nil
}

func (s *SQLitePromptStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM prompt_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("removing prompt store key %q: %w", key, err)
	}
	return nil
}

func (s *SQLitePromptStore) List(ctx context.Context, prefix string) (map[string][]byte, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM prompt_store WHERE key LIKE ? ESCAPE '\' ORDER BY key`, likePrefix(prefix))
	if err != nil {
		return nil, fmt.Errorf("listing prompt store prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning prompt store row: %w", err)
		}
		out[key] = value
	}
	return out, rows.Err()
}

// SetMany writes every value in one transaction. Either all keys are
// written or none are.
func (s *SQLitePromptStore) SetMany(ctx context.Context, values map[string][]byte) error {
	if s.uow == nil {
		for key, value := range values {
			if err := setKey(ctx, s.db, key, value); err != nil {
				return err
			}
		}
		return nil
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		for key, value := range values {
			if err := setKey(ctx, tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}
