package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/smartprompts/internal/db"
)

// FailOnKeyUoW is a UnitOfWork whose transaction rejects any write that
// targets Key. It lets batch writes to the prompt store be checked for
// all-or-nothing behavior.
type FailOnKeyUoW struct {
	DB  *sql.DB
	Key string
	Err error
}

func (u *FailOnKeyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if fnErr := fn(ctx, &failOnKey{DBTX: tx, key: u.Key, err: u.Err}); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnKey struct {
	db.DBTX
	key string
	err error
}

func (f *failOnKey) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	for _, a := range args {
		if s, ok := a.(string); ok && s == f.key {
			return nil, f.err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
