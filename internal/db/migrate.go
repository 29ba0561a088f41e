package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS prompt_store (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS priority_profile (
		id                TEXT PRIMARY KEY DEFAULT 'default',
		weight_urgency    REAL NOT NULL DEFAULT 0.4 CHECK(weight_urgency >= 0),
		weight_relevance  REAL NOT NULL DEFAULT 0.3 CHECK(weight_relevance >= 0),
		weight_engagement REAL NOT NULL DEFAULT 0.2 CHECK(weight_engagement >= 0),
		weight_recency    REAL NOT NULL DEFAULT 0.1 CHECK(weight_recency >= 0)
	)`,

	// Seed default priority profile
	`INSERT OR IGNORE INTO priority_profile (id) VALUES ('default')`,

	`CREATE INDEX IF NOT EXISTS idx_prompt_store_updated ON prompt_store(updated_at)`,
}
