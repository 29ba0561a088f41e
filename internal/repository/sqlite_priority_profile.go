package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/smartprompts/internal/db"
	"github.com/alexanderramin/smartprompts/internal/domain"
)

// SQLitePriorityProfileRepo implements PriorityProfileRepo using a SQLite database.
type SQLitePriorityProfileRepo struct {
	db db.DBTX
}

func NewSQLitePriorityProfileRepo(conn db.DBTX) *SQLitePriorityProfileRepo {
	return &SQLitePriorityProfileRepo{db: conn}
}

func (r *SQLitePriorityProfileRepo) Get(ctx context.Context) (*domain.PriorityProfile, error) {
	query := `SELECT id, weight_urgency, weight_relevance, weight_engagement, weight_recency
		FROM priority_profile WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, domain.DefaultProfileID)

	var p domain.PriorityProfile
	err := row.Scan(
		&p.ID,
		&p.WeightUrgency,
		&p.WeightRelevance,
		&p.WeightEngagement,
		&p.WeightRecency,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("priority profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning priority profile: %w", err)
	}
	return &p, nil
}

func (r *SQLitePriorityProfileRepo) Upsert(ctx context.Context, p *domain.PriorityProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = domain.DefaultProfileID
	}
	query := `INSERT OR REPLACE INTO priority_profile (id, weight_urgency, weight_relevance,
		weight_engagement, weight_recency) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.WeightUrgency,
		p.WeightRelevance,
		p.WeightEngagement,
		p.WeightRecency,
	)
	if err != nil {
		return fmt.Errorf("upserting priority profile: %w", err)
	}
	return nil
}
