package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/frequency"
)

var ErrNotFound = errors.New("not found")

type PriorityProfileRepo interface {
	Get(ctx context.Context) (*domain.PriorityProfile, error)
	Upsert(ctx context.Context, p *domain.PriorityProfile) error
}

var (
	_ frequency.BatchStore = (*SQLitePromptStore)(nil)
	_ PriorityProfileRepo  = (*SQLitePriorityProfileRepo)(nil)
)
