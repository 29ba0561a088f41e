package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/smartprompts/internal/app"
	"github.com/alexanderramin/smartprompts/internal/domain"
)

var (
	ErrEmptyNudgeID      = errors.New("nudge id is required")
	ErrInvalidSnoozeDays = errors.New("snooze days must be positive")
)

type NudgeService interface {
	Evaluate(ctx context.Context, req app.EvaluateRequest) (*app.EvaluateResponse, error)
}

type InteractionService interface {
	Dismiss(ctx context.Context, req app.DismissRequest) (*app.DismissResponse, error)
	Snooze(ctx context.Context, req app.SnoozeRequest) (*domain.InteractionRecord, error)
	Reset(ctx context.Context, nudgeID string) error
	History(ctx context.Context) []domain.InteractionRecord
	PendingCelebrations(ctx context.Context) []domain.Nudge
	DrainCelebrations(ctx context.Context, now time.Time) (*app.CelebrationBatch, error)
}

type ProfileService interface {
	Get(ctx context.Context) (*domain.PriorityProfile, error)
	Update(ctx context.Context, p *domain.PriorityProfile) error
}

var (
	_ app.EvaluateUseCase          = NudgeService(nil)
	_ app.DismissUseCase           = InteractionService(nil)
	_ app.SnoozeUseCase            = InteractionService(nil)
	_ app.DrainCelebrationsUseCase = InteractionService(nil)
)
