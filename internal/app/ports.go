package app

import (
	"context"
	"time"

	"github.com/alexanderramin/smartprompts/internal/domain"
)

type EvaluateUseCase interface {
	Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResponse, error)
}

type DismissUseCase interface {
	Dismiss(ctx context.Context, req DismissRequest) (*DismissResponse, error)
}

type SnoozeUseCase interface {
	Snooze(ctx context.Context, req SnoozeRequest) (*domain.InteractionRecord, error)
}

type DrainCelebrationsUseCase interface {
	DrainCelebrations(ctx context.Context, now time.Time) (*CelebrationBatch, error)
}
