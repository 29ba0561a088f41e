package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/smartprompts/internal/app"
	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/frequency"
)

type interactionService struct {
	freq     *frequency.Manager
	observer UseCaseObserver
	clock    func() time.Time
}

func NewInteractionService(freq *frequency.Manager, observers ...UseCaseObserver) InteractionService {
	return &interactionService{
		freq:     freq,
		observer: useCaseObserverOrNoop(observers),
		clock:    time.Now,
	}
}

func (s *interactionService) at(now *time.Time) time.Time {
	if now != nil {
		return *now
	}
	return s.clock()
}

func (s *interactionService) Dismiss(ctx context.Context, req app.DismissRequest) (resp *app.DismissResponse, err error) {
	fields := map[string]any{"nudge_id": req.NudgeID, "forever": req.Forever}
	defer observe(ctx, s.observer, "dismiss", time.Now().UTC(), fields, &err)

	if req.NudgeID == "" {
		return nil, ErrEmptyNudgeID
	}

	if req.Forever {
		rec, err := s.freq.PermanentlyDismiss(ctx, req.NudgeID)
		if err != nil {
			return nil, fmt.Errorf("dismissing %s permanently: %w", req.NudgeID, err)
		}
		return &app.DismissResponse{Record: rec}, nil
	}

	res, err := s.freq.Dismiss(ctx, req.NudgeID, s.at(req.Now))
	if err != nil {
		return nil, fmt.Errorf("dismissing %s: %w", req.NudgeID, err)
	}
	fields["dismiss_count"] = res.Record.DismissCount
	return &app.DismissResponse{Record: res.Record, SuggestPermanent: res.SuggestPermanent}, nil
}

func (s *interactionService) Snooze(ctx context.Context, req app.SnoozeRequest) (rec *domain.InteractionRecord, err error) {
	fields := map[string]any{"nudge_id": req.NudgeID, "days": req.Days}
	defer observe(ctx, s.observer, "snooze", time.Now().UTC(), fields, &err)

	if req.NudgeID == "" {
		return nil, ErrEmptyNudgeID
	}
	if req.Days <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSnoozeDays, req.Days)
	}
	r, err := s.freq.Snooze(ctx, req.NudgeID, req.Days, s.at(req.Now))
	if err != nil {
		return nil, fmt.Errorf("snoozing %s: %w", req.NudgeID, err)
	}
	return &r, nil
}

func (s *interactionService) Reset(ctx context.Context, nudgeID string) (err error) {
	defer observe(ctx, s.observer, "reset", time.Now().UTC(), map[string]any{"nudge_id": nudgeID}, &err)

	if nudgeID == "" {
		return ErrEmptyNudgeID
	}
	if err := s.freq.Reset(ctx, nudgeID); err != nil {
		return fmt.Errorf("resetting %s: %w", nudgeID, err)
	}
	return nil
}

func (s *interactionService) History(ctx context.Context) []domain.InteractionRecord {
	return s.freq.Records(ctx)
}

func (s *interactionService) PendingCelebrations(ctx context.Context) []domain.Nudge {
	return s.freq.PendingCelebrations(ctx)
}

func (s *interactionService) DrainCelebrations(ctx context.Context, now time.Time) (batch *app.CelebrationBatch, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "drain-celebrations", time.Now().UTC(), fields, &err)

	b, err := s.freq.DrainCelebrations(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("draining celebrations: %w", err)
	}
	if b == nil {
		fields["count"] = 0
		return nil, nil
	}
	fields["batch_id"] = b.ID
	fields["count"] = len(b.Items)
	return &app.CelebrationBatch{ID: b.ID, CreatedAt: b.CreatedAt, Items: b.Items}, nil
}
