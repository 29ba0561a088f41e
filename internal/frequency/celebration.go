package frequency

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/google/uuid"
)

// CelebrationBatch is a set of queued celebrations shown together.
type CelebrationBatch struct {
	ID        string
	Items     []domain.Nudge
	CreatedAt time.Time
}

// CanShowCelebration reports whether the global celebration cooldown has
// elapsed. An unreadable store never blocks a celebration.
func (m *Manager) CanShowCelebration(ctx context.Context, now time.Time) bool {
	raw, err := m.store.Get(ctx, lastCelebrationKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logger.WarnContext(ctx, "reading celebration state", "error", err)
		}
		return true
	}
	var last time.Time
	if err := last.UnmarshalText(raw); err != nil {
		return true
	}
	return now.Sub(last) >= m.cfg.CelebrationCooldown
}

// MarkCelebrationShown starts the celebration cooldown at now.
func (m *Manager) MarkCelebrationShown(ctx context.Context, now time.Time) error {
	raw, err := now.MarshalText()
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, lastCelebrationKey, raw); err != nil {
		m.logger.WarnContext(ctx, "writing celebration state", "error", err)
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// PendingCelebrations returns the queued celebrations, oldest first.
func (m *Manager) PendingCelebrations(ctx context.Context) []domain.Nudge {
	raw, err := m.store.Get(ctx, celebrationQueueKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logger.WarnContext(ctx, "reading celebration queue", "error", err)
		}
		return nil
	}
	var queued []domain.Nudge
	if err := json.Unmarshal(raw, &queued); err != nil {
		m.logger.WarnContext(ctx, "decoding celebration queue", "error", err)
		return nil
	}
	return queued
}

// QueueCelebration appends a celebration for later combined display. A
// nudge already queued under the same id is replaced in place; when the
// queue is full the oldest entry is dropped.
func (m *Manager) QueueCelebration(ctx context.Context, n domain.Nudge) error {
	queued := m.PendingCelebrations(ctx)

	replaced := false
	for i := range queued {
		if queued[i].ID == n.ID {
			queued[i] = n
			replaced = true
			break
		}
	}
	if !replaced {
		queued = append(queued, n)
	}
	if limit := m.cfg.CelebrationQueueSize; limit > 0 && len(queued) > limit {
		queued = queued[len(queued)-limit:]
	}
	return m.writeQueue(ctx, queued)
}

// DrainCelebrations returns everything queued as one batch and empties the
// queue. The batch is nil when nothing is queued.
func (m *Manager) DrainCelebrations(ctx context.Context, now time.Time) (*CelebrationBatch, error) {
	queued := m.PendingCelebrations(ctx)
	if len(queued) == 0 {
		return nil, nil
	}
	if err := m.store.Remove(ctx, celebrationQueueKey); err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return &CelebrationBatch{
		ID:        uuid.New().String(),
		Items:     queued,
		CreatedAt: now,
	}, nil
}

func (m *Manager) writeQueue(ctx context.Context, queued []domain.Nudge) error {
	raw, err := json.Marshal(queued)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, celebrationQueueKey, raw); err != nil {
		m.logger.WarnContext(ctx, "writing celebration queue", "error", err)
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
