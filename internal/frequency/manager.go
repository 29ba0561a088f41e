// Package frequency decides which nudges may be shown right now. It keeps
// one interaction record per nudge id (shows, dismissals, snoozes and the
// permanent opt-out) in an injected key-value Store, and degrades to
// "always show" whenever that store misbehaves.
package frequency

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/priority"
)

const (
	recordPrefix        = "interaction:"
	lastCelebrationKey  = "celebration:last_shown"
	celebrationQueueKey = "celebration:queue"
)

// Config holds the manager's tunables.
type Config struct {
	DismissCooldown           time.Duration
	CelebrationCooldown       time.Duration
	PermanentDismissThreshold int
	DashboardLimit            int
	InlineLimit               int
	CelebrationQueueSize      int
}

func DefaultConfig() Config {
	return Config{
		DismissCooldown:           24 * time.Hour,
		CelebrationCooldown:       6 * time.Hour,
		PermanentDismissThreshold: 5,
		DashboardLimit:            5,
		InlineLimit:               2,
		CelebrationQueueSize:      10,
	}
}

// Manager applies dismissal, snooze and cooldown rules.
type Manager struct {
	store  Store
	cfg    Config
	logger *slog.Logger
}

// NewManager creates a Manager. A nil logger discards.
func NewManager(store Store, cfg Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{store: store, cfg: cfg, logger: logger}
}

func (m *Manager) Config() Config {
	return m.cfg
}

// DismissResult is the outcome of a dismissal.
type DismissResult struct {
	Record domain.InteractionRecord
	// SuggestPermanent is set once the dismiss count reaches the threshold,
	// so the UI can offer "don't show again".
	SuggestPermanent bool
}

// Record returns the interaction record for id. A missing or unreadable
// record is reported as a zero record.
func (m *Manager) Record(ctx context.Context, id string) domain.InteractionRecord {
	raw, err := m.store.Get(ctx, recordPrefix+id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logger.WarnContext(ctx, "reading interaction record", "nudge_id", id, "error", err)
		}
		return domain.InteractionRecord{NudgeID: id}
	}
	var rec domain.InteractionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		m.logger.WarnContext(ctx, "decoding interaction record", "nudge_id", id, "error", err)
		return domain.InteractionRecord{NudgeID: id}
	}
	rec.NudgeID = id
	return rec
}

// History loads every stored interaction record keyed by nudge id. On store
// failure it returns an empty history.
func (m *Manager) History(ctx context.Context) map[string]domain.InteractionRecord {
	raw, err := m.store.List(ctx, recordPrefix)
	if err != nil {
		m.logger.WarnContext(ctx, "listing interaction records", "error", err)
		return map[string]domain.InteractionRecord{}
	}
	out := make(map[string]domain.InteractionRecord, len(raw))
	for key, v := range raw {
		id := strings.TrimPrefix(key, recordPrefix)
		var rec domain.InteractionRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			m.logger.WarnContext(ctx, "decoding interaction record", "nudge_id", id, "error", err)
			continue
		}
		rec.NudgeID = id
		out[id] = rec
	}
	return out
}

// Records returns History as a slice ordered by nudge id.
func (m *Manager) Records(ctx context.Context) []domain.InteractionRecord {
	h := m.History(ctx)
	out := make([]domain.InteractionRecord, 0, len(h))
	for _, rec := range h {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NudgeID < out[j].NudgeID })
	return out
}

func (m *Manager) save(ctx context.Context, rec domain.InteractionRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, recordPrefix+rec.NudgeID, raw); err != nil {
		m.logger.WarnContext(ctx, "writing interaction record", "nudge_id", rec.NudgeID, "error", err)
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Dismiss counts a dismissal and suppresses the nudge for the cooldown.
func (m *Manager) Dismiss(ctx context.Context, id string, now time.Time) (DismissResult, error) {
	rec := m.Record(ctx, id)
	rec.DismissCount++
	rec.LastDismissedAt = &now
	err := m.save(ctx, rec)
	return DismissResult{
		Record:           rec,
		SuggestPermanent: m.cfg.PermanentDismissThreshold > 0 && rec.DismissCount >= m.cfg.PermanentDismissThreshold,
	}, err
}

// Snooze hides the nudge until now + days.
func (m *Manager) Snooze(ctx context.Context, id string, days int, now time.Time) (domain.InteractionRecord, error) {
	rec := m.Record(ctx, id)
	until := now.AddDate(0, 0, days)
	rec.SnoozedUntil = &until
	return rec, m.save(ctx, rec)
}

// PermanentlyDismiss hides the nudge for good.
func (m *Manager) PermanentlyDismiss(ctx context.Context, id string) (domain.InteractionRecord, error) {
	rec := m.Record(ctx, id)
	rec.PermanentlyDismiss = true
	return rec, m.save(ctx, rec)
}

// Reset forgets everything about the nudge, including a permanent opt-out.
func (m *Manager) Reset(ctx context.Context, id string) error {
	if err := m.store.Remove(ctx, recordPrefix+id); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Blocked reports whether rec currently prevents display, and why.
func (m *Manager) Blocked(rec domain.InteractionRecord, now time.Time) (bool, string) {
	switch {
	case rec.PermanentlyDismiss:
		return true, "permanently_dismissed"
	case rec.SnoozedUntil != nil && now.Before(*rec.SnoozedUntil):
		return true, "snoozed"
	case rec.LastDismissedAt != nil && now.Sub(*rec.LastDismissedAt) < m.cfg.DismissCooldown:
		return true, "dismiss_cooldown"
	}
	return false, ""
}

// Suppressed is a nudge removed by Filter.
type Suppressed struct {
	ID     string
	Reason string
}

// Filter drops nudges that are permanently dismissed, snoozed or still in
// their dismiss cooldown, using the supplied history.
func (m *Manager) Filter(nudges []domain.Nudge, history map[string]domain.InteractionRecord, now time.Time) ([]domain.Nudge, []Suppressed) {
	kept := make([]domain.Nudge, 0, len(nudges))
	var dropped []Suppressed
	for _, n := range nudges {
		if blocked, reason := m.Blocked(history[n.ID], now); blocked {
			dropped = append(dropped, Suppressed{ID: n.ID, Reason: reason})
			continue
		}
		kept = append(kept, n)
	}
	return kept, dropped
}

// FilterByFrequency loads history from the store and applies Filter.
func (m *Manager) FilterByFrequency(ctx context.Context, nudges []domain.Nudge, now time.Time) []domain.Nudge {
	kept, _ := m.Filter(nudges, m.History(ctx), now)
	return kept
}

// ApplyDashboardLimits keeps the highest-priority nudges for the dashboard.
func (m *Manager) ApplyDashboardLimits(nudges []domain.Nudge) []domain.Nudge {
	return priority.TopNudges(nudges, m.cfg.DashboardLimit)
}

// ApplyInlineLimits keeps the highest-priority nudges for an inline widget.
func (m *Manager) ApplyInlineLimits(nudges []domain.Nudge) []domain.Nudge {
	return priority.TopNudges(nudges, m.cfg.InlineLimit)
}

// ApplyLimits dispatches on surface.
func (m *Manager) ApplyLimits(nudges []domain.Nudge, surface domain.Surface) []domain.Nudge {
	if surface == domain.SurfaceInline {
		return m.ApplyInlineLimits(nudges)
	}
	return m.ApplyDashboardLimits(nudges)
}

// RecordShown stamps LastShownAt on every id. Stores that support batches
// are written in one call.
func (m *Manager) RecordShown(ctx context.Context, ids []string, now time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	values := make(map[string][]byte, len(ids))
	for _, id := range ids {
		rec := m.Record(ctx, id)
		rec.LastShownAt = &now
		rec.ShowCount++
		raw, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		values[recordPrefix+id] = raw
	}

	if bs, ok := m.store.(BatchStore); ok {
		if err := bs.SetMany(ctx, values); err != nil {
			m.logger.WarnContext(ctx, "recording shown nudges", "count", len(ids), "error", err)
			return errors.Join(ErrStoreUnavailable, err)
		}
		return nil
	}

	var errs []error
	for _, id := range ids {
		if err := m.store.Set(ctx, recordPrefix+id, values[recordPrefix+id]); err != nil {
			m.logger.WarnContext(ctx, "recording shown nudge", "nudge_id", id, "error", err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrStoreUnavailable}, errs...)...)
	}
	return nil
}
