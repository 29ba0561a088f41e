// Package engine contains the seven rule engines that turn a state
// snapshot into candidate nudges. Engines are pure: they read the snapshot
// and the shared Context and never touch storage.
package engine

import (
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/priority"
	"github.com/alexanderramin/smartprompts/internal/promptutil"
)

const displayDate = "Jan 2, 2006"

// Context is the state shared by every engine during one pass.
type Context struct {
	Now          time.Time
	Stage        domain.UserStage
	Tracker      domain.TrackerStats
	LastLoginAt  *time.Time
	History      map[string]domain.InteractionRecord
	CanCelebrate bool
}

func (c Context) record(id string) domain.InteractionRecord {
	if rec, ok := c.History[id]; ok {
		return rec
	}
	return domain.InteractionRecord{NudgeID: id}
}

// Evaluator runs the rule engines against a shared catalog and scorer.
type Evaluator struct {
	catalog *catalog.Catalog
	scorer  *priority.Scorer
	logger  *slog.Logger
}

// NewEvaluator creates an Evaluator. A nil logger discards.
func NewEvaluator(cat *catalog.Catalog, scorer *priority.Scorer, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Evaluator{catalog: cat, scorer: scorer, logger: logger}
}

// nudgeDraft is what an engine knows about one nudge before the catalog
// template and priority are applied.
type nudgeDraft struct {
	promptID string
	keys     promptutil.IDKeys
	vals     promptutil.Values
	facts    map[string]any
	// fixed, when set, replaces the computed priority.
	fixed *float64
}

func fixedPriority(v float64) *float64 {
	return &v
}

// build instantiates the template for s. Placeholders without a value stay
// literal in the output and are logged.
func (e *Evaluator) build(ctx Context, s nudgeDraft) domain.Nudge {
	def := e.catalog.MustGet(s.promptID)
	id := promptutil.GenerateNudgeID(def.ID, s.keys)

	var missing []string
	interp := func(tmpl string) string {
		out, m := promptutil.Interpolate(tmpl, s.vals)
		missing = append(missing, m...)
		return out
	}

	n := domain.Nudge{
		ID:          id,
		PromptID:    def.ID,
		Engine:      def.Engine,
		Type:        def.Type,
		Urgency:     def.Urgency,
		Title:       interp(def.Title),
		Message:     interp(def.Message),
		Dismissible: def.Dismissible,
		Snoozeable:  def.Snoozeable,
		Context:     s.facts,
	}
	if n.Context == nil {
		n.Context = map[string]any{}
	}
	n.Actions = make([]domain.Action, 0, len(def.Actions))
	for _, a := range def.Actions {
		n.Actions = append(n.Actions, domain.Action{
			Label:   a.Label,
			Type:    a.Type,
			Href:    interp(a.Href),
			Context: n.Context,
		})
	}
	if len(missing) > 0 {
		e.logger.Warn("unresolved prompt placeholders", "prompt_id", def.ID, "nudge_id", id, "missing", missing)
	}

	if s.fixed != nil {
		n.Priority = *s.fixed
	} else {
		n.Priority = e.scorer.Calculate(priority.Input{
			Urgency: def.Urgency,
			Engine:  def.Engine,
			Stage:   ctx.Stage,
			Tracker: ctx.Tracker,
			Record:  ctx.record(id),
			Now:     ctx.Now,
		})
	}
	return n
}

// byPriority sorts nudges by priority, highest first, breaking ties by id.
func byPriority(nudges []domain.Nudge) {
	sort.SliceStable(nudges, func(i, j int) bool {
		if nudges[i].Priority != nudges[j].Priority {
			return nudges[i].Priority > nudges[j].Priority
		}
		return nudges[i].ID < nudges[j].ID
	})
}

// byDaysRemaining sorts nudges with the most time-sensitive first.
func byDaysRemaining(nudges []domain.Nudge) {
	sort.SliceStable(nudges, func(i, j int) bool {
		di, _ := nudges[i].Context["daysRemaining"].(int)
		dj, _ := nudges[j].Context["daysRemaining"].(int)
		if di != dj {
			return di < dj
		}
		return nudges[i].ID < nudges[j].ID
	})
}

func formatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(displayDate)
}
