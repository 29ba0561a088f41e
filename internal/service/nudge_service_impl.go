package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/smartprompts/internal/app"
	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/engine"
	"github.com/alexanderramin/smartprompts/internal/frequency"
	"github.com/alexanderramin/smartprompts/internal/priority"
	"github.com/alexanderramin/smartprompts/internal/promptutil"
	"github.com/alexanderramin/smartprompts/internal/repository"
	"github.com/google/uuid"
)

// NudgeServiceOptions carries the optional collaborators of the orchestrator.
type NudgeServiceOptions struct {
	// Location is the calendar zone for "today" and "tomorrow". Defaults to
	// time.Local.
	Location *time.Location
	// Model supplies priority sub-scores. Defaults to priority.DefaultModel.
	Model  priority.Model
	Logger *slog.Logger
}

type nudgeService struct {
	catalog  *catalog.Catalog
	freq     *frequency.Manager
	profiles repository.PriorityProfileRepo
	loc      *time.Location
	model    priority.Model
	logger   *slog.Logger
	observer UseCaseObserver

	rules func(*engine.Evaluator) []engine.Rule
	clock func() time.Time
}

// NewNudgeService wires the orchestrator. profiles may be nil, in which case
// the default weights are used.
func NewNudgeService(
	cat *catalog.Catalog,
	freq *frequency.Manager,
	profiles repository.PriorityProfileRepo,
	opts NudgeServiceOptions,
	observers ...UseCaseObserver,
) NudgeService {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Model == nil {
		opts.Model = priority.DefaultModel()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &nudgeService{
		catalog:  cat,
		freq:     freq,
		profiles: profiles,
		loc:      opts.Location,
		model:    opts.Model,
		logger:   opts.Logger,
		observer: useCaseObserverOrNoop(observers),
		rules:    (*engine.Evaluator).Rules,
		clock:    time.Now,
	}
}

// Evaluate runs one pass of the pipeline: infer the stage, run every engine,
// drop duplicates and anything the frequency rules block, hold back surplus
// celebrations, then cut to the surface limit. Unless DryRun is set, the
// shown nudges are recorded.
func (s *nudgeService) Evaluate(ctx context.Context, req app.EvaluateRequest) (resp *app.EvaluateResponse, err error) {
	startedAt := time.Now().UTC()
	runID := uuid.NewString()
	fields := map[string]any{
		"run_id":  runID,
		"surface": string(req.Surface),
		"dry_run": req.DryRun,
	}
	defer observe(ctx, s.observer, "evaluate", startedAt, fields, &err)

	surface := req.Surface
	if surface == "" {
		surface = domain.SurfaceDashboard
	}
	if surface != domain.SurfaceDashboard && surface != domain.SurfaceInline {
		return nil, &app.EvaluateError{Code: app.ErrInvalidSurface, Message: fmt.Sprintf("unknown surface %q", req.Surface)}
	}

	now := s.clock()
	if req.Now != nil {
		now = *req.Now
	}
	now = now.In(s.loc)

	snap := req.Snapshot
	stage := promptutil.InferUserStage(snap.Programs)
	history := s.freq.History(ctx)
	canCelebrate := s.freq.CanShowCelebration(ctx, now)

	scorer := priority.NewScorer(s.loadWeights(ctx), s.model)
	eval := engine.NewEvaluator(s.catalog, scorer, s.logger)
	ectx := engine.Context{
		Now:          now,
		Stage:        stage,
		Tracker:      snap.Tracker,
		LastLoginAt:  snap.LastLoginAt,
		History:      history,
		CanCelebrate: canCelebrate,
	}

	var candidates []domain.Nudge
	var failures []app.EngineFailure
	for _, rule := range s.rules(eval) {
		nudges, ruleErr := runRule(rule, snap, ectx)
		if ruleErr != nil {
			s.logger.ErrorContext(ctx, "engine failed", "run_id", runID, "engine", string(rule.ID), "error", ruleErr)
			failures = append(failures, app.EngineFailure{Engine: rule.ID, Message: ruleErr.Error()})
			continue
		}
		candidates = append(candidates, nudges...)
	}
	candidates = dedupeByID(candidates)

	kept, dropped := s.freq.Filter(candidates, history, now)
	if req.ProgramID != "" {
		kept = scopeToProgram(kept, req.ProgramID)
	}
	kept, queued := holdBackCelebrations(kept)
	shown := s.freq.ApplyLimits(kept, surface)
	queued = append(queued, celebrationsCut(kept, shown)...)

	if !req.DryRun {
		s.persist(ctx, shown, queued, now)
	}

	fields["stage"] = string(stage)
	fields["candidates"] = len(candidates)
	fields["shown"] = len(shown)
	fields["suppressed"] = len(dropped)
	fields["queued"] = len(queued)
	fields["engine_failures"] = len(failures)

	resp = &app.EvaluateResponse{
		RunID:       runID,
		GeneratedAt: now,
		Stage:       stage,
		Surface:     surface,
		Nudges:      shown,
		Queued:      queued,
		Failures:    failures,
	}
	for _, d := range dropped {
		resp.Suppressed = append(resp.Suppressed, app.SuppressedNudge{ID: d.ID, Reason: d.Reason})
	}
	return resp, nil
}

// persist records shows and queued celebrations. Store failures are logged
// by the manager and never fail the evaluation.
func (s *nudgeService) persist(ctx context.Context, shown, queued []domain.Nudge, now time.Time) {
	ids := make([]string, 0, len(shown))
	celebrated := false
	for _, n := range shown {
		ids = append(ids, n.ID)
		if n.IsCelebration() {
			celebrated = true
		}
	}
	_ = s.freq.RecordShown(ctx, ids, now)
	if celebrated {
		_ = s.freq.MarkCelebrationShown(ctx, now)
	}
	for _, n := range queued {
		_ = s.freq.QueueCelebration(ctx, n)
	}
}

func (s *nudgeService) loadWeights(ctx context.Context) priority.Weights {
	if s.profiles == nil {
		return priority.DefaultWeights()
	}
	p, err := s.profiles.Get(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.WarnContext(ctx, "loading priority profile", "error", err)
		}
		return priority.DefaultWeights()
	}
	return priority.WeightsFromProfile(p)
}

// runRule isolates one engine so a panic costs only that engine's output.
func runRule(rule engine.Rule, snap domain.StateSnapshot, ctx engine.Context) (nudges []domain.Nudge, err error) {
	defer func() {
		if p := recover(); p != nil {
			nudges = nil
			err = fmt.Errorf("engine %s panicked: %v", rule.ID, p)
		}
	}()
	return rule.Run(snap, ctx), nil
}

// dedupeByID keeps the first nudge for each id.
func dedupeByID(nudges []domain.Nudge) []domain.Nudge {
	seen := make(map[string]bool, len(nudges))
	out := make([]domain.Nudge, 0, len(nudges))
	for _, n := range nudges {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		out = append(out, n)
	}
	return out
}

func scopeToProgram(nudges []domain.Nudge, programID string) []domain.Nudge {
	out := make([]domain.Nudge, 0, len(nudges))
	for _, n := range nudges {
		if n.ContextString("programId") == programID {
			out = append(out, n)
		}
	}
	return out
}

// holdBackCelebrations keeps acceptances and the single best remaining
// celebration. The other celebrations are returned for the queue.
func holdBackCelebrations(nudges []domain.Nudge) (kept, queued []domain.Nudge) {
	best := -1
	for i, n := range nudges {
		if !n.IsCelebration() || n.PromptID == catalog.Acceptance {
			continue
		}
		if best < 0 || n.Priority > nudges[best].Priority ||
			(n.Priority == nudges[best].Priority && n.ID < nudges[best].ID) {
			best = i
		}
	}
	kept = make([]domain.Nudge, 0, len(nudges))
	for i, n := range nudges {
		if n.IsCelebration() && n.PromptID != catalog.Acceptance && i != best {
			queued = append(queued, n)
			continue
		}
		kept = append(kept, n)
	}
	return kept, queued
}

// celebrationsCut returns the celebrations in kept that the surface limit
// left out of shown.
func celebrationsCut(kept, shown []domain.Nudge) []domain.Nudge {
	onScreen := make(map[string]bool, len(shown))
	for _, n := range shown {
		onScreen[n.ID] = true
	}
	var cut []domain.Nudge
	for _, n := range kept {
		if n.IsCelebration() && !onScreen[n.ID] {
			cut = append(cut, n)
		}
	}
	return cut
}
