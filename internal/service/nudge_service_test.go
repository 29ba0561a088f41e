package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/smartprompts/internal/app"
	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/engine"
	"github.com/alexanderramin/smartprompts/internal/frequency"
	"github.com/alexanderramin/smartprompts/internal/repository"
	"github.com/alexanderramin/smartprompts/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServices(t *testing.T, store frequency.Store) (*nudgeService, InteractionService) {
	t.Helper()
	mgr := frequency.NewManager(store, frequency.DefaultConfig(), nil)
	svc := NewNudgeService(catalog.Default(), mgr, nil, NudgeServiceOptions{Location: time.UTC})
	return svc.(*nudgeService), NewInteractionService(mgr)
}

func evaluateAt(t *testing.T, svc NudgeService, snap domain.StateSnapshot, now time.Time, mutate ...func(*app.EvaluateRequest)) *app.EvaluateResponse {
	t.Helper()
	req := app.NewEvaluateRequest(snap)
	req.Now = &now
	for _, m := range mutate {
		m(&req)
	}
	resp, err := svc.Evaluate(context.Background(), req)
	require.NoError(t, err)
	return resp
}

func nudgeIDs(nudges []domain.Nudge) []string {
	ids := make([]string, len(nudges))
	for i, n := range nudges {
		ids[i] = n.ID
	}
	return ids
}

func busySnapshot(now time.Time) domain.StateSnapshot {
	return testutil.NewTestSnapshot(now,
		testutil.WithPrograms(
			testutil.NewTestProgram("Duke", testutil.WithProgramID("duke"),
				testutil.WithDeadline(now.AddDate(0, 0, 5)), testutil.WithRequiredLORs(2)),
			testutil.NewTestProgram("Rush", testutil.WithProgramID("rush"),
				testutil.WithDeadline(now.AddDate(0, 0, 20))),
		),
		testutil.WithCertifications(testutil.NewTestCertification(domain.CertBLS, testutil.DaysFrom(now, 25))),
		testutil.WithLORs(testutil.NewTestLOR("Dr. Lee", domain.LORRequested, testutil.DaysFrom(now, -22))),
		testutil.WithEvents(testutil.NewTestEvent("ev1", "Open House", testutil.DaysFrom(now, 1))),
	)
}

func TestEvaluate_DryRunIsDeterministic(t *testing.T) {
	svc, _ := newTestServices(t, frequency.NewMemoryStore())
	now := testutil.FixedNow
	snap := busySnapshot(now)
	dry := func(r *app.EvaluateRequest) { r.DryRun = true }

	first := evaluateAt(t, svc, snap, now, dry)
	second := evaluateAt(t, svc, snap, now, dry)

	require.NotEmpty(t, first.Nudges)
	if diff := cmp.Diff(first.Nudges, second.Nudges); diff != "" {
		t.Errorf("dry-run evaluations differ (-first +second):\n%s", diff)
	}
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestEvaluate_SortedAndLimitedForDashboard(t *testing.T) {
	svc, _ := newTestServices(t, frequency.NewMemoryStore())
	now := testutil.FixedNow

	resp := evaluateAt(t, svc, busySnapshot(now), now)

	assert.Equal(t, domain.StagePreparing, resp.Stage)
	require.Len(t, resp.Nudges, 5)
	for i := 1; i < len(resp.Nudges); i++ {
		assert.GreaterOrEqual(t, resp.Nudges[i-1].Priority, resp.Nudges[i].Priority)
	}
	assert.Equal(t, "DEADLINE_7_duke", resp.Nudges[0].ID)
}

func TestEvaluate_RecordsShownUnlessDryRun(t *testing.T) {
	svc, interactions := newTestServices(t, frequency.NewMemoryStore())
	now := testutil.FixedNow
	snap := busySnapshot(now)

	evaluateAt(t, svc, snap, now, func(r *app.EvaluateRequest) { r.DryRun = true })
	assert.Empty(t, interactions.History(context.Background()))

	resp := evaluateAt(t, svc, snap, now)
	history := interactions.History(context.Background())
	require.Len(t, history, len(resp.Nudges))
	for _, rec := range history {
		assert.Equal(t, 1, rec.ShowCount)
		require.NotNil(t, rec.LastShownAt)
		assert.True(t, rec.LastShownAt.Equal(now))
	}

	again := evaluateAt(t, svc, snap, now.Add(time.Hour), func(r *app.EvaluateRequest) { r.DryRun = true })
	assert.Less(t, again.Nudges[0].Priority, resp.Nudges[0].Priority, "recency drops after a show")
}

func TestEvaluate_DismissedNudgeSuppressedUntilCooldownEnds(t *testing.T) {
	svc, interactions := newTestServices(t, frequency.NewMemoryStore())
	ctx := context.Background()
	now := testutil.FixedNow
	snap := busySnapshot(now)

	_, err := interactions.Dismiss(ctx, app.DismissRequest{NudgeID: "DEADLINE_7_duke", Now: &now})
	require.NoError(t, err)

	resp := evaluateAt(t, svc, snap, now.Add(time.Hour))
	assert.NotContains(t, nudgeIDs(resp.Nudges), "DEADLINE_7_duke")
	assert.Contains(t, resp.Suppressed, app.SuppressedNudge{ID: "DEADLINE_7_duke", Reason: "dismiss_cooldown"})

	resp = evaluateAt(t, svc, snap, now.Add(25*time.Hour))
	assert.Contains(t, nudgeIDs(resp.Nudges), "DEADLINE_7_duke")
}

func TestEvaluate_PermanentDismissalAndReset(t *testing.T) {
	svc, interactions := newTestServices(t, frequency.NewMemoryStore())
	ctx := context.Background()
	now := testutil.FixedNow
	snap := busySnapshot(now)

	_, err := interactions.Dismiss(ctx, app.DismissRequest{NudgeID: "EVENT_TOMORROW_ev1", Forever: true})
	require.NoError(t, err)

	resp := evaluateAt(t, svc, snap, now.AddDate(1, 0, 0), func(r *app.EvaluateRequest) { r.DryRun = true })
	assert.NotContains(t, nudgeIDs(resp.Nudges), "EVENT_TOMORROW_ev1")

	resp = evaluateAt(t, svc, snap, now, func(r *app.EvaluateRequest) { r.DryRun = true })
	assert.Contains(t, resp.Suppressed, app.SuppressedNudge{ID: "EVENT_TOMORROW_ev1", Reason: "permanently_dismissed"})

	require.NoError(t, interactions.Reset(ctx, "EVENT_TOMORROW_ev1"))
	resp = evaluateAt(t, svc, snap, now, func(r *app.EvaluateRequest) { r.DryRun = true })
	assert.Empty(t, resp.Suppressed)
}

func TestEvaluate_EnginePanicIsIsolated(t *testing.T) {
	svc, _ := newTestServices(t, frequency.NewMemoryStore())
	now := testutil.FixedNow
	svc.rules = func(e *engine.Evaluator) []engine.Rule {
		rules := e.Rules()
		rules[1] = engine.Rule{ID: domain.EngineCertification, Run: func(domain.StateSnapshot, engine.Context) []domain.Nudge {
			panic("nil certification")
		}}
		return rules
	}

	resp := evaluateAt(t, svc, busySnapshot(now), now, func(r *app.EvaluateRequest) { r.DryRun = true })

	require.Len(t, resp.Failures, 1)
	assert.Equal(t, domain.EngineCertification, resp.Failures[0].Engine)
	assert.Contains(t, resp.Failures[0].Message, "nil certification")
	assert.Contains(t, nudgeIDs(resp.Nudges), "DEADLINE_7_duke")
	for _, n := range resp.Nudges {
		assert.NotEqual(t, domain.EngineCertification, n.Engine)
	}
}

func TestEvaluate_DegradesWhenStoreFails(t *testing.T) {
	svc, interactions := newTestServices(t, testutil.NewFailingStore())
	now := testutil.FixedNow

	resp := evaluateAt(t, svc, busySnapshot(now), now)
	assert.Len(t, resp.Nudges, 5)
	assert.Empty(t, resp.Suppressed)

	_, err := interactions.Dismiss(context.Background(), app.DismissRequest{NudgeID: "DEADLINE_7_duke", Now: &now})
	assert.ErrorIs(t, err, frequency.ErrStoreUnavailable)
}

func TestEvaluate_OneCelebrationAtATime(t *testing.T) {
	svc, interactions := newTestServices(t, frequency.NewMemoryStore())
	ctx := context.Background()
	now := testutil.FixedNow
	snap := testutil.NewTestSnapshot(now, testutil.WithEngagement(func(e *domain.EngagementState) {
		e.LoginStreak, e.PreviousStreak = 7, 6
		e.ChecklistCompleted = 1
		e.ReadyScore = domain.ReadyScore{Current: 70, Previous: 60}
	}))

	resp := evaluateAt(t, svc, snap, now)

	require.Len(t, resp.Nudges, 1)
	assert.Equal(t, catalog.Checklist1, resp.Nudges[0].PromptID)
	assert.ElementsMatch(t, []string{"READYSCORE_UP", "LOGIN_STREAK_7"}, nudgeIDs(resp.Queued))

	later := evaluateAt(t, svc, snap, now.Add(time.Hour))
	assert.Empty(t, later.Nudges, "celebration cooldown holds back the rest")

	batch, err := interactions.DrainCelebrations(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	require.NotNil(t, batch)
	assert.Len(t, batch.Items, 2)
	assert.NotEmpty(t, batch.ID)
	assert.Empty(t, interactions.PendingCelebrations(ctx))
}

func TestEvaluate_CelebrationCutBySurfaceLimitIsQueued(t *testing.T) {
	svc, interactions := newTestServices(t, frequency.NewMemoryStore())
	ctx := context.Background()
	now := testutil.FixedNow
	snap := busySnapshot(now)
	snap.Engagement.LoginStreak, snap.Engagement.PreviousStreak = 7, 6
	snap.Engagement.ChecklistCompleted = 1

	resp := evaluateAt(t, svc, snap, now, func(r *app.EvaluateRequest) { r.Surface = domain.SurfaceInline })

	require.Len(t, resp.Nudges, 2)
	for _, n := range resp.Nudges {
		assert.False(t, n.IsCelebration(), "%s should outrank the celebrations", n.ID)
	}
	assert.ElementsMatch(t, []string{catalog.Checklist1, "LOGIN_STREAK_7"}, nudgeIDs(resp.Queued))
	assert.ElementsMatch(t, []string{catalog.Checklist1, "LOGIN_STREAK_7"}, nudgeIDs(interactions.PendingCelebrations(ctx)))
	assert.True(t, svc.freq.CanShowCelebration(ctx, now.Add(time.Minute)), "nothing was celebrated on screen")
}

func TestEvaluate_AcceptanceBypassesCelebrationCooldown(t *testing.T) {
	svc, _ := newTestServices(t, frequency.NewMemoryStore())
	now := testutil.FixedNow
	require.NoError(t, svc.freq.MarkCelebrationShown(context.Background(), now))

	snap := testutil.NewTestSnapshot(now,
		testutil.WithPrograms(testutil.NewTestProgram("Columbia", testutil.WithProgramID("col"),
			testutil.WithStatus(domain.ProgramAccepted))),
		testutil.WithEngagement(func(e *domain.EngagementState) { e.LoginStreak, e.PreviousStreak = 3, 2 }))

	resp := evaluateAt(t, svc, snap, now.Add(time.Minute))

	assert.Equal(t, []string{"ACCEPTANCE_col"}, nudgeIDs(resp.Nudges))
	assert.Equal(t, domain.StageAccepted, resp.Stage)
}

func TestEvaluate_InlineScopedToProgram(t *testing.T) {
	svc, _ := newTestServices(t, frequency.NewMemoryStore())
	now := testutil.FixedNow

	resp := evaluateAt(t, svc, busySnapshot(now), now, func(r *app.EvaluateRequest) {
		r.Surface = domain.SurfaceInline
		r.ProgramID = "duke"
		r.DryRun = true
	})

	assert.Equal(t, domain.SurfaceInline, resp.Surface)
	require.Len(t, resp.Nudges, 2)
	for _, n := range resp.Nudges {
		assert.Equal(t, "duke", n.ContextString("programId"))
	}
}

func TestEvaluate_RejectsUnknownSurface(t *testing.T) {
	svc, _ := newTestServices(t, frequency.NewMemoryStore())

	_, err := svc.Evaluate(context.Background(), app.EvaluateRequest{Surface: "sidebar"})

	var evalErr *app.EvaluateError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, app.ErrInvalidSurface, evalErr.Code)
}

func TestEvaluate_UsesStoredWeights(t *testing.T) {
	database := testutil.NewTestDB(t)
	profiles := repository.NewSQLitePriorityProfileRepo(database)
	require.NoError(t, profiles.Upsert(context.Background(), &domain.PriorityProfile{WeightUrgency: 1}))

	mgr := frequency.NewManager(frequency.NewMemoryStore(), frequency.DefaultConfig(), nil)
	svc := NewNudgeService(catalog.Default(), mgr, profiles, NudgeServiceOptions{Location: time.UTC})
	now := testutil.FixedNow

	resp := evaluateAt(t, svc, busySnapshot(now), now, func(r *app.EvaluateRequest) { r.DryRun = true })

	for _, n := range resp.Nudges {
		assert.Equal(t, n.Urgency.Score(), n.Priority, n.ID)
	}
}
