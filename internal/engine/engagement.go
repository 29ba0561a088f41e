package engine

import (
	"time"

	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/promptutil"
)

// Fixed priorities for celebrations. Acceptance always surfaces first.
const (
	PriorityStreakCelebration    = 20.0
	PriorityChecklistCelebration = 25.0
	PriorityReadyScore           = 25.0
	PriorityTargetMilestone      = 22.0
	PriorityAcceptance           = 100.0
)

const (
	welcomeBackAfterDays     = 7
	welcomeDeadlineWindow    = 30
	streakAtRiskMinimum      = 3
	readyScoreMinimumDelta   = 5
	readyScoreCooldown       = 24 * time.Hour
	schoolScoutTargetCount   = 5
	streakRecurringMilestone = 30
	streakRecurringStart     = 60
)

var streakMilestones = []tier{
	{3, catalog.LoginStreak3},
	{7, catalog.LoginStreak7},
	{14, catalog.LoginStreak14},
	{30, catalog.LoginStreak30},
}

var checklistMilestones = []tier{
	{1, catalog.Checklist1},
	{5, catalog.Checklist5},
	{10, catalog.Checklist10},
}

// EvaluateEngagement produces welcome-back, streak and celebration nudges.
// Celebrations other than acceptance need ctx.CanCelebrate.
func (e *Evaluator) EvaluateEngagement(eng domain.EngagementState, programs []domain.TargetProgram, ctx Context) []domain.Nudge {
	var out []domain.Nudge

	if n, ok := e.welcomeBack(eng, programs, ctx); ok {
		out = append(out, n)
	}

	streak := promptutil.CalculateStreakStatus(eng.LoginStreak, ctx.LastLoginAt, ctx.Now)
	if streak.AtRisk && streak.Streak >= streakAtRiskMinimum {
		out = append(out, e.build(ctx, nudgeDraft{
			promptID: catalog.StreakAtRisk,
			vals:     promptutil.Values{}.SetInt("streak", streak.Streak),
			facts:    map[string]any{"streak": streak.Streak},
		}))
	}

	if ctx.CanCelebrate {
		out = append(out, e.celebrations(eng, ctx)...)
	}
	out = append(out, e.acceptances(eng, programs, ctx)...)

	byPriority(out)
	return out
}

// welcomeBack picks one message for a returning user, in order: unfinished
// onboarding, overdue checklist tasks, a deadline inside 30 days, and a
// generic tracker nudge.
func (e *Evaluator) welcomeBack(eng domain.EngagementState, programs []domain.TargetProgram, ctx Context) (domain.Nudge, bool) {
	if ctx.LastLoginAt == nil {
		return domain.Nudge{}, false
	}
	away := promptutil.DaysSince(*ctx.LastLoginAt, ctx.Now)
	if away < welcomeBackAfterDays {
		return domain.Nudge{}, false
	}
	facts := map[string]any{"daysAway": away}

	if !eng.OnboardingComplete {
		return e.build(ctx, nudgeDraft{
			promptID: catalog.WelcomeBackOnboarding,
			vals:     promptutil.Values{"dayCount": promptutil.Pluralize(away, "day")},
			facts:    facts,
		}), true
	}

	for _, p := range programs {
		if p.OverdueTasks <= 0 {
			continue
		}
		facts["programId"] = p.ID
		facts["programName"] = p.Name
		facts["taskCount"] = p.OverdueTasks
		return e.build(ctx, nudgeDraft{
			promptID: catalog.WelcomeBackTasks,
			vals:     programValues(p).SetInt("taskCount", p.OverdueTasks),
			facts:    facts,
		}), true
	}

	if p, days, ok := nearestDeadline(programs, ctx.Now); ok && days < welcomeDeadlineWindow {
		facts["programId"] = p.ID
		facts["programName"] = p.Name
		facts["daysRemaining"] = days
		vals := programValues(p)
		vals["dayCount"] = promptutil.Pluralize(days, "day")
		return e.build(ctx, nudgeDraft{
			promptID: catalog.WelcomeBackDeadline,
			vals:     vals,
			facts:    facts,
		}), true
	}

	return e.build(ctx, nudgeDraft{
		promptID: catalog.WelcomeBackGeneric,
		vals:     promptutil.Values{},
		facts:    facts,
	}), true
}

func nearestDeadline(programs []domain.TargetProgram, now time.Time) (domain.TargetProgram, int, bool) {
	var best domain.TargetProgram
	bestDays, found := 0, false
	for _, p := range programs {
		if p.Status.IsSubmitted() || p.ApplicationDeadline == nil {
			continue
		}
		days := promptutil.DaysUntil(*p.ApplicationDeadline, now)
		if days < 0 {
			continue
		}
		if !found || days < bestDays {
			best, bestDays, found = p, days, true
		}
	}
	return best, bestDays, found
}

func (e *Evaluator) celebrations(eng domain.EngagementState, ctx Context) []domain.Nudge {
	var out []domain.Nudge

	if m, ok := crossedStreakMilestone(eng.PreviousStreak, eng.LoginStreak); ok {
		promptID := catalog.LoginStreakMilestone
		for _, t := range streakMilestones {
			if t.maxDays == m {
				promptID = t.promptID
			}
		}
		out = append(out, e.build(ctx, nudgeDraft{
			promptID: promptID,
			vals:     promptutil.Values{}.SetInt("streak", m),
			facts:    map[string]any{"streak": eng.LoginStreak, "milestone": m},
			fixed:    fixedPriority(PriorityStreakCelebration),
		}))
	}

	rs := eng.ReadyScore
	if delta := rs.Current - rs.Previous; delta >= readyScoreMinimumDelta &&
		(rs.LastCelebrationAt == nil || ctx.Now.Sub(*rs.LastCelebrationAt) >= readyScoreCooldown) {
		out = append(out, e.build(ctx, nudgeDraft{
			promptID: catalog.ReadyScoreUp,
			vals:     promptutil.Values{}.SetInt("delta", delta).SetInt("score", rs.Current),
			facts:    map[string]any{"delta": delta, "score": rs.Current, "previousScore": rs.Previous},
			fixed:    fixedPriority(PriorityReadyScore),
		}))
	}

	for _, t := range checklistMilestones {
		if eng.PreviousChecklistCompleted < t.maxDays && eng.ChecklistCompleted >= t.maxDays {
			out = append(out, e.build(ctx, nudgeDraft{
				promptID: t.promptID,
				vals:     promptutil.Values{},
				facts:    map[string]any{"completed": eng.ChecklistCompleted, "milestone": t.maxDays},
				fixed:    fixedPriority(PriorityChecklistCelebration),
			}))
			break
		}
	}

	if eng.PreviousTargetCount == 0 && eng.TargetCount >= 1 {
		out = append(out, e.build(ctx, nudgeDraft{
			promptID: catalog.FirstTargetSaved,
			vals:     promptutil.Values{},
			facts:    map[string]any{"targetCount": eng.TargetCount},
			fixed:    fixedPriority(PriorityTargetMilestone),
		}))
	}
	if eng.PreviousTargetCount < schoolScoutTargetCount && eng.TargetCount >= schoolScoutTargetCount {
		out = append(out, e.build(ctx, nudgeDraft{
			promptID: catalog.SchoolScout,
			vals:     promptutil.Values{},
			facts:    map[string]any{"targetCount": eng.TargetCount, "badge": "School Scout"},
			fixed:    fixedPriority(PriorityTargetMilestone),
		}))
	}
	return out
}

// crossedStreakMilestone returns the highest milestone in (prev, cur].
// Milestones are 3, 7, 14 and 30, then every 30 days from 60.
func crossedStreakMilestone(prev, cur int) (int, bool) {
	if cur <= prev {
		return 0, false
	}
	best, found := 0, false
	for _, t := range streakMilestones {
		if prev < t.maxDays && t.maxDays <= cur {
			best, found = t.maxDays, true
		}
	}
	if cur >= streakRecurringStart {
		top := cur - cur%streakRecurringMilestone
		if top > prev {
			best, found = top, true
		}
	}
	return best, found
}

func (e *Evaluator) acceptances(eng domain.EngagementState, programs []domain.TargetProgram, ctx Context) []domain.Nudge {
	acked := make(map[string]bool, len(eng.AcknowledgedAcceptances))
	for _, id := range eng.AcknowledgedAcceptances {
		acked[id] = true
	}
	var out []domain.Nudge
	for _, p := range programs {
		if p.Status != domain.ProgramAccepted || acked[p.ID] {
			continue
		}
		out = append(out, e.build(ctx, nudgeDraft{
			promptID: catalog.Acceptance,
			keys:     promptutil.IDKeys{ProgramID: p.ID},
			vals:     programValues(p),
			facts:    programFacts(p),
			fixed:    fixedPriority(PriorityAcceptance),
		}))
	}
	return out
}
