package engine

import (
	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/promptutil"
)

const lorDeadlineWindowDays = 14

// Follow-up tiers are minimum ages, checked oldest first.
var lorFollowupTiers = []struct {
	minDays  int
	promptID string
}{
	{30, catalog.LORFollowup30},
	{21, catalog.LORFollowup21},
}

// EvaluateLORs emits follow-up reminders for stale letter requests and
// alerts for programs closing soon without enough letters. The two rules
// are independent and may both fire.
func (e *Evaluator) EvaluateLORs(requests []domain.LORRequest, programs []domain.TargetProgram, ctx Context) []domain.Nudge {
	var out []domain.Nudge
	out = append(out, e.lorFollowups(requests, ctx)...)
	out = append(out, e.lorShortfalls(requests, programs, ctx)...)
	byPriority(out)
	return out
}

func (e *Evaluator) lorFollowups(requests []domain.LORRequest, ctx Context) []domain.Nudge {
	var out []domain.Nudge
	for _, r := range requests {
		if !r.Status.IsOutstanding() || r.RequestedAt == nil || r.RecommenderName == "" {
			continue
		}
		age := promptutil.DaysSince(*r.RequestedAt, ctx.Now)
		for _, t := range lorFollowupTiers {
			if age < t.minDays {
				continue
			}
			out = append(out, e.build(ctx, nudgeDraft{
				promptID: t.promptID,
				keys:     promptutil.IDKeys{RecommenderName: r.RecommenderName},
				vals: promptutil.Values{
					"recommenderName": r.RecommenderName,
					"dayCount":        promptutil.Pluralize(age, "day"),
				},
				facts: map[string]any{
					"requestId":       r.ID,
					"recommenderName": r.RecommenderName,
					"programId":       r.ProgramID,
					"daysSince":       age,
				},
			}))
			break
		}
	}
	return out
}

func (e *Evaluator) lorShortfalls(requests []domain.LORRequest, programs []domain.TargetProgram, ctx Context) []domain.Nudge {
	var out []domain.Nudge
	for _, p := range programs {
		if p.Status.IsSubmitted() || p.ApplicationDeadline == nil || p.RequiredLORs <= 0 {
			continue
		}
		days := promptutil.DaysUntil(*p.ApplicationDeadline, ctx.Now)
		if days < 0 || days > lorDeadlineWindowDays {
			continue
		}
		received := receivedLetters(requests, p.ID)
		if received >= p.RequiredLORs {
			continue
		}
		missing := p.RequiredLORs - received
		out = append(out, e.build(ctx, nudgeDraft{
			promptID: catalog.LORMissingForDeadline,
			keys:     promptutil.IDKeys{ProgramID: p.ID},
			vals: promptutil.Values{
				"programName": p.Name,
				"programId":   p.ID,
				"dayCount":    promptutil.Pluralize(days, "day"),
			}.SetInt("missingCount", missing).
				SetInt("requiredCount", p.RequiredLORs).
				SetInt("receivedCount", received),
			facts: map[string]any{
				"programId":     p.ID,
				"programName":   p.Name,
				"daysRemaining": days,
				"requiredCount": p.RequiredLORs,
				"receivedCount": received,
				"missingCount":  missing,
			},
		}))
	}
	return out
}

// receivedLetters counts letters that count toward programID: those filed
// for it and those not tied to any program.
func receivedLetters(requests []domain.LORRequest, programID string) int {
	n := 0
	for _, r := range requests {
		if !r.Status.IsReceived() {
			continue
		}
		if r.ProgramID == "" || r.ProgramID == programID {
			n++
		}
	}
	return n
}
