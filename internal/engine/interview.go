package engine

import (
	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/promptutil"
)

const (
	thankYouDay           = 1
	outcomeCheckAfterDays = 14
	weekTierDays          = 7
)

var interviewTiers = []tier{
	{1, catalog.Interview1},
	{3, catalog.Interview3},
	{weekTierDays, ""}, // resolved by format
	{14, catalog.Interview14},
	{30, catalog.Interview30},
}

// EvaluateInterviews covers the interview loop: missing details, the
// countdown, post-interview follow-ups and waitlist encouragement.
func (e *Evaluator) EvaluateInterviews(programs []domain.TargetProgram, ctx Context) []domain.Nudge {
	var out []domain.Nudge
	for _, p := range programs {
		switch p.Status {
		case domain.ProgramWaitlisted:
			out = append(out, e.build(ctx, nudgeDraft{
				promptID: catalog.WaitlistUpdate,
				keys:     promptutil.IDKeys{ProgramID: p.ID},
				vals:     programValues(p),
				facts:    programFacts(p),
			}))
		case domain.ProgramInterviewInvite, domain.ProgramInterviewScheduled, domain.ProgramInterviewed:
			out = append(out, e.interviewNudges(p, ctx)...)
		}
	}
	byPriority(out)
	return out
}

func (e *Evaluator) interviewNudges(p domain.TargetProgram, ctx Context) []domain.Nudge {
	iv := p.Interview
	if iv == nil || iv.Date == nil || iv.Format == "" {
		if p.Status == domain.ProgramInterviewed {
			return nil
		}
		return []domain.Nudge{e.build(ctx, nudgeDraft{
			promptID: catalog.InterviewSetDate,
			keys:     promptutil.IDKeys{ProgramID: p.ID},
			vals:     programValues(p),
			facts:    programFacts(p),
		})}
	}

	facts := programFacts(p)
	facts["interviewDate"] = formatDate(*iv.Date, ctx.Now.Location())
	facts["format"] = string(iv.Format)

	if !ctx.Now.After(*iv.Date) {
		if p.Status == domain.ProgramInterviewed {
			return nil
		}
		days := promptutil.DaysUntil(*iv.Date, ctx.Now)
		promptID, ok := matchTier(interviewTiers, days)
		if !ok {
			return nil
		}
		if promptID == "" {
			promptID = catalog.Interview7Virtual
			if iv.Format == domain.InterviewInPerson {
				promptID = catalog.Interview7InPerson
			}
		}
		facts["daysRemaining"] = days
		vals := programValues(p)
		vals["dayCount"] = promptutil.Pluralize(days, "day")
		return []domain.Nudge{e.build(ctx, nudgeDraft{
			promptID: promptID,
			keys:     promptutil.IDKeys{ProgramID: p.ID},
			vals:     vals,
			facts:    facts,
		})}
	}

	// Follow-ups count calendar days in the evaluation location, so the
	// thank-you window is the whole day after the interview.
	since := promptutil.CalendarDaysSince(*iv.Date, ctx.Now)
	facts["daysSince"] = since
	var out []domain.Nudge
	if since == thankYouDay {
		if !iv.ThankYouSent {
			out = append(out, e.build(ctx, nudgeDraft{
				promptID: catalog.InterviewThankYou,
				keys:     promptutil.IDKeys{ProgramID: p.ID},
				vals:     programValues(p),
				facts:    copyFacts(facts),
			}))
		}
		if !iv.FeedbackSubmitted {
			out = append(out, e.build(ctx, nudgeDraft{
				promptID: catalog.InterviewFeedbackForm,
				keys:     promptutil.IDKeys{ProgramID: p.ID},
				vals:     programValues(p),
				facts:    copyFacts(facts),
			}))
		}
	}
	if since >= outcomeCheckAfterDays && (iv.Outcome == "" || iv.Outcome == domain.OutcomePending) {
		vals := programValues(p)
		vals["dayCount"] = promptutil.Pluralize(since, "day")
		out = append(out, e.build(ctx, nudgeDraft{
			promptID: catalog.InterviewOutcomeCheck,
			keys:     promptutil.IDKeys{ProgramID: p.ID},
			vals:     vals,
			facts:    copyFacts(facts),
		}))
	}
	return out
}

func programValues(p domain.TargetProgram) promptutil.Values {
	return promptutil.Values{"programName": p.Name, "programId": p.ID}
}

func programFacts(p domain.TargetProgram) map[string]any {
	return map[string]any{"programId": p.ID, "programName": p.Name}
}

func copyFacts(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
