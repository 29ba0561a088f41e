package engine

import (
	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/promptutil"
)

// tier maps an inclusive upper bound in days to a prompt. Tiers are checked
// in ascending order and the first match wins.
type tier struct {
	maxDays  int
	promptID string
}

var deadlineTiers = []tier{
	{7, catalog.Deadline7},
	{14, catalog.Deadline14},
	{30, catalog.Deadline30},
}

func matchTier(tiers []tier, days int) (string, bool) {
	for _, t := range tiers {
		if days <= t.maxDays {
			return t.promptID, true
		}
	}
	return "", false
}

// EvaluateDeadlines nudges about application deadlines for programs that
// have not been submitted yet.
func (e *Evaluator) EvaluateDeadlines(programs []domain.TargetProgram, ctx Context) []domain.Nudge {
	var out []domain.Nudge
	for _, p := range programs {
		if p.Status.IsSubmitted() || p.ApplicationDeadline == nil {
			continue
		}
		days := promptutil.DaysUntil(*p.ApplicationDeadline, ctx.Now)
		if days < 0 {
			continue
		}
		promptID, ok := matchTier(deadlineTiers, days)
		if !ok {
			continue
		}
		deadline := formatDate(*p.ApplicationDeadline, ctx.Now.Location())
		out = append(out, e.build(ctx, nudgeDraft{
			promptID: promptID,
			keys:     promptutil.IDKeys{ProgramID: p.ID},
			vals: promptutil.Values{
				"programName":  p.Name,
				"programId":    p.ID,
				"dayCount":     promptutil.Pluralize(days, "day"),
				"deadlineDate": deadline,
			},
			facts: map[string]any{
				"programId":     p.ID,
				"programName":   p.Name,
				"daysRemaining": days,
				"deadline":      deadline,
			},
		}))
	}
	byDaysRemaining(out)
	return out
}
