package engine

import (
	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/promptutil"
)

const eventLogReminderDay = 2

// EvaluateEvents asks about tomorrow's saved events and, two days after an
// event, whether the user attended.
func (e *Evaluator) EvaluateEvents(events []domain.SavedEvent, ctx Context) []domain.Nudge {
	var out []domain.Nudge
	for _, ev := range events {
		if ev.Date == nil || ev.ID == "" || ev.AttendanceStatus.IsSettled() {
			continue
		}
		date := formatDate(*ev.Date, ctx.Now.Location())
		facts := map[string]any{
			"eventId":   ev.ID,
			"eventName": ev.Name,
			"eventDate": date,
		}
		if ev.URL != "" {
			facts["url"] = ev.URL
		}
		vals := promptutil.Values{"eventName": ev.Name, "eventId": ev.ID, "eventDate": date}

		switch {
		case promptutil.IsTomorrow(*ev.Date, ctx.Now):
			out = append(out, e.build(ctx, nudgeDraft{
				promptID: catalog.EventTomorrow,
				keys:     promptutil.IDKeys{EventID: ev.ID},
				vals:     vals,
				facts:    facts,
			}))
		case promptutil.CalendarDaysSince(*ev.Date, ctx.Now) == eventLogReminderDay:
			facts["daysSince"] = eventLogReminderDay
			out = append(out, e.build(ctx, nudgeDraft{
				promptID: catalog.EventLogReminder,
				keys:     promptutil.IDKeys{EventID: ev.ID},
				vals:     vals,
				facts:    facts,
			}))
		}
	}
	byPriority(out)
	return out
}
