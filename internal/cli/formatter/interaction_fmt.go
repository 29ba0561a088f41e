package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/smartprompts/internal/app"
	"github.com/alexanderramin/smartprompts/internal/domain"
)

// FormatHistory renders stored interaction records as a table.
func FormatHistory(records []domain.InteractionRecord, now time.Time) string {
	if len(records) == 0 {
		return Dim("No interaction history yet.") + "\n"
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.NudgeID,
			strconv.Itoa(r.ShowCount),
			OptionalTime(r.LastShownAt, now),
			strconv.Itoa(r.DismissCount),
			recordState(r, now),
		})
	}
	return RenderTable([]string{"NUDGE", "SHOWN", "LAST SHOWN", "DISMISSED", "STATE"}, rows)
}

func recordState(r domain.InteractionRecord, now time.Time) string {
	switch {
	case r.PermanentlyDismiss:
		return StyleRed.Render("hidden")
	case r.SnoozedUntil != nil && now.Before(*r.SnoozedUntil):
		return StyleYellow.Render("snoozed " + RelativeTimeFrom(*r.SnoozedUntil, now))
	case r.LastDismissedAt != nil:
		return StyleDim.Render("dismissed " + RelativeTimeFrom(*r.LastDismissedAt, now))
	default:
		return StyleGreen.Render("active")
	}
}

// FormatDismiss confirms a dismissal.
func FormatDismiss(resp *app.DismissResponse) string {
	rec := resp.Record
	if rec.PermanentlyDismiss {
		return StyleGreen.Render(fmt.Sprintf("%s will not be shown again.", rec.NudgeID)) + "\n"
	}
	msg := StyleGreen.Render(fmt.Sprintf("Dismissed %s (%d time(s)).", rec.NudgeID, rec.DismissCount))
	if resp.SuggestPermanent {
		msg += "\n" + Dim("Dismissed often. Use --forever to stop seeing it.")
	}
	return msg + "\n"
}

// FormatSnooze confirms a snooze.
func FormatSnooze(rec *domain.InteractionRecord) string {
	until := "--"
	if rec.SnoozedUntil != nil {
		until = rec.SnoozedUntil.Format("Jan 2, 2006 15:04")
	}
	return StyleGreen.Render(fmt.Sprintf("Snoozed %s until %s.", rec.NudgeID, until)) + "\n"
}

// FormatWeights renders a priority profile.
func FormatWeights(p *domain.PriorityProfile) string {
	rows := [][]string{
		{"urgency", fmt.Sprintf("%.2f", p.WeightUrgency)},
		{"relevance", fmt.Sprintf("%.2f", p.WeightRelevance)},
		{"engagement", fmt.Sprintf("%.2f", p.WeightEngagement)},
		{"recency", fmt.Sprintf("%.2f", p.WeightRecency)},
	}
	var b strings.Builder
	b.WriteString(Header("Priority weights · " + p.ID))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"FACTOR", "WEIGHT"}, rows))
	return b.String()
}
