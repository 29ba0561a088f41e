package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/smartprompts/internal/app"
	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func deadlineNudge() domain.Nudge {
	return domain.Nudge{
		ID:       "DEADLINE_7_duke",
		PromptID: "DEADLINE_7",
		Engine:   domain.EngineDeadline,
		Type:     domain.NudgeAlert,
		Urgency:  domain.UrgencyCritical,
		Title:    "Duke CRNA deadline in 5 days",
		Message:  "Your application for Duke CRNA is due soon.",
		Actions:  []domain.Action{{Label: "Open program", Type: domain.ActionLink, Href: "/programs/duke"}},
		Priority: 85.5,
	}
}

func TestFormatEvaluation_RendersCardsAndSummary(t *testing.T) {
	resp := &app.EvaluateResponse{
		RunID:      "run-1",
		Stage:      domain.StageApplying,
		Surface:    domain.SurfaceDashboard,
		Nudges:     []domain.Nudge{deadlineNudge()},
		Suppressed: []app.SuppressedNudge{{ID: "CERT_EXPIRING_30_bls", Reason: "dismiss cooldown"}},
		Queued:     []domain.Nudge{{ID: "CHECKLIST_FIRST", Type: domain.NudgeCelebration}},
		Failures:   []app.EngineFailure{{Engine: domain.EngineLOR, Message: "boom"}},
	}

	out := stripANSI(FormatEvaluation(resp))
	assert.Contains(t, out, "SMART PROMPTS · DASHBOARD")
	assert.Contains(t, out, "stage applying")
	assert.Contains(t, out, "1. ● CRITICAL  Duke CRNA deadline in 5 days  85.5")
	assert.Contains(t, out, "Open program → /programs/duke")
	assert.Contains(t, out, "id: DEADLINE_7_duke")
	assert.Contains(t, out, "1 celebration(s) queued")
	assert.Contains(t, out, "CERT_EXPIRING_30_bls (dismiss cooldown)")
	assert.Contains(t, out, "engine lor failed: boom")
}

func TestFormatEvaluation_Empty(t *testing.T) {
	out := stripANSI(FormatEvaluation(&app.EvaluateResponse{Surface: domain.SurfaceInline}))
	assert.Contains(t, out, "Nothing needs your attention")
}

func TestUrgencyIndicator_CelebrationOverridesUrgency(t *testing.T) {
	n := domain.Nudge{Type: domain.NudgeCelebration, Urgency: domain.UrgencyLow}
	assert.Equal(t, "★ CELEBRATE", stripANSI(UrgencyIndicator(n)))
}

func TestFormatHistory_States(t *testing.T) {
	shown := fixedNow.Add(-3 * time.Hour)
	snoozed := fixedNow.Add(72 * time.Hour)
	records := []domain.InteractionRecord{
		{NudgeID: "A", ShowCount: 2, LastShownAt: &shown},
		{NudgeID: "B", SnoozedUntil: &snoozed},
		{NudgeID: "C", PermanentlyDismiss: true, DismissCount: 5},
	}

	out := stripANSI(FormatHistory(records, fixedNow))
	assert.Contains(t, out, "3h ago")
	assert.Contains(t, out, "snoozed in 3d")
	assert.Contains(t, out, "hidden")
	assert.Contains(t, out, "active")
}

func TestFormatHistory_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatHistory(nil, fixedNow)), "No interaction history")
}

func TestFormatDismiss_SuggestsForever(t *testing.T) {
	out := stripANSI(FormatDismiss(&app.DismissResponse{
		Record:           domain.InteractionRecord{NudgeID: "X", DismissCount: 5},
		SuggestPermanent: true,
	}))
	assert.Contains(t, out, "Dismissed X (5 time(s))")
	assert.Contains(t, out, "--forever")
}

func TestFormatCelebrationBatch(t *testing.T) {
	batch := &app.CelebrationBatch{
		ID:    "b-1",
		Items: []domain.Nudge{{Title: "7-day streak!", Message: "A full week.", Type: domain.NudgeCelebration}},
	}
	out := stripANSI(FormatCelebrationBatch(batch))
	assert.Contains(t, out, "WHILE YOU WERE AWAY")
	assert.Contains(t, out, "7-day streak!")
	assert.Contains(t, out, "batch b-1")

	assert.Contains(t, FormatCelebrationBatch(nil), "No celebrations")
}

func TestFormatCatalog_ListsEveryDefinition(t *testing.T) {
	defs := catalog.Default().All()
	out := stripANSI(FormatCatalog(defs))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, len(defs)+2)
	assert.Contains(t, out, "DEADLINE_7")
}

func TestFormatWeights(t *testing.T) {
	out := stripANSI(FormatWeights(domain.NewDefaultPriorityProfile()))
	assert.Contains(t, out, "urgency     0.40")
	assert.Contains(t, out, "recency     0.10")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{{"long value", "x"}, {"s", "y"}}))
	lines := strings.Split(out, "\n")
	assert.Equal(t, "A           B", lines[0])
	assert.Equal(t, "long value  x", lines[2])
	assert.Equal(t, "s           y", lines[3])
}

func TestRelativeTimeFrom(t *testing.T) {
	tests := []struct {
		offset time.Duration
		want   string
	}{
		{-30 * time.Second, "just now"},
		{-5 * time.Minute, "5m ago"},
		{-30 * time.Hour, "30h ago"},
		{-72 * time.Hour, "3d ago"},
		{49 * time.Hour, "in 2d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeTimeFrom(fixedNow.Add(tt.offset), fixedNow))
	}
}
