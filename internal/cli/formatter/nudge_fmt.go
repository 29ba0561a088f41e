package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/smartprompts/internal/app"
	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/domain"
)

// FormatEvaluation renders an evaluation as numbered nudge cards followed by
// what was suppressed, queued or failed.
func FormatEvaluation(resp *app.EvaluateResponse) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Smart prompts · %s", resp.Surface)))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("stage %s · run %s", resp.Stage, resp.RunID)))
	b.WriteString("\n\n")

	if len(resp.Nudges) == 0 {
		b.WriteString(Dim("Nothing needs your attention right now."))
		b.WriteString("\n")
	}
	for i, n := range resp.Nudges {
		b.WriteString(FormatNudgeCard(i+1, n))
		b.WriteString("\n")
	}

	if len(resp.Queued) > 0 {
		b.WriteString("\n")
		b.WriteString(StylePurple.Render(fmt.Sprintf("%d celebration(s) queued for later", len(resp.Queued))))
		b.WriteString("\n")
	}
	if len(resp.Suppressed) > 0 {
		b.WriteString("\n")
		b.WriteString(Dim(fmt.Sprintf("%d suppressed:", len(resp.Suppressed))))
		b.WriteString("\n")
		for _, s := range resp.Suppressed {
			b.WriteString(Dim(fmt.Sprintf("  %s (%s)", s.ID, s.Reason)))
			b.WriteString("\n")
		}
	}
	for _, f := range resp.Failures {
		b.WriteString(StyleRed.Render(fmt.Sprintf("engine %s failed: %s", f.Engine, f.Message)))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatNudgeCard renders one nudge as a short card.
func FormatNudgeCard(index int, n domain.Nudge) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%2d. %s  %s  %s\n",
		index, UrgencyIndicator(n), Bold(n.Title), Dim(FormatPriority(n.Priority)))
	fmt.Fprintf(&b, "    %s\n", n.Message)

	var actions []string
	for _, a := range n.Actions {
		label := a.Label
		if a.Href != "" {
			label += " → " + a.Href
		}
		actions = append(actions, label)
	}
	meta := "id: " + n.ID
	if len(actions) > 0 {
		meta += " · " + strings.Join(actions, " | ")
	}
	fmt.Fprintf(&b, "    %s\n", Dim(meta))
	return b.String()
}

// FormatCelebrations lists queued celebrations.
func FormatCelebrations(items []domain.Nudge) string {
	if len(items) == 0 {
		return Dim("No celebrations waiting.") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, n := range items {
		rows = append(rows, []string{n.ID, n.Title, FormatPriority(n.Priority)})
	}
	return Header("Queued celebrations") + "\n" + RenderTable([]string{"ID", "TITLE", "PRIORITY"}, rows)
}

// FormatCelebrationBatch renders a drained batch inside a box.
func FormatCelebrationBatch(batch *app.CelebrationBatch) string {
	if batch == nil || len(batch.Items) == 0 {
		return Dim("No celebrations waiting.") + "\n"
	}
	var lines []string
	for _, n := range batch.Items {
		lines = append(lines, StylePurple.Render("★ ")+Bold(n.Title)+"\n  "+n.Message)
	}
	content := strings.Join(lines, "\n\n") + "\n\n" + Dim("batch "+batch.ID)
	return RenderBox("While you were away", content) + "\n"
}

// FormatCatalog lists prompt definitions in catalog order.
func FormatCatalog(defs []catalog.Definition) string {
	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		rows = append(rows, []string{
			d.ID,
			string(d.Engine),
			string(d.Type),
			UrgencyColor(d.Urgency).Render(string(d.Urgency)),
			d.Title,
		})
	}
	return RenderTable([]string{"PROMPT", "ENGINE", "TYPE", "URGENCY", "TITLE"}, rows)
}
