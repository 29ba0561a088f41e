package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeTimeFrom describes t relative to now, e.g. "3h ago" or "in 2d".
func RelativeTimeFrom(t, now time.Time) string {
	diff := now.Sub(t)
	future := diff < 0
	if future {
		diff = -diff
	}

	var s string
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		s = fmt.Sprintf("%dm", int(diff.Minutes()))
	case diff < 48*time.Hour:
		s = fmt.Sprintf("%dh", int(diff.Hours()))
	default:
		s = fmt.Sprintf("%dd", int(diff.Hours()/24))
	}
	if future {
		return "in " + s
	}
	return s + " ago"
}

// OptionalTime renders a nullable timestamp relative to now, or "--".
func OptionalTime(t *time.Time, now time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return RelativeTimeFrom(*t, now)
}

func FormatPriority(p float64) string {
	return fmt.Sprintf("%.1f", p)
}
