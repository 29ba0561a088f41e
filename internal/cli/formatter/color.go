package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// UrgencyColor returns the style for an urgency level.
func UrgencyColor(u domain.Urgency) lipgloss.Style {
	switch u {
	case domain.UrgencyCritical:
		return StyleRed
	case domain.UrgencyHigh:
		return StyleYellow
	case domain.UrgencyMedium:
		return StyleBlue
	default:
		return StyleDim
	}
}

// UrgencyIndicator returns a colored marker such as "● CRITICAL".
// Celebrations get their own marker regardless of urgency.
func UrgencyIndicator(n domain.Nudge) string {
	if n.IsCelebration() {
		return StylePurple.Render("★ CELEBRATE")
	}
	if n.Urgency == "" {
		return StyleDim.Render("● UNKNOWN")
	}
	return UrgencyColor(n.Urgency).Render("● " + strings.ToUpper(string(n.Urgency)))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
