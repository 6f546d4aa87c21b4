package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/okian/teampick/internal/domain/scoring"
)

var (
	GoldColor   = lipgloss.Color("#FFD700")
	SilverColor = lipgloss.Color("#C0C0C0")
	BronzeColor = lipgloss.Color("#CD7F32")

	TeamAColor   = lipgloss.Color("#60A5FA") // Blue
	TeamBColor   = lipgloss.Color("#F87171") // Red
	PitchColor   = lipgloss.Color("#10B981") // Green
	WarningColor = lipgloss.Color("#F59E0B") // Amber
	MutedColor   = lipgloss.Color("#9CA3AF")

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(cardWidth)

	CardTitle = lipgloss.NewStyle().
			Bold(true).
			Width(cardWidth - 2).
			Align(lipgloss.Center)

	TeamTitle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	Pitch = lipgloss.NewStyle().
		Foreground(PitchColor)

	Heading = lipgloss.NewStyle().
		Bold(true).
		MarginTop(1)

	Success = lipgloss.NewStyle().Foreground(PitchColor)
	Warning = lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(MutedColor)
)

const cardWidth = 20

// TierColor returns the card border colour for a tier.
func TierColor(t scoring.Tier) lipgloss.Color {
	switch t {
	case scoring.Gold:
		return GoldColor
	case scoring.Silver:
		return SilverColor
	default:
		return BronzeColor
	}
}
