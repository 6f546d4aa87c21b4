// Package render draws lineups for the terminal as player cards, either as
// two team columns or laid out around a pitch.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/teampick/internal/domain/types"
)

// View selects the layout.
type View string

// Available layouts.
const (
	CardView  View = "card"
	PitchView View = "pitch"
)

// ErrUnknownView is returned by ParseView.
var ErrUnknownView = fmt.Errorf("unknown view, want %q or %q", CardView, PitchView)

// ParseView accepts "card" or "pitch"; empty means card.
func ParseView(s string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case "", CardView:
		return CardView, nil
	case PitchView:
		return PitchView, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownView)
	}
}

// DifferenceLine formats a difference the way every view reports it.
func DifferenceLine(diff float64) string {
	return "Difference in team strength: " + strconv.FormatFloat(diff, 'f', 1, 64) + " points"
}

// Lineup renders a balanced lineup followed by its balance check.
func Lineup(l types.Lineup, v View) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		teams(l.TeamA, l.TeamB, v),
		Heading.Render("Balance Check"),
		Success.Render(DifferenceLine(l.Difference)),
	)
}

// Split renders a manual split. An invalid split shows the prompt and its
// problems instead of a difference.
func Split(s types.SplitView, v View) string {
	parts := []string{teams(s.TeamA, s.TeamB, v)}
	if s.Valid && s.Difference != nil {
		parts = append(parts,
			Heading.Render("Balance Check"),
			Success.Render(DifferenceLine(*s.Difference)),
		)
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	parts = append(parts, Warning.MarginTop(1).Render(s.Message))
	for _, p := range s.Problems {
		parts = append(parts, Muted.Render("  - "+p))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// PlayerCard renders one player.
func PlayerCard(c types.PlayerCard) string {
	lines := []string{
		CardTitle.Render(c.Name),
		CardTitle.UnsetBold().Render(fmt.Sprintf("%s - %s", c.Position, strconv.FormatFloat(c.Overall, 'f', 1, 64))),
		stat("Attack", c.Attack),
		stat("Defense", c.Defense),
		stat("Passing", c.Passing),
		stat("Pace", c.Pace),
		stat("Physical", c.Physical),
	}
	return Card.BorderForeground(TierColor(c.Tier)).Render(strings.Join(lines, "\n"))
}

func stat(label string, v int) string {
	return fmt.Sprintf("%-*s%2d", cardWidth-4, label, v)
}

func teams(a, b types.TeamView, v View) string {
	colA := column(a, TeamAColor)
	colB := column(b, TeamBColor)
	if v == PitchView {
		return lipgloss.JoinVertical(lipgloss.Left,
			Heading.Render("Pitch View"),
			lipgloss.JoinHorizontal(lipgloss.Top, colA, "  ", Pitch.Render(pitch), "  ", colB),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, colA, "    ", colB)
}

func column(t types.TeamView, color lipgloss.Color) string {
	cards := make([]string, 0, len(t.Players)+1)
	title := fmt.Sprintf("%s (%s)", t.Name, strconv.FormatFloat(t.Total, 'f', 1, 64))
	cards = append(cards, TeamTitle.Foreground(color).Render(title))
	for _, c := range t.Players {
		cards = append(cards, PlayerCard(c))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

const pitch = `+-----------------------+
|           |           |
|---+       |       +---|
|   |       |       |   |
|-+ |      (o)      | +-|
| | |       |       | | |
|-+ |       |       | +-|
|   |       |       |   |
|---+       |       +---|
|           |           |
+-----------------------+`
