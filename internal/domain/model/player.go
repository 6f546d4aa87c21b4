// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// Squad shape. The balancer and validator only support a 10-player roster
// split into two teams of five.
const (
	RosterSize = 10
	TeamSize   = 5
)

// Rating bounds for every sub-rating.
const (
	MinRating = 0
	MaxRating = 10
)

// Position is the on-pitch role of a player. It is display data only and
// never influences balancing.
type Position string

// Known positions, in the order they are offered to users.
const (
	Goalkeeper Position = "GK"
	Defender   Position = "DEF"
	Midfielder Position = "MID"
	Forward    Position = "FWD"
)

// Positions lists every valid position; the first entry is the default.
var Positions = []Position{Goalkeeper, Defender, Midfielder, Forward}

// ParsePosition maps a position code or long name to a Position.
// An empty string yields the default position.
func ParsePosition(s string) (Position, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "GK", "GOALKEEPER":
		return Goalkeeper, nil
	case "DEF", "DEFENDER":
		return Defender, nil
	case "MID", "MIDFIELDER":
		return Midfielder, nil
	case "FWD", "FORWARD":
		return Forward, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPosition, s)
}

// Ratings holds the five sub-ratings of a player.
type Ratings struct {
	Attack   int
	Defense  int
	Passing  int
	Pace     int
	Physical int
}

// Values returns the sub-ratings in their canonical order.
func (r Ratings) Values() [5]int {
	return [5]int{r.Attack, r.Defense, r.Passing, r.Pace, r.Physical}
}

// Player is a scored entity taking part in one balancing session.
// Overall is derived from Ratings on demand (see scoring.Overall).
type Player struct {
	Name     string
	Position Position
	Ratings  Ratings
}
