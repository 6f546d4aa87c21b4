// Package types contains the read shapes returned to API and CLI clients.
package types

import (
	"github.com/okian/teampick/internal/domain/model"
	"github.com/okian/teampick/internal/domain/scoring"
)

// PlayerCard is a player as displayed on a card.
type PlayerCard struct {
	Index    int          `json:"index"`
	Name     string       `json:"name"`
	Position string       `json:"position"`
	Attack   int          `json:"attack"`
	Defense  int          `json:"defense"`
	Passing  int          `json:"passing"`
	Pace     int          `json:"pace"`
	Physical int          `json:"physical"`
	Overall  float64      `json:"overall"`
	Tier     scoring.Tier `json:"tier"`
}

// TeamView is one side of a split.
type TeamView struct {
	Name    string       `json:"name"`
	Total   float64      `json:"total"`
	Players []PlayerCard `json:"players"`
}

// Lineup is an automatically balanced split.
type Lineup struct {
	TeamA      TeamView `json:"team_a"`
	TeamB      TeamView `json:"team_b"`
	Difference float64  `json:"difference"`
}

// SplitView is a manually chosen split. Difference is only set when Valid.
type SplitView struct {
	TeamA      TeamView `json:"team_a"`
	TeamB      TeamView `json:"team_b"`
	Valid      bool     `json:"valid"`
	Difference *float64 `json:"difference,omitempty"`
	Message    string   `json:"message,omitempty"`
	Problems   []string `json:"problems,omitempty"`
}

// Team names used in every view.
const (
	TeamAName = "Team A"
	TeamBName = "Team B"
)

// Presenter rounds and classifies domain values for display.
type Presenter struct {
	tiers     scoring.Tiers
	precision int
}

// NewPresenter creates a Presenter. precision is the number of decimals
// kept on displayed scores.
func NewPresenter(tiers scoring.Tiers, precision int) Presenter {
	return Presenter{tiers: tiers, precision: precision}
}

// Card renders the player at roster index i.
func (p Presenter) Card(i int, pl model.Player) PlayerCard {
	overall := scoring.Overall(pl.Ratings)
	return PlayerCard{
		Index:    i,
		Name:     pl.Name,
		Position: string(pl.Position),
		Attack:   pl.Ratings.Attack,
		Defense:  pl.Ratings.Defense,
		Passing:  pl.Ratings.Passing,
		Pace:     pl.Ratings.Pace,
		Physical: pl.Ratings.Physical,
		Overall:  scoring.Round(overall, p.precision),
		Tier:     p.tiers.Of(overall),
	}
}

// Team renders the players at idx as a named team.
func (p Presenter) Team(name string, roster []model.Player, idx []int) TeamView {
	view := TeamView{Name: name, Players: make([]PlayerCard, 0, len(idx))}
	members := make([]model.Player, 0, len(idx))
	for _, i := range idx {
		view.Players = append(view.Players, p.Card(i, roster[i]))
		members = append(members, roster[i])
	}
	view.Total = scoring.Round(scoring.Total(members), p.precision)
	return view
}

// Score rounds a score for display.
func (p Presenter) Score(v float64) float64 {
	return scoring.Round(v, p.precision)
}
