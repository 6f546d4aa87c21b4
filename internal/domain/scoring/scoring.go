// Package scoring aggregates sub-ratings into the overall score used for
// balancing, and holds the display helpers that derive from it.
package scoring

import (
	"math"

	"github.com/okian/teampick/internal/domain/model"
)

// Default card tier thresholds.
const (
	defaultGoldThreshold   = 8.0
	defaultSilverThreshold = 5.0
	ratingsPerPlayer       = 5
)

// Overall returns the arithmetic mean of the five sub-ratings.
// The value is never rounded; see Round for display.
func Overall(r model.Ratings) float64 {
	sum := 0
	for _, v := range r.Values() {
		sum += v
	}
	return float64(sum) / ratingsPerPlayer
}

// Total sums the overall score of every player.
func Total(players []model.Player) float64 {
	var total float64
	for _, p := range players {
		total += Overall(p.Ratings)
	}
	return total
}

// Round rounds v to the given number of decimal places, half away from zero.
// Only presentation code should call it.
func Round(v float64, places int) float64 {
	if places < 0 {
		places = 0
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// Tier is the card colour of a player.
type Tier string

// Card tiers from best to worst.
const (
	Gold   Tier = "gold"
	Silver Tier = "silver"
	Bronze Tier = "bronze"
)

// Tiers holds the minimum overall needed for each card tier.
type Tiers struct {
	Gold   float64
	Silver float64
}

// DefaultTiers returns gold at 8 and silver at 5.
func DefaultTiers() Tiers {
	return Tiers{Gold: defaultGoldThreshold, Silver: defaultSilverThreshold}
}

// Of returns the tier for an overall score.
func (t Tiers) Of(overall float64) Tier {
	switch {
	case overall >= t.Gold:
		return Gold
	case overall >= t.Silver:
		return Silver
	default:
		return Bronze
	}
}
