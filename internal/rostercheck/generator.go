package rostercheck

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"

	"github.com/okian/teampick/internal/domain/model"
	"github.com/okian/teampick/internal/domain/roster"
)

// Player profiles drawn for generated entries.
const (
	profileAverage = iota
	profileStriker
	profileDefender
	profileKeeper
	profileStar
	profileRookie
	profileRandom
	profileCount
)

// Chance, in percent, that a generated field is left out so server-side
// defaults are exercised.
const blankPercent = 10

// randInt returns a uniform integer in [0, n) using crypto/rand.
func randInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// between returns a uniform integer in [lo, hi].
func between(lo, hi int) int {
	return lo + randInt(hi-lo+1)
}

func chance(percent int) bool {
	return randInt(100) < percent
}

// generateRounds creates n rounds of ten random players each.
func generateRounds(n int) []Round {
	rounds := make([]Round, n)
	for i := range rounds {
		rounds[i] = generateRound()
	}
	return rounds
}

func generateRound() Round {
	players := make([]roster.Entry, model.RosterSize)
	for i := range players {
		players[i] = generateEntry()
	}
	return Round{Players: players, TeamA: generateTeamA()}
}

func generateEntry() roster.Entry {
	var e roster.Entry
	if !chance(blankPercent) {
		e.Name = "player-" + uuid.New().String()[:8]
	}
	if !chance(blankPercent) {
		e.Position = string(model.Positions[randInt(len(model.Positions))])
	}

	r := profileRatings(randInt(profileCount))
	fields := []**int{&e.Attack, &e.Defense, &e.Passing, &e.Pace, &e.Physical}
	for i, f := range fields {
		if chance(blankPercent) {
			continue
		}
		*f = roster.Rating(r[i])
	}
	return e
}

// profileRatings returns attack, defense, passing, pace and physical.
func profileRatings(profile int) [5]int {
	switch profile {
	case profileAverage:
		return [5]int{between(4, 6), between(4, 6), between(4, 6), between(4, 6), between(4, 6)}
	case profileStriker:
		return [5]int{between(7, 10), between(1, 4), between(5, 8), between(6, 10), between(4, 8)}
	case profileDefender:
		return [5]int{between(1, 4), between(7, 10), between(4, 7), between(3, 7), between(6, 10)}
	case profileKeeper:
		return [5]int{between(0, 2), between(6, 10), between(3, 6), between(1, 4), between(5, 9)}
	case profileStar:
		return [5]int{between(8, 10), between(6, 10), between(8, 10), between(8, 10), between(7, 10)}
	case profileRookie:
		return [5]int{between(0, 3), between(0, 3), between(0, 4), between(1, 5), between(0, 4)}
	default:
		return [5]int{between(0, 10), between(0, 10), between(0, 10), between(0, 10), between(0, 10)}
	}
}

// generateTeamA picks four to six distinct roster indices, so roughly a
// third of the manual splits are uneven.
func generateTeamA() []int {
	size := between(model.TeamSize-1, model.TeamSize+1)
	perm := make([]int, model.RosterSize)
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := randInt(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm[:size]
}
