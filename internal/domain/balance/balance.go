// Package balance splits a roster into two equally sized teams whose summed
// overall scores are as close as possible.
//
// The search is exhaustive: every way of choosing TeamSize of the RosterSize
// players as team A is evaluated (C(10,5) = 252 candidates) and team B is the
// complement. Candidates are enumerated in lexicographic order of their
// ascending index tuple, (0,1,2,3,4) first and (5,6,7,8,9) last. Only a
// strictly smaller difference replaces the current best, so among equally
// balanced splits the earliest candidate wins and the result is fully
// determined by the input order.
package balance

import (
	"fmt"
	"math"

	"github.com/okian/teampick/internal/domain/model"
	"github.com/okian/teampick/internal/domain/scoring"
)

// Result is the best split found for a roster.
type Result struct {
	TeamA    []model.Player
	TeamB    []model.Player
	IndicesA []int
	IndicesB []int
	// Difference is |sum(overall A) - sum(overall B)|, unrounded.
	Difference float64
	// Evaluated counts the candidate splits inspected.
	Evaluated int
}

// Balance returns the 5/5 split of players minimizing the difference of
// summed overall scores. It returns model.ErrInvalidRosterSize unless exactly
// model.RosterSize players are given.
func Balance(players []model.Player) (Result, error) {
	if len(players) != model.RosterSize {
		return Result{}, fmt.Errorf("balance %d players: %w", len(players), model.ErrInvalidRosterSize)
	}

	overall := make([]float64, len(players))
	for i, p := range players {
		overall[i] = scoring.Overall(p.Ratings)
	}

	best := math.Inf(1)
	var bestA [model.TeamSize]int
	evaluated := 0

	combo := first()
	for ok := true; ok; ok = next(&combo, len(players)) {
		evaluated++
		d := difference(overall, combo)
		if d < best {
			best = d
			bestA = combo
		}
	}

	idxA := bestA[:]
	idxB := complement(len(players), bestA)
	return Result{
		TeamA:      pick(players, idxA),
		TeamB:      pick(players, idxB),
		IndicesA:   append([]int(nil), idxA...),
		IndicesB:   idxB,
		Difference: best,
		Evaluated:  evaluated,
	}, nil
}

// first returns the lexicographically smallest combination.
func first() [model.TeamSize]int {
	var c [model.TeamSize]int
	for i := range c {
		c[i] = i
	}
	return c
}

// next advances c to the following combination of n indices in
// lexicographic order. It returns false once c was the last one.
func next(c *[model.TeamSize]int, n int) bool {
	k := len(c)
	i := k - 1
	for i >= 0 && c[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	c[i]++
	for j := i + 1; j < k; j++ {
		c[j] = c[j-1] + 1
	}
	return true
}

// difference returns |sum(A) - sum(B)| where A holds the indices in teamA
// and B every other index.
func difference(overall []float64, teamA [model.TeamSize]int) float64 {
	var inA [model.RosterSize]bool
	for _, i := range teamA {
		inA[i] = true
	}
	var sumA, sumB float64
	for i, v := range overall {
		if inA[i] {
			sumA += v
		} else {
			sumB += v
		}
	}
	return math.Abs(sumA - sumB)
}

func complement(n int, teamA [model.TeamSize]int) []int {
	var inA [model.RosterSize]bool
	for _, i := range teamA {
		inA[i] = true
	}
	out := make([]int, 0, n-len(teamA))
	for i := 0; i < n; i++ {
		if !inA[i] {
			out = append(out, i)
		}
	}
	return out
}

func pick(players []model.Player, idx []int) []model.Player {
	out := make([]model.Player, len(idx))
	for i, j := range idx {
		out[i] = players[j]
	}
	return out
}
