// Package partition validates manually chosen team splits and measures how
// balanced a split is.
package partition

import (
	"fmt"
	"math"

	"go.uber.org/multierr"

	"github.com/okian/teampick/internal/domain/model"
	"github.com/okian/teampick/internal/domain/scoring"
)

// Validate checks that teamA and teamB, given as roster indices, each hold
// exactly size players and together cover every index in [0, rosterSize)
// once. Every problem found is reported; each wraps model.ErrInvalidSplit.
func Validate(rosterSize int, teamA, teamB []int, size int) error {
	var errs error
	if len(teamA) != size {
		errs = multierr.Append(errs, fmt.Errorf("%w: team A has %d players, want %d", model.ErrInvalidSplit, len(teamA), size))
	}
	if len(teamB) != size {
		errs = multierr.Append(errs, fmt.Errorf("%w: team B has %d players, want %d", model.ErrInvalidSplit, len(teamB), size))
	}

	seen := make(map[int]string, len(teamA)+len(teamB))
	check := func(team string, idx []int) {
		for _, i := range idx {
			if i < 0 || i >= rosterSize {
				errs = multierr.Append(errs, fmt.Errorf("%w: team %s references unknown player %d", model.ErrInvalidSplit, team, i))
				continue
			}
			if prev, dup := seen[i]; dup {
				errs = multierr.Append(errs, fmt.Errorf("%w: player %d is in team %s and team %s", model.ErrInvalidSplit, i, prev, team))
				continue
			}
			seen[i] = team
		}
	}
	check("A", teamA)
	check("B", teamB)

	if missing := rosterSize - len(seen); missing > 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: %d players are not assigned", model.ErrInvalidSplit, missing))
	}
	return errs
}

// IsValid reports whether Validate accepts the split.
func IsValid(rosterSize int, teamA, teamB []int, size int) bool {
	return Validate(rosterSize, teamA, teamB, size) == nil
}

// Difference returns |sum(overall A) - sum(overall B)|. It is symmetric and
// uses the same summation as the balancer. It is only meaningful for a split
// that passed Validate.
func Difference(teamA, teamB []model.Player) float64 {
	return math.Abs(scoring.Total(teamA) - scoring.Total(teamB))
}

// Complement returns, in ascending order, every roster index not in teamA.
// Indices outside the roster are ignored.
func Complement(rosterSize int, teamA []int) []int {
	inA := make([]bool, rosterSize)
	for _, i := range teamA {
		if i >= 0 && i < rosterSize {
			inA[i] = true
		}
	}
	out := make([]int, 0, rosterSize)
	for i, picked := range inA {
		if !picked {
			out = append(out, i)
		}
	}
	return out
}

// Select returns the players at idx, in the order given. Indices outside
// the roster are skipped.
func Select(players []model.Player, idx []int) []model.Player {
	out := make([]model.Player, 0, len(idx))
	for _, i := range idx {
		if i >= 0 && i < len(players) {
			out = append(out, players[i])
		}
	}
	return out
}
