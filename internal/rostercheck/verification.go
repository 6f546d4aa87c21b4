package rostercheck

import (
	"fmt"
	"math"
	"slices"

	"github.com/okian/teampick/internal/domain/balance"
	"github.com/okian/teampick/internal/domain/model"
	"github.com/okian/teampick/internal/domain/partition"
	"github.com/okian/teampick/internal/domain/roster"
	"github.com/okian/teampick/internal/domain/types"
)

// reference recomputes answers locally.
type reference struct {
	builder   *roster.Builder
	tolerance float64
}

func newReference(cfg *Config) reference {
	return reference{
		builder: roster.NewBuilder(roster.WithDefaultRating(cfg.DefaultRating)),
		// Half a unit in the last displayed decimal.
		tolerance: 0.5*math.Pow(10, -float64(cfg.Precision)) + 1e-9,
	}
}

// checkBalance verifies a lineup: both teams partition the roster, team A is
// the first optimal split and the difference matches.
func (r reference) checkBalance(round Round, got types.Lineup) error {
	players, err := r.builder.Build(round.Players)
	if err != nil {
		return fmt.Errorf("reference rejected roster: %w", err)
	}
	want, err := balance.Balance(players)
	if err != nil {
		return fmt.Errorf("reference balance: %w", err)
	}

	idxA, idxB := indices(got.TeamA), indices(got.TeamB)
	if err := partition.Validate(len(players), idxA, idxB, model.TeamSize); err != nil {
		return fmt.Errorf("%w: lineup is not a 5/5 partition: %v", ErrMismatch, err)
	}
	if !slices.Equal(idxA, want.IndicesA) {
		return fmt.Errorf("%w: team A %v, want %v", ErrMismatch, idxA, want.IndicesA)
	}
	if math.Abs(got.Difference-want.Difference) > r.tolerance {
		return fmt.Errorf("%w: difference %.4f, want %.4f", ErrMismatch, got.Difference, want.Difference)
	}
	return nil
}

// checkSplit verifies a manual split view against local validation.
func (r reference) checkSplit(round Round, got types.SplitView) error {
	players, err := r.builder.Build(round.Players)
	if err != nil {
		return fmt.Errorf("reference rejected roster: %w", err)
	}

	teamB := partition.Complement(len(players), round.TeamA)
	valid := partition.IsValid(len(players), round.TeamA, teamB, model.TeamSize)
	if got.Valid != valid {
		return fmt.Errorf("%w: split %v valid=%t, want %t", ErrMismatch, round.TeamA, got.Valid, valid)
	}
	if !valid {
		if got.Difference != nil {
			return fmt.Errorf("%w: invalid split reported a difference", ErrMismatch)
		}
		return nil
	}

	if got.Difference == nil {
		return fmt.Errorf("%w: valid split without a difference", ErrMismatch)
	}
	want := partition.Difference(partition.Select(players, round.TeamA), partition.Select(players, teamB))
	if math.Abs(*got.Difference-want) > r.tolerance {
		return fmt.Errorf("%w: split difference %.4f, want %.4f", ErrMismatch, *got.Difference, want)
	}
	return nil
}

func indices(t types.TeamView) []int {
	out := make([]int, len(t.Players))
	for i, c := range t.Players {
		out[i] = c.Index
	}
	return out
}
