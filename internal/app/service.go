// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/multierr"

	"github.com/okian/teampick/internal/domain/balance"
	"github.com/okian/teampick/internal/domain/model"
	"github.com/okian/teampick/internal/domain/partition"
	"github.com/okian/teampick/internal/domain/roster"
	"github.com/okian/teampick/internal/domain/scoring"
	"github.com/okian/teampick/internal/domain/types"
	"github.com/okian/teampick/pkg/logger"
	"github.com/okian/teampick/pkg/metrics"
)

// Service balances rosters and checks manual splits.
type Service struct {
	builder   *roster.Builder
	presenter types.Presenter

	// Configuration
	tiers         scoring.Tiers
	precision     int
	defaultRating int

	// Counters
	balanced      atomic.Int64
	rejected      atomic.Int64
	splitsValid   atomic.Int64
	splitsInvalid atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTiers sets the card tier thresholds used in views.
func WithTiers(tiers scoring.Tiers) Option {
	return func(s *Service) {
		if tiers.Silver <= tiers.Gold {
			s.tiers = tiers
		}
	}
}

// WithPrecision sets the number of decimals kept on displayed scores.
func WithPrecision(places int) Option {
	return func(s *Service) {
		if places >= 0 {
			s.precision = places
		}
	}
}

// WithDefaultRating sets the rating used for sub-ratings an entry omits.
func WithDefaultRating(r int) Option {
	return func(s *Service) {
		if r >= model.MinRating && r <= model.MaxRating {
			s.defaultRating = r
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		tiers:         scoring.DefaultTiers(),
		precision:     1,
		defaultRating: roster.DefaultRating,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.builder = roster.NewBuilder(roster.WithDefaultRating(s.defaultRating))
	s.presenter = types.NewPresenter(s.tiers, s.precision)

	return s
}

// Balance builds the roster and returns its most even 5/5 split.
func (s *Service) Balance(ctx context.Context, entries []roster.Entry) (types.Lineup, error) {
	players, err := s.build(ctx, entries)
	if err != nil {
		metrics.RecordBalance(metrics.OutcomeRejected)
		return types.Lineup{}, err
	}

	res, err := balance.Balance(players)
	if err != nil {
		s.reject(ctx, err)
		metrics.RecordBalance(metrics.OutcomeRejected)
		return types.Lineup{}, err
	}

	s.balanced.Add(1)
	metrics.RecordBalance(metrics.OutcomeBalanced)
	metrics.ObserveBalance(res.Difference, res.Evaluated)
	s.logger.Debug(ctx, "teams balanced",
		logger.Float64("difference", res.Difference),
		logger.Int("evaluated", res.Evaluated),
		logger.Any("teamA", res.IndicesA),
	)

	return types.Lineup{
		TeamA:      s.presenter.Team(types.TeamAName, players, res.IndicesA),
		TeamB:      s.presenter.Team(types.TeamBName, players, res.IndicesB),
		Difference: s.presenter.Score(res.Difference),
	}, nil
}

// Split evaluates a manual assignment. teamA lists roster indices and Team B
// is every other player. An unbalanced assignment is not an error: the view
// comes back with Valid false, a prompt and the problems found.
func (s *Service) Split(ctx context.Context, entries []roster.Entry, teamA []int) (types.SplitView, error) {
	players, err := s.build(ctx, entries)
	if err != nil {
		return types.SplitView{}, err
	}

	teamB := partition.Complement(len(players), teamA)
	shownA := members(len(players), teamA)
	view := types.SplitView{
		TeamA: s.presenter.Team(types.TeamAName, players, shownA),
		TeamB: s.presenter.Team(types.TeamBName, players, teamB),
	}

	if err := partition.Validate(len(players), teamA, teamB, model.TeamSize); err != nil {
		s.splitsInvalid.Add(1)
		metrics.RecordSplitValidation(false)
		view.Message = fmt.Sprintf("Assign exactly %d players to %s", model.TeamSize, types.TeamAName)
		for _, e := range multierr.Errors(err) {
			view.Problems = append(view.Problems, e.Error())
		}
		s.logger.Debug(ctx, "manual split rejected", logger.Error(err))
		return view, nil
	}

	s.splitsValid.Add(1)
	metrics.RecordSplitValidation(true)
	diff := s.presenter.Score(partition.Difference(
		partition.Select(players, teamA),
		partition.Select(players, teamB),
	))
	view.Valid = true
	view.Difference = &diff
	return view, nil
}

// Positions returns the positions a player may take.
func (s *Service) Positions() []model.Position {
	out := make([]model.Position, len(model.Positions))
	copy(out, model.Positions)
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"balanced":         s.balanced.Load(),
		"rejected":         s.rejected.Load(),
		"splitsValid":      s.splitsValid.Load(),
		"splitsInvalid":    s.splitsInvalid.Load(),
		"defaultRating":    s.defaultRating,
		"displayPrecision": s.precision,
		"goldThreshold":    s.tiers.Gold,
		"silverThreshold":  s.tiers.Silver,
	}
}

func (s *Service) build(ctx context.Context, entries []roster.Entry) ([]model.Player, error) {
	players, err := s.builder.Build(entries)
	if err != nil {
		s.reject(ctx, err)
		return nil, err
	}
	return players, nil
}

func (s *Service) reject(ctx context.Context, err error) {
	reason := model.Reason(err)
	s.rejected.Add(1)
	metrics.RecordRosterRejection(reason)
	s.logger.Info(ctx, "roster rejected",
		logger.String("reason", reason),
		logger.Error(err),
	)
}

// members returns the distinct in-range indices of idx in their given order.
func members(rosterSize int, idx []int) []int {
	seen := make(map[int]bool, len(idx))
	out := make([]int, 0, len(idx))
	for _, i := range idx {
		if i < 0 || i >= rosterSize || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	return out
}
