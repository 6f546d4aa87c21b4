// Package roster turns raw player entries collected by a front end into
// validated domain players.
package roster

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/okian/teampick/internal/domain/model"
)

// DefaultRating is the rating given to sub-ratings an entry leaves out.
const DefaultRating = 5

// Entry is one player as submitted by a user. Missing ratings take the
// builder's default rating; a missing position means goalkeeper.
type Entry struct {
	Name     string `json:"name,omitempty" koanf:"name"`
	Position string `json:"position,omitempty" koanf:"position"`
	Attack   *int   `json:"attack,omitempty" koanf:"attack"`
	Defense  *int   `json:"defense,omitempty" koanf:"defense"`
	Passing  *int   `json:"passing,omitempty" koanf:"passing"`
	Pace     *int   `json:"pace,omitempty" koanf:"pace"`
	Physical *int   `json:"physical,omitempty" koanf:"physical"`
}

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithDefaultRating sets the rating used for missing sub-ratings.
// Values outside the rating bounds are ignored.
func WithDefaultRating(r int) Option {
	return func(b *Builder) {
		if r >= model.MinRating && r <= model.MaxRating {
			b.defaultRating = r
		}
	}
}

// Builder validates entries and builds players.
type Builder struct {
	defaultRating int
}

// NewBuilder creates a Builder with configuration options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{defaultRating: DefaultRating}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// DefaultRating returns the rating applied to missing sub-ratings.
func (b *Builder) DefaultRating() int { return b.defaultRating }

// Build converts entries into players. It requires exactly model.RosterSize
// entries. All problems are collected: the returned error may combine
// model.ErrInvalidRosterSize, model.ErrUnknownPosition and
// model.ErrRatingOutOfRange, each matchable with errors.Is.
func (b *Builder) Build(entries []Entry) ([]model.Player, error) {
	var errs error
	if len(entries) != model.RosterSize {
		errs = multierr.Append(errs, fmt.Errorf("got %d players: %w", len(entries), model.ErrInvalidRosterSize))
	}

	players := make([]model.Player, len(entries))
	for i, e := range entries {
		p, err := b.player(i, e)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		players[i] = p
	}
	if errs != nil {
		return nil, errs
	}
	return players, nil
}

func (b *Builder) player(i int, e Entry) (model.Player, error) {
	var errs error

	pos, err := model.ParsePosition(e.Position)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("player %d: %w", i+1, err))
	}

	rating := func(field string, v *int) int {
		if v == nil {
			return b.defaultRating
		}
		if *v < model.MinRating || *v > model.MaxRating {
			errs = multierr.Append(errs, fmt.Errorf("player %d: %s=%d not in [%d,%d]: %w",
				i+1, field, *v, model.MinRating, model.MaxRating, model.ErrRatingOutOfRange))
		}
		return *v
	}
	r := model.Ratings{
		Attack:   rating("attack", e.Attack),
		Defense:  rating("defense", e.Defense),
		Passing:  rating("passing", e.Passing),
		Pace:     rating("pace", e.Pace),
		Physical: rating("physical", e.Physical),
	}
	if errs != nil {
		return model.Player{}, errs
	}

	return model.Player{Name: DisplayName(i, e.Name), Position: pos, Ratings: r}, nil
}

// DisplayName returns the trimmed name, or "Player N" (1-based) if blank.
func DisplayName(i int, name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return fmt.Sprintf("Player %d", i+1)
}

// Rating is a helper for building entries in code.
func Rating(v int) *int { return &v }
