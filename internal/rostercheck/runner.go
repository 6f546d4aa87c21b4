package rostercheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/teampick/internal/domain/types"
	"github.com/okian/teampick/pkg/logger"
)

// File permission constants.
const (
	outputFilePermission = 0o600
	percentageMultiplier = 100
)

// counters are shared by the request goroutines.
type counters struct {
	balanceChecked  atomic.Int64
	balanceMismatch atomic.Int64
	splitsChecked   atomic.Int64
	splitsMismatch  atomic.Int64
	requestsFailed  atomic.Int64
}

// Run executes a complete check against cfg.BaseURL. The returned stats are
// filled even when an error is returned.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	if err := cfg.validate(); err != nil {
		return stats, err
	}
	log := logger.Get().Named("rostercheck")

	log.Info(ctx, "starting teampick check",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("rounds", cfg.Rounds),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()),
		logger.Bool("verbose", cfg.Verbose))

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)
	if err := client.health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	rounds := generateRounds(cfg.Rounds)
	stats.RostersGenerated = len(rounds)

	ref := newReference(cfg)
	var c counters

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, round := range rounds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			checkRound(gctx, log, client, ref, &c, i, round, cfg.Verbose)
			return nil
		})
	}
	err := g.Wait()

	stats.BalanceChecked = int(c.balanceChecked.Load())
	stats.BalanceMismatch = int(c.balanceMismatch.Load())
	stats.SplitsChecked = int(c.splitsChecked.Load())
	stats.SplitsMismatch = int(c.splitsMismatch.Load())
	stats.RequestsFailed = int(c.requestsFailed.Load())
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	if cfg.OutputFile != "" {
		if err := saveRounds(cfg.OutputFile, rounds); err != nil {
			log.Warn(ctx, "failed to save rounds", logger.Error(err))
		} else {
			log.Info(ctx, "rounds saved to file", logger.String("filename", cfg.OutputFile))
		}
	}

	displayFinalStats(ctx, log, stats)

	switch {
	case err != nil:
		return stats, fmt.Errorf("check interrupted: %w", err)
	case stats.Mismatches() > 0:
		return stats, fmt.Errorf("%w: %d balance and %d split answers", ErrMismatch, stats.BalanceMismatch, stats.SplitsMismatch)
	case stats.RequestsFailed > 0:
		return stats, fmt.Errorf("%w: %d requests", ErrRequest, stats.RequestsFailed)
	}
	log.Info(ctx, "check completed successfully")
	return stats, nil
}

func checkRound(ctx context.Context, log logger.Logger, client *HTTPClient, ref reference, c *counters, i int, round Round, verbose bool) {
	var lineup types.Lineup
	if err := client.postJSON(ctx, "/teams/balance", round, &lineup); err != nil {
		c.requestsFailed.Add(1)
		log.Error(ctx, "balance request failed", logger.Int("round", i), logger.Error(err))
	} else {
		c.balanceChecked.Add(1)
		if err := ref.checkBalance(round, lineup); err != nil {
			c.balanceMismatch.Add(1)
			log.Error(ctx, "balance mismatch", logger.Int("round", i), logger.Error(err))
		} else if verbose {
			log.Info(ctx, "balance verified", logger.Int("round", i), logger.Float64("difference", lineup.Difference))
		}
	}

	var view types.SplitView
	if err := client.postJSON(ctx, "/teams/split", round, &view); err != nil {
		c.requestsFailed.Add(1)
		log.Error(ctx, "split request failed", logger.Int("round", i), logger.Error(err))
		return
	}
	c.splitsChecked.Add(1)
	if err := ref.checkSplit(round, view); err != nil {
		c.splitsMismatch.Add(1)
		log.Error(ctx, "split mismatch", logger.Int("round", i), logger.Error(err))
	} else if verbose {
		log.Info(ctx, "split verified", logger.Int("round", i), logger.Bool("valid", view.Valid))
	}
}

// saveRounds writes the generated rounds as a JSON array.
func saveRounds(filename string, rounds []Round) error {
	if len(rounds) == 0 {
		return errors.New("no rounds to save")
	}
	data, err := json.MarshalIndent(rounds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rounds: %w", err)
	}
	if err := os.WriteFile(filename, data, outputFilePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var agreement, roundsPerSecond float64

	if checked := stats.BalanceChecked + stats.SplitsChecked; checked > 0 {
		agreement = float64(checked-stats.Mismatches()) / float64(checked) * percentageMultiplier
	}
	if stats.Duration > 0 {
		roundsPerSecond = float64(stats.RostersGenerated) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("rostersGenerated", stats.RostersGenerated),
		logger.Int("balanceChecked", stats.BalanceChecked),
		logger.Int("balanceMismatch", stats.BalanceMismatch),
		logger.Int("splitsChecked", stats.SplitsChecked),
		logger.Int("splitsMismatch", stats.SplitsMismatch),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("agreement", agreement),
		logger.Float64("roundsPerSecond", roundsPerSecond))
}
