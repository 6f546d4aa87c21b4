// Package cmd implements the teampick command line.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/okian/teampick/internal/app"
	"github.com/okian/teampick/internal/config"
	"github.com/okian/teampick/internal/domain/scoring"
	"github.com/okian/teampick/pkg/logger"
)

// runtimeKey stores the loaded config on the command context.
type runtimeKey struct{}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "teampick",
		Short: "Split ten players into two balanced teams of five",
		Long: `teampick rates ten players on attack, defense, passing, pace and
physical, then searches every 5/5 split for the one whose team strengths
are closest. Rosters are read from YAML or JSON files:

  players:
    - name: Ana
      position: FWD
      attack: 9

Settings come from defaults, the YAML file named by TEAMPICK_CONFIG and
TEAMPICK_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if err := logger.Init(
				logger.WithWriter(cmd.ErrOrStderr()),
				logger.WithFormat(cfg.LogFormat),
			); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), runtimeKey{}, cfg))
			return nil
		},
	}
	root.SetContext(context.Background())

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log_level: debug, info, warn, error")

	root.AddCommand(newBalanceCmd(), newSplitCmd(), newCheckCmd())
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// loadedConfig returns the config stored by the root pre-run.
func loadedConfig(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(runtimeKey{}).(*config.Config); ok {
		return cfg
	}
	return config.New()
}

func newService(cfg *config.Config) *service.Service {
	return service.New(
		service.WithLogger(logger.Named("cli")),
		service.WithDefaultRating(cfg.DefaultRating),
		service.WithPrecision(cfg.DisplayPrecision),
		service.WithTiers(scoring.Tiers{Gold: cfg.GoldThreshold, Silver: cfg.SilverThreshold}),
	)
}
