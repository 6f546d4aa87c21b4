package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/teampick/internal/rostercheck"
)

func newCheckCmd() *cobra.Command {
	c := rostercheck.NewConfig()

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify a running server against the local search",
		Long: `check generates random rosters, sends them to a running teampick
server and compares every balance and split answer with the result of the
local exhaustive search.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadedConfig(cmd)
			if !cmd.Flags().Changed("precision") {
				c.Precision = cfg.DisplayPrecision
			}
			c.DefaultRating = cfg.DefaultRating

			stats, err := rostercheck.Run(cmd.Context(), c)
			if stats != nil && stats.RostersGenerated > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(),
					"rosters: %d  balance checked: %d (mismatch %d)  splits checked: %d (mismatch %d)  failed requests: %d  in %s\n",
					stats.RostersGenerated, stats.BalanceChecked, stats.BalanceMismatch,
					stats.SplitsChecked, stats.SplitsMismatch, stats.RequestsFailed, stats.Duration)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&c.BaseURL, "url", c.BaseURL, "base URL of the service")
	cmd.Flags().IntVar(&c.Rounds, "rounds", c.Rounds, "number of random rosters")
	cmd.Flags().IntVar(&c.Workers, "workers", c.Workers, "number of concurrent requests")
	cmd.Flags().DurationVar(&c.Timeout, "timeout", c.Timeout, "HTTP request timeout")
	cmd.Flags().IntVar(&c.Precision, "precision", c.Precision, "decimals the server keeps on scores (default: display_precision)")
	cmd.Flags().StringVar(&c.OutputFile, "output", "", "write the generated rosters to this JSON file")
	cmd.Flags().BoolVar(&c.Verbose, "verbose", false, "log every round")
	return cmd
}
