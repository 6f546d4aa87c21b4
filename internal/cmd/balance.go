package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/teampick/internal/adapters/render"
	"github.com/okian/teampick/internal/adapters/rosterfile"
)

// outputOptions are shared by the commands that print a lineup.
type outputOptions struct {
	view string
	json bool
}

func (o *outputOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.view, "view", string(render.CardView), "layout: card or pitch")
	cmd.Flags().BoolVar(&o.json, "json", false, "print JSON instead of cards")
}

func newBalanceCmd() *cobra.Command {
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "balance <roster-file>",
		Short: "Find the most even 5/5 split of a roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := render.ParseView(out.view)
			if err != nil {
				return err
			}
			entries, err := rosterfile.Load(args[0])
			if err != nil {
				return err
			}

			svc := newService(loadedConfig(cmd))
			lineup, err := svc.Balance(cmd.Context(), entries)
			if err != nil {
				return fmt.Errorf("cannot balance %s: %w", args[0], err)
			}

			if out.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(lineup)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Lineup(lineup, view))
			return err
		},
	}
	out.bind(cmd)
	return cmd
}
