package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/teampick/internal/adapters/render"
	"github.com/okian/teampick/internal/adapters/rosterfile"
)

func newSplitCmd() *cobra.Command {
	var (
		out   outputOptions
		teamA []int
	)

	cmd := &cobra.Command{
		Use:   "split <roster-file>",
		Short: "Check a hand-picked Team A; Team B is everyone else",
		Long: `split shows the two teams for a hand-picked Team A and, when the
split is five against five, the difference in team strength. Indices are
zero-based positions in the roster file.`,
		Example: "  teampick split roster.yaml --team-a 0,2,4,6,8",
		Args:    cobra.ExactArgs(1),
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
			split, err := svc.Split(cmd.Context(), entries, teamA)
			if err != nil {
				return fmt.Errorf("cannot split %s: %w", args[0], err)
			}

			if out.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(split)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Split(split, view))
			return err
		},
	}
	out.bind(cmd)
	cmd.Flags().IntSliceVar(&teamA, "team-a", nil, "roster indices of Team A, e.g. 0,1,2,3,4")
	return cmd
}
