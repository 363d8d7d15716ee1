package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDiffCmd creates the diff command
func newDiffCmd() *cobra.Command {
	var (
		fromCommit string
		toCommit   string
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "diff [files...]",
		Short: "Show pending changes, or the diff between two commits",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, _, err := openRepo(cmd, args)
			if err != nil {
				return err
			}

			if fromCommit != "" && toCommit != "" {
				diff, err := repo.DiffCommits(cmd.Context(), pretty, fromCommit, toCommit)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), diff)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), repo.Diffs(cmd.Context(), args...))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromCommit, "from", "", "Diff from this commit")
	cmd.Flags().StringVar(&toCommit, "to", "", "Diff to this commit")
	cmd.Flags().BoolVar(&pretty, "color", false, "Colorize commit-to-commit diffs")

	return cmd
}
