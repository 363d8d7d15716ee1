package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	var tracked bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current branch and pending changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, _, err := openRepo(cmd, nil)
			if err != nil {
				return err
			}

			branch, err := repo.CurrentBranch()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "On branch %s\n", branch)

			if tracked {
				for _, f := range repo.TrackedFiles() {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			}

			dirty := repo.DirtyFiles(cmd.Context())
			if len(dirty) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Working tree clean")
				return nil
			}
			for _, f := range dirty {
				fmt.Fprintf(cmd.OutOrStdout(), "  modified: %s\n", f)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&tracked, "tracked", false, "List tracked files instead of pending changes")

	return cmd
}
