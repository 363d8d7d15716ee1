package cli

import (
	"github.com/spf13/cobra"

	"aider.dev/aider/internal/git"
)

// newCommitCmd creates the commit command
func newCommitCmd() *cobra.Command {
	var (
		message    string
		chatCtx    string
		aiderEdits bool
	)

	cmd := &cobra.Command{
		Use:   "commit [files...]",
		Short: "Stage and commit changes with a synthesized or explicit message",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, splog, err := openRepo(cmd, args)
			if err != nil {
				return err
			}

			res := repo.Commit(cmd.Context(), git.CommitOptions{
				Paths:      args,
				Context:    chatCtx,
				Message:    message,
				AiderEdits: aiderEdits,
			})
			if res == nil {
				splog.Info("Nothing committed.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message (skips generation)")
	cmd.Flags().StringVar(&chatCtx, "context", "", "Free-text context for message generation")
	cmd.Flags().BoolVar(&aiderEdits, "aider-edits", false, "Mark the commit as agent-originated for attribution")

	return cmd
}
