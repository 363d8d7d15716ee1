// Package cli wires the aider git layer into a cobra command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "aider-git",
		Short:   "aider-git inspects repository state and manages aider's commit and branch workflow",
		Version: version,
		Long: `aider-git wraps a git repository for an automated coding assistant: it
inspects tracked and dirty files, commits changes with synthesized messages,
and drives a git-flow-like feature branch lifecycle.`,
	}

	rootCmd.SetVersionTemplate("aider-git " + version + " (" + commit + ", " + date + ")\n")

	rootCmd.PersistentFlags().StringP("directory", "C", "", "Run as if started in this directory")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress informational output")

	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newBranchCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newDiffCmd())

	return rootCmd
}
