package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// newBranchCmd creates the branch command and its subcommands
func newBranchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch",
		Short: "Manage the aider feature-branch workflow",
	}

	cmd.AddCommand(newBranchFeatureCmd())
	cmd.AddCommand(newBranchListCmd())
	cmd.AddCommand(newBranchCheckoutCmd())

	return cmd
}

// newBranchFeatureCmd creates the feature subcommand
func newBranchFeatureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feature [suffix]",
		Short: "Create and check out a new feature branch from develop",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, _, err := openRepo(cmd, nil)
			if err != nil {
				return err
			}

			suffix := ""
			if len(args) > 0 {
				suffix = args[0]
			}

			_, err = repo.CreateFeatureBranch(cmd.Context(), suffix)
			return err
		},
	}

	return cmd
}

// newBranchListCmd creates the list subcommand
func newBranchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List aider branches plus the primary branch",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, _, err := openRepo(cmd, nil)
			if err != nil {
				return err
			}

			branches, err := repo.ListAiderBranches()
			if err != nil {
				return err
			}

			current, _ := repo.CurrentBranch()
			for _, b := range branches {
				marker := " "
				if b == current {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, b)
			}
			return nil
		},
	}
}

// newBranchCheckoutCmd creates the checkout subcommand
func newBranchCheckoutCmd() *cobra.Command {
	var (
		primary bool
		develop bool
	)

	cmd := &cobra.Command{
		Use:   "checkout [branch]",
		Short: "Switch to a branch. If no branch is provided, opens an interactive selector.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, _, err := openRepo(cmd, nil)
			if err != nil {
				return err
			}

			switch {
			case primary:
				return repo.CheckoutPrimary(cmd.Context())
			case develop:
				return repo.CheckoutDevelop(cmd.Context())
			}

			branchName := ""
			if len(args) > 0 {
				branchName = args[0]
			}
			if branchName == "" {
				branches, err := repo.ListAiderBranches()
				if err != nil {
					return err
				}
				prompt := &survey.Select{
					Message: "Select a branch to check out:",
					Options: branches,
				}
				if err := survey.AskOne(prompt, &branchName); err != nil {
					return err
				}
			}

			return repo.Checkout(cmd.Context(), branchName)
		},
	}

	cmd.Flags().BoolVar(&primary, "primary", false, "Checkout the primary branch")
	cmd.Flags().BoolVar(&develop, "develop", false, "Checkout the develop branch")

	return cmd
}
