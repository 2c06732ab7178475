package main

import (
	"fmt"

	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newBranchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "branch [name]",
		Short: "List branches, or create one at the current commit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return repo.ErrIncorrectOperands
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(func(r *repo.Repo) error {
				if len(args) == 1 {
					return r.Branch(args[0])
				}

				branches, err := r.Branches()
				if err != nil {
					return err
				}
				current, err := r.CurrentBranch()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, b := range branches {
					if b == current {
						fmt.Fprintf(out, "* %s\n", b)
					} else {
						fmt.Fprintf(out, "  %s\n", b)
					}
				}
				return nil
			})
		},
	}
}

func newRmBranchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm-branch <name>",
		Short: "Delete a branch pointer",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(func(r *repo.Repo) error {
				return r.RemoveBranch(args[0])
			})
		},
	}
}
