package main

import (
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newCheckoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout (<branch> | -- <file> | <commit> -- <file>)",
		Short: "Switch branches or restore a file from a commit",
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := cmd.ArgsLenAtDash()
			switch {
			case dash == 0 && len(args) == 1:
				return a.withRepo(func(r *repo.Repo) error {
					return r.CheckoutFile(a.repoPath(r, args[0]))
				})
			case dash == 1 && len(args) == 2:
				return a.withRepo(func(r *repo.Repo) error {
					return r.CheckoutCommitFile(args[0], a.repoPath(r, args[1]))
				})
			case dash < 0 && len(args) == 1:
				return a.withRepo(func(r *repo.Repo) error {
					return r.CheckoutBranch(args[0])
				})
			default:
				return repo.ErrIncorrectOperands
			}
		},
	}
}
