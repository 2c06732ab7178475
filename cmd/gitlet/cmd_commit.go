package main

import (
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newCommitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "commit <message>",
		Short: "Record the staged changes",
		Args: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 0:
				return repo.ErrEmptyMessage
			case 1:
				return nil
			default:
				return repo.ErrIncorrectOperands
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(func(r *repo.Repo) error {
				_, err := r.Commit(args[0])
				return err
			})
		},
	}
}
