package main

import (
	"fmt"

	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newMergeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "merge <branch>",
		Short: "Merge a branch into the current branch",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(func(r *repo.Repo) error {
				report, err := r.Merge(args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				switch {
				case report.Outcome == repo.AlreadyUpToDate:
					fmt.Fprintln(out, "Given branch is an ancestor of the current branch.")
				case report.Outcome == repo.FastForwarded:
					fmt.Fprintln(out, "Current branch fast-forwarded.")
				case report.HasConflicts():
					fmt.Fprintln(out, "Encountered a merge conflict.")
				}
				return nil
			})
		},
	}
}
