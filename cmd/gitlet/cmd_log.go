package main

import (
	"fmt"
	"time"

	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newLogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show the history of the current branch",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(func(r *repo.Repo) error {
				entries, err := r.Log()
				if err != nil {
					return err
				}
				return writeLog(cmd, entries)
			})
		},
	}
}

func newGlobalLogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "global-log",
		Short: "Show every commit ever made",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(func(r *repo.Repo) error {
				entries, err := r.GlobalLog()
				if err != nil {
					return err
				}
				return writeLog(cmd, entries)
			})
		},
	}
}

func writeLog(cmd *cobra.Command, entries []repo.LogEntry) error {
	out := cmd.OutOrStdout()
	for _, e := range entries {
		if err := repo.WriteLogEntry(out, e, time.Local); err != nil {
			return fmt.Errorf("log: %w", err)
		}
	}
	return nil
}

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <message>",
		Short: "Print the ids of commits with the given message",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(func(r *repo.Repo) error {
				ids, err := r.Find(args[0])
				if err != nil {
					return err
				}
				for _, id := range ids {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			})
		},
	}
}
