package main

import (
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	cfg := repo.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new repository in the current directory",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Init(a.dir, cfg, repo.Options{Logger: a.logger})
			if err != nil {
				return err
			}
			return r.Close()
		},
	}

	cmd.Flags().StringVar(&cfg.Core.Hash, "hash", cfg.Core.Hash, "object digest: sha256 or blake2b")
	cmd.Flags().StringVar(&cfg.Core.Compression, "compression", cfg.Core.Compression, "object compression: none or zstd")
	cmd.Flags().StringVar(&cfg.Core.Storage, "storage", cfg.Core.Storage, "storage backend: dir or sqlite")

	return cmd
}
