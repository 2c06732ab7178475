package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app carries what every command needs: where to look for the repository,
// where to write, and how to log.
type app struct {
	dir     string
	verbose bool
	stdout  io.Writer
	stderr  io.Writer
	logger  *slog.Logger
}

// run executes one gitlet command and returns the process exit code. User
// errors are printed to stdout as a single line and still exit 0; anything
// else is unexpected and exits 1.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	if msg, ok := repo.UserMessage(err); ok {
		fmt.Fprintln(stdout, msg)
		return 0
	}
	fmt.Fprintf(stderr, "gitlet: %v\n", err)
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "gitlet",
		Short:         "A miniature version-control system",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return repo.ErrUnknownCommand
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return repo.ErrNoCommand
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = newLogger(a.stderr, a.verbose || envVerbose())
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVarP(&a.dir, "dir", "C", ".", "run as if started in this directory")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log repository operations to stderr")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return repo.ErrIncorrectOperands
	})

	root.AddCommand(newInitCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newCommitCmd(a))
	root.AddCommand(newRmCmd(a))
	root.AddCommand(newLogCmd(a))
	root.AddCommand(newGlobalLogCmd(a))
	root.AddCommand(newFindCmd(a))
	root.AddCommand(newStatusCmd(a))
	root.AddCommand(newCheckoutCmd(a))
	root.AddCommand(newBranchCmd(a))
	root.AddCommand(newRmBranchCmd(a))
	root.AddCommand(newResetCmd(a))
	root.AddCommand(newMergeCmd(a))
	return root
}

func envVerbose() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("GITLET_VERBOSE")))
	return v == "1" || v == "true" || v == "yes"
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// exactArgs is cobra.ExactArgs with gitlet's operand error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return repo.ErrIncorrectOperands
		}
		return nil
	}
}

func (a *app) open() (*repo.Repo, error) {
	return repo.Open(a.dir, repo.Options{Logger: a.logger})
}

// withRepo opens the repository, runs fn and closes it.
func (a *app) withRepo(fn func(r *repo.Repo) error) error {
	r, err := a.open()
	if err != nil {
		return err
	}
	defer r.Close()
	return fn(r)
}

// repoPath turns a path given on the command line, relative to a.dir, into
// a slash-separated path relative to the repository root.
func (a *app) repoPath(r *repo.Repo, p string) string {
	if !filepath.IsAbs(p) {
		base, err := filepath.Abs(a.dir)
		if err != nil {
			return filepath.ToSlash(p)
		}
		p = filepath.Join(base, p)
	}
	rel, err := filepath.Rel(r.RootDir, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}
