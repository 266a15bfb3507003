// Package cli implements the mergeln command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sdejongh/mergeln/pkg/merge"
)

const usageLine = "Usage: mergeln [flags] file1 file2 or mergeln [flags] dir1 dir2"

// UsageError is returned when the command line cannot be parsed
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	if e.Err == nil {
		return usageLine
	}
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// NewRootCommand creates the mergeln command with its subcommands.
// Narration goes to stdout and errors to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	global := &GlobalFlags{}
	flags := &MergeFlags{}

	cmd := &cobra.Command{
		Use:   "mergeln [flags] <pathA> <pathB>",
		Short: "Replace duplicate files with hard links",
		Long: `mergeln compares two files, or two directory trees entry by entry, and
replaces every file of the second path whose content is identical to its
counterpart in the first path with a hard link to it.

Hidden entries are ignored. Both paths must be on the same filesystem.
A path literally named "config" or "version" must be written as ./config.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Args:          exactlyTwoPaths,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runMerge(ctx, global, flags, args[0], args[1], stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	AddGlobalFlags(cmd, global)
	AddMergeFlags(cmd, flags)

	cmd.AddCommand(NewConfigCommand(global))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var usageErr *UsageError
	var mismatchErr *merge.TypeMismatchError
	switch {
	case errors.As(err, &mismatchErr):
		// already reported
	case errors.As(err, &usageErr):
		if usageErr.Err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", usageErr.Err)
		}
		fmt.Fprintln(stderr, usageLine)
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

func exactlyTwoPaths(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return &UsageError{}
	}
	return nil
}
