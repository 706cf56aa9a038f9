package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vis-editor/samengine/engine"
	"github.com/vis-editor/samengine/samlog"
)

// newRunCmd builds `samctl run <command-line> <file>...`: load every
// file argument into an Editor, run the one command line against the
// last one opened (which is left current), and exit non-zero on any SamError other
// than ErrOK. w/r/e inside the command line honor --force directly,
// exercising the Force command flag from outside the engine (SPEC_FULL
// §C).
func newRunCmd(flags *globalFlags) *cobra.Command {
	var scriptPath string

	cmd := &cobra.Command{
		Use:   "run <command-line> <file>...",
		Short: "run one sam command line against one or more files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(flags)
			if err != nil {
				return err
			}

			ed := engine.NewEditor()
			ed.SetOptions(opts)
			ed.Logger = samlog.Base()

			commandLine := applyForce(args[0], flags.force)
			fileArgs := args[1:]
			if err := openFiles(ed, fileArgs); err != nil {
				return err
			}

			ctx := context.Background()
			if scriptPath != "" {
				lines, err := readLines(scriptPath)
				if err != nil {
					return err
				}
				for i, line := range lines {
					lines[i] = applyForce(line, flags.force)
				}
				results, err := engine.RunScript(ctx, ed, lines)
				reportResults(flags, results)
				return err
			}

			res := engine.Run(ctx, ed, commandLine)
			reportResults(flags, []engine.Result{res})
			if res.Err != engine.ErrOK {
				return res.Cause
			}
			if exit, code := res.Exit, res.ExitCode; exit && code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "run every line of this file as a separate command line instead of args[0]")
	return cmd
}

func reportResults(flags *globalFlags, results []engine.Result) {
	for _, res := range results {
		if flags.trace {
			fmt.Fprintf(os.Stderr, "samctl: invocation=%s err=%s\n", res.Invocation, res.Err)
		}
		if res.Err != engine.ErrOK {
			fmt.Fprintf(os.Stderr, "samctl: %s: %v\n", res.Err, res.Cause)
		}
	}
}
