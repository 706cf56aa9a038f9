// Package engine wires the lexer, address/command parser, per-selection
// executor, and transcript packages into the single entry point a host
// (a CLI, a plugin, a test) actually calls: Run, one command line in,
// one SamError out. It mirrors sam.c's sam_cmd state machine: lex,
// validate (parse), execute, commit, report.
package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/vis-editor/samengine/command"
	"github.com/vis-editor/samengine/lexer"
	"github.com/vis-editor/samengine/samlog"
	"github.com/vis-editor/samengine/transcript"
)

// Result is everything a caller needs to report back to a user after one
// Run call: the classified outcome, the underlying error (nil on
// success), the correlation id tagging this invocation's log lines, and
// the exit request (if any) latched by q/qall/wq.
type Result struct {
	Err        SamError
	Cause      error
	Invocation string
	Exit       bool
	ExitCode   int
}

// Run lexes, parses, and executes one sam command line against ed's
// current file, then commits the accumulated transcript (spec.md §4.8)
// if execution succeeded. Every call is tagged with a fresh UUID used as
// the log correlation id, the Go analogue of the two bump arenas sam.c
// resets per invocation (§5): one id names one arena generation.
func Run(ctx context.Context, ed *Editor, commandLine string) Result {
	id := uuid.New().String()
	base := ed.Logger
	if base == nil {
		base = samlog.Discard()
	}
	logger := base.With(zap.String("invocation", id))

	file := ed.CurrentFile()
	if file != nil {
		logger = samlog.ForCommand(logger, file.Name, commandLine)
	}

	ed.resetExitLatch()

	// Lexing.
	tokens := lexer.Lex([]byte(commandLine))

	// Validating: parsing doubles as validation here, since a command
	// tree that fails to build (bad address, unknown command, unmatched
	// brace, destructive command in a loop) can't be executed at all.
	reg := command.DefaultRegistry()
	head, err := command.ParseStatementList(tokens, reg)
	if err != nil {
		logger.Warn("parse failed", zap.Error(err))
		return Result{Err: ErrCommand, Cause: err, Invocation: id}
	}

	// Executing.
	trans := transcript.New()
	execCtx := &command.ExecContext{Ctx: ctx, Host: ed, File: file, Trans: trans}
	if err := command.Execute(execCtx, head); err != nil {
		logger.Warn("execute failed", zap.Error(err))
		return Result{Err: ErrExecute, Cause: err, Invocation: id}
	}

	// Committing: the top-level file's own pending edits (X/Y already
	// committed every file they touched as they went, inside Execute).
	if file != nil && trans.Len() > 0 {
		if err := trans.Commit(file.Text, file.View, file.Marks); err != nil {
			logger.Warn("commit conflict", zap.Error(err))
			return Result{Err: ErrConflict, Cause: err, Invocation: id}
		}
		file.View.Normalize()
	}

	// Reporting.
	exit, code := ed.ShouldExit()
	logger.Debug("sam_cmd completed", zap.Bool("exit", exit))
	return Result{Err: ErrOK, Invocation: id, Exit: exit, ExitCode: code}
}

// RunScript runs each command line against ed in order, continuing past
// a per-line failure rather than aborting the batch (`samctl run
// --script` drives it over a script of sam commands). Errors from
// every failing line are aggregated with go-multierror rather than only
// surfacing the first, mirroring DataDog-datadog-agent's use of the same
// library to report multi-component failures without picking just one.
// Execution stops early only once an exit is requested.
func RunScript(ctx context.Context, ed *Editor, lines []string) ([]Result, error) {
	results := make([]Result, 0, len(lines))
	var errs *multierror.Error
	for _, line := range lines {
		if line == "" {
			continue
		}
		res := Run(ctx, ed, line)
		results = append(results, res)
		if res.Err != ErrOK {
			errs = multierror.Append(errs, res.Cause)
		}
		if res.Exit {
			break
		}
	}
	return results, errs.ErrorOrNil()
}
