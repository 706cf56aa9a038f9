package command

import (
	"strconv"
	"strings"

	"github.com/vis-editor/samengine/address"
	"github.com/vis-editor/samengine/selection"
	"github.com/vis-editor/samengine/transcript"
)

// DefaultRegistry returns a Registry populated with every built-in command
// (spec.md §4.7's per-command table, supplemented from vis-cmds.c for the
// vi(m)-side window/option/mapping commands). Flags are grounded on
// sam.c's command_definition_table.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range builtinDefs {
		r.Register(def)
	}
	return r
}

var builtinDefs = []Def{
	{Name: "a", Help: "append text after the address", Fn: cmdAppend, Flags: Text | Win},
	{Name: "c", Help: "change the address to text", Fn: cmdChange, Flags: Text | Win},
	{Name: "i", Help: "insert text before the address", Fn: cmdInsert, Flags: Text | Win},
	{Name: "d", Help: "delete the address", Fn: cmdDelete, Flags: Win},
	{Name: "p", Help: "print the address (move dot there)", Fn: cmdPrint, Flags: Win},

	{Name: "g", Help: "run the sub-command if the address matches", Fn: cmdGuardMatch, Flags: CountFlag | Regex | Sub | Win},
	{Name: "v", Help: "run the sub-command if the address does not match", Fn: cmdGuardNoMatch, Flags: CountFlag | Regex | Sub},

	// x/y are dispatched directly by runLoop (command/loop.go), never
	// through Fn; a definition still needs one to satisfy the type.
	{Name: "x", Help: "run the sub-command over each match", Fn: cmdLoopUnreachable, Flags: Sub | Regex | RegexDefault | AddressAll1Cursor | Loop | Win},
	{Name: "y", Help: "run the sub-command over each gap between matches", Fn: cmdLoopUnreachable, Flags: Sub | Regex | AddressAll1Cursor | Loop | Win},

	{Name: "X", Help: "run the sub-command on files whose name matches", Fn: cmdFileLoop, Flags: Sub | Regex | RegexDefault | AddressNone | Once},
	{Name: "Y", Help: "run the sub-command on files whose name does not match", Fn: cmdFileLoopInverse, Flags: Sub | Regex | AddressNone | Once},

	{Name: "s", Help: "deprecated: use x/y and c", Fn: cmdSubstituteHint, Flags: Shell},

	{Name: ">", Help: "pipe the address to a shell command", Fn: cmdPipeOut, Flags: Shell | AddressLine | Win},
	{Name: "<", Help: "replace the address with a shell command's output", Fn: cmdPipeIn, Flags: Shell | AddressPos | Win},
	{Name: "|", Help: "pipe the address through a shell command", Fn: cmdPipeThrough, Flags: Shell | Win},
	{Name: "!", Help: "run a shell command", Fn: cmdBang, Flags: Shell | Once | AddressNone | Win},

	{Name: "w", Help: "write the address to a file", Fn: cmdWrite, Flags: Argv | Force | Once | AddressAll | Win},
	{Name: "r", Help: "read a file's contents after the address", Fn: cmdReadFile, Flags: Argv | AddressAfter},
	{Name: "e", Help: "edit a file, discarding unsaved changes with !", Fn: cmdEdit, Flags: Argv | Force | Once | AddressNone | Destructive | Win},
	{Name: "q", Help: "close the current window", Fn: cmdQuit, Flags: Argv | Force | Once | AddressNone | Destructive},
	{Name: "wq", Help: "write then close the current window", Fn: cmdWriteQuit, Flags: Argv | Force | Once | AddressAll | Destructive | Win},
	{Name: "qall", Help: "close every window", Fn: cmdQuitAll, Flags: Argv | Force | Once | AddressNone | Destructive},

	{Name: "cd", Help: "change the working directory", Fn: cmdChdir, Flags: Argv | Once | AddressNone},
	{Name: "help", Help: "list available commands", Fn: cmdHelp, Flags: Argv | Once | AddressNone},
	{Name: "set", Help: "set an editor option", Fn: cmdSet, Flags: Argv | Once | AddressNone},
	{Name: "map", Help: "add a key mapping", Fn: cmdMap, Flags: Argv | Force | Once | AddressNone},
	{Name: "map-window", Help: "add a window-local key mapping", Fn: cmdMap, Flags: Argv | Force | Once | AddressNone},
	{Name: "unmap", Help: "remove a key mapping", Fn: cmdUnmap, Flags: Argv | Once | AddressNone},
	{Name: "unmap-window", Help: "remove a window-local key mapping", Fn: cmdUnmap, Flags: Argv | Once | AddressNone | Win},
	{Name: "langmap", Help: "configure a keyboard layout mapping", Fn: cmdLangmap, Flags: Argv | Force | Once | AddressNone},

	{Name: "new", Help: "open a new, empty horizontal window", Fn: cmdNew, Flags: Argv | Once | AddressNone},
	{Name: "open", Help: "open a file in a new window", Fn: cmdOpen, Flags: Argv | Once | AddressNone},
	{Name: "split", Help: "split the window horizontally", Fn: cmdSplit, Flags: Argv | Once | AddressNone | Win},
	{Name: "vnew", Help: "open a new, empty vertical window", Fn: cmdVnew, Flags: Argv | Once | AddressNone},
	{Name: "vsplit", Help: "split the window vertically", Fn: cmdVsplit, Flags: Argv | Once | AddressNone | Win},

	{Name: "earlier", Help: "undo to an earlier point in history", Fn: cmdEarlier, Flags: Argv | Once | AddressNone | Win},
	{Name: "later", Help: "redo to a later point in history", Fn: cmdLater, Flags: Argv | Once | AddressNone | Win},
}

// --- text editing: a/i/c/d/p ---

func cmdAppend(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	text := ExpandText([]byte(cmd.Args[0]), ctx.Registers())
	return ctx.Trans.RecordInsert(rng.End, text)
}

func cmdInsert(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	text := ExpandText([]byte(cmd.Args[0]), ctx.Registers())
	return ctx.Trans.RecordInsert(rng.Start, text)
}

func cmdChange(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	text := ExpandText([]byte(cmd.Args[0]), ctx.Registers())
	return ctx.Trans.RecordChange(rng.Start, rng.End, text)
}

func cmdDelete(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	return ctx.Trans.RecordDelete(rng.Start, rng.End)
}

// cmdPrint moves dot to the address without otherwise changing the
// buffer; a non-empty range becomes an anchored (visual) selection,
// matching View.New's convention (spec.md §4.7 "p").
func cmdPrint(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	ctx.File.View.SetRange(sel, rng.Start, rng.End)
	ctx.File.View.Anchor(sel, rng.Start != rng.End)
	return nil
}

// --- guards: g/v ---

func cmdGuardMatch(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	return runGuard(ctx, cmd, sel, rng, true)
}

func cmdGuardNoMatch(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	return runGuard(ctx, cmd, sel, rng, false)
}

// cmdLoopUnreachable backs x/y's Def.Fn slot: executeOne routes Loop
// commands to runLoop directly (and dispatchSub routes a nested x/y the
// same way), so this is never actually invoked.
func cmdLoopUnreachable(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	return nil
}

// --- file iteration: X/Y ---

func cmdFileLoop(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	return runFileLoop(ctx, cmd, true)
}

func cmdFileLoopInverse(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	return runFileLoop(ctx, cmd, false)
}

// --- shell: s/>/</|/! ---

func cmdSubstituteHint(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	ctx.Host.Log("s is deprecated; use x/y with c instead")
	return nil
}

func cmdPipeOut(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	argv := shellArgv(ctx, cmd)
	in := ctx.File.Text.Bytes(rng.Start, rng.End-rng.Start)
	res, err := ctx.Host.Pipe(ctx.Ctx, argv, in)
	if err != nil {
		return err
	}
	ctx.Host.Log("%s", string(res.Stdout))
	return nil
}

func cmdPipeIn(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	argv := shellArgv(ctx, cmd)
	res, err := ctx.Host.Pipe(ctx.Ctx, argv, nil)
	if err != nil {
		return err
	}
	return ctx.Trans.RecordChange(rng.Start, rng.End, res.Stdout)
}

func cmdPipeThrough(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	argv := shellArgv(ctx, cmd)
	in := ctx.File.Text.Bytes(rng.Start, rng.End-rng.Start)
	res, err := ctx.Host.Pipe(ctx.Ctx, argv, in)
	if err != nil {
		return err
	}
	return ctx.Trans.RecordChange(rng.Start, rng.End, res.Stdout)
}

func cmdBang(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	argv := shellArgv(ctx, cmd)
	_, err := ctx.Host.Pipe(ctx.Ctx, argv, nil)
	return err
}

func shellArgv(ctx *ExecContext, cmd *Command) string {
	if cmd.ShellText != "" {
		ctx.Registers().SetShellCommand(cmd.ShellText)
		return cmd.ShellText
	}
	return ctx.Registers().ShellCommand()
}

// --- file operations: w/r/e/q/wq/qall ---

// cmdWrite stores ctx.File's contents. A write while the current
// statement list still has uncommitted edits pending against this file
// is rejected outright (sam.c's sam_transcript_error(WRITE_CONFLICT) in
// command_write) since the file on disk would otherwise silently miss
// the edits this same statement list is about to commit.
func cmdWrite(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	if ctx.Trans.Len() > 0 {
		ctx.Host.Log("%s: can not write while changing", ctx.File.Name)
		return nil
	}
	path := ctx.File.Name
	if len(cmd.Args) > 0 && cmd.Args[0] != "" {
		path = cmd.Args[0]
	}
	conflict, err := ctx.Host.SaveFile(ctx.File, path, cmd.Force)
	if err != nil {
		return err
	}
	if conflict {
		ctx.Host.Log("%s: file changed since last read (add ! to override)", path)
	}
	return nil
}

func cmdReadFile(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	if len(cmd.Args) == 0 {
		return nil
	}
	f, err := ctx.Host.OpenFile(cmd.Args[0])
	if err != nil {
		return err
	}
	return ctx.Trans.RecordInsert(rng.End, f.Text.Bytes(0, f.Text.Size()))
}

func cmdEdit(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	if len(cmd.Args) == 0 {
		return nil
	}
	_, err := ctx.Host.OpenFile(cmd.Args[0])
	return err
}

func cmdQuit(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	if err := ctx.Host.CloseFile(ctx.File); err != nil {
		return err
	}
	if len(ctx.Host.Files()) == 0 {
		ctx.Host.Exit(parseExitCode(cmd.Args))
	}
	return nil
}

func cmdWriteQuit(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	if !ctx.File.Text.Modified() {
		return cmdQuit(ctx, cmd, sel, rng)
	}
	if err := cmdWrite(ctx, cmd, sel, rng); err != nil {
		return err
	}
	return cmdQuit(ctx, cmd, sel, rng)
}

func cmdQuitAll(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	for _, f := range ctx.Host.Files() {
		if f.Internal || !f.Text.Modified() || cmd.Force {
			if err := ctx.Host.CloseFile(f); err != nil {
				return err
			}
		}
	}
	if len(ctx.Host.Files()) == 0 {
		ctx.Host.Exit(parseExitCode(cmd.Args))
	}
	return nil
}

func parseExitCode(args []string) int {
	if len(args) == 0 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0
	}
	return n
}

// --- vi(m)-side editor commands ---

func cmdChdir(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	if len(cmd.Args) == 0 {
		return nil
	}
	return ctx.Host.ChangeDir(cmd.Args[0])
}

func cmdHelp(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	ctx.Host.Log("%s", "available commands: a c i d p g v x y X Y s > < | ! w r e q wq qall cd help set map unmap langmap new open split vnew vsplit earlier later")
	return nil
}

func cmdSet(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	if len(cmd.Args) == 0 {
		return nil
	}
	name, value, _ := strings.Cut(cmd.Args[0], " ")
	if len(cmd.Args) > 1 {
		value = strings.Join(cmd.Args[1:], " ")
	}
	return ctx.Host.SetOption(name, value)
}

func cmdMap(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	if len(cmd.Args) < 3 {
		return nil
	}
	mode := cmd.Args[0]
	if cmd.Definition.Name == "map-window" {
		mode = "window:" + mode
	}
	return ctx.Host.Map(mode, cmd.Args[1], cmd.Args[2], cmd.Force)
}

func cmdUnmap(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	if len(cmd.Args) < 2 {
		return nil
	}
	mode := cmd.Args[0]
	if cmd.Definition.Name == "unmap-window" {
		mode = "window:" + mode
	}
	return ctx.Host.Unmap(mode, cmd.Args[1])
}

func cmdLangmap(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	if len(cmd.Args) < 1 {
		return nil
	}
	return ctx.Host.SetOption("langmap", strings.Join(cmd.Args, " "))
}

func cmdNew(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	return ctx.Host.NewWindow(NewFile("", nil))
}

func cmdVnew(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	return ctx.Host.SplitWindow(NewFile("", nil), true)
}

func cmdOpen(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	if len(cmd.Args) == 0 {
		return ctx.Host.NewWindow(NewFile("", nil))
	}
	f, err := ctx.Host.OpenFile(cmd.Args[0])
	if err != nil {
		return err
	}
	return ctx.Host.NewWindow(f)
}

func cmdSplit(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	if len(cmd.Args) == 0 {
		return ctx.Host.SplitWindow(ctx.File, false)
	}
	f, err := ctx.Host.OpenFile(cmd.Args[0])
	if err != nil {
		return err
	}
	return ctx.Host.SplitWindow(f, false)
}

func cmdVsplit(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	if len(cmd.Args) == 0 {
		return ctx.Host.SplitWindow(ctx.File, true)
	}
	f, err := ctx.Host.OpenFile(cmd.Args[0])
	if err != nil {
		return err
	}
	return ctx.Host.SplitWindow(f, true)
}

func cmdEarlier(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	pos := ctx.File.Text.Earlier()
	if pos != -1 {
		ctx.File.View.SetRange(sel, pos, pos)
	}
	return nil
}

func cmdLater(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error {
	pos := ctx.File.Text.Later()
	if pos != -1 {
		ctx.File.View.SetRange(sel, pos, pos)
	}
	return nil
}

// runFileLoop implements X/Y: for every open, non-internal file whose
// name matches (X) or does not match (Y) the command's regex, run the
// sub-command once against that file's primary selection, committing its
// own transcript immediately (spec.md §4.6 "X/Y" / §9's open question on
// snapshot-safety against the sub-command closing the current file —
// resolved by snapshotting Host.Files() up front, exactly as sam's
// execute_token_stream captures `next` before dispatch).
func runFileLoop(ctx *ExecContext, cmd *Command, want bool) error {
	re := cmd.Regex
	if re == nil {
		var err error
		re, err = address.Compile(".*")
		if err != nil {
			return err
		}
	}
	files := ctx.Host.Files()
	for _, f := range files {
		if f.Internal {
			continue
		}
		_, found := re.SearchForward([]byte(f.Name), 0)
		if found != want {
			continue
		}
		sub := ExecContext{Ctx: ctx.Ctx, Host: ctx.Host, File: f, Trans: transcript.New()}
		ctx.Host.SetCurrentFile(f)
		sel := f.View.Primary()
		if sel == nil {
			continue
		}
		if cmd.SubCommand != nil {
			if err := dispatchSub(&sub, cmd.SubCommand, sel); err != nil {
				return err
			}
		}
		if err := sub.Trans.Commit(f.Text, f.View, f.Marks); err != nil {
			return err
		}
	}
	return nil
}
