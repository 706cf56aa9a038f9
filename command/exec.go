package command

import (
	"context"

	"github.com/vis-editor/samengine/address"
	"github.com/vis-editor/samengine/registers"
	"github.com/vis-editor/samengine/selection"
	"github.com/vis-editor/samengine/transcript"
)

// ExecContext is the per-invocation state threaded through command
// dispatch: the host services, the file currently being edited, and the
// transcript that accumulates edits until the whole statement list
// commits (spec.md §4.8).
type ExecContext struct {
	Ctx   context.Context
	Host  Host
	File  *File
	Trans *transcript.Transcript
}

// Registers is a convenience accessor onto the host's register bank.
func (c *ExecContext) Registers() *registers.Bank { return c.Host.Registers() }

// Execute runs a sibling chain of parsed commands in order (spec.md §4.5
// "sam_execute" dispatch loop). It is the entry point both for a
// top-level statement list and for a group's body.
func Execute(ctx *ExecContext, head *Command) error {
	for c := head; c != nil; {
		next := c.Next // captured before dispatch: a command may splice siblings (X/Y closing a file)
		if err := executeOne(ctx, c); err != nil {
			return err
		}
		c = next
	}
	return nil
}

func executeOne(ctx *ExecContext, cmd *Command) error {
	if cmd.IsGroup() {
		return executeGroup(ctx, cmd)
	}

	flags := cmd.Definition.Flags
	switch {
	case flags.Has(Loop):
		return runLoop(ctx, cmd)
	case flags.Has(AddressNone) || flags.Has(Once):
		return runOnce(ctx, cmd)
	default:
		return runPerSelection(ctx, cmd)
	}
}

// executeGroup runs a `{ … }` group: its own leading address (if any)
// restricts dot for the body exactly like any other command's address
// would, then every child statement runs against the file's live
// selections in turn.
func executeGroup(ctx *ExecContext, group *Command) error {
	if group.Address.HasLeft() {
		applyAddressToAllSelections(ctx, group.Address)
	}
	return Execute(ctx, group.SubCommand)
}

// runOnce invokes the command exactly one time, regardless of how many
// selections the current file has (AddressNone commands take no address
// and no per-selection range; Once commands like X/Y's targets of a
// single sub-command are invoked by the loop machinery, not here, but
// share the "one shot" rule for non-looping Once commands like q/e/w).
func runOnce(ctx *ExecContext, cmd *Command) error {
	var rng Range
	var sel *selection.Selection
	if f := ctx.File; f != nil {
		sel = f.View.Primary()
		var dot Range
		if sel != nil {
			dot = Range{Start: sel.Start, End: sel.End}
		}
		rng = defaultRange(cmd.Definition.Flags, f.Text, dot)
		if cmd.Address.HasLeft() {
			rng = evalAddress(ctx, cmd.Address, primarySelIndex(ctx))
		}
	}
	return cmd.Definition.Fn(ctx, cmd, sel, &rng)
}

// runPerSelection invokes the command once for every selection currently
// in the file's view, computing each selection's default range from the
// command's address flags and overriding it with the evaluated address
// when one was given (spec.md §4.5: "If the parsed Address has a real
// left side, overwrite range with the evaluator's output").
func runPerSelection(ctx *ExecContext, cmd *Command) error {
	f := ctx.File
	if f == nil {
		return nil
	}
	for i, sel := range f.View.Selections() {
		dot := Range{Start: sel.Start, End: sel.End}
		rng := defaultRange(cmd.Definition.Flags, f.Text, dot)
		if cmd.Address.HasLeft() {
			rng = address.Evaluate(cmd.Address, f.Text, markSourceFor(f), i, dot)
		}
		if err := cmd.Definition.Fn(ctx, cmd, sel, &rng); err != nil {
			return err
		}
	}
	return nil
}

// defaultRange computes the range a command with no explicit address
// falls back to, keyed by its AddressXxx flag (spec.md §4.4 item 4 /
// §9's default-range table).
func defaultRange(flags Flags, text address.TextSource, dot Range) Range {
	switch {
	case flags.Has(AddressNone):
		return dot
	case flags.Has(AddressPos):
		return Range{Start: dot.End, End: dot.End}
	case flags.Has(AddressLine):
		begin := text.LineBegin(dot.Start)
		return Range{Start: begin, End: text.LineNext(begin)}
	case flags.Has(AddressAfter):
		return Range{Start: dot.End, End: dot.End}
	case flags.Has(AddressAll), flags.Has(AddressAll1Cursor):
		return Range{Start: 0, End: text.Size()}
	default:
		return dot
	}
}

func evalAddress(ctx *ExecContext, addr address.Address, selIndex int) Range {
	f := ctx.File
	if f == nil {
		return address.Invalid()
	}
	var dot Range
	if sel := f.View.Primary(); sel != nil {
		dot = Range{Start: sel.Start, End: sel.End}
	}
	return address.Evaluate(addr, f.Text, markSourceFor(f), selIndex, dot)
}

func applyAddressToAllSelections(ctx *ExecContext, addr address.Address) {
	f := ctx.File
	if f == nil {
		return
	}
	for i, sel := range f.View.Selections() {
		dot := Range{Start: sel.Start, End: sel.End}
		rng := address.Evaluate(addr, f.Text, markSourceFor(f), i, dot)
		f.View.SetRange(sel, rng.Start, rng.End)
	}
}

func primarySelIndex(ctx *ExecContext) int {
	f := ctx.File
	if f == nil {
		return 0
	}
	for i, sel := range f.View.Selections() {
		if sel == f.View.Primary() {
			return i
		}
	}
	return 0
}

// markSourceFor adapts a *File to address.MarkSource.
func markSourceFor(f *File) address.MarkSource { return markAdapter{f} }

type markAdapter struct{ f *File }

func (m markAdapter) Mark(letter byte, selIndex int) (int, bool) {
	return m.f.Mark(letter, selIndex)
}
