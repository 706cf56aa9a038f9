package command

import (
	"github.com/vis-editor/samengine/address"
	"github.com/vis-editor/samengine/registers"
	"github.com/vis-editor/samengine/selection"
)

// defaultLoopPattern is the regex x falls back to when parsed with no
// explicit delimiter string (its RegexDefault flag, spec.md §4.4 item
// 3): one match per line, including a final unterminated line.
const defaultLoopPattern = `(?s).*?\n|.+\z`

// runLoop implements x and y (spec.md §4.6): within each of the file's
// current selections, walk every non-overlapping regex match (x) or every
// gap between matches (y), in order, turning each into its own selection
// and — subject to the command's Count — running the sub-command against
// it.
func runLoop(ctx *ExecContext, cmd *Command) error {
	f := ctx.File
	if f == nil {
		return nil
	}
	extractGaps := cmd.Definition.Name == "y"

	for i, sel := range f.View.Selections() {
		dot := Range{Start: sel.Start, End: sel.End}
		rng := defaultRange(cmd.Definition.Flags, f.Text, dot)
		if cmd.Address.HasLeft() {
			rng = address.Evaluate(cmd.Address, f.Text, markSourceFor(f), i, dot)
		}
		if err := runLoopOverRange(ctx, cmd, sel, rng, extractGaps); err != nil {
			return err
		}
	}
	return nil
}

// runLoopOverRange drives one selection's worth of x/y iteration: it
// disposes the original selection, replaces it with one new selection per
// span (match, for x; gap, for y), and dispatches the sub-command against
// every span whose 1-based iteration index the command's Count selects.
// A zero Count (x and y parse none) selects every span. A negative count
// is remapped against the span count plus one first, so -1 is the last
// span (§4.6 "two passes": this walk itself is the first pass, Count.Init
// converts the negative bound once the total is known, and the dispatch
// below is effectively the second pass).
func runLoopOverRange(ctx *ExecContext, cmd *Command, orig *selection.Selection, rng Range, extractGaps bool) error {
	f := ctx.File
	re := cmd.Regex
	if re == nil {
		var err error
		re, err = address.Compile(defaultLoopPattern)
		if err != nil {
			return err
		}
	}

	matches := walkMatches(re, f.Text.Bytes(0, f.Text.Size()), rng)
	spans := make([]Range, len(matches))
	for i, m := range matches {
		spans[i] = Range{Start: m.Start, End: m.End}
	}
	if extractGaps {
		spans = gapsOf(spans, rng)
	}

	cmd.Count.DefaultRange()
	if cmd.Count.Negative() {
		cmd.Count.Init(len(spans) + 1)
	}

	f.View.Dispose(orig)
	for iter, span := range spans {
		newSel := f.View.New(span.Start, span.End)
		if !cmd.Count.Matches(iter + 1) {
			continue
		}
		// Only a real match (x, not y's complementary gaps) populates the
		// &/\1-\9 registers the sub-command's a/i/c text may reference.
		if !extractGaps && iter < len(matches) {
			populateRegisters(ctx.Registers(), f.Text, matches[iter])
		}
		if cmd.SubCommand == nil {
			continue
		}
		if err := dispatchSub(ctx, cmd.SubCommand, newSel); err != nil {
			return err
		}
	}
	return nil
}

// walkMatches returns every non-overlapping match of re within rng,
// advancing past an empty match by one byte so a zero-width pattern (e.g.
// an anchor) cannot loop forever (spec.md §9 "zero-width match walking
// rule").
func walkMatches(re *address.Regex, buf []byte, rng Range) []address.Match {
	var out []address.Match
	limit := rng.End
	if limit > len(buf) {
		limit = len(buf)
	}
	pos := rng.Start
	for pos <= limit {
		m, ok := re.SearchForward(buf[:limit], pos)
		if !ok {
			break
		}
		out = append(out, m)
		if m.End == m.Start {
			pos = m.End + 1
		} else {
			pos = m.End
		}
	}
	return out
}

// populateRegisters stores a match's whole span under '&' and its capture
// groups under '\1'-'\9' (sam.c's register_put_range under
// command_extract), so a sub-command's a/i/c text can reference them via
// ExpandText.
func populateRegisters(bank *registers.Bank, text registers.TextSource, m address.Match) {
	for i, g := range m.Groups {
		if g[0] < 0 {
			continue
		}
		id := registers.Ampersand
		if i > 0 {
			id = byte('0' + i)
		}
		bank.PutRange(id, text, registers.Range{Start: g[0], End: g[1]})
	}
}

// gapsOf returns the spans of rng not covered by any of matches: the text
// between consecutive matches, plus any leading/trailing span before the
// first or after the last.
func gapsOf(matches []Range, rng Range) []Range {
	var out []Range
	pos := rng.Start
	for _, m := range matches {
		if m.Start > pos {
			out = append(out, Range{Start: pos, End: m.Start})
		}
		if m.End > pos {
			pos = m.End
		}
	}
	if pos < rng.End {
		out = append(out, Range{Start: pos, End: rng.End})
	}
	return out
}

// dispatchSub runs a sub-command (and, recursively, its own sub-command
// or group body) against exactly one selection, the way g/v's guarded
// command and x/y's per-match sub-command are invoked (spec.md §4.6,
// §4.7's "guard/extract sub-command dispatch").
func dispatchSub(ctx *ExecContext, cmd *Command, sel *selection.Selection) error {
	if cmd.IsGroup() {
		for c := cmd.SubCommand; c != nil; c = c.Next {
			if err := dispatchSub(ctx, c, sel); err != nil {
				return err
			}
		}
		return nil
	}

	flags := cmd.Definition.Flags
	dot := Range{Start: sel.Start, End: sel.End}
	rng := defaultRange(flags, ctx.File.Text, dot)
	if cmd.Address.HasLeft() {
		rng = address.Evaluate(cmd.Address, ctx.File.Text, markSourceFor(ctx.File), 0, dot)
	}

	if flags.Has(Loop) {
		return runLoopOverRange(ctx, cmd, sel, rng, cmd.Definition.Name == "y")
	}
	return cmd.Definition.Fn(ctx, cmd, sel, &rng)
}

// runGuard implements g and v: evaluate the command's regex against rng's
// text, and dispatch the sub-command only if the match succeeded (g) or
// failed (v) (spec.md §4.6 "guard dispatch").
func runGuard(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range, want bool) error {
	f := ctx.File
	slice := f.Text.Bytes(rng.Start, rng.End-rng.Start)
	m, found := cmd.Regex.SearchForward(slice, 0)
	if found != want {
		return nil
	}
	if found {
		m.Start += rng.Start
		m.End += rng.Start
		for i := range m.Groups {
			if m.Groups[i][0] < 0 {
				continue
			}
			m.Groups[i][0] += rng.Start
			m.Groups[i][1] += rng.Start
		}
		populateRegisters(ctx.Registers(), f.Text, m)
	}
	if cmd.SubCommand == nil {
		return nil
	}
	return dispatchSub(ctx, cmd.SubCommand, sel)
}
