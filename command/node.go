package command

import "github.com/vis-editor/samengine/address"

// Command is one parsed command-line node (spec.md §3 "Command (parse
// node)"). A `{ … }` group is a sentinel node whose Definition is nil and
// whose SubCommand points at the first child; Next/Prev chain siblings
// within that group, mirroring the Block doubly-linked list shape used
// for the command tree.
type Command struct {
	Definition *Def
	Address    address.Address
	Regex      *address.Regex
	Count      Count
	Args       []string
	ShellText  string
	Force      bool
	Iteration  int

	SubCommand *Command // target of x, y, g, v, X, Y, and group sentinels
	Next       *Command // next sibling within the enclosing group
	Prev       *Command
}

// IsGroup reports whether c is a `{ … }` group sentinel.
func (c *Command) IsGroup() bool { return c.Definition == nil }

// appendSibling appends n after the current end of a sibling chain
// starting at start, returning the (possibly unchanged) start and the new
// end — same shape as the teacher's appendBlock/findEnd helpers, applied
// to Command chains instead of Block chains.
func appendSibling(start, end, n *Command) (*Command, *Command) {
	if end != nil {
		end.Next = n
	}
	n.Prev = end
	if start == nil {
		start = n
	}
	return start, n
}
