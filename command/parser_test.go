package command

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vis-editor/samengine/address"
	"github.com/vis-editor/samengine/lexer"
)

// shape projects a parsed Command chain down to the fields a structural
// diff cares about, since Command carries function pointers (Definition.Fn)
// and compiled regexes that cmp can't compare directly.
type shape struct {
	Name     string
	Args     []string
	Force    bool
	AddrKind address.SideKind
	Delim    byte
	SubCmd   *shape
	Next     *shape
}

func project(c *Command) *shape {
	if c == nil {
		return nil
	}
	name := ""
	if c.Definition != nil {
		name = c.Definition.Name
	}
	return &shape{
		Name:     name,
		Args:     c.Args,
		Force:    c.Force,
		AddrKind: c.Address.Left.Kind,
		Delim:    c.Address.Delim,
		SubCmd:   project(c.SubCommand),
		Next:     project(c.Next),
	}
}

func parseOne(t *testing.T, line string) *Command {
	t.Helper()
	reg := DefaultRegistry()
	stream := lexer.Lex([]byte(line))
	cmd, err := ParseStatementList(stream, reg)
	if err != nil {
		t.Fatalf("parse %q: %v", line, err)
	}
	return cmd
}

func TestParseStatementListSingleCommand(t *testing.T) {
	got := project(parseOne(t, "2d"))
	want := &shape{Name: "d", AddrKind: address.SideLine, Delim: ';'}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStatementListChainsSiblings(t *testing.T) {
	got := project(parseOne(t, "1d\n2p"))
	want := &shape{
		Name: "d", AddrKind: address.SideLine, Delim: ';',
		Next: &shape{Name: "p", AddrKind: address.SideLine, Delim: ';'},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStatementListForceFlag(t *testing.T) {
	got := project(parseOne(t, "w!"))
	if got == nil || !got.Force {
		t.Fatalf("got %+v, want Force=true", got)
	}
}

func TestParseStatementListGroup(t *testing.T) {
	got := project(parseOne(t, "{d\np}"))
	if got == nil || got.Name != "" || got.SubCmd == nil {
		t.Fatalf("got %+v, want a group sentinel with a sub-chain", got)
	}
	if got.SubCmd.Name != "d" || got.SubCmd.Next == nil || got.SubCmd.Next.Name != "p" {
		t.Fatalf("got group body %+v, want d then p", got.SubCmd)
	}
}

func TestParseStatementListInvalidCommandErrors(t *testing.T) {
	reg := DefaultRegistry()
	stream := lexer.Lex([]byte("2@@@"))
	if _, err := ParseStatementList(stream, reg); err == nil {
		t.Fatal("expected an error for an unknown command name")
	}
}
