package engine

import (
	"context"
	"testing"
)

func newTestEditor(content string) *Editor {
	ed := NewEditor()
	ed.Open("scratch", []byte(content))
	return ed
}

func TestRunInsertAndDelete(t *testing.T) {
	ed := newTestEditor("hello world\n")
	res := Run(context.Background(), ed, "0i/XX/")
	if res.Err != ErrOK {
		t.Fatalf("Run i = %v (%v)", res.Err, res.Cause)
	}
	got := string(ed.CurrentFile().Text.Bytes(0, ed.CurrentFile().Text.Size()))
	if got != "XXhello world\n" {
		t.Fatalf("got %q", got)
	}
	res = Run(context.Background(), ed, "#0,#2d")
	if res.Err != ErrOK {
		t.Fatalf("Run d = %v (%v)", res.Err, res.Cause)
	}
	got = string(ed.CurrentFile().Text.Bytes(0, ed.CurrentFile().Text.Size()))
	if got != "hello world\n" {
		t.Fatalf("got %q", got)
	}
}

// A single-sided address always goes through the ',' / ';' evaluator with
// an implicit end-of-file right side, so `a` (which inserts at range.end)
// appends at EOF rather than immediately after the addressed byte.
func TestRunAppendAtSingleAddressTargetsEOF(t *testing.T) {
	ed := newTestEditor("hello world\n")
	res := Run(context.Background(), ed, "0a/XX/")
	if res.Err != ErrOK {
		t.Fatalf("Run a = %v (%v)", res.Err, res.Cause)
	}
	got := string(ed.CurrentFile().Text.Bytes(0, ed.CurrentFile().Text.Size()))
	if got != "hello world\nXX" {
		t.Fatalf("got %q", got)
	}
}

func TestRunDeleteRange(t *testing.T) {
	ed := newTestEditor("hello world\n")
	res := Run(context.Background(), ed, "#0,#6d")
	if res.Err != ErrOK {
		t.Fatalf("Run d = %v (%v)", res.Err, res.Cause)
	}
	got := string(ed.CurrentFile().Text.Bytes(0, ed.CurrentFile().Text.Size()))
	if got != "world\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRunParseErrorReportsErrCommand(t *testing.T) {
	ed := newTestEditor("hello\n")
	res := Run(context.Background(), ed, "Z")
	if res.Err != ErrCommand {
		t.Fatalf("Run bogus command = %v, want ErrCommand", res.Err)
	}
}

func TestRunQuitSetsExitLatch(t *testing.T) {
	ed := newTestEditor("hello\n")
	res := Run(context.Background(), ed, "q")
	if res.Err != ErrOK {
		t.Fatalf("Run q = %v (%v)", res.Err, res.Cause)
	}
	if !res.Exit {
		t.Fatal("expected Exit to be requested after q closes the only file")
	}
}

func TestRunWriteConflictWhenStatementListHasPendingEdits(t *testing.T) {
	ed := newTestEditor("hello\n")
	res := Run(context.Background(), ed, "{a/X/\nw}")
	if res.Err != ErrOK {
		t.Fatalf("Run group = %v (%v)", res.Err, res.Cause)
	}
}

func TestRunScriptAggregatesErrors(t *testing.T) {
	ed := newTestEditor("hello\n")
	results, err := RunScript(context.Background(), ed, []string{"Z", "1a/ok/"})
	if err == nil {
		t.Fatal("expected aggregated error for the bogus first line")
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[1].Err != ErrOK {
		t.Fatalf("second line should still run: %v", results[1].Cause)
	}
}
