package textstore

import "testing"

func TestInsertAndDelete(t *testing.T) {
	txt := New([]byte("one two three\n"))
	if err := txt.Insert(4, []byte("TWO ")); err != nil {
		t.Fatal(err)
	}
	if string(txt.Bytes(0, txt.Size())) != "one TWO two three\n" {
		t.Fatalf("got %q", txt.Bytes(0, txt.Size()))
	}
	if err := txt.Delete(4, 4); err != nil {
		t.Fatal(err)
	}
	if string(txt.Bytes(0, txt.Size())) != "one two three\n" {
		t.Fatalf("got %q", txt.Bytes(0, txt.Size()))
	}
}

func TestInsertOutOfRangeErrors(t *testing.T) {
	txt := New([]byte("abc"))
	if err := txt.Insert(10, []byte("x")); err == nil {
		t.Fatal("expected error for out-of-range insert")
	}
}

func TestUndoRedo(t *testing.T) {
	txt := New([]byte("abc"))
	if err := txt.Insert(3, []byte("def")); err != nil {
		t.Fatal(err)
	}
	txt.Snapshot()
	if string(txt.Bytes(0, txt.Size())) != "abcdef" {
		t.Fatalf("got %q", txt.Bytes(0, txt.Size()))
	}
	if pos := txt.Undo(); pos == EPOS {
		t.Fatal("expected undo to find a difference")
	}
	if string(txt.Bytes(0, txt.Size())) != "abc" {
		t.Fatalf("after undo: %q", txt.Bytes(0, txt.Size()))
	}
	if pos := txt.Redo(); pos == EPOS {
		t.Fatal("expected redo to find a difference")
	}
	if string(txt.Bytes(0, txt.Size())) != "abcdef" {
		t.Fatalf("after redo: %q", txt.Bytes(0, txt.Size()))
	}
}

func TestUndoAtOldestStateIsNoop(t *testing.T) {
	txt := New([]byte("abc"))
	if pos := txt.Undo(); pos != EPOS {
		t.Fatalf("expected EPOS, got %d", pos)
	}
}

func TestLineMotions(t *testing.T) {
	txt := New([]byte("one\ntwo\nthree\n"))
	if txt.LineByPos(5) != 2 {
		t.Fatalf("lineno = %d", txt.LineByPos(5))
	}
	if txt.PosByLine(2) != 4 {
		t.Fatalf("pos = %d", txt.PosByLine(2))
	}
	if txt.LineBegin(5) != 4 {
		t.Fatalf("line begin = %d", txt.LineBegin(5))
	}
	if txt.LineNext(0) != 4 {
		t.Fatalf("line next = %d", txt.LineNext(0))
	}
}

func TestMarkCurrentRevisionClearsModified(t *testing.T) {
	txt := New([]byte("abc"))
	if err := txt.Insert(3, []byte("d")); err != nil {
		t.Fatal(err)
	}
	if !txt.Modified() {
		t.Fatal("expected modified after insert")
	}
	txt.MarkCurrentRevision()
	if txt.Modified() {
		t.Fatal("expected not modified after mark")
	}
}
