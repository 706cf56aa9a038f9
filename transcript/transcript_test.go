package transcript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeText struct{ buf []byte }

func (f *fakeText) Insert(pos int, data []byte) error {
	out := append([]byte(nil), f.buf[:pos]...)
	out = append(out, data...)
	out = append(out, f.buf[pos:]...)
	f.buf = out
	return nil
}

func (f *fakeText) Delete(pos, length int) error {
	out := append([]byte(nil), f.buf[:pos]...)
	out = append(out, f.buf[pos+length:]...)
	f.buf = out
	return nil
}

type fakeShifter struct {
	from, delta int
	calls       int
}

func (f *fakeShifter) Shift(from, delta int) {
	f.from, f.delta = from, delta
	f.calls++
}

func TestRecordDetectsOverlap(t *testing.T) {
	tr := New()
	if err := tr.RecordDelete(5, 10); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := tr.RecordDelete(8, 12); err == nil {
		t.Fatal("expected overlap error, got nil")
	}
}

func TestRecordAllowsAdjacentEdits(t *testing.T) {
	tr := New()
	if err := tr.RecordDelete(0, 5); err != nil {
		t.Fatalf("first: %v", err)
	}
	if err := tr.RecordInsert(5, []byte("x")); err != nil {
		t.Fatalf("adjacent insert: %v", err)
	}
	if tr.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tr.Len())
	}
}

func TestCommitAppliesInOrderWithDeltaFixup(t *testing.T) {
	tr := New()
	text := &fakeText{buf: []byte("hello world")}

	require.NoError(t, tr.RecordChange(0, 5, []byte("goodbye")))
	require.NoError(t, tr.RecordInsert(11, []byte("!")))

	require.NoError(t, tr.Commit(text))
	require.Equal(t, "goodbye world!", string(text.buf))
	require.Equal(t, 0, tr.Len(), "transcript not cleared after commit")
}

func TestCommitNotifiesShifters(t *testing.T) {
	tr := New()
	text := &fakeText{buf: []byte("abcdef")}
	sh := &fakeShifter{}

	require.NoError(t, tr.RecordDelete(1, 3))
	require.NoError(t, tr.Commit(text, sh))
	require.Equal(t, 1, sh.calls)
	require.Equal(t, 1, sh.from)
	require.Equal(t, -2, sh.delta)
}
