// Package textstore provides an in-memory implementation of the text
// store the command engine consumes (spec.md §6.1, text.h's Text/
// Filerange/Iterator API): byte-level read/write, line motions, and a
// linear undo/redo history built from full-buffer snapshots.
//
// A piece-table or rope would scale better to large files, but nothing
// in the example corpus provides one; a plain byte slice is the
// stdlib-only, easiest-to-verify implementation of the same interface
// and is adequate for command-engine testing (see DESIGN.md).
package textstore

import (
	"time"

	"github.com/pkg/errors"
)

// snapshot is one vertex in the undo history: a full copy of the buffer
// at the time it was taken (text.h's text_snapshot/text_state).
type snapshot struct {
	buf []byte
	at  time.Time
}

// Text is an in-memory file buffer satisfying address.TextSource.
type Text struct {
	buf      []byte
	history  []snapshot
	cursor   int // index into history of the currently-active state
	modified bool
	marked   time.Time // revision marked as "saved" by MarkCurrentRevision
}

// New returns a Text populated with the given initial content.
func New(content []byte) *Text {
	buf := append([]byte(nil), content...)
	t := &Text{buf: buf}
	t.Snapshot()
	return t
}

// Size returns the number of bytes currently in the buffer.
func (t *Text) Size() int { return len(t.buf) }

// Modified reports whether Insert or Delete has changed the buffer since
// it was last marked saved. It does not compare contents: an edit that is
// later reversed still leaves the buffer reported as modified.
func (t *Text) Modified() bool { return t.modified }

// ByteAt returns the byte at pos, or ok=false if pos is out of range.
func (t *Text) ByteAt(pos int) (byte, bool) {
	if pos < 0 || pos >= len(t.buf) {
		return 0, false
	}
	return t.buf[pos], true
}

// Bytes returns a copy of the [pos, pos+length) range, clamped to the
// buffer's bounds.
func (t *Text) Bytes(pos, length int) []byte {
	if pos < 0 {
		pos = 0
	}
	end := pos + length
	if end > len(t.buf) {
		end = len(t.buf)
	}
	if pos > end {
		pos = end
	}
	out := make([]byte, end-pos)
	copy(out, t.buf[pos:end])
	return out
}

// Insert writes data at pos, shifting everything after it forward.
func (t *Text) Insert(pos int, data []byte) error {
	if pos < 0 || pos > len(t.buf) {
		return errors.Errorf("insert: position %d out of range [0,%d]", pos, len(t.buf))
	}
	if len(data) == 0 {
		return nil
	}
	buf := make([]byte, 0, len(t.buf)+len(data))
	buf = append(buf, t.buf[:pos]...)
	buf = append(buf, data...)
	buf = append(buf, t.buf[pos:]...)
	t.buf = buf
	t.modified = true
	return nil
}

// Delete removes the [pos, pos+length) range.
func (t *Text) Delete(pos, length int) error {
	if pos < 0 || length < 0 || pos+length > len(t.buf) {
		return errors.Errorf("delete: range [%d,%d) out of bounds for size %d", pos, pos+length, len(t.buf))
	}
	if length == 0 {
		return nil
	}
	buf := make([]byte, 0, len(t.buf)-length)
	buf = append(buf, t.buf[:pos]...)
	buf = append(buf, t.buf[pos+length:]...)
	t.buf = buf
	t.modified = true
	return nil
}

// Snapshot records the current buffer as a new history vertex (text.h's
// text_snapshot).
func (t *Text) Snapshot() {
	if len(t.history) > 0 {
		last := t.history[len(t.history)-1]
		if string(last.buf) == string(t.buf) {
			return
		}
	}
	t.history = t.history[:t.cursor+1]
	cp := append([]byte(nil), t.buf...)
	t.history = append(t.history, snapshot{buf: cp, at: timeNow()})
	t.cursor = len(t.history) - 1
}

// Undo reverts to the previous snapshot along the main branch, returning
// the position of the first differing byte, or EPOS if already at the
// oldest state.
func (t *Text) Undo() int {
	if t.cursor <= 0 {
		return EPOS
	}
	before := t.buf
	t.cursor--
	t.buf = append([]byte(nil), t.history[t.cursor].buf...)
	return firstDiff(before, t.buf)
}

// Redo reapplies a later change along the main branch.
func (t *Text) Redo() int {
	if t.cursor >= len(t.history)-1 {
		return EPOS
	}
	before := t.buf
	t.cursor++
	t.buf = append([]byte(nil), t.history[t.cursor].buf...)
	return firstDiff(before, t.buf)
}

// Earlier and Later are aliases for Undo/Redo kept distinct in the
// interface (spec.md's text_earlier/text_later) for callers that
// distinguish "go to an older state" from "undo the last group of
// changes" at a higher level; here both walk the same linear history.
func (t *Text) Earlier() int { return t.Undo() }
func (t *Text) Later() int   { return t.Redo() }

// Restore moves to the history vertex closest to, but not after, at.
func (t *Text) Restore(at time.Time) int {
	idx := 0
	for i, h := range t.history {
		if !h.at.After(at) {
			idx = i
		}
	}
	before := t.buf
	t.cursor = idx
	t.buf = append([]byte(nil), t.history[idx].buf...)
	return firstDiff(before, t.buf)
}

// State returns the creation time of the current revision.
func (t *Text) State() time.Time {
	if len(t.history) == 0 {
		return time.Time{}
	}
	return t.history[t.cursor].at
}

// MarkCurrentRevision records the current revision as saved.
func (t *Text) MarkCurrentRevision() {
	t.marked = t.State()
	t.modified = false
}

// EPOS mirrors text.h's invalid-position sentinel for Undo/Redo/Restore
// results (they return "position of first change" or EPOS).
const EPOS = -1

func firstDiff(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return EPOS
}

// --- line motions (text.h's line_begin/line_next/pos_by_lineno/lineno_by_pos/char_next) ---

// LineBegin returns the start of the line containing pos.
func (t *Text) LineBegin(pos int) int {
	if pos > len(t.buf) {
		pos = len(t.buf)
	}
	for pos > 0 && t.buf[pos-1] != '\n' {
		pos--
	}
	return pos
}

// LineNext returns the start of the line following the one containing
// pos (i.e. the position just after the next newline at or after pos).
func (t *Text) LineNext(pos int) int {
	for pos < len(t.buf) && t.buf[pos] != '\n' {
		pos++
	}
	if pos < len(t.buf) {
		pos++
	}
	return pos
}

// PosByLine returns the byte position of the start of line n (1-indexed).
func (t *Text) PosByLine(n int) int {
	if n <= 1 {
		return 0
	}
	pos := 0
	for i := 1; i < n && pos < len(t.buf); i++ {
		pos = t.LineNext(pos)
	}
	return pos
}

// LineByPos returns the 1-indexed line number containing pos.
func (t *Text) LineByPos(pos int) int {
	if pos > len(t.buf) {
		pos = len(t.buf)
	}
	n := 1
	for i := 0; i < pos; i++ {
		if t.buf[i] == '\n' {
			n++
		}
	}
	return n
}

// CharNext advances pos by one byte, clamped to the buffer end. This
// treats a "char" as a byte; multi-byte grapheme motion (text.h's
// iterator_codepoint/iterator_char family) is out of scope. The command
// engine does not call it for its default range: a command run without
// an address works on the selection's own range (command.defaultRange),
// not on the caret plus one character.
func (t *Text) CharNext(pos int) int {
	if pos < len(t.buf) {
		return pos + 1
	}
	return pos
}

func timeNow() time.Time { return time.Now() }
