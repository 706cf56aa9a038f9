// Package transcript accumulates the edits a statement list makes to one
// file's text before they are applied, so the whole statement list either
// commits as a unit or is rejected as a whole on conflict (spec.md §4.8
// "Transcript"). This mirrors sam's own deferred-edit model: a/i/c/d
// commands never touch the buffer directly, they append to a change list
// that only gets applied once the full command tree has run.
package transcript

import (
	"github.com/pkg/errors"
)

// Kind tags one recorded edit.
type Kind int

const (
	Insert Kind = iota
	Delete
	Change
)

// Edit is one recorded change: [Start, End) in the file's pre-commit
// coordinates, plus the bytes to insert (empty for a pure Delete).
type Edit struct {
	Kind       Kind
	Start, End int
	Data       []byte

	next, prev *Edit
}

// Transcript is a file's pending edit list, kept sorted by Start as edits
// are recorded (spec.md §4.8 "per-file sorted linked list of Change").
type Transcript struct {
	head, tail *Edit
	count      int
}

// New returns an empty transcript.
func New() *Transcript { return &Transcript{} }

// Len returns the number of edits recorded since the last Commit.
func (t *Transcript) Len() int { return t.count }

// RecordInsert appends data at pos without touching any existing bytes.
func (t *Transcript) RecordInsert(pos int, data []byte) error {
	return t.record(Edit{Kind: Insert, Start: pos, End: pos, Data: append([]byte(nil), data...)})
}

// RecordDelete removes [start, end).
func (t *Transcript) RecordDelete(start, end int) error {
	return t.record(Edit{Kind: Delete, Start: start, End: end})
}

// RecordChange replaces [start, end) with data.
func (t *Transcript) RecordChange(start, end int, data []byte) error {
	return t.record(Edit{Kind: Change, Start: start, End: end, Data: append([]byte(nil), data...)})
}

// record inserts e into the list in Start order, reporting an error if it
// overlaps a previously recorded edit (spec.md §4.8 "conflict detection
// via overlap check" — two commands touching the same bytes in one
// statement list is a SamError, not a silent last-write-wins).
func (t *Transcript) record(e Edit) error {
	ne := e
	node := &ne
	var prev *Edit
	cur := t.head
	for cur != nil && cur.Start < node.Start {
		prev = cur
		cur = cur.next
	}
	if prev != nil && overlaps(prev, node) {
		return errors.Errorf("conflicting edits: [%d,%d) and [%d,%d)", prev.Start, prev.End, node.Start, node.End)
	}
	if cur != nil && overlaps(node, cur) {
		return errors.Errorf("conflicting edits: [%d,%d) and [%d,%d)", node.Start, node.End, cur.Start, cur.End)
	}

	node.prev, node.next = prev, cur
	if prev != nil {
		prev.next = node
	} else {
		t.head = node
	}
	if cur != nil {
		cur.prev = node
	} else {
		t.tail = node
	}
	t.count++
	return nil
}

// overlaps reports whether edits a and b (a.Start <= b.Start) touch a
// common byte. A pure insertion point (Start == End) only conflicts when
// it lands strictly inside the other edit's span, not at its boundary, so
// e.g. an insert at the end of one delete and a second delete starting
// there do not spuriously collide.
func overlaps(a, b *Edit) bool {
	if a.Start == a.End {
		return a.Start > b.Start && a.Start < b.End
	}
	if b.Start == b.End {
		return b.Start > a.Start && b.Start < a.End
	}
	return a.End > b.Start && b.End > a.Start
}

// TextEditor is the subset of the text store Commit needs.
type TextEditor interface {
	Insert(pos int, data []byte) error
	Delete(pos, length int) error
}

// Shifter receives a position/delta pair for every edit applied during
// Commit, so selection views and mark stores stay valid (spec.md §4.8
// "running byte-delta fixup and selection fixup").
type Shifter interface {
	Shift(from, delta int)
}

// Commit applies every recorded edit to text in ascending original-offset
// order, tracking the running byte delta earlier edits introduce so later
// edits (recorded against the original, pre-commit coordinates) land in
// the right place, then notifies every shifter of each edit's effect.
// The transcript is empty again once Commit succeeds; when applying an
// edit fails, Commit returns at once, the edits before it stay applied
// and the list is left as it was.
func (t *Transcript) Commit(text TextEditor, shifters ...Shifter) error {
	delta := 0
	for e := t.head; e != nil; e = e.next {
		start := e.Start + delta
		end := e.End + delta
		switch e.Kind {
		case Insert:
			if err := text.Insert(start, e.Data); err != nil {
				return err
			}
			grew := len(e.Data)
			shiftAll(shifters, start, grew)
			delta += grew
		case Delete:
			length := end - start
			if err := text.Delete(start, length); err != nil {
				return err
			}
			shiftAll(shifters, start, -length)
			delta -= length
		case Change:
			length := end - start
			if length > 0 {
				if err := text.Delete(start, length); err != nil {
					return err
				}
			}
			if len(e.Data) > 0 {
				if err := text.Insert(start, e.Data); err != nil {
					return err
				}
			}
			net := len(e.Data) - length
			shiftAll(shifters, start, net)
			delta += net
		}
	}
	t.head, t.tail, t.count = nil, nil, 0
	return nil
}

func shiftAll(shifters []Shifter, from, delta int) {
	for _, sh := range shifters {
		sh.Shift(from, delta)
	}
}
