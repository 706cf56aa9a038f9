package selection

import "testing"

func TestNewViewStartsWithSingleCaretSelection(t *testing.T) {
	v := NewView(5)
	if v.Count() != 1 {
		t.Fatalf("count = %d", v.Count())
	}
	if v.Primary().Caret() != 5 {
		t.Fatalf("caret = %d", v.Primary().Caret())
	}
}

func TestViewNewAppendsAndAnchorsNonEmpty(t *testing.T) {
	v := NewView(0)
	s := v.New(2, 5)
	if !s.Anchored {
		t.Fatal("expected non-empty new selection to be anchored")
	}
	if v.Count() != 2 {
		t.Fatalf("count = %d", v.Count())
	}
}

func TestViewDisposeMovesPrimaryBack(t *testing.T) {
	v := NewView(0)
	second := v.New(2, 5)
	v.SetPrimary(second)
	v.Dispose(second)
	if v.Count() != 1 {
		t.Fatalf("count = %d", v.Count())
	}
	if v.Primary() == nil {
		t.Fatal("expected a surviving primary selection")
	}
}

func TestSelectionsSnapshotIsStableDuringMutation(t *testing.T) {
	v := NewView(0)
	v.New(1, 2)
	v.New(3, 4)
	snap := v.Selections()
	if len(snap) != 3 {
		t.Fatalf("snapshot len = %d", len(snap))
	}
	v.Dispose(snap[1])
	if len(snap) != 3 {
		t.Fatal("snapshot slice must not be affected by later disposal")
	}
}

func TestViewShiftAdjustsBoundaries(t *testing.T) {
	v := NewView(10)
	v.Shift(5, 3)
	if v.Primary().Start != 13 || v.Primary().End != 13 {
		t.Fatalf("got %+v", v.Primary())
	}
}

func TestViewNormalizeMergesOverlaps(t *testing.T) {
	v := NewView(0)
	v.Dispose(v.Primary())
	v.New(1, 5)
	v.New(4, 8)
	v.New(20, 22)
	v.Normalize()
	if v.Count() != 2 {
		t.Fatalf("count = %d", v.Count())
	}
	sels := v.Selections()
	if sels[0].Start != 1 || sels[0].End != 8 {
		t.Fatalf("merged = %+v", sels[0])
	}
}

func TestViewAnyAnchored(t *testing.T) {
	v := NewView(0)
	if v.AnyAnchored() {
		t.Fatal("fresh caret selection should not be anchored")
	}
	v.New(1, 3)
	if !v.AnyAnchored() {
		t.Fatal("expected anchored selection to be detected")
	}
}
