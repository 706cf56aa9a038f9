package marks

import "testing"

func TestFromLetterAcceptsLowercaseOnly(t *testing.T) {
	if _, ok := FromLetter('a'); !ok {
		t.Fatal("expected 'a' to be a valid mark")
	}
	if _, ok := FromLetter('A'); ok {
		t.Fatal("expected 'A' to be rejected")
	}
	if _, ok := FromLetter('1'); ok {
		t.Fatal("expected '1' to be rejected")
	}
}

func TestStoreSetAndGet(t *testing.T) {
	s := NewStore()
	s.Set('a', 0, 42)
	pos, ok := s.Mark('a', 0)
	if !ok || pos != 42 {
		t.Fatalf("got %d, %v", pos, ok)
	}
}

func TestStoreUnsetMark(t *testing.T) {
	s := NewStore()
	if _, ok := s.Mark('z', 0); ok {
		t.Fatal("expected unset mark to be absent")
	}
}

func TestStoreFallsBackToSelectionZero(t *testing.T) {
	s := NewStore()
	s.Set('a', 0, 10)
	pos, ok := s.Mark('a', 3)
	if !ok || pos != 10 {
		t.Fatalf("got %d, %v", pos, ok)
	}
}

func TestStoreSelectionSpecificOverridesFallback(t *testing.T) {
	s := NewStore()
	s.Set('a', 0, 10)
	s.Set('a', 1, 20)
	pos, ok := s.Mark('a', 1)
	if !ok || pos != 20 {
		t.Fatalf("got %d, %v", pos, ok)
	}
}

func TestStoreShiftAdjustsMarksAfterEdit(t *testing.T) {
	s := NewStore()
	s.Set('a', 0, 10)
	s.Set('b', 0, 2)
	s.Shift(5, 3)
	if pos, _ := s.Mark('a', 0); pos != 13 {
		t.Fatalf("a = %d", pos)
	}
	if pos, _ := s.Mark('b', 0); pos != 2 {
		t.Fatalf("b should be unaffected, got %d", pos)
	}
}

func TestStoreUnsetRemovesAllSelections(t *testing.T) {
	s := NewStore()
	s.Set('a', 0, 1)
	s.Set('a', 1, 2)
	s.Unset('a')
	if _, ok := s.Mark('a', 0); ok {
		t.Fatal("expected mark cleared for selection 0")
	}
	if _, ok := s.Mark('a', 1); ok {
		t.Fatal("expected mark cleared for selection 1")
	}
}
