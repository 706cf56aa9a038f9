package lexer

import "testing"

func kinds(s *TokenStream) []Kind {
	var ks []Kind
	for s.Remaining() > 0 {
		ks = append(ks, s.Pop().Kind)
	}
	return ks
}

func TestLexBasic(t *testing.T) {
	s := Lex([]byte(",x/foo/ c/BAR/"))
	got := kinds(s)
	want := []Kind{Delimiter, String, Delimiter, String, Delimiter, String, Delimiter, String, Delimiter}
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexNumber(t *testing.T) {
	s := Lex([]byte("1,2d"))
	tok := s.Pop()
	if tok.Kind != Number || string(tok.Bytes(s.Raw())) != "1" {
		t.Fatalf("first token = %v", tok)
	}
	if s.Pop().Kind != Delimiter {
		t.Fatalf("expected delimiter")
	}
	tok = s.Pop()
	if tok.Kind != Number || string(tok.Bytes(s.Raw())) != "2" {
		t.Fatalf("third token = %v", tok)
	}
	tok = s.Pop()
	if tok.Kind != String || string(tok.Bytes(s.Raw())) != "d" {
		t.Fatalf("fourth token = %v", tok)
	}
}

func TestLexGroup(t *testing.T) {
	s := Lex([]byte(",{ x/o/ c/0/ }"))
	var sawStart, sawEnd bool
	for s.Remaining() > 0 {
		tok := s.Pop()
		if tok.Kind == GroupStart {
			sawStart = true
		}
		if tok.Kind == GroupEnd {
			sawEnd = true
		}
	}
	if !sawStart || !sawEnd {
		t.Fatalf("expected GroupStart and GroupEnd tokens")
	}
}

func TestLexPipeAtStart(t *testing.T) {
	s := Lex([]byte("|fmt"))
	tok := s.Pop()
	if tok.Kind != String || string(tok.Bytes(s.Raw())) != "|" {
		t.Fatalf("expected one-byte '|' String token, got %v %q", tok, tok.Bytes(s.Raw()))
	}
}

func TestLexPipeElsewhereIsContent(t *testing.T) {
	// '>' after an already-accumulated string is folded into the String.
	s := Lex([]byte("a>b"))
	tok := s.Pop()
	if tok.Kind != String || string(tok.Bytes(s.Raw())) != "a>b" {
		t.Fatalf("expected single String token 'a>b', got %v %q", tok, tok.Bytes(s.Raw()))
	}
}

func TestLexIsTotalAndReconstructs(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		",x/\\w+/ c/X/",
		"1,2d",
		"{{{}}}",
		"\x00\x01 weird \xff bytes",
	}
	for _, in := range inputs {
		s := Lex([]byte(in))
		// Every byte string yields a finite token stream.
		n := 0
		for s.Remaining() > 0 {
			s.Pop()
			n++
			if n > len(in)+1 {
				t.Fatalf("lexer did not terminate on %q", in)
			}
		}
		// Laying every token's bytes back at its offset, with spaces in
		// the gaps, gives back the input (these inputs use ' ' as their
		// only whitespace).
		rebuilt := make([]byte, len(in))
		for i := range rebuilt {
			rebuilt[i] = ' '
		}
		for i := 0; i < s.Count(); i++ {
			tok := s.At(i)
			copy(rebuilt[tok.Start:], tok.Bytes(s.Raw()))
		}
		if string(rebuilt) != in {
			t.Fatalf("reconstructed %q, want %q", rebuilt, in)
		}
	}
}

func TestJoinRunRejoinsHyphenatedName(t *testing.T) {
	s := Lex([]byte("map-window"))
	first := s.Pop()
	joined := s.JoinRun(first)
	if string(joined.Bytes(s.Raw())) != "map-window" {
		t.Fatalf("JoinRun = %q, want %q", joined.Bytes(s.Raw()), "map-window")
	}
}

func TestErrorAtFormatsCaret(t *testing.T) {
	s := Lex([]byte("x/foo"))
	tok := s.PeekAt(1)
	msg := s.ErrorAt(tok, "expected regular expression")
	if len(msg) == 0 {
		t.Fatal("expected non-empty message")
	}
	want := "---Sam Error---\nx/foo\n ^\n expected regular expression"
	if msg != want {
		t.Fatalf("ErrorAt = %q, want %q", msg, want)
	}
}
