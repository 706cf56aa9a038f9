package address

import (
	"testing"

	"github.com/vis-editor/samengine/lexer"
)

func TestParseLineComma(t *testing.T) {
	s := lexer.Lex([]byte("1,2"))
	addr, err := Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	if addr.Left.Kind != SideLine || addr.Left.Num != 1 {
		t.Fatalf("left = %+v", addr.Left)
	}
	if addr.Delim != ',' {
		t.Fatalf("delim = %q", addr.Delim)
	}
	if addr.Right.Kind != SideLine || addr.Right.Num != 2 {
		t.Fatalf("right = %+v", addr.Right)
	}
}

func TestParseRegexAddress(t *testing.T) {
	s := lexer.Lex([]byte("/foo/"))
	addr, err := Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	// A leading `/` is never read as a left side, so the regex lands on
	// the right side of an address with no left.
	if addr.Left.Kind != SideInvalid {
		t.Fatalf("left = %+v", addr.Left)
	}
	if addr.Right.Kind != SideRegexForward || addr.Right.Regex == nil {
		t.Fatalf("right = %+v", addr.Right)
	}
}

func TestParseNoAddress(t *testing.T) {
	s := lexer.Lex([]byte("x/foo/"))
	addr, err := Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	if addr.Left.Kind != SideInvalid {
		t.Fatalf("expected no left side, got %+v", addr.Left)
	}
	if s.Remaining() == 0 {
		t.Fatal("expected command tokens to remain unconsumed")
	}
}

func TestParseByteAddress(t *testing.T) {
	s := lexer.Lex([]byte("#5"))
	addr, err := Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	if addr.Left.Kind != SideByte || addr.Left.Num != 5 {
		t.Fatalf("left = %+v", addr.Left)
	}
}

func TestParseMarkAddress(t *testing.T) {
	s := lexer.Lex([]byte("'ad"))
	addr, err := Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	if addr.Left.Kind != SideMark || addr.Left.Mark != 'a' {
		t.Fatalf("left = %+v", addr.Left)
	}
	// the 'd' command name must survive the mark-byte split.
	tok := s.Peek()
	if tok.Kind != lexer.String || string(tok.Bytes(s.Raw())) != "d" {
		t.Fatalf("remaining token = %v %q", tok, tok.Bytes(s.Raw()))
	}
}

func TestParsePlusMinusDelimiter(t *testing.T) {
	// A leading `+` has no left side to attach to: parse_address_side
	// silently consumes it as an invalid side (it matches none of the
	// side cases), so the delimiter falls back to the default ';' and
	// only the right side (line 2) survives. This is the literal
	// behavior carried over from the original parser, not a bug fix;
	// see ParseSide's default case.
	s := lexer.Lex([]byte("+2"))
	addr, err := Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	if addr.Left.Kind != SideInvalid {
		t.Fatalf("left = %+v", addr.Left)
	}
	if addr.Delim != ';' {
		t.Fatalf("delim = %q", addr.Delim)
	}
	if addr.Right.Kind != SideLine || addr.Right.Num != 2 {
		t.Fatalf("right = %+v", addr.Right)
	}
}

func TestParsePlusAfterExplicitLeftIsDelimiter(t *testing.T) {
	// Once a real left side has been consumed (the number 3), a
	// following `+` is read as the address delimiter, giving the
	// arithmetic its intended meaning: "2 lines past line 3".
	s := lexer.Lex([]byte("3+2"))
	addr, err := Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	if addr.Left.Kind != SideLine || addr.Left.Num != 3 {
		t.Fatalf("left = %+v", addr.Left)
	}
	if addr.Delim != '+' {
		t.Fatalf("delim = %q", addr.Delim)
	}
	if addr.Right.Kind != SideLine || addr.Right.Num != 2 {
		t.Fatalf("right = %+v", addr.Right)
	}
}
