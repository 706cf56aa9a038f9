package address

import (
	"github.com/pkg/errors"

	"github.com/vis-editor/samengine/lexer"
)

// addressDelimiters are the bytes that may separate an address's two
// sides: `,` `;` `+` `-` (spec.md §3, §4.2).
func isAddressDelimiter(b byte) bool {
	return b == ',' || b == ';' || b == '+' || b == '-'
}

// ParseSide builds one AddressSide by consuming tokens from s, starting
// with tok (already popped by the caller). It implements the
// parse_address_side rules of spec.md §4.2.
func ParseSide(s *lexer.TokenStream, tok lexer.Token) (AddressSide, error) {
	raw := s.Raw()
	if tok.Kind == lexer.Number {
		return AddressSide{Kind: SideLine, Num: parseDecimal(tok.Bytes(raw))}, nil
	}
	if tok.Kind != lexer.Delimiter && tok.Kind != lexer.String {
		return AddressSide{}, errors.New("invalid address side")
	}
	switch tok.Byte(raw) {
	case '#':
		if s.Peek().Kind != lexer.Number {
			return AddressSide{}, errors.New(s.ErrorAt(s.Peek(), "expected byte position"))
		}
		num := s.Pop()
		return AddressSide{Kind: SideByte, Num: parseDecimal(num.Bytes(raw))}, nil
	case '\'':
		if s.Peek().Kind != lexer.String {
			return AddressSide{}, errors.New(s.ErrorAt(s.Peek(), "expected mark"))
		}
		markByte, remainder, ok := lexer.SplitMarkByte(raw, s.Pop())
		if !ok {
			return AddressSide{}, errors.New(s.ErrorAt(s.Peek(), "expected mark"))
		}
		if remainder.Len > 0 {
			// Push the shortened tail back so later parsing still sees it.
			s.Push(remainder)
		}
		return AddressSide{Kind: SideMark, Mark: markByte}, nil
	case '/', '?':
		if s.Peek().Kind == lexer.Invalid {
			return AddressSide{}, errors.New(s.ErrorAt(s.Peek(), "expected regular expression"))
		}
		pat := string(s.Pop().Bytes(raw))
		re, err := Compile(pat)
		if err != nil {
			return AddressSide{}, errors.New(s.ErrorAt(tok, "expected regular expression"))
		}
		kind := SideRegexForward
		if tok.Byte(raw) == '?' {
			kind = SideRegexBackward
		}
		return AddressSide{Kind: kind, Regex: re}, nil
	case '.', '$', '%':
		return AddressSide{Kind: SideCharacter, Char: tok.Byte(raw)}, nil
	default:
		// Bytes that introduce no recognized side (',', ';', '+', '-', or
		// anything else that reached here as a syntactically-possible left
		// side) are silently consumed as an invalid side rather than a
		// parse error — this is the literal, not the "fixed", behavior of
		// the address grammar; see spec.md §9 on `+`/`-` arithmetic and
		// SPEC_FULL.md's Non-goals. A leading `+2` with no preceding left
		// side therefore never establishes `+` as the delimiter: only
		// `3+2` does, since there the `+` is reached as a delimiter token
		// rather than consumed here as a (silently invalid) left side.
		return AddressSide{Kind: SideInvalid}, nil
	}
}

func parseDecimal(b []byte) int64 {
	var n int64
	for _, c := range b {
		n = n*10 + int64(c-'0')
	}
	return n
}

// Parse consumes a leading address expression from s, per spec.md §4.2.
// It is safe to call on a stream with no address at all: both sides come
// back SideInvalid and the delimiter defaults to ';'.
func Parse(s *lexer.TokenStream) (Address, error) {
	var addr Address
	addr.Delim = ';'

	raw := s.Raw()
	test := s.Peek()
	validLeft := test.Kind == lexer.Number ||
		(test.Kind == lexer.Delimiter && test.Byte(raw) != '?' && test.Byte(raw) != '/' && test.Byte(raw) != '$')
	if validLeft {
		side, err := ParseSide(s, s.Pop())
		if err != nil {
			return addr, err
		}
		addr.Left = side
	}

	test = s.Peek()
	if test.Kind == lexer.Delimiter && isAddressDelimiter(test.Byte(raw)) {
		addr.Delim = s.Pop().Byte(raw)
	}

	test = s.Peek()
	if test.Kind == lexer.Number || test.Kind == lexer.Delimiter {
		side, err := ParseSide(s, s.Pop())
		if err != nil {
			return addr, err
		}
		addr.Right = side
	}

	return addr, nil
}
