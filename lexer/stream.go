package lexer

import (
	"fmt"
	"strings"
)

// TokenStream is an ordered sequence of Tokens over one command-line buffer,
// plus a read cursor. Tokens are never copied out of raw; joining and
// splitting operate purely on offsets and lengths.
type TokenStream struct {
	raw    []byte
	tokens []Token
	read   int
}

// NewTokenStream wraps an already-produced token slice; Lex builds its
// result through it.
func NewTokenStream(raw []byte, tokens []Token) *TokenStream {
	return &TokenStream{raw: raw, tokens: tokens}
}

// Raw returns the underlying command-line bytes.
func (s *TokenStream) Raw() []byte { return s.raw }

// Remaining returns the number of tokens remaining to be popped, including the
// one Peek would return.
func (s *TokenStream) Remaining() int { return len(s.tokens) - s.read }

// Count is the total number of tokens produced by the lexer, independent
// of the read cursor.
func (s *TokenStream) Count() int { return len(s.tokens) }

// At returns the token at the given absolute index (used for validation
// passes that need to look at the whole stream).
func (s *TokenStream) At(i int) Token { return s.tokens[i] }

// Peek returns the next unread token without consuming it. Returns the
// zero Token (Kind Invalid) at end of stream.
func (s *TokenStream) Peek() Token {
	if s.read >= len(s.tokens) {
		return Token{Kind: Invalid}
	}
	return s.tokens[s.read]
}

// PeekAt returns the nth unread token (0 == Peek()) without consuming
// anything, or the zero Token past the end.
func (s *TokenStream) PeekAt(n int) Token {
	idx := s.read + n
	if idx < 0 || idx >= len(s.tokens) {
		return Token{Kind: Invalid}
	}
	return s.tokens[idx]
}

// Pop consumes and returns the next unread token.
func (s *TokenStream) Pop() Token {
	tok := s.Peek()
	if tok.Kind != Invalid || s.read < len(s.tokens) {
		s.read++
	}
	return tok
}

// Push puts tok back at the read cursor, so the next Peek or Pop returns
// it. Used to hand back the unread tail of a token the parser split (the
// mark letter of a `'x` address side).
func (s *TokenStream) Push(tok Token) {
	s.tokens = append(s.tokens, Token{})
	copy(s.tokens[s.read+1:], s.tokens[s.read:])
	s.tokens[s.read] = tok
}

// Join fuses two adjacent tokens (by start+length contiguity) into one.
// It panics if the tokens are not contiguous; callers are expected to
// have checked via CanJoin first.
func (s *TokenStream) Join(a, b Token) Token {
	if a.Start+a.Len != b.Start {
		panic("lexer: Join called on non-adjacent tokens")
	}
	return Token{Start: a.Start, Len: a.Len + b.Len, Kind: a.Kind}
}

// CanJoin reports whether b immediately follows a in the raw buffer with
// no intervening bytes (i.e. no whitespace was consumed between them).
func (s *TokenStream) CanJoin(a, b Token) bool {
	return a.Start+a.Len == b.Start
}

// JoinRun repeatedly pops and joins tokens onto start, for as long as the
// next token is contiguous with the accumulated span. Used to rebuild
// command names and unquoted argument runs that the lexer over-segmented
// on delimiter bytes (e.g. "map-window" split at '-').
func (s *TokenStream) JoinRun(start Token) Token {
	result := start
	for {
		next := s.Peek()
		if next.Kind == Invalid || !s.CanJoin(result, next) {
			break
		}
		result = s.Join(result, s.Pop())
	}
	result.Kind = String
	return result
}

// SplitMarkByte consumes exactly the first byte of tok as a mark letter,
// returning that byte and the shortened remainder token so further tokens
// still see the tail (§4.2, §9 "Token-stream mutation" — rather than
// mutate a token start/length in place, we hand back a new, shorter Token
// value for the caller to push back or discard).
func SplitMarkByte(raw []byte, tok Token) (mark byte, remainder Token, ok bool) {
	if tok.Kind != String || tok.Len == 0 {
		return 0, tok, false
	}
	return raw[tok.Start], Token{Start: tok.Start + 1, Len: tok.Len - 1, Kind: String}, true
}

// ErrorAt formats a parse/lex error into the §6.4 format: the raw command
// line followed by a line with a caret under the offending token's start
// offset, then the message.
func (s *TokenStream) ErrorAt(tok Token, format string, args ...any) string {
	col := tok.Start
	if col < 0 || col > len(s.raw) {
		col = len(s.raw)
	}
	msg := fmt.Sprintf(format, args...)
	var b strings.Builder
	b.WriteString("---Sam Error---\n")
	b.Write(s.raw)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", col))
	b.WriteString("^\n")
	b.WriteString(strings.Repeat(" ", col))
	b.WriteString(msg)
	return b.String()
}
