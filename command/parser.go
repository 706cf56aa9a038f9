package command

import (
	"github.com/pkg/errors"

	"github.com/vis-editor/samengine/address"
	"github.com/vis-editor/samengine/lexer"
)

const maxArgv = 64

// ParseStatementList parses a sequence of statements (spec.md §6.3:
// "address? command (sub-command | {statement-list})?", repeated) until
// the token stream is exhausted or — when parsing a `{ … }` group — a
// GroupEnd token is reached (left unconsumed for the caller). It returns
// the head of the sibling chain.
func ParseStatementList(s *lexer.TokenStream, reg *Registry) (*Command, error) {
	var start, end *Command
	sawLoop := false

	for s.Remaining() > 0 {
		if s.Peek().Kind == lexer.GroupEnd {
			break
		}
		addr, err := address.Parse(s)
		if err != nil {
			return start, err
		}
		if s.Remaining() == 0 {
			if addr.HasLeft() || addr.Right.Kind != address.SideInvalid {
				return start, errors.New(s.ErrorAt(s.Peek(), "no command"))
			}
			break
		}
		if s.Peek().Kind == lexer.GroupEnd {
			break
		}

		cmd, err := parseOneCommand(s, reg, addr, sawLoop)
		if err != nil {
			return start, err
		}
		if cmd.Definition != nil && cmd.Definition.Flags.Has(Loop) {
			sawLoop = true
		}
		start, end = appendSibling(start, end, cmd)
	}
	return start, nil
}

// parseOneCommand parses one statement's command (and, recursively, its
// group body or sub-command) after its leading address has already been
// consumed.
func parseOneCommand(s *lexer.TokenStream, reg *Registry, addr address.Address, sawLoop bool) (*Command, error) {
	tok := s.Pop()

	if tok.Kind == lexer.GroupStart {
		cmd := &Command{Address: addr}
		children, err := ParseStatementList(s, reg)
		if err != nil {
			return nil, err
		}
		if s.Peek().Kind != lexer.GroupEnd {
			return nil, errors.New(s.ErrorAt(s.Peek(), "unmatched brace"))
		}
		s.Pop()
		cmd.SubCommand = children
		return cmd, nil
	}

	if tok.Kind != lexer.String {
		return nil, errors.New(s.ErrorAt(tok, "invalid command"))
	}

	name := joinCommandName(s, tok)
	def, ok := reg.Lookup(name)
	if !ok {
		return nil, errors.New(s.ErrorAt(tok, "invalid command"))
	}
	if sawLoop && def.Flags.Has(Destructive) {
		return nil, errors.New(s.ErrorAt(tok, "destructive command in looping construct"))
	}

	cmd := &Command{Definition: def, Address: addr}
	if err := parseCommandSyntax(cmd, s, reg); err != nil {
		return nil, err
	}
	return cmd, nil
}

// parseCommandSyntax consumes the flag-driven syntax following a command
// name, in the fixed order of spec.md §4.4: Force, Text, Shell, Regex,
// Count, Argv, Sub-command.
func parseCommandSyntax(cmd *Command, s *lexer.TokenStream, reg *Registry) error {
	raw := s.Raw()
	flags := cmd.Definition.Flags

	if flags.Has(Force) && s.Peek().Kind == lexer.Delimiter && s.Peek().Byte(raw) == '!' {
		s.Pop()
		cmd.Force = true
	}

	if flags.Has(Text) {
		cmd.Count.Start = 1
		if s.Peek().Kind == lexer.Number {
			cmd.Count.Start = int(parseDecimal(s.Pop().Bytes(raw)))
		}
		content, _, err := parseDelimitedString(s)
		if err != nil {
			return err
		}
		cmd.Args = []string{string(content)}
	}

	if flags.Has(Shell) {
		if s.Peek().Kind != lexer.Invalid {
			rest := joinToEndOfLine(s)
			cmd.ShellText = rest
		}
	}

	if flags.Has(Regex) {
		if s.Peek().Kind == lexer.Delimiter && isDelimiterIntroducer(s.Peek().Byte(raw)) {
			d := s.Peek().Byte(raw)
			content, _, err := parseDelimitedString(s)
			if err != nil {
				return err
			}
			re, err := address.Compile(string(content))
			if err != nil {
				return errors.New(s.ErrorAt(s.Peek(), "expected regular expression"))
			}
			_ = d
			cmd.Regex = re
		} else if !flags.Has(RegexDefault) {
			return errors.New(s.ErrorAt(s.Peek(), "expected regular expression"))
		}
	}

	if flags.Has(CountFlag) {
		if err := parseCount(cmd, s); err != nil {
			return err
		}
		cmd.Count.DefaultRange()
	}

	if flags.Has(Argv) {
		cmd.Args = parseArgv(s)
	}

	if flags.Has(Sub) {
		subAddr, err := address.Parse(s)
		if err != nil {
			return err
		}
		sub, err := parseOneCommand(s, reg, subAddr, false)
		if err != nil {
			return err
		}
		cmd.SubCommand = sub
	}

	return nil
}

// parseDelimitedString consumes an opening Delimiter token d, then scans
// the raw buffer for the matching closing occurrence of d (spec.md §4.4
// item 2), applying `\n`/`\t`/`\\` escapes and un-escaping `\d` to a
// literal d. Scanning the raw bytes directly (rather than rejoining
// tokens) is necessary because the lexer drops whitespace between tokens,
// which delimited text must preserve verbatim.
func parseDelimitedString(s *lexer.TokenStream) (content []byte, closed bool, err error) {
	raw := s.Raw()
	open := s.Peek()
	if open.Kind != lexer.Delimiter {
		return nil, false, errors.New(s.ErrorAt(open, "expected delimited string"))
	}
	s.Pop()
	d := open.Byte(raw)
	start := open.Start + open.Len

	pos := start
	var buf []byte
	for pos < len(raw) {
		b := raw[pos]
		if b == '\\' && pos+1 < len(raw) {
			esc := raw[pos+1]
			switch {
			case esc == 'n':
				buf = append(buf, '\n')
			case esc == 't':
				buf = append(buf, '\t')
			case esc == '\\':
				buf = append(buf, '\\')
			case esc == d:
				buf = append(buf, d)
			default:
				buf = append(buf, b, esc)
			}
			pos += 2
			continue
		}
		if b == d {
			pos++
			skipTokensUpTo(s, pos)
			return buf, true, nil
		}
		buf = append(buf, b)
		pos++
	}
	skipTokensUpTo(s, pos)
	return buf, false, nil
}

// skipTokensUpTo advances the stream's read cursor past every token whose
// start lies before target, keeping the TokenStream in sync after a raw
// byte scan consumed a span spanning multiple tokens.
func skipTokensUpTo(s *lexer.TokenStream, target int) {
	for s.Peek().Kind != lexer.Invalid && s.Peek().Start < target {
		s.Pop()
	}
}

// joinToEndOfLine consumes and concatenates the raw bytes of every
// remaining token (and the whitespace between them) to the end of the
// line, trimming leading space, for the Shell flag's remainder-of-line
// rule.
func joinToEndOfLine(s *lexer.TokenStream) string {
	raw := s.Raw()
	tok := s.Peek()
	start := tok.Start
	for s.Peek().Kind != lexer.Invalid {
		s.Pop()
	}
	end := len(raw)
	text := raw[start:end]
	i := 0
	for i < len(text) && isSpaceByte(text[i]) {
		i++
	}
	return string(text[i:])
}

// parseCount parses the `n`, `n,m`, or `%n` count syntax of spec.md §4.4
// item 5.
func parseCount(cmd *Command, s *lexer.TokenStream) error {
	raw := s.Raw()
	mod := false
	if s.Peek().Kind == lexer.Delimiter && s.Peek().Byte(raw) == '%' {
		s.Pop()
		mod = true
	}

	start, ok := tryParseSignedNumber(s)
	if !ok {
		if mod {
			return errors.New(s.ErrorAt(s.Peek(), "expected count"))
		}
		return nil
	}
	cmd.Count.Start = start
	cmd.Count.Mod = mod
	if mod {
		cmd.Count.End = start
		return nil
	}
	if s.Peek().Kind == lexer.Delimiter && s.Peek().Byte(raw) == ',' {
		s.Pop()
		end, ok := tryParseSignedNumber(s)
		if !ok {
			return errors.New(s.ErrorAt(s.Peek(), "expected count"))
		}
		cmd.Count.End = end
	}
	return nil
}

// tryParseSignedNumber consumes an optional leading `+`/`-` sign
// immediately followed by a Number token (sam.c's
// sam_token_try_pop_number).
func tryParseSignedNumber(s *lexer.TokenStream) (int, bool) {
	raw := s.Raw()
	neg := false
	if s.Peek().Kind == lexer.Delimiter && (s.Peek().Byte(raw) == '+' || s.Peek().Byte(raw) == '-') {
		neg = s.Peek().Byte(raw) == '-'
		s.Pop()
	}
	if s.Peek().Kind != lexer.Number {
		return 0, false
	}
	n := int(parseDecimal(s.Pop().Bytes(raw)))
	if neg {
		n = -n
	}
	return n, true
}

// parseArgv joins adjacent tokens into whitespace-separated arguments,
// honoring "..."/'...' quoted forms, up to maxArgv entries (spec.md §4.4
// item 6).
func parseArgv(s *lexer.TokenStream) []string {
	raw := s.Raw()
	var args []string
	for len(args) < maxArgv {
		tok := s.Peek()
		if tok.Kind == lexer.Invalid || tok.Kind == lexer.GroupEnd {
			break
		}
		if tok.Kind == lexer.Delimiter && tok.Byte(raw) == '\'' {
			content, _, err := parseDelimitedString(s)
			if err != nil {
				break
			}
			args = append(args, string(content))
			continue
		}
		if tok.Kind == lexer.String && tok.Byte(raw) == '"' {
			pos := tok.Start + 1
			for pos < len(raw) && raw[pos] != '"' {
				pos++
			}
			args = append(args, string(raw[tok.Start+1:pos]))
			if pos < len(raw) {
				pos++
			}
			skipTokensUpTo(s, pos)
			continue
		}
		joined := s.JoinRun(s.Pop())
		args = append(args, string(joined.Bytes(raw)))
	}
	return args
}

// joinCommandName rebuilds a command name the lexer over-segmented on a
// `-` delimiter byte (e.g. "map-window"), mirroring
// sam_token_join_command_name: extend past any run of non-space,
// non-digit bytes, and bridge a single `-` byte provided more text
// follows it.
func joinCommandName(s *lexer.TokenStream, first lexer.Token) string {
	raw := s.Raw()
	pos := first.Start + first.Len
	for pos < len(raw) {
		b := raw[pos]
		if b == '-' && pos+1 < len(raw) {
			pos++
			continue
		}
		if isNameByte(b) {
			pos++
			continue
		}
		break
	}
	end := pos
	for s.Peek().Kind != lexer.Invalid && s.Peek().Start < end {
		s.Pop()
	}
	return string(raw[first.Start:end])
}

func isSpaceByte(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

func isNameByte(b byte) bool {
	if isSpaceByte(b) || isDigitByte(b) {
		return false
	}
	switch b {
	case '/', '!', ';', ':', '%', '#', '?', ',', '.', '+', '-', '=', '\'', '{', '}', '<', '>', '|':
		return false
	}
	return true
}

func isDelimiterIntroducer(b byte) bool {
	switch b {
	case '/', '!', ';', ':', '%', '#', '?', ',', '.', '+', '-', '=', '\'':
		return true
	}
	return false
}

func parseDecimal(b []byte) int64 {
	var n int64
	for _, c := range b {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int64(c-'0')
	}
	return n
}
