package command

import "github.com/vis-editor/samengine/registers"

// ExpandText substitutes register back-references into raw replacement
// text at a/i/c time (spec.md §4.7, §9 "Back-reference expansion"):
// `&` expands to the whole match (register `&`), `\1`-`\9` expand to
// capture groups, and `\\`/`\&` are literal escapes. Anything else
// following a backslash is passed through unchanged, including the
// backslash itself, matching sam.c's text().
//
// Unlike the `\n`/`\t` escapes handled while parsing the delimited
// string (spec.md §4.4 item 2), this pass runs on the already-unescaped
// text and only concerns itself with register references.
func ExpandText(raw []byte, bank *registers.Bank) []byte {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		switch {
		case b == '&':
			out = append(out, bank.Get(registers.Ampersand)...)
		case b == '\\' && i+1 < len(raw) && raw[i+1] >= '1' && raw[i+1] <= '9':
			out = append(out, bank.Get(raw[i+1])...)
			i++
		case b == '\\' && i+1 < len(raw) && (raw[i+1] == '\\' || raw[i+1] == '&'):
			out = append(out, raw[i+1])
			i++
		default:
			out = append(out, b)
		}
	}
	return out
}
