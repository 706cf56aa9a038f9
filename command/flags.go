package command

// Flags is the bitset attached to a CommandDef, drawn from spec.md §6.2.
// Bit assignments mirror the original CMD_* enum ordering so that adding a
// flag here reads the same way as adding one to that table.
type Flags uint32

const (
	Sub Flags = 1 << iota
	Regex
	RegexDefault
	CountFlag
	Text
	AddressNone
	AddressPos
	AddressLine
	AddressAfter
	AddressAll
	AddressAll1Cursor
	Shell
	Force
	Argv
	Once
	Loop
	Destructive
	Win
)

// Has reports whether all bits in want are set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Any reports whether any bit in want is set in f.
func (f Flags) Any(want Flags) bool { return f&want != 0 }
