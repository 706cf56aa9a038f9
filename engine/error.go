package engine

// SamError is the top-level outcome of a Run invocation, mirroring the
// enum SamError of sam.c (SAM_ERR_*). Run reports ErrCommand when the
// command line fails to lex or parse (no file is touched), ErrExecute
// when a command fails while executing (this includes an edit that
// overlaps one already recorded; the current file's pending edits are
// then not committed, while files an X/Y loop already visited keep their
// commits), and ErrConflict when applying the current file's transcript
// fails. Run returns no other code: a `w` with edits pending is logged by
// the command and the run goes on, without ErrWriteConflict.
type SamError int

const (
	ErrOK SamError = iota
	ErrAddress
	ErrNoAddress
	ErrUnmatchedBrace
	ErrRegex
	ErrText
	ErrShell
	ErrCommand
	ErrExecute
	ErrMark
	ErrConflict
	ErrWriteConflict
	ErrLoopInvalidCommand
	ErrCount
)

// String mirrors sam_error's lookup table.
func (e SamError) String() string {
	switch e {
	case ErrOK:
		return "success"
	case ErrAddress:
		return "bad address"
	case ErrNoAddress:
		return "command takes no address"
	case ErrUnmatchedBrace:
		return "unmatched `}'"
	case ErrRegex:
		return "bad regular expression"
	case ErrText:
		return "bad text"
	case ErrShell:
		return "shell command expected"
	case ErrCommand:
		return "unknown command"
	case ErrExecute:
		return "error executing command"
	case ErrMark:
		return "invalid mark"
	case ErrConflict:
		return "conflicting changes"
	case ErrWriteConflict:
		return "can not write while changing"
	case ErrLoopInvalidCommand:
		return "destructive command in looping construct"
	case ErrCount:
		return "invalid count"
	default:
		return "unknown error"
	}
}

func (e SamError) Error() string { return e.String() }
