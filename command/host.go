// Package command implements the command parser/dispatcher, the
// per-selection executor, the loop commands, and the per-command
// semantics of spec.md §4.4-§4.7.
package command

import (
	"context"

	"github.com/vis-editor/samengine/address"
	"github.com/vis-editor/samengine/marks"
	"github.com/vis-editor/samengine/registers"
	"github.com/vis-editor/samengine/selection"
	"github.com/vis-editor/samengine/textstore"
)

// Range is the byte range type shared with the address evaluator.
type Range = address.Range

// File is one open, editable buffer: its text, its view (selections),
// and its marks (spec.md §3 "Selection", §6.1).
type File struct {
	Name     string
	Internal bool // internal/scratch files are skipped by X/Y and commit
	Text     *textstore.Text
	View     *selection.View
	Marks    *marks.Store
}

// NewFile returns a File with empty view positioned at 0.
func NewFile(name string, content []byte) *File {
	return &File{
		Name:  name,
		Text:  textstore.New(content),
		View:  selection.NewView(0),
		Marks: marks.NewStore(),
	}
}

// Mark implements address.MarkSource against this file's mark store.
func (f *File) Mark(letter byte, selIndex int) (int, bool) {
	return f.Marks.Mark(letter, selIndex)
}

// PipeResult is the outcome of running a shell command through Host.Pipe.
type PipeResult struct {
	Stdout, Stderr []byte
	ExitCode       int
}

// Host is the set of editor-level services the command implementations
// need beyond one file's text/view/marks (spec.md §6.1's View/Registers/
// Process-pipe/Event-emitter, plus the vi(m)-side window and option
// surface supplemented from vis-cmds.c). A standalone engine embedder
// implements this once; tests implement a minimal fake.
type Host interface {
	// Files returns the open, non-internal files in iteration order
	// (spec.md §4.6 "X/Y ... snapshot-safe against the sub-command
	// closing the current file" — callers must snapshot this slice
	// before iterating).
	Files() []*File
	CurrentFile() *File
	SetCurrentFile(*File)

	Registers() *registers.Bank

	// Pipe runs argv with stdin as its standard input and returns
	// captured stdout/stderr (spec.md §6.1 "Process pipe").
	Pipe(ctx context.Context, argv string, stdin []byte) (PipeResult, error)

	// Log routes a user-visible info message (spec.md §7 "User-visible
	// info messages ... routed through the info-line UI sink").
	Log(format string, args ...any)

	// Exit requests the engine/host to terminate with the given status
	// (q/qall's optional trailing number, spec.md §6.3).
	Exit(code int)

	ChangeDir(path string) error
	OpenFile(path string) (*File, error)
	CloseFile(f *File) error
	SaveFile(f *File, path string, force bool) (conflict bool, err error)

	Visual() bool

	SetOption(name, value string) error
	Map(mode, lhs, rhs string, force bool) error
	Unmap(mode, lhs string) error

	NewWindow(f *File) error
	SplitWindow(f *File, vertical bool) error
}
