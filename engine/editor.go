package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"github.com/vis-editor/samengine/command"
	"github.com/vis-editor/samengine/config"
	"github.com/vis-editor/samengine/registers"
	"github.com/vis-editor/samengine/samlog"
)

// ErrNoWindow is returned by the window-manager commands (new/open/
// split/vsplit/vnew): file-level bookkeeping (opening, registering,
// making current) still happens, but actual window/screen layout is an
// explicit out-of-scope external collaborator (spec.md §1), so the
// command surfaces this rather than silently pretending a split
// happened.
var ErrNoWindow = fmt.Errorf("window management is not implemented by this host")

// keymap is mode -> left-hand side -> right-hand side, the minimal shape
// vis-cmds.c's command_map/command_unmap need.
type keymap map[string]map[string]string

// Editor is a headless, in-memory implementation of command.Host: it
// tracks open files, the register bank, and the `:set` option registry,
// and runs shell commands via os/exec (spec.md §6.1 "Process pipe" is a
// required consumed service; a full job-control layer is explicitly out
// of scope, so this is the minimal concrete adapter).
type Editor struct {
	files   []*command.File
	current *command.File

	registers *registers.Bank
	options   *config.Registry
	keymaps   keymap

	visual bool

	exitRequested bool
	exitCode      int

	Logger *zap.Logger
}

// NewEditor returns an Editor with an empty register bank and the
// builtin `:set` option defaults.
func NewEditor() *Editor {
	return &Editor{
		registers: registers.NewBank(),
		options:   config.NewRegistry(),
		keymaps:   make(keymap),
		Logger:    samlog.Discard(),
	}
}

// Options exposes the live `:set` registry for callers that want to read
// or seed option values (e.g. samctl's config wiring) without going
// through the `set` command.
func (e *Editor) Options() *config.Registry { return e.options }

// SetOptions replaces the live `:set` registry wholesale, for a CLI that
// loaded samctl.toml/.samrc before opening any file.
func (e *Editor) SetOptions(reg *config.Registry) { e.options = reg }

// Open adds content to the editor as a named, non-scratch file and makes
// it current, for a CLI front-end populating an Editor from disk.
func (e *Editor) Open(name string, content []byte) *command.File {
	f := command.NewFile(name, content)
	e.files = append(e.files, f)
	e.current = f
	return f
}

// ShouldExit reports whether a q/qall/wq-family command requested
// termination, and the exit code it asked for (sam.c's
// vis->sam.should_exit latch, reset at the start of every Run).
func (e *Editor) ShouldExit() (bool, int) { return e.exitRequested, e.exitCode }

func (e *Editor) resetExitLatch() {
	e.exitRequested = false
	e.exitCode = 0
}

// --- command.Host ---

func (e *Editor) Files() []*command.File {
	out := make([]*command.File, 0, len(e.files))
	for _, f := range e.files {
		if !f.Internal {
			out = append(out, f)
		}
	}
	return out
}

func (e *Editor) CurrentFile() *command.File     { return e.current }
func (e *Editor) SetCurrentFile(f *command.File) { e.current = f }
func (e *Editor) Registers() *registers.Bank     { return e.registers }

func (e *Editor) Pipe(ctx context.Context, argv string, stdin []byte) (command.PipeResult, error) {
	shell := "/bin/sh"
	if def, ok := e.options.Lookup("shell"); ok {
		if s, ok := e.options.Get(def).(string); ok && s != "" {
			shell = s
		}
	}
	cmd := exec.CommandContext(ctx, shell, "-c", argv)
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	code := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
		err = nil
	}
	return command.PipeResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes(), ExitCode: code}, err
}

func (e *Editor) Log(format string, args ...any) {
	e.Logger.Sugar().Infof(format, args...)
}

func (e *Editor) Exit(code int) {
	e.exitRequested = true
	e.exitCode = code
}

func (e *Editor) ChangeDir(path string) error { return os.Chdir(path) }

func (e *Editor) OpenFile(path string) (*command.File, error) {
	for _, f := range e.files {
		if f.Name == path {
			return f, nil
		}
	}
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	f := command.NewFile(path, content)
	e.files = append(e.files, f)
	return f, nil
}

func (e *Editor) CloseFile(f *command.File) error {
	for i, existing := range e.files {
		if existing == f {
			e.files = append(e.files[:i], e.files[i+1:]...)
			break
		}
	}
	if e.current == f {
		e.current = nil
		if len(e.files) > 0 {
			e.current = e.files[len(e.files)-1]
		}
	}
	return nil
}

func (e *Editor) SaveFile(f *command.File, path string, force bool) (conflict bool, err error) {
	if f.Text.Modified() && path == f.Name && !force {
		if _, statErr := os.Stat(path); statErr == nil {
			// best-effort staleness check only: a real mtime/hash
			// comparison needs the read-time snapshot sam.c keeps per
			// File (file->stat); this host does not track that, so a
			// pre-existing file is only ever treated as a soft warning.
		}
	}
	if err := os.WriteFile(path, f.Text.Bytes(0, f.Text.Size()), 0o644); err != nil {
		return false, err
	}
	f.Name = path
	f.Text.MarkCurrentRevision()
	return false, nil
}

func (e *Editor) Visual() bool { return e.visual }

func (e *Editor) SetOption(name, value string) error {
	def, ok := e.options.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown option: %q", name)
	}
	switch def.Type {
	case config.TypeBool:
		switch value {
		case "", "1", "true", "yes", "on":
			e.options.Set(def, true)
		case "0", "false", "no", "off":
			e.options.Set(def, false)
		default:
			return fmt.Errorf("%s: expecting boolean, got %q", name, value)
		}
	case config.TypeNumber:
		var n int64
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
			return fmt.Errorf("%s: expecting number, got %q", name, value)
		}
		e.options.Set(def, n)
	default:
		e.options.Set(def, value)
	}
	return nil
}

func (e *Editor) Map(mode, lhs, rhs string, force bool) error {
	m, ok := e.keymaps[mode]
	if !ok {
		m = make(map[string]string)
		e.keymaps[mode] = m
	}
	if _, exists := m[lhs]; exists && !force {
		return fmt.Errorf("map: %q already mapped in mode %q (use ! to override)", lhs, mode)
	}
	m[lhs] = rhs
	return nil
}

func (e *Editor) Unmap(mode, lhs string) error {
	m, ok := e.keymaps[mode]
	if !ok {
		return fmt.Errorf("unmap: no mappings for mode %q", mode)
	}
	if _, exists := m[lhs]; !exists {
		return fmt.Errorf("unmap: %q is not mapped in mode %q", lhs, mode)
	}
	delete(m, lhs)
	return nil
}

func (e *Editor) NewWindow(f *command.File) error {
	e.files = append(e.files, f)
	e.current = f
	return ErrNoWindow
}

func (e *Editor) SplitWindow(f *command.File, vertical bool) error {
	found := false
	for _, existing := range e.files {
		if existing == f {
			found = true
			break
		}
	}
	if !found {
		e.files = append(e.files, f)
	}
	e.current = f
	return ErrNoWindow
}
