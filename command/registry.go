package command

import (
	"bitbucket.org/creachadair/stringset"

	"github.com/vis-editor/samengine/selection"
)

// Fn is a command implementation: spec.md §3 "CommandDef.fn", invoked once
// per selection (or once overall for Once/non-Win commands) by the
// per-selection executor (§4.5). rng is the range the selection resolved
// to for this command (the command-specific default, or the evaluated
// address if one was given); sel is the live selection itself, so a
// command may move or anchor it (e.g. `p`, `x`, `y`).
type Fn func(ctx *ExecContext, cmd *Command, sel *selection.Selection, rng *Range) error

// Def is one entry in the command registry: name, one-line help, the
// implementation, and its flag set (spec.md §3 "CommandDef").
type Def struct {
	Name  string
	Help  string
	Fn    Fn
	Flags Flags
}

// Registry resolves a (possibly abbreviated) command name to its Def via
// closest-prefix lookup (spec.md §9 "Closest-prefix command lookup"):
// sorted command names, longest useful prefix, ties broken toward the
// shortest (then lexicographically first) exact name.
type Registry struct {
	byName  map[string]*Def
	names   stringset.Set
	ordered []string // names, kept sorted for deterministic prefix scans
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Def), names: stringset.New()}
}

// Register adds def to the registry. Panics on a duplicate name since
// that can only happen from a programming error in the builtin table.
func (r *Registry) Register(def Def) {
	if _, exists := r.byName[def.Name]; exists {
		panic("command: duplicate registration for " + def.Name)
	}
	r.byName[def.Name] = &def
	r.names.Add(def.Name)
	r.ordered = r.names.Elements()
}

// Lookup resolves name to a Def, preferring an exact match, then falling
// back to closest-prefix resolution. ok is false for a name that matches
// nothing registered.
func (r *Registry) Lookup(name string) (*Def, bool) {
	if def, ok := r.byName[name]; ok {
		return def, true
	}
	if name == "" {
		return nil, false
	}
	var best string
	for _, candidate := range r.ordered {
		if len(candidate) <= len(name) || candidate[:len(name)] != name {
			continue
		}
		switch {
		case best == "":
			best = candidate
		case len(candidate) < len(best):
			best = candidate
		case len(candidate) == len(best) && candidate < best:
			best = candidate
		}
	}
	if best == "" {
		return nil, false
	}
	return r.byName[best], true
}
