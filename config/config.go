// Package config loads and exposes the engine's persisted settings: the
// `:set`-able option registry (spec.md §6.3 grammar surface, expanded
// from vis-cmds.c's OptionDef table) plus the ambient TOML/INI config
// files that seed its defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/creachadair/ini"
)

// Type is an option's value kind, mirroring VIS_OPTION_TYPE_* in
// vis-cmds.c's OptionDef.flags.
type Type int

const (
	TypeBool Type = iota
	TypeString
	TypeNumber
)

// OptionDef is one `:set`-able option: its canonical name, any aliases,
// its value type, whether it needs an active window, and its default.
// Shape mirrors vis-cmds.c's OptionDef (names[], flags, a default Arg).
type OptionDef struct {
	Name        string
	Aliases     []string
	Type        Type
	NeedsWindow bool
	Deprecated  bool
	Default     any
}

// builtin is the option table itself, transcribed from the OPTION_*
// switch in vis-cmds.c's command_set: shell, escdelay, expandtab,
// autoindent, tabwidth, show-{spaces,tabs,newlines,eof}, statusbar,
// number(-relative), ignorecase.
var builtin = []OptionDef{
	{Name: "shell", Aliases: nil, Type: TypeString, Default: defaultShell()},
	{Name: "escdelay", Type: TypeNumber, Default: int64(50)},
	{Name: "expandtab", Aliases: []string{"et"}, Type: TypeBool, NeedsWindow: true, Default: false},
	{Name: "autoindent", Aliases: []string{"ai"}, Type: TypeBool, Default: false},
	{Name: "tabwidth", Aliases: []string{"tw"}, Type: TypeNumber, NeedsWindow: true, Default: int64(8)},
	{Name: "show-spaces", Type: TypeBool, NeedsWindow: true, Default: false},
	{Name: "show-tabs", Type: TypeBool, NeedsWindow: true, Default: false},
	{Name: "show-newlines", Type: TypeBool, NeedsWindow: true, Default: false},
	{Name: "show-eof", Type: TypeBool, NeedsWindow: true, Default: false},
	{Name: "statusbar", Type: TypeBool, NeedsWindow: true, Default: true},
	{Name: "number", Aliases: []string{"nu"}, Type: TypeBool, NeedsWindow: true, Default: false},
	{Name: "number-relative", Aliases: []string{"nurel"}, Type: TypeBool, NeedsWindow: true, Default: false},
	{Name: "ignorecase", Aliases: []string{"ic"}, Type: TypeBool, Default: false},
}

func defaultShell() string {
	if s := os.Getenv("SHELL"); s != "" {
		return s
	}
	return "/bin/sh"
}

// Registry resolves a `:set` option name (possibly abbreviated) to its
// OptionDef and holds the live values, seeded from the builtin table and
// then overridden from the loaded TOML/INI files.
type Registry struct {
	defs   map[string]*OptionDef // every alias and the canonical name point here
	names  []string              // canonical names, sorted, for closest-prefix scans
	values map[string]any
}

// NewRegistry returns a Registry seeded with every builtin option's
// default value.
func NewRegistry() *Registry {
	r := &Registry{
		defs:   make(map[string]*OptionDef),
		values: make(map[string]any),
	}
	for i := range builtin {
		def := &builtin[i]
		r.defs[def.Name] = def
		r.names = append(r.names, def.Name)
		for _, alias := range def.Aliases {
			r.defs[alias] = def
		}
		r.values[def.Name] = def.Default
	}
	sort.Strings(r.names)
	return r
}

// Lookup resolves name to its OptionDef via exact match, then
// closest-prefix (same rule as command.Registry.Lookup, spec.md §9).
func (r *Registry) Lookup(name string) (*OptionDef, bool) {
	if def, ok := r.defs[name]; ok {
		return def, true
	}
	var best *OptionDef
	for _, candidate := range r.names {
		if len(candidate) <= len(name) || candidate[:len(name)] != name {
			continue
		}
		if best == nil || len(candidate) < len(best.Name) {
			best = r.defs[candidate]
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// Get returns the live value of an already-resolved option.
func (r *Registry) Get(def *OptionDef) any { return r.values[def.Name] }

// Set stores a new value for an already-resolved option. The caller
// (engine.Editor.SetOption) is responsible for type-checking/parsing the raw
// `:set` argument against def.Type first.
func (r *Registry) Set(def *OptionDef, value any) { r.values[def.Name] = value }

// fileConfig is the shape of samctl.toml: the subset of options that
// make sense ambiently (outside of any open window).
type fileConfig struct {
	Shell      string `toml:"shell"`
	TabWidth   int64  `toml:"tab_width"`
	AutoIndent bool   `toml:"autoindent"`
	IgnoreCase bool   `toml:"ignorecase"`
}

// LoadTOML applies samctl.toml's defaults on top of the builtin ones.
// A missing file is not an error — the builtin defaults stand.
func (r *Registry) LoadTOML(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	if fc.Shell != "" {
		r.values["shell"] = fc.Shell
	}
	if fc.TabWidth != 0 {
		r.values["tabwidth"] = fc.TabWidth
	}
	r.values["autoindent"] = fc.AutoIndent
	r.values["ignorecase"] = fc.IgnoreCase
	return nil
}

// LoadRC applies a traditional `.samrc` rc-file on top of whatever TOML
// defaults are already loaded, one `name = value` pair per option,
// grouped into sections purely for readability (sections are otherwise
// ignored — vis has no notion of per-section options).
func (r *Registry) LoadRC(path string) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	return ini.Parse(f, ini.Handler{
		KeyValue: func(_ ini.Location, key string, values []string) error {
			def, ok := r.Lookup(key)
			if !ok {
				return fmt.Errorf("config: %s: unknown option %q", path, key)
			}
			raw := ""
			if len(values) > 0 {
				raw = values[0]
			}
			val, err := parseRCValue(def, raw)
			if err != nil {
				return fmt.Errorf("config: %s: %w", path, err)
			}
			r.values[def.Name] = val
			return nil
		},
	})
}

func parseRCValue(def *OptionDef, raw string) (any, error) {
	switch def.Type {
	case TypeBool:
		switch raw {
		case "1", "true", "yes", "on":
			return true, nil
		case "0", "false", "no", "off", "":
			return false, nil
		default:
			return nil, fmt.Errorf("%s: expecting boolean, got %q", def.Name, raw)
		}
	case TypeNumber:
		var n int64
		if _, err := fmt.Sscanf(raw, "%d", &n); err != nil {
			return nil, fmt.Errorf("%s: expecting number, got %q", def.Name, raw)
		}
		return n, nil
	default:
		return raw, nil
	}
}

// DefaultTOMLPath returns the conventional samctl.toml location,
// "$XDG_CONFIG_HOME/samctl/samctl.toml" falling back to
// "~/.config/samctl/samctl.toml".
func DefaultTOMLPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "samctl.toml"
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "samctl", "samctl.toml")
}

// DefaultRCPath returns the conventional per-project ".samrc" location in
// the current working directory.
func DefaultRCPath() string { return ".samrc" }
