package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinDefaultsSeeded(t *testing.T) {
	r := NewRegistry()
	def, ok := r.Lookup("tabwidth")
	if !ok {
		t.Fatal("tabwidth should be a builtin option")
	}
	if got := r.Get(def); got != int64(8) {
		t.Fatalf("tabwidth default = %v, want 8", got)
	}
}

func TestLookupClosestPrefix(t *testing.T) {
	r := NewRegistry()
	def, ok := r.Lookup("auto")
	if !ok || def.Name != "autoindent" {
		t.Fatalf("Lookup(\"auto\") = %v, %v; want autoindent", def, ok)
	}
}

func TestLookupAlias(t *testing.T) {
	r := NewRegistry()
	def, ok := r.Lookup("et")
	if !ok || def.Name != "expandtab" {
		t.Fatalf("Lookup(\"et\") = %v, %v; want expandtab", def, ok)
	}
}

func TestLoadTOMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "samctl.toml")
	content := "shell = \"/bin/zsh\"\ntab_width = 4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	if err := r.LoadTOML(path); err != nil {
		t.Fatal(err)
	}
	shellDef, _ := r.Lookup("shell")
	if got := r.Get(shellDef); got != "/bin/zsh" {
		t.Fatalf("shell = %v, want /bin/zsh", got)
	}
	twDef, _ := r.Lookup("tabwidth")
	if got := r.Get(twDef); got != int64(4) {
		t.Fatalf("tabwidth = %v, want 4", got)
	}
}

func TestLoadTOMLMissingFileIsNotAnError(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadTOML(filepath.Join(t.TempDir(), "missing.toml")); err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
}

func TestLoadRCOverridesBoolean(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".samrc")
	content := "[general]\nignorecase = on\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	if err := r.LoadRC(path); err != nil {
		t.Fatal(err)
	}
	def, _ := r.Lookup("ignorecase")
	if got := r.Get(def); got != true {
		t.Fatalf("ignorecase = %v, want true", got)
	}
}

func TestLoadRCUnknownOptionErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".samrc")
	if err := os.WriteFile(path, []byte("bogus = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := NewRegistry()
	if err := r.LoadRC(path); err == nil {
		t.Fatal("expected error for unknown option")
	}
}
