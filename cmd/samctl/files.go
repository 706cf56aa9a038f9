package main

import (
	"bufio"
	"os"

	"github.com/vis-editor/samengine/engine"
)

// openFiles loads each path into ed, in order, leaving the last one
// current (matching the teacher's GivenFiles convention in
// cmd/glitter/glitter.go, where flag.Args()[1:] became the file list
// acted on in sequence). Unlike Editor.OpenFile (which is for commands
// like `e` that open one file without disturbing the rest of the
// session), this always appends and always advances current.
func openFiles(ed *engine.Editor, paths []string) error {
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		ed.Open(path, content)
	}
	return nil
}

// readLines reads a script file into one string per line (blank lines
// included; engine.RunScript and `check` skip those themselves) for
// `run --script`'s line-at-a-time RunScript mode and for `check`'s
// per-line parse.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
