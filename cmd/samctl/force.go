package main

import "strings"

// applyForce appends the `!` force flag right after a bare w/r/e/wq
// command name when --force is set and the caller didn't already spell
// it out, so --force reaches the engine exactly the way a user typing
// `w!` at the command line would (command.Command.Force, spec.md §4.4).
func applyForce(commandLine string, force bool) string {
	if !force {
		return commandLine
	}
	for _, name := range []string{"wq", "w", "r", "e"} {
		if commandLine == name {
			return name + "!"
		}
		if strings.HasPrefix(commandLine, name+" ") {
			return name + "!" + commandLine[len(name):]
		}
	}
	return commandLine
}
