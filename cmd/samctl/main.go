// Command samctl is a CLI front-end driving the engine over files on
// disk: the generalized descendant of the teacher's cmd/glitter driver,
// now running one sam command line (or a script of them) to completion
// instead of weaving a literate-programming document.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
