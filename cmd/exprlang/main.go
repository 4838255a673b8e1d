// Command exprlang is a thin CLI surface over the expression engine:
// lex/parse/run the three pipeline stages individually, or evaluate an
// expression end to end.
package main

import (
	"fmt"
	"os"

	"github.com/exprlang/exprlang/cmd/exprlang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
