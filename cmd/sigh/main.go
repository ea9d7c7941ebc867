// Command sigh is the Sigh language CLI: lex/parse/analyze/run scripts,
// print their AST, or drop into an interactive REPL.
//
// Grounded on go-dws's cmd/dwscript, a thin main.go that just calls
// cmd.Execute().
package main

import (
	"fmt"
	"os"

	"github.com/cdelzotti/sigh/cmd/sigh/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
