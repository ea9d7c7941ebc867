// Package cmd implements the sigh cobra command tree.
//
// Grounded on go-dws's cmd/dwscript/cmd: a package-level rootCmd with
// version template + persistent --verbose flag, each subcommand
// registering itself via init().
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set by build flags, same idiom as go-dws's root.go).
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "sigh",
	Short: "Sigh language interpreter",
	Long: `sigh is a tree-walking interpreter for the Sigh language: a small
statically typed, imperative language with single-inheritance classes,
structural ("duck") type compatibility, a parent-call mechanism (Daddy),
and Unborn<T>/born asynchronous values.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
