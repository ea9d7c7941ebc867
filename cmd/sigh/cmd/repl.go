package cmd

import (
	"os"

	"github.com/cdelzotti/sigh/internal/repl"
	"github.com/spf13/cobra"
)

var replTrace bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Sigh session",
	Long:  `repl launches a line-editing interactive Sigh session.`,
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().BoolVar(&replTrace, "trace", false, "trace async spawn/join activity")
}

func runRepl(_ *cobra.Command, args []string) error {
	r := repl.New()
	if replTrace {
		r.EnableTrace()
	}
	r.Start(os.Stdout)
	return nil
}
