package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cdelzotti/sigh/internal/lexer"
	"github.com/cdelzotti/sigh/internal/parser"
	"github.com/spf13/cobra"
)

var parseExpression bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Sigh source and print the AST",
	Long: `Parse Sigh source code and display its Abstract Syntax Tree.

If no file is provided, reads from stdin.
Use -e to parse a single expression from the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse an expression from the command line")
}

func runParse(_ *cobra.Command, args []string) error {
	var input string

	switch {
	case parseExpression:
		if len(args) == 0 {
			return fmt.Errorf("no expression provided")
		}
		input = args[0]
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input = string(data)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input = string(data)
	}

	l := lexer.New(input)
	root, perrs := parser.ParseProgram(l)

	if len(l.Errors()) > 0 || len(perrs) > 0 {
		fmt.Fprintln(os.Stderr, "Parser errors:")
		for _, e := range l.Errors() {
			fmt.Fprintf(os.Stderr, "  %s at %s\n", e.Message, e.Pos)
		}
		for _, e := range perrs {
			fmt.Fprintf(os.Stderr, "  %s\n", e.Error())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(l.Errors())+len(perrs))
	}

	fmt.Println(root.String())
	return nil
}
