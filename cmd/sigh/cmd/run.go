package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/cdelzotti/sigh/internal/config"
	"github.com/cdelzotti/sigh/internal/errors"
	"github.com/cdelzotti/sigh/internal/history"
	"github.com/cdelzotti/sigh/internal/interp"
	"github.com/cdelzotti/sigh/internal/lexer"
	"github.com/cdelzotti/sigh/internal/parser"
	"github.com/cdelzotti/sigh/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	evalExpr  string
	dumpAST   bool
	trace     bool
	checkOnly bool
	historyDB string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Sigh file or expression",
	Long: `Execute a Sigh program from a file or inline expression.

Examples:
  # Run a script file
  sigh run script.sigh

  # Evaluate an inline expression
  sigh run -e 'print("Hello, World!")'

  # Run with AST dump (for debugging)
  sigh run --dump-ast script.sigh

  # Run with async spawn/join tracing
  sigh run --trace script.sigh`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace async spawn/join activity")
	runCmd.Flags().BoolVar(&checkOnly, "type-check", false, "run semantic analysis and report errors, but do not execute the program")
	runCmd.Flags().StringVar(&historyDB, "history-db", "", "path to the run-history sqlite database (default: config/history.DefaultPath)")
}

func runScript(_ *cobra.Command, args []string) error {
	var input string
	filename := "<eval>"

	if evalExpr != "" {
		input = evalExpr
	} else if len(args) == 1 {
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	} else {
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	cfg, err := config.LoadFirst()
	if err != nil && verbose {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	started := time.Now()
	run := &history.Run{Source: filename, StartedAt: started}

	errCount, runErr := execute(input, filename, cfg)
	run.DurationMS = time.Since(started).Milliseconds()
	run.ExitOK = runErr == nil && errCount == 0
	run.ErrorCount = errCount
	if runErr != nil {
		run.FirstError = runErr.Error()
	}
	recordHistory(run, cfg)

	if runErr != nil {
		return runErr
	}
	return nil
}

func execute(input, filename string, cfg *config.Config) (int, error) {
	l := lexer.New(input)
	root, perrs := parser.ParseProgram(l)

	if len(l.Errors()) > 0 || len(perrs) > 0 {
		var msgs []string
		for _, e := range l.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s at %s", e.Message, e.Pos))
		}
		for _, e := range perrs {
			msgs = append(msgs, e.Error())
		}
		compilerErrors := errors.FromStringErrors(msgs, input, filename)
		fmt.Fprint(os.Stderr, errors.FormatErrors(compilerErrors, true))
		fmt.Fprintln(os.Stderr)
		return len(msgs), fmt.Errorf("parsing failed with %d error(s)", len(msgs))
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(root.String())
		fmt.Println()
	}

	a := semantic.New()
	res := a.Analyze(root)
	if len(res.Errors) > 0 {
		compilerErrors := errors.FromStringErrors(res.Errors, input, filename)
		fmt.Fprint(os.Stderr, errors.FormatErrors(compilerErrors, true))
		fmt.Fprintln(os.Stderr)
		return len(res.Errors), fmt.Errorf("semantic analysis failed with %d error(s)", len(res.Errors))
	}

	if checkOnly || cfg.TypeCheck {
		fmt.Println("no errors")
		return 0, nil
	}

	i := interp.New(a, root, os.Stdout)
	if trace {
		i.SetTracer(func(line string) { fmt.Fprintf(os.Stderr, "[trace] %s\n", line) })
	}

	if errVal := i.Run(root); errVal != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %s\n", errVal.String())
		return 0, fmt.Errorf("execution failed")
	}
	return 0, nil
}

func recordHistory(run *history.Run, cfg *config.Config) {
	path := historyDB
	if path == "" {
		path = cfg.HistoryDB
	}
	if path == "" {
		path = history.DefaultPath()
	}
	store, err := history.Open(path, false)
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "warning: could not open history database: %v\n", err)
		}
		return
	}
	defer store.Close()
	if err := store.Record(run); err != nil && verbose {
		fmt.Fprintf(os.Stderr, "warning: could not record run history: %v\n", err)
	}
}
