// Package sigh is the embeddable facade over the lex → parse → analyze →
// interpret pipeline: Parse, Analyze and Run a Sigh source string without
// going through the cmd/sigh CLI. Grounded in go-dws's pkg-level embedding
// surface (its pkg/dwscript FFI host, minus the FFI/host-interop parts this
// module's spec has no equivalent for — see DESIGN.md).
package sigh

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/interp"
	"github.com/cdelzotti/sigh/internal/lexer"
	"github.com/cdelzotti/sigh/internal/parser"
	"github.com/cdelzotti/sigh/internal/semantic"
)

// ParseResult holds a parsed program plus any lexer/parser errors.
type ParseResult struct {
	Root         *ast.RootNode
	LexErrors    []lexer.Error
	ParserErrors []*parser.Error
}

// OK reports whether parsing produced a usable tree with no errors.
func (r *ParseResult) OK() bool {
	return len(r.LexErrors) == 0 && len(r.ParserErrors) == 0
}

// Parse lexes and parses source into an AST.
func Parse(source string) *ParseResult {
	l := lexer.New(source)
	root, perrs := parser.ParseProgram(l)
	return &ParseResult{Root: root, LexErrors: l.Errors(), ParserErrors: perrs}
}

// AnalyzeResult holds an analyzed program: the decorated reactor/registry
// the interpreter needs, plus any collected semantic errors.
type AnalyzeResult struct {
	Root     *ast.RootNode
	Analyzer *semantic.Analyzer
	Errors   []string
}

// OK reports whether analysis found no semantic errors.
func (r *AnalyzeResult) OK() bool { return len(r.Errors) == 0 }

// Analyze parses then semantically analyzes source. If parsing failed, the
// returned AnalyzeResult carries the parser's errors as Errors and a nil
// Analyzer.
func Analyze(source string) *AnalyzeResult {
	pr := Parse(source)
	if !pr.OK() {
		return &AnalyzeResult{Root: pr.Root, Errors: parseErrorStrings(pr)}
	}

	a := semantic.New()
	res := a.Analyze(pr.Root)
	return &AnalyzeResult{Root: pr.Root, Analyzer: a, Errors: res.Errors}
}

func parseErrorStrings(pr *ParseResult) []string {
	var errs []string
	for _, e := range pr.LexErrors {
		errs = append(errs, fmt.Sprintf("%s at %s", e.Message, e.Pos))
	}
	for _, e := range pr.ParserErrors {
		errs = append(errs, e.Error())
	}
	return errs
}

// RunResult holds the output and outcome of executing a program.
type RunResult struct {
	Stdout string
	Error  string // empty on success
}

// Run parses, analyzes and executes source, capturing everything the
// program printed. If parsing or analysis fails, Error carries the joined
// error messages and the program is never executed.
func Run(source string) *RunResult {
	var buf bytes.Buffer
	err := RunTo(source, &buf)
	res := &RunResult{Stdout: buf.String()}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

// RunTo is like Run but writes the program's `print` output to out as it
// runs, rather than buffering it.
func RunTo(source string, out io.Writer) error {
	return RunToWithTracer(source, out, nil)
}

// RunToWithTracer is like RunTo but additionally reports async spawn/join
// activity through tracer (see internal/interp.Tracer), for the CLI's
// --trace flag and the REPL's own trace mode. A nil tracer disables
// tracing.
func RunToWithTracer(source string, out io.Writer, tracer interp.Tracer) error {
	ar := Analyze(source)
	if !ar.OK() {
		return fmt.Errorf("%d error(s):\n%s", len(ar.Errors), joinLines(ar.Errors))
	}

	i := interp.New(ar.Analyzer, ar.Root, out)
	if tracer != nil {
		i.SetTracer(tracer)
	}
	if errVal := i.Run(ar.Root); errVal != nil {
		return fmt.Errorf("%s", errVal.Message)
	}
	return nil
}

func joinLines(lines []string) string {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString("  ")
		buf.WriteString(l)
		buf.WriteString("\n")
	}
	return buf.String()
}
