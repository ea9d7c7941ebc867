// Package repl implements the interactive Sigh line-editing REPL.
//
// Grounded in sunholo-data-ailang's internal/repl: a
// liner.State-driven prompt loop, fatih/color-painted output, a persistent
// history slice, and `:`-prefixed REPL commands (:help, :history, :reset,
// :quit).
//
// Sigh has no closures and no incremental-compilation primitive of its
// own, and the semantic analyzer's reactor accumulates its error list for
// the lifetime of one Analyzer (internal/reactor.Reactor.Finish never
// clears r.errors — see DESIGN.md), so reusing one Analyzer/Interpreter
// pair across lines would leak a failed line's errors into every
// subsequent line's report. Instead, each accepted line is appended to a
// growing source buffer; every submission re-lexes, re-parses, re-analyzes
// and re-runs the *entire* buffer from scratch with a fresh
// semantic.Analyzer/interp.Interpreter (via pkg/sigh), and only the output
// *beyond* what the previous successful run already printed is shown. This
// keeps each line's analysis self-contained and correct at the cost of
// re-executing prior lines, which is unobservable for Sigh's print-only
// I/O as long as the session doesn't rely on non-deterministic async
// interleaving across lines (documented as a REPL limitation below).
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/cdelzotti/sigh/internal/interp"
	"github.com/cdelzotti/sigh/pkg/sigh"
	"github.com/fatih/color"
	"github.com/peterh/liner"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// REPL is one interactive session.
type REPL struct {
	lines      []string // accepted source lines, in order
	lastOutput string   // stdout produced by the last successful full re-run
	history    []string // every line the user typed, including rejected ones
	trace      bool
}

// New creates an empty REPL session.
func New() *REPL {
	return &REPL{}
}

// EnableTrace turns on async spawn/join tracing for every subsequent run.
func (r *REPL) EnableTrace() { r.trace = true }

// Start runs the REPL loop, reading lines with liner and writing prompts,
// results and errors to out.
func (r *REPL) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Fprintln(out, bold("Sigh REPL"))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	line.SetCompleter(func(in string) (c []string) {
		if strings.HasPrefix(in, ":") {
			for _, cmd := range []string{":help", ":history", ":reset", ":quit"} {
				if strings.HasPrefix(cmd, in) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	for {
		input, err := line.Prompt("sigh> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if r.handleCommand(input, out) {
				break
			}
			continue
		}

		r.evalLine(input, out)
	}
}

// handleCommand processes a `:`-prefixed REPL command. It returns true if
// the session should end.
func (r *REPL) handleCommand(cmd string, out io.Writer) bool {
	switch {
	case cmd == ":quit" || cmd == ":q" || cmd == ":exit":
		fmt.Fprintln(out, green("Goodbye!"))
		return true
	case cmd == ":help" || cmd == ":h":
		r.printHelp(out)
	case cmd == ":history":
		for i, h := range r.history {
			fmt.Fprintf(out, "%4d  %s\n", i+1, h)
		}
	case cmd == ":reset":
		r.lines = nil
		r.lastOutput = ""
		fmt.Fprintln(out, yellow("session reset"))
	default:
		fmt.Fprintf(out, "%s: unknown command %q (try :help)\n", red("Error"), cmd)
	}
	return false
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  :help        show this message")
	fmt.Fprintln(out, "  :history     show every line entered this session")
	fmt.Fprintln(out, "  :reset       clear the accumulated program and start fresh")
	fmt.Fprintln(out, "  :quit        exit the REPL")
}

// evalLine tentatively appends input to the session's source buffer, then
// re-analyzes and re-runs the whole buffer. On success the new output
// (beyond what was already printed) is shown and the line is kept; on
// failure the error is shown and the buffer is left unchanged.
func (r *REPL) evalLine(input string, out io.Writer) {
	candidate := append(append([]string{}, r.lines...), input)
	source := strings.Join(candidate, "\n")

	ar := sigh.Analyze(source)
	if !ar.OK() {
		fmt.Fprintf(out, "%s:\n", red("error"))
		for _, e := range ar.Errors {
			fmt.Fprintf(out, "  %s\n", e)
		}
		return
	}

	var buf strings.Builder
	var tracer interp.Tracer
	if r.trace {
		tracer = func(l string) { fmt.Fprintf(out, "%s\n", dim("[trace] "+l)) }
	}
	result := sigh.RunToWithTracer(source, &buf, tracer)
	full := buf.String()

	if result != nil {
		// Print whatever new output happened before the failure, then the
		// error; don't keep the line, since the program no longer runs
		// cleanly end to end.
		fmt.Fprint(out, r.newSuffix(full))
		fmt.Fprintf(out, "%s: %v\n", red("runtime error"), result)
		return
	}

	fmt.Fprint(out, r.newSuffix(full))
	r.lines = candidate
	r.lastOutput = full
}

// newSuffix returns the part of full beyond r.lastOutput, or the whole of
// full if it isn't an extension of the previous output (which only
// happens if an async function interleaved its prints differently between
// runs — see the package doc's REPL limitation note).
func (r *REPL) newSuffix(full string) string {
	if strings.HasPrefix(full, r.lastOutput) {
		return full[len(r.lastOutput):]
	}
	return full
}
