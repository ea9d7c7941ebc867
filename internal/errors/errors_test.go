package errors

import (
	"strings"
	"testing"

	"github.com/cdelzotti/sigh/internal/token"
)

func TestFormatIncludesSourceLineAndCaret(t *testing.T) {
	src := "var x: Int = 1;\nvar y: Bool = x;\n"
	err := NewCompilerError(token.Position{Line: 2, Column: 15}, "type mismatch", src, "")
	out := err.Format(false)

	if !strings.Contains(out, "var y: Bool = x;") {
		t.Fatalf("expected the offending source line in output, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected a caret in output, got:\n%s", out)
	}
	if !strings.Contains(out, "type mismatch") {
		t.Fatalf("expected the message in output, got:\n%s", out)
	}
}

func TestFormatWithFileName(t *testing.T) {
	err := NewCompilerError(token.Position{Line: 1, Column: 1}, "boom", "x;", "main.sigh")
	out := err.Format(false)
	if !strings.Contains(out, "Error in main.sigh:1:1") {
		t.Fatalf("expected file:line:col header, got:\n%s", out)
	}
}

func TestFormatColorDiffersFromPlain(t *testing.T) {
	err := NewCompilerError(token.Position{Line: 1, Column: 1}, "boom", "x;", "")
	plain := err.Format(false)
	colored := err.Format(true)
	if plain == colored {
		t.Fatal("expected colored output to differ from plain output")
	}
}

func TestFormatErrorsEmpty(t *testing.T) {
	if got := FormatErrors(nil, false); got != "" {
		t.Fatalf("expected empty string for no errors, got %q", got)
	}
}

func TestFormatErrorsSingle(t *testing.T) {
	errs := []*CompilerError{NewCompilerError(token.Position{Line: 1, Column: 1}, "boom", "", "")}
	got := FormatErrors(errs, false)
	if strings.Contains(got, "Compilation failed") {
		t.Fatalf("a single error should not be wrapped in a summary header, got:\n%s", got)
	}
}

func TestFormatErrorsMultiple(t *testing.T) {
	errs := []*CompilerError{
		NewCompilerError(token.Position{Line: 1, Column: 1}, "first", "", ""),
		NewCompilerError(token.Position{Line: 2, Column: 1}, "second", "", ""),
	}
	got := FormatErrors(errs, false)
	if !strings.Contains(got, "2 error(s)") {
		t.Fatalf("expected an error count summary, got:\n%s", got)
	}
	if !strings.Contains(got, "[Error 1 of 2]") || !strings.Contains(got, "[Error 2 of 2]") {
		t.Fatalf("expected both errors numbered, got:\n%s", got)
	}
}

func TestFromStringErrors(t *testing.T) {
	errs := FromStringErrors([]string{"a", "b"}, "src", "file.sigh")
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}
	if errs[0].Message != "a" || errs[1].Message != "b" {
		t.Fatalf("messages not preserved: %+v", errs)
	}
	if errs[0].Pos != (token.Position{}) {
		t.Fatalf("expected a zero position, got %+v", errs[0].Pos)
	}
}
