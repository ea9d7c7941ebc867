package semantic

import (
	"strings"
	"testing"

	"github.com/cdelzotti/sigh/internal/lexer"
	"github.com/cdelzotti/sigh/internal/parser"
)

// analyzeSource lexes and parses src, then runs it through a fresh
// Analyzer, failing the test on lex/parse errors (semantic errors are left
// for the caller to inspect).
func analyzeSource(t *testing.T, src string) *Result {
	t.Helper()
	l := lexer.New(src)
	root, perrs := parser.ParseProgram(l)
	if len(l.Errors()) != 0 {
		t.Fatalf("lexer errors: %v", l.Errors())
	}
	if len(perrs) != 0 {
		t.Fatalf("parser errors: %v", perrs)
	}
	return New().Analyze(root)
}

func TestAnalyzeCyclicInheritanceErrors(t *testing.T) {
	res := analyzeSource(t, `
class A sonOf B {
	fun A() {}
}
class B sonOf A {
	fun B() {}
}
`)
	if len(res.Errors) == 0 {
		t.Fatal("expected an error for cyclic inheritance")
	}
	found := false
	for _, e := range res.Errors {
		if strings.Contains(strings.ToLower(e), "cyclic") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a cyclic-inheritance error, got: %v", res.Errors)
	}
}

func TestAnalyzeConstructorWithReturnTypeErrors(t *testing.T) {
	res := analyzeSource(t, `
class Box {
	fun Box(): Int {
		return 1;
	}
}
`)
	if len(res.Errors) == 0 {
		t.Fatal("expected an error: a constructor must not declare a return type")
	}
}

func TestAnalyzeParsedEmptyArrayLiteralInfersFromAnnotation(t *testing.T) {
	res := analyzeSource(t, `var xs: Int[] = [];`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}

func TestAnalyzeUndeclaredParentErrors(t *testing.T) {
	res := analyzeSource(t, `
class Derived sonOf Ghost {
	fun Derived() {}
}
`)
	if len(res.Errors) == 0 {
		t.Fatal("expected an error: parent class is undeclared")
	}
}
