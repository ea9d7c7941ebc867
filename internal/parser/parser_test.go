package parser

import (
	"testing"

	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/lexer"
)

func parseOK(t *testing.T, src string) *ast.RootNode {
	t.Helper()
	l := lexer.New(src)
	root, errs := ParseProgram(l)
	if len(l.Errors()) != 0 {
		t.Fatalf("unexpected lexer errors: %v", l.Errors())
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected parser errors: %v", errs)
	}
	return root
}

func TestParseVarDecl(t *testing.T) {
	root := parseOK(t, `var x: Int = 1;`)
	if len(root.Statements) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(root.Statements))
	}
	vs, ok := root.Statements[0].(*ast.VarDeclStmt)
	if !ok {
		t.Fatalf("expected *ast.VarDeclStmt, got %T", root.Statements[0])
	}
	if vs.Decl.Name != "x" {
		t.Fatalf("expected name x, got %q", vs.Decl.Name)
	}
}

func TestParseFunDecl(t *testing.T) {
	root := parseOK(t, `fun add(a: Int, b: Int): Int { return a + b; }`)
	if len(root.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(root.Declarations))
	}
	fn, ok := root.Declarations[0].(*ast.FunDecl)
	if !ok {
		t.Fatalf("expected *ast.FunDecl, got %T", root.Declarations[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
}

func TestParseClassWithParentAndMethod(t *testing.T) {
	root := parseOK(t, `
class Base {
	a: Int;
	fun Base() {}
}
class Derived sonOf Base {
	fun Derived() {}
	fun greet(): Int {
		return a;
	}
}
`)
	if len(root.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(root.Declarations))
	}
	derived, ok := root.Declarations[1].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected *ast.ClassDecl, got %T", root.Declarations[1])
	}
	if derived.ParentName == nil || *derived.ParentName != "Base" {
		t.Fatalf("expected parent Base, got %v", derived.ParentName)
	}
	var hasGreet bool
	for _, m := range derived.Members {
		if md, ok := m.(*ast.MethodDecl); ok && md.Name == "greet" {
			hasGreet = true
		}
	}
	if !hasGreet {
		t.Fatal("expected a greet method among Derived's members")
	}
}

func TestParseStructDecl(t *testing.T) {
	root := parseOK(t, `struct Point { x: Int; y: Int; }`)
	sd, ok := root.Declarations[0].(*ast.StructDecl)
	if !ok {
		t.Fatalf("expected *ast.StructDecl, got %T", root.Declarations[0])
	}
	if len(sd.Fields) != 2 || sd.Fields[0].Name != "x" || sd.Fields[1].Name != "y" {
		t.Fatalf("unexpected fields: %+v", sd.Fields)
	}
}

func TestParseBornStatement(t *testing.T) {
	root := parseOK(t, `
fun compute(): Unborn<Int> { return 1; }
compute();
var x: Int;
born(compute, x);
`)
	if len(root.Statements) != 3 {
		t.Fatalf("expected 3 top-level statements, got %d", len(root.Statements))
	}
}

func TestParseErrorOnMissingSemicolon(t *testing.T) {
	l := lexer.New(`var x: Int = 1`)
	_, errs := ParseProgram(l)
	if len(errs) == 0 {
		t.Fatal("expected a parser error for a missing semicolon")
	}
}

func TestParseErrorOnUnexpectedToken(t *testing.T) {
	l := lexer.New(`var = 1;`)
	_, errs := ParseProgram(l)
	if len(errs) == 0 {
		t.Fatal("expected a parser error when the variable name is missing")
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`1 + 2 * 3;`, "(1 + (2 * 3))"},
		{`(1 + 2) * 3;`, "((1 + 2) * 3)"},
		{`1 < 2 == true;`, "((1 < 2) == true)"},
		{`!true && false;`, "((!true) && false)"},
	}
	for _, tt := range tests {
		l := lexer.New(tt.src)
		root, errs := ParseProgram(l)
		if len(errs) != 0 {
			t.Fatalf("%s: unexpected parser errors: %v", tt.src, errs)
		}
		if len(root.Statements) != 1 {
			t.Fatalf("%s: expected 1 statement, got %d", tt.src, len(root.Statements))
		}
		got := root.Statements[0].String()
		if got != tt.want+";" {
			t.Errorf("%s: expected %q, got %q", tt.src, tt.want+";", got)
		}
	}
}
