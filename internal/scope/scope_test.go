package scope

import (
	"testing"
	"time"

	"github.com/cdelzotti/sigh/internal/ast"
)

func TestOrdinaryLookupFallsThroughToParent(t *testing.T) {
	root := New(&ast.RootNode{}, nil)
	decl := &ast.VarDecl{Name: "x"}
	root.Define("x", decl)

	child := New(&ast.Block{}, root)

	if got := child.Lookup("x"); got != decl {
		t.Fatalf("child.Lookup(%q) = %v; want %v", "x", got, decl)
	}
}

func TestLocalShadowsParent(t *testing.T) {
	root := New(&ast.RootNode{}, nil)
	outer := &ast.VarDecl{Name: "x"}
	root.Define("x", outer)

	child := New(&ast.Block{}, root)
	inner := &ast.VarDecl{Name: "x"}
	child.Define("x", inner)

	if got := child.Lookup("x"); got != inner {
		t.Fatal("local declaration should shadow the parent's")
	}
}

func TestLookupMissingReturnsNil(t *testing.T) {
	root := New(&ast.RootNode{}, nil)
	if got := root.Lookup("nope"); got != nil {
		t.Fatalf("expected nil for an unresolved name, got %v", got)
	}
}

func buildClassChain(t *testing.T) (reg *Registry, lexical *Scope, father, child *ClassScope) {
	t.Helper()
	reg = NewRegistry()
	lexical = New(&ast.RootNode{}, nil)

	fatherDecl := &ast.ClassDecl{Name: "FatherClass"}
	lexical.Define("FatherClass", fatherDecl)
	father = NewClassScope(fatherDecl, lexical, reg)
	father.Define("printHello", &ast.MethodDecl{})

	parentName := "FatherClass"
	childDecl := &ast.ClassDecl{Name: "MyClass", ParentName: &parentName}
	lexical.Define("MyClass", childDecl)
	child = NewClassScope(childDecl, lexical, reg)

	return reg, lexical, father, child
}

func TestClassScopeInheritsFromParent(t *testing.T) {
	_, _, father, child := buildClassChain(t)

	got := child.Lookup("printHello")
	want := father.DeclareLocal("printHello")
	if got != want {
		t.Fatalf("child should inherit printHello from FatherClass, got %v want %v", got, want)
	}
}

func TestClassScopeOwnDeclarationShadowsInherited(t *testing.T) {
	_, _, _, child := buildClassChain(t)
	override := &ast.MethodDecl{}
	child.Define("printHello", override)

	if got := child.Lookup("printHello"); got != override {
		t.Fatal("a class's own declaration should shadow an inherited one")
	}
}

func TestClassScopeFallsThroughToLexicalScope(t *testing.T) {
	_, lexical, _, child := buildClassChain(t)
	global := &ast.VarDecl{Name: "globalCounter"}
	lexical.Define("globalCounter", global)

	if got := child.Lookup("globalCounter"); got != global {
		t.Fatal("class scope should fall through to its lexical enclosing scope")
	}
}

func TestClassScopeCycleGuardDoesNotInfiniteLoop(t *testing.T) {
	reg := NewRegistry()
	lexical := New(&ast.RootNode{}, nil)

	aName := "A"
	bName := "B"
	aDecl := &ast.ClassDecl{Name: "A", ParentName: &bName}
	bDecl := &ast.ClassDecl{Name: "B", ParentName: &aName}
	lexical.Define("A", aDecl)
	lexical.Define("B", bDecl)

	aScope := NewClassScope(aDecl, lexical, reg)
	NewClassScope(bDecl, lexical, reg)

	done := make(chan ast.Decl, 1)
	go func() { done <- aScope.Lookup("nonexistent") }()
	select {
	case got := <-done:
		if got != nil {
			t.Fatalf("expected nil for a name that doesn't exist anywhere, got %v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("cyclic inheritance should not cause an infinite loop")
	}
}
