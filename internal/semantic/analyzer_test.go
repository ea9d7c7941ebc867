package semantic

import (
	"testing"

	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/token"
	"github.com/cdelzotti/sigh/internal/types"
)

func pos(line int) token.Position { return token.Position{Line: line, Column: 1} }

func namedType(name string) *ast.NamedTypeExpr { return &ast.NamedTypeExpr{Name: name} }

func TestAnalyzeVarDeclAutoInfersFromInitializer(t *testing.T) {
	decl := &ast.VarDecl{StartPos: pos(1), Name: "x", Initializer: &ast.IntLiteral{StartPos: pos(1), Value: 1}}
	root := &ast.RootNode{Declarations: []ast.Decl{decl}}

	a := New()
	res := a.Analyze(root)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}

	ty, ok := res.Reactor.Get(decl, AttrType)
	if !ok || !ty.(types.Type).Equal(types.Int) {
		t.Fatalf("expected x to be inferred as Int, got %v, %v", ty, ok)
	}
}

func TestAnalyzeVarDeclAutoWithoutInitializerErrors(t *testing.T) {
	decl := &ast.VarDecl{StartPos: pos(1), Name: "x"}
	root := &ast.RootNode{Declarations: []ast.Decl{decl}}

	a := New()
	res := a.Analyze(root)
	if len(res.Errors) == 0 {
		t.Fatal("expected an error for an Auto variable with no initializer")
	}
}

func TestAnalyzeFunctionMissingReturnOnAllPathsErrors(t *testing.T) {
	fn := &ast.FunDecl{
		StartPos:   pos(1),
		Name:       "f",
		ReturnType: namedType("Int"),
		Body:       &ast.Block{Statements: nil},
	}
	root := &ast.RootNode{Declarations: []ast.Decl{fn}}

	a := New()
	res := a.Analyze(root)
	if len(res.Errors) == 0 {
		t.Fatal("expected an error: f declares Int but never returns")
	}
}

func TestAnalyzeFunctionReturningOnEveryPathIsClean(t *testing.T) {
	ret := &ast.Return{StartPos: pos(2), Value: &ast.IntLiteral{StartPos: pos(2), Value: 1}}
	fn := &ast.FunDecl{
		StartPos:   pos(1),
		Name:       "f",
		ReturnType: namedType("Int"),
		Body:       &ast.Block{Statements: []ast.Stmt{ret}},
	}
	root := &ast.RootNode{Declarations: []ast.Decl{fn}}

	a := New()
	res := a.Analyze(root)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	ft, ok := res.Reactor.Get(fn, AttrType)
	if !ok {
		t.Fatal("expected f to have a resolved type")
	}
	if !ft.(*types.FunType).Return.Equal(types.Int) {
		t.Fatalf("expected f's return type to be Int, got %v", ft)
	}
}

func TestAnalyzeReferenceUsedBeforeDeclarationErrors(t *testing.T) {
	ref := &ast.Reference{StartPos: pos(1), Name: "x"}
	useStmt := &ast.ExprStmt{StartPos: pos(1), Expression: ref}
	decl := &ast.VarDecl{StartPos: pos(2), Name: "x", Initializer: &ast.IntLiteral{StartPos: pos(2), Value: 1}}

	fn := &ast.FunDecl{
		StartPos: pos(1),
		Name:     "f",
		Body: &ast.Block{Statements: []ast.Stmt{
			useStmt,
			&ast.VarDeclStmt{Decl: decl},
		}},
	}
	root := &ast.RootNode{Declarations: []ast.Decl{fn}}

	a := New()
	res := a.Analyze(root)
	if len(res.Errors) == 0 {
		t.Fatal("expected a used-before-declaration error")
	}
}

func TestAnalyzeEmptyArrayLiteralInfersFromAnnotation(t *testing.T) {
	decl := &ast.VarDecl{
		StartPos:    pos(1),
		Name:        "xs",
		Annotation:  &ast.ArrayTypeExpr{Elem: namedType("Int")},
		Initializer: &ast.ArrayLiteral{StartPos: pos(1)},
	}
	root := &ast.RootNode{Declarations: []ast.Decl{decl}}

	a := New()
	res := a.Analyze(root)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	ty, ok := res.Reactor.Get(decl.Initializer, AttrType)
	if !ok {
		t.Fatal("expected the empty array literal to have a resolved type")
	}
	arr, isArr := ty.(*types.ArrayType)
	if !isArr || !arr.Elem.Equal(types.Int) {
		t.Fatalf("expected Int[], got %v", ty)
	}
}

func TestAnalyzeEmptyArrayLiteralWithoutContextErrors(t *testing.T) {
	stmt := &ast.ExprStmt{StartPos: pos(1), Expression: &ast.ArrayLiteral{StartPos: pos(1)}}
	root := &ast.RootNode{Statements: []ast.Stmt{stmt}}

	a := New()
	res := a.Analyze(root)
	if len(res.Errors) == 0 {
		t.Fatal("expected an error: no context to infer the empty array literal's element type")
	}
}

func buildInheritingClasses() (*ast.ClassDecl, *ast.ClassDecl, *ast.MethodDecl, *ast.MethodDecl) {
	parentCtor := &ast.MethodDecl{FunDecl: ast.FunDecl{
		StartPos: pos(2), Name: "Greeter", Body: &ast.Block{},
	}}
	parentGreet := &ast.MethodDecl{FunDecl: ast.FunDecl{
		StartPos:   pos(3),
		Name:       "greet",
		ReturnType: namedType("String"),
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.Return{StartPos: pos(3), Value: &ast.StringLiteral{StartPos: pos(3), Value: "hi"}},
		}},
	}}
	parent := &ast.ClassDecl{
		StartPos: pos(1),
		Name:     "Greeter",
		Members:  []ast.ClassMember{parentCtor, parentGreet},
	}

	childGreet := &ast.MethodDecl{FunDecl: ast.FunDecl{
		StartPos:   pos(6),
		Name:       "greet",
		ReturnType: namedType("String"),
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.Return{StartPos: pos(6), Value: &ast.DaddyCall{StartPos: pos(6)}},
		}},
	}}
	parentName := "Greeter"
	child := &ast.ClassDecl{
		StartPos:   pos(5),
		Name:       "LoudGreeter",
		ParentName: &parentName,
		Members:    []ast.ClassMember{childGreet},
	}

	return parent, child, parentGreet, childGreet
}

func TestAnalyzeClassInheritanceAndDaddy(t *testing.T) {
	parent, child, parentGreet, childGreet := buildInheritingClasses()
	root := &ast.RootNode{Declarations: []ast.Decl{parent, child}}

	a := New()
	res := a.Analyze(root)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}

	if childGreet.ParentMethod != parentGreet {
		t.Fatalf("expected childGreet.ParentMethod to be parentGreet, got %v", childGreet.ParentMethod)
	}

	childType, ok := res.Reactor.Get(child, AttrDeclared)
	if !ok {
		t.Fatal("expected LoudGreeter to have a declared ClassType")
	}
	ct := childType.(*types.ClassType)
	if _, hasCtor := ct.Fields[constructorKey]; !hasCtor {
		t.Fatal("expected LoudGreeter to inherit Greeter's constructor")
	}
}

func TestAnalyzeDaddyOutsideMethodErrors(t *testing.T) {
	stmt := &ast.ExprStmt{StartPos: pos(1), Expression: &ast.DaddyCall{StartPos: pos(1)}}
	root := &ast.RootNode{Statements: []ast.Stmt{stmt}}

	a := New()
	res := a.Analyze(root)
	if len(res.Errors) == 0 {
		t.Fatal("expected an error: Daddy(...) outside of a method body")
	}
}

func TestAnalyzeClassLowercaseNameErrors(t *testing.T) {
	cd := &ast.ClassDecl{StartPos: pos(1), Name: "oops"}
	root := &ast.RootNode{Declarations: []ast.Decl{cd}}

	a := New()
	res := a.Analyze(root)
	if len(res.Errors) == 0 {
		t.Fatal("expected an error: class names must start uppercase")
	}
}

func TestAnalyzeClassWithoutConstructorErrors(t *testing.T) {
	cd := &ast.ClassDecl{StartPos: pos(1), Name: "Orphan"}
	root := &ast.RootNode{Declarations: []ast.Decl{cd}}

	a := New()
	res := a.Analyze(root)
	if len(res.Errors) == 0 {
		t.Fatal("expected an error: a class with no constructor and no parent")
	}
}

func TestAnalyzeBornValidatesUnbornReturnType(t *testing.T) {
	unbornFn := &ast.FunDecl{
		StartPos:   pos(1),
		Name:       "fetch",
		ReturnType: &ast.UnbornTypeExpr{Inner: namedType("Int")},
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.Return{StartPos: pos(1), Value: &ast.IntLiteral{StartPos: pos(1), Value: 1}},
		}},
	}
	resultVar := &ast.VarDecl{StartPos: pos(2), Name: "result", Annotation: namedType("Int")}
	born := &ast.BornStmt{
		StartPos: pos(3),
		Function: &ast.Reference{StartPos: pos(3), Name: "fetch"},
		Var:      &ast.Reference{StartPos: pos(3), Name: "result"},
	}

	root := &ast.RootNode{
		Declarations: []ast.Decl{unbornFn, resultVar},
		Statements:   []ast.Stmt{born},
	}

	a := New()
	res := a.Analyze(root)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}

func TestAnalyzeBornRejectsNonAsyncFunction(t *testing.T) {
	fn := &ast.FunDecl{
		StartPos:   pos(1),
		Name:       "sync",
		ReturnType: namedType("Int"),
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.Return{StartPos: pos(1), Value: &ast.IntLiteral{StartPos: pos(1), Value: 1}},
		}},
	}
	born := &ast.BornStmt{StartPos: pos(2), Function: &ast.Reference{StartPos: pos(2), Name: "sync"}}
	root := &ast.RootNode{Declarations: []ast.Decl{fn}, Statements: []ast.Stmt{born}}

	a := New()
	res := a.Analyze(root)
	if len(res.Errors) == 0 {
		t.Fatal("expected an error: born's target must return Unborn<T>")
	}
}
