package semantic

import (
	"unicode"

	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/scope"
)

// declareRoot performs the first of the analyzer's two walks: it builds
// every Scope and ClassScope in the program and defines every name a scope
// directly introduces, so that the second walk (analyzeRoot) can resolve a
// reference to a function, struct or class regardless of whether it
// appears before or after that declaration in the source text.
func (a *Analyzer) declareRoot(root *ast.RootNode) {
	for _, d := range root.Declarations {
		a.declareDecl(a.root, d)
	}
	for _, s := range root.Statements {
		a.declareStmt(a.root, s)
	}
}

func (a *Analyzer) declareDecl(sc *scope.Scope, d ast.Decl) {
	switch n := d.(type) {
	case *ast.VarDecl:
		sc.Define(n.Name, n)
		a.reactor.Set(n, AttrScope, sc)

	case *ast.FunDecl:
		if n.Name == "Daddy" {
			a.reactor.Error(n, "function cannot be named Daddy: Daddy is reserved for parent-method calls")
		}
		sc.Define(n.Name, n)
		a.declareFunctionBody(sc, n)

	case *ast.StructDecl:
		sc.Define(n.Name, n)
		a.reactor.Set(n, AttrScope, sc)

	case *ast.ClassDecl:
		if n.Name == "" || !unicode.IsUpper(rune(n.Name[0])) {
			a.reactor.Error(n, "class name %q must start with an uppercase letter", n.Name)
		}
		sc.Define(n.Name, n)
		cs := scope.NewClassScope(n, sc, a.registry)
		a.reactor.Set(n, AttrScope, cs)

		for _, m := range n.Members {
			switch member := m.(type) {
			case *ast.FieldDecl:
				cs.Define(member.Name, member)
				a.reactor.Set(member, AttrScope, cs.Scope)
			case *ast.MethodDecl:
				member.Class = n
				cs.Define(member.Name, member)
				bodyScope := a.declareFunctionBody(cs.Scope, &member.FunDecl)
				a.reactor.Set(member, AttrScope, bodyScope)
			}
		}
	}
}

// declareFunctionBody builds the parameter+body scope shared by FunDecl and
// MethodDecl (MethodDecl embeds FunDecl by value, so its body scope is
// indexed by the address of the embedded FunDecl).
func (a *Analyzer) declareFunctionBody(enclosing *scope.Scope, fn *ast.FunDecl) *scope.Scope {
	bodyScope := scope.New(fn.Body, enclosing)
	for _, p := range fn.Params {
		bodyScope.Define(p.Name, p)
		a.reactor.Set(p, AttrScope, bodyScope)
	}
	a.reactor.Set(fn, AttrScope, bodyScope)
	a.reactor.Set(fn.Body, AttrScope, bodyScope)

	a.declareBlock(bodyScope, fn.Body)
	return bodyScope
}

func (a *Analyzer) declareBlock(sc *scope.Scope, b *ast.Block) {
	for _, s := range b.Statements {
		a.declareStmt(sc, s)
	}
}

func (a *Analyzer) declareStmt(sc *scope.Scope, s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDeclStmt:
		a.declareDecl(sc, n.Decl)
	case *ast.If:
		a.declareNestedBlock(sc, n.Then)
		if n.Else != nil {
			a.declareNestedBlock(sc, n.Else)
		}
	case *ast.While:
		a.declareNestedBlock(sc, n.Body)
	}
}

func (a *Analyzer) declareNestedBlock(enclosing *scope.Scope, b *ast.Block) {
	inner := scope.New(b, enclosing)
	a.reactor.Set(b, AttrScope, inner)
	a.declareBlock(inner, b)
}
