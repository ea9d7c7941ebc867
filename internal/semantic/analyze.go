package semantic

import (
	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/scope"
)

// analyzeRoot is the second of the analyzer's two walks: with every name
// already declared (declareRoot), it decorates every node with its type,
// decl, returns, threadIndex, declared and ancestors attributes by
// installing reactor rules, and links each overriding method to its parent
// through MethodDecl.ParentMethod.
func (a *Analyzer) analyzeRoot(root *ast.RootNode) {
	for _, d := range root.Declarations {
		a.analyzeDecl(a.root, d)
	}
	for _, s := range root.Statements {
		a.analyzeStmt(a.root, s)
	}
	a.reactor.Set(root, AttrReturns, false)
}

func (a *Analyzer) analyzeDecl(sc *scope.Scope, d ast.Decl) {
	switch n := d.(type) {
	case *ast.VarDecl:
		a.analyzeVarDecl(sc, n)
	case *ast.FunDecl:
		a.analyzeFunDecl(sc, n)
	case *ast.StructDecl:
		a.analyzeStructDecl(n)
	case *ast.ClassDecl:
		a.analyzeClassDecl(n)
	}
}
