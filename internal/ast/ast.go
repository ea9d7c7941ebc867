// Package ast defines the Sigh abstract syntax tree.
//
// Grounded on github.com/cwbudde/go-dws's internal/ast: a `Node` interface
// with `String()` for debugging, declarations split from statements and
// expressions across files, and back-pointers (method -> parent method,
// class -> ancestors) resolved later by the analyzer rather than at parse
// time. Sigh's AST is dispatched with a plain type switch (the analyzer's
// PRE/POST walker and the interpreter's evaluator both switch on concrete
// node type) instead of go-dws's generated reflective visitor — Sigh's node
// set is small enough that a generator buys nothing.
//
// Every node is used as a pointer so that it has a stable identity: the
// attribute reactor (internal/reactor) keys its attribute store on the Node
// interface value itself, which is only safe for comparison when the
// concrete type is a pointer.
package ast

import (
	"strings"

	"github.com/cdelzotti/sigh/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() token.Position
	String() string
}

// Decl is a declaration node: something that introduces a name into a
// Scope.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// TypeExpr is a type annotation as written in source (e.g. `Int`,
// `Int[]`, `Unborn<Int>`, `MyClass`). Like a Reference, a TypeExpr's name
// is resolved through ordinary scope lookup, so TypeExpr carries a Scope attribute the same
// way Reference does.
type TypeExpr interface {
	Node
	typeExprNode()
}

// RootNode is the top of the AST: a sequence of top-level declarations and
// statements.
type RootNode struct {
	Declarations []Decl
	Statements   []Stmt
	StartPos     token.Position
}

func (r *RootNode) Pos() token.Position { return r.StartPos }
func (r *RootNode) String() string {
	var sb strings.Builder
	for _, d := range r.Declarations {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	for _, s := range r.Statements {
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
