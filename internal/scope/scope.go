// Package scope implements the Sigh scope graph: an ordinary lexical tree
// plus a specialized ClassScope that overrides lookup to follow single
// inheritance.
//
// This is a new package: go-dws's
// `internal/interp/runtime.Environment` is a flat *runtime* binding chain
// built while executing, not a static declaration graph built while
// analyzing. Sigh needs the latter as a distinct structure (the
// analyzer resolves References against it before the interpreter ever
// runs), so Environment's parent-chain-lookup shape is kept but the job it
// does here is different — see DESIGN.md.
package scope

import "github.com/cdelzotti/sigh/internal/ast"

// Scope owns a back-pointer to the AST node that introduced it, a parent
// pointer (nil for the root), and a map from name to the declaration node
// that introduced it.
type Scope struct {
	Node    ast.Node
	Parent  *Scope
	symbols map[string]ast.Decl
}

// New creates an ordinary scope for node, enclosed by parent (nil for a
// root scope).
func New(node ast.Node, parent *Scope) *Scope {
	return &Scope{Node: node, Parent: parent, symbols: make(map[string]ast.Decl)}
}

// Define introduces name into this scope. It does not check for
// redeclaration; the analyzer decides whether a duplicate is an error.
func (s *Scope) Define(name string, decl ast.Decl) {
	s.symbols[name] = decl
}

// DeclareLocal returns the declaration introduced for name directly in
// this scope (not following Parent), or nil if none.
func (s *Scope) DeclareLocal(name string) ast.Decl {
	return s.symbols[name]
}

// Lookup resolves name in this scope, recursing to Parent if not found
// locally.
func (s *Scope) Lookup(name string) ast.Decl {
	if s == nil {
		return nil
	}
	if d, ok := s.symbols[name]; ok {
		return d
	}
	return s.Parent.Lookup(name)
}

// IsRoot reports whether this scope has no parent.
func (s *Scope) IsRoot() bool { return s.Parent == nil }

// Root walks Parent pointers up to the outermost scope.
func (s *Scope) Root() *Scope {
	cur := s
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}
