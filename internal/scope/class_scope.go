package scope

import "github.com/cdelzotti/sigh/internal/ast"

// Registry is the shared table of all class scopes, keyed by the
// ClassDecl they belong to.
type Registry struct {
	byDecl map[*ast.ClassDecl]*ClassScope
}

// NewRegistry creates an empty class-scope registry.
func NewRegistry() *Registry {
	return &Registry{byDecl: make(map[*ast.ClassDecl]*ClassScope)}
}

// Get returns the ClassScope registered for decl, or nil if none has been
// constructed yet.
func (r *Registry) Get(decl *ast.ClassDecl) *ClassScope {
	return r.byDecl[decl]
}

// ClassScope extends Scope with inheritance-aware lookup.
type ClassScope struct {
	*Scope
	ClassDecl *ast.ClassDecl
	registry  *Registry
}

// NewClassScope builds the ClassScope for decl, enclosed lexically by
// enclosing (the scope the class declaration sits in), and registers it.
func NewClassScope(decl *ast.ClassDecl, enclosing *Scope, registry *Registry) *ClassScope {
	cs := &ClassScope{Scope: New(decl, enclosing), ClassDecl: decl, registry: registry}
	registry.byDecl[decl] = cs
	return cs
}

// Lookup resolves name following a three-step algorithm:
//  1. search this class's own declarations;
//  2. walk the inheritance chain by parent name, stopping at the first
//     ancestor class scope that declares the name, with a visited set to
//     break cycles;
//  3. if nothing is found on any ancestor, fall through to the ordinary
//     lexical parent-scope chain (the scope enclosing the class
//     declaration itself).
func (cs *ClassScope) Lookup(name string) ast.Decl {
	if d := cs.DeclareLocal(name); d != nil {
		return d
	}

	visited := map[*ast.ClassDecl]bool{cs.ClassDecl: true}
	current := cs
	for current.ClassDecl.ParentName != nil {
		parentDecl, ok := resolveClassByName(current.Scope.Parent, *current.ClassDecl.ParentName)
		if !ok || visited[parentDecl] {
			break
		}
		visited[parentDecl] = true

		parentScope := cs.registry.Get(parentDecl)
		if parentScope == nil {
			break
		}
		if d := parentScope.DeclareLocal(name); d != nil {
			return d
		}
		current = parentScope
	}

	return cs.Scope.Parent.Lookup(name)
}

// resolveClassByName looks up a class name in the lexical scope chain
// (where class declarations live as ordinary names) and returns its
// ClassDecl.
func resolveClassByName(lexical *Scope, name string) (*ast.ClassDecl, bool) {
	decl := lexical.Lookup(name)
	classDecl, ok := decl.(*ast.ClassDecl)
	return classDecl, ok
}
