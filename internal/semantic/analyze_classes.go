package semantic

import (
	"strings"

	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/reactor"
	"github.com/cdelzotti/sigh/internal/types"
)

const constructorKey = "<constructor>"

// ancestorChain returns cd's ancestors, nearest first, by walking
// ParentName through the root scope (every class is already Defined by
// declareRoot, so this never needs to wait on the reactor). Since a class
// has at most one parent, any name revisited while walking is necessarily
// a cycle back to something already on the path — reported with the path
// that closes it.
func (a *Analyzer) ancestorChain(cd *ast.ClassDecl) []*ast.ClassDecl {
	var chain []*ast.ClassDecl
	visited := map[*ast.ClassDecl]bool{cd: true}
	path := []string{cd.Name}
	current := cd
	for current.ParentName != nil {
		name := *current.ParentName
		decl := a.root.Lookup(name)
		if decl == nil {
			a.reactor.Error(current, "class %q's parent %q is undeclared", current.Name, name)
			break
		}
		parent, ok := decl.(*ast.ClassDecl)
		if !ok {
			a.reactor.Error(current, "class %q's parent %q is not a class", current.Name, name)
			break
		}
		path = append(path, parent.Name)
		if visited[parent] {
			a.reactor.Error(cd, "cyclic inheritance: %s", strings.Join(path, " -> "))
			break
		}
		visited[parent] = true
		chain = append(chain, parent)
		current = parent
	}
	return chain
}

// analyzeClassDecl builds a class's ancestor chain, resolves
// MethodDecl.ParentMethod back-pointers, and constructs the
// class's merged field/method shape.
func (a *Analyzer) analyzeClassDecl(n *ast.ClassDecl) {
	ancestors := a.ancestorChain(n)
	a.reactor.Set(n, AttrAncestors, ancestors)

	var parent *ast.ClassDecl
	if len(ancestors) > 0 {
		parent = ancestors[0]
	}

	for _, m := range n.Members {
		method, ok := m.(*ast.MethodDecl)
		if !ok || method.Name == n.Name {
			continue // fields don't override; the constructor has no parent method
		}
		method.ParentMethod = a.findAncestorMethod(ancestors, method.Name)
	}

	a.classStack = append(a.classStack, n)
	ins := make([]reactor.AttrRef, 0, len(n.Members)+1)
	if parent != nil {
		ins = append(ins, reactor.AttrRef{Node: parent, Attr: AttrDeclared})
	}
	for _, m := range n.Members {
		switch member := m.(type) {
		case *ast.FieldDecl:
			a.resolveTypeExpr(a.scopeOf(member), member.Annotation)
			ins = append(ins, reactor.AttrRef{Node: member.Annotation, Attr: AttrType})
		case *ast.MethodDecl:
			if member.Name == n.Name && member.ReturnType != nil {
				a.reactor.Error(member, "constructor %q must not declare a return type", n.Name)
			}
			a.methodStack = append(a.methodStack, member)
			a.analyzeFunDecl(a.scopeOf(member), &member.FunDecl)
			a.methodStack = a.methodStack[:len(a.methodStack)-1]
			ins = append(ins, reactor.AttrRef{Node: &member.FunDecl, Attr: AttrType})
		}
	}
	a.classStack = a.classStack[:len(a.classStack)-1]

	a.reactor.Rule(
		[]reactor.AttrRef{{Node: n, Attr: AttrDeclared}},
		ins,
		func() { a.buildClassType(n, parent) },
	)
}

func (a *Analyzer) findAncestorMethod(ancestors []*ast.ClassDecl, name string) *ast.MethodDecl {
	for _, anc := range ancestors {
		for _, m := range anc.Members {
			if method, ok := m.(*ast.MethodDecl); ok && method.Name == name && method.Name != anc.Name {
				return method
			}
		}
	}
	return nil
}

func (a *Analyzer) buildClassType(n *ast.ClassDecl, parent *ast.ClassDecl) {
	fields := make(map[string]types.Type)
	var parentType *types.ClassType
	if parent != nil {
		declared, ok := a.reactor.Get(parent, AttrDeclared)
		if !ok {
			a.reactor.ErrorFor(n, "class %q's parent %q could not be resolved", []any{n.Name, parent.Name}, AttrDeclared)
			return
		}
		parentType = declared.(*types.ClassType)
		for k, v := range parentType.Fields {
			fields[k] = v
		}
	}

	for _, m := range n.Members {
		switch member := m.(type) {
		case *ast.FieldDecl:
			t, ok := a.reactor.Get(member.Annotation, AttrType)
			if !ok {
				a.reactor.ErrorFor(n, "class %q has an unresolved field %q", []any{n.Name, member.Name}, AttrDeclared)
				return
			}
			if _, inherited := fields[member.Name]; inherited {
				a.reactor.Error(n, "cannot override variable %q — can only override methods", member.Name)
				return
			}
			fields[member.Name] = t.(types.Type)

		case *ast.MethodDecl:
			t, ok := a.reactor.Get(&member.FunDecl, AttrType)
			if !ok {
				a.reactor.ErrorFor(n, "class %q has an unresolved method %q", []any{n.Name, member.Name}, AttrDeclared)
				return
			}
			newFT := t.(*types.FunType)
			key := member.Name
			if member.Name == n.Name {
				key = constructorKey
			}
			if existing, inherited := fields[key]; inherited && key != constructorKey {
				existingFT, isFun := existing.(*types.FunType)
				if !isFun {
					a.reactor.Error(n, "cannot override variable %q — can only override methods", member.Name)
					return
				}
				if !newFT.Equal(existingFT) {
					a.reactor.Error(n, "method %q overrides parent method %s with incompatible signature %s", member.Name, existingFT.String(), newFT.String())
					return
				}
			}
			fields[key] = newFT
		}
	}

	if _, hasCtor := fields[constructorKey]; !hasCtor {
		a.reactor.Error(n, "Missing constructor for class %q", n.Name)
	}

	a.reactor.Set(n, AttrDeclared, &types.ClassType{Name: n.Name, Parent: parentType, Fields: fields})
}
