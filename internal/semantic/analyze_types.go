package semantic

import (
	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/reactor"
	"github.com/cdelzotti/sigh/internal/scope"
	"github.com/cdelzotti/sigh/internal/types"
)

// resolveTypeExpr installs the rules that settle t's `type` attribute
//.
func (a *Analyzer) resolveTypeExpr(sc *scope.Scope, t ast.TypeExpr) {
	a.reactor.Set(t, AttrScope, sc)

	switch n := t.(type) {
	case *ast.NamedTypeExpr:
		decl := sc.Lookup(n.Name)
		if decl == nil {
			a.reactor.ErrorFor(n, "unknown type %q", []any{n.Name}, AttrType)
			return
		}
		usableAsType := false
		switch d := decl.(type) {
		case *ast.SyntheticDecl:
			usableAsType = builtinTypeNames[d.Name]
		case *ast.StructDecl, *ast.ClassDecl:
			usableAsType = true
		}
		if !usableAsType {
			a.reactor.ErrorFor(n, "%q is not a type", []any{n.Name}, AttrType)
			return
		}

		a.reactor.Set(n, AttrDecl, decl)
		a.reactor.Rule(
			[]reactor.AttrRef{{Node: n, Attr: AttrType}},
			[]reactor.AttrRef{{Node: decl, Attr: AttrDeclared}},
			func() {
				declared, ok := a.reactor.Get(decl, AttrDeclared)
				if !ok {
					a.reactor.ErrorFor(n, "%q does not name a usable type", []any{n.Name}, AttrType)
					return
				}
				a.reactor.Set(n, AttrType, declared.(types.Type))
			},
		)

	case *ast.ArrayTypeExpr:
		a.resolveTypeExpr(sc, n.Elem)
		a.reactor.Rule(
			[]reactor.AttrRef{{Node: n, Attr: AttrType}},
			[]reactor.AttrRef{{Node: n.Elem, Attr: AttrType}},
			func() {
				elem, ok := a.reactor.Get(n.Elem, AttrType)
				if !ok {
					a.reactor.ErrorFor(n, "array element type could not be resolved", nil, AttrType)
					return
				}
				a.reactor.Set(n, AttrType, &types.ArrayType{Elem: elem.(types.Type)})
			},
		)

	case *ast.UnbornTypeExpr:
		a.resolveTypeExpr(sc, n.Inner)
		a.reactor.Rule(
			[]reactor.AttrRef{{Node: n, Attr: AttrType}},
			[]reactor.AttrRef{{Node: n.Inner, Attr: AttrType}},
			func() {
				inner, ok := a.reactor.Get(n.Inner, AttrType)
				if !ok {
					a.reactor.ErrorFor(n, "Unborn inner type could not be resolved", nil, AttrType)
					return
				}
				a.reactor.Set(n, AttrType, &types.UnbornType{Inner: inner.(types.Type)})
			},
		)
	}
}
