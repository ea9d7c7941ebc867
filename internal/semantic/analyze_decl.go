package semantic

import (
	"reflect"

	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/reactor"
	"github.com/cdelzotti/sigh/internal/scope"
	"github.com/cdelzotti/sigh/internal/types"
)

// analyzeVarDecl resolves a variable's annotation and initializer, folding
// Auto to the initializer's type.
func (a *Analyzer) analyzeVarDecl(sc *scope.Scope, n *ast.VarDecl) {
	if n.Annotation == nil {
		if n.Initializer == nil {
			a.reactor.ErrorFor(n, "variable %q declared Auto must have an initializer", []any{n.Name}, AttrType)
			return
		}
		a.analyzeExpr(sc, n.Initializer, inferenceContext{})
		a.reactor.Rule(
			[]reactor.AttrRef{{Node: n, Attr: AttrType}},
			[]reactor.AttrRef{{Node: n.Initializer, Attr: AttrType}},
			func() {
				t, ok := a.reactor.Get(n.Initializer, AttrType)
				if !ok {
					a.reactor.ErrorFor(n, "cannot infer the type of %q", []any{n.Name}, AttrType)
					return
				}
				a.reactor.Set(n, AttrType, t.(types.Type))
			},
		)
		return
	}

	a.resolveTypeExpr(sc, n.Annotation)
	a.reactor.Rule(
		[]reactor.AttrRef{{Node: n, Attr: AttrType}},
		[]reactor.AttrRef{{Node: n.Annotation, Attr: AttrType}},
		func() {
			t, ok := a.reactor.Get(n.Annotation, AttrType)
			if !ok {
				a.reactor.ErrorFor(n, "%q's declared type could not be resolved", []any{n.Name}, AttrType)
				return
			}
			a.reactor.Set(n, AttrType, t.(types.Type))
		},
	)

	if n.Initializer == nil {
		return
	}
	a.analyzeExpr(sc, n.Initializer, inferenceContext{expected: &reactor.AttrRef{Node: n.Annotation, Attr: AttrType}})
	a.reactor.Rule(nil,
		[]reactor.AttrRef{{Node: n.Annotation, Attr: AttrType}, {Node: n.Initializer, Attr: AttrType}},
		func() {
			want, ok1 := a.reactor.Get(n.Annotation, AttrType)
			got, ok2 := a.reactor.Get(n.Initializer, AttrType)
			if !ok1 || !ok2 {
				return
			}
			if !types.AssignableTo(got.(types.Type), want.(types.Type)) {
				a.reactor.Error(n, "cannot initialize %q of type %s with %s", n.Name, want.(types.Type).String(), got.(types.Type).String())
			}
		},
	)
}

// analyzeFunDecl resolves a free function's signature and body. async is true for Unborn<T>-returning
// functions, which additionally get a threadIndex attribute.
func (a *Analyzer) analyzeFunDecl(sc *scope.Scope, n *ast.FunDecl) {
	bodyScope := a.scopeOf(n)

	paramIns := make([]reactor.AttrRef, 0, len(n.Params)+1)
	for _, p := range n.Params {
		a.resolveTypeExpr(bodyScope, p.Annotation)
		a.reactor.Rule(
			[]reactor.AttrRef{{Node: p, Attr: AttrType}},
			[]reactor.AttrRef{{Node: p.Annotation, Attr: AttrType}},
			func(p *ast.ParameterDecl) func() {
				return func() {
					t, ok := a.reactor.Get(p.Annotation, AttrType)
					if !ok {
						a.reactor.ErrorFor(p, "parameter %q's type could not be resolved", []any{p.Name}, AttrType)
						return
					}
					a.reactor.Set(p, AttrType, t.(types.Type))
				}
			}(p),
		)
		paramIns = append(paramIns, reactor.AttrRef{Node: p, Attr: AttrType})
	}

	if n.ReturnType != nil {
		a.resolveTypeExpr(bodyScope, n.ReturnType)
		paramIns = append(paramIns, reactor.AttrRef{Node: n.ReturnType, Attr: AttrType})
	}

	a.reactor.Rule

	a.functionStack = append(a.functionStack, n)
	a.analyzeBlock(bodyScope, n.Body)
	a.functionStack = a.functionStack[:len(a.functionStack)-1]

	a.reactor.Rule(nil,
		[]reactor.AttrRef{{Node: n, Attr: AttrType}, {Node: n.Body, Attr: AttrReturns}},
		func() {
			ft, ok := a.reactor.Get(n, AttrType)
			if !ok {
				return
			}
			ret := effectiveReturnType(ft.(*types.FunType).Return)
			bodyReturns, _ := reactor.GetAs[bool](a.reactor, n.Body, AttrReturns)
			if !ret.Equal(types.Void) && !bodyReturns {
				a.reactor.Error(n, "function %q declared to return %s does not return on every path", n.Name, ret.String())
			}
		},
	)
}

// effectiveReturnType unwraps Unborn<T> to T.
func effectiveReturnType(ret types.Type) types.Type {
	if u, ok := ret.(*types.UnbornType); ok {
		return u.Inner
	}
	return ret
}
