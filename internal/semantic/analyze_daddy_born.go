package semantic

import (
	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/reactor"
	"github.com/cdelzotti/sigh/internal/scope"
	"github.com/cdelzotti/sigh/internal/types"
)

// analyzeDaddyCall resolves `Daddy(args...)`, a parent-method super-call
//. It is only legal inside a method whose
// ParentMethod is non-nil; its type is that parent method's return type.
func (a *Analyzer) analyzeDaddyCall(sc *scope.Scope, n *ast.DaddyCall) {
	for _, arg := range n.Arguments {
		a.analyzeExpr(sc, arg, inferenceContext{})
	}

	method := a.currentMethod()
	if method == nil {
		a.reactor.ErrorFor(n, "Daddy(...) may only be called inside a method body", nil, AttrType)
		return
	}
	if method.ParentMethod == nil {
		a.reactor.ErrorFor(n, "%q does not override a parent method; Daddy(...) has nothing to call", []any{method.Name}, AttrType)
		return
	}
	a.reactor.Set(n, AttrDecl, method.ParentMethod)

	parentFn := &method.ParentMethod.FunDecl
	ins := make([]reactor.AttrRef, 0, len(n.Arguments)+1)
	ins = append(ins, reactor.AttrRef{Node: parentFn, Attr: AttrType})
	for _, arg := range n.Arguments {
		ins = append(ins, reactor.AttrRef{Node: arg, Attr: AttrType})
	}
	a.reactor.Rule(
		[]reactor.AttrRef{{Node: n, Attr: AttrType}},
		ins,
		func() {
			ft, ok := a.reactor.Get(parentFn, AttrType)
			if !ok {
				a.reactor.ErrorFor(n, "Daddy(...) target is unresolved", nil, AttrType)
				return
			}
			fn := ft.(*types.FunType)
			if len(fn.Params) != len(n.Arguments) {
				a.reactor.ErrorFor(n, "Daddy(...) expects %d argument(s), got %d", []any{len(fn.Params), len(n.Arguments)}, AttrType)
				return
			}
			for i, arg := range n.Arguments {
				got, ok := a.reactor.Get(arg, AttrType)
				if !ok {
					a.reactor.ErrorFor(n, "Daddy(...) argument %d is unresolved", []any{i}, AttrType)
					return
				}
				if !types.AssignableTo(got.(types.Type), fn.Params[i]) {
					a.reactor.ErrorFor(n, "Daddy(...) argument %d: cannot assign %s to %s", []any{i, got.(types.Type).String(), fn.Params[i].String()}, AttrType)
					return
				}
			}
			a.reactor.Set(n, AttrType, fn.Return)
		},
	)
}

// analyzeBornStmt resolves `born(f)` / `born(f, v)`: Function must reference a declared function whose
// return type is Unborn<T>, and Var, if present, must reference a declared
// variable of type T.
func (a *Analyzer) analyzeBornStmt(sc *scope.Scope, n *ast.BornStmt) {
	a.analyzeReference(sc, n.Function)
	if n.Var != nil {
		a.analyzeReference(sc, n.Var)
	}

	ins := []reactor.AttrRef{{Node: n.Function, Attr: AttrType}}
	if n.Var != nil {
		ins = append(ins, reactor.AttrRef{Node: n.Var, Attr: AttrType})
	}
	a.reactor.Rule(nil, ins, func() {
		ft, ok := a.reactor.Get(n.Function, AttrType)
		if !ok {
			return
		}
		fn, isFun := ft.(types.Type).(*types.FunType)
		if !isFun {
			a.reactor.Error(n, "born's first argument must be an async function, got %s", ft.(types.Type).String())
			return
		}
		unborn, isUnborn := fn.Return.(*types.UnbornType)
		if !isUnborn {
			a.reactor.Error(n, "born's first argument must return Unborn<T>, got %s", fn.Return.String())
			return
		}
		if n.Var == nil {
			return
		}
		if decl, ok := a.reactor.Get(n.Var, AttrDecl); ok {
			switch decl.(type) {
			case *ast.VarDecl, *ast.ParameterDecl:
			default:
				a.reactor.Error(n, "born's second argument must be a variable, not %T", decl)
				return
			}
		}
		vt, ok := a.reactor.Get(n.Var, AttrType)
		if !ok {
			return
		}
		if !types.AssignableTo(unborn.Inner, vt.(types.Type)) {
			a.reactor.Error(n, "born's second argument must accept %s, got %s", unborn.Inner.String(), vt.(types.Type).String())
		}
	})
}
