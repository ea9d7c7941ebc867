package semantic

import (
	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/reactor"
	"github.com/cdelzotti/sigh/internal/scope"
	"github.com/cdelzotti/sigh/internal/types"
)

// analyzeBlock decorates every statement in b and sets b's own `returns`
// attribute: true iff every path through b ends in an unconditional return
//.
func (a *Analyzer) analyzeBlock(sc *scope.Scope, b *ast.Block) {
	returns := false
	for _, s := range b.Statements {
		a.analyzeStmt(sc, s)
		if r, ok := reactor.GetAs[bool](a.reactor, s, AttrReturns); ok && r {
			returns = true
		}
	}
	a.reactor.Set(b, AttrReturns, returns)
}

func (a *Analyzer) analyzeStmt(sc *scope.Scope, s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDeclStmt:
		a.analyzeVarDecl(sc, n.Decl)
		a.reactor.Set(n, AttrReturns, false)

	case *ast.ExprStmt:
		a.analyzeExpr(sc, n.Expression, inferenceContext{})
		a.reactor.Set(n, AttrReturns, false)

	case *ast.Assign:
		a.analyzeAssign(sc, n)
		a.reactor.Set(n, AttrReturns, false)

	case *ast.If:
		a.analyzeIf(sc, n)

	case *ast.While:
		a.analyzeWhile(sc, n)

	case *ast.Return:
		a.analyzeReturn(sc, n)

	case *ast.BornStmt:
		a.analyzeBornStmt(sc, n)
		a.reactor.Set(n, AttrReturns, false)
	}
}

func (a *Analyzer) analyzeAssign(sc *scope.Scope, n *ast.Assign) {
	switch n.Target.(type) {
	case *ast.Reference, *ast.FieldAccess, *ast.ArrayAccess:
	default:
		a.reactor.Error(n, "assignment target must be a variable, field, or array element")
	}

	a.analyzeExpr(sc, n.Target, inferenceContext{})
	a.analyzeExpr(sc, n.Value, inferenceContext{expected: &reactor.AttrRef{Node: n.Target, Attr: AttrType}})

	a.reactor.Rule(nil,
		[]reactor.AttrRef{{Node: n.Target, Attr: AttrType}, {Node: n.Value, Attr: AttrType}},
		func() {
			targetT, ok1 := a.reactor.Get(n.Target, AttrType)
			valueT, ok2 := a.reactor.Get(n.Value, AttrType)
			if !ok1 || !ok2 {
				return
			}
			if !types.AssignableTo(valueT.(types.Type), targetT.(types.Type)) {
				a.reactor.Error(n, "cannot assign %s to %s", valueT.(types.Type).String(), targetT.(types.Type).String())
			}
		},
	)
}

func (a *Analyzer) analyzeIf(sc *scope.Scope, n *ast.If) {
	a.analyzeExpr(sc, n.Condition, inferenceContext{})
	a.reactor.Rule(nil, []reactor.AttrRef{{Node: n.Condition, Attr: AttrType}}, func() {
		t, ok := a.reactor.Get(n.Condition, AttrType)
		if ok && !t.(types.Type).Equal(types.Bool) {
			a.reactor.Error(n.Condition, "if condition must be Bool, got %s", t.(types.Type).String())
		}
	})

	thenScope := a.scopeOf(n.Then)
	a.analyzeBlock(thenScope, n.Then)

	if n.Else == nil {
		a.reactor.Set(n, AttrReturns, false)
		return
	}
	elseScope := a.scopeOf(n.Else)
	a.analyzeBlock(elseScope, n.Else)

	// Both analyzeBlock calls above already ran to completion and Set
	// their block's `returns` attribute synchronously: whether a block
	// unconditionally returns is a structural property of its statements,
	// never deferred behind a type-resolution rule.
	thenR, _ := reactor.GetAs[bool](a.reactor, n.Then, AttrReturns)
	elseR, _ := reactor.GetAs[bool](a.reactor, n.Else, AttrReturns)
	a.reactor.Set(n, AttrReturns, thenR && elseR)
}

func (a *Analyzer) analyzeWhile(sc *scope.Scope, n *ast.While) {
	a.analyzeExpr(sc, n.Condition, inferenceContext{})
	a.reactor.Rule(nil, []reactor.AttrRef{{Node: n.Condition, Attr: AttrType}}, func() {
		t, ok := a.reactor.Get(n.Condition, AttrType)
		if ok && !t.(types.Type).Equal(types.Bool) {
			a.reactor.Error(n.Condition, "while condition must be Bool, got %s", t.(types.Type).String())
		}
	})

	bodyScope := a.scopeOf(n.Body)
	a.loopDepth++
	a.analyzeBlock(bodyScope, n.Body)
	a.loopDepth--

	// A while loop's body may run zero times, so it never guarantees a
	// return on its own.
	a.reactor.Set(n, AttrReturns, false)
}

func (a *Analyzer) analyzeReturn(sc *scope.Scope, n *ast.Return) {
	a.reactor.Set(n, AttrReturns, true)

	fn := a.currentFunction()
	if fn == nil {
		a.reactor.Error(n, "return statement outside of a function or method body")
		return
	}

	if n.Value == nil {
		a.reactor.Rule(nil, []reactor.AttrRef{{Node: fn, Attr: AttrType}}, func() {
			ft, ok := a.reactor.Get(fn, AttrType)
			if !ok {
				return
			}
			if ret := effectiveReturnType(ft.(*types.FunType).Return); !ret.Equal(types.Void) {
				a.reactor.Error(n, "function declared to return %s must return a value", ret.String())
			}
		})
		return
	}

	ctx := inferenceContext{}
	if fn.ReturnType != nil {
		ctx.expected = &reactor.AttrRef{Node: fn.ReturnType, Attr: AttrType}
	}
	a.analyzeExpr(sc, n.Value, ctx)
	a.reactor.Rule(nil,
		[]reactor.AttrRef{{Node: fn, Attr: AttrType}, {Node: n.Value, Attr: AttrType}},
		func() {
			ft, ok1 := a.reactor.Get(fn, AttrType)
			vt, ok2 := a.reactor.Get(n.Value, AttrType)
			if !ok1 || !ok2 {
				return
			}
			want := effectiveReturnType(ft.(*types.FunType).Return)
			if !types.AssignableTo(vt.(types.Type), want) {
				a.reactor.Error(n, "cannot return %s from a function declared to return %s", vt.(types.Type).String(), want.String())
			}
		},
	)
}
