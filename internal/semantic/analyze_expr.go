package semantic

import (
	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/reactor"
	"github.com/cdelzotti/sigh/internal/scope"
	"github.com/cdelzotti/sigh/internal/token"
	"github.com/cdelzotti/sigh/internal/types"
)

// analyzeExpr decorates e's `type` attribute (and, for a Reference, its
// `decl` attribute). sc is the lexical scope e is found in; ctx carries
// the element-type hint an enclosing VarDecl/parameter supplies to an
// empty array literal.
func (a *Analyzer) analyzeExpr(sc *scope.Scope, e ast.Expr, ctx inferenceContext) {
	switch n := e.(type) {
	case *ast.IntLiteral:
		a.reactor.Set(n, AttrType, types.Int)
	case *ast.FloatLiteral:
		a.reactor.Set(n, AttrType, types.Float)
	case *ast.StringLiteral:
		a.reactor.Set(n, AttrType, types.String)

	case *ast.Reference:
		a.analyzeReference(sc, n)

	case *ast.ArrayLiteral:
		a.analyzeArrayLiteral(sc, n, ctx)

	case *ast.ArrayAccess:
		a.analyzeExpr(sc, n.Array, inferenceContext{})
		a.analyzeExpr(sc, n.Index, inferenceContext{})
		a.reactor.Rule(
			[]reactor.AttrRef{{Node: n, Attr: AttrType}},
			[]reactor.AttrRef{{Node: n.Array, Attr: AttrType}, {Node: n.Index, Attr: AttrType}},
			func() {
				arrT, ok1 := a.reactor.Get(n.Array, AttrType)
				idxT, ok2 := a.reactor.Get(n.Index, AttrType)
				if !ok1 || !ok2 {
					a.reactor.ErrorFor(n, "array access has an unresolved operand", nil, AttrType)
					return
				}
				arr, isArr := arrT.(*types.ArrayType)
				if !isArr {
					a.reactor.ErrorFor(n, "cannot index into non-array type %s", []any{arrT.(types.Type).String()}, AttrType)
					return
				}
				if !idxT.(types.Type).Equal(types.Int) {
					a.reactor.ErrorFor(n, "array index must be Int, got %s", []any{idxT.(types.Type).String()}, AttrType)
					return
				}
				a.reactor.Set(n, AttrType, arr.Elem)
			},
		)

	case *ast.FieldAccess:
		a.analyzeFieldAccess(sc, n)

	case *ast.FunCall:
		a.analyzeFunCall(sc, n)

	case *ast.ConstructorExpr:
		a.analyzeConstructorExpr(sc, n)

	case *ast.BinaryExpr:
		a.analyzeBinaryExpr(sc, n)

	case *ast.UnaryExpr:
		a.analyzeUnaryExpr(sc, n)

	case *ast.DaddyCall:
		a.analyzeDaddyCall(sc, n)
	}
}

func (a *Analyzer) analyzeReference(sc *scope.Scope, n *ast.Reference) {
	decl := sc.Lookup(n.Name)
	if decl == nil {
		a.reactor.ErrorFor(n, "could not resolve %q", []any{n.Name}, AttrType, AttrDecl)
		return
	}

	if vd, ok := decl.(*ast.VarDecl); ok {
		if local := sc.DeclareLocal(n.Name); local == vd && declaredAfter(vd.Pos(), n.Pos()) {
			a.reactor.Error(n, "%q used before its declaration", n.Name)
		}
	}

	a.reactor.Set(n, AttrDecl, decl)
	a.reactor.Rule(
		[]reactor.AttrRef{{Node: n, Attr: AttrType}},
		[]reactor.AttrRef{{Node: decl, Attr: AttrType}},
		func() {
			t, ok := a.reactor.Get(decl, AttrType)
			if !ok {
				a.reactor.ErrorFor(n, "%q has no usable type", []any{n.Name}, AttrType)
				return
			}
			a.reactor.Set(n, AttrType, t.(types.Type))
		},
	)
}

// declaredAfter reports whether a declaration at declPos lies strictly
// after a use at usePos in source order.
func declaredAfter(declPos, usePos token.Position) bool {
	if declPos.Line != usePos.Line {
		return declPos.Line > usePos.Line
	}
	return declPos.Column > usePos.Column
}
