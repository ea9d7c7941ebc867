package semantic

import (
	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/reactor"
	"github.com/cdelzotti/sigh/internal/scope"
	"github.com/cdelzotti/sigh/internal/types"
)

func (a *Analyzer) analyzeArrayLiteral(sc *scope.Scope, n *ast.ArrayLiteral, ctx inferenceContext) {
	if len(n.Elements) == 0 {
		if ctx.expected == nil {
			a.reactor.ErrorFor(n, "cannot infer the element type of an empty array literal here", nil, AttrType)
			return
		}
		a.reactor.Rule(
			[]reactor.AttrRef{{Node: n, Attr: AttrType}},
			[]reactor.AttrRef{*ctx.expected},
			func() {
				expected, ok := a.reactor.Get(ctx.expected.Node, ctx.expected.Attr)
				if !ok {
					a.reactor.ErrorFor(n, "empty array literal's expected type could not be resolved", nil, AttrType)
					return
				}
				arrT, isArr := expected.(types.Type).(*types.ArrayType)
				if !isArr {
					a.reactor.ErrorFor(n, "an empty array literal is not valid here: expected %s", []any{expected.(types.Type).String()}, AttrType)
					return
				}
				a.reactor.Set(n, AttrType, arrT)
			},
		)
		return
	}

	for _, el := range n.Elements {
		a.analyzeExpr(sc, el, inferenceContext{})
	}

	ins := make([]reactor.AttrRef, len(n.Elements))
	for i, el := range n.Elements {
		ins[i] = reactor.AttrRef{Node: el, Attr: AttrType}
	}
	a.reactor.Rule(
		[]reactor.AttrRef{{Node: n, Attr: AttrType}},
		ins,
		func() {
			var common types.Type
			for _, el := range n.Elements {
				t, ok := a.reactor.Get(el, AttrType)
				if !ok {
					a.reactor.ErrorFor(n, "array literal has an unresolved element", nil, AttrType)
					return
				}
				if common == nil {
					common = t.(types.Type)
					continue
				}
				next, ok := types.CommonSupertype(common, t.(types.Type))
				if !ok {
					a.reactor.ErrorFor(n, "array literal elements have incompatible types %s and %s", []any{common.String(), t.(types.Type).String()}, AttrType)
					return
				}
				common = next
			}
			a.reactor.Set(n, AttrType, &types.ArrayType{Elem: common})
		},
	)
}

// analyzeFieldAccess resolves `stem.field`.
// Accessing an async (Unborn-returning) method through field access is
// rejected; a synchronous method reached this way keeps its FunType.
func (a *Analyzer) analyzeFieldAccess(sc *scope.Scope, n *ast.FieldAccess) {
	a.analyzeExpr(sc, n.Stem, inferenceContext{})
	a.reactor.Rule(
		[]reactor.AttrRef{{Node: n, Attr: AttrType}},
		[]reactor.AttrRef{{Node: n.Stem, Attr: AttrType}},
		func() {
			stemT, ok := a.reactor.Get(n.Stem, AttrType)
			if !ok {
				a.reactor.ErrorFor(n, "field access on an unresolved expression", nil, AttrType)
				return
			}
			ct, isClass := stemT.(types.Type).(*types.ClassType)
			if !isClass {
				a.reactor.ErrorFor(n, "cannot access field %q on non-class type %s", []any{n.Field, stemT.(types.Type).String()}, AttrType)
				return
			}
			ft, ok := ct.FieldType(n.Field)
			if !ok {
				a.reactor.ErrorFor(n, "%s has no field or method %q", []any{ct.Name, n.Field}, AttrType)
				return
			}
			if fn, isFun := ft.(*types.FunType); isFun {
				if _, isUnborn := fn.Return.(*types.UnbornType); isUnborn {
					a.reactor.ErrorFor(n, "%s is async and can only be called from within %s itself", []any{n.Field, ct.Name}, AttrType)
					return
				}
			}
			// A method's own type is its FunType (so calling it through
			// FieldAccess as a FunCall callee type-checks normally); using
			// the access as a bare value instead of calling it evaluates to
			// Null at runtime, since Sigh methods aren't first-class
			// values (see DESIGN.md's Open Question #1).
			a.reactor.Set(n, AttrType, ft)
		},
	)
}

// analyzeConstructorExpr resolves `$Name(args...)` against a StructDecl
// named Name.
func (a *Analyzer) analyzeConstructorExpr(sc *scope.Scope, n *ast.ConstructorExpr) {
	for _, arg := range n.Arguments {
		a.analyzeExpr(sc, arg, inferenceContext{})
	}

	decl := sc.Lookup(n.Name)
	sd, ok := decl.(*ast.StructDecl)
	if !ok {
		a.reactor.ErrorFor(n, "%q does not name a struct", []any{n.Name}, AttrType)
		return
	}
	a.reactor.Set(n, AttrDecl, sd)

	ins := make([]reactor.AttrRef, 0, len(n.Arguments)+1)
	ins = append(ins, reactor.AttrRef{Node: sd, Attr: AttrDeclared})
	for _, arg := range n.Arguments {
		ins = append(ins, reactor.AttrRef{Node: arg, Attr: AttrType})
	}
	a.reactor.Rule(
		[]reactor.AttrRef{{Node: n, Attr: AttrType}},
		ins,
		func() {
			declared, ok := a.reactor.Get(sd, AttrDeclared)
			if !ok {
				a.reactor.ErrorFor(n, "struct %q could not be resolved", []any{n.Name}, AttrType)
				return
			}
			st := declared.(*types.StructType)
			want := st.ConstructorFieldTypes()
			if len(want) != len(n.Arguments) {
				a.reactor.ErrorFor(n, "$%s expects %d argument(s), got %d", []any{n.Name, len(want), len(n.Arguments)}, AttrType)
				return
			}
			for i, arg := range n.Arguments {
				got, ok := a.reactor.Get(arg, AttrType)
				if !ok {
					a.reactor.ErrorFor(n, "$%s argument %d is unresolved", []any{n.Name, i}, AttrType)
					return
				}
				if !types.AssignableTo(got.(types.Type), want[i]) {
					a.reactor.ErrorFor(n, "$%s argument %d: cannot assign %s to %s", []any{n.Name, i, got.(types.Type).String(), want[i].String()}, AttrType)
					return
				}
			}
			a.reactor.Set(n, AttrType, st)
		},
	)
}

// analyzeFunCall resolves a free function call, a method call reached
// through FieldAccess, or a class instantiation (Callee names a
// ClassDecl).
func (a *Analyzer) analyzeFunCall(sc *scope.Scope, n *ast.FunCall) {
	if ref, ok := n.Callee.(*ast.Reference); ok {
		if decl := sc.Lookup(ref.Name); decl != nil {
			if cd, isClass := decl.(*ast.ClassDecl); isClass {
				a.analyzeInstantiation(sc, n, cd)
				return
			}
		}
	}

	a.analyzeExpr(sc, n.Callee, inferenceContext{})
	var params []*ast.ParameterDecl
	if ref, ok := n.Callee.(*ast.Reference); ok {
		if fd, isFun := sc.Lookup(ref.Name).(*ast.FunDecl); isFun {
			params = fd.Params
		}
	}
	for i, arg := range n.Arguments {
		ctx := inferenceContext{}
		if i < len(params) && params[i].Annotation != nil {
			ctx.expected = &reactor.AttrRef{Node: params[i].Annotation, Attr: AttrType}
		}
		a.analyzeExpr(sc, arg, ctx)
	}

	ins := make([]reactor.AttrRef, 0, len(n.Arguments)+1)
	ins = append(ins, reactor.AttrRef{Node: n.Callee, Attr: AttrType})
	for _, arg := range n.Arguments {
		ins = append(ins, reactor.AttrRef{Node: arg, Attr: AttrType})
	}
	a.reactor.Rule(
		[]reactor.AttrRef{{Node: n, Attr: AttrType}},
		ins,
		func() {
			calleeT, ok := a.reactor.Get(n.Callee, AttrType)
			if !ok {
				a.reactor.ErrorFor(n, "call target is unresolved", nil, AttrType)
				return
			}
			fn, isFun := calleeT.(types.Type).(*types.FunType)
			if !isFun {
				a.reactor.ErrorFor(n, "cannot call a value of type %s", []any{calleeT.(types.Type).String()}, AttrType)
				return
			}
			if len(fn.Params) != len(n.Arguments) {
				a.reactor.ErrorFor(n, "call expects %d argument(s), got %d", []any{len(fn.Params), len(n.Arguments)}, AttrType)
				return
			}
			for i, arg := range n.Arguments {
				got, ok := a.reactor.Get(arg, AttrType)
				if !ok {
					a.reactor.ErrorFor(n, "call argument %d is unresolved", []any{i}, AttrType)
					return
				}
				if !types.AssignableTo(got.(types.Type), fn.Params[i]) {
					a.reactor.ErrorFor(n, "call argument %d: cannot assign %s to %s", []any{i, got.(types.Type).String(), fn.Params[i].String()}, AttrType)
					return
				}
			}
			a.reactor.Set(n, AttrType, fn.Return)
		},
	)
}

// analyzeInstantiation resolves `ClassName(args...)` as construction via
// the class's `<constructor>` method.
func (a *Analyzer) analyzeInstantiation(sc *scope.Scope, n *ast.FunCall, cd *ast.ClassDecl) {
	a.reactor.Set(n.Callee, AttrDecl, cd)
	for _, arg := range n.Arguments {
		a.analyzeExpr(sc, arg, inferenceContext{})
	}

	ins := make([]reactor.AttrRef, 0, len(n.Arguments)+1)
	ins = append(ins, reactor.AttrRef{Node: cd, Attr: AttrDeclared})
	for _, arg := range n.Arguments {
		ins = append(ins, reactor.AttrRef{Node: arg, Attr: AttrType})
	}
	a.reactor.Rule(
		[]reactor.AttrRef{{Node: n, Attr: AttrType}},
		ins,
		func() {
			declared, ok := a.reactor.Get(cd, AttrDeclared)
			if !ok {
				a.reactor.ErrorFor(n, "class %q could not be resolved", []any{cd.Name}, AttrType)
				return
			}
			ct := declared.(*types.ClassType)
			ctor := ct.Constructor()
			if ctor == nil {
				if len(n.Arguments) != 0 {
					a.reactor.ErrorFor(n, "class %q has no constructor but was given %d argument(s)", []any{cd.Name, len(n.Arguments)}, AttrType)
					return
				}
				a.reactor.Set(n, AttrType, ct)
				return
			}
			if len(ctor.Params) != len(n.Arguments) {
				a.reactor.ErrorFor(n, "%s's constructor expects %d argument(s), got %d", []any{cd.Name, len(ctor.Params), len(n.Arguments)}, AttrType)
				return
			}
			for i, arg := range n.Arguments {
				got, ok := a.reactor.Get(arg, AttrType)
				if !ok {
					a.reactor.ErrorFor(n, "constructor argument %d is unresolved", []any{i}, AttrType)
					return
				}
				if !types.AssignableTo(got.(types.Type), ctor.Params[i]) {
					a.reactor.ErrorFor(n, "constructor argument %d: cannot assign %s to %s", []any{i, got.(types.Type).String(), ctor.Params[i].String()}, AttrType)
					return
				}
			}
			a.reactor.Set(n, AttrType, ct)
		},
	)
}

var comparisonOps = map[string]bool{"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}
var logicalOps = map[string]bool{"&&": true, "||": true}
var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}

func (a *Analyzer) analyzeBinaryExpr(sc *scope.Scope, n *ast.BinaryExpr) {
	a.analyzeExpr(sc, n.Left, inferenceContext{})
	a.analyzeExpr(sc, n.Right, inferenceContext{})

	a.reactor.Rule(
		[]reactor.AttrRef{{Node: n, Attr: AttrType}},
		[]reactor.AttrRef{{Node: n.Left, Attr: AttrType}, {Node: n.Right, Attr: AttrType}},
		func() {
			lt, ok1 := a.reactor.Get(n.Left, AttrType)
			rt, ok2 := a.reactor.Get(n.Right, AttrType)
			if !ok1 || !ok2 {
				a.reactor.ErrorFor(n, "binary expression has an unresolved operand", nil, AttrType)
				return
			}
			l, r := lt.(types.Type), rt.(types.Type)

			switch {
			case n.Op == "ciblingsOf":
				lc, lok := l.(*types.ClassType)
				rc, rok := r.(*types.ClassType)
				if !lok || !rok {
					a.reactor.ErrorFor(n, "ciblingsOf requires two class-typed operands, got %s and %s", []any{l.String(), r.String()}, AttrType)
					return
				}
				_ = lc
				_ = rc
				a.reactor.Set(n, AttrType, types.Bool)

			case comparisonOps[n.Op]:
				if _, ok := types.CommonSupertype(l, r); !ok {
					a.reactor.ErrorFor(n, "cannot compare %s and %s", []any{l.String(), r.String()}, AttrType)
					return
				}
				a.reactor.Set(n, AttrType, types.Bool)

			case logicalOps[n.Op]:
				if !l.Equal(types.Bool) || !r.Equal(types.Bool) {
					a.reactor.ErrorFor(n, "%s requires Bool operands, got %s and %s", []any{n.Op, l.String(), r.String()}, AttrType)
					return
				}
				a.reactor.Set(n, AttrType, types.Bool)

			case arithmeticOps[n.Op]:
				if n.Op == "+" && (l.Equal(types.String) || r.Equal(types.String)) {
					a.reactor.Set(n, AttrType, types.String)
					return
				}
				sup, ok := types.CommonSupertype(l, r)
				if !ok || (!sup.Equal(types.Int) && !sup.Equal(types.Float)) {
					a.reactor.ErrorFor(n, "%s requires numeric operands, got %s and %s", []any{n.Op, l.String(), r.String()}, AttrType)
					return
				}
				a.reactor.Set(n, AttrType, sup)

			default:
				a.reactor.ErrorFor(n, "unknown binary operator %q", []any{n.Op}, AttrType)
			}
		},
	)
}

func (a *Analyzer) analyzeUnaryExpr(sc *scope.Scope, n *ast.UnaryExpr) {
	a.analyzeExpr(sc, n.Operand, inferenceContext{})
	a.reactor.Rule(
		[]reactor.AttrRef{{Node: n, Attr: AttrType}},
		[]reactor.AttrRef{{Node: n.Operand, Attr: AttrType}},
		func() {
			t, ok := a.reactor.Get(n.Operand, AttrType)
			if !ok {
				a.reactor.ErrorFor(n, "unary expression has an unresolved operand", nil, AttrType)
				return
			}
			operand := t.(types.Type)
			switch n.Op {
			case "-":
				if !operand.Equal(types.Int) && !operand.Equal(types.Float) {
					a.reactor.ErrorFor(n, "unary - requires a numeric operand, got %s", []any{operand.String()}, AttrType)
					return
				}
				a.reactor.Set(n, AttrType, operand)
			case "!":
				if !operand.Equal(types.Bool) {
					a.reactor.ErrorFor(n, "unary ! requires a Bool operand, got %s", []any{operand.String()}, AttrType)
					return
				}
				a.reactor.Set(n, AttrType, types.Bool)
			default:
				a.reactor.ErrorFor(n, "unknown unary operator %q", []any{n.Op}, AttrType)
			}
		},
	)
}
