package interp

import (
	"math"

	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/reactor"
	"github.com/cdelzotti/sigh/internal/semantic"
	"github.com/cdelzotti/sigh/internal/types"
)

// Eval evaluates e in frame env, on thread threadIndex. Grounded on go-dws's Eval big-type-switch
// (interpreter.go), generalized to the (Value, *ErrorValue) return idiom
// used throughout this package (see errors.go).
func (i *Interpreter) Eval(env *ScopeStorage, threadIndex uint64, e ast.Expr) (Value, *ErrorValue) {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return &IntValue{Value: n.Value}, nil
	case *ast.FloatLiteral:
		return &FloatValue{Value: n.Value}, nil
	case *ast.StringLiteral:
		return &StringValue{Value: n.Value}, nil
	case *ast.Reference:
		return i.evalReference(env, n)
	case *ast.ArrayLiteral:
		return i.evalArrayLiteral(env, threadIndex, n)
	case *ast.ArrayAccess:
		return i.evalArrayAccess(env, threadIndex, n)
	case *ast.FieldAccess:
		return i.evalFieldAccess(env, threadIndex, n)
	case *ast.FunCall:
		return i.evalFunCall(env, threadIndex, n)
	case *ast.ConstructorExpr:
		return i.evalConstructorExpr(env, threadIndex, n)
	case *ast.BinaryExpr:
		return i.evalBinaryExpr(env, threadIndex, n)
	case *ast.UnaryExpr:
		return i.evalUnaryExpr(env, threadIndex, n)
	case *ast.DaddyCall:
		return i.evalDaddyCall(env, threadIndex, n)
	default:
		return nil, newErrorAt(e, "unsupported expression %T", e)
	}
}

// evalReference resolves a bare name to a value, dispatching on what the
// analyzer resolved it to rather than on
// any storage of its own: a field reads the nearest active class frame
// (see storage.go classFrame), a local/parameter reads its exact resolved
// scope's frame, and a function/struct/class/builtin name resolves
// directly to a value with no storage lookup at all.
func (i *Interpreter) evalReference(env *ScopeStorage, n *ast.Reference) (Value, *ErrorValue) {
	decl := i.declOf(n)
	switch d := decl.(type) {
	case *ast.VarDecl:
		sc := i.scopeOfDecl(d)
		v, ok := env.get(sc, n.Name)
		if !ok {
			return nil, newErrorAt(n, "%q is not bound in any active frame", n.Name)
		}
		return v, nil

	case *ast.ParameterDecl:
		sc := i.scopeOfDecl(d)
		v, ok := env.get(sc, n.Name)
		if !ok {
			return nil, newErrorAt(n, "%q is not bound in any active frame", n.Name)
		}
		return v, nil

	case *ast.FieldDecl:
		v, ok := env.getField(n.Name)
		if !ok {
			return nil, newErrorAt(n, "no active class frame for field %q", n.Name)
		}
		return v, nil

	case *ast.FunDecl:
		ft, _ := reactor.GetAs[*types.FunType](i.reactor, d, semantic.AttrType)
		return &FunctionValue{Decl: d, FunType: ft}, nil

	case *ast.MethodDecl:
		// A bare reference to a sibling method: Sigh has no self/this
		// keyword, so calling another method of the same class by name
		// implicitly binds the receiver active at the call site.
		var recv *ClassInstance
		if cf := env.classFrame(); cf != nil {
			recv = cf.instance
		}
		ft, _ := reactor.GetAs[*types.FunType](i.reactor, &d.FunDecl, semantic.AttrType)
		return &FunctionValue{Decl: &d.FunDecl, Receiver: recv, FunType: ft}, nil

	case *ast.StructDecl:
		return &TypeValue{Decl: d}, nil

	case *ast.ClassDecl:
		return &TypeValue{Decl: d}, nil

	case *ast.SyntheticDecl:
		switch d.Name {
		case "null":
			return Null, nil
		case "true":
			return &BoolValue{Value: true}, nil
		case "false":
			return &BoolValue{Value: false}, nil
		case "print":
			ft, _ := reactor.GetAs[*types.FunType](i.reactor, d, semantic.AttrType)
			return &BuiltinValue{Name: "print", FunType: ft}, nil
		default:
			return nil, newErrorAt(n, "%q cannot be used as a value", d.Name)
		}

	default:
		return nil, newErrorAt(n, "unresolved reference %q", n.Name)
	}
}

func (i *Interpreter) evalArrayLiteral(env *ScopeStorage, threadIndex uint64, n *ast.ArrayLiteral) (Value, *ErrorValue) {
	at, _ := i.typeOf(n).(*types.ArrayType)
	var elemType types.Type
	if at != nil {
		elemType = at.Elem
	}
	elems := make([]Value, len(n.Elements))
	for idx, el := range n.Elements {
		v, errVal := i.Eval(env, threadIndex, el)
		if errVal != nil {
			return nil, errVal
		}
		elems[idx] = widen(v, elemType)
	}
	return &ArrayValue{Elem: elemType, Elements: elems}, nil
}

func (i *Interpreter) evalArrayAccess(env *ScopeStorage, threadIndex uint64, n *ast.ArrayAccess) (Value, *ErrorValue) {
	arrV, errVal := i.Eval(env, threadIndex, n.Array)
	if errVal != nil {
		return nil, errVal
	}
	arr, ok := arrV.(*ArrayValue)
	if !ok {
		if _, isNull := arrV.(*NullValue); isNull {
			return nil, newErrorAt(n, "null pointer: cannot index into null")
		}
		return nil, newErrorAt(n, "cannot index into a non-array value")
	}
	idxV, errVal := i.Eval(env, threadIndex, n.Index)
	if errVal != nil {
		return nil, errVal
	}
	idx, ok := idxV.(*IntValue)
	if !ok {
		return nil, newErrorAt(n, "array index must be Int")
	}
	if idx.Value < 0 {
		return nil, newErrorAt(n, "array index %d is negative", idx.Value)
	}
	if int(idx.Value) >= len(arr.Elements) {
		return nil, newErrorAt(n, "array index %d is out of bounds (length %d)", idx.Value, len(arr.Elements))
	}
	return arr.Elements[idx.Value], nil
}

// evalFieldAccess reads a field through dot syntax. This bypasses
// ScopeStorage entirely and reads ClassInstance.Fields directly; a method
// name read this way (never called) yields Null, since field access only
// ever denotes data members as values.
func (i *Interpreter) evalFieldAccess(env *ScopeStorage, threadIndex uint64, n *ast.FieldAccess) (Value, *ErrorValue) {
	stem, errVal := i.Eval(env, threadIndex, n.Stem)
	if errVal != nil {
		return nil, errVal
	}
	inst, ok := stem.(*ClassInstance)
	if !ok {
		if _, isNull := stem.(*NullValue); isNull {
			return nil, newErrorAt(n, "null pointer: cannot access field %q on null", n.Field)
		}
		return nil, newErrorAt(n, "cannot access field %q on a non-class value", n.Field)
	}
	if v, ok := inst.Fields[n.Field]; ok {
		return v, nil
	}
	return Null, nil
}

func (i *Interpreter) evalConstructorExpr(env *ScopeStorage, threadIndex uint64, n *ast.ConstructorExpr) (Value, *ErrorValue) {
	decl := i.declOf(n)
	sd, ok := decl.(*ast.StructDecl)
	if !ok {
		return nil, newErrorAt(n, "$%s does not resolve to a struct", n.Name)
	}
	st := i.declaredStructType(sd)
	fields := make(map[string]Value, len(sd.Fields))
	for idx, fd := range sd.Fields {
		v, errVal := i.Eval(env, threadIndex, n.Arguments[idx])
		if errVal != nil {
			return nil, errVal
		}
		ft, _ := st.FieldType(fd.Name)
		fields[fd.Name] = widen(v, ft)
	}
	return &StructValue{StructType: st, Decl: sd, Fields: fields}, nil
}

func (i *Interpreter) evalDaddyCall(env *ScopeStorage, threadIndex uint64, n *ast.DaddyCall) (Value, *ErrorValue) {
	decl := i.declOf(n)
	parentMethod, ok := decl.(*ast.MethodDecl)
	if !ok {
		return nil, newErrorAt(n, "Daddy(...) has no resolved parent method")
	}
	ft, _ := reactor.GetAs[*types.FunType](i.reactor, &parentMethod.FunDecl, semantic.AttrType)
	args, errVal := i.evalArgs(env, threadIndex, n.Arguments, ft)
	if errVal != nil {
		return nil, errVal
	}

	bodyScope := i.scopeOfDecl(&parentMethod.FunDecl)
	// No new class frame is pushed here: the parent method must see and
	// mutate the same class-scope frame that was already active at the
	// call site, found via env.classFrame().
	frame := newScopeStorage(bodyScope, env)
	for idx, p := range parentMethod.Params {
		frame.define(p.Name, args[idx])
	}
	res, errVal := i.execBlock(frame, threadIndex, parentMethod.Body)
	if errVal != nil {
		return nil, errVal
	}
	if res.returned {
		return res.value, nil
	}
	return Null, nil
}

// evalArgs evaluates argExprs left to right, widening each against ft's
// declared parameter type.
func (i *Interpreter) evalArgs(env *ScopeStorage, threadIndex uint64, argExprs []ast.Expr, ft *types.FunType) ([]Value, *ErrorValue) {
	args := make([]Value, len(argExprs))
	for idx, a := range argExprs {
		v, errVal := i.Eval(env, threadIndex, a)
		if errVal != nil {
			return nil, errVal
		}
		var target types.Type
		if ft != nil && idx < len(ft.Params) {
			target = ft.Params[idx]
		}
		args[idx] = widen(v, target)
	}
	return args, nil
}

func (i *Interpreter) evalBinaryExpr(env *ScopeStorage, threadIndex uint64, n *ast.BinaryExpr) (Value, *ErrorValue) {
	switch n.Op {
	case "&&":
		l, errVal := i.Eval(env, threadIndex, n.Left)
		if errVal != nil {
			return nil, errVal
		}
		lb, ok := l.(*BoolValue)
		if !ok {
			return nil, newErrorAt(n, "&& requires Bool operands")
		}
		if !lb.Value {
			return &BoolValue{Value: false}, nil
		}
		r, errVal := i.Eval(env, threadIndex, n.Right)
		if errVal != nil {
			return nil, errVal
		}
		rb, ok := r.(*BoolValue)
		if !ok {
			return nil, newErrorAt(n, "&& requires Bool operands")
		}
		return &BoolValue{Value: rb.Value}, nil

	case "||":
		l, errVal := i.Eval(env, threadIndex, n.Left)
		if errVal != nil {
			return nil, errVal
		}
		lb, ok := l.(*BoolValue)
		if !ok {
			return nil, newErrorAt(n, "|| requires Bool operands")
		}
		if lb.Value {
			return &BoolValue{Value: true}, nil
		}
		r, errVal := i.Eval(env, threadIndex, n.Right)
		if errVal != nil {
			return nil, errVal
		}
		rb, ok := r.(*BoolValue)
		if !ok {
			return nil, newErrorAt(n, "|| requires Bool operands")
		}
		return &BoolValue{Value: rb.Value}, nil
	}

	l, errVal := i.Eval(env, threadIndex, n.Left)
	if errVal != nil {
		return nil, errVal
	}
	r, errVal := i.Eval(env, threadIndex, n.Right)
	if errVal != nil {
		return nil, errVal
	}

	if n.Op == "ciblingsOf" {
		lc, ok1 := l.(*ClassInstance)
		rc, ok2 := r.(*ClassInstance)
		if !ok1 || !ok2 {
			return nil, newErrorAt(n, "ciblingsOf requires two class instances")
		}
		aToB, _ := types.CanBeAssignedWith(lc.ClassType, rc.ClassType)
		bToA, _ := types.CanBeAssignedWith(rc.ClassType, lc.ClassType)
		return &BoolValue{Value: aToB && bToA}, nil
	}

	switch n.Op {
	case "+", "-", "*", "/", "%":
		return evalArith(n, l, r)
	case "==", "!=", "<", "<=", ">", ">=":
		return evalCompare(n, l, r)
	default:
		return nil, newErrorAt(n, "unsupported operator %q", n.Op)
	}
}

func evalArith(n *ast.BinaryExpr, l, r Value) (Value, *ErrorValue) {
	if n.Op == "+" {
		_, lIsString := l.(*StringValue)
		_, rIsString := r.(*StringValue)
		if lIsString || rIsString {
			return &StringValue{Value: l.String() + r.String()}, nil
		}
	}

	lf, lIsFloat := l.(*FloatValue)
	rf, rIsFloat := r.(*FloatValue)
	li, lIsInt := l.(*IntValue)
	ri, rIsInt := r.(*IntValue)

	if lIsFloat || rIsFloat {
		a, ok := floatOperand(l, lf, li, lIsFloat, lIsInt)
		if !ok {
			return nil, newErrorAt(n, "%s requires numeric operands", n.Op)
		}
		b, ok := floatOperand(r, rf, ri, rIsFloat, rIsInt)
		if !ok {
			return nil, newErrorAt(n, "%s requires numeric operands", n.Op)
		}
		switch n.Op {
		case "+":
			return &FloatValue{Value: a + b}, nil
		case "-":
			return &FloatValue{Value: a - b}, nil
		case "*":
			return &FloatValue{Value: a * b}, nil
		case "/":
			if b == 0 {
				return nil, newErrorAt(n, "division by zero")
			}
			return &FloatValue{Value: a / b}, nil
		case "%":
			if b == 0 {
				return nil, newErrorAt(n, "division by zero")
			}
			return &FloatValue{Value: math.Mod(a, b)}, nil
		}
	}

	if !lIsInt || !rIsInt {
		return nil, newErrorAt(n, "%s requires numeric operands", n.Op)
	}
	a, b := li.Value, ri.Value
	switch n.Op {
	case "+":
		if addOverflows(a, b) {
			return nil, newErrorAt(n, "integer overflow")
		}
		return &IntValue{Value: a + b}, nil
	case "-":
		if subOverflows(a, b) {
			return nil, newErrorAt(n, "integer overflow")
		}
		return &IntValue{Value: a - b}, nil
	case "*":
		if mulOverflows(a, b) {
			return nil, newErrorAt(n, "integer overflow")
		}
		return &IntValue{Value: a * b}, nil
	case "/":
		if b == 0 {
			return nil, newErrorAt(n, "division by zero")
		}
		return &IntValue{Value: a / b}, nil
	case "%":
		if b == 0 {
			return nil, newErrorAt(n, "division by zero")
		}
		return &IntValue{Value: a % b}, nil
	}
	return nil, newErrorAt(n, "unsupported operator %q", n.Op)
}

func floatOperand(v Value, fv *FloatValue, iv *IntValue, isFloat, isInt bool) (float64, bool) {
	switch {
	case isFloat:
		return fv.Value, true
	case isInt:
		return float64(iv.Value), true
	default:
		return 0, false
	}
}

func addOverflows(a, b int64) bool {
	c := a + b
	return (b > 0 && c < a) || (b < 0 && c > a)
}

func subOverflows(a, b int64) bool {
	c := a - b
	return (b < 0 && c < a) || (b > 0 && c > a)
}

func mulOverflows(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	c := a * b
	return c/b != a
}

func evalCompare(n *ast.BinaryExpr, l, r Value) (Value, *ErrorValue) {
	switch n.Op {
	case "==":
		return &BoolValue{Value: valuesEqual(l, r)}, nil
	case "!=":
		return &BoolValue{Value: !valuesEqual(l, r)}, nil
	}
	lf, lok := numericOf(l)
	rf, rok := numericOf(r)
	if !lok || !rok {
		return nil, newErrorAt(n, "%s requires numeric operands", n.Op)
	}
	switch n.Op {
	case "<":
		return &BoolValue{Value: lf < rf}, nil
	case "<=":
		return &BoolValue{Value: lf <= rf}, nil
	case ">":
		return &BoolValue{Value: lf > rf}, nil
	case ">=":
		return &BoolValue{Value: lf >= rf}, nil
	}
	return nil, newErrorAt(n, "unsupported operator %q", n.Op)
}

func numericOf(v Value) (float64, bool) {
	switch vv := v.(type) {
	case *IntValue:
		return float64(vv.Value), true
	case *FloatValue:
		return vv.Value, true
	default:
		return 0, false
	}
}

func valuesEqual(l, r Value) bool {
	if lf, ok := numericOf(l); ok {
		if rf, ok := numericOf(r); ok {
			return lf == rf
		}
	}
	switch lv := l.(type) {
	case *BoolValue:
		rv, ok := r.(*BoolValue)
		return ok && lv.Value == rv.Value
	case *StringValue:
		rv, ok := r.(*StringValue)
		return ok && lv.Value == rv.Value
	case *NullValue:
		_, ok := r.(*NullValue)
		return ok
	default:
		// Arrays, structs and class instances compare by reference
		// identity: Sigh has no structural equality operator.
		return l == r
	}
}

func (i *Interpreter) evalUnaryExpr(env *ScopeStorage, threadIndex uint64, n *ast.UnaryExpr) (Value, *ErrorValue) {
	v, errVal := i.Eval(env, threadIndex, n.Operand)
	if errVal != nil {
		return nil, errVal
	}
	switch n.Op {
	case "-":
		switch vv := v.(type) {
		case *IntValue:
			return &IntValue{Value: -vv.Value}, nil
		case *FloatValue:
			return &FloatValue{Value: -vv.Value}, nil
		default:
			return nil, newErrorAt(n, "unary - requires a numeric operand")
		}
	case "!":
		vb, ok := v.(*BoolValue)
		if !ok {
			return nil, newErrorAt(n, "unary ! requires a Bool operand")
		}
		return &BoolValue{Value: !vb.Value}, nil
	default:
		return nil, newErrorAt(n, "unsupported unary operator %q", n.Op)
	}
}
