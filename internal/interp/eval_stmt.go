package interp

import "github.com/cdelzotti/sigh/internal/ast"

// execResult reports whether a statement/block unwound via Return, and
// with what value. It is returned by value rather than mutating shared
// Interpreter state, so one goroutine's in-flight call never disturbs
// another's.
type execResult struct {
	returned bool
	value    Value
}

func (i *Interpreter) execStmt(env *ScopeStorage, threadIndex uint64, s ast.Stmt) (execResult, *ErrorValue) {
	switch n := s.(type) {
	case *ast.VarDeclStmt:
		return i.execVarDecl(env, threadIndex, n.Decl)

	case *ast.ExprStmt:
		_, errVal := i.Eval(env, threadIndex, n.Expression)
		return execResult{}, errVal

	case *ast.Assign:
		return execResult{}, i.execAssign(env, threadIndex, n)

	case *ast.If:
		return i.execIf(env, threadIndex, n)

	case *ast.While:
		return i.execWhile(env, threadIndex, n)

	case *ast.Return:
		return i.execReturn(env, threadIndex, n)

	case *ast.BornStmt:
		return execResult{}, i.execBorn(env, threadIndex, n)

	default:
		return execResult{}, newErrorAt(s, "unsupported statement %T", s)
	}
}

func (i *Interpreter) execVarDecl(env *ScopeStorage, threadIndex uint64, d *ast.VarDecl) (execResult, *ErrorValue) {
	var v Value = Null
	if d.Initializer != nil {
		val, errVal := i.Eval(env, threadIndex, d.Initializer)
		if errVal != nil {
			return execResult{}, errVal
		}
		v = widen(val, i.typeOf(d))
	} else {
		v = zeroValue(i.typeOf(d))
	}
	env.define(d.Name, v)
	return execResult{}, nil
}

func (i *Interpreter) execAssign(env *ScopeStorage, threadIndex uint64, n *ast.Assign) *ErrorValue {
	val, errVal := i.Eval(env, threadIndex, n.Value)
	if errVal != nil {
		return errVal
	}
	val = widen(val, i.typeOf(n.Target))

	switch target := n.Target.(type) {
	case *ast.Reference:
		return i.assignReference(env, target, val)

	case *ast.FieldAccess:
		stem, errVal := i.Eval(env, threadIndex, target.Stem)
		if errVal != nil {
			return errVal
		}
		inst, ok := stem.(*ClassInstance)
		if !ok {
			return newErrorAt(target, "cannot assign field %q on a non-class value", target.Field)
		}
		inst.Fields[target.Field] = val
		return nil

	case *ast.ArrayAccess:
		arrV, errVal := i.Eval(env, threadIndex, target.Array)
		if errVal != nil {
			return errVal
		}
		idxV, errVal := i.Eval(env, threadIndex, target.Index)
		if errVal != nil {
			return errVal
		}
		arr, ok := arrV.(*ArrayValue)
		if !ok {
			return newErrorAt(target, "cannot index into a non-array value")
		}
		idx, ok := idxV.(*IntValue)
		if !ok {
			return newErrorAt(target, "array index must be Int")
		}
		if idx.Value < 0 {
			return newErrorAt(target, "array index %d is negative", idx.Value)
		}
		if int(idx.Value) >= len(arr.Elements) {
			return newErrorAt(target, "array index %d is out of bounds (length %d)", idx.Value, len(arr.Elements))
		}
		arr.Elements[idx.Value] = val
		return nil

	default:
		return newErrorAt(n, "unsupported assignment target %T", n.Target)
	}
}

// assignReference writes to a bare-name target: a field (nearest class
// frame) or an ordinary local/parameter/global (exact resolved scope).
func (i *Interpreter) assignReference(env *ScopeStorage, ref *ast.Reference, val Value) *ErrorValue {
	decl := i.declOf(ref)
	if _, ok := decl.(*ast.FieldDecl); ok {
		if !env.setField(ref.Name, val) {
			return newErrorAt(ref, "no active class frame for field %q", ref.Name)
		}
		return nil
	}
	sc := i.scopeOfDecl(decl)
	if sc == nil {
		return newErrorAt(ref, "%q has no storage scope", ref.Name)
	}
	if !env.set(sc, ref.Name, val) {
		return newErrorAt(ref, "%q is not bound in any active frame", ref.Name)
	}
	return nil
}

func (i *Interpreter) execIf(env *ScopeStorage, threadIndex uint64, n *ast.If) (execResult, *ErrorValue) {
	cond, errVal := i.Eval(env, threadIndex, n.Condition)
	if errVal != nil {
		return execResult{}, errVal
	}
	b, ok := cond.(*BoolValue)
	if !ok {
		return execResult{}, newErrorAt(n.Condition, "if condition did not evaluate to Bool")
	}
	if b.Value {
		return i.execBlock(env, threadIndex, n.Then)
	}
	if n.Else != nil {
		return i.execBlock(env, threadIndex, n.Else)
	}
	return execResult{}, nil
}

func (i *Interpreter) execWhile(env *ScopeStorage, threadIndex uint64, n *ast.While) (execResult, *ErrorValue) {
	for {
		cond, errVal := i.Eval(env, threadIndex, n.Condition)
		if errVal != nil {
			return execResult{}, errVal
		}
		b, ok := cond.(*BoolValue)
		if !ok {
			return execResult{}, newErrorAt(n.Condition, "while condition did not evaluate to Bool")
		}
		if !b.Value {
			return execResult{}, nil
		}
		res, errVal := i.execBlock(env, threadIndex, n.Body)
		if errVal != nil {
			return execResult{}, errVal
		}
		if res.returned {
			return res, nil
		}
	}
}

func (i *Interpreter) execReturn(env *ScopeStorage, threadIndex uint64, n *ast.Return) (execResult, *ErrorValue) {
	if n.Value == nil {
		return execResult{returned: true, value: Null}, nil
	}
	v, errVal := i.Eval(env, threadIndex, n.Value)
	if errVal != nil {
		return execResult{}, errVal
	}
	return execResult{returned: true, value: v}, nil
}

// execBlock runs b's statements, pushing a fresh frame when b introduces
// its own nested scope. A function's own top-level body block shares its
// scope object with the already-pushed call frame, so no duplicate frame
// is pushed in that case.
func (i *Interpreter) execBlock(env *ScopeStorage, threadIndex uint64, b *ast.Block) (execResult, *ErrorValue) {
	sc := i.scopeOfDecl(b)
	frame := env
	if sc != nil && sc != env.scope {
		frame = newScopeStorage(sc, env)
	}
	for _, s := range b.Statements {
		res, errVal := i.execStmt(frame, threadIndex, s)
		if errVal != nil {
			return execResult{}, errVal
		}
		if res.returned {
			return res, nil
		}
	}
	return execResult{}, nil
}
