package interp

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/reactor"
	"github.com/cdelzotti/sigh/internal/semantic"
	"github.com/cdelzotti/sigh/internal/types"
)

// evalFunCall resolves a call expression to one of three call shapes:
// class instantiation (Callee names a ClassDecl), a method
// call reached through field access, or an ordinary call of whatever
// Callee evaluates to (a free function, a bound method value picked up by
// a bare Reference to a sibling method, or the `print` builtin).
func (i *Interpreter) evalFunCall(env *ScopeStorage, threadIndex uint64, n *ast.FunCall) (Value, *ErrorValue) {
	if ref, ok := n.Callee.(*ast.Reference); ok {
		if cd, ok := i.declOf(ref).(*ast.ClassDecl); ok {
			return i.construct(env, threadIndex, n, cd)
		}
	}
	if fa, ok := n.Callee.(*ast.FieldAccess); ok {
		return i.evalMethodCall(env, threadIndex, fa, n.Arguments)
	}

	calleeV, errVal := i.Eval(env, threadIndex, n.Callee)
	if errVal != nil {
		return nil, errVal
	}
	switch fn := calleeV.(type) {
	case *BuiltinValue:
		return i.callBuiltin(env, threadIndex, fn, n)
	case *FunctionValue:
		return i.callFunctionValue(env, threadIndex, fn, n.Arguments)
	default:
		return nil, newErrorAt(n, "cannot call a value of type %s", calleeV.Type().String())
	}
}

func (i *Interpreter) callBuiltin(env *ScopeStorage, threadIndex uint64, b *BuiltinValue, n *ast.FunCall) (Value, *ErrorValue) {
	switch b.Name {
	case "print":
		args, errVal := i.evalArgs(env, threadIndex, n.Arguments, b.FunType)
		if errVal != nil {
			return nil, errVal
		}
		s, ok := args[0].(*StringValue)
		if !ok {
			return nil, newErrorAt(n, "print requires a String argument")
		}
		fmt.Fprintln(i.out, s.Value)
		return s, nil
	default:
		return nil, newErrorAt(n, "unknown builtin %q", b.Name)
	}
}

// callFunctionValue runs an ordinary (non-instantiation, non-field-access)
// call: a free function, or a bound method value reached through a bare
// Reference to a sibling method (Sigh has no self/this syntax of its own).
// An async declaration spawns a thread and returns immediately.
func (i *Interpreter) callFunctionValue(env *ScopeStorage, threadIndex uint64, fn *FunctionValue, argExprs []ast.Expr) (Value, *ErrorValue) {
	args, errVal := i.evalArgs(env, threadIndex, argExprs, fn.FunType)
	if errVal != nil {
		return nil, errVal
	}
	if _, async := i.threadIndexOf(fn.Decl); async {
		i.spawnAsync(fn, args)
		return Null, nil
	}
	return i.runFunctionBody(threadIndex, fn, args)
}

// evalMethodCall runs `instance.method(args)`. The method is resolved through the instance's
// ClassScope rather than through ClassInstance.Fields, since methods never
// occupy a field slot; the analyzer rejects field access to any
// Unborn-returning method before this code ever runs, so every call
// reaching here is synchronous.
func (i *Interpreter) evalMethodCall(env *ScopeStorage, threadIndex uint64, fa *ast.FieldAccess, argExprs []ast.Expr) (Value, *ErrorValue) {
	stemV, errVal := i.Eval(env, threadIndex, fa.Stem)
	if errVal != nil {
		return nil, errVal
	}
	inst, ok := stemV.(*ClassInstance)
	if !ok {
		if _, isNull := stemV.(*NullValue); isNull {
			return nil, newErrorAt(fa, "null pointer: cannot call method %q on null", fa.Field)
		}
		return nil, newErrorAt(fa, "cannot call method %q on a non-class value", fa.Field)
	}
	decl := inst.Scope.Lookup(fa.Field)
	md, ok := decl.(*ast.MethodDecl)
	if !ok {
		return nil, newErrorAt(fa, "%q is not a method on %s", fa.Field, inst.Decl.Name)
	}
	ft, _ := reactor.GetAs[*types.FunType](i.reactor, &md.FunDecl, semantic.AttrType)
	args, errVal := i.evalArgs(env, threadIndex, argExprs, ft)
	if errVal != nil {
		return nil, errVal
	}
	fn := &FunctionValue{Decl: &md.FunDecl, Receiver: inst, FunType: ft}
	if _, errVal := i.runFunctionBody(threadIndex, fn, args); errVal != nil {
		return nil, errVal
	}
	// A method invoked through field access returns no visible value to
	// the caller.
	return Null, nil
}

// runFunctionBody executes fn's body to completion and returns its result
//. There are no closures in Sigh, so the new frame
// chain is rooted at the shared root storage rather than at the caller's
// current frame; a bound method additionally gets a class-scope frame
// prefilled from its receiver's fields, refreshed back onto the instance
// once the body returns.
func (i *Interpreter) runFunctionBody(threadIndex uint64, fn *FunctionValue, args []Value) (Value, *ErrorValue) {
	bodyScope := i.scopeOfDecl(fn.Decl)
	base := i.root
	var classFrame *ScopeStorage
	if fn.Receiver != nil {
		classFrame = newClassFrame(fn.Receiver.Scope.Scope, i.root)
		classFrame.instance = fn.Receiver
		for name, v := range fn.Receiver.Fields {
			classFrame.define(name, v)
		}
		base = classFrame
	}

	frame := newScopeStorage(bodyScope, base)
	for idx, p := range fn.Decl.Params {
		frame.define(p.Name, args[idx])
	}
	res, errVal := i.execBlock(frame, threadIndex, fn.Decl.Body)

	if classFrame != nil {
		for k, v := range classFrame.snapshot() {
			fn.Receiver.Fields[k] = v
		}
	}
	if errVal != nil {
		return nil, errVal
	}
	if res.returned {
		return res.value, nil
	}
	return Null, nil
}

// spawnAsync launches fn on its own goroutine. The pool is keyed by function name so
// `born(f[, v])` can find it again; the goroutine's own Return value is
// recorded in returnValues keyed by fn's stable threadIndex rather than
// propagated as control flow, since nothing is waiting for it inline.
func (i *Interpreter) spawnAsync(fn *FunctionValue, args []Value) {
	ti, _ := i.threadIndexOf(fn.Decl)
	done := make(chan struct{})
	session := uuid.New()

	i.poolMu.Lock()
	i.pool[fn.Decl.Name] = &asyncHandle{threadIndex: ti, done: done, session: session}
	i.poolMu.Unlock()

	if i.trace != nil {
		i.trace(fmt.Sprintf("spawn %s [session %s]", fn.Decl.Name, session))
	}

	go func() {
		defer close(done)
		result, errVal := i.runFunctionBody(ti, fn, args)
		if errVal != nil {
			result = Null
		}
		i.returnValues.Store(ti, result)
		if i.trace != nil {
			i.trace(fmt.Sprintf("finish %s [session %s]", fn.Decl.Name, session))
		}
	}()
}

// execBorn implements the `born(f)` / `born(f, v)` statement.
func (i *Interpreter) execBorn(env *ScopeStorage, threadIndex uint64, n *ast.BornStmt) *ErrorValue {
	i.poolMu.Lock()
	handle, ok := i.pool[n.Function.Name]
	if ok {
		delete(i.pool, n.Function.Name)
	}
	i.poolMu.Unlock()
	if !ok {
		return newError("Please call the async function before trying to born it.")
	}

	if i.trace != nil {
		i.trace(fmt.Sprintf("born %s [session %s]", n.Function.Name, handle.session))
	}
	<-handle.done

	if n.Var == nil {
		return nil
	}
	raw, _ := i.returnValues.Load(handle.threadIndex)
	result, ok := raw.(Value)
	if !ok {
		result = Null
	}
	return i.assignReference(env, n.Var, widen(result, i.typeOf(n.Var)))
}

// joinOutstanding join-waits every thread still in the pool at program
// exit; join errors are never surfaced, and there are none to ignore with
// a channel join.
func (i *Interpreter) joinOutstanding() {
	i.poolMu.Lock()
	handles := make([]*asyncHandle, 0, len(i.pool))
	for _, h := range i.pool {
		handles = append(handles, h)
	}
	i.pool = make(map[string]*asyncHandle)
	i.poolMu.Unlock()

	for _, h := range handles {
		<-h.done
	}
}

// construct runs the class instantiation protocol.
func (i *Interpreter) construct(env *ScopeStorage, threadIndex uint64, n *ast.FunCall, cd *ast.ClassDecl) (Value, *ErrorValue) {
	ct := i.declaredClassType(cd)
	args, errVal := i.evalArgs(env, threadIndex, n.Arguments, ct.Constructor())
	if errVal != nil {
		return nil, errVal
	}

	cs := i.registry.Get(cd)
	// Step 1: push the class's ClassScope frame, rooted at the shared
	// root storage rather than the caller's frame (no closures).
	classFrame := newClassFrame(cs.Scope, i.root)

	// Step 3: allocate the instance.
	inst := &ClassInstance{Decl: cd, ClassType: ct, Scope: cs, Fields: make(map[string]Value)}
	classFrame.instance = inst

	// Step 4: zero-initialize every declared field, in class scope order.
	for _, fd := range i.classFieldDecls(cd) {
		t, _ := ct.FieldType(fd.Name)
		zero := zeroValue(t)
		inst.Fields[fd.Name] = zero
		classFrame.define(fd.Name, zero)
	}

	// Steps 2, 5, 6: push the constructor's own scope frame, bind
	// arguments, execute its body. A class may have no constructor of its
	// own and simply inherit an ancestor's.
	if ctorDecl := i.constructorFor(cd); ctorDecl != nil {
		bodyScope := i.scopeOfDecl(&ctorDecl.FunDecl)
		ctorFrame := newScopeStorage(bodyScope, classFrame)
		for idx, p := range ctorDecl.Params {
			ctorFrame.define(p.Name, args[idx])
		}
		if _, errVal := i.execBlock(ctorFrame, threadIndex, ctorDecl.Body); errVal != nil {
			return nil, errVal
		}
	}

	// Step 7: refresh the instance from the class-scope frame.
	for k, v := range classFrame.snapshot() {
		inst.Fields[k] = v
	}
	return inst, nil
}

// classFieldDecls returns cd's declared fields, furthest ancestor first,
// for deterministic zero-initialization order.
func (i *Interpreter) classFieldDecls(cd *ast.ClassDecl) []*ast.FieldDecl {
	ancestors, _ := reactor.GetAs[[]*ast.ClassDecl](i.reactor, cd, semantic.AttrAncestors)
	chain := make([]*ast.ClassDecl, 0, len(ancestors)+1)
	for k := len(ancestors) - 1; k >= 0; k-- {
		chain = append(chain, ancestors[k])
	}
	chain = append(chain, cd)

	seen := make(map[string]bool)
	var fields []*ast.FieldDecl
	for _, c := range chain {
		for _, m := range c.Members {
			fd, ok := m.(*ast.FieldDecl)
			if !ok || seen[fd.Name] {
				continue
			}
			seen[fd.Name] = true
			fields = append(fields, fd)
		}
	}
	return fields
}

// constructorFor finds the MethodDecl holding cd's constructor body: its
// own if declared, otherwise the nearest ancestor's (a subclass that
// doesn't declare its own constructor inherits the parent's, per
// analyzeClassDecl's buildClassType carrying the parent's <constructor>
// entry forward unchanged).
func (i *Interpreter) constructorFor(cd *ast.ClassDecl) *ast.MethodDecl {
	if m := ownConstructor(cd); m != nil {
		return m
	}
	ancestors, _ := reactor.GetAs[[]*ast.ClassDecl](i.reactor, cd, semantic.AttrAncestors)
	for _, anc := range ancestors {
		if m := ownConstructor(anc); m != nil {
			return m
		}
	}
	return nil
}

func ownConstructor(cd *ast.ClassDecl) *ast.MethodDecl {
	for _, m := range cd.Members {
		if md, ok := m.(*ast.MethodDecl); ok && md.Name == cd.Name {
			return md
		}
	}
	return nil
}
