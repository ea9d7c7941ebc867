// Package reactor implements the Attribute Reactor: the dataflow-style
// rule engine the semantic analyzer relies on, with a "set / rule / get /
// error" contract. Nothing in the retrieved example corpus supplies a
// concrete implementation (go-dws's analyzer is a direct recursive-descent
// type checker, not a dataflow engine), so this package is new rather than
// adapted — see DESIGN.md.
//
// Attributes are not an untyped string bag: each attribute lives at a
// (Node, name) key and is read back through a typed accessor (GetAs); the
// fixpoint is driven by an explicit work-list of deferred closures keyed
// by that same pair, not by repeated whole-AST scans.
package reactor

import (
	"fmt"

	"github.com/cdelzotti/sigh/internal/ast"
)

// AttrRef names one attribute slot: the (node, attribute-name) pair that
// the set/rule/get/error contract operates on.
type AttrRef struct {
	Node ast.Node
	Attr string
}

func (a AttrRef) String() string {
	return fmt.Sprintf("%T(%p).%s", a.Node, a.Node, a.Attr)
}

// Error is a single semantic error raised by a rule, attached to the node
// it concerns.
type Error struct {
	Message string
	Node    ast.Node
}

// pendingRule is a rule whose inputs are not all available yet.
type pendingRule struct {
	ins       []AttrRef
	remaining int
	fn        func()
}

// Reactor is the dataflow attribute store and rule engine.
type Reactor struct {
	present  map[AttrRef]bool
	poisoned map[AttrRef]bool
	values   map[AttrRef]any
	waiters  map[AttrRef][]*pendingRule
	pending  map[*pendingRule]bool
	errors   []Error
}

// New creates an empty Reactor.
func New() *Reactor {
	return &Reactor{
		present:  make(map[AttrRef]bool),
		poisoned: make(map[AttrRef]bool),
		values:   make(map[AttrRef]any),
		waiters:  make(map[AttrRef][]*pendingRule),
		pending:  make(map[*pendingRule]bool),
	}
}

// Set publishes an attribute value. Setting an already-present attribute
// overwrites its value without re-triggering rules that already fired —
// this is only used by the analyzer to refine a value it set speculatively
// earlier in the same pass.
func (r *Reactor) Set(node ast.Node, attr string, value any) {
	key := AttrRef{node, attr}
	wasPresent := r.present[key]
	r.values[key] = value
	r.present[key] = true
	if !wasPresent {
		r.notify(key)
	}
}

// Get returns the most recently Set value for (node, attr). ok is false if
// the attribute was never set, or if it was poisoned via ErrorFor — in
// both cases the caller has no usable value and, if it was itself about to
// produce an attribute, should propagate with its own ErrorFor rather than
// proceeding.
func (r *Reactor) Get(node ast.Node, attr string) (any, bool) {
	key := AttrRef{node, attr}
	if !r.present[key] || r.poisoned[key] {
		return nil, false
	}
	return r.values[key], true
}

// IsPoisoned reports whether (node, attr) was deliberately left unset via
// ErrorFor.
func (r *Reactor) IsPoisoned(node ast.Node, attr string) bool {
	return r.poisoned[AttrRef{node, attr}]
}

// Has reports whether (node, attr) has any value at all, set or poisoned.
func (r *Reactor) Has(node ast.Node, attr string) bool {
	return r.present[AttrRef{node, attr}]
}

// Error records a semantic error not tied to a missing attribute.
func (r *Reactor) Error(node ast.Node, format string, args ...any) {
	r.errors = append(r.errors, Error{Message: fmt.Sprintf(format, args...), Node: node})
}

// ErrorFor records an error and poisons attrs on node: downstream rules
// waiting on them become unblocked (so the reactor never deadlocks) but
// see ok=false from Get, so they know the gap was deliberate rather than a
// bug.
func (r *Reactor) ErrorFor(node ast.Node, format string, args []any, attrs ...string) {
	r.errors = append(r.errors, Error{Message: fmt.Sprintf(format, args...), Node: node})
	for _, attr := range attrs {
		key := AttrRef{node, attr}
		if r.present[key] {
			continue
		}
		r.present[key] = true
		r.poisoned[key] = true
		r.notify(key)
	}
}

// Rule registers fn to run once every attribute in ins is available (Set
// or poisoned). If all inputs are already available, fn runs immediately,
// synchronously, before Rule returns.
//
// outs is accepted for documentation/symmetry with the conceptual
// `rule(out-attrs…)` builder surface; the reactor does not itself validate
// that fn actually sets every attribute in outs (fn may legitimately call
// ErrorFor on a subset of them instead).
func (r *Reactor) Rule(outs []AttrRef, ins []AttrRef, fn func()) {
	_ = outs
	remaining := 0
	missing := make([]AttrRef, 0, len(ins))
	for _, in := range ins {
		if r.present[in] {
			continue
		}
		remaining++
		missing = append(missing, in)
	}
	if remaining == 0 {
		fn()
		return
	}

	pr := &pendingRule{ins: ins, remaining: remaining, fn: fn}
	r.pending[pr] = true
	for _, in := range missing {
		r.waiters[in] = append(r.waiters[in], pr)
	}
}

func (r *Reactor) notify(key AttrRef) {
	waiters := r.waiters[key]
	if len(waiters) == 0 {
		return
	}
	delete(r.waiters, key)
	for _, pr := range waiters {
		if !r.pending[pr] {
			continue // already fired via another waiter list (shouldn't happen, defensive)
		}
		pr.remaining--
		if pr.remaining == 0 {
			delete(r.pending, pr)
			pr.fn()
		}
	}
}

// Errors returns every error recorded so far, in the order raised.
func (r *Reactor) Errors() []Error {
	return r.errors
}

// Finish reports rules that never became ready — a reactor-internal bug
// (every analyzer rule's inputs must eventually be Set or ErrorFor'd by
// some other rule), and returns them as errors so they surface instead of
// silently vanishing.
func (r *Reactor) Finish() []Error {
	for pr := range r.pending {
		r.errors = append(r.errors, Error{
			Message: fmt.Sprintf("internal: reactor rule never fired, %d input(s) unresolved: %v", pr.remaining, pr.ins),
		})
	}
	r.pending = make(map[*pendingRule]bool)
	return r.errors
}

// GetAs is a typed convenience wrapper around Get.
func GetAs[T any](r *Reactor, node ast.Node, attr string) (T, bool) {
	v, ok := r.Get(node, attr)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
