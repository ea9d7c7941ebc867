package interp

import (
	"fmt"

	"github.com/cdelzotti/sigh/internal/ast"
)

// ErrorValue is a runtime error.
//
// Grounded on go-dws's internal/interp/errors.go ErrorValue/newError/
// newErrorWithLocation, with one deliberate change: go-dws's ErrorValue
// implements Value and is threaded through Eval alongside ordinary values,
// checked after every sub-evaluation with an isError() helper. A Sigh
// ErrorValue carries no Sigh type to report through Value.Type(), so every
// eval/exec function here instead returns an explicit (Value, *ErrorValue)
// pair — idiomatic Go error propagation doing the same job go-dws's
// isError() checks do, without forcing an error to pretend to be a typed
// Sigh value. Building the location string is simpler too: every Sigh
// ast.Node already exposes Pos() directly, so there is no need for
// go-dws's getLocationFromNode type-switch over a dozen node kinds.
type ErrorValue struct {
	Message string
	Node    ast.Node
}

func (e *ErrorValue) String() string {
	if e.Node != nil {
		pos := e.Node.Pos()
		return fmt.Sprintf("runtime error at line %d, column %d: %s", pos.Line, pos.Column, e.Message)
	}
	return "runtime error: " + e.Message
}

// newError builds an ErrorValue with no node context (used for errors
// raised outside of evaluating a specific node, e.g. end-of-program thread
// cleanup).
func newError(format string, args ...any) *ErrorValue {
	return &ErrorValue{Message: fmt.Sprintf(format, args...)}
}

// newErrorAt builds an ErrorValue tagged with the node being evaluated
// when the failure occurred.
func newErrorAt(node ast.Node, format string, args ...any) *ErrorValue {
	return &ErrorValue{Message: fmt.Sprintf(format, args...), Node: node}
}
