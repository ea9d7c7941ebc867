package interp

import (
	"sync"

	"github.com/cdelzotti/sigh/internal/scope"
)

// constructorKey mirrors internal/semantic's private constructorKey
// (analyze_classes.go): the name a class's constructor method is stored
// under in its ClassType.Fields map, chosen so it can't collide with an
// ordinary member name.
const constructorKey = "<constructor>"

// mainThread is threadIndex 0, reserved for the program's synchronous
// execution.
const mainThread = uint64(0)

// ScopeStorage is one stack frame: the Scope it was pushed for, its
// name->value slots, and a parent pointer forming a linked list of frames
//. A function call's or constructor's frame is linked onto the shared
// root frame, not onto the caller's frame; a Daddy call's frame and nested
// block frames are linked onto the current frame. Every chain therefore
// shares the same root frame as its ultimate ancestor; mu is
// non-nil only on that shared root frame, since it's the one frame
// concurrently touched by more than one goroutine.
//
// Grounded on go-dws's runtime.Environment (parent-chain lookup over a
// flat map); generalized here to key lookups by the *static* scope.Scope a
// frame was pushed for rather than by name-miss-recurse, since a Sigh
// Reference already carries its resolved Scope as an analyzer attribute
//.
type ScopeStorage struct {
	scope        *scope.Scope
	slots        map[string]Value
	parent       *ScopeStorage
	mu           *sync.Mutex
	isClassFrame bool
	// instance is set only on a class frame: the ClassInstance construction
	// or method dispatch pushed it for. It lets a bare Reference to a
	// sibling method (no self/this syntax exists) and a Daddy call recover
	// "the instance this call is operating on" without threading an extra
	// parameter through every eval/exec function.
	instance *ClassInstance
}

func newScopeStorage(sc *scope.Scope, parent *ScopeStorage) *ScopeStorage {
	return &ScopeStorage{scope: sc, slots: make(map[string]Value), parent: parent}
}

// newClassFrame builds the frame pushed for a ClassScope during
// construction or method dispatch.
func newClassFrame(sc *scope.Scope, parent *ScopeStorage) *ScopeStorage {
	s := newScopeStorage(sc, parent)
	s.isClassFrame = true
	return s
}

func newRootStorage(sc *scope.Scope) *ScopeStorage {
	s := newScopeStorage(sc, nil)
	s.mu = &sync.Mutex{}
	return s
}

// frameFor walks from s toward the root looking for the frame pushed for
// sc.
func (s *ScopeStorage) frameFor(sc *scope.Scope) *ScopeStorage {
	for f := s; f != nil; f = f.parent {
		if f.scope == sc {
			return f
		}
	}
	return nil
}

// classFrame walks from s toward the root looking for the nearest frame
// pushed for a ClassScope, regardless of which class declared it. A bare
// Reference to a field always resolves this way rather than by exact scope
// identity: a `Daddy` call pushes the parent method's own body scope
// without pushing a second class-scope frame, so that the parent method
// "sees and mutates the same class-scope frame that was active at the call
// site" even though the field's own resolved
// scope is the ancestor class's ClassScope, not the one on top of the
// chain.
func (s *ScopeStorage) classFrame() *ScopeStorage {
	for f := s; f != nil; f = f.parent {
		if f.isClassFrame {
			return f
		}
	}
	return nil
}

// define binds name in this frame directly (a parameter bind, a local
// `var`, or a field's zero-value slot in a fresh class-scope frame).
func (s *ScopeStorage) define(name string, v Value) {
	if s.mu != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	s.slots[name] = v
}

// get reads name from the innermost frame whose scope matches targetScope.
func (s *ScopeStorage) get(targetScope *scope.Scope, name string) (Value, bool) {
	f := s.frameFor(targetScope)
	if f == nil {
		return nil, false
	}
	if f.mu != nil {
		f.mu.Lock()
		defer f.mu.Unlock()
	}
	v, ok := f.slots[name]
	return v, ok
}

// set writes name in the innermost frame whose scope matches targetScope
//.
func (s *ScopeStorage) set(targetScope *scope.Scope, name string, v Value) bool {
	f := s.frameFor(targetScope)
	if f == nil {
		return false
	}
	if f.mu != nil {
		f.mu.Lock()
		defer f.mu.Unlock()
	}
	f.slots[name] = v
	return true
}

// getField reads name from the nearest class-scope frame (a bare
// Reference to a field, from inside a method/constructor body).
func (s *ScopeStorage) getField(name string) (Value, bool) {
	f := s.classFrame()
	if f == nil {
		return nil, false
	}
	v, ok := f.slots[name]
	return v, ok
}

// setField writes name in the nearest class-scope frame.
func (s *ScopeStorage) setField(name string, v Value) bool {
	f := s.classFrame()
	if f == nil {
		return false
	}
	f.slots[name] = v
	return true
}

// snapshot copies every name->value slot in s's own frame (not its
// ancestors); used by class construction/method-call cleanup to refresh a
// ClassInstance from the ClassScope frame the constructor/method body ran
// in.
func (s *ScopeStorage) snapshot() map[string]Value {
	if s.mu != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	out := make(map[string]Value, len(s.slots))
	for k, v := range s.slots {
		out[k] = v
	}
	return out
}
