package interp

import (
	"io"
	"sync"

	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/reactor"
	"github.com/cdelzotti/sigh/internal/scope"
	"github.com/cdelzotti/sigh/internal/semantic"
	"github.com/cdelzotti/sigh/internal/types"
	"github.com/google/uuid"
)

// Tracer receives human-readable lines about async spawn/join activity
//.
type Tracer func(line string)

// Interpreter walks an analyzed AST and executes it.
//
// Grounded on go-dws's Interpreter struct (interpreter.go): one struct
// carrying every registry the evaluator needs, fed from an io.Writer for
// `print`. Unlike go-dws, there is no single mutable "current environment"
// field on the struct: Sigh's async functions run as separate goroutines
// that each walk their own call chain concurrently, so the current
// ScopeStorage frame and threadIndex are threaded as explicit parameters
// through every eval/exec method instead of living on shared, mutable
// Interpreter state (see DESIGN.md).
type Interpreter struct {
	out      io.Writer
	reactor  *reactor.Reactor
	registry *scope.Registry
	rootScope *scope.Scope
	root     *ScopeStorage

	poolMu       sync.Mutex
	pool         map[string]*asyncHandle // function name -> outstanding async call
	returnValues sync.Map                // uint64 (threadIndex) -> Value

	trace Tracer
}

// SetTracer installs a Tracer that receives one line per async spawn,
// finish and born join. Passing nil disables tracing (the default).
func (i *Interpreter) SetTracer(t Tracer) { i.trace = t }

// asyncHandle tracks one outstanding async call.
type asyncHandle struct {
	threadIndex uint64
	done        chan struct{}
	session     uuid.UUID
}

// New builds an Interpreter over an already-analyzed program. analyzer is
// the semantic.Analyzer that analyzed root, used for its Reactor's
// attributes and its class-scope Registry; root is the same *ast.RootNode
// passed to analyzer.Analyze.
func New(analyzer *semantic.Analyzer, root *ast.RootNode, out io.Writer) *Interpreter {
	rc := analyzer.Reactor()
	rootScope, _ := reactor.GetAs[*scope.Scope](rc, root, semantic.AttrScope)
	return &Interpreter{
		out:       out,
		reactor:   rc,
		registry:  analyzer.Registry(),
		rootScope: rootScope,
		root:      newRootStorage(rootScope),
		pool:      make(map[string]*asyncHandle),
	}
}

// Run executes root's top-level statements on the main thread (threadIndex
// 0), then joins every async call the program left outstanding.
func (i *Interpreter) Run(root *ast.RootNode) *ErrorValue {
	for _, s := range root.Statements {
		res, errVal := i.execStmt(i.root, mainThread, s)
		if errVal != nil {
			return errVal
		}
		if res.returned {
			break
		}
	}
	i.joinOutstanding()
	return nil
}

// --- attribute helpers -----------------------------------------------

func (i *Interpreter) typeOf(node ast.Node) types.Type {
	t, _ := reactor.GetAs[types.Type](i.reactor, node, semantic.AttrType)
	return t
}

func (i *Interpreter) declOf(node ast.Node) ast.Decl {
	d, _ := reactor.GetAs[ast.Decl](i.reactor, node, semantic.AttrDecl)
	return d
}

func (i *Interpreter) scopeOfDecl(node ast.Node) *scope.Scope {
	v, ok := i.reactor.Get(node, semantic.AttrScope)
	if !ok {
		return nil
	}
	switch s := v.(type) {
	case *scope.Scope:
		return s
	case *scope.ClassScope:
		return s.Scope
	default:
		return nil
	}
}

func (i *Interpreter) declaredClassType(cd *ast.ClassDecl) *types.ClassType {
	t, _ := reactor.GetAs[*types.ClassType](i.reactor, cd, semantic.AttrDeclared)
	return t
}

func (i *Interpreter) declaredStructType(sd *ast.StructDecl) *types.StructType {
	t, _ := reactor.GetAs[*types.StructType](i.reactor, sd, semantic.AttrDeclared)
	return t
}

func (i *Interpreter) threadIndexOf(fn *ast.FunDecl) (uint64, bool) {
	return reactor.GetAs[uint64](i.reactor, fn, semantic.AttrThreadIndex)
}
