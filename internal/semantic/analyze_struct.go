package semantic

import (
	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/reactor"
	"github.com/cdelzotti/sigh/internal/types"
)

// analyzeStructDecl resolves every field's annotation and builds the
// struct's `declared` StructType.
func (a *Analyzer) analyzeStructDecl(n *ast.StructDecl) {
	sc := a.scopeOf(n)
	ins := make([]reactor.AttrRef, len(n.Fields))
	for i, f := range n.Fields {
		a.resolveTypeExpr(sc, f.Annotation)
		ins[i] = reactor.AttrRef{Node: f.Annotation, Attr: AttrType}
	}

	a.reactor.Rule(
		[]reactor.AttrRef{{Node: n, Attr: AttrDeclared}},
		ins,
		func() {
			fields := make([]types.StructField, len(n.Fields))
			for i, f := range n.Fields {
				t, ok := a.reactor.Get(f.Annotation, AttrType)
				if !ok {
					a.reactor.ErrorFor(n, "struct %q has an unresolved field %q", []any{n.Name, f.Name}, AttrDeclared)
					return
				}
				fields[i] = types.StructField{Name: f.Name, Type: t.(types.Type)}
			}
			a.reactor.Set(n, AttrDeclared, &types.StructType{Name: n.Name, Fields: fields})
		},
	)
}
