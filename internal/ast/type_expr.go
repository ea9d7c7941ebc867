package ast

import (
	"fmt"

	"github.com/cdelzotti/sigh/internal/token"
)

// NamedTypeExpr is a bare type name (`Int`, `MyStruct`, `MyClass`). It is
// resolved through ordinary scope lookup exactly like a Reference: primitive
// type names are modeled as SyntheticDeclarations that live in the same
// name space as values.
type NamedTypeExpr struct {
	StartPos token.Position
	Name     string
}

func (t *NamedTypeExpr) Pos() token.Position { return t.StartPos }
func (t *NamedTypeExpr) typeExprNode()       {}
func (t *NamedTypeExpr) String() string      { return t.Name }

// ArrayTypeExpr is `Elem[]`.
type ArrayTypeExpr struct {
	StartPos token.Position
	Elem     TypeExpr
}

func (t *ArrayTypeExpr) Pos() token.Position { return t.StartPos }
func (t *ArrayTypeExpr) typeExprNode()       {}
func (t *ArrayTypeExpr) String() string      { return fmt.Sprintf("%s[]", t.Elem) }

// UnbornTypeExpr is `Unborn<Inner>`, the declared return type marker for
// asynchronous functions.
type UnbornTypeExpr struct {
	StartPos token.Position
	Inner    TypeExpr
}

func (t *UnbornTypeExpr) Pos() token.Position { return t.StartPos }
func (t *UnbornTypeExpr) typeExprNode()       {}
func (t *UnbornTypeExpr) String() string      { return fmt.Sprintf("Unborn<%s>", t.Inner) }
