package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cdelzotti/sigh/internal/token"
)

// IntLiteral is an integer literal.
type IntLiteral struct {
	StartPos token.Position
	Value    int64
}

func (e *IntLiteral) Pos() token.Position { return e.StartPos }
func (e *IntLiteral) exprNode()           {}
func (e *IntLiteral) String() string      { return strconv.FormatInt(e.Value, 10) }

// FloatLiteral is a floating point literal.
type FloatLiteral struct {
	StartPos token.Position
	Value    float64
}

func (e *FloatLiteral) Pos() token.Position { return e.StartPos }
func (e *FloatLiteral) exprNode()           {}
func (e *FloatLiteral) String() string      { return strconv.FormatFloat(e.Value, 'g', -1, 64) }

// StringLiteral is a double-quoted string literal.
type StringLiteral struct {
	StartPos token.Position
	Value    string
}

func (e *StringLiteral) Pos() token.Position { return e.StartPos }
func (e *StringLiteral) exprNode()           {}
func (e *StringLiteral) String() string      { return strconv.Quote(e.Value) }

// Reference is an identifier used as a value. Decl and the Scope it was resolved in are analyzer
// attributes (internal/reactor), not fields on this node, since they are
// computed, not parsed.
type Reference struct {
	StartPos token.Position
	Name     string
}

func (e *Reference) Pos() token.Position { return e.StartPos }
func (e *Reference) exprNode()           {}
func (e *Reference) String() string      { return e.Name }

// ArrayLiteral is `[e1, e2, ...]`, including the empty array literal `[]`
// whose element type must be inferred from context.
type ArrayLiteral struct {
	StartPos token.Position
	Elements []Expr
}

func (e *ArrayLiteral) Pos() token.Position { return e.StartPos }
func (e *ArrayLiteral) exprNode()           {}
func (e *ArrayLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ArrayAccess is `arr[index]`.
type ArrayAccess struct {
	StartPos token.Position
	Array    Expr
	Index    Expr
}

func (e *ArrayAccess) Pos() token.Position { return e.StartPos }
func (e *ArrayAccess) exprNode()           {}
func (e *ArrayAccess) String() string      { return fmt.Sprintf("%s[%s]", e.Array, e.Index) }

// FieldAccess is `stem.field`.
type FieldAccess struct {
	StartPos token.Position
	Stem     Expr
	Field    string
}

func (e *FieldAccess) Pos() token.Position { return e.StartPos }
func (e *FieldAccess) exprNode()           {}
func (e *FieldAccess) String() string      { return fmt.Sprintf("%s.%s", e.Stem, e.Field) }

// FunCall is `callee(args...)`. Callee may resolve to a function, a class
// (instantiation via its `<constructor>`), or a method reached through a
// FieldAccess.
type FunCall struct {
	StartPos  token.Position
	Callee    Expr
	Arguments []Expr
}

func (e *FunCall) Pos() token.Position { return e.StartPos }
func (e *FunCall) exprNode()           {}
func (e *FunCall) String() string {
	parts := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee, strings.Join(parts, ", "))
}

// ConstructorExpr is `$Name(args...)`, building a struct value from a
// StructDecl named Name.
type ConstructorExpr struct {
	StartPos  token.Position
	Name      string
	Arguments []Expr
}

func (e *ConstructorExpr) Pos() token.Position { return e.StartPos }
func (e *ConstructorExpr) exprNode()           {}
func (e *ConstructorExpr) String() string {
	parts := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		parts[i] = a.String()
	}
	return fmt.Sprintf("$%s(%s)", e.Name, strings.Join(parts, ", "))
}

// BinaryExpr is a binary operator expression. Op is the textual operator
// spelling.
type BinaryExpr struct {
	StartPos token.Position
	Op       string
	Left     Expr
	Right    Expr
}

func (e *BinaryExpr) Pos() token.Position { return e.StartPos }
func (e *BinaryExpr) exprNode()           {}
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

// UnaryExpr is a prefix operator expression: `-expr` or `!expr`.
type UnaryExpr struct {
	StartPos token.Position
	Op       string
	Operand  Expr
}

func (e *UnaryExpr) Pos() token.Position { return e.StartPos }
func (e *UnaryExpr) exprNode()           {}
func (e *UnaryExpr) String() string      { return fmt.Sprintf("(%s%s)", e.Op, e.Operand) }

// DaddyCall is `Daddy(args...)`, a parent-method super-call. It may only appear inside a MethodDeclaration body.
type DaddyCall struct {
	StartPos  token.Position
	Arguments []Expr
}

func (e *DaddyCall) Pos() token.Position { return e.StartPos }
func (e *DaddyCall) exprNode()           {}
func (e *DaddyCall) String() string {
	parts := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		parts[i] = a.String()
	}
	return fmt.Sprintf("Daddy(%s)", strings.Join(parts, ", "))
}
