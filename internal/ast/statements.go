package ast

import (
	"fmt"
	"strings"

	"github.com/cdelzotti/sigh/internal/token"
)

// Block is `{ stmt; stmt; ... }`, a scope-introducing statement sequence
//.
type Block struct {
	StartPos   token.Position
	Statements []Stmt
}

func (b *Block) Pos() token.Position { return b.StartPos }
func (b *Block) stmtNode()           {}
func (b *Block) String() string {
	parts := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		parts[i] = s.String()
	}
	return fmt.Sprintf("{ %s }", strings.Join(parts, " "))
}

// VarDeclStmt lifts a VarDecl into statement position (a local variable
// declaration inside a function/method body).
type VarDeclStmt struct {
	Decl *VarDecl
}

func (s *VarDeclStmt) Pos() token.Position { return s.Decl.Pos() }
func (s *VarDeclStmt) stmtNode()           {}
func (s *VarDeclStmt) String() string      { return s.Decl.String() }

// ExprStmt is an expression evaluated for effect (e.g. a bare function
// call or method call).
type ExprStmt struct {
	StartPos   token.Position
	Expression Expr
}

func (s *ExprStmt) Pos() token.Position { return s.StartPos }
func (s *ExprStmt) stmtNode()           {}
func (s *ExprStmt) String() string      { return s.Expression.String() + ";" }

// Assign is `lhs = rhs;`. The LHS must be a Reference, FieldAccess, or
// ArrayAccess.
type Assign struct {
	StartPos token.Position
	Target   Expr
	Value    Expr
}

func (s *Assign) Pos() token.Position { return s.StartPos }
func (s *Assign) stmtNode()           {}
func (s *Assign) String() string {
	return fmt.Sprintf("%s = %s;", s.Target, s.Value)
}

// If is `if (cond) thenBranch [else elseBranch]`. Its `returns` attribute
// is true iff both branches unconditionally return.
type If struct {
	StartPos  token.Position
	Condition Expr
	Then      *Block
	Else      *Block // nil if there is no else branch
}

func (s *If) Pos() token.Position { return s.StartPos }
func (s *If) stmtNode()           {}
func (s *If) String() string {
	if s.Else != nil {
		return fmt.Sprintf("if (%s) %s else %s", s.Condition, s.Then, s.Else)
	}
	return fmt.Sprintf("if (%s) %s", s.Condition, s.Then)
}

// While is `while (cond) body`.
type While struct {
	StartPos  token.Position
	Condition Expr
	Body      *Block
}

func (s *While) Pos() token.Position { return s.StartPos }
func (s *While) stmtNode()           {}
func (s *While) String() string {
	return fmt.Sprintf("while (%s) %s", s.Condition, s.Body)
}

// Return is `return;` or `return expr;`.
type Return struct {
	StartPos token.Position
	Value    Expr // nil for a value-less return
}

func (s *Return) Pos() token.Position { return s.StartPos }
func (s *Return) stmtNode()           {}
func (s *Return) String() string {
	if s.Value != nil {
		return fmt.Sprintf("return %s;", s.Value)
	}
	return "return;"
}

// BornStmt is `born(f)` or `born(f, v)`. Function must reference a declared
// function whose return type is Unborn<T>; Var, if present, must reference
// a declared variable of type T.
type BornStmt struct {
	StartPos token.Position
	Function *Reference
	Var      *Reference // nil for the one-argument form
}

func (s *BornStmt) Pos() token.Position { return s.StartPos }
func (s *BornStmt) stmtNode()           {}
func (s *BornStmt) String() string {
	if s.Var != nil {
		return fmt.Sprintf("born(%s, %s);", s.Function, s.Var)
	}
	return fmt.Sprintf("born(%s);", s.Function)
}
