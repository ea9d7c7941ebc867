package ast

import (
	"fmt"
	"strings"

	"github.com/cdelzotti/sigh/internal/token"
)

// VarDecl is `var name: Type = init;` or `var name: Type;`.
type VarDecl struct {
	StartPos    token.Position
	Name        string
	Annotation  TypeExpr // nil means the declared type is Auto
	Initializer Expr
}

func (d *VarDecl) Pos() token.Position { return d.StartPos }
func (d *VarDecl) declNode()           {}
func (d *VarDecl) String() string {
	if d.Initializer != nil {
		return fmt.Sprintf("var %s: %s = %s;", d.Name, annotationString(d.Annotation), d.Initializer)
	}
	return fmt.Sprintf("var %s: %s;", d.Name, annotationString(d.Annotation))
}

func annotationString(t TypeExpr) string {
	if t == nil {
		return "Auto"
	}
	return t.String()
}

// FieldDecl is a field inside a struct or class declaration.
type FieldDecl struct {
	StartPos   token.Position
	Name       string
	Annotation TypeExpr
}

func (d *FieldDecl) Pos() token.Position { return d.StartPos }
func (d *FieldDecl) declNode()           {}
func (d *FieldDecl) String() string {
	return fmt.Sprintf("%s: %s", d.Name, annotationString(d.Annotation))
}

// ParameterDecl is a single function/method parameter.
type ParameterDecl struct {
	StartPos   token.Position
	Name       string
	Annotation TypeExpr
}

func (d *ParameterDecl) Pos() token.Position { return d.StartPos }
func (d *ParameterDecl) declNode()           {}
func (d *ParameterDecl) String() string {
	return fmt.Sprintf("%s: %s", d.Name, annotationString(d.Annotation))
}

// FunDecl is a free function declaration. MethodDeclaration refines this node; see MethodDecl below.
type FunDecl struct {
	StartPos   token.Position
	Name       string
	Params     []*ParameterDecl
	ReturnType TypeExpr // nil means Void
	Body       *Block
}

func (d *FunDecl) Pos() token.Position { return d.StartPos }
func (d *FunDecl) declNode()           {}
func (d *FunDecl) String() string {
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		parts[i] = p.String()
	}
	ret := "Void"
	if d.ReturnType != nil {
		ret = d.ReturnType.String()
	}
	return fmt.Sprintf("fun %s(%s): %s %s", d.Name, strings.Join(parts, ", "), ret, d.Body)
}

// MethodDecl is a function declared inside a class body. ParentMethod is
// resolved by the analyzer and is nil until then or if there is no override target.
type MethodDecl struct {
	FunDecl
	Class        *ClassDecl
	ParentMethod *MethodDecl
}

// StructDecl is `struct Name { field: Type; ... }`.
type StructDecl struct {
	StartPos token.Position
	Name     string
	Fields   []*FieldDecl // insertion-ordered; field order is part of the struct's identity
}

func (d *StructDecl) Pos() token.Position { return d.StartPos }
func (d *StructDecl) declNode()           {}
func (d *StructDecl) String() string {
	parts := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("struct %s { %s }", d.Name, strings.Join(parts, "; "))
}

// ClassMember is any declaration that can appear in a class body: a field
// or a method.
type ClassMember interface {
	Decl
	classMemberNode()
}

func (d *FieldDecl) classMemberNode()  {}
func (d *MethodDecl) classMemberNode() {}

// ClassDecl is `class Name [sonOf Parent] { members... }`.
// ParentName is the unresolved parent class name from source; the analyzer
// resolves it to an ancestor ClassDecl.
type ClassDecl struct {
	StartPos   token.Position
	Name       string
	ParentName *string
	Members    []ClassMember
}

func (d *ClassDecl) Pos() token.Position { return d.StartPos }
func (d *ClassDecl) declNode()           {}
func (d *ClassDecl) String() string {
	parts := make([]string, len(d.Members))
	for i, m := range d.Members {
		parts[i] = m.String()
	}
	if d.ParentName != nil {
		return fmt.Sprintf("class %s sonOf %s { %s }", d.Name, *d.ParentName, strings.Join(parts, " "))
	}
	return fmt.Sprintf("class %s { %s }", d.Name, strings.Join(parts, " "))
}

// SyntheticDecl represents a built-in binding with no corresponding source
// construct: `print`, the primitive type names, and the identifiers
// `true`, `false`, `null`. ConstValue, when non-nil, is the
// fixed runtime value a Reference to this declaration evaluates to (used
// for true/false/null); it is nil for print and the type names.
type SyntheticDecl struct {
	Name       string
	ConstValue any
}

func (d *SyntheticDecl) Pos() token.Position { return token.Position{} }
func (d *SyntheticDecl) declNode()           {}
func (d *SyntheticDecl) String() string      { return d.Name }
