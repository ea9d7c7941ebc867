// Package types implements the Sigh type model: a closed set of type
// kinds with structural equality for composites and a nominal-plus-
// structural equality for classes.
//
// Grounded on github.com/cwbudde/go-dws's internal/types (a `Type`
// interface with concrete kinds and an `AssignableTo`-style compatibility
// check), trimmed to Sigh's much smaller closed kind set: no sets, records,
// enums, subranges, interfaces or function pointers.
package types

import (
	"fmt"
	"strings"
)

// Type is implemented by every type-model value. Two Types are Equal iff
// their variant and structural contents match.
type Type interface {
	// Kind identifies which variant this Type is.
	Kind() Kind
	// String renders the type the way it would appear in a diagnostic.
	String() string
	// Equal reports structural equality with other.
	Equal(other Type) bool
}

// Kind enumerates the closed set of type variants.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindString
	KindVoid
	KindNull
	KindType
	KindAuto
	KindArray
	KindUnborn
	KindFun
	KindStruct
	KindClass
)

// primitive is the shared implementation of the eight singleton kinds.
// Primitives, String, and Type are compared by value at runtime; everything else (arrays, Unborn, Fun, Struct, Class) is a
// reference type compared by identity for `==`/`!=`.
type primitive struct {
	kind Kind
	name string
}

func (p *primitive) Kind() Kind     { return p.kind }
func (p *primitive) String() string { return p.name }
func (p *primitive) Equal(other Type) bool {
	o, ok := other.(*primitive)
	return ok && o.kind == p.kind
}

// Singleton instances for the primitive and sentinel kinds.
var (
	Int      Type = &primitive{KindInt, "Int"}
	Float    Type = &primitive{KindFloat, "Float"}
	Bool     Type = &primitive{KindBool, "Bool"}
	String   Type = &primitive{KindString, "String"}
	Void     Type = &primitive{KindVoid, "Void"}
	Null     Type = &primitive{KindNull, "Null"}
	TypeType Type = &primitive{KindType, "Type"}
	AutoType Type = &primitive{KindAuto, "Auto"}
)

// IsReference reports whether t is compared by identity at runtime rather
// than by value.
func IsReference(t Type) bool {
	switch t.Kind() {
	case KindInt, KindFloat, KindBool, KindString, KindType:
		return false
	default:
		return true
	}
}

// ArrayType is Array(T): a homogeneous array of T.
type ArrayType struct {
	Elem Type
}

func (t *ArrayType) Kind() Kind     { return KindArray }
func (t *ArrayType) String() string { return t.Elem.String() + "[]" }
func (t *ArrayType) Equal(other Type) bool {
	o, ok := other.(*ArrayType)
	return ok && t.Elem.Equal(o.Elem)
}

// UnbornType is Unborn(T): the declared return type of an asynchronous
// function.
type UnbornType struct {
	Inner Type
}

func (t *UnbornType) Kind() Kind     { return KindUnborn }
func (t *UnbornType) String() string { return fmt.Sprintf("Unborn<%s>", t.Inner) }
func (t *UnbornType) Equal(other Type) bool {
	o, ok := other.(*UnbornType)
	return ok && t.Inner.Equal(o.Inner)
}

// FunType is Fun(ret, params...): a function signature.
type FunType struct {
	Return Type
	Params []Type
}

func (t *FunType) Kind() Kind { return KindFun }
func (t *FunType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Return)
}
func (t *FunType) Equal(other Type) bool {
	o, ok := other.(*FunType)
	if !ok || len(t.Params) != len(o.Params) || !t.Return.Equal(o.Return) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equal(o.Params[i]) {
			return false
		}
	}
	return true
}

// StructField is one insertion-ordered field of a StructType.
type StructField struct {
	Name string
	Type Type
}

// StructType is Struct(name, ordered-fields).
type StructType struct {
	Name   string
	Fields []StructField
}

func (t *StructType) Kind() Kind     { return KindStruct }
func (t *StructType) String() string { return t.Name }
func (t *StructType) Equal(other Type) bool {
	o, ok := other.(*StructType)
	if !ok || t.Name != o.Name || len(t.Fields) != len(o.Fields) {
		return false
	}
	for i := range t.Fields {
		if t.Fields[i].Name != o.Fields[i].Name || !t.Fields[i].Type.Equal(o.Fields[i].Type) {
			return false
		}
	}
	return true
}

// FieldType looks up a struct field's type by name.
func (t *StructType) FieldType(name string) (Type, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// ConstructorFieldTypes returns the field types in declaration order, the
// parameter list of the struct's synthesized constructor function.
func (t *StructType) ConstructorFieldTypes() []Type {
	out := make([]Type, len(t.Fields))
	for i, f := range t.Fields {
		out[i] = f.Type
	}
	return out
}

// ClassType is Class(name, fields) where fields includes methods and the
// synthetic `<constructor>`.
type ClassType struct {
	Name   string
	Parent *ClassType // nil for a root class
	// Fields maps every member name (including "<constructor>") to its type.
	// Field order doesn't matter for equality, but the interpreter needs declaration order for
	// initialization, so that order is kept on the ClassDecl AST node
	// instead of here.
	Fields map[string]Type
}

func (t *ClassType) Kind() Kind     { return KindClass }
func (t *ClassType) String() string { return t.Name }

// Equal for ClassType is nominal: two ClassTypes are Equal iff they are
// literally the same declared class (same Name). Structural
// interchangeability between *different* classes is CanBeAssignedWith, not
// Equal.
func (t *ClassType) Equal(other Type) bool {
	o, ok := other.(*ClassType)
	return ok && t.Name == o.Name
}

// FieldType looks up a field or method type by name, including inherited
// ones (since Fields is pre-merged by the analyzer's ancestor walk).
func (t *ClassType) FieldType(name string) (Type, bool) {
	ty, ok := t.Fields[name]
	return ty, ok
}

// Constructor returns the class's synthetic `<constructor>` function type.
func (t *ClassType) Constructor() *FunType {
	if ty, ok := t.Fields["<constructor>"]; ok {
		if ft, ok := ty.(*FunType); ok {
			return ft
		}
	}
	return nil
}
