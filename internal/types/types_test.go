package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrimitiveEquality(t *testing.T) {
	if !Int.Equal(Int) {
		t.Fatal("Int should equal itself")
	}
	if Int.Equal(Float) {
		t.Fatal("Int should not equal Float")
	}
}

func TestArrayTypeStructuralEquality(t *testing.T) {
	a := &ArrayType{Elem: Int}
	b := &ArrayType{Elem: Int}
	c := &ArrayType{Elem: Float}

	if !a.Equal(b) {
		t.Fatal("Array(Int) should equal a distinct Array(Int)")
	}
	if a.Equal(c) {
		t.Fatal("Array(Int) should not equal Array(Float)")
	}
}

func TestUnbornTypeStructuralEquality(t *testing.T) {
	a := &UnbornType{Inner: Int}
	b := &UnbornType{Inner: Int}
	if !a.Equal(b) {
		t.Fatal("Unborn(Int) should equal a distinct Unborn(Int)")
	}
}

func TestStructTypeEqualityIgnoresInstance(t *testing.T) {
	a := &StructType{Name: "Point", Fields: []StructField{{"x", Int}, {"y", Int}}}
	b := &StructType{Name: "Point", Fields: []StructField{{"x", Int}, {"y", Int}}}

	// Type implements an Equal(Type) bool method, which go-cmp picks up
	// automatically, the way sunholo-data-ailang's test suite compares
	// type-system structures without a custom Comparer.
	if diff := cmp.Diff(a.Fields, b.Fields); diff != "" {
		t.Fatalf("unexpected diff (-want +got):\n%s", diff)
	}
	if !a.Equal(b) {
		t.Fatal("structurally identical StructTypes should be Equal")
	}
}

func TestClassTypeEqualityIsNominal(t *testing.T) {
	a := &ClassType{Name: "Foo", Fields: map[string]Type{"x": Int}}
	b := &ClassType{Name: "Bar", Fields: map[string]Type{"x": Int}}
	if a.Equal(b) {
		t.Fatal("classes with different names should not be Equal even with identical fields")
	}
}

func TestAssignabilityWidening(t *testing.T) {
	if !AssignableTo(Int, Float) {
		t.Fatal("Int should be assignable to Float")
	}
	if AssignableTo(Float, Int) {
		t.Fatal("Float should not be assignable to Int")
	}
}

func TestAssignabilityVoidNeverAssigns(t *testing.T) {
	if AssignableTo(Void, Int) || AssignableTo(Int, Void) {
		t.Fatal("Void should never be assignable, either direction")
	}
}

func TestAssignabilityAutoAcceptsAnything(t *testing.T) {
	if !AssignableTo(AutoType, Int) {
		t.Fatal("Auto on the right of AssignableTo should accept anything")
	}
}

func TestAssignabilityNullToReferenceOnly(t *testing.T) {
	arr := &ArrayType{Elem: Int}
	if !AssignableTo(Null, arr) {
		t.Fatal("Null should assign to a reference type (Array)")
	}
	if AssignableTo(Null, Int) {
		t.Fatal("Null should not assign to a primitive type")
	}
}

func TestCommonSupertypeIsCommutative(t *testing.T) {
	a, b := Int, Float
	supAB, okAB := CommonSupertype(a, b)
	supBA, okBA := CommonSupertype(b, a)
	if !okAB || !okBA {
		t.Fatal("CommonSupertype(Int, Float) should be defined both ways")
	}
	if !supAB.Equal(supBA) {
		t.Fatalf("CommonSupertype should be commutative: %v vs %v", supAB, supBA)
	}
	if supAB.Kind() != KindFloat {
		t.Fatalf("common supertype of Int and Float should be Float, got %v", supAB)
	}
}

func TestCommonSupertypeUndefinedForUnrelatedTypes(t *testing.T) {
	if _, ok := CommonSupertype(Bool, String); ok {
		t.Fatal("Bool and String have no common supertype")
	}
}

func TestClassShapeCompatibility(t *testing.T) {
	shape := map[string]Type{"x": Int, "y": Int, "<constructor>": &FunType{Return: Void}}
	target := &ClassType{Name: "Point2D", Fields: shape}

	source := &ClassType{Name: "Vector", Fields: map[string]Type{
		"x": Int, "y": Int, "z": Int, "<constructor>": &FunType{Return: Void},
	}}

	ok, problems := CanBeAssignedWith(target, source)
	if !ok {
		t.Fatalf("Vector should be shape-compatible with Point2D, problems: %v", problems)
	}
}

func TestClassShapeCompatibilityMissingField(t *testing.T) {
	target := &ClassType{Name: "Point2D", Fields: map[string]Type{"x": Int, "y": Int}}
	source := &ClassType{Name: "OneD", Fields: map[string]Type{"x": Int}}

	ok, problems := CanBeAssignedWith(target, source)
	if ok {
		t.Fatal("OneD is missing field 'y' and should not be shape-compatible")
	}
	if len(problems) != 1 {
		t.Fatalf("expected exactly one problem, got %v", problems)
	}
}

func TestClassShapeCompatibilityIgnoresConstructor(t *testing.T) {
	target := &ClassType{Name: "A", Fields: map[string]Type{"<constructor>": &FunType{Return: Void, Params: []Type{Int}}}}
	source := &ClassType{Name: "B", Fields: map[string]Type{"<constructor>": &FunType{Return: Void}}}

	ok, problems := CanBeAssignedWith(target, source)
	if !ok {
		t.Fatalf("constructor signature mismatch should not block shape compatibility, problems: %v", problems)
	}
}

func TestClassShapeCompatibilityRejectsNonClass(t *testing.T) {
	target := &ClassType{Name: "A", Fields: map[string]Type{"x": Int}}
	if ok, _ := CanBeAssignedWith(target, Int); ok {
		t.Fatal("a non-class value should never be shape-compatible")
	}
}
