package reactor

import (
	"testing"

	"github.com/cdelzotti/sigh/internal/ast"
)

func TestSetThenGet(t *testing.T) {
	r := New()
	n := &ast.IntLiteral{}
	r.Set(n, "type", "Int")

	v, ok := r.Get(n, "type")
	if !ok || v != "Int" {
		t.Fatalf("Get = %v, %v; want Int, true", v, ok)
	}
}

func TestGetMissingIsNotOk(t *testing.T) {
	r := New()
	n := &ast.IntLiteral{}
	if _, ok := r.Get(n, "type"); ok {
		t.Fatal("Get on unset attribute should not be ok")
	}
}

func TestRuleFiresImmediatelyWhenInputsPresent(t *testing.T) {
	r := New()
	n := &ast.IntLiteral{}
	r.Set(n, "a", 1)

	fired := false
	r.Rule(nil, []AttrRef{{n, "a"}}, func() { fired = true })
	if !fired {
		t.Fatal("rule should fire immediately when its input is already present")
	}
}

func TestRuleFiresOnceAllInputsArrive(t *testing.T) {
	r := New()
	n := &ast.IntLiteral{}

	var sum int
	r.Rule(nil, []AttrRef{{n, "a"}, {n, "b"}}, func() {
		a, _ := r.Get(n, "a")
		b, _ := r.Get(n, "b")
		sum = a.(int) + b.(int)
	})

	r.Set(n, "a", 1)
	if sum != 0 {
		t.Fatal("rule fired before all inputs were available")
	}
	r.Set(n, "b", 2)
	if sum != 3 {
		t.Fatalf("sum = %d; want 3", sum)
	}
}

func TestErrorForPoisonsAndUnblocksWaiters(t *testing.T) {
	r := New()
	n := &ast.IntLiteral{}

	ran := false
	sawOk := true
	r.Rule(nil, []AttrRef{{n, "type"}}, func() {
		ran = true
		_, ok := r.Get(n, "type")
		sawOk = ok
	})

	r.ErrorFor(n, "could not resolve %s", []any{"x"}, "type")

	if !ran {
		t.Fatal("poisoning an input should still unblock a waiting rule")
	}
	if sawOk {
		t.Fatal("Get on a poisoned attribute should report ok=false")
	}
	if len(r.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(r.Errors()))
	}
}

func TestFinishReportsStuckRules(t *testing.T) {
	r := New()
	n := &ast.IntLiteral{}
	r.Rule(nil, []AttrRef{{n, "never"}}, func() {})

	errs := r.Finish()
	if len(errs) != 1 {
		t.Fatalf("expected 1 stuck-rule error, got %d", len(errs))
	}
}

func TestGetAsTypedWrapper(t *testing.T) {
	r := New()
	n := &ast.IntLiteral{}
	r.Set(n, "count", 42)

	v, ok := GetAs[int](r, n, "count")
	if !ok || v != 42 {
		t.Fatalf("GetAs[int] = %d, %v; want 42, true", v, ok)
	}

	if _, ok := GetAs[string](r, n, "count"); ok {
		t.Fatal("GetAs with wrong type should not be ok")
	}
}
