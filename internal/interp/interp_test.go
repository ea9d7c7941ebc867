package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cdelzotti/sigh/internal/lexer"
	"github.com/cdelzotti/sigh/internal/parser"
	"github.com/cdelzotti/sigh/internal/semantic"
)

// runSource lexes, parses, analyzes and executes src, failing the test on
// any lex/parse/semantic error, and returns stdout and the runtime error
// value (if any). Grounded on go-dws's fixture_test.go helper shape, trimmed
// to this package's (Value, *ErrorValue) idiom instead of go-dws's plain
// error.
func runSource(t *testing.T, src string) (string, *ErrorValue) {
	t.Helper()
	l := lexer.New(src)
	root, perrs := parser.ParseProgram(l)
	if len(l.Errors()) != 0 {
		t.Fatalf("lexer errors: %v", l.Errors())
	}
	if len(perrs) != 0 {
		t.Fatalf("parser errors: %v", perrs)
	}

	a := semantic.New()
	res := a.Analyze(root)
	if len(res.Errors) != 0 {
		t.Fatalf("semantic errors: %v", res.Errors)
	}

	var out bytes.Buffer
	i := New(a, root, &out)
	errVal := i.Run(root)
	return out.String(), errVal
}

func TestPrintStringConcatWithNonString(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`print("" + 41);`, "41\n"},
		{`print(41 + "");`, "41\n"},
		{`print("x=" + 1 + "");`, "x=1\n"},
		{`print("" + true);`, "true\n"},
	}
	for _, tt := range tests {
		out, errVal := runSource(t, tt.src)
		if errVal != nil {
			t.Fatalf("%s: unexpected runtime error: %s", tt.src, errVal.Message)
		}
		if out != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.src, tt.want, out)
		}
	}
}

func TestClassInheritedMethodCall(t *testing.T) {
	out, errVal := runSource(t, `
class FatherClass {
	fun FatherClass() {}
	fun printHello() {
		print("Hello");
	}
}
class MyClass sonOf FatherClass {
}
var instance: MyClass = MyClass();
instance.printHello();
`)
	if errVal != nil {
		t.Fatalf("unexpected runtime error: %s", errVal.Message)
	}
	if out != "Hello\n" {
		t.Fatalf("expected %q, got %q", "Hello\n", out)
	}
}

func TestDaddyCallInvokesParentBody(t *testing.T) {
	out, errVal := runSource(t, `
class Base {
	a: Int;
	fun Base() {}
	fun setA(value: Int) {
		a = value;
	}
}
class Derived sonOf Base {
	fun setA(value: Int) {
		Daddy(value);
	}
}
var instance: Derived = Derived();
instance.setA(12);
print("" + instance.a);
`)
	if errVal != nil {
		t.Fatalf("unexpected runtime error: %s", errVal.Message)
	}
	if out != "12\n" {
		t.Fatalf("expected %q, got %q", "12\n", out)
	}
}

func TestAsyncBornJoinsSpawnedResult(t *testing.T) {
	out, errVal := runSource(t, `
fun computeAnswer(): Unborn<Int> {
	var v: Int = 41;
	return v;
}
computeAnswer();
var x: Int;
born(computeAnswer, x);
print("" + (x + 1));
`)
	if errVal != nil {
		t.Fatalf("unexpected runtime error: %s", errVal.Message)
	}
	if out != "42\n" {
		t.Fatalf("expected %q, got %q", "42\n", out)
	}
}

func TestTracerReceivesSpawnAndJoinLines(t *testing.T) {
	l := lexer.New(`
fun computeAnswer(): Unborn<Int> {
	return 1;
}
computeAnswer();
var x: Int;
born(computeAnswer, x);
`)
	root, perrs := parser.ParseProgram(l)
	if len(perrs) != 0 {
		t.Fatalf("parser errors: %v", perrs)
	}
	a := semantic.New()
	res := a.Analyze(root)
	if len(res.Errors) != 0 {
		t.Fatalf("semantic errors: %v", res.Errors)
	}

	var out bytes.Buffer
	var traced []string
	i := New(a, root, &out)
	i.SetTracer(func(line string) { traced = append(traced, line) })
	if errVal := i.Run(root); errVal != nil {
		t.Fatalf("unexpected runtime error: %s", errVal.Message)
	}

	if len(traced) == 0 {
		t.Fatal("expected at least one traced line")
	}
	joined := strings.Join(traced, "\n")
	if !strings.Contains(joined, "spawn computeAnswer") {
		t.Fatalf("expected a spawn trace line, got: %v", traced)
	}
	if !strings.Contains(joined, "born computeAnswer") {
		t.Fatalf("expected a born trace line, got: %v", traced)
	}
}

func TestArrayOutOfBoundsIsRuntimeError(t *testing.T) {
	_, errVal := runSource(t, `
var arr: Int[] = [1, 2, 3];
print("" + arr[5]);
`)
	if errVal == nil {
		t.Fatal("expected a runtime error for an out-of-bounds array access")
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	_, errVal := runSource(t, `
var a: Int = 1;
var b: Int = 0;
print("" + (a / b));
`)
	if errVal == nil {
		t.Fatal("expected a runtime error for division by zero")
	}
}
