package interp

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/go-es5ix/internal/object"
)

func evalString(t *testing.T, source string) (string, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	i := New(WithOutput(&out), WithConsole())
	if err := i.AppendCode(source); err != nil {
		t.Fatalf("AppendCode: %v", err)
	}
	v, err := i.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v == nil {
		return "", &out
	}
	return v.String(), &out
}

func TestArithmeticAndVar(t *testing.T) {
	v, _ := evalString(t, `var a = 2; var b = 3; a * b + 1;`)
	if v != "7" {
		t.Fatalf("got %q, want 7", v)
	}
}

func TestStringConcatAndLength(t *testing.T) {
	v, _ := evalString(t, `var s = "foo" + "bar"; s.length;`)
	if v != "6" {
		t.Fatalf("got %q, want 6", v)
	}
}

func TestFunctionClosure(t *testing.T) {
	v, _ := evalString(t, `
		function makeCounter() {
			var n = 0;
			return function() { n = n + 1; return n; };
		}
		var c = makeCounter();
		c(); c(); c();
	`)
	if v != "3" {
		t.Fatalf("got %q, want 3", v)
	}
}

func TestIfElseAndLoop(t *testing.T) {
	v, _ := evalString(t, `
		var total = 0;
		for (var i = 0; i < 5; i = i + 1) {
			if (i % 2 === 0) { total = total + i; }
		}
		total;
	`)
	if v != "6" {
		t.Fatalf("got %q, want 6", v)
	}
}

func TestTryCatchThrow(t *testing.T) {
	v, _ := evalString(t, `
		var result;
		try {
			throw "boom";
		} catch (e) {
			result = "caught:" + e;
		}
		result;
	`)
	if v != "caught:boom" {
		t.Fatalf("got %q", v)
	}
}

func TestArrayMapFilterReduce(t *testing.T) {
	v, _ := evalString(t, `
		[1, 2, 3, 4].map(function(x) { return x * 2; })
			.filter(function(x) { return x > 3; })
			.reduce(function(acc, x) { return acc + x; }, 0);
	`)
	if v != "14" {
		t.Fatalf("got %q, want 14", v)
	}
}

func TestObjectLiteralAndMethod(t *testing.T) {
	v, _ := evalString(t, `
		var o = { x: 10, getX: function() { return this.x; } };
		o.getX();
	`)
	if v != "10" {
		t.Fatalf("got %q, want 10", v)
	}
}

func TestConsoleLogWritesOutput(t *testing.T) {
	_, out := evalString(t, `console.log("hello", 1, true);`)
	got := strings.TrimSpace(out.String())
	if got != "hello 1 true" {
		t.Fatalf("got %q", got)
	}
}

func TestUncaughtThrowBecomesHostError(t *testing.T) {
	i := New()
	if err := i.AppendCode(`throw new Error("nope");`); err != nil {
		t.Fatalf("AppendCode: %v", err)
	}
	_, err := i.Run()
	if err == nil {
		t.Fatalf("expected an error")
	}
	var he *HostError
	if !errors.As(err, &he) {
		t.Fatalf("expected *HostError, got %T: %v", err, err)
	}
}

func TestMaxStepsBudgetExceeded(t *testing.T) {
	i := New(WithMaxSteps(50))
	if err := i.AppendCode(`while (true) {}`); err != nil {
		t.Fatalf("AppendCode: %v", err)
	}
	_, err := i.Run()
	if err == nil {
		t.Fatalf("expected step budget error")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	v, _ := evalString(t, `
		var obj = { a: 1, b: [1, 2, 3], c: "x" };
		var text = JSON.stringify(obj);
		var back = JSON.parse(text);
		back.b[1];
	`)
	if v != "2" {
		t.Fatalf("got %q, want 2", v)
	}
}

func TestRegExpExecAndTest(t *testing.T) {
	v, _ := evalString(t, `
		var re = /a(b+)c/;
		var m = re.exec("xxabbbcxx");
		m[1];
	`)
	if v != "bbb" {
		t.Fatalf("got %q, want bbb", v)
	}
}

func TestRegExpRejectMode(t *testing.T) {
	i := New(WithRegexpMode(RegexpReject))
	if err := i.AppendCode(`/abc/.test("abc");`); err != nil {
		t.Fatalf("AppendCode: %v", err)
	}
	if _, err := i.Run(); err == nil {
		t.Fatalf("expected RegexpReject to fail construction")
	}
}

func TestAsyncSuspendAndResume(t *testing.T) {
	i := New()
	asyncFn := i.createAsyncFunction("waitForValue", 0, func(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
		// A real async native stashes a callback and returns immediately;
		// callNative is what actually parks the engine (step.go).
		return object.Undefined{}, nil
	})
	i.globalObj.SetOwnData("waitForValue", asyncFn, object.DefaultAttrs)

	if err := i.AppendCode(`var result = waitForValue(); result;`); err != nil {
		t.Fatalf("AppendCode: %v", err)
	}

	more, err := i.Step()
	for more && err == nil && !i.Paused() {
		more, err = i.Step()
	}
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !i.Paused() {
		t.Fatalf("expected the engine to be parked at the async call")
	}

	more, err = i.ResumeValue(object.Number(42))
	if err != nil {
		t.Fatalf("ResumeValue: %v", err)
	}
	for more && err == nil {
		more, err = i.Step()
	}
	if err != nil {
		t.Fatalf("Step after resume: %v", err)
	}
	if i.runResult.String() != "42" {
		t.Fatalf("got %q, want 42", i.runResult.String())
	}
}

func TestDateGetters(t *testing.T) {
	v, _ := evalString(t, `new Date(2020, 0, 15).getFullYear();`)
	if v != "2020" {
		t.Fatalf("got %q, want 2020", v)
	}
}
