package es5ix

import (
	"bytes"
	"strings"
	"testing"
)

func TestEvalReturnsCompletionValue(t *testing.T) {
	e := New()
	v, err := e.Eval(`var a = 10; var b = 20; a + b;`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.String() != "30" {
		t.Fatalf("got %q, want 30", v.String())
	}
}

func TestAppendCodeThenRun(t *testing.T) {
	e := New()
	if err := e.AppendCode(`var x = 1;`); err != nil {
		t.Fatalf("AppendCode: %v", err)
	}
	if err := e.AppendCode(`x = x + 41;`); err != nil {
		t.Fatalf("AppendCode: %v", err)
	}
	v, err := e.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.String() != "42" {
		t.Fatalf("got %q, want 42", v.String())
	}
}

func TestSetOutputCapturesConsole(t *testing.T) {
	var buf bytes.Buffer
	e := New(WithConsole())
	e.SetOutput(&buf)
	if _, err := e.Eval(`console.log("hi from guest");`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "hi from guest" {
		t.Fatalf("got %q", got)
	}
}

func TestRegisterFunctionCallableFromGuest(t *testing.T) {
	e := New()
	if err := e.RegisterFunction("addTwo", func(a, b int) int { return a + b }); err != nil {
		t.Fatalf("RegisterFunction: %v", err)
	}
	v, err := e.Eval(`addTwo(19, 23);`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.String() != "42" {
		t.Fatalf("got %q, want 42", v.String())
	}
}

func TestSetGlobalAndGetGlobal(t *testing.T) {
	e := New()
	if err := e.SetGlobal("greeting", "hello"); err != nil {
		t.Fatalf("SetGlobal: %v", err)
	}
	v, err := e.GetGlobal("greeting")
	if err != nil {
		t.Fatalf("GetGlobal: %v", err)
	}
	if v.String() != "hello" {
		t.Fatalf("got %q, want hello", v.String())
	}
}

func TestRegexpRejectOption(t *testing.T) {
	e := New(WithRegexpMode(RegexpReject))
	if _, err := e.Eval(`/abc/.test("abc");`); err == nil {
		t.Fatalf("expected RegexpReject mode to fail")
	}
}

func TestLoadOptionsFile(t *testing.T) {
	doc := []byte("regexp_mode: native\nmax_steps: 1000\nconsole: true\n")
	opts, err := LoadOptionsFile(doc)
	if err != nil {
		t.Fatalf("LoadOptionsFile: %v", err)
	}
	if len(opts) == 0 {
		t.Fatalf("expected at least one option parsed")
	}
	e := New(opts...)
	if _, err := e.Eval(`console.log("configured");`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
}
