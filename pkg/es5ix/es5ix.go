// Package es5ix is the public host-facing facade over internal/interp,
// mirroring the role of the teacher's pkg/dwscript: an Engine a host
// embeds, configures with functional options, feeds source to, and
// exchanges values with through a narrow Go-native surface rather than
// the engine's own guest-value representation.
package es5ix

import (
	"io"

	"github.com/cwbudde/go-es5ix/internal/interp"
	"github.com/cwbudde/go-es5ix/internal/object"
)

// Option configures an Engine at construction, re-exporting
// internal/interp's functional options under the public package.
type Option = interp.Option

var (
	WithOutput       = interp.WithOutput
	WithTrace        = interp.WithTrace
	WithRegexpMode   = interp.WithRegexpMode
	WithRegexpTimeout = interp.WithRegexpTimeout
	WithMaxSteps     = interp.WithMaxSteps
	WithConsole      = interp.WithConsole
)

// RegexpMode re-exports spec.md §6.3 REGEXP_MODE's three values.
type RegexpMode = interp.RegexpMode

const (
	RegexpReject    = interp.RegexpReject
	RegexpNative    = interp.RegexpNative
	RegexpSandboxed = interp.RegexpSandboxed
)

// Value is the host-facing read handle onto a guest value: a thin
// wrapper so callers outside internal/object never import that package
// directly, matching the teacher's own host-facing Value type in
// pkg/dwscript.
type Value struct {
	raw object.Value
	eng *Engine
}

// Native converts this value into a plain Go value with no particular
// target shape in mind (numbers become float64, arrays become []any,
// objects become map[string]any).
func (v Value) Native() any {
	if v.raw == nil {
		return nil
	}
	return v.eng.i.NativeValueToAny(v.raw)
}

// String renders the value the way the guest's own ToString would.
func (v Value) String() string {
	if v.raw == nil {
		return "undefined"
	}
	return v.raw.String()
}

// Engine is a single sandboxed ES5-subset interpreter instance.
type Engine struct {
	i *interp.Interpreter
}

// New constructs an Engine with the given options layered over the
// engine's defaults (spec.md §1.3/§6.2).
func New(options ...Option) *Engine {
	return &Engine{i: interp.New(options...)}
}

// LoadOptionsFile parses a YAML options document (SPEC_FULL.md §1.3) into
// a slice of Option values usable with New.
func LoadOptionsFile(doc []byte) ([]Option, error) {
	return interp.LoadOptions(doc)
}

// SetOutput redirects console.log/console.error output after
// construction; hosts that want this at construction time should prefer
// WithOutput.
func (e *Engine) SetOutput(w io.Writer) {
	e.i.SetOutput(w)
}

// AppendCode parses source and appends it to the engine's program
// without running it — lets a host build up a multi-chunk script before
// the first Run (spec.md §6.2 AppendCode).
func (e *Engine) AppendCode(source string) error {
	return e.i.AppendCode(source)
}

// Eval appends source and runs the whole accumulated program to
// completion, returning the completion value of the last statement
// executed (spec.md §6.2 Run), mirroring the teacher's Engine.Eval.
func (e *Engine) Eval(source string) (Value, error) {
	if err := e.i.AppendCode(source); err != nil {
		return Value{}, err
	}
	v, err := e.i.Run()
	if err != nil {
		return Value{}, err
	}
	return Value{raw: v, eng: e}, nil
}

// Run executes whatever code has been appended so far (via AppendCode or
// a prior Eval) without parsing anything new, stepping until completion or
// until an async native call suspends it (spec.md §6.2 run()).
func (e *Engine) Run() (Value, error) {
	v, err := e.i.Run()
	if err != nil {
		return Value{}, err
	}
	return Value{raw: v, eng: e}, nil
}

// Step advances the engine to its next user-code step or completion,
// returning whether further work remains (spec.md §6.2 step()).
func (e *Engine) Step() (bool, error) {
	return e.i.Step()
}

// Suspend/Resume/Paused expose the cooperative-concurrency hooks an async
// native function uses (spec.md §5 "cooperative concurrency"): Suspend asks
// the engine to pause at its next step boundary, Resume/ResumeValue continue
// a paused engine (delivering a value to a parked async call), ResumeError
// delivers a thrown error instead, and Paused reports whether the engine is
// currently parked.
func (e *Engine) Suspend()               { e.i.Suspend() }
func (e *Engine) Resume() (bool, error)  { return e.i.Resume() }
func (e *Engine) Paused() bool           { return e.i.Paused() }

// ResumeValue delivers v as the result of whichever async native call is
// currently parked and continues stepping.
func (e *Engine) ResumeValue(v any) (bool, error) {
	guestV, err := e.i.NativeToPseudo(v)
	if err != nil {
		return false, err
	}
	return e.i.ResumeValue(guestV)
}

// ResumeError delivers err so the parked async native call throws it as a
// guest exception.
func (e *Engine) ResumeError(err error) (bool, error) {
	return e.i.ResumeError(err)
}

// RegisterFunction exposes a Go function to guest code under name,
// marshaling arguments and the return value through the host↔guest
// bridge (spec.md §4.5), mirroring the teacher's Engine.RegisterFunction.
func (e *Engine) RegisterFunction(name string, fn any) error {
	return e.i.RegisterNativeFunction(name, fn)
}

// SetGlobal assigns a Go value onto the global object under name,
// converting it through NativeToPseudo.
func (e *Engine) SetGlobal(name string, v any) error {
	return e.i.SetGlobal(name, v)
}

// GetGlobal reads a global property back out as a host Value.
func (e *Engine) GetGlobal(name string) (Value, error) {
	v, err := e.i.GetGlobal(name)
	if err != nil {
		return Value{}, err
	}
	return Value{raw: v, eng: e}, nil
}
