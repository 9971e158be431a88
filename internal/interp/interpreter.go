// Package interp implements the sandboxed ES5-subset interpreter core:
// the step dispatcher, scope and call-stack management, the host bridge,
// and the standard-library built-ins. It is built from scratch in the
// idiom absorbed from github.com/cwbudde/go-dws's internal/interp
// package (functional-options configuration, an explicit error-category
// split, reflection-based host/guest marshaling, panic/recover at native
// call boundaries) but implements entirely different, ES5-dynamic
// semantics rather than DWScript's statically-typed ones.
package interp

import (
	"fmt"

	"github.com/cwbudde/go-es5ix/internal/ast"
	"github.com/cwbudde/go-es5ix/internal/jsparse"
	"github.com/cwbudde/go-es5ix/internal/object"
)

// defaultParser returns the go-fast-backed Parser used when Options
// doesn't supply one of its own (WithParser).
func defaultParser() Parser {
	return jsparse.New()
}

// Parser produces an AST from source text. The interpreter core treats
// parsing as out-of-scope and pluggable (spec.md §1: "any conforming
// parser is acceptable"); internal/jsparse supplies the default
// implementation wrapping github.com/t14raptor/go-fast.
type Parser interface {
	Parse(source string) (*ast.Program, error)
}

// Interpreter is the sandboxed ES5-subset engine: one global scope, one
// global object, a standard-prototype set, and an explicit call-Frame
// stack (spec.md §2/§3).
type Interpreter struct {
	opts Options

	global    *object.Scope
	globalObj *object.Object
	frames    []*Frame

	objectProto   *object.Object
	functionProto *object.Object
	arrayProto    *object.Object
	stringProto   *object.Object
	numberProto   *object.Object
	booleanProto  *object.Object
	errorProto    *object.Object
	errorProtos   map[string]*object.Object // TypeError, RangeError, ... keyed by name
	dateProto     *object.Object
	regexpProto   *object.Object

	program     *ast.Program // root code appended via AppendCode
	steps       int
	processedIdx int // index into program.Body the worker has consumed up to

	// worker drives execStatement/evalExpression on a dedicated goroutine
	// so Step can hand control back to the host between any two AST-node
	// steps and an async native call can genuinely park mid-evaluation
	// (spec.md §4.2/§5; see step.go).
	worker         *stepWorker
	workerState    workerState
	pauseRequested bool // set by Suspend(); consumed by the next countStep rendezvous
	runResult      object.Value
	runErr         error
}

// New constructs an Interpreter with the given options applied over
// defaultOptions, installs the standard prototypes and globals, and
// returns it ready for AppendCode/Run.
func New(options ...Option) *Interpreter {
	opts := defaultOptions()
	for _, apply := range options {
		apply(&opts)
	}
	if opts.Parser == nil {
		opts.Parser = defaultParser()
	}

	i := &Interpreter{
		opts:        opts,
		errorProtos: make(map[string]*object.Object),
		program:     &ast.Program{},
		runResult:   object.Undefined{},
	}
	i.objectProto = object.NewObject("Object", nil)
	i.global = object.NewScope(nil)
	i.globalObj = i.global.Bag
	i.globalObj.Proto = i.objectProto

	i.installBuiltins()
	i.frames = []*Frame{{Scope: i.global, This: i.globalObj, FnName: "<global>"}}
	return i
}

// NewObject implements object.NativeContext.
func (i *Interpreter) NewObject(class string, proto *object.Object) *object.Object {
	if proto == nil {
		proto = i.objectProto
	}
	return object.NewObject(class, proto)
}

// NewArray implements object.NativeContext.
func (i *Interpreter) NewArray(elements []object.Value) *object.Object {
	return object.NewArray(i.arrayProto, elements)
}

func (i *Interpreter) ObjectPrototype() *object.Object   { return i.objectProto }
func (i *Interpreter) ArrayPrototype() *object.Object    { return i.arrayProto }
func (i *Interpreter) FunctionPrototype() *object.Object { return i.functionProto }

// Throw implements object.NativeContext: it builds a guest Error-class
// instance of the given name and returns it as a Go error, which
// callNative recognizes and turns into a thrown guest exception.
func (i *Interpreter) Throw(name, message string) error {
	return &GuestError{Value: i.newErrorObject(name, message)}
}

func (i *Interpreter) trace(format string, args ...any) {
	if i.opts.Trace == nil {
		return
	}
	fmt.Fprintf(i.opts.Trace, format+"\n", args...)
}

func (i *Interpreter) topFrame() *Frame { return i.frames[len(i.frames)-1] }

func (i *Interpreter) pushFrame(f *Frame) error {
	if len(i.frames) >= defaultMaxCallDepth {
		return &HostError{Guest: newGuestError(i.frames, i.newErrorObject("RangeError", "Maximum call stack size exceeded"))}
	}
	i.frames = append(i.frames, f)
	return nil
}

func (i *Interpreter) popFrame() {
	i.frames = i.frames[:len(i.frames)-1]
}

// AppendCode parses source with the configured Parser and appends its
// top-level statements to the program's root Program node (spec.md §6.2
// AppendCode), hoisting their declarations into the global scope, so a
// host may feed code incrementally across Run/Step calls.
func (i *Interpreter) AppendCode(source string) error {
	prog, err := i.opts.Parser.Parse(source)
	if err != nil {
		return &HostError{Guest: &GuestError{Value: i.newErrorObject("SyntaxError", err.Error())}}
	}
	i.hoist(i.global, prog.Body)
	i.program.Body = append(i.program.Body, prog.Body...)
	return nil
}

// Run is implemented in step.go, driving the worker goroutine through
// Step() until completion or an async suspension (spec.md §6.2 Run/run()).

// stepBudgetExceeded reports whether more steps have run than the
// configured budget allows (a MaxSteps of 0 or less means "no limit").
func (i *Interpreter) stepBudgetExceeded() bool {
	if i.opts.MaxSteps <= 0 {
		return false
	}
	return i.steps > i.opts.MaxSteps
}

// countStep is the step dispatcher's per-node rendezvous point (spec.md
// §4.2): called once per statement and once per while-loop iteration, it first
// enforces the step budget, then — if a worker goroutine is driving this
// walk (i.e. Step()/Run() rather than a direct unit-test call) — hands
// control back to the host and blocks until the host grants the next step,
// exactly the way spec.md §6.2's step() is meant to behave.
func (i *Interpreter) countStep() error {
	i.steps++
	if i.stepBudgetExceeded() {
		return &HostError{Guest: newGuestError(i.frames, i.newErrorObject("RangeError", "step budget exceeded"))}
	}
	if i.worker == nil {
		return nil
	}
	kind := outcomeStepped
	if i.pauseRequested {
		i.pauseRequested = false
		kind = outcomeAsyncPaused
	}
	i.worker.pause(kind)
	return nil
}
