package interp

import (
	"fmt"

	"github.com/cwbudde/go-es5ix/internal/ast"
	"github.com/cwbudde/go-es5ix/internal/object"
)

// Frame is one entry of the interpreter's explicit call stack (spec.md
// §3 "State stack"): the lexical scope active for a function invocation
// (or the program/eval top level), the bound `this`, and enough
// bookkeeping to render a stack-trace line. Unlike the teacher's
// recursive interp.Eval, which keeps no state stack at all (Go's own
// call stack stands in for it), this module pushes a Frame per guest
// function call specifically so Run/Step can report a stack trace and
// so recursion depth is bounded (defaultMaxCallDepth, a fixed constant)
// without relying on the Go runtime's own stack limit.
type Frame struct {
	Scope   *object.Scope
	This    object.Value
	FnName  string
	CallPos ast.Position
}

// Describe renders one stack-trace line, in the "at <fn> (<line>:<col>)"
// shape real JS engines use.
func (f *Frame) Describe() string {
	name := f.FnName
	if name == "" {
		name = "<anonymous>"
	}
	if f.CallPos.IsSynthetic() {
		return name
	}
	return fmt.Sprintf("%s (%d:%d)", name, f.CallPos.Line, f.CallPos.Column)
}

const defaultMaxCallDepth = 2000

// CompletionType classifies how a statement's evaluation finished,
// driving the non-local-control-transfer unwind of spec.md §4.3.
type CompletionType int

const (
	CompletionNormal CompletionType = iota
	CompletionBreak
	CompletionContinue
	CompletionReturn
	CompletionThrow
)

// Completion is the result of evaluating a statement: spec.md §4.3's
// unwind signal, carrying a target label for break/continue, a return
// value, or a thrown guest value.
type Completion struct {
	Type  CompletionType
	Value object.Value // meaningful for CompletionReturn and CompletionThrow
	Label string       // meaningful for CompletionBreak/CompletionContinue; "" = unlabeled
}

func normalCompletion() Completion { return Completion{Type: CompletionNormal} }

func returnCompletion(v object.Value) Completion {
	return Completion{Type: CompletionReturn, Value: v}
}

func throwCompletion(v object.Value) Completion {
	return Completion{Type: CompletionThrow, Value: v}
}

func breakCompletion(label string) Completion {
	return Completion{Type: CompletionBreak, Label: label}
}

func continueCompletion(label string) Completion {
	return Completion{Type: CompletionContinue, Label: label}
}

// isAbrupt reports whether c should stop the enclosing statement list
// from continuing to its next sibling.
func (c Completion) isAbrupt() bool { return c.Type != CompletionNormal }
