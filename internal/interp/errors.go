package interp

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-es5ix/internal/object"
)

// GuestError is a guest-catchable exception in flight: the thrown value
// (almost always an Error-class object, but the guest may `throw` any
// value) plus the call-stack description captured at the raise site,
// mirroring the teacher's ExceptionValue/errors.StackTrace split
// (internal/interp/exceptions.go, internal/errors/stack_trace.go)
// re-pointed at ES5's untyped throw instead of DWScript's class-based
// raise.
type GuestError struct {
	Value object.Value
	Stack []string
}

func (e *GuestError) Error() string {
	return fmt.Sprintf("uncaught exception: %s", object.Inspect(e.Value))
}

func newGuestError(frames []*Frame, value object.Value) *GuestError {
	stack := make([]string, 0, len(frames))
	for i := len(frames) - 1; i >= 0; i-- {
		stack = append(stack, frames[i].Describe())
	}
	return &GuestError{Value: value, Stack: stack}
}

// HostError is what escapes Run/Step when a guest exception unwinds past
// the root frame (spec.md §7): it wraps the GuestError so a Go host can
// `errors.As` down to the original thrown value while still getting a
// readable Error() string.
type HostError struct {
	Guest *GuestError
}

func (e *HostError) Error() string {
	var sb strings.Builder
	sb.WriteString(object.Inspect(e.Guest.Value))
	for _, frame := range e.Guest.Stack {
		sb.WriteString("\n    at ")
		sb.WriteString(frame)
	}
	return sb.String()
}

func (e *HostError) Unwrap() error { return e.Guest }

// InternalError marks a programmer error in the engine itself — a
// violated invariant that no guest-visible condition should be able to
// trigger (a non-object prototype link, a pending-accessor flag left
// unconsumed, double pseudo-conversion of an already-bridged value).
// callNative recovers a panic from a native function and re-panics it
// as an *InternalError; execStatement returns one as an error for an
// unhandled statement type. Step does not recover panics.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "internal error: " + e.Msg }

func internalErrorf(format string, args ...any) *InternalError {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}

// guestErrorName/Message extract the conventional Error-object shape
// (`.name`, `.message`) from a thrown value for display purposes, when
// the thrown value happens to be an Error instance; arbitrary thrown
// primitives just render via object.Inspect.
func guestErrorNameMessage(v object.Value) (name, message string, ok bool) {
	obj, isObj := v.(*object.Object)
	if !isObj {
		return "", "", false
	}
	nameVal, hasName := obj.Get("name")
	msgVal, hasMsg := obj.Get("message")
	if !hasName && !hasMsg {
		return "", "", false
	}
	if hasName {
		name = nameVal.String()
	} else {
		name = "Error"
	}
	if hasMsg {
		message = msgVal.String()
	}
	return name, message, true
}
