package interp

import (
	"github.com/cwbudde/go-es5ix/internal/ast"
	"github.com/cwbudde/go-es5ix/internal/object"
)

// call invokes a callable object (guest, native, or async) with the
// given `this` and arguments, regardless of which kind it is — spec.md
// §4.5's host bridge and the interpreter's own CallExpression handling
// share this single entry point, matching the teacher's pattern of
// funneling both guest-to-guest and host-to-guest calls through one call
// path (callLambda/callFunctionPointer) rather than duplicating
// call-frame setup.
func (i *Interpreter) call(fn *object.Object, this object.Value, args []object.Value) (object.Value, *GuestError) {
	switch fn.Kind {
	case object.KindNativeFn, object.KindAsyncFn, object.KindEvalFn:
		return i.callNative(fn, this, args)
	case object.KindGuestFn:
		return i.callGuest(fn, this, args)
	default:
		return nil, &GuestError{Value: i.newErrorObject("TypeError", "object is not callable")}
	}
}

// callNative invokes a KindNativeFn/KindAsyncFn/KindEvalFn object's Go closure,
// recovering from a panic the way the teacher's
// callDWScriptFunctionSafe recovers around host callbacks — a panicking
// native implementation is an *InternalError bug in this module, not a
// guest-recoverable condition, so it is reported as such rather than
// silently swallowed.
func (i *Interpreter) callNative(fn *object.Object, this object.Value, args []object.Value) (result object.Value, gerr *GuestError) {
	data, ok := fn.Data.(*object.NativeFnData)
	if !ok {
		return nil, &GuestError{Value: i.newErrorObject("InternalError", "native function missing NativeFnData")}
	}
	defer func() {
		if r := recover(); r != nil {
			panic(internalErrorf("panic in native function %q: %v", data.Name, r))
		}
	}()
	v, err := data.Fn(i, this, args)
	if err != nil {
		if ge, ok := err.(*GuestError); ok {
			return nil, ge
		}
		return nil, &GuestError{Value: i.newErrorObject("Error", err.Error())}
	}
	if fn.Kind == object.KindAsyncFn {
		// spec.md §4.5: invoking an async native sets paused_ = true and
		// returns; data.Fn has already kicked off whatever it needs to
		// (typically stashing a callback), and the engine itself — not the
		// native function body — is what parks here until a later
		// ResumeValue/ResumeError delivers the real result.
		return i.suspendForAsyncResult()
	}
	if v == nil {
		v = object.Undefined{}
	}
	return v, nil
}

// callGuest pushes a new Frame over a guest function's body, binds
// parameters and the `arguments` object, hoists the body's own
// var/function declarations, executes it, and unwinds any Return/Throw
// completion into this call's result (spec.md §4.2).
func (i *Interpreter) callGuest(fn *object.Object, this object.Value, args []object.Value) (object.Value, *GuestError) {
	data, ok := fn.Data.(*object.GuestFnData)
	if !ok {
		return nil, &GuestError{Value: i.newErrorObject("InternalError", "guest function missing GuestFnData")}
	}
	body, ok := data.Body.(*ast.BlockStatement)
	if !ok {
		return nil, &GuestError{Value: i.newErrorObject("InternalError", "guest function body is not a BlockStatement")}
	}

	scope := object.NewScope(data.Closure)
	for idx, name := range data.Params {
		var v object.Value = object.Undefined{}
		if idx < len(args) {
			v = args[idx]
		}
		scope.Declare(name, v)
	}
	scope.Declare("arguments", i.makeArgumentsObject(args))

	frame := &Frame{Scope: scope, This: this, FnName: data.Name}
	if err := i.pushFrame(frame); err != nil {
		var he *HostError
		if hh, ok := err.(*HostError); ok {
			he = hh
		}
		if he != nil {
			return nil, he.Guest
		}
		return nil, &GuestError{Value: i.newErrorObject("RangeError", err.Error())}
	}
	defer i.popFrame()

	i.hoist(scope, body.Body)
	comp, err := i.execBlock(frame, body.Body)
	if err != nil {
		if he, ok := err.(*HostError); ok {
			return nil, he.Guest
		}
		return nil, &GuestError{Value: i.newErrorObject("Error", err.Error())}
	}

	switch comp.Type {
	case CompletionReturn:
		return comp.Value, nil
	case CompletionThrow:
		return nil, &GuestError{Value: comp.Value, Stack: nil}
	default:
		return object.Undefined{}, nil
	}
}

// makeArgumentsObject builds the guest-visible `arguments` array-like
// object every function invocation receives (spec.md §4.2 closure
// capture; ES5 `arguments` is array-like, not a real Array).
func (i *Interpreter) makeArgumentsObject(args []object.Value) *object.Object {
	obj := object.NewObject("Arguments", i.objectProto)
	for idx, v := range args {
		obj.SetOwnData(intToKey(idx), v, object.DefaultAttrs)
	}
	obj.SetOwnData("length", object.Number(len(args)), object.Attrs{Writable: true, Configurable: true})
	return obj
}

func intToKey(i int) string {
	return object.Number(i).String()
}
