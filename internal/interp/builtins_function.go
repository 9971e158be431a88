package interp

import "github.com/cwbudde/go-es5ix/internal/object"

// installFunctionBuiltins wires Function.prototype.{call,apply,bind} and
// the Function constructor, grounded on spec.md §3.6's call/apply/bind
// contract (this-binding, argument spreading, partial application).
func (i *Interpreter) installFunctionBuiltins() {
	proto := i.functionProto
	proto.SetOwnData("call", i.nativeFn("call", 1, i.functionCall), object.Attrs{Writable: true, Configurable: true})
	proto.SetOwnData("apply", i.nativeFn("apply", 2, i.functionApply), object.Attrs{Writable: true, Configurable: true})
	proto.SetOwnData("bind", i.nativeFn("bind", 1, i.functionBind), object.Attrs{Writable: true, Configurable: true})
	proto.SetOwnData("toString", i.nativeFn("toString", 0, functionToString), object.Attrs{Writable: true, Configurable: true})

	ctor := i.nativeConstructor("Function", 1, proto, i.functionConstructorBody)
	i.globalObj.SetOwnData("Function", ctor, object.DefaultAttrs)
}

func (i *Interpreter) functionConstructorBody(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	return nil, ctx.Throw("TypeError", "the Function constructor is disabled in this sandbox")
}

func functionToString(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	fn, ok := this.(*object.Object)
	if !ok {
		return object.String("function () { [native code] }"), nil
	}
	switch d := fn.Data.(type) {
	case *object.GuestFnData:
		return object.String("function " + d.Name + "() { [guest code] }"), nil
	case *object.NativeFnData:
		return object.String("function " + d.Name + "() { [native code] }"), nil
	}
	return object.String("function () { [native code] }"), nil
}

func (i *Interpreter) functionCall(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	fn, ok := this.(*object.Object)
	if !ok || !fn.Kind.Callable() {
		return nil, ctx.Throw("TypeError", "Function.prototype.call called on non-callable")
	}
	newThis := argOr(args, 0)
	var rest []object.Value
	if len(args) > 1 {
		rest = args[1:]
	}
	v, gerr := i.call(fn, newThis, rest)
	if gerr != nil {
		return nil, gerr
	}
	return v, nil
}

func (i *Interpreter) functionApply(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	fn, ok := this.(*object.Object)
	if !ok || !fn.Kind.Callable() {
		return nil, ctx.Throw("TypeError", "Function.prototype.apply called on non-callable")
	}
	newThis := argOr(args, 0)
	var spread []object.Value
	if arr, ok := argOr(args, 1).(*object.Object); ok {
		spread = object.ArrayElements(arr)
	}
	v, gerr := i.call(fn, newThis, spread)
	if gerr != nil {
		return nil, gerr
	}
	return v, nil
}

func (i *Interpreter) functionBind(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	fn, ok := this.(*object.Object)
	if !ok || !fn.Kind.Callable() {
		return nil, ctx.Throw("TypeError", "Function.prototype.bind called on non-callable")
	}
	boundThis := argOr(args, 0)
	var boundArgs []object.Value
	if len(args) > 1 {
		boundArgs = append(boundArgs, args[1:]...)
	}
	bound := i.nativeFn("bound", 0, func(ctx object.NativeContext, _ object.Value, callArgs []object.Value) (object.Value, error) {
		all := make([]object.Value, 0, len(boundArgs)+len(callArgs))
		all = append(all, boundArgs...)
		all = append(all, callArgs...)
		v, gerr := i.call(fn, boundThis, all)
		if gerr != nil {
			return nil, gerr
		}
		return v, nil
	})
	return bound, nil
}
