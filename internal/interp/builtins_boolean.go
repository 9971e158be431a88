package interp

import "github.com/cwbudde/go-es5ix/internal/object"

func (i *Interpreter) installBooleanBuiltins() {
	proto := i.booleanProto
	proto.SetOwnData("toString", i.nativeFn("toString", 0, booleanToString), object.Attrs{Writable: true, Configurable: true})
	proto.SetOwnData("valueOf", i.nativeFn("valueOf", 0, booleanValueOf), object.Attrs{Writable: true, Configurable: true})

	ctor := i.nativeConstructor("Boolean", 1, proto, booleanConstructorBody)
	i.globalObj.SetOwnData("Boolean", ctor, object.DefaultAttrs)
}

func booleanConstructorBody(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	return object.Boolean(object.ToBoolean(argOr(args, 0))), nil
}

func booleanToString(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	b, _ := this.(object.Boolean)
	return object.String(b.String()), nil
}

func booleanValueOf(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	if b, ok := this.(object.Boolean); ok {
		return b, nil
	}
	return object.Boolean(false), nil
}
