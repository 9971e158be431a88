package interp

import "github.com/cwbudde/go-es5ix/internal/object"

// errorClassNames are the standard ES5 Error subclasses (spec.md §4.5),
// plus "InternalError", the class of the guest errors the engine throws
// for an unhandled operator or expression node or a function object
// missing its data.
var errorClassNames = []string{
	"TypeError", "RangeError", "ReferenceError", "SyntaxError", "EvalError", "URIError", "InternalError",
}

// registerErrorClasses wires Error and its standard subclasses onto the
// global object and builds i.errorProtos, following the teacher's
// registerBuiltinExceptions (internal/interp/exceptions.go) but with ES5's
// flat Error-subclass hierarchy instead of DWScript's user-extensible
// exception classes.
func (i *Interpreter) registerErrorClasses() {
	i.errorProto = object.NewObject("Error", i.objectProto)
	i.errorProto.SetOwnData("name", object.String("Error"), object.Attrs{Writable: true, Configurable: true})
	i.errorProto.SetOwnData("message", object.String(""), object.Attrs{Writable: true, Configurable: true})
	i.errorProto.SetOwnData("toString", i.nativeFn("toString", 0, errorToString), object.Attrs{Writable: true, Configurable: true})

	errorCtor := i.nativeConstructor("Error", 1, i.errorProto, errorConstructorBody("Error"))
	i.globalObj.SetOwnData("Error", errorCtor, object.DefaultAttrs)

	for _, name := range errorClassNames {
		proto := object.NewObject("Error", i.errorProto)
		proto.SetOwnData("name", object.String(name), object.Attrs{Writable: true, Configurable: true})
		i.errorProtos[name] = proto

		ctor := i.nativeConstructor(name, 1, proto, errorConstructorBody(name))
		ctorProtoVal, _ := ctor.Get("prototype")
		_ = ctorProtoVal
		i.globalObj.SetOwnData(name, ctor, object.DefaultAttrs)
	}
}

func errorConstructorBody(className string) object.NativeFunc {
	return func(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
		obj, ok := this.(*object.Object)
		if !ok {
			obj = ctx.NewObject("Error", nil)
		}
		if len(args) > 0 {
			if _, isUndef := args[0].(object.Undefined); !isUndef {
				obj.SetOwnData("message", object.String(args[0].String()), object.Attrs{Writable: true, Configurable: true})
			}
		}
		return obj, nil
	}
}

func errorToString(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	obj, ok := this.(*object.Object)
	if !ok {
		return object.String("Error"), nil
	}
	name := "Error"
	if v, ok := obj.Get("name"); ok {
		name = v.String()
	}
	message := ""
	if v, ok := obj.Get("message"); ok {
		message = v.String()
	}
	if message == "" {
		return object.String(name), nil
	}
	return object.String(name + ": " + message), nil
}

// newErrorObject constructs an Error-class instance of the given name
// (any entry of errorClassNames, or "Error" itself; anything else falls
// back to the base Error prototype) with the given message, used both
// by the interpreter's own internally-raised exceptions (ReferenceError,
// TypeError, ...) and by NativeContext.Throw.
func (i *Interpreter) newErrorObject(name, message string) *object.Object {
	proto, ok := i.errorProtos[name]
	if !ok {
		proto = i.errorProto
	}
	obj := object.NewObject("Error", proto)
	obj.SetOwnData("message", object.String(message), object.Attrs{Writable: true, Configurable: true})
	return obj
}
