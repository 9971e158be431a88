package interp

import (
	"fmt"
	"reflect"

	"github.com/cwbudde/go-es5ix/internal/object"
)

// RegisterNativeFunction exposes a Go function to guest code as a global
// named name, grounded on the teacher's callDWScriptFunctionSafe
// panic-recovery convention (internal/interp/ffi_callback.go) run in the
// opposite direction: instead of the engine calling out to a guest
// function pointer, here a reflect-built NativeFunc wraps fn so the
// guest can call it, marshaling arguments with PseudoToNative and the
// result with NativeToPseudo. fn's last return value may optionally be
// an error, converted into a thrown guest Error the same way a native
// builtin's own error return is (spec.md §4.5 create_native_function).
func (i *Interpreter) RegisterNativeFunction(name string, fn any) error {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return fmt.Errorf("es5ix: RegisterFunction(%q): not a function", name)
	}
	rt := rv.Type()

	returnsError := rt.NumOut() > 0 && rt.Out(rt.NumOut()-1) == reflect.TypeOf((*error)(nil)).Elem()

	wrapper := func(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
		in := make([]reflect.Value, rt.NumIn())
		for idx := 0; idx < rt.NumIn(); idx++ {
			paramType := rt.In(idx)
			var arg object.Value = object.Undefined{}
			if idx < len(args) {
				arg = args[idx]
			}
			v, err := i.PseudoToNative(arg, paramType)
			if err != nil {
				return nil, ctx.Throw("TypeError", fmt.Sprintf("argument %d to %s: %v", idx, name, err))
			}
			in[idx] = v
		}

		out := rv.Call(in)
		if returnsError && len(out) > 0 {
			errVal := out[len(out)-1]
			if !errVal.IsNil() {
				return nil, ctx.Throw("Error", errVal.Interface().(error).Error())
			}
			out = out[:len(out)-1]
		}
		if len(out) == 0 {
			return object.Undefined{}, nil
		}
		return i.nativeToPseudo(out[0], map[uintptr]object.Value{})
	}

	i.globalObj.SetOwnData(name, i.nativeFn(name, rt.NumIn(), wrapper), object.DefaultAttrs)
	return nil
}
