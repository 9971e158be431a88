package interp

import (
	"math"

	"github.com/cwbudde/go-es5ix/internal/object"
)

// installBuiltins wires every standard prototype and global constructor
// onto the interpreter's global object, in the order spec.md §4.5 lists
// them, following the teacher's own New()-driven
// registerBuiltinExceptions() style rather than a package-level init().
func (i *Interpreter) installBuiltins() {
	i.functionProto = object.NewObject("Function", i.objectProto)
	i.functionProto.Kind = object.KindNativeFn
	i.functionProto.Data = &object.NativeFnData{Name: "Empty", Fn: func(object.NativeContext, object.Value, []object.Value) (object.Value, error) {
		return object.Undefined{}, nil
	}}

	i.installObjectBuiltins()
	i.installFunctionBuiltins()
	i.arrayProto = object.NewObject("Array", i.objectProto)
	i.installArrayBuiltins()
	i.stringProto = object.NewObject("String", i.objectProto)
	i.installStringBuiltins()
	i.numberProto = object.NewObject("Number", i.objectProto)
	i.installNumberBuiltins()
	i.booleanProto = object.NewObject("Boolean", i.objectProto)
	i.installBooleanBuiltins()
	i.registerErrorClasses()
	i.installMathBuiltins()
	i.installJSONBuiltins()
	i.dateProto = object.NewObject("Date", i.objectProto)
	i.installDateBuiltins()
	i.regexpProto = object.NewObject("RegExp", i.objectProto)
	i.installRegExpBuiltins()

	i.globalObj.SetOwnData("undefined", object.Undefined{}, object.Attrs{})
	i.globalObj.SetOwnData("NaN", object.Number(math.NaN()), object.Attrs{})
	i.globalObj.SetOwnData("Infinity", object.Number(math.Inf(1)), object.Attrs{})
	i.globalObj.SetOwnData("global", i.globalObj, object.Attrs{Writable: true, Configurable: true})

	i.globalObj.SetOwnData("eval", i.makeEvalFunction(), object.DefaultAttrs)
	i.globalObj.SetOwnData("parseInt", i.nativeFn("parseInt", 2, builtinParseInt), object.DefaultAttrs)
	i.globalObj.SetOwnData("parseFloat", i.nativeFn("parseFloat", 1, builtinParseFloat), object.DefaultAttrs)
	i.globalObj.SetOwnData("isNaN", i.nativeFn("isNaN", 1, builtinIsNaN), object.DefaultAttrs)
	i.globalObj.SetOwnData("isFinite", i.nativeFn("isFinite", 1, builtinIsFinite), object.DefaultAttrs)
	i.globalObj.SetOwnData("encodeURIComponent", i.nativeFn("encodeURIComponent", 1, builtinEncodeURIComponent), object.DefaultAttrs)
	i.globalObj.SetOwnData("decodeURIComponent", i.nativeFn("decodeURIComponent", 1, builtinDecodeURIComponent), object.DefaultAttrs)

	if i.opts.Console {
		i.installConsole()
	}
}

