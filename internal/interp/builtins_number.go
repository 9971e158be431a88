package interp

import (
	"math"
	"strconv"

	"github.com/cwbudde/go-es5ix/internal/object"
)

func (i *Interpreter) installNumberBuiltins() {
	proto := i.numberProto
	proto.SetOwnData("toFixed", i.nativeFn("toFixed", 1, numberToFixed), object.Attrs{Writable: true, Configurable: true})
	proto.SetOwnData("toString", i.nativeFn("toString", 1, numberToString), object.Attrs{Writable: true, Configurable: true})
	proto.SetOwnData("valueOf", i.nativeFn("valueOf", 0, numberValueOf), object.Attrs{Writable: true, Configurable: true})

	ctor := i.nativeConstructor("Number", 1, proto, i.numberConstructorBody)
	ctor.SetOwnData("MAX_VALUE", object.Number(math.MaxFloat64), object.Attrs{})
	ctor.SetOwnData("MIN_VALUE", object.Number(math.SmallestNonzeroFloat64), object.Attrs{})
	ctor.SetOwnData("NaN", object.Number(math.NaN()), object.Attrs{})
	ctor.SetOwnData("POSITIVE_INFINITY", object.Number(math.Inf(1)), object.Attrs{})
	ctor.SetOwnData("NEGATIVE_INFINITY", object.Number(math.Inf(-1)), object.Attrs{})
	i.globalObj.SetOwnData("Number", ctor, object.DefaultAttrs)
}

func (i *Interpreter) numberConstructorBody(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	if len(args) == 0 {
		return object.Number(0), nil
	}
	return object.Number(i.toNumberValue(args[0])), nil
}

func numberValueOf(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	return object.Number(object.ToNumber(this)), nil
}

func numberToFixed(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	n := object.ToNumber(this)
	digits := 0
	if len(args) > 0 {
		digits = int(object.ToNumber(args[0]))
	}
	return object.String(strconv.FormatFloat(n, 'f', digits, 64)), nil
}

func numberToString(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	n := object.ToNumber(this)
	radix := 10
	if len(args) > 0 {
		if r := int(object.ToNumber(args[0])); r != 0 {
			radix = r
		}
	}
	if radix == 10 {
		return object.String(object.Number(n).String()), nil
	}
	return object.String(strconv.FormatInt(int64(n), radix)), nil
}
