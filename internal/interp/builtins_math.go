package interp

import (
	"math"
	"math/rand"

	"github.com/cwbudde/go-es5ix/internal/object"
)

// installMathBuiltins wires the Math object (spec.md §3.5): every
// standard constant and single/double-argument function, delegating
// entirely to the stdlib math package the way the teacher's own
// numeric builtins do.
func (i *Interpreter) installMathBuiltins() {
	m := i.NewObject("Object", nil)
	m.SetOwnData("PI", object.Number(math.Pi), object.Attrs{})
	m.SetOwnData("E", object.Number(math.E), object.Attrs{})
	m.SetOwnData("LN2", object.Number(math.Ln2), object.Attrs{})
	m.SetOwnData("LN10", object.Number(math.Log(10)), object.Attrs{})
	m.SetOwnData("LOG2E", object.Number(1/math.Ln2), object.Attrs{})
	m.SetOwnData("LOG10E", object.Number(1/math.Log(10)), object.Attrs{})
	m.SetOwnData("SQRT2", object.Number(math.Sqrt2), object.Attrs{})
	m.SetOwnData("SQRT1_2", object.Number(math.Sqrt(0.5)), object.Attrs{})

	unary := map[string]func(float64) float64{
		"abs": math.Abs, "floor": math.Floor, "ceil": math.Ceil,
		"round": mathRound, "sqrt": math.Sqrt, "sin": math.Sin,
		"cos": math.Cos, "tan": math.Tan, "asin": math.Asin,
		"acos": math.Acos, "atan": math.Atan, "exp": math.Exp,
		"log": math.Log,
	}
	for name, fn := range unary {
		fn := fn
		m.SetOwnData(name, i.nativeFn(name, 1, func(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
			return object.Number(fn(object.ToNumber(argOr(args, 0)))), nil
		}), object.DefaultAttrs)
	}

	m.SetOwnData("pow", i.nativeFn("pow", 2, func(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
		return object.Number(math.Pow(object.ToNumber(argOr(args, 0)), object.ToNumber(argOr(args, 1)))), nil
	}), object.DefaultAttrs)
	m.SetOwnData("atan2", i.nativeFn("atan2", 2, func(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
		return object.Number(math.Atan2(object.ToNumber(argOr(args, 0)), object.ToNumber(argOr(args, 1)))), nil
	}), object.DefaultAttrs)
	m.SetOwnData("max", i.nativeFn("max", 2, mathMax), object.DefaultAttrs)
	m.SetOwnData("min", i.nativeFn("min", 2, mathMin), object.DefaultAttrs)
	m.SetOwnData("random", i.nativeFn("random", 0, func(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
		return object.Number(rand.Float64()), nil
	}), object.DefaultAttrs)

	i.globalObj.SetOwnData("Math", m, object.DefaultAttrs)
}

func mathRound(f float64) float64 {
	return math.Floor(f + 0.5)
}

func mathMax(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	if len(args) == 0 {
		return object.Number(math.Inf(-1)), nil
	}
	best := math.Inf(-1)
	for _, a := range args {
		n := object.ToNumber(a)
		if math.IsNaN(n) {
			return object.Number(math.NaN()), nil
		}
		if n > best {
			best = n
		}
	}
	return object.Number(best), nil
}

func mathMin(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	if len(args) == 0 {
		return object.Number(math.Inf(1)), nil
	}
	best := math.Inf(1)
	for _, a := range args {
		n := object.ToNumber(a)
		if math.IsNaN(n) {
			return object.Number(math.NaN()), nil
		}
		if n < best {
			best = n
		}
	}
	return object.Number(best), nil
}
