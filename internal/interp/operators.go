package interp

import (
	"math"

	"github.com/cwbudde/go-es5ix/internal/object"
)

// toPrimitive implements the guest's ToPrimitive abstract operation: for
// a non-object value it is the identity; for an object it tries
// valueOf() then toString() (hint "default"/"number"), falling back to
// toString() first when hint is "string". Both may be guest functions,
// so this must go through i.call and can therefore throw.
func (i *Interpreter) toPrimitive(v object.Value, hint string) (object.Value, *GuestError) {
	obj, ok := v.(*object.Object)
	if !ok {
		return v, nil
	}
	methods := []string{"valueOf", "toString"}
	if hint == "string" {
		methods = []string{"toString", "valueOf"}
	}
	for _, name := range methods {
		fnVal, gerr := i.getProperty(obj, name)
		if gerr != nil {
			return nil, gerr
		}
		fn, ok := fnVal.(*object.Object)
		if !ok || !fn.Kind.Callable() {
			continue
		}
		result, gerr := i.call(fn, obj, nil)
		if gerr != nil {
			return nil, gerr
		}
		if _, isObj := result.(*object.Object); !isObj {
			return result, nil
		}
	}
	return nil, &GuestError{Value: i.newErrorObject("TypeError", "Cannot convert object to primitive value")}
}

func (i *Interpreter) toNumberValue(v object.Value) float64 {
	prim, gerr := i.toPrimitive(v, "number")
	if gerr != nil {
		return math.NaN()
	}
	return object.ToNumber(prim)
}

func (i *Interpreter) toStringValue(v object.Value) string {
	prim, gerr := i.toPrimitive(v, "string")
	if gerr != nil {
		return ""
	}
	return prim.String()
}

// strictEquals implements `===`: same type and same value, with the
// usual "no two distinct object references are equal" and "NaN !==
// NaN" rules.
func strictEquals(a, b object.Value) bool {
	switch av := a.(type) {
	case object.Undefined:
		_, ok := b.(object.Undefined)
		return ok
	case object.Null:
		_, ok := b.(object.Null)
		return ok
	case object.Boolean:
		bv, ok := b.(object.Boolean)
		return ok && av == bv
	case object.Number:
		bv, ok := b.(object.Number)
		return ok && float64(av) == float64(bv)
	case object.String:
		bv, ok := b.(object.String)
		return ok && av == bv
	case *object.Object:
		bv, ok := b.(*object.Object)
		return ok && av == bv
	default:
		return false
	}
}

// abstractEquals implements `==`, including the cross-type coercion
// table (spec.md's ES5-subset abstract equality comparison).
func (i *Interpreter) abstractEquals(a, b object.Value) (bool, *GuestError) {
	at, bt := a.TypeOf(), b.TypeOf()
	if sameAbstractType(a, b) {
		return strictEquals(a, b), nil
	}
	if isNullish(a) && isNullish(b) {
		return true, nil
	}
	if isNullish(a) || isNullish(b) {
		return false, nil
	}
	if at == "number" && bt == "string" {
		return float64(a.(object.Number)) == i.toNumberValue(b), nil
	}
	if at == "string" && bt == "number" {
		return i.toNumberValue(a) == float64(b.(object.Number)), nil
	}
	if at == "boolean" {
		return i.abstractEquals(object.Number(object.ToNumber(a)), b)
	}
	if bt == "boolean" {
		return i.abstractEquals(a, object.Number(object.ToNumber(b)))
	}
	if (at == "number" || at == "string") && bt == "object" {
		prim, gerr := i.toPrimitive(b, "default")
		if gerr != nil {
			return false, gerr
		}
		return i.abstractEquals(a, prim)
	}
	if at == "object" && (bt == "number" || bt == "string") {
		prim, gerr := i.toPrimitive(a, "default")
		if gerr != nil {
			return false, gerr
		}
		return i.abstractEquals(prim, b)
	}
	return false, nil
}

func sameAbstractType(a, b object.Value) bool {
	return a.TypeOf() == b.TypeOf() && !(a.TypeOf() == "object") || bothObjects(a, b)
}

func bothObjects(a, b object.Value) bool {
	_, aok := a.(*object.Object)
	_, bok := b.(*object.Object)
	return aok && bok
}

func isNullish(v object.Value) bool {
	switch v.(type) {
	case object.Undefined, object.Null:
		return true
	default:
		return false
	}
}

func numbersToIntBits(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int32(int64(f))
}

func numbersToUintBits(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return uint32(int64(f))
}
