package interp

import (
	"fmt"
	"reflect"

	"github.com/cwbudde/go-es5ix/internal/object"
)

// nativeFn wraps a Go closure as a plain (non-constructor) callable
// Function-class object — spec.md §4.5 create_native_function.
func (i *Interpreter) nativeFn(name string, length int, fn object.NativeFunc) *object.Object {
	return object.NewNativeFunction(i.functionProto, name, length, fn)
}

// nativeConstructor wraps fn as a callable whose `.prototype` is proto
// (so `new Ctor()` and `instanceof` both resolve against it). It does
// not set IllegalConstructor, so the result may be used with `new` or
// called directly (real engines allow `Error("boom")` without `new`).
func (i *Interpreter) nativeConstructor(name string, length int, proto *object.Object, fn object.NativeFunc) *object.Object {
	ctor := object.NewNativeFunction(i.functionProto, name, length, fn)
	ctor.SetOwnData("prototype", proto, object.Attrs{})
	proto.SetOwnData("constructor", ctor, object.Attrs{Writable: true, Configurable: true})
	return ctor
}

// createAsyncFunction wires up a KindAsyncFn object: fn runs synchronously
// to completion (typically just stashing a callback for later, per
// spec.md §4.5's "async native functions take an explicit callback as
// their last parameter"), but callNative then parks the engine itself —
// the native function body does not need to call Suspend — until a later
// ResumeValue/ResumeError supplies this call's actual result (spec.md §4.5
// create_async_function, §5 "cooperative concurrency"; see step.go).
func (i *Interpreter) createAsyncFunction(name string, length int, fn object.NativeFunc) *object.Object {
	o := object.NewNativeFunction(i.functionProto, name, length, fn)
	o.Kind = object.KindAsyncFn
	return o
}

// Suspend/Resume/ResumeValue/ResumeError/Paused/Step/Run are implemented in
// step.go, alongside the worker goroutine they drive.

// NativeToPseudo converts a Go value into a guest Value, per spec.md
// §4.5's host↔guest bridge, grounded on the teacher's MarshalToDWS
// (internal/interp/marshal.go): a reflection-based walk over Go's basic
// kinds, slices, and maps, cycle-guarded via a visited set keyed by Go
// pointer identity.
func (i *Interpreter) NativeToPseudo(v any) (object.Value, error) {
	return i.nativeToPseudo(reflect.ValueOf(v), map[uintptr]object.Value{})
}

func (i *Interpreter) nativeToPseudo(rv reflect.Value, visited map[uintptr]object.Value) (object.Value, error) {
	if !rv.IsValid() {
		return object.Null{}, nil
	}
	switch rv.Kind() {
	case reflect.Bool:
		return object.Boolean(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return object.Number(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return object.Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return object.Number(rv.Float()), nil
	case reflect.String:
		return object.String(rv.String()), nil
	case reflect.Interface:
		return i.nativeToPseudo(rv.Elem(), visited)
	case reflect.Ptr:
		if rv.IsNil() {
			return object.Null{}, nil
		}
		if v, ok := visited[rv.Pointer()]; ok {
			return v, nil // already-converted cycle participant
		}
		return i.nativeToPseudo(rv.Elem(), visited)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return object.Null{}, nil
		}
		elems := make([]object.Value, rv.Len())
		arr := i.NewArray(nil)
		visited[rv.Pointer()] = arr
		for idx := 0; idx < rv.Len(); idx++ {
			v, err := i.nativeToPseudo(rv.Index(idx), visited)
			if err != nil {
				return nil, err
			}
			elems[idx] = v
		}
		for idx, v := range elems {
			object.SetArrayIndex(arr, uint32(idx), v)
		}
		return arr, nil
	case reflect.Map:
		obj := i.NewObject("Object", nil)
		if rv.Kind() == reflect.Ptr {
			visited[rv.Pointer()] = obj
		}
		iter := rv.MapRange()
		for iter.Next() {
			v, err := i.nativeToPseudo(iter.Value(), visited)
			if err != nil {
				return nil, err
			}
			obj.SetOwnData(fmt.Sprint(iter.Key().Interface()), v, object.DefaultAttrs)
		}
		return obj, nil
	case reflect.Struct:
		obj := i.NewObject("Object", nil)
		rt := rv.Type()
		for idx := 0; idx < rt.NumField(); idx++ {
			field := rt.Field(idx)
			if field.PkgPath != "" {
				continue // unexported
			}
			v, err := i.nativeToPseudo(rv.Field(idx), visited)
			if err != nil {
				return nil, err
			}
			obj.SetOwnData(field.Name, v, object.DefaultAttrs)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("es5ix: cannot convert Go value of kind %s to a guest value", rv.Kind())
	}
}

// PseudoToNative converts a guest Value into a Go value shaped to
// target, the inverse of NativeToPseudo, grounded on the teacher's
// MarshalToGo.
func (i *Interpreter) PseudoToNative(v object.Value, target reflect.Type) (reflect.Value, error) {
	return i.pseudoToNative(v, target, map[*object.Object]reflect.Value{})
}

func (i *Interpreter) pseudoToNative(v object.Value, target reflect.Type, visited map[*object.Object]reflect.Value) (reflect.Value, error) {
	switch target.Kind() {
	case reflect.Interface:
		return reflect.ValueOf(i.pseudoToAny(v)), nil
	case reflect.Bool:
		return reflect.ValueOf(object.ToBoolean(v)).Convert(target), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.ValueOf(int64(object.ToNumber(v))).Convert(target), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflect.ValueOf(uint64(object.ToNumber(v))).Convert(target), nil
	case reflect.Float32, reflect.Float64:
		return reflect.ValueOf(object.ToNumber(v)).Convert(target), nil
	case reflect.String:
		return reflect.ValueOf(v.String()).Convert(target), nil
	case reflect.Slice:
		obj, ok := v.(*object.Object)
		if !ok {
			return reflect.Value{}, fmt.Errorf("es5ix: expected array-like guest value for %s", target)
		}
		if existing, ok := visited[obj]; ok {
			return existing, nil
		}
		elemType := target.Elem()
		elems := object.ArrayElements(obj)
		out := reflect.MakeSlice(target, len(elems), len(elems))
		visited[obj] = out
		for idx, elem := range elems {
			ev, err := i.pseudoToNative(elem, elemType, visited)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(idx).Set(ev)
		}
		return out, nil
	case reflect.Map:
		obj, ok := v.(*object.Object)
		if !ok {
			return reflect.Value{}, fmt.Errorf("es5ix: expected object guest value for %s", target)
		}
		valType := target.Elem()
		out := reflect.MakeMap(target)
		for _, key := range obj.OwnEnumerableKeys() {
			fv, _ := obj.Get(key)
			cv, err := i.pseudoToNative(fv, valType, visited)
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(reflect.ValueOf(key), cv)
		}
		return out, nil
	default:
		return reflect.Value{}, fmt.Errorf("es5ix: cannot convert guest value to Go kind %s", target.Kind())
	}
}

// pseudoToAny converts without a target type in mind, inferring the
// most natural Go representation (used for `interface{}` targets).
func (i *Interpreter) pseudoToAny(v object.Value) any {
	switch t := v.(type) {
	case object.Undefined:
		return nil
	case object.Null:
		return nil
	case object.Boolean:
		return bool(t)
	case object.Number:
		return float64(t)
	case object.String:
		return string(t)
	case *object.Object:
		if t.Class == "Array" {
			elems := object.ArrayElements(t)
			out := make([]any, len(elems))
			for idx, e := range elems {
				out[idx] = i.pseudoToAny(e)
			}
			return out
		}
		out := make(map[string]any)
		for _, key := range t.OwnEnumerableKeys() {
			fv, _ := t.Get(key)
			out[key] = i.pseudoToAny(fv)
		}
		return out
	default:
		return nil
	}
}
