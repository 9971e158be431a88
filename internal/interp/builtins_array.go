package interp

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/go-es5ix/internal/object"
)

// installArrayBuiltins wires the Array constructor and the
// Array.prototype surface spec.md §3.5 names (push/pop/shift/unshift,
// slice/splice/concat/join, indexOf/lastIndexOf/reverse/sort, and the
// iteration family forEach/map/filter/reduce/reduceRight/some/every).
func (i *Interpreter) installArrayBuiltins() {
	proto := i.arrayProto
	methods := map[string]object.NativeFunc{
		"push":        i.arrayPush,
		"pop":         i.arrayPop,
		"shift":       i.arrayShift,
		"unshift":     i.arrayUnshift,
		"slice":       i.arraySlice,
		"splice":      i.arraySplice,
		"concat":      i.arrayConcat,
		"join":        i.arrayJoin,
		"indexOf":     i.arrayIndexOf,
		"lastIndexOf": i.arrayLastIndexOf,
		"reverse":     i.arrayReverse,
		"sort":        i.arraySort,
		"forEach":     i.arrayForEach,
		"map":         i.arrayMap,
		"filter":      i.arrayFilter,
		"reduce":      i.arrayReduce,
		"reduceRight": i.arrayReduceRight,
		"some":        i.arraySome,
		"every":       i.arrayEvery,
		"toString":    i.arrayToString,
	}
	for name, fn := range methods {
		proto.SetOwnData(name, i.nativeFn(name, 1, fn), object.Attrs{Writable: true, Configurable: true})
	}

	ctor := i.nativeConstructor("Array", 1, proto, i.arrayConstructorBody)
	ctor.SetOwnData("isArray", i.nativeFn("isArray", 1, arrayIsArray), object.DefaultAttrs)
	i.globalObj.SetOwnData("Array", ctor, object.DefaultAttrs)
}

func (i *Interpreter) arrayConstructorBody(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	if len(args) == 1 {
		if n, ok := args[0].(object.Number); ok {
			ln := uint32(n)
			arr := i.NewArray(nil)
			object.SetArrayLength(arr, ln)
			return arr, nil
		}
	}
	return i.NewArray(args), nil
}

func arrayIsArray(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	obj, ok := argOr(args, 0).(*object.Object)
	return object.Boolean(ok && obj.Class == "Array"), nil
}

func selfArray(this object.Value) (*object.Object, bool) {
	obj, ok := this.(*object.Object)
	return obj, ok
}

func (i *Interpreter) arrayPush(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.push called on non-array")
	}
	ln := object.ArrayLength(arr)
	for _, v := range args {
		object.SetArrayIndex(arr, ln, v)
		ln++
	}
	return object.Number(ln), nil
}

func (i *Interpreter) arrayPop(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.pop called on non-array")
	}
	ln := object.ArrayLength(arr)
	if ln == 0 {
		return object.Undefined{}, nil
	}
	last := ln - 1
	v, _ := arr.Get(strconv.FormatUint(uint64(last), 10))
	arr.DeleteOwn(strconv.FormatUint(uint64(last), 10))
	object.SetArrayLength(arr, last)
	return v, nil
}

func (i *Interpreter) arrayShift(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.shift called on non-array")
	}
	elems := object.ArrayElements(arr)
	if len(elems) == 0 {
		return object.Undefined{}, nil
	}
	first := elems[0]
	rest := elems[1:]
	for idx, v := range rest {
		object.SetArrayIndex(arr, uint32(idx), v)
	}
	object.SetArrayLength(arr, uint32(len(rest)))
	return first, nil
}

func (i *Interpreter) arrayUnshift(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.unshift called on non-array")
	}
	elems := object.ArrayElements(arr)
	merged := append(append([]object.Value{}, args...), elems...)
	for idx, v := range merged {
		object.SetArrayIndex(arr, uint32(idx), v)
	}
	object.SetArrayLength(arr, uint32(len(merged)))
	return object.Number(len(merged)), nil
}

func normalizeIndex(n float64, length int) int {
	idx := int(n)
	if idx < 0 {
		idx += length
	}
	if idx < 0 {
		idx = 0
	}
	if idx > length {
		idx = length
	}
	return idx
}

func (i *Interpreter) arraySlice(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.slice called on non-array")
	}
	elems := object.ArrayElements(arr)
	start, end := 0, len(elems)
	if len(args) > 0 {
		start = normalizeIndex(object.ToNumber(args[0]), len(elems))
	}
	if len(args) > 1 && args[1] != (object.Value)(object.Undefined{}) {
		end = normalizeIndex(object.ToNumber(args[1]), len(elems))
	}
	if start > end {
		start = end
	}
	return i.NewArray(append([]object.Value{}, elems[start:end]...)), nil
}

func (i *Interpreter) arraySplice(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.splice called on non-array")
	}
	elems := object.ArrayElements(arr)
	start := 0
	if len(args) > 0 {
		start = normalizeIndex(object.ToNumber(args[0]), len(elems))
	}
	deleteCount := len(elems) - start
	if len(args) > 1 {
		deleteCount = int(object.ToNumber(args[1]))
		if deleteCount < 0 {
			deleteCount = 0
		}
		if deleteCount > len(elems)-start {
			deleteCount = len(elems) - start
		}
	}
	removed := append([]object.Value{}, elems[start:start+deleteCount]...)
	var insert []object.Value
	if len(args) > 2 {
		insert = args[2:]
	}
	newElems := append([]object.Value{}, elems[:start]...)
	newElems = append(newElems, insert...)
	newElems = append(newElems, elems[start+deleteCount:]...)

	for idx := range elems {
		arr.DeleteOwn(strconv.Itoa(idx))
	}
	for idx, v := range newElems {
		object.SetArrayIndex(arr, uint32(idx), v)
	}
	object.SetArrayLength(arr, uint32(len(newElems)))
	return i.NewArray(removed), nil
}

func (i *Interpreter) arrayConcat(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.concat called on non-array")
	}
	out := append([]object.Value{}, object.ArrayElements(arr)...)
	for _, a := range args {
		if other, ok := a.(*object.Object); ok && other.Class == "Array" {
			out = append(out, object.ArrayElements(other)...)
		} else {
			out = append(out, a)
		}
	}
	return i.NewArray(out), nil
}

func (i *Interpreter) arrayJoin(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.join called on non-array")
	}
	sep := ","
	if len(args) > 0 {
		if _, isUndef := args[0].(object.Undefined); !isUndef {
			sep = i.toStringValue(args[0])
		}
	}
	elems := object.ArrayElements(arr)
	parts := make([]string, len(elems))
	for idx, v := range elems {
		switch v.(type) {
		case object.Undefined, object.Null:
			parts[idx] = ""
		default:
			parts[idx] = i.toStringValue(v)
		}
	}
	return object.String(strings.Join(parts, sep)), nil
}

func (i *Interpreter) arrayToString(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	return i.arrayJoin(ctx, this, nil)
}

func (i *Interpreter) arrayIndexOf(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.indexOf called on non-array")
	}
	elems := object.ArrayElements(arr)
	target := argOr(args, 0)
	start := 0
	if len(args) > 1 {
		start = normalizeIndex(object.ToNumber(args[1]), len(elems))
	}
	for idx := start; idx < len(elems); idx++ {
		if strictEquals(elems[idx], target) {
			return object.Number(idx), nil
		}
	}
	return object.Number(-1), nil
}

func (i *Interpreter) arrayLastIndexOf(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.lastIndexOf called on non-array")
	}
	elems := object.ArrayElements(arr)
	target := argOr(args, 0)
	for idx := len(elems) - 1; idx >= 0; idx-- {
		if strictEquals(elems[idx], target) {
			return object.Number(idx), nil
		}
	}
	return object.Number(-1), nil
}

func (i *Interpreter) arrayReverse(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.reverse called on non-array")
	}
	elems := object.ArrayElements(arr)
	for l, r := 0, len(elems)-1; l < r; l, r = l+1, r-1 {
		elems[l], elems[r] = elems[r], elems[l]
	}
	for idx, v := range elems {
		object.SetArrayIndex(arr, uint32(idx), v)
	}
	return arr, nil
}

func (i *Interpreter) arraySort(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.sort called on non-array")
	}
	elems := object.ArrayElements(arr)
	var compareFn *object.Object
	if len(args) > 0 {
		compareFn, _ = args[0].(*object.Object)
	}
	var sortErr *GuestError
	sort.SliceStable(elems, func(a, b int) bool {
		if sortErr != nil {
			return false
		}
		if compareFn != nil && compareFn.Kind.Callable() {
			result, gerr := i.call(compareFn, object.Undefined{}, []object.Value{elems[a], elems[b]})
			if gerr != nil {
				sortErr = gerr
				return false
			}
			return object.ToNumber(result) < 0
		}
		return i.toStringValue(elems[a]) < i.toStringValue(elems[b])
	})
	if sortErr != nil {
		return nil, sortErr
	}
	for idx, v := range elems {
		object.SetArrayIndex(arr, uint32(idx), v)
	}
	return arr, nil
}

func (i *Interpreter) iterationCallback(args []object.Value) (*object.Object, object.Value, *GuestError) {
	fn, ok := argOr(args, 0).(*object.Object)
	if !ok || !fn.Kind.Callable() {
		return nil, nil, &GuestError{Value: i.newErrorObject("TypeError", "callback is not a function")}
	}
	return fn, argOr(args, 1), nil
}

func (i *Interpreter) arrayForEach(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.forEach called on non-array")
	}
	fn, thisArg, gerr := i.iterationCallback(args)
	if gerr != nil {
		return nil, gerr
	}
	elems := object.ArrayElements(arr)
	for idx, v := range elems {
		if _, gerr := i.call(fn, thisArg, []object.Value{v, object.Number(idx), arr}); gerr != nil {
			return nil, gerr
		}
	}
	return object.Undefined{}, nil
}

func (i *Interpreter) arrayMap(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.map called on non-array")
	}
	fn, thisArg, gerr := i.iterationCallback(args)
	if gerr != nil {
		return nil, gerr
	}
	elems := object.ArrayElements(arr)
	out := make([]object.Value, len(elems))
	for idx, v := range elems {
		r, gerr := i.call(fn, thisArg, []object.Value{v, object.Number(idx), arr})
		if gerr != nil {
			return nil, gerr
		}
		out[idx] = r
	}
	return i.NewArray(out), nil
}

func (i *Interpreter) arrayFilter(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.filter called on non-array")
	}
	fn, thisArg, gerr := i.iterationCallback(args)
	if gerr != nil {
		return nil, gerr
	}
	elems := object.ArrayElements(arr)
	var out []object.Value
	for idx, v := range elems {
		r, gerr := i.call(fn, thisArg, []object.Value{v, object.Number(idx), arr})
		if gerr != nil {
			return nil, gerr
		}
		if object.ToBoolean(r) {
			out = append(out, v)
		}
	}
	return i.NewArray(out), nil
}

func (i *Interpreter) arrayReduce(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.reduce called on non-array")
	}
	fn, ok := argOr(args, 0).(*object.Object)
	if !ok || !fn.Kind.Callable() {
		return nil, ctx.Throw("TypeError", "reduce callback is not a function")
	}
	elems := object.ArrayElements(arr)
	idx := 0
	var acc object.Value
	if len(args) > 1 {
		acc = args[1]
	} else {
		if len(elems) == 0 {
			return nil, ctx.Throw("TypeError", "Reduce of empty array with no initial value")
		}
		acc = elems[0]
		idx = 1
	}
	for ; idx < len(elems); idx++ {
		r, gerr := i.call(fn, object.Undefined{}, []object.Value{acc, elems[idx], object.Number(idx), arr})
		if gerr != nil {
			return nil, gerr
		}
		acc = r
	}
	return acc, nil
}

func (i *Interpreter) arrayReduceRight(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.reduceRight called on non-array")
	}
	fn, ok := argOr(args, 0).(*object.Object)
	if !ok || !fn.Kind.Callable() {
		return nil, ctx.Throw("TypeError", "reduceRight callback is not a function")
	}
	elems := object.ArrayElements(arr)
	idx := len(elems) - 1
	var acc object.Value
	if len(args) > 1 {
		acc = args[1]
	} else {
		if len(elems) == 0 {
			return nil, ctx.Throw("TypeError", "Reduce of empty array with no initial value")
		}
		acc = elems[idx]
		idx--
	}
	for ; idx >= 0; idx-- {
		r, gerr := i.call(fn, object.Undefined{}, []object.Value{acc, elems[idx], object.Number(idx), arr})
		if gerr != nil {
			return nil, gerr
		}
		acc = r
	}
	return acc, nil
}

func (i *Interpreter) arraySome(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.some called on non-array")
	}
	fn, thisArg, gerr := i.iterationCallback(args)
	if gerr != nil {
		return nil, gerr
	}
	elems := object.ArrayElements(arr)
	for idx, v := range elems {
		r, gerr := i.call(fn, thisArg, []object.Value{v, object.Number(idx), arr})
		if gerr != nil {
			return nil, gerr
		}
		if object.ToBoolean(r) {
			return object.Boolean(true), nil
		}
	}
	return object.Boolean(false), nil
}

func (i *Interpreter) arrayEvery(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	arr, ok := selfArray(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "Array.prototype.every called on non-array")
	}
	fn, thisArg, gerr := i.iterationCallback(args)
	if gerr != nil {
		return nil, gerr
	}
	elems := object.ArrayElements(arr)
	for idx, v := range elems {
		r, gerr := i.call(fn, thisArg, []object.Value{v, object.Number(idx), arr})
		if gerr != nil {
			return nil, gerr
		}
		if !object.ToBoolean(r) {
			return object.Boolean(false), nil
		}
	}
	return object.Boolean(true), nil
}
