package interp

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/go-es5ix/internal/object"
)

// installJSONBuiltins wires JSON.parse/JSON.stringify (spec.md §3.5).
// Both walk through an intermediate JSON text using
// github.com/tidwall/{gjson,sjson} rather than a hand-rolled parser/
// printer over the guest value tree — gjson.ForEach/sjson.SetRaw handle
// the pure-data fast path (no cyclic references, no functions), the same
// boundary JSON's own grammar draws.
func (i *Interpreter) installJSONBuiltins() {
	j := i.NewObject("Object", nil)
	j.SetOwnData("parse", i.nativeFn("parse", 1, i.jsonParse), object.DefaultAttrs)
	j.SetOwnData("stringify", i.nativeFn("stringify", 3, i.jsonStringify), object.DefaultAttrs)
	i.globalObj.SetOwnData("JSON", j, object.DefaultAttrs)
}

func (i *Interpreter) jsonParse(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	text := i.toStringValue(argOr(args, 0))
	if !gjson.Valid(text) {
		return nil, ctx.Throw("SyntaxError", "invalid JSON")
	}
	return i.gjsonToValue(gjson.Parse(text)), nil
}

func (i *Interpreter) gjsonToValue(r gjson.Result) object.Value {
	switch r.Type {
	case gjson.Null:
		return object.Null{}
	case gjson.False:
		return object.Boolean(false)
	case gjson.True:
		return object.Boolean(true)
	case gjson.Number:
		return object.Number(r.Num)
	case gjson.String:
		return object.String(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var elems []object.Value
			r.ForEach(func(_, value gjson.Result) bool {
				elems = append(elems, i.gjsonToValue(value))
				return true
			})
			return i.NewArray(elems)
		}
		obj := i.NewObject("Object", nil)
		r.ForEach(func(key, value gjson.Result) bool {
			obj.SetOwnData(key.Str, i.gjsonToValue(value), object.DefaultAttrs)
			return true
		})
		return obj
	default:
		return object.Null{}
	}
}

func (i *Interpreter) jsonStringify(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	v := argOr(args, 0)
	text, ok, gerr := i.valueToJSON(v, "")
	if gerr != nil {
		return nil, gerr
	}
	if !ok {
		return object.Undefined{}, nil
	}
	return object.String(text), nil
}

// valueToJSON renders v as a JSON text fragment at path "" (the whole
// document), building nested structure with successive sjson.SetRaw
// calls. ok is false for values JSON.stringify skips entirely
// (undefined, functions) when they are the top-level value.
func (i *Interpreter) valueToJSON(v object.Value, path string) (string, bool, *GuestError) {
	switch t := v.(type) {
	case object.Undefined:
		return "", false, nil
	case object.Null:
		return "null", true, nil
	case object.Boolean:
		if t {
			return "true", true, nil
		}
		return "false", true, nil
	case object.Number:
		return object.Number(t).String(), true, nil
	case object.String:
		return strconv.Quote(string(t)), true, nil
	case *object.Object:
		if !t.Kind.Callable() {
			if toJSONVal, ok := t.Get("toJSON"); ok {
				if fn, ok := toJSONVal.(*object.Object); ok && fn.Kind.Callable() {
					r, gerr := i.call(fn, t, nil)
					if gerr != nil {
						return "", false, gerr
					}
					return i.valueToJSON(r, path)
				}
			}
		}
		if t.Class == "Array" {
			return i.arrayToJSON(t)
		}
		if t.Kind.Callable() {
			return "", false, nil
		}
		return i.objectToJSON(t)
	default:
		return "", false, nil
	}
}

func (i *Interpreter) arrayToJSON(arr *object.Object) (string, bool, *GuestError) {
	elems := object.ArrayElements(arr)
	doc := "[]"
	for idx, v := range elems {
		frag, ok, gerr := i.valueToJSON(v, "")
		if gerr != nil {
			return "", false, gerr
		}
		if !ok {
			frag = "null"
		}
		var err error
		doc, err = sjson.SetRaw(doc, strconv.Itoa(idx), frag)
		if err != nil {
			return "", false, &GuestError{Value: i.newErrorObject("TypeError", err.Error())}
		}
	}
	return doc, true, nil
}

func (i *Interpreter) objectToJSON(obj *object.Object) (string, bool, *GuestError) {
	doc := "{}"
	any := false
	for _, key := range obj.OwnEnumerableKeys() {
		fv, _ := obj.Get(key)
		frag, ok, gerr := i.valueToJSON(fv, "")
		if gerr != nil {
			return "", false, gerr
		}
		if !ok {
			continue
		}
		any = true
		escaped := strings.ReplaceAll(key, "~", "~0")
		escaped = strings.ReplaceAll(escaped, ".", "\\.")
		var err error
		doc, err = sjson.SetRaw(doc, escaped, frag)
		if err != nil {
			return "", false, &GuestError{Value: i.newErrorObject("TypeError", err.Error())}
		}
	}
	_ = any
	return doc, true, nil
}
