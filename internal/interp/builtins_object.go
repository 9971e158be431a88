package interp

import "github.com/cwbudde/go-es5ix/internal/object"

func (i *Interpreter) installObjectBuiltins() {
	proto := i.objectProto
	proto.SetOwnData("toString", i.nativeFn("toString", 0, objectToString), object.Attrs{Writable: true, Configurable: true})
	proto.SetOwnData("valueOf", i.nativeFn("valueOf", 0, func(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
		return this, nil
	}), object.Attrs{Writable: true, Configurable: true})
	proto.SetOwnData("hasOwnProperty", i.nativeFn("hasOwnProperty", 1, objectHasOwnProperty), object.Attrs{Writable: true, Configurable: true})
	proto.SetOwnData("isPrototypeOf", i.nativeFn("isPrototypeOf", 1, objectIsPrototypeOf), object.Attrs{Writable: true, Configurable: true})
	proto.SetOwnData("propertyIsEnumerable", i.nativeFn("propertyIsEnumerable", 1, objectPropertyIsEnumerable), object.Attrs{Writable: true, Configurable: true})

	ctor := i.nativeConstructor("Object", 1, proto, i.objectConstructorBody)
	ctor.SetOwnData("keys", i.nativeFn("keys", 1, objectKeys), object.DefaultAttrs)
	ctor.SetOwnData("getOwnPropertyNames", i.nativeFn("getOwnPropertyNames", 1, objectGetOwnPropertyNames), object.DefaultAttrs)
	ctor.SetOwnData("getPrototypeOf", i.nativeFn("getPrototypeOf", 1, objectGetPrototypeOf), object.DefaultAttrs)
	ctor.SetOwnData("create", i.nativeFn("create", 2, i.objectCreate), object.DefaultAttrs)
	ctor.SetOwnData("defineProperty", i.nativeFn("defineProperty", 3, i.objectDefineProperty), object.DefaultAttrs)
	ctor.SetOwnData("defineProperties", i.nativeFn("defineProperties", 2, i.objectDefineProperties), object.DefaultAttrs)
	ctor.SetOwnData("getOwnPropertyDescriptor", i.nativeFn("getOwnPropertyDescriptor", 2, objectGetOwnPropertyDescriptor), object.DefaultAttrs)
	ctor.SetOwnData("freeze", i.nativeFn("freeze", 1, objectFreeze), object.DefaultAttrs)
	ctor.SetOwnData("isFrozen", i.nativeFn("isFrozen", 1, objectIsFrozen), object.DefaultAttrs)
	ctor.SetOwnData("seal", i.nativeFn("seal", 1, objectSeal), object.DefaultAttrs)
	ctor.SetOwnData("isSealed", i.nativeFn("isSealed", 1, objectIsSealed), object.DefaultAttrs)
	ctor.SetOwnData("preventExtensions", i.nativeFn("preventExtensions", 1, objectPreventExtensions), object.DefaultAttrs)
	ctor.SetOwnData("isExtensible", i.nativeFn("isExtensible", 1, objectIsExtensible), object.DefaultAttrs)
	i.globalObj.SetOwnData("Object", ctor, object.DefaultAttrs)
}

func (i *Interpreter) objectConstructorBody(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	if len(args) > 0 {
		if obj, ok := args[0].(*object.Object); ok {
			return obj, nil
		}
	}
	if obj, ok := this.(*object.Object); ok {
		return obj, nil
	}
	return ctx.NewObject("Object", nil), nil
}

func objectToString(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	class := "Object"
	if obj, ok := this.(*object.Object); ok {
		class = obj.Class
	}
	return object.String("[object " + class + "]"), nil
}

func objectHasOwnProperty(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	obj, ok := this.(*object.Object)
	if !ok {
		return object.Boolean(false), nil
	}
	return object.Boolean(obj.HasOwn(argString(args, 0))), nil
}

func objectIsPrototypeOf(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	self, ok := this.(*object.Object)
	if !ok {
		return object.Boolean(false), nil
	}
	other, ok := argOr(args, 0).(*object.Object)
	if !ok {
		return object.Boolean(false), nil
	}
	for cur := other.Proto; cur != nil; cur = cur.Proto {
		if cur == self {
			return object.Boolean(true), nil
		}
	}
	return object.Boolean(false), nil
}

func objectPropertyIsEnumerable(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	obj, ok := this.(*object.Object)
	if !ok {
		return object.Boolean(false), nil
	}
	desc, found := obj.GetOwnPropertyDescriptor(argString(args, 0))
	return object.Boolean(found && desc.Enumerable), nil
}

func objectKeys(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	obj, ok := argOr(args, 0).(*object.Object)
	if !ok {
		return nil, ctx.Throw("TypeError", "Object.keys called on non-object")
	}
	keys := obj.OwnEnumerableKeys()
	values := make([]object.Value, len(keys))
	for idx, k := range keys {
		values[idx] = object.String(k)
	}
	return ctx.NewArray(values), nil
}

func objectGetOwnPropertyNames(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	obj, ok := argOr(args, 0).(*object.Object)
	if !ok {
		return nil, ctx.Throw("TypeError", "Object.getOwnPropertyNames called on non-object")
	}
	keys := obj.OwnKeys()
	values := make([]object.Value, len(keys))
	for idx, k := range keys {
		values[idx] = object.String(k)
	}
	return ctx.NewArray(values), nil
}

func objectGetPrototypeOf(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	obj, ok := argOr(args, 0).(*object.Object)
	if !ok {
		return nil, ctx.Throw("TypeError", "Object.getPrototypeOf called on non-object")
	}
	if obj.Proto == nil {
		return object.Null{}, nil
	}
	return obj.Proto, nil
}

func (i *Interpreter) objectCreate(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	var proto *object.Object
	switch p := argOr(args, 0).(type) {
	case *object.Object:
		proto = p
	case object.Null:
		proto = nil
	default:
		return nil, ctx.Throw("TypeError", "Object prototype may only be an Object or null")
	}
	obj := ctx.NewObject("Object", proto)
	if len(args) > 1 {
		if _, err := i.objectDefineProperties(ctx, obj, []object.Value{obj, args[1]}); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func (i *Interpreter) objectDefineProperty(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	obj, ok := argOr(args, 0).(*object.Object)
	if !ok {
		return nil, ctx.Throw("TypeError", "Object.defineProperty called on non-object")
	}
	key := argString(args, 1)
	descObj, ok := argOr(args, 2).(*object.Object)
	if !ok {
		return nil, ctx.Throw("TypeError", "Property description must be an object")
	}
	i.applyDescriptor(obj, key, descObj)
	return obj, nil
}

func (i *Interpreter) objectDefineProperties(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	obj, ok := argOr(args, 0).(*object.Object)
	if !ok {
		return nil, ctx.Throw("TypeError", "Object.defineProperties called on non-object")
	}
	props, ok := argOr(args, 1).(*object.Object)
	if !ok {
		return nil, ctx.Throw("TypeError", "Properties must be an object")
	}
	for _, key := range props.OwnEnumerableKeys() {
		descVal, _ := props.Get(key)
		descObj, ok := descVal.(*object.Object)
		if !ok {
			continue
		}
		i.applyDescriptor(obj, key, descObj)
	}
	return obj, nil
}

func (i *Interpreter) applyDescriptor(obj *object.Object, key string, descObj *object.Object) {
	getVal, hasGet := descObj.Get("get")
	setVal, hasSet := descObj.Get("set")
	if hasGet || hasSet {
		var get, set *object.Object
		if hasGet {
			get, _ = getVal.(*object.Object)
		}
		if hasSet {
			set, _ = setVal.(*object.Object)
		}
		enumerable := boolFromDescriptor(descObj, "enumerable")
		configurable := boolFromDescriptor(descObj, "configurable")
		obj.DefineAccessor(key, get, set, enumerable, configurable)
		return
	}
	value, hasValue := descObj.Get("value")
	if !hasValue {
		value = object.Undefined{}
	}
	attrs := object.Attrs{
		Writable:     boolFromDescriptor(descObj, "writable"),
		Enumerable:   boolFromDescriptor(descObj, "enumerable"),
		Configurable: boolFromDescriptor(descObj, "configurable"),
	}
	obj.SetOwnData(key, value, attrs)
}

func boolFromDescriptor(descObj *object.Object, key string) bool {
	v, ok := descObj.Get(key)
	if !ok {
		return false
	}
	return object.ToBoolean(v)
}

func objectGetOwnPropertyDescriptor(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	obj, ok := argOr(args, 0).(*object.Object)
	if !ok {
		return nil, ctx.Throw("TypeError", "Object.getOwnPropertyDescriptor called on non-object")
	}
	desc, found := obj.GetOwnPropertyDescriptor(argString(args, 1))
	if !found {
		return object.Undefined{}, nil
	}
	out := ctx.NewObject("Object", nil)
	if desc.IsAccessor {
		if desc.Get != nil {
			out.SetOwnData("get", desc.Get, object.DefaultAttrs)
		} else {
			out.SetOwnData("get", object.Undefined{}, object.DefaultAttrs)
		}
		if desc.Set != nil {
			out.SetOwnData("set", desc.Set, object.DefaultAttrs)
		} else {
			out.SetOwnData("set", object.Undefined{}, object.DefaultAttrs)
		}
	} else {
		out.SetOwnData("value", desc.Value, object.DefaultAttrs)
		out.SetOwnData("writable", object.Boolean(desc.Writable), object.DefaultAttrs)
	}
	out.SetOwnData("enumerable", object.Boolean(desc.Enumerable), object.DefaultAttrs)
	out.SetOwnData("configurable", object.Boolean(desc.Configurable), object.DefaultAttrs)
	return out, nil
}

func objectFreeze(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	if obj, ok := argOr(args, 0).(*object.Object); ok {
		obj.Freeze()
	}
	return argOr(args, 0), nil
}

func objectIsFrozen(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	obj, ok := argOr(args, 0).(*object.Object)
	if !ok {
		return object.Boolean(true), nil
	}
	return object.Boolean(obj.IsFrozen()), nil
}

func objectSeal(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	if obj, ok := argOr(args, 0).(*object.Object); ok {
		obj.Seal()
	}
	return argOr(args, 0), nil
}

func objectIsSealed(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	obj, ok := argOr(args, 0).(*object.Object)
	if !ok {
		return object.Boolean(true), nil
	}
	return object.Boolean(obj.IsSealed()), nil
}

func objectPreventExtensions(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	if obj, ok := argOr(args, 0).(*object.Object); ok {
		obj.Extensible = false
	}
	return argOr(args, 0), nil
}

func objectIsExtensible(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	obj, ok := argOr(args, 0).(*object.Object)
	if !ok {
		return object.Boolean(false), nil
	}
	return object.Boolean(obj.Extensible), nil
}
