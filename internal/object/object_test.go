package object

import "testing"

func TestObjectOwnProperties(t *testing.T) {
	o := NewObject("Object", nil)
	o.SetOwnData("a", Number(1), DefaultAttrs)
	o.SetOwnData("b", String("two"), DefaultAttrs)

	if !o.HasOwn("a") {
		t.Fatal("expected HasOwn(a) to be true")
	}
	v, ok := o.Get("b")
	if !ok || v != String("two") {
		t.Fatalf("Get(b) = %v, %v; want two, true", v, ok)
	}

	keys := o.OwnKeys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("OwnKeys() = %v, want [a b] in insertion order", keys)
	}

	o.DeleteOwn("a")
	if o.HasOwn("a") {
		t.Fatal("expected a to be deleted")
	}
	if len(o.OwnKeys()) != 1 {
		t.Fatalf("OwnKeys() after delete = %v, want 1 entry", o.OwnKeys())
	}
}

func TestObjectPrototypeChain(t *testing.T) {
	proto := NewObject("Object", nil)
	proto.SetOwnData("inherited", Number(7), DefaultAttrs)

	child := NewObject("Object", proto)
	if !child.Has("inherited") {
		t.Fatal("expected child.Has(inherited) via prototype chain")
	}
	if child.HasOwn("inherited") {
		t.Fatal("inherited should not be an own property")
	}

	owner, desc, found := child.Lookup("inherited")
	if !found || owner != proto || desc.Value != Number(7) {
		t.Fatalf("Lookup(inherited) = %v, %v, %v; want proto, 7, true", owner, desc, found)
	}

	if _, _, found := child.Lookup("missing"); found {
		t.Fatal("Lookup(missing) should not be found")
	}
}

func TestObjectAccessorProperty(t *testing.T) {
	o := NewObject("Object", nil)
	getter := NewNativeFunction(nil, "get x", 0, func(ctx NativeContext, this Value, args []Value) (Value, error) {
		return Number(42), nil
	})
	o.DefineAccessor("x", getter, nil, true, true)

	desc, ok := o.GetOwnPropertyDescriptor("x")
	if !ok || !desc.IsAccessor || desc.Get != getter {
		t.Fatalf("GetOwnPropertyDescriptor(x) = %+v, %v", desc, ok)
	}
	if _, ok := o.Get("x"); ok {
		t.Fatal("Get() should not resolve accessor properties")
	}
}

func TestObjectFreezeAndSeal(t *testing.T) {
	o := NewObject("Object", nil)
	o.SetOwnData("a", Number(1), DefaultAttrs)
	o.Freeze()

	if o.Extensible {
		t.Fatal("frozen object should not be extensible")
	}
	if !o.IsFrozen() {
		t.Fatal("IsFrozen() should be true right after Freeze()")
	}
	desc, _ := o.GetOwnPropertyDescriptor("a")
	if desc.Writable || desc.Configurable {
		t.Fatalf("frozen property descriptor = %+v, want non-writable non-configurable", desc)
	}

	sealed := NewObject("Object", nil)
	sealed.SetOwnData("b", Number(2), DefaultAttrs)
	sealed.Seal()
	if !sealed.IsSealed() {
		t.Fatal("IsSealed() should be true right after Seal()")
	}
	sdesc, _ := sealed.GetOwnPropertyDescriptor("b")
	if !sdesc.Writable {
		t.Fatal("Seal() must not clear writable, unlike Freeze()")
	}
	if sdesc.Configurable {
		t.Fatal("sealed property must be non-configurable")
	}
}

func TestObjectTypeOfCallable(t *testing.T) {
	fn := NewNativeFunction(nil, "f", 0, func(ctx NativeContext, this Value, args []Value) (Value, error) {
		return Undefined{}, nil
	})
	if got := fn.TypeOf(); got != "function" {
		t.Errorf("TypeOf() on native function = %q, want function", got)
	}

	plain := NewObject("Object", nil)
	if got := plain.TypeOf(); got != "object" {
		t.Errorf("TypeOf() on plain object = %q, want object", got)
	}
}
