package object

import "testing"

func TestScopeDeclareAndResolve(t *testing.T) {
	global := NewScope(nil)
	global.Declare("x", Number(1))

	fn := NewScope(global)
	fn.Declare("y", Number(2))

	if _, found := fn.Resolve("x"); !found {
		t.Fatal("expected fn scope to resolve x through its parent")
	}
	v, ok := fn.Get("x")
	if !ok || v != Number(1) {
		t.Fatalf("fn.Get(x) = %v, %v; want 1, true", v, ok)
	}

	if _, found := global.Resolve("y"); found {
		t.Fatal("global scope should not see fn's own binding y")
	}
}

func TestScopeSetAssignsExistingBinding(t *testing.T) {
	s := NewScope(nil)
	s.Declare("x", Number(1))

	if !s.Set("x", Number(2)) {
		t.Fatal("Set(x) on an existing binding should succeed")
	}
	v, _ := s.Get("x")
	if v != Number(2) {
		t.Fatalf("Get(x) after Set = %v, want 2", v)
	}

	if s.Set("never_declared", Number(3)) {
		t.Fatal("Set on an unbound name should report not-found, letting the interpreter decide implicit-global creation")
	}
}

func TestScopeDeclareDoesNotShadowItself(t *testing.T) {
	s := NewScope(nil)
	s.Declare("x", Number(1))
	s.Declare("x", Number(99)) // re-declaration (e.g. a second `var x` hoist) must not clobber

	v, _ := s.Get("x")
	if v != Number(1) {
		t.Fatalf("second Declare(x) overwrote existing binding: got %v, want 1", v)
	}
}

func TestWithScopeFallsThroughPrototypeChain(t *testing.T) {
	proto := NewObject("Object", nil)
	proto.SetOwnData("inherited", String("from proto"), DefaultAttrs)

	target := NewObject("Object", proto)
	target.SetOwnData("own", String("from target"), DefaultAttrs)

	global := NewScope(nil)
	withScope := NewWithScope(global, target)

	if _, found := withScope.Resolve("own"); !found {
		t.Fatal("with scope should resolve the target's own property")
	}
	if _, found := withScope.Resolve("inherited"); !found {
		t.Fatal("with scope should resolve through the target's prototype chain, unlike ordinary scopes")
	}
	if _, found := withScope.Resolve("nonexistent"); found {
		t.Fatal("with scope should not resolve a name absent from the target and its chain")
	}
}
