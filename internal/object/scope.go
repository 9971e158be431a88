package object

// Scope is one link of the lexical scope chain (spec.md §3 "Scope model",
// §4.4). Ordinary scopes (global, function, catch) hold their bindings
// in a null-prototype bag object — no prototype chain lookup leaks
// builtin names into variable resolution. The one documented exception
// is a `with` scope, whose Bag is the `with` target object itself, so
// lookups against it do fall through that object's own prototype chain
// (SPEC_FULL.md §3.2).
type Scope struct {
	Parent *Scope
	Bag    *Object
	// IsWith marks a scope created by a `with` statement; Bag is the
	// target object rather than a bindings bag, and deleting an
	// identifier found here deletes the guest property instead of
	// failing (named bindings are otherwise non-configurable).
	IsWith bool
}

// NewScope creates a child scope with a fresh null-prototype bindings
// bag.
func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent, Bag: NewObject("Scope", nil)}
}

// NewWithScope creates the transient scope a `with (object) body`
// statement installs for the duration of its body.
func NewWithScope(parent *Scope, target *Object) *Scope {
	return &Scope{Parent: parent, Bag: target, IsWith: true}
}

// Declare creates a binding in this scope's own bag, per the hoisting
// attributes spec.md §4.4 assigns: var-hoisted bindings are writable,
// non-configurable (can't be deleted), and non-enumerable is NOT right —
// they are enumerable on the variable-environment object in real
// engines, but since guest code never observes a scope bag as an object
// (it is not reachable via any guest expression), enumerability here
// only matters for Declare's own bookkeeping, not guest-visible
// iteration; DefaultAttrs minus Configurable is used uniformly.
func (s *Scope) Declare(name string, v Value) {
	if s.Bag.HasOwn(name) {
		return
	}
	s.Bag.SetOwnData(name, v, Attrs{Writable: true, Enumerable: true, Configurable: false})
}

// Resolve walks the scope chain for name, honoring the with-scope
// prototype-chain exception, and returns the scope whose bag holds it.
func (s *Scope) Resolve(name string) (owner *Scope, found bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.IsWith {
			if cur.Bag.Has(name) {
				return cur, true
			}
			continue
		}
		if cur.Bag.HasOwn(name) {
			return cur, true
		}
	}
	return nil, false
}

// Get reads a binding's current value, walking the chain as Resolve
// does. ok is false for an unresolved identifier (a ReferenceError at
// the interpreter level).
func (s *Scope) Get(name string) (Value, bool) {
	owner, found := s.Resolve(name)
	if !found {
		return Undefined{}, false
	}
	if owner.IsWith {
		v, _ := owner.Bag.Get(name)
		return v, true
	}
	v, _ := owner.Bag.Get(name)
	return v, true
}

// Set assigns to an existing binding found by Resolve. It returns false
// if name is not bound anywhere in the chain, in which case non-strict
// guest code implicitly creates a global (handled by the interpreter,
// not here — Scope never decides strictness).
func (s *Scope) Set(name string, v Value) bool {
	owner, found := s.Resolve(name)
	if !found {
		return false
	}
	owner.Bag.SetOwnData(name, v, Attrs{Writable: true, Enumerable: true, Configurable: owner.IsWith})
	return true
}
