package object

// NativeContext is the slice of interpreter capability a native function
// or getter/setter needs without importing internal/interp (which itself
// imports this package): allocating new guest objects, raising guest
// exceptions, and reaching the standard prototypes. internal/interp's
// Interpreter implements this interface; see bridge.go there for
// create_native_function (spec.md §4.5).
type NativeContext interface {
	NewObject(class string, proto *Object) *Object
	NewArray(elements []Value) *Object
	ObjectPrototype() *Object
	ArrayPrototype() *Object
	FunctionPrototype() *Object
	Throw(name, message string) error
}

// NativeFunc is the Go-side body of a KindNativeFn object (spec.md §4.5
// create_native_function). It receives the bound `this`, the argument
// list (already length-normalized is NOT guaranteed — short argument
// lists are the caller's concern, matching guest semantics where missing
// arguments read as undefined), and returns either a guest Value or a
// Go error that the interpreter re-raises as a guest exception (normally
// produced via ctx.Throw).
type NativeFunc func(ctx NativeContext, this Value, args []Value) (Value, error)

// GuestFnData is the Data payload of a KindGuestFn object: everything
// needed to push a new call Frame over the function body (spec.md §4.2
// "FunctionExpression/Declaration → function object capturing the
// defining scope").
type GuestFnData struct {
	Name    string
	Params  []string
	Body    any // *ast.BlockStatement; typed any to avoid an import cycle with internal/ast's consumers
	Closure *Scope
	// IsAsync marks a guest function created via create_async_function's
	// guest-visible sibling, if the host chooses to expose one; unused by
	// the core builtins but kept for host extensions.
	IsAsync bool
}

// NativeFnData is the Data payload of a KindNativeFn or KindAsyncFn
// object.
type NativeFnData struct {
	Name string
	Fn   NativeFunc
	// Length mirrors the guest-visible `length` property ES5 gives every
	// function (its declared parameter count).
	Length int
}

// Object is the guest object representation of spec.md §3 "Guest object
// fields": a prototype link, a class tag, an ordered own-property map
// with per-property attributes, accessor slots, an extensible flag, a
// class-specific data slot, and a callable kind.
type Object struct {
	Proto      *Object
	Class      string // "Object", "Array", "Function", "Number", "String", "Boolean", "Date", "RegExp", "Error", "Arguments", ...
	Kind       Kind
	Extensible bool
	Data       any

	// IllegalConstructor marks functions that throw a guest TypeError
	// when used with `new`; plain calls are unaffected. No builtin sets
	// it; it is left for host-added functions.
	IllegalConstructor bool

	props *propMap
}

// NewObject allocates a bare object with the given prototype and class
// tag, extensible by default (spec.md §4.1 "objects begin extensible").
func NewObject(class string, proto *Object) *Object {
	return &Object{
		Proto:      proto,
		Class:      class,
		Kind:       KindPlain,
		Extensible: true,
		props:      newPropMap(),
	}
}

// NewNativeFunction wraps fn as a callable KindNativeFn object.
func NewNativeFunction(proto *Object, name string, length int, fn NativeFunc) *Object {
	o := NewObject("Function", proto)
	o.Kind = KindNativeFn
	o.Data = &NativeFnData{Name: name, Fn: fn, Length: length}
	return o
}

// Get returns the value stored in own property key, ignoring the
// prototype chain and ignoring accessors (use Lookup for the full
// property-resolution algorithm spec.md §4.1 describes). ok is false if
// key is absent or is an accessor property.
func (o *Object) Get(key string) (Value, bool) {
	p, found := o.props.get(key)
	if !found || p.isAccessor() {
		return Undefined{}, false
	}
	return p.value, true
}

// HasOwn reports whether key is present as an own property (data or
// accessor).
func (o *Object) HasOwn(key string) bool {
	_, ok := o.props.get(key)
	return ok
}

// Has walks the prototype chain looking for key.
func (o *Object) Has(key string) bool {
	for cur := o; cur != nil; cur = cur.Proto {
		if cur.HasOwn(key) {
			return true
		}
	}
	return false
}

// Lookup walks the prototype chain for key and returns the object that
// owns the matching property along with its descriptor bits. This is the
// primitive the interpreter's property-read path uses to decide whether
// it must invoke a getter (spec.md §4.1).
func (o *Object) Lookup(key string) (owner *Object, desc PropertyDescriptor, found bool) {
	for cur := o; cur != nil; cur = cur.Proto {
		if p, ok := cur.props.get(key); ok {
			return cur, descriptorOf(p), true
		}
	}
	return nil, PropertyDescriptor{}, false
}

// SetOwnData creates or overwrites an own data property. It does not
// consult Extensible or existing Configurable/Writable flags — callers
// implementing the full [[Put]]/[[DefineOwnProperty]] semantics (spec.md
// §4.1's "define vs. assign" distinction) check those before calling
// this, so bootstrapping builtin prototypes can use it unconditionally.
func (o *Object) SetOwnData(key string, v Value, attrs Attrs) {
	o.props.set(key, &prop{value: v, attrs: attrs})
}

// DefineAccessor creates or overwrites an own accessor property. A nil
// get or set leaves that half absent (a setter-only or getter-only
// accessor), matching Object.defineProperty's partial-descriptor
// behavior.
func (o *Object) DefineAccessor(key string, get, set *Object, enumerable, configurable bool) {
	existing, _ := o.props.get(key)
	if existing == nil || !existing.isAccessor() {
		existing = &prop{}
	}
	if get != nil {
		existing.get = get
	}
	if set != nil {
		existing.set = set
	}
	existing.attrs = Attrs{Enumerable: enumerable, Configurable: configurable}
	o.props.set(key, existing)
}

// DeleteOwn removes an own property unconditionally (configurability is
// the caller's concern — spec.md §4.1's delete operator checks
// Configurable before calling this).
func (o *Object) DeleteOwn(key string) {
	o.props.delete(key)
}

// OwnKeys returns every own property key (enumerable or not) in
// insertion order, per Object.getOwnPropertyNames (spec.md §4.5).
func (o *Object) OwnKeys() []string {
	return o.props.keys()
}

// OwnEnumerableKeys returns own enumerable keys in insertion order, the
// set Object.keys and for-in (own-property phase) iterate.
func (o *Object) OwnEnumerableKeys() []string {
	all := o.props.keys()
	out := make([]string, 0, len(all))
	for _, k := range all {
		if p, ok := o.props.get(k); ok && p.attrs.Enumerable {
			out = append(out, k)
		}
	}
	return out
}

// OwnPropertyCount is the number of own properties, used by array length
// bookkeeping and diagnostics.
func (o *Object) OwnPropertyCount() int { return o.props.len() }

// PropertyDescriptor is a read-only snapshot of one property's full
// shape, returned by Lookup and Object.getOwnPropertyDescriptor.
type PropertyDescriptor struct {
	Value        Value
	Get          *Object
	Set          *Object
	Writable     bool
	Enumerable   bool
	Configurable bool
	IsAccessor   bool
}

func descriptorOf(p *prop) PropertyDescriptor {
	if p.isAccessor() {
		return PropertyDescriptor{
			Get: p.get, Set: p.set,
			Enumerable: p.attrs.Enumerable, Configurable: p.attrs.Configurable,
			IsAccessor: true,
		}
	}
	return PropertyDescriptor{
		Value: p.value,
		Writable: p.attrs.Writable, Enumerable: p.attrs.Enumerable, Configurable: p.attrs.Configurable,
	}
}

// GetOwnPropertyDescriptor is the own-property (non-chain-walking) half
// of Lookup, backing Object.getOwnPropertyDescriptor.
func (o *Object) GetOwnPropertyDescriptor(key string) (PropertyDescriptor, bool) {
	p, ok := o.props.get(key)
	if !ok {
		return PropertyDescriptor{}, false
	}
	return descriptorOf(p), true
}

// Freeze implements Object.freeze: not extensible, and every own data
// property becomes non-writable and non-configurable (accessors become
// non-configurable only — there is no writable bit to clear).
func (o *Object) Freeze() {
	o.Extensible = false
	for _, k := range o.props.keys() {
		p, _ := o.props.get(k)
		p.attrs.Configurable = false
		if !p.isAccessor() {
			p.attrs.Writable = false
		}
	}
}

// IsFrozen reports whether Freeze's postcondition currently holds.
func (o *Object) IsFrozen() bool {
	if o.Extensible {
		return false
	}
	for _, k := range o.props.keys() {
		p, _ := o.props.get(k)
		if p.attrs.Configurable {
			return false
		}
		if !p.isAccessor() && p.attrs.Writable {
			return false
		}
	}
	return true
}

// Seal implements Object.seal: not extensible, every own property
// non-configurable (writability untouched).
func (o *Object) Seal() {
	o.Extensible = false
	for _, k := range o.props.keys() {
		p, _ := o.props.get(k)
		p.attrs.Configurable = false
	}
}

// IsSealed reports whether Seal's postcondition currently holds.
func (o *Object) IsSealed() bool {
	if o.Extensible {
		return false
	}
	for _, k := range o.props.keys() {
		p, _ := o.props.get(k)
		if p.attrs.Configurable {
			return false
		}
	}
	return true
}

// TypeOf implements the guest `typeof` operator for objects: callable
// objects report "function", everything else reports "object".
func (o *Object) TypeOf() string {
	if o.Kind.Callable() {
		return "function"
	}
	return "object"
}

// String implements Value for *Object using the default, non-invoking
// [object Class] rendering. The interpreter's ToString abstract
// operation overrides this for guest-visible coercions that must call
// toString/valueOf; this method exists so *Object satisfies Value even
// before such a call happens (e.g. inside Inspect, or as a fallback).
func (o *Object) String() string {
	return Inspect(o)
}
