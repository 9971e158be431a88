package object

import (
	"strconv"
)

const maxArrayLength = 1<<32 - 1

// NewArray allocates an Array-class object with the given initial
// elements and a correct `length`, per spec.md §4.1's array invariant:
// "length is always a non-negative integer no greater than 2^32 - 1;
// setting an integer-index property past the current length raises
// length to index + 1; lowering length deletes every integer-index
// property at or above the new length." `length` itself is a data
// property: writable, not enumerable, not configurable (matching every
// real ES5 engine's Array.prototype.length descriptor).
func NewArray(proto *Object, elements []Value) *Object {
	o := NewObject("Array", proto)
	for i, v := range elements {
		o.SetOwnData(strconv.Itoa(i), v, DefaultAttrs)
	}
	o.SetOwnData("length", Number(len(elements)), Attrs{Writable: true})
	return o
}

// IsArrayIndex reports whether key is a canonical array index string
// ("0", "1", "2", ... — no leading zeros, no sign) in range.
func IsArrayIndex(key string) (idx uint32, ok bool) {
	if key == "" {
		return 0, false
	}
	if key == "0" {
		return 0, true
	}
	if key[0] == '0' {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil || n >= maxArrayLength {
		return 0, false
	}
	return uint32(n), true
}

// ArrayLength reads the current `length` of an Array-class object. It
// returns 0 if o has no own data property `length` or that property is
// not a Number.
func ArrayLength(o *Object) uint32 {
	v, ok := o.Get("length")
	if !ok {
		return 0
	}
	n, ok := v.(Number)
	if !ok {
		return 0
	}
	return uint32(n)
}

// SetArrayIndex implements the array-index half of [[DefineOwnProperty]]
// for Array-class objects: storing at idx raises length if needed.
// Callers are responsible for checking Extensible/Writable first; this
// is the unconditional data-layer operation, the same split SetOwnData
// draws for plain objects.
func SetArrayIndex(o *Object, idx uint32, v Value) {
	o.SetOwnData(strconv.FormatUint(uint64(idx), 10), v, DefaultAttrs)
	if cur := ArrayLength(o); idx >= cur {
		o.props.set("length", &prop{value: Number(idx + 1), attrs: Attrs{Writable: true}})
	}
}

// SetArrayLength implements assigning to `array.length` directly: raising
// it only updates the stored number (no properties are created), but
// lowering it deletes every integer-index own property at or above the
// new length, per the invariant above.
func SetArrayLength(o *Object, newLen uint32) {
	oldLen := ArrayLength(o)
	o.props.set("length", &prop{value: Number(newLen), attrs: Attrs{Writable: true}})
	if newLen >= oldLen {
		return
	}
	for _, key := range o.OwnKeys() {
		idx, ok := IsArrayIndex(key)
		if ok && idx >= newLen {
			o.DeleteOwn(key)
		}
	}
}

// ArrayElements reads back a dense snapshot of an array's elements as a
// []Value, honoring `length` and filling holes with Undefined{}. Used by
// the host bridge's array_pseudo_to_native (spec.md §4.5).
func ArrayElements(o *Object) []Value {
	n := ArrayLength(o)
	out := make([]Value, n)
	for i := uint32(0); i < n; i++ {
		if v, ok := o.Get(strconv.FormatUint(uint64(i), 10)); ok {
			out[i] = v
		} else {
			out[i] = Undefined{}
		}
	}
	return out
}
