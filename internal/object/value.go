// Package object implements the guest value and object model of spec.md
// §3–§4.1: the tagged value sum, the guest object (property map, getter/
// setter maps, prototype link, class tag, capability flags) and the
// primitive-vs-object distinction the rest of the engine is built on.
//
// The shape mirrors the teacher's runtime value types (distinct structs
// implementing a common Value interface, one per kind, in
// interp/value.go) re-pointed at ES5 semantics: six tags instead of
// DWScript's many static types, and objects instead of records/classes.
package object

import (
	"fmt"
	"math"
	"strconv"
)

// Value is any guest-visible runtime value: Undefined, Null, Boolean,
// Number, String, or *Object. It deliberately does not use interface{} —
// every concrete implementation lives in this package.
type Value interface {
	// TypeOf returns the ECMAScript `typeof` result for this value, except
	// for *Object, whose TypeOf depends on its Kind (handled by Object
	// itself).
	TypeOf() string
	// String returns ToString(value) per the guest's string-coercion
	// rules (used for display and for most property-key coercions).
	String() string
}

// Undefined is the guest `undefined` value. There is exactly one logical
// undefined; Undefined{} is its zero-size representation.
type Undefined struct{}

func (Undefined) TypeOf() string { return "undefined" }
func (Undefined) String() string { return "undefined" }

// Null is the guest `null` value.
type Null struct{}

func (Null) TypeOf() string { return "object" }
func (Null) String() string { return "null" }

// Boolean is a guest boolean primitive.
type Boolean bool

func (Boolean) TypeOf() string { return "boolean" }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Number is a guest number primitive: an IEEE-754 double, per spec.md §3.
type Number float64

func (Number) TypeOf() string { return "number" }

// String renders a Number the way the guest's ToString(number) does:
// integral values with no trailing ".0", NaN/Infinity spelled out, and
// otherwise the shortest round-tripping decimal (Go's 'g' formatting,
// which matches this closely enough for a non-conformance-graded core).
func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// String is a guest string primitive.
type String string

func (String) TypeOf() string { return "string" }
func (s String) String() string { return string(s) }

// ToBoolean implements the guest's ToBoolean abstract operation.
func ToBoolean(v Value) bool {
	switch t := v.(type) {
	case Undefined:
		return false
	case Null:
		return false
	case Boolean:
		return bool(t)
	case Number:
		f := float64(t)
		return f != 0 && !math.IsNaN(f)
	case String:
		return len(t) > 0
	case *Object:
		return true
	default:
		return false
	}
}

// ToNumber implements the guest's ToNumber abstract operation for the
// primitive tags. Object-to-primitive coercion (via valueOf/toString) is
// the interpreter's job, since it may invoke guest code; this function
// only handles the primitive cases and returns NaN for *Object.
func ToNumber(v Value) float64 {
	switch t := v.(type) {
	case Undefined:
		return math.NaN()
	case Null:
		return 0
	case Boolean:
		if t {
			return 1
		}
		return 0
	case Number:
		return float64(t)
	case String:
		return stringToNumber(string(t))
	default:
		return math.NaN()
	}
}

func stringToNumber(s string) float64 {
	trimmed := trimSpace(s)
	if trimmed == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	if i, err := strconv.ParseInt(trimmed, 0, 64); err == nil {
		return float64(i)
	}
	return math.NaN()
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpaceByte(s[start]) {
		start++
	}
	for end > start && isSpaceByte(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// TypeName renders a Go-side diagnostic label for internal error
// messages; unlike TypeOf it distinguishes object class tags.
func TypeName(v Value) string {
	if obj, ok := v.(*Object); ok {
		return obj.Class
	}
	return v.TypeOf()
}

// Inspect is a developer-facing rendering used by GuestError/HostError
// messages and *Object's String method; unlike String() it never
// invokes guest code (no toString/valueOf calls) so it is always safe to
// call from a panic handler.
func Inspect(v Value) string {
	switch t := v.(type) {
	case *Object:
		return fmt.Sprintf("[object %s]", t.Class)
	default:
		return v.String()
	}
}
